package survival

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func slotsOf(inv Inventory) []ItemAndCount {
	return inv.Slots()
}

func fill(t *testing.T, inv *Inventory, items ...ItemAndCount) {
	t.Helper()
	for _, ic := range items {
		if overflow := inv.Add(ic); overflow != nil {
			t.Fatalf("seed add %s overflowed by %d", ic, overflow.Remaining)
		}
	}
}

func TestInventory_AddStacksIntoFirstSlot(t *testing.T) {
	inv := NewInventory(5, 5)
	for i := 0; i < 3; i++ {
		if overflow := inv.Add(ItemAndCount{Item: Flint, Count: 1}); overflow != nil {
			t.Fatalf("add %d: unexpected overflow %+v", i, overflow)
		}
	}
	want := []ItemAndCount{{Item: Flint, Count: 3}, {}, {}, {}, {}}
	if got := slotsOf(inv); !reflect.DeepEqual(got, want) {
		t.Fatalf("slots mismatch: got=%v want=%v", got, want)
	}
}

func TestInventory_AddSpillsIntoNewSlotWhenStackFull(t *testing.T) {
	inv := NewInventory(5, 5)
	fill(t, &inv, ItemAndCount{Item: Flint, Count: 5})

	if overflow := inv.Add(ItemAndCount{Item: Flint, Count: 3}); overflow != nil {
		t.Fatalf("unexpected overflow %+v", overflow)
	}
	want := []ItemAndCount{{Item: Flint, Count: 5}, {Item: Flint, Count: 3}, {}, {}, {}}
	if got := slotsOf(inv); !reflect.DeepEqual(got, want) {
		t.Fatalf("slots mismatch: got=%v want=%v", got, want)
	}
}

func TestInventory_AddToFullInventoryOverflowsEverything(t *testing.T) {
	inv := NewInventory(5, 5)
	fill(t, &inv,
		ItemAndCount{Item: Flint, Count: 5},
		ItemAndCount{Item: Twig, Count: 5},
		ItemAndCount{Item: Grass, Count: 5},
		ItemAndCount{Item: Fire, Count: 5},
		ItemAndCount{Item: Axe, Count: 5},
	)
	before := slotsOf(inv)

	overflow := inv.Add(ItemAndCount{Item: Wood, Count: 1})
	if overflow == nil {
		t.Fatalf("expected overflow")
	}
	if overflow.Remaining != 1 || overflow.Item != Wood {
		t.Fatalf("overflow mismatch: got=%+v want remaining=1 item=wood", *overflow)
	}
	if got := slotsOf(inv); !reflect.DeepEqual(got, before) {
		t.Fatalf("inventory changed: got=%v want=%v", got, before)
	}

	overflow = inv.Add(ItemAndCount{Item: Flint, Count: 4})
	if overflow == nil || overflow.Remaining != 4 {
		t.Fatalf("expected overflow of the full request, got %+v", overflow)
	}
}

func TestInventory_AddPartiallyKeepsWhatFits(t *testing.T) {
	inv := NewInventory(2, 5)
	fill(t, &inv, ItemAndCount{Item: Wood, Count: 3})

	overflow := inv.Add(ItemAndCount{Item: Wood, Count: 9})
	if overflow == nil || overflow.Remaining != 2 {
		t.Fatalf("expected overflow 2, got %+v", overflow)
	}
	if got := inv.Count(Wood); got != 10 {
		t.Fatalf("wood count mismatch: got=%d want=10", got)
	}
}

func TestInventory_AddFillsMatchingStacksBeforeEmptySlots(t *testing.T) {
	inv := NewInventory(4, 5)
	fill(t, &inv,
		ItemAndCount{Item: Twig, Count: 4},
		ItemAndCount{Item: Flint, Count: 1},
	)
	if err := inv.Remove(ItemAndCount{Item: Twig, Count: 4}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	fill(t, &inv, ItemAndCount{Item: Flint, Count: 6})

	want := []ItemAndCount{{Item: Flint, Count: 2}, {Item: Flint, Count: 5}, {}, {}}
	if got := slotsOf(inv); !reflect.DeepEqual(got, want) {
		t.Fatalf("slots mismatch: got=%v want=%v", got, want)
	}
}

func TestInventory_AddIgnoresEmptyRequests(t *testing.T) {
	inv := NewInventory(3, 5)
	if overflow := inv.Add(ItemAndCount{Item: Flint, Count: 0}); overflow != nil {
		t.Fatalf("zero add should not overflow")
	}
	if overflow := inv.Add(ItemAndCount{Item: None, Count: 3}); overflow != nil {
		t.Fatalf("none add should not overflow")
	}
	if inv.FreeSlots() != 3 {
		t.Fatalf("expected untouched inventory, free=%d", inv.FreeSlots())
	}
}

func TestInventory_RemoveExactCountClearsSlot(t *testing.T) {
	inv := NewInventory(5, 5)
	fill(t, &inv, ItemAndCount{Item: Twig, Count: 2}, ItemAndCount{Item: Flint, Count: 1})

	if err := inv.Remove(ItemAndCount{Item: Twig, Count: 2}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	slots := slotsOf(inv)
	if slots[0] != (ItemAndCount{}) {
		t.Fatalf("expected first slot reset to none, got %v", slots[0])
	}
	if slots[0].Item != None {
		t.Fatalf("expected sentinel item, got %s", slots[0].Item)
	}
}

func TestInventory_RemoveDistinguishesAbsentFromInsufficient(t *testing.T) {
	inv := NewInventory(5, 5)
	fill(t, &inv, ItemAndCount{Item: Flint, Count: 2})

	err := inv.Remove(ItemAndCount{Item: Wood, Count: 1})
	if !errors.Is(err, ErrItemMissing) || !errors.Is(err, ErrItemNotInInventory) {
		t.Fatalf("expected item-not-in-inventory, got %v", err)
	}
	if errors.Is(err, ErrNotEnoughItems) {
		t.Fatalf("absent item must not report not-enough")
	}

	err = inv.Remove(ItemAndCount{Item: Flint, Count: 3})
	if !errors.Is(err, ErrItemMissing) || !errors.Is(err, ErrNotEnoughItems) {
		t.Fatalf("expected not-enough, got %v", err)
	}
	var missing *ItemMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected ItemMissingError, got %T", err)
	}
	if !missing.Present || missing.Held != 2 || missing.Requested != 3 {
		t.Fatalf("unexpected details: %+v", *missing)
	}
	if got := inv.Count(Flint); got != 2 {
		t.Fatalf("failed remove changed inventory: flint=%d", got)
	}
}

// Removal draws from a single slot. Two stacks that together hold enough do
// not satisfy a request larger than either one.
func TestInventory_RemoveDoesNotAggregateAcrossSlots(t *testing.T) {
	inv := NewInventory(5, 5)
	fill(t, &inv, ItemAndCount{Item: Flint, Count: 5}, ItemAndCount{Item: Flint, Count: 2})
	if inv.Count(Flint) != 7 {
		t.Fatalf("seed mismatch: flint=%d", inv.Count(Flint))
	}

	err := inv.Remove(ItemAndCount{Item: Flint, Count: 6})
	if !errors.Is(err, ErrNotEnoughItems) {
		t.Fatalf("expected single-slot removal to fail, got %v", err)
	}
	if inv.CanRemove(ItemAndCount{Item: Flint, Count: 6}) {
		t.Fatalf("CanRemove should agree with Remove")
	}

	if err := inv.Remove(ItemAndCount{Item: Flint, Count: 2}); err != nil {
		t.Fatalf("remove 2: %v", err)
	}
	want := []ItemAndCount{{Item: Flint, Count: 3}, {Item: Flint, Count: 2}, {}, {}, {}}
	if got := slotsOf(inv); !reflect.DeepEqual(got, want) {
		t.Fatalf("first matching slot should be used: got=%v want=%v", got, want)
	}
}

func TestInventory_RemoveSkipsSmallStackForLaterLargerOne(t *testing.T) {
	inv := NewInventory(3, 5)
	fill(t, &inv, ItemAndCount{Item: Wood, Count: 5}, ItemAndCount{Item: Wood, Count: 5})
	if err := inv.Remove(ItemAndCount{Item: Wood, Count: 4}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := inv.Remove(ItemAndCount{Item: Wood, Count: 3}); err != nil {
		t.Fatalf("remove from second stack: %v", err)
	}
	want := []ItemAndCount{{Item: Wood, Count: 1}, {Item: Wood, Count: 2}, {}}
	if got := slotsOf(inv); !reflect.DeepEqual(got, want) {
		t.Fatalf("slots mismatch: got=%v want=%v", got, want)
	}
}

func TestInventory_RemoveRejectsNegativeCount(t *testing.T) {
	inv := NewInventory(3, 5)
	if err := inv.Remove(ItemAndCount{Item: Wood, Count: -1}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestInventory_AddThenRemoveRoundTrips(t *testing.T) {
	inv := NewInventory(5, 5)
	fill(t, &inv, ItemAndCount{Item: Flint, Count: 2}, ItemAndCount{Item: Twig, Count: 4})
	before := slotsOf(inv)

	for _, ic := range []ItemAndCount{
		{Item: Flint, Count: 3},
		{Item: Wood, Count: 5},
		{Item: Twig, Count: 1},
	} {
		if overflow := inv.Add(ic); overflow != nil {
			t.Fatalf("add %s overflowed", ic)
		}
		if err := inv.Remove(ic); err != nil {
			t.Fatalf("remove %s: %v", ic, err)
		}
		if got := slotsOf(inv); !reflect.DeepEqual(got, before) {
			t.Fatalf("round trip of %s changed inventory: got=%v want=%v", ic, got, before)
		}
	}
}

func TestInventory_PredicatesDoNotMutate(t *testing.T) {
	inv := NewInventory(3, 5)
	fill(t, &inv, ItemAndCount{Item: Flint, Count: 5}, ItemAndCount{Item: Twig, Count: 1})
	before := slotsOf(inv)

	for i := 0; i < 10; i++ {
		inv.CanAdd(ItemAndCount{Item: Wood, Count: 5})
		inv.CanAdd(ItemAndCount{Item: Wood, Count: 50})
		inv.CanRemove(ItemAndCount{Item: Flint, Count: 5})
		inv.CanRemove(ItemAndCount{Item: Twig, Count: 1})
		inv.CanRemove(ItemAndCount{Item: Grass, Count: 1})
	}
	if got := slotsOf(inv); !reflect.DeepEqual(got, before) {
		t.Fatalf("predicates mutated inventory: got=%v want=%v", got, before)
	}
	if !inv.CanAdd(ItemAndCount{Item: Wood, Count: 5}) {
		t.Fatalf("expected room for 5 wood")
	}
	if inv.CanAdd(ItemAndCount{Item: Wood, Count: 6}) {
		t.Fatalf("expected no room for 6 wood")
	}
	if !inv.CanRemove(ItemAndCount{Item: Flint, Count: 5}) {
		t.Fatalf("expected flint removable")
	}
	if err := inv.Remove(ItemAndCount{Item: Flint, Count: 5}); err != nil {
		t.Fatalf("remove after predicates: %v", err)
	}
}

func TestInventory_ConservesCountsOverRandomOperations(t *testing.T) {
	items := []ItemType{Flint, Twig, Grass, Wood, Fire, Axe}
	rng := rand.New(rand.NewSource(7))
	inv := NewInventory(5, 5)
	expected := map[ItemType]int{}

	for step := 0; step < 2000; step++ {
		ic := ItemAndCount{Item: items[rng.Intn(len(items))], Count: 1 + rng.Intn(7)}
		if rng.Intn(2) == 0 {
			absorbed := ic.Count
			if overflow := inv.Add(ic); overflow != nil {
				absorbed -= overflow.Remaining
			}
			expected[ic.Item] += absorbed
		} else if err := inv.Remove(ic); err == nil {
			expected[ic.Item] -= ic.Count
		}

		for _, s := range inv.Slots() {
			if s.Count < 0 || s.Count > inv.StackLimit() {
				t.Fatalf("step %d: slot out of bounds: %v", step, s)
			}
			if s.Count == 0 && s.Item != None {
				t.Fatalf("step %d: stale item tag on empty slot: %v", step, s)
			}
		}
		for _, item := range items {
			if got := inv.Count(item); got != expected[item] {
				t.Fatalf("step %d: %s count mismatch: got=%d want=%d", step, item, got, expected[item])
			}
		}
	}
}

func TestInventory_CloneIsIndependent(t *testing.T) {
	inv := NewInventory(3, 5)
	fill(t, &inv, ItemAndCount{Item: Flint, Count: 1})
	c := inv.Clone()
	fill(t, &c, ItemAndCount{Item: Flint, Count: 3})
	if inv.Count(Flint) != 1 {
		t.Fatalf("clone aliased original: flint=%d", inv.Count(Flint))
	}
}

func TestNewInventory_FallsBackToDefaults(t *testing.T) {
	inv := NewInventory(0, -1)
	if inv.Size() != DefaultInventorySize || inv.StackLimit() != DefaultStackLimit {
		t.Fatalf("shape mismatch: got=%dx%d want=%dx%d", inv.Size(), inv.StackLimit(), DefaultInventorySize, DefaultStackLimit)
	}
}

func TestRestoreInventory_NormalizesStaleSlots(t *testing.T) {
	inv, err := RestoreInventory([]ItemAndCount{{Item: Flint, Count: 0}, {Item: Twig, Count: 2}}, 5)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	want := []ItemAndCount{{}, {Item: Twig, Count: 2}}
	if got := slotsOf(inv); !reflect.DeepEqual(got, want) {
		t.Fatalf("slots mismatch: got=%v want=%v", got, want)
	}
	if inv.FreeSlots() != 1 {
		t.Fatalf("expected one free slot, got %d", inv.FreeSlots())
	}

	if _, err := RestoreInventory([]ItemAndCount{{Item: Twig, Count: 6}}, 5); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected over-limit slot to be rejected, got %v", err)
	}
}

func TestInventory_JSONRoundTrip(t *testing.T) {
	inv := NewInventory(3, 4)
	fill(t, &inv, ItemAndCount{Item: Axe, Count: 1}, ItemAndCount{Item: Grass, Count: 4})

	b, err := inv.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Inventory
	if err := got.UnmarshalJSON(b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.StackLimit() != 4 || !reflect.DeepEqual(got.Slots(), inv.Slots()) {
		t.Fatalf("round trip mismatch: got=%v/%d want=%v/%d", got.Slots(), got.StackLimit(), inv.Slots(), inv.StackLimit())
	}
}
