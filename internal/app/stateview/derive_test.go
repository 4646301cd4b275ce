package stateview

import (
	"testing"

	"craftvival/internal/domain/survival"
)

func testBook(t *testing.T) *survival.Book {
	t.Helper()
	book, err := survival.NewBook(survival.DefaultRecipes())
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	return book
}

func TestProject_EmptyPlayer(t *testing.T) {
	state := survival.NewPlayerState("p1", 5, 5)

	v := Project(state, testBook(t))
	if len(v.Slots) != 5 || v.FreeSlots != 5 || v.StackLimit != 5 {
		t.Fatalf("shape mismatch: slots=%d free=%d limit=%d", len(v.Slots), v.FreeSlots, v.StackLimit)
	}
	if len(v.Craftable) != 0 {
		t.Fatalf("expected nothing craftable, got %v", v.Craftable)
	}
	if len(v.Recipes) != 1 || v.Recipes[0].Craftable {
		t.Fatalf("expected one non-craftable recipe, got %+v", v.Recipes)
	}
	if !v.Equipped.IsNone() {
		t.Fatalf("expected empty hands, got %s", v.Equipped)
	}
}

func TestProject_ReflectsInventoryAndHands(t *testing.T) {
	state := survival.NewPlayerState("p1", 5, 5)
	state.Inventory.Add(survival.ItemAndCount{Item: survival.Twig, Count: 2})
	state.Inventory.Add(survival.ItemAndCount{Item: survival.Flint, Count: 1})
	state.Hands.Tool = survival.Axe
	state.Version = 4

	v := Project(state, testBook(t))
	if v.Totals["twig"] != 2 || v.Totals["flint"] != 1 {
		t.Fatalf("totals mismatch: %v", v.Totals)
	}
	if v.FreeSlots != 3 || v.Version != 4 {
		t.Fatalf("free/version mismatch: free=%d version=%d", v.FreeSlots, v.Version)
	}
	if len(v.Craftable) != 1 || v.Craftable[0] != survival.Axe {
		t.Fatalf("expected axe craftable, got %v", v.Craftable)
	}
	if v.Equipped != survival.Axe {
		t.Fatalf("equipped mismatch: got=%s", v.Equipped)
	}
	if v.Slots[0].Item != survival.Twig || v.Slots[0].Count != 2 {
		t.Fatalf("slot 0 mismatch: %+v", v.Slots[0])
	}
}

func TestProject_DoesNotMutateState(t *testing.T) {
	state := survival.NewPlayerState("p1", 2, 5)
	state.Inventory.Add(survival.ItemAndCount{Item: survival.Twig, Count: 1})
	state.Inventory.Add(survival.ItemAndCount{Item: survival.Flint, Count: 1})

	Project(state, testBook(t))
	Project(state, testBook(t))
	if state.Inventory.Count(survival.Twig) != 1 || state.Inventory.Count(survival.Flint) != 1 {
		t.Fatalf("projection mutated inventory")
	}
}
