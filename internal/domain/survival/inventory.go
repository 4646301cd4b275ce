package survival

import (
	"encoding/json"
	"fmt"
)

// Overflow is the part of an Add that found no room.
type Overflow struct {
	Item      ItemType `json:"item"`
	Remaining int      `json:"remaining"`
}

// Inventory is a fixed number of slots, each holding one item kind up to the
// stack limit. The zero value has no slots; use NewInventory.
type Inventory struct {
	slots      []ItemAndCount
	stackLimit int
}

func NewInventory(size, stackLimit int) Inventory {
	if size <= 0 {
		size = DefaultInventorySize
	}
	if stackLimit <= 0 {
		stackLimit = DefaultStackLimit
	}
	return Inventory{
		slots:      make([]ItemAndCount, size),
		stackLimit: stackLimit,
	}
}

func (inv Inventory) Size() int {
	return len(inv.slots)
}

func (inv Inventory) StackLimit() int {
	return inv.stackLimit
}

func (inv Inventory) Slots() []ItemAndCount {
	out := make([]ItemAndCount, len(inv.slots))
	copy(out, inv.slots)
	return out
}

func (inv Inventory) Clone() Inventory {
	return Inventory{slots: inv.Slots(), stackLimit: inv.stackLimit}
}

// Count is the total held across all slots.
func (inv Inventory) Count(item ItemType) int {
	total := 0
	for _, s := range inv.slots {
		if !s.Empty() && s.Item == item {
			total += s.Count
		}
	}
	return total
}

func (inv Inventory) FreeSlots() int {
	n := 0
	for _, s := range inv.slots {
		if s.Empty() {
			n++
		}
	}
	return n
}

// Add places ic into matching stacks first, then into empty slots, both in slot
// order. Whatever did not fit stays placed; the rest comes back as Overflow.
func (inv *Inventory) Add(ic ItemAndCount) *Overflow {
	if ic.Count <= 0 || ic.Item.IsNone() {
		return nil
	}
	remaining := ic.Count

	for i := range inv.slots {
		s := &inv.slots[i]
		if s.Empty() || s.Item != ic.Item {
			continue
		}
		room := inv.stackLimit - s.Count
		if room <= 0 {
			continue
		}
		n := min(room, remaining)
		s.Count += n
		remaining -= n
		if remaining == 0 {
			return nil
		}
	}

	for i := range inv.slots {
		if !inv.slots[i].Empty() {
			continue
		}
		n := min(inv.stackLimit, remaining)
		inv.slots[i] = ItemAndCount{Item: ic.Item, Count: n}
		remaining -= n
		if remaining == 0 {
			return nil
		}
	}

	return &Overflow{Item: ic.Item, Remaining: remaining}
}

func (inv Inventory) CanAdd(ic ItemAndCount) bool {
	scratch := inv.Clone()
	return scratch.Add(ic) == nil
}

// Remove takes ic.Count from the first slot that holds at least that many.
// Amounts are never gathered from several slots.
func (inv *Inventory) Remove(ic ItemAndCount) error {
	if ic.Count < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, ic.Count)
	}
	if ic.Count == 0 {
		return nil
	}

	present := false
	for i := range inv.slots {
		s := &inv.slots[i]
		if s.Empty() || s.Item != ic.Item {
			continue
		}
		present = true
		switch {
		case s.Count > ic.Count:
			s.Count -= ic.Count
			return nil
		case s.Count == ic.Count:
			*s = ItemAndCount{}
			return nil
		}
	}

	return &ItemMissingError{
		Item:      ic.Item,
		Requested: ic.Count,
		Held:      inv.Count(ic.Item),
		Present:   present,
	}
}

func (inv Inventory) CanRemove(ic ItemAndCount) bool {
	scratch := inv.Clone()
	return scratch.Remove(ic) == nil
}

func (inv *Inventory) normalize() {
	for i := range inv.slots {
		if inv.slots[i].Empty() {
			inv.slots[i] = ItemAndCount{}
		}
	}
}

type inventoryJSON struct {
	StackLimit int            `json:"stack_limit"`
	Slots      []ItemAndCount `json:"slots"`
}

func (inv Inventory) MarshalJSON() ([]byte, error) {
	return json.Marshal(inventoryJSON{StackLimit: inv.stackLimit, Slots: inv.Slots()})
}

func (inv *Inventory) UnmarshalJSON(b []byte) error {
	var raw inventoryJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	restored, err := RestoreInventory(raw.Slots, raw.StackLimit)
	if err != nil {
		return err
	}
	*inv = restored
	return nil
}

// RestoreInventory rebuilds an inventory from stored slots. Zero-count slots
// are cleared; counts above the stack limit are rejected.
func RestoreInventory(slots []ItemAndCount, stackLimit int) (Inventory, error) {
	if len(slots) == 0 {
		return NewInventory(0, stackLimit), nil
	}
	inv := NewInventory(len(slots), stackLimit)
	for i, s := range slots {
		if s.Count < 0 || s.Count > inv.stackLimit {
			return Inventory{}, fmt.Errorf("%w: slot %d holds %d", ErrInvalidQuantity, i, s.Count)
		}
		inv.slots[i] = s
	}
	inv.normalize()
	return inv, nil
}
