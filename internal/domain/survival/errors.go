package survival

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity = errors.New("invalid item quantity")

	ErrItemMissing        = errors.New("item missing")
	ErrItemNotInInventory = errors.New("item not in inventory")
	ErrNotEnoughItems     = errors.New("not enough items in inventory")

	ErrCraftFailed        = errors.New("crafting failed")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrIngredientsMissing = errors.New("ingredients missing")
	ErrNoOutputSpace      = errors.New("no space for crafted item")

	ErrInventoryFull   = errors.New("inventory full")
	ErrNotATool        = errors.New("item is not a tool")
	ErrNothingEquipped = errors.New("no tool equipped")
	ErrToolRequired    = errors.New("tool required")
	ErrUnknownIntent   = errors.New("unknown intent")

	ErrInvalidBook = errors.New("invalid recipe book")
)

// ItemMissingError reports a failed removal. Present tells apart an item that
// is held but in too small a stack from one that is not held at all.
type ItemMissingError struct {
	Item      ItemType
	Requested int
	Held      int
	Present   bool
}

func (e *ItemMissingError) Error() string {
	if e.Present {
		return fmt.Sprintf("%s: %s (requested %d, held %d)", ErrNotEnoughItems, e.Item, e.Requested, e.Held)
	}
	return fmt.Sprintf("%s: %s", ErrItemNotInInventory, e.Item)
}

func (e *ItemMissingError) Unwrap() []error {
	if e.Present {
		return []error{ErrItemMissing, ErrNotEnoughItems}
	}
	return []error{ErrItemMissing, ErrItemNotInInventory}
}

// CraftError explains why a craft did not happen. Reason is one of
// ErrRecipeNotFound, ErrIngredientsMissing or ErrNoOutputSpace.
type CraftError struct {
	Output  ItemType
	Reason  error
	Missing []ItemAndCount
}

func (e *CraftError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: %s: %s %v", ErrCraftFailed, e.Output, e.Reason, e.Missing)
	}
	return fmt.Sprintf("%s: %s: %s", ErrCraftFailed, e.Output, e.Reason)
}

func (e *CraftError) Unwrap() []error {
	return []error{ErrCraftFailed, e.Reason}
}

type InventoryFullError struct {
	Overflow Overflow
}

func (e *InventoryFullError) Error() string {
	return fmt.Sprintf("%s: %d %s left over", ErrInventoryFull, e.Overflow.Remaining, e.Overflow.Item)
}

func (e *InventoryFullError) Unwrap() error {
	return ErrInventoryFull
}

type ToolRequiredError struct {
	Tool ItemType
	Held ItemType
}

func (e *ToolRequiredError) Error() string {
	return fmt.Sprintf("%s: %s (holding %s)", ErrToolRequired, e.Tool, e.Held)
}

func (e *ToolRequiredError) Unwrap() error {
	return ErrToolRequired
}
