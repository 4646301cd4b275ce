package survival

import "fmt"

// Intent is the closed set of player requests Apply understands.
type Intent interface {
	Kind() IntentKind
	isIntent()
}

type CraftIntent struct {
	Output ItemType
}

type EquipIntent struct {
	Tool ItemType
}

type UnequipIntent struct{}

// PickupIntent stores an item found in the world. Unless Partial is set the
// whole amount must fit or nothing is stored.
type PickupIntent struct {
	Item    ItemAndCount
	Partial bool
}

// HarvestIntent takes one unit of Yields from a world object. A non-none
// ToolRequired must be the tool in hand.
type HarvestIntent struct {
	Yields       ItemType
	ToolRequired ItemType
}

func (CraftIntent) Kind() IntentKind   { return IntentCraft }
func (EquipIntent) Kind() IntentKind   { return IntentEquip }
func (UnequipIntent) Kind() IntentKind { return IntentUnequip }
func (PickupIntent) Kind() IntentKind  { return IntentPickup }
func (HarvestIntent) Kind() IntentKind { return IntentHarvest }

func (CraftIntent) isIntent()   {}
func (EquipIntent) isIntent()   {}
func (UnequipIntent) isIntent() {}
func (PickupIntent) isIntent()  {}
func (HarvestIntent) isIntent() {}

type Outcome struct {
	ResultCode ResultCode     `json:"result_code"`
	Consumed   []ItemAndCount `json:"consumed,omitempty"`
	Produced   []ItemAndCount `json:"produced,omitempty"`
	Overflow   *Overflow      `json:"overflow,omitempty"`
}

// Apply runs one intent against the player. On error the state is unchanged.
func Apply(state *PlayerState, book *Book, in Intent) (Outcome, error) {
	switch in := in.(type) {
	case CraftIntent:
		recipe, err := Craft(&state.Inventory, book, in.Output)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{
			ResultCode: ResultOK,
			Consumed:   recipe.Needed,
			Produced:   []ItemAndCount{{Item: recipe.Produces, Count: CraftYield}},
		}, nil
	case EquipIntent:
		return Equip(state, in.Tool)
	case UnequipIntent:
		return Unequip(state)
	case PickupIntent:
		return Pickup(state, in.Item, in.Partial)
	case HarvestIntent:
		return Harvest(state, in.Yields, in.ToolRequired)
	default:
		return Outcome{}, ErrUnknownIntent
	}
}

// Equip moves one tool from the inventory into the hands. A tool already held
// goes back into the inventory; if it cannot, nothing changes.
func Equip(state *PlayerState, tool ItemType) (Outcome, error) {
	if !tool.IsTool() {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNotATool, tool)
	}
	take := ItemAndCount{Item: tool, Count: 1}
	staged := state.Inventory.Clone()
	if err := staged.Remove(take); err != nil {
		return Outcome{}, err
	}
	out := Outcome{ResultCode: ResultOK, Consumed: []ItemAndCount{take}}
	if !state.Hands.Empty() {
		back := ItemAndCount{Item: state.Hands.Tool, Count: 1}
		if overflow := staged.Add(back); overflow != nil {
			return Outcome{}, &InventoryFullError{Overflow: *overflow}
		}
		out.Produced = []ItemAndCount{back}
	}
	state.Inventory = staged
	state.Hands.Tool = tool
	return out, nil
}

func Unequip(state *PlayerState) (Outcome, error) {
	if state.Hands.Empty() {
		return Outcome{}, ErrNothingEquipped
	}
	back := ItemAndCount{Item: state.Hands.Tool, Count: 1}
	if !state.Inventory.CanAdd(back) {
		return Outcome{}, &InventoryFullError{Overflow: Overflow{Item: back.Item, Remaining: back.Count}}
	}
	state.Inventory.Add(back)
	state.Hands = Hands{}
	return Outcome{ResultCode: ResultOK, Produced: []ItemAndCount{back}}, nil
}

func Pickup(state *PlayerState, item ItemAndCount, partial bool) (Outcome, error) {
	if item.Count <= 0 || item.Item.IsNone() || !item.Item.Valid() {
		return Outcome{}, fmt.Errorf("%w: %s", ErrInvalidQuantity, item)
	}
	staged := state.Inventory.Clone()
	overflow := staged.Add(item)
	stored := item.Count
	if overflow != nil {
		stored -= overflow.Remaining
		if !partial || stored == 0 {
			return Outcome{}, &InventoryFullError{Overflow: *overflow}
		}
	}
	state.Inventory = staged
	out := Outcome{
		ResultCode: ResultOK,
		Produced:   []ItemAndCount{{Item: item.Item, Count: stored}},
		Overflow:   overflow,
	}
	if overflow != nil {
		out.ResultCode = ResultPartial
	}
	return out, nil
}

func Harvest(state *PlayerState, yields, toolRequired ItemType) (Outcome, error) {
	if yields.IsNone() || !yields.Valid() {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownItem, yields)
	}
	if !toolRequired.IsNone() && state.Hands.Tool != toolRequired {
		return Outcome{}, &ToolRequiredError{Tool: toolRequired, Held: state.Hands.Tool}
	}
	got := ItemAndCount{Item: yields, Count: HarvestYield}
	if !state.Inventory.CanAdd(got) {
		return Outcome{}, &InventoryFullError{Overflow: Overflow{Item: yields, Remaining: got.Count}}
	}
	state.Inventory.Add(got)
	return Outcome{ResultCode: ResultOK, Produced: []ItemAndCount{got}}, nil
}
