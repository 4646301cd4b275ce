package stateview

import "craftvival/internal/domain/survival"

type Slot struct {
	Index int               `json:"index"`
	Item  survival.ItemType `json:"item"`
	Count int               `json:"count"`
}

type RecipeView struct {
	Produces  survival.ItemType       `json:"produces"`
	Needed    []survival.ItemAndCount `json:"needed"`
	Craftable bool                    `json:"craftable"`
}

type View struct {
	PlayerID   string              `json:"player_id"`
	Version    int64               `json:"version"`
	StackLimit int                 `json:"stack_limit"`
	FreeSlots  int                 `json:"free_slots"`
	Slots      []Slot              `json:"slots"`
	Totals     map[string]int      `json:"totals"`
	Equipped   survival.ItemType   `json:"equipped"`
	Craftable  []survival.ItemType `json:"craftable"`
	Recipes    []RecipeView        `json:"recipes"`
}

// Project is the read-only picture of a player shown after every mutation.
// It depends only on the state and the book.
func Project(state survival.PlayerState, book *survival.Book) View {
	inv := state.Inventory
	v := View{
		PlayerID:   state.PlayerID,
		Version:    state.Version,
		StackLimit: inv.StackLimit(),
		FreeSlots:  inv.FreeSlots(),
		Slots:      make([]Slot, 0, inv.Size()),
		Totals:     map[string]int{},
		Equipped:   state.Hands.Tool,
		Craftable:  []survival.ItemType{},
		Recipes:    []RecipeView{},
	}
	for i, s := range inv.Slots() {
		v.Slots = append(v.Slots, Slot{Index: i, Item: s.Item, Count: s.Count})
		if !s.Empty() {
			v.Totals[s.Item.String()] += s.Count
		}
	}
	for _, r := range book.Recipes() {
		ok := survival.CanCraft(inv, r)
		if ok {
			v.Craftable = append(v.Craftable, r.Produces)
		}
		v.Recipes = append(v.Recipes, RecipeView{Produces: r.Produces, Needed: r.Needed, Craftable: ok})
	}
	return v
}

// Snapshot is the inventory part of a player as recorded in event payloads.
type Snapshot struct {
	Inventory survival.Inventory `json:"inventory"`
	Hands     survival.Hands     `json:"hands"`
}

func SnapshotOf(state survival.PlayerState) Snapshot {
	return Snapshot{Inventory: state.Inventory.Clone(), Hands: state.Hands}
}
