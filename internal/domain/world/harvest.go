package world

import "craftvival/internal/domain/survival"

type Harvestable struct {
	Yields       survival.ItemType
	ToolRequired survival.ItemType
	Leaves       WorldObject
}

var harvestDefs = map[ObjectKind]Harvestable{
	ObjectSapling: {
		Yields: survival.Twig,
		Leaves: Object(ObjectDeadSapling),
	},
	ObjectGrass: {
		Yields: survival.Grass,
		Leaves: Object(ObjectPluckedGrass),
	},
	ObjectTree: {
		Yields:       survival.Wood,
		ToolRequired: survival.Axe,
		Leaves:       Object(ObjectStump),
	},
}

func HarvestFor(o WorldObject) (Harvestable, bool) {
	h, ok := harvestDefs[o.Kind]
	return h, ok
}

// PickupFor is what picking up o stores: the item lying there, one unit.
func PickupFor(o WorldObject) (survival.ItemAndCount, bool) {
	if o.Kind != ObjectItem || o.Item.IsNone() {
		return survival.ItemAndCount{}, false
	}
	return survival.ItemAndCount{Item: o.Item, Count: 1}, true
}
