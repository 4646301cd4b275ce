package world

import (
	"errors"
	"fmt"
	"strings"

	"craftvival/internal/domain/survival"
)

type ObjectKind string

const (
	ObjectItem         ObjectKind = "item"
	ObjectTree         ObjectKind = "tree"
	ObjectStump        ObjectKind = "stump"
	ObjectSapling      ObjectKind = "sapling"
	ObjectDeadSapling  ObjectKind = "dead_sapling"
	ObjectGrass        ObjectKind = "grass"
	ObjectPluckedGrass ObjectKind = "plucked_grass"
	ObjectGrowingTree  ObjectKind = "growing_tree"
	ObjectCampFire     ObjectKind = "camp_fire"
)

// WorldObject is something placed in the world. Item is only set for
// ObjectItem, an item lying on the ground.
type WorldObject struct {
	Kind ObjectKind
	Item survival.ItemType
}

var ErrInvalidWorldObject = errors.New("invalid world object")

func Object(kind ObjectKind) WorldObject {
	return WorldObject{Kind: kind}
}

func GroundItem(item survival.ItemType) WorldObject {
	return WorldObject{Kind: ObjectItem, Item: item}
}

func (o WorldObject) Validate() error {
	switch o.Kind {
	case ObjectItem:
		if o.Item.IsNone() || !o.Item.Valid() {
			return fmt.Errorf("%w: item %s", ErrInvalidWorldObject, o.Item)
		}
		return nil
	case ObjectTree, ObjectStump, ObjectSapling, ObjectDeadSapling, ObjectGrass,
		ObjectPluckedGrass, ObjectGrowingTree, ObjectCampFire:
		if !o.Item.IsNone() {
			return fmt.Errorf("%w: %s carries an item", ErrInvalidWorldObject, o.Kind)
		}
		return nil
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidWorldObject, o.Kind)
	}
}

func (o WorldObject) String() string {
	if o.Kind == ObjectItem {
		return string(ObjectItem) + ":" + o.Item.String()
	}
	return string(o.Kind)
}

// ParseObject reads the String form, e.g. "tree" or "item:flint".
func ParseObject(s string) (WorldObject, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	var o WorldObject
	if rest, ok := strings.CutPrefix(raw, string(ObjectItem)+":"); ok {
		item, err := survival.ParseItemType(rest)
		if err != nil {
			return WorldObject{}, fmt.Errorf("%w: %w", ErrInvalidWorldObject, err)
		}
		o = GroundItem(item)
	} else {
		o = Object(ObjectKind(raw))
	}
	if err := o.Validate(); err != nil {
		return WorldObject{}, err
	}
	return o, nil
}
