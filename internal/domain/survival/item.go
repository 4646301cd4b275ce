package survival

import (
	"errors"
	"fmt"
	"strings"
)

type ItemKind string

const (
	KindNone  ItemKind = ""
	KindTool  ItemKind = "tool"
	KindFlint ItemKind = "flint"
	KindTwig  ItemKind = "twig"
	KindGrass ItemKind = "grass"
	KindWood  ItemKind = "wood"
	KindFire  ItemKind = "fire"
)

type ToolKind string

const (
	ToolAxe ToolKind = "axe"
)

var ErrUnknownItem = errors.New("unknown item type")

// ItemType identifies a kind of item. Two values are the same kind when both
// the kind tag and the embedded tool kind match, so ItemType is usable as a map
// key and with ==.
type ItemType struct {
	Kind ItemKind
	Tool ToolKind
}

var None = ItemType{}

var (
	Flint = Item(KindFlint)
	Twig  = Item(KindTwig)
	Grass = Item(KindGrass)
	Wood  = Item(KindWood)
	Fire  = Item(KindFire)
	Axe   = Tool(ToolAxe)
)

func Item(kind ItemKind) ItemType {
	return ItemType{Kind: kind}
}

func Tool(tool ToolKind) ItemType {
	return ItemType{Kind: KindTool, Tool: tool}
}

func (t ItemType) IsNone() bool {
	return t == None
}

func (t ItemType) IsTool() bool {
	return t.Kind == KindTool
}

func (t ItemType) Valid() bool {
	switch t.Kind {
	case KindNone:
		return t.Tool == ""
	case KindTool:
		return t.Tool == ToolAxe
	case KindFlint, KindTwig, KindGrass, KindWood, KindFire:
		return t.Tool == ""
	default:
		return false
	}
}

func (t ItemType) String() string {
	switch t.Kind {
	case KindNone:
		return "none"
	case KindTool:
		return string(KindTool) + ":" + string(t.Tool)
	default:
		return string(t.Kind)
	}
}

func ParseItemType(s string) (ItemType, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	var out ItemType
	switch {
	case raw == "" || raw == "none":
		return None, nil
	case strings.HasPrefix(raw, string(KindTool)+":"):
		out = Tool(ToolKind(strings.TrimPrefix(raw, string(KindTool)+":")))
	default:
		out = Item(ItemKind(raw))
	}
	if !out.Valid() {
		return None, fmt.Errorf("%w: %q", ErrUnknownItem, s)
	}
	return out, nil
}

func (t ItemType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ItemType) UnmarshalText(b []byte) error {
	parsed, err := ParseItemType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type ItemAndCount struct {
	Item  ItemType `json:"item"`
	Count int      `json:"count"`
}

func (ic ItemAndCount) String() string {
	return fmt.Sprintf("%s x%d", ic.Item, ic.Count)
}

// Empty reports whether a slot holding ic counts as free. A zero count makes a
// slot empty whatever its item tag says.
func (ic ItemAndCount) Empty() bool {
	return ic.Count <= 0 || ic.Item.IsNone()
}
