package action

import (
	"fmt"

	"craftvival/internal/domain/survival"
	"craftvival/internal/domain/world"
)

type IntentSpec struct {
	Kind       survival.IntentKind
	EventType  string
	NeedsReach bool
	Resolve    func(in IntentRequest) (ResolvedIntent, error)
}

type ResolvedIntent struct {
	Intent  survival.Intent
	Payload map[string]any
}

func intentRegistry() map[survival.IntentKind]IntentSpec {
	return map[survival.IntentKind]IntentSpec{
		survival.IntentCraft: {
			Kind:      survival.IntentCraft,
			EventType: survival.EventItemCrafted,
			Resolve:   resolveCraft,
		},
		survival.IntentEquip: {
			Kind:      survival.IntentEquip,
			EventType: survival.EventToolEquipped,
			Resolve:   resolveEquip,
		},
		survival.IntentUnequip: {
			Kind:      survival.IntentUnequip,
			EventType: survival.EventToolUnequipped,
			Resolve: func(IntentRequest) (ResolvedIntent, error) {
				return ResolvedIntent{Intent: survival.UnequipIntent{}, Payload: map[string]any{}}, nil
			},
		},
		survival.IntentPickup: {
			Kind:       survival.IntentPickup,
			EventType:  survival.EventItemPickedUp,
			NeedsReach: true,
			Resolve:    resolvePickup,
		},
		survival.IntentHarvest: {
			Kind:       survival.IntentHarvest,
			EventType:  survival.EventObjectHarvested,
			NeedsReach: true,
			Resolve:    resolveHarvest,
		},
	}
}

func resolveCraft(in IntentRequest) (ResolvedIntent, error) {
	output, err := parseRealItem(in.Item)
	if err != nil {
		return ResolvedIntent{}, err
	}
	return ResolvedIntent{
		Intent:  survival.CraftIntent{Output: output},
		Payload: map[string]any{"output": output.String()},
	}, nil
}

func resolveEquip(in IntentRequest) (ResolvedIntent, error) {
	raw := in.Tool
	if raw == "" {
		raw = in.Item
	}
	tool, err := parseRealItem(raw)
	if err != nil {
		return ResolvedIntent{}, err
	}
	if !tool.IsTool() {
		return ResolvedIntent{}, fmt.Errorf("%w: %s is not a tool", ErrInvalidIntent, tool)
	}
	return ResolvedIntent{
		Intent:  survival.EquipIntent{Tool: tool},
		Payload: map[string]any{"tool": tool.String()},
	}, nil
}

func resolvePickup(in IntentRequest) (ResolvedIntent, error) {
	if in.Count < 0 {
		return ResolvedIntent{}, fmt.Errorf("%w: count %d", ErrInvalidIntent, in.Count)
	}
	payload := map[string]any{}
	var item survival.ItemAndCount
	if in.Object != "" {
		// A ground object is a single unit.
		if in.Count > 1 {
			return ResolvedIntent{}, fmt.Errorf("%w: object pickup count %d", ErrInvalidIntent, in.Count)
		}
		obj, err := world.ParseObject(in.Object)
		if err != nil {
			return ResolvedIntent{}, fmt.Errorf("%w: %w", ErrInvalidIntent, err)
		}
		found, ok := world.PickupFor(obj)
		if !ok {
			return ResolvedIntent{}, fmt.Errorf("%w: %s", ErrNotPickupable, obj)
		}
		item = found
		payload["object"] = obj.String()
	} else {
		parsed, err := parseRealItem(in.Item)
		if err != nil {
			return ResolvedIntent{}, err
		}
		item = survival.ItemAndCount{Item: parsed, Count: 1}
		if in.Count > 0 {
			item.Count = in.Count
		}
	}
	payload["item"] = item.Item.String()
	payload["count"] = item.Count
	payload["partial"] = in.Partial
	return ResolvedIntent{
		Intent:  survival.PickupIntent{Item: item, Partial: in.Partial},
		Payload: payload,
	}, nil
}

func resolveHarvest(in IntentRequest) (ResolvedIntent, error) {
	obj, err := world.ParseObject(in.Object)
	if err != nil {
		return ResolvedIntent{}, fmt.Errorf("%w: %w", ErrInvalidIntent, err)
	}
	h, ok := world.HarvestFor(obj)
	if !ok {
		return ResolvedIntent{}, fmt.Errorf("%w: %s", ErrNotHarvestable, obj)
	}
	return ResolvedIntent{
		Intent: survival.HarvestIntent{Yields: h.Yields, ToolRequired: h.ToolRequired},
		Payload: map[string]any{
			"object": obj.String(),
			"leaves": h.Leaves.String(),
		},
	}, nil
}

func parseRealItem(raw string) (survival.ItemType, error) {
	item, err := survival.ParseItemType(raw)
	if err != nil {
		return survival.None, fmt.Errorf("%w: %w", ErrInvalidIntent, err)
	}
	if item.IsNone() {
		return survival.None, fmt.Errorf("%w: item is required", ErrInvalidIntent)
	}
	return item, nil
}
