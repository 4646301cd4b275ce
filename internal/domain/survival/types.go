package survival

import "time"

type IntentKind string

const (
	IntentCraft   IntentKind = "craft"
	IntentEquip   IntentKind = "equip"
	IntentUnequip IntentKind = "unequip"
	IntentPickup  IntentKind = "pickup"
	IntentHarvest IntentKind = "harvest"
)

type ResultCode string

const (
	ResultOK      ResultCode = "OK"
	ResultPartial ResultCode = "PARTIAL"
)

type DomainEvent struct {
	ID         string         `json:"id,omitempty"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

const (
	EventItemCrafted     = "item_crafted"
	EventToolEquipped    = "tool_equipped"
	EventToolUnequipped  = "tool_unequipped"
	EventItemPickedUp    = "item_picked_up"
	EventObjectHarvested = "object_harvested"
)
