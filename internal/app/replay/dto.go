package replay

import (
	"craftvival/internal/app/stateview"
	"craftvival/internal/domain/survival"
)

type Request struct {
	PlayerID     string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	Events          []survival.DomainEvent `json:"events"`
	LatestInventory *stateview.Snapshot    `json:"latest_inventory,omitempty"`
}
