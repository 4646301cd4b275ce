package observe

import (
	"time"

	"craftvival/internal/app/stateview"
)

type Request struct {
	PlayerID string
}

type Response struct {
	View       stateview.View `json:"view"`
	Known      bool           `json:"known"`
	ObservedAt time.Time      `json:"observed_at"`
}
