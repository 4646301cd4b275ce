package action

import (
	"craftvival/internal/app/stateview"
	"craftvival/internal/domain/survival"
)

type IntentRequest struct {
	Type    survival.IntentKind
	Item    string
	Count   int
	Tool    string
	Object  string
	Partial bool
	InRange bool
}

type Request struct {
	PlayerID       string
	IdempotencyKey string
	Intent         IntentRequest
}

type Response struct {
	ResultCode survival.ResultCode    `json:"result_code"`
	Outcome    survival.Outcome       `json:"outcome"`
	View       stateview.View         `json:"view"`
	Events     []survival.DomainEvent `json:"events"`
}
