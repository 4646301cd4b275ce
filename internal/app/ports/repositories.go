package ports

import (
	"context"
	"time"

	"craftvival/internal/domain/survival"
)

type ActionResult struct {
	UpdatedState survival.PlayerState
	Outcome      survival.Outcome
	Events       []survival.DomainEvent
}

type ActionExecutionRecord struct {
	PlayerID       string
	IdempotencyKey string
	IntentType     string
	Result         ActionResult
	AppliedAt      time.Time
}

type PlayerStateRepository interface {
	GetByPlayerID(ctx context.Context, playerID string) (survival.PlayerState, error)
	SaveWithVersion(ctx context.Context, state survival.PlayerState, expectedVersion int64) error
}

type ActionExecutionRepository interface {
	GetByIdempotencyKey(ctx context.Context, playerID, key string) (*ActionExecutionRecord, error)
	SaveExecution(ctx context.Context, execution ActionExecutionRecord) error
}

type EventRepository interface {
	Append(ctx context.Context, playerID string, events []survival.DomainEvent) error
	ListByPlayerID(ctx context.Context, playerID string, limit int) ([]survival.DomainEvent, error)
}

// EventSink receives committed events outside the transaction, e.g. an archive.
type EventSink interface {
	Write(playerID string, events []survival.DomainEvent) error
}
