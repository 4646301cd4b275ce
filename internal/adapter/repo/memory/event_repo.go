package memory

import (
	"context"
	"slices"

	"craftvival/internal/domain/survival"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, playerID string, events []survival.DomainEvent) error {
	return r.store.write(ctx, func() error {
		r.store.events[playerID] = append(r.store.events[playerID], events...)
		return nil
	})
}

// ListByPlayerID returns newest first by occurred_at, later appends first on
// ties, matching the postgres ordering. limit <= 0 means all.
func (r EventRepo) ListByPlayerID(ctx context.Context, playerID string, limit int) ([]survival.DomainEvent, error) {
	var out []survival.DomainEvent
	r.store.read(ctx, func() {
		all := r.store.events[playerID]
		out = make([]survival.DomainEvent, 0, len(all))
		for i := len(all) - 1; i >= 0; i-- {
			out = append(out, all[i])
		}
	})
	slices.SortStableFunc(out, func(a, b survival.DomainEvent) int {
		return b.OccurredAt.Compare(a.OccurredAt)
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
