package replay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"craftvival/internal/app/ports"
	"craftvival/internal/app/stateview"
	"craftvival/internal/domain/survival"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const maxLimit = 500

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	playerID := strings.TrimSpace(req.PlayerID)
	if playerID == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.OccurredFrom > 0 && req.OccurredTo > 0 && req.OccurredFrom > req.OccurredTo {
		return Response{}, fmt.Errorf("%w: occurred_from after occurred_to", ErrInvalidRequest)
	}
	limit := req.Limit
	if limit == 0 || limit > maxLimit {
		limit = maxLimit
	}

	fetch := limit
	if req.OccurredFrom > 0 || req.OccurredTo > 0 {
		fetch = 0
	}
	events, err := u.Events.ListByPlayerID(ctx, playerID, fetch)
	if err != nil {
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	if len(events) > limit {
		events = events[:limit]
	}

	latest, err := reconstruct(events)
	if err != nil {
		return Response{}, err
	}
	return Response{Events: events, LatestInventory: latest}, nil
}

func filterByTimeWindow(events []survival.DomainEvent, from, to int64) []survival.DomainEvent {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]survival.DomainEvent, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// reconstruct decodes the newest state_after snapshot. Events arrive
// newest first.
func reconstruct(events []survival.DomainEvent) (*stateview.Snapshot, error) {
	for _, evt := range events {
		raw, ok := evt.Payload["state_after"]
		if !ok || raw == nil {
			continue
		}
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("event %s: encode state_after: %w", evt.ID, err)
		}
		var snap stateview.Snapshot
		if err := json.Unmarshal(b, &snap); err != nil {
			return nil, fmt.Errorf("event %s: decode state_after: %w", evt.ID, err)
		}
		return &snap, nil
	}
	return nil, nil
}
