package action

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"craftvival/internal/app/ports"
	"craftvival/internal/app/stateview"
	"craftvival/internal/domain/survival"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

var (
	ErrInvalidRequest   = errors.New("invalid action request")
	ErrInvalidIntent    = errors.New("invalid intent")
	ErrTargetOutOfRange = errors.New("target out of range")
	ErrNotPickupable    = errors.New("object cannot be picked up")
	ErrNotHarvestable   = errors.New("object cannot be harvested")
)

type UseCase struct {
	TxManager  ports.TxManager
	StateRepo  ports.PlayerStateRepository
	ActionRepo ports.ActionExecutionRepository
	EventRepo  ports.EventRepository
	Archive    ports.EventSink
	Metrics    ports.ActionMetrics
	Book       *survival.Book

	InventorySize int
	StackLimit    int

	Now   func() time.Time
	NewID func() string
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	req.Intent.Type = survival.IntentKind(strings.ToLower(strings.TrimSpace(string(req.Intent.Type))))
	if req.PlayerID == "" || req.IdempotencyKey == "" {
		return Response{}, ErrInvalidRequest
	}
	spec, ok := intentRegistry()[req.Intent.Type]
	if !ok {
		return Response{}, fmt.Errorf("%w: unsupported intent %q", ErrInvalidRequest, req.Intent.Type)
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	newID := u.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	var out Response
	var fresh []survival.DomainEvent
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		exec, err := u.ActionRepo.GetByIdempotencyKey(txCtx, req.PlayerID, req.IdempotencyKey)
		if err == nil && exec != nil {
			out = Response{
				ResultCode: exec.Result.Outcome.ResultCode,
				Outcome:    exec.Result.Outcome,
				View:       stateview.Project(exec.Result.UpdatedState, u.Book),
				Events:     exec.Result.Events,
			}
			return nil
		}
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}

		// A stored execution wins over the retry's intent, so these checks
		// only guard new work.
		resolved, err := spec.Resolve(req.Intent)
		if err != nil {
			return err
		}
		if spec.NeedsReach && !req.Intent.InRange {
			return ErrTargetOutOfRange
		}

		state, expectedVersion, err := u.loadOrCreate(txCtx, req.PlayerID)
		if err != nil {
			return err
		}

		working := state.Clone()
		outcome, err := survival.Apply(&working, u.Book, resolved.Intent)
		if err != nil {
			return err
		}
		now := nowFn()
		working.Version = state.Version + 1
		working.UpdatedAt = now
		if err := u.StateRepo.SaveWithVersion(txCtx, working, expectedVersion); err != nil {
			return err
		}

		events := []survival.DomainEvent{buildEvent(spec, req, resolved, outcome, working, now, newID())}
		execution := ports.ActionExecutionRecord{
			PlayerID:       req.PlayerID,
			IdempotencyKey: req.IdempotencyKey,
			IntentType:     string(spec.Kind),
			Result: ports.ActionResult{
				UpdatedState: working,
				Outcome:      outcome,
				Events:       events,
			},
			AppliedAt: now,
		}
		if err := u.ActionRepo.SaveExecution(txCtx, execution); err != nil {
			return err
		}
		if err := u.EventRepo.Append(txCtx, req.PlayerID, events); err != nil {
			return err
		}

		fresh = events
		out = Response{
			ResultCode: outcome.ResultCode,
			Outcome:    outcome,
			View:       stateview.Project(working, u.Book),
			Events:     events,
		}
		return nil
	})
	if err != nil {
		u.recordError(spec.Kind, err)
		return Response{}, err
	}

	if u.Archive != nil && len(fresh) > 0 {
		if err := u.Archive.Write(req.PlayerID, fresh); err != nil {
			hlog.CtxWarnf(ctx, "archive events for %s: %v", req.PlayerID, err)
		}
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess(spec.Kind, out.ResultCode)
	}
	return out, nil
}

func (u UseCase) loadOrCreate(ctx context.Context, playerID string) (survival.PlayerState, int64, error) {
	state, err := u.StateRepo.GetByPlayerID(ctx, playerID)
	if err == nil {
		return state, state.Version, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return survival.PlayerState{}, 0, err
	}
	return survival.NewPlayerState(playerID, u.InventorySize, u.StackLimit), 0, nil
}

func (u UseCase) recordError(kind survival.IntentKind, err error) {
	if u.Metrics == nil {
		return
	}
	switch {
	case errors.Is(err, ports.ErrConflict):
		u.Metrics.RecordConflict()
	case IsRejection(err):
		u.Metrics.RecordRejected(kind)
	default:
		u.Metrics.RecordFailure()
	}
}

// IsRejection reports whether err is a refused intent rather than a fault.
func IsRejection(err error) bool {
	for _, target := range []error{
		ErrInvalidIntent,
		ErrTargetOutOfRange,
		ErrNotPickupable,
		ErrNotHarvestable,
		survival.ErrItemMissing,
		survival.ErrCraftFailed,
		survival.ErrInventoryFull,
		survival.ErrNotATool,
		survival.ErrNothingEquipped,
		survival.ErrToolRequired,
		survival.ErrInvalidQuantity,
		survival.ErrUnknownItem,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func buildEvent(spec IntentSpec, req Request, resolved ResolvedIntent, outcome survival.Outcome, state survival.PlayerState, at time.Time, id string) survival.DomainEvent {
	payload := make(map[string]any, len(resolved.Payload)+7)
	for k, v := range resolved.Payload {
		payload[k] = v
	}
	payload["player_id"] = req.PlayerID
	payload["idempotency_key"] = req.IdempotencyKey
	payload["intent"] = string(spec.Kind)
	payload["result_code"] = string(outcome.ResultCode)
	payload["consumed"] = toPayloadValue(outcome.Consumed)
	payload["produced"] = toPayloadValue(outcome.Produced)
	if outcome.Overflow != nil {
		payload["overflow"] = toPayloadValue(outcome.Overflow)
	}
	payload["state_after"] = toPayloadValue(stateview.SnapshotOf(state))
	return survival.DomainEvent{
		ID:         id,
		Type:       spec.EventType,
		OccurredAt: at,
		Payload:    payload,
	}
}

// toPayloadValue turns v into plain JSON values so payloads look the same
// whether they come from memory or from the database.
func toPayloadValue(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}
