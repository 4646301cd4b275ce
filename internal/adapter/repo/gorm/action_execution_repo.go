package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"craftvival/internal/adapter/repo/gorm/model"
	"craftvival/internal/app/ports"
	"craftvival/internal/domain/survival"

	"gorm.io/gorm"
)

type ActionExecutionRepo struct {
	db *gorm.DB
}

func NewActionExecutionRepo(db *gorm.DB) ActionExecutionRepo {
	return ActionExecutionRepo{db: db}
}

func (r ActionExecutionRepo) GetByIdempotencyKey(ctx context.Context, playerID, key string) (*ports.ActionExecutionRecord, error) {
	var m model.ActionExecution
	err := getDBFromCtx(ctx, r.db).
		Where(&model.ActionExecution{PlayerID: playerID, IdempotencyKey: key}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	result, err := decodeResult(m)
	if err != nil {
		return nil, err
	}
	return &ports.ActionExecutionRecord{
		PlayerID:       m.PlayerID,
		IdempotencyKey: m.IdempotencyKey,
		IntentType:     m.IntentType,
		Result:         result,
		AppliedAt:      m.AppliedAt,
	}, nil
}

func (r ActionExecutionRepo) SaveExecution(ctx context.Context, execution ports.ActionExecutionRecord) error {
	stateJSON, err := json.Marshal(execution.Result.UpdatedState)
	if err != nil {
		return fmt.Errorf("encode updated state: %w", err)
	}
	outcomeJSON, err := json.Marshal(execution.Result.Outcome)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	eventsJSON, err := json.Marshal(execution.Result.Events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	m := model.ActionExecution{
		PlayerID:       execution.PlayerID,
		IdempotencyKey: execution.IdempotencyKey,
		IntentType:     execution.IntentType,
		ResultCode:     string(execution.Result.Outcome.ResultCode),
		Outcome:        outcomeJSON,
		UpdatedState:   stateJSON,
		Events:         eventsJSON,
		AppliedAt:      execution.AppliedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func decodeResult(m model.ActionExecution) (ports.ActionResult, error) {
	var (
		state   survival.PlayerState
		outcome survival.Outcome
		events  []survival.DomainEvent
	)
	if err := json.Unmarshal(m.UpdatedState, &state); err != nil {
		return ports.ActionResult{}, fmt.Errorf("decode updated state: %w", err)
	}
	if err := json.Unmarshal(m.Outcome, &outcome); err != nil {
		return ports.ActionResult{}, fmt.Errorf("decode outcome: %w", err)
	}
	if err := json.Unmarshal(m.Events, &events); err != nil {
		return ports.ActionResult{}, fmt.Errorf("decode events: %w", err)
	}
	return ports.ActionResult{UpdatedState: state, Outcome: outcome, Events: events}, nil
}
