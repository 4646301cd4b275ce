package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"craftvival/internal/adapter/repo/gorm/model"
	"craftvival/internal/domain/survival"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, playerID string, events []survival.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.DomainEvent, 0, len(events))
	for _, e := range events {
		b, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("encode payload of %s: %w", e.ID, err)
		}
		rows = append(rows, model.DomainEvent{
			EventID:    e.ID,
			PlayerID:   playerID,
			Type:       e.Type,
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r EventRepo) ListByPlayerID(ctx context.Context, playerID string, limit int) ([]survival.DomainEvent, error) {
	rows := []model.DomainEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.DomainEvent{PlayerID: playerID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "occurred_at"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]survival.DomainEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			if err := json.Unmarshal(row.Payload, &payload); err != nil {
				return nil, fmt.Errorf("decode payload of %s: %w", row.EventID, err)
			}
		}
		out = append(out, survival.DomainEvent{
			ID:         row.EventID,
			Type:       row.Type,
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}
