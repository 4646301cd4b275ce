package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"craftvival/internal/adapter/repo/gorm/model"
	"craftvival/internal/app/ports"
	"craftvival/internal/domain/survival"

	"gorm.io/gorm"
)

type PlayerStateRepo struct {
	db *gorm.DB
}

func NewPlayerStateRepo(db *gorm.DB) PlayerStateRepo {
	return PlayerStateRepo{db: db}
}

func (r PlayerStateRepo) GetByPlayerID(ctx context.Context, playerID string) (survival.PlayerState, error) {
	var m model.PlayerState
	if err := getDBFromCtx(ctx, r.db).Where("player_id = ?", playerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return survival.PlayerState{}, ports.ErrNotFound
		}
		return survival.PlayerState{}, err
	}
	return decodeState(m)
}

func (r PlayerStateRepo) SaveWithVersion(ctx context.Context, state survival.PlayerState, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	slots, err := json.Marshal(state.Inventory.Slots())
	if err != nil {
		return fmt.Errorf("encode slots: %w", err)
	}
	updatedAt := state.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	if expectedVersion == 0 {
		m := model.PlayerState{
			PlayerID:   state.PlayerID,
			StackLimit: int32(state.Inventory.StackLimit()),
			Slots:      slots,
			HeldTool:   state.Hands.Tool.String(),
			Version:    state.Version,
			UpdatedAt:  updatedAt,
		}
		if err := db.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	updates := map[string]any{
		"stack_limit": int32(state.Inventory.StackLimit()),
		"slots":       slots,
		"held_tool":   state.Hands.Tool.String(),
		"version":     state.Version,
		"updated_at":  updatedAt,
	}
	res := db.Model(&model.PlayerState{}).
		Where("player_id = ? AND version = ?", state.PlayerID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func decodeState(m model.PlayerState) (survival.PlayerState, error) {
	var slots []survival.ItemAndCount
	if err := json.Unmarshal(m.Slots, &slots); err != nil {
		return survival.PlayerState{}, fmt.Errorf("decode slots for %s: %w", m.PlayerID, err)
	}
	inv, err := survival.RestoreInventory(slots, int(m.StackLimit))
	if err != nil {
		return survival.PlayerState{}, fmt.Errorf("restore inventory for %s: %w", m.PlayerID, err)
	}
	tool, err := survival.ParseItemType(m.HeldTool)
	if err != nil {
		return survival.PlayerState{}, fmt.Errorf("held tool for %s: %w", m.PlayerID, err)
	}
	return survival.PlayerState{
		PlayerID:  m.PlayerID,
		Inventory: inv,
		Hands:     survival.Hands{Tool: tool},
		Version:   m.Version,
		UpdatedAt: m.UpdatedAt,
	}, nil
}
