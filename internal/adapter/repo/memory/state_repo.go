package memory

import (
	"context"

	"craftvival/internal/app/ports"
	"craftvival/internal/domain/survival"
)

type PlayerStateRepo struct {
	store *Store
}

func NewPlayerStateRepo(store *Store) PlayerStateRepo {
	return PlayerStateRepo{store: store}
}

func (r PlayerStateRepo) GetByPlayerID(ctx context.Context, playerID string) (survival.PlayerState, error) {
	var (
		state survival.PlayerState
		ok    bool
	)
	r.store.read(ctx, func() {
		state, ok = r.store.state[playerID]
		if ok {
			state = state.Clone()
		}
	})
	if !ok {
		return survival.PlayerState{}, ports.ErrNotFound
	}
	return state, nil
}

func (r PlayerStateRepo) SaveWithVersion(ctx context.Context, state survival.PlayerState, expectedVersion int64) error {
	return r.store.write(ctx, func() error {
		current, ok := r.store.state[state.PlayerID]
		if !ok {
			if expectedVersion != 0 {
				return ports.ErrConflict
			}
			r.store.state[state.PlayerID] = state.Clone()
			return nil
		}
		if current.Version != expectedVersion {
			return ports.ErrConflict
		}
		r.store.state[state.PlayerID] = state.Clone()
		return nil
	})
}
