package memory

import (
	"context"
	"sync"

	"craftvival/internal/app/ports"
	"craftvival/internal/domain/survival"
)

type Store struct {
	mu        sync.RWMutex
	state     map[string]survival.PlayerState
	execution map[string]ports.ActionExecutionRecord
	events    map[string][]survival.DomainEvent
}

func NewStore() *Store {
	return &Store{
		state:     make(map[string]survival.PlayerState),
		execution: make(map[string]ports.ActionExecutionRecord),
		events:    make(map[string][]survival.DomainEvent),
	}
}

func execKey(playerID, key string) string {
	return playerID + "::" + key
}

func (s *Store) SeedState(state survival.PlayerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[state.PlayerID] = state.Clone()
}

type txKey struct{}

// read and write take the store lock unless ctx already runs inside
// RunInTx, which holds it.
func (s *Store) read(ctx context.Context, fn func()) {
	if ctx.Value(txKey{}) == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if ctx.Value(txKey{}) == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}
