package action

import (
	"context"
	"errors"
	"testing"
	"time"

	"craftvival/internal/app/ports"
	"craftvival/internal/domain/survival"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubStateRepo struct {
	byPlayer map[string]survival.PlayerState
}

func (r *stubStateRepo) GetByPlayerID(_ context.Context, playerID string) (survival.PlayerState, error) {
	state, ok := r.byPlayer[playerID]
	if !ok {
		return survival.PlayerState{}, ports.ErrNotFound
	}
	return state.Clone(), nil
}

func (r *stubStateRepo) SaveWithVersion(_ context.Context, state survival.PlayerState, expectedVersion int64) error {
	current, ok := r.byPlayer[state.PlayerID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.byPlayer[state.PlayerID] = state.Clone()
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.byPlayer[state.PlayerID] = state.Clone()
	return nil
}

type conflictOnSaveStateRepo struct {
	stubStateRepo
}

func (r *conflictOnSaveStateRepo) SaveWithVersion(_ context.Context, _ survival.PlayerState, _ int64) error {
	return ports.ErrConflict
}

type stubActionRepo struct {
	byKey map[string]ports.ActionExecutionRecord
}

func (r *stubActionRepo) GetByIdempotencyKey(_ context.Context, playerID, key string) (*ports.ActionExecutionRecord, error) {
	record, ok := r.byKey[playerID+"|"+key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := record
	return &copy, nil
}

func (r *stubActionRepo) SaveExecution(_ context.Context, execution ports.ActionExecutionRecord) error {
	r.byKey[execution.PlayerID+"|"+execution.IdempotencyKey] = execution
	return nil
}

type errorActionRepo struct {
	err error
}

func (r *errorActionRepo) GetByIdempotencyKey(_ context.Context, _, _ string) (*ports.ActionExecutionRecord, error) {
	return nil, r.err
}

func (r *errorActionRepo) SaveExecution(_ context.Context, _ ports.ActionExecutionRecord) error {
	return r.err
}

type stubEventRepo struct {
	events []survival.DomainEvent
}

func (r *stubEventRepo) Append(_ context.Context, _ string, events []survival.DomainEvent) error {
	r.events = append(r.events, events...)
	return nil
}

func (r *stubEventRepo) ListByPlayerID(_ context.Context, _ string, limit int) ([]survival.DomainEvent, error) {
	if limit <= 0 || limit > len(r.events) {
		limit = len(r.events)
	}
	out := make([]survival.DomainEvent, limit)
	copy(out, r.events[:limit])
	return out, nil
}

type stubArchive struct {
	written []survival.DomainEvent
	err     error
}

func (a *stubArchive) Write(_ string, events []survival.DomainEvent) error {
	if a.err != nil {
		return a.err
	}
	a.written = append(a.written, events...)
	return nil
}

type stubActionMetrics struct {
	successCalls  int
	rejectedCalls int
	conflictCalls int
	failureCalls  int
	lastKind      survival.IntentKind
	lastResult    survival.ResultCode
}

func (m *stubActionMetrics) RecordSuccess(kind survival.IntentKind, resultCode survival.ResultCode) {
	m.successCalls++
	m.lastKind = kind
	m.lastResult = resultCode
}

func (m *stubActionMetrics) RecordRejected(kind survival.IntentKind) {
	m.rejectedCalls++
	m.lastKind = kind
}

func (m *stubActionMetrics) RecordConflict() {
	m.conflictCalls++
}

func (m *stubActionMetrics) RecordFailure() {
	m.failureCalls++
}

type fixture struct {
	uc      UseCase
	states  *stubStateRepo
	actions *stubActionRepo
	events  *stubEventRepo
	archive *stubArchive
	metrics *stubActionMetrics
}

func newFixture(t *testing.T, seed ...survival.PlayerState) fixture {
	t.Helper()
	book, err := survival.NewBook(survival.DefaultRecipes())
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	f := fixture{
		states:  &stubStateRepo{byPlayer: map[string]survival.PlayerState{}},
		actions: &stubActionRepo{byKey: map[string]ports.ActionExecutionRecord{}},
		events:  &stubEventRepo{},
		archive: &stubArchive{},
		metrics: &stubActionMetrics{},
	}
	for _, s := range seed {
		f.states.byPlayer[s.PlayerID] = s
	}
	ids := 0
	f.uc = UseCase{
		TxManager:     stubTxManager{},
		StateRepo:     f.states,
		ActionRepo:    f.actions,
		EventRepo:     f.events,
		Archive:       f.archive,
		Metrics:       f.metrics,
		Book:          book,
		InventorySize: 5,
		StackLimit:    5,
		Now:           func() time.Time { return time.Unix(1700000000, 0) },
		NewID: func() string {
			ids++
			return "evt-" + string(rune('0'+ids))
		},
	}
	return f
}

func seededPlayer(t *testing.T, id string, items ...survival.ItemAndCount) survival.PlayerState {
	t.Helper()
	p := survival.NewPlayerState(id, 5, 5)
	for _, ic := range items {
		if overflow := p.Inventory.Add(ic); overflow != nil {
			t.Fatalf("seed %s overflowed", ic)
		}
	}
	p.Version = 1
	return p
}

var errBoom = errors.New("boom")
