package inmemory

import (
	"sync"

	"craftvival/internal/domain/survival"
)

type Snapshot struct {
	ActionTotal    uint64            `json:"action_total"`
	ActionSuccess  uint64            `json:"action_success"`
	ActionRejected uint64            `json:"action_rejected"`
	ActionConflict uint64            `json:"action_conflict"`
	ActionFailure  uint64            `json:"action_failure"`
	ByResultCode   map[string]uint64 `json:"by_result_code"`
	ByIntent       map[string]uint64 `json:"by_intent"`
	RejectedBy     map[string]uint64 `json:"rejected_by_intent"`
}

type Recorder struct {
	mu         sync.Mutex
	success    uint64
	rejected   uint64
	conflict   uint64
	failure    uint64
	byResult   map[string]uint64
	byIntent   map[string]uint64
	rejectedBy map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byResult:   map[string]uint64{},
		byIntent:   map[string]uint64{},
		rejectedBy: map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(kind survival.IntentKind, resultCode survival.ResultCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byResult[string(resultCode)]++
	r.byIntent[string(kind)]++
}

func (r *Recorder) RecordRejected(kind survival.IntentKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.rejectedBy[string(kind)]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		ActionSuccess:  r.success,
		ActionRejected: r.rejected,
		ActionConflict: r.conflict,
		ActionFailure:  r.failure,
		ActionTotal:    r.success + r.rejected + r.conflict + r.failure,
		ByResultCode:   copyCounts(r.byResult),
		ByIntent:       copyCounts(r.byIntent),
		RejectedBy:     copyCounts(r.rejectedBy),
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}

func copyCounts(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
