package ports

import "craftvival/internal/domain/survival"

type ActionMetrics interface {
	RecordSuccess(kind survival.IntentKind, resultCode survival.ResultCode)
	RecordRejected(kind survival.IntentKind)
	RecordConflict()
	RecordFailure()
}
