package monitor

import (
	"go.uber.org/atomic"
)

type EvaluatorErrors struct {
	DbSnapshotSave   atomic.Uint64 `json:"db_snapshot_save"`
	DbInteractionGet atomic.Uint64 `json:"db_interaction_get"`
}

type EvaluatorState struct {
	StartTimestamp      atomic.Int64  `json:"start_timestamp"`
	UpForSeconds        atomic.Uint64 `json:"up_for_seconds"`
	LastEvaluatedHeight atomic.Uint64 `json:"last_evaluated_height"`

	InteractionsEvaluated atomic.Uint64 `json:"interactions_evaluated"`
	InteractionsRejected  atomic.Uint64 `json:"interactions_rejected"`
	SnapshotsSaved        atomic.Uint64 `json:"snapshots_saved"`

	AverageInteractionsEvaluatedPerMinute atomic.Float64 `json:"average_interactions_evaluated_per_minute"`
}

type GatewayState struct {
	SnapshotsLoaded atomic.Uint64 `json:"snapshots_loaded"`
	QuotesServed    atomic.Uint64 `json:"quotes_served"`
}

type Report struct {
	Evaluator struct {
		State  EvaluatorState  `json:"state"`
		Errors EvaluatorErrors `json:"errors"`
	} `json:"evaluator"`
	Gateway struct {
		State GatewayState `json:"state"`
	} `json:"gateway"`
}
