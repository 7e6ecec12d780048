package pipeline

// Stage names a state of a run. Runs move strictly forward through
// received, extracting, matching, optimizing and done; failed is
// terminal from any working stage.
type Stage string

//nolint:revive
const (
	StageReceived   Stage = "received"
	StageExtracting Stage = "extracting"
	StageMatching   Stage = "matching"
	StageOptimizing Stage = "optimizing"
	StageDone       Stage = "done"
	StageFailed     Stage = "failed"
)

// ProgressEvent reports a run crossing into a stage.
type ProgressEvent struct {
	RunID   string `json:"run_id"`
	Stage   Stage  `json:"stage"`
	Message string `json:"message,omitempty"`
}

// ProgressFunc receives progress events for one run, in order, from the
// run's own goroutine.
type ProgressFunc func(ProgressEvent)
