package ports

import "time"

// Contract for recording matching and audit outcomes for observability.
// Implementations must be safe for concurrent use.
type MatchRecorder interface {
	// Record one validation call and the error kinds it produced.
	RecordValidation(valid bool, kinds []string)
	// Record the duration of a batch over n orders.
	RecordBatch(orders int, d time.Duration)
	// Record the status of one audit requirement.
	RecordCompliance(requirementID string, status string)
}

// NopRecorder discards every observation.
type NopRecorder struct{}

func (NopRecorder) RecordValidation(bool, []string) {}
func (NopRecorder) RecordBatch(int, time.Duration)  {}
func (NopRecorder) RecordCompliance(string, string) {}
