package models

// Job outcome kinds reported in a JobSummary
const (
	OutcomeFunded    = "funded"
	OutcomeCancelled = "cancelled"
	OutcomeExpired   = "expired"
	OutcomeRefunded  = "refunded"
	OutcomeDisputed  = "disputed"
	OutcomeReleased  = "released"
	OutcomeSkipped   = "skipped"
	OutcomeRetry     = "retry"
	OutcomeFailed    = "failed"
)

// JobResults breaks down a reconciliation run by outcome kind
type JobResults struct {
	Counts map[string]int `json:"counts"`
	Errors []string       `json:"errors"`
}

// JobSummary is the wire response of every reconciliation job entry point
type JobSummary struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Processed int        `json:"processed"`
	Results   JobResults `json:"results"`
}

// NewJobSummary returns an empty summary for a job run
func NewJobSummary(message string) *JobSummary {
	return &JobSummary{
		Success: true,
		Message: message,
		Results: JobResults{Counts: make(map[string]int)},
	}
}

// Record counts one candidate's outcome
func (s *JobSummary) Record(outcome string) {
	s.Processed++
	s.Results.Counts[outcome]++
}

// RecordError counts a failed candidate and keeps its error for the response
func (s *JobSummary) RecordError(outcome string, err error) {
	s.Record(outcome)
	s.Results.Errors = append(s.Results.Errors, err.Error())
}
