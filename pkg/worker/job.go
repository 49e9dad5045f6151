package worker

import (
	"time"

	"github.com/geofeed/validator/pkg/result"
)

// JobResult is the outcome of validating one source.
type JobResult struct {
	// Source is the source that produced this result.
	Source string

	// Result is nil when Error is set.
	Result *result.ValidationResult

	// Error is set when the source could not be opened or validated.
	Error error

	Duration time.Duration
}

// Valid reports whether the job succeeded with a valid feed.
func (r *JobResult) Valid(allowWarnings bool) bool {
	return r.Error == nil && r.Result != nil && r.Result.IsValid(allowWarnings)
}

// BatchResult aggregates the results of a batch.
type BatchResult struct {
	// Results holds one entry per source, in submission order. Entries of
	// jobs skipped after cancellation are nil.
	Results []*JobResult

	TotalJobs     int
	CompletedJobs int

	// FailedJobs counts jobs that ended with an error.
	FailedJobs int

	// TotalDuration is the sum of all job durations.
	TotalDuration time.Duration
}

// HasFailures reports whether any job ended with an error or did not run.
func (br *BatchResult) HasFailures() bool {
	return br.FailedJobs > 0 || br.CompletedJobs < br.TotalJobs
}

// AllValid reports whether every job produced a valid feed.
func (br *BatchResult) AllValid(allowWarnings bool) bool {
	if br.HasFailures() {
		return false
	}
	for _, r := range br.Results {
		if !r.Valid(allowWarnings) {
			return false
		}
	}
	return true
}

// ErrorCount returns the number of validation errors across all results.
func (br *BatchResult) ErrorCount() int {
	count := 0
	for _, r := range br.Results {
		if r != nil && r.Result != nil {
			count += r.Result.ErrorCount()
		}
	}
	return count
}

// WarningCount returns the number of validation warnings across all results.
func (br *BatchResult) WarningCount() int {
	count := 0
	for _, r := range br.Results {
		if r != nil && r.Result != nil {
			count += r.Result.WarningCount()
		}
	}
	return count
}
