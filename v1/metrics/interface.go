package metrics

import "time"

// Collector is the instrumentation contract used by the search service.
// *Metrics implements it.
type Collector interface {
	// RecordPredicate counts one built predicate and observes its number of conditions.
	// conditions is ignored unless outcome is OutcomeSuccess.
	RecordPredicate(mode, outcome string, conditions int)

	// RecordSearch counts one search and observes its duration since start.
	RecordSearch(mode, outcome string, start time.Time)
}

// Outcome label values.
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidArgument = "invalid_argument"
	OutcomeIllegalState    = "illegal_state"
	OutcomeError           = "error"
)

var _ Collector = (*Metrics)(nil)
