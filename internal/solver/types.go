package solver

import "time"

// Days is the fixed Monday..Friday weekday universe.
var Days = []int{1, 2, 3, 4, 5}

// Options configures one solve. room_unresolved_policy is not here; it
// belongs to the catalog loader.
type Options struct {
	// TimeBudget is the hard wall-clock cap on search. Zero means the
	// default of 10 seconds.
	TimeBudget time.Duration

	// FailFastOnDomain skips the search entirely when any requirement's
	// domain is smaller than its required hours.
	FailFastOnDomain bool

	// EnforceTeacherSubject turns catalog.TeacherSubject rows into an
	// extra per-requirement domain filter: a requirement whose teacher is
	// not qualified for its subject gets an empty domain. Off by default;
	// see DESIGN.md Open Question 3.
	EnforceTeacherSubject bool
}

// DefaultOptions returns the solver's baseline defaults.
func DefaultOptions() Options {
	return Options{
		TimeBudget:       10 * time.Second,
		FailFastOnDomain: true,
	}
}

// Cell is one (weekday, period) slot a requirement may occupy.
type Cell struct {
	Day      int
	PeriodID int64
}

// ScheduledEntry is one solved lesson.
type ScheduledEntry struct {
	ClassGroupID int64
	SubjectID    int64
	TeacherID    *int64
	RoomID       *int64
	PeriodID     int64
	Weekday      int
}

// Outcome is the terminal state of a solve.
type Outcome int

const (
	OutcomeSat Outcome = iota
	OutcomeUnsat
	OutcomeTimeout
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSat:
		return "sat"
	case OutcomeUnsat:
		return "unsat"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Result is the full output of a solve attempt.
type Result struct {
	Outcome    Outcome
	Entries    []ScheduledEntry
	Backtracks int
}
