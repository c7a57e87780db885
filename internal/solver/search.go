package solver

import (
	"time"

	"github.com/classplanner/timetable-solver/internal/catalog"
)

// varState is the three-valued assignment of one decision variable.
type varState uint8

const (
	unassigned varState = iota
	assignedTrue
	assignedFalse
)

// search holds the mutable state of one CP-SAT-style search: a trail of
// assignments for chronological backtracking, and running true/assigned
// counts per constraint so propagation only re-examines constraints
// touched by a changed variable.
type search struct {
	model *Model

	assign        []varState
	trueCount     []int
	assignedCount []int
	trail         []int

	coverageConstraint map[int64]int // requirement id -> index into model.Constraints

	deadline   time.Time
	timedOut   bool
	backtracks int
}

func newSearch(m *Model, deadline time.Time) *search {
	s := &search{
		model:         m,
		assign:        make([]varState, len(m.Vars)),
		trueCount:     make([]int, len(m.Constraints)),
		assignedCount: make([]int, len(m.Constraints)),
		deadline:      deadline,
	}

	s.coverageConstraint = make(map[int64]int, len(m.VarsByReq))
	for ci, c := range m.Constraints {
		if c.Purpose != "coverage" {
			continue
		}
		// coverage constraints were built in ascending requirement-id order,
		// one per requirement whose VarIdx slice is VarsByReq[reqID]; find
		// the owning requirement by matching the variable set's first var.
		if len(c.VarIdx) == 0 {
			continue
		}
		reqID := m.Vars[c.VarIdx[0]].ReqID
		s.coverageConstraint[reqID] = ci
	}
	return s
}

func (s *search) setVar(vi int, val varState) bool {
	if s.assign[vi] != unassigned {
		return s.assign[vi] == val
	}
	s.assign[vi] = val
	s.trail = append(s.trail, vi)
	for _, ci := range s.model.varConstraints[vi] {
		s.assignedCount[ci]++
		if val == assignedTrue {
			s.trueCount[ci]++
		}
	}
	return true
}

func (s *search) undoTo(mark int) {
	for i := len(s.trail) - 1; i >= mark; i-- {
		vi := s.trail[i]
		val := s.assign[vi]
		for _, ci := range s.model.varConstraints[vi] {
			s.assignedCount[ci]--
			if val == assignedTrue {
				s.trueCount[ci]--
			}
		}
		s.assign[vi] = unassigned
	}
	s.trail = s.trail[:mark]
}

// propagateAll checks every constraint once, regardless of whether any of
// its variables have changed. This is only needed once, before the first
// branch: a requirement whose domain is empty produces a coverage
// constraint with zero variables, which propagateFrom would never visit
// since no variable assignment ever touches it. The initial sweep can
// still force variables that an earlier constraint in iteration order
// depends on, so it is followed by a trail-driven fixpoint from index 0
// rather than trusting the single pass to have settled everything.
func (s *search) propagateAll() bool {
	for ci := range s.model.Constraints {
		if !s.propagateConstraint(ci) {
			return false
		}
	}
	return s.propagateFrom(0)
}

// propagateFrom runs unit propagation to a fixpoint over every assignment
// made since mark, including ones propagation itself forces. Returns false
// on conflict.
func (s *search) propagateFrom(mark int) bool {
	for i := mark; i < len(s.trail); i++ {
		vi := s.trail[i]
		for _, ci := range s.model.varConstraints[vi] {
			if !s.propagateConstraint(ci) {
				return false
			}
		}
	}
	return true
}

func (s *search) propagateConstraint(ci int) bool {
	c := &s.model.Constraints[ci]
	total := len(c.VarIdx)
	trueC := s.trueCount[ci]
	unassignedC := total - s.assignedCount[ci]

	switch c.Kind {
	case AtMost:
		if trueC > c.Limit {
			return false
		}
		if trueC == c.Limit && unassignedC > 0 {
			return s.forceRemaining(c.VarIdx, assignedFalse)
		}
	case Equal:
		if trueC > c.Limit {
			return false
		}
		remainingNeed := c.Limit - trueC
		if remainingNeed > unassignedC {
			return false
		}
		if remainingNeed == 0 && unassignedC > 0 {
			return s.forceRemaining(c.VarIdx, assignedFalse)
		}
		if remainingNeed == unassignedC && unassignedC > 0 {
			return s.forceRemaining(c.VarIdx, assignedTrue)
		}
	}
	return true
}

func (s *search) forceRemaining(vars []int, val varState) bool {
	for _, vj := range vars {
		if s.assign[vj] == unassigned {
			if !s.setVar(vj, val) {
				return false
			}
		}
	}
	return true
}

// pickBranch picks the unassigned variable whose requirement has the
// smallest remaining_domain / remaining_need ratio (ties go to the lower
// requirement id), taking that requirement's smallest unassigned
// (day, period id) variable. Returns done=true when every requirement's
// coverage need is already met.
func (s *search) pickBranch() (vi int, done bool) {
	reqIDs := make([]int64, 0, len(s.model.VarsByReq))
	for reqID := range s.model.VarsByReq {
		reqIDs = append(reqIDs, reqID)
	}
	sortInt64s(reqIDs)

	bestVi := -1
	bestRatio := -1.0
	anyNeed := false

	for _, reqID := range reqIDs {
		ci, ok := s.coverageConstraint[reqID]
		if !ok {
			continue
		}
		remainingNeed := s.model.Constraints[ci].Limit - s.trueCount[ci]
		if remainingNeed <= 0 {
			continue
		}
		anyNeed = true

		vars := s.model.VarsByReq[reqID]
		remainingDomain := 0
		candidate := -1
		for _, vj := range vars {
			if s.assign[vj] == unassigned {
				remainingDomain++
				if candidate == -1 {
					candidate = vj
				}
			}
		}
		if remainingDomain == 0 {
			continue
		}

		ratio := float64(remainingDomain) / float64(remainingNeed)
		if bestVi == -1 || ratio < bestRatio {
			bestRatio = ratio
			bestVi = candidate
		}
	}

	if !anyNeed {
		return 0, true
	}
	return bestVi, false
}

func sortInt64s(ids []int64) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

// run performs the recursive chronological-backtracking search. It returns
// true on success, leaving the satisfying assignment in s.assign, or false
// (check s.timedOut to distinguish Unsat from Timeout).
func (s *search) run() bool {
	if time.Now().After(s.deadline) {
		s.timedOut = true
		return false
	}

	vi, done := s.pickBranch()
	if done {
		return true
	}

	for _, val := range [2]varState{assignedTrue, assignedFalse} {
		branchMark := len(s.trail)
		if s.setVar(vi, val) && s.propagateFrom(branchMark) && s.run() {
			return true
		}
		s.undoTo(branchMark)
		if s.timedOut {
			return false
		}
		s.backtracks++
	}

	return false
}

// Search runs the search engine over a materialised model and returns the
// terminal outcome: Built → Propagating → (Branching ⇄ Propagating) →
// {Sat, Unsat, Timeout}.
func Search(pi *catalog.ProblemInstance, model *Model, budget time.Duration) Result {
	if budget <= 0 {
		budget = DefaultOptions().TimeBudget
	}

	s := newSearch(model, time.Now().Add(budget))
	ok := s.propagateAll() && s.run()

	switch {
	case ok:
		return Result{
			Outcome:    OutcomeSat,
			Entries:    Extract(pi, model, s.assign),
			Backtracks: s.backtracks,
		}
	case s.timedOut:
		return Result{Outcome: OutcomeTimeout, Backtracks: s.backtracks}
	default:
		return Result{Outcome: OutcomeUnsat, Backtracks: s.backtracks}
	}
}
