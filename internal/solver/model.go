package solver

import (
	"sort"

	"github.com/classplanner/timetable-solver/internal/catalog"
)

// ConstraintKind distinguishes an equality (coverage) constraint from an
// at-most cardinality constraint; both are represented as a limit over a
// set of boolean variables.
type ConstraintKind int

const (
	// AtMost means sum(vars) <= Limit.
	AtMost ConstraintKind = iota
	// Equal means sum(vars) == Limit.
	Equal
)

// Constraint is one linear cardinality constraint over decision variables.
type Constraint struct {
	Kind    ConstraintKind
	Limit   int
	VarIdx  []int
	Purpose string // for diagnostics only: "coverage", "one_per_day", "group", "teacher", "room", "teacher_cap"
}

// cellKey identifies one decision variable.
type cellKey struct {
	ReqID    int64
	Day      int
	PeriodID int64
}

// Model is the materialised CSP: decision variables plus every constraint
// family.
type Model struct {
	pi *catalog.ProblemInstance

	// Vars[i] is the (requirement, day, period) triple decision variable i
	// represents. VarsByReq groups variable indices per requirement in the
	// same ascending order, matching the deterministic iteration rule below.
	Vars      []cellKey
	varIndex  map[cellKey]int
	VarsByReq map[int64][]int

	Constraints []Constraint

	// varConstraints[i] lists every constraint index variable i appears in,
	// built once so propagation only visits constraints touched by a
	// changed variable.
	varConstraints [][]int
}

// NewModel materialises decision variables and all six constraint families
// over the given domains. Requirements, days and periods are iterated in
// ascending id order throughout, so construction is fully deterministic.
func NewModel(pi *catalog.ProblemInstance, domains map[int64]Domain) *Model {
	m := &Model{
		pi:        pi,
		varIndex:  make(map[cellKey]int),
		VarsByReq: make(map[int64][]int),
	}

	requirements := append([]catalog.Requirement(nil), pi.Requirements...)
	sort.Slice(requirements, func(i, j int) bool { return requirements[i].ID < requirements[j].ID })

	for _, req := range requirements {
		domain := domains[req.ID]
		cells := append(Domain(nil), domain...)
		sort.Slice(cells, func(i, j int) bool {
			if cells[i].Day != cells[j].Day {
				return cells[i].Day < cells[j].Day
			}
			return cells[i].PeriodID < cells[j].PeriodID
		})

		for _, cell := range cells {
			key := cellKey{ReqID: req.ID, Day: cell.Day, PeriodID: cell.PeriodID}
			idx := len(m.Vars)
			m.Vars = append(m.Vars, key)
			m.varIndex[key] = idx
			m.VarsByReq[req.ID] = append(m.VarsByReq[req.ID], idx)
		}
	}

	m.buildConstraints(requirements)

	m.varConstraints = make([][]int, len(m.Vars))
	for ci, c := range m.Constraints {
		for _, vi := range c.VarIdx {
			m.varConstraints[vi] = append(m.varConstraints[vi], ci)
		}
	}

	return m
}

func (m *Model) buildConstraints(requirements []catalog.Requirement) {
	// 1. Coverage: Σ x[a,d,p] == a.hours
	for _, req := range requirements {
		vars := m.VarsByReq[req.ID]
		m.Constraints = append(m.Constraints, Constraint{
			Kind: Equal, Limit: req.Hours, VarIdx: append([]int(nil), vars...), Purpose: "coverage",
		})
	}

	// 2. One-lesson-per-day-per-requirement: Σ_p x[a,d,p] <= 1
	for _, req := range requirements {
		byDay := make(map[int][]int)
		for _, vi := range m.VarsByReq[req.ID] {
			d := m.Vars[vi].Day
			byDay[d] = append(byDay[d], vi)
		}
		for _, day := range Days {
			vars, ok := byDay[day]
			if !ok || len(vars) < 2 {
				continue
			}
			m.Constraints = append(m.Constraints, Constraint{
				Kind: AtMost, Limit: 1, VarIdx: vars, Purpose: "one_per_day",
			})
		}
	}

	// 3-5: group / teacher / room exclusion, bucketed by (day, period, resource)
	type bucketKey struct {
		Day      int
		PeriodID int64
		Resource int64
	}
	groupBuckets := make(map[bucketKey][]int)
	teacherBuckets := make(map[bucketKey][]int)
	roomBuckets := make(map[bucketKey][]int)

	for _, req := range requirements {
		vars := m.VarsByReq[req.ID]
		for _, vi := range vars {
			cell := m.Vars[vi]
			gk := bucketKey{Day: cell.Day, PeriodID: cell.PeriodID, Resource: req.ClassGroupID}
			groupBuckets[gk] = append(groupBuckets[gk], vi)

			if req.TeacherID != nil {
				tk := bucketKey{Day: cell.Day, PeriodID: cell.PeriodID, Resource: *req.TeacherID}
				teacherBuckets[tk] = append(teacherBuckets[tk], vi)
			}

			if req.RoomID != nil {
				rk := bucketKey{Day: cell.Day, PeriodID: cell.PeriodID, Resource: *req.RoomID}
				roomBuckets[rk] = append(roomBuckets[rk], vi)
			}
		}
	}

	addExclusion := func(buckets map[bucketKey][]int, purpose string) {
		keys := make([]bucketKey, 0, len(buckets))
		for k := range buckets {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].Day != keys[j].Day {
				return keys[i].Day < keys[j].Day
			}
			if keys[i].PeriodID != keys[j].PeriodID {
				return keys[i].PeriodID < keys[j].PeriodID
			}
			return keys[i].Resource < keys[j].Resource
		})
		for _, k := range keys {
			vars := buckets[k]
			if len(vars) < 2 {
				continue
			}
			m.Constraints = append(m.Constraints, Constraint{
				Kind: AtMost, Limit: 1, VarIdx: vars, Purpose: purpose,
			})
		}
	}

	addExclusion(groupBuckets, "group")
	addExclusion(teacherBuckets, "teacher")
	addExclusion(roomBuckets, "room")

	// 6. Teacher weekly cap: Σ x[a,d,p] <= t.weekly_hours
	teacherVars := make(map[int64][]int)
	for _, req := range requirements {
		vars := m.VarsByReq[req.ID]
		if req.TeacherID == nil {
			continue
		}
		teacherVars[*req.TeacherID] = append(teacherVars[*req.TeacherID], vars...)
	}
	teacherIDs := make([]int64, 0, len(teacherVars))
	for id := range teacherVars {
		teacherIDs = append(teacherIDs, id)
	}
	sort.Slice(teacherIDs, func(i, j int) bool { return teacherIDs[i] < teacherIDs[j] })
	for _, tid := range teacherIDs {
		teacher, ok := m.pi.TeacherByID(tid)
		if !ok {
			continue
		}
		m.Constraints = append(m.Constraints, Constraint{
			Kind: AtMost, Limit: teacher.WeeklyHours, VarIdx: teacherVars[tid], Purpose: "teacher_cap",
		})
	}
}
