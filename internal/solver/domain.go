package solver

import (
	"sort"

	"github.com/classplanner/timetable-solver/internal/catalog"
)

// Domain is one requirement's admissible cell set, kept in the deterministic
// ascending (day, period id) order used for variable creation.
type Domain []Cell

// BuildDomains computes the admissible cell set for every requirement in
// the instance. It never returns an error by itself; a too-small domain is
// reported by the caller once every requirement's domain is known, rather
// than failing loud mid-computation.
func BuildDomains(pi *catalog.ProblemInstance, opts Options) map[int64]Domain {
	qualifiedSubjects := make(map[int64]map[int64]struct{})
	if opts.EnforceTeacherSubject {
		for _, ts := range pi.TeacherSubjects {
			if qualifiedSubjects[ts.TeacherID] == nil {
				qualifiedSubjects[ts.TeacherID] = make(map[int64]struct{})
			}
			qualifiedSubjects[ts.TeacherID][ts.SubjectID] = struct{}{}
		}
	}

	periodUniverse := pi.PeriodIDs()

	domains := make(map[int64]Domain, len(pi.Requirements))
	for _, req := range pi.Requirements {
		domains[req.ID] = domainFor(pi, req, periodUniverse, qualifiedSubjects, opts)
	}
	return domains
}

func domainFor(
	pi *catalog.ProblemInstance,
	req catalog.Requirement,
	periodUniverse []int,
	qualifiedSubjects map[int64]map[int64]struct{},
	opts Options,
) Domain {
	if opts.EnforceTeacherSubject && req.TeacherID != nil {
		subjects, ok := qualifiedSubjects[*req.TeacherID]
		if !ok {
			return nil
		}
		if _, ok := subjects[req.SubjectID]; !ok {
			return nil
		}
	}

	group, ok := pi.ClassGroupByID(req.ClassGroupID)
	if !ok {
		return nil
	}

	prefDays := catalog.Universe()
	prefPeriods := catalog.Universe()
	if req.TeacherID != nil {
		if teacher, ok := pi.TeacherByID(*req.TeacherID); ok {
			prefDays = teacher.PreferredDays
			prefPeriods = teacher.PreferredPeriods
		}
	}

	admissibleDays := prefDays.Sorted(Days)
	admissiblePeriods := prefPeriods.Intersect(group.AllowedPeriods).Sorted(periodUniverse)

	sort.Ints(admissibleDays)
	sort.Ints(admissiblePeriods)

	domain := make(Domain, 0, len(admissibleDays)*len(admissiblePeriods))
	for _, day := range admissibleDays {
		for _, periodID := range admissiblePeriods {
			domain = append(domain, Cell{Day: day, PeriodID: int64(periodID)})
		}
	}
	return domain
}
