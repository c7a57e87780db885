package solver

import (
	"sort"

	"github.com/classplanner/timetable-solver/internal/catalog"
)

// Extract reads every x[a,d,p] set true and materialises the scheduled
// entries, stably sorted by (weekday, period, group).
func Extract(pi *catalog.ProblemInstance, model *Model, assign []varState) []ScheduledEntry {
	reqByID := make(map[int64]catalog.Requirement, len(pi.Requirements))
	for _, req := range pi.Requirements {
		reqByID[req.ID] = req
	}

	entries := make([]ScheduledEntry, 0, len(model.Vars))
	for vi, cell := range model.Vars {
		if assign[vi] != assignedTrue {
			continue
		}
		req, ok := reqByID[cell.ReqID]
		if !ok {
			continue
		}
		entries = append(entries, ScheduledEntry{
			ClassGroupID: req.ClassGroupID,
			SubjectID:    req.SubjectID,
			TeacherID:    req.TeacherID,
			RoomID:       req.RoomID,
			PeriodID:     cell.PeriodID,
			Weekday:      cell.Day,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Weekday != entries[j].Weekday {
			return entries[i].Weekday < entries[j].Weekday
		}
		if entries[i].PeriodID != entries[j].PeriodID {
			return entries[i].PeriodID < entries[j].PeriodID
		}
		return entries[i].ClassGroupID < entries[j].ClassGroupID
	})

	return entries
}
