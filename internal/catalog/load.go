package catalog

import (
	"context"
	"fmt"

	appErrors "github.com/classplanner/timetable-solver/pkg/errors"

	"github.com/classplanner/timetable-solver/internal/models"
)

// Reader is the read-side contract the Catalog Loader needs from storage.
// internal/repository.CatalogRepository implements this; tests supply a
// fake or a go-sqlmock-backed repository.
type Reader interface {
	ListTeachers(ctx context.Context, tenantID int64) ([]models.Teacher, error)
	ListClassGroups(ctx context.Context, tenantID int64) ([]models.ClassGroup, error)
	ListRooms(ctx context.Context, tenantID int64) ([]models.Room, error)
	ListPeriods(ctx context.Context, tenantID int64) ([]models.Period, error)
	ListAssignments(ctx context.Context, tenantID int64) ([]models.Assignment, error)
	ListTeacherSubjects(ctx context.Context, tenantID int64) ([]models.TeacherSubject, error)
	ListSubjects(ctx context.Context, tenantID int64) ([]models.Subject, error)
}

// Load reads a tenant's catalog and normalises it into a ProblemInstance.
// It fails with a pkg/errors.ErrLoad-wrapped error on any dangling foreign
// key or malformed preference string.
func Load(ctx context.Context, reader Reader, tenantID int64, opts Options) (*ProblemInstance, error) {
	teacherRows, err := reader.ListTeachers(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrLoad.Code, appErrors.ErrLoad.Status, "load teachers")
	}
	groupRows, err := reader.ListClassGroups(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrLoad.Code, appErrors.ErrLoad.Status, "load class groups")
	}
	roomRows, err := reader.ListRooms(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrLoad.Code, appErrors.ErrLoad.Status, "load rooms")
	}
	periodRows, err := reader.ListPeriods(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrLoad.Code, appErrors.ErrLoad.Status, "load periods")
	}
	assignmentRows, err := reader.ListAssignments(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrLoad.Code, appErrors.ErrLoad.Status, "load assignments")
	}
	teacherSubjectRows, err := reader.ListTeacherSubjects(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrLoad.Code, appErrors.ErrLoad.Status, "load teacher subjects")
	}
	subjectRows, err := reader.ListSubjects(ctx, tenantID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrLoad.Code, appErrors.ErrLoad.Status, "load subjects")
	}

	dayUniverse := map[int]struct{}{1: {}, 2: {}, 3: {}, 4: {}, 5: {}}

	periodUniverse := make(map[int]struct{}, len(periodRows))
	knownPeriods := make(map[int64]struct{}, len(periodRows))
	periods := make([]Period, 0, len(periodRows))
	for _, row := range periodRows {
		periodUniverse[int(row.ID)] = struct{}{}
		knownPeriods[row.ID] = struct{}{}
		periods = append(periods, Period{ID: row.ID})
	}

	knownSubjects := make(map[int64]struct{}, len(subjectRows))
	for _, row := range subjectRows {
		knownSubjects[row.ID] = struct{}{}
	}

	knownRooms := make(map[int64]struct{}, len(roomRows))
	rooms := make([]Room, 0, len(roomRows))
	for _, row := range roomRows {
		knownRooms[row.ID] = struct{}{}
		rooms = append(rooms, Room{ID: row.ID})
	}

	teachers := make([]Teacher, 0, len(teacherRows))
	knownTeachers := make(map[int64]struct{}, len(teacherRows))
	for _, row := range teacherRows {
		days, err := decodePreference(row.PreferredDays.String, row.PreferredDays.Valid)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrLoad.Code, appErrors.ErrLoad.Status,
				fmt.Sprintf("teacher %d preferred_days", row.ID))
		}
		periodsPref, err := decodePreference(row.PreferredPeriods.String, row.PreferredPeriods.Valid)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrLoad.Code, appErrors.ErrLoad.Status,
				fmt.Sprintf("teacher %d preferred_periods", row.ID))
		}

		knownTeachers[row.ID] = struct{}{}
		teachers = append(teachers, Teacher{
			ID:               row.ID,
			WeeklyHours:      row.WeeklyHours,
			PreferredDays:    days.restrictTo(dayUniverse),
			PreferredPeriods: periodsPref.restrictTo(periodUniverse),
		})
	}

	groups := make([]ClassGroup, 0, len(groupRows))
	knownGroups := make(map[int64]struct{}, len(groupRows))
	groupDefaultRoom := make(map[int64]*int64, len(groupRows))
	for _, row := range groupRows {
		allowed, err := decodePreference(row.AllowedPeriods.String, row.AllowedPeriods.Valid)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrLoad.Code, appErrors.ErrLoad.Status,
				fmt.Sprintf("class group %d allowed_periods", row.ID))
		}

		var defaultRoom *int64
		if row.DefaultRoomID.Valid {
			id := row.DefaultRoomID.Int64
			if _, ok := knownRooms[id]; !ok {
				return nil, appErrors.Wrap(fmt.Errorf("dangling default_room_id %d", id),
					appErrors.ErrLoad.Code, appErrors.ErrLoad.Status,
					fmt.Sprintf("class group %d default_room_id", row.ID))
			}
			defaultRoom = &id
		}

		knownGroups[row.ID] = struct{}{}
		groupDefaultRoom[row.ID] = defaultRoom
		groups = append(groups, ClassGroup{
			ID:             row.ID,
			DefaultRoomID:  defaultRoom,
			AllowedPeriods: allowed.restrictTo(periodUniverse),
		})
	}

	requirements := make([]Requirement, 0, len(assignmentRows))
	for _, row := range assignmentRows {
		if _, ok := knownGroups[row.ClassGroupID]; !ok {
			return nil, appErrors.Wrap(fmt.Errorf("dangling class_group_id %d", row.ClassGroupID),
				appErrors.ErrLoad.Code, appErrors.ErrLoad.Status,
				fmt.Sprintf("assignment %d class_group_id", row.ID))
		}

		if _, ok := knownSubjects[row.SubjectID]; !ok {
			return nil, appErrors.Wrap(fmt.Errorf("dangling subject_id %d", row.SubjectID),
				appErrors.ErrLoad.Code, appErrors.ErrLoad.Status,
				fmt.Sprintf("assignment %d subject_id", row.ID))
		}

		var teacherID *int64
		if row.TeacherID.Valid {
			id := row.TeacherID.Int64
			if _, ok := knownTeachers[id]; !ok {
				return nil, appErrors.Wrap(fmt.Errorf("dangling teacher_id %d", id),
					appErrors.ErrLoad.Code, appErrors.ErrLoad.Status,
					fmt.Sprintf("assignment %d teacher_id", row.ID))
			}
			teacherID = &id
		}

		effectiveRoom, err := resolveRoom(row, knownRooms, groupDefaultRoom, opts.RoomUnresolvedPolicy)
		if err != nil {
			return nil, err
		}

		requirements = append(requirements, Requirement{
			ID:           row.ID,
			ClassGroupID: row.ClassGroupID,
			SubjectID:    row.SubjectID,
			TeacherID:    teacherID,
			Hours:        row.HoursPerWeek,
			RoomID:       effectiveRoom,
		})
	}

	teacherSubjects := make([]TeacherSubject, 0, len(teacherSubjectRows))
	for _, row := range teacherSubjectRows {
		teacherSubjects = append(teacherSubjects, TeacherSubject{
			TeacherID: row.TeacherID,
			SubjectID: row.SubjectID,
		})
	}

	return NewProblemInstance(tenantID, teachers, groups, rooms, periods, requirements, teacherSubjects), nil
}

// resolveRoom computes the effective room for an assignment: the
// assignment's own room if set, falling back to the class group's default
// room, gated by room_unresolved_policy when neither is available.
func resolveRoom(row models.Assignment, knownRooms map[int64]struct{}, groupDefaultRoom map[int64]*int64, policy RoomUnresolvedPolicy) (*int64, error) {
	if row.RoomID.Valid {
		id := row.RoomID.Int64
		if _, ok := knownRooms[id]; !ok {
			return nil, appErrors.Wrap(fmt.Errorf("dangling room_id %d", id),
				appErrors.ErrLoad.Code, appErrors.ErrLoad.Status,
				fmt.Sprintf("assignment %d room_id", row.ID))
		}
		return &id, nil
	}

	if fallback := groupDefaultRoom[row.ClassGroupID]; fallback != nil {
		id := *fallback
		return &id, nil
	}

	if policy == RoomUnresolvedReject {
		return nil, appErrors.Wrap(fmt.Errorf("no resolvable room for assignment %d", row.ID),
			appErrors.ErrLoad.Code, appErrors.ErrLoad.Status,
			fmt.Sprintf("assignment %d room unresolved", row.ID))
	}

	return nil, nil
}
