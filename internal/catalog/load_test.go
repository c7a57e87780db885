package catalog

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classplanner/timetable-solver/internal/models"
)

type fakeReader struct {
	teachers        []models.Teacher
	groups          []models.ClassGroup
	rooms           []models.Room
	periods         []models.Period
	assignments     []models.Assignment
	teacherSubjects []models.TeacherSubject
	subjects        []models.Subject
}

func (f *fakeReader) ListTeachers(context.Context, int64) ([]models.Teacher, error) { return f.teachers, nil }
func (f *fakeReader) ListClassGroups(context.Context, int64) ([]models.ClassGroup, error) {
	return f.groups, nil
}
func (f *fakeReader) ListRooms(context.Context, int64) ([]models.Room, error) { return f.rooms, nil }
func (f *fakeReader) ListPeriods(context.Context, int64) ([]models.Period, error) {
	return f.periods, nil
}
func (f *fakeReader) ListAssignments(context.Context, int64) ([]models.Assignment, error) {
	return f.assignments, nil
}
func (f *fakeReader) ListTeacherSubjects(context.Context, int64) ([]models.TeacherSubject, error) {
	return f.teacherSubjects, nil
}
func (f *fakeReader) ListSubjects(context.Context, int64) ([]models.Subject, error) {
	return f.subjects, nil
}

func baseFixture() *fakeReader {
	now := time.Now()
	return &fakeReader{
		teachers: []models.Teacher{
			{ID: 1, WeeklyHours: 20, CreatedAt: now, UpdatedAt: now},
		},
		groups: []models.ClassGroup{
			{ID: 1, Name: "7A", CreatedAt: now, UpdatedAt: now},
		},
		rooms:    []models.Room{{ID: 1, Name: "Room 1", CreatedAt: now}},
		periods:  []models.Period{{ID: 1, Name: "P1"}, {ID: 2, Name: "P2"}},
		subjects: []models.Subject{{ID: 1, Name: "Math", CreatedAt: now, UpdatedAt: now}},
		assignments: []models.Assignment{
			{ID: 1, ClassGroupID: 1, SubjectID: 1, TeacherID: sql.NullInt64{Int64: 1, Valid: true}, HoursPerWeek: 2, RoomID: sql.NullInt64{Int64: 1, Valid: true}},
		},
	}
}

func TestLoad_HappyPath(t *testing.T) {
	reader := baseFixture()
	instance, err := Load(context.Background(), reader, 1, Options{RoomUnresolvedPolicy: RoomUnresolvedIgnore})
	require.NoError(t, err)

	require.Len(t, instance.Requirements, 1)
	req := instance.Requirements[0]
	assert.Equal(t, int64(1), req.ClassGroupID)
	require.NotNil(t, req.TeacherID)
	assert.Equal(t, int64(1), *req.TeacherID)
	require.NotNil(t, req.RoomID)
	assert.Equal(t, int64(1), *req.RoomID)
}

func TestLoad_DanglingTeacherIDIsLoadError(t *testing.T) {
	reader := baseFixture()
	reader.assignments[0].TeacherID = sql.NullInt64{Int64: 999, Valid: true}

	_, err := Load(context.Background(), reader, 1, Options{RoomUnresolvedPolicy: RoomUnresolvedIgnore})
	require.Error(t, err)
}

func TestLoad_DanglingSubjectIDIsLoadError(t *testing.T) {
	reader := baseFixture()
	reader.assignments[0].SubjectID = 999

	_, err := Load(context.Background(), reader, 1, Options{RoomUnresolvedPolicy: RoomUnresolvedIgnore})
	require.Error(t, err)
}

func TestLoad_MalformedPreferenceStringIsLoadError(t *testing.T) {
	reader := baseFixture()
	reader.teachers[0].PreferredDays = sql.NullString{String: "1,x,3", Valid: true}

	_, err := Load(context.Background(), reader, 1, Options{RoomUnresolvedPolicy: RoomUnresolvedIgnore})
	require.Error(t, err)
}

func TestLoad_UnresolvedRoomIgnorePolicyLeavesNilRoom(t *testing.T) {
	reader := baseFixture()
	reader.assignments[0].RoomID = sql.NullInt64{}

	instance, err := Load(context.Background(), reader, 1, Options{RoomUnresolvedPolicy: RoomUnresolvedIgnore})
	require.NoError(t, err)
	assert.Nil(t, instance.Requirements[0].RoomID)
}

func TestLoad_UnresolvedRoomRejectPolicyIsLoadError(t *testing.T) {
	reader := baseFixture()
	reader.assignments[0].RoomID = sql.NullInt64{}

	_, err := Load(context.Background(), reader, 1, Options{RoomUnresolvedPolicy: RoomUnresolvedReject})
	require.Error(t, err)
}

func TestLoad_AssignmentRoomFallsBackToGroupDefault(t *testing.T) {
	reader := baseFixture()
	reader.assignments[0].RoomID = sql.NullInt64{}
	reader.groups[0].DefaultRoomID = sql.NullInt64{Int64: 1, Valid: true}

	instance, err := Load(context.Background(), reader, 1, Options{RoomUnresolvedPolicy: RoomUnresolvedReject})
	require.NoError(t, err)
	require.NotNil(t, instance.Requirements[0].RoomID)
	assert.Equal(t, int64(1), *instance.Requirements[0].RoomID)
}
