package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/classplanner/timetable-solver/internal/models"
	"github.com/classplanner/timetable-solver/internal/solver"
	appErrors "github.com/classplanner/timetable-solver/pkg/errors"
)

type fakeCatalogReader struct {
	teachers    []models.Teacher
	groups      []models.ClassGroup
	rooms       []models.Room
	periods     []models.Period
	assignments []models.Assignment
	subjects    []models.Subject
	err         error
}

func (f *fakeCatalogReader) ListTeachers(context.Context, int64) ([]models.Teacher, error) {
	return f.teachers, f.err
}
func (f *fakeCatalogReader) ListClassGroups(context.Context, int64) ([]models.ClassGroup, error) {
	return f.groups, f.err
}
func (f *fakeCatalogReader) ListRooms(context.Context, int64) ([]models.Room, error) {
	return f.rooms, f.err
}
func (f *fakeCatalogReader) ListPeriods(context.Context, int64) ([]models.Period, error) {
	return f.periods, f.err
}
func (f *fakeCatalogReader) ListAssignments(context.Context, int64) ([]models.Assignment, error) {
	return f.assignments, f.err
}
func (f *fakeCatalogReader) ListTeacherSubjects(context.Context, int64) ([]models.TeacherSubject, error) {
	return nil, f.err
}
func (f *fakeCatalogReader) ListSubjects(context.Context, int64) ([]models.Subject, error) {
	return f.subjects, f.err
}

type fakeWriter struct {
	replaceErr error
	called     bool
	entries    []solver.ScheduledEntry
}

func (f *fakeWriter) Replace(_ context.Context, _ int64, entries []solver.ScheduledEntry) error {
	f.called = true
	f.entries = entries
	return f.replaceErr
}

type fakeLocker struct {
	acquireOK  bool
	acquireErr error
	releaseErr error
	released   bool
}

func (f *fakeLocker) Acquire(context.Context, string, time.Duration) (bool, error) {
	return f.acquireOK, f.acquireErr
}
func (f *fakeLocker) Release(context.Context, string) error {
	f.released = true
	return f.releaseErr
}

type solverServiceFixture struct {
	reader *fakeCatalogReader
	writer *fakeWriter
	locker *fakeLocker
	svc    *SolverService
}

func newSolverServiceFixture() *solverServiceFixture {
	reader := &fakeCatalogReader{
		teachers: []models.Teacher{{ID: 1, WeeklyHours: 20}},
		groups:   []models.ClassGroup{{ID: 1, Name: "7A"}},
		rooms:    []models.Room{{ID: 1, Name: "Room 1"}},
		periods: []models.Period{
			{ID: 1, Name: "P1"}, {ID: 2, Name: "P2"}, {ID: 3, Name: "P3"},
			{ID: 4, Name: "P4"}, {ID: 5, Name: "P5"},
		},
		subjects: []models.Subject{{ID: 1, Name: "Math"}},
	}
	writer := &fakeWriter{}
	locker := &fakeLocker{acquireOK: true}

	svc := NewSolverService(reader, writer, locker, nil, zap.NewNop(), time.Second)
	return &solverServiceFixture{reader: reader, writer: writer, locker: locker, svc: svc}
}

func TestSolverService_Solve_HappyPath(t *testing.T) {
	f := newSolverServiceFixture()
	f.reader.assignments = []models.Assignment{
		{ID: 1, ClassGroupID: 1, SubjectID: 1, HoursPerWeek: 3},
	}

	result, err := f.svc.Solve(context.Background(), SolveRequest{TenantID: 1, TimeBudgetSeconds: 5, FailFastOnDomain: true})
	require.NoError(t, err)
	assert.Equal(t, solver.OutcomeSat, result.Outcome)
	assert.True(t, f.writer.called)
	assert.True(t, f.locker.released)
}

func TestSolverService_Solve_LockConflictFailsFast(t *testing.T) {
	f := newSolverServiceFixture()
	f.locker.acquireOK = false

	_, err := f.svc.Solve(context.Background(), SolveRequest{TenantID: 1})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.False(t, f.writer.called)
}

func TestSolverService_Solve_LoadErrorPropagates(t *testing.T) {
	f := newSolverServiceFixture()
	f.reader.err = errors.New("connection refused")

	_, err := f.svc.Solve(context.Background(), SolveRequest{TenantID: 1})
	require.Error(t, err)
	assert.False(t, f.writer.called)
}

func TestSolverService_Solve_DomainTooSmallPropagates(t *testing.T) {
	f := newSolverServiceFixture()
	f.reader.teachers = []models.Teacher{{
		ID: 1, WeeklyHours: 20,
		PreferredDays:    sql.NullString{String: "1", Valid: true},
		PreferredPeriods: sql.NullString{String: "1", Valid: true},
	}}
	f.reader.assignments = []models.Assignment{
		{ID: 1, ClassGroupID: 1, SubjectID: 1, HoursPerWeek: 2, TeacherID: sql.NullInt64{Int64: 1, Valid: true}},
	}

	_, err := f.svc.Solve(context.Background(), SolveRequest{TenantID: 1, FailFastOnDomain: true})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrDomainTooSmall.Code, appErr.Code)
	assert.False(t, f.writer.called)
}

func TestSolverService_Solve_UnsatDoesNotWrite(t *testing.T) {
	f := newSolverServiceFixture()
	f.reader.teachers = []models.Teacher{{ID: 1, WeeklyHours: 20, PreferredPeriods: sql.NullString{String: "1", Valid: true}}}
	f.reader.groups = []models.ClassGroup{{ID: 1, Name: "7A"}, {ID: 2, Name: "7B"}}
	f.reader.assignments = []models.Assignment{
		{ID: 1, ClassGroupID: 1, SubjectID: 1, HoursPerWeek: 5, TeacherID: sql.NullInt64{Int64: 1, Valid: true}},
		{ID: 2, ClassGroupID: 2, SubjectID: 1, HoursPerWeek: 5, TeacherID: sql.NullInt64{Int64: 1, Valid: true}},
	}

	result, err := f.svc.Solve(context.Background(), SolveRequest{TenantID: 1, FailFastOnDomain: true})
	require.Error(t, err)
	assert.Equal(t, solver.OutcomeUnsat, result.Outcome)
	assert.False(t, f.writer.called)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInfeasible.Code, appErr.Code)
}

func TestSolverService_Solve_WriteErrorPropagates(t *testing.T) {
	f := newSolverServiceFixture()
	f.reader.assignments = []models.Assignment{
		{ID: 1, ClassGroupID: 1, SubjectID: 1, HoursPerWeek: 3},
	}
	f.writer.replaceErr = errors.New("disk full")

	_, err := f.svc.Solve(context.Background(), SolveRequest{TenantID: 1, FailFastOnDomain: true})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrWrite.Code, appErr.Code)
}

func TestSolverService_Solve_ValidationFailureRejectsBeforeLock(t *testing.T) {
	f := newSolverServiceFixture()

	_, err := f.svc.Solve(context.Background(), SolveRequest{TenantID: 0})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.False(t, f.locker.released, "lock should never be acquired for an invalid request")
}
