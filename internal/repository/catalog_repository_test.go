package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoFixture(t *testing.T) (*CatalogRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	return NewCatalogRepository(sqlxDB), mock
}

func TestCatalogRepository_ListTeachers(t *testing.T) {
	repo, mock := newRepoFixture(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "tenant_id", "full_name", "weekly_hours", "preferred_days", "preferred_periods", "created_at", "updated_at"}).
		AddRow(1, 1, "Ada Lovelace", 20, "1,2,3", nil, now, now)

	mock.ExpectQuery("SELECT id, tenant_id, full_name, weekly_hours, preferred_days, preferred_periods, created_at, updated_at").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	teachers, err := repo.ListTeachers(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "Ada Lovelace", teachers[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_ListSubjects(t *testing.T) {
	repo, mock := newRepoFixture(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "tenant_id", "name", "default_hours_per_week", "default_room_id", "created_at", "updated_at"}).
		AddRow(1, 1, "Math", 4, nil, now, now)

	mock.ExpectQuery("SELECT id, tenant_id, name, default_hours_per_week, default_room_id, created_at, updated_at").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	subjects, err := repo.ListSubjects(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Math", subjects[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_ListAssignments(t *testing.T) {
	repo, mock := newRepoFixture(t)

	rows := sqlmock.NewRows([]string{"id", "tenant_id", "class_group_id", "subject_id", "teacher_id", "hours_per_week", "room_id", "created_at"}).
		AddRow(1, 1, 1, 1, 1, 3, 1, time.Now())

	mock.ExpectQuery("SELECT id, tenant_id, class_group_id, subject_id, teacher_id, hours_per_week, room_id, created_at").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	assignments, err := repo.ListAssignments(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, 3, assignments[0].HoursPerWeek)
	assert.NoError(t, mock.ExpectationsWereMet())
}
