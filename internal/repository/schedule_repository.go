package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/classplanner/timetable-solver/internal/solver"
)

// ScheduleRepository persists the solver's output as the durable schedule
// writer.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// scheduledEntryRow is the insertable shape of one solver.ScheduledEntry,
// with the tenant id attached and the optional teacher/room ids flattened
// to nullable columns for NamedExecContext.
type scheduledEntryRow struct {
	TenantID     int64  `db:"tenant_id"`
	ClassGroupID int64  `db:"class_group_id"`
	SubjectID    int64  `db:"subject_id"`
	TeacherID    *int64 `db:"teacher_id"`
	RoomID       *int64 `db:"room_id"`
	PeriodID     int64  `db:"period_id"`
	Weekday      int    `db:"weekday"`
}

// Replace atomically deletes every existing timetable entry for the tenant
// and inserts the solver's output in its place. On any failure it rolls
// back, leaving the previous schedule intact; it never interleaves with
// another solve for the same tenant because of the advisory lock taken
// first.
func (r *ScheduleRepository) Replace(ctx context.Context, tenantID int64, entries []solver.ScheduledEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::text))`, tenantID); err != nil {
		return fmt.Errorf("acquire advisory lock: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM timetable_entries WHERE tenant_id = $1`, tenantID); err != nil {
		return fmt.Errorf("delete existing timetable entries: %w", err)
	}

	if len(entries) > 0 {
		rows := make([]scheduledEntryRow, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, scheduledEntryRow{
				TenantID:     tenantID,
				ClassGroupID: e.ClassGroupID,
				SubjectID:    e.SubjectID,
				TeacherID:    e.TeacherID,
				RoomID:       e.RoomID,
				PeriodID:     e.PeriodID,
				Weekday:      e.Weekday,
			})
		}

		const insertQuery = `
INSERT INTO timetable_entries (tenant_id, class_group_id, subject_id, teacher_id, room_id, period_id, weekday)
VALUES (:tenant_id, :class_group_id, :subject_id, :teacher_id, :room_id, :period_id, :weekday)`
		if _, err := sqlx.NamedExecContext(ctx, tx, insertQuery, rows); err != nil {
			return fmt.Errorf("insert timetable entries: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace transaction: %w", err)
	}

	return nil
}
