package models

import (
	"database/sql"
	"time"
)

// ScheduledEntryRecord is the persisted form of one solved lesson. IsLocked
// is carried for the UI's benefit only; see DESIGN.md Open Question 1. The
// solver's ProblemInstance never reads it.
type ScheduledEntryRecord struct {
	ID           int64         `db:"id" json:"id"`
	TenantID     int64         `db:"tenant_id" json:"tenant_id"`
	ClassGroupID int64         `db:"class_group_id" json:"class_group_id"`
	SubjectID    int64         `db:"subject_id" json:"subject_id"`
	TeacherID    sql.NullInt64 `db:"teacher_id" json:"teacher_id,omitempty"`
	RoomID       sql.NullInt64 `db:"room_id" json:"room_id,omitempty"`
	PeriodID     int64         `db:"period_id" json:"period_id"`
	Weekday      int           `db:"weekday" json:"weekday"`
	IsLocked     bool          `db:"is_locked" json:"is_locked"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}
