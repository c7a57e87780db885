package models

import (
	"database/sql"
	"time"
)

// Assignment is a stored requirement that a class group needs a subject for
// some number of hours a week, optionally pinned to a teacher and/or room.
// The solver calls these "requirements"; the table name (schedule_assignments)
// predates that renaming.
type Assignment struct {
	ID           int64         `db:"id" json:"id"`
	TenantID     int64         `db:"tenant_id" json:"tenant_id"`
	ClassGroupID int64         `db:"class_group_id" json:"class_group_id"`
	SubjectID    int64         `db:"subject_id" json:"subject_id"`
	TeacherID    sql.NullInt64 `db:"teacher_id" json:"teacher_id,omitempty"`
	HoursPerWeek int           `db:"hours_per_week" json:"hours_per_week"`
	RoomID       sql.NullInt64 `db:"room_id" json:"room_id,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}

// TeacherSubject records that a teacher is qualified to teach a subject.
// Not used as a domain filter unless solver.Options.EnforceTeacherSubject
// is set; see DESIGN.md Open Question 3.
type TeacherSubject struct {
	TenantID  int64 `db:"tenant_id" json:"tenant_id"`
	TeacherID int64 `db:"teacher_id" json:"teacher_id"`
	SubjectID int64 `db:"subject_id" json:"subject_id"`
}
