package models

import (
	"database/sql"
	"time"
)

// Subject is taught to class groups for some number of hours per week. The
// hours-per-week figure here is a template only; the authoritative figure
// for solving is the one carried by the Assignment that references it.
type Subject struct {
	ID                  int64         `db:"id" json:"id"`
	TenantID            int64         `db:"tenant_id" json:"tenant_id"`
	Name                string        `db:"name" json:"name"`
	DefaultHoursPerWeek int           `db:"default_hours_per_week" json:"default_hours_per_week"`
	DefaultRoomID       sql.NullInt64 `db:"default_room_id" json:"default_room_id,omitempty"`
	CreatedAt           time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at" json:"updated_at"`
}
