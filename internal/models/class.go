package models

import (
	"database/sql"
	"time"
)

// ClassGroup is a cohort of students treated as a unit for scheduling.
//
// AllowedPeriods is a nullable comma-separated decimal-integer string,
// decoded at the catalog-loader boundary (empty/NULL means "all periods").
type ClassGroup struct {
	ID             int64          `db:"id" json:"id"`
	TenantID       int64          `db:"tenant_id" json:"tenant_id"`
	Name           string         `db:"name" json:"name"`
	DefaultRoomID  sql.NullInt64  `db:"default_room_id" json:"default_room_id,omitempty"`
	AllowedPeriods sql.NullString `db:"allowed_periods" json:"allowed_periods,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}
