package models

import "time"

// Room is a physical space a lesson can be taught in. Uniqueness of name
// within a tenant is a loader/repository concern, not enforced here.
type Room struct {
	ID        int64     `db:"id" json:"id"`
	TenantID  int64     `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Period is a named contiguous time interval within a school day. The
// solver treats periods as opaque labels and never reads StartTime or
// EndTime; the catalog loader does not check them either.
type Period struct {
	ID        int64     `db:"id" json:"id"`
	TenantID  int64     `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
}
