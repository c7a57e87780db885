package service

import (
	"context"
	"time"

	"github.com/classplanner/timetable-solver/internal/solver"
)

// SolveRequest carries the solve's configuration options plus the tenant
// to solve for, validated by *validator.Validate before the pipeline runs.
type SolveRequest struct {
	TenantID              int64 `validate:"required,gt=0"`
	TimeBudgetSeconds     int   `validate:"omitempty,min=1"`
	FailFastOnDomain      bool
	RoomUnresolvedPolicy  string `validate:"omitempty,oneof=ignore reject"`
	EnforceTeacherSubject bool
}

// ScheduleWriter persists a satisfying schedule (internal/repository.ScheduleRepository).
type ScheduleWriter interface {
	Replace(ctx context.Context, tenantID int64, entries []solver.ScheduledEntry) error
}

// Locker is the per-tenant advisory lock that keeps concurrent solves for
// one tenant from racing to overwrite each other.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
