package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classplanner/timetable-solver/internal/catalog"
	"github.com/classplanner/timetable-solver/internal/metrics"
	"github.com/classplanner/timetable-solver/internal/solver"
	appErrors "github.com/classplanner/timetable-solver/pkg/errors"
)

// SolverService is the solve coordinator: it wraps the
// Loader → Domain Builder → Model → Search → Extractor → Writer pipeline
// with a per-tenant lock, structured logging, and metrics.
type SolverService struct {
	catalog  catalog.Reader
	writer   ScheduleWriter
	locker   Locker
	metrics  *metrics.Registry
	validate *validator.Validate
	logger   *zap.Logger
	lockTTL  time.Duration
}

// NewSolverService wires the coordinator's dependencies.
func NewSolverService(
	reader catalog.Reader,
	writer ScheduleWriter,
	locker Locker,
	metricsRegistry *metrics.Registry,
	logger *zap.Logger,
	lockTTL time.Duration,
) *SolverService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &SolverService{
		catalog:  reader,
		writer:   writer,
		locker:   locker,
		metrics:  metricsRegistry,
		validate: validator.New(),
		logger:   logger,
		lockTTL:  lockTTL,
	}
}

// Solve runs one full solve for req.TenantID. It returns the solver.Result
// even on an infeasible/timeout outcome (callers can still inspect
// Backtracks etc.); the returned error is nil only for OutcomeSat after a
// successful write.
func (s *SolverService) Solve(ctx context.Context, req SolveRequest) (solver.Result, error) {
	if err := s.validate.Struct(req); err != nil {
		return solver.Result{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid solve request")
	}

	runID := uuid.NewString()
	log := s.logger.With(zap.String("run_id", runID), zap.Int64("tenant_id", req.TenantID))

	lockKey := fmt.Sprintf("timetable-solve:%d", req.TenantID)
	acquired, err := s.locker.Acquire(ctx, lockKey, s.lockTTL)
	if err != nil {
		return solver.Result{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "acquire solve lock")
	}
	if !acquired {
		log.Info("solve_conflict")
		return solver.Result{}, appErrors.Clone(appErrors.ErrConflict, "a solve is already in progress for this tenant")
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.locker.Release(releaseCtx, lockKey); err != nil {
			log.Warn("solve_lock_release_failed", zap.Error(err))
		}
	}()

	start := time.Now()

	roomPolicy := catalog.RoomUnresolvedPolicy(req.RoomUnresolvedPolicy)
	if roomPolicy == "" {
		roomPolicy = catalog.RoomUnresolvedIgnore
	}

	instance, err := catalog.Load(ctx, s.catalog, req.TenantID, catalog.Options{RoomUnresolvedPolicy: roomPolicy})
	if err != nil {
		s.observe("load_error", time.Since(start), 0)
		log.Error("solve_load_error", zap.Error(err))
		return solver.Result{}, err
	}

	timeBudget := time.Duration(req.TimeBudgetSeconds) * time.Second
	if timeBudget <= 0 {
		timeBudget = solver.DefaultOptions().TimeBudget
	}

	solverOpts := solver.Options{
		TimeBudget:            timeBudget,
		FailFastOnDomain:      req.FailFastOnDomain,
		EnforceTeacherSubject: req.EnforceTeacherSubject,
	}

	result, err := solver.Solve(instance, solverOpts)
	if err != nil {
		var domainErr *solver.DomainTooSmallError
		if stderrors.As(err, &domainErr) {
			s.observe("domain_too_small", time.Since(start), 0)
			log.Info("solve_domain_too_small", zap.Int64("requirement_id", domainErr.RequirementID))
			return solver.Result{}, appErrors.Wrap(err, appErrors.ErrDomainTooSmall.Code, appErrors.ErrDomainTooSmall.Status, appErrors.ErrDomainTooSmall.Message)
		}
		return solver.Result{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "solve failed")
	}

	s.observe(result.Outcome.String(), time.Since(start), result.Backtracks)

	if result.Outcome != solver.OutcomeSat {
		log.Info("solve_infeasible", zap.String("outcome", result.Outcome.String()))
		cause := solver.ErrUnsat
		if result.Outcome == solver.OutcomeTimeout {
			cause = solver.ErrTimeout
		}
		return result, appErrors.Wrap(cause, appErrors.ErrInfeasible.Code, appErrors.ErrInfeasible.Status, appErrors.ErrInfeasible.Message)
	}

	if err := s.writer.Replace(ctx, req.TenantID, result.Entries); err != nil {
		log.Error("solve_write_error", zap.Error(err))
		return result, appErrors.Wrap(err, appErrors.ErrWrite.Code, appErrors.ErrWrite.Status, appErrors.ErrWrite.Message)
	}

	log.Info("solve_sat", zap.Int("entries", len(result.Entries)), zap.Int("backtracks", result.Backtracks))
	return result, nil
}

func (s *SolverService) observe(outcome string, duration time.Duration, backtracks int) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveSolve(outcome, duration, backtracks)
}
