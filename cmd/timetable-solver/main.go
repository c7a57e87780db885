package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/classplanner/timetable-solver/internal/metrics"
	"github.com/classplanner/timetable-solver/internal/repository"
	"github.com/classplanner/timetable-solver/internal/service"
	"github.com/classplanner/timetable-solver/internal/solver"
	"github.com/classplanner/timetable-solver/pkg/cache"
	"github.com/classplanner/timetable-solver/pkg/config"
	"github.com/classplanner/timetable-solver/pkg/database"
	"github.com/classplanner/timetable-solver/pkg/logger"

	appErrors "github.com/classplanner/timetable-solver/pkg/errors"
)

// Exit codes: 0 Sat, 1 Unsat, 2 Timeout, 3 LoadError. WriteError shares 3
// with LoadError; see DESIGN.md's Open-Question resolution for why.
const (
	exitSat        = 0
	exitUnsat      = 1
	exitTimeout    = 2
	exitLoadError  = 3
	exitWriteError = 3
	exitUsageError = 64
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || args[0] != "solve" {
		fmt.Fprintln(os.Stderr, "usage: timetable-solver solve --tenant <id> [--time-budget-seconds N] [--fail-fast-on-domain=true] [--room-unresolved-policy=ignore|reject] [--metrics-addr host:port]")
		return exitUsageError
	}

	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	tenantID := fs.Int64("tenant", 0, "tenant id to solve for")
	timeBudgetSeconds := fs.Int("time-budget-seconds", 0, "wall-clock budget in seconds (default 10)")
	failFastOnDomain := fs.Bool("fail-fast-on-domain", true, "skip the solve if any requirement's domain is too small")
	roomUnresolvedPolicy := fs.String("room-unresolved-policy", "ignore", "ignore|reject")
	enforceTeacherSubject := fs.Bool("enforce-teacher-subject", false, "require each requirement's teacher to be qualified for its subject")
	metricsAddr := fs.String("metrics-addr", "", "if set, serve /metrics on this address for the duration of the solve")

	if err := fs.Parse(args[1:]); err != nil {
		return exitUsageError
	}
	if *tenantID <= 0 {
		fmt.Fprintln(os.Stderr, "--tenant is required and must be positive")
		return exitUsageError
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("load config: %v", err)
		return exitLoadError
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Printf("init logger: %v", err)
		return exitLoadError
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Errorw("connect to database", "error", err)
		return exitLoadError
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Errorw("connect to redis", "error", err)
		return exitLoadError
	}
	defer redisClient.Close()

	metricsRegistry := metrics.New()
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsRegistry.Handler())
		srv := &http.Server{Addr: *metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logr.Sugar().Warnw("metrics server stopped", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	catalogRepo := repository.NewCatalogRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	locker := service.NewRedisLocker(redisClient)

	solverSvc := service.NewSolverService(catalogRepo, scheduleRepo, locker, metricsRegistry, logr, cfg.Scheduler.LockTTL)

	budget := *timeBudgetSeconds
	if budget == 0 {
		budget = int(cfg.Scheduler.TimeBudget.Seconds())
	}

	req := service.SolveRequest{
		TenantID:              *tenantID,
		TimeBudgetSeconds:     budget,
		FailFastOnDomain:      *failFastOnDomain,
		RoomUnresolvedPolicy:  *roomUnresolvedPolicy,
		EnforceTeacherSubject: *enforceTeacherSubject,
	}

	ctx := context.Background()
	result, err := solverSvc.Solve(ctx, req)
	if err != nil {
		return exitCodeFor(result, err)
	}

	fmt.Printf("sat: %d entries scheduled (backtracks=%d)\n", len(result.Entries), result.Backtracks)
	return exitSat
}

func exitCodeFor(result solver.Result, err error) int {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case appErrors.ErrLoad.Code:
			fmt.Fprintf(os.Stderr, "load error: %v\n", err)
			return exitLoadError
		case appErrors.ErrDomainTooSmall.Code:
			fmt.Fprintf(os.Stderr, "domain too small: %v\n", err)
			return exitUnsat
		case appErrors.ErrWrite.Code:
			fmt.Fprintf(os.Stderr, "write error: %v\n", err)
			return exitWriteError
		case appErrors.ErrInfeasible.Code:
			if result.Outcome == solver.OutcomeTimeout {
				fmt.Fprintln(os.Stderr, "timeout")
				return exitTimeout
			}
			fmt.Fprintln(os.Stderr, "unsat")
			return exitUnsat
		case appErrors.ErrConflict.Code:
			fmt.Fprintf(os.Stderr, "conflict: %v\n", err)
			return exitLoadError
		}
	}
	fmt.Fprintf(os.Stderr, "solve failed: %v\n", err)
	return exitLoadError
}
