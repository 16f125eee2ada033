package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/retail-erp/workforce-backend-go/internal/config"
	"github.com/retail-erp/workforce-backend-go/internal/domain/puantaj"
	appHTTP "github.com/retail-erp/workforce-backend-go/internal/handler/http"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/cron"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/database"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/jwt"
	"github.com/retail-erp/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/retail-erp/workforce-backend-go/internal/service/attendance"
	leaveService "github.com/retail-erp/workforce-backend-go/internal/service/leave"
	ledgerService "github.com/retail-erp/workforce-backend-go/internal/service/ledger"
	payrollService "github.com/retail-erp/workforce-backend-go/internal/service/payroll"
	puantajService "github.com/retail-erp/workforce-backend-go/internal/service/puantaj"
	shiftService "github.com/retail-erp/workforce-backend-go/internal/service/shift"
	staffService "github.com/retail-erp/workforce-backend-go/internal/service/staff"
	targetService "github.com/retail-erp/workforce-backend-go/internal/service/target"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnIdleTime: 30 * time.Minute,
		ConnectTimeout:  5 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			return err
		}
	}

	loc := cfg.Workforce.Location

	staffRepo := postgresql.NewStaffRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	targetRepo := postgresql.NewTargetRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}

	staffSvc := staffService.NewStaffService(staffRepo)

	offDays := puantaj.OffDayPolicy{
		Default: cfg.Workforce.OffDays,
		Branch:  cfg.Workforce.BranchOffDays,
	}

	attendanceSvc := attendanceService.NewAttendanceService(txManager, attendanceRepo, staffRepo, loc)
	shiftSvc := shiftService.NewShiftService(txManager, shiftRepo, staffRepo, loc, offDays)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, staffRepo)
	puantajSvc := puantajService.NewPuantajService(staffRepo, attendanceRepo, shiftRepo, leaveRequestRepo, puantajService.Options{
		Location:       loc,
		Policy:         offDays,
		MaxConcurrency: cfg.Workforce.MaxConcurrency,
	})
	targetSvc := targetService.NewTargetService(targetRepo, staffRepo)
	ledgerSvc := ledgerService.NewLedgerService(ledgerRepo)
	payrollSvc := payrollService.NewPayrollService(
		txManager,
		payrollRepo,
		staffRepo,
		ledgerSvc,
		cfg.Payroll.ExpenseAccountID,
		cfg.Workforce.DefaultSalary,
	)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         appHTTP.NewRequestLogger(os.Stdout, cfg.App.Env),
			AllowedOrigins: cfg.App.AllowedOrigins,
			LogLevel:       cfg.SlogLevel(),
			HealthCheck:    db.Health,
		},
		JWTService,
		appHTTP.NewStaffHandler(staffSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewShiftHandler(shiftSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewPuantajHandler(puantajSvc),
		appHTTP.NewTargetHandler(targetSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Payroll.CronEnabled {
		scheduler := cron.NewScheduler()
		cron.NewPayrollJobs(payrollSvc, loc).RegisterJobs(scheduler)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", cfg.Workforce.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
