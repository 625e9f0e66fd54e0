package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aburakt/staffy/internal/config"
	"github.com/aburakt/staffy/internal/domain/attendance"
	"github.com/aburakt/staffy/internal/domain/leave"
	"github.com/aburakt/staffy/internal/domain/staff"
	"github.com/aburakt/staffy/internal/fixtures"
	appHTTP "github.com/aburakt/staffy/internal/handler/http"
	"github.com/aburakt/staffy/internal/pkg/calendar"
	"github.com/aburakt/staffy/internal/pkg/cron"
	"github.com/aburakt/staffy/internal/pkg/database"
	"github.com/aburakt/staffy/internal/pkg/jwt"
	"github.com/aburakt/staffy/internal/repository/memory"
	"github.com/aburakt/staffy/internal/repository/postgresql"
	attendanceService "github.com/aburakt/staffy/internal/service/attendance"
	serviceAuth "github.com/aburakt/staffy/internal/service/auth"
	leaveService "github.com/aburakt/staffy/internal/service/leave"
	reportService "github.com/aburakt/staffy/internal/service/report"
	staffService "github.com/aburakt/staffy/internal/service/staff"
	"github.com/go-chi/httplog/v3"
)

const version = "v1.0.0"

type repositories struct {
	tx         database.Transactor
	staff      staff.StaffRepository
	attendance attendance.AttendanceRepository
	leave      leave.LeaveRequestRepository
	close      func()
}

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Calendar dates and shift marks are read in the service time zone.
	time.Local = cfg.App.Timezone

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.App.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffy"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	cal, err := calendar.LoadFile(cfg.Calendar.HolidaysFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn("Holiday table not found, only weekends are non-working", "path", cfg.Calendar.HolidaysFile)
		cal = calendar.New()
	case err != nil:
		return fmt.Errorf("failed to load holidays: %w", err)
	default:
		slog.Info("Holiday table loaded", "path", cfg.Calendar.HolidaysFile, "holidays", cal.Len())
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	staffSvc := staffService.NewStaffService(repos.tx, repos.staff, repos.attendance, repos.leave, cfg.Leave, nil)
	attendanceSvc := attendanceService.NewAttendanceService(repos.tx, repos.attendance, repos.staff, cfg.Shift, nil)
	leaveSvc := leaveService.NewLeaveService(repos.tx, repos.leave, repos.staff, cal, nil)
	reportSvc := reportService.NewReportService(attendanceSvc, leaveSvc, staffSvc, nil)
	authSvc := serviceAuth.NewAuthService(repos.staff, JWTService)

	if cfg.App.SeedDemoData {
		if _, err := fixtures.SeedDemoStaff(ctx, staffSvc, repos.staff); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	scheduler := cron.NewScheduler()
	cron.NewCarryoverJobs(staffSvc, nil).RegisterJobs(scheduler, cfg.Cron.CarryoverInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{Logger: logger, AllowedOrigins: cfg.App.AllowedOrigins},
		JWTService,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewStaffHandler(staffSvc, reportSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc, reportSvc),
		appHTTP.NewLeaveHandler(leaveSvc, reportSvc),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "storage", cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.Database.Driver == config.StorageDriverMemory {
		store := memory.NewStore()
		slog.Warn("Using in-memory storage, data is lost on restart")
		return &repositories{
			tx:         store,
			staff:      memory.NewStaffRepository(store),
			attendance: memory.NewAttendanceRepository(store),
			leave:      memory.NewLeaveRequestRepository(store),
			close:      func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		slog.Info("Database schema applied")
	}
	return &repositories{
		tx:         postgresql.NewTransactor(db),
		staff:      postgresql.NewStaffRepository(db),
		attendance: postgresql.NewAttendanceRepository(db),
		leave:      postgresql.NewLeaveRequestRepository(db),
		close:      db.Close,
	}, nil
}
