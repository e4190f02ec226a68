package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"

	"github.com/karyaprima/hrops-backend-go/internal/config"
	appHTTP "github.com/karyaprima/hrops-backend-go/internal/handler/http"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/cron"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/database"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/jwt"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/oauth"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/sse"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/storage"
	"github.com/karyaprima/hrops-backend-go/internal/repository/postgresql"
	"github.com/karyaprima/hrops-backend-go/internal/rules"
	attendanceService "github.com/karyaprima/hrops-backend-go/internal/service/attendance"
	authService "github.com/karyaprima/hrops-backend-go/internal/service/auth"
	employeeService "github.com/karyaprima/hrops-backend-go/internal/service/employee"
	notificationService "github.com/karyaprima/hrops-backend-go/internal/service/notification"
	payrollService "github.com/karyaprima/hrops-backend-go/internal/service/payroll"
	reportService "github.com/karyaprima/hrops-backend-go/internal/service/report"
)

func buildEngine(cfg *config.Config) (*rules.Engine, error) {
	weekdayStart, err := rules.ParseTimeOfDay(cfg.WorkHours.WeekdayStart)
	if err != nil {
		return nil, fmt.Errorf("invalid weekday start: %w", err)
	}
	weekdayEnd, err := rules.ParseTimeOfDay(cfg.WorkHours.WeekdayEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid weekday end: %w", err)
	}
	saturdayStart, err := rules.ParseTimeOfDay(cfg.WorkHours.SaturdayStart)
	if err != nil {
		return nil, fmt.Errorf("invalid saturday start: %w", err)
	}
	saturdayEnd, err := rules.ParseTimeOfDay(cfg.WorkHours.SaturdayEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid saturday end: %w", err)
	}

	windows := rules.WorkWindows{
		Weekday:  rules.WorkWindow{Start: weekdayStart, End: weekdayEnd},
		Saturday: rules.WorkWindow{Start: saturdayStart, End: saturdayEnd},
	}
	return rules.NewEngine(windows, cfg.Location(), nil, cfg.WorkHours.LongOvertimeMinutes), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrops-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	engine, err := buildEngine(cfg)
	if err != nil {
		log.Fatal("Error building rules engine: ", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	payrollSettingsRepo := postgresql.NewPayrollSettingsRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	softLoanRepo := postgresql.NewSoftLoanRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatalf("Unsupported storage type %q", cfg.Storage.Type)
	}

	hub := sse.NewHub()
	notifSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{}, logger)

	authSvc := authService.NewAuthService(userRepo, refreshTokenRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		employeeRepo,
		userRepo,
		engine,
		fileStorage,
		notifSvc,
		time.Duration(cfg.WorkHours.GracePeriodMinutes)*time.Minute,
		cfg.WorkHours.MinOvertimeReasonChars,
		attendanceService.Geofence{
			Latitude:     cfg.Office.Latitude,
			Longitude:    cfg.Office.Longitude,
			RadiusMeters: cfg.Office.RadiusMeters,
		},
	)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, userRepo)
	payrollSvc := payrollService.NewPayrollService(
		db,
		payrollRepo,
		payrollSettingsRepo,
		advanceRepo,
		softLoanRepo,
		attendanceRepo,
		employeeRepo,
		userRepo,
		notifSvc,
		logger,
	)
	reportSvc := reportService.NewReportService(attendanceRepo, employeeRepo)

	scheduler := cron.NewScheduler()
	jobs := cron.NewAttendanceJobs(attendanceRepo, userRepo, payrollSvc, notifSvc, engine)
	jobs.RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		JWTService:          jwtService,
		AuthHandler:         appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL),
		AttendanceHandler:   appHTTP.NewAttendanceHandler(attendanceSvc),
		EmployeeHandler:     appHTTP.NewEmployeeHandler(employeeSvc),
		PayrollHandler:      appHTTP.NewPayrollHandler(payrollSvc),
		NotificationHandler: appHTTP.NewNotificationHandler(notifSvc, jwtService),
		ReportHandler:       appHTTP.NewReportHandler(reportSvc),
		Logger:              logger,
		FrontendURL:         cfg.App.FrontendURL,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	scheduler.Stop()
	notifSvc.Stop()
}
