package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/karyaprima/hrops-backend-go/internal/handler/http/middleware"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/jwt"
)

type RouterDeps struct {
	JWTService          jwt.Service
	AuthHandler         AuthHandler
	AttendanceHandler   AttendanceHandler
	EmployeeHandler     EmployeeHandler
	PayrollHandler      PayrollHandler
	NotificationHandler NotificationHandler
	ReportHandler       ReportHandler
	Logger              *slog.Logger
	FrontendURL         string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(deps.Logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", deps.AuthHandler.RefreshToken)
			r.Post("/logout", deps.AuthHandler.Logout)

			r.Route("/login", func(r chi.Router) {
				r.Post("/", deps.AuthHandler.Login)
				r.Post("/employee-code", deps.AuthHandler.LoginWithEmployeeCode)
				r.Get("/oauth/google", deps.AuthHandler.LoginWithGoogle)
			})

			r.Get("/oauth/callback/google", deps.AuthHandler.OAuthCallbackGoogle)
		})

		// EventSource cannot set an Authorization header; the stream endpoint
		// authenticates with a short-lived token issued to logged-in clients.
		r.Get("/notifications/stream", deps.NotificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", deps.AttendanceHandler.CheckIn)
				r.Post("/check-out", deps.AttendanceHandler.CheckOut)
				r.Post("/overtime/start", deps.AttendanceHandler.OvertimeStart)
				r.Post("/overtime/end", deps.AttendanceHandler.OvertimeEnd)
				r.Get("/today", deps.AttendanceHandler.Today)
				r.Get("/my", deps.AttendanceHandler.GetMyAttendance)
				r.Get("/{id}", deps.AttendanceHandler.Get)

				// Approver roles only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Get("/", deps.AttendanceHandler.List)
					r.Post("/{id}/approve", deps.AttendanceHandler.Approve)
					r.Post("/{id}/reject", deps.AttendanceHandler.Reject)
					r.Post("/bulk-approve", deps.AttendanceHandler.BulkApprove)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", deps.EmployeeHandler.List)
				r.Post("/", deps.EmployeeHandler.Create)
				r.Get("/{id}", deps.EmployeeHandler.Get)
				r.Put("/{id}", deps.EmployeeHandler.Update)
				r.Delete("/{id}", deps.EmployeeHandler.Deactivate)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/my", deps.PayrollHandler.GetMyPayroll)
				r.Get("/{id}", deps.PayrollHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/", deps.PayrollHandler.List)
					r.Post("/generate", deps.PayrollHandler.Generate)
					r.Post("/{id}/finalize", deps.PayrollHandler.Finalize)
					r.Get("/settings", deps.PayrollHandler.GetSettings)
					r.Put("/settings", deps.PayrollHandler.UpdateSettings)

					r.Route("/advances", func(r chi.Router) {
						r.Get("/", deps.PayrollHandler.ListAdvances)
						r.Post("/", deps.PayrollHandler.CreateAdvance)
						r.Delete("/{id}", deps.PayrollHandler.DeleteAdvance)
					})

					r.Route("/soft-loans", func(r chi.Router) {
						r.Get("/", deps.PayrollHandler.ListSoftLoans)
						r.Post("/", deps.PayrollHandler.CreateSoftLoan)
					})
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", deps.NotificationHandler.List)
				r.Get("/unread-count", deps.NotificationHandler.UnreadCount)
				r.Get("/stream-token", deps.NotificationHandler.GetStreamToken)
				r.Put("/read", deps.NotificationHandler.MarkAsRead)
				r.Put("/read-all", deps.NotificationHandler.MarkAllAsRead)
				r.Delete("/{id}", deps.NotificationHandler.Delete)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireApprover)
				r.Get("/attendance", deps.ReportHandler.MonthlyAttendance)
				r.Get("/attendance/export", deps.ReportHandler.ExportMonthlyAttendance)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	return r
}
