package http

import (
	"log/slog"
	"net/http"

	"github.com/aburakt/staffy/internal/handler/http/middleware"
	"github.com/aburakt/staffy/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authHandler AuthHandler,
	staffHandler StaffHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", authHandler.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})

			r.Route("/staff", func(r chi.Router) {
				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", staffHandler.List)
					r.Post("/", staffHandler.Create)
					r.Post("/carryover", staffHandler.ProcessCarryover)
					r.Get("/leave-balances/export", staffHandler.ExportLeaveBalances)
					r.Get("/email/{email}", staffHandler.GetByEmail)
				})

				r.Route("/{staffId}", func(r chi.Router) {
					r.With(middleware.RequireSelfOrManager).Get("/", staffHandler.Get)
					r.With(middleware.RequireSelfOrManager).Get("/leave-balance", staffHandler.GetLeaveBalance)

					// Manager only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireManager)
						r.Put("/", staffHandler.Update)
						r.Put("/deactivate", staffHandler.Deactivate)
						r.Delete("/", staffHandler.Delete)
					})
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Route("/staff/{staffId}", func(r chi.Router) {
					r.Use(middleware.RequireSelfOrManager)
					r.Get("/", attendanceHandler.ListByStaff)
					r.Get("/today", attendanceHandler.GetToday)
					r.Get("/range", attendanceHandler.ListByRange)
					r.Post("/clock-in", attendanceHandler.ClockIn)
					r.Put("/clock-out", attendanceHandler.ClockOut)
					r.Put("/break-start", attendanceHandler.StartBreak)
					r.Put("/break-end", attendanceHandler.EndBreak)
					r.Get("/monthly-report", attendanceHandler.MonthlyReport)
					r.Get("/monthly-report/export", attendanceHandler.ExportMonthlyReport)
				})

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/pending-approvals", attendanceHandler.PendingApprovals)
					r.Get("/date/{date}", attendanceHandler.ListByDate)
					r.Put("/{id}", attendanceHandler.Update)
					r.Put("/{id}/approve", attendanceHandler.Approve)
					r.Delete("/{id}", attendanceHandler.Delete)
				})

				r.Get("/{id}", attendanceHandler.Get)
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Route("/staff/{staffId}", func(r chi.Router) {
					r.Use(middleware.RequireSelfOrManager)
					r.Get("/", leaveHandler.ListByStaff)
					r.Post("/", leaveHandler.CreateRequest)
					r.Get("/export", leaveHandler.ExportByStaff)
				})

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", leaveHandler.ListRequests)
					r.Get("/status/{status}", leaveHandler.ListByStatus)
					r.Put("/{id}/approve", leaveHandler.ApproveRequest)
					r.Put("/{id}/reject", leaveHandler.RejectRequest)
					r.Delete("/{id}", leaveHandler.DeleteRequest)
				})

				r.Get("/{id}", leaveHandler.GetRequest)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
	return r
}
