package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/retail-erp/workforce-backend-go/internal/domain/user"
	"github.com/retail-erp/workforce-backend-go/internal/handler/http/middleware"
	"github.com/retail-erp/workforce-backend-go/internal/handler/http/response"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/jwt"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	LogLevel       slog.Level
	// HealthCheck, when set, backs /health; a failure reports 503.
	HealthCheck func(ctx context.Context) error
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	staffHandler StaffHandler,
	attendanceHandler AttendanceHandler,
	shiftHandler ShiftHandler,
	leaveHandler LeaveHandler,
	puantajHandler PuantajHandler,
	targetHandler TargetHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if opts.HealthCheck != nil {
			if err := opts.HealthCheck(r.Context()); err != nil {
				slog.Error("health check failed", "error", err)
				response.ServiceUnavailable(w, "Database unavailable")
				return
			}
		}
		response.Success(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)
		r.Use(middleware.RequireCompany)

		r.With(middleware.RequirePermission(user.PermissionStaffView)).Get("/staff", staffHandler.List)

		r.Route("/attendance", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/", attendanceHandler.List)
			r.With(middleware.RequirePermission(user.PermissionAttendanceRecord)).Post("/events", attendanceHandler.RecordEvent)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceCorrect))
				r.Put("/{id}", attendanceHandler.Correct)
				r.Delete("/{id}", attendanceHandler.Delete)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionShiftView)).Get("/", shiftHandler.List)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionShiftManage))
				r.Post("/", shiftHandler.Create)
				r.Post("/week", shiftHandler.PlanWeek)
				r.Delete("/{id}", shiftHandler.Delete)
			})
		})

		r.Route("/leaves", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/", leaveHandler.ListRequests)
			r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", leaveHandler.CreateRequest)
			r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Patch("/{id}/status", leaveHandler.UpdateStatus)
		})

		r.Route("/puantaj", func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionPuantajView))
			r.Get("/", puantajHandler.GetMonthly)
			r.Get("/export", puantajHandler.Export)
			r.Get("/{staffID}", puantajHandler.GetForStaff)
		})

		r.Route("/targets", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionTargetView)).Get("/", targetHandler.ListWithProgress)
			r.With(middleware.RequirePermission(user.PermissionTargetManage)).Post("/", targetHandler.Create)
		})

		r.Route("/payrolls", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPayrollView))
				r.Get("/", payrollHandler.ListPayrollRecords)
				r.Get("/{id}", payrollHandler.GetPayrollRecord)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
				r.Put("/", payrollHandler.UpsertPayrollRecord)
				r.Post("/generate", payrollHandler.GeneratePayroll)
			})
			r.With(middleware.RequirePermission(user.PermissionPayrollPay)).Post("/{id}/pay", payrollHandler.MarkPaid)
		})
	})

	return r
}

// NewRequestLogger builds the ECS-shaped JSON logger used for request logs.
func NewRequestLogger(w io.Writer, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "development")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("env", env),
	)
}
