// ============================================================================
// internal/httpapi/routes.go
// Chi router, middleware stack and route table
// ============================================================================

package httpapi

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"attendance-monitor/internal/attendance"
	"attendance-monitor/internal/auth"
	"attendance-monitor/internal/httpapi/handlers"
	"attendance-monitor/internal/report"
	"attendance-monitor/internal/schedule"
	"attendance-monitor/internal/semester"
	"attendance-monitor/internal/shared"
	"attendance-monitor/internal/student"
)

// Deps bundles the services the HTTP surface exposes.
type Deps struct {
	Auth       *auth.Service
	Schedules  *schedule.Service
	Attendance *attendance.Service
	Students   *student.Service
	Semesters  *semester.Service
	Reports    *report.Service
	CORS       shared.CORSConfig
}

// SetupRoutes configures the Chi router, middleware, and route handlers.
func SetupRoutes(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// 1. Global Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: deps.CORS.AllowCredentials,
		MaxAge:           deps.CORS.MaxAge,
	}))

	// 2. Initialize Handlers
	authHandler := &handlers.AuthHandler{Auth: deps.Auth}
	scheduleHandler := &handlers.ScheduleHandler{Schedules: deps.Schedules}
	attendanceHandler := &handlers.AttendanceHandler{Attendance: deps.Attendance}
	studentHandler := &handlers.StudentHandler{Students: deps.Students}
	semesterHandler := &handlers.SemesterHandler{Semesters: deps.Semesters}
	reportHandler := &handlers.ReportHandler{Reports: deps.Reports}

	// 3. Define Routes (grouped by prefix)
	r.Route("/api", func(r chi.Router) {

		// --- Public Routes ---
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/forgot-password", authHandler.ForgotPassword)
		r.Post("/auth/reset-password", authHandler.ResetPassword)

		// --- Protected Routes (Require Valid Token) ---
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(deps.Auth))

			// Current semester is visible to both roles.
			r.Get("/semester", semesterHandler.Current)

			// Professor-only surface
			r.Group(func(r chi.Router) {
				r.Use(RequireRole(shared.RoleProfessor))

				r.Route("/schedules", func(r chi.Router) {
					r.Get("/", scheduleHandler.List)
					r.Post("/", scheduleHandler.Add)
					r.Delete("/{id}", scheduleHandler.Delete)
				})
				r.Get("/sections", scheduleHandler.Sections)

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", attendanceHandler.GetSheet)
					r.Post("/", attendanceHandler.Save)
					r.Post("/mark-present", attendanceHandler.MarkPresent)
				})

				r.Route("/students", func(r chi.Router) {
					r.Get("/", studentHandler.List)
					r.Post("/", studentHandler.Add)
					r.Post("/import", studentHandler.Import)
				})

				r.Put("/semester", semesterHandler.Set)
				r.Delete("/semester", semesterHandler.ClearOverride)

				r.Get("/reports/section", reportHandler.Section)
			})

			// Student-only surface
			r.Group(func(r chi.Router) {
				r.Use(RequireRole(shared.RoleStudent))

				r.Get("/me/attendance", attendanceHandler.MyWeeks)
			})
		})
	})

	return r
}
