package http

import (
	"log/slog"
	"os"

	"github.com/aurora-group/payroll-backend-go/internal/handler/http/middleware"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	masterHandler MasterHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	salaryHandler SalaryHandler,
	payrollHandler PayrollHandler,
	payslipHandler PayslipHandler,
	reportHandler ReportHandler,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "aurora-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/colleges", func(r chi.Router) {
				r.Post("/", masterHandler.CreateCollege)
				r.Get("/", masterHandler.ListColleges)
				r.Get("/{id}", masterHandler.GetCollege)
				r.Put("/{id}", masterHandler.UpdateCollege)
				r.Delete("/{id}", masterHandler.DeleteCollege)
			})

			r.Route("/departments", func(r chi.Router) {
				r.Post("/", masterHandler.CreateDepartment)
				r.Get("/", masterHandler.ListDepartments)
				r.Delete("/{id}", masterHandler.DeleteDepartment)
			})

			r.Route("/designations", func(r chi.Router) {
				r.Post("/", masterHandler.CreateDesignation)
				r.Get("/", masterHandler.ListDesignations)
				r.Delete("/{id}", masterHandler.DeleteDesignation)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Post("/", masterHandler.CreateHoliday)
				r.Get("/", masterHandler.ListHolidays)
				r.Delete("/{id}", masterHandler.DeleteHoliday)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Post("/", employeeHandler.Create)
				r.Get("/", employeeHandler.List)
				r.Get("/code/{code}", employeeHandler.GetByCode)
				r.Get("/{id}", employeeHandler.Get)
				r.Put("/{id}", employeeHandler.Update)
				r.Delete("/{id}", employeeHandler.Deactivate)

				r.Route("/{employeeID}/salary-structures", func(r chi.Router) {
					r.Post("/", salaryHandler.AssignStructure)
					r.Get("/", salaryHandler.ListStructures)
					r.Get("/resolve", salaryHandler.ResolveForDate)
				})
				r.Get("/{employeeID}/leave-balance", leaveHandler.GetBalance)
			})

			r.Route("/salary-components", func(r chi.Router) {
				r.Post("/", salaryHandler.CreateComponent)
				r.Get("/", salaryHandler.ListComponents)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/policies", leaveHandler.CreatePolicy)
				r.Get("/policies", leaveHandler.ListPolicies)
				r.Get("/balances", leaveHandler.ListBalances)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/uploads", attendanceHandler.Upload)
				r.Get("/uploads", attendanceHandler.ListUploads)
				r.Get("/uploads/{id}", attendanceHandler.GetUpload)
				r.Get("/summary", attendanceHandler.Summary)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/calculate", payrollHandler.Calculate)
				r.Get("/summary", payrollHandler.GetSummary)

				r.Route("/cycles", func(r chi.Router) {
					r.Get("/", payrollHandler.ListCycles)
					r.Get("/{id}", payrollHandler.GetCycle)
					r.Post("/{id}/lock", payrollHandler.Lock)
					r.Get("/{id}/entries", payrollHandler.ListEntries)
					r.Post("/{id}/payslips", payslipHandler.Generate)
					r.Get("/{id}/payslips/download", payslipHandler.DownloadArchive)
				})

				r.Route("/entries", func(r chi.Router) {
					r.Get("/{id}", payrollHandler.GetEntry)
					r.Get("/{id}/payslip", payslipHandler.GetForEntry)
					r.Get("/{id}/payslip/download", payslipHandler.Download)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Post("/", reportHandler.Generate)
				r.Get("/", reportHandler.List)
				r.Get("/{id}", reportHandler.Get)
				r.Get("/{id}/download", reportHandler.Download)
			})
		})
	})
	return r
}
