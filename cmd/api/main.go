package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/aurora-group/payroll-backend-go/internal/config"
	appHTTP "github.com/aurora-group/payroll-backend-go/internal/handler/http"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/cron"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/database"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/jwt"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/storage"
	"github.com/aurora-group/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/aurora-group/payroll-backend-go/internal/service/attendance"
	employeeService "github.com/aurora-group/payroll-backend-go/internal/service/employee"
	leaveService "github.com/aurora-group/payroll-backend-go/internal/service/leave"
	"github.com/aurora-group/payroll-backend-go/internal/service/master"
	payrollService "github.com/aurora-group/payroll-backend-go/internal/service/payroll"
	"github.com/aurora-group/payroll-backend-go/internal/service/payslip"
	reportService "github.com/aurora-group/payroll-backend-go/internal/service/report"
	salaryService "github.com/aurora-group/payroll-backend-go/internal/service/salary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	collegeRepo := postgresql.NewCollegeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	designationRepo := postgresql.NewDesignationRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	masterSvc := master.NewMasterService(collegeRepo, departmentRepo, designationRepo, holidayRepo, payrollRepo)
	employeeSvc := employeeService.NewService(employeeRepo, collegeRepo, departmentRepo, designationRepo)
	attendanceSvc := attendanceService.NewService(cfg.Payroll, attendanceRepo, employeeRepo, holidayRepo, payrollRepo, fileStorage)
	leaveSvc := leaveService.NewService(cfg.Leave, leaveRepo, employeeRepo, collegeRepo)
	salarySvc := salaryService.NewService(salaryRepo, employeeRepo)
	payrollSvc := payrollService.NewCycleService(
		txManager,
		cfg.Payroll,
		cfg.Leave,
		payrollRepo,
		employeeRepo,
		attendanceRepo,
		holidayRepo,
		leaveRepo,
		salaryRepo,
	)
	payslipSvc := payslip.NewPayslipService(payrollRepo, employeeRepo, collegeRepo, fileStorage)
	reportSvc := reportService.NewReportService(reportRepo, payrollRepo, collegeRepo, fileStorage)

	masterHandler := appHTTP.NewMasterHandler(masterSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, cfg.Storage.MaxUploadMB)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	payslipHandler := appHTTP.NewPayslipHandler(payslipSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	scheduler := cron.NewScheduler()
	cron.NewLeaveJobs(leaveSvc, cfg.Leave).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		masterHandler,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		salaryHandler,
		payrollHandler,
		payslipHandler,
		reportHandler,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
