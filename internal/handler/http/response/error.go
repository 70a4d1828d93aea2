package response

import (
	"errors"
	"net/http"

	"github.com/aurora-group/payroll-backend-go/internal/domain/attendance"
	"github.com/aurora-group/payroll-backend-go/internal/domain/employee"
	"github.com/aurora-group/payroll-backend-go/internal/domain/holiday"
	"github.com/aurora-group/payroll-backend-go/internal/domain/leave"
	"github.com/aurora-group/payroll-backend-go/internal/domain/master/college"
	"github.com/aurora-group/payroll-backend-go/internal/domain/master/department"
	"github.com/aurora-group/payroll-backend-go/internal/domain/master/designation"
	"github.com/aurora-group/payroll-backend-go/internal/domain/payroll"
	"github.com/aurora-group/payroll-backend-go/internal/domain/report"
	"github.com/aurora-group/payroll-backend-go/internal/domain/salary"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Master data errors
	case errors.Is(err, college.ErrCollegeNotFound):
		NotFound(w, "College not found")
	case errors.Is(err, college.ErrCollegeCodeExists):
		Conflict(w, "College code already exists")
	case errors.Is(err, college.ErrCollegeHasCycles):
		Conflict(w, "College has payroll cycles and cannot be deleted")
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, "Department already exists in this college")
	case errors.Is(err, designation.ErrDesignationNotFound):
		NotFound(w, "Designation not found")
	case errors.Is(err, designation.ErrDesignationNameExists):
		Conflict(w, "Designation already exists in this college")
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "Holiday already exists for this college and date")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this college")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUploadNotFound):
		NotFound(w, "Attendance upload not found")
	case errors.Is(err, attendance.ErrPeriodLocked):
		Conflict(w, "Attendance period belongs to a locked payroll cycle")
	case errors.Is(err, attendance.ErrUnknownEmployeeCode),
		errors.Is(err, attendance.ErrMalformedSheet),
		errors.Is(err, attendance.ErrDuplicateSheetColumn),
		errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrPolicyNotFound):
		NotFound(w, "Leave policy not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrBalanceExists):
		Conflict(w, "Leave balance already exists for this employee and year")

	// Salary domain errors
	case errors.Is(err, salary.ErrComponentNotFound):
		NotFound(w, "Salary component not found")
	case errors.Is(err, salary.ErrComponentNameExists):
		Conflict(w, "Salary component name already exists")
	case errors.Is(err, salary.ErrStructureNotFound):
		NotFound(w, "Salary structure row not found")
	case errors.Is(err, salary.ErrStructureGap),
		errors.Is(err, salary.ErrStructureOverlap):
		Conflict(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrCycleNotFound):
		NotFound(w, "Payroll cycle not found")
	case errors.Is(err, payroll.ErrEntryNotFound):
		NotFound(w, "Payroll entry not found")
	case errors.Is(err, payroll.ErrDuplicateCycle):
		Conflict(w, "Payroll cycle already exists for this college and month")
	case errors.Is(err, payroll.ErrCycleBusy):
		Conflict(w, "Payroll calculation already in progress for this cycle")
	case errors.Is(err, payroll.ErrCycleLocked):
		Conflict(w, "Payroll cycle is locked")
	case errors.Is(err, payroll.ErrCycleNotCompleted):
		Conflict(w, "Payroll cycle must be completed first")
	case errors.Is(err, payroll.ErrCycleHasFailures):
		Conflict(w, "Payroll cycle has unresolved calculation failures")
	case errors.Is(err, payroll.ErrInvalidCycleConfig):
		BadRequest(w, "Payroll cycle has no working days", nil)
	case errors.Is(err, payroll.ErrNoEntries):
		BadRequest(w, "Payroll cycle has no entries", nil)
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")

	// Report domain errors
	case errors.Is(err, report.ErrReportNotFound):
		NotFound(w, "Report not found")
	case errors.Is(err, report.ErrInvalidType):
		BadRequest(w, "Invalid report type", nil)
	case errors.Is(err, report.ErrNoPayrollData):
		BadRequest(w, "No payroll data for the requested period", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
