package payroll

import (
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CYCLE DTOs ==========

type CalculateRequest struct {
	CollegeID string `json:"college_id"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CollegeID) {
		errs = append(errs, validator.ValidationError{Field: "college_id", Message: "is required"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LockRequest struct {
	// AcknowledgeFailures permits locking a cycle whose failure manifest is
	// non-empty. The manifest stays on the cycle for audit.
	AcknowledgeFailures bool `json:"acknowledge_failures"`
}

type CycleResponse struct {
	ID               string         `json:"id"`
	CollegeID        string         `json:"college_id"`
	CollegeCode      *string        `json:"college_code,omitempty"`
	CollegeName      *string        `json:"college_name,omitempty"`
	Year             int            `json:"year"`
	Month            int            `json:"month"`
	TotalWorkingDays int            `json:"total_working_days"`
	Status           CycleStatus    `json:"status"`
	Failures         []CycleFailure `json:"failures,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	LockedAt         *time.Time     `json:"locked_at,omitempty"`
}

func NewCycleResponse(c Cycle) CycleResponse {
	return CycleResponse{
		ID:               c.ID,
		CollegeID:        c.CollegeID,
		CollegeCode:      c.CollegeCode,
		CollegeName:      c.CollegeName,
		Year:             c.Year,
		Month:            c.Month,
		TotalWorkingDays: c.TotalWorkingDays,
		Status:           c.Status,
		Failures:         c.Failures,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
		LockedAt:         c.LockedAt,
	}
}

type CycleFilter struct {
	CollegeID string
	Year      int
	Month     int
	Status    string
	Page      int
	Limit     int
}

// ========== PAYSLIP DTOs ==========

type PayslipResponse struct {
	ID          string    `json:"id"`
	EntryID     string    `json:"entry_id"`
	EmployeeID  string    `json:"employee_id"`
	CycleID     string    `json:"cycle_id"`
	FilePath    string    `json:"file_path"`
	GeneratedAt time.Time `json:"generated_at"`
}

func NewPayslipResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:          p.ID,
		EntryID:     p.EntryID,
		EmployeeID:  p.EmployeeID,
		CycleID:     p.CycleID,
		FilePath:    p.FilePath,
		GeneratedAt: p.GeneratedAt,
	}
}

// ========== ENTRY DTOs ==========

type EntryComponentResponse struct {
	ComponentID   string          `json:"component_id"`
	ComponentName string          `json:"component_name"`
	ComponentType string          `json:"component_type"`
	Amount        decimal.Decimal `json:"amount"`
}

type EntryResponse struct {
	ID              string                   `json:"id"`
	CycleID         string                   `json:"cycle_id"`
	EmployeeID      string                   `json:"employee_id"`
	EmployeeCode    *string                  `json:"employee_code,omitempty"`
	EmployeeName    *string                  `json:"employee_name,omitempty"`
	DaysPresent     decimal.Decimal          `json:"days_present"`
	DaysAbsent      decimal.Decimal          `json:"days_absent"`
	WeekendWorkDays decimal.Decimal          `json:"weekend_work_days"`
	PaidLeavesUsed  decimal.Decimal          `json:"paid_leaves_used"`
	CompLeavesUsed  decimal.Decimal          `json:"comp_leaves_used"`
	UnpaidLeaves    decimal.Decimal          `json:"unpaid_leaves"`
	LossOfPay       decimal.Decimal          `json:"loss_of_pay"`
	GrossEarnings   decimal.Decimal          `json:"gross_earnings"`
	TotalDeductions decimal.Decimal          `json:"total_deductions"`
	NetPay          decimal.Decimal          `json:"net_pay"`
	Components      []EntryComponentResponse `json:"components,omitempty"`
}

func NewEntryResponse(e Entry) EntryResponse {
	resp := EntryResponse{
		ID:              e.ID,
		CycleID:         e.CycleID,
		EmployeeID:      e.EmployeeID,
		EmployeeCode:    e.EmployeeCode,
		EmployeeName:    e.EmployeeName,
		DaysPresent:     e.DaysPresent,
		DaysAbsent:      e.DaysAbsent,
		WeekendWorkDays: e.WeekendWorkDays,
		PaidLeavesUsed:  e.PaidLeavesUsed,
		CompLeavesUsed:  e.CompLeavesUsed,
		UnpaidLeaves:    e.UnpaidLeaves,
		LossOfPay:       e.LossOfPay,
		GrossEarnings:   e.GrossEarnings,
		TotalDeductions: e.TotalDeductions,
		NetPay:          e.NetPay,
	}
	for _, c := range e.Components {
		resp.Components = append(resp.Components, EntryComponentResponse{
			ComponentID:   c.ComponentID,
			ComponentName: c.ComponentName,
			ComponentType: c.ComponentType,
			Amount:        c.Amount,
		})
	}
	return resp
}
