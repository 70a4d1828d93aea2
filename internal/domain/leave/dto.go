package leave

import (
	"github.com/aurora-group/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePolicyRequest struct {
	CollegeID         string `json:"college_id"`
	Name              string `json:"name"`
	PaidLeavesPerYear int    `json:"paid_leaves_per_year"`
	MaxCarryForward   int    `json:"max_carry_forward"`
	CompLeaveEnabled  *bool  `json:"comp_leave_enabled,omitempty"`
}

func (r *CreatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CollegeID) {
		errs = append(errs, validator.ValidationError{Field: "college_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.PaidLeavesPerYear < 0 {
		errs = append(errs, validator.ValidationError{Field: "paid_leaves_per_year", Message: "must be non-negative"})
	}
	if r.MaxCarryForward < 0 {
		errs = append(errs, validator.ValidationError{Field: "max_carry_forward", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BalanceResponse struct {
	EmployeeID         string          `json:"employee_id"`
	Year               int             `json:"year"`
	PaidLeavesTotal    decimal.Decimal `json:"paid_leaves_total"`
	PaidLeavesUsed     decimal.Decimal `json:"paid_leaves_used"`
	CompLeavesEarned   decimal.Decimal `json:"comp_leaves_earned"`
	CompLeavesUsed     decimal.Decimal `json:"comp_leaves_used"`
	CarryForwardLeaves decimal.Decimal `json:"carry_forward_leaves"`
	PaidAvailable      decimal.Decimal `json:"paid_available"`
	CompAvailable      decimal.Decimal `json:"comp_available"`
}

func NewBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		EmployeeID:         b.EmployeeID,
		Year:               b.Year,
		PaidLeavesTotal:    b.PaidLeavesTotal,
		PaidLeavesUsed:     b.PaidLeavesUsed,
		CompLeavesEarned:   b.CompLeavesEarned,
		CompLeavesUsed:     b.CompLeavesUsed,
		CarryForwardLeaves: b.CarryForwardLeaves,
		PaidAvailable:      b.PaidAvailable(),
		CompAvailable:      b.CompAvailable(),
	}
}
