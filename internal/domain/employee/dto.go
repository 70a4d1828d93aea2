package employee

import (
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	EmployeeCode  string          `json:"employee_code"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Email         string          `json:"email"`
	Phone         *string         `json:"phone,omitempty"`
	CollegeID     string          `json:"college_id"`
	DepartmentID  string          `json:"department_id"`
	DesignationID string          `json:"designation_id"`
	DateOfJoining string          `json:"date_of_joining"`
	BankName      *string         `json:"bank_name,omitempty"`
	BankAccount   *string         `json:"bank_account_number,omitempty"`
	IFSCCode      *string         `json:"ifsc_code,omitempty"`
	PANNumber     *string         `json:"pan_number,omitempty"`
	CTC           decimal.Decimal `json:"ctc"`
	MonthlyGross  decimal.Decimal `json:"monthly_gross"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "must be 2-50 uppercase alphanumerics or hyphens"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if validator.IsEmpty(r.CollegeID) {
		errs = append(errs, validator.ValidationError{Field: "college_id", Message: "is required"})
	}
	if validator.IsEmpty(r.DepartmentID) {
		errs = append(errs, validator.ValidationError{Field: "department_id", Message: "is required"})
	}
	if validator.IsEmpty(r.DesignationID) {
		errs = append(errs, validator.ValidationError{Field: "designation_id", Message: "is required"})
	}
	if !validator.IsValidDate(r.DateOfJoining) {
		errs = append(errs, validator.ValidationError{Field: "date_of_joining", Message: "must be YYYY-MM-DD"})
	}
	if r.MonthlyGross.IsNegative() || r.MonthlyGross.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "monthly_gross", Message: "must be positive"})
	}
	if r.CTC.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "ctc", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRequest struct {
	ID            string           `json:"-"`
	FirstName     *string          `json:"first_name,omitempty"`
	LastName      *string          `json:"last_name,omitempty"`
	Email         *string          `json:"email,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	DepartmentID  *string          `json:"department_id,omitempty"`
	DesignationID *string          `json:"designation_id,omitempty"`
	DateOfLeaving *string          `json:"date_of_leaving,omitempty"`
	BankName      *string          `json:"bank_name,omitempty"`
	BankAccount   *string          `json:"bank_account_number,omitempty"`
	IFSCCode      *string          `json:"ifsc_code,omitempty"`
	PANNumber     *string          `json:"pan_number,omitempty"`
	CTC           *decimal.Decimal `json:"ctc,omitempty"`
	MonthlyGross  *decimal.Decimal `json:"monthly_gross,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

type Filter struct {
	CollegeID    string
	DepartmentID string
	ActiveOnly   bool
	Search       string
	Page         int
	Limit        int
}

type Response struct {
	ID              string          `json:"id"`
	EmployeeCode    string          `json:"employee_code"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Email           string          `json:"email"`
	Phone           *string         `json:"phone,omitempty"`
	CollegeID       string          `json:"college_id"`
	DepartmentID    string          `json:"department_id"`
	DepartmentName  *string         `json:"department_name,omitempty"`
	DesignationID   string          `json:"designation_id"`
	DesignationName *string         `json:"designation_name,omitempty"`
	DateOfJoining   string          `json:"date_of_joining"`
	DateOfLeaving   *string         `json:"date_of_leaving,omitempty"`
	CTC             decimal.Decimal `json:"ctc"`
	MonthlyGross    decimal.Decimal `json:"monthly_gross"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
}

func NewResponse(e Employee) Response {
	resp := Response{
		ID:              e.ID,
		EmployeeCode:    e.EmployeeCode,
		FirstName:       e.FirstName,
		LastName:        e.LastName,
		Email:           e.Email,
		Phone:           e.Phone,
		CollegeID:       e.CollegeID,
		DepartmentID:    e.DepartmentID,
		DepartmentName:  e.DepartmentName,
		DesignationID:   e.DesignationID,
		DesignationName: e.DesignationName,
		DateOfJoining:   e.DateOfJoining.Format("2006-01-02"),
		CTC:             e.CTC,
		MonthlyGross:    e.MonthlyGross,
		IsActive:        e.IsActive,
		CreatedAt:       e.CreatedAt,
	}
	if e.DateOfLeaving != nil {
		leaving := e.DateOfLeaving.Format("2006-01-02")
		resp.DateOfLeaving = &leaving
	}
	return resp
}
