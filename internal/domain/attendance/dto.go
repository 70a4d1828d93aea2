package attendance

import (
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UploadRequest struct {
	CollegeID string
	Year      int
	Month     int
	FileName  string
}

func (r *UploadRequest) Validate() error {
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

type UploadResponse struct {
	ID           string       `json:"id"`
	CollegeID    string       `json:"college_id"`
	Year         int          `json:"year"`
	Month        int          `json:"month"`
	Status       UploadStatus `json:"status"`
	RecordsCount int          `json:"records_count"`
	ErrorMessage *string      `json:"error_message,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

func NewUploadResponse(u Upload) UploadResponse {
	return UploadResponse{
		ID:           u.ID,
		CollegeID:    u.CollegeID,
		Year:         u.Year,
		Month:        u.Month,
		Status:       u.Status,
		RecordsCount: u.RecordsCount,
		ErrorMessage: u.ErrorMessage,
		CreatedAt:    u.CreatedAt,
	}
}

// SummaryRow is one employee's reconciled counts for a period.
type SummaryRow struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeCode string          `json:"employee_code"`
	EmployeeName string          `json:"employee_name"`
	Present      decimal.Decimal `json:"present"`
	Absent       decimal.Decimal `json:"absent"`
	HalfDay      decimal.Decimal `json:"half_day"`
	WeekendWork  decimal.Decimal `json:"weekend_work"`
	Holiday      decimal.Decimal `json:"holiday"`
	Leave        decimal.Decimal `json:"leave"`
}
