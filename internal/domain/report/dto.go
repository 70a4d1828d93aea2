package report

import (
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	Type      string  `json:"type"` // "SALARY_STATEMENT" or "CONSOLIDATED"
	CollegeID *string `json:"college_id,omitempty"`
	Year      int     `json:"year"`
	Month     int     `json:"month"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Type(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'SALARY_STATEMENT' or 'CONSOLIDATED'"})
	}
	if Type(r.Type) == TypeSalaryStatement && (r.CollegeID == nil || validator.IsEmpty(*r.CollegeID)) {
		errs = append(errs, validator.ValidationError{Field: "college_id", Message: "is required for salary statements"})
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

type Response struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	CollegeID   *string   `json:"college_id,omitempty"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Name        string    `json:"name"`
	FilePath    string    `json:"file_path"`
	GeneratedAt time.Time `json:"generated_at"`
}

func NewResponse(r Report) Response {
	return Response{
		ID:          r.ID,
		Type:        r.Type,
		CollegeID:   r.CollegeID,
		Year:        r.Year,
		Month:       r.Month,
		Name:        r.Name,
		FilePath:    r.FilePath,
		GeneratedAt: r.GeneratedAt,
	}
}
