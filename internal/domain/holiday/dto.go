package holiday

import (
	"time"

	"github.com/aurora-group/payroll-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	CollegeID  string `json:"college_id"`
	Date       string `json:"date"`
	Name       string `json:"name"`
	IsOptional bool   `json:"is_optional"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CollegeID) {
		errs = append(errs, validator.ValidationError{Field: "college_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID         string    `json:"id"`
	CollegeID  string    `json:"college_id"`
	Date       string    `json:"date"`
	Name       string    `json:"name"`
	IsOptional bool      `json:"is_optional"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewResponse(h Holiday) Response {
	return Response{
		ID:         h.ID,
		CollegeID:  h.CollegeID,
		Date:       h.Date.Format("2006-01-02"),
		Name:       h.Name,
		IsOptional: h.IsOptional,
		CreatedAt:  h.CreatedAt,
	}
}
