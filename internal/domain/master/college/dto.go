package college

import (
	"github.com/aurora-group/payroll-backend-go/internal/pkg/validator"
)

type CollegeResponse struct {
	ID           string  `json:"id"`
	SerialNumber int     `json:"serial_number"`
	CollegeCode  string  `json:"college_code"`
	Name         string  `json:"name"`
	Address      *string `json:"address,omitempty"`
}

func NewCollegeResponse(c College) CollegeResponse {
	return CollegeResponse{
		ID:           c.ID,
		SerialNumber: c.SerialNumber,
		CollegeCode:  c.CollegeCode,
		Name:         c.Name,
		Address:      c.Address,
	}
}

type CreateRequest struct {
	SerialNumber int     `json:"serial_number"`
	CollegeCode  string  `json:"college_code"`
	Name         string  `json:"name"`
	Address      *string `json:"address,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidCode(r.CollegeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "college_code",
			Message: "must be 2-50 uppercase alphanumerics or hyphens",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.SerialNumber <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "serial_number",
			Message: "must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateRequest struct {
	ID      string  `json:"-"`
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}
