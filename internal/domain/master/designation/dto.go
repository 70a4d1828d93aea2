package designation

import (
	"github.com/aurora-group/payroll-backend-go/internal/pkg/validator"
)

type DesignationResponse struct {
	ID        string `json:"id"`
	CollegeID string `json:"college_id"`
	Name      string `json:"name"`
}

func NewDesignationResponse(d Designation) DesignationResponse {
	return DesignationResponse{ID: d.ID, CollegeID: d.CollegeID, Name: d.Name}
}

type CreateRequest struct {
	CollegeID string `json:"college_id"`
	Name      string `json:"name"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CollegeID) {
		errs = append(errs, validator.ValidationError{Field: "college_id", Message: "college_id is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
