package salary

import (
	"github.com/aurora-group/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateComponentRequest struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"` // "EARNING" or "DEDUCTION"
	IsDefault    bool    `json:"is_default"`
	IsProratable bool    `json:"is_proratable"`
	Description  *string `json:"description,omitempty"`
}

func (r *CreateComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !ComponentType(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'EARNING' or 'DEDUCTION'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateStructureRequest struct {
	EmployeeID    string          `json:"-"`
	ComponentID   string          `json:"component_id"`
	Amount        decimal.Decimal `json:"amount"`
	EffectiveFrom string          `json:"effective_from"`
	EffectiveTo   *string         `json:"effective_to,omitempty"`
}

func (r *CreateStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ComponentID) {
		errs = append(errs, validator.ValidationError{Field: "component_id", Message: "is required"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}
	if !validator.IsValidDate(r.EffectiveFrom) {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be YYYY-MM-DD"})
	}
	if r.EffectiveTo != nil && !validator.IsValidDate(*r.EffectiveTo) {
		errs = append(errs, validator.ValidationError{Field: "effective_to", Message: "must be YYYY-MM-DD"})
	}
	if r.EffectiveTo != nil && validator.IsValidDate(r.EffectiveFrom) {
		from, _ := validator.ParseDate(r.EffectiveFrom)
		to, _ := validator.ParseDate(*r.EffectiveTo)
		if to.Before(from) {
			errs = append(errs, validator.ValidationError{Field: "effective_to", Message: "must not precede effective_from"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComponentResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	IsDefault    bool    `json:"is_default"`
	IsProratable bool    `json:"is_proratable"`
	Description  *string `json:"description,omitempty"`
}

func NewComponentResponse(c Component) ComponentResponse {
	return ComponentResponse{
		ID:           c.ID,
		Name:         c.Name,
		Type:         string(c.Type),
		IsDefault:    c.IsDefault,
		IsProratable: c.IsProratable,
		Description:  c.Description,
	}
}

type StructureResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	ComponentID   string          `json:"component_id"`
	ComponentName *string         `json:"component_name,omitempty"`
	ComponentType *ComponentType  `json:"component_type,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	EffectiveFrom string          `json:"effective_from"`
	EffectiveTo   *string         `json:"effective_to,omitempty"`
}

func NewStructureResponse(s Structure) StructureResponse {
	resp := StructureResponse{
		ID:            s.ID,
		EmployeeID:    s.EmployeeID,
		ComponentID:   s.ComponentID,
		ComponentName: s.ComponentName,
		ComponentType: s.ComponentType,
		Amount:        s.Amount,
		EffectiveFrom: s.EffectiveFrom.Format("2006-01-02"),
	}
	if s.EffectiveTo != nil {
		to := s.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &to
	}
	return resp
}
