package employee

import (
	"context"
	"fmt"

	"github.com/aurora-group/payroll-backend-go/internal/domain/employee"
	"github.com/aurora-group/payroll-backend-go/internal/domain/master/college"
	"github.com/aurora-group/payroll-backend-go/internal/domain/master/department"
	"github.com/aurora-group/payroll-backend-go/internal/domain/master/designation"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/validator"
)

type ServiceImpl struct {
	employee.Repository
	collegeRepo     college.Repository
	departmentRepo  department.Repository
	designationRepo designation.Repository
}

func NewService(
	employeeRepo employee.Repository,
	collegeRepo college.Repository,
	departmentRepo department.Repository,
	designationRepo designation.Repository,
) employee.Service {
	return &ServiceImpl{
		Repository:      employeeRepo,
		collegeRepo:     collegeRepo,
		departmentRepo:  departmentRepo,
		designationRepo: designationRepo,
	}
}

// Create implements employee.Service.
func (s *ServiceImpl) Create(ctx context.Context, req employee.CreateRequest) (employee.Response, error) {
	if err := req.Validate(); err != nil {
		return employee.Response{}, err
	}

	if _, err := s.collegeRepo.GetByID(ctx, req.CollegeID); err != nil {
		return employee.Response{}, err
	}
	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return employee.Response{}, err
	}
	if _, err := s.designationRepo.GetByID(ctx, req.DesignationID); err != nil {
		return employee.Response{}, err
	}

	joining, _ := validator.ParseDate(req.DateOfJoining)

	created, err := s.Repository.Create(ctx, employee.Employee{
		EmployeeCode:  req.EmployeeCode,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		CollegeID:     req.CollegeID,
		DepartmentID:  req.DepartmentID,
		DesignationID: req.DesignationID,
		DateOfJoining: joining,
		BankName:      req.BankName,
		BankAccount:   req.BankAccount,
		IFSCCode:      req.IFSCCode,
		PANNumber:     req.PANNumber,
		CTC:           req.CTC,
		MonthlyGross:  req.MonthlyGross,
		IsActive:      true,
	})
	if err != nil {
		return employee.Response{}, err
	}
	return employee.NewResponse(created), nil
}

// Get implements employee.Service.
func (s *ServiceImpl) Get(ctx context.Context, id string) (employee.Response, error) {
	emp, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return employee.Response{}, err
	}
	return employee.NewResponse(emp), nil
}

// GetByCode implements employee.Service.
func (s *ServiceImpl) GetByCode(ctx context.Context, code string) (employee.Response, error) {
	emp, err := s.Repository.GetByCode(ctx, code)
	if err != nil {
		return employee.Response{}, err
	}
	return employee.NewResponse(emp), nil
}

// List implements employee.Service.
func (s *ServiceImpl) List(ctx context.Context, filter employee.Filter) ([]employee.Response, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, total, err := s.Repository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	responses := make([]employee.Response, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewResponse(e))
	}
	return responses, total, nil
}

// Update implements employee.Service.
func (s *ServiceImpl) Update(ctx context.Context, req employee.UpdateRequest) (employee.Response, error) {
	if _, err := s.Repository.GetByID(ctx, req.ID); err != nil {
		return employee.Response{}, err
	}
	if req.Email != nil && !validator.IsValidEmail(*req.Email) {
		return employee.Response{}, validator.ValidationErrors{
			{Field: "email", Message: "must be a valid email address"},
		}
	}

	if err := s.Repository.Update(ctx, req); err != nil {
		return employee.Response{}, err
	}

	emp, err := s.Repository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.Response{}, err
	}
	return employee.NewResponse(emp), nil
}

// Deactivate implements employee.Service.
func (s *ServiceImpl) Deactivate(ctx context.Context, id string) error {
	if _, err := s.Repository.GetByID(ctx, id); err != nil {
		return err
	}
	return s.Repository.Deactivate(ctx, id)
}
