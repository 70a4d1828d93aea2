package master

import (
	"context"
	"errors"
	"fmt"

	"github.com/aurora-group/payroll-backend-go/internal/domain/holiday"
	"github.com/aurora-group/payroll-backend-go/internal/domain/master/college"
	"github.com/aurora-group/payroll-backend-go/internal/domain/master/department"
	"github.com/aurora-group/payroll-backend-go/internal/domain/master/designation"
	"github.com/aurora-group/payroll-backend-go/internal/domain/payroll"
	"github.com/aurora-group/payroll-backend-go/internal/pkg/validator"
)

type MasterService interface {
	// College operations
	CreateCollege(ctx context.Context, req college.CreateRequest) (college.CollegeResponse, error)
	GetCollege(ctx context.Context, id string) (college.CollegeResponse, error)
	ListColleges(ctx context.Context) ([]college.CollegeResponse, error)
	UpdateCollege(ctx context.Context, req college.UpdateRequest) error
	DeleteCollege(ctx context.Context, id string) error

	// Department operations
	CreateDepartment(ctx context.Context, req department.CreateRequest) (department.DepartmentResponse, error)
	ListDepartments(ctx context.Context, collegeID string) ([]department.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id string) error

	// Designation operations
	CreateDesignation(ctx context.Context, req designation.CreateRequest) (designation.DesignationResponse, error)
	ListDesignations(ctx context.Context, collegeID string) ([]designation.DesignationResponse, error)
	DeleteDesignation(ctx context.Context, id string) error

	// Holiday operations
	CreateHoliday(ctx context.Context, req holiday.CreateRequest) (holiday.Response, error)
	ListHolidays(ctx context.Context, collegeID string, year int) ([]holiday.Response, error)
	DeleteHoliday(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	collegeRepo     college.Repository
	departmentRepo  department.Repository
	designationRepo designation.Repository
	holidayRepo     holiday.Repository
	cycleRepo       payroll.CycleRepository
}

func NewMasterService(
	collegeRepo college.Repository,
	departmentRepo department.Repository,
	designationRepo designation.Repository,
	holidayRepo holiday.Repository,
	cycleRepo payroll.CycleRepository,
) MasterService {
	return &masterServiceImpl{
		collegeRepo:     collegeRepo,
		departmentRepo:  departmentRepo,
		designationRepo: designationRepo,
		holidayRepo:     holidayRepo,
		cycleRepo:       cycleRepo,
	}
}

// ==================== COLLEGE OPERATIONS ====================

func (s *masterServiceImpl) CreateCollege(ctx context.Context, req college.CreateRequest) (college.CollegeResponse, error) {
	if err := req.Validate(); err != nil {
		return college.CollegeResponse{}, err
	}

	if _, err := s.collegeRepo.GetByCode(ctx, req.CollegeCode); err == nil {
		return college.CollegeResponse{}, college.ErrCollegeCodeExists
	} else if !errors.Is(err, college.ErrCollegeNotFound) {
		return college.CollegeResponse{}, fmt.Errorf("failed to check college code: %w", err)
	}

	created, err := s.collegeRepo.Create(ctx, college.College{
		SerialNumber: req.SerialNumber,
		CollegeCode:  req.CollegeCode,
		Name:         req.Name,
		Address:      req.Address,
	})
	if err != nil {
		return college.CollegeResponse{}, fmt.Errorf("failed to create college: %w", err)
	}
	return college.NewCollegeResponse(created), nil
}

func (s *masterServiceImpl) GetCollege(ctx context.Context, id string) (college.CollegeResponse, error) {
	c, err := s.collegeRepo.GetByID(ctx, id)
	if err != nil {
		return college.CollegeResponse{}, err
	}
	return college.NewCollegeResponse(c), nil
}

func (s *masterServiceImpl) ListColleges(ctx context.Context) ([]college.CollegeResponse, error) {
	colleges, err := s.collegeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list colleges: %w", err)
	}
	responses := make([]college.CollegeResponse, 0, len(colleges))
	for _, c := range colleges {
		responses = append(responses, college.NewCollegeResponse(c))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateCollege(ctx context.Context, req college.UpdateRequest) error {
	if _, err := s.collegeRepo.GetByID(ctx, req.ID); err != nil {
		return err
	}
	return s.collegeRepo.Update(ctx, req)
}

func (s *masterServiceImpl) DeleteCollege(ctx context.Context, id string) error {
	c, err := s.collegeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// A college with payroll history stays; its cycles are the audit trail.
	cycles, _, err := s.cycleRepo.ListCycles(ctx, payroll.CycleFilter{CollegeID: c.ID, Limit: 1})
	if err != nil {
		return fmt.Errorf("failed to check payroll cycles: %w", err)
	}
	if len(cycles) > 0 {
		return college.ErrCollegeHasCycles
	}

	return s.collegeRepo.Delete(ctx, id)
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *masterServiceImpl) CreateDepartment(ctx context.Context, req department.CreateRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}
	if _, err := s.collegeRepo.GetByID(ctx, req.CollegeID); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{
		CollegeID: req.CollegeID,
		Name:      req.Name,
	})
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to create department: %w", err)
	}
	return department.NewDepartmentResponse(created), nil
}

func (s *masterServiceImpl) ListDepartments(ctx context.Context, collegeID string) ([]department.DepartmentResponse, error) {
	departments, err := s.departmentRepo.ListByCollege(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, department.NewDepartmentResponse(d))
	}
	return responses, nil
}

func (s *masterServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	if _, err := s.departmentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.departmentRepo.Delete(ctx, id)
}

// ==================== DESIGNATION OPERATIONS ====================

func (s *masterServiceImpl) CreateDesignation(ctx context.Context, req designation.CreateRequest) (designation.DesignationResponse, error) {
	if err := req.Validate(); err != nil {
		return designation.DesignationResponse{}, err
	}
	if _, err := s.collegeRepo.GetByID(ctx, req.CollegeID); err != nil {
		return designation.DesignationResponse{}, err
	}

	created, err := s.designationRepo.Create(ctx, designation.Designation{
		CollegeID: req.CollegeID,
		Name:      req.Name,
	})
	if err != nil {
		return designation.DesignationResponse{}, fmt.Errorf("failed to create designation: %w", err)
	}
	return designation.NewDesignationResponse(created), nil
}

func (s *masterServiceImpl) ListDesignations(ctx context.Context, collegeID string) ([]designation.DesignationResponse, error) {
	designations, err := s.designationRepo.ListByCollege(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list designations: %w", err)
	}
	responses := make([]designation.DesignationResponse, 0, len(designations))
	for _, d := range designations {
		responses = append(responses, designation.NewDesignationResponse(d))
	}
	return responses, nil
}

func (s *masterServiceImpl) DeleteDesignation(ctx context.Context, id string) error {
	if _, err := s.designationRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.designationRepo.Delete(ctx, id)
}

// ==================== HOLIDAY OPERATIONS ====================

func (s *masterServiceImpl) CreateHoliday(ctx context.Context, req holiday.CreateRequest) (holiday.Response, error) {
	if err := req.Validate(); err != nil {
		return holiday.Response{}, err
	}
	if _, err := s.collegeRepo.GetByID(ctx, req.CollegeID); err != nil {
		return holiday.Response{}, err
	}

	date, _ := validator.ParseDate(req.Date)
	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		CollegeID:  req.CollegeID,
		Date:       date,
		Name:       req.Name,
		IsOptional: req.IsOptional,
	})
	if err != nil {
		return holiday.Response{}, err
	}
	return holiday.NewResponse(created), nil
}

func (s *masterServiceImpl) ListHolidays(ctx context.Context, collegeID string, year int) ([]holiday.Response, error) {
	holidays, err := s.holidayRepo.ListForCollege(ctx, collegeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	responses := make([]holiday.Response, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.NewResponse(h))
	}
	return responses, nil
}

func (s *masterServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	if _, err := s.holidayRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.holidayRepo.Delete(ctx, id)
}
