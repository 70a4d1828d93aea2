package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aurora-group/payroll-backend-go/internal/config"
	"github.com/aurora-group/payroll-backend-go/internal/domain/employee"
	"github.com/aurora-group/payroll-backend-go/internal/domain/leave"
	"github.com/aurora-group/payroll-backend-go/internal/domain/master/college"
	"github.com/shopspring/decimal"
)

type ServiceImpl struct {
	defaults config.LeaveConfig
	leave.Repository
	employeeRepo employee.Repository
	collegeRepo  college.Repository
}

func NewService(
	defaults config.LeaveConfig,
	leaveRepo leave.Repository,
	employeeRepo employee.Repository,
	collegeRepo college.Repository,
) leave.Service {
	return &ServiceImpl{
		defaults:     defaults,
		Repository:   leaveRepo,
		employeeRepo: employeeRepo,
		collegeRepo:  collegeRepo,
	}
}

// CreatePolicy implements leave.Service.
func (s *ServiceImpl) CreatePolicy(ctx context.Context, req leave.CreatePolicyRequest) (leave.Policy, error) {
	if err := req.Validate(); err != nil {
		return leave.Policy{}, err
	}

	if _, err := s.collegeRepo.GetByID(ctx, req.CollegeID); err != nil {
		return leave.Policy{}, err
	}

	compEnabled := true
	if req.CompLeaveEnabled != nil {
		compEnabled = *req.CompLeaveEnabled
	}

	policy, err := s.Repository.CreatePolicy(ctx, leave.Policy{
		CollegeID:         req.CollegeID,
		Name:              req.Name,
		PaidLeavesPerYear: req.PaidLeavesPerYear,
		MaxCarryForward:   req.MaxCarryForward,
		CompLeaveEnabled:  compEnabled,
	})
	if err != nil {
		return leave.Policy{}, fmt.Errorf("failed to create leave policy: %w", err)
	}
	return policy, nil
}

// ListPolicies implements leave.Service.
func (s *ServiceImpl) ListPolicies(ctx context.Context, collegeID string) ([]leave.Policy, error) {
	policies, err := s.Repository.ListPolicies(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave policies: %w", err)
	}
	return policies, nil
}

// GetBalance implements leave.Service.
func (s *ServiceImpl) GetBalance(ctx context.Context, employeeID string, year int) (leave.BalanceResponse, error) {
	balance, err := s.Repository.GetBalance(ctx, employeeID, year)
	if err == nil {
		return leave.NewBalanceResponse(balance), nil
	}
	if !errors.Is(err, leave.ErrBalanceNotFound) {
		return leave.BalanceResponse{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	balance, err = s.Repository.CreateBalance(ctx, leave.Balance{
		EmployeeID:      employeeID,
		Year:            year,
		PaidLeavesTotal: decimal.NewFromInt(int64(s.entitlement(ctx, emp.CollegeID))),
	})
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to create leave balance: %w", err)
	}
	return leave.NewBalanceResponse(balance), nil
}

// ListBalances implements leave.Service.
func (s *ServiceImpl) ListBalances(ctx context.Context, collegeID string, year int) ([]leave.BalanceResponse, error) {
	balances, err := s.Repository.ListBalancesForYear(ctx, collegeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.NewBalanceResponse(b))
	}
	return responses, nil
}

// Rollover implements leave.Service.
func (s *ServiceImpl) Rollover(ctx context.Context, fromYear, toYear int) error {
	colleges, err := s.collegeRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list colleges: %w", err)
	}

	for _, c := range colleges {
		policy, err := s.Repository.GetPolicyForCollege(ctx, c.ID)
		if err != nil {
			if !errors.Is(err, leave.ErrPolicyNotFound) {
				return fmt.Errorf("failed to get leave policy for college %s: %w", c.CollegeCode, err)
			}
			policy = leave.Policy{
				PaidLeavesPerYear: s.defaults.DefaultPaidLeavesPerYear,
				MaxCarryForward:   s.defaults.DefaultMaxCarryForward,
			}
		}

		employees, err := s.employeeRepo.ListActiveByCollege(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("failed to list employees for college %s: %w", c.CollegeCode, err)
		}

		for _, emp := range employees {
			if _, err := s.Repository.GetBalance(ctx, emp.ID, toYear); err == nil {
				continue
			} else if !errors.Is(err, leave.ErrBalanceNotFound) {
				return fmt.Errorf("failed to check balance for employee %s: %w", emp.EmployeeCode, err)
			}

			carry := decimal.Zero
			prior, err := s.Repository.GetBalance(ctx, emp.ID, fromYear)
			switch {
			case err == nil:
				carry = CarryForward(prior, policy.MaxCarryForward)
			case !errors.Is(err, leave.ErrBalanceNotFound):
				return fmt.Errorf("failed to get prior balance for employee %s: %w", emp.EmployeeCode, err)
			}

			if _, err := s.Repository.CreateBalance(ctx, leave.Balance{
				EmployeeID:         emp.ID,
				Year:               toYear,
				PaidLeavesTotal:    decimal.NewFromInt(int64(policy.PaidLeavesPerYear)),
				CarryForwardLeaves: carry,
			}); err != nil && !errors.Is(err, leave.ErrBalanceExists) {
				return fmt.Errorf("failed to create balance for employee %s: %w", emp.EmployeeCode, err)
			}
		}
	}

	slog.Info("leave balances rolled over", slog.Int("from_year", fromYear), slog.Int("to_year", toYear))
	return nil
}

func (s *ServiceImpl) entitlement(ctx context.Context, collegeID string) int {
	policy, err := s.Repository.GetPolicyForCollege(ctx, collegeID)
	if err != nil {
		return s.defaults.DefaultPaidLeavesPerYear
	}
	return policy.PaidLeavesPerYear
}
