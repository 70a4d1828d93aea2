package leave

import "context"

// Service defines business logic for leave policies and balances.
type Service interface {
	// CreatePolicy registers a college's leave entitlement configuration.
	CreatePolicy(ctx context.Context, req CreatePolicyRequest) (Policy, error)

	// ListPolicies retrieves a college's policies.
	ListPolicies(ctx context.Context, collegeID string) ([]Policy, error)

	// GetBalance retrieves one employee's ledger for a year, seeding it from
	// the college policy if it does not exist yet.
	GetBalance(ctx context.Context, employeeID string, year int) (BalanceResponse, error)

	// ListBalances retrieves the year's ledgers for a college.
	ListBalances(ctx context.Context, collegeID string, year int) ([]BalanceResponse, error)

	// Rollover seeds toYear balances for every active employee of every
	// college, carrying forward unused paid leave up to the policy maximum.
	// Employees already holding a toYear balance are skipped, so the job is
	// safe to re-run.
	Rollover(ctx context.Context, fromYear, toYear int) error
}
