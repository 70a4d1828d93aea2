package leave

import "context"

type Repository interface {
	// Policies
	CreatePolicy(ctx context.Context, p Policy) (Policy, error)
	GetPolicyForCollege(ctx context.Context, collegeID string) (Policy, error)
	ListPolicies(ctx context.Context, collegeID string) ([]Policy, error)

	// Balances
	GetBalance(ctx context.Context, employeeID string, year int) (Balance, error)
	CreateBalance(ctx context.Context, b Balance) (Balance, error)
	// ApplyUsageDelta adjusts used/earned fields by the given deltas (negative
	// values reverse a prior staging). Runs under the caller's transaction.
	ApplyUsageDelta(ctx context.Context, employeeID string, year int, delta Usage) error
	ListBalancesForYear(ctx context.Context, collegeID string, year int) ([]Balance, error)
}
