package leave

import "errors"

var (
	ErrPolicyNotFound  = errors.New("leave policy not found")
	ErrBalanceNotFound = errors.New("leave balance not found")
	ErrBalanceExists   = errors.New("leave balance already exists for this employee and year")
	ErrOverdraw        = errors.New("leave balance is overdrawn")
)
