package payroll

import "errors"

var (
	ErrCycleNotFound      = errors.New("payroll cycle not found")
	ErrEntryNotFound      = errors.New("payroll entry not found")
	ErrPayslipNotFound    = errors.New("payslip not found for this entry")
	ErrDuplicateCycle     = errors.New("payroll cycle already exists for this college and month")
	ErrCycleLocked        = errors.New("payroll cycle is locked")
	ErrCycleBusy          = errors.New("payroll cycle calculation already in progress")
	ErrCycleNotCompleted  = errors.New("payroll cycle must be completed first")
	ErrCycleHasFailures   = errors.New("payroll cycle has unresolved calculation failures")
	ErrInvalidCycleConfig = errors.New("payroll cycle has no working days")
	ErrIllegalTransition  = errors.New("illegal payroll cycle status transition")
	ErrNoEntries          = errors.New("payroll cycle has no entries")
)
