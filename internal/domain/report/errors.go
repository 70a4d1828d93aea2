package report

import "errors"

var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidType    = errors.New("invalid report type")
	ErrNoPayrollData  = errors.New("no payroll data for the requested period")
)
