package attendance

import "errors"

var (
	ErrRecordNotFound       = errors.New("attendance record not found")
	ErrUploadNotFound       = errors.New("attendance upload not found")
	ErrUploadNotPending     = errors.New("attendance upload is not in pending status")
	ErrInvalidStatus        = errors.New("invalid attendance status")
	ErrPeriodLocked         = errors.New("attendance period belongs to a locked payroll cycle")
	ErrUnknownEmployeeCode  = errors.New("unknown employee code in attendance sheet")
	ErrMalformedSheet       = errors.New("attendance sheet is malformed")
	ErrDuplicateSheetColumn = errors.New("attendance sheet has a duplicate day column")
)
