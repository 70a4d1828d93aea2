package college

import "errors"

var (
	ErrCollegeNotFound   = errors.New("college not found")
	ErrCollegeCodeExists = errors.New("college code already exists")
	ErrCollegeHasCycles  = errors.New("college has payroll cycles and cannot be deleted")
)
