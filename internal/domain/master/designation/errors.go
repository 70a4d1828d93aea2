package designation

import "errors"

var (
	ErrDesignationNotFound   = errors.New("designation not found")
	ErrDesignationNameExists = errors.New("designation with this name already exists in the college")
)
