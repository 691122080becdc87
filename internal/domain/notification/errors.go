package notification

import "errors"

var (
	ErrComplexOverrideForbidden = errors.New("only super admins may select another complex")
	ErrInvalidComplexID         = errors.New("invalid complexId")
)
