package sportcomplex

import "errors"

var (
	ErrComplexNotFound   = errors.New("complex not found")
	ErrComplexNameExists = errors.New("complex with this name already exists")
)
