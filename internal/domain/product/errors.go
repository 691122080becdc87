package product

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductInUse      = errors.New("product is referenced by open tabs")
)
