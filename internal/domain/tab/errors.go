package tab

import "errors"

var (
	ErrTabNotFound     = errors.New("tab not found")
	ErrTabAlreadyOpen  = errors.New("client already has an open tab")
	ErrTabNotOpen      = errors.New("tab is not open")
	ErrTabItemNotFound = errors.New("tab item not found")
)
