package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrSuperAdminRequired      = errors.New("super admin access required")
	ErrAdminAccessRequired     = errors.New("admin access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrComplexIDRequired       = errors.New("complex ID is required")
	ErrUserNotPending          = errors.New("user is not pending approval")
	ErrInvalidRole             = errors.New("invalid role")
)
