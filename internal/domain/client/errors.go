package client

import "errors"

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrPhoneExists      = errors.New("phone already registered in this complex")
	ErrClientHasOpenTab = errors.New("client has an open tab")
)
