package client

import "time"

type Client struct {
	ID        string
	ComplexID string
	FullName  string
	Phone     string
	Email     string
	CPF       string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
