package domain

import "time"

// User is an operator account able to obtain bearer tokens.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	IsStaff      bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
