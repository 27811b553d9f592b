package domain

import "time"

// Role represents a user's role in the system.
type Role string

const (
	RoleRider  Role = "RIDER"
	RoleDriver Role = "DRIVER"
	RoleAdmin  Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleRider, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// DriverApproval tracks the onboarding and disciplinary state of a driver.
// Only present on users with RoleDriver.
type DriverApproval struct {
	IsApproved  bool
	IsSuspended bool
}

// User represents an account in the system.
type User struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Role           Role
	IsBlocked      bool
	IsVerified     bool
	DriverApproval *DriverApproval
	CreatedAt      time.Time
}
