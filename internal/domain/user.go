package domain

import "time"

// UserRole represents a user's role in the system.
type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleDeveloper UserRole = "developer"
)

// IsValid checks if the role is one of the allowed values.
func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleDeveloper
}

// UserStatus represents the account approval status.
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusRejected UserStatus = "rejected"
)

// User represents a registered account.
type User struct {
	ID             string
	FullName       string
	Email          string
	HashedPassword string
	Role           UserRole
	Status         UserStatus
	ApprovedBy     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdmin checks if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// IsApproved checks if the account has been approved.
func (u *User) IsApproved() bool {
	return u.Status == UserStatusApproved
}

// UserBrief is the identity subset embedded in task responses.
type UserBrief struct {
	ID       string
	FullName string
	Email    string
}
