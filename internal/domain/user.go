package domain

import "time"

// UserRole distinguishes regular members from the platform superadmin.
type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleSuperadmin UserRole = "superadmin"
)

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is the domain model for campus community members.
type User struct {
	ID             int64
	Name           string
	Username       string
	Email          string
	SchoolEmail    string
	PersonalEmail  *string
	UniversityName string
	PasswordHash   string
	Phone          *string
	DateOfBirth    string
	ProfilePicture *string
	Role           UserRole
	Status         UserStatus
	IsVerified     bool
	CanShowContact bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ContactVisible reports whether phone/email fields may be exposed to other
// users. Contact is only shown for verified accounts with an explicit
// administrator approval.
func (u *User) ContactVisible() bool {
	return u.IsVerified && u.CanShowContact
}
