package dto

import (
	"time"

	"github.com/spec-kit/campus-community/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Name           string  `json:"name"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	SchoolEmail    string  `json:"schoolEmail"`
	PersonalEmail  *string `json:"personalEmail"`
	Password       string  `json:"password"`
	Phone          *string `json:"phone"`
	DateOfBirth    string  `json:"dateOfBirth"`
	UniversityName string  `json:"universityName"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AuthResponse bundles the account with its access token.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// UserResponse is the account view. Contact fields (phone, email,
// personalEmail) are omitted, not nulled, unless the user is verified with
// contact approval; the owner and superadmins always see them.
type UserResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	SchoolEmail    string    `json:"schoolEmail,omitempty"`
	PersonalEmail  *string   `json:"personalEmail,omitempty"`
	UniversityName string    `json:"universityName"`
	Phone          *string   `json:"phone,omitempty"`
	DateOfBirth    string    `json:"dateOfBirth,omitempty"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	Role           string    `json:"role"`
	Status         string    `json:"status"`
	IsVerified     bool      `json:"isVerified"`
	CanShowContact bool      `json:"canShowContact"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FullUserView serializes every field; for the account owner and superadmins.
func FullUserView(u *domain.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		Email:          u.Email,
		SchoolEmail:    u.SchoolEmail,
		PersonalEmail:  u.PersonalEmail,
		UniversityName: u.UniversityName,
		Phone:          u.Phone,
		DateOfBirth:    u.DateOfBirth,
		ProfilePicture: u.ProfilePicture,
		Role:           string(u.Role),
		Status:         string(u.Status),
		IsVerified:     u.IsVerified,
		CanShowContact: u.CanShowContact,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// PublicUserView serializes an account for other members. Contact fields are
// dropped unless the account is verified and contact-approved.
func PublicUserView(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		UniversityName: u.UniversityName,
		ProfilePicture: u.ProfilePicture,
		Role:           string(u.Role),
		Status:         string(u.Status),
		IsVerified:     u.IsVerified,
		CanShowContact: u.CanShowContact,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if u.ContactVisible() {
		resp.Email = u.Email
		resp.Phone = u.Phone
		resp.PersonalEmail = u.PersonalEmail
	}
	return resp
}

// FullUserViews maps a slice to owner/admin views.
func FullUserViews(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, FullUserView(&users[i]))
	}
	return out
}
