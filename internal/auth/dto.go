package auth

import (
	"github.com/Rehan-4778/JobHunt-BE/internal/users"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
)

// RegisterRequest captures the signup payload. CVURL is filled in by the
// controller after the multipart upload completes.
type RegisterRequest struct {
	FirstName string     `json:"firstName" validate:"required"`
	LastName  string     `json:"lastName" validate:"required"`
	Email     string     `json:"email" validate:"required,email"`
	MobileNo  *string    `json:"mobileNo,omitempty"`
	Address   *string    `json:"address,omitempty"`
	City      *string    `json:"city,omitempty"`
	Company   *string    `json:"company,omitempty"`
	Password  string     `json:"password" validate:"required,min=6"`
	Role      enums.Role `json:"role" validate:"required"`
	CVURL     *string    `json:"-"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateDetailsRequest carries the editable profile fields.
type UpdateDetailsRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	MobileNo  *string `json:"mobileNo,omitempty"`
	Address   *string `json:"address,omitempty"`
	City      *string `json:"city,omitempty"`
	Company   *string `json:"company,omitempty"`
}

// UpdatePasswordRequest swaps the credential after checking the current one.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// ForgetPasswordRequest starts the reset flow.
type ForgetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes the reset flow.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// ApproveRequest flips the account approval flag.
type ApproveRequest struct {
	IsApproved *bool `json:"isApproved" validate:"required"`
}

// AuthResponse contains the token and sanitized user produced by flows
// that establish a session.
type AuthResponse struct {
	Token string         `json:"token"`
	User  *users.UserDTO `json:"user"`
}
