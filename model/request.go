// file: model/request.go

package model

// LoginRequest defines the payload for user authentication. Either username
// or email must be present; the service enforces that since validator tags
// cannot express "at least one of".
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the body fallback for clients that cannot send the
// refresh token cookie (e.g. mobile).
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest defines the payload for replacing the current password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// UpdateAccountRequest defines the payload for updating profile details.
type UpdateAccountRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}
