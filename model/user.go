package model

import "time"

// User is the single account record. Username and email are always stored
// lowercase. Password holds the bcrypt hash and RefreshToken mirrors the one
// outstanding refresh token (empty when logged out); neither is ever
// serialized in a response.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"cover_image"`
	Password     string    `json:"-"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy safe to hand to the transport layer, with the
// credential fields stripped even if someone marshals it by other means.
func (u User) Sanitized() *User {
	u.Password = ""
	u.RefreshToken = ""
	return &u
}
