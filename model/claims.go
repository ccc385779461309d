package model

import "github.com/golang-jwt/jwt/v5"

// AccessClaims carry the full public identity so handlers can render the
// current user without a database round trip.
type AccessClaims struct {
	UserID   int    `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

// RefreshClaims carry only the account id to minimize exposure if a
// long-lived token leaks.
type RefreshClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}
