// file: model/response.go

package model

// ApiResponse is the success envelope shared by all endpoints.
type ApiResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// LoginResponse is returned by /login: the sanitized user plus the token
// pair (tokens are also set as cookies for browser clients).
type LoginResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenPairResponse is returned by /refresh-token.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
