// file: service/token_service.go

package service

import (
	"errors"
	"fmt"
	"time"
	"vidtube-api/config"
	"vidtube-api/logger"
	"vidtube-api/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is the single verification failure surfaced to callers.
// Expired, malformed and signature-mismatch tokens are indistinguishable so
// the reason can never leak to a client.
var ErrInvalidToken = errors.New("invalid or expired token")

func getAccessKey() []byte {
	return []byte(config.AppConfig.JWT.AccessSecret)
}

func getRefreshKey() []byte {
	return []byte(config.AppConfig.JWT.RefreshSecret)
}

func accessExpiry() time.Duration {
	return time.Duration(config.AppConfig.JWT.AccessExpiryMinutes) * time.Minute
}

func refreshExpiry() time.Duration {
	return time.Duration(config.AppConfig.JWT.RefreshExpiryDays) * 24 * time.Hour
}

// GenerateAccessToken signs a short-lived token carrying the user's public
// identity, so gated handlers can render the caller without a DB round trip.
func GenerateAccessToken(user *model.User) (string, error) {
	claims := &model.AccessClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessExpiry())),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(getAccessKey())
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID).Error("Failed to sign access token")
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// GenerateRefreshToken signs a long-lived token carrying only the account id.
func GenerateRefreshToken(user *model.User) (string, error) {
	claims := &model.RefreshClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti makes every rotation yield a distinct token value even
			// when two tokens are minted within the same second.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(refreshExpiry())),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(getRefreshKey())
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID).Error("Failed to sign refresh token")
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, nil
}

// VerifyAccessToken checks signature and expiry against the access secret.
func VerifyAccessToken(tokenString string) (*model.AccessClaims, error) {
	claims := &model.AccessClaims{}
	if err := parseToken(tokenString, claims, getAccessKey()); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefreshToken checks signature and expiry against the refresh secret.
func VerifyRefreshToken(tokenString string) (*model.RefreshClaims, error) {
	claims := &model.RefreshClaims{}
	if err := parseToken(tokenString, claims, getRefreshKey()); err != nil {
		return nil, err
	}
	return claims, nil
}

func parseToken(tokenString string, claims jwt.Claims, key []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
