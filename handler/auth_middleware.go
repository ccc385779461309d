package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"vidtube-api/common"
	"vidtube-api/model"
	"vidtube-api/repository"
	"vidtube-api/service"
)

type contextKey string

// CurrentUserKey holds the sanitized *model.User resolved from the access
// token. Every gated handler reads the caller identity from here.
const CurrentUserKey contextKey = "currentUser"

// accessTokenFromRequest pulls the access token from the accessToken cookie,
// falling back to the Authorization header for non-browser clients.
func accessTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) == 2 && strings.ToLower(headerParts[0]) == "bearer" {
		return headerParts[1]
	}
	return ""
}

// AuthMiddleware verifies the access token, loads the account it refers to
// and attaches it to the request context. Missing token, failed verification
// and a vanished account are all rejected identically.
func AuthMiddleware(userRepo repository.IUserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := accessTokenFromRequest(r)
			if tokenString == "" {
				common.NewAuthError(nil).Send(w)
				return
			}

			claims, err := service.VerifyAccessToken(tokenString)
			if err != nil {
				common.NewAuthError(err).Send(w)
				return
			}

			user, err := userRepo.GetUserByID(claims.UserID)
			if err != nil {
				if err == sql.ErrNoRows {
					common.NewAuthError(err).Send(w)
				} else {
					common.NewInfrastructureError("Could not load user", err).Send(w)
				}
				return
			}

			ctx := context.WithValue(r.Context(), CurrentUserKey, user.Sanitized())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// currentUser reads the authenticated account attached by AuthMiddleware.
func currentUser(r *http.Request) (*model.User, *common.AppError) {
	user, ok := r.Context().Value(CurrentUserKey).(*model.User)
	if !ok || user == nil {
		return nil, common.NewAuthError(nil)
	}
	return user, nil
}
