package router

import (
	"net/http"
	"vidtube-api/handler"
	"vidtube-api/repository"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "vidtube-api/docs"
)

func NewRouter(userHandler *handler.UserHandler, channelHandler *handler.ChannelHandler, userRepo repository.IUserRepository) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Public routes.
	mux.Handle("POST /api/v1/users/register", handler.ErrorHandlingMiddleware(userHandler.Register))
	mux.Handle("POST /api/v1/users/login", handler.ErrorHandlingMiddleware(userHandler.Login))
	mux.Handle("POST /api/v1/users/refresh-token", handler.ErrorHandlingMiddleware(userHandler.RefreshToken))

	// Gated routes require a verified access token.
	auth := handler.AuthMiddleware(userRepo)

	mux.Handle("POST /api/v1/users/logout", auth(handler.ErrorHandlingMiddleware(userHandler.Logout)))
	mux.Handle("POST /api/v1/users/change-password", auth(handler.ErrorHandlingMiddleware(userHandler.ChangePassword)))
	mux.Handle("GET /api/v1/users/current-user", auth(handler.ErrorHandlingMiddleware(userHandler.GetCurrentUser)))
	mux.Handle("PATCH /api/v1/users/update-account", auth(handler.ErrorHandlingMiddleware(userHandler.UpdateAccount)))
	mux.Handle("PATCH /api/v1/users/avatar", auth(handler.ErrorHandlingMiddleware(userHandler.UpdateAvatar)))
	mux.Handle("PATCH /api/v1/users/cover-image", auth(handler.ErrorHandlingMiddleware(userHandler.UpdateCoverImage)))
	mux.Handle("GET /api/v1/users/c/{username}", auth(handler.ErrorHandlingMiddleware(channelHandler.GetChannelProfile)))
	mux.Handle("GET /api/v1/users/history", auth(handler.ErrorHandlingMiddleware(channelHandler.GetWatchHistory)))

	return mux
}
