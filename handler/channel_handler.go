package handler

import (
	"net/http"
	"vidtube-api/common"
	"vidtube-api/logger"
	"vidtube-api/service"

	"github.com/sirupsen/logrus"
)

// ChannelHandler holds dependencies for channel profile and history endpoints.
type ChannelHandler struct {
	userService *service.UserService
}

func NewChannelHandler(userService *service.UserService) *ChannelHandler {
	return &ChannelHandler{userService: userService}
}

// GetChannelProfile godoc
// @Summary      Get a channel profile
// @Description  Returns the channel's public profile with subscriber counts and whether the caller is subscribed.
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Channel username"
// @Success      200  {object}  model.ApiResponse
// @Failure      401  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/users/c/{username} [get]
func (h *ChannelHandler) GetChannelProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	viewer, appErr := currentUser(r)
	if appErr != nil {
		return appErr
	}

	username := r.PathValue("username")

	log := logger.Log.WithFields(logrus.Fields{
		"username":  username,
		"viewer_id": viewer.ID,
	})
	log.Info("Channel profile request received")

	profile, appErr := h.userService.GetChannelProfile(username, viewer.ID)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, profile, "Channel profile fetched successfully")
	return nil
}

// GetWatchHistory returns the caller's watched videos, most recent first.
func (h *ChannelHandler) GetWatchHistory(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := currentUser(r)
	if appErr != nil {
		return appErr
	}

	entries, appErr := h.userService.GetWatchHistory(user.ID)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, entries, "Watch history fetched successfully")
	return nil
}
