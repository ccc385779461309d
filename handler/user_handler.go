package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"vidtube-api/common"
	"vidtube-api/config"
	"vidtube-api/logger"
	"vidtube-api/model"
	"vidtube-api/service"
)

const maxUploadBytes = 32 << 20

// UserHandler holds dependencies for account and session endpoints.
type UserHandler struct {
	authService *service.AuthService
	userService *service.UserService
	uploader    service.IMediaUploader
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService, uploader service.IMediaUploader) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
		uploader:    uploader,
	}
}

// saveTempFile spools an uploaded multipart file to the local temp directory
// so the media uploader can pick it up (and remove it afterwards).
func saveTempFile(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	tempDir := config.AppConfig.Upload.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	dst, err := os.CreateTemp(tempDir, "upload-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}

// uploadFormFile saves and uploads the named multipart file. It returns an
// empty URL when the field is absent.
func (h *UserHandler) uploadFormFile(r *http.Request, field string) (string, error) {
	_, fileHeader, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}

	localPath, err := saveTempFile(fileHeader)
	if err != nil {
		return "", err
	}
	return h.uploader.Upload(r.Context(), localPath)
}

// Register godoc
// @Summary      Register a new user
// @Description  Creates an account from a multipart form with avatar (required) and coverImage (optional) files.
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        username  formData  string  true   "Unique username"
// @Param        email     formData  string  true   "Unique email"
// @Param        fullName  formData  string  true   "Display name"
// @Param        password  formData  string  true   "Password"
// @Param        avatar    formData  file    true   "Avatar image"
// @Param        coverImage formData file    false  "Cover image"
// @Success      201  {object}  model.ApiResponse
// @Failure      400  {object}  common.AppError
// @Failure      409  {object}  common.AppError
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return common.NewAppError(common.KindValidation, http.StatusBadRequest, "Invalid multipart form", err)
	}

	avatarURL, err := h.uploadFormFile(r, "avatar")
	if err != nil || avatarURL == "" {
		return common.NewAppError(common.KindValidation, http.StatusBadRequest, "Avatar file is required", err)
	}

	// The cover image is optional: a failed upload degrades to no cover.
	coverImageURL, err := h.uploadFormFile(r, "coverImage")
	if err != nil {
		logger.Log.WithError(err).Warn("Cover image upload failed, continuing without it")
		coverImageURL = ""
	}

	user, appErr := h.authService.Register(
		r.FormValue("username"),
		r.FormValue("email"),
		r.FormValue("fullName"),
		r.FormValue("password"),
		avatarURL,
		coverImageURL,
	)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusCreated, user, "User registered successfully")
	return nil
}

// Login godoc
// @Summary      Log in with username or email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        credentials body model.LoginRequest true "Login credentials"
// @Success      200  {object}  model.ApiResponse
// @Failure      401  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	result, appErr := h.authService.Login(req.Username, req.Email, req.Password)
	if appErr != nil {
		return appErr
	}

	setAuthCookies(w, result.AccessToken, result.RefreshToken)
	writeJSON(w, http.StatusOK, result, "User logged in successfully")
	return nil
}

// Logout clears the persisted session and both cookies.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := currentUser(r)
	if appErr != nil {
		return appErr
	}

	if appErr := h.authService.Logout(user.ID); appErr != nil {
		return appErr
	}

	clearAuthCookies(w)
	writeJSON(w, http.StatusOK, struct{}{}, "User logged out successfully")
	return nil
}

// RefreshToken rotates the session. The refresh token comes from the cookie
// for browsers, or the request body for clients without cookie support.
func (h *UserHandler) RefreshToken(w http.ResponseWriter, r *http.Request) *common.AppError {
	var presented string
	if cookie, err := r.Cookie("refreshToken"); err == nil {
		presented = cookie.Value
	}
	if presented == "" {
		var req model.RefreshRequest
		if err := common.ValidateAndDecode(r, &req); err == nil {
			presented = req.RefreshToken
		}
	}
	if presented == "" {
		return common.NewAuthError(nil)
	}

	pair, appErr := h.authService.Refresh(presented)
	if appErr != nil {
		return appErr
	}

	setAuthCookies(w, pair.AccessToken, pair.RefreshToken)
	writeJSON(w, http.StatusOK, pair, "Access token refreshed successfully")
	return nil
}

// ChangePassword replaces the caller's password after checking the old one.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := currentUser(r)
	if appErr != nil {
		return appErr
	}

	var req model.ChangePasswordRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	if appErr := h.authService.ChangePassword(user.ID, req.OldPassword, req.NewPassword); appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, struct{}{}, "Password changed successfully")
	return nil
}

// GetCurrentUser returns the authenticated account.
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := currentUser(r)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, user, "Current user fetched successfully")
	return nil
}

// UpdateAccount updates the caller's display name and email.
func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := currentUser(r)
	if appErr != nil {
		return appErr
	}

	var req model.UpdateAccountRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	updated, appErr := h.userService.UpdateAccountDetails(user.ID, req.FullName, req.Email)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, updated, "Account details updated successfully")
	return nil
}

// UpdateAvatar replaces the caller's avatar with a freshly uploaded file.
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.updateImage(w, r, "avatar", "Avatar updated successfully", h.userService.UpdateAvatar)
}

// UpdateCoverImage replaces the caller's cover image.
func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) *common.AppError {
	return h.updateImage(w, r, "coverImage", "Cover image updated successfully", h.userService.UpdateCoverImage)
}

func (h *UserHandler) updateImage(w http.ResponseWriter, r *http.Request, field, message string,
	update func(int, string) (*model.User, *common.AppError)) *common.AppError {

	user, appErr := currentUser(r)
	if appErr != nil {
		return appErr
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return common.NewAppError(common.KindValidation, http.StatusBadRequest, "Invalid multipart form", err)
	}

	url, err := h.uploadFormFile(r, field)
	if err != nil || url == "" {
		return common.NewAppError(common.KindValidation, http.StatusBadRequest, field+" file is required", err)
	}

	updated, appErr := update(user.ID, url)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, updated, message)
	return nil
}
