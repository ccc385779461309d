// file: service/auth_service.go

package service

import (
	"database/sql"
	"strings"
	"vidtube-api/common"
	"vidtube-api/logger"
	"vidtube-api/model"
	"vidtube-api/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns the session lifecycle. It is the only component allowed
// to write the password and refresh-token fields; the persisted refresh
// token is the whole session state (one live session per account), so
// login and refresh overwrite it and logout clears it.
type AuthService struct {
	userRepo repository.IUserRepository
}

func NewAuthService(userRepo repository.IUserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), err
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register creates a new account. The avatar URL must already be resolved by
// the media uploader; the cover image URL may be empty.
func (s *AuthService) Register(username, email, fullName, password, avatarURL, coverImageURL string) (*model.User, *common.AppError) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	fullName = strings.TrimSpace(fullName)

	if username == "" || email == "" || fullName == "" || strings.TrimSpace(password) == "" {
		return nil, common.NewValidationError("All fields are required")
	}
	if avatarURL == "" {
		return nil, common.NewValidationError("Avatar file is required")
	}

	_, err := s.userRepo.GetUserByUsernameOrEmail(username, email)
	if err == nil {
		return nil, common.NewConflictError("User with email or username already exists")
	}
	if err != sql.ErrNoRows {
		return nil, common.NewInfrastructureError("Could not check existing user", err)
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return nil, common.NewInfrastructureError("Could not create user", err)
	}

	user := &model.User{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Avatar:     avatarURL,
		CoverImage: coverImageURL,
		Password:   hashedPassword,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, common.NewInfrastructureError("Could not create user", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered successfully")

	return user.Sanitized(), nil
}

// Login verifies credentials and opens a session: both tokens are issued and
// the refresh token is persisted, revoking any earlier session for the user.
func (s *AuthService) Login(username, email, password string) (*model.LoginResponse, *common.AppError) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" && email == "" {
		return nil, common.NewValidationError("Username or email is required")
	}

	user, err := s.userRepo.GetUserByUsernameOrEmail(username, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NewNotFoundError("User does not exist")
		}
		return nil, common.NewInfrastructureError("Could not look up user", err)
	}

	if !s.CheckPasswordHash(password, user.Password) {
		return nil, common.NewAuthError(nil)
	}

	accessToken, refreshToken, appErr := s.issueTokenPair(user)
	if appErr != nil {
		return nil, appErr
	}

	logger.Log.WithField("user_id", user.ID).Info("User logged in successfully")

	return &model.LoginResponse{
		User:         user.Sanitized(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh rotates the session. The presented token must verify against the
// refresh secret AND match the persisted token exactly; a rotated-out token
// failing the second check is the reuse signal.
func (s *AuthService) Refresh(presentedToken string) (*model.TokenPairResponse, *common.AppError) {
	if presentedToken == "" {
		return nil, common.NewAuthError(nil)
	}

	claims, err := VerifyRefreshToken(presentedToken)
	if err != nil {
		return nil, common.NewAuthError(err)
	}

	user, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NewAuthError(err)
		}
		return nil, common.NewInfrastructureError("Could not look up user", err)
	}

	if user.RefreshToken == "" || presentedToken != user.RefreshToken {
		logger.Log.WithField("user_id", user.ID).Warn("Refresh token reuse or revoked session detected")
		return nil, common.NewAuthError(nil)
	}

	accessToken, refreshToken, appErr := s.issueTokenPair(user)
	if appErr != nil {
		return nil, appErr
	}

	return &model.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout clears the persisted refresh token, invalidating future refresh
// attempts immediately.
func (s *AuthService) Logout(userID int) *common.AppError {
	if err := s.userRepo.UpdateRefreshToken(userID, ""); err != nil && err != sql.ErrNoRows {
		return common.NewInfrastructureError("Could not log out", err)
	}
	logger.Log.WithField("user_id", userID).Info("User logged out")
	return nil
}

// ChangePassword replaces the stored hash after verifying the old password.
func (s *AuthService) ChangePassword(userID int, oldPassword, newPassword string) *common.AppError {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return common.NewAuthError(err)
		}
		return common.NewInfrastructureError("Could not look up user", err)
	}

	if !s.CheckPasswordHash(oldPassword, user.Password) {
		return common.NewAuthError(nil)
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return common.NewInfrastructureError("Could not change password", err)
	}

	if err := s.userRepo.UpdatePassword(userID, hashedPassword); err != nil {
		return common.NewInfrastructureError("Could not change password", err)
	}

	logger.Log.WithField("user_id", userID).Info("Password changed successfully")
	return nil
}

// issueTokenPair generates both tokens and persists the refresh token on the
// user record in one place, so rotation semantics cannot drift between login
// and refresh.
func (s *AuthService) issueTokenPair(user *model.User) (string, string, *common.AppError) {
	accessToken, err := GenerateAccessToken(user)
	if err != nil {
		return "", "", common.NewInfrastructureError("Could not generate tokens", err)
	}

	refreshToken, err := GenerateRefreshToken(user)
	if err != nil {
		return "", "", common.NewInfrastructureError("Could not generate tokens", err)
	}

	if err := s.userRepo.UpdateRefreshToken(user.ID, refreshToken); err != nil {
		return "", "", common.NewInfrastructureError("Could not persist session", err)
	}

	return accessToken, refreshToken, nil
}
