// file: service/user_service.go

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"vidtube-api/common"
	"vidtube-api/model"
	"vidtube-api/repository"
)

const channelCacheTTL = 10 * time.Minute

// UserService handles profile reads and updates. Channel profiles are served
// through a cache-aside layer; entries for other viewers refresh on TTL
// expiry rather than explicit invalidation.
type UserService struct {
	userRepo    repository.IUserRepository
	channelRepo repository.IChannelRepository
	cache       ICacheClient
}

func NewUserService(userRepo repository.IUserRepository, channelRepo repository.IChannelRepository, cache ICacheClient) *UserService {
	return &UserService{
		userRepo:    userRepo,
		channelRepo: channelRepo,
		cache:       cache,
	}
}

func channelCacheKey(username string, viewerID int) string {
	return fmt.Sprintf("channel:%s:%d", username, viewerID)
}

// GetCurrentUser loads the sanitized account for an authenticated request.
func (s *UserService) GetCurrentUser(userID int) (*model.User, *common.AppError) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NewNotFoundError("User does not exist")
		}
		return nil, common.NewInfrastructureError("Could not load user", err)
	}
	return user.Sanitized(), nil
}

// UpdateAccountDetails updates the display name and email.
func (s *UserService) UpdateAccountDetails(userID int, fullName, email string) (*model.User, *common.AppError) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return nil, common.NewValidationError("Full name and email are required")
	}

	user, err := s.userRepo.UpdateAccountDetails(userID, fullName, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NewNotFoundError("User does not exist")
		}
		return nil, common.NewInfrastructureError("Could not update account details", err)
	}

	s.invalidateOwnChannel(user)
	return user.Sanitized(), nil
}

// UpdateAvatar replaces the avatar reference with an already-uploaded URL.
func (s *UserService) UpdateAvatar(userID int, avatarURL string) (*model.User, *common.AppError) {
	if avatarURL == "" {
		return nil, common.NewValidationError("Avatar file is required")
	}

	user, err := s.userRepo.UpdateAvatar(userID, avatarURL)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NewNotFoundError("User does not exist")
		}
		return nil, common.NewInfrastructureError("Could not update avatar", err)
	}

	s.invalidateOwnChannel(user)
	return user.Sanitized(), nil
}

// UpdateCoverImage replaces the cover image reference.
func (s *UserService) UpdateCoverImage(userID int, coverImageURL string) (*model.User, *common.AppError) {
	if coverImageURL == "" {
		return nil, common.NewValidationError("Cover image file is required")
	}

	user, err := s.userRepo.UpdateCoverImage(userID, coverImageURL)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NewNotFoundError("User does not exist")
		}
		return nil, common.NewInfrastructureError("Could not update cover image", err)
	}

	s.invalidateOwnChannel(user)
	return user.Sanitized(), nil
}

// GetChannelProfile returns a channel's public profile with subscriber
// aggregates, utilizing a cache-aside strategy.
func (s *UserService) GetChannelProfile(username string, viewerID int) (*model.ChannelProfile, *common.AppError) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, common.NewValidationError("Username is required")
	}

	cacheKey := channelCacheKey(username, viewerID)
	ctx := context.Background()

	// 1. Try to get the profile from Redis.
	cached, err := s.cache.Get(ctx, cacheKey).Result()
	if err == nil {
		var profile model.ChannelProfile
		if err := json.Unmarshal([]byte(cached), &profile); err == nil {
			return &profile, nil
		}
	}

	// 2. Cache miss. Fetch from the database.
	profile, err := s.channelRepo.GetChannelProfile(username, viewerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, common.NewNotFoundError("Channel does not exist")
		}
		return nil, common.NewInfrastructureError("Could not load channel profile", err)
	}

	// 3. Store the result in Redis for future requests.
	if data, err := json.Marshal(profile); err == nil {
		s.cache.Set(ctx, cacheKey, data, channelCacheTTL)
	}

	return profile, nil
}

// GetWatchHistory returns the user's watched videos, most recent first.
func (s *UserService) GetWatchHistory(userID int) ([]*model.WatchHistoryEntry, *common.AppError) {
	entries, err := s.channelRepo.GetWatchHistory(userID)
	if err != nil {
		return nil, common.NewInfrastructureError("Could not load watch history", err)
	}
	return entries, nil
}

// invalidateOwnChannel drops the user's own cached channel view after a
// profile mutation. Entries cached for other viewers expire on TTL.
func (s *UserService) invalidateOwnChannel(user *model.User) {
	s.cache.Del(context.Background(), channelCacheKey(user.Username, user.ID))
}
