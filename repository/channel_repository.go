// file: repository/channel_repository.go

package repository

import (
	"database/sql"
	"vidtube-api/logger"
	"vidtube-api/model"

	"github.com/sirupsen/logrus"
)

// IChannelRepository defines the read-only contract for channel profile and
// watch history queries. Subscriber counts come back precomputed; the
// aggregation lives entirely in the store.
type IChannelRepository interface {
	GetChannelProfile(username string, viewerID int) (*model.ChannelProfile, error)
	GetWatchHistory(userID int) ([]*model.WatchHistoryEntry, error)
}

// ChannelRepository implements IChannelRepository.
type ChannelRepository struct {
	DB *sql.DB
}

func NewChannelRepository(db *sql.DB) *ChannelRepository {
	return &ChannelRepository{DB: db}
}

// GetChannelProfile retrieves a channel's public profile together with its
// subscription aggregates and whether the viewer is subscribed to it.
func (r *ChannelRepository) GetChannelProfile(username string, viewerID int) (*model.ChannelProfile, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"username":  username,
		"viewer_id": viewerID,
	})
	log.Info("Executing query to get channel profile")

	query := `
		SELECT u.id, u.username, u.full_name, u.avatar, u.cover_image, u.email,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id)    AS subscriber_count,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS subscribed_to_count,
		       EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = $2) AS is_subscribed
		FROM users u
		WHERE u.username = $1`

	profile := &model.ChannelProfile{}
	err := r.DB.QueryRow(query, username, viewerID).Scan(
		&profile.ID, &profile.Username, &profile.FullName, &profile.Avatar,
		&profile.CoverImage, &profile.Email, &profile.SubscriberCount,
		&profile.SubscribedTo, &profile.IsSubscribed,
	)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get channel profile query")
		}
		return nil, err
	}
	return profile, nil
}

// GetWatchHistory retrieves the user's watched videos, most recent first,
// joined with each video's owning channel.
func (r *ChannelRepository) GetWatchHistory(userID int) ([]*model.WatchHistoryEntry, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to get watch history")

	query := `
		SELECT v.id, v.title, v.thumbnail, v.duration, v.views,
		       o.id, o.username, o.full_name, o.avatar, w.watched_at
		FROM watch_history w
		JOIN videos v ON v.id = w.video_id
		JOIN users o  ON o.id = v.owner_id
		WHERE w.user_id = $1
		ORDER BY w.watched_at DESC`

	rows, err := r.DB.Query(query, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute get watch history query")
		return nil, err
	}
	defer rows.Close()

	var entries []*model.WatchHistoryEntry
	for rows.Next() {
		var e model.WatchHistoryEntry
		if err := rows.Scan(&e.VideoID, &e.Title, &e.Thumbnail, &e.Duration, &e.Views,
			&e.OwnerID, &e.OwnerUsername, &e.OwnerFullName, &e.OwnerAvatar, &e.WatchedAt); err != nil {
			log.WithError(err).Error("Failed to scan watch history row")
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
