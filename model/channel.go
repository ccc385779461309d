// file: model/channel.go

package model

import "time"

// ChannelProfile is the public view of a user's channel, including the
// precomputed subscription aggregates.
type ChannelProfile struct {
	ID              int    `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	Avatar          string `json:"avatar"`
	CoverImage      string `json:"cover_image"`
	Email           string `json:"email"`
	SubscriberCount int64  `json:"subscriber_count"`
	SubscribedTo    int64  `json:"subscribed_to_count"`
	IsSubscribed    bool   `json:"is_subscribed"`
}

// WatchHistoryEntry joins a watched video with its owning channel.
type WatchHistoryEntry struct {
	VideoID       int       `json:"video_id"`
	Title         string    `json:"title"`
	Thumbnail     string    `json:"thumbnail"`
	Duration      float64   `json:"duration"`
	Views         int64     `json:"views"`
	OwnerID       int       `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	OwnerFullName string    `json:"owner_full_name"`
	OwnerAvatar   string    `json:"owner_avatar"`
	WatchedAt     time.Time `json:"watched_at"`
}
