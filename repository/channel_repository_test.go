// file: repository/channel_repository_test.go

package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestChannelRepository_GetChannelProfile(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewChannelRepository(db)

	t.Run("returns precomputed aggregates", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "username", "full_name", "avatar", "cover_image", "email",
			"subscriber_count", "subscribed_to_count", "is_subscribed",
		}).AddRow(3, "alice", "Alice A", "http://cdn/a.png", "", "a@x.com", 120, 4, true)

		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT u.id, u.username`)).
			WithArgs("alice", 9).
			WillReturnRows(rows)

		profile, err := repo.GetChannelProfile("alice", 9)
		assert.NoError(t, err)
		assert.Equal(t, int64(120), profile.SubscriberCount)
		assert.Equal(t, int64(4), profile.SubscribedTo)
		assert.True(t, profile.IsSubscribed)
	})

	t.Run("unknown channel surfaces sql.ErrNoRows", func(t *testing.T) {
		dbMock.ExpectQuery(regexp.QuoteMeta(`SELECT u.id, u.username`)).
			WithArgs("ghost", 9).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetChannelProfile("ghost", 9)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestChannelRepository_GetWatchHistory(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewChannelRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "title", "thumbnail", "duration", "views",
		"owner_id", "username", "full_name", "avatar", "watched_at",
	}).
		AddRow(11, "Latest video", "http://cdn/t1.png", 120.5, 900, 3, "alice", "Alice A", "http://cdn/a.png", now).
		AddRow(10, "Older video", "http://cdn/t2.png", 33.0, 50, 4, "bob", "Bob B", "http://cdn/b.png", now.Add(-time.Hour))

	dbMock.ExpectQuery(regexp.QuoteMeta(`FROM watch_history`)).
		WithArgs(8).
		WillReturnRows(rows)

	entries, err := repo.GetWatchHistory(8)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "Latest video", entries[0].Title)
	assert.Equal(t, "alice", entries[0].OwnerUsername)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
