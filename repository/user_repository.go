// file: repository/user_repository.go

package repository

import (
	"database/sql"
	"vidtube-api/logger"
	"vidtube-api/model"

	"github.com/sirupsen/logrus"
)

// IUserRepository defines the contract for user database operations.
// A not-found result is signalled with sql.ErrNoRows, distinct from
// infrastructure failures.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByID(id int) (*model.User, error)
	GetUserByUsernameOrEmail(username, email string) (*model.User, error)
	UpdateRefreshToken(userID int, refreshToken string) error
	UpdatePassword(userID int, passwordHash string) error
	UpdateAccountDetails(userID int, fullName, email string) (*model.User, error)
	UpdateAvatar(userID int, avatarURL string) (*model.User, error)
	UpdateCoverImage(userID int, coverImageURL string) (*model.User, error)
}

// UserRepository implements IUserRepository on top of Postgres.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, username, email, full_name, avatar, cover_image, password, COALESCE(refresh_token, ''), created_at, updated_at`

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FullName, &user.Avatar,
		&user.CoverImage, &user.Password, &user.RefreshToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user record. Username and email are expected to
// be lowercased by the service layer before this call.
func (r *UserRepository) CreateUser(user *model.User) error {
	log := logger.Log.WithFields(logrus.Fields{
		"username": user.Username,
		"email":    user.Email,
	})
	log.Info("Executing query to create a new user")

	query := `INSERT INTO users (username, email, full_name, avatar, cover_image, password)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query, user.Username, user.Email, user.FullName, user.Avatar,
		user.CoverImage, user.Password).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create user query")
		return err
	}
	return nil
}

// GetUserByID retrieves a user by primary key.
func (r *UserRepository) GetUserByID(id int) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.DB.QueryRow(query, id))
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithField("user_id", id).Error("Failed to execute get user by ID query")
		}
		return nil, err
	}
	return user, nil
}

// GetUserByUsernameOrEmail retrieves the user matching either identifier.
// Both identifiers are matched against the stored lowercase form.
func (r *UserRepository) GetUserByUsernameOrEmail(username, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $2`
	user, err := scanUser(r.DB.QueryRow(query, username, email))
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithFields(logrus.Fields{
				"username": username,
				"email":    email,
			}).Error("Failed to execute get user by username or email query")
		}
		return nil, err
	}
	return user, nil
}

// UpdateRefreshToken overwrites the persisted refresh token for a user.
// An empty token is stored as NULL, clearing the session.
func (r *UserRepository) UpdateRefreshToken(userID int, refreshToken string) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to update refresh token")

	query := `UPDATE users SET refresh_token = NULLIF($1, ''), updated_at = now() WHERE id = $2`
	res, err := r.DB.Exec(query, refreshToken, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update refresh token query")
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(userID int, passwordHash string) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to update password hash")

	query := `UPDATE users SET password = $1, updated_at = now() WHERE id = $2`
	res, err := r.DB.Exec(query, passwordHash, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update password query")
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateAccountDetails patches the mutable profile fields and returns the
// updated record.
func (r *UserRepository) UpdateAccountDetails(userID int, fullName, email string) (*model.User, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to update account details")

	query := `UPDATE users SET full_name = $1, email = $2, updated_at = now() WHERE id = $3 RETURNING ` + userColumns
	user, err := scanUser(r.DB.QueryRow(query, fullName, email, userID))
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute update account details query")
		}
		return nil, err
	}
	return user, nil
}

// UpdateAvatar replaces the avatar reference.
func (r *UserRepository) UpdateAvatar(userID int, avatarURL string) (*model.User, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to update avatar")

	query := `UPDATE users SET avatar = $1, updated_at = now() WHERE id = $2 RETURNING ` + userColumns
	user, err := scanUser(r.DB.QueryRow(query, avatarURL, userID))
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute update avatar query")
		}
		return nil, err
	}
	return user, nil
}

// UpdateCoverImage replaces the cover image reference.
func (r *UserRepository) UpdateCoverImage(userID int, coverImageURL string) (*model.User, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to update cover image")

	query := `UPDATE users SET cover_image = $1, updated_at = now() WHERE id = $2 RETURNING ` + userColumns
	user, err := scanUser(r.DB.QueryRow(query, coverImageURL, userID))
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute update cover image query")
		}
		return nil, err
	}
	return user, nil
}
