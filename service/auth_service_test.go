// file: service/auth_service_test.go

package service

import (
	"database/sql"
	"strings"
	"testing"
	"vidtube-api/common"
	"vidtube-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}
func (m *mockUserRepo) GetUserByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) GetUserByUsernameOrEmail(username, email string) (*model.User, error) {
	args := m.Called(username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) UpdateRefreshToken(userID int, refreshToken string) error {
	args := m.Called(userID, refreshToken)
	return args.Error(0)
}
func (m *mockUserRepo) UpdatePassword(userID int, passwordHash string) error {
	args := m.Called(userID, passwordHash)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateAccountDetails(userID int, fullName, email string) (*model.User, error) {
	args := m.Called(userID, fullName, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) UpdateAvatar(userID int, avatarURL string) (*model.User, error) {
	args := m.Called(userID, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) UpdateCoverImage(userID int, coverImageURL string) (*model.User, error) {
	args := m.Called(userID, coverImageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// fakeUserRepo is a stateful in-memory repository for lifecycle tests where
// the persisted refresh token has to survive across calls.
type fakeUserRepo struct {
	users  map[int]*model.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) CreateUser(user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.ID] = &stored
	return nil
}
func (f *fakeUserRepo) GetUserByID(id int) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}
func (f *fakeUserRepo) GetUserByUsernameOrEmail(username, email string) (*model.User, error) {
	for _, user := range f.users {
		if (username != "" && user.Username == username) || (email != "" && user.Email == email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}
func (f *fakeUserRepo) UpdateRefreshToken(userID int, refreshToken string) error {
	user, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	user.RefreshToken = refreshToken
	return nil
}
func (f *fakeUserRepo) UpdatePassword(userID int, passwordHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	user.Password = passwordHash
	return nil
}
func (f *fakeUserRepo) UpdateAccountDetails(int, string, string) (*model.User, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeUserRepo) UpdateAvatar(int, string) (*model.User, error)     { return nil, sql.ErrNoRows }
func (f *fakeUserRepo) UpdateCoverImage(int, string) (*model.User, error) { return nil, sql.ErrNoRows }

// TestAuthService_HashAndCheckPassword ensures that password hashing and verification methods work correctly.
func TestAuthService_HashAndCheckPassword(t *testing.T) {
	authService := NewAuthService(nil)
	password := "mySecretPassword123"

	hashedPassword, err := authService.HashPassword(password)
	if err != nil {
		t.Fatalf("authService.HashPassword() returned an unexpected error: %v", err)
	}
	if hashedPassword == password {
		t.Errorf("Hashed password should not be the same as the original password.")
	}

	if !authService.CheckPasswordHash(password, hashedPassword) {
		t.Errorf("CheckPasswordHash() should have returned true for a matching password.")
	}
	if authService.CheckPasswordHash("notMyPassword", hashedPassword) {
		t.Errorf("CheckPasswordHash() should have returned false for a non-matching password.")
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("success strips credentials and lowercases identity", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByUsernameOrEmail", "alice", "a@x.com").Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "alice" && u.Email == "a@x.com" && u.Password != "pw123456"
		})).Return(nil).Once()

		authService := NewAuthService(mockRepo)
		user, appErr := authService.Register(" Alice ", "A@X.com", "Alice A", "pw123456", "http://cdn/avatar.png", "")

		assert.Nil(t, appErr)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "a@x.com", user.Email)
		assert.Empty(t, user.Password)
		assert.Empty(t, user.RefreshToken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate identity yields conflict", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		existing := &model.User{ID: 7, Username: "alice", Email: "a@x.com"}
		mockRepo.On("GetUserByUsernameOrEmail", "alice", "a@x.com").Return(existing, nil).Once()

		authService := NewAuthService(mockRepo)
		_, appErr := authService.Register("alice", "a@x.com", "Alice A", "pw123456", "http://cdn/avatar.png", "")

		assert.NotNil(t, appErr)
		assert.Equal(t, common.KindConflict, appErr.Kind)
		mockRepo.AssertNotCalled(t, "CreateUser")
	})

	t.Run("blank required field yields validation error", func(t *testing.T) {
		authService := NewAuthService(new(mockUserRepo))
		_, appErr := authService.Register("alice", "a@x.com", "   ", "pw123456", "http://cdn/avatar.png", "")

		assert.NotNil(t, appErr)
		assert.Equal(t, common.KindValidation, appErr.Kind)
	})

	t.Run("missing avatar yields validation error", func(t *testing.T) {
		authService := NewAuthService(new(mockUserRepo))
		_, appErr := authService.Register("alice", "a@x.com", "Alice A", "pw123456", "", "")

		assert.NotNil(t, appErr)
		assert.Equal(t, common.KindValidation, appErr.Kind)
	})
}

func TestAuthService_Login(t *testing.T) {
	authService := NewAuthService(nil)
	hashed, err := authService.HashPassword("pw123456")
	assert.NoError(t, err)

	storedUser := func() *model.User {
		return &model.User{ID: 5, Username: "alice", Email: "a@x.com", FullName: "Alice A", Password: hashed}
	}

	t.Run("success issues verifiable pair and persists refresh token", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByUsernameOrEmail", "alice", "").Return(storedUser(), nil).Once()

		var persisted string
		mockRepo.On("UpdateRefreshToken", 5, mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
			persisted = args.String(1)
		}).Return(nil).Once()

		svc := NewAuthService(mockRepo)
		result, appErr := svc.Login("alice", "", "pw123456")

		assert.Nil(t, appErr)
		assert.Empty(t, result.User.Password)
		assert.Equal(t, result.RefreshToken, persisted)

		accessClaims, err := VerifyAccessToken(result.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, 5, accessClaims.UserID)

		refreshClaims, err := VerifyRefreshToken(result.RefreshToken)
		assert.NoError(t, err)
		assert.Equal(t, 5, refreshClaims.UserID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong password never mutates the persisted token", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByUsernameOrEmail", "alice", "").Return(storedUser(), nil).Once()

		svc := NewAuthService(mockRepo)
		_, appErr := svc.Login("alice", "", "wrongpassword")

		assert.NotNil(t, appErr)
		assert.Equal(t, common.KindAuth, appErr.Kind)
		mockRepo.AssertNotCalled(t, "UpdateRefreshToken")
	})

	t.Run("unknown user yields not found", func(t *testing.T) {
		mockRepo := new(mockUserRepo)
		mockRepo.On("GetUserByUsernameOrEmail", "", "nobody@x.com").Return(nil, sql.ErrNoRows).Once()

		svc := NewAuthService(mockRepo)
		_, appErr := svc.Login("", "nobody@x.com", "pw123456")

		assert.NotNil(t, appErr)
		assert.Equal(t, common.KindNotFound, appErr.Kind)
	})

	t.Run("missing identifiers yield validation error", func(t *testing.T) {
		svc := NewAuthService(new(mockUserRepo))
		_, appErr := svc.Login("  ", "", "pw123456")

		assert.NotNil(t, appErr)
		assert.Equal(t, common.KindValidation, appErr.Kind)
	})
}

// TestAuthService_SessionLifecycle walks the full register -> login ->
// refresh -> logout flow, checking rotation, reuse detection and revocation.
func TestAuthService_SessionLifecycle(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, appErr := svc.Register("alice", "a@x.com", "Alice A", "pw123456", "http://cdn/avatar.png", "")
	assert.Nil(t, appErr)
	assert.Empty(t, user.Password)
	assert.Empty(t, user.RefreshToken)

	login, appErr := svc.Login("alice", "", "pw123456")
	assert.Nil(t, appErr)

	stored, _ := repo.GetUserByID(user.ID)
	assert.Equal(t, login.RefreshToken, stored.RefreshToken)

	// Rotation: the first refresh succeeds and yields a different token.
	pair, appErr := svc.Refresh(login.RefreshToken)
	assert.Nil(t, appErr)
	assert.NotEqual(t, login.RefreshToken, pair.RefreshToken)

	// Reuse of the rotated-out token is rejected.
	_, appErr = svc.Refresh(login.RefreshToken)
	assert.NotNil(t, appErr)
	assert.Equal(t, common.KindAuth, appErr.Kind)

	// Revocation is immediate: refresh after logout fails even with the
	// latest token.
	assert.Nil(t, svc.Logout(user.ID))
	_, appErr = svc.Refresh(pair.RefreshToken)
	assert.NotNil(t, appErr)
	assert.Equal(t, common.KindAuth, appErr.Kind)
}

func TestAuthService_Refresh_InvalidInputs(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	t.Run("absent token", func(t *testing.T) {
		_, appErr := svc.Refresh("")
		assert.NotNil(t, appErr)
		assert.Equal(t, common.KindAuth, appErr.Kind)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, appErr := svc.Refresh("garbage.token.value")
		assert.NotNil(t, appErr)
		assert.Equal(t, common.KindAuth, appErr.Kind)
	})

	t.Run("token for a deleted account", func(t *testing.T) {
		token, err := GenerateRefreshToken(&model.User{ID: 99})
		assert.NoError(t, err)

		_, appErr := svc.Refresh(token)
		assert.NotNil(t, appErr)
		assert.Equal(t, common.KindAuth, appErr.Kind)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, appErr := svc.Register("bob", "b@x.com", "Bob B", "oldpassword", "http://cdn/avatar.png", "")
	assert.Nil(t, appErr)

	t.Run("wrong old password is rejected", func(t *testing.T) {
		appErr := svc.ChangePassword(user.ID, "nottheoldone", "newpassword1")
		assert.NotNil(t, appErr)
		assert.Equal(t, common.KindAuth, appErr.Kind)
	})

	t.Run("correct old password replaces the hash", func(t *testing.T) {
		appErr := svc.ChangePassword(user.ID, "oldpassword", "newpassword1")
		assert.Nil(t, appErr)

		// Login with the new password works, the old one no longer does.
		_, appErr = svc.Login("bob", "", "newpassword1")
		assert.Nil(t, appErr)

		_, appErr = svc.Login("bob", "", "oldpassword")
		assert.NotNil(t, appErr)
		assert.Equal(t, common.KindAuth, appErr.Kind)
	})
}

func TestAuthService_AuthErrorMessageIsGeneric(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	_, appErr := svc.Refresh("garbage")
	assert.NotNil(t, appErr)
	assert.False(t, strings.Contains(strings.ToLower(appErr.Message), "signature"))
	assert.False(t, strings.Contains(strings.ToLower(appErr.Message), "expired"))
}
