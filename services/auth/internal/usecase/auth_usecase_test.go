package usecase

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"clipstream/pkg/apperr"
	"clipstream/pkg/jwt"
	"clipstream/pkg/logger"
	"clipstream/pkg/query"
	"clipstream/services/auth/internal/entity"
	"clipstream/services/auth/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmailOrUsername(identifier string) (*entity.User, error) {
	args := m.Called(identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(userID, refreshToken string) error {
	args := m.Called(userID, refreshToken)
	return args.Error(0)
}

func (m *MockUserRepository) GetChannelProfile(username, viewerID string) (*entity.ChannelProfile, error) {
	args := m.Called(username, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ChannelProfile), args.Error(1)
}

func (m *MockUserRepository) GetWatchHistory(userID string, p query.Params) ([]*entity.WatchedVideo, error) {
	args := m.Called(userID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.WatchedVideo), args.Error(1)
}

func (m *MockUserRepository) AddToWatchHistory(userID, videoID string) error {
	args := m.Called(userID, videoID)
	return args.Error(0)
}

func (m *MockUserRepository) VideoExists(videoID string) (bool, error) {
	args := m.Called(videoID)
	return args.Bool(0), args.Error(1)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) Upload(key string, body io.Reader, contentType string) (string, error) {
	args := m.Called(key, body, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockAssetStore) Delete(fileURL string) error {
	args := m.Called(fileURL)
	return args.Error(0)
}

func newTestUseCase(repo *MockUserRepository, store *MockAssetStore) AuthUseCase {
	return NewAuthUseCase(repo, jwt.NewService("test-secret"), store, logger.New())
}

func fileHeader(t *testing.T, field, filename string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="` + field + `"; filename="` + filename + `"`},
	})
	assert.NoError(t, err)
	part.Write([]byte("payload"))
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	assert.NoError(t, err)
	return form.File[field][0]
}

func TestRegister_EmptyField(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockAssetStore)
	uc := newTestUseCase(repo, store)

	_, _, err := uc.Register("Full Name", "a@b.com", "", "password", nil, nil)

	assert.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	assert.Equal(t, "All fields are required", err.Error())

	// Validation failed, so nothing may have been written or uploaded
	repo.AssertNotCalled(t, "Create", mock.Anything)
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_WhitespaceOnlyField(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockAssetStore)
	uc := newTestUseCase(repo, store)

	_, _, err := uc.Register("  ", "a@b.com", "user", "password", nil, nil)

	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_MissingAvatar(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockAssetStore)
	uc := newTestUseCase(repo, store)

	_, _, err := uc.Register("Full Name", "a@b.com", "user", "password", nil, nil)

	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	assert.Equal(t, "Avatar file is required", err.Error())
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_ConcurrentDuplicateConflicts(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockAssetStore)
	uc := newTestUseCase(repo, store)

	// Both pre-checks pass, then the unique index catches a racing
	// registration at insert time.
	repo.On("GetByEmail", "a@b.com").Return(nil, gorm.ErrRecordNotFound)
	repo.On("GetByUsername", "user").Return(nil, gorm.ErrRecordNotFound)
	store.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return("https://cdn/avatar.png", nil)
	repo.On("Create", mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, _, err := uc.Register("Full Name", "a@b.com", "user", "password",
		fileHeader(t, "avatar", "avatar.png"), nil)

	assert.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLogin_InvalidPassword(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockAssetStore)
	uc := newTestUseCase(repo, store)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.DefaultCost)
	repo.On("GetByEmailOrUsername", "user@example.com").Return(&entity.User{
		ID:       "user-1",
		Email:    "user@example.com",
		Password: string(hashed),
	}, nil)

	_, _, err := uc.Login("user@example.com", "wrong-password")

	assert.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockAssetStore)
	uc := newTestUseCase(repo, store)

	repo.On("GetByEmailOrUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := uc.Login("ghost", "password")

	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestLogin_IssuesAndStoresTokenPair(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockAssetStore)
	uc := newTestUseCase(repo, store)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo.On("GetByEmailOrUsername", "user@example.com").Return(&entity.User{
		ID:       "user-1",
		Email:    "user@example.com",
		Role:     entity.RoleViewer,
		Password: string(hashed),
	}, nil)
	repo.On("UpdateRefreshToken", "user-1", mock.AnythingOfType("string")).Return(nil)

	user, pair, err := uc.Login("user@example.com", "password")

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Empty(t, user.Password)
	repo.AssertCalled(t, "UpdateRefreshToken", "user-1", pair.RefreshToken)
}

func TestRefreshTokens_RotatedOutTokenRejected(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockAssetStore)
	jwtService := jwt.NewService("test-secret")
	uc := NewAuthUseCase(repo, jwtService, store, logger.New())

	staleToken, _ := jwtService.GenerateRefreshToken("user-1", "viewer")
	// Token timestamps have second granularity; cross a second boundary so
	// the two tokens are actually distinct.
	time.Sleep(1100 * time.Millisecond)
	currentToken, _ := jwtService.GenerateRefreshToken("user-1", "viewer")

	repo.On("GetByID", "user-1").Return(&entity.User{
		ID:           "user-1",
		RefreshToken: currentToken,
	}, nil)

	_, err := uc.RefreshTokens(staleToken)

	assert.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	repo.AssertNotCalled(t, "UpdateRefreshToken", mock.Anything, mock.Anything)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockAssetStore)
	uc := newTestUseCase(repo, store)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("current"), bcrypt.DefaultCost)
	repo.On("GetByID", "user-1").Return(&entity.User{ID: "user-1", Password: string(hashed)}, nil)

	err := uc.ChangePassword("user-1", "not-current", "next")

	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	repo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestAddToWatchHistory_VideoMissing(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockAssetStore)
	uc := newTestUseCase(repo, store)

	missingVideoID := "0d9c2f9e-6a1b-47a3-b0a5-2f1de0c4a981"
	repo.On("VideoExists", missingVideoID).Return(false, nil)

	err := uc.AddToWatchHistory("user-1", missingVideoID)

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	repo.AssertNotCalled(t, "AddToWatchHistory", mock.Anything, mock.Anything)
}

func TestAddToWatchHistory_MalformedVideoID(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockAssetStore)
	uc := newTestUseCase(repo, store)

	err := uc.AddToWatchHistory("user-1", "not-a-uuid")

	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	repo.AssertNotCalled(t, "VideoExists", mock.Anything)
	repo.AssertNotCalled(t, "AddToWatchHistory", mock.Anything, mock.Anything)
}
