package usecase

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"clipstream/pkg/apperr"
	"clipstream/pkg/jwt"
	"clipstream/pkg/logger"
	"clipstream/pkg/query"
	"clipstream/pkg/s3"
	"clipstream/services/auth/internal/entity"
	"clipstream/services/auth/internal/repo/persistent"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUseCase interface {
	Register(fullname, email, username, password string, avatar, coverImage *multipart.FileHeader) (*entity.User, *jwt.TokenPair, error)
	Login(identifier, password string) (*entity.User, *jwt.TokenPair, error)
	Logout(userID string) error
	RefreshTokens(incomingToken string) (*jwt.TokenPair, error)
	ChangePassword(userID, oldPassword, newPassword string) error
	GetUser(userID string) (*entity.User, error)
	UpdateAccount(userID string, fullname, email *string) (*entity.User, error)
	UpdateAvatar(userID string, file *multipart.FileHeader) (*entity.User, error)
	UpdateCoverImage(userID string, file *multipart.FileHeader) (*entity.User, error)
	GetChannelProfile(username, viewerID string) (*entity.ChannelProfile, error)
	GetWatchHistory(userID string, p query.Params) ([]*entity.WatchedVideo, error)
	AddToWatchHistory(userID, videoID string) error
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	assetStore s3.Store
	logger     *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	assetStore s3.Store,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		assetStore: assetStore,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(fullname, email, username, password string, avatar, coverImage *multipart.FileHeader) (*entity.User, *jwt.TokenPair, error) {
	// Validation happens before anything touches the asset store.
	for _, field := range []string{fullname, email, username, password} {
		if strings.TrimSpace(field) == "" {
			return nil, nil, apperr.InvalidArgument("All fields are required")
		}
	}
	if avatar == nil {
		return nil, nil, apperr.InvalidArgument("Avatar file is required")
	}

	if _, err := uc.userRepo.GetByEmail(email); err == nil {
		return nil, nil, apperr.Conflict("User with email or username already exists")
	}
	if _, err := uc.userRepo.GetByUsername(username); err == nil {
		return nil, nil, apperr.Conflict("User with email or username already exists")
	}

	avatarURL, err := uc.uploadAsset("avatars", avatar)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, nil, apperr.Internal("Failed to upload avatar", err)
	}

	coverImageURL := ""
	if coverImage != nil {
		coverImageURL, err = uc.uploadAsset("covers", coverImage)
		if err != nil {
			uc.logger.Error("Failed to upload cover image: %v", err)
			return nil, nil, apperr.Internal("Failed to upload cover image", err)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperr.Internal("Failed to process registration", err)
	}

	user := &entity.User{
		Fullname:      fullname,
		Username:      strings.ToLower(username),
		Email:         strings.ToLower(email),
		Password:      string(hashedPassword),
		Role:          entity.RoleViewer,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
	}

	if err := uc.userRepo.Create(user); err != nil {
		// The pre-checks above can race a concurrent registration; the
		// unique index is the arbiter either way.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, apperr.Conflict("User with email or username already exists")
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, nil, apperr.Internal("Failed to create user", err)
	}

	pair, err := uc.issueTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	user.Password = ""
	user.RefreshToken = ""
	return user, pair, nil
}

func (uc *authUseCase) Login(identifier, password string) (*entity.User, *jwt.TokenPair, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, nil, apperr.InvalidArgument("Email or username is required")
	}
	if password == "" {
		return nil, nil, apperr.InvalidArgument("Password is required")
	}

	user, err := uc.userRepo.GetByEmailOrUsername(identifier)
	if err != nil {
		return nil, nil, apperr.Unauthenticated("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, apperr.Unauthenticated("Invalid credentials")
	}

	pair, err := uc.issueTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	user.Password = ""
	user.RefreshToken = ""
	return user, pair, nil
}

func (uc *authUseCase) Logout(userID string) error {
	if err := uc.userRepo.UpdateRefreshToken(userID, ""); err != nil {
		uc.logger.Error("Failed to clear refresh token: %v", err)
		return apperr.Internal("Failed to log out", err)
	}
	return nil
}

func (uc *authUseCase) RefreshTokens(incomingToken string) (*jwt.TokenPair, error) {
	if incomingToken == "" {
		return nil, apperr.Unauthenticated("Refresh token is required")
	}

	claims, err := uc.jwtService.ValidateRefreshToken(incomingToken)
	if err != nil {
		return nil, apperr.Unauthenticated("Invalid refresh token")
	}

	user, err := uc.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, apperr.Unauthenticated("Invalid refresh token")
	}

	// A rotated-out or cleared token must not be accepted twice.
	if user.RefreshToken == "" || user.RefreshToken != incomingToken {
		return nil, apperr.Unauthenticated("Refresh token is expired or used")
	}

	return uc.issueTokenPair(user)
}

func (uc *authUseCase) ChangePassword(userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apperr.InvalidArgument("Old and new password are required")
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return uc.notFoundOr(err, "User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperr.InvalidArgument("Invalid old password")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("Failed to change password", err)
	}

	user.Password = string(hashed)
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update password: %v", err)
		return apperr.Internal("Failed to change password", err)
	}
	return nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, uc.notFoundOr(err, "User not found")
	}
	user.Password = ""
	user.RefreshToken = ""
	return user, nil
}

func (uc *authUseCase) UpdateAccount(userID string, fullname, email *string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, uc.notFoundOr(err, "User not found")
	}

	if fullname != nil {
		if strings.TrimSpace(*fullname) == "" {
			return nil, apperr.InvalidArgument("Fullname cannot be empty")
		}
		user.Fullname = *fullname
	}
	if email != nil {
		if strings.TrimSpace(*email) == "" {
			return nil, apperr.InvalidArgument("Email cannot be empty")
		}
		user.Email = strings.ToLower(*email)
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update account: %v", err)
		return nil, apperr.Internal("Failed to update account", err)
	}

	user.Password = ""
	user.RefreshToken = ""
	return user, nil
}

func (uc *authUseCase) UpdateAvatar(userID string, file *multipart.FileHeader) (*entity.User, error) {
	return uc.replaceProfileAsset(userID, file, "avatars",
		func(u *entity.User) string { return u.AvatarURL },
		func(u *entity.User, url string) { u.AvatarURL = url })
}

func (uc *authUseCase) UpdateCoverImage(userID string, file *multipart.FileHeader) (*entity.User, error) {
	return uc.replaceProfileAsset(userID, file, "covers",
		func(u *entity.User) string { return u.CoverImageURL },
		func(u *entity.User, url string) { u.CoverImageURL = url })
}

// replaceProfileAsset uploads the new asset and commits the user row
// before the old asset is deleted. A failed delete is logged and
// reported nowhere else: the new state already won.
func (uc *authUseCase) replaceProfileAsset(userID string, file *multipart.FileHeader, prefix string, get func(*entity.User) string, set func(*entity.User, string)) (*entity.User, error) {
	if file == nil {
		return nil, apperr.InvalidArgument("File is required")
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, uc.notFoundOr(err, "User not found")
	}

	oldURL := get(user)

	newURL, err := uc.uploadAsset(prefix, file)
	if err != nil {
		uc.logger.Error("Failed to upload %s: %v", prefix, err)
		return nil, apperr.Internal("Failed to upload file", err)
	}

	set(user, newURL)
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, apperr.Internal("Failed to update user", err)
	}

	if oldURL != "" {
		if err := uc.assetStore.Delete(oldURL); err != nil {
			uc.logger.Warn("Failed to delete old asset %s: %v", oldURL, err)
		}
	}

	user.Password = ""
	user.RefreshToken = ""
	return user, nil
}

func (uc *authUseCase) GetChannelProfile(username, viewerID string) (*entity.ChannelProfile, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperr.InvalidArgument("Username is required")
	}

	profile, err := uc.userRepo.GetChannelProfile(username, viewerID)
	if err != nil {
		return nil, uc.notFoundOr(err, "Channel not found")
	}
	return profile, nil
}

func (uc *authUseCase) GetWatchHistory(userID string, p query.Params) ([]*entity.WatchedVideo, error) {
	return uc.userRepo.GetWatchHistory(userID, p)
}

func (uc *authUseCase) AddToWatchHistory(userID, videoID string) error {
	if uuid.Validate(videoID) != nil {
		return apperr.InvalidArgument("Invalid video id")
	}

	exists, err := uc.userRepo.VideoExists(videoID)
	if err != nil {
		return apperr.Internal("Failed to look up video", err)
	}
	if !exists {
		return apperr.NotFound("Video not found")
	}

	if err := uc.userRepo.AddToWatchHistory(userID, videoID); err != nil {
		uc.logger.Error("Failed to add to watch history: %v", err)
		return apperr.Internal("Failed to add to watch history", err)
	}
	return nil
}

func (uc *authUseCase) issueTokenPair(user *entity.User) (*jwt.TokenPair, error) {
	pair, err := uc.jwtService.GeneratePair(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate tokens: %v", err)
		return nil, apperr.Internal("Failed to generate tokens", err)
	}

	if err := uc.userRepo.UpdateRefreshToken(user.ID, pair.RefreshToken); err != nil {
		uc.logger.Error("Failed to store refresh token: %v", err)
		return nil, apperr.Internal("Failed to store refresh token", err)
	}
	return pair, nil
}

func (uc *authUseCase) uploadAsset(prefix string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	return uc.assetStore.Upload(key, src, contentType)
}

func (uc *authUseCase) notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(message)
	}
	return apperr.Internal(message, err)
}
