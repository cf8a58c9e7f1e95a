package persistent

import (
	"strings"

	"clipstream/pkg/query"
	"clipstream/services/auth/internal/entity"
	"clipstream/services/auth/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileColumns is the whitelisted projection applied whenever a user
// row is embedded in another result.
const ProfileColumns = "id, fullname, username, avatar_url"

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmailOrUsername(identifier string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateRefreshToken(userID, refreshToken string) error
	GetChannelProfile(username, viewerID string) (*entity.ChannelProfile, error)
	GetWatchHistory(userID string, p query.Params) ([]*entity.WatchedVideo, error)
	AddToWatchHistory(userID, videoID string) error
	VideoExists(videoID string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if userModel.ID == "" {
		userModel.ID = uuid.New().String()
	}
	if err := r.db.Create(userModel).Error; err != nil {
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("email = ?", strings.ToLower(email)).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("username = ?", strings.ToLower(username)).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmailOrUsername(identifier string) (*entity.User, error) {
	identifier = strings.ToLower(identifier)
	var userModel model.UserModel
	if err := r.db.Where("email = ? OR username = ?", identifier, identifier).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) Update(user *entity.User) error {
	userModel := ToUserModel(user)
	return r.db.Save(userModel).Error
}

func (r *userRepository) UpdateRefreshToken(userID, refreshToken string) error {
	return r.db.Model(&model.UserModel{}).Where("id = ?", userID).Update("refresh_token", refreshToken).Error
}

func (r *userRepository) GetChannelProfile(username, viewerID string) (*entity.ChannelProfile, error) {
	var userModel model.UserModel
	if err := r.db.Where("username = ?", strings.ToLower(username)).First(&userModel).Error; err != nil {
		return nil, err
	}

	var subscriberCount int64
	if err := r.db.Model(&model.SubscriptionModel{}).Where("channel_id = ?", userModel.ID).Count(&subscriberCount).Error; err != nil {
		return nil, err
	}

	var subscribedToCount int64
	if err := r.db.Model(&model.SubscriptionModel{}).Where("subscriber_id = ?", userModel.ID).Count(&subscribedToCount).Error; err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != "" {
		var count int64
		if err := r.db.Model(&model.SubscriptionModel{}).
			Where("subscriber_id = ? AND channel_id = ?", viewerID, userModel.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		isSubscribed = count > 0
	}

	return &entity.ChannelProfile{
		Profile:           ToProfile(&userModel),
		CoverImageURL:     userModel.CoverImageURL,
		SubscriberCount:   subscriberCount,
		SubscribedToCount: subscribedToCount,
		IsSubscribed:      isSubscribed,
	}, nil
}

func (r *userRepository) GetWatchHistory(userID string, p query.Params) ([]*entity.WatchedVideo, error) {
	var entries []model.WatchHistoryModel
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Scopes(query.Paginate(p)).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return []*entity.WatchedVideo{}, nil
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.VideoID
	}

	var videoModels []model.VideoModel
	if err := r.db.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Select(ProfileColumns)
	}).Where("id IN ?", ids).Find(&videoModels).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]*model.VideoModel, len(videoModels))
	for i := range videoModels {
		byID[videoModels[i].ID] = &videoModels[i]
	}

	// Entries whose video row is gone are dropped, not errors.
	watched := make([]*entity.WatchedVideo, 0, len(entries))
	for i := range entries {
		if v, ok := byID[entries[i].VideoID]; ok {
			watched = append(watched, ToWatchedVideo(&entries[i], v))
		}
	}
	return watched, nil
}

func (r *userRepository) AddToWatchHistory(userID, videoID string) error {
	entry := &model.WatchHistoryModel{
		ID:      uuid.New().String(),
		UserID:  userID,
		VideoID: videoID,
	}
	// Set semantics: re-watching must not create a duplicate row.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoNothing: true,
	}).Create(entry).Error
}

func (r *userRepository) VideoExists(videoID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.VideoModel{}).Where("id = ?", videoID).Count(&count).Error
	return count > 0, err
}
