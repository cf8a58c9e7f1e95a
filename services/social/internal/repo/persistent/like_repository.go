package persistent

import (
	"clipstream/pkg/query"
	"clipstream/services/social/internal/entity"
	"clipstream/services/social/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuthorColumns is the whitelisted user projection joined into social
// views. Credentials never pass through this package.
const AuthorColumns = "id, fullname, username, avatar_url, cover_image_url"

type LikeRepository interface {
	Toggle(userID string, kind entity.TargetKind, targetID string) (bool, error)
	IsLiked(userID string, kind entity.TargetKind, targetID string) (bool, error)
	Count(kind entity.TargetKind, targetID string) (int64, error)
	GetLikedVideos(userID string, p query.Params) ([]*entity.LikedVideo, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the like state in one round trip per direction. The
// insert lands first and relies on the unique (user, kind, target)
// index: zero rows affected means the like already existed, so it is
// removed instead. Concurrent toggles for the same triple serialize on
// the index rather than on application state.
func (r *likeRepository) Toggle(userID string, kind entity.TargetKind, targetID string) (bool, error) {
	like := &model.LikeModel{
		ID:         uuid.New().String(),
		UserID:     userID,
		TargetKind: string(kind),
		TargetID:   targetID,
	}

	res := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "target_kind"}, {Name: "target_id"},
		},
		DoNothing: true,
	}).Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	err := r.db.
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, string(kind), targetID).
		Delete(&model.LikeModel{}).Error
	return false, err
}

func (r *likeRepository) IsLiked(userID string, kind entity.TargetKind, targetID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, string(kind), targetID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) Count(kind entity.TargetKind, targetID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).
		Where("target_kind = ? AND target_id = ?", string(kind), targetID).
		Count(&count).Error
	return count, err
}

// GetLikedVideos builds the liked-videos projection. Likes are paged
// first, then their videos fetched with the owner embedded; likes whose
// video has since been deleted simply drop out of the page.
func (r *likeRepository) GetLikedVideos(userID string, p query.Params) ([]*entity.LikedVideo, error) {
	var likes []model.LikeModel
	err := r.db.
		Where("user_id = ? AND target_kind = ?", userID, string(entity.TargetVideo)).
		Order("created_at DESC, id DESC").
		Scopes(query.Paginate(p)).
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	if len(likes) == 0 {
		return []*entity.LikedVideo{}, nil
	}

	videoIDs := make([]string, len(likes))
	for i, like := range likes {
		videoIDs[i] = like.TargetID
	}

	var videos []model.VideoModel
	err = r.db.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Select(AuthorColumns)
	}).Where("id IN ?", videoIDs).Find(&videos).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.VideoModel, len(videos))
	for i := range videos {
		byID[videos[i].ID] = &videos[i]
	}

	result := make([]*entity.LikedVideo, 0, len(likes))
	for _, like := range likes {
		video, ok := byID[like.TargetID]
		if !ok {
			continue
		}
		result = append(result, &entity.LikedVideo{
			ID:           video.ID,
			OwnerID:      video.OwnerID,
			VideoURL:     video.VideoURL,
			ThumbnailURL: video.ThumbnailURL,
			Title:        video.Title,
			Description:  video.Description,
			Duration:     video.Duration,
			Views:        video.Views,
			LikedAt:      like.CreatedAt,
			Owner:        toAuthor(&video.Owner),
		})
	}
	return result, nil
}
