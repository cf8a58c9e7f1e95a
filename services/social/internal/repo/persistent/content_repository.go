package persistent

import (
	"clipstream/services/social/internal/model"

	"gorm.io/gorm"
)

// ContentRepository looks up rows owned by the auth and video services
// for existence checks and notification targeting.
type ContentRepository interface {
	VideoExists(id string) (bool, error)
	VideoOwner(id string) (string, error)
	UserExists(id string) (bool, error)
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) VideoExists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.VideoModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *contentRepository) VideoOwner(id string) (string, error) {
	var owner string
	err := r.db.Model(&model.VideoModel{}).Select("owner_id").
		Where("id = ?", id).Scan(&owner).Error
	return owner, err
}

func (r *contentRepository) UserExists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.UserModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
