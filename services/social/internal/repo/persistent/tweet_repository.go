package persistent

import (
	"clipstream/pkg/query"
	"clipstream/services/social/internal/entity"
	"clipstream/services/social/internal/model"

	"gorm.io/gorm"
)

type TweetRepository interface {
	Create(tweet *entity.Tweet) error
	GetByID(id string) (*entity.Tweet, error)
	ListByOwner(ownerID string, p query.Params) ([]*entity.Tweet, int64, error)
	UpdateContent(id, content string) error
	Delete(id string) error
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(tweet *entity.Tweet) error {
	tweetModel := &model.TweetModel{
		ID:      tweet.ID,
		OwnerID: tweet.OwnerID,
		Content: tweet.Content,
	}
	if err := r.db.Create(tweetModel).Error; err != nil {
		return err
	}

	var created model.TweetModel
	err := r.db.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Select(AuthorColumns)
	}).Where("id = ?", tweetModel.ID).First(&created).Error
	if err != nil {
		return err
	}
	*tweet = *ToTweetEntity(&created)
	return nil
}

func (r *tweetRepository) GetByID(id string) (*entity.Tweet, error) {
	var tweetModel model.TweetModel
	err := r.db.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Select(AuthorColumns)
	}).Where("id = ?", id).First(&tweetModel).Error
	if err != nil {
		return nil, err
	}
	return ToTweetEntity(&tweetModel), nil
}

func (r *tweetRepository) ListByOwner(ownerID string, p query.Params) ([]*entity.Tweet, int64, error) {
	base := r.db.Model(&model.TweetModel{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tweetModels []model.TweetModel
	err := base.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Scopes(query.Paginate(p)).
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select(AuthorColumns)
		}).
		Find(&tweetModels).Error
	if err != nil {
		return nil, 0, err
	}

	tweets := make([]*entity.Tweet, len(tweetModels))
	for i := range tweetModels {
		tweets[i] = ToTweetEntity(&tweetModels[i])
	}
	return tweets, total, nil
}

func (r *tweetRepository) UpdateContent(id, content string) error {
	return r.db.Model(&model.TweetModel{}).Where("id = ?", id).
		UpdateColumn("content", content).Error
}

func (r *tweetRepository) Delete(id string) error {
	return r.db.Delete(&model.TweetModel{}, "id = ?", id).Error
}
