package persistent

import (
	"clipstream/pkg/query"
	"clipstream/services/social/internal/entity"
	"clipstream/services/social/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *entity.Comment) error
	GetByID(id string) (*entity.Comment, error)
	ListByVideo(videoID string, p query.Params) ([]*entity.Comment, int64, error)
	UpdateContent(id, content string) error
	Delete(id string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *entity.Comment) error {
	commentModel := &model.CommentModel{
		ID:       comment.ID,
		VideoID:  comment.VideoID,
		AuthorID: comment.AuthorID,
		Content:  comment.Content,
	}
	if err := r.db.Create(commentModel).Error; err != nil {
		return err
	}

	// Reload with the author embedded so the response carries the
	// projection straight away.
	var created model.CommentModel
	err := r.db.Preload("Author", func(db *gorm.DB) *gorm.DB {
		return db.Select(AuthorColumns)
	}).Where("id = ?", commentModel.ID).First(&created).Error
	if err != nil {
		return err
	}
	*comment = *ToCommentEntity(&created)
	return nil
}

func (r *commentRepository) GetByID(id string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	err := r.db.Preload("Author", func(db *gorm.DB) *gorm.DB {
		return db.Select(AuthorColumns)
	}).Where("id = ?", id).First(&commentModel).Error
	if err != nil {
		return nil, err
	}
	return ToCommentEntity(&commentModel), nil
}

func (r *commentRepository) ListByVideo(videoID string, p query.Params) ([]*entity.Comment, int64, error) {
	base := r.db.Model(&model.CommentModel{}).Where("video_id = ?", videoID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var commentModels []model.CommentModel
	err := base.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Scopes(query.Paginate(p)).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select(AuthorColumns)
		}).
		Find(&commentModels).Error
	if err != nil {
		return nil, 0, err
	}

	comments := make([]*entity.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = ToCommentEntity(&commentModels[i])
	}
	return comments, total, nil
}

func (r *commentRepository) UpdateContent(id, content string) error {
	return r.db.Model(&model.CommentModel{}).Where("id = ?", id).
		UpdateColumn("content", content).Error
}

func (r *commentRepository) Delete(id string) error {
	return r.db.Delete(&model.CommentModel{}, "id = ?", id).Error
}
