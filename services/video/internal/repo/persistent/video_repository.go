package persistent

import (
	"clipstream/pkg/query"
	"clipstream/services/video/internal/entity"
	"clipstream/services/video/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnerColumns is the whitelisted owner projection. Credentials never
// leave the users table through this repository.
const OwnerColumns = "id, fullname, username, avatar_url"

// videoSortColumns maps API sort keys to columns.
var videoSortColumns = map[string]string{
	"created_at": "created_at",
	"views":      "views",
	"duration":   "duration",
	"title":      "title",
}

type VideoRepository interface {
	Create(video *entity.Video) error
	GetByID(id string) (*entity.Video, error)
	List(p query.Params, ownerID string, publishedOnly bool) ([]*entity.Video, int64, error)
	Update(video *entity.Video) error
	Delete(id string) error
	SetPublished(id string, published bool) error
	IncrementViews(id string) error
	GetDashboardStats(ownerID string) (*entity.DashboardStats, error)
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(video *entity.Video) error {
	videoModel := ToVideoModel(video)
	if err := r.db.Create(videoModel).Error; err != nil {
		return err
	}
	*video = *ToVideoEntity(videoModel)
	return nil
}

func (r *videoRepository) GetByID(id string) (*entity.Video, error) {
	var videoModel model.VideoModel
	err := r.db.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Select(OwnerColumns)
	}).Where("id = ?", id).First(&videoModel).Error
	if err != nil {
		return nil, err
	}
	return ToVideoEntity(&videoModel), nil
}

// List builds the denormalized video projection: free-text search over
// title and description, whitelisted sort, offset pagination and the
// embedded owner. ownerID narrows the list to one channel;
// publishedOnly hides drafts from viewers who do not own them.
func (r *videoRepository) List(p query.Params, ownerID string, publishedOnly bool) ([]*entity.Video, int64, error) {
	base := r.db.Model(&model.VideoModel{})
	if ownerID != "" {
		base = base.Where("owner_id = ?", ownerID)
	}
	if publishedOnly {
		base = base.Where("is_published = ?", true)
	}
	base = base.Scopes(query.Search(p.Query, "title", "description"))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videoModels []model.VideoModel
	err := base.Session(&gorm.Session{}).
		Scopes(query.Sort(videoSortColumns, p.SortBy, p.SortDir), query.Paginate(p)).
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select(OwnerColumns)
		}).
		Find(&videoModels).Error
	if err != nil {
		return nil, 0, err
	}

	videos := make([]*entity.Video, len(videoModels))
	for i := range videoModels {
		videos[i] = ToVideoEntity(&videoModels[i])
	}
	return videos, total, nil
}

func (r *videoRepository) Update(video *entity.Video) error {
	videoModel := ToVideoModel(video)
	return r.db.Model(&model.VideoModel{}).Where("id = ?", video.ID).Updates(map[string]interface{}{
		"title":         videoModel.Title,
		"description":   videoModel.Description,
		"video_url":     videoModel.VideoURL,
		"thumbnail_url": videoModel.ThumbnailURL,
		"duration":      videoModel.Duration,
	}).Error
}

func (r *videoRepository) Delete(id string) error {
	return r.db.Delete(&model.VideoModel{}, "id = ?", id).Error
}

func (r *videoRepository) SetPublished(id string, published bool) error {
	return r.db.Model(&model.VideoModel{}).Where("id = ?", id).
		UpdateColumn("is_published", published).Error
}

func (r *videoRepository) IncrementViews(id string) error {
	return r.db.Model(&model.VideoModel{}).Where("id = ?", id).
		UpdateColumn("views", clause.Expr{SQL: "views + ?", Vars: []interface{}{1}}).Error
}

func (r *videoRepository) GetDashboardStats(ownerID string) (*entity.DashboardStats, error) {
	stats := &entity.DashboardStats{}

	if err := r.db.Model(&model.VideoModel{}).
		Where("owner_id = ?", ownerID).
		Count(&stats.TotalVideos).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.VideoModel{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(views), 0)").
		Scan(&stats.TotalViews).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.SubscriptionModel{}).
		Where("channel_id = ?", ownerID).
		Count(&stats.TotalSubscribers).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.LikeModel{}).
		Joins("INNER JOIN videos ON videos.id = likes.target_id").
		Where("likes.target_kind = ? AND videos.owner_id = ? AND videos.deleted_at IS NULL", "video", ownerID).
		Count(&stats.TotalLikes).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
