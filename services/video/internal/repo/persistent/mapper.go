package persistent

import (
	"clipstream/services/video/internal/entity"
	"clipstream/services/video/internal/model"
)

func ToVideoEntity(m *model.VideoModel) *entity.Video {
	v := &entity.Video{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		VideoURL:     m.VideoURL,
		ThumbnailURL: m.ThumbnailURL,
		Title:        m.Title,
		Description:  m.Description,
		Duration:     m.Duration,
		Views:        m.Views,
		IsPublished:  m.IsPublished,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Owner.ID != "" {
		v.Owner = &entity.Owner{
			ID:        m.Owner.ID,
			Fullname:  m.Owner.Fullname,
			Username:  m.Owner.Username,
			AvatarURL: m.Owner.AvatarURL,
		}
	}
	return v
}

func ToVideoModel(v *entity.Video) *model.VideoModel {
	return &model.VideoModel{
		ID:           v.ID,
		OwnerID:      v.OwnerID,
		VideoURL:     v.VideoURL,
		ThumbnailURL: v.ThumbnailURL,
		Title:        v.Title,
		Description:  v.Description,
		Duration:     v.Duration,
		Views:        v.Views,
		IsPublished:  v.IsPublished,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
