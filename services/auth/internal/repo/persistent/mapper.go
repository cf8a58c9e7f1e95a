package persistent

import (
	"clipstream/services/auth/internal/entity"
	"clipstream/services/auth/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:            m.ID,
		Fullname:      m.Fullname,
		Username:      m.Username,
		Email:         m.Email,
		Password:      m.Password,
		Role:          entity.UserRole(m.Role),
		AvatarURL:     m.AvatarURL,
		CoverImageURL: m.CoverImageURL,
		RefreshToken:  m.RefreshToken,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:            e.ID,
		Fullname:      e.Fullname,
		Username:      e.Username,
		Email:         e.Email,
		Password:      e.Password,
		Role:          string(e.Role),
		AvatarURL:     e.AvatarURL,
		CoverImageURL: e.CoverImageURL,
		RefreshToken:  e.RefreshToken,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToProfile(m *model.UserModel) entity.Profile {
	if m == nil {
		return entity.Profile{}
	}

	return entity.Profile{
		ID:        m.ID,
		Fullname:  m.Fullname,
		Username:  m.Username,
		AvatarURL: m.AvatarURL,
	}
}

func ToWatchedVideo(w *model.WatchHistoryModel, v *model.VideoModel) *entity.WatchedVideo {
	if v == nil {
		return nil
	}

	return &entity.WatchedVideo{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoURL,
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
		Views:        v.Views,
		Owner:        ToProfile(&v.Owner),
		WatchedAt:    w.CreatedAt,
	}
}
