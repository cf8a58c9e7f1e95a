package persistent

import (
	"clipstream/services/social/internal/entity"
	"clipstream/services/social/internal/model"
)

func toAuthor(m *model.UserModel) *entity.Author {
	if m == nil || m.ID == "" {
		return nil
	}
	return &entity.Author{
		ID:        m.ID,
		Fullname:  m.Fullname,
		Username:  m.Username,
		AvatarURL: m.AvatarURL,
	}
}

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	return &entity.Comment{
		ID:        m.ID,
		VideoID:   m.VideoID,
		AuthorID:  m.AuthorID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Author:    toAuthor(&m.Author),
	}
}

func ToTweetEntity(m *model.TweetModel) *entity.Tweet {
	return &entity.Tweet{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Owner:     toAuthor(&m.Owner),
	}
}
