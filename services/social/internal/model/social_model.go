package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeModel rows are hard-deleted on unlike; the unique triple index is
// what makes the toggle atomic under concurrent requests.
type LikeModel struct {
	ID         string `gorm:"type:uuid;primary_key"`
	UserID     string `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_target;index"`
	TargetKind string `gorm:"type:varchar(10);not null;uniqueIndex:idx_likes_user_target"`
	TargetID   string `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_target;index"`
	CreatedAt  time.Time
}

func (LikeModel) TableName() string {
	return "likes"
}

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// SubscriptionModel is hard-deleted on unsubscribe for the same reason.
type SubscriptionModel struct {
	ID           string `gorm:"type:uuid;primary_key"`
	SubscriberID string `gorm:"type:uuid;not null;uniqueIndex:idx_subs_pair;index"`
	ChannelID    string `gorm:"type:uuid;not null;uniqueIndex:idx_subs_pair;index"`
	CreatedAt    time.Time

	Channel    UserModel `gorm:"foreignKey:ChannelID"`
	Subscriber UserModel `gorm:"foreignKey:SubscriberID"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

type CommentModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	VideoID   string `gorm:"type:uuid;not null;index"`
	AuthorID  string `gorm:"type:uuid;not null;index"`
	Content   string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Author UserModel `gorm:"foreignKey:AuthorID"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

type TweetModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	OwnerID   string `gorm:"type:uuid;not null;index"`
	Content   string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Owner UserModel `gorm:"foreignKey:OwnerID"`
}

func (TweetModel) TableName() string {
	return "tweets"
}

func (t *TweetModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// UserModel and VideoModel map tables owned by the auth and video
// services; this service only reads them.
type UserModel struct {
	ID            string `gorm:"type:uuid;primary_key"`
	Fullname      string
	Username      string
	AvatarURL     string
	CoverImageURL string
}

func (UserModel) TableName() string {
	return "users"
}

type VideoModel struct {
	ID           string `gorm:"type:uuid;primary_key"`
	OwnerID      string `gorm:"type:uuid"`
	VideoURL     string
	ThumbnailURL string
	Title        string
	Description  string
	Duration     float64
	Views        int64
	IsPublished  bool
	CreatedAt    time.Time
	DeletedAt    gorm.DeletedAt

	Owner UserModel `gorm:"foreignKey:OwnerID"`
}

func (VideoModel) TableName() string {
	return "videos"
}
