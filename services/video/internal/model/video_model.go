package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoModel struct {
	ID           string `gorm:"type:uuid;primary_key"`
	OwnerID      string `gorm:"type:uuid;not null;index"`
	VideoURL     string `gorm:"not null"`
	ThumbnailURL string
	Title        string `gorm:"not null"`
	Description  string
	Duration     float64
	Views        int64 `gorm:"default:0"`
	IsPublished  bool  `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	Owner UserModel `gorm:"foreignKey:OwnerID"`
}

func (VideoModel) TableName() string {
	return "videos"
}

func (v *VideoModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

// UserModel maps the users table for owner projections. The auth
// service owns writes to this table.
type UserModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	Fullname  string
	Username  string
	AvatarURL string
}

func (UserModel) TableName() string {
	return "users"
}

// LikeModel and SubscriptionModel are read here only for dashboard
// aggregation; the social service owns their lifecycles.
type LikeModel struct {
	ID         string `gorm:"type:uuid;primary_key"`
	UserID     string `gorm:"type:uuid"`
	TargetKind string `gorm:"type:varchar(10)"`
	TargetID   string `gorm:"type:uuid"`
	CreatedAt  time.Time
}

func (LikeModel) TableName() string {
	return "likes"
}

type SubscriptionModel struct {
	ID           string `gorm:"type:uuid;primary_key"`
	SubscriberID string `gorm:"type:uuid"`
	ChannelID    string `gorm:"type:uuid"`
	CreatedAt    time.Time
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
