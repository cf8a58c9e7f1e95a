package model

import (
	"time"

	"gorm.io/gorm"
)

// Read-only view of the videos table, used by the watch-history
// projection. The video service owns writes to this table.
type VideoModel struct {
	ID           string `gorm:"type:uuid;primary_key"`
	OwnerID      string `gorm:"type:uuid;not null"`
	VideoURL     string
	ThumbnailURL string
	Title        string
	Description  string
	Duration     float64
	Views        int64
	IsPublished  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt

	Owner UserModel `gorm:"foreignKey:OwnerID"`
}

func (VideoModel) TableName() string {
	return "videos"
}
