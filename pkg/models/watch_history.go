package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WatchHistoryEntry records that a user watched a video. Set semantics:
// the (user, video) pair is unique, re-watching does not add a row.
type WatchHistoryEntry struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_watch_pair;index" json:"user_id"`
	VideoID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_watch_pair" json:"video_id"`
	CreatedAt time.Time `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Video Video `gorm:"foreignKey:VideoID" json:"-"`
}

func (w *WatchHistoryEntry) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}
