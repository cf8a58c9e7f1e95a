package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WatchHistoryModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_watch_pair;index"`
	VideoID   string `gorm:"type:uuid;not null;uniqueIndex:idx_watch_pair"`
	CreatedAt time.Time
}

func (WatchHistoryModel) TableName() string {
	return "watch_history_entries"
}

func (w *WatchHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

type SubscriptionModel struct {
	ID           string `gorm:"type:uuid;primary_key"`
	SubscriberID string `gorm:"type:uuid;not null;index"`
	ChannelID    string `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
