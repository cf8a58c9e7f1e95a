package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeTargetKind tags which kind of entity a like points at. A like row
// references exactly one target; the (user, kind, target) triple is unique.
type LikeTargetKind string

const (
	LikeTargetVideo   LikeTargetKind = "video"
	LikeTargetTweet   LikeTargetKind = "tweet"
	LikeTargetComment LikeTargetKind = "comment"
)

// Like rows are toggled: created on like, hard-deleted on unlike. No soft
// delete here, the unique index is the toggle engine's atomicity anchor.
type Like struct {
	ID         string         `gorm:"type:uuid;primary_key" json:"id"`
	UserID     string         `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_target;index" json:"user_id"`
	TargetKind LikeTargetKind `gorm:"type:varchar(10);not null;uniqueIndex:idx_likes_user_target" json:"target_kind"`
	TargetID   string         `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_target;index" json:"target_id"`
	CreatedAt  time.Time      `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
