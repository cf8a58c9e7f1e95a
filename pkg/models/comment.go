package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	AuthorID  string    `gorm:"type:uuid;not null;index" json:"author_id"`
	VideoID   string    `gorm:"type:uuid;not null;index" json:"video_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Author User  `gorm:"foreignKey:AuthorID" json:"-"`
	Video  Video `gorm:"foreignKey:VideoID" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
