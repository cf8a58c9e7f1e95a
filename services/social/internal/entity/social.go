package entity

import "time"

// TargetKind names what a like points at.
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

func (k TargetKind) Valid() bool {
	switch k {
	case TargetVideo, TargetComment, TargetTweet:
		return true
	}
	return false
}

// Author is the whitelisted user projection embedded in comments,
// tweets and liked videos.
type Author struct {
	ID        string `json:"id"`
	Fullname  string `json:"fullname"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *Author `json:"author,omitempty"`
}

type Tweet struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner *Author `json:"owner,omitempty"`
}

// LikedVideo is the liked-videos projection row: the video plus its
// embedded owner. Likes whose video has since been removed are dropped
// before this struct is built.
type LikedVideo struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	LikedAt      time.Time `json:"liked_at"`

	Owner *Author `json:"owner,omitempty"`
}

// Channel is a subscribed-to channel row with the channel user embedded.
type Channel struct {
	Author
	CoverImageURL string    `json:"cover_image_url"`
	SubscribedAt  time.Time `json:"subscribed_at"`
}

// Subscriber is one row of a channel's subscriber list.
type Subscriber struct {
	Author
	SubscribedAt time.Time `json:"subscribed_at"`
}
