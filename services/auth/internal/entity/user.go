package entity

import "time"

type UserRole string

const (
	RoleViewer  UserRole = "viewer"
	RoleCreator UserRole = "creator"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID            string    `json:"id"`
	Fullname      string    `json:"fullname"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	Role          UserRole  `json:"role"`
	AvatarURL     string    `json:"avatar_url"`
	CoverImageURL string    `json:"cover_image_url"`
	RefreshToken  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Profile is the whitelisted subset of user fields embedded in any
// projection. Credentials never appear here.
type Profile struct {
	ID        string `json:"id"`
	Fullname  string `json:"fullname"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// ChannelProfile is the public channel page: profile fields plus the
// subscription counters and the caller's own subscription state.
type ChannelProfile struct {
	Profile
	CoverImageURL     string `json:"cover_image_url"`
	SubscriberCount   int64  `json:"subscriber_count"`
	SubscribedToCount int64  `json:"subscribed_to_count"`
	IsSubscribed      bool   `json:"is_subscribed"`
}

// WatchedVideo is a watch-history row: the video with its owner profile
// embedded, plus when the user watched it.
type WatchedVideo struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	Owner        Profile   `json:"owner"`
	WatchedAt    time.Time `json:"watched_at"`
}
