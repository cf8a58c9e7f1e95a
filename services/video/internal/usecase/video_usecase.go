package usecase

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"clipstream/pkg/apperr"
	"clipstream/pkg/guard"
	"clipstream/pkg/logger"
	"clipstream/pkg/query"
	"clipstream/pkg/queue"
	"clipstream/pkg/s3"
	"clipstream/services/video/internal/entity"
	"clipstream/services/video/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type VideoUseCase interface {
	PublishVideo(ownerID, title, description string, duration float64, videoFile, thumbnail *multipart.FileHeader) (*entity.Video, error)
	ListVideos(p query.Params, channelID, viewerID string) ([]*entity.Video, int64, error)
	GetMyVideos(ownerID string, p query.Params) ([]*entity.Video, int64, error)
	GetVideo(id string) (*entity.Video, error)
	UpdateVideo(videoID, actorID string, title, description *string, thumbnail *multipart.FileHeader) (*entity.Video, error)
	DeleteVideo(videoID, actorID string) error
	TogglePublish(videoID, actorID string) (bool, error)
	RecordView(videoID, viewerID string) error
	GetDashboardStats(ownerID string) (*entity.DashboardStats, error)
}

type videoUseCase struct {
	videoRepo   persistent.VideoRepository
	assetStore  s3.Store
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewVideoUseCase(
	videoRepo persistent.VideoRepository,
	assetStore s3.Store,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) VideoUseCase {
	return &videoUseCase{
		videoRepo:   videoRepo,
		assetStore:  assetStore,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *videoUseCase) PublishVideo(ownerID, title, description string, duration float64, videoFile, thumbnail *multipart.FileHeader) (*entity.Video, error) {
	// Nothing is uploaded until the fields check out.
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return nil, apperr.InvalidArgument("Title and description are required")
	}
	if videoFile == nil {
		return nil, apperr.InvalidArgument("Video file is required")
	}
	if thumbnail == nil {
		return nil, apperr.InvalidArgument("Thumbnail file is required")
	}
	if duration < 0 {
		return nil, apperr.InvalidArgument("Duration must be non-negative")
	}

	videoURL, err := uc.uploadAsset(fmt.Sprintf("videos/%s", ownerID), videoFile)
	if err != nil {
		return nil, apperr.Internal("Failed to upload video", err)
	}

	thumbnailURL, err := uc.uploadAsset(fmt.Sprintf("thumbnails/%s", ownerID), thumbnail)
	if err != nil {
		// Orphaned video upload, reclaim it.
		if delErr := uc.assetStore.Delete(videoURL); delErr != nil {
			uc.logger.Warn("Failed to clean up video after thumbnail upload error: %v", delErr)
		}
		return nil, apperr.Internal("Failed to upload thumbnail", err)
	}

	video := &entity.Video{
		OwnerID:      ownerID,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Title:        title,
		Description:  description,
		Duration:     duration,
		IsPublished:  true,
	}

	if err := uc.videoRepo.Create(video); err != nil {
		return nil, apperr.Internal("Failed to create video", err)
	}

	if uc.queueClient != nil {
		go uc.publishNewVideoEvent(video)
	}

	return video, nil
}

func (uc *videoUseCase) ListVideos(p query.Params, channelID, viewerID string) ([]*entity.Video, int64, error) {
	if channelID != "" && !validID(channelID) {
		return nil, 0, apperr.InvalidArgument("Invalid channel id")
	}

	// Drafts stay visible to their owner only.
	publishedOnly := channelID == "" || channelID != viewerID
	return uc.videoRepo.List(p, channelID, publishedOnly)
}

func (uc *videoUseCase) GetMyVideos(ownerID string, p query.Params) ([]*entity.Video, int64, error) {
	return uc.videoRepo.List(p, ownerID, false)
}

func (uc *videoUseCase) GetVideo(id string) (*entity.Video, error) {
	if !validID(id) {
		return nil, apperr.InvalidArgument("Invalid video id")
	}

	video, err := uc.videoRepo.GetByID(id)
	if err != nil {
		return nil, uc.notFoundOr(err, "Video not found")
	}
	return video, nil
}

func (uc *videoUseCase) UpdateVideo(videoID, actorID string, title, description *string, thumbnail *multipart.FileHeader) (*entity.Video, error) {
	if !validID(videoID) {
		return nil, apperr.InvalidArgument("Invalid video id")
	}

	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		return nil, uc.notFoundOr(err, "Video not found")
	}
	if err := guard.RequireOwner(video.OwnerID, actorID); err != nil {
		return nil, err
	}

	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return nil, apperr.InvalidArgument("Title cannot be empty")
		}
		video.Title = *title
	}
	if description != nil {
		video.Description = *description
	}

	oldThumbnail := ""
	if thumbnail != nil {
		newURL, err := uc.uploadAsset(fmt.Sprintf("thumbnails/%s", video.OwnerID), thumbnail)
		if err != nil {
			return nil, apperr.Internal("Failed to upload thumbnail", err)
		}
		oldThumbnail = video.ThumbnailURL
		video.ThumbnailURL = newURL
	}

	if err := uc.videoRepo.Update(video); err != nil {
		return nil, apperr.Internal("Failed to update video", err)
	}

	// Old asset goes only after the row is committed.
	if oldThumbnail != "" {
		if err := uc.assetStore.Delete(oldThumbnail); err != nil {
			uc.logger.Warn("Failed to delete old thumbnail %s: %v", oldThumbnail, err)
		}
	}

	return video, nil
}

func (uc *videoUseCase) DeleteVideo(videoID, actorID string) error {
	if !validID(videoID) {
		return apperr.InvalidArgument("Invalid video id")
	}

	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		return uc.notFoundOr(err, "Video not found")
	}
	if err := guard.RequireOwner(video.OwnerID, actorID); err != nil {
		return err
	}

	if err := uc.videoRepo.Delete(videoID); err != nil {
		return apperr.Internal("Failed to delete video", err)
	}

	// Best effort: the row is gone either way.
	for _, url := range []string{video.VideoURL, video.ThumbnailURL} {
		if url == "" {
			continue
		}
		if err := uc.assetStore.Delete(url); err != nil {
			uc.logger.Warn("Failed to delete asset %s for video %s: %v", url, videoID, err)
		}
	}

	return nil
}

func (uc *videoUseCase) TogglePublish(videoID, actorID string) (bool, error) {
	if !validID(videoID) {
		return false, apperr.InvalidArgument("Invalid video id")
	}

	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		return false, uc.notFoundOr(err, "Video not found")
	}
	if err := guard.RequireOwner(video.OwnerID, actorID); err != nil {
		return false, err
	}

	next := !video.IsPublished
	if err := uc.videoRepo.SetPublished(videoID, next); err != nil {
		return false, apperr.Internal("Failed to update publish status", err)
	}
	return next, nil
}

// RecordView counts a view once per user per video. The dedup marker
// lives in redis; if redis is down the view is counted anyway rather
// than the watch being dropped.
func (uc *videoUseCase) RecordView(videoID, viewerID string) error {
	if !validID(videoID) {
		return apperr.InvalidArgument("Invalid video id")
	}

	if _, err := uc.videoRepo.GetByID(videoID); err != nil {
		return uc.notFoundOr(err, "Video not found")
	}

	if uc.redisClient != nil && viewerID != "" {
		key := fmt.Sprintf("video:viewed:%s:%s", videoID, viewerID)
		set, err := uc.redisClient.SetNX(context.Background(), key, 1, 0).Result()
		if err != nil {
			uc.logger.Warn("View dedup unavailable for video %s: %v", videoID, err)
		} else if !set {
			return nil
		}
	}

	if err := uc.videoRepo.IncrementViews(videoID); err != nil {
		return apperr.Internal("Failed to record view", err)
	}
	return nil
}

func (uc *videoUseCase) GetDashboardStats(ownerID string) (*entity.DashboardStats, error) {
	stats, err := uc.videoRepo.GetDashboardStats(ownerID)
	if err != nil {
		return nil, apperr.Internal("Failed to load channel stats", err)
	}
	return stats, nil
}

func (uc *videoUseCase) publishNewVideoEvent(video *entity.Video) {
	task := map[string]interface{}{
		"type":     queue.EventNewVideo,
		"video_id": video.ID,
		"owner_id": video.OwnerID,
		"title":    video.Title,
		"priority": 5,
	}
	if err := uc.queueClient.PublishNotificationTask(task); err != nil {
		uc.logger.Error("Failed to publish new video event for %s: %v", video.ID, err)
	}
}

func (uc *videoUseCase) uploadAsset(prefix string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = s3.DefaultContentType(file.Filename)
	}
	return uc.assetStore.Upload(key, src, contentType)
}

// validID filters malformed ids before they hit the uuid columns,
// where the driver would reject them as an internal error.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func (uc *videoUseCase) notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(message)
	}
	return apperr.Internal(message, err)
}
