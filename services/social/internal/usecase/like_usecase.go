package usecase

import (
	"context"
	"fmt"
	"strconv"

	"clipstream/pkg/apperr"
	"clipstream/pkg/logger"
	"clipstream/pkg/query"
	"clipstream/pkg/queue"
	"clipstream/services/social/internal/entity"
	"clipstream/services/social/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

type LikeUseCase interface {
	ToggleLike(userID string, kind entity.TargetKind, targetID string) (bool, int64, error)
	GetLikeCount(kind entity.TargetKind, targetID string) (int64, error)
	GetLikedVideos(userID string, p query.Params) ([]*entity.LikedVideo, error)
}

type likeUseCase struct {
	likeRepo    persistent.LikeRepository
	commentRepo persistent.CommentRepository
	tweetRepo   persistent.TweetRepository
	contentRepo persistent.ContentRepository
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewLikeUseCase(
	likeRepo persistent.LikeRepository,
	commentRepo persistent.CommentRepository,
	tweetRepo persistent.TweetRepository,
	contentRepo persistent.ContentRepository,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) LikeUseCase {
	return &likeUseCase{
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
		contentRepo: contentRepo,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

// ToggleLike flips the like and returns the state together with the
// count as it stands after the write, so two rapid toggles read back
// 1 then 0.
func (uc *likeUseCase) ToggleLike(userID string, kind entity.TargetKind, targetID string) (bool, int64, error) {
	if !kind.Valid() {
		return false, 0, apperr.InvalidArgument("Unknown like target")
	}
	if !validID(targetID) {
		return false, 0, apperr.InvalidArgument("Invalid target id")
	}

	ownerID, err := uc.targetOwner(kind, targetID)
	if err != nil {
		return false, 0, err
	}

	liked, err := uc.likeRepo.Toggle(userID, kind, targetID)
	if err != nil {
		return false, 0, apperr.Internal("Failed to toggle like", err)
	}

	// Re-prime the cached count from the table rather than bumping the
	// key: a blind Incr on a cold key would mint a count of 1 no matter
	// how many rows already exist.
	count, err := uc.likeRepo.Count(kind, targetID)
	if err != nil {
		return liked, 0, apperr.Internal("Failed to count likes", err)
	}
	if uc.redisClient != nil {
		uc.redisClient.Set(context.Background(), likeCountKey(kind, targetID), count, 0)
	}

	if liked && ownerID != "" && ownerID != userID && uc.queueClient != nil {
		go uc.publishLikeEvent(userID, ownerID, kind, targetID)
	}

	return liked, count, nil
}

func (uc *likeUseCase) GetLikeCount(kind entity.TargetKind, targetID string) (int64, error) {
	if !kind.Valid() {
		return 0, apperr.InvalidArgument("Unknown like target")
	}
	if !validID(targetID) {
		return 0, apperr.InvalidArgument("Invalid target id")
	}

	ctx := context.Background()
	redisKey := likeCountKey(kind, targetID)

	if uc.redisClient != nil {
		if countStr, err := uc.redisClient.Get(ctx, redisKey).Result(); err == nil {
			if count, err := strconv.ParseInt(countStr, 10, 64); err == nil && count >= 0 {
				return count, nil
			}
		}
	}

	count, err := uc.likeRepo.Count(kind, targetID)
	if err != nil {
		return 0, apperr.Internal("Failed to count likes", err)
	}

	if uc.redisClient != nil {
		uc.redisClient.Set(ctx, redisKey, count, 0)
	}
	return count, nil
}

func (uc *likeUseCase) GetLikedVideos(userID string, p query.Params) ([]*entity.LikedVideo, error) {
	videos, err := uc.likeRepo.GetLikedVideos(userID, p)
	if err != nil {
		return nil, apperr.Internal("Failed to load liked videos", err)
	}
	return videos, nil
}

// targetOwner verifies the target exists and reports who owns it for
// notification purposes.
func (uc *likeUseCase) targetOwner(kind entity.TargetKind, targetID string) (string, error) {
	switch kind {
	case entity.TargetVideo:
		owner, err := uc.contentRepo.VideoOwner(targetID)
		if err != nil {
			return "", apperr.Internal("Failed to look up video", err)
		}
		if owner == "" {
			return "", apperr.NotFound("Video not found")
		}
		return owner, nil
	case entity.TargetComment:
		comment, err := uc.commentRepo.GetByID(targetID)
		if err != nil {
			return "", notFoundOr(err, "Comment not found")
		}
		return comment.AuthorID, nil
	case entity.TargetTweet:
		tweet, err := uc.tweetRepo.GetByID(targetID)
		if err != nil {
			return "", notFoundOr(err, "Tweet not found")
		}
		return tweet.OwnerID, nil
	}
	return "", apperr.InvalidArgument("Unknown like target")
}

func (uc *likeUseCase) publishLikeEvent(likerID, ownerID string, kind entity.TargetKind, targetID string) {
	task := map[string]interface{}{
		"type":        queue.EventLike,
		"user_id":     ownerID,
		"liker_id":    likerID,
		"target_kind": string(kind),
		"target_id":   targetID,
		"priority":    3,
	}
	if err := uc.queueClient.PublishNotificationTask(task); err != nil {
		uc.logger.Error("Failed to publish like event for %s %s: %v", kind, targetID, err)
	}
}

func likeCountKey(kind entity.TargetKind, targetID string) string {
	return fmt.Sprintf("likes:%s:%s", kind, targetID)
}
