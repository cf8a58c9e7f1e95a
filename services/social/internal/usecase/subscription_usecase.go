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

type SubscriptionUseCase interface {
	ToggleSubscription(subscriberID, channelID string) (bool, int64, error)
	GetStatus(subscriberID, channelID string) (bool, error)
	GetSubscriberCount(channelID string) (int64, error)
	GetSubscribers(channelID string, p query.Params) ([]*entity.Subscriber, error)
	GetSubscriptions(subscriberID string, p query.Params) ([]*entity.Channel, error)
}

type subscriptionUseCase struct {
	subscriptionRepo persistent.SubscriptionRepository
	contentRepo      persistent.ContentRepository
	redisClient      *redis.Client
	queueClient      *queue.Client
	logger           *logger.Logger
}

func NewSubscriptionUseCase(
	subscriptionRepo persistent.SubscriptionRepository,
	contentRepo persistent.ContentRepository,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) SubscriptionUseCase {
	return &subscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		contentRepo:      contentRepo,
		redisClient:      redisClient,
		queueClient:      queueClient,
		logger:           logger,
	}
}

func (uc *subscriptionUseCase) ToggleSubscription(subscriberID, channelID string) (bool, int64, error) {
	if subscriberID == channelID {
		return false, 0, apperr.InvalidArgument("You cannot subscribe to yourself")
	}
	if !validID(channelID) {
		return false, 0, apperr.InvalidArgument("Invalid channel id")
	}

	exists, err := uc.contentRepo.UserExists(channelID)
	if err != nil {
		return false, 0, apperr.Internal("Failed to look up channel", err)
	}
	if !exists {
		return false, 0, apperr.NotFound("Channel not found")
	}

	subscribed, err := uc.subscriptionRepo.Toggle(subscriberID, channelID)
	if err != nil {
		return false, 0, apperr.Internal("Failed to toggle subscription", err)
	}

	// Same re-prime scheme as like counts: a bare Incr on a cold key
	// would shadow the rows already in the table.
	count, err := uc.subscriptionRepo.CountSubscribers(channelID)
	if err != nil {
		return subscribed, 0, apperr.Internal("Failed to count subscribers", err)
	}
	if uc.redisClient != nil {
		uc.redisClient.Set(context.Background(), subscriberCountKey(channelID), count, 0)
	}

	if subscribed && uc.queueClient != nil {
		go uc.publishSubscriptionEvent(subscriberID, channelID)
	}

	return subscribed, count, nil
}

func (uc *subscriptionUseCase) GetStatus(subscriberID, channelID string) (bool, error) {
	if !validID(channelID) {
		return false, apperr.InvalidArgument("Invalid channel id")
	}

	subscribed, err := uc.subscriptionRepo.IsSubscribed(subscriberID, channelID)
	if err != nil {
		return false, apperr.Internal("Failed to check subscription", err)
	}
	return subscribed, nil
}

func (uc *subscriptionUseCase) GetSubscriberCount(channelID string) (int64, error) {
	if !validID(channelID) {
		return 0, apperr.InvalidArgument("Invalid channel id")
	}

	ctx := context.Background()
	redisKey := subscriberCountKey(channelID)

	if uc.redisClient != nil {
		if countStr, err := uc.redisClient.Get(ctx, redisKey).Result(); err == nil {
			if count, err := strconv.ParseInt(countStr, 10, 64); err == nil && count >= 0 {
				return count, nil
			}
		}
	}

	count, err := uc.subscriptionRepo.CountSubscribers(channelID)
	if err != nil {
		return 0, apperr.Internal("Failed to count subscribers", err)
	}

	if uc.redisClient != nil {
		uc.redisClient.Set(ctx, redisKey, count, 0)
	}
	return count, nil
}

func (uc *subscriptionUseCase) GetSubscribers(channelID string, p query.Params) ([]*entity.Subscriber, error) {
	if !validID(channelID) {
		return nil, apperr.InvalidArgument("Invalid channel id")
	}

	exists, err := uc.contentRepo.UserExists(channelID)
	if err != nil {
		return nil, apperr.Internal("Failed to look up channel", err)
	}
	if !exists {
		return nil, apperr.NotFound("Channel not found")
	}

	subscribers, err := uc.subscriptionRepo.GetSubscribers(channelID, p)
	if err != nil {
		return nil, apperr.Internal("Failed to load subscribers", err)
	}
	return subscribers, nil
}

func (uc *subscriptionUseCase) GetSubscriptions(subscriberID string, p query.Params) ([]*entity.Channel, error) {
	channels, err := uc.subscriptionRepo.GetSubscribedChannels(subscriberID, p)
	if err != nil {
		return nil, apperr.Internal("Failed to load subscriptions", err)
	}
	return channels, nil
}

func (uc *subscriptionUseCase) publishSubscriptionEvent(subscriberID, channelID string) {
	task := map[string]interface{}{
		"type":          queue.EventSubscription,
		"user_id":       channelID,
		"subscriber_id": subscriberID,
		"priority":      3,
	}
	if err := uc.queueClient.PublishNotificationTask(task); err != nil {
		uc.logger.Error("Failed to publish subscription event for channel %s: %v", channelID, err)
	}
}

func subscriberCountKey(channelID string) string {
	return fmt.Sprintf("subscribers:%s", channelID)
}
