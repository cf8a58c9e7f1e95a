package persistent

import (
	"clipstream/pkg/query"
	"clipstream/services/social/internal/entity"
	"clipstream/services/social/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository interface {
	Toggle(subscriberID, channelID string) (bool, error)
	IsSubscribed(subscriberID, channelID string) (bool, error)
	CountSubscribers(channelID string) (int64, error)
	GetSubscribers(channelID string, p query.Params) ([]*entity.Subscriber, error)
	GetSubscribedChannels(subscriberID string, p query.Params) ([]*entity.Channel, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Toggle uses the same insert-first scheme as likes: the unique
// (subscriber, channel) pair decides whether this call subscribes or
// unsubscribes.
func (r *subscriptionRepository) Toggle(subscriberID, channelID string) (bool, error) {
	sub := &model.SubscriptionModel{
		ID:           uuid.New().String(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}

	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "subscriber_id"}, {Name: "channel_id"}},
		DoNothing: true,
	}).Create(sub)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	err := r.db.
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.SubscriptionModel{}).Error
	return false, err
}

func (r *subscriptionRepository) IsSubscribed(subscriberID, channelID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) CountSubscribers(channelID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.SubscriptionModel{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) GetSubscribers(channelID string, p query.Params) ([]*entity.Subscriber, error) {
	var subs []model.SubscriptionModel
	err := r.db.Preload("Subscriber", func(db *gorm.DB) *gorm.DB {
		return db.Select(AuthorColumns)
	}).
		Where("channel_id = ?", channelID).
		Order("created_at DESC, id DESC").
		Scopes(query.Paginate(p)).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}

	subscribers := make([]*entity.Subscriber, 0, len(subs))
	for _, sub := range subs {
		author := toAuthor(&sub.Subscriber)
		if author == nil {
			continue
		}
		subscribers = append(subscribers, &entity.Subscriber{
			Author:       *author,
			SubscribedAt: sub.CreatedAt,
		})
	}
	return subscribers, nil
}

func (r *subscriptionRepository) GetSubscribedChannels(subscriberID string, p query.Params) ([]*entity.Channel, error) {
	var subs []model.SubscriptionModel
	err := r.db.Preload("Channel", func(db *gorm.DB) *gorm.DB {
		return db.Select(AuthorColumns)
	}).
		Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC, id DESC").
		Scopes(query.Paginate(p)).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}

	channels := make([]*entity.Channel, 0, len(subs))
	for _, sub := range subs {
		author := toAuthor(&sub.Channel)
		if author == nil {
			continue
		}
		channels = append(channels, &entity.Channel{
			Author:        *author,
			CoverImageURL: sub.Channel.CoverImageURL,
			SubscribedAt:  sub.CreatedAt,
		})
	}
	return channels, nil
}
