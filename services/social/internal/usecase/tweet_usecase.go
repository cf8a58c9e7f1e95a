package usecase

import (
	"strings"

	"clipstream/pkg/apperr"
	"clipstream/pkg/guard"
	"clipstream/pkg/query"
	"clipstream/services/social/internal/entity"
	"clipstream/services/social/internal/repo/persistent"
)

type TweetUseCase interface {
	CreateTweet(ownerID, content string) (*entity.Tweet, error)
	GetUserTweets(userID string, p query.Params) ([]*entity.Tweet, int64, error)
	UpdateTweet(tweetID, actorID, content string) (*entity.Tweet, error)
	DeleteTweet(tweetID, actorID string) error
}

type tweetUseCase struct {
	tweetRepo   persistent.TweetRepository
	contentRepo persistent.ContentRepository
}

func NewTweetUseCase(tweetRepo persistent.TweetRepository, contentRepo persistent.ContentRepository) TweetUseCase {
	return &tweetUseCase{
		tweetRepo:   tweetRepo,
		contentRepo: contentRepo,
	}
}

func (uc *tweetUseCase) CreateTweet(ownerID, content string) (*entity.Tweet, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.InvalidArgument("Content is required")
	}

	tweet := &entity.Tweet{
		OwnerID: ownerID,
		Content: content,
	}
	if err := uc.tweetRepo.Create(tweet); err != nil {
		return nil, apperr.Internal("Failed to create tweet", err)
	}
	return tweet, nil
}

func (uc *tweetUseCase) GetUserTweets(userID string, p query.Params) ([]*entity.Tweet, int64, error) {
	if !validID(userID) {
		return nil, 0, apperr.InvalidArgument("Invalid user id")
	}

	exists, err := uc.contentRepo.UserExists(userID)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to look up user", err)
	}
	if !exists {
		return nil, 0, apperr.NotFound("User not found")
	}
	return uc.tweetRepo.ListByOwner(userID, p)
}

func (uc *tweetUseCase) UpdateTweet(tweetID, actorID, content string) (*entity.Tweet, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.InvalidArgument("Content is required")
	}
	if !validID(tweetID) {
		return nil, apperr.InvalidArgument("Invalid tweet id")
	}

	tweet, err := uc.tweetRepo.GetByID(tweetID)
	if err != nil {
		return nil, notFoundOr(err, "Tweet not found")
	}
	if err := guard.RequireOwner(tweet.OwnerID, actorID); err != nil {
		return nil, err
	}

	if err := uc.tweetRepo.UpdateContent(tweetID, content); err != nil {
		return nil, apperr.Internal("Failed to update tweet", err)
	}
	tweet.Content = content
	return tweet, nil
}

func (uc *tweetUseCase) DeleteTweet(tweetID, actorID string) error {
	if !validID(tweetID) {
		return apperr.InvalidArgument("Invalid tweet id")
	}

	tweet, err := uc.tweetRepo.GetByID(tweetID)
	if err != nil {
		return notFoundOr(err, "Tweet not found")
	}
	if err := guard.RequireOwner(tweet.OwnerID, actorID); err != nil {
		return err
	}

	if err := uc.tweetRepo.Delete(tweetID); err != nil {
		return apperr.Internal("Failed to delete tweet", err)
	}
	return nil
}
