package usecase

import (
	"errors"
	"testing"

	"clipstream/pkg/apperr"
	"clipstream/pkg/logger"
	"clipstream/pkg/query"
	"clipstream/services/social/internal/entity"
	"clipstream/services/social/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Target ids are fixed UUIDs because the usecases reject anything that
// does not parse as one.
const (
	videoID          = "7b0481a4-2e5f-4e57-9d2a-3f8a416c2d10"
	missingVideoID   = "0d9c2f9e-6a1b-47a3-b0a5-2f1de0c4a981"
	channelID        = "c1a7e2d4-5b3f-4c8a-9e6d-7f2b1a0c3e58"
	missingChannelID = "4e8f1b2c-9d0a-4f3e-8b7c-6a5d4e3f2a19"
	commentID        = "9f6e5d4c-3b2a-4190-8e7f-6d5c4b3a2918"
	tweetID          = "2a3b4c5d-6e7f-4081-92a3-b4c5d6e7f809"
	missingTweetID   = "5d4c3b2a-1908-47f6-a5b4-c3d2e1f00897"
	missingUserID    = "8c7b6a59-4d3e-4f21-b0a9-8e7d6c5b4a30"
)

// MockLikeRepository is a mock implementation of LikeRepository
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Toggle(userID string, kind entity.TargetKind, targetID string) (bool, error) {
	args := m.Called(userID, kind, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) IsLiked(userID string, kind entity.TargetKind, targetID string) (bool, error) {
	args := m.Called(userID, kind, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) Count(kind entity.TargetKind, targetID string) (int64, error) {
	args := m.Called(kind, targetID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) GetLikedVideos(userID string, p query.Params) ([]*entity.LikedVideo, error) {
	args := m.Called(userID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.LikedVideo), args.Error(1)
}

var _ persistent.LikeRepository = (*MockLikeRepository)(nil)

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Toggle(subscriberID, channelID string) (bool, error) {
	args := m.Called(subscriberID, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) IsSubscribed(subscriberID, channelID string) (bool, error) {
	args := m.Called(subscriberID, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) CountSubscribers(channelID string) (int64, error) {
	args := m.Called(channelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubscriptionRepository) GetSubscribers(channelID string, p query.Params) ([]*entity.Subscriber, error) {
	args := m.Called(channelID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Subscriber), args.Error(1)
}

func (m *MockSubscriptionRepository) GetSubscribedChannels(subscriberID string, p query.Params) ([]*entity.Channel, error) {
	args := m.Called(subscriberID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Channel), args.Error(1)
}

var _ persistent.SubscriptionRepository = (*MockSubscriptionRepository)(nil)

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *entity.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(id string) (*entity.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByVideo(videoID string, p query.Params) ([]*entity.Comment, int64, error) {
	args := m.Called(videoID, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) UpdateContent(id, content string) error {
	args := m.Called(id, content)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.CommentRepository = (*MockCommentRepository)(nil)

// MockTweetRepository is a mock implementation of TweetRepository
type MockTweetRepository struct {
	mock.Mock
}

func (m *MockTweetRepository) Create(tweet *entity.Tweet) error {
	args := m.Called(tweet)
	return args.Error(0)
}

func (m *MockTweetRepository) GetByID(id string) (*entity.Tweet, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tweet), args.Error(1)
}

func (m *MockTweetRepository) ListByOwner(ownerID string, p query.Params) ([]*entity.Tweet, int64, error) {
	args := m.Called(ownerID, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Tweet), args.Get(1).(int64), args.Error(2)
}

func (m *MockTweetRepository) UpdateContent(id, content string) error {
	args := m.Called(id, content)
	return args.Error(0)
}

func (m *MockTweetRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.TweetRepository = (*MockTweetRepository)(nil)

// MockContentRepository is a mock implementation of ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) VideoExists(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentRepository) VideoOwner(id string) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

func (m *MockContentRepository) UserExists(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

var _ persistent.ContentRepository = (*MockContentRepository)(nil)

func newLikeUseCase(likeRepo *MockLikeRepository, commentRepo *MockCommentRepository, tweetRepo *MockTweetRepository, contentRepo *MockContentRepository) LikeUseCase {
	return NewLikeUseCase(likeRepo, commentRepo, tweetRepo, contentRepo, nil, nil, logger.New())
}

func TestToggleLike_DoubleToggleRoundTrips(t *testing.T) {
	likeRepo := new(MockLikeRepository)
	contentRepo := new(MockContentRepository)
	uc := newLikeUseCase(likeRepo, new(MockCommentRepository), new(MockTweetRepository), contentRepo)

	contentRepo.On("VideoOwner", videoID).Return("owner-1", nil)

	likeRepo.On("Toggle", "user-1", entity.TargetVideo, videoID).Return(true, nil).Once()
	likeRepo.On("Count", entity.TargetVideo, videoID).Return(int64(1), nil).Once()

	liked, count, err := uc.ToggleLike("user-1", entity.TargetVideo, videoID)
	assert.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	likeRepo.On("Toggle", "user-1", entity.TargetVideo, videoID).Return(false, nil).Once()
	likeRepo.On("Count", entity.TargetVideo, videoID).Return(int64(0), nil).Once()

	liked, count, err = uc.ToggleLike("user-1", entity.TargetVideo, videoID)
	assert.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)

	likeRepo.AssertExpectations(t)
}

func TestToggleLike_TargetMissing(t *testing.T) {
	likeRepo := new(MockLikeRepository)
	contentRepo := new(MockContentRepository)
	uc := newLikeUseCase(likeRepo, new(MockCommentRepository), new(MockTweetRepository), contentRepo)

	contentRepo.On("VideoOwner", missingVideoID).Return("", nil)

	_, _, err := uc.ToggleLike("user-1", entity.TargetVideo, missingVideoID)

	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	likeRepo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleLike_MalformedTargetID(t *testing.T) {
	likeRepo := new(MockLikeRepository)
	contentRepo := new(MockContentRepository)
	uc := newLikeUseCase(likeRepo, new(MockCommentRepository), new(MockTweetRepository), contentRepo)

	_, _, err := uc.ToggleLike("user-1", entity.TargetVideo, "not-a-uuid")

	assert.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	contentRepo.AssertNotCalled(t, "VideoOwner", mock.Anything)
	likeRepo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleLike_CountReprimedFromStore(t *testing.T) {
	likeRepo := new(MockLikeRepository)
	contentRepo := new(MockContentRepository)
	uc := newLikeUseCase(likeRepo, new(MockCommentRepository), new(MockTweetRepository), contentRepo)

	// The table already holds likes from other users; the count after a
	// toggle must come from the store, not from one-off arithmetic.
	contentRepo.On("VideoOwner", videoID).Return("owner-1", nil)
	likeRepo.On("Toggle", "user-1", entity.TargetVideo, videoID).Return(true, nil)
	likeRepo.On("Count", entity.TargetVideo, videoID).Return(int64(12), nil).Once()

	_, count, err := uc.ToggleLike("user-1", entity.TargetVideo, videoID)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), count)
	likeRepo.AssertExpectations(t)
}

func TestToggleLike_CommentLookupFailure(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	uc := newLikeUseCase(new(MockLikeRepository), commentRepo, new(MockTweetRepository), new(MockContentRepository))

	commentRepo.On("GetByID", commentID).Return(nil, errors.New("connection refused"))

	_, _, err := uc.ToggleLike("user-1", entity.TargetComment, commentID)

	assert.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestToggleLike_CommentMissing(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	uc := newLikeUseCase(new(MockLikeRepository), commentRepo, new(MockTweetRepository), new(MockContentRepository))

	commentRepo.On("GetByID", commentID).Return(nil, gorm.ErrRecordNotFound)

	_, _, err := uc.ToggleLike("user-1", entity.TargetComment, commentID)

	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestToggleLike_UnknownKind(t *testing.T) {
	uc := newLikeUseCase(new(MockLikeRepository), new(MockCommentRepository), new(MockTweetRepository), new(MockContentRepository))

	_, _, err := uc.ToggleLike("user-1", entity.TargetKind("playlist"), "x")

	assert.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestToggleSubscription_Self(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	uc := NewSubscriptionUseCase(subRepo, new(MockContentRepository), nil, nil, logger.New())

	_, _, err := uc.ToggleSubscription("user-1", "user-1")

	assert.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	subRepo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything)
}

func TestToggleSubscription_ChannelMissing(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	contentRepo := new(MockContentRepository)
	uc := NewSubscriptionUseCase(subRepo, contentRepo, nil, nil, logger.New())

	contentRepo.On("UserExists", missingChannelID).Return(false, nil)

	_, _, err := uc.ToggleSubscription("user-1", missingChannelID)

	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestToggleSubscription_Success(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	contentRepo := new(MockContentRepository)
	uc := NewSubscriptionUseCase(subRepo, contentRepo, nil, nil, logger.New())

	contentRepo.On("UserExists", channelID).Return(true, nil)
	subRepo.On("Toggle", "user-1", channelID).Return(true, nil)
	subRepo.On("CountSubscribers", channelID).Return(int64(5), nil)

	subscribed, count, err := uc.ToggleSubscription("user-1", channelID)

	assert.NoError(t, err)
	assert.True(t, subscribed)
	assert.Equal(t, int64(5), count)
}

func TestToggleSubscription_MalformedChannelID(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	contentRepo := new(MockContentRepository)
	uc := NewSubscriptionUseCase(subRepo, contentRepo, nil, nil, logger.New())

	_, _, err := uc.ToggleSubscription("user-1", "not-a-uuid")

	assert.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	contentRepo.AssertNotCalled(t, "UserExists", mock.Anything)
	subRepo.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything)
}

func TestGetSubscribers_ChannelMissing(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	contentRepo := new(MockContentRepository)
	uc := NewSubscriptionUseCase(subRepo, contentRepo, nil, nil, logger.New())

	contentRepo.On("UserExists", missingChannelID).Return(false, nil)

	_, err := uc.GetSubscribers(missingChannelID, query.Params{Page: 1, Limit: 10})

	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	subRepo.AssertNotCalled(t, "GetSubscribers", mock.Anything, mock.Anything)
}

func TestGetSubscribers_ReturnsRows(t *testing.T) {
	subRepo := new(MockSubscriptionRepository)
	contentRepo := new(MockContentRepository)
	uc := NewSubscriptionUseCase(subRepo, contentRepo, nil, nil, logger.New())

	p := query.Params{Page: 1, Limit: 10}
	contentRepo.On("UserExists", channelID).Return(true, nil)
	subRepo.On("GetSubscribers", channelID, p).Return([]*entity.Subscriber{
		{Author: entity.Author{ID: "user-1", Username: "alice"}},
		{Author: entity.Author{ID: "user-2", Username: "bob"}},
	}, nil)

	subscribers, err := uc.GetSubscribers(channelID, p)

	assert.NoError(t, err)
	assert.Len(t, subscribers, 2)
	assert.Equal(t, "alice", subscribers[0].Username)
}

func TestAddComment_EmptyContent(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	uc := NewCommentUseCase(commentRepo, new(MockContentRepository), nil, logger.New())

	_, err := uc.AddComment(videoID, "user-1", "   ")

	assert.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	commentRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAddComment_MalformedVideoID(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	contentRepo := new(MockContentRepository)
	uc := NewCommentUseCase(commentRepo, contentRepo, nil, logger.New())

	_, err := uc.AddComment("not-a-uuid", "user-1", "nice video")

	assert.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	contentRepo.AssertNotCalled(t, "VideoExists", mock.Anything)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAddComment_VideoMissing(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	contentRepo := new(MockContentRepository)
	uc := NewCommentUseCase(commentRepo, contentRepo, nil, logger.New())

	contentRepo.On("VideoExists", missingVideoID).Return(false, nil)

	_, err := uc.AddComment(missingVideoID, "user-1", "nice video")

	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteComment_NotOwner(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	uc := NewCommentUseCase(commentRepo, new(MockContentRepository), nil, logger.New())

	commentRepo.On("GetByID", commentID).
		Return(&entity.Comment{ID: commentID, AuthorID: "author-1"}, nil)

	err := uc.DeleteComment(commentID, "someone-else")

	assert.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	commentRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestUpdateComment_Owner(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	uc := NewCommentUseCase(commentRepo, new(MockContentRepository), nil, logger.New())

	commentRepo.On("GetByID", commentID).
		Return(&entity.Comment{ID: commentID, AuthorID: "author-1", Content: "old"}, nil)
	commentRepo.On("UpdateContent", commentID, "new").Return(nil)

	comment, err := uc.UpdateComment(commentID, "author-1", "new")

	assert.NoError(t, err)
	assert.Equal(t, "new", comment.Content)
}

func TestCreateTweet_EmptyContent(t *testing.T) {
	tweetRepo := new(MockTweetRepository)
	uc := NewTweetUseCase(tweetRepo, new(MockContentRepository))

	_, err := uc.CreateTweet("user-1", "")

	assert.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	tweetRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestDeleteTweet_NotOwner(t *testing.T) {
	tweetRepo := new(MockTweetRepository)
	uc := NewTweetUseCase(tweetRepo, new(MockContentRepository))

	tweetRepo.On("GetByID", tweetID).
		Return(&entity.Tweet{ID: tweetID, OwnerID: "owner-1"}, nil)

	err := uc.DeleteTweet(tweetID, "someone-else")

	assert.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	tweetRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDeleteTweet_MalformedID(t *testing.T) {
	tweetRepo := new(MockTweetRepository)
	uc := NewTweetUseCase(tweetRepo, new(MockContentRepository))

	err := uc.DeleteTweet("not-a-uuid", "user-1")

	assert.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	tweetRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestDeleteTweet_Missing(t *testing.T) {
	tweetRepo := new(MockTweetRepository)
	uc := NewTweetUseCase(tweetRepo, new(MockContentRepository))

	tweetRepo.On("GetByID", missingTweetID).Return(nil, gorm.ErrRecordNotFound)

	err := uc.DeleteTweet(missingTweetID, "user-1")

	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGetUserTweets_UserMissing(t *testing.T) {
	contentRepo := new(MockContentRepository)
	uc := NewTweetUseCase(new(MockTweetRepository), contentRepo)

	contentRepo.On("UserExists", missingUserID).Return(false, nil)

	_, _, err := uc.GetUserTweets(missingUserID, query.Params{Page: 1, Limit: 10})

	assert.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
