package http

import (
	"clipstream/pkg/apperr"
	"clipstream/pkg/query"
	"clipstream/pkg/response"
	"clipstream/services/social/internal/entity"
	"clipstream/services/social/internal/usecase"

	"github.com/gin-gonic/gin"
)

type SocialHandler struct {
	likeUseCase         usecase.LikeUseCase
	subscriptionUseCase usecase.SubscriptionUseCase
	commentUseCase      usecase.CommentUseCase
	tweetUseCase        usecase.TweetUseCase
}

func NewSocialHandler(
	likeUseCase usecase.LikeUseCase,
	subscriptionUseCase usecase.SubscriptionUseCase,
	commentUseCase usecase.CommentUseCase,
	tweetUseCase usecase.TweetUseCase,
) *SocialHandler {
	return &SocialHandler{
		likeUseCase:         likeUseCase,
		subscriptionUseCase: subscriptionUseCase,
		commentUseCase:      commentUseCase,
		tweetUseCase:        tweetUseCase,
	}
}

type ContentRequest struct {
	Content string `json:"content"`
}

func pageParams(c *gin.Context) query.Params {
	return query.Parse(c.Query("page"), c.Query("limit"), "", "", "")
}

// ToggleLike godoc
// @Summary      Toggle a like
// @Description  Likes the target if not yet liked, removes the like otherwise. Returns the resulting state and count.
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "Target kind" Enums(video, comment, tweet)
// @Param        id path string true "Target ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /likes/{kind}/{id} [post]
func (h *SocialHandler) ToggleLike(c *gin.Context) {
	userID := c.GetString("user_id")
	kind := entity.TargetKind(c.Param("kind"))

	liked, count, err := h.likeUseCase.ToggleLike(userID, kind, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"liked": liked, "count": count}, "Like toggled successfully")
}

func (h *SocialHandler) GetLikeCount(c *gin.Context) {
	kind := entity.TargetKind(c.Param("kind"))

	count, err := h.likeUseCase.GetLikeCount(kind, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"count": count}, "Like count fetched successfully")
}

func (h *SocialHandler) GetLikedVideos(c *gin.Context) {
	userID := c.GetString("user_id")
	p := pageParams(c)

	videos, err := h.likeUseCase.GetLikedVideos(userID, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"videos": videos, "page": p.Page, "limit": p.Limit}, "Liked videos fetched successfully")
}

// ToggleSubscription godoc
// @Summary      Toggle a channel subscription
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        channelId path string true "Channel (user) ID"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /subscriptions/{channelId} [post]
func (h *SocialHandler) ToggleSubscription(c *gin.Context) {
	userID := c.GetString("user_id")

	subscribed, count, err := h.subscriptionUseCase.ToggleSubscription(userID, c.Param("channelId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"subscribed": subscribed, "subscriber_count": count}, "Subscription toggled successfully")
}

func (h *SocialHandler) GetSubscriptionStatus(c *gin.Context) {
	userID := c.GetString("user_id")

	subscribed, err := h.subscriptionUseCase.GetStatus(userID, c.Param("channelId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"subscribed": subscribed}, "Subscription status fetched successfully")
}

func (h *SocialHandler) GetSubscriberCount(c *gin.Context) {
	count, err := h.subscriptionUseCase.GetSubscriberCount(c.Param("channelId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"count": count}, "Subscriber count fetched successfully")
}

// GetSubscribers godoc
// @Summary      List a channel's subscribers
// @Tags         subscriptions
// @Produce      json
// @Param        channelId path string true "Channel (user) ID"
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /channels/{channelId}/subscribers [get]
func (h *SocialHandler) GetSubscribers(c *gin.Context) {
	p := pageParams(c)

	subscribers, err := h.subscriptionUseCase.GetSubscribers(c.Param("channelId"), p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"subscribers": subscribers, "page": p.Page, "limit": p.Limit}, "Subscribers fetched successfully")
}

func (h *SocialHandler) GetSubscriptions(c *gin.Context) {
	userID := c.GetString("user_id")
	p := pageParams(c)

	channels, err := h.subscriptionUseCase.GetSubscriptions(userID, p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"channels": channels, "page": p.Page, "limit": p.Limit}, "Subscriptions fetched successfully")
}

// ListComments godoc
// @Summary      List comments for a video
// @Tags         comments
// @Produce      json
// @Param        videoId path string true "Video ID"
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /videos/{videoId}/comments [get]
func (h *SocialHandler) ListComments(c *gin.Context) {
	p := pageParams(c)

	comments, total, err := h.commentUseCase.ListComments(c.Param("videoId"), p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"comments": comments,
		"total":    total,
		"page":     p.Page,
		"limit":    p.Limit,
	}, "Comments fetched successfully")
}

func (h *SocialHandler) AddComment(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidArgument("Invalid request body"))
		return
	}

	comment, err := h.commentUseCase.AddComment(c.Param("videoId"), userID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, comment, "Comment added successfully")
}

func (h *SocialHandler) UpdateComment(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidArgument("Invalid request body"))
		return
	}

	comment, err := h.commentUseCase.UpdateComment(c.Param("id"), userID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, comment, "Comment updated successfully")
}

func (h *SocialHandler) DeleteComment(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.commentUseCase.DeleteComment(c.Param("id"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "Comment deleted successfully")
}

func (h *SocialHandler) CreateTweet(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidArgument("Invalid request body"))
		return
	}

	tweet, err := h.tweetUseCase.CreateTweet(userID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, tweet, "Tweet created successfully")
}

func (h *SocialHandler) GetUserTweets(c *gin.Context) {
	p := pageParams(c)

	tweets, total, err := h.tweetUseCase.GetUserTweets(c.Param("userId"), p)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"tweets": tweets,
		"total":  total,
		"page":   p.Page,
		"limit":  p.Limit,
	}, "Tweets fetched successfully")
}

func (h *SocialHandler) UpdateTweet(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.InvalidArgument("Invalid request body"))
		return
	}

	tweet, err := h.tweetUseCase.UpdateTweet(c.Param("id"), userID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, tweet, "Tweet updated successfully")
}

func (h *SocialHandler) DeleteTweet(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.tweetUseCase.DeleteTweet(c.Param("id"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, nil, "Tweet deleted successfully")
}
