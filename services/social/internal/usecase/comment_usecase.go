package usecase

import (
	"strings"

	"clipstream/pkg/apperr"
	"clipstream/pkg/guard"
	"clipstream/pkg/logger"
	"clipstream/pkg/query"
	"clipstream/pkg/queue"
	"clipstream/services/social/internal/entity"
	"clipstream/services/social/internal/repo/persistent"
)

type CommentUseCase interface {
	ListComments(videoID string, p query.Params) ([]*entity.Comment, int64, error)
	AddComment(videoID, authorID, content string) (*entity.Comment, error)
	UpdateComment(commentID, actorID, content string) (*entity.Comment, error)
	DeleteComment(commentID, actorID string) error
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	contentRepo persistent.ContentRepository
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	contentRepo persistent.ContentRepository,
	queueClient *queue.Client,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		contentRepo: contentRepo,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *commentUseCase) ListComments(videoID string, p query.Params) ([]*entity.Comment, int64, error) {
	if !validID(videoID) {
		return nil, 0, apperr.InvalidArgument("Invalid video id")
	}

	exists, err := uc.contentRepo.VideoExists(videoID)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to look up video", err)
	}
	if !exists {
		return nil, 0, apperr.NotFound("Video not found")
	}
	return uc.commentRepo.ListByVideo(videoID, p)
}

func (uc *commentUseCase) AddComment(videoID, authorID, content string) (*entity.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.InvalidArgument("Content is required")
	}
	if !validID(videoID) {
		return nil, apperr.InvalidArgument("Invalid video id")
	}

	exists, err := uc.contentRepo.VideoExists(videoID)
	if err != nil {
		return nil, apperr.Internal("Failed to look up video", err)
	}
	if !exists {
		return nil, apperr.NotFound("Video not found")
	}

	comment := &entity.Comment{
		VideoID:  videoID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := uc.commentRepo.Create(comment); err != nil {
		return nil, apperr.Internal("Failed to create comment", err)
	}

	if uc.queueClient != nil {
		if ownerID, err := uc.contentRepo.VideoOwner(videoID); err == nil && ownerID != "" && ownerID != authorID {
			go uc.publishCommentEvent(comment, ownerID)
		}
	}

	return comment, nil
}

func (uc *commentUseCase) UpdateComment(commentID, actorID, content string) (*entity.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.InvalidArgument("Content is required")
	}
	if !validID(commentID) {
		return nil, apperr.InvalidArgument("Invalid comment id")
	}

	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, notFoundOr(err, "Comment not found")
	}
	if err := guard.RequireOwner(comment.AuthorID, actorID); err != nil {
		return nil, err
	}

	if err := uc.commentRepo.UpdateContent(commentID, content); err != nil {
		return nil, apperr.Internal("Failed to update comment", err)
	}
	comment.Content = content
	return comment, nil
}

func (uc *commentUseCase) DeleteComment(commentID, actorID string) error {
	if !validID(commentID) {
		return apperr.InvalidArgument("Invalid comment id")
	}

	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		return notFoundOr(err, "Comment not found")
	}
	if err := guard.RequireOwner(comment.AuthorID, actorID); err != nil {
		return err
	}

	if err := uc.commentRepo.Delete(commentID); err != nil {
		return apperr.Internal("Failed to delete comment", err)
	}
	return nil
}

func (uc *commentUseCase) publishCommentEvent(comment *entity.Comment, ownerID string) {
	task := map[string]interface{}{
		"type":       queue.EventComment,
		"user_id":    ownerID,
		"author_id":  comment.AuthorID,
		"video_id":   comment.VideoID,
		"comment_id": comment.ID,
		"priority":   3,
	}
	if err := uc.queueClient.PublishNotificationTask(task); err != nil {
		uc.logger.Error("Failed to publish comment event for video %s: %v", comment.VideoID, err)
	}
}
