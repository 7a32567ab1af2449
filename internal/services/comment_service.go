package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yukikurage/task-tracker-api/internal/access"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

// CommentService handles task comment business logic. Only the task creator
// and executor may read or write comments.
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	logger      *zap.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// CommentWithAuthor pairs a comment with its author. Author is nil when the
// account has been deleted.
type CommentWithAuthor struct {
	Comment models.Comment
	Author  *models.User
}

func (s *CommentService) participantTask(ctx context.Context, subjectID, taskID uuid.UUID) (*models.Task, error) {
	task, err := findTask(ctx, s.taskRepo, taskID)
	if err != nil {
		return nil, err
	}
	if err := access.CheckTaskParticipant(subjectID, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListByTask returns a page of the task's comments, newest first
func (s *CommentService) ListByTask(ctx context.Context, subjectID, taskID uuid.UUID, page utils.PaginationParams) ([]CommentWithAuthor, int64, error) {
	if _, err := s.participantTask(ctx, subjectID, taskID); err != nil {
		return nil, 0, err
	}

	comments, total, err := s.commentRepo.ListByTask(ctx, taskID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}

	authors, err := s.authors(ctx, comments)
	if err != nil {
		return nil, 0, err
	}

	result := make([]CommentWithAuthor, len(comments))
	for i, c := range comments {
		result[i] = CommentWithAuthor{Comment: c, Author: authors[c.UserID]}
	}
	return result, total, nil
}

func (s *CommentService) authors(ctx context.Context, comments []models.Comment) (map[uuid.UUID]*models.User, error) {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			ids = append(ids, c.UserID)
		}
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment authors: %w", err)
	}

	byID := make(map[uuid.UUID]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	return byID, nil
}

// Create adds a comment by subjectID to the task
func (s *CommentService) Create(ctx context.Context, subjectID, taskID uuid.UUID, content string) (*CommentWithAuthor, error) {
	if _, err := s.participantTask(ctx, subjectID, taskID); err != nil {
		return nil, err
	}

	author, err := s.userRepo.FindByID(ctx, subjectID)
	if err != nil {
		return nil, lookupError(err, userNotFound(subjectID), "find user")
	}

	comment := &models.Comment{
		TaskID:  taskID,
		UserID:  subjectID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info("Comment created", zap.String("comment_id", comment.ID.String()), zap.String("task_id", taskID.String()))
	return &CommentWithAuthor{Comment: *comment, Author: author}, nil
}

// Delete removes a comment of the task. Only its author may delete it.
func (s *CommentService) Delete(ctx context.Context, subjectID, taskID, commentID uuid.UUID) (uuid.UUID, error) {
	if _, err := s.participantTask(ctx, subjectID, taskID); err != nil {
		return uuid.Nil, err
	}

	notFound := apierrors.NotFound("Comment", "id", commentID)
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return uuid.Nil, lookupError(err, notFound, "find comment")
	}
	if comment.TaskID != taskID {
		return uuid.Nil, notFound
	}
	if err := access.CheckCommentAuthor(subjectID, comment); err != nil {
		return uuid.Nil, err
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return uuid.Nil, lookupError(err, notFound, "delete comment")
	}

	s.logger.Info("Comment deleted", zap.String("comment_id", commentID.String()), zap.String("task_id", taskID.String()))
	return commentID, nil
}
