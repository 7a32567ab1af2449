package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

// CreateCommentRequest is the body of POST /tasks/:id/comments
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

// CommentDTO represents a task comment in API responses. User is null when
// the author's account no longer exists.
type CommentDTO struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"task_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	User      *UserDTO  `json:"user"`
}

// CommentListResponse represents a paginated list of comments
type CommentListResponse struct {
	Comments []CommentDTO `json:"comments"`
	utils.PaginationResponse
}

// DeleteCommentResponse is returned by DELETE /tasks/:id/comments
type DeleteCommentResponse struct {
	DeletedCommentID uuid.UUID `json:"deleted_comment_id"`
	Timestamp        time.Time `json:"timestamp"`
}

// ToCommentDTO converts a comment and its optional author
func ToCommentDTO(comment models.Comment, author *models.User) CommentDTO {
	dto := CommentDTO{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if author != nil {
		user := ToUserDTO(*author)
		dto.User = &user
	}
	return dto
}
