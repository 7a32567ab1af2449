package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-tracker-api/internal/dto"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

// CommentHandler serves the comments nested under a task.
type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// ListComments returns a page of a task's comments, newest first
func (h *CommentHandler) ListComments(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	params := utils.GetPaginationParams(c)

	comments, total, err := h.commentService.ListByTask(c.Request.Context(), userID, taskID, params)
	if err != nil {
		_ = c.Error(err)
		return
	}

	items := make([]dto.CommentDTO, len(comments))
	for i, cm := range comments {
		items[i] = dto.ToCommentDTO(cm.Comment, cm.Author)
	}
	c.JSON(http.StatusOK, dto.CommentListResponse{
		Comments:           items,
		PaginationResponse: utils.NewPaginationResponse(params, total),
	})
}

// CreateComment adds a comment to a task
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), userID, taskID, req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(comment.Comment, comment.Author))
}

// DeleteComment removes one of the current user's comments
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dto.DeleteByIDRequest
	if !bindJSON(c, &req) {
		return
	}

	deletedID, err := h.commentService.Delete(c.Request.Context(), userID, taskID, *req.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteCommentResponse{
		DeletedCommentID: deletedID,
		Timestamp:        now(),
	})
}
