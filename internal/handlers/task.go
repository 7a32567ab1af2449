package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-tracker-api/internal/dto"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns one page of tasks matching the query filter
func (h *TaskHandler) ListTasks(c *gin.Context) {
	filter, err := taskFilterFromQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.Search(c.Request.Context(), filter, params)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

// taskFilterFromQuery reads the search criteria. Malformed ids or timestamps
// are rejected; unknown status and priority values are passed through.
func taskFilterFromQuery(c *gin.Context) (repository.TaskSearchFilter, error) {
	query := c.Request.URL.Query()
	filter := repository.TaskSearchFilter{
		Name:        query.Get("name"),
		Description: query.Get("description"),
		Status:      query.Get("status"),
		Priority:    query.Get("priority"),
	}

	var err error
	if filter.ID, err = queryUUID(query, "id"); err != nil {
		return filter, err
	}
	if filter.CreatorID, err = queryUUID(query, "creator_id"); err != nil {
		return filter, err
	}
	if filter.ExecutorID, err = queryUUID(query, "executor_id"); err != nil {
		return filter, err
	}

	timestamps := map[string]**time.Time{
		"created_at":        &filter.CreatedAt,
		"created_at_after":  &filter.CreatedAtAfter,
		"created_at_before": &filter.CreatedAtBefore,
		"expires_on":        &filter.ExpiresOn,
		"expires_on_after":  &filter.ExpiresOnAfter,
		"expires_on_before": &filter.ExpiresOnBefore,
		"updated_at":        &filter.UpdatedAt,
		"updated_at_after":  &filter.UpdatedAtAfter,
		"updated_at_before": &filter.UpdatedAtBefore,
	}
	for name, target := range timestamps {
		if *target, err = queryTime(query, name); err != nil {
			return filter, err
		}
	}

	return filter, nil
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task owned by the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), userID, services.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		ExecutorID:  req.ExecutorID,
		ExpiresOn:   *req.ExpiresOn,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. Executors may only change the status.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), userID, services.UpdateTaskInput{
		ID:          *req.ID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		ExecutorID:  req.ExecutorID,
		ExpiresOn:   req.ExpiresOn,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task and its comments
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.DeleteByIDRequest
	if !bindJSON(c, &req) {
		return
	}

	deletedID, err := h.taskService.Delete(c.Request.Context(), userID, *req.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteTaskResponse{
		DeletedTaskID: deletedID,
		Timestamp:     now(),
	})
}
