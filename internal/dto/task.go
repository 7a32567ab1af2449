package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

// CreateTaskRequest is the body of POST /tasks. The creator is the caller.
type CreateTaskRequest struct {
	Name        string     `json:"name" binding:"required,notblank,taskname"`
	Description string     `json:"description" binding:"required,notblank"`
	Status      string     `json:"status" binding:"required"`
	Priority    string     `json:"priority" binding:"required"`
	ExecutorID  *uuid.UUID `json:"executor_id"`
	ExpiresOn   *time.Time `json:"expires_on" binding:"required"`
}

// UpdateTaskRequest is the body of PATCH /tasks. Omitted fields are kept.
type UpdateTaskRequest struct {
	ID          *uuid.UUID `json:"id" binding:"required"`
	Name        *string    `json:"name" binding:"omitempty,opt_taskname"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	ExecutorID  *uuid.UUID `json:"executor_id"`
	ExpiresOn   *time.Time `json:"expires_on"`
}

// DeleteByIDRequest is the body of the DELETE endpoints that take an id
type DeleteByIDRequest struct {
	ID *uuid.UUID `json:"id" binding:"required"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	CreatorID   uuid.UUID           `json:"creator_id"`
	ExecutorID  *uuid.UUID          `json:"executor_id"`
	ExpiresOn   time.Time           `json:"expires_on"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   *time.Time          `json:"updated_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks []TaskDTO `json:"tasks"`
	utils.PaginationResponse
}

// DeleteTaskResponse is returned by DELETE /tasks
type DeleteTaskResponse struct {
	DeletedTaskID uuid.UUID `json:"deleted_task_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		CreatorID:   task.CreatorID,
		ExecutorID:  task.ExecutorID,
		ExpiresOn:   task.ExpiresOn,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskListResponse converts a page of tasks
func ToTaskListResponse(tasks []models.Task, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		items[i] = ToTaskDTO(t)
	}
	return TaskListResponse{
		Tasks:              items,
		PaginationResponse: utils.NewPaginationResponse(params, total),
	}
}
