package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yukikurage/task-tracker-api/internal/access"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/reconcile"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, logger *zap.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name        string
	Description string
	Status      string
	Priority    string
	ExecutorID  *uuid.UUID
	ExpiresOn   time.Time
}

// UpdateTaskInput represents input for updating a task. Nil and blank fields are kept.
type UpdateTaskInput struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	Status      *string
	Priority    *string
	ExecutorID  *uuid.UUID
	ExpiresOn   *time.Time
}

func taskNotFound(id uuid.UUID) *apierrors.AppError {
	return apierrors.NotFound("Task", "id", id)
}

func taskNameTaken(name string, creatorID uuid.UUID) *apierrors.AppError {
	return apierrors.AlreadyExists("Task",
		apierrors.Attr{Name: "name", Value: name},
		apierrors.Attr{Name: "creator id", Value: creatorID},
	)
}

// Search returns a page of tasks matching the filter
func (s *TaskService) Search(ctx context.Context, filter repository.TaskSearchFilter, page utils.PaginationParams) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.Search(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, total, nil
}

// Get retrieves a task by ID
func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return findTask(ctx, s.taskRepo, id)
}

func findTask(ctx context.Context, repo repository.TaskRepository, id uuid.UUID) (*models.Task, error) {
	task, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, taskNotFound(id), "find task")
	}
	return task, nil
}

// Create creates a task owned by creatorID
func (s *TaskService) Create(ctx context.Context, creatorID uuid.UUID, input CreateTaskInput) (*models.Task, error) {
	status, err := access.ParseStatus(input.Status)
	if err != nil {
		return nil, err
	}
	priority, err := access.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	if input.ExecutorID != nil {
		if err := s.checkExecutorExists(ctx, *input.ExecutorID); err != nil {
			return nil, err
		}
	}

	taken, err := s.taskRepo.ExistsByNameAndCreator(ctx, input.Name, creatorID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check task name: %w", err)
	}
	if taken {
		return nil, taskNameTaken(input.Name, creatorID)
	}

	task := &models.Task{
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		CreatorID:   creatorID,
		ExecutorID:  input.ExecutorID,
		ExpiresOn:   input.ExpiresOn,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, writeError(err, taskNameTaken(input.Name, creatorID), "create task")
	}

	s.logger.Info("Task created", zap.String("task_id", task.ID.String()), zap.String("creator_id", creatorID.String()))
	return task, nil
}

// Update applies a partial update. The creator may change every field, the
// executor only the status; other fields sent by the executor are ignored.
func (s *TaskService) Update(ctx context.Context, subjectID uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	update := reconcile.TaskUpdate{
		Name:        input.Name,
		Description: input.Description,
		ExecutorID:  input.ExecutorID,
		ExpiresOn:   input.ExpiresOn,
	}
	if input.Status != nil && strings.TrimSpace(*input.Status) != "" {
		status, err := access.ParseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		update.Status = &status
	}
	if input.Priority != nil && strings.TrimSpace(*input.Priority) != "" {
		priority, err := access.ParsePriority(*input.Priority)
		if err != nil {
			return nil, err
		}
		update.Priority = &priority
	}

	task, err := findTask(ctx, s.taskRepo, input.ID)
	if err != nil {
		return nil, err
	}

	role, err := access.AuthorizeTaskUpdate(subjectID, task, &update)
	if err != nil {
		return nil, err
	}
	if role == access.RoleCreator {
		if err := s.checkCreatorUpdate(ctx, task, update); err != nil {
			return nil, err
		}
	}

	if !reconcile.Task(update, task, s.now()) {
		return task, nil
	}
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, writeError(err, taskNameTaken(task.Name, task.CreatorID), "update task")
	}

	s.logger.Info("Task updated", zap.String("task_id", task.ID.String()), zap.String("user_id", subjectID.String()))
	return task, nil
}

func (s *TaskService) checkCreatorUpdate(ctx context.Context, task *models.Task, update reconcile.TaskUpdate) error {
	if name := changedValue(update.Name, task.Name); name != "" {
		taken, err := s.taskRepo.ExistsByNameAndCreator(ctx, name, task.CreatorID, &task.ID)
		if err != nil {
			return fmt.Errorf("failed to check task name: %w", err)
		}
		if taken {
			return taskNameTaken(name, task.CreatorID)
		}
	}
	if update.ExecutorID != nil && !task.HasExecutor(*update.ExecutorID) {
		return s.checkExecutorExists(ctx, *update.ExecutorID)
	}
	return nil
}

func (s *TaskService) checkExecutorExists(ctx context.Context, executorID uuid.UUID) error {
	exists, err := s.userRepo.ExistsByID(ctx, executorID)
	if err != nil {
		return fmt.Errorf("failed to check executor: %w", err)
	}
	if !exists {
		return apierrors.NotFound("User(executor)", "id", executorID)
	}
	return nil
}

// Delete deletes a task and its comments. Only the creator may delete.
func (s *TaskService) Delete(ctx context.Context, subjectID, id uuid.UUID) (uuid.UUID, error) {
	task, err := findTask(ctx, s.taskRepo, id)
	if err != nil {
		return uuid.Nil, err
	}
	if err := access.CheckTaskCreator(subjectID, task); err != nil {
		return uuid.Nil, err
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return uuid.Nil, lookupError(err, taskNotFound(id), "delete task")
	}

	s.logger.Info("Task deleted", zap.String("task_id", id.String()), zap.String("user_id", subjectID.String()))
	return id, nil
}
