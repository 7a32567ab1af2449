package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error)

	// ExistsByNameAndCreator reports whether the creator already owns a task
	// with the name, ignoring the task excludeID when given
	ExistsByNameAndCreator(ctx context.Context, name string, creatorID uuid.UUID, excludeID *uuid.UUID) (bool, error)

	// Search retrieves tasks matching the filter, newest first
	Search(ctx context.Context, filter TaskSearchFilter, page utils.PaginationParams) ([]models.Task, int64, error)

	// Update saves every column of the task
	Update(ctx context.Context, task *models.Task) error

	// Delete deletes a task together with its comments
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository defines the interface for task comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)

	// ListByTask lists the comments of a task, newest first
	ListByTask(ctx context.Context, taskID uuid.UUID, page utils.PaginationParams) ([]models.Comment, int64, error)

	// Delete deletes a comment
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByIDs finds every existing user among ids
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// ExistsByID reports whether a user with the ID exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByUsername reports whether the username is taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether the email is taken
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List retrieves a page of users, newest first
	List(ctx context.Context, page utils.PaginationParams) ([]models.User, int64, error)

	// Update saves every column of the user
	Update(ctx context.Context, user *models.User) error

	// Delete deletes a user
	Delete(ctx context.Context, id uuid.UUID) error
}
