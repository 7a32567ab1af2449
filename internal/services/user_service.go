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

// UserService handles user business logic
type UserService struct {
	userRepo repository.UserRepository
	hasher   reconcile.PasswordHasher
	logger   *zap.Logger
	now      func() time.Time
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, hasher reconcile.PasswordHasher, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateUserInput represents the information needed to register a user
type CreateUserInput struct {
	Username string
	Password string
	Name     string
	Email    string
}

// UpdateUserInput represents a partial update of a user. Nil fields are kept.
type UpdateUserInput struct {
	ID       uuid.UUID
	Username *string
	Password *string
	Name     *string
	Email    *string
}

func userNotFound(id uuid.UUID) *apierrors.AppError {
	return apierrors.NotFound("User", "id", id)
}

// Create registers a new enabled user with the USER role
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if err := s.checkIfTaken(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: hash,
		Name:         input.Name,
		Email:        input.Email,
		Role:         models.RoleUser,
		Enabled:      true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, writeError(err, apierrors.AlreadyExists("User",
			apierrors.Attr{Name: "username", Value: input.Username},
			apierrors.Attr{Name: "email", Value: input.Email},
		), "create user")
	}

	s.logger.Info("User created", zap.String("user_id", user.ID.String()), zap.String("username", user.Username))
	return user, nil
}

// checkIfTaken reports the first conflict only, username before email.
func (s *UserService) checkIfTaken(ctx context.Context, username, email string) error {
	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return apierrors.AlreadyExists("User", apierrors.Attr{Name: "username", Value: username})
	}

	taken, err = s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return apierrors.AlreadyExists("User", apierrors.Attr{Name: "email", Value: email})
	}
	return nil
}

// List returns a page of users
func (s *UserService) List(ctx context.Context, page utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Get retrieves a user by ID
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, userNotFound(id), "find user")
	}
	return user, nil
}

// Update applies the changed fields of input to the subject's own account
func (s *UserService) Update(ctx context.Context, subjectID uuid.UUID, input UpdateUserInput) (*models.User, error) {
	if err := access.CheckSelf(subjectID, input.ID); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	username := changedValue(input.Username, user.Username)
	email := changedValue(input.Email, user.Email)
	if username != "" {
		taken, err := s.userRepo.ExistsByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			return nil, apierrors.AlreadyExists("User", apierrors.Attr{Name: "username", Value: username})
		}
	}
	if email != "" {
		taken, err := s.userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, apierrors.AlreadyExists("User", apierrors.Attr{Name: "email", Value: email})
		}
	}

	changed, err := reconcile.User(reconcile.UserUpdate{
		Username: input.Username,
		Password: input.Password,
		Name:     input.Name,
		Email:    input.Email,
	}, user, s.now(), s.hasher)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if !changed {
		return user, nil
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, writeError(err, apierrors.AlreadyExists("User",
			apierrors.Attr{Name: "username", Value: user.Username},
			apierrors.Attr{Name: "email", Value: user.Email},
		), "update user")
	}

	s.logger.Info("User updated", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Delete removes the subject's own account after re-checking the password
func (s *UserService) Delete(ctx context.Context, subjectID, id uuid.UUID, password string) (uuid.UUID, error) {
	if err := access.CheckSelf(subjectID, id); err != nil {
		return uuid.Nil, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return uuid.Nil, err
	}
	if !s.hasher.Matches(user.PasswordHash, password) {
		return uuid.Nil, apierrors.BadCredentials("Incorrect password")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return uuid.Nil, lookupError(err, userNotFound(id), "delete user")
	}

	s.logger.Info("User deleted", zap.String("user_id", id.String()))
	return id, nil
}

// changedValue returns the new non-blank value when it differs from current.
func changedValue(next *string, current string) string {
	if next == nil || strings.TrimSpace(*next) == "" || *next == current {
		return ""
	}
	return *next
}
