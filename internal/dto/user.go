package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

// SignUpRequest is the body of POST /auth/sign-up
type SignUpRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,password"`
	Name     string `json:"name" binding:"required,notblank,personname"`
	Email    string `json:"email" binding:"required,email_strict"`
}

// UpdateUserRequest is the body of PATCH /users. Omitted fields are kept.
type UpdateUserRequest struct {
	ID       *uuid.UUID `json:"id" binding:"required"`
	Username *string    `json:"username" binding:"omitempty,opt_username"`
	Password *string    `json:"password" binding:"omitempty,opt_password"`
	Name     *string    `json:"name" binding:"omitempty,opt_personname"`
	Email    *string    `json:"email" binding:"omitempty,opt_email_strict"`
}

// DeleteUserRequest is the body of DELETE /users
type DeleteUserRequest struct {
	ID       *uuid.UUID `json:"id" binding:"required"`
	Password string     `json:"password" binding:"required,notblank"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountDTO is returned after registration or a profile update. The password
// is never echoed back.
type AccountDTO struct {
	ID                 uuid.UUID       `json:"id"`
	Username           string          `json:"username"`
	Password           string          `json:"password"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Role               models.UserRole `json:"role"`
	Expired            bool            `json:"expired"`
	Locked             bool            `json:"locked"`
	CredentialsExpired bool            `json:"credentials_expired"`
	Enabled            bool            `json:"enabled"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          *time.Time      `json:"updated_at"`
	Timestamp          time.Time       `json:"timestamp"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users []UserDTO `json:"users"`
	utils.PaginationResponse
}

// DeleteUserResponse is returned by DELETE /users
type DeleteUserResponse struct {
	DeletedUserID uuid.UUID `json:"deleted_user_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToAccountDTO converts a User model to AccountDTO
func ToAccountDTO(user models.User) AccountDTO {
	return AccountDTO{
		ID:                 user.ID,
		Username:           user.Username,
		Password:           constants.ProtectedPassword,
		Name:               user.Name,
		Email:              user.Email,
		Role:               user.Role,
		Expired:            user.Expired,
		Locked:             user.Locked,
		CredentialsExpired: user.CredentialsExpired,
		Enabled:            user.Enabled,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
		Timestamp:          time.Now().UTC(),
	}
}

// ToUserListResponse converts a page of users
func ToUserListResponse(users []models.User, params utils.PaginationParams, total int64) UserListResponse {
	items := make([]UserDTO, len(users))
	for i, u := range users {
		items[i] = ToUserDTO(u)
	}
	return UserListResponse{
		Users:              items,
		PaginationResponse: utils.NewPaginationResponse(params, total),
	}
}
