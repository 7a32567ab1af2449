package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// TaskStatuses lists the valid statuses in declaration order.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusDone}

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityLow    TaskPriority = "LOW"
)

// TaskPriorities lists the valid priorities in declaration order.
var TaskPriorities = []TaskPriority{TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow}

// Task names are unique per creator.
type Task struct {
	ID          uuid.UUID    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(128);not null;uniqueIndex:idx_tasks_creator_name,priority:2" json:"name"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;index" json:"priority"`
	CreatorID   uuid.UUID    `gorm:"type:varchar(36);not null;uniqueIndex:idx_tasks_creator_name,priority:1" json:"creator_id"`
	ExecutorID  *uuid.UUID   `gorm:"type:varchar(36);index" json:"executor_id"`
	ExpiresOn   time.Time    `gorm:"not null;index" json:"expires_on"`
	CreatedAt   time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt   *time.Time   `gorm:"autoUpdateTime:false" json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// HasExecutor reports whether userID is the task's executor.
func (t *Task) HasExecutor(userID uuid.UUID) bool {
	return t.ExecutorID != nil && *t.ExecutorID == userID
}
