// Package access decides whether a subject may act on a user, task or comment.
package access

import (
	"strings"

	"github.com/google/uuid"

	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/reconcile"
)

// TaskRole is the subject's relation to a task.
type TaskRole int

const (
	RoleNone TaskRole = iota
	RoleCreator
	RoleExecutor
)

// RoleOf returns the subject's relation to task. A subject that is both
// creator and executor counts as creator.
func RoleOf(subjectID uuid.UUID, task *models.Task) TaskRole {
	switch {
	case task.CreatorID == subjectID:
		return RoleCreator
	case task.HasExecutor(subjectID):
		return RoleExecutor
	default:
		return RoleNone
	}
}

func CheckSelf(subjectID, targetUserID uuid.UUID) error {
	if subjectID != targetUserID {
		return apierrors.PermissionDenied("Current user id and request user id are not equals")
	}
	return nil
}

func CheckTaskCreator(subjectID uuid.UUID, task *models.Task) error {
	if task.CreatorID != subjectID {
		return apierrors.PermissionDenied("User is not task creator")
	}
	return nil
}

func CheckTaskParticipant(subjectID uuid.UUID, task *models.Task) error {
	if RoleOf(subjectID, task) == RoleNone {
		return apierrors.PermissionDenied("User is not related to the task")
	}
	return nil
}

func CheckCommentAuthor(subjectID uuid.UUID, comment *models.Comment) error {
	if comment.UserID != subjectID {
		return apierrors.PermissionDenied("User is not comment author")
	}
	return nil
}

// AuthorizeTaskUpdate lets the creator change anything and the executor change
// only the status. For an executor every other field of update is cleared.
func AuthorizeTaskUpdate(subjectID uuid.UUID, task *models.Task, update *reconcile.TaskUpdate) (TaskRole, error) {
	role := RoleOf(subjectID, task)
	switch role {
	case RoleCreator:
		return role, nil
	case RoleExecutor:
		update.RedactToStatus()
		return role, nil
	default:
		return role, apierrors.PermissionDenied("User is not related to the task")
	}
}

// ParseStatus normalizes raw and checks it against the task statuses.
func ParseStatus(raw string) (models.TaskStatus, error) {
	status, ok := LookupStatus(raw)
	if !ok {
		return "", apierrors.InvalidValueSelection(raw, names(models.TaskStatuses))
	}
	return status, nil
}

// ParsePriority normalizes raw and checks it against the task priorities.
func ParsePriority(raw string) (models.TaskPriority, error) {
	priority, ok := LookupPriority(raw)
	if !ok {
		return "", apierrors.InvalidValueSelection(raw, names(models.TaskPriorities))
	}
	return priority, nil
}

// LookupStatus is the lenient form of ParseStatus used by search.
func LookupStatus(raw string) (models.TaskStatus, bool) {
	return lookup(raw, models.TaskStatuses)
}

// LookupPriority is the lenient form of ParsePriority used by search.
func LookupPriority(raw string) (models.TaskPriority, bool) {
	return lookup(raw, models.TaskPriorities)
}

func lookup[T ~string](raw string, allowed []T) (T, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	for _, v := range allowed {
		if string(v) == normalized {
			return v, true
		}
	}
	return "", false
}

func names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
