package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

// lookupError maps a missing row to notFound and wraps anything else.
func lookupError(err error, notFound *apierrors.AppError, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// writeError maps a unique constraint violation to conflict and wraps anything else.
func writeError(err error, conflict *apierrors.AppError, action string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
