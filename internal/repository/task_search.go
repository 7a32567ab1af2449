package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yukikurage/task-tracker-api/internal/access"
)

// TaskSearchFilter holds the optional task search criteria. Nil pointers and
// empty strings are not applied.
type TaskSearchFilter struct {
	ID          *uuid.UUID
	Name        string
	Description string
	Status      string
	Priority    string
	CreatorID   *uuid.UUID
	ExecutorID  *uuid.UUID

	CreatedAt       *time.Time
	CreatedAtAfter  *time.Time
	CreatedAtBefore *time.Time
	ExpiresOn       *time.Time
	ExpiresOnAfter  *time.Time
	ExpiresOnBefore *time.Time
	UpdatedAt       *time.Time
	UpdatedAtAfter  *time.Time
	UpdatedAtBefore *time.Time
}

// TaskSearchScopes returns one scope per criterion; the scopes are ANDed when
// applied together. Unknown status or priority values match every task.
func TaskSearchScopes(f TaskSearchFilter) []func(*gorm.DB) *gorm.DB {
	return []func(*gorm.DB) *gorm.DB{
		where("id = ?", f.ID),
		nameMatches(f.Name),
		contains("description", f.Description),
		statusIs(f.Status),
		priorityIs(f.Priority),
		where("creator_id = ?", f.CreatorID),
		where("executor_id = ?", f.ExecutorID),
		where("created_at = ?", f.CreatedAt),
		where("created_at >= ?", f.CreatedAtAfter),
		where("created_at <= ?", f.CreatedAtBefore),
		where("expires_on = ?", f.ExpiresOn),
		where("expires_on >= ?", f.ExpiresOnAfter),
		where("expires_on <= ?", f.ExpiresOnBefore),
		where("updated_at = ?", f.UpdatedAt),
		where("updated_at >= ?", f.UpdatedAtAfter),
		where("updated_at <= ?", f.UpdatedAtBefore),
	}
}

func identity(db *gorm.DB) *gorm.DB {
	return db
}

func where[T any](condition string, value *T) func(*gorm.DB) *gorm.DB {
	if value == nil {
		return identity
	}
	v := *value
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(condition, v)
	}
}

// nameMatches accepts an exact name or any name containing it. gorm groups
// the OR in parentheses.
func nameMatches(name string) func(*gorm.DB) *gorm.DB {
	if name == "" {
		return identity
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("name = ? OR name LIKE ?", name, "%"+name+"%")
	}
}

func contains(column, value string) func(*gorm.DB) *gorm.DB {
	if value == "" {
		return identity
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" LIKE ?", "%"+value+"%")
	}
}

func statusIs(raw string) func(*gorm.DB) *gorm.DB {
	status, ok := access.LookupStatus(raw)
	if !ok {
		return identity
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}

func priorityIs(raw string) func(*gorm.DB) *gorm.DB {
	priority, ok := access.LookupPriority(raw)
	if !ok {
		return identity
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("priority = ?", priority)
	}
}
