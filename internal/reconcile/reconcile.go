// Package reconcile merges partial updates into stored entities.
//
// A field is overwritten only when the update carries a value for it and that
// value differs from the stored one. Blank strings count as absent. UpdatedAt
// is stamped only when something changed.
package reconcile

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

// TaskUpdate carries the optional new values for a task. Nil means keep.
type TaskUpdate struct {
	Name        *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	ExecutorID  *uuid.UUID
	ExpiresOn   *time.Time
}

// RedactToStatus clears every field an executor may not change.
func (u *TaskUpdate) RedactToStatus() {
	u.Name = nil
	u.Description = nil
	u.Priority = nil
	u.ExecutorID = nil
	u.ExpiresOn = nil
}

// Task applies u to t and reports whether t changed.
func Task(u TaskUpdate, t *models.Task, now time.Time) bool {
	changed := false

	if v, ok := present(u.Name); ok && v != t.Name {
		t.Name = v
		changed = true
	}
	if v, ok := present(u.Description); ok && v != t.Description {
		t.Description = v
		changed = true
	}
	if u.Status != nil && *u.Status != t.Status {
		t.Status = *u.Status
		changed = true
	}
	if u.Priority != nil && *u.Priority != t.Priority {
		t.Priority = *u.Priority
		changed = true
	}
	if u.ExecutorID != nil && !t.HasExecutor(*u.ExecutorID) {
		id := *u.ExecutorID
		t.ExecutorID = &id
		changed = true
	}
	if u.ExpiresOn != nil && !u.ExpiresOn.Equal(t.ExpiresOn) {
		t.ExpiresOn = *u.ExpiresOn
		changed = true
	}

	if changed {
		stamp(&t.UpdatedAt, now)
	}
	return changed
}

// UserUpdate carries the optional new values for a user. Password is plain text.
type UserUpdate struct {
	Username *string
	Password *string
	Name     *string
	Email    *string
}

// PasswordHasher hashes new passwords and checks them against stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(hashed, password string) bool
}

// User applies u to usr and reports whether usr changed. A password is
// re-hashed only when it does not match the stored hash.
func User(u UserUpdate, usr *models.User, now time.Time, hasher PasswordHasher) (bool, error) {
	changed := false

	if v, ok := present(u.Username); ok && v != usr.Username {
		usr.Username = v
		changed = true
	}
	if v, ok := present(u.Password); ok && !hasher.Matches(usr.PasswordHash, v) {
		hash, err := hasher.Hash(v)
		if err != nil {
			return false, err
		}
		usr.PasswordHash = hash
		changed = true
	}
	if v, ok := present(u.Name); ok && v != usr.Name {
		usr.Name = v
		changed = true
	}
	if v, ok := present(u.Email); ok && v != usr.Email {
		usr.Email = v
		changed = true
	}

	if changed {
		stamp(&usr.UpdatedAt, now)
	}
	return changed, nil
}

func present(s *string) (string, bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "", false
	}
	return *s, true
}

func stamp(field **time.Time, now time.Time) {
	t := now
	*field = &t
}
