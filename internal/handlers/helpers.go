package handlers

import (
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/validation"
)

// bindJSON binds the request body and records a validation error on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		message, details := validation.Describe(err)
		appErr := apierrors.ValidationFailed(message, nil)
		if details != nil {
			appErr.Details = details
		}
		_ = c.Error(appErr)
		return false
	}
	return true
}

// currentUser returns the authenticated subject set by RequireAuth.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		_ = c.Error(apierrors.AuthHeaderMissing())
	}
	return userID, ok
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		_ = c.Error(apierrors.ValidationFailed("Invalid "+name, map[string]string{name: "must be a valid UUID"}))
		return uuid.Nil, false
	}
	return id, true
}

func queryUUID(query url.Values, name string) (*uuid.UUID, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apierrors.ValidationFailed("Invalid query parameter", map[string]string{name: "must be a valid UUID"})
	}
	return &id, nil
}

func queryTime(query url.Values, name string) (*time.Time, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apierrors.ValidationFailed("Invalid query parameter", map[string]string{name: "must be an RFC3339 timestamp"})
	}
	return &t, nil
}

func now() time.Time {
	return time.Now().UTC()
}
