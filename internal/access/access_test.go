package access

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/reconcile"
)

func newTask(creator uuid.UUID, executor *uuid.UUID) *models.Task {
	return &models.Task{
		ID:         uuid.New(),
		Name:       "Write report",
		Status:     models.TaskStatusPending,
		Priority:   models.TaskPriorityLow,
		CreatorID:  creator,
		ExecutorID: executor,
		ExpiresOn:  time.Now().Add(24 * time.Hour),
	}
}

func TestCheckSelf(t *testing.T) {
	id := uuid.New()
	assert.NoError(t, CheckSelf(id, id))

	err := CheckSelf(id, uuid.New())
	require.Error(t, err)
	assert.True(t, apierrors.IsKind(err, apierrors.KindPermissionDenied))
	assert.Equal(t, "Current user id and request user id are not equals", apierrors.As(err).Message)
}

func TestTaskChecks(t *testing.T) {
	creator, executor, stranger := uuid.New(), uuid.New(), uuid.New()
	task := newTask(creator, &executor)

	assert.NoError(t, CheckTaskCreator(creator, task))
	assert.True(t, apierrors.IsKind(CheckTaskCreator(executor, task), apierrors.KindPermissionDenied))

	assert.NoError(t, CheckTaskParticipant(creator, task))
	assert.NoError(t, CheckTaskParticipant(executor, task))
	assert.True(t, apierrors.IsKind(CheckTaskParticipant(stranger, task), apierrors.KindPermissionDenied))

	unassigned := newTask(creator, nil)
	assert.Equal(t, RoleNone, RoleOf(executor, unassigned))
}

func TestCheckCommentAuthor(t *testing.T) {
	author := uuid.New()
	comment := &models.Comment{ID: uuid.New(), UserID: author}

	assert.NoError(t, CheckCommentAuthor(author, comment))
	assert.True(t, apierrors.IsKind(CheckCommentAuthor(uuid.New(), comment), apierrors.KindPermissionDenied))
}

func TestAuthorizeTaskUpdate(t *testing.T) {
	creator, executor := uuid.New(), uuid.New()
	task := newTask(creator, &executor)
	name := "Renamed"
	status := models.TaskStatusDone

	t.Run("creator keeps every field", func(t *testing.T) {
		update := reconcile.TaskUpdate{Name: &name, Status: &status}
		role, err := AuthorizeTaskUpdate(creator, task, &update)
		require.NoError(t, err)
		assert.Equal(t, RoleCreator, role)
		assert.Equal(t, &name, update.Name)
	})

	t.Run("executor is redacted to status", func(t *testing.T) {
		update := reconcile.TaskUpdate{Name: &name, Status: &status}
		role, err := AuthorizeTaskUpdate(executor, task, &update)
		require.NoError(t, err)
		assert.Equal(t, RoleExecutor, role)
		assert.Nil(t, update.Name)
		assert.Equal(t, &status, update.Status)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		update := reconcile.TaskUpdate{Status: &status}
		role, err := AuthorizeTaskUpdate(uuid.New(), task, &update)
		assert.Equal(t, RoleNone, role)
		assert.True(t, apierrors.IsKind(err, apierrors.KindPermissionDenied))
	})

	t.Run("creator who is also executor counts as creator", func(t *testing.T) {
		self := newTask(creator, &creator)
		update := reconcile.TaskUpdate{Name: &name}
		role, err := AuthorizeTaskUpdate(creator, self, &update)
		require.NoError(t, err)
		assert.Equal(t, RoleCreator, role)
		assert.NotNil(t, update.Name)
	})
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusPending, status)

	status, err = ParseStatus(" In_Progress ")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusInProgress, status)

	_, err = ParseStatus("archived")
	require.Error(t, err)
	assert.True(t, apierrors.IsKind(err, apierrors.KindInvalidValueSelection))
	assert.Equal(t, `"archived" is not in the list of valid values: [pending, in_progress, done]`, apierrors.As(err).Message)
}

func TestParsePriority(t *testing.T) {
	priority, err := ParsePriority("High")
	require.NoError(t, err)
	assert.Equal(t, models.TaskPriorityHigh, priority)

	_, err = ParsePriority("urgent")
	assert.True(t, apierrors.IsKind(err, apierrors.KindInvalidValueSelection))

	_, ok := LookupPriority("urgent")
	assert.False(t, ok)
}
