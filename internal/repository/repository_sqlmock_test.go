package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestTaskRepository_CreateDuplicateIsTranslated(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `tasks`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Task{
		Name:      "Write report",
		Status:    models.TaskStatusPending,
		Priority:  models.TaskPriorityLow,
		CreatorID: uuid.New(),
		ExpiresOn: time.Now().Add(time.Hour),
	})

	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_SearchCountError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `tasks` WHERE status = \\?").
		WithArgs("DONE").
		WillReturnError(errors.New("connection lost"))

	_, _, err := repo.Search(context.Background(), TaskSearchFilter{Status: "done"}, utils.NewPaginationParams(0, 5))

	assert.EqualError(t, err, "connection lost")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_SearchBuildsNameCondition(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)
	creator := uuid.New()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `tasks` WHERE \\(name = \\? OR name LIKE \\?\\) AND creator_id = \\?").
		WithArgs("report", "%report%", creator.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT \\* FROM `tasks` WHERE \\(name = \\? OR name LIKE \\?\\) AND creator_id = \\? ORDER BY created_at DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	tasks, total, err := repo.Search(context.Background(),
		TaskSearchFilter{Name: "report", CreatorID: &creator},
		utils.NewPaginationParams(0, 5))

	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Equal(t, int64(0), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE username = \\?").
		WithArgs("alice").
		WillReturnError(errors.New("timeout"))

	_, err := repo.ExistsByUsername(context.Background(), "alice")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_DeleteMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `task_comments` WHERE id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
