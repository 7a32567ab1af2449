package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yukikurage/task-tracker-api/internal/config"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(config.DatabaseConfig{Driver: driver, Name: "tasks"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestConnectAndMigrate_SQLite(t *testing.T) {
	log := zap.NewNop()
	db, err := Connect(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db, log))
	require.NoError(t, Ping(context.Background(), db))

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable("users"))
	assert.True(t, migrator.HasTable("tasks"))
	assert.True(t, migrator.HasTable("task_comments"))
	assert.True(t, migrator.HasIndex("tasks", "idx_tasks_creator_name"))
	assert.True(t, migrator.HasIndex("task_comments", "idx_task_comments_task_created"))

	// Running again must skip the existing indexes
	require.NoError(t, Migrate(db, log))
}

func TestNewRedis_Disabled(t *testing.T) {
	assert.Nil(t, NewRedis(config.RedisConfig{}, zap.NewNop()))
}
