package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Composite indexes not expressible through struct tags on a single field.
var compositeIndexes = []struct {
	table   string
	name    string
	columns string
}{
	// Comments of a task are listed newest first
	{"task_comments", "idx_task_comments_task_created", "task_id, created_at"},

	// Tasks by executor, newest first
	{"tasks", "idx_tasks_executor_created", "executor_id, created_at"},
}

// AddIndexes creates the composite indexes that do not exist yet.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}
