package database

import (
	"fmt"

	"gorm.io/gorm"
)

var setupSQL = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	`CREATE EXTENSION IF NOT EXISTS vector;`,
}

var postMigrationSQL = []string{
	// HNSW index for cosine distance search on passages
	`CREATE INDEX IF NOT EXISTS idx_passages_embedding_hnsw ON passages USING hnsw (embedding vector_cosine_ops);`,
}

// Migrate installs the extensions the schema needs, auto-migrates models and
// creates the vector index. It is idempotent.
func Migrate(db *gorm.DB, models ...interface{}) error {
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("setup: %w", err)
		}
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("post migration: %w", err)
		}
	}
	return nil
}
