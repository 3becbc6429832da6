// Package store persists the learning core's state behind the repository
// interfaces the other packages declare: daily plans, learning paths,
// content fingerprints, concept mastery, and learner profiles. GORM backs
// the durable implementation (SQLite for local use, Postgres via DSN); the
// Memory* types provide lock-guarded in-memory versions for tests and
// ephemeral runs.
package store

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database behind dsn and migrates the schema. A
// postgres:// DSN selects the Postgres driver; anything else is treated as a
// SQLite path.
func Open(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&planRow{},
		&pathRow{},
		&fingerprintRow{},
		&masteryRow{},
		&profileRow{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
