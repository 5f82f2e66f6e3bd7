package database

import (
	"fmt"
	"os"
	"path/filepath"

	"photovault/internal/config"
	"photovault/internal/pv"
)

// DatabaseFileName is the name of the SQLite file inside the data directory.
const DatabaseFileName = "photovault.db"

// NewDatabaseFromConfig creates a database based on the database config type.
// The schema is not migrated; callers run Migrate or CheckMigrations.
func NewDatabaseFromConfig(cfg config.DatabaseConfig, notifier pv.ChangeNotifier) (*SQLiteDatabase, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
		return NewSQLiteDatabase(filepath.Join(cfg.DataDir, DatabaseFileName), notifier)
	case "memory":
		return NewSQLiteDatabase(":memory:", notifier)
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
