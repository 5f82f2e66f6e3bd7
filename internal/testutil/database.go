package testutil

import (
	"testing"

	"photovault/internal/database"
	"photovault/internal/pv"
)

// NewTestDatabase creates a new in-memory SQLite database with schema applied.
// The database is automatically closed when the test completes.
func NewTestDatabase(t *testing.T) *database.SQLiteDatabase {
	t.Helper()
	return NewTestDatabaseWithNotifier(t, nil)
}

// NewTestDatabaseWithNotifier is NewTestDatabase with a change notifier attached.
func NewTestDatabaseWithNotifier(t *testing.T, notifier pv.ChangeNotifier) *database.SQLiteDatabase {
	t.Helper()

	sqlDB, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if _, err := sqlDB.Exec(database.Schema); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	db := database.NewSQLiteDatabaseFromDB(sqlDB, ":memory:", notifier)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
