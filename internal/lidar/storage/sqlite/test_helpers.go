package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/banshee-data/scancloud/db"
)

// migrationsDir locates db/migrations relative to this package.
const migrationsDir = "../../../../db/migrations"

// newTestRecorder opens a throwaway on-disk database with the full
// schema applied. On-disk rather than :memory: because the migrate
// driver opens its own statements against the same handle.
func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.NewDB(path)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := d.MigrateUp(migrationsDir); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewRecorder(d.DB)
}
