// Package db owns the recorder database: connection setup, schema
// migration, and the live SQL debugging surface.
package db

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/tailscale/tailsql/server/tailsql"
	_ "modernc.org/sqlite"
	"tailscale.com/tsweb"
)

// DB wraps the recorder's sqlite handle.
type DB struct {
	*sql.DB
}

// NewDB opens (creating if needed) the sqlite database at path.
// Schema setup is handled separately by MigrateUp.
func NewDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// WAL keeps concurrent monitor reads from blocking recorder writes.
	if _, err := sqlDB.Exec(`PRAGMA journal_mode=WAL; PRAGMA foreign_keys=ON;`); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to set pragmas: %w", err)
	}

	return &DB{sqlDB}, nil
}

// AttachDebugHandlers mounts the tsweb debug surface and a tailSQL
// console over this database on mux. Debugging only; no auth.
func (db *DB) AttachDebugHandlers(mux *http.ServeMux, dbPath string) error {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		return fmt.Errorf("failed to create tailsql server: %w", err)
	}
	tsql.SetDB("sqlite://"+dbPath, db.DB, &tailsql.DBOptions{
		Label: "Scancloud DB",
	})
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())
	return nil
}

// migrateLogger adapts the migrate library's logger to the stdlib log.
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	log.Printf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool { return false }
