package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpungsan/satchel/internal/config"
	_ "modernc.org/sqlite"
)

// FileName is the database file inside the base directory.
const FileName = "satchel.db"

// migration moves the schema to version.
type migration struct {
	version int
	schema  string
}

// migrations run in order; a database at user_version N gets every entry above N.
var migrations = []migration{
	{1, `
		CREATE TABLE IF NOT EXISTS lists (
		  id               TEXT PRIMARY KEY,
		  destination_raw  TEXT NOT NULL,
		  destination_norm TEXT NOT NULL UNIQUE,
		  days             INTEGER NOT NULL,
		  item_count       INTEGER NOT NULL,
		  input_json       TEXT,
		  list_json        TEXT NOT NULL,
		  created_at       INTEGER NOT NULL,
		  updated_at       INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_lists_updated
		ON lists(updated_at DESC);
	`},
	{2, `
		CREATE TABLE IF NOT EXISTS checked_items (
		  list_id    TEXT NOT NULL,
		  item_id    TEXT NOT NULL,
		  checked_at INTEGER NOT NULL,
		  PRIMARY KEY (list_id, item_id)
		);
	`},
}

// CurrentSchemaVersion is the version after all migrations.
var CurrentSchemaVersion = migrations[len(migrations)-1].version

// Init opens (creating if needed) baseDir/satchel.db and brings its schema up to date.
// Tests pass t.TempDir(); the binary passes ~/.satchel.
func Init(baseDir string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	dbPath := filepath.Join(baseDir, FileName)
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	_ = os.Chmod(dbPath, 0600)
	return db, nil
}

// dsn sets the pragmas on every pooled connection, not just the first.
func dsn(path string) string {
	return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// ConfigurePool applies the db_max_open_conns / db_max_idle_conns settings.
// Zero leaves the driver default.
func ConfigurePool(db *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

// migrate applies pending migrations, each in its own transaction together
// with its user_version bump.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= version {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}
	}
	return nil
}

func applyMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(m.schema); err != nil {
		return err
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version=%d", m.version)); err != nil {
		return err
	}
	return tx.Commit()
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
