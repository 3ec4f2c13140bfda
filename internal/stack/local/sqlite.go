package local

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/thoreinstein/strata/internal/errors"
	"github.com/thoreinstein/strata/internal/paths"
	"github.com/thoreinstein/strata/internal/stack"
)

// schemaVersion is the metadata schema written by this build.
const schemaVersion = 1

// sqliteMetadataStore provisions a sqlite database file for run and lineage
// metadata. The "database" setting overrides the file location; by default
// the file lives in the data home, keyed by the record's identity.
type sqliteMetadataStore struct {
	databasePath string
}

func newSqliteMetadataStore(rec stack.Record) (stack.Provisioner, error) {
	return &sqliteMetadataStore{
		databasePath: rec.Setting("database", filepath.Join(componentDataDir("metadata", rec), "metadata.db")),
	}, nil
}

// Provision creates the database file and its schema. Re-provisioning an
// existing database only re-runs the idempotent schema statements.
func (s *sqliteMetadataStore) Provision() error {
	if err := paths.EnsureDir(filepath.Dir(s.databasePath), 0); err != nil {
		return errors.Wrap(err, "creating metadata store directory")
	}

	db, err := sql.Open("sqlite", s.databasePath)
	if err != nil {
		return errors.Wrap(err, "opening metadata database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return errors.Wrap(err, "reaching metadata database")
	}
	if err := ensureSchema(db); err != nil {
		return err
	}
	return nil
}

func ensureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS schema_info (
			version INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			pipeline TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS artifacts (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES runs(id),
			uri TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(err, "ensuring metadata schema")
		}
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_info`).Scan(&count); err != nil {
		return errors.Wrap(err, "reading schema version")
	}
	if count == 0 {
		if _, err := db.Exec(`INSERT INTO schema_info (version) VALUES (?)`, schemaVersion); err != nil {
			return errors.Wrap(err, "recording schema version")
		}
	}
	return nil
}

// Deprovision removes the database file. Removing a file that was never
// created is a no-op.
func (s *sqliteMetadataStore) Deprovision() error {
	if err := os.Remove(s.databasePath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing metadata database")
	}
	// The per-record directory goes with the database when nothing else
	// lives in it; a shared directory (custom "database" setting) stays.
	_ = os.Remove(filepath.Dir(s.databasePath))
	return nil
}

// Provisioned reports whether the database exists and answers queries.
func (s *sqliteMetadataStore) Provisioned() (bool, error) {
	if _, err := os.Stat(s.databasePath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, "checking metadata database")
	}

	db, err := sql.Open("sqlite", s.databasePath)
	if err != nil {
		return false, errors.Wrap(err, "opening metadata database")
	}
	defer db.Close()

	var version int
	if err := db.QueryRow(`SELECT version FROM schema_info LIMIT 1`).Scan(&version); err != nil {
		// A file without the schema is not a provisioned store.
		return false, nil
	}
	return version > 0, nil
}
