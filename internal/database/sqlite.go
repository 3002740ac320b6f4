// Package database provides SQLite persistence for the verdict audit log.
package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const memoryPath = ":memory:"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(
	dbPath string,
) (
	*SQLiteStore,
	error,
) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// every connection to :memory: is a separate database
	if dbPath == memoryPath {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init database: couldn't set busy timeout: %v", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init database: %v", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	if err := initTable(db, "verdict", `
		CREATE TABLE IF NOT EXISTS verdict (
			id          TEXT PRIMARY KEY,
			time        INTEGER NOT NULL,
			outcome     TEXT NOT NULL,
			reason      TEXT,
			subject     TEXT,
			nesting     INTEGER NOT NULL DEFAULT 0
		);`,
	); err != nil {
		return err
	}

	if err := initTable(db, "verdict_time", `
		CREATE INDEX IF NOT EXISTS verdict_time ON verdict (time);`,
	); err != nil {
		return err
	}

	return nil
}

func initTable(
	db *sql.DB,
	name string,
	sql string,
) error {
	if _, err := db.Exec(sql); err != nil {
		return fmt.Errorf("failed to init '%s' table schema: %v", name, err)
	}
	return nil
}
