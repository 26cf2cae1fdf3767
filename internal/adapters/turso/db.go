package turso

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/tursodatabase/go-libsql"
)

// DB wraps a libsql connection.
type DB struct {
	*sql.DB
	location string
}

// NewDB opens a libsql database. url is either a local "file:" DSN or a
// remote libsql/https URL, in which case authToken is appended.
func NewDB(url, authToken string) (*DB, error) {
	if url == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	connStr := url
	remote := !IsLocal(url)
	if remote && authToken != "" {
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		connStr = url + sep + "authToken=" + authToken
	}

	db, err := sql.Open("libsql", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if remote {
		// Turso closes idle streams aggressively; stale pooled
		// connections fail with "stream not found".
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(0)
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(0)
	} else {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, location: url}, nil
}

// Location returns the URL the database was opened with, without credentials.
func (d *DB) Location() string {
	return d.location
}

// IsLocal reports whether url points at a local database file.
func IsLocal(url string) bool {
	return strings.HasPrefix(url, "file:")
}
