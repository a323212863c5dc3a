package collectors

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const busyTimeoutParam = "_busy_timeout=5000"

// NewSQLiteDB opens the SQLite file at path and verifies the connection.
// path may be a plain file name or a file: URI with its own query string.
func NewSQLiteDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&" + busyTimeoutParam
	}
	return path + "?" + busyTimeoutParam
}
