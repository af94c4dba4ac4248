package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mavwarf/teamspack/internal/paths"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite database at path and creates
// the builds table.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}

	ddl := `
CREATE TABLE IF NOT EXISTS builds (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp    TEXT    NOT NULL,
    archive      TEXT    NOT NULL,
    entries_csv  TEXT    NOT NULL DEFAULT '',
    size         INTEGER NOT NULL DEFAULT 0,
    sha256       TEXT    NOT NULL DEFAULT '',
    color_font   TEXT    NOT NULL DEFAULT '',
    outline_font TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_builds_timestamp ON builds(timestamp DESC);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Record(b Build) error {
	if b.Time.IsZero() {
		b.Time = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO builds (timestamp, archive, entries_csv, size, sha256, color_font, outline_font)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.Time.Format(time.RFC3339), b.Archive, strings.Join(b.Entries, ","),
		b.Size, b.SHA256, b.ColorFont, b.OutlineFont,
	)
	return err
}

func (s *SQLiteStore) Builds(limit int) ([]Build, error) {
	query := `SELECT timestamp, archive, entries_csv, size, sha256, color_font, outline_font
		FROM builds ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		var b Build
		var tsStr, entriesCSV string
		if err := rows.Scan(&tsStr, &b.Archive, &entriesCSV, &b.Size, &b.SHA256, &b.ColorFont, &b.OutlineFont); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			continue
		}
		b.Time = ts
		if entriesCSV != "" {
			b.Entries = strings.Split(entriesCSV, ",")
		}
		builds = append(builds, b)
	}
	return builds, rows.Err()
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM builds`)
	return err
}
