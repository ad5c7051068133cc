package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded action outcome.
type Entry struct {
	ID        int64
	Timestamp time.Time
	SessionID string
	Action    string
	Target    string
	Success   bool
	Detail    string
}

// Store persists action outcomes to a local sqlite database so a user can
// reconstruct what the tool actually did on their behalf.
type Store struct {
	db *sql.DB
}

// Open connects to (or creates) the audit database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create audit directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS audit_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		session_id TEXT NOT NULL,
		action TEXT NOT NULL,
		target TEXT NOT NULL,
		success BOOLEAN NOT NULL,
		detail TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_audit_session ON audit_logs(session_id);
	CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_logs(timestamp);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize audit schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record appends one outcome. Failures to audit are returned, not fatal.
func (s *Store) Record(sessionID, action, target string, success bool, detail string) error {
	_, err := s.db.Exec(
		`INSERT INTO audit_logs (timestamp, session_id, action, target, success, detail)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), sessionID, action, target, success, detail,
	)
	if err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	return nil
}

// Recent returns the latest entries, newest first. An empty sessionID
// spans all sessions.
func (s *Store) Recent(sessionID string, limit int) ([]Entry, error) {
	query := `SELECT id, timestamp, session_id, action, target, success, detail
	          FROM audit_logs`
	args := []interface{}{}
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.SessionID, &e.Action, &e.Target, &e.Success, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
