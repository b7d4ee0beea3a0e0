package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/keymapedit/internal/config"
	"github.com/studiowebux/keymapedit/internal/migrations"
	"github.com/studiowebux/keymapedit/internal/types"
)

// timestampLayout is how rows store their time, in UTC so rows sort as text
const timestampLayout = "2006-01-02 15:04:05.000"

// DefaultLimit is used by Recent when limit is not positive
const DefaultLimit = 50

// Manager is the SQLite activity journal
type Manager struct {
	db  *sql.DB
	now func() time.Time
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db, now: time.Now}, nil
}

// Record stores entry, filling in its ID and timestamp when unset, and
// returns the stored row.
func (m *Manager) Record(entry types.ActivityEntry) (types.ActivityEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = m.now()
	}

	query := `
		INSERT INTO activity (
			id, timestamp, operation, folder, file, template,
			retained, removed, appended, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var errMsg sql.NullString
	if entry.Error != "" {
		errMsg = sql.NullString{String: entry.Error, Valid: true}
	}

	_, err := m.db.Exec(query,
		entry.ID,
		entry.Timestamp.UTC().Format(timestampLayout),
		entry.Operation,
		entry.Folder,
		entry.File,
		entry.Template,
		entry.Retained,
		entry.Removed,
		entry.Appended,
		errMsg,
	)
	if err != nil {
		return entry, fmt.Errorf("failed to save activity entry: %w", err)
	}

	return entry, nil
}

// Recent returns up to limit entries, newest first
func (m *Manager) Recent(limit int) ([]types.ActivityEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `
		SELECT id, timestamp, operation, folder, file, template,
		       retained, removed, appended, error
		FROM activity
		ORDER BY timestamp DESC, rowid DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	defer rows.Close()

	return m.scanEntries(rows)
}

func (m *Manager) scanEntries(rows *sql.Rows) ([]types.ActivityEntry, error) {
	entries := []types.ActivityEntry{}

	for rows.Next() {
		var entry types.ActivityEntry
		var timestamp string
		var errMsg sql.NullString

		err := rows.Scan(
			&entry.ID,
			&timestamp,
			&entry.Operation,
			&entry.Folder,
			&entry.File,
			&entry.Template,
			&entry.Retained,
			&entry.Removed,
			&entry.Appended,
			&errMsg,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}

		// The driver may already have converted the column to RFC3339
		parsedTime, err := time.ParseInLocation(timestampLayout, timestamp, time.UTC)
		if err != nil {
			parsedTime, err = time.Parse(time.RFC3339Nano, timestamp)
			if err != nil {
				parsedTime = time.Time{}
			}
		}
		entry.Timestamp = parsedTime.Local()
		entry.Error = errMsg.String

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM activity")
	if err != nil {
		return fmt.Errorf("failed to clear activity: %w", err)
	}
	return nil
}

func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM activity").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get activity count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
