package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the sync cursor and run history to a SQLite
// database. The cursor lives here, outside the human-editable worksheet, so
// append mode does not depend on inferring state from sheet contents.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sync_cursor (
			id          INTEGER PRIMARY KEY CHECK (id = 1),
			last_synced TEXT NOT NULL,
			updated_at  INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS run_history (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			mode         TEXT,
			rows_fetched INTEGER,
			rows_kept    INTEGER,
			rows_written INTEGER,
			status       TEXT,
			error        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_ts ON run_history(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// LastSynced returns the cursor date, or "" when no run has synced yet.
func (r *SQLiteRecorder) LastSynced() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var date string
	err := r.db.QueryRow(`SELECT last_synced FROM sync_cursor WHERE id = 1`).Scan(&date)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read cursor: %w", err)
	}
	return date, nil
}

// SetLastSynced advances the cursor.
func (r *SQLiteRecorder) SetLastSynced(date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO sync_cursor (id, last_synced, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET last_synced = excluded.last_synced, updated_at = excluded.updated_at`,
		date, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("write cursor: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO run_history
		(timestamp, mode, rows_fetched, rows_kept, rows_written, status, error)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), string(rec.Mode),
		rec.RowsFetched, rec.RowsKept, rec.RowsWritten,
		rec.Status, rec.Error,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
