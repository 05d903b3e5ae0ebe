package checkpoint

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"porticus/internal/models"
)

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS row_results (
	run_id     TEXT    NOT NULL,
	row_index  INTEGER NOT NULL,
	sector     TEXT    NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (run_id, row_index)
);
CREATE INDEX IF NOT EXISTS idx_row_results_run ON row_results(run_id);
`

// SQLiteStore keeps results in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and migrates it.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open checkpoint db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := InitDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate checkpoint db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// InitDB runs the embedded migrations.
func InitDB(db *sql.DB) error {
	for _, s := range strings.Split(migrationsSQL, ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Load(ctx context.Context, runID string) (models.Results, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT row_index, sector FROM row_results WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	defer rows.Close()

	out := models.Results{}
	for rows.Next() {
		var idx int
		var sector string
		if err := rows.Scan(&idx, &sector); err != nil {
			return nil, err
		}
		// rows written by another version may carry a retired sector; those are recomputed
		if sec := models.Sector(sector); sec.Valid() {
			out[idx] = sec
		}
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Save(ctx context.Context, runID string, batch models.Results) error {
	if len(batch) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO row_results (run_id, row_index, sector) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for idx, sector := range batch {
		if _, err := stmt.ExecContext(ctx, runID, idx, string(sector)); err != nil {
			return fmt.Errorf("save row %d: %w", idx, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %d results: %w", len(batch), err)
	}
	return nil
}

// Forget drops every stored result of runID.
func (s *SQLiteStore) Forget(ctx context.Context, runID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM row_results WHERE run_id = ?`, runID)
	return err
}
