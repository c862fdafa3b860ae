package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vitos/stock_level_scanner/internal/domain"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `CREATE TABLE IF NOT EXISTS invocations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		status INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		symbols_scanned INTEGER NOT NULL,
		symbols_broken INTEGER NOT NULL
	);`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to exec query %s: %w", query, err)
	}
	return nil
}

// InvocationJournal Implementation

func (s *SQLiteStore) SaveInvocation(ctx context.Context, inv *domain.Invocation) error {
	query := `INSERT INTO invocations (started_at, status, duration_ms, symbols_scanned, symbols_broken)
			  VALUES (?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, query,
		inv.StartedAt, inv.Status, inv.DurationMs, inv.SymbolsScanned, inv.SymbolsBroken)
	if err != nil {
		return fmt.Errorf("save invocation: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		inv.ID = id
	}
	return nil
}

func (s *SQLiteStore) ListInvocations(ctx context.Context, limit int) ([]*domain.Invocation, error) {
	query := `SELECT id, started_at, status, duration_ms, symbols_scanned, symbols_broken
			  FROM invocations ORDER BY id DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list invocations: %w", err)
	}
	defer rows.Close()

	var out []*domain.Invocation
	for rows.Next() {
		inv := &domain.Invocation{}
		if err := rows.Scan(&inv.ID, &inv.StartedAt, &inv.Status,
			&inv.DurationMs, &inv.SymbolsScanned, &inv.SymbolsBroken); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
