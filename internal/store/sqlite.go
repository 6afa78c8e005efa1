package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists uploads to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite upload store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS uploads (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			size       INTEGER NOT NULL,
			data       BLOB NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_uploads_created ON uploads(created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) Put(ctx context.Context, name string, data []byte) (*Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &Upload{ID: ContentID(data), Name: name, Data: data, CreatedAt: time.Now()}
	_, err := s.db.ExecContext(ctx, `INSERT INTO uploads (id, name, size, data, created_at)
		VALUES (?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, created_at = excluded.created_at`,
		u.ID, u.Name, len(data), data, u.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert upload: %w", err)
	}
	return u, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Upload, error) {
	u := &Upload{ID: id}
	var created int64
	err := s.db.QueryRowContext(ctx,
		`SELECT name, data, created_at FROM uploads WHERE id = ?`, id,
	).Scan(&u.Name, &u.Data, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select upload: %w", err)
	}
	u.CreatedAt = time.Unix(created, 0)
	return u, nil
}

func (s *SQLiteStore) Purge(ctx context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM uploads WHERE created_at < ?`, olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("purge uploads: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite upload store")
	return s.db.Close()
}
