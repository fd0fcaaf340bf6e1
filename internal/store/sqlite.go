package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"resumecanvas/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
    collection TEXT NOT NULL,
    id         TEXT NOT NULL,
    data       TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (collection, id)
);
`

// SQLiteStore persists records in a single sqlite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the database at path and applies
// the schema. The parent directory is created as needed.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
				"create database directory", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "open database", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "apply schema", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, collection, id string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO records (collection, id, data, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (collection, id) DO UPDATE SET
            data = excluded.data,
            updated_at = excluded.updated_at
    `, collection, id, string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed, "put record", err).
			WithContext("collection", collection).
			WithContext("id", id)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
        SELECT data FROM records WHERE collection = ? AND id = ?
    `, collection, id).Scan(&data)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, notFound(collection, id)
	}
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "get record", err).
			WithContext("collection", collection).
			WithContext("id", id)
	}
	return []byte(data), nil
}

func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx, `
        DELETE FROM records WHERE collection = ? AND id = ?
    `, collection, id)
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed, "delete record", err).
			WithContext("collection", collection).
			WithContext("id", id)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound(collection, id)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context, collection string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, data, updated_at FROM records
        WHERE collection = ?
        ORDER BY id
    `, collection)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "list records", err).
			WithContext("collection", collection)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry   Entry
			data    string
			updated string
		)
		if err := rows.Scan(&entry.ID, &data, &updated); err != nil {
			return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "scan record", err)
		}
		entry.Data = []byte(data)
		if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
			entry.UpdatedAt = t
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed, "list records", err)
	}
	return entries, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
