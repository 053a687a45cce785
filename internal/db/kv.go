package db

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Read returns the value stored under key
func (db *DB) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM kv_items WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

// Write upserts value under key
func (db *DB) Write(ctx context.Context, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO kv_items (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(value), time.Now())
	return err
}

// Delete removes key; deleting an absent key is not an error
func (db *DB) Delete(ctx context.Context, key string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM kv_items WHERE key = ?`, key)
	return err
}

// Clear removes every key
func (db *DB) Clear(ctx context.Context) error {
	return db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM kv_items`)
		return err
	})
}

// Keys returns all stored keys in sorted order
func (db *DB) Keys(ctx context.Context) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT key FROM kv_items ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
