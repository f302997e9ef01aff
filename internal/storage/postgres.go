package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// PostgresKV stores each key as a row in kv_entries with a JSONB value.
// The table is created by the embedded migrations (internal/database).
type PostgresKV struct {
	db *sql.DB
}

func NewPostgresKV(db *sql.DB) *PostgresKV {
	return &PostgresKV{db: db}
}

func (p *PostgresKV) Get(key string, into interface{}) (bool, error) {
	var raw []byte
	err := p.db.QueryRow(`SELECT value FROM kv_entries WHERE key = $1`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (p *PostgresKV) Put(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = p.db.Exec(
		`INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, raw,
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (p *PostgresKV) Delete(key string) error {
	_, err := p.db.Exec(`DELETE FROM kv_entries WHERE key = $1`, key)
	return err
}
