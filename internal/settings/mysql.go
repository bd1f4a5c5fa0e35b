package settings

import (
	"context"
	"database/sql"
)

type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT value FROM settings WHERE name = ?`,
		key,
	).Scan(&v)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *MySQLStore) Set(ctx context.Context, key string, value string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO settings (name, value)
		 VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE value = VALUES(value)`,
		key, value,
	)
	return err
}
