package fields

import (
	"context"
	"database/sql"
)

type MySQLMetaStore struct {
	db *sql.DB
}

func NewMySQLMetaStore(db *sql.DB) *MySQLMetaStore {
	return &MySQLMetaStore{db: db}
}

func (s *MySQLMetaStore) Get(ctx context.Context, productID uint64, metaKey string) (string, error) {
	var v string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT meta_value FROM product_meta WHERE product_id = ? AND meta_key = ?`,
		productID, metaKey,
	).Scan(&v)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *MySQLMetaStore) Set(ctx context.Context, productID uint64, metaKey string, value string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO product_meta (product_id, meta_key, meta_value)
		 VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE meta_value = VALUES(meta_value)`,
		productID, metaKey, value,
	)
	return err
}
