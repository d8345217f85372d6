package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nutritrack/internal/dbx"
	"github.com/dmitrijs2005/nutritrack/internal/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	getBlobQuery = `SELECT value FROM blobs WHERE collection = ? AND user_id = ?`
	putBlobQuery = `INSERT INTO blobs (collection, user_id, value) VALUES (?, ?, ?)
		ON CONFLICT (collection, user_id) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
)

// SQLStore keeps every blob as a row of the blobs table, keyed by
// (collection, user_id). Batches run in one transaction.
type SQLStore struct {
	db      *sql.DB
	dialect dbx.Dialect
	getQ    string
	putQ    string
}

// NewSQLStore wraps an open database whose schema is already migrated.
func NewSQLStore(db *sql.DB, dialect dbx.Dialect) *SQLStore {
	return &SQLStore{
		db:      db,
		dialect: dialect,
		getQ:    dbx.Rebind(dialect, getBlobQuery),
		putQ:    dbx.Rebind(dialect, putBlobQuery),
	}
}

// OpenSQL opens dsn with the driver of dialect, applies the embedded
// migrations and returns the store. Close the store when done.
func OpenSQL(ctx context.Context, dialect dbx.Dialect, dsn string) (*SQLStore, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == dbx.DialectSQLite {
		// one writer, and in-memory databases live per connection
		db.SetMaxOpenConns(1)
	}
	if err := Migrate(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLStore(db, dialect), nil
}

// Migrate applies the embedded goose migrations for dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, migrations.Dir(string(dialect))); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, c Collection, userID string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.getQ, string(c), userID).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blob[%s/%s]: %w", c, userID, err)
	}
	return value, nil
}

func (s *SQLStore) Put(ctx context.Context, c Collection, userID string, data []byte) error {
	return s.put(ctx, s.db, c, userID, data)
}

func (s *SQLStore) PutBatch(ctx context.Context, userID string, blobs ...Blob) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, b := range blobs {
			if err := s.put(ctx, tx, b.Collection, userID, b.Data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLStore) put(ctx context.Context, q dbx.DBTX, c Collection, userID string, data []byte) error {
	if data == nil {
		data = []byte("null")
	}
	if _, err := q.ExecContext(ctx, s.putQ, string(c), userID, data); err != nil {
		return fmt.Errorf("failed to put blob[%s/%s]: %w", c, userID, err)
	}
	return nil
}

// Close releases the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
