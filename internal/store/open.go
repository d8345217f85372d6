package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nutritrack/internal/dbx"
)

// Options selects and configures a backend for Open.
type Options struct {
	Driver     string // memory | sqlite | postgres | s3
	DSN        string
	S3         S3Options
	Bucket     string
	Prefix     string
	Passphrase string // non-empty wraps the backend in an EncryptedStore
}

// Open builds the configured Store. The returned close function releases
// backend resources and is never nil.
func Open(ctx context.Context, o Options) (Store, func() error, error) {
	noop := func() error { return nil }

	var (
		s       Store
		closeFn = noop
	)
	switch strings.ToLower(o.Driver) {
	case "", "memory":
		s = NewMemoryStore()
	case "s3":
		if o.Bucket == "" {
			return nil, noop, fmt.Errorf("s3 store: bucket is required")
		}
		client, err := NewS3Client(ctx, o.S3)
		if err != nil {
			return nil, noop, err
		}
		s = NewS3Store(client, o.Bucket, o.Prefix)
	default:
		dialect, err := dbx.ParseDialect(o.Driver)
		if err != nil {
			return nil, noop, err
		}
		sqlStore, err := OpenSQL(ctx, dialect, o.DSN)
		if err != nil {
			return nil, noop, err
		}
		s, closeFn = sqlStore, sqlStore.Close
	}

	if o.Passphrase != "" {
		s = NewEncryptedStore(s, o.Passphrase)
	}
	return s, closeFn, nil
}
