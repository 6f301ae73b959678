package database

import (
	"context"
	"database/sql"
)

// Querier is the query surface shared by the pool and an open
// transaction, so repository helpers can run in either scope.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

type DB interface {
	Querier

	Ping(ctx context.Context) error
	Close() error

	Begin(ctx context.Context) (Tx, error)
	BeginTx(ctx context.Context, opts TxOptions) (Tx, error)

	SQLDB() *sql.DB
}

type Tx interface {
	Querier

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type IsoLevel string

const (
	ReadCommitted IsoLevel = "read committed"
	Serializable  IsoLevel = "serializable"
)

type TxOptions struct {
	IsoLevel IsoLevel
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
