// Package postgres implements the catalog's repositories on PostgreSQL via
// database/sql with the pgx driver. Queries are built with squirrel; driver
// errors are classified with pgerrcode so constraint violations map onto
// domain errors.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 4
	connMaxLifetime = 30 * time.Minute
)

// qb is the shared statement builder using $n placeholders.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DB wraps the connection pool and owns transaction demarcation.
type DB struct {
	*sql.DB
	log zerolog.Logger
}

// Connect opens the pool, applies connection limits and verifies
// reachability with a ping.
func Connect(ctx context.Context, dsn string, log zerolog.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)
	conn.SetConnMaxLifetime(connMaxLifetime)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	log.Info().Msg("connected to postgres")

	return &DB{DB: conn, log: log}, nil
}

// NewDB wraps an existing *sql.DB. Used by tests with sqlmock.
func NewDB(conn *sql.DB, log zerolog.Logger) *DB {
	return &DB{DB: conn, log: log}
}

type txKey struct{}

// WithinTx runs fn inside a transaction carried in the context. Repository
// calls made with the derived context join the transaction. A nested call
// joins the outer transaction instead of opening a second one.
func (d *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			d.log.Error().Err(rbErr).Msg("transaction rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction bound to ctx, or the pool when there is none.
func (d *DB) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return d.DB
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
