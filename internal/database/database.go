package database

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/01moynul/storefront-api/db"
	"github.com/01moynul/storefront-api/internal/config"
)

// mysqlDuplicateEntry is the MySQL error number for unique key violations.
const mysqlDuplicateEntry = 1062

// Open creates the shared connection pool and verifies it with a ping.
// The pool is the only handle to the database; stores receive it (or a
// transaction) explicitly.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	// 1. Open a new connection pool.
	dbx, err := sqlx.Open("mysql", normalizeDSN(cfg.DSN))
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}

	// 2. Configure the connection pool settings.
	dbx.SetMaxOpenConns(cfg.MaxOpenConns)
	dbx.SetMaxIdleConns(cfg.MaxIdleConns)
	dbx.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// 3. Ping the database to verify the connection.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := dbx.PingContext(pingCtx); err != nil {
		_ = dbx.Close()
		return nil, errors.Wrap(err, "ping mysql")
	}
	return dbx, nil
}

// normalizeDSN makes DATETIME columns scan into time.Time and makes
// RowsAffected count matched rows, so an UPDATE that writes identical
// values is not mistaken for a missing row.
func normalizeDSN(dsn string) string {
	c, err := mysql.ParseDSN(dsn)
	if err != nil {
		return dsn
	}
	c.ParseTime = true
	c.ClientFoundRows = true
	return c.FormatDSN()
}

// Migrate applies the embedded schema one statement at a time, since the
// driver rejects multi-statement Exec without multiStatements=true.
func Migrate(ctx context.Context, dbx *sqlx.DB) error {
	for i, stmt := range Statements(db.Schema) {
		if _, err := dbx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "schema statement %d", i+1)
		}
	}
	return nil
}

// Statements splits a SQL script on ';' terminators and drops empty parts.
func Statements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// WithTx runs fn inside a transaction. The transaction is rolled back when
// fn returns an error or panics, and committed otherwise.
func WithTx(ctx context.Context, dbx *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := dbx.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit tx")
	}
	return nil
}

// IsDuplicateKey reports whether err is a MySQL unique key violation.
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
