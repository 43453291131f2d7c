// Package sqldb opens bun-backed SQL databases for the account and message
// repositories.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"
)

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// Open connects to driver (sqlite, postgres or mysql) at dsn.
func Open(driver, dsn string) (*bun.DB, error) {
	switch driver {
	case "sqlite":
		sqldb, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, err
		}
		// sqlite serializes writers; one connection also keeps :memory: databases alive
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case "postgres":
		sqldb, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, err
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	case "mysql":
		found, err := mysqlDSN(dsn)
		if err != nil {
			return nil, err
		}
		sqldb, err := sql.Open("mysql", found)
		if err != nil {
			return nil, err
		}
		return bun.NewDB(sqldb, mysqldialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
}

// mysqlDSN makes the driver report matched rather than changed rows, so
// an update that leaves a row as it was is still seen as found.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

// CreateTables creates a table for each bun model that does not exist yet.
func CreateTables(ctx context.Context, db bun.IDB, models ...interface{}) error {
	for _, m := range models {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// MapError maps driver-specific unique violations to ErrDuplicate. The
// match is string based so callers need not import the drivers.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	le := strings.ToLower(err.Error())
	// mysql 1062, postgres 23505, sqlite "UNIQUE constraint failed"
	if strings.Contains(le, "duplicate") || strings.Contains(le, "unique") ||
		strings.Contains(le, "23505") || strings.Contains(le, "1062") {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// RowsAffected reports the number of rows res touched, treating drivers
// that cannot report it as zero.
func RowsAffected(res sql.Result) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
