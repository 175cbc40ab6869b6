package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// New opens a connection pool for a postgres://, mysql:// or mariadb:// URL.
func New(ctx context.Context, dsn string) (*sql.DB, error) {
	driver, connStr, err := driverFor(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func driverFor(dsn string) (string, string, error) {
	scheme, _, ok := strings.Cut(dsn, "://")
	if !ok {
		return "", "", fmt.Errorf("dsn must be a URL with a scheme")
	}

	switch scheme {
	case "postgres", "postgresql":
		return "pgx", dsn, nil
	case "mysql", "mariadb":
		connStr, err := toMySQLDSN(dsn)
		if err != nil {
			return "", "", err
		}

		return "mysql", connStr, nil
	}

	return "", "", fmt.Errorf("unsupported database scheme %q", scheme)
}

// toMySQLDSN converts a mysql:// or mariadb:// URL to the driver's native DSN.
// Timestamps are parsed into time.Time in UTC.
func toMySQLDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}

	name := strings.TrimPrefix(u.Path, "/")
	if u.User == nil || u.User.Username() == "" || u.Host == "" || name == "" {
		return "", fmt.Errorf("incomplete dsn: user, host and database are required")
	}

	cfg := mysql.NewConfig()
	cfg.User = u.User.Username()
	cfg.Passwd, _ = u.User.Password()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	return cfg.FormatDSN(), nil
}
