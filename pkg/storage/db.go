// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package storage persists the generated tables into a relational store.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	_ "modernc.org/sqlite"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the connection parameters of the relational store.
type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	// SQLitePath is a file path or ":memory:".
	SQLitePath string
	// MaxRetries bounds the connection attempts.
	MaxRetries uint64
}

// Validate checks that the parameters of the selected driver are present.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.Host == "" || c.User == "" || c.Name == "" {
			return fmt.Errorf("postgres requires DB_HOST, DB_USERNAME and DB_NAME")
		}
		if c.Port <= 0 || c.Port > 65535 {
			return fmt.Errorf("invalid DB_PORT: %d", c.Port)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite requires SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Driver)
	}
	return nil
}

// DSN returns the connection string of the selected driver.
func (c Config) DSN() string {
	if c.Driver == DriverSQLite {
		if c.SQLitePath == ":memory:" {
			return "file::memory:?_pragma=foreign_keys(1)"
		}
		return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", c.SQLitePath)
	}

	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// DB wraps the bun handle of the store.
type DB struct {
	bun    *bun.DB
	driver string
}

// Open connects to the store and pings it, retrying with exponential backoff.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var bunDB *bun.DB
	switch cfg.Driver {
	case DriverPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN())))
		bunDB = bun.NewDB(sqldb, pgdialect.New())
	case DriverSQLite:
		sqldb, err := sql.Open("sqlite", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		// single connection: one writer, and an in-memory database lives as long as its connection
		sqldb.SetMaxOpenConns(1)
		bunDB = bun.NewDB(sqldb, sqlitedialect.New())
	}

	retries := cfg.MaxRetries
	if retries == 0 {
		retries = 5
	}
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retries), ctx)
	err := backoff.Retry(
		func() error {
			if err := bunDB.PingContext(ctx); err != nil {
				logrus.Warnf("database connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		b,
	)
	if err != nil {
		bunDB.Close()
		return nil, fmt.Errorf("failed to connect to %s after retries: %w", cfg.Driver, err)
	}

	logrus.Infof("connected to %s database", cfg.Driver)
	return &DB{bun: bunDB, driver: cfg.Driver}, nil
}

// Bun returns the underlying bun handle.
func (db *DB) Bun() *bun.DB {
	return db.bun
}

// Driver returns the driver the store was opened with.
func (db *DB) Driver() string {
	return db.driver
}

// Ping checks that the store is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.bun.PingContext(ctx)
}

// Close releases the connection pool.
func (db *DB) Close() error {
	return db.bun.Close()
}
