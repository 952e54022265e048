// Package localdb реализует backend-способности поверх локальной
// sqlite-базы. Используется в демо-режиме, когда адрес hosted backend-а не
// настроен: все четыре способности работают без сети, push-уведомления
// доставляются внутри процесса.
package localdb

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/iudanet/memochat/internal/backend"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Store represents the local SQLite backend
type Store struct {
	db     *sql.DB
	logger *slog.Logger

	// подписчики push-уведомлений текущего процесса
	subMu   sync.Mutex
	subs    map[int]*localSubscription
	nextSub int
}

// Compile-time check that Store implements backend.Backend
var _ backend.Backend = (*Store)(nil)

// New creates a new local backend instance
// dbPath is the path to the SQLite database file
// Use ":memory:" for in-memory database (useful for testing)
func New(ctx context.Context, dbPath string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite с WAL mode может поддерживать несколько читателей, но только одного писателя
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &Store{
		db:     db,
		logger: logger,
		subs:   make(map[int]*localSubscription),
	}

	if err := store.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection and all active subscriptions
func (s *Store) Close() error {
	s.subMu.Lock()
	for _, sub := range s.subs {
		sub.stop()
	}
	s.subs = make(map[int]*localSubscription)
	s.subMu.Unlock()

	return s.db.Close()
}

// runMigrations выполняет миграции из embedded FS
func (s *Store) runMigrations() error {
	goose.SetDialect("sqlite3")
	goose.SetBaseFS(embedMigrations)

	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

// DB returns the underlying database connection for testing purposes
func (s *Store) DB() *sql.DB {
	return s.db
}
