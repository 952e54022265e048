// Package storage определяет клиентское хранилище сессии.
// Это нижний слой: работает с данными как есть и ничего не знает о
// backend-е, которому принадлежит сессия.
package storage

import (
	"context"

	"github.com/iudanet/memochat/internal/backend"
)

//go:generate moq -out session_mock.go . SessionStorage

// SessionStorage defines interface for storing the active session on client
type SessionStorage interface {
	// SaveSession stores the session, replacing the previous one
	SaveSession(ctx context.Context, session *backend.Session) error

	// GetSession retrieves the stored session
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) (*backend.Session, error)

	// DeleteSession removes the stored session (logout)
	DeleteSession(ctx context.Context) error
}
