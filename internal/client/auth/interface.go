package auth

import (
	"context"

	"github.com/iudanet/memochat/internal/backend"
)

//go:generate moq -out service_mock.go . Service

// Service defines the main interface for session operations.
// Управляет и аутентификацией (register/login), и локальным хранением
// сессии между запусками.
type Service interface {
	// Register регистрирует нового пользователя и сохраняет сессию
	Register(ctx context.Context, email, password string) (*backend.Session, error)

	// Login выполняет вход и сохраняет сессию
	Login(ctx context.Context, email, password string) (*backend.Session, error)

	// Logout выполняет выход из системы.
	// Отзывает сессию на сервере (best effort) и всегда удаляет локальную.
	Logout(ctx context.Context) error

	// Current возвращает активную сессию, при необходимости обновляя
	// истёкший access token. Возвращает backend.ErrNoSession, если
	// сохранённой сессии нет.
	Current(ctx context.Context) (*backend.Session, error)

	// IsAuthenticated checks if a stored session exists
	IsAuthenticated(ctx context.Context) (bool, error)
}
