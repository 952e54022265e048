package localdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/memochat/internal/backend"
)

// SignUp регистрирует локального пользователя и открывает сессию
func (s *Store) SignUp(ctx context.Context, email, password string) (*backend.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.New().String()
	query := `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query, userID, email, string(hash), time.Now().UTC())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return nil, backend.ErrUserExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	s.logger.Info("local user registered", "email", email)

	return localSession(userID, email), nil
}

// SignIn выполняет вход по email и паролю
func (s *Store) SignIn(ctx context.Context, email, password string) (*backend.Session, error) {
	query := `SELECT id, password_hash FROM users WHERE email = ?`

	var userID, hash string
	err := s.db.QueryRowContext(ctx, query, email).Scan(&userID, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, backend.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, backend.ErrInvalidCredentials
	}

	return localSession(userID, email), nil
}

// SignOut завершает локальную сессию. Отзывать на сервере нечего,
// достаточно проверки, что сессия была.
func (s *Store) SignOut(ctx context.Context, session *backend.Session) error {
	if session == nil {
		return backend.ErrNoSession
	}
	return nil
}

// Refresh для локальных сессий не поддерживается: они бессрочные
// (нулевой ExpiresAt) и обновления не требуют
func (s *Store) Refresh(ctx context.Context, refreshToken string) (*backend.Session, error) {
	return nil, fmt.Errorf("local sessions do not expire and cannot be refreshed")
}

// localSession собирает бессрочную сессию локального backend-а.
// Токен опаковый: авторизация в пределах процесса не нужна, но формат
// сессии совпадает с hosted backend-ом.
func localSession(userID, email string) *backend.Session {
	return &backend.Session{
		UserID:      userID,
		Email:       email,
		AccessToken: "local-" + uuid.New().String(),
	}
}
