// Package auth реализует сервис сессии: регистрация, вход, выход и
// восстановление сессии между запусками клиента.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/memochat/internal/backend"
	"github.com/iudanet/memochat/internal/client/storage"
	"github.com/iudanet/memochat/internal/validation"
)

// service предоставляет функции авторизации поверх backend-а и
// локального хранилища сессии
type service struct {
	backend backend.SessionCapability
	store   storage.SessionStorage
	logger  *slog.Logger
}

// NewService создает новый сервис авторизации
func NewService(b backend.SessionCapability, store storage.SessionStorage, logger *slog.Logger) Service {
	return &service{
		backend: b,
		store:   store,
		logger:  logger,
	}
}

// Register регистрирует нового пользователя и сохраняет сессию
func (s *service) Register(ctx context.Context, email, password string) (*backend.Session, error) {
	// Валидация входных данных до сетевого вызова
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	session, err := s.backend.SignUp(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "email", email)
	return session, nil
}

// Login выполняет вход и сохраняет сессию
func (s *service) Login(ctx context.Context, email, password string) (*backend.Session, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	session, err := s.backend.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "email", email)
	return session, nil
}

// Logout выполняет выход из системы.
// Сервер уведомляется best effort: локальная сессия удаляется всегда,
// даже если сервер недоступен.
func (s *service) Logout(ctx context.Context) error {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return backend.ErrNoSession
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	if signOutErr := s.backend.SignOut(ctx, session); signOutErr != nil {
		s.logger.Warn("failed to sign out on server", "error", signOutErr)
	}

	if err := s.store.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete local session: %w", err)
	}

	s.logger.Info("user logged out", "email", session.Email)
	return nil
}

// Current возвращает активную сессию, обновляя истёкший access token
func (s *service) Current(ctx context.Context) (*backend.Session, error) {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, backend.ErrNoSession
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if !s.expired(session) {
		return session, nil
	}

	if session.RefreshToken == "" {
		return nil, fmt.Errorf("session expired: %w", backend.ErrNoSession)
	}

	refreshed, err := s.backend.Refresh(ctx, session.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}

	if err := s.saveSession(ctx, refreshed); err != nil {
		return nil, err
	}

	s.logger.Debug("session refreshed", "email", refreshed.Email)
	return refreshed, nil
}

// IsAuthenticated checks if a stored session exists
func (s *service) IsAuthenticated(ctx context.Context) (bool, error) {
	_, err := s.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) saveSession(ctx context.Context, session *backend.Session) error {
	if err := s.store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// expired сообщает, пора ли обновлять access token.
// Если ExpiresAt не заполнен, срок берётся из exp-claim самого токена:
// старые версии базы хранили сессию без ExpiresAt.
func (s *service) expired(session *backend.Session) bool {
	if !session.ExpiresAt.IsZero() {
		// Минута запаса, чтобы токен не истёк посреди запроса
		return time.Now().Add(time.Minute).After(session.ExpiresAt)
	}

	expiresAt, ok := tokenExpiry(session.AccessToken)
	if !ok {
		// Непрозрачный токен без exp (локальный backend) бессрочен
		return false
	}
	return time.Now().Add(time.Minute).After(expiresAt)
}

// tokenExpiry извлекает exp-claim из JWT без проверки подписи.
// Подпись проверяет сервер; клиенту нужен только срок действия.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
