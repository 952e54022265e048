package backend

import (
	"context"
	"errors"
	"time"

	"github.com/iudanet/memochat/internal/models"
)

//go:generate moq -out backend_mock.go . Backend
//go:generate moq -out subscription_mock.go . Subscription

// Общие ошибки backend-способностей
var (
	// ErrNoSession указывает, что операция требует активной сессии
	ErrNoSession = errors.New("no active session")

	// ErrInvalidCredentials указывает на неверные email или пароль
	ErrInvalidCredentials = errors.New("invalid login credentials")

	// ErrUserExists указывает, что пользователь уже зарегистрирован
	ErrUserExists = errors.New("user already registered")
)

// Session представляет активную сессию пользователя.
type Session struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired сообщает, истёк ли срок действия access token.
// Нулевой ExpiresAt трактуется как бессрочная сессия (локальный backend).
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// ListOptions - параметры запроса списка записей.
type ListOptions struct {
	// Before - эксклюзивная верхняя граница created_at (строго "<").
	// Используется курсором догрузки истории.
	Before *time.Time

	// From/To - инклюзивный диапазон created_at для архивного экспорта.
	From *time.Time
	To   *time.Time

	// Limit ограничивает размер страницы; 0 - без ограничения.
	Limit int

	// Ascending задаёт порядок сортировки по created_at.
	// По умолчанию false: от новых к старым (порядок страниц догрузки).
	Ascending bool
}

// SessionCapability - способность управления сессией.
type SessionCapability interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, session *Session) error
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
}

// QueryCapability - способность чтения записей текущего владельца.
type QueryCapability interface {
	ListMemos(ctx context.Context, session *Session, opts ListOptions) ([]models.Memo, error)
}

// WriteCapability - способность вставки записи.
// id и created_at назначает сервер.
type WriteCapability interface {
	InsertMemo(ctx context.Context, session *Session, content string) (models.Memo, error)
}

// Subscription - активная подписка на push-уведомления о вставках.
type Subscription interface {
	// Inserts возвращает канал вставленных строк. Доставка at-least-once:
	// возможны дубликаты и приход раньше/позже ответа прямой записи.
	// Канал закрывается при Close или потере транспорта.
	Inserts() <-chan models.Memo

	// Close останавливает подписку и закрывает канал.
	Close() error
}

// PushCapability - способность подписки на вставки текущего владельца.
type PushCapability interface {
	Subscribe(ctx context.Context, session *Session) (Subscription, error)
}

// Backend объединяет четыре абстрактные способности удалённого хранилища.
// Любая реализация с этими контрактами взаимозаменяема: hosted REST backend,
// локальная sqlite-база демо-режима, мок в тестах.
type Backend interface {
	SessionCapability
	QueryCapability
	WriteCapability
	PushCapability
}
