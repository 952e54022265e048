// Package api содержит wire-типы hosted backend-а (auth и REST-запросы строк).
package api

import "time"

// CredentialsRequest представляет запрос регистрации или входа по паролю
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest представляет запрос обновления access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// User представляет пользователя в ответе auth-сервиса
type User struct {
	ID    string `json:"id"`    // UUID пользователя
	Email string `json:"email"` // email
}

// TokenResponse представляет ответ с токенами доступа
type TokenResponse struct {
	AccessToken  string `json:"access_token"`  // JWT access token
	TokenType    string `json:"token_type"`    // bearer
	ExpiresIn    int64  `json:"expires_in"`    // время жизни access token в секундах
	RefreshToken string `json:"refresh_token"` // refresh token
	User         User   `json:"user"`          // владелец сессии
}

// ErrorResponse представляет ответ с ошибкой.
// Разные сервисы backend-а используют разные поля, поэтому перечислены все.
type ErrorResponse struct {
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
	Msg              string `json:"msg,omitempty"`
	Message          string `json:"message,omitempty"`
}

// Cause возвращает первое непустое человекочитаемое описание ошибки.
func (e *ErrorResponse) Cause() string {
	for _, s := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// MemoRow представляет строку таблицы memos в REST-ответах
type MemoRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// InsertMemoRequest представляет тело вставки новой строки.
// id и created_at назначаются сервером.
type InsertMemoRequest struct {
	Content string `json:"content"`
}
