package auth

import (
	"errors"

	"github.com/iudanet/memochat/internal/backend"
)

// FriendlyMessage переводит ошибку авторизации в понятное пользователю
// сообщение. Нераспознанные ошибки проходят как есть: исходный текст
// сервера полезнее общих формулировок.
func FriendlyMessage(err error) string {
	switch {
	case errors.Is(err, backend.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, backend.ErrUserExists):
		return "This email is already registered, try logging in"
	case errors.Is(err, backend.ErrNoSession):
		return "Not logged in"
	default:
		return err.Error()
	}
}
