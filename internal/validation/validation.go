package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// EmailPattern определяет минимально допустимый формат email.
// Полная валидация выполняется на стороне auth-сервиса; здесь отсекаются
// только очевидно некорректные значения до сетевого вызова.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	// MinPasswordLen минимальная длина пароля (требование auth-сервиса)
	MinPasswordLen = 6
	// MaxContentLen максимальная длина одной заметки
	MaxContentLen = 10000
)

// ValidateEmail проверяет, что email похож на корректный адрес
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address: %s", email)
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
// Минимум 6 символов
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	return nil
}

// ValidateContent проверяет текст заметки: непустой после trim и не длиннее
// MaxContentLen
func ValidateContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("memo content cannot be empty")
	}

	if len(trimmed) > MaxContentLen {
		return fmt.Errorf("memo content must not exceed %d characters", MaxContentLen)
	}

	return nil
}
