package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TempIDPrefix - префикс локальных временных идентификаторов.
// Серверные id - это UUID без префикса, поэтому коллизии невозможны.
const TempIDPrefix = "temp_"

// Memo представляет одну сохранённую заметку (одно сообщение ленты).
type Memo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTempID генерирует уникальный временный id для optimistic append.
func NewTempID() string {
	return TempIDPrefix + uuid.New().String()
}

// IsPending сообщает, является ли запись локальной (ещё не подтверждённой сервером).
func (m *Memo) IsPending() bool {
	return strings.HasPrefix(m.ID, TempIDPrefix)
}
