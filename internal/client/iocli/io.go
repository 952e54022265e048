// Package iocli абстрагирует терминальный ввод-вывод клиента.
package iocli

//go:generate moq -out io_mock.go . IO

// IO - терминальный ввод-вывод команд клиента
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)

	// ReadInput читает строку ввода после приглашения.
	// Буфер ввода общий между вызовами: чат читает строки подряд.
	ReadInput(prompt string) (string, error)

	// ReadPassword читает пароль без эха
	ReadPassword(prompt string) (string, error)
}
