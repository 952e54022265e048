package iocli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Проверяем что NewStdio возвращает валидный объект
func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

// Тесты для Println и Printf переадресуют в fmt.Println/Printf,
// здесь достаточно проверить, что вызовы не падают
func TestPrintlnAndPrintf(t *testing.T) {
	stdio := NewStdio()

	assert.NotPanics(t, func() {
		stdio.Println("hello", "world")
	})
	assert.NotPanics(t, func() {
		stdio.Printf("test %d %s\n", 1, "abc")
	})
}

// Тест ReadInput: читаем из pipe вместо os.Stdin.
// Две строки подряд проверяют, что буфер ввода переживает вызовы.
func TestReadInput(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		_, _ = w.Write([]byte("first line\nsecond line\n"))
		_ = w.Close()
	}()

	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()
	os.Stdin = r

	stdio := NewStdio()

	result, err := stdio.ReadInput("> ")
	assert.NoError(t, err)
	assert.Equal(t, "first line", result)

	result, err = stdio.ReadInput("")
	assert.NoError(t, err)
	assert.Equal(t, "second line", result)
}
