package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/memochat/internal/models"
)

func TestNewCursor_DefaultPageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, NewCursor(0).PageSize())
	assert.Equal(t, DefaultPageSize, NewCursor(-5).PageSize())
	assert.Equal(t, 10, NewCursor(10).PageSize())
}

func TestCursor_Preconditions(t *testing.T) {
	c := NewCursor(50)

	// Пустой список: нет граничной записи для курсора
	assert.False(t, c.Begin(0))

	// Непустой список: загрузка начинается
	require.True(t, c.Begin(10))
	assert.True(t, c.Loading())

	// Повторный вызов во время полёта игнорируется
	assert.False(t, c.Begin(10))
}

func TestCursor_ShortPageExhausts(t *testing.T) {
	c := NewCursor(50)

	require.True(t, c.Begin(10))
	c.Finish(50)
	assert.False(t, c.Exhausted())

	require.True(t, c.Begin(60))
	c.Finish(49)
	assert.True(t, c.Exhausted())

	// После исчерпания loadMore отключён до Reset
	assert.False(t, c.Begin(109))

	c.Reset()
	assert.True(t, c.Begin(109))
}

func TestCursor_AbortKeepsAvailability(t *testing.T) {
	c := NewCursor(50)

	require.True(t, c.Begin(10))
	c.Abort()

	assert.False(t, c.Loading())
	assert.False(t, c.Exhausted())
	assert.True(t, c.Begin(10))
}

func TestAscending_ReversesDescendingPage(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	// Страница от backend: по убыванию created_at
	page := []models.Memo{
		{ID: "r3", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "r2", CreatedAt: base.Add(time.Minute)},
		{ID: "r1", CreatedAt: base},
	}

	asc := Ascending(page)
	require.Len(t, asc, 3)
	assert.Equal(t, "r1", asc[0].ID)
	assert.Equal(t, "r2", asc[1].ID)
	assert.Equal(t, "r3", asc[2].ID)

	// Исходная страница не модифицируется
	assert.Equal(t, "r3", page[0].ID)
}

func TestAscending_Empty(t *testing.T) {
	assert.Empty(t, Ascending(nil))
}
