package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTempID(t *testing.T) {
	id1 := NewTempID()
	id2 := NewTempID()

	assert.True(t, len(id1) > len(TempIDPrefix))
	assert.Contains(t, id1, TempIDPrefix)
	// Каждый вызов должен давать уникальный id
	assert.NotEqual(t, id1, id2)
}

func TestMemo_IsPending(t *testing.T) {
	pending := Memo{ID: NewTempID(), Content: "draft", CreatedAt: time.Now()}
	confirmed := Memo{ID: "3f1a2b1c-0000-4000-8000-000000000001", Content: "saved", CreatedAt: time.Now()}

	require.True(t, pending.IsPending())
	require.False(t, confirmed.IsPending())
}
