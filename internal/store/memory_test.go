package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_CallerCannotMutateStoredRecord(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	rec := testRecord("abc")

	_, _, err := m.Create(ctx, rec)
	require.NoError(t, err)

	rec.Properties.CharacterFrequencyMap["a"] = 99

	got, err := m.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Properties.CharacterFrequencyMap["a"])
}

func TestMemory_Close(t *testing.T) {
	assert.NoError(t, NewMemory().Close())
}
