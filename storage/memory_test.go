package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get("missing")
	assert.False(t, ok)

	require.NoError(t, store.Set("k", "v1"))
	v, ok := store.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	require.NoError(t, store.Set("k", "v2"))
	v, _ = store.Get("k")
	assert.Equal(t, "v2", v, "last writer wins")

	require.NoError(t, store.Remove("k"))
	_, ok = store.Get("k")
	assert.False(t, ok)

	require.NoError(t, store.Remove("k"), "removing an absent key is not an error")
}
