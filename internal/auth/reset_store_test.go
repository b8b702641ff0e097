package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryResetTokenStore(t *testing.T) {
	store := NewMemoryResetTokenStore()

	require.NoError(t, store.Put("a@example.com", "tok-1", time.Now().Add(time.Hour)))

	email, ok, err := store.Consume("tok-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a@example.com", email)

	// Consumed means gone.
	_, ok, err = store.Consume("tok-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryResetTokenStoreExpiry(t *testing.T) {
	store := NewMemoryResetTokenStore()

	require.NoError(t, store.Put("a@example.com", "tok-old", time.Now().Add(-time.Minute)))

	_, ok, err := store.Consume("tok-old")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryResetTokenStoreUnknownToken(t *testing.T) {
	store := NewMemoryResetTokenStore()

	_, ok, err := store.Consume("never-issued")
	require.NoError(t, err)
	assert.False(t, ok)
}
