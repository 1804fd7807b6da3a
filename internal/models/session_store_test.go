package models

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore(t.TempDir(), time.Hour)
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	saved, err := store.Save(User{ID: 5, Name: "Иван", Phone: "79991234567", Role: RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), saved.ExpiresAt)

	info, err := os.Stat(store.SessionFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.User.ID)
	assert.Equal(t, RoleCustomer, loaded.User.Role)

	now = now.Add(2 * time.Hour)
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrSessionExpired)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
