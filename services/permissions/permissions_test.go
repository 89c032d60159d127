package permissions

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionsService(t *testing.T) {
	ctx := context.Background()

	t.Run("guild is locked by default", func(t *testing.T) {
		service := NewPermissionsService(filepath.Join(t.TempDir(), "unlocked.json"))

		unlocked, err := service.IsUnlocked(ctx, "guild-1")

		assert.NoError(t, err)
		assert.False(t, unlocked)
	})

	t.Run("unlock makes guild pass the check", func(t *testing.T) {
		service := NewPermissionsService(filepath.Join(t.TempDir(), "unlocked.json"))
		require.NoError(t, service.Unlock(ctx, "guild-1"))

		unlocked, err := service.IsUnlocked(ctx, "guild-1")

		assert.NoError(t, err)
		assert.True(t, unlocked)
	})

	t.Run("unlock is idempotent", func(t *testing.T) {
		service := NewPermissionsService(filepath.Join(t.TempDir(), "unlocked.json"))
		require.NoError(t, service.Unlock(ctx, "guild-1"))
		require.NoError(t, service.Unlock(ctx, "guild-1"))

		unlocked, err := service.IsUnlocked(ctx, "guild-1")
		assert.NoError(t, err)
		assert.True(t, unlocked)
	})

	t.Run("unlock persists across service instances", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "unlocked.json")
		require.NoError(t, NewPermissionsService(path).Unlock(ctx, "guild-1"))

		unlocked, err := NewPermissionsService(path).IsUnlocked(ctx, "guild-1")
		assert.NoError(t, err)
		assert.True(t, unlocked)
	})

	t.Run("unlocking one guild does not unlock another", func(t *testing.T) {
		service := NewPermissionsService(filepath.Join(t.TempDir(), "unlocked.json"))
		require.NoError(t, service.Unlock(ctx, "guild-1"))

		unlocked, err := service.IsUnlocked(ctx, "guild-2")
		assert.NoError(t, err)
		assert.False(t, unlocked)
	})
}
