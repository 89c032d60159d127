package labelstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelStore_ReadLabels(t *testing.T) {
	ctx := context.Background()

	t.Run("returns empty slice when cache file missing", func(t *testing.T) {
		store := NewLabelStore(filepath.Join(t.TempDir(), "labels.json"))

		labels, err := store.ReadLabels(ctx)

		assert.NoError(t, err)
		assert.Empty(t, labels)
	})

	t.Run("round-trips a written label set", func(t *testing.T) {
		store := NewLabelStore(filepath.Join(t.TempDir(), "labels.json"))
		require.NoError(t, store.WriteLabels(ctx, []string{"bug", "enhancement", "question"}))

		labels, err := store.ReadLabels(ctx)

		assert.NoError(t, err)
		assert.Equal(t, []string{"bug", "enhancement", "question"}, labels)
	})
}

func TestLabelStore_WriteLabels(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites prior cache content", func(t *testing.T) {
		store := NewLabelStore(filepath.Join(t.TempDir(), "labels.json"))
		require.NoError(t, store.WriteLabels(ctx, []string{"old"}))
		require.NoError(t, store.WriteLabels(ctx, []string{"bug", "docs"}))

		labels, err := store.ReadLabels(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"bug", "docs"}, labels)
	})

	t.Run("persists as pretty-printed JSON array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "labels.json")
		store := NewLabelStore(path)
		require.NoError(t, store.WriteLabels(ctx, []string{"bug"}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[\n  \"bug\"\n]\n", string(data))
	})
}
