package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingMigrations(t *testing.T) {
	t.Parallel()

	t.Run("fresh database gets every migration", func(t *testing.T) {
		t.Parallel()

		pending, err := pendingMigrations(map[string]struct{}{})
		require.NoError(t, err)
		require.NotEmpty(t, pending)
		assert.Contains(t, pending, "001_init.sql")
		assert.IsIncreasing(t, pending)
	})

	t.Run("applied migrations are skipped", func(t *testing.T) {
		t.Parallel()

		all, err := pendingMigrations(map[string]struct{}{})
		require.NoError(t, err)

		applied := map[string]struct{}{}
		for _, v := range all {
			applied[v] = struct{}{}
		}

		pending, err := pendingMigrations(applied)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})
}
