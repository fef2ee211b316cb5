package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowvault/flowvault/pkg/userstore"
)

func TestLoadUsers(t *testing.T) {
	t.Parallel()

	t.Run("seeds the store", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "users.json")
		require.NoError(t, os.WriteFile(path, []byte(`[
			{"id": "u1", "email": "u1@example.com", "role": "member",
			 "webhook_endpoints": [{"url": "https://example.com/hook", "secret": "s", "event_kinds": ["overage_alert"]}]},
			{"id": "u2", "email": "u2@example.com", "role": "admin"}
		]`), 0644))

		store := userstore.NewMemory()
		n, err := loadUsers(path, store)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		user, err := store.GetUser(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1@example.com", user.Email)
		require.Len(t, user.WebhookEndpoints, 1)
		assert.True(t, user.WebhookEndpoints[0].Subscribed("overage_alert"))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := loadUsers(filepath.Join(t.TempDir(), "nope.json"), userstore.NewMemory())
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "users.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0644))

		_, err := loadUsers(path, userstore.NewMemory())
		assert.Error(t, err)
	})
}
