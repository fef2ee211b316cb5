package registry_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowvault/flowvault/pkg/registry"
)

type nopEmitter struct{}

func (nopEmitter) Emit(any) error { return nil }

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("computes base rooms for a user", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		conn, err := reg.Register("c1", "u1", registry.RoleUser, nopEmitter{})
		require.NoError(t, err)
		require.NotNil(t, conn)

		rooms, ok := reg.Rooms("c1")
		require.True(t, ok)
		assert.ElementsMatch(t, []string{"user:u1", "role:user"}, rooms)
	})

	t.Run("admin joins the admin room", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		_, err := reg.Register("c1", "a1", registry.RoleAdmin, nopEmitter{})
		require.NoError(t, err)

		rooms, ok := reg.Rooms("c1")
		require.True(t, ok)
		assert.ElementsMatch(t, []string{"user:a1", "role:admin", "admin"}, rooms)
	})

	t.Run("duplicate connection id fails", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		_, err := reg.Register("c1", "u1", registry.RoleUser, nopEmitter{})
		require.NoError(t, err)

		_, err = reg.Register("c1", "u2", registry.RoleUser, nopEmitter{})
		assert.ErrorIs(t, err, registry.ErrDuplicateConnection)
		assert.Equal(t, 1, reg.Count())
	})

	t.Run("one user may hold several connections", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		_, err := reg.Register("c1", "u1", registry.RoleUser, nopEmitter{})
		require.NoError(t, err)
		_, err = reg.Register("c2", "u1", registry.RoleUser, nopEmitter{})
		require.NoError(t, err)

		assert.Len(t, reg.FindByUser("u1"), 2)
	})
}

func TestRegistry_Unregister(t *testing.T) {
	t.Parallel()

	t.Run("removes connection and room memberships", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		_, err := reg.Register("c1", "u1", registry.RoleUser, nopEmitter{})
		require.NoError(t, err)

		reg.Unregister("c1")

		assert.Zero(t, reg.Count())
		assert.Empty(t, reg.FindByUser("u1"))
		_, ok := reg.Rooms("c1")
		assert.False(t, ok)
	})

	t.Run("idempotent for unknown ids", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		reg.Unregister("never-registered")
		reg.Unregister("never-registered")
		assert.Zero(t, reg.Count())
	})

	t.Run("leaves sibling connections untouched", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		_, err := reg.Register("c1", "u1", registry.RoleUser, nopEmitter{})
		require.NoError(t, err)
		_, err = reg.Register("c2", "u1", registry.RoleUser, nopEmitter{})
		require.NoError(t, err)

		reg.Unregister("c1")

		conns := reg.FindByUser("u1")
		require.Len(t, conns, 1)
		assert.Equal(t, "c2", conns[0].ID)
	})
}

func TestRegistry_Rooms(t *testing.T) {
	t.Parallel()

	t.Run("join and leave a custom room", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		_, err := reg.Register("c1", "u1", registry.RoleUser, nopEmitter{})
		require.NoError(t, err)

		require.NoError(t, reg.JoinRoom("c1", "workflow:w1"))
		assert.Len(t, reg.FindByRoom("workflow:w1"), 1)

		require.NoError(t, reg.LeaveRoom("c1", "workflow:w1"))
		assert.Empty(t, reg.FindByRoom("workflow:w1"))
	})

	t.Run("joining twice is a no-op", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		_, err := reg.Register("c1", "u1", registry.RoleUser, nopEmitter{})
		require.NoError(t, err)

		require.NoError(t, reg.JoinRoom("c1", "workflow:w1"))
		require.NoError(t, reg.JoinRoom("c1", "workflow:w1"))
		assert.Len(t, reg.FindByRoom("workflow:w1"), 1)
	})

	t.Run("base rooms cannot be left", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		_, err := reg.Register("c1", "a1", registry.RoleAdmin, nopEmitter{})
		require.NoError(t, err)

		require.NoError(t, reg.LeaveRoom("c1", "user:a1"))
		require.NoError(t, reg.LeaveRoom("c1", "role:admin"))
		require.NoError(t, reg.LeaveRoom("c1", registry.RoomAdmin))

		rooms, ok := reg.Rooms("c1")
		require.True(t, ok)
		assert.Len(t, rooms, 3)
	})

	t.Run("identity rooms cannot be joined", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		_, err := reg.Register("c1", "u1", registry.RoleUser, nopEmitter{})
		require.NoError(t, err)

		assert.ErrorIs(t, reg.JoinRoom("c1", registry.RoomAdmin), registry.ErrReservedRoom)
		assert.ErrorIs(t, reg.JoinRoom("c1", "user:victim"), registry.ErrReservedRoom)
		assert.ErrorIs(t, reg.JoinRoom("c1", "role:admin"), registry.ErrReservedRoom)

		assert.Empty(t, reg.FindByRoom(registry.RoomAdmin))
		assert.Empty(t, reg.FindByUser("victim"))
	})

	t.Run("own identity rooms stay joined", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		_, err := reg.Register("c1", "u1", registry.RoleUser, nopEmitter{})
		require.NoError(t, err)

		// Membership was granted at registration; re-joining is a no-op,
		// not a reserved-room violation.
		require.NoError(t, reg.JoinRoom("c1", "user:u1"))
		require.NoError(t, reg.JoinRoom("c1", "role:user"))
		assert.Len(t, reg.FindByUser("u1"), 1)
	})

	t.Run("unknown connection errors", func(t *testing.T) {
		t.Parallel()

		reg := registry.New()
		assert.ErrorIs(t, reg.JoinRoom("nope", "r"), registry.ErrConnectionNotFound)
		assert.ErrorIs(t, reg.LeaveRoom("nope", "r"), registry.ErrConnectionNotFound)
	})
}

func TestRegistry_Counts(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	for i := range 3 {
		_, err := reg.Register(fmt.Sprintf("u-conn-%d", i), fmt.Sprintf("u%d", i), registry.RoleUser, nopEmitter{})
		require.NoError(t, err)
	}
	_, err := reg.Register("a-conn", "a1", registry.RoleAdmin, nopEmitter{})
	require.NoError(t, err)

	assert.Equal(t, 4, reg.Count())
	assert.Equal(t, 3, reg.CountByRole(registry.RoleUser))
	assert.Equal(t, 1, reg.CountByRole(registry.RoleAdmin))
	assert.Len(t, reg.All(), 4)
}

// Concurrent register/unregister/find cycles must leave the registry
// consistent: no torn state, no leaked room entries.
func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	reg := registry.New()

	const workers = 16
	const cycles = 200

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range cycles {
				connID := fmt.Sprintf("conn-%d-%d", w, i)
				userID := fmt.Sprintf("user-%d", w%4)

				_, err := reg.Register(connID, userID, registry.RoleUser, nopEmitter{})
				assert.NoError(t, err)

				_ = reg.JoinRoom(connID, "shared")
				_ = reg.FindByUser(userID)
				_ = reg.FindByRoom("shared")
				_ = reg.Count()

				reg.Unregister(connID)
				reg.Unregister(connID)
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, reg.Count())
	assert.Empty(t, reg.FindByRoom("shared"))
	for w := range 4 {
		assert.Empty(t, reg.FindByUser(fmt.Sprintf("user-%d", w)))
	}
}
