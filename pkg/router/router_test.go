package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowvault/flowvault/pkg/registry"
	"github.com/flowvault/flowvault/pkg/router"
)

type nopEmitter struct{}

func (nopEmitter) Emit(any) error { return nil }

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New()
	for _, c := range []struct{ id, user, role string }{
		{"c1", "u1", registry.RoleUser},
		{"c2", "u1", registry.RoleUser},
		{"c3", "u2", registry.RoleUser},
		{"c4", "a1", registry.RoleAdmin},
	} {
		_, err := reg.Register(c.id, c.user, c.role, nopEmitter{})
		require.NoError(t, err)
	}
	return reg
}

func connIDs(conns []*registry.Connection) []string {
	ids := make([]string, len(conns))
	for i, c := range conns {
		ids[i] = c.ID
	}
	return ids
}

func TestRouter_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("by user returns all of the user's connections", func(t *testing.T) {
		t.Parallel()

		r := router.New(newTestRegistry(t))
		conns, err := r.Resolve(router.Target{UserID: "u1"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"c1", "c2"}, connIDs(conns))
	})

	t.Run("by room", func(t *testing.T) {
		t.Parallel()

		r := router.New(newTestRegistry(t))
		conns, err := r.Resolve(router.Target{Room: registry.RoomAdmin})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"c4"}, connIDs(conns))
	})

	t.Run("empty target broadcasts to everyone", func(t *testing.T) {
		t.Parallel()

		r := router.New(newTestRegistry(t))
		conns, err := r.Resolve(router.Target{})
		require.NoError(t, err)
		assert.Len(t, conns, 4)
	})

	t.Run("both user and room set is ambiguous", func(t *testing.T) {
		t.Parallel()

		r := router.New(newTestRegistry(t))
		_, err := r.Resolve(router.Target{UserID: "u1", Room: "admin"})
		assert.ErrorIs(t, err, router.ErrAmbiguousAddressing)
	})

	t.Run("no matches is an empty result, not an error", func(t *testing.T) {
		t.Parallel()

		r := router.New(newTestRegistry(t))

		conns, err := r.Resolve(router.Target{UserID: "ghost"})
		require.NoError(t, err)
		assert.Empty(t, conns)

		conns, err = r.Resolve(router.Target{Room: "empty-room"})
		require.NoError(t, err)
		assert.Empty(t, conns)
	})
}

type duplicatingSource struct {
	conns []*registry.Connection
}

func (s duplicatingSource) FindByUser(string) []*registry.Connection { return s.conns }
func (s duplicatingSource) FindByRoom(string) []*registry.Connection { return s.conns }
func (s duplicatingSource) All() []*registry.Connection              { return s.conns }

func TestRouter_Dedupe(t *testing.T) {
	t.Parallel()

	a := &registry.Connection{ID: "a"}
	b := &registry.Connection{ID: "b"}
	src := duplicatingSource{conns: []*registry.Connection{a, b, a, b, a}}

	r := router.New(src)
	conns, err := r.Resolve(router.Target{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, connIDs(conns))

	// The source's slice is shared across calls and must survive intact.
	assert.Equal(t, []string{"a", "b", "a", "b", "a"}, connIDs(src.conns))
	conns2, err := r.Resolve(router.Target{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, connIDs(conns2))
}

func TestTarget_Broadcast(t *testing.T) {
	t.Parallel()

	assert.True(t, router.Target{}.Broadcast())
	assert.False(t, router.Target{UserID: "u"}.Broadcast())
	assert.False(t, router.Target{Room: "r"}.Broadcast())
}
