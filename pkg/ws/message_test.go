package ws_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowvault/flowvault/pkg/ws"
)

func TestParseClientMessage(t *testing.T) {
	t.Parallel()

	t.Run("subscribe", func(t *testing.T) {
		t.Parallel()

		msg, err := ws.ParseClientMessage([]byte(`{"type":"subscribe","room":"billing"}`))
		require.NoError(t, err)
		assert.Equal(t, ws.TypeSubscribe, msg.Type)
		assert.Equal(t, "billing", msg.Room)
	})

	t.Run("unsubscribe", func(t *testing.T) {
		t.Parallel()

		msg, err := ws.ParseClientMessage([]byte(`{"type":"unsubscribe","room":"billing"}`))
		require.NoError(t, err)
		assert.Equal(t, ws.TypeUnsubscribe, msg.Type)
	})

	t.Run("ping needs no room", func(t *testing.T) {
		t.Parallel()

		msg, err := ws.ParseClientMessage([]byte(`{"type":"ping"}`))
		require.NoError(t, err)
		assert.Equal(t, ws.TypePing, msg.Type)
	})

	t.Run("subscribe without room", func(t *testing.T) {
		t.Parallel()

		_, err := ws.ParseClientMessage([]byte(`{"type":"subscribe"}`))
		assert.Error(t, err)
	})

	t.Run("blank room", func(t *testing.T) {
		t.Parallel()

		_, err := ws.ParseClientMessage([]byte(`{"type":"subscribe","room":"  "}`))
		assert.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := ws.ParseClientMessage([]byte(`{"type":"shout","room":"billing"}`))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		_, err := ws.ParseClientMessage([]byte(`{"type":`))
		assert.Error(t, err)
	})
}
