package websocket_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careops/config"
	"careops/infras/otel/mocks"
	hub "careops/transport/websocket"
)

func dial(t *testing.T, ctx context.Context, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(url, "http"), nil)
	require.NoError(t, err)

	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "test done") })

	return conn
}

func newHub(t *testing.T) (*hub.Hub, *httptest.Server) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.CORS.AllowedOrigins = []string{"*"}

	h := hub.NewHub(cfg, mocks.NewOtel())
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	return h, server
}

func TestHub_RelaysToOtherClients(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	h, server := newHub(t)

	sender := dial(t, ctx, server.URL)
	receiver := dial(t, ctx, server.URL)

	require.Eventually(t, func() bool { return h.Len() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, sender.Write(ctx, websocket.MessageText, []byte("hello")))

	typ, data, err := receiver.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageText, typ)
	assert.Equal(t, "hello", string(data))

	readCtx, readCancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer readCancel()

	_, _, err = sender.Read(readCtx)
	assert.Error(t, err, "sender must not receive its own frame")
}

func TestHub_Broadcast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	h, server := newHub(t)

	first := dial(t, ctx, server.URL)
	second := dial(t, ctx, server.URL)

	require.Eventually(t, func() bool { return h.Len() == 2 }, time.Second, 10*time.Millisecond)

	err := h.Broadcast(ctx, hub.Event{Type: hub.EventNewMessage, Data: map[string]string{"content": "hi"}})
	require.NoError(t, err)

	for _, conn := range []*websocket.Conn{first, second} {
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)

		var event struct {
			Type string            `json:"type"`
			Data map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, hub.EventNewMessage, event.Type)
		assert.Equal(t, "hi", event.Data["content"])
	}
}

func TestHub_UnregistersOnClose(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	h, server := newHub(t)

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close(websocket.StatusNormalClosure, "bye")

	assert.Eventually(t, func() bool { return h.Len() == 0 }, time.Second, 10*time.Millisecond)
}
