package websocket

//go:generate go run go.uber.org/mock/mockgen -source=./hub.go -destination=./mocks/hub_mock.go -package=mocks

import (
	"careops/config"
	"careops/infras/otel"
	"careops/shared/constant"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeTimeout = 5 * time.Second
	readLimit    = 64 << 10

	EventNewMessage = "new_message"
)

// Event is the envelope pushed to connected clients by the server.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Broadcaster pushes server side events to every connected client.
type Broadcaster interface {
	Broadcast(ctx context.Context, event Event) error
}

type client struct {
	conn *websocket.Conn
}

// Hub relays every frame received from one client to all other clients and
// fans out server events to everyone.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	origins []string
	otel    otel.Otel
}

func NewHub(cfg *config.Config, otel otel.Otel) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		origins: cfg.App.CORS.AllowedOrigins,
		otel:    otel,
	}
}

// ServeHTTP upgrades the request and keeps reading until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to accept websocket connection")

		return
	}

	conn.SetReadLimit(readLimit)

	c := &client{conn: conn}
	h.register(c)

	log.Info().Int("clients", h.Len()).Msg("WebSocket client connected")

	defer func() {
		h.unregister(c)
		conn.Close(websocket.StatusNormalClosure, "")

		log.Info().Int("clients", h.Len()).Msg("WebSocket client disconnected")
	}()

	ctx := r.Context()

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if status := websocket.CloseStatus(err); status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				log.Debug().Err(err).Msg("websocket read ended")
			}

			return
		}

		h.relay(ctx, c, typ, data)
	}
}

// Broadcast implements Broadcaster.
func (h *Hub) Broadcast(ctx context.Context, event Event) (err error) {
	ctx, scope := h.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Broadcast")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode websocket event: %w", err)
	}

	scope.SetAttribute("event.type", event.Type)

	h.relay(ctx, nil, websocket.MessageText, payload)

	return nil
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, c)
}

func (h *Hub) snapshot(except *client) []*client {
	h.mu.Lock()
	defer h.mu.Unlock()

	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		if c != except {
			targets = append(targets, c)
		}
	}

	return targets
}

// relay writes data to every client except the sender. A client that cannot
// take the write within writeTimeout is disconnected.
func (h *Hub) relay(ctx context.Context, from *client, typ websocket.MessageType, data []byte) {
	var wg sync.WaitGroup

	for _, target := range h.snapshot(from) {
		wg.Add(1)

		go func(c *client) {
			defer wg.Done()

			writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
			defer cancel()

			if err := c.conn.Write(writeCtx, typ, data); err != nil {
				if !errors.Is(err, context.Canceled) {
					log.Warn().Err(err).Msg("dropping slow websocket client")
				}

				h.unregister(c)
				c.conn.Close(websocket.StatusPolicyViolation, "write timeout")
			}
		}(target)
	}

	wg.Wait()
}
