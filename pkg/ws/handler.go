package ws

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/flowvault/flowvault/pkg/logger"
	"github.com/flowvault/flowvault/pkg/registry"
)

// Handler upgrades HTTP requests to websocket connections, authenticates
// them, and keeps the connection registry in sync with socket lifecycle.
type Handler struct {
	registry *registry.Registry
	verifier TokenVerifier
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the handler's logger.
func WithLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithCheckOrigin overrides the upgrader's origin check. The default
// accepts any origin; production deployments should pin it.
func WithCheckOrigin(check func(*http.Request) bool) HandlerOption {
	return func(h *Handler) {
		h.upgrader.CheckOrigin = check
	}
}

// NewHandler creates a websocket handler bound to the given registry and
// token verifier.
func NewHandler(reg *registry.Registry, verifier TokenVerifier, opts ...HandlerOption) *Handler {
	h := &Handler{
		registry: reg,
		verifier: verifier,
		log:      slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, err := h.verifier.Verify(r.Context(), bearerToken(r))
	if err != nil {
		h.log.Warn("websocket auth failed", logger.Error(err))
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.log.Warn("websocket upgrade failed", logger.Error(err))
		return
	}

	conn := newConn(ws)
	connID := uuid.NewString()

	if _, err := h.registry.Register(connID, identity.UserID, identity.Role, conn); err != nil {
		h.log.Error("websocket register failed",
			logger.Error(err),
			logger.ConnectionID(connID),
		)
		conn.close()
		return
	}

	h.log.Info("websocket connected",
		logger.ConnectionID(connID),
		logger.UserID(identity.UserID),
		logger.Role(identity.Role),
	)

	go conn.writePump()
	h.readLoop(connID, identity, conn)
}

// readLoop processes control frames until the socket dies, then removes
// the connection from the registry before returning so failed peers stop
// receiving pushes immediately.
func (h *Handler) readLoop(connID string, identity Identity, conn *Conn) {
	defer func() {
		h.registry.Unregister(connID)
		conn.close()
		h.log.Info("websocket disconnected",
			logger.ConnectionID(connID),
			logger.UserID(identity.UserID),
		)
	}()

	conn.ws.SetReadLimit(maxMessageSize)
	_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			return
		}

		msg, err := ParseClientMessage(data)
		if err != nil {
			_ = conn.Emit(ServerMessage{Type: TypeError, Error: err.Error()})
			continue
		}

		switch msg.Type {
		case TypeSubscribe:
			if err := h.registry.JoinRoom(connID, msg.Room); err != nil {
				_ = conn.Emit(ServerMessage{Type: TypeError, Error: err.Error()})
			}
		case TypeUnsubscribe:
			if err := h.registry.LeaveRoom(connID, msg.Room); err != nil {
				_ = conn.Emit(ServerMessage{Type: TypeError, Error: err.Error()})
			}
		case TypePing:
			_ = conn.Emit(ServerMessage{Type: TypePong})
		}
	}
}

// bearerToken extracts the handshake token from the Authorization header
// or, for browser clients that cannot set headers on websocket dials, the
// token query parameter.
func bearerToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return r.URL.Query().Get("token")
}
