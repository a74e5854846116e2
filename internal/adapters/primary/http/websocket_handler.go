package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	wsAdapter "github.com/kellan/jobwire/internal/adapters/primary/websocket"
	"github.com/kellan/jobwire/internal/config"
	apperrors "github.com/kellan/jobwire/internal/core/errors"
	"github.com/kellan/jobwire/internal/core/ports"
)

// WebSocketHandler handles WebSocket connection upgrades. Authentication
// happens before the upgrade: a rejected handshake never produces a
// registered connection.
type WebSocketHandler struct {
	registry *wsAdapter.Registry
	identity ports.IdentityVerifier
	upgrader websocket.Upgrader
	wsCfg    config.WebSocketConfig
	logger   *slog.Logger
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	registry *wsAdapter.Registry,
	identity ports.IdentityVerifier,
	cfg *config.Config,
	logger *slog.Logger,
) *WebSocketHandler {
	handler := &WebSocketHandler{
		registry: registry,
		identity: identity,
		wsCfg:    cfg.WebSocket,
		logger:   logger,
	}

	handler.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		CheckOrigin:     handler.makeOriginChecker(cfg),
	}

	return handler
}

// makeOriginChecker creates an origin checking function based on configuration
func (h *WebSocketHandler) makeOriginChecker(cfg *config.Config) func(r *http.Request) bool {
	allowedOrigins := cfg.WebSocket.AllowedOrigins

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		// In development mode, allow all origins (but log a warning)
		if cfg.IsDevelopment() {
			if origin != "" {
				h.logger.Warn("allowing websocket connection in development mode",
					"origin", origin,
					"remote_addr", r.RemoteAddr,
				)
			}
			return true
		}

		// No origin header (same-origin request or non-browser client)
		if origin == "" {
			return true
		}

		parsedOrigin, err := url.Parse(origin)
		if err != nil {
			h.logger.Warn("failed to parse websocket origin",
				"origin", origin,
				"error", err,
			)
			return false
		}

		originHost := parsedOrigin.Host

		for _, allowed := range allowedOrigins {
			// Support wildcard subdomains like "*.example.com"
			if strings.HasPrefix(allowed, "*.") {
				suffix := allowed[1:] // Remove the "*", keep ".example.com"
				if strings.HasSuffix(originHost, suffix) || originHost == allowed[2:] {
					return true
				}
			} else if originHost == allowed {
				return true
			}
		}

		h.logger.Warn("websocket connection rejected due to origin",
			"origin", origin,
			"remote_addr", r.RemoteAddr,
			"allowed_origins", allowedOrigins,
		)
		return false
	}
}

// bearerToken extracts the credential from the Authorization header or,
// failing that, the token query parameter (browser WebSocket clients
// cannot set headers).
func bearerToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return token
		}
	}
	return r.URL.Query().Get("token")
}

// ServeHTTP handles WebSocket connection requests
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	// 1. Authenticate the connection
	token := bearerToken(r)
	if token == "" {
		h.logger.Warn("websocket connection rejected: missing token",
			"request_id", requestID,
			"remote_addr", r.RemoteAddr,
		)
		http.Error(w, "Missing authentication token", http.StatusUnauthorized)
		return
	}

	identity, err := h.identity.Verify(r.Context(), token)
	if err != nil {
		h.logger.Warn("websocket connection rejected: authentication failed",
			"request_id", requestID,
			"remote_addr", r.RemoteAddr,
			"error", err,
		)
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	// 2. Register before upgrading so a capacity rejection is still a
	// plain HTTP response.
	conn, err := h.registry.Register(identity)
	if err != nil {
		if errors.Is(err, apperrors.ErrCapacityExceeded) {
			h.logger.Warn("websocket connection rejected: at capacity",
				"request_id", requestID,
				"user_id", identity.UserID,
			)
			http.Error(w, "Connection capacity exceeded", http.StatusServiceUnavailable)
			return
		}
		h.logger.Error("failed to register connection",
			"request_id", requestID,
			"user_id", identity.UserID,
			"error", err,
		)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// 3. Upgrade the connection
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.registry.Deregister(conn.ID)
		h.logger.Error("failed to upgrade websocket connection",
			"request_id", requestID,
			"user_id", identity.UserID,
			"error", err,
		)
		return
	}

	h.logger.Info("websocket connection established",
		"request_id", requestID,
		"conn_id", conn.ID,
		"user_id", identity.UserID,
		"role", identity.Role,
		"remote_addr", r.RemoteAddr,
	)

	// 4. Start the I/O pumps in new goroutines
	client := wsAdapter.NewClient(h.registry, conn, ws, wsAdapter.ClientConfig{
		PingInterval: h.wsCfg.PingInterval,
		PongWait:     h.wsCfg.PongWait,
	}, h.logger)

	go client.WritePump()
	go client.ReadPump()
}
