package websocket

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/kellan/jobwire/internal/core/domain"
	apperrors "github.com/kellan/jobwire/internal/core/errors"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Maximum control-message size allowed from peer.
	maxMessageSize = 1024

	defaultPongWait = 60 * time.Second
)

// ClientConfig carries the keepalive timings for a client session.
type ClientConfig struct {
	// PingInterval is how often the server pings the peer. Must be less
	// than PongWait.
	PingInterval time.Duration

	// PongWait is how long to wait for a pong before the read deadline
	// expires.
	PongWait time.Duration
}

// Client ties one websocket transport to its registry Connection and runs
// the two I/O pumps. The read pump owns teardown: whichever way the
// transport dies, the connection is deregistered exactly once.
type Client struct {
	registry *Registry
	conn     *Connection
	ws       *websocket.Conn
	cfg      ClientConfig
	logger   *slog.Logger
}

// NewClient wraps an upgraded websocket connection. The Connection must
// already be registered.
func NewClient(registry *Registry, conn *Connection, ws *websocket.Conn, cfg ClientConfig, logger *slog.Logger) *Client {
	if cfg.PongWait <= 0 {
		cfg.PongWait = defaultPongWait
	}
	if cfg.PingInterval <= 0 || cfg.PingInterval >= cfg.PongWait {
		cfg.PingInterval = cfg.PongWait * 9 / 10
	}

	return &Client{
		registry: registry,
		conn:     conn,
		ws:       ws,
		cfg:      cfg,
		logger: logger.With(
			"conn_id", conn.ID,
			"user_id", conn.Identity().UserID,
		),
	}
}

// ReadPump pumps control messages from the peer into the registry.
// This method runs in its own goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.registry.Deregister(c.conn.ID)
		_ = c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	if err := c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait)); err != nil {
		c.logger.Error("failed to set read deadline", "error", err)
		return
	}

	c.ws.SetPongHandler(func(string) error {
		if err := c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait)); err != nil {
			c.logger.Error("failed to set read deadline in pong handler", "error", err)
		}
		return nil
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", "error", err)
			}
			break
		}

		c.handleControlMessage(message)
	}
}

// WritePump pumps envelopes from the connection's outbound buffer to the
// peer. This method runs in its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case payload, ok := <-c.conn.send:
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("failed to set write deadline", "error", err)
				return
			}

			if !ok {
				// The registry closed the channel. Say goodbye.
				if err := c.ws.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug("failed to send close message", "error", err)
				}
				return
			}

			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("failed to set write deadline for ping", "error", err)
				return
			}

			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}

// --- Incoming Control Messages ---

// ControlMessage is the structure for messages sent by the client.
type ControlMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// JobRoomPayload is the payload for join:job / leave:job requests.
type JobRoomPayload struct {
	JobID uuid.UUID `json:"jobId"`
}

// handleControlMessage processes messages received from the client.
func (c *Client) handleControlMessage(message []byte) {
	var msg ControlMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		c.logger.Warn("failed to unmarshal control message", "error", err)
		return
	}

	switch msg.Type {
	case "join:job":
		c.handleJoinJob(msg.Data)

	case "leave:job":
		c.handleLeaveJob(msg.Data)

	default:
		c.logger.Debug("received unknown message type", "type", msg.Type)
	}
}

func (c *Client) handleJoinJob(data json.RawMessage) {
	var p JobRoomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.logger.Warn("failed to unmarshal join:job payload", "error", err)
		return
	}
	if p.JobID == uuid.Nil {
		c.logger.Warn("join:job with empty job id")
		return
	}

	switch err := c.registry.Join(c.conn.ID, domain.JobRoom(p.JobID)); {
	case err == nil:
	case errors.Is(err, apperrors.ErrRoomLimitExceeded):
		c.logger.Warn("join:job refused", "job_id", p.JobID, "error", err)
	case errors.Is(err, apperrors.ErrUnknownConnection):
		// Raced with disconnect; nothing to do.
		c.logger.Debug("join:job after deregistration", "job_id", p.JobID)
	default:
		c.logger.Error("join:job failed", "job_id", p.JobID, "error", err)
	}
}

func (c *Client) handleLeaveJob(data json.RawMessage) {
	var p JobRoomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		c.logger.Warn("failed to unmarshal leave:job payload", "error", err)
		return
	}

	if err := c.registry.Leave(c.conn.ID, domain.JobRoom(p.JobID)); err != nil && !errors.Is(err, apperrors.ErrUnknownConnection) {
		c.logger.Error("leave:job failed", "job_id", p.JobID, "error", err)
	}
}
