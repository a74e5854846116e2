package http

import (
	"log/slog"
	"net/http"

	"github.com/kellan/jobwire/internal/core/ports"
)

// StatsHandler exposes a snapshot of the realtime fanout state. Admin only;
// the route is guarded by JWTMiddleware and RequireRole at mount time.
type StatsHandler struct {
	stats  ports.RealtimeStats
	logger *slog.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats ports.RealtimeStats, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, logger: logger}
}

// realtimeStatsResponse is the stats endpoint payload.
type realtimeStatsResponse struct {
	Connections       int            `json:"connections"`
	Rooms             int            `json:"rooms"`
	ConnectionsByRole map[string]int `json:"connectionsByRole"`
}

// Get handles GET /api/v1/realtime/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	byRole := make(map[string]int)
	for role, n := range h.stats.ConnectionsByRole() {
		byRole[string(role)] = n
	}

	WriteSuccess(w, realtimeStatsResponse{
		Connections:       h.stats.ConnectionCount(),
		Rooms:             h.stats.RoomCount(),
		ConnectionsByRole: byRole,
	})
}
