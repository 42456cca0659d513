package handler

import (
	"context"
	"time"

	"wow-campus/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const healthPingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// PoolStater is implemented by database pools that expose connection counts.
type PoolStater interface {
	Stats() map[string]int32
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
	now   func() time.Time
}

// NewHealthHandler accepts nil pingers; a missing dependency is reported as
// "disabled".
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, now: time.Now}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health always answers 200; dependency state is informational.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthPingTimeout)
	defer cancel()

	data := map[string]any{
		"database":  pingStatus(ctx, h.db),
		"cache":     pingStatus(ctx, h.cache),
		"timestamp": h.now().UTC().Format(time.RFC3339),
	}
	if ps, ok := h.db.(PoolStater); ok {
		if st := ps.Stats(); st != nil {
			data["pool"] = st
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func pingStatus(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
