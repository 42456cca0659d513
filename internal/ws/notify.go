package ws

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

type Event struct {
	Type      string `json:"type"`
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

func newEvent(eventType string, id int64, title string, at time.Time) Event {
	return Event{
		Type:      eventType,
		ID:        id,
		Title:     title,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}

// Publish broadcasts a domain event to every connected client.
func (h *Hub) Publish(eventType string, id int64, title string) {
	if h == nil {
		return
	}
	b, err := json.Marshal(newEvent(eventType, id, title, time.Now()))
	if err != nil {
		h.logger.Warn("ws encode event", zap.String("type", eventType), zap.Error(err))
		return
	}
	h.Broadcast(b)
}
