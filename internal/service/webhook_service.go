package service

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Lifecycle events delivered by the host platform.
const (
	EventFrameAdded            = "frame_added"
	EventFrameRemoved          = "frame_removed"
	EventNotificationsEnabled  = "notifications_enabled"
	EventNotificationsDisabled = "notifications_disabled"
)

// WebhookEvent is one received lifecycle notification.
type WebhookEvent struct {
	Event      string          `json:"event"`
	Data       json.RawMessage `json:"data"`
	ReceivedAt time.Time       `json:"receivedAt"`
}

// WebhookService receives asynchronous lifecycle notifications from the
// host platform. Events are logged and kept in an append-only in-process
// log; they never touch the bill ledger.
type WebhookService struct {
	mu     sync.Mutex
	events []WebhookEvent
}

// NewWebhookService creates an empty WebhookService.
func NewWebhookService() *WebhookService {
	return &WebhookService{}
}

// Register attaches the webhook routes to the mux.
func (s *WebhookService) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/webhook", s.handleWebhook)
	mux.HandleFunc("GET /api/webhook", s.handleProbe)
}

type webhookPayload struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func (s *WebhookService) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		slog.Error("Webhook payload parse failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	switch payload.Event {
	case EventFrameAdded:
		slog.Info("Mini app added by user", "data", string(payload.Data))
	case EventFrameRemoved:
		slog.Info("Mini app removed by user", "data", string(payload.Data))
	case EventNotificationsEnabled:
		slog.Info("Notifications enabled", "data", string(payload.Data))
	case EventNotificationsDisabled:
		slog.Info("Notifications disabled", "data", string(payload.Data))
	default:
		slog.Info("Unknown webhook event", "event", payload.Event)
	}

	s.mu.Lock()
	s.events = append(s.events, WebhookEvent{
		Event:      payload.Event,
		Data:       payload.Data,
		ReceivedAt: time.Now(),
	})
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleProbe is a read-only liveness check.
func (s *WebhookService) handleProbe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "Webhook endpoint active"})
}

// Events returns a copy of the received-event log, oldest first.
func (s *WebhookService) Events() []WebhookEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]WebhookEvent, len(s.events))
	copy(events, s.events)
	return events
}
