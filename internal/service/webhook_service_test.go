package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func setupWebhookServer(t *testing.T) (*WebhookService, *httptest.Server) {
	t.Helper()

	svc := NewWebhookService()
	mux := http.NewServeMux()
	svc.Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return svc, server
}

func TestWebhook(t *testing.T) {
	svc, server := setupWebhookServer(t)

	t.Run("recognized event is logged and acknowledged", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/api/webhook", "application/json",
			strings.NewReader(`{"event":"frame_added","data":{"fid":123}}`))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}

		var body map[string]bool
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if !body["success"] {
			t.Error("expected success response")
		}
	})

	t.Run("unknown event is ignored but still acknowledged", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/api/webhook", "application/json",
			strings.NewReader(`{"event":"something_else","data":{}}`))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("events accumulate in the append-only log", func(t *testing.T) {
		events := svc.Events()
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Event != EventFrameAdded {
			t.Errorf("expected frame_added first, got %q", events[0].Event)
		}
		if events[1].Event != "something_else" {
			t.Errorf("expected something_else second, got %q", events[1].Event)
		}
		if events[0].ReceivedAt.IsZero() {
			t.Error("expected ReceivedAt to be set")
		}
	})

	t.Run("unparseable payload returns a generic server error", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/api/webhook", "application/json",
			strings.NewReader(`{not json`))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", resp.StatusCode)
		}

		var body map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body["error"] != "Internal server error" {
			t.Errorf("expected generic error, got %q", body["error"])
		}
	})

	t.Run("probe returns static liveness payload", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/webhook")
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}

		var body map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body["status"] != "Webhook endpoint active" {
			t.Errorf("unexpected probe payload: %v", body)
		}
	})
}
