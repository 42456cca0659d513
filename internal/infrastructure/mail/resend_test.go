package mail

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wow-campus/internal/config"
)

func TestNewResend_DisabledWithoutKey(t *testing.T) {
	r := NewResend(config.MailConfig{}, nil)
	if r != nil {
		t.Fatalf("expected nil sender without API key")
	}
	if _, err := r.Send(context.Background(), Message{To: []string{"a@b.c"}}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Send = %v, want ErrNotConfigured", err)
	}
}

func TestResend_PostsMessage(t *testing.T) {
	var got resendPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer srv.Close()

	r := NewResend(config.MailConfig{ResendAPIKey: "re_test", Endpoint: srv.URL}, srv.Client())
	id, err := r.Send(context.Background(), Message{
		From:    "WOW-CAMPUS <noreply@w-campus.com>",
		To:      []string{"ops@w-campus.com"},
		ReplyTo: "kim@example.com",
		Subject: "[WOW-CAMPUS 문의] Hi",
		HTML:    "<p>Hello</p>",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if id != "msg_123" || auth != "Bearer re_test" {
		t.Fatalf("id=%q auth=%q", id, auth)
	}
	if got.ReplyTo != "kim@example.com" || len(got.To) != 1 || got.Subject != "[WOW-CAMPUS 문의] Hi" {
		t.Fatalf("payload = %+v", got)
	}
}

func TestResend_ReportsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	r := NewResend(config.MailConfig{ResendAPIKey: "re_test", Endpoint: srv.URL}, srv.Client())
	_, err := r.Send(context.Background(), Message{To: []string{"ops@w-campus.com"}})
	if err == nil || !strings.Contains(err.Error(), "422") || !strings.Contains(err.Error(), "invalid from") {
		t.Fatalf("Send = %v", err)
	}
}
