package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
)

const testToken = "123456:SECRET-BOT-TOKEN"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(testToken, server.URL)
}

func TestClient_SendMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot"+testToken+"/sendMessage" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.ChatID != "123456789" || req.ParseMode != "Markdown" || req.Text != "hello" {
			t.Errorf("request = %+v", req)
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":42}}`))
	})

	id, err := client.SendMessage(context.Background(), "123456789", "hello", "Markdown")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if id != 42 {
		t.Errorf("message id = %d, want 42", id)
	}
}

func TestClient_SendMessageErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "chat not found",
			status:  http.StatusBadRequest,
			body:    `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`,
			wantErr: domain.ErrChannelNotFound,
		},
		{
			name:    "blocked",
			status:  http.StatusForbidden,
			body:    `{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`,
			wantErr: domain.ErrChannelBlocked,
		},
		{
			name:    "other bad request",
			status:  http.StatusBadRequest,
			body:    `{"ok":false,"error_code":400,"description":"Bad Request: message text is empty"}`,
			wantErr: domain.ErrProvider,
		},
		{
			name:    "unreadable body",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			wantErr: domain.ErrProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.SendMessage(context.Background(), "1", "x", "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClient_TransportErrorHidesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(testToken, url)
	_, err := client.SendMessage(context.Background(), "1", "x", "")
	if !errors.Is(err, domain.ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
	if strings.Contains(err.Error(), "SECRET-BOT-TOKEN") {
		t.Errorf("error leaks bot token: %v", err)
	}
}

func TestClient_BotUsernameCached(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.HasSuffix(r.URL.Path, "/getMe") {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"username":"JobDashBot"}}`))
	})

	for i := 0; i < 3; i++ {
		name, err := client.BotUsername(context.Background())
		if err != nil {
			t.Fatalf("BotUsername() error = %v", err)
		}
		if name != "JobDashBot" {
			t.Errorf("username = %q", name)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("getMe called %d times, want 1", calls.Load())
	}
}

func TestClient_BotUsernameFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	})

	_, err := client.BotUsername(context.Background())
	if !errors.Is(err, domain.ErrProvider) {
		t.Errorf("expected ErrProvider, got %v", err)
	}
}

func TestNewClient_Options(t *testing.T) {
	hc := &http.Client{}
	c := NewClient(testToken, "", WithHTTPClient(hc), WithSendRate(5))
	if c.httpClient != hc {
		t.Error("custom HTTP client not applied")
	}
	if c.limiter.Limit() != 5 || c.limiter.Burst() != 5 {
		t.Errorf("limiter = %v/%d, want 5/5", c.limiter.Limit(), c.limiter.Burst())
	}
	if c.baseURL != defaultBaseURL {
		t.Errorf("baseURL = %q", c.baseURL)
	}

	d := NewClient(testToken, "http://example.test/", WithHTTPClient(nil), WithSendRate(0))
	if d.httpClient == nil || d.limiter.Burst() != sendBurst {
		t.Error("zero options should keep defaults")
	}
	if d.baseURL != "http://example.test" {
		t.Errorf("baseURL = %q", d.baseURL)
	}
}
