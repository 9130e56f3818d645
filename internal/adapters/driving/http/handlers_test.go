package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven/mocks"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driving"
)

// Mock services

type mockOAuthService struct {
	authorizeFn func(ctx context.Context, subjectID string) (*driving.AuthorizeResponse, error)
	callbackFn  func(ctx context.Context, sessionSubjectID string, req driving.CallbackRequest) *driving.CallbackResult
}

func (m *mockOAuthService) Authorize(ctx context.Context, subjectID string) (*driving.AuthorizeResponse, error) {
	if m.authorizeFn != nil {
		return m.authorizeFn(ctx, subjectID)
	}
	return &driving.AuthorizeResponse{URL: "https://accounts.example.com/auth?state=s"}, nil
}

func (m *mockOAuthService) Callback(ctx context.Context, sessionSubjectID string, req driving.CallbackRequest) *driving.CallbackResult {
	if m.callbackFn != nil {
		return m.callbackFn(ctx, sessionSubjectID, req)
	}
	return &driving.CallbackResult{Outcome: domain.OutcomeSuccess}
}

type mockChannelService struct {
	verifyFn func(ctx context.Context, subjectID, chatID string) (*domain.ChannelVerification, error)
	sendFn   func(ctx context.Context, subjectID string, req domain.SendRequest) (*domain.SendResult, error)
}

func (m *mockChannelService) VerifyAndConnect(ctx context.Context, subjectID, chatID string) (*domain.ChannelVerification, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, subjectID, chatID)
	}
	return &domain.ChannelVerification{Success: true}, nil
}

func (m *mockChannelService) Send(ctx context.Context, subjectID string, req domain.SendRequest) (*domain.SendResult, error) {
	if m.sendFn != nil {
		return m.sendFn(ctx, subjectID, req)
	}
	return &domain.SendResult{Success: true, MessageID: 1}, nil
}

type mockIntegrationService struct {
	listFn       func(ctx context.Context, subjectID string) ([]*domain.IntegrationStatus, error)
	updateFn     func(ctx context.Context, subjectID string, provider domain.Provider, settings domain.Settings) (*domain.IntegrationStatus, error)
	disconnectFn func(ctx context.Context, subjectID string, provider domain.Provider) error
}

func (m *mockIntegrationService) List(ctx context.Context, subjectID string) ([]*domain.IntegrationStatus, error) {
	if m.listFn != nil {
		return m.listFn(ctx, subjectID)
	}
	return []*domain.IntegrationStatus{}, nil
}

func (m *mockIntegrationService) UpdateSettings(ctx context.Context, subjectID string, provider domain.Provider, settings domain.Settings) (*domain.IntegrationStatus, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, subjectID, provider, settings)
	}
	return &domain.IntegrationStatus{Provider: provider, Settings: settings}, nil
}

func (m *mockIntegrationService) Disconnect(ctx context.Context, subjectID string, provider domain.Provider) error {
	if m.disconnectFn != nil {
		return m.disconnectFn(ctx, subjectID, provider)
	}
	return nil
}

type mockCalendarService struct {
	createInterviewFn func(ctx context.Context, subjectID string, req *domain.InterviewEventRequest) (*domain.CalendarEvent, error)
	listFn            func(ctx context.Context, subjectID string, r domain.EventRange) ([]*domain.CalendarEvent, error)
	err               error
}

func (m *mockCalendarService) CreateInterviewEvent(ctx context.Context, subjectID string, req *domain.InterviewEventRequest) (*domain.CalendarEvent, error) {
	if m.createInterviewFn != nil {
		return m.createInterviewFn(ctx, subjectID, req)
	}
	return &domain.CalendarEvent{ID: "evt-1", Summary: req.Company}, m.err
}

func (m *mockCalendarService) CreateDeadlineEvent(ctx context.Context, subjectID string, req *domain.DeadlineEventRequest) (*domain.CalendarEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.CalendarEvent{ID: "evt-2", Summary: req.Company}, nil
}

func (m *mockCalendarService) GetEvent(ctx context.Context, subjectID, eventID string) (*domain.CalendarEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.CalendarEvent{ID: eventID}, nil
}

func (m *mockCalendarService) UpdateEvent(ctx context.Context, subjectID, eventID string, patch *domain.EventPatch) (*domain.CalendarEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.CalendarEvent{ID: eventID, Summary: *patch.Summary}, nil
}

func (m *mockCalendarService) DeleteEvent(ctx context.Context, subjectID, eventID string) error {
	return m.err
}

func (m *mockCalendarService) ListEvents(ctx context.Context, subjectID string, r domain.EventRange) ([]*domain.CalendarEvent, error) {
	if m.listFn != nil {
		return m.listFn(ctx, subjectID, r)
	}
	return nil, m.err
}

type mockNotificationService struct {
	sent bool
	err  error
}

func (m *mockNotificationService) InterviewReminder(ctx context.Context, subjectID string, r *domain.InterviewReminder) (bool, error) {
	return m.sent, m.err
}

func (m *mockNotificationService) DeadlineReminder(ctx context.Context, subjectID string, r *domain.DeadlineReminder) (bool, error) {
	return m.sent, m.err
}

func (m *mockNotificationService) StatusChange(ctx context.Context, subjectID string, c *domain.StatusChange) (bool, error) {
	return m.sent, m.err
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}

// Test helpers

type testServer struct {
	handler  http.Handler
	verifier *mocks.MockTokenVerifier
}

func newTestServer(services Services, db Pinger) *testServer {
	if services.OAuth == nil {
		services.OAuth = &mockOAuthService{}
	}
	if services.Channel == nil {
		services.Channel = &mockChannelService{}
	}
	if services.Integrations == nil {
		services.Integrations = &mockIntegrationService{}
	}
	if services.Calendar == nil {
		services.Calendar = &mockCalendarService{}
	}
	if services.Notifications == nil {
		services.Notifications = &mockNotificationService{}
	}

	verifier := mocks.NewMockTokenVerifier()
	cfg := DefaultConfig()
	cfg.AppURL = "https://jobs.example.com"
	server := NewServer(cfg, verifier, services, db, nil, nil, nil)
	return &testServer{handler: server.Handler(), verifier: verifier}
}

func (s *testServer) do(method, path, subject string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if subject != "" {
		req.Header.Set("Authorization", "Bearer "+s.verifier.GenerateToken(subject))
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp["error"]
}

// Health endpoints

func TestHandleHealth(t *testing.T) {
	s := newTestServer(Services{}, nil)
	rec := s.do("GET", "/health", "", nil)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHandleReady(t *testing.T) {
	tests := []struct {
		name   string
		db     Pinger
		status int
	}{
		{"no store", nil, http.StatusOK},
		{"store healthy", &mockPinger{}, http.StatusOK},
		{"store down", &mockPinger{err: errors.New("dial tcp: refused")}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(Services{}, tt.db)
			rec := s.do("GET", "/ready", "", nil)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestHandleSwaggerDoc(t *testing.T) {
	s := newTestServer(Services{}, nil)
	rec := s.do("GET", "/swagger/doc.json", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc is not JSON: %v", err)
	}
	paths, _ := doc["paths"].(map[string]any)
	if _, ok := paths["/auth/google/callback"]; !ok {
		t.Error("expected callback path in api doc")
	}
}

// OAuth endpoints

func TestHandleGoogleAuthorize(t *testing.T) {
	var gotSubject string
	s := newTestServer(Services{OAuth: &mockOAuthService{
		authorizeFn: func(ctx context.Context, subjectID string) (*driving.AuthorizeResponse, error) {
			gotSubject = subjectID
			return &driving.AuthorizeResponse{URL: "https://accounts.example.com/auth"}, nil
		},
	}}, nil)

	rec := s.do("GET", "/api/auth/google", "user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotSubject != "user-1" {
		t.Errorf("subject = %q, want user-1", gotSubject)
	}
	var resp driving.AuthorizeResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.URL != "https://accounts.example.com/auth" {
		t.Errorf("URL = %q", resp.URL)
	}
}

func TestHandleGoogleAuthorize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		err     error
		status  int
		message string
	}{
		{"no session", "", nil, http.StatusUnauthorized, "missing authorization token"},
		{"not configured", "user-1", domain.ErrServiceUnavailable, http.StatusServiceUnavailable, "Google Calendar integration is not configured"},
		{"internal", "user-1", errors.New("entropy exhausted"), http.StatusInternalServerError, "failed to start authorization"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(Services{OAuth: &mockOAuthService{
				authorizeFn: func(ctx context.Context, subjectID string) (*driving.AuthorizeResponse, error) {
					return nil, tt.err
				},
			}}, nil)

			rec := s.do("GET", "/api/auth/google", tt.subject, nil)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if msg := errorMessage(t, rec); msg != tt.message {
				t.Errorf("message = %q, want %q", msg, tt.message)
			}
		})
	}
}

func TestHandleGoogleCallback(t *testing.T) {
	tests := []struct {
		name     string
		outcome  domain.CallbackOutcome
		expected url.Values
	}{
		{"success", domain.OutcomeSuccess, url.Values{"google_connected": {"true"}}},
		{"denied", domain.OutcomeDenied, url.Values{"error": {"google_auth_denied"}}},
		{"expired", domain.OutcomeExpiredOrForged, url.Values{"error": {"google_auth_expired"}}},
		{"session", domain.OutcomeSessionMismatch, url.Values{"error": {"google_auth_session"}}},
		{"config", domain.OutcomeConfig, url.Values{"error": {"google_auth_config"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotReq driving.CallbackRequest
			var gotSession string
			s := newTestServer(Services{OAuth: &mockOAuthService{
				callbackFn: func(ctx context.Context, sessionSubjectID string, req driving.CallbackRequest) *driving.CallbackResult {
					gotReq = req
					gotSession = sessionSubjectID
					return &driving.CallbackResult{Outcome: tt.outcome}
				},
			}}, nil)

			req := httptest.NewRequest("GET", "/api/auth/google/callback?code=abc&state=xyz", nil)
			req.AddCookie(&http.Cookie{Name: sessionCookie, Value: s.verifier.GenerateToken("user-1")})
			rec := httptest.NewRecorder()
			s.handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusFound {
				t.Fatalf("status = %d, want 302", rec.Code)
			}
			loc, err := url.Parse(rec.Header().Get("Location"))
			if err != nil {
				t.Fatalf("bad Location: %v", err)
			}
			if loc.Host != "jobs.example.com" || loc.Path != "/" {
				t.Errorf("Location = %s", loc)
			}
			if loc.RawQuery != tt.expected.Encode() {
				t.Errorf("query = %q, want %q", loc.RawQuery, tt.expected.Encode())
			}
			if gotReq.Code != "abc" || gotReq.State != "xyz" {
				t.Errorf("request = %+v", gotReq)
			}
			if gotSession != "user-1" {
				t.Errorf("session subject = %q, want user-1", gotSession)
			}
		})
	}
}

func TestHandleGoogleCallback_NoSession(t *testing.T) {
	gotSession := "unset"
	s := newTestServer(Services{OAuth: &mockOAuthService{
		callbackFn: func(ctx context.Context, sessionSubjectID string, req driving.CallbackRequest) *driving.CallbackResult {
			gotSession = sessionSubjectID
			return &driving.CallbackResult{Outcome: domain.OutcomeSessionMismatch}
		},
	}}, nil)

	rec := s.do("GET", "/api/auth/google/callback?code=abc&state=xyz", "", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if gotSession != "" {
		t.Errorf("session subject = %q, want empty", gotSession)
	}
	if !strings.Contains(rec.Header().Get("Location"), "error=google_auth_session") {
		t.Errorf("Location = %s", rec.Header().Get("Location"))
	}
}

// Telegram endpoints

func TestHandleTelegramVerify(t *testing.T) {
	tests := []struct {
		name    string
		result  *domain.ChannelVerification
		err     error
		status  int
		message string
	}{
		{
			name:   "connected",
			result: &domain.ChannelVerification{Success: true, Metadata: &domain.ChannelMetadata{BotUsername: "TestBot", ChatID: "123"}},
			status: http.StatusOK,
		},
		{
			name:    "invalid format",
			result:  &domain.ChannelVerification{Failure: domain.ChannelInvalidFormat},
			status:  http.StatusBadRequest,
			message: domain.ChannelInvalidFormat.Message(),
		},
		{
			name:    "chat not found",
			result:  &domain.ChannelVerification{Failure: domain.ChannelTargetNotFound},
			status:  http.StatusBadRequest,
			message: "Chat ID not found. Please make sure you started a conversation with our bot first.",
		},
		{
			name:    "blocked",
			result:  &domain.ChannelVerification{Failure: domain.ChannelBlocked},
			status:  http.StatusForbidden,
			message: domain.ChannelBlocked.Message(),
		},
		{
			name:    "rate limited",
			result:  &domain.ChannelVerification{Failure: domain.ChannelRateLimited},
			status:  http.StatusTooManyRequests,
			message: domain.ChannelRateLimited.Message(),
		},
		{
			name:    "send failed",
			result:  &domain.ChannelVerification{Failure: domain.ChannelSendFailed},
			status:  http.StatusBadRequest,
			message: "Failed to send verification message.",
		},
		{
			name:    "not configured",
			err:     domain.ErrServiceUnavailable,
			status:  http.StatusServiceUnavailable,
			message: "Telegram bot is not configured. Please contact support.",
		},
		{
			name:    "store down",
			err:     errors.New("save channel integration: connection refused"),
			status:  http.StatusInternalServerError,
			message: "Failed to verify Telegram connection",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotChat string
			s := newTestServer(Services{Channel: &mockChannelService{
				verifyFn: func(ctx context.Context, subjectID, chatID string) (*domain.ChannelVerification, error) {
					gotChat = chatID
					return tt.result, tt.err
				},
			}}, nil)

			rec := s.do("POST", "/api/telegram/verify", "user-1", VerifyChannelRequest{ChatID: "123"})
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if gotChat != "123" {
				t.Errorf("chat id = %q", gotChat)
			}
			if tt.message != "" {
				if msg := errorMessage(t, rec); msg != tt.message {
					t.Errorf("message = %q, want %q", msg, tt.message)
				}
			}
		})
	}
}

func TestHandleTelegramVerify_BadBody(t *testing.T) {
	s := newTestServer(Services{}, nil)
	rec := s.do("POST", "/api/telegram/verify", "user-1", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleTelegramVerify_Unauthenticated(t *testing.T) {
	called := false
	s := newTestServer(Services{Channel: &mockChannelService{
		verifyFn: func(ctx context.Context, subjectID, chatID string) (*domain.ChannelVerification, error) {
			called = true
			return nil, nil
		},
	}}, nil)

	rec := s.do("POST", "/api/telegram/verify", "", VerifyChannelRequest{ChatID: "123"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if called {
		t.Error("service must not be called without a session")
	}
}

func TestHandleTelegramSend(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"sent", nil, http.StatusOK},
		{"other chat", domain.ErrForbidden, http.StatusForbidden},
		{"bad input", domain.ErrInvalidInput, http.StatusBadRequest},
		{"blocked", domain.ErrChannelBlocked, http.StatusForbidden},
		{"provider", &domain.ProviderError{Provider: domain.ProviderTelegram, StatusCode: 502}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(Services{Channel: &mockChannelService{
				sendFn: func(ctx context.Context, subjectID string, req domain.SendRequest) (*domain.SendResult, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &domain.SendResult{Success: true, MessageID: 42}, nil
				},
			}}, nil)

			rec := s.do("POST", "/api/telegram/send", "user-1", domain.SendRequest{ChatID: "999", Message: "hi"})
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestHandleTelegramSend_HidesProviderDetail(t *testing.T) {
	s := newTestServer(Services{Channel: &mockChannelService{
		sendFn: func(ctx context.Context, subjectID string, req domain.SendRequest) (*domain.SendResult, error) {
			return nil, &domain.ProviderError{Provider: domain.ProviderTelegram, StatusCode: 401, Description: "Unauthorized: bot token 123:ABC"}
		},
	}}, nil)

	rec := s.do("POST", "/api/telegram/send", "user-1", domain.SendRequest{ChatID: "1", Message: "hi"})
	if strings.Contains(rec.Body.String(), "123:ABC") {
		t.Errorf("response leaks provider detail: %s", rec.Body.String())
	}
}

// Integration endpoints

func TestHandleListIntegrations(t *testing.T) {
	s := newTestServer(Services{Integrations: &mockIntegrationService{
		listFn: func(ctx context.Context, subjectID string) ([]*domain.IntegrationStatus, error) {
			return []*domain.IntegrationStatus{{Provider: domain.ProviderGoogleCalendar, Connected: true}}, nil
		},
	}}, nil)

	rec := s.do("GET", "/api/integrations", "user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var statuses []domain.IntegrationStatus
	json.NewDecoder(rec.Body).Decode(&statuses)
	if len(statuses) != 1 || !statuses[0].Connected {
		t.Errorf("statuses = %+v", statuses)
	}
}

func TestHandleUpdateIntegrationSettings(t *testing.T) {
	var gotProvider domain.Provider
	var gotSettings domain.Settings
	s := newTestServer(Services{Integrations: &mockIntegrationService{
		updateFn: func(ctx context.Context, subjectID string, provider domain.Provider, settings domain.Settings) (*domain.IntegrationStatus, error) {
			gotProvider = provider
			gotSettings = settings
			return &domain.IntegrationStatus{Provider: provider, Settings: settings}, nil
		},
	}}, nil)

	rec := s.do("PUT", "/api/integrations/google/settings", "user-1", `{"syncInterviews":false,"syncDeadlines":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if gotProvider != domain.ProviderGoogleCalendar {
		t.Errorf("provider = %q", gotProvider)
	}
	if gotSettings.Calendar == nil || gotSettings.Calendar.SyncInterviews || !gotSettings.Calendar.SyncDeadlines {
		t.Errorf("settings = %+v", gotSettings.Calendar)
	}
}

func TestHandleUpdateIntegrationSettings_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		err    error
		status int
	}{
		{"unknown provider", "/api/integrations/slack/settings", `{}`, nil, http.StatusBadRequest},
		{"malformed body", "/api/integrations/telegram/settings", `{"chatId":`, nil, http.StatusBadRequest},
		{"not connected", "/api/integrations/telegram/settings", `{"notifications":{"interviews":true}}`, domain.ErrNotFound, http.StatusNotFound},
		{"rejected", "/api/integrations/telegram/settings", `{"chatId":"999"}`, domain.ErrInvalidInput, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(Services{Integrations: &mockIntegrationService{
				updateFn: func(ctx context.Context, subjectID string, provider domain.Provider, settings domain.Settings) (*domain.IntegrationStatus, error) {
					return nil, tt.err
				},
			}}, nil)

			rec := s.do("PUT", tt.path, "user-1", tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestHandleDisconnectIntegration(t *testing.T) {
	var gotProvider domain.Provider
	s := newTestServer(Services{Integrations: &mockIntegrationService{
		disconnectFn: func(ctx context.Context, subjectID string, provider domain.Provider) error {
			gotProvider = provider
			if subjectID != "user-1" {
				return domain.ErrNotFound
			}
			return nil
		},
	}}, nil)

	rec := s.do("DELETE", "/api/integrations/telegram", "user-1", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if gotProvider != domain.ProviderTelegram {
		t.Errorf("provider = %q", gotProvider)
	}

	rec = s.do("DELETE", "/api/integrations/telegram", "user-2", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// Calendar endpoints

func TestHandleCreateInterviewEvent(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"created", nil, http.StatusCreated},
		{"invalid", domain.ErrInvalidInput, http.StatusBadRequest},
		{"sync disabled", domain.ErrSyncDisabled, http.StatusConflict},
		{"not connected", domain.ErrNotConnected, http.StatusPreconditionFailed},
		{"not configured", domain.ErrServiceUnavailable, http.StatusServiceUnavailable},
		{"provider", &domain.ProviderError{Provider: domain.ProviderGoogleCalendar, StatusCode: 500}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(Services{Calendar: &mockCalendarService{
				createInterviewFn: func(ctx context.Context, subjectID string, req *domain.InterviewEventRequest) (*domain.CalendarEvent, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &domain.CalendarEvent{ID: "evt-1", Summary: "Technical Interview - " + req.Company}, nil
				},
			}}, nil)

			rec := s.do("POST", "/api/calendar/interviews", "user-1", map[string]any{
				"company":     "Acme",
				"scheduledAt": "2025-03-20T14:30:00Z",
			})
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestHandleCreateDeadlineEvent(t *testing.T) {
	s := newTestServer(Services{}, nil)
	rec := s.do("POST", "/api/calendar/deadlines", "user-1", map[string]any{
		"company":  "Acme",
		"deadline": "2025-04-01T00:00:00Z",
	})
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}

func TestHandleListEvents(t *testing.T) {
	var gotRange domain.EventRange
	s := newTestServer(Services{Calendar: &mockCalendarService{
		listFn: func(ctx context.Context, subjectID string, r domain.EventRange) ([]*domain.CalendarEvent, error) {
			gotRange = r
			return nil, nil
		},
	}}, nil)

	rec := s.do("GET", "/api/calendar/events?timeMin=2025-03-01T00:00:00Z&timeMax=2025-04-01T00:00:00Z", "user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("body = %q, want []", rec.Body.String())
	}
	if gotRange.TimeMin.IsZero() || gotRange.TimeMax.IsZero() {
		t.Errorf("range = %+v", gotRange)
	}

	rec = s.do("GET", "/api/calendar/events?timeMin=yesterday", "user-1", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad timeMin: status = %d, want 400", rec.Code)
	}
}

func TestHandleEventByID(t *testing.T) {
	s := newTestServer(Services{}, nil)

	if rec := s.do("GET", "/api/calendar/events/evt-9", "user-1", nil); rec.Code != http.StatusOK {
		t.Errorf("get: status = %d", rec.Code)
	}
	if rec := s.do("PATCH", "/api/calendar/events/evt-9", "user-1", `{"summary":"Onsite"}`); rec.Code != http.StatusOK {
		t.Errorf("patch: status = %d", rec.Code)
	}
	if rec := s.do("DELETE", "/api/calendar/events/evt-9", "user-1", nil); rec.Code != http.StatusOK {
		t.Errorf("delete: status = %d", rec.Code)
	}

	missing := newTestServer(Services{Calendar: &mockCalendarService{err: domain.ErrNotFound}}, nil)
	if rec := missing.do("GET", "/api/calendar/events/evt-9", "user-1", nil); rec.Code != http.StatusNotFound {
		t.Errorf("missing: status = %d, want 404", rec.Code)
	}
}

// Notification endpoints

func TestHandleNotifications(t *testing.T) {
	paths := []string{
		"/api/notifications/interview",
		"/api/notifications/deadline",
		"/api/notifications/status",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			for _, sent := range []bool{true, false} {
				s := newTestServer(Services{Notifications: &mockNotificationService{sent: sent}}, nil)
				rec := s.do("POST", path, "user-1", map[string]any{"company": "Acme"})
				if rec.Code != http.StatusOK {
					t.Fatalf("status = %d, want 200", rec.Code)
				}
				var resp SentResponse
				json.NewDecoder(rec.Body).Decode(&resp)
				if resp.Sent != sent {
					t.Errorf("sent = %v, want %v", resp.Sent, sent)
				}
			}

			s := newTestServer(Services{Notifications: &mockNotificationService{err: domain.ErrInvalidInput}}, nil)
			if rec := s.do("POST", path, "user-1", map[string]any{}); rec.Code != http.StatusBadRequest {
				t.Errorf("invalid: status = %d, want 400", rec.Code)
			}
		})
	}
}
