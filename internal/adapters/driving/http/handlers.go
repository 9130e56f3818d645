package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/swaggo/swag"

	_ "github.com/Redtoridefire/Job-Dashboard/internal/adapters/driving/http/docs" // registers the API doc
	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driving"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 1 << 20

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// VerifyChannelRequest is the body of a channel verification
// @Description Telegram chat id to verify
type VerifyChannelRequest struct {
	ChatID string `json:"chatId" example:"123456789"`
}

// SentResponse reports whether a notification was delivered
// @Description Notification delivery result
type SentResponse struct {
	Sent bool `json:"sent" example:"true"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Checks the integration store and, when configured, Redis
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			s.logger.Warn("readiness: store unreachable", "error", err)
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			s.logger.Warn("readiness: redis unreachable", "error", err)
			writeError(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

func (s *Server) handleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "api doc unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, doc)
}

// Calendar OAuth endpoints

// handleGoogleAuthorize godoc
// @Summary      Start calendar authorization
// @Description  Issues a state token bound to the caller and returns the provider consent URL
// @Tags         OAuth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  driving.AuthorizeResponse
// @Failure      401  {object}  ErrorResponse  "Not authenticated"
// @Failure      503  {object}  ErrorResponse  "Calendar integration not configured"
// @Router       /auth/google [get]
func (s *Server) handleGoogleAuthorize(w http.ResponseWriter, r *http.Request) {
	resp, err := s.oauthService.Authorize(r.Context(), subjectID(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrServiceUnavailable):
			writeError(w, http.StatusServiceUnavailable, "Google Calendar integration is not configured")
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "unauthorized")
		default:
			s.logger.Error("authorize failed", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to start authorization")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleGoogleCallback godoc
// @Summary      Calendar authorization callback
// @Description  Completes the authorization-code flow and redirects to the UI with an outcome flag
// @Tags         OAuth
// @Param        code   query  string  false  "Authorization code"
// @Param        state  query  string  false  "State token"
// @Param        error  query  string  false  "Provider error"
// @Success      302
// @Router       /auth/google/callback [get]
func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result := s.oauthService.Callback(r.Context(), s.auth.SessionSubject(r), driving.CallbackRequest{
		Code:             q.Get("code"),
		State:            q.Get("state"),
		Error:            q.Get("error"),
		ErrorDescription: q.Get("error_description"),
	})

	target := s.appURL + "/?" + result.Outcome.RedirectQuery().Encode()
	http.Redirect(w, r, target, http.StatusFound)
}

// Telegram endpoints

// handleTelegramVerify godoc
// @Summary      Verify a Telegram chat
// @Description  Sends a welcome message to the chat and connects it when delivery succeeds
// @Tags         Telegram
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      VerifyChannelRequest  true  "Chat to verify"
// @Success      200      {object}  domain.ChannelVerification
// @Failure      400      {object}  ErrorResponse  "Bad chat id or provider rejection"
// @Failure      401      {object}  ErrorResponse  "Not authenticated"
// @Failure      403      {object}  ErrorResponse  "Bot blocked"
// @Failure      429      {object}  ErrorResponse  "Too many attempts"
// @Failure      503      {object}  ErrorResponse  "Telegram not configured"
// @Router       /telegram/verify [post]
func (s *Server) handleTelegramVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyChannelRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.channelService.VerifyAndConnect(r.Context(), subjectID(r), req.ChatID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrServiceUnavailable):
			writeError(w, http.StatusServiceUnavailable, "Telegram bot is not configured. Please contact support.")
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "unauthorized")
		default:
			s.logger.Error("channel verification failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to verify Telegram connection")
		}
		return
	}

	if !result.Success {
		writeError(w, channelFailureStatus(result.Failure), result.Failure.Message())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func channelFailureStatus(f domain.ChannelFailure) int {
	switch f {
	case domain.ChannelRateLimited:
		return http.StatusTooManyRequests
	case domain.ChannelBlocked:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// handleTelegramSend godoc
// @Summary      Send a Telegram message
// @Description  Delivers a message to the caller's own verified chat
// @Tags         Telegram
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.SendRequest  true  "Message"
// @Success      200      {object}  domain.SendResult
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse  "Chat is not the caller's verified chat"
// @Failure      500      {object}  ErrorResponse
// @Failure      503      {object}  ErrorResponse
// @Router       /telegram/send [post]
func (s *Server) handleTelegramSend(w http.ResponseWriter, r *http.Request) {
	var req domain.SendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.channelService.Send(r.Context(), subjectID(r), req)
	if err != nil {
		s.writeServiceError(w, err, "Failed to send message")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Integration management endpoints

// handleListIntegrations godoc
// @Summary      List integrations
// @Description  Returns the caller's integrations without credentials
// @Tags         Integrations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.IntegrationStatus
// @Failure      401  {object}  ErrorResponse
// @Router       /integrations [get]
func (s *Server) handleListIntegrations(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.integrationService.List(r.Context(), subjectID(r))
	if err != nil {
		s.writeServiceError(w, err, "failed to list integrations")
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

// handleUpdateIntegrationSettings godoc
// @Summary      Update integration settings
// @Description  Replaces the settings of a connected integration. The settings schema depends on the provider.
// @Tags         Integrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        provider  path      string  true  "google_calendar or telegram"
// @Success      200       {object}  domain.IntegrationStatus
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /integrations/{provider}/settings [put]
func (s *Server) handleUpdateIntegrationSettings(w http.ResponseWriter, r *http.Request) {
	provider, err := domain.ParseProvider(r.PathValue("provider"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown provider")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	settings, err := domain.DecodeSettings(provider, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid settings")
		return
	}

	status, err := s.integrationService.UpdateSettings(r.Context(), subjectID(r), provider, settings)
	if err != nil {
		s.writeServiceError(w, err, "failed to update settings")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// handleDisconnectIntegration godoc
// @Summary      Disconnect an integration
// @Description  Clears stored credentials. The integration record is kept.
// @Tags         Integrations
// @Produce      json
// @Security     BearerAuth
// @Param        provider  path      string  true  "google_calendar or telegram"
// @Success      200       {object}  StatusResponse
// @Failure      400       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /integrations/{provider} [delete]
func (s *Server) handleDisconnectIntegration(w http.ResponseWriter, r *http.Request) {
	provider, err := domain.ParseProvider(r.PathValue("provider"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown provider")
		return
	}

	if err := s.integrationService.Disconnect(r.Context(), subjectID(r), provider); err != nil {
		s.writeServiceError(w, err, "failed to disconnect")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}

// Calendar endpoints

// handleCreateInterviewEvent godoc
// @Summary      Add an interview to the calendar
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.InterviewEventRequest  true  "Interview"
// @Success      201      {object}  domain.CalendarEvent
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse  "Interview sync disabled"
// @Failure      412      {object}  ErrorResponse  "Calendar not connected"
// @Router       /calendar/interviews [post]
func (s *Server) handleCreateInterviewEvent(w http.ResponseWriter, r *http.Request) {
	var req domain.InterviewEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := s.calendarService.CreateInterviewEvent(r.Context(), subjectID(r), &req)
	if err != nil {
		s.writeServiceError(w, err, "failed to create calendar event")
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// handleCreateDeadlineEvent godoc
// @Summary      Add an application deadline to the calendar
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.DeadlineEventRequest  true  "Deadline"
// @Success      201      {object}  domain.CalendarEvent
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse  "Deadline sync disabled"
// @Failure      412      {object}  ErrorResponse  "Calendar not connected"
// @Router       /calendar/deadlines [post]
func (s *Server) handleCreateDeadlineEvent(w http.ResponseWriter, r *http.Request) {
	var req domain.DeadlineEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := s.calendarService.CreateDeadlineEvent(r.Context(), subjectID(r), &req)
	if err != nil {
		s.writeServiceError(w, err, "failed to create calendar event")
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// handleListEvents godoc
// @Summary      List calendar events
// @Tags         Calendar
// @Produce      json
// @Security     BearerAuth
// @Param        timeMin  query     string  false  "RFC 3339 lower bound"
// @Param        timeMax  query     string  false  "RFC 3339 upper bound"
// @Success      200      {array}   domain.CalendarEvent
// @Failure      400      {object}  ErrorResponse
// @Failure      412      {object}  ErrorResponse  "Calendar not connected"
// @Router       /calendar/events [get]
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	var rng domain.EventRange
	for param, dst := range map[string]*time.Time{"timeMin": &rng.TimeMin, "timeMax": &rng.TimeMax} {
		raw := r.URL.Query().Get(param)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, param+" must be an RFC 3339 timestamp")
			return
		}
		*dst = t
	}

	events, err := s.calendarService.ListEvents(r.Context(), subjectID(r), rng)
	if err != nil {
		s.writeServiceError(w, err, "failed to list calendar events")
		return
	}
	if events == nil {
		events = []*domain.CalendarEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

// handleGetEvent godoc
// @Summary      Get a calendar event
// @Tags         Calendar
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.CalendarEvent
// @Failure      404  {object}  ErrorResponse
// @Router       /calendar/events/{id} [get]
func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.calendarService.GetEvent(r.Context(), subjectID(r), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err, "failed to get calendar event")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// handleUpdateEvent godoc
// @Summary      Update a calendar event
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string             true  "Event ID"
// @Param        request  body      domain.EventPatch  true  "Fields to change"
// @Success      200      {object}  domain.CalendarEvent
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /calendar/events/{id} [patch]
func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var patch domain.EventPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := s.calendarService.UpdateEvent(r.Context(), subjectID(r), r.PathValue("id"), &patch)
	if err != nil {
		s.writeServiceError(w, err, "failed to update calendar event")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// handleDeleteEvent godoc
// @Summary      Delete a calendar event
// @Description  Deleting an event that no longer exists succeeds
// @Tags         Calendar
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  StatusResponse
// @Router       /calendar/events/{id} [delete]
func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.calendarService.DeleteEvent(r.Context(), subjectID(r), r.PathValue("id")); err != nil {
		s.writeServiceError(w, err, "failed to delete calendar event")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Notification endpoints

// handleInterviewReminder godoc
// @Summary      Send an interview reminder
// @Tags         Notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.InterviewReminder  true  "Interview"
// @Success      200      {object}  SentResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /notifications/interview [post]
func (s *Server) handleInterviewReminder(w http.ResponseWriter, r *http.Request) {
	var req domain.InterviewReminder
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sent, err := s.notificationService.InterviewReminder(r.Context(), subjectID(r), &req)
	s.writeSent(w, sent, err)
}

// handleDeadlineReminder godoc
// @Summary      Send a deadline reminder
// @Tags         Notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.DeadlineReminder  true  "Deadline"
// @Success      200      {object}  SentResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /notifications/deadline [post]
func (s *Server) handleDeadlineReminder(w http.ResponseWriter, r *http.Request) {
	var req domain.DeadlineReminder
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sent, err := s.notificationService.DeadlineReminder(r.Context(), subjectID(r), &req)
	s.writeSent(w, sent, err)
}

// handleStatusChange godoc
// @Summary      Send a status change notification
// @Tags         Notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.StatusChange  true  "Status change"
// @Success      200      {object}  SentResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /notifications/status [post]
func (s *Server) handleStatusChange(w http.ResponseWriter, r *http.Request) {
	var req domain.StatusChange
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sent, err := s.notificationService.StatusChange(r.Context(), subjectID(r), &req)
	s.writeSent(w, sent, err)
}

func (s *Server) writeSent(w http.ResponseWriter, sent bool, err error) {
	if err != nil {
		s.writeServiceError(w, err, "failed to send notification")
		return
	}
	writeJSON(w, http.StatusOK, SentResponse{Sent: sent})
}

// Helper functions

// writeServiceError maps domain errors to status codes. Validation messages
// are safe to show; everything else gets the fixed fallback message.
func (s *Server) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrSyncDisabled):
		writeError(w, http.StatusConflict, "sync is disabled for this kind of event")
	case errors.Is(err, domain.ErrNotConnected):
		writeError(w, http.StatusPreconditionFailed, "integration not connected")
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "integration is not configured")
	case errors.Is(err, domain.ErrChannelNotFound):
		writeError(w, http.StatusBadRequest, domain.ChannelTargetNotFound.Message())
	case errors.Is(err, domain.ErrChannelBlocked):
		writeError(w, http.StatusForbidden, domain.ChannelBlocked.Message())
	default:
		s.logger.Error(fallback, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
