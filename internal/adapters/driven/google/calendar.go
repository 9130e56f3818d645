package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven"
)

// Ensure CalendarClient implements the interface.
var _ driven.CalendarAPI = (*CalendarClient)(nil)

const primaryCalendar = "primary"

// CalendarClient manages events on the primary calendar through the Calendar v3 API.
type CalendarClient struct {
	endpoint string
	base     *http.Client
}

// NewCalendarClient creates a client. An empty endpoint uses Google's.
func NewCalendarClient(endpoint string, base *http.Client) *CalendarClient {
	if base == nil {
		base = &http.Client{Timeout: 30 * time.Second}
	}
	return &CalendarClient{endpoint: endpoint, base: base}
}

// service builds a per-call API client authorized with the given access token.
func (c *CalendarClient) service(ctx context.Context, accessToken string) (*calendar.Service, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return svc, nil
}

// CreateEvent inserts an event and returns it with its id and link.
func (c *CalendarClient) CreateEvent(ctx context.Context, accessToken string, event *domain.CalendarEvent) (*domain.CalendarEvent, error) {
	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	created, err := svc.Events.Insert(primaryCalendar, toAPIEvent(event)).Context(ctx).Do()
	if err != nil {
		return nil, apiError(err)
	}
	return fromAPIEvent(created), nil
}

// GetEvent fetches one event.
func (c *CalendarClient) GetEvent(ctx context.Context, accessToken, eventID string) (*domain.CalendarEvent, error) {
	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	ev, err := svc.Events.Get(primaryCalendar, eventID).Context(ctx).Do()
	if err != nil {
		return nil, apiError(err)
	}
	return fromAPIEvent(ev), nil
}

// UpdateEvent patches only the fields set in patch.
func (c *CalendarClient) UpdateEvent(ctx context.Context, accessToken, eventID string, patch *domain.EventPatch) (*domain.CalendarEvent, error) {
	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	ev := &calendar.Event{}
	if patch.Summary != nil {
		ev.Summary = *patch.Summary
		ev.ForceSendFields = append(ev.ForceSendFields, "Summary")
	}
	if patch.Description != nil {
		ev.Description = *patch.Description
		ev.ForceSendFields = append(ev.ForceSendFields, "Description")
	}
	if patch.Location != nil {
		ev.Location = *patch.Location
		ev.ForceSendFields = append(ev.ForceSendFields, "Location")
	}
	if patch.Start != nil {
		ev.Start = &calendar.EventDateTime{DateTime: patch.Start.Format(time.RFC3339)}
	}
	if patch.End != nil {
		ev.End = &calendar.EventDateTime{DateTime: patch.End.Format(time.RFC3339)}
	}

	updated, err := svc.Events.Patch(primaryCalendar, eventID, ev).Context(ctx).Do()
	if err != nil {
		return nil, apiError(err)
	}
	return fromAPIEvent(updated), nil
}

// DeleteEvent removes an event. Events already gone are not an error.
func (c *CalendarClient) DeleteEvent(ctx context.Context, accessToken, eventID string) error {
	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return err
	}

	err = svc.Events.Delete(primaryCalendar, eventID).Context(ctx).Do()
	if err != nil {
		err = apiError(err)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// ListEvents returns single (expanded) events in the range ordered by start time.
func (c *CalendarClient) ListEvents(ctx context.Context, accessToken string, r domain.EventRange) ([]*domain.CalendarEvent, error) {
	svc, err := c.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	call := svc.Events.List(primaryCalendar).
		SingleEvents(true).
		OrderBy("startTime")
	if !r.TimeMin.IsZero() {
		call = call.TimeMin(r.TimeMin.Format(time.RFC3339))
	}
	if !r.TimeMax.IsZero() {
		call = call.TimeMax(r.TimeMax.Format(time.RFC3339))
	}

	var events []*domain.CalendarEvent
	err = call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			events = append(events, fromAPIEvent(item))
		}
		return nil
	})
	if err != nil {
		return nil, apiError(err)
	}
	return events, nil
}

func toAPIEvent(e *domain.CalendarEvent) *calendar.Event {
	ev := &calendar.Event{
		Summary:     e.Summary,
		Description: e.Description,
		Location:    e.Location,
		Start:       &calendar.EventDateTime{DateTime: e.Start.Format(time.RFC3339), TimeZone: e.TimeZone},
		End:         &calendar.EventDateTime{DateTime: e.End.Format(time.RFC3339), TimeZone: e.TimeZone},
	}
	if len(e.Reminders) > 0 {
		reminders := &calendar.EventReminders{
			UseDefault:      false,
			ForceSendFields: []string{"UseDefault"},
		}
		for _, r := range e.Reminders {
			reminders.Overrides = append(reminders.Overrides, &calendar.EventReminder{
				Method:  r.Method,
				Minutes: int64(r.Minutes),
			})
		}
		ev.Reminders = reminders
	}
	return ev
}

func fromAPIEvent(ev *calendar.Event) *domain.CalendarEvent {
	out := &domain.CalendarEvent{
		ID:          ev.Id,
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		HTMLLink:    ev.HtmlLink,
	}
	if ev.Start != nil {
		out.Start = parseEventTime(ev.Start)
		out.TimeZone = ev.Start.TimeZone
	}
	if ev.End != nil {
		out.End = parseEventTime(ev.End)
	}
	if ev.Reminders != nil {
		for _, r := range ev.Reminders.Overrides {
			out.Reminders = append(out.Reminders, domain.EventReminder{Method: r.Method, Minutes: int(r.Minutes)})
		}
	}
	return out
}

// parseEventTime reads a timed or all-day event boundary.
func parseEventTime(dt *calendar.EventDateTime) time.Time {
	if dt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, dt.DateTime); err == nil {
			return t
		}
	}
	if dt.Date != "" {
		if t, err := time.Parse(time.DateOnly, dt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

// apiError maps Calendar API failures onto domain errors.
func apiError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound, http.StatusGone:
			return fmt.Errorf("calendar event: %w", domain.ErrNotFound)
		}
		return &domain.ProviderError{
			Provider:    domain.ProviderGoogleCalendar,
			StatusCode:  gerr.Code,
			Description: gerr.Message,
		}
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrProvider, domain.ProviderGoogleCalendar, err)
}
