package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Redtoridefire/Job-Dashboard/internal/core/domain"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driven/mocks"
	"github.com/Redtoridefire/Job-Dashboard/internal/core/ports/driving"
)

func newNotificationService(t *testing.T, store *mocks.MockIntegrationStore, messenger *mocks.MockMessenger, recorder *mocks.MockRecorder) driving.NotificationService {
	t.Helper()
	cfg := NotificationServiceConfig{
		Store:    store,
		Codec:    newTestCodec(t),
		Recorder: recorder,
	}
	if messenger != nil {
		cfg.Messenger = messenger
	}
	return NewNotificationService(cfg)
}

var (
	interviewAt = time.Date(2025, 3, 20, 14, 30, 0, 0, time.UTC)

	sampleInterview = &domain.InterviewReminder{
		Company:       "Acme",
		Role:          "Backend Engineer",
		InterviewType: "technical",
		ScheduledAt:   interviewAt,
	}
	sampleDeadline = &domain.DeadlineReminder{
		Company:       "Acme",
		Role:          "Backend Engineer",
		Deadline:      interviewAt,
		DaysRemaining: 2,
	}
	sampleStatus = &domain.StatusChange{
		Company:   "Acme",
		Role:      "Backend Engineer",
		OldStatus: "submitted",
		NewStatus: "interviewing",
	}
)

func TestNotification_Sends(t *testing.T) {
	tests := []struct {
		name   string
		send   func(svc driving.NotificationService) (bool, error)
		kind   domain.NotificationKind
		expect string
	}{
		{
			name: "interview",
			send: func(svc driving.NotificationService) (bool, error) {
				return svc.InterviewReminder(context.Background(), "user-1", sampleInterview)
			},
			kind:   domain.NotificationInterview,
			expect: "Interview Reminder",
		},
		{
			name: "deadline",
			send: func(svc driving.NotificationService) (bool, error) {
				return svc.DeadlineReminder(context.Background(), "user-1", sampleDeadline)
			},
			kind:   domain.NotificationDeadline,
			expect: "2 days remaining",
		},
		{
			name: "status",
			send: func(svc driving.NotificationService) (bool, error) {
				return svc.StatusChange(context.Background(), "user-1", sampleStatus)
			},
			kind:   domain.NotificationStatus,
			expect: "_submitted_ → *interviewing*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockIntegrationStore()
			seedChannel(store, "user-1", "123456789", allToggles)
			messenger := mocks.NewMockMessenger()
			recorder := mocks.NewMockRecorder()
			svc := newNotificationService(t, store, messenger, recorder)

			sent, err := tt.send(svc)
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if !sent {
				t.Fatal("expected message to be sent")
			}
			msgs := messenger.Sent()
			if len(msgs) != 1 || msgs[0].ChatID != "123456789" || msgs[0].ParseMode != "Markdown" {
				t.Fatalf("sent = %+v", msgs)
			}
			if !strings.Contains(msgs[0].Text, tt.expect) {
				t.Errorf("text %q does not contain %q", msgs[0].Text, tt.expect)
			}
			if recorder.Messages[tt.kind] != 1 {
				t.Errorf("expected %s message to be recorded", tt.kind)
			}
		})
	}
}

func TestNotification_Skipped(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(store *mocks.MockIntegrationStore)
		messenger bool
	}{
		{
			name:      "no channel",
			setup:     func(store *mocks.MockIntegrationStore) {},
			messenger: true,
		},
		{
			name: "toggle off",
			setup: func(store *mocks.MockIntegrationStore) {
				seedChannel(store, "user-1", "123456789", domain.NotificationToggles{Deadlines: true, StatusChanges: true})
			},
			messenger: true,
		},
		{
			name: "disconnected",
			setup: func(store *mocks.MockIntegrationStore) {
				seedChannel(store, "user-1", "123456789", allToggles)
				store.Disconnect(context.Background(), "user-1", domain.ProviderTelegram)
			},
			messenger: true,
		},
		{
			name: "messaging not configured",
			setup: func(store *mocks.MockIntegrationStore) {
				seedChannel(store, "user-1", "123456789", allToggles)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockIntegrationStore()
			tt.setup(store)
			var messenger *mocks.MockMessenger
			if tt.messenger {
				messenger = mocks.NewMockMessenger()
			}
			svc := newNotificationService(t, store, messenger, mocks.NewMockRecorder())

			sent, err := svc.InterviewReminder(context.Background(), "user-1", sampleInterview)
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if sent {
				t.Error("expected no message")
			}
			if messenger != nil && len(messenger.Sent()) != 0 {
				t.Errorf("sent = %+v", messenger.Sent())
			}
		})
	}
}

func TestNotification_Errors(t *testing.T) {
	store := mocks.NewMockIntegrationStore()
	seedChannel(store, "user-1", "123456789", allToggles)
	messenger := mocks.NewMockMessenger()
	svc := newNotificationService(t, store, messenger, mocks.NewMockRecorder())

	if _, err := svc.StatusChange(context.Background(), "user-1", &domain.StatusChange{Company: "Acme"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing status: got %v, want ErrInvalidInput", err)
	}
	if _, err := svc.DeadlineReminder(context.Background(), "user-1", &domain.DeadlineReminder{Company: "Acme", Deadline: interviewAt, DaysRemaining: -1}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("negative days: got %v, want ErrInvalidInput", err)
	}

	messenger.SendErr = domain.ErrChannelBlocked
	sent, err := svc.InterviewReminder(context.Background(), "user-1", sampleInterview)
	if sent || !errors.Is(err, domain.ErrChannelBlocked) {
		t.Errorf("blocked: sent = %v, err = %v", sent, err)
	}

	store.Err = errors.New("connection refused")
	if _, err := svc.InterviewReminder(context.Background(), "user-1", sampleInterview); err == nil {
		t.Error("expected store error")
	}
}
