package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/borrowdesk/library/features/command/createnotification"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	"github.com/AntonStoeckl/borrowdesk/library/shared/shell"
)

// Notification is what a Publisher receives for every newly stored notification.
type Notification struct {
	NotificationID core.NotificationIDString `json:"notificationId"`
	UserID         core.UserIDString         `json:"userId"`
	Title          string                    `json:"title"`
	Message        string                    `json:"message"`
	Kind           core.NotificationKind     `json:"kind"`
	CreatedAt      time.Time                 `json:"createdAt"`
}

// Publisher forwards stored notifications to a delivery channel.
type Publisher interface {
	Publish(ctx context.Context, notification Notification) error
}

// Trigger stores notifications for state transitions.
type Trigger struct {
	handler   shell.CoreCommandHandler[createnotification.Command]
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Trigger)

// WithPublisher fans newly stored notifications out, duplicates suppressed by the dedupe window are not published.
func WithPublisher(publisher Publisher) Option {
	return func(t *Trigger) {
		t.publisher = publisher
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Trigger) {
		t.logger = logger
	}
}

// WithClock replaces time.Now, the clock decides which notifications fall into the dedupe window.
func WithClock(now func() time.Time) Option {
	return func(t *Trigger) {
		t.now = now
	}
}

func NewTrigger(handler shell.CoreCommandHandler[createnotification.Command], options ...Option) *Trigger {
	t := &Trigger{
		handler: handler,
		logger:  slog.Default(),
		now:     time.Now,
	}

	for _, option := range options {
		option(t)
	}

	return t
}

// Dispatch stores the notification for the transition and reports whether a new one was stored.
// Errors are logged, never returned.
func (t *Trigger) Dispatch(ctx context.Context, transition Transition) bool {
	title, message, err := Compose(transition)
	if err != nil {
		t.logger.ErrorContext(ctx, "composing notification failed",
			"kind", transition.Kind, "user_id", transition.UserID, "error", err)

		return false
	}

	command := createnotification.BuildCommand(
		uuid.Must(uuid.NewV7()),
		transition.UserID,
		title,
		message,
		transition.Kind,
		t.now(),
	)

	result, err := t.handler.Handle(ctx, command)
	if err != nil {
		t.logger.ErrorContext(ctx, "storing notification failed",
			"kind", transition.Kind, "user_id", transition.UserID, "error", err)

		return false
	}

	if !result.Succeeded() {
		t.logger.DebugContext(ctx, "duplicate notification suppressed",
			"kind", transition.Kind, "user_id", transition.UserID)

		return false
	}

	if t.publisher != nil {
		notification := Notification{
			NotificationID: command.NotificationID.String(),
			UserID:         command.UserID,
			Title:          command.Title,
			Message:        command.Message,
			Kind:           command.Kind,
			CreatedAt:      command.OccurredAt,
		}

		if publishErr := t.publisher.Publish(ctx, notification); publishErr != nil {
			t.logger.ErrorContext(ctx, "publishing notification failed",
				"notification_id", notification.NotificationID, "error", publishErr)
		}
	}

	return true
}

// DispatchAll dispatches the transitions in order and returns how many new notifications were stored.
func (t *Trigger) DispatchAll(ctx context.Context, transitions ...Transition) int {
	created := 0

	for _, transition := range transitions {
		if t.Dispatch(ctx, transition) {
			created++
		}
	}

	return created
}
