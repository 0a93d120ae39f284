package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/platform/notification"
)

// ContactLookup resolves the names and numbers reminders are rendered with.
type ContactLookup interface {
	ClientContact(ctx context.Context, id uuid.UUID) (name, phone string, err error)
	PersonnelName(ctx context.Context, id uuid.UUID) (string, error)
}

// Notifier dispatches a rendered template to a recipient.
type Notifier interface {
	SendFromTemplate(ctx context.Context, templateID string, data map[string]string, recipient string) (*notification.Notification, error)
}

// Reminder fans appointment reminders out over the notification manager.
// It is driven by a daily tick from main.
type Reminder struct {
	svc      *Service
	contacts ContactLookup
	notifier Notifier
	log      zerolog.Logger
}

func NewReminder(svc *Service, contacts ContactLookup, notifier Notifier, log zerolog.Logger) *Reminder {
	return &Reminder{svc: svc, contacts: contacts, notifier: notifier, log: log}
}

// SendDue sends one reminder per appointment starting on the given day.
// Failures are logged and skipped; the count of successfully sent reminders
// is returned.
func (r *Reminder) SendDue(ctx context.Context, day time.Time) (int, error) {
	due, err := r.svc.DueReminders(ctx, day)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, apt := range due {
		clientName, phone, err := r.contacts.ClientContact(ctx, apt.ClientID)
		if err != nil || phone == "" {
			r.log.Warn().Str("appointment_id", apt.ID.String()).Msg("reminder skipped: no client contact")
			continue
		}
		provider, err := r.contacts.PersonnelName(ctx, apt.PersonnelID)
		if err != nil {
			provider = ""
		}

		data := map[string]string{
			"client_name": clientName,
			"date":        apt.StartsAt.Format("02.01.2006"),
			"time":        apt.StartsAt.Format("15:04"),
			"provider":    provider,
		}
		n, err := r.notifier.SendFromTemplate(ctx, "appointment-reminder", data, phone)
		if err != nil {
			r.log.Error().Err(err).Str("appointment_id", apt.ID.String()).Msg("reminder send failed")
			continue
		}
		if n != nil && n.Status == "failed" {
			r.log.Error().Str("appointment_id", apt.ID.String()).Msg("reminder delivery failed")
			continue
		}
		sent++
	}
	return sent, nil
}
