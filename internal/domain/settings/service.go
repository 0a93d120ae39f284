package settings

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// GetSettings returns the settings with secrets masked.
func (s *Service) GetSettings(ctx context.Context) (*Settings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	masked := stored.Masked()
	return &masked, nil
}

// UpdateSettings validates and saves the incoming settings. A secret field
// carrying the mask placeholder keeps its stored value, so clients can PUT
// back what they GET without wiping credentials. The saved copy is returned
// masked.
func (s *Service) UpdateSettings(ctx context.Context, in *Settings) (*Settings, error) {
	if in.ReminderHour < 0 || in.ReminderHour > 23 {
		return nil, fmt.Errorf("reminder_hour must be between 0 and 23")
	}
	if in.WhatsAppEnabled && in.WhatsAppAPIURL == "" {
		return nil, fmt.Errorf("whatsapp_api_url is required when whatsapp is enabled")
	}
	if in.SMSEnabled && in.SMSProvider == "" {
		return nil, fmt.Errorf("sms_provider is required when sms is enabled")
	}

	stored, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if in.WhatsAppToken == maskedPlaceholder {
		in.WhatsAppToken = stored.WhatsAppToken
	}
	if in.SMSKey == maskedPlaceholder {
		in.SMSKey = stored.SMSKey
	}

	if err := s.repo.Save(ctx, in); err != nil {
		return nil, err
	}

	// Log the change without the secret values.
	s.log.Info().
		Bool("whatsapp_enabled", in.WhatsAppEnabled).
		Bool("sms_enabled", in.SMSEnabled).
		Bool("payment_enabled", in.PaymentEnabled).
		Bool("google_calendar_sync", in.GoogleCalendarSync).
		Int("reminder_hour", in.ReminderHour).
		Msg("clinic settings updated")

	masked := in.Masked()
	return &masked, nil
}
