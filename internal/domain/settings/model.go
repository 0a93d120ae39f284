package settings

import "time"

// Settings is the clinic's single integration settings row.
type Settings struct {
	WhatsAppEnabled bool   `db:"whatsapp_enabled" json:"whatsapp_enabled"`
	WhatsAppAPIURL  string `db:"whatsapp_api_url" json:"whatsapp_api_url"`
	WhatsAppToken   string `db:"whatsapp_token" json:"whatsapp_token"`
	WhatsAppSender  string `db:"whatsapp_sender" json:"whatsapp_sender"`

	SMSEnabled  bool   `db:"sms_enabled" json:"sms_enabled"`
	SMSProvider string `db:"sms_provider" json:"sms_provider"`
	SMSKey      string `db:"sms_key" json:"sms_key"`

	PaymentEnabled    bool   `db:"payment_enabled" json:"payment_enabled"`
	PaymentProvider   string `db:"payment_provider" json:"payment_provider"`
	PaymentMerchantID string `db:"payment_merchant_id" json:"payment_merchant_id"`

	GoogleCalendarSync bool   `db:"google_calendar_sync" json:"google_calendar_sync"`
	GoogleClientID     string `db:"google_client_id" json:"google_client_id"`

	ReminderHour int       `db:"reminder_hour" json:"reminder_hour"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// maskedPlaceholder replaces stored secrets in API responses. A PUT that
// sends the placeholder back keeps the stored value.
const maskedPlaceholder = "********"

// Masked returns a copy safe to serialize: tokens and keys are replaced
// with a fixed placeholder, never partial values.
func (s Settings) Masked() Settings {
	if s.WhatsAppToken != "" {
		s.WhatsAppToken = maskedPlaceholder
	}
	if s.SMSKey != "" {
		s.SMSKey = maskedPlaceholder
	}
	return s
}
