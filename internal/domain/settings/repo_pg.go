package settings

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const settingsCols = `whatsapp_enabled, whatsapp_api_url, whatsapp_token, whatsapp_sender,
	sms_enabled, sms_provider, sms_key,
	payment_enabled, payment_provider, payment_merchant_id,
	google_calendar_sync, google_client_id,
	reminder_hour, updated_at`

// Get returns the single settings row. Row id 1 is seeded by migration, so
// missing rows only happen on an unmigrated database.
func (r *repoPG) Get(ctx context.Context) (*Settings, error) {
	var s Settings
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+settingsCols+` FROM clinic_settings WHERE id = 1`).Scan(
		&s.WhatsAppEnabled, &s.WhatsAppAPIURL, &s.WhatsAppToken, &s.WhatsAppSender,
		&s.SMSEnabled, &s.SMSProvider, &s.SMSKey,
		&s.PaymentEnabled, &s.PaymentProvider, &s.PaymentMerchantID,
		&s.GoogleCalendarSync, &s.GoogleClientID,
		&s.ReminderHour, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repoPG) Save(ctx context.Context, s *Settings) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE clinic_settings SET
			whatsapp_enabled=$1, whatsapp_api_url=$2, whatsapp_token=$3, whatsapp_sender=$4,
			sms_enabled=$5, sms_provider=$6, sms_key=$7,
			payment_enabled=$8, payment_provider=$9, payment_merchant_id=$10,
			google_calendar_sync=$11, google_client_id=$12,
			reminder_hour=$13, updated_at=now()
		WHERE id = 1`,
		s.WhatsAppEnabled, s.WhatsAppAPIURL, s.WhatsAppToken, s.WhatsAppSender,
		s.SMSEnabled, s.SMSProvider, s.SMSKey,
		s.PaymentEnabled, s.PaymentProvider, s.PaymentMerchantID,
		s.GoogleCalendarSync, s.GoogleClientID,
		s.ReminderHour,
	)
	return err
}
