package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrChannelDisabled is returned when a send is attempted on a channel the
// clinic has switched off in settings.
var ErrChannelDisabled = errors.New("notification channel disabled")

// WhatsAppConfig carries the gateway settings a WhatsApp send needs.
type WhatsAppConfig struct {
	Enabled bool
	APIURL  string
	Token   string
	Sender  string
}

// SMSConfig carries the gateway settings an SMS send needs.
type SMSConfig struct {
	Enabled  bool
	Provider string
	Key      string
}

// Config sources are called per send so that admin settings changes take
// effect without a restart.
type (
	WhatsAppConfigSource func(ctx context.Context) (WhatsAppConfig, error)
	SMSConfigSource      func(ctx context.Context) (SMSConfig, error)
)

const senderTimeout = 15 * time.Second

// HTTPWhatsAppSender posts messages to a WhatsApp Business API compatible
// gateway.
type HTTPWhatsAppSender struct {
	cfg        WhatsAppConfigSource
	httpClient *http.Client
}

func NewHTTPWhatsAppSender(cfg WhatsAppConfigSource) *HTTPWhatsAppSender {
	return &HTTPWhatsAppSender{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: senderTimeout},
	}
}

func (s *HTTPWhatsAppSender) SendWhatsApp(ctx context.Context, to, body string) error {
	cfg, err := s.cfg(ctx)
	if err != nil {
		return fmt.Errorf("load whatsapp settings: %w", err)
	}
	if !cfg.Enabled || cfg.APIURL == "" {
		return ErrChannelDisabled
	}

	payload, err := json.Marshal(map[string]string{
		"from": cfg.Sender,
		"to":   to,
		"body": body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.Token)

	return s.do(req)
}

func (s *HTTPWhatsAppSender) do(req *http.Request) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp gateway: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp gateway returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}

// Gateway endpoints for the SMS providers the settings screen offers.
var smsGateways = map[string]string{
	"netgsm":       "https://api.netgsm.com.tr/sms/rest/v2/send",
	"iletimerkezi": "https://api.iletimerkezi.com/v1/send-sms/json",
}

// HTTPSMSSender posts messages to the configured SMS provider's HTTP
// gateway.
type HTTPSMSSender struct {
	cfg        SMSConfigSource
	httpClient *http.Client
}

func NewHTTPSMSSender(cfg SMSConfigSource) *HTTPSMSSender {
	return &HTTPSMSSender{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: senderTimeout},
	}
}

func (s *HTTPSMSSender) SendSMS(ctx context.Context, to, body string) error {
	cfg, err := s.cfg(ctx)
	if err != nil {
		return fmt.Errorf("load sms settings: %w", err)
	}
	if !cfg.Enabled {
		return ErrChannelDisabled
	}
	endpoint, ok := smsGateways[cfg.Provider]
	if !ok {
		return fmt.Errorf("unknown sms provider: %q", cfg.Provider)
	}

	payload, err := json.Marshal(map[string]string{
		"to":   to,
		"body": body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.Key)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}
