// Package webhook pushes clinic events to external integrations such as
// accounting or calendar-sync tools. Endpoints subscribe to event patterns
// like "appointment.created" or "appointment.*"; deliveries are signed
// with HMAC-SHA256 and logged per attempt so failed pushes can be retried
// from the admin panel.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Resources that produce webhook traffic. Subscription patterns are
// validated against this set at registration so a typo like
// "apointment.created" fails loudly instead of never matching.
const (
	ResourceAppointment = "appointment"
	ResourceAssessment  = "assessment"
	ResourceNotice      = "notice"
)

var knownResources = map[string]struct{}{
	ResourceAppointment: {},
	ResourceAssessment:  {},
	ResourceNotice:      {},
}

// Event is a clinic event in the form delivered to endpoints.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Resource  string          `json:"resource"`
	ResID     string          `json:"resource_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Result summarizes the outcome of delivering one event to one endpoint.
type Result struct {
	EndpointID string `json:"endpoint_id"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code"`
	Error      string `json:"error,omitempty"`
}

// maxResponseBody caps how much of an endpoint's response is kept in the
// delivery log.
const maxResponseBody = 1024

// Option configures a Manager.
type Option func(*Manager)

// WithHTTPClient overrides the HTTP client used for deliveries.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) { m.client = client }
}

// WithMaxAttempts sets how many times a delivery is tried before giving up.
func WithMaxAttempts(n int) Option {
	return func(m *Manager) { m.maxAttempts = n }
}

// WithBackoff sets the delay before the first retry; it doubles per attempt.
func WithBackoff(d time.Duration) Option {
	return func(m *Manager) { m.backoff = d }
}

// Manager registers endpoints and delivers signed events to them.
type Manager struct {
	store       Store
	client      *http.Client
	maxAttempts int
	backoff     time.Duration
	log         zerolog.Logger
}

// NewManager creates a Manager backed by the given store.
func NewManager(store Store, logger zerolog.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:       store,
		client:      &http.Client{Timeout: 10 * time.Second},
		maxAttempts: 3,
		backoff:     time.Second,
		log:         logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register validates and stores a new endpoint. An empty secret gets a
// generated one, returned once in the response so the caller can record it.
func (m *Manager) Register(ctx context.Context, epURL, secret, label string, events []string) (*Endpoint, error) {
	if err := validateURL(epURL); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("at least one event pattern is required")
	}
	for _, pattern := range events {
		if err := validatePattern(pattern); err != nil {
			return nil, err
		}
	}
	if secret == "" {
		var err error
		secret, err = generateSecret()
		if err != nil {
			return nil, fmt.Errorf("generate secret: %w", err)
		}
	}

	ep := &Endpoint{
		ID:        uuid.NewString(),
		URL:       epURL,
		Secret:    secret,
		Events:    events,
		Label:     label,
		Status:    StatusActive,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.store.CreateEndpoint(ctx, ep); err != nil {
		return nil, err
	}
	return ep, nil
}

// GetEndpoint returns a registered endpoint.
func (m *Manager) GetEndpoint(ctx context.Context, id string) (*Endpoint, error) {
	return m.store.GetEndpoint(ctx, id)
}

// ListEndpoints returns a page of registered endpoints and the total count.
func (m *Manager) ListEndpoints(ctx context.Context, limit, offset int) ([]*Endpoint, int, error) {
	return m.store.ListEndpoints(ctx, limit, offset)
}

// DeleteEndpoint removes an endpoint. Its delivery log is kept.
func (m *Manager) DeleteEndpoint(ctx context.Context, id string) error {
	return m.store.DeleteEndpoint(ctx, id)
}

// PauseEndpoint stops deliveries to an endpoint without deleting it.
func (m *Manager) PauseEndpoint(ctx context.Context, id string) error {
	return m.setStatus(ctx, id, StatusPaused)
}

// ResumeEndpoint re-enables deliveries to a paused endpoint.
func (m *Manager) ResumeEndpoint(ctx context.Context, id string) error {
	return m.setStatus(ctx, id, StatusActive)
}

func (m *Manager) setStatus(ctx context.Context, id, status string) error {
	ep, err := m.store.GetEndpoint(ctx, id)
	if err != nil {
		return err
	}
	ep.Status = status
	return m.store.UpdateEndpoint(ctx, ep)
}

// Deliver pushes the event to every active endpoint whose subscription
// matches the event type, retrying each with exponential backoff. It
// returns one Result per attempted endpoint.
func (m *Manager) Deliver(ctx context.Context, ev Event) []Result {
	endpoints, _, err := m.store.ListEndpoints(ctx, 1000, 0)
	if err != nil {
		m.log.Error().Err(err).Msg("list webhook endpoints")
		return nil
	}

	var results []Result
	for _, ep := range endpoints {
		if ep.Status != StatusActive || !subscribed(ep.Events, ev.Type) {
			continue
		}
		results = append(results, m.deliverWithRetry(ctx, ep, ev))
	}
	return results
}

// deliverWithRetry posts the event up to maxAttempts times, recording
// every attempt in the delivery log.
func (m *Manager) deliverWithRetry(ctx context.Context, ep *Endpoint, ev Event) Result {
	var rec *Delivery
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		rec = m.attempt(ctx, ep, ev, attempt)
		if rec.Status == "success" {
			return Result{EndpointID: ep.ID, Success: true, StatusCode: rec.StatusCode}
		}
		if attempt == m.maxAttempts {
			break
		}
		select {
		case <-time.After(m.backoff << (attempt - 1)):
		case <-ctx.Done():
			m.log.Warn().Str("endpoint_id", ep.ID).Str("event", ev.Type).Msg("webhook delivery abandoned")
			return Result{EndpointID: ep.ID, StatusCode: rec.StatusCode, Error: rec.Error}
		}
	}

	m.log.Warn().
		Str("endpoint_id", ep.ID).
		Str("event", ev.Type).
		Int("attempts", m.maxAttempts).
		Str("error", rec.Error).
		Msg("webhook delivery failed")
	return Result{EndpointID: ep.ID, StatusCode: rec.StatusCode, Error: rec.Error}
}

// attempt performs a single signed POST and records the outcome.
func (m *Manager) attempt(ctx context.Context, ep *Endpoint, ev Event, attempt int) *Delivery {
	rec := &Delivery{
		ID:          uuid.NewString(),
		EndpointID:  ep.ID,
		EventID:     ev.ID,
		EventType:   ev.Type,
		Attempt:     attempt,
		DeliveredAt: time.Now().UTC(),
	}

	body, err := json.Marshal(ev)
	if err != nil {
		rec.Status = "failed"
		rec.Error = err.Error()
		m.record(ctx, rec)
		return rec
	}
	rec.Payload = body

	statusCode, respBody, err := m.post(ctx, ep, ev, body)
	rec.StatusCode = statusCode
	rec.ResponseBody = respBody
	switch {
	case err != nil:
		rec.Status = "failed"
		rec.Error = err.Error()
	case statusCode >= 200 && statusCode < 300:
		rec.Status = "success"
	default:
		rec.Status = "failed"
		rec.Error = fmt.Sprintf("endpoint returned status %d", statusCode)
	}
	m.record(ctx, rec)
	return rec
}

func (m *Manager) record(ctx context.Context, rec *Delivery) {
	if err := m.store.CreateDelivery(ctx, rec); err != nil {
		m.log.Error().Err(err).Str("endpoint_id", rec.EndpointID).Msg("record webhook delivery")
	}
}

// post sends the signed payload. A non-nil error means the request never
// completed; HTTP-level failures are reported through the status code.
func (m *Manager) post(ctx context.Context, ep *Endpoint, ev Event, body []byte) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(body))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-ID", ev.ID)
	req.Header.Set("X-Webhook-Event", ev.Type)
	req.Header.Set("X-Webhook-Timestamp", ev.Timestamp.UTC().Format(time.RFC3339))
	req.Header.Set("X-Webhook-Signature", "sha256="+SignPayload(body, ep.Secret))

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	return resp.StatusCode, string(respBody), nil
}

// RetryDelivery re-sends a previously logged delivery once, on demand.
func (m *Manager) RetryDelivery(ctx context.Context, deliveryID string) (*Delivery, error) {
	prev, err := m.store.GetDelivery(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	ep, err := m.store.GetEndpoint(ctx, prev.EndpointID)
	if err != nil {
		return nil, err
	}

	var ev Event
	if err := json.Unmarshal(prev.Payload, &ev); err != nil {
		return nil, fmt.Errorf("stored payload unreadable: %w", err)
	}

	return m.attempt(ctx, ep, ev, prev.Attempt+1), nil
}

// TestEndpoint sends a synthetic event so an admin can verify a newly
// registered endpoint before real traffic reaches it.
func (m *Manager) TestEndpoint(ctx context.Context, endpointID string) (*Delivery, error) {
	ep, err := m.store.GetEndpoint(ctx, endpointID)
	if err != nil {
		return nil, err
	}

	ev := Event{
		ID:        uuid.NewString(),
		Type:      "webhook.test",
		Resource:  "webhook",
		ResID:     ep.ID,
		Payload:   json.RawMessage(`{"message":"test delivery"}`),
		Timestamp: time.Now().UTC(),
	}
	return m.attempt(ctx, ep, ev, 1), nil
}

// GetDeliveryLogs returns a page of the endpoint's delivery log, newest
// first.
func (m *Manager) GetDeliveryLogs(ctx context.Context, endpointID string, limit, offset int) ([]*Delivery, int, error) {
	return m.store.ListDeliveries(ctx, endpointID, limit, offset)
}

// subscribed reports whether any of the endpoint's patterns match the
// event type.
func subscribed(patterns []string, eventType string) bool {
	for _, p := range patterns {
		if patternMatches(p, eventType) {
			return true
		}
	}
	return false
}

// patternMatches supports exact types plus one-sided wildcards:
// "appointment.*" matches every appointment event and "*.created" matches
// creation events on every resource.
func patternMatches(pattern, eventType string) bool {
	if pattern == eventType {
		return true
	}
	pRes, pAction, ok := splitType(pattern)
	if !ok {
		return false
	}
	eRes, eAction, ok := splitType(eventType)
	if !ok {
		return false
	}
	if pRes != "*" && pRes != eRes {
		return false
	}
	if pAction != "*" && pAction != eAction {
		return false
	}
	return true
}

func splitType(s string) (resource, action string, ok bool) {
	i := strings.IndexByte(s, '.')
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// validatePattern rejects subscriptions that could never match a clinic
// event.
func validatePattern(pattern string) error {
	resource, action, ok := splitType(pattern)
	if !ok {
		return fmt.Errorf("invalid event pattern %q: want resource.action", pattern)
	}
	if resource == "*" && action == "*" {
		return fmt.Errorf("invalid event pattern %q: at most one wildcard", pattern)
	}
	if resource != "*" {
		if _, known := knownResources[resource]; !known {
			return fmt.Errorf("unknown event resource %q", resource)
		}
	}
	return nil
}

func validateURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("url host is required")
	}
	return nil
}

func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// SignPayload computes the hex HMAC-SHA256 of the payload.
func SignPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a signature produced by SignPayload in constant
// time. Receivers use the same scheme to authenticate deliveries.
func VerifySignature(payload []byte, secret, signature string) bool {
	expected := SignPayload(payload, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
