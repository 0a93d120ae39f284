// Package aireport generates draft clinical report text by calling an
// OpenAI-compatible chat completion endpoint. The clinic configures the
// endpoint, API key, and model; when no endpoint is configured the client
// is disabled and callers fall back to manual report writing.
package aireport

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

var (
	ErrDisabled      = errors.New("ai report generation is not configured")
	ErrEmptyResponse = errors.New("ai endpoint returned no choices")
)

const (
	defaultTimeout   = 60 * time.Second
	maxResponseBytes = 1 << 20 // 1 MB
)

// systemPrompt frames every completion request. Reports are drafted in
// Turkish because that is the working language of the clinic.
const systemPrompt = "Sen bir klinik psikoloji asistanısın. Sana verilen psikometrik " +
	"test sonuçlarını ve danışan bilgilerini kullanarak Türkçe bir değerlendirme " +
	"raporu taslağı hazırla. Tanı koyma, yalnızca bulguları özetle ve klinisyenin " +
	"değerlendirmesine sunulacak gözlemleri aktar."

// Config holds the client configuration.
type Config struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// Client calls the configured chat completion endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient constructs a Client. An empty endpoint produces a disabled
// client whose Generate returns ErrDisabled.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether an endpoint is configured.
func (c *Client) Enabled() bool {
	return c.cfg.Endpoint != ""
}

// chatMessage is one message in a chat completion request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the OpenAI-compatible request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse is the subset of the response body we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ReportRequest carries the material the model drafts a report from.
type ReportRequest struct {
	ClientName string
	TestName   string
	Findings   string
	Notes      string
}

// prompt renders the user message for a report request.
func (r ReportRequest) prompt() string {
	return fmt.Sprintf(
		"Danışan: %s\nUygulanan test: %s\nBulgular:\n%s\nKlinisyen notları:\n%s\n\nRapor taslağını hazırla.",
		r.ClientName, r.TestName, r.Findings, r.Notes,
	)
}

// Generate sends a chat completion request and returns the drafted report
// text.
func (c *Client) Generate(ctx context.Context, req ReportRequest) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: req.prompt()},
		},
		Temperature: 0.3,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling ai endpoint: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ai endpoint returned status %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("ai endpoint error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
