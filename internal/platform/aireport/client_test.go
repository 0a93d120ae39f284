package aireport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_Disabled(t *testing.T) {
	c := NewClient(Config{})
	if c.Enabled() {
		t.Error("expected client with no endpoint to be disabled")
	}

	_, err := c.Generate(context.Background(), ReportRequest{TestName: "Beck Depresyon Envanteri"})
	if err != ErrDisabled {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
}

func TestClient_Generate(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Değerlendirme raporu taslağı."}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{
		Endpoint: srv.URL,
		APIKey:   "test-key",
		Model:    "gpt-4o-mini",
	})

	report, err := c.Generate(context.Background(), ReportRequest{
		ClientName: "Mehmet Demir",
		TestName:   "Beck Depresyon Envanteri",
		Findings:   "Toplam puan: 24 (orta düzey)",
		Notes:      "Uyku sorunları devam ediyor",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report != "Değerlendirme raporu taslağı." {
		t.Errorf("unexpected report: %q", report)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth header, got %q", gotAuth)
	}
	if gotBody.Model != "gpt-4o-mini" {
		t.Errorf("expected model gpt-4o-mini, got %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(gotBody.Messages))
	}
	if gotBody.Messages[0].Role != "system" {
		t.Errorf("expected first message to be system, got %q", gotBody.Messages[0].Role)
	}
	if !strings.Contains(gotBody.Messages[1].Content, "Mehmet Demir") {
		t.Errorf("expected user prompt to contain client name, got %q", gotBody.Messages[1].Content)
	}
	if !strings.Contains(gotBody.Messages[1].Content, "Toplam puan: 24") {
		t.Errorf("expected user prompt to contain findings, got %q", gotBody.Messages[1].Content)
	}
}

func TestClient_Generate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, Model: "gpt-4o-mini"})

	_, err := c.Generate(context.Background(), ReportRequest{TestName: "SCL-90-R"})
	if err == nil {
		t.Fatal("expected error on 500 response")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("expected status code in error, got %v", err)
	}
}

func TestClient_Generate_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[],"error":{"message":"invalid model"}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, Model: "nope"})

	_, err := c.Generate(context.Background(), ReportRequest{})
	if err == nil {
		t.Fatal("expected error from API error body")
	}
	if !strings.Contains(err.Error(), "invalid model") {
		t.Errorf("expected api error message, got %v", err)
	}
}

func TestClient_Generate_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, Model: "gpt-4o-mini"})

	_, err := c.Generate(context.Background(), ReportRequest{})
	if err != ErrEmptyResponse {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestClient_Generate_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"choices":[{"message":{"content":"slow"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, Model: "gpt-4o-mini"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Generate(ctx, ReportRequest{})
	if err == nil {
		t.Fatal("expected error when context deadline exceeded")
	}
}
