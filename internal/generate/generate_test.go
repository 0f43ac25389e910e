// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/medblog-engine/pkg/types"
)

// --- prompt building ---

func TestBuildPrompt(t *testing.T) {
	arts := []types.Article{
		{Title: "Trial A", Authors: "Smith", Journal: "NEJM", Date: "2024-01-01", URL: "https://a.example"},
		{Title: "Guideline B", Authors: "Jones", Journal: "Lancet", Date: "2024-02-01", URL: "https://b.example"},
	}

	prompt, err := BuildPrompt("hypertension", arts)
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}

	for _, want := range []string{
		"medical blog post about hypertension",
		"# Latest Evidence: hypertension",
		"Article 1:",
		"Title: Trial A",
		"Article 2:",
		"Title: Guideline B",
		"## 🎯 Key Points",
		"## 🎯 Bottom Line",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

// --- retry ---

// flakyBackend fails a fixed number of times before succeeding.
type flakyBackend struct {
	failures int
	calls    int
}

func (f *flakyBackend) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", fmt.Errorf("transient error %d", f.calls)
	}
	return "prose", nil
}

func TestWithRetryEventualSuccess(t *testing.T) {
	old := backoffBase
	backoffBase = time.Millisecond
	defer func() { backoffBase = old }()

	b := &flakyBackend{failures: 2}
	got, err := WithRetry(context.Background(), b, "prompt", 3)
	if err != nil {
		t.Fatalf("WithRetry: %v", err)
	}
	if got != "prose" {
		t.Errorf("got %q, want %q", got, "prose")
	}
	if b.calls != 3 {
		t.Errorf("calls = %d, want 3", b.calls)
	}
}

func TestWithRetryExhausted(t *testing.T) {
	old := backoffBase
	backoffBase = time.Millisecond
	defer func() { backoffBase = old }()

	b := &flakyBackend{failures: 100}
	_, err := WithRetry(context.Background(), b, "prompt", 2)
	if err == nil || !strings.Contains(err.Error(), "after 2 retries") {
		t.Errorf("expected exhaustion error, got: %v", err)
	}
	if b.calls != 3 {
		t.Errorf("calls = %d, want 3 (initial + 2 retries)", b.calls)
	}
}

func TestWithRetryContextCancelled(t *testing.T) {
	old := backoffBase
	backoffBase = time.Hour
	defer func() { backoffBase = old }()

	ctx, cancel := context.WithCancel(context.Background())
	b := &flakyBackend{failures: 100}

	done := make(chan error, 1)
	go func() {
		_, err := WithRetry(ctx, b, "prompt", 3)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WithRetry did not return after cancellation")
	}
}

// --- Groq backend ---

func TestGroqBackendGenerate(t *testing.T) {
	var gotReq chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		fmt.Fprint(w, `{"choices": [{"message": {"role": "assistant", "content": "  # A Post\n\nBody.  "}}]}`)
	}))
	defer ts.Close()

	old := groqAPIURL
	groqAPIURL = ts.URL
	defer func() { groqAPIURL = old }()

	g := &GroqBackend{APIKey: "test-key", Model: "llama-3.3-70b-versatile", Client: ts.Client()}
	got, err := g.Generate(context.Background(), "write a post")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if got != "# A Post\n\nBody." {
		t.Errorf("got %q, reply should be trimmed", got)
	}
	if gotReq.Model != "llama-3.3-70b-versatile" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("request messages = %+v", gotReq.Messages)
	}
	if gotReq.Messages[0].Content != "write a post" {
		t.Errorf("request content = %q", gotReq.Messages[0].Content)
	}
}

func TestGroqBackendHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limit"}`, http.StatusTooManyRequests)
	}))
	defer ts.Close()

	old := groqAPIURL
	groqAPIURL = ts.URL
	defer func() { groqAPIURL = old }()

	g := &GroqBackend{Client: ts.Client()}
	_, err := g.Generate(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("expected 429 error, got: %v", err)
	}
}

func TestGroqBackendEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer ts.Close()

	old := groqAPIURL
	groqAPIURL = ts.URL
	defer func() { groqAPIURL = old }()

	g := &GroqBackend{Client: ts.Client()}
	_, err := g.Generate(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Errorf("expected no-choices error, got: %v", err)
	}
}
