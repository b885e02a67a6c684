package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rahmet_export/internal/config"
	"rahmet_export/internal/llm"

	"go.uber.org/zap"
)

func TestClientDisabledWithoutCredentials(t *testing.T) {
	client, err := llm.NewClient(config.Config{LLMModel: "some/model"}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled without an API key")
	}
	if _, err := client.Summarize(context.Background(), "t", nil, nil); !errors.Is(err, llm.ErrNotConfigured) {
		t.Fatalf("err=%v, want ErrNotConfigured", err)
	}

	var nilClient *llm.Client
	if nilClient.Enabled() {
		t.Fatalf("nil client reports enabled")
	}
}

func TestSummaryPromptTruncates(t *testing.T) {
	rows := make([][]any, 60)
	for i := range rows {
		rows[i] = []any{"Abay", i, ""}
	}

	prompt := llm.SummaryPrompt("Филиалы", []string{"Филиал", "Оплат", "Rating"}, rows)
	lines := strings.Split(strings.TrimSpace(prompt), "\n")
	// title, headers, 50 rows and the remainder note
	if len(lines) != 53 {
		t.Fatalf("lines=%d, want 53", len(lines))
	}
	if lines[1] != "Филиал | Оплат | Rating" {
		t.Fatalf("headers line=%q", lines[1])
	}
	if lines[2] != "Abay | 0 | " {
		t.Fatalf("first row=%q", lines[2])
	}
	if !strings.Contains(lines[52], "10") {
		t.Fatalf("remainder line=%q", lines[52])
	}
}

func TestSummarizeCallsChatCompletions(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"gen-1","object":"chat.completion","model":"test/model","choices":[{"index":0,"message":{"role":"assistant","content":"  Оборот растёт.  "},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	client, err := llm.NewClient(config.Config{
		LLMBaseURL: srv.URL,
		LLMAPIKey:  "key",
		LLMModel:   "test/model",
		Timeout:    5 * time.Second,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	text, err := client.Summarize(context.Background(), "Филиалы", []string{"Филиал"}, [][]any{{"Abay"}})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if text != "Оборот растёт." {
		t.Fatalf("text=%q", text)
	}
	if gotModel != "test/model" {
		t.Fatalf("model=%q", gotModel)
	}
}
