package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mediagent/config"
)

func testProvider(baseURL string) *OpenAIProvider {
	return NewOpenAIProvider(config.LLMProvider{
		Type:    "openai",
		APIKey:  "test-key",
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Models: map[string]config.LLMModel{
			"gpt-4o-mini": {
				Name:            "gpt-4o-mini",
				MaxTokens:       1500,
				Temperature:     0.1,
				CostPer1K:       0.00015,
				CostPer1KOutput: 0.0006,
			},
		},
	})
}

func TestChatWithTokensRoundTrip(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": "hello there"}},
			},
			"usage": map[string]interface{}{"prompt_tokens": 12, "completion_tokens": 3},
		})
	}))
	defer srv.Close()

	p := testProvider(srv.URL)
	reply, in, out, err := p.ChatWithTokens(context.Background(),
		[]Message{{Role: "user", Content: "hi"}}, "gpt-4o-mini", map[string]interface{}{"json": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "hello there" || in != 12 || out != 3 {
		t.Fatalf("unexpected reply %q in=%d out=%d", reply, in, out)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	rf, ok := gotBody["response_format"].(map[string]interface{})
	if !ok || rf["type"] != "json_object" {
		t.Fatalf("expected json response_format, got %v", gotBody["response_format"])
	}
}

func TestChatWithTokensUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := testProvider(srv.URL)
	if _, _, _, err := p.ChatWithTokens(context.Background(),
		[]Message{{Role: "user", Content: "hi"}}, "gpt-4o-mini", nil); err == nil {
		t.Fatalf("expected error on 429")
	}
}

func TestChatWithTokensUnknownModel(t *testing.T) {
	p := testProvider("http://unused")
	if _, _, _, err := p.ChatWithTokens(context.Background(),
		[]Message{{Role: "user", Content: "hi"}}, "gpt-99", nil); err == nil {
		t.Fatalf("expected error for unconfigured model")
	}
}

func TestCalculateCost(t *testing.T) {
	p := testProvider("http://unused")
	cost := p.CalculateCost(1000, 1000, "gpt-4o-mini")
	want := 0.00015 + 0.0006
	if cost < want-1e-9 || cost > want+1e-9 {
		t.Fatalf("expected cost %f, got %f", want, cost)
	}
	if p.CalculateCost(1000, 1000, "gpt-99") != 0 {
		t.Fatalf("unknown model should cost zero")
	}
}
