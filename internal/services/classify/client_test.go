package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"librarian/internal/config"
	"librarian/internal/rules"
)

func testRules(t *testing.T) *rules.Set {
	t.Helper()
	set, err := rules.New([]rules.Rule{
		{Name: "ai", Description: "Machine learning and AI.", Path: "/Research/AI"},
		{Name: "bio", Description: "Biology and life sciences.", Path: "/Research/Bio"},
	})
	if err != nil {
		t.Fatalf("rules.New: %v", err)
	}
	return set
}

func completionBody(content string) map[string]any {
	return map[string]any{
		"choices": []any{
			map[string]any{
				"message": map[string]any{"content": content},
			},
		},
	}
}

func TestClientClassify(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			ResponseFormat map[string]string `json:"response_format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.ResponseFormat["type"] != "json_object" {
			t.Fatalf("expected json_object response format, got %v", req.ResponseFormat)
		}
		gotPrompt = req.Messages[len(req.Messages)-1].Content

		content := `{"title":"Attention Is All You Need","authors":["Ashish Vaswani"],` +
			`"summary":"Introduces the transformer.","abstract":"We propose...",` +
			`"categories":["ai","made-up","ai"]}`
		if err := json.NewEncoder(w).Encode(completionBody(content)); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(config.LLM{APIKey: "test", BaseURL: server.URL, Model: "demo"}, nil)
	result, matched, err := client.Classify(context.Background(), "paper text", testRules(t))
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if result.Title != "Attention Is All You Need" {
		t.Fatalf("unexpected title: %q", result.Title)
	}
	if len(result.Authors) != 1 || result.Authors[0] != "Ashish Vaswani" {
		t.Fatalf("unexpected authors: %v", result.Authors)
	}
	// Unknown and duplicate category names are dropped.
	if len(matched) != 1 || matched[0].Name != "ai" {
		t.Fatalf("unexpected matches: %v", matched)
	}
	if !strings.Contains(gotPrompt, "<name>bio</name>") {
		t.Fatalf("prompt missing rule catalog: %s", gotPrompt)
	}
	if !strings.Contains(gotPrompt, "<text>paper text</text>") {
		t.Fatalf("prompt missing paper text: %s", gotPrompt)
	}
}

func TestClientClassifyCodeFence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := "```json\n{\"title\":\"T\",\"authors\":[],\"summary\":\"S\",\"abstract\":\"A\",\"categories\":[]}\n```"
		if err := json.NewEncoder(w).Encode(completionBody(content)); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(config.LLM{APIKey: "test", BaseURL: server.URL, Model: "demo"}, nil)
	result, _, err := client.Classify(context.Background(), "paper text", testRules(t))
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if result.Title != "T" || result.Summary != "S" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestClientClassifyRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		content := `{"title":"T","authors":[],"summary":"S","abstract":"A","categories":["ai"]}`
		if err := json.NewEncoder(w).Encode(completionBody(content)); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	var slept []time.Duration
	client := NewClient(
		config.LLM{APIKey: "test", BaseURL: server.URL, Model: "demo"},
		nil,
		WithSleeper(func(d time.Duration) { slept = append(slept, d) }),
	)
	_, matched, err := client.Classify(context.Background(), "paper text", testRules(t))
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
	if len(slept) != 1 || slept[0] != time.Second {
		t.Fatalf("expected one 1s sleep from Retry-After, got %v", slept)
	}
	if len(matched) != 1 {
		t.Fatalf("unexpected matches: %v", matched)
	}
}

func TestClientClassifyDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(
		config.LLM{APIKey: "bad", BaseURL: server.URL, Model: "demo"},
		nil,
		WithSleeper(func(time.Duration) {}),
	)
	if _, _, err := client.Classify(context.Background(), "paper text", testRules(t)); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single call, got %d", calls.Load())
	}
}

func TestClientClassifyRequiresInput(t *testing.T) {
	client := NewClient(config.LLM{APIKey: "test", BaseURL: "http://unused", Model: "demo"}, nil)
	if _, _, err := client.Classify(context.Background(), "   ", testRules(t)); err == nil {
		t.Fatal("expected error for empty text")
	}
	client = NewClient(config.LLM{BaseURL: "http://unused", Model: "demo"}, nil)
	if _, _, err := client.Classify(context.Background(), "text", testRules(t)); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestDecodeModelJSONWithProse(t *testing.T) {
	var parsed struct {
		Title string `json:"title"`
	}
	content := "Here is the extraction you asked for: {\"title\": \"T\"} hope that helps"
	if err := decodeModelJSON(content, &parsed); err != nil {
		t.Fatalf("decodeModelJSON returned error: %v", err)
	}
	if parsed.Title != "T" {
		t.Fatalf("unexpected title: %q", parsed.Title)
	}
}
