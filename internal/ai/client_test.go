package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"task-reminder/internal/config"
)

const sampleEntry = `{
	"word": "serendipity",
	"ipa": {"uk": "/ˌser.ənˈdɪp.ə.ti/", "us": "/ˌser.ənˈdɪp.ə.t̬i/"},
	"meaning": {"partOfSpeech": "noun", "vietnamese": "sự tình cờ may mắn"},
	"usage": {"examples": ["Finding that book was pure serendipity."], "collocations": ["pure serendipity"], "grammarPatterns": ["by serendipity"], "commonMistakes": "confused with destiny"},
	"culturalContext": {"etymology": "coined by Horace Walpole", "culturalSignificance": "", "relatedExpressions": ["happy accident"], "nuancesForVietnameseLearners": ""}
}`

func newTestClient(cfg config.AIConfig, url string) *Client {
	c := NewClient(cfg)
	c.baseURL = url
	return c
}

func TestGenerate_Gemini(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-1.5-flash:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("api key not passed as query param")
		}
		resp := geminiResponse{}
		resp.Candidates = append(resp.Candidates, struct {
			Content geminiContent `json:"content"`
		}{Content: geminiContent{Parts: []geminiPart{{Text: sampleEntry}}}})
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := newTestClient(config.AIConfig{Provider: config.ProviderGemini, APIKey: "test-key", Model: "gemini-1.5-flash"}, srv.URL)

	entry, err := c.Generate(context.Background(), "serendipity")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if entry.Word != "serendipity" {
		t.Errorf("Word = %q", entry.Word)
	}
	if entry.Meaning.Vietnamese == "" {
		t.Error("meaning not decoded")
	}
}

func TestGenerate_OpenAI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req openAIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.ResponseFormat.Type != "json_object" {
			t.Errorf("response_format = %q, want json_object", req.ResponseFormat.Type)
		}
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`, sampleEntry)
	}))
	defer srv.Close()

	c := newTestClient(config.AIConfig{Provider: config.ProviderOpenAI, APIKey: "test-key", Model: "gpt-4o-mini"}, srv.URL)

	entry, err := c.Generate(context.Background(), "serendipity")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if entry.Word != "serendipity" {
		t.Errorf("Word = %q", entry.Word)
	}
}

func TestGenerate_Anthropic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got != anthropicVersion {
			t.Errorf("anthropic-version = %q", got)
		}
		fmt.Fprintf(w, `{"content":[{"type":"text","text":%q}]}`, sampleEntry)
	}))
	defer srv.Close()

	c := newTestClient(config.AIConfig{Provider: config.ProviderAnthropic, APIKey: "test-key", Model: "claude-3-haiku-20240307"}, srv.URL)

	entry, err := c.Generate(context.Background(), "serendipity")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if entry.Word != "serendipity" {
		t.Errorf("Word = %q", entry.Word)
	}
}

func TestGenerate_MissingKey(t *testing.T) {
	c := NewClient(config.AIConfig{Provider: config.ProviderOpenAI})
	if _, err := c.Generate(context.Background(), "word"); err == nil {
		t.Error("Generate() accepted an empty API key")
	}
}

func TestPost_NoRetryOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(config.AIConfig{Provider: config.ProviderOpenAI, APIKey: "test-key", Model: "gpt-4o-mini"}, srv.URL)

	if _, err := c.Generate(context.Background(), "word"); err == nil {
		t.Fatal("Generate() ignored a 400")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server called %d times, want 1 (no retry on 4xx)", got)
	}
}

func TestPost_RetriesOnRateLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("retry backoff sleeps")
	}
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
			return
		}
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`, sampleEntry)
	}))
	defer srv.Close()

	c := newTestClient(config.AIConfig{Provider: config.ProviderOpenAI, APIKey: "test-key", Model: "gpt-4o-mini"}, srv.URL)

	entry, err := c.Generate(context.Background(), "serendipity")
	if err != nil {
		t.Fatalf("Generate() error after retry: %v", err)
	}
	if entry.Word != "serendipity" {
		t.Errorf("Word = %q", entry.Word)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("server called %d times, want 2", got)
	}
}

func TestParseEntry_StripsCodeFences(t *testing.T) {
	fenced := "```json\n" + sampleEntry + "\n```"
	entry, err := parseEntry(fenced)
	if err != nil {
		t.Fatalf("parseEntry() error: %v", err)
	}
	if entry.Word != "serendipity" {
		t.Errorf("Word = %q", entry.Word)
	}
}

func TestParseEntry_RejectsGarbage(t *testing.T) {
	if _, err := parseEntry("not json at all"); err == nil {
		t.Error("parseEntry() accepted garbage")
	}
	if _, err := parseEntry(`{"ipa":{}}`); err == nil {
		t.Error("parseEntry() accepted an entry without a word")
	}
}
