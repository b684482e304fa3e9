package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"task-reminder/internal/config"
)

const (
	geminiBaseURL    = "https://generativelanguage.googleapis.com/v1beta/models"
	openAIBaseURL    = "https://api.openai.com/v1/chat/completions"
	anthropicBaseURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"

	maxRetries = 3
	initDelay  = 2 * time.Second
)

// Client generates vocabulary entries through the configured LLM provider.
// The three providers take near-identical JSON-mode chat calls; only the
// request envelope differs.
type Client struct {
	cfg config.AIConfig
	// overridable in tests
	baseURL string
	client  *http.Client
}

func NewClient(cfg config.AIConfig) *Client {
	c := &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
	switch cfg.Provider {
	case config.ProviderOpenAI:
		c.baseURL = openAIBaseURL
	case config.ProviderAnthropic:
		c.baseURL = anthropicBaseURL
	default:
		c.baseURL = geminiBaseURL
	}
	return c
}

// Generate asks the provider for the structured entry of one word.
func (c *Client) Generate(ctx context.Context, word string) (*Entry, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key not set", c.cfg.Provider)
	}

	var (
		raw string
		err error
	)
	switch c.cfg.Provider {
	case config.ProviderOpenAI:
		raw, err = c.callOpenAI(ctx, word)
	case config.ProviderAnthropic:
		raw, err = c.callAnthropic(ctx, word)
	default:
		raw, err = c.callGemini(ctx, word)
	}
	if err != nil {
		return nil, err
	}
	return parseEntry(raw)
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature      float64 `json:"temperature"`
		MaxOutputTokens  int     `json:"maxOutputTokens"`
		ResponseMimeType string  `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (c *Client) callGemini(ctx context.Context, word string) (string, error) {
	req := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: systemPrompt + "\n\n" + userPrompt(word)}}},
		},
	}
	req.GenerationConfig.Temperature = 0.7
	req.GenerationConfig.MaxOutputTokens = 2048
	req.GenerationConfig.ResponseMimeType = "application/json"

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.cfg.Model, c.cfg.APIKey)
	body, err := c.post(ctx, url, nil, req)
	if err != nil {
		return "", err
	}

	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type openAIResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) callOpenAI(ctx context.Context, word string) (string, error) {
	req := openAIRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(word)},
		},
		Temperature: 0.7,
		MaxTokens:   2048,
	}
	req.ResponseFormat.Type = "json_object"

	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	body, err := c.post(ctx, c.baseURL, headers, req)
	if err != nil {
		return "", err
	}

	var resp openAIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

type anthropicRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system,omitempty"`
	Messages  []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *Client) callAnthropic(ctx context.Context, word string) (string, error) {
	req := anthropicRequest{
		Model:     c.cfg.Model,
		MaxTokens: 2048,
		System:    systemPrompt,
		Messages: []chatMessage{
			{Role: "user", Content: userPrompt(word)},
		},
	}

	headers := map[string]string{
		"x-api-key":         c.cfg.APIKey,
		"anthropic-version": anthropicVersion,
	}
	body, err := c.post(ctx, c.baseURL, headers, req)
	if err != nil {
		return "", err
	}

	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic returned no text content")
}

// post sends the JSON payload, retrying on rate limits and server errors
// with exponential backoff.
func (c *Client) post(ctx context.Context, url string, headers map[string]string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := initDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return respBody, nil
		}
		lastErr = fmt.Errorf("%s: status %d: %s", c.cfg.Provider, resp.StatusCode, truncate(string(respBody), 300))
		if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < 500 {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
