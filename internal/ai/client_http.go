package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"commitgen.dev/commitgen/internal/engine"
	commitgenerrors "commitgen.dev/commitgen/internal/errors"
)

// Environment variables read by NewHTTPClient.
const (
	// EnvBaseURL overrides the backend base URL.
	EnvBaseURL = "COMMITGEN_BASE_URL"
	// EnvAPIKey holds the bearer token, if the backend wants one.
	EnvAPIKey = "COMMITGEN_API_KEY"
)

// DefaultBaseURL points at a local model server speaking the OpenAI
// chat-completions protocol.
const DefaultBaseURL = "http://localhost:11434/v1"

// HTTPClient talks to any OpenAI-compatible chat-completions backend and
// implements engine.Generator. It keeps no per-run state: every engine
// invocation probes and generates from scratch.
type HTTPClient struct {
	model   string
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient creates a client for the given model. The base URL and API
// key come from the environment; the base URL falls back to DefaultBaseURL.
func NewHTTPClient(model string) *HTTPClient {
	base := strings.TrimSpace(os.Getenv(EnvBaseURL))
	if base == "" {
		base = DefaultBaseURL
	}
	return &HTTPClient{
		model:   model,
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  strings.TrimSpace(os.Getenv(EnvAPIKey)),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Model returns the model name this client requests.
func (c *HTTPClient) Model() string {
	return c.model
}

// Load lists the backend's models and verifies the configured one is
// served. Failures come back as ModelUnavailableError so callers can match
// on errors.ErrModelUnavailable.
func (c *HTTPClient) Load(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return commitgenerrors.NewModelUnavailableError(c.model, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return commitgenerrors.NewModelUnavailableError(c.model, resp.Status)
	}

	var parsed modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return commitgenerrors.NewModelUnavailableError(c.model, fmt.Sprintf("decode model list: %v", err))
	}
	for _, m := range parsed.Data {
		if m.ID == c.model {
			return nil
		}
	}
	return commitgenerrors.NewModelUnavailableError(c.model, "not served by backend")
}

// Generate sends one chat-completion request and returns the first choice,
// unwrapped from any markdown fence.
func (c *HTTPClient) Generate(ctx context.Context, prompt string, params engine.GenerateParams) (string, error) {
	temperature := params.Temperature
	if !params.Sample {
		temperature = 0
	}
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": temperature,
	}
	if params.MaxNewTokens > 0 {
		payload["max_tokens"] = params.MaxNewTokens
	}
	if params.TopP > 0 {
		payload["top_p"] = params.TopP
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("completion request failed: %s - %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var parsed completionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	content := parsed.FirstContent()
	if content == "" {
		return "", fmt.Errorf("empty completion response")
	}
	return stripCodeFences(content), nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type completionsResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (r completionsResponse) FirstContent() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(r.Choices[0].Message.Content)
}

// stripCodeFences unwraps output the model wrapped in a triple-backtick
// fence, with or without a language tag.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if i := strings.Index(text, "\n"); i > 0 {
			text = text[i+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
	}
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
