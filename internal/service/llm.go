package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/pageza/receita/backend/config"
)

const (
	defaultGeminiModel = "gemini-2.0-flash"
	geminiAPIVersion   = "v1beta"

	defaultDeepSeekURL   = "https://api.deepseek.com/v1"
	defaultDeepSeekModel = "deepseek-chat"
)

// Generator produces a single JSON-formatted completion for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Provider names the backing service, used for logs and metrics
	Provider() string
}

// NewGenerator builds the Generator selected by cfg.LLMProvider. The returned
// value is safe for concurrent use and is meant to be shared for the life of
// the process.
func NewGenerator(cfg *config.Config) (Generator, error) {
	httpClient := &http.Client{Timeout: cfg.LLMTimeout}

	switch cfg.LLMProvider {
	case config.ProviderGemini:
		client, err := NewGeminiClient(cfg.LLMAPIKey, cfg.LLMAPIURL, cfg.LLMModel, httpClient)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderDeepSeek:
		return NewDeepSeekClient(cfg.LLMAPIKey, cfg.LLMAPIURL, cfg.LLMModel, httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.LLMProvider)
	}
}

// GeminiClient talks to the Google Gemini API through the genai SDK
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new GeminiClient. An empty baseURL keeps the SDK
// endpoint; an empty model falls back to gemini-2.0-flash.
func NewGeminiClient(apiKey, baseURL, model string, httpClient *http.Client) (*GeminiClient, error) {
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    baseURL,
			APIVersion: geminiAPIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Provider implements Generator
func (c *GeminiClient) Provider() string { return config.ProviderGemini }

// Generate sends the prompt to Gemini asking for an application/json reply
// and returns the answer text of the first candidate. Thought parts are
// skipped.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", upstreamError(ctx, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked: %s", ErrUpstream, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no candidates in response", ErrUpstream)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		text.WriteString(part.Text)
	}
	return text.String(), nil
}

// upstreamError wraps an SDK failure in ErrUpstream, keeping the context
// error reachable with errors.Is
func upstreamError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return fmt.Errorf("%w: %w: %w", ErrUpstream, err, ctxErr)
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}

// DeepSeekClient talks to the DeepSeek (OpenAI-compatible) chat completions API
type DeepSeekClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewDeepSeekClient creates a new DeepSeekClient. Empty baseURL and model
// fall back to the public endpoint and deepseek-chat.
func NewDeepSeekClient(apiKey, baseURL, model string, httpClient *http.Client) *DeepSeekClient {
	if baseURL == "" {
		baseURL = defaultDeepSeekURL
	}
	if model == "" {
		model = defaultDeepSeekModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &DeepSeekClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  httpClient,
	}
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a request to the DeepSeek API
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Provider implements Generator
func (c *DeepSeekClient) Provider() string { return config.ProviderDeepSeek }

// Generate sends the prompt as a single user message in JSON mode and returns
// the content of the first choice
func (c *DeepSeekClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := Request{
		Model:          c.model,
		Messages:       []Message{{Role: "user", Content: prompt}},
		ResponseFormat: map[string]string{"type": "json_object"},
	}
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	var result chatResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/chat/completions", headers, reqBody, &result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no response from API", ErrUpstream)
	}

	return result.Choices[0].Message.Content, nil
}

// postJSON sends body as JSON and decodes a 2xx reply into out
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to send request: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: API request failed with status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", ErrUpstream, err)
	}
	return nil
}
