package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Message is a single entry in the chat-completion message array.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateRequest is the request body for a chat-completion call.
type GenerateRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// GenerateResponse carries the completion text extracted from the upstream reply.
type GenerateResponse struct {
	Model    string
	Response string
}

// Provider defines the interface for interacting with a language model.
type Provider interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}

// Options identifies the calling application to the upstream API. OpenRouter
// uses the referer/title pair for attribution and the bearer token for auth.
type Options struct {
	BaseURL string
	APIKey  string
	Referer string
	Title   string
}

type openRouterProvider struct {
	client *http.Client
	opts   Options
}

func NewOpenRouterProvider(opts Options) Provider {
	return &openRouterProvider{
		client: &http.Client{Timeout: 60 * time.Second},
		opts:   opts,
	}
}

// chatCompletionResponse mirrors the upstream wire format. Only the fields we
// read are declared.
type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func (p *openRouterProvider) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	endpoint := p.opts.BaseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.opts.APIKey)
	httpReq.Header.Set("HTTP-Referer", p.opts.Referer)
	httpReq.Header.Set("X-Title", p.opts.Title)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("api returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return nil, fmt.Errorf("could not decode response: %s", string(bodyBytes))
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("response contained no completion choices")
	}

	return &GenerateResponse{
		Model:    chatResp.Model,
		Response: chatResp.Choices[0].Message.Content,
	}, nil
}
