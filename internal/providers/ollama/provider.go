// internal/providers/ollama/provider.go
// Package ollama provides a DefinitionProvider backed by Ollama-compatible
// HTTP endpoints.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cardsmith/internal/appconfig"
	"cardsmith/internal/logging"
)

// Provider implements providers.DefinitionProvider using the Ollama chat API.
type Provider struct {
	client       *http.Client
	timeout      time.Duration
	hostURL      string
	model        string
	systemPrompt string
	sampling     appconfig.Sampling
	streaming    bool
}

// New constructs a Provider from the application configuration and the system
// prompt text loaded at startup.
func New(cfg *appconfig.Config, systemPrompt string) *Provider {
	timeout := cfg.RequestTimeout()
	return &Provider{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		timeout:      timeout,
		hostURL:      cfg.EffectiveHostURL(),
		model:        cfg.EffectiveModel(),
		systemPrompt: systemPrompt,
		sampling:     cfg.Sampling,
		streaming:    cfg.Streaming,
	}
}

// chatMessage is one entry in the chat payload.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// streamChunk defines the structure of a single chunk in a streaming
// response; a non-streaming response uses the same shape with Done set.
type streamChunk struct {
	Model   string `json:"model"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// Define sends the system prompt plus one word per line to /api/chat and
// returns the model's full response text.
func (p *Provider) Define(ctx context.Context, words []string) (string, error) {
	options := map[string]any{}
	if p.sampling.Temperature != nil {
		options["temperature"] = *p.sampling.Temperature
	}
	if p.sampling.TopP != nil {
		options["top_p"] = *p.sampling.TopP
	}

	payload := map[string]any{
		"model": p.model,
		"messages": []chatMessage{
			{Role: "system", Content: p.systemPrompt},
			{Role: "user", Content: strings.Join(words, "\n")},
		},
		"stream": p.streaming,
	}
	if len(options) > 0 {
		payload["options"] = options
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	logging.LogRequest("CARDSMITH->LLM", p.hostURL, p.model, fmt.Sprintf("%d words", len(words)))

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, p.hostURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama: /api/chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		logging.LogRequest("LLM->CARDSMITH", p.hostURL, p.model, raw)
		return "", fmt.Errorf("ollama: /api/chat returned %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	if !p.streaming {
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("ollama: read response: %w", err)
		}
		logging.LogRequest("LLM->CARDSMITH", p.hostURL, p.model, raw)
		var result streamChunk
		if err := json.Unmarshal(raw, &result); err != nil {
			return "", fmt.Errorf("ollama: decode response: %w", err)
		}
		return result.Message.Content, nil
	}

	var content strings.Builder
	decoder := json.NewDecoder(resp.Body)
	for {
		var chunk streamChunk
		if err := decoder.Decode(&chunk); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", fmt.Errorf("ollama: decode stream chunk: %w", err)
		}
		content.WriteString(chunk.Message.Content)
		if chunk.Done {
			break
		}
	}
	logging.LogRequest("LLM->CARDSMITH", p.hostURL, p.model, fmt.Sprintf("%d bytes streamed", content.Len()))
	return content.String(), nil
}

// Close releases any resources held by the provider.
func (p *Provider) Close() error {
	return nil
}
