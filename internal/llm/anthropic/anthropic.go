package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"commitgen/internal/core"
	"commitgen/internal/llm/common"
)

const (
	anthropicVersion = "2023-06-01"
	defaultModel     = "claude-3-5-sonnet-20240620"
	apiURL           = "https://api.anthropic.com/v1/messages"

	maxOutputTokens = 1024
)

type AnthropicClient struct {
	apiKey string
	model  string
	client *http.Client
	config common.ClientConfig
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	config := common.DefaultConfig()
	config.Headers = map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": anthropicVersion,
	}
	return &AnthropicClient{
		apiKey: apiKey,
		model:  defaultModel,
		client: common.NewHTTPClient(config),
		config: config,
	}
}

func (c *AnthropicClient) Name() string { return "anthropic" }

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
	Type string `json:"type"`
}

func (c *AnthropicClient) GenerateCommitMessage(ctx context.Context, prompt *core.Prompt) (string, error) {
	requestBody, err := json.Marshal(map[string]interface{}{
		"model":      c.model,
		"max_tokens": maxOutputTokens,
		"system":     prompt.System,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt.User,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	body, err := common.PostJSON(ctx, c.client, apiURL, requestBody, c.config)
	if err != nil {
		return "", err
	}

	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if response.Type == "error" && response.Error != nil {
		return "", fmt.Errorf("API error: %s - %s", response.Error.Type, response.Error.Message)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("no content in response: %s", string(body))
	}

	return strings.TrimSpace(response.Content[0].Text), nil
}
