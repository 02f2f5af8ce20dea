package openai

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
	defaultModel = "gpt-4o-mini"
	apiURL       = "https://api.openai.com/v1/chat/completions"

	maxOutputTokens = 1024
)

type OpenAIClient struct {
	apiKey string
	model  string
	client *http.Client
	config common.ClientConfig
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	config := common.DefaultConfig()
	config.Headers = map[string]string{
		"Authorization": "Bearer " + apiKey,
	}
	return &OpenAIClient{
		apiKey: apiKey,
		model:  defaultModel,
		client: common.NewHTTPClient(config),
		config: config,
	}
}

func (c *OpenAIClient) Name() string { return "openai" }

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *OpenAIClient) GenerateCommitMessage(ctx context.Context, prompt *core.Prompt) (string, error) {
	requestBody, err := json.Marshal(map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": prompt.System,
			},
			{
				"role":    "user",
				"content": prompt.User,
			},
		},
		"max_tokens": maxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	body, err := common.PostJSON(ctx, c.client, apiURL, requestBody, c.config)
	if err != nil {
		return "", err
	}

	var response openaiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("API error: %s - %s", response.Error.Type, response.Error.Message)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
