package gemini

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
	defaultModel = "gemini-2.0-flash"
	apiURLFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	maxOutputTokens = 512
)

type GeminiClient struct {
	apiKey string
	model  string
	client *http.Client
	config common.ClientConfig
}

func NewGeminiClient(apiKey string) *GeminiClient {
	config := common.DefaultConfig()
	return &GeminiClient{
		apiKey: apiKey,
		model:  defaultModel,
		client: common.NewHTTPClient(config),
		config: config,
	}
}

func (c *GeminiClient) Name() string { return "gemini" }

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) GenerateCommitMessage(ctx context.Context, prompt *core.Prompt) (string, error) {
	requestBody, err := json.Marshal(map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]string{
					{"text": prompt.User},
				},
			},
		},
		"systemInstruction": map[string]interface{}{
			"parts": []map[string]string{
				{"text": prompt.System},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      0.7,
			"topP":             1.0,
			"maxOutputTokens":  maxOutputTokens,
			"responseMimeType": "text/plain",
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf(apiURLFormat, c.model, c.apiKey)
	body, err := common.PostJSON(ctx, c.client, url, requestBody, c.config)
	if err != nil {
		return "", err
	}

	var response geminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidate text in response: %s", string(body))
	}

	return strings.TrimSpace(response.Candidates[0].Content.Parts[0].Text), nil
}
