package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"path/filepath"
)

// VisionConfig holds API settings for multimodal description calls.
type VisionConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
}

const describeInstruction = "Describe the contents of this image in detail."

// VisionDescriber binds model settings to a client at construction so callers
// hold a single-method capability rather than the full client.
type VisionDescriber struct {
	client *OpenAICompatibleClient
	cfg    VisionConfig
}

func NewVisionDescriber(client *OpenAICompatibleClient, cfg VisionConfig) *VisionDescriber {
	return &VisionDescriber{client: client, cfg: cfg}
}

func (d *VisionDescriber) DescribeImage(ctx context.Context, name string, data []byte) (string, error) {
	return d.client.DescribeImage(ctx, d.cfg, name, data)
}

// DescribeImage submits the raw image bytes to the multimodal endpoint and
// returns the model's free-text description. Temperature is pinned to zero and
// the output-token budget is capped; upstream failures propagate as-is.
func (c *OpenAICompatibleClient) DescribeImage(ctx context.Context, cfg VisionConfig, name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image payload is empty")
	}

	mimeType := mime.TypeByExtension(filepath.Ext(name))
	if mimeType == "" {
		mimeType = "image/png"
	}
	dataURI := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 512
	}

	reqBody := map[string]interface{}{
		"model": cfg.Model,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": describeInstruction},
					{"type": "image_url", "image_url": map[string]string{"url": dataURI}},
				},
			},
		},
		"temperature": 0,
		"max_tokens":  maxTokens,
		"stream":      false,
	}
	return c.postChatCompletion(ctx, ChatConfig{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey, Model: cfg.Model}, reqBody)
}
