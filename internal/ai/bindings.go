package ai

import "context"

// TextEmbedder binds embedding settings to a client at construction.
type TextEmbedder struct {
	client *OpenAICompatibleClient
	cfg    EmbeddingConfig
}

func NewTextEmbedder(client *OpenAICompatibleClient, cfg EmbeddingConfig) *TextEmbedder {
	return &TextEmbedder{client: client, cfg: cfg}
}

func (e *TextEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.client.Embed(ctx, e.cfg, text)
}

func (e *TextEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return e.client.EmbedBatch(ctx, e.cfg, texts)
}

// ChatCompleter binds chat model settings to a client at construction.
type ChatCompleter struct {
	client *OpenAICompatibleClient
	cfg    ChatConfig
}

func NewChatCompleter(client *OpenAICompatibleClient, cfg ChatConfig) *ChatCompleter {
	return &ChatCompleter{client: client, cfg: cfg}
}

func (c *ChatCompleter) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	return c.client.Complete(ctx, c.cfg, messages)
}
