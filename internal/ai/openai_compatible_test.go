package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"hello there"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAICompatibleClient()
	cfg := ChatConfig{BaseURL: server.URL, APIKey: "test-key", Model: "test-model"}

	answer, err := client.Complete(context.Background(), cfg, []ChatMessage{
		{Role: "user", Content: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", answer)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotBody["model"])
	assert.Equal(t, false, gotBody["stream"])
}

func TestComplete_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOpenAICompatibleClient()
	cfg := ChatConfig{BaseURL: server.URL, Model: "m"}

	_, err := client.Complete(context.Background(), cfg, []ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAICompatibleClient()
	_, err := client.Complete(context.Background(), ChatConfig{BaseURL: server.URL}, []ChatMessage{{Role: "user", Content: "x"}})
	require.Error(t, err)
}

func TestEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		w.Write([]byte(`{"data":[{"embedding":[0.1,0.2,0.3]}]}`))
	}))
	defer server.Close()

	client := NewOpenAICompatibleClient()
	cfg := EmbeddingConfig{BaseURL: server.URL, Model: "embed-model"}

	vec, err := client.Embed(context.Background(), cfg, "some text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbed_EmptyInput(t *testing.T) {
	client := NewOpenAICompatibleClient()
	_, err := client.Embed(context.Background(), EmbeddingConfig{BaseURL: "http://unused"}, "   ")
	require.Error(t, err)
}

func TestEmbedBatch(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"data":[{"embedding":[1,0]},{"embedding":[0,1]}]}`))
	}))
	defer server.Close()

	client := NewOpenAICompatibleClient()
	cfg := EmbeddingConfig{BaseURL: server.URL, Model: "embed-model"}

	vecs, err := client.EmbedBatch(context.Background(), cfg, []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{1, 0}, vecs[0])
	assert.Equal(t, []float32{0, 1}, vecs[1])

	input, ok := gotBody["input"].([]interface{})
	require.True(t, ok)
	assert.Len(t, input, 2)
}

func TestEmbedBatch_NoTexts(t *testing.T) {
	client := NewOpenAICompatibleClient()

	vecs, err := client.EmbedBatch(context.Background(), EmbeddingConfig{}, nil)
	require.NoError(t, err)
	assert.Nil(t, vecs)

	_, err = client.EmbedBatch(context.Background(), EmbeddingConfig{}, []string{" ", ""})
	require.Error(t, err)
}

func TestDescribeImage(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"choices":[{"message":{"content":"a red square"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAICompatibleClient()
	cfg := VisionConfig{BaseURL: server.URL, Model: "vision-model", MaxTokens: 64}

	desc, err := client.DescribeImage(context.Background(), cfg, "pic.png", []byte{0x89, 0x50})
	require.NoError(t, err)
	assert.Equal(t, "a red square", desc)
	assert.Equal(t, float64(64), gotBody["max_tokens"])

	messages, ok := gotBody["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 1)
	content := messages[0].(map[string]interface{})["content"].([]interface{})
	require.Len(t, content, 2)
	imagePart := content[1].(map[string]interface{})
	url := imagePart["image_url"].(map[string]interface{})["url"].(string)
	assert.Contains(t, url, "data:image/png;base64,")
}

func TestDescribeImage_EmptyPayload(t *testing.T) {
	client := NewOpenAICompatibleClient()
	_, err := client.DescribeImage(context.Background(), VisionConfig{}, "pic.png", nil)
	require.Error(t, err)
}
