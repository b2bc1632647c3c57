package embed

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/automenta/mcr/internal/logging"
)

const defaultEmbeddingModel = "gemini-embedding-001"

// geminiEmbedder wraps the Google GenAI embeddings endpoint.
type geminiEmbedder struct {
	client *genai.Client
	model  string
	log    *logging.Logger
}

func newGeminiEmbedder(cfg Config) (*geminiEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embed: gemini provider requires an API key")
	}
	model := cfg.Model
	if model == "" {
		model = defaultEmbeddingModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("embed: failed to create genai client: %w", err)
	}

	return &geminiEmbedder{client: client, model: model, log: logging.Get(logging.CategoryEmbedding)}, nil
}

func (e *geminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		e.log.Warn("embed: EmbedContent failed: %v", err)
		return nil, fmt.Errorf("embed: embed content failed: %w", err)
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("embed: no embeddings returned")
	}
	return result.Embeddings[0].Values, nil
}
