package llmgw

import (
	"context"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/automenta/mcr/internal/errs"
	"github.com/automenta/mcr/internal/logging"
)

const defaultGeminiModel = "gemini-2.5-pro"

// geminiGateway calls Google's GenAI SDK to drive text generation.
type geminiGateway struct {
	client      *genai.Client
	model       string
	timeout     time.Duration
	mu          sync.Mutex
	lastRequest time.Time
	log         *logging.Logger
}

func newGeminiGateway(cfg Config) (Gateway, error) {
	if cfg.APIKey == "" {
		return nil, errs.New(errs.LLMRequestFailed, "gemini: api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errs.Newf(errs.LLMRequestFailed, "gemini: client init failed: %v", err)
	}

	return &geminiGateway{
		client:  client,
		model:   model,
		timeout: timeout,
		log:     logging.Get(logging.CategoryLLM),
	}, nil
}

func (g *geminiGateway) throttle() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if elapsed := time.Since(g.lastRequest); elapsed < 200*time.Millisecond {
		time.Sleep(200*time.Millisecond - elapsed)
	}
	g.lastRequest = time.Now()
}

func (g *geminiGateway) Complete(ctx context.Context, systemPrompt, userPrompt string) (*Response, error) {
	g.throttle()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(userPrompt, genai.RoleUser)}
	config := &genai.GenerateContentConfig{}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		g.log.Warn("gemini completion failed: %v", err)
		return nil, errs.Newf(errs.LLMRequestFailed, "gemini request failed: %v", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, errs.New(errs.LLMEmptyResponse, "gemini returned no candidates")
	}

	text := resp.Text()
	if text == "" {
		return nil, errs.New(errs.LLMEmptyResponse, "gemini returned no text content")
	}

	usage := Usage{}
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	return &Response{Text: text, Usage: usage}, nil
}
