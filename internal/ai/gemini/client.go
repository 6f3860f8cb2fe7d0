package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/orienta/internal/ai"
	"github.com/spigell/orienta/internal/logger"
	"github.com/spigell/orienta/internal/utils"
)

const (
	defaultModel        = "gemini-2.5-flash"
	// DefaultTimeout bounds a single GenerateContent call.
	DefaultTimeout      = 45 * time.Second
	defaultMaxLogLength = 200
	responseMIMEType    = "application/json"
)

type contentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Options tune a Generator.
type Options struct {
	Model        string
	Timeout      time.Duration
	MaxLogLength int
	Logger       *zap.Logger
}

// Generator implements ai.Generator on top of the Google GenAI client.
type Generator struct {
	models    contentModels
	modelName string
	timeout   time.Duration
	maxLogLen int
	logger    *zap.Logger
}

var _ ai.Generator = (*Generator)(nil)

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey string, opts Options) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, opts), nil
}

func newGenerator(models contentModels, opts Options) *Generator {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxLogLength <= 0 {
		opts.MaxLogLength = defaultMaxLogLength
	}

	return &Generator{
		models:    models,
		modelName: model,
		timeout:   opts.Timeout,
		maxLogLen: opts.MaxLogLength,
		logger:    logger.WithCommonFields(opts.Logger, "gemini", model),
	}
}

// Generate sends the request to Gemini with a JSON response constraint and
// returns the concatenated text of the response.
func (g *Generator) Generate(ctx context.Context, req ai.Request) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	config := &genai.GenerateContentConfig{ResponseMIMEType: responseMIMEType}
	if req.MaxOutputTokens > 0 {
		config.MaxOutputTokens = req.MaxOutputTokens
	}
	if system := strings.TrimSpace(req.System); system != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	g.logger.Debug("gemini generate content request",
		zap.String("kind", string(req.Kind)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, g.maxLogLen)),
	)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.models.GenerateContent(callCtx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", classify(err)
	}

	output := responseText(resp)
	if output == "" {
		return "", fmt.Errorf("%w: gemini api returned empty response", ai.ErrMalformed)
	}

	g.logger.Debug("gemini generate content response",
		zap.String("kind", string(req.Kind)),
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", utils.TruncateForLog(output, g.maxLogLen)),
	)

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

// classify maps transport errors onto the ai error kinds.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ai.ErrTimeout, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ai.ErrRateLimited, err)
		case http.StatusGatewayTimeout, http.StatusRequestTimeout:
			return fmt.Errorf("%w: %v", ai.ErrTimeout, err)
		case http.StatusServiceUnavailable:
			return fmt.Errorf("%w: %v", ai.ErrRateLimited, err)
		}
	}

	return fmt.Errorf("generate content: %w", err)
}
