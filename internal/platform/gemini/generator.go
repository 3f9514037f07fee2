// Package gemini implements the generation.Generator interface with
// Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"google.golang.org/genai"

	"github.com/recitelabs/recite-api/internal/config"
	"github.com/recitelabs/recite-api/internal/generation"
)

// Generator calls the Gemini API with retry and exponential backoff.
type Generator struct {
	logger *slog.Logger
	cfg    config.LLMConfig
	client *genai.Client
}

// NewGenerator creates a Gemini-backed generator from the LLM config.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger: logger.With(slog.String("component", "gemini_generator")),
		cfg:    cfg,
		client: client,
	}, nil
}

// GenerateContent implements generation.Generator. It renders the
// prompt for the request and calls the API, retrying transient
// failures with exponential backoff plus jitter. Safety blocks and
// empty responses are permanent and returned immediately.
func (g *Generator) GenerateContent(ctx context.Context, req generation.Request) (string, error) {
	prompt, err := generation.BuildContentPrompt(req)
	if err != nil {
		return "", err
	}
	return g.call(ctx, prompt)
}

// GenerateStructure produces a course-outline response in the marker
// grammar the structure parser accepts.
func (g *Generator) GenerateStructure(ctx context.Context, courseName, description string) (string, error) {
	prompt, err := generation.BuildStructurePrompt(courseName, description)
	if err != nil {
		return "", err
	}
	return g.call(ctx, prompt)
}

func (g *Generator) call(ctx context.Context, prompt string) (string, error) {
	maxRetries := g.cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	baseDelay := g.cfg.RetryDelaySeconds
	if baseDelay < 1 {
		baseDelay = 2
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		g.logger.InfoContext(ctx, "calling Gemini API",
			"attempt", attempt+1,
			"max_attempts", maxRetries+1,
			"model", g.cfg.ModelName)

		text, transient, err := g.generateOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attempt+1,
			"error", err)

		if !transient || attempt == maxRetries {
			break
		}

		// Exponential backoff with jitter.
		delay := time.Duration(float64(baseDelay)*math.Pow(2, float64(attempt))) * time.Second
		delay += time.Duration(rng.Int63n(int64(time.Second)))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, lastErr)
}

// generateOnce makes a single API call. The transient result reports
// whether the failure is worth retrying.
func (g *Generator) generateOnce(ctx context.Context, prompt string) (string, bool, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.ModelName, genai.Text(prompt), nil)
	if err != nil {
		return "", true, err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", false, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", false, generation.ErrContentBlocked
	}

	text := resp.Text()
	if text == "" {
		return "", false, fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}
	return text, false, nil
}
