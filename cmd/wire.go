package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/orienta/internal/ai"
	"github.com/spigell/orienta/internal/ai/gemini"
	"github.com/spigell/orienta/internal/diversity"
	"github.com/spigell/orienta/internal/evidence"
	"github.com/spigell/orienta/internal/generation"
	"github.com/spigell/orienta/internal/logger"
	"github.com/spigell/orienta/internal/metrics"
	"github.com/spigell/orienta/internal/profile"
	"github.com/spigell/orienta/internal/prompt"
	"github.com/spigell/orienta/internal/resolver"
	"github.com/spigell/orienta/internal/results"
	"github.com/spigell/orienta/internal/secrets"
	"github.com/spigell/orienta/internal/session"
	"github.com/spigell/orienta/internal/store"
	"github.com/spigell/orienta/internal/taxonomy"
)

// buildEngine wires the engine from config. The returned func releases the store.
func buildEngine(ctx context.Context, config *Config, profiles profile.Provider, m *metrics.Metrics, logger *zap.Logger) (*session.Engine, func(), error) {
	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("building generator: %w", err)
	}
	if generator == nil {
		logger.Warn("generation service is disabled, serving fallback questions and results only")
	}

	builder, err := prompt.New(config.Schedule, config.Limits)
	if err != nil {
		return nil, nil, fmt.Errorf("building prompt builder: %w", err)
	}

	if profiles == nil {
		profiles, err = newProfileProvider(config.Profile, logger)
		if err != nil {
			return nil, nil, err
		}
	}

	repo, err := store.Open(ctx, config.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %q store: %w", config.Store.Driver, err)
	}
	release := func() {}
	if c, ok := repo.(store.Closer); ok {
		release = func() {
			if err := c.Close(); err != nil {
				logger.Warn("closing store", zap.Error(err))
			}
		}
	}

	orchestrator := generation.New(generator, generation.Options{
		Config:  config.Engine.Generation,
		Guard:   config.Engine.Guard,
		Metrics: m,
		Logger:  logger,
	})
	for _, name := range config.Engine.Guard.DisabledChecks {
		orchestrator.Guard().DisableByName(name, "disabled by configuration")
	}
	for _, st := range orchestrator.Guard().Describe() {
		logger.Debug("guard check", zap.String("check", st.Name), zap.Bool("enabled", st.Enabled), zap.String("reason", st.Reason))
	}

	engine, err := session.NewEngine(session.Deps{
		Store:       repo,
		Accumulator: evidence.New(taxonomy.All(), logger),
		Resolver:    resolver.New(config.Engine.Resolver, logger),
		Diversity:   diversity.New(config.Diversity, taxonomy.Required()),
		Builder:     builder,
		Generator:   orchestrator,
		Synthesizer: results.New(generator, builder, profile.Comparator{}, config.Results, m, logger),
		Profiles:    profiles,
		Metrics:     m,
		Logger:      logger,
	}, config.Engine.Session)
	if err != nil {
		release()
		return nil, nil, err
	}

	logger.Info("engine ready",
		zap.String("store", config.Store.Driver),
		zap.Int("total_questions", engine.TotalQuestions()),
		zap.Bool("generation_enabled", generator != nil),
	)

	return engine, release, nil
}

// newGenerator returns nil when generation is disabled.
func newGenerator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Generator, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, gemini.Options{
		Model:        cfg.Gemini.Model,
		Timeout:      cfg.Gemini.Timeout,
		MaxLogLength: cfg.Gemini.MaxLogLength,
		Logger:       logger.WithCommonFields(log, "gemini", cfg.Gemini.Model),
	})
	if err != nil {
		return nil, err
	}

	return generator, nil
}

func newProfileProvider(cfg ProfileConfig, log *zap.Logger) (profile.Provider, error) {
	if cfg.HTTP == nil || strings.TrimSpace(cfg.HTTP.BaseURL) == "" {
		return cfg.Static, nil
	}

	token, err := secrets.Load(secrets.Source{
		Name:  "profile service token",
		Value: cfg.HTTP.Token,
		File:  cfg.HTTP.TokenFile,
	})
	if err != nil {
		return nil, err
	}

	provider := profile.NewHTTPProvider(cfg.HTTP.BaseURL, token, log)
	if cfg.HTTP.UserAgent != "" {
		provider.UserAgent = cfg.HTTP.UserAgent
	}

	return provider, nil
}
