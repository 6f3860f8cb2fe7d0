package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/orienta/internal/profile"
	"github.com/spigell/orienta/internal/results"
	"github.com/spigell/orienta/internal/session"
	"github.com/spigell/orienta/internal/store"
)

func TestBuildEngineWithoutGenerator(t *testing.T) {
	t.Parallel()

	config := &Config{
		AI:    &AIConfig{Enabled: false},
		Store: store.Config{Driver: store.DriverMemory},
	}
	engine, release, err := buildEngine(context.Background(), config, profile.Static{Age: 17}, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("buildEngine: %v", err)
	}
	defer release()

	resp, err := engine.Start(context.Background(), "cli")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if resp.Question == nil || resp.Question.Source != "fallback" {
		t.Fatalf("expected a fallback question, got %+v", resp.Question)
	}
}

func TestNewGenerator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *AIConfig
		wantErr string
	}{
		{name: "nil config disables generation"},
		{name: "disabled", cfg: &AIConfig{Enabled: false, Provider: "openai"}},
		{name: "unsupported provider", cfg: &AIConfig{Enabled: true, Provider: "openai"}, wantErr: "unsupported ai provider"},
		{name: "missing gemini section", cfg: &AIConfig{Enabled: true}, wantErr: "gemini configuration is required"},
		{name: "missing key", cfg: &AIConfig{Enabled: true, Gemini: &GeminiConfig{}}, wantErr: "gemini api key is not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gen, err := newGenerator(context.Background(), tt.cfg, zap.NewNop())
			if tt.wantErr == "" {
				if err != nil || gen != nil {
					t.Fatalf("expected no generator and no error, got %v, %v", gen, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewProfileProviderDefaultsToStatic(t *testing.T) {
	t.Parallel()

	p, err := newProfileProvider(ProfileConfig{Static: profile.Static{Age: 15, Name: "Ana"}}, zap.NewNop())
	if err != nil {
		t.Fatalf("newProfileProvider: %v", err)
	}
	if _, ok := p.(profile.Static); !ok {
		t.Fatalf("expected a static provider, got %T", p)
	}
}

func TestPrintRecommendations(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	resp := &session.Response{Taxonomy: session.Taxonomy{Area: "Tecnología", SubArea: "Desarrollo de software"}}
	recs := []results.Recommendation{{
		Title:       "Ingeniería de Software",
		Description: "Diseñar y construir aplicaciones.",
		Sector:      "Tecnología",
		Skills:      []results.Skill{{Name: "Programación", PossessedByUser: true}, {Name: "Bases de datos"}},
	}}
	printRecommendations(&buf, resp, recs)

	out := buf.String()
	for _, want := range []string{"Tecnología / Desarrollo de software", "1. Ingeniería de Software (Tecnología)", "✓ Programación", "· Bases de datos"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output misses %q:\n%s", want, out)
		}
	}
}

func TestTimeoutsCoverSlowestPath(t *testing.T) {
	t.Parallel()

	request, write := timeouts(&Config{Results: results.Config{MaxRetries: 2}})
	if request != 161*time.Second {
		t.Fatalf("expected three 45s results calls plus two capped backoffs and slack, got %s", request)
	}
	if write != request+requestSlack {
		t.Fatalf("write timeout must outlast the handler, got %s", write)
	}

	config := &Config{AI: &AIConfig{Gemini: &GeminiConfig{Timeout: 5 * time.Second}}}
	config.Server.WriteTimeout = 5 * time.Minute
	request, write = timeouts(config)
	if request != 28*time.Second || write != 5*time.Minute {
		t.Fatalf("unexpected timeouts %s/%s", request, write)
	}

	config.Server.RequestTimeout = time.Minute
	if request, _ = timeouts(config); request != time.Minute {
		t.Fatalf("explicit request timeout must win, got %s", request)
	}
}
