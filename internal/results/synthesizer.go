// Package results turns the evidence of a finished interview into exactly
// three career recommendations.
package results

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/spigell/orienta/internal/ai"
	"github.com/spigell/orienta/internal/evidence"
	"github.com/spigell/orienta/internal/metrics"
	"github.com/spigell/orienta/internal/prompt"
	"github.com/spigell/orienta/internal/taxonomy"
	"github.com/spigell/orienta/internal/utils"
)

// Count is the number of recommendations every result set holds.
const Count = 3

// Source tells where a result set came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

var errTooFew = errors.New("fewer recommendations than required")

// Skill is a recommended skill and whether the respondent reported having it.
type Skill struct {
	Name            string `json:"name"`
	PossessedByUser bool   `json:"possessedByUser"`
}

// Recommendation is one career suggestion.
type Recommendation struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Outcomes       string   `json:"outcomes"`
	EducationLevel string   `json:"educationLevel"`
	Sector         string   `json:"sector"`
	Skills         []Skill  `json:"skills"`
	StudyPaths     []string `json:"studyPaths"`
}

// Comparator marks the skills of a recommendation the respondent already has.
type Comparator interface {
	Enrich(rec Recommendation, declared []string) Recommendation
}

// Input is the finished interview as seen by the synthesizer.
type Input struct {
	Area           string
	SubArea        string
	Role           string
	UserSummary    string
	Evidence       *evidence.Ledger
	DeclaredSkills []string
}

// Result is a synthesized recommendation set.
type Result struct {
	Recommendations []Recommendation
	Source          Source
	Domains         []evidence.Ranked
	Err             error
}

// Config controls how hard the synthesizer tries before falling back.
type Config struct {
	// CloseRatio is the share of the top weight the runner-up needs to be included.
	CloseRatio     float64       `mapstructure:"close-ratio"`
	MaxRetries     uint64        `mapstructure:"max-retries"`
	BackoffInitial time.Duration `mapstructure:"backoff-initial"`
	BackoffMax     time.Duration `mapstructure:"backoff-max"`
}

// DefaultConfig returns the stock synthesizer settings.
func DefaultConfig() Config {
	return Config{CloseRatio: 0.8, MaxRetries: 2, BackoffInitial: time.Second, BackoffMax: 8 * time.Second}
}

// Budget is the longest Synthesize waits on the generator when every call is
// bounded by callTimeout. Backoff waits are counted at their cap.
func (c Config) Budget(callTimeout time.Duration) time.Duration {
	backoffMax := c.BackoffMax
	if backoffMax <= 0 {
		backoffMax = DefaultConfig().BackoffMax
	}
	return time.Duration(c.MaxRetries+1)*callTimeout + time.Duration(c.MaxRetries)*backoffMax
}

// Synthesizer builds the final recommendations.
type Synthesizer struct {
	generator  ai.Generator
	builder    *prompt.Builder
	comparator Comparator
	cfg        Config
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// New creates a Synthesizer. A nil generator always serves the deterministic set.
func New(generator ai.Generator, builder *prompt.Builder, comparator Comparator, cfg Config, m *metrics.Metrics, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := DefaultConfig()
	if cfg.CloseRatio <= 0 || cfg.CloseRatio > 1 {
		cfg.CloseRatio = d.CloseRatio
	}
	if cfg.BackoffInitial <= 0 {
		cfg.BackoffInitial = d.BackoffInitial
	}
	if cfg.BackoffMax <= 0 {
		cfg.BackoffMax = d.BackoffMax
	}

	return &Synthesizer{
		generator:  generator,
		builder:    builder,
		comparator: comparator,
		cfg:        cfg,
		metrics:    m,
		logger:     logger,
	}
}

// Synthesize always returns exactly Count recommendations.
func (s *Synthesizer) Synthesize(ctx context.Context, in Input) Result {
	domains := s.LeadingDomains(in.Evidence, in.Area)
	res := Result{Domains: domains}

	recs, err := s.generate(ctx, in, domains)
	if err != nil {
		s.logger.Warn("serving fallback recommendations", zap.Error(err))
		s.metrics.Fallback(string(ai.KindRecommendations))
		recs = Fallback(domains)
		res.Source = SourceFallback
		res.Err = err
	} else {
		res.Source = SourceGenerated
	}

	for i := range recs {
		if s.comparator != nil {
			recs[i] = s.comparator.Enrich(recs[i], in.DeclaredSkills)
		}
	}
	res.Recommendations = recs
	s.metrics.Results(string(res.Source))

	return res
}

func (s *Synthesizer) generate(ctx context.Context, in Input, domains []evidence.Ranked) ([]Recommendation, error) {
	if s.generator == nil || s.builder == nil {
		return nil, errors.New("no generator configured")
	}

	req := s.builder.BuildResults(prompt.ResultsInput{
		Area:        in.Area,
		SubArea:     in.SubArea,
		Role:        in.Role,
		UserSummary: in.UserSummary,
		Skills:      in.DeclaredSkills,
		Domains:     domains,
	})

	var recs []Recommendation
	op := func() error {
		start := time.Now()
		raw, err := s.generator.Generate(ctx, req)
		if err != nil {
			s.metrics.ObserveGeneration(string(ai.KindRecommendations), "error", time.Since(start))
			if ai.IsTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}

		payload, err := ai.ParseRecommendations(raw)
		if err != nil {
			s.metrics.ObserveGeneration(string(ai.KindRecommendations), "malformed", time.Since(start))
			s.logger.Debug("malformed recommendations", zap.String("raw", utils.TruncateForLog(raw, 200)))
			return backoff.Permanent(err)
		}
		if len(payload.Recommendations) < Count {
			s.metrics.ObserveGeneration(string(ai.KindRecommendations), "malformed", time.Since(start))
			return backoff.Permanent(fmt.Errorf("%w: got %d", errTooFew, len(payload.Recommendations)))
		}

		s.metrics.ObserveGeneration(string(ai.KindRecommendations), "accepted", time.Since(start))
		recs = make([]Recommendation, 0, Count)
		for _, p := range payload.Recommendations[:Count] {
			recs = append(recs, fromPayload(p))
		}
		return nil
	}

	if err := backoff.Retry(op, s.newBackOff(ctx)); err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}

	return recs, nil
}

func (s *Synthesizer) newBackOff(ctx context.Context) backoff.BackOff {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = s.cfg.BackoffInitial
	expo.MaxInterval = s.cfg.BackoffMax
	expo.Multiplier = 2
	expo.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(expo, s.cfg.MaxRetries), ctx)
}

// LeadingDomains returns the top domain, plus the runner-up when its weight is
// at least CloseRatio of the top and above zero. Without evidence the resolved
// area, if any, stands in.
func (s *Synthesizer) LeadingDomains(l *evidence.Ledger, area string) []evidence.Ranked {
	top := l.Top(2)
	if len(top) == 0 {
		if d, ok := taxonomy.ByLabel(area); ok {
			return []evidence.Ranked{{Key: d.Key, Label: d.Label}}
		}
		return nil
	}

	out := top[:1]
	if len(top) == 2 && float64(top[1].Weight) >= s.cfg.CloseRatio*float64(top[0].Weight) {
		out = top[:2]
	}
	return out
}

func fromPayload(p ai.RecommendationPayload) Recommendation {
	rec := Recommendation{
		Title:          strings.TrimSpace(p.Title),
		Description:    strings.TrimSpace(p.Description),
		Outcomes:       strings.TrimSpace(p.Outcomes),
		EducationLevel: strings.TrimSpace(p.EducationLevel),
		Sector:         strings.TrimSpace(p.Sector),
		StudyPaths:     p.StudyPaths,
	}
	for _, name := range p.Skills {
		if name = strings.TrimSpace(name); name != "" {
			rec.Skills = append(rec.Skills, Skill{Name: name})
		}
	}
	return rec
}
