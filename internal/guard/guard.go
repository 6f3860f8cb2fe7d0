// Package guard rejects generated questions that are malformed or repeat
// what the respondent has already been asked.
package guard

import (
	"fmt"

	"go.uber.org/zap"
)

// Candidate is a parsed generator proposal.
type Candidate struct {
	Text    string
	Options []string
}

// Pinned is the question being regenerated after an escape.
type Pinned struct {
	Text    string
	Options []string
}

// Context is what a candidate is checked against.
type Context struct {
	// History holds every question already asked in the session.
	History []string
	// Recent holds the newest questions, oldest first.
	Recent []string
	Pinned *Pinned
}

// Check is a single named rule of the guard.
type Check interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Inspect(c Candidate, ctx Context) *Rejection
}

// Rejection explains why a check refused a candidate.
type Rejection struct {
	Check   string
	Reason  string
	Score   float64
	Against string
}

func (r *Rejection) Error() string {
	if r.Against != "" {
		return fmt.Sprintf("%s: %s (score %.2f against %q)", r.Check, r.Reason, r.Score, r.Against)
	}
	return fmt.Sprintf("%s: %s", r.Check, r.Reason)
}

// Status represents runtime information about a check.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// Guard runs its checks in order and stops at the first rejection.
type Guard struct {
	checks []Check
	logger *zap.Logger
}

// New creates a Guard from explicit checks.
func New(checks []Check, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{checks: checks, logger: logger}
}

// Default creates the stock guard: structure, duplicate, similarity and regeneration.
func Default(cfg Config, logger *zap.Logger) *Guard {
	cfg = cfg.withDefaults()
	return New([]Check{
		NewStructure(),
		NewDuplicate(cfg.MaxLengthDiff, cfg.MaxDistance),
		NewSimilarity(cfg.SimilarityThreshold),
		NewRegeneration(),
	}, logger)
}

// Inspect returns the first rejection, or nil when every enabled check passes.
func (g *Guard) Inspect(c Candidate, ctx Context) *Rejection {
	for _, check := range g.checks {
		if !check.IsEnabled() {
			continue
		}

		if rej := check.Inspect(c, ctx); rej != nil {
			g.logger.Debug("guard rejected candidate",
				zap.String("check", rej.Check),
				zap.String("reason", rej.Reason),
				zap.Float64("score", rej.Score),
			)
			return rej
		}
	}
	return nil
}

// DisableByName marks a check with the provided name as disabled while keeping it in the list.
func (g *Guard) DisableByName(name, reason string) {
	for _, check := range g.checks {
		if check.Name() == name {
			check.Disable(reason)
		}
	}
}

// Describe returns status entries for the guard checks.
func (g *Guard) Describe() []Status {
	statuses := make([]Status, 0, len(g.checks))
	for _, check := range g.checks {
		if reporter, ok := check.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    check.Name(),
			Enabled: check.IsEnabled(),
		})
	}
	return statuses
}

// Config holds the guard thresholds.
type Config struct {
	MaxLengthDiff       int     `mapstructure:"near-duplicate-max-length-diff"`
	MaxDistance         int     `mapstructure:"near-duplicate-max-distance"`
	SimilarityThreshold float64 `mapstructure:"similarity-threshold"`
	RecentWindow        int     `mapstructure:"recent-window"`
	// DisabledChecks names checks that are kept but skipped.
	DisabledChecks []string `mapstructure:"disabled-checks"`
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{MaxLengthDiff: 5, MaxDistance: 5, SimilarityThreshold: 0.75, RecentWindow: 5}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxLengthDiff <= 0 {
		c.MaxLengthDiff = d.MaxLengthDiff
	}
	if c.MaxDistance <= 0 {
		c.MaxDistance = d.MaxDistance
	}
	if c.SimilarityThreshold <= 0 {
		c.SimilarityThreshold = d.SimilarityThreshold
	}
	if c.RecentWindow <= 0 {
		c.RecentWindow = d.RecentWindow
	}
	return c
}

// WithDefaults exposes the effective configuration.
func (c Config) WithDefaults() Config { return c.withDefaults() }

// toggle is embedded by checks for the Disable/IsEnabled part of Check.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }
