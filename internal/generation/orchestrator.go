// Package generation turns built prompts into interview questions. It retries
// the generator, filters its output through the anti-repetition guard and
// falls back to a static bank when nothing acceptable comes back.
package generation

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/spigell/orienta/internal/ai"
	"github.com/spigell/orienta/internal/guard"
	"github.com/spigell/orienta/internal/metrics"
	"github.com/spigell/orienta/internal/prompt"
	"github.com/spigell/orienta/internal/similarity"
	"github.com/spigell/orienta/internal/taxonomy"
	"github.com/spigell/orienta/internal/utils"
)

// Source tells where a question came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

const (
	TypeText  = "text"
	TypeImage = "image"
)

const maxBackoff = 30 * time.Second

var enumerator = regexp.MustCompile(`^\s*(?:\d{1,2}\)\s*|\d{1,2}[.:\-]\s+|[A-Za-z][.):\-]\s+|[•·*\-–]\s*)`)

// Config controls retries and option shaping.
type Config struct {
	MaxAttempts       int           `mapstructure:"max-attempts"`
	BackoffInitial    time.Duration `mapstructure:"backoff-initial"`
	BackoffMultiplier float64       `mapstructure:"backoff-multiplier"`
	MaxOptions        int           `mapstructure:"max-options"`
}

// DefaultConfig returns three attempts, a 1s doubling backoff and four options.
func DefaultConfig() Config {
	return Config{MaxAttempts: 3, BackoffInitial: time.Second, BackoffMultiplier: 2, MaxOptions: 4}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.BackoffInitial <= 0 {
		c.BackoffInitial = d.BackoffInitial
	}
	if c.BackoffMultiplier < 1 {
		c.BackoffMultiplier = d.BackoffMultiplier
	}
	if c.MaxOptions < 2 {
		c.MaxOptions = d.MaxOptions
	}
	return c
}

// Budget is the longest GenerateNext waits on the generator when every call
// is bounded by callTimeout.
func (c Config) Budget(callTimeout time.Duration) time.Duration {
	c = c.withDefaults()
	total := time.Duration(c.MaxAttempts) * callTimeout
	wait := c.BackoffInitial
	for i := 1; i < c.MaxAttempts; i++ {
		total += min(wait, maxBackoff)
		wait = time.Duration(float64(wait) * c.BackoffMultiplier)
	}
	return total
}

// Draft is a finished question without session bookkeeping.
type Draft struct {
	ID        string
	Text      string
	Options   []string
	DomainTag string
	Type      string
	Reasoning string
	Insight   string
	Source    Source
}

// Outcome reports how a draft was obtained.
type Outcome struct {
	Attempts   int
	Source     Source
	Rejections []string
	Waited     time.Duration
	LastErr    error
}

// Options wires the orchestrator collaborators. Only the generator is required;
// a nil generator always serves the fallback bank.
type Options struct {
	Config  Config
	Guard   guard.Config
	Bank    *Bank
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Orchestrator produces the next question of an interview.
type Orchestrator struct {
	generator ai.Generator
	guard     *guard.Guard
	guardCfg  guard.Config
	bank      *Bank
	cfg       Config
	metrics   *metrics.Metrics
	logger    *zap.Logger
	wait      func(context.Context, time.Duration) error
}

// New creates an Orchestrator with the stock guard.
func New(generator ai.Generator, opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Bank == nil {
		opts.Bank = DefaultBank()
	}
	guardCfg := opts.Guard.WithDefaults()

	return &Orchestrator{
		generator: generator,
		guard:     guard.Default(guardCfg, opts.Logger),
		guardCfg:  guardCfg,
		bank:      opts.Bank,
		cfg:       opts.Config.withDefaults(),
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		wait:      utils.WaitFor,
	}
}

// Guard exposes the guard, e.g. to disable a check at runtime.
func (o *Orchestrator) Guard() *guard.Guard { return o.guard }

// GenerateNext returns a question for q. history holds the text of every
// question already asked in the session, oldest first. The returned draft is
// never nil: when the generator fails, the fallback bank answers.
func (o *Orchestrator) GenerateNext(ctx context.Context, q prompt.Question, history []string) (*Draft, Outcome) {
	gctx := o.guardContext(q, history)
	outcome := Outcome{}
	log := o.logger.With(zap.Int("question_number", q.Step), zap.Int("phase", q.Phase))

	if o.generator == nil {
		return o.fallback(q, gctx.History, outcome, log), outcome.withSource(SourceFallback)
	}

	bo := o.newBackOff()
	for attempt := 1; attempt <= o.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			outcome.LastErr = err
			break
		}
		outcome.Attempts = attempt

		start := time.Now()
		raw, err := o.generator.Generate(ctx, q.Request)
		if err != nil {
			o.metrics.ObserveGeneration(string(ai.KindQuestion), "error", time.Since(start))
			outcome.LastErr = err
			log.Warn("question generation failed", zap.Int("attempt", attempt), zap.Error(err))

			if ai.IsTransient(err) && attempt < o.cfg.MaxAttempts {
				delay := bo.NextBackOff()
				outcome.Waited += delay
				if werr := o.wait(ctx, delay); werr != nil {
					outcome.LastErr = werr
					break
				}
			}
			continue
		}

		payload, err := ai.ParseQuestion(raw)
		if err != nil {
			o.metrics.ObserveGeneration(string(ai.KindQuestion), "malformed", time.Since(start))
			outcome.LastErr = err
			log.Warn("generated question rejected", zap.Int("attempt", attempt), zap.Error(err),
				zap.String("raw", utils.TruncateForLog(raw, 200)))
			continue
		}

		draft := o.draftFrom(q, payload)
		if r := q.Regenerate; r != nil {
			draft.Text = r.Text
		}
		if rej := o.guard.Inspect(guard.Candidate{Text: draft.Text, Options: draft.Options}, gctx); rej != nil {
			o.metrics.ObserveGeneration(string(ai.KindQuestion), "rejected", time.Since(start))
			o.metrics.Rejected(rej.Check)
			outcome.Rejections = append(outcome.Rejections, rej.Check)
			outcome.LastErr = rej
			log.Info("generated question rejected by guard", zap.Int("attempt", attempt), zap.String("check", rej.Check),
				zap.String("reason", rej.Reason), zap.Float64("score", rej.Score))
			continue
		}

		o.metrics.ObserveGeneration(string(ai.KindQuestion), "accepted", time.Since(start))
		draft.Options = append(draft.Options, taxonomy.EscapeOption)
		draft.ID = NewID()
		draft.Source = SourceGenerated
		log.Info("question generated", zap.Int("attempt", attempt), zap.String("domain_tag", draft.DomainTag))

		return draft, outcome.withSource(SourceGenerated)
	}

	return o.fallback(q, gctx.History, outcome, log), outcome.withSource(SourceFallback)
}

func (o Outcome) withSource(s Source) Outcome {
	o.Source = s
	return o
}

func (o *Orchestrator) guardContext(q prompt.Question, history []string) guard.Context {
	gctx := guard.Context{}
	var pinned string
	if r := q.Regenerate; r != nil {
		pinned = similarity.Normalize(r.Text)
		gctx.Pinned = &guard.Pinned{Text: r.Text, Options: r.Options}
	}

	for _, text := range history {
		if pinned != "" && similarity.Normalize(text) == pinned {
			continue
		}
		gctx.History = append(gctx.History, text)
	}

	gctx.Recent = gctx.History
	if window := o.guardCfg.RecentWindow; len(gctx.Recent) > window {
		gctx.Recent = gctx.Recent[len(gctx.Recent)-window:]
	}

	return gctx
}

func (o *Orchestrator) draftFrom(q prompt.Question, p *ai.QuestionPayload) *Draft {
	d := &Draft{
		Text:      strings.TrimSpace(p.Text),
		Options:   CleanOptions(p.Options, o.cfg.MaxOptions),
		DomainTag: domainKey(p.DomainTag),
		Type:      TypeText,
		Reasoning: strings.TrimSpace(p.Reasoning),
	}
	if q.Image {
		d.Type = TypeImage
	}
	if q.Insight {
		d.Insight = strings.TrimSpace(p.Insight)
	}
	return d
}

func (o *Orchestrator) fallback(q prompt.Question, history []string, outcome Outcome, log *zap.Logger) *Draft {
	o.metrics.Fallback(string(ai.KindQuestion))

	d := &Draft{ID: NewID(), Type: TypeText, Source: SourceFallback}
	if q.Image {
		d.Type = TypeImage
	}

	if r := q.Regenerate; r != nil {
		d.Text = r.Text
		d.Options = o.bank.Options(q.Step, o.cfg.MaxOptions, r.Options)
	} else {
		bq := o.bank.Pick(q.Phase, q.Step, history, o.guardCfg.MaxLengthDiff, o.guardCfg.MaxDistance)
		d.Text = bq.Text
		d.DomainTag = bq.DomainTag
		d.Options = CleanOptions(bq.Options, o.cfg.MaxOptions)
	}
	d.Options = append(d.Options, taxonomy.EscapeOption)

	fields := []zap.Field{zap.Int("attempts", outcome.Attempts), zap.Strings("rejections", outcome.Rejections)}
	if outcome.LastErr != nil {
		fields = append(fields, zap.Error(outcome.LastErr))
	}
	log.Warn("serving fallback question", fields...)

	return d
}

func (o *Orchestrator) newBackOff() *backoff.ExponentialBackOff {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = o.cfg.BackoffInitial
	expo.Multiplier = o.cfg.BackoffMultiplier
	expo.RandomizationFactor = 0
	expo.MaxInterval = maxBackoff
	expo.MaxElapsedTime = 0
	expo.Reset()
	return expo
}

// CleanOptions strips enumerators ("A.", "1)", "b-", "•"), drops empty,
// duplicate and escape options and keeps at most limit entries.
func CleanOptions(options []string, limit int) []string {
	out := make([]string, 0, len(options))
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		opt = strings.TrimSpace(enumerator.ReplaceAllString(opt, ""))
		if opt == "" || taxonomy.IsEscape(opt) {
			continue
		}
		key := similarity.Normalize(opt)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, opt)
		if len(out) == limit {
			break
		}
	}
	return out
}

// NewID returns a new time-ordered question id.
func NewID() string {
	return ulid.Make().String()
}

func domainKey(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	if d, ok := taxonomy.ByKey(tag); ok {
		return d.Key
	}
	if d, ok := taxonomy.ByLabel(tag); ok {
		return d.Key
	}
	return tag
}
