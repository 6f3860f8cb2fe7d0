package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/orienta/internal/diversity"
	"github.com/spigell/orienta/internal/evidence"
	"github.com/spigell/orienta/internal/generation"
	"github.com/spigell/orienta/internal/logger"
	"github.com/spigell/orienta/internal/metrics"
	"github.com/spigell/orienta/internal/profile"
	"github.com/spigell/orienta/internal/prompt"
	"github.com/spigell/orienta/internal/resolver"
	"github.com/spigell/orienta/internal/results"
	"github.com/spigell/orienta/internal/taxonomy"
)

// QuestionGenerator produces the next question for a built prompt.
type QuestionGenerator interface {
	GenerateNext(ctx context.Context, q prompt.Question, history []string) (*generation.Draft, generation.Outcome)
}

// ResultSynthesizer produces the final recommendations.
type ResultSynthesizer interface {
	Synthesize(ctx context.Context, in results.Input) results.Result
}

// Config holds engine level settings.
type Config struct {
	SummaryMaxRunes int `mapstructure:"summary-max-runes"`
}

// Deps are the collaborators of the Engine. Store, Builder, Generator and
// Synthesizer are required.
type Deps struct {
	Store       Repository
	Accumulator *evidence.Accumulator
	Resolver    *resolver.Resolver
	Diversity   *diversity.Manager
	Builder     *prompt.Builder
	Generator   QuestionGenerator
	Synthesizer ResultSynthesizer
	Profiles    profile.Provider
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

// AnswerRequest is one mutating call of a respondent.
type AnswerRequest struct {
	SessionID string
	OwnerID   string
	RequestID string
	// QuestionID is the answered question. With Edit it selects the earlier
	// step to rewrite; otherwise it must be the current question or empty.
	QuestionID string
	AnswerText string
	Edit       bool
}

// Taxonomy is the resolved classification of a session.
type Taxonomy struct {
	Area    string `json:"area,omitempty"`
	SubArea string `json:"subArea,omitempty"`
	Role    string `json:"role,omitempty"`
}

// Response is what Start and SubmitAnswer return. Responses of SubmitAnswer
// are cached verbatim for idempotent replays.
type Response struct {
	SessionID      string            `json:"sessionId"`
	State          State             `json:"state"`
	CurrentIndex   int               `json:"currentIndex"`
	TotalQuestions int               `json:"totalQuestions"`
	Question       *Question         `json:"question,omitempty"`
	Resumed        bool              `json:"resumed,omitempty"`
	Regenerated    bool              `json:"regenerated,omitempty"`
	Taxonomy       Taxonomy          `json:"taxonomy"`
	TopDomains     []evidence.Ranked `json:"topDomains,omitempty"`
}

// Engine is the session state machine.
type Engine struct {
	store       Repository
	accumulator *evidence.Accumulator
	resolver    *resolver.Resolver
	diversity   *diversity.Manager
	builder     *prompt.Builder
	generator   QuestionGenerator
	synthesizer ResultSynthesizer
	profiles    profile.Provider
	metrics     *metrics.Metrics
	logger      *zap.Logger
	cfg         Config
	total       int

	sessions *keyedMutex
	owners   *keyedMutex
	now      func() time.Time
}

// NewEngine wires an Engine. Missing optional collaborators get stock defaults.
func NewEngine(deps Deps, cfg Config) (*Engine, error) {
	if deps.Store == nil || deps.Builder == nil || deps.Generator == nil || deps.Synthesizer == nil {
		return nil, fmt.Errorf("%w: store, builder, generator and synthesizer are required", ErrInvalidArgument)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Accumulator == nil {
		deps.Accumulator = evidence.New(taxonomy.All(), deps.Logger)
	}
	if deps.Resolver == nil {
		deps.Resolver = resolver.New(resolver.DefaultThresholds(), deps.Logger)
	}
	if deps.Diversity == nil {
		deps.Diversity = diversity.New(diversity.DefaultPolicy(), taxonomy.Required())
	}
	if deps.Profiles == nil {
		deps.Profiles = profile.Static{}
	}
	if cfg.SummaryMaxRunes <= 0 {
		cfg.SummaryMaxRunes = 1000
	}

	return &Engine{
		store:       deps.Store,
		accumulator: deps.Accumulator,
		resolver:    deps.Resolver,
		diversity:   deps.Diversity,
		builder:     deps.Builder,
		generator:   deps.Generator,
		synthesizer: deps.Synthesizer,
		profiles:    deps.Profiles,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		cfg:         cfg,
		total:       deps.Builder.Schedule().TotalQuestions,
		sessions:    newKeyedMutex(),
		owners:      newKeyedMutex(),
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// TotalQuestions is the interview length.
func (e *Engine) TotalQuestions() int { return e.total }

// Start resumes the in-progress session of ownerID or creates a new one with
// its first question.
func (e *Engine) Start(ctx context.Context, ownerID string) (*Response, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidArgument)
	}

	unlock := e.owners.Lock(ownerID)
	defer unlock()

	if active, err := e.store.FindActive(ctx, ownerID); err == nil {
		e.metrics.SessionStarted("resumed")
		return e.resume(active), nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("find active session: %w", err)
	}

	now := e.now()
	s := &Session{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		State:     StateInProgress,
		Evidence:  evidence.NewLedger(taxonomy.Keys()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	log := logger.WithSession(e.logger, s.ID, ownerID, 0)

	q := e.nextQuestion(ctx, s, nil)
	s.Questions = append(s.Questions, q)

	if err := e.store.Create(ctx, s); err != nil {
		if errors.Is(err, ErrConflict) {
			active, ferr := e.store.FindActive(ctx, ownerID)
			if ferr == nil {
				e.metrics.SessionStarted("resumed")
				return e.resume(active), nil
			}
		}
		return nil, fmt.Errorf("create session: %w", err)
	}

	e.metrics.SessionStarted("created")
	log.Info("session started", zap.String("question_source", q.Source))

	return e.response(s), nil
}

func (e *Engine) resume(s *Session) *Response {
	resp := e.response(s)
	resp.Resumed = true
	return resp
}

// SubmitAnswer applies an answer, an escape or an edit to a session.
func (e *Engine) SubmitAnswer(ctx context.Context, req AnswerRequest) (*Response, error) {
	if strings.TrimSpace(req.SessionID) == "" || strings.TrimSpace(req.OwnerID) == "" {
		return nil, fmt.Errorf("%w: session and owner ids are required", ErrInvalidArgument)
	}
	if strings.TrimSpace(req.RequestID) == "" {
		return nil, fmt.Errorf("%w: request id is required", ErrInvalidArgument)
	}

	unlock := e.sessions.Lock(req.SessionID)
	defer unlock()

	s, err := e.load(ctx, req.SessionID, req.OwnerID)
	if err != nil {
		return nil, err
	}
	log := logger.WithSession(e.logger, s.ID, s.OwnerID, s.CurrentIndex)

	if req.RequestID == s.LastRequestID && len(s.LastResponse) > 0 {
		var cached Response
		if err := json.Unmarshal(s.LastResponse, &cached); err != nil {
			return nil, fmt.Errorf("decode cached response: %w", err)
		}
		e.metrics.Answer("replay")
		log.Debug("replaying cached response", zap.String("request_id", req.RequestID))
		return &cached, nil
	}

	if s.State == StateCompleted {
		return nil, ErrCompleted
	}
	answer := strings.TrimSpace(req.AnswerText)
	if answer == "" {
		return nil, fmt.Errorf("%w: answer text is required", ErrInvalidArgument)
	}

	version := s.Version
	var resp *Response
	switch {
	case taxonomy.IsEscape(answer):
		if req.Edit {
			return nil, fmt.Errorf("%w: the escape option cannot be used to edit", ErrInvalidArgument)
		}
		if err := e.checkCurrent(s, req.QuestionID); err != nil {
			return nil, err
		}
		resp = e.escape(ctx, s, log)
		e.metrics.Answer("escape")
	case req.Edit:
		target, err := e.editTarget(s, req.QuestionID)
		if err != nil {
			return nil, err
		}
		if target < s.CurrentIndex {
			e.rewind(s, target)
			log.Info("session rewound for edit", zap.Int("target_index", target))
		}
		resp = e.answer(ctx, s, answer, log)
		e.metrics.Answer("edit")
	default:
		if err := e.checkCurrent(s, req.QuestionID); err != nil {
			return nil, err
		}
		resp = e.answer(ctx, s, answer, log)
		e.metrics.Answer("answer")
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	s.LastRequestID = req.RequestID
	s.LastResponse = raw
	s.UpdatedAt = e.now()

	if err := e.save(ctx, s, version); err != nil {
		return nil, err
	}

	return resp, nil
}

// State returns the session if ownerID owns it.
func (e *Engine) State(ctx context.Context, sessionID, ownerID string) (*Session, error) {
	return e.load(ctx, sessionID, ownerID)
}

// Finalize returns the recommendations of a completed session, synthesizing
// and caching them on the first call.
func (e *Engine) Finalize(ctx context.Context, sessionID, ownerID string) ([]results.Recommendation, error) {
	unlock := e.sessions.Lock(sessionID)
	defer unlock()

	s, err := e.load(ctx, sessionID, ownerID)
	if err != nil {
		return nil, err
	}
	if s.State != StateCompleted {
		return nil, ErrNotCompleted
	}
	if len(s.Recommendations) == results.Count {
		return s.Recommendations, nil
	}

	skills, err := e.profiles.DeclaredSkills(ctx, s.OwnerID)
	if err != nil {
		e.logger.Warn("declared skills unavailable", zap.String(logger.FieldSession, s.ID), zap.Error(err))
	}

	res := e.synthesizer.Synthesize(ctx, results.Input{
		Area:           s.Area,
		SubArea:        s.SubArea,
		Role:           s.Role,
		UserSummary:    s.UserSummary,
		Evidence:       s.Evidence,
		DeclaredSkills: skills,
	})

	version := s.Version
	s.Recommendations = res.Recommendations
	s.ResultsSource = string(res.Source)
	s.UpdatedAt = e.now()
	if err := e.save(ctx, s, version); err != nil {
		return nil, err
	}

	e.logger.Info("results synthesized", zap.String(logger.FieldSession, s.ID), zap.String("source", string(res.Source)))
	return s.Recommendations, nil
}

func (e *Engine) load(ctx context.Context, sessionID, ownerID string) (*Session, error) {
	s, err := e.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return s, nil
}

// saveTimeout bounds persisting a computed response once the caller's context
// is gone.
const saveTimeout = 10 * time.Second

// save detaches from ctx cancellation: the response is already computed and
// a retry with the same request id must find it.
func (e *Engine) save(ctx context.Context, s *Session, version int64) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	_, err := e.store.Update(ctx, s.ID, func(cur *Session) error {
		if cur.Version != version {
			return ErrConflict
		}
		*cur = *s
		cur.Version = version + 1
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.Version = version + 1
	return nil
}

func (e *Engine) checkCurrent(s *Session, questionID string) error {
	current := s.CurrentQuestion()
	if current == nil {
		return fmt.Errorf("%w: no current question", ErrInvalidArgument)
	}
	if questionID != "" && questionID != current.ID {
		return fmt.Errorf("%w: question %s is not the current question", ErrInvalidArgument, questionID)
	}
	return nil
}

func (e *Engine) editTarget(s *Session, questionID string) (int, error) {
	if questionID == "" {
		return 0, fmt.Errorf("%w: edit needs a question id", ErrInvalidArgument)
	}
	for i := 0; i <= s.CurrentIndex && i < len(s.Questions); i++ {
		if q := s.Questions[i]; q != nil && q.ID == questionID {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: question %s was not asked yet", ErrInvalidArgument, questionID)
}

// rewind drops everything from step index target onwards and rebuilds the
// derived state from the retained answers.
func (e *Engine) rewind(s *Session, target int) {
	retained := s.Answers[:target]

	ledger := evidence.NewLedger(taxonomy.Keys())
	st := resolver.State{Evidence: ledger}
	summary := ""
	for i, a := range retained {
		e.accumulator.RecordAnswer(ledger, i, a.AnswerText)
		st.CurrentIndex = i + 1
		applyResolution(&st, e.resolver.TryResolve(st, a.AnswerText))
		summary = appendSummary(summary, i+1, a.AnswerText, e.cfg.SummaryMaxRunes)
	}

	s.Answers = append([]AnswerRecord(nil), retained...)
	s.Questions = s.Questions[:target+1]
	s.CurrentIndex = target
	s.Evidence = ledger
	s.Area, s.SubArea, s.Role = st.Area, st.SubArea, st.Role
	s.UserSummary = summary
}

func (e *Engine) answer(ctx context.Context, s *Session, answer string, log *zap.Logger) *Response {
	q := s.CurrentQuestion()
	s.Answers = append(s.Answers, AnswerRecord{
		QuestionID:   q.ID,
		QuestionText: q.Text,
		AnswerText:   answer,
		Timestamp:    e.now(),
	})

	update := e.accumulator.RecordAnswer(s.Evidence, s.CurrentIndex, answer)
	s.CurrentIndex++

	st := resolver.State{CurrentIndex: s.CurrentIndex, Area: s.Area, SubArea: s.SubArea, Role: s.Role, Evidence: s.Evidence}
	applyResolution(&st, e.resolver.TryResolve(st, answer))
	s.Area, s.SubArea, s.Role = st.Area, st.SubArea, st.Role
	s.UserSummary = appendSummary(s.UserSummary, s.CurrentIndex, answer, e.cfg.SummaryMaxRunes)

	log.Debug("answer recorded",
		zap.Int("current_index", s.CurrentIndex),
		zap.Bool("evidence_skipped", update.Skipped),
		zap.Any("matches", update.Matches),
	)

	if s.CurrentIndex >= e.total {
		now := e.now()
		s.State = StateCompleted
		s.CompletedAt = &now
		e.metrics.Completed()
		log.Info("session completed", zap.String("area", s.Area), zap.String("sub_area", s.SubArea), zap.String("role", s.Role))

		resp := e.response(s)
		resp.TopDomains = s.Evidence.Top(3)
		return resp
	}

	prev := AnswerRecord{QuestionText: q.Text, AnswerText: answer}
	s.Questions = append(s.Questions, e.nextQuestion(ctx, s, &prev))

	return e.response(s)
}

func (e *Engine) escape(ctx context.Context, s *Session, log *zap.Logger) *Response {
	current := s.CurrentQuestion()
	regen := &prompt.Regeneration{Text: current.Text, Type: current.Type}
	for _, opt := range current.Options {
		if !taxonomy.IsEscape(opt) {
			regen.Options = append(regen.Options, opt)
		}
	}

	var prev *AnswerRecord
	if n := len(s.Answers); n > 0 {
		prev = &s.Answers[n-1]
	}
	fresh := e.buildQuestion(ctx, s, prev, regen)
	fresh.StepNumber = current.StepNumber
	fresh.Phase = current.Phase
	s.Questions[s.CurrentIndex] = fresh

	log.Info("question regenerated", zap.String("source", fresh.Source))

	resp := e.response(s)
	resp.Regenerated = true
	return resp
}

func (e *Engine) nextQuestion(ctx context.Context, s *Session, prev *AnswerRecord) *Question {
	return e.buildQuestion(ctx, s, prev, nil)
}

func (e *Engine) buildQuestion(ctx context.Context, s *Session, prev *AnswerRecord, regen *prompt.Regeneration) *Question {
	age, err := e.profiles.AgeYears(ctx, s.OwnerID)
	if err != nil {
		e.logger.Warn("age unavailable", zap.String(logger.FieldSession, s.ID), zap.Error(err))
	}
	name, err := e.profiles.DisplayName(ctx, s.OwnerID)
	if err != nil {
		e.logger.Warn("display name unavailable", zap.String(logger.FieldSession, s.ID), zap.Error(err))
	}

	history := s.AskedTexts()
	recent := history
	if regen != nil {
		recent = make([]string, 0, len(history))
		for _, text := range history {
			if text != regen.Text {
				recent = append(recent, text)
			}
		}
	}
	in := prompt.Input{
		Step:            s.CurrentIndex + 1,
		AgeYears:        age,
		DisplayName:     name,
		UserSummary:     s.UserSummary,
		Area:            s.Area,
		SubArea:         s.SubArea,
		Evidence:        s.Evidence,
		Plan:            e.diversity.Plan(s.CoveredDomains(), s.CurrentIndex),
		RecentQuestions: recent,
		Regenerate:      regen,
	}
	if prev != nil {
		in.LastQuestion, in.LastAnswer = prev.QuestionText, prev.AnswerText
	}

	built := e.builder.Build(in)
	draft, outcome := e.generator.GenerateNext(ctx, built, history)
	if outcome.Source == generation.SourceFallback {
		e.logger.Warn("fallback question served",
			zap.String(logger.FieldSession, s.ID),
			zap.Int(logger.FieldStep, s.CurrentIndex),
			zap.Int("attempts", outcome.Attempts),
		)
	}

	return &Question{
		ID:         draft.ID,
		StepNumber: built.Step,
		Phase:      built.Phase,
		Text:       draft.Text,
		Options:    draft.Options,
		DomainTag:  draft.DomainTag,
		Type:       draft.Type,
		Source:     string(draft.Source),
		Reasoning:  draft.Reasoning,
		Insight:    draft.Insight,
	}
}

func (e *Engine) response(s *Session) *Response {
	return &Response{
		SessionID:      s.ID,
		State:          s.State,
		CurrentIndex:   s.CurrentIndex,
		TotalQuestions: e.total,
		Question:       s.CurrentQuestion(),
		Taxonomy:       Taxonomy{Area: s.Area, SubArea: s.SubArea, Role: s.Role},
	}
}

func applyResolution(st *resolver.State, res resolver.Resolution) {
	switch res.Stage {
	case resolver.StageArea:
		st.Area = res.Area
	case resolver.StageSubArea:
		st.SubArea = res.SubArea
	case resolver.StageRole:
		st.Role = res.Role
	}
}
