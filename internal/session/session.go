// Package session holds the interview session model and the Engine, the state
// machine that drives a session from the first question to the results.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/spigell/orienta/internal/evidence"
	"github.com/spigell/orienta/internal/results"
)

var (
	// ErrNotFound is returned for unknown sessions and sessions of another owner.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidArgument is returned for malformed requests.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCompleted is returned when a completed session would be mutated.
	ErrCompleted = errors.New("session already completed")
	// ErrNotCompleted is returned when results are requested too early.
	ErrNotCompleted = errors.New("session not completed")
	// ErrConflict is returned by repositories on concurrent modification or
	// when an owner already has an in-progress session.
	ErrConflict = errors.New("session conflict")
)

// State is the lifecycle state of a session.
type State string

const (
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// Question is a question as stored in a session.
type Question struct {
	ID         string   `json:"id"`
	StepNumber int      `json:"stepNumber"`
	Phase      int      `json:"phase"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	DomainTag  string   `json:"domainTag,omitempty"`
	Type       string   `json:"type"`
	Source     string   `json:"source"`
	Reasoning  string   `json:"reasoning,omitempty"`
	Insight    string   `json:"insight,omitempty"`
}

// AnswerRecord is one recorded answer.
type AnswerRecord struct {
	QuestionID   string    `json:"questionId"`
	QuestionText string    `json:"questionText"`
	AnswerText   string    `json:"answerText"`
	Timestamp    time.Time `json:"timestamp"`
}

// Session is one interview attempt of one owner.
type Session struct {
	ID           string `json:"id"`
	OwnerID      string `json:"ownerId"`
	State        State  `json:"state"`
	CurrentIndex int    `json:"currentIndex"`
	// Questions[i] is the question of step index i.
	Questions []*Question      `json:"questions"`
	Answers   []AnswerRecord   `json:"answers"`
	Area      string           `json:"area,omitempty"`
	SubArea   string           `json:"subArea,omitempty"`
	Role      string           `json:"role,omitempty"`
	Evidence  *evidence.Ledger `json:"evidence"`

	UserSummary string `json:"userSummary,omitempty"`

	LastRequestID string          `json:"lastRequestId,omitempty"`
	LastResponse  json.RawMessage `json:"lastResponse,omitempty"`

	Recommendations []results.Recommendation `json:"recommendations,omitempty"`
	ResultsSource   string                   `json:"resultsSource,omitempty"`

	// Version is bumped on every successful update.
	Version     int64      `json:"version"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CoveredDomains returns the domains with non-zero weight.
func (s *Session) CoveredDomains() []string {
	return s.Evidence.Covered()
}

// CurrentQuestion returns the question awaiting an answer, or nil.
func (s *Session) CurrentQuestion() *Question {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return s.Questions[s.CurrentIndex]
}

// AskedTexts returns the text of every stored question, oldest first.
func (s *Session) AskedTexts() []string {
	out := make([]string, 0, len(s.Questions))
	for _, q := range s.Questions {
		if q != nil {
			out = append(out, q.Text)
		}
	}
	return out
}

// Repository persists sessions. Update must apply fn atomically: no other
// update of the same session may interleave between its read and its write.
type Repository interface {
	// Create fails with ErrConflict when the owner has an in-progress session.
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	// FindActive returns the in-progress session of ownerID or ErrNotFound.
	FindActive(ctx context.Context, ownerID string) (*Session, error)
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
}
