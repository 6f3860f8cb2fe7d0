// Package ai defines the contract between the assessment engine and the
// external text generator, plus the typed payloads it is expected to return.
package ai

import (
	"context"
	"errors"
)

// Kind tells the generator what the request is for.
type Kind string

const (
	KindQuestion        Kind = "question"
	KindRecommendations Kind = "recommendations"
)

// Request is one call to the generation service.
type Request struct {
	Kind            Kind
	System          string
	Prompt          string
	MaxOutputTokens int32
}

// Generator produces JSON text for a Request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Model() string
}

var (
	// ErrTimeout is returned when the generator did not answer in time.
	ErrTimeout = errors.New("generation timed out")
	// ErrRateLimited is returned when the generator rejected the call for quota reasons.
	ErrRateLimited = errors.New("generation rate limited")
	// ErrMalformed wraps every parse or shape failure of generated output.
	ErrMalformed = errors.New("malformed generation output")
)

// IsTransient reports whether err is worth a delayed retry.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrRateLimited) || errors.Is(err, context.DeadlineExceeded)
}
