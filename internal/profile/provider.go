// Package profile reaches the respondent data the engine does not own: age,
// verified display name and self-reported skills.
package profile

import (
	"context"
	"strings"
)

// Provider answers profile questions about a session owner.
type Provider interface {
	AgeYears(ctx context.Context, ownerID string) (int, error)
	// DisplayName returns "" when the owner has no verified name.
	DisplayName(ctx context.Context, ownerID string) (string, error)
	DeclaredSkills(ctx context.Context, ownerID string) ([]string, error)
}

// Static serves the same profile for every owner. It backs the interactive
// CLI and tests.
type Static struct {
	Age    int      `mapstructure:"age"`
	Name   string   `mapstructure:"name"`
	Skills []string `mapstructure:"skills"`
}

func (s Static) AgeYears(context.Context, string) (int, error) { return s.Age, nil }

func (s Static) DisplayName(context.Context, string) (string, error) {
	return strings.TrimSpace(s.Name), nil
}

func (s Static) DeclaredSkills(context.Context, string) ([]string, error) {
	return append([]string(nil), s.Skills...), nil
}
