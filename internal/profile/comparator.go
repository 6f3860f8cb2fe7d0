package profile

import (
	"strings"

	"github.com/spigell/orienta/internal/results"
	"github.com/spigell/orienta/internal/similarity"
)

const skillSimilarity = 0.85

// Comparator flags the recommended skills the respondent declared.
type Comparator struct{}

// Enrich returns rec with PossessedByUser set on every skill that matches a
// declared skill by normalized equality, word containment or close spelling.
func (Comparator) Enrich(rec results.Recommendation, declared []string) results.Recommendation {
	normalized := make([]string, 0, len(declared))
	for _, d := range declared {
		if n := similarity.Normalize(d); n != "" {
			normalized = append(normalized, n)
		}
	}

	out := rec
	out.Skills = make([]results.Skill, len(rec.Skills))
	for i, skill := range rec.Skills {
		out.Skills[i] = results.Skill{Name: skill.Name, PossessedByUser: possesses(similarity.Normalize(skill.Name), normalized)}
	}
	return out
}

func possesses(skill string, declared []string) bool {
	if skill == "" {
		return false
	}
	for _, d := range declared {
		switch {
		case d == skill:
			return true
		case containsWords(d, skill), containsWords(skill, d):
			return true
		case similarity.EditSimilarity(d, skill) >= skillSimilarity:
			return true
		}
	}
	return false
}

// containsWords reports whether needle appears in haystack as whole words.
func containsWords(haystack, needle string) bool {
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}
