package evidence

import (
	"go.uber.org/zap"

	"github.com/spigell/orienta/internal/similarity"
	"github.com/spigell/orienta/internal/taxonomy"
)

// Update describes the effect of a single RecordAnswer call.
type Update struct {
	Skipped bool
	Reason  string
	Matches map[string]int
}

type compiledDomain struct {
	key      string
	keywords []string
	original []string
}

// Accumulator matches answers against the taxonomy keywords.
type Accumulator struct {
	domains []compiledDomain
	logger  *zap.Logger
}

// New builds an Accumulator for domains. Keywords are normalized once here.
func New(domains []taxonomy.Domain, logger *zap.Logger) *Accumulator {
	if logger == nil {
		logger = zap.NewNop()
	}

	compiled := make([]compiledDomain, 0, len(domains))
	for _, d := range domains {
		cd := compiledDomain{key: d.Key}
		seen := make(map[string]struct{}, len(d.Keywords))
		for _, kw := range d.Keywords {
			norm := similarity.Normalize(kw)
			if norm == "" {
				continue
			}
			if _, dup := seen[norm]; dup {
				continue
			}
			seen[norm] = struct{}{}
			cd.keywords = append(cd.keywords, norm)
			cd.original = append(cd.original, kw)
		}
		compiled = append(compiled, cd)
	}

	return &Accumulator{domains: compiled, logger: logger}
}

// RecordAnswer adds the keyword evidence of answer to l. Non-committal answers
// and the escape option leave l untouched.
func (a *Accumulator) RecordAnswer(l *Ledger, step int, answer string) Update {
	if taxonomy.IsEscape(answer) {
		return Update{Skipped: true, Reason: "escape option"}
	}
	if taxonomy.IsNonCommittal(answer) {
		a.logger.Debug("skipping non-committal answer", zap.Int("question_index", step))
		return Update{Skipped: true, Reason: "non-committal answer"}
	}

	if l.Domains == nil {
		l.Domains = make(map[string]*DomainEvidence)
	}

	text := similarity.Normalize(answer)
	matches := make(map[string]int)

	for _, d := range a.domains {
		for i, kw := range d.keywords {
			m, ok := similarity.MatchKeywordNormalized(text, kw)
			if !ok {
				continue
			}

			de := l.Domains[d.key]
			if de == nil {
				de = &DomainEvidence{}
				l.Domains[d.key] = de
			}
			de.Weight++
			de.MatchLog = append(de.MatchLog, MatchEvent{
				Step:       step,
				DomainKey:  d.key,
				Keyword:    d.original[i],
				Method:     m.Method,
				Similarity: m.Similarity,
			})
			matches[d.key]++
		}
	}

	l.History = append(l.History, Entry{Step: step, Answer: answer, Matches: matches})

	if len(matches) > 0 {
		a.logger.Debug("answer evidence recorded", zap.Int("question_index", step), zap.Any("matches", matches))
	}

	return Update{Matches: matches}
}
