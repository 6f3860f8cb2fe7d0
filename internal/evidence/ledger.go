// Package evidence accumulates weighted keyword evidence linking a
// respondent's answers to taxonomy domains.
package evidence

import (
	"sort"

	"github.com/spigell/orienta/internal/similarity"
	"github.com/spigell/orienta/internal/taxonomy"
)

// MatchEvent records one keyword hit.
type MatchEvent struct {
	Step       int               `json:"step"`
	DomainKey  string            `json:"domainKey"`
	Keyword    string            `json:"keyword"`
	Method     similarity.Method `json:"method"`
	Similarity float64           `json:"similarity"`
}

// DomainEvidence is the accumulated weight of a single domain.
type DomainEvidence struct {
	Weight   int          `json:"weight"`
	MatchLog []MatchEvent `json:"matchLog,omitempty"`
}

// Entry is the audit record of one processed answer.
type Entry struct {
	Step    int            `json:"step"`
	Answer  string         `json:"answer"`
	Matches map[string]int `json:"matches,omitempty"`
}

// Ranked is a domain with its weight, as returned by Ledger.Ranking.
type Ranked struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Weight int    `json:"weight"`
}

// Ledger holds the evidence of one session.
type Ledger struct {
	Domains map[string]*DomainEvidence `json:"domains"`
	History []Entry                    `json:"history,omitempty"`
}

// NewLedger returns a ledger with zero weight for every given domain key.
func NewLedger(keys []string) *Ledger {
	l := &Ledger{Domains: make(map[string]*DomainEvidence, len(keys))}
	for _, key := range keys {
		l.Domains[key] = &DomainEvidence{}
	}
	return l
}

// Weight returns the weight of key, zero when unknown.
func (l *Ledger) Weight(key string) int {
	if l == nil {
		return 0
	}
	if d, ok := l.Domains[key]; ok && d != nil {
		return d.Weight
	}
	return 0
}

// Covered returns the keys of domains with non-zero weight, in catalogue order.
func (l *Ledger) Covered() []string {
	ranked := l.Ranking()
	covered := make([]string, 0, len(ranked))
	for _, r := range ranked {
		if r.Weight > 0 {
			covered = append(covered, r.Key)
		}
	}
	sortByCatalogue(covered)
	return covered
}

// Ranking returns all domains sorted by weight, heaviest first. Ties keep
// catalogue order so the result is deterministic.
func (l *Ledger) Ranking() []Ranked {
	if l == nil {
		return nil
	}

	out := make([]Ranked, 0, len(l.Domains))
	for key, d := range l.Domains {
		w := 0
		if d != nil {
			w = d.Weight
		}
		out = append(out, Ranked{Key: key, Label: taxonomy.Label(key), Weight: w})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return catalogueLess(out[i].Key, out[j].Key)
	})

	return out
}

// Top returns at most n domains with non-zero weight, heaviest first.
func (l *Ledger) Top(n int) []Ranked {
	out := make([]Ranked, 0, n)
	for _, r := range l.Ranking() {
		if len(out) == n || r.Weight == 0 {
			break
		}
		out = append(out, r)
	}
	return out
}

// Clone returns a deep copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	if l == nil {
		return nil
	}

	c := &Ledger{Domains: make(map[string]*DomainEvidence, len(l.Domains))}
	for key, d := range l.Domains {
		if d == nil {
			c.Domains[key] = &DomainEvidence{}
			continue
		}
		c.Domains[key] = &DomainEvidence{Weight: d.Weight, MatchLog: append([]MatchEvent(nil), d.MatchLog...)}
	}
	for _, e := range l.History {
		matches := make(map[string]int, len(e.Matches))
		for k, v := range e.Matches {
			matches[k] = v
		}
		c.History = append(c.History, Entry{Step: e.Step, Answer: e.Answer, Matches: matches})
	}

	return c
}

var cataloguePos = func() map[string]int {
	pos := make(map[string]int)
	for i, key := range taxonomy.Keys() {
		pos[key] = i
	}
	return pos
}()

func catalogueLess(a, b string) bool {
	pa, okA := cataloguePos[a]
	pb, okB := cataloguePos[b]
	switch {
	case okA && okB:
		return pa < pb
	case okA != okB:
		return okA
	default:
		return a < b
	}
}

func sortByCatalogue(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool { return catalogueLess(keys[i], keys[j]) })
}
