package generation

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spigell/orienta/internal/similarity"
)

//go:embed bank.yaml
var bankYAML []byte

// BankQuestion is a static question of the fallback bank.
type BankQuestion struct {
	Text      string   `yaml:"text"`
	Options   []string `yaml:"options"`
	DomainTag string   `yaml:"domainTag"`
}

type bankPhase struct {
	Phase     int            `yaml:"phase"`
	Questions []BankQuestion `yaml:"questions"`
}

type bankDocument struct {
	Phases []bankPhase `yaml:"phases"`
}

// Bank holds the fallback questions grouped by phase.
type Bank struct {
	phases map[int][]BankQuestion
	order  []int
}

// LoadBank decodes a YAML bank document.
func LoadBank(data []byte) (*Bank, error) {
	var doc bankDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode fallback bank: %w", err)
	}

	b := &Bank{phases: make(map[int][]BankQuestion, len(doc.Phases))}
	for _, phase := range doc.Phases {
		for _, q := range phase.Questions {
			if strings.TrimSpace(q.Text) == "" || len(q.Options) < 2 {
				return nil, fmt.Errorf("fallback bank phase %d: question %q needs text and two options", phase.Phase, q.Text)
			}
		}
		if _, ok := b.phases[phase.Phase]; !ok {
			b.order = append(b.order, phase.Phase)
		}
		b.phases[phase.Phase] = append(b.phases[phase.Phase], phase.Questions...)
	}
	if len(b.order) == 0 {
		return nil, fmt.Errorf("fallback bank is empty")
	}

	return b, nil
}

// DefaultBank returns the embedded bank.
func DefaultBank() *Bank {
	b, err := LoadBank(bankYAML)
	if err != nil {
		panic(err)
	}
	return b
}

// Pick returns a question for phase that is not a near-duplicate of history.
// Other phases are searched when the phase is used up; when every question
// was asked, the phase question selected by step is returned anyway.
func (b *Bank) Pick(phase, step int, history []string, maxLenDiff, maxDistance int) BankQuestion {
	phases := append([]int{phase}, b.order...)
	for _, p := range phases {
		questions := b.phases[p]
		for i := range questions {
			q := questions[(step+i)%len(questions)]
			if !asked(q.Text, history, maxLenDiff, maxDistance) {
				return q
			}
		}
	}

	questions := b.phases[phase]
	if len(questions) == 0 {
		questions = b.phases[b.order[0]]
	}
	return questions[step%len(questions)]
}

// Options returns up to n bank options not contained in exclude, starting at
// an offset derived from step.
func (b *Bank) Options(step, n int, exclude []string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, opt := range exclude {
		skip[similarity.Normalize(opt)] = struct{}{}
	}

	var pool []string
	for _, p := range b.order {
		for _, q := range b.phases[p] {
			for _, opt := range q.Options {
				key := similarity.Normalize(opt)
				if _, ok := skip[key]; ok {
					continue
				}
				skip[key] = struct{}{}
				pool = append(pool, opt)
			}
		}
	}
	if len(pool) == 0 {
		return nil
	}

	out := make([]string, 0, n)
	for i := 0; i < len(pool) && len(out) < n; i++ {
		out = append(out, pool[(step*n+i)%len(pool)])
	}
	return out
}

func asked(text string, history []string, maxLenDiff, maxDistance int) bool {
	for _, prev := range history {
		if similarity.IsNearDuplicate(text, prev, maxLenDiff, maxDistance) {
			return true
		}
	}
	return false
}
