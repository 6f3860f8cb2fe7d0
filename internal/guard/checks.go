package guard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spigell/orienta/internal/similarity"
)

const minOptions = 2

type structureCheck struct{ toggle }

// NewStructure rejects candidates without text or with fewer than two options.
func NewStructure() Check { return &structureCheck{} }

func (c *structureCheck) Name() string { return "structure" }

func (c *structureCheck) Inspect(cand Candidate, _ Context) *Rejection {
	if strings.TrimSpace(cand.Text) == "" {
		return &Rejection{Check: c.Name(), Reason: "empty question text"}
	}

	options := 0
	for _, opt := range cand.Options {
		if strings.TrimSpace(opt) != "" {
			options++
		}
	}
	if options < minOptions {
		return &Rejection{Check: c.Name(), Reason: fmt.Sprintf("%d options, need at least %d", options, minOptions)}
	}

	return nil
}

func (c *structureCheck) Status() Status {
	return Status{Name: c.Name(), Enabled: c.IsEnabled(), Reason: c.reason, Details: map[string]string{
		"min_options": strconv.Itoa(minOptions),
	}}
}

type duplicateCheck struct {
	toggle
	maxLenDiff  int
	maxDistance int
}

// NewDuplicate rejects exact and near-exact repeats of any earlier question.
func NewDuplicate(maxLenDiff, maxDistance int) Check {
	return &duplicateCheck{maxLenDiff: maxLenDiff, maxDistance: maxDistance}
}

func (c *duplicateCheck) Name() string { return "duplicate" }

func (c *duplicateCheck) Inspect(cand Candidate, ctx Context) *Rejection {
	for _, prev := range ctx.History {
		if similarity.IsNearDuplicate(cand.Text, prev, c.maxLenDiff, c.maxDistance) {
			return &Rejection{Check: c.Name(), Reason: "question already asked", Score: 1, Against: prev}
		}
	}
	return nil
}

func (c *duplicateCheck) Status() Status {
	return Status{Name: c.Name(), Enabled: c.IsEnabled(), Reason: c.reason, Details: map[string]string{
		"max_length_diff": strconv.Itoa(c.maxLenDiff),
		"max_distance":    strconv.Itoa(c.maxDistance),
	}}
}

type similarityCheck struct {
	toggle
	threshold float64
}

// NewSimilarity rejects candidates too similar to a recent question by edit,
// Jaccard or cosine similarity.
func NewSimilarity(threshold float64) Check {
	return &similarityCheck{threshold: threshold}
}

func (c *similarityCheck) Name() string { return "similarity" }

func (c *similarityCheck) Inspect(cand Candidate, ctx Context) *Rejection {
	for _, prev := range ctx.Recent {
		measures := []struct {
			name  string
			score float64
		}{
			{"edit", similarity.EditSimilarity(cand.Text, prev)},
			{"jaccard", similarity.Jaccard(cand.Text, prev)},
			{"cosine", similarity.Cosine(cand.Text, prev)},
		}
		for _, m := range measures {
			if m.score > c.threshold {
				return &Rejection{Check: c.Name(), Reason: m.name + " similarity above threshold", Score: m.score, Against: prev}
			}
		}
	}
	return nil
}

func (c *similarityCheck) Status() Status {
	return Status{Name: c.Name(), Enabled: c.IsEnabled(), Reason: c.reason, Details: map[string]string{
		"threshold": strconv.FormatFloat(c.threshold, 'f', 2, 64),
	}}
}

type regenerationCheck struct{ toggle }

// NewRegeneration applies only while regenerating: none of the rejected
// options may come back. The caller keeps the pinned text.
func NewRegeneration() Check { return &regenerationCheck{} }

func (c *regenerationCheck) Name() string { return "regeneration" }

func (c *regenerationCheck) Inspect(cand Candidate, ctx Context) *Rejection {
	if ctx.Pinned == nil {
		return nil
	}

	previous := make(map[string]struct{}, len(ctx.Pinned.Options))
	for _, opt := range ctx.Pinned.Options {
		previous[similarity.Normalize(opt)] = struct{}{}
	}
	for _, opt := range cand.Options {
		if _, seen := previous[similarity.Normalize(opt)]; seen {
			return &Rejection{Check: c.Name(), Reason: "option repeated", Score: 1, Against: opt}
		}
	}

	return nil
}

func (c *regenerationCheck) Status() Status {
	return Status{Name: c.Name(), Enabled: c.IsEnabled(), Reason: c.reason}
}
