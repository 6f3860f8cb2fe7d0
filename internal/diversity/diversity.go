// Package diversity keeps the interview from specializing before enough of
// the required domains have been explored.
package diversity

import "slices"

// Policy configures the specialization gate.
type Policy struct {
	// Before ExplorationUntil specialization is never allowed.
	ExplorationUntil int `mapstructure:"exploration-until"`
	// Between ExplorationUntil and GatedUntil it needs MinCovered domains.
	GatedUntil int `mapstructure:"gated-until"`
	MinCovered int `mapstructure:"min-covered"`
}

// DefaultPolicy returns the stock gate: explore until step index 10, then
// require 8 covered domains until index 15.
func DefaultPolicy() Policy {
	return Policy{ExplorationUntil: 10, GatedUntil: 15, MinCovered: 8}
}

// Plan is the diversity guidance for one question.
type Plan struct {
	Required            []string
	Covered             []string
	Pending             []string
	AllowSpecialization bool
}

// Manager computes plans against a fixed list of required domains.
type Manager struct {
	policy   Policy
	required []string
}

// New creates a Manager. Zero policy fields fall back to DefaultPolicy.
func New(policy Policy, required []string) *Manager {
	d := DefaultPolicy()
	if policy.ExplorationUntil <= 0 {
		policy.ExplorationUntil = d.ExplorationUntil
	}
	if policy.GatedUntil <= 0 {
		policy.GatedUntil = d.GatedUntil
	}
	if policy.MinCovered <= 0 {
		policy.MinCovered = d.MinCovered
	}

	return &Manager{policy: policy, required: slices.Clone(required)}
}

// Plan returns the pending required domains and whether the interview may
// specialize at stepIndex. Covered domains outside the required list do not
// count towards the gate.
func (m *Manager) Plan(covered []string, stepIndex int) Plan {
	coveredSet := make(map[string]struct{}, len(covered))
	for _, key := range covered {
		coveredSet[key] = struct{}{}
	}

	plan := Plan{Required: slices.Clone(m.required)}
	for _, key := range m.required {
		if _, ok := coveredSet[key]; ok {
			plan.Covered = append(plan.Covered, key)
			continue
		}
		plan.Pending = append(plan.Pending, key)
	}

	switch {
	case stepIndex < m.policy.ExplorationUntil:
		plan.AllowSpecialization = false
	case stepIndex < m.policy.GatedUntil:
		plan.AllowSpecialization = len(plan.Covered) >= m.policy.MinCovered
	default:
		plan.AllowSpecialization = true
	}

	return plan
}
