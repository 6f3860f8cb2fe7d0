package diversity

import (
	"testing"

	"github.com/spigell/orienta/internal/taxonomy"
)

func TestPlanGate(t *testing.T) {
	t.Parallel()

	required := taxonomy.Required()
	eight := required[:8]
	seven := required[:7]

	tests := []struct {
		name    string
		covered []string
		step    int
		expect  bool
	}{
		{name: "exploration ignores coverage", covered: required, step: 9, expect: false},
		{name: "index 8 with few domains", covered: seven, step: 8, expect: false},
		{name: "gated without enough coverage", covered: seven, step: 10, expect: false},
		{name: "gated with enough coverage", covered: eight, step: 10, expect: true},
		{name: "gated upper bound", covered: seven, step: 14, expect: false},
		{name: "always allowed late", covered: nil, step: 15, expect: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := New(Policy{}, required)
			if got := m.Plan(tt.covered, tt.step).AllowSpecialization; got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestPlanPendingIsSetDifference(t *testing.T) {
	m := New(Policy{}, []string{"tecnologia", "salud", "arte"})

	plan := m.Plan([]string{"salud", "agro"}, 3)

	if len(plan.Required) != 3 {
		t.Fatalf("expected required to be echoed, got %v", plan.Required)
	}
	if len(plan.Covered) != 1 || plan.Covered[0] != "salud" {
		t.Fatalf("expected only required domains to count as covered, got %v", plan.Covered)
	}
	if len(plan.Pending) != 2 || plan.Pending[0] != "tecnologia" || plan.Pending[1] != "arte" {
		t.Fatalf("unexpected pending domains: %v", plan.Pending)
	}
}

func TestCustomPolicy(t *testing.T) {
	m := New(Policy{ExplorationUntil: 2, GatedUntil: 4, MinCovered: 1}, []string{"salud"})

	if m.Plan([]string{"salud"}, 1).AllowSpecialization {
		t.Fatalf("expected exploration phase to block specialization")
	}
	if !m.Plan([]string{"salud"}, 2).AllowSpecialization {
		t.Fatalf("expected custom threshold to allow specialization")
	}
}
