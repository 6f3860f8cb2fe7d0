package resolver

import (
	"testing"

	"github.com/spigell/orienta/internal/evidence"
	"github.com/spigell/orienta/internal/taxonomy"
)

func ledgerWith(weights map[string]int) *evidence.Ledger {
	l := evidence.NewLedger(taxonomy.Keys())
	for key, w := range weights {
		l.Domains[key].Weight = w
	}
	return l
}

func TestResolveArea(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		index    int
		weights  map[string]int
		expect   string
		fallback bool
	}{
		{name: "too early", index: 4, weights: map[string]int{"tecnologia": 9}},
		{name: "clear winner", index: 5, weights: map[string]int{"tecnologia": 3, "salud": 2}, expect: "Tecnología"},
		{name: "below min weight", index: 5, weights: map[string]int{"tecnologia": 1}},
		{name: "tie without margin", index: 12, weights: map[string]int{"tecnologia": 3, "salud": 3}},
		{name: "fallback ignores margin", index: 19, weights: map[string]int{"tecnologia": 3, "salud": 3}, expect: "Tecnología", fallback: true},
		{name: "fallback still needs weight", index: 19, weights: map[string]int{"tecnologia": 1}},
		{name: "no evidence at all", index: 19, weights: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := New(Thresholds{}, nil)
			res := r.TryResolve(State{CurrentIndex: tt.index, Evidence: ledgerWith(tt.weights)}, "")

			if tt.expect == "" {
				if res.Stage != StageNone {
					t.Fatalf("expected no resolution, got %+v", res)
				}
				return
			}

			if res.Stage != StageArea || res.Area != tt.expect || res.Fallback != tt.fallback {
				t.Fatalf("unexpected resolution: %+v", res)
			}
		})
	}
}

func TestAreaNeverResolvesBeforeMinIndex(t *testing.T) {
	r := New(Thresholds{}, nil)
	l := ledgerWith(map[string]int{"tecnologia": 20})

	for index := 0; index < 5; index++ {
		if res := r.TryResolve(State{CurrentIndex: index, Evidence: l}, ""); res.Stage != StageNone {
			t.Fatalf("area resolved at index %d: %+v", index, res)
		}
	}
}

func TestResolveSubAreaFromTable(t *testing.T) {
	r := New(Thresholds{}, nil)
	st := State{CurrentIndex: 6, Area: "Tecnología", Evidence: ledgerWith(map[string]int{"tecnologia": 4})}

	res := r.TryResolve(st, "Me encantaría analizar datos y encontrar patrones")
	if res.Stage != StageSubArea || res.SubArea != "Datos e inteligencia artificial" || res.Fallback {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolveSubAreaFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		index  int
		answer string
		expect string
	}{
		{name: "too early for free text", index: 9, answer: "robots submarinos"},
		{name: "short specific phrase", index: 10, answer: "  robots submarinos. ", expect: "Robots submarinos"},
		{name: "too short", index: 12, answer: "sí"},
		{name: "too long", index: 12, answer: "me gustaría hacer muchas cosas diferentes cada día sin repetir nunca nada"},
		{name: "non-committal", index: 12, answer: "no lo sé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := New(Thresholds{}, nil)
			st := State{CurrentIndex: tt.index, Area: "Tecnología"}
			res := r.TryResolve(st, tt.answer)

			if tt.expect == "" {
				if res.Stage != StageNone {
					t.Fatalf("expected no resolution, got %+v", res)
				}
				return
			}
			if res.Stage != StageSubArea || res.SubArea != tt.expect || !res.Fallback {
				t.Fatalf("unexpected resolution: %+v", res)
			}
		})
	}
}

func TestResolveRole(t *testing.T) {
	r := New(Thresholds{}, nil)
	st := State{CurrentIndex: 8, Area: "Tecnología", SubArea: "Desarrollo de software"}

	res := r.TryResolve(st, "Me gustaría crear una página web para una tienda")
	if res.Stage != StageRole || res.Role != "Desarrollador web" {
		t.Fatalf("unexpected resolution: %+v", res)
	}

	st.SubArea = "Robots submarinos"
	if res := r.TryResolve(st, "Diseñar sensores"); res.Stage != StageNone {
		t.Fatalf("role fallback must wait for index 15, got %+v", res)
	}

	st.CurrentIndex = 15
	res = r.TryResolve(st, "Diseñar sensores")
	if res.Stage != StageRole || res.Role != "Diseñar sensores" || !res.Fallback {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestOneStagePerCallAndDoneWhenComplete(t *testing.T) {
	r := New(Thresholds{}, nil)
	l := ledgerWith(map[string]int{"tecnologia": 5})

	res := r.TryResolve(State{CurrentIndex: 16, Evidence: l}, "programar una página web")
	if res.Stage != StageArea || res.SubArea != "" || res.Role != "" {
		t.Fatalf("expected only the area to resolve, got %+v", res)
	}

	full := State{CurrentIndex: 18, Area: "Tecnología", SubArea: "Desarrollo de software", Role: "Desarrollador web", Evidence: l}
	if res := r.TryResolve(full, "cualquier cosa"); res.Stage != StageNone {
		t.Fatalf("expected nothing to resolve, got %+v", res)
	}
}

func TestStageString(t *testing.T) {
	if StageSubArea.String() != "sub_area" || StageNone.String() != "none" {
		t.Fatalf("unexpected stage names")
	}
}
