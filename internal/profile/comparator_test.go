package profile

import (
	"testing"

	"github.com/spigell/orienta/internal/results"
)

func TestComparatorEnrich(t *testing.T) {
	t.Parallel()

	rec := results.Recommendation{
		Title: "Ingeniería en Sistemas",
		Skills: []results.Skill{
			{Name: "Programación"},
			{Name: "Pensamiento lógico"},
			{Name: "Trabajo en equipo"},
			{Name: "Inglés técnico"},
		},
	}

	got := Comparator{}.Enrich(rec, []string{"programacion", "logico", "trabajo en equpo", ""})

	want := map[string]bool{
		"Programación":       true,
		"Pensamiento lógico": true,
		"Trabajo en equipo":  true,
		"Inglés técnico":     false,
	}
	for _, skill := range got.Skills {
		if skill.PossessedByUser != want[skill.Name] {
			t.Fatalf("skill %q: expected possessed=%v", skill.Name, want[skill.Name])
		}
	}
	if rec.Skills[0].PossessedByUser {
		t.Fatalf("Enrich must not modify its input")
	}
}

func TestComparatorWithoutDeclaredSkills(t *testing.T) {
	t.Parallel()

	rec := results.Recommendation{Skills: []results.Skill{{Name: "Dibujo", PossessedByUser: true}}}
	got := Comparator{}.Enrich(rec, nil)
	if got.Skills[0].PossessedByUser {
		t.Fatalf("expected no possession without declared skills")
	}
}
