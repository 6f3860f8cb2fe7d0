package prompt

import (
	"strings"
	"testing"

	"github.com/spigell/orienta/internal/ai"
	"github.com/spigell/orienta/internal/diversity"
	"github.com/spigell/orienta/internal/evidence"
	"github.com/spigell/orienta/internal/taxonomy"
)

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := New(Schedule{}, Limits{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func TestPhaseBoundaries(t *testing.T) {
	s := DefaultSchedule()

	expected := map[int]int{1: 1, 5: 1, 6: 2, 10: 2, 11: 3, 15: 3, 16: 4, 20: 4, 21: 4, 0: 1}
	for step, phase := range expected {
		if got := s.PhaseFor(step); got != phase {
			t.Fatalf("step %d: expected phase %d, got %d", step, phase, got)
		}
	}
}

func TestStyleRotationIsDeterministic(t *testing.T) {
	s := DefaultSchedule()

	if s.StyleFor(1) != StyleScenario || s.StyleFor(2) != StyleDirectChoice || s.StyleFor(7) != StyleScenario {
		t.Fatalf("unexpected rotation: %s %s %s", s.StyleFor(1), s.StyleFor(2), s.StyleFor(7))
	}
}

func TestBuildIncludesContext(t *testing.T) {
	b := newBuilder(t)

	ledger := evidence.NewLedger(taxonomy.Keys())
	ledger.Domains["tecnologia"].Weight = 4
	ledger.Domains["arte"].Weight = 1

	plan := diversity.New(diversity.Policy{}, taxonomy.Required()).Plan([]string{"tecnologia", "arte"}, 3)

	q := b.Build(Input{
		Step:         4,
		AgeYears:     25,
		UserSummary:  "Le gusta programar.",
		LastQuestion: "¿Qué haces en tu tiempo libre?",
		LastAnswer:   "Programo videojuegos",
		Evidence:     ledger,
		Plan:         plan,
	})

	if q.Request.Kind != ai.KindQuestion || q.Request.MaxOutputTokens != defaultQuestionMT {
		t.Fatalf("unexpected request metadata: %+v", q.Request)
	}
	if q.Phase != 1 || q.Image || q.Insight || q.Personalized {
		t.Fatalf("unexpected decisions: %+v", q)
	}

	for _, want := range []string{
		"pregunta 4 de 20",
		"- Tecnología: 4",
		"- Arte y Diseño: 1",
		"Le gusta programar.",
		"Programo videojuegos",
		"Especialización permitida: no",
		"Dominios pendientes: Salud",
		"No abuses de una misma palabra",
	} {
		if !strings.Contains(q.Request.Prompt, want) {
			t.Fatalf("expected prompt to contain %q\n%s", want, q.Request.Prompt)
		}
	}
	if strings.Contains(q.Request.Prompt, "{{") {
		t.Fatalf("unreplaced placeholder in prompt:\n%s", q.Request.Prompt)
	}
	if !strings.Contains(q.Request.System, "20 preguntas") {
		t.Fatalf("unexpected system prompt: %s", q.Request.System)
	}
}

func TestBuildMinorAvoidsWorkplaceFraming(t *testing.T) {
	b := newBuilder(t)

	q := b.Build(Input{Step: 1, AgeYears: 15})
	if !strings.Contains(q.Request.Prompt, "menor de 18") {
		t.Fatalf("expected minor guidance")
	}

	q = b.Build(Input{Step: 1})
	if strings.Contains(q.Request.Prompt, "menor de 18") {
		t.Fatalf("unknown age should use adult guidance")
	}
}

func TestBuildScheduledDirectives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		step         int
		displayName  string
		personalized bool
		image        bool
		insight      bool
	}{
		{name: "personalized with name", step: 3, displayName: "Ana", personalized: true},
		{name: "no name no personalization", step: 3},
		{name: "image step", step: 2, image: true},
		{name: "insight and personalization", step: 16, displayName: "Ana", personalized: true, insight: true},
		{name: "last step image", step: 20, image: true},
		{name: "plain step", step: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newBuilder(t)
			q := b.Build(Input{Step: tt.step, DisplayName: tt.displayName})

			if q.Personalized != tt.personalized || q.Image != tt.image || q.Insight != tt.insight {
				t.Fatalf("unexpected decisions: %+v", q)
			}
			if tt.personalized && !strings.Contains(q.Request.Prompt, tt.displayName) {
				t.Fatalf("expected name in prompt")
			}
			if tt.image && !strings.Contains(q.Request.Prompt, `"type": "image"`) {
				t.Fatalf("expected image type in output format")
			}
		})
	}
}

func TestBuildRegenerationPinsQuestion(t *testing.T) {
	b := newBuilder(t)

	q := b.Build(Input{Step: 11, Regenerate: &Regeneration{
		Text:    "¿Qué prefieres hacer un sábado?",
		Options: []string{"Leer", "Correr"},
		Type:    "image",
	}})

	if !q.Image {
		t.Fatalf("regenerating an image question must keep the image type")
	}
	if !strings.Contains(q.Request.Prompt, `"¿Qué prefieres hacer un sábado?"`) {
		t.Fatalf("expected pinned text in prompt")
	}
	if !strings.Contains(q.Request.Prompt, "Leer | Correr") {
		t.Fatalf("expected previous options in prompt")
	}
}

func TestBannedOpenings(t *testing.T) {
	got := BannedOpenings([]string{
		"¿Imagina que tienes un día libre completo para ti, qué harías?",
		"¿Qué prefieres?",
		"¿Imagina que tienes un laboratorio propio y mucho tiempo?",
		"",
	})

	expected := []string{"Imagina que tienes un", "Qué prefieres"}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, got)
		}
	}
}

func TestBuildUsesLastFiveQuestions(t *testing.T) {
	b := newBuilder(t)
	recent := []string{
		"Primera pregunta muy antigua del todo",
		"Segunda pregunta de prueba con texto",
		"Tercera pregunta de prueba con texto",
		"Cuarta pregunta de prueba con texto",
		"Quinta pregunta de prueba con texto",
		"Sexta pregunta de prueba con texto",
	}

	q := b.Build(Input{Step: 7, RecentQuestions: recent})
	if len(q.BannedOpenings) != 5 || q.BannedOpenings[0] != "Segunda pregunta de" {
		t.Fatalf("unexpected openings: %v", q.BannedOpenings)
	}
}

func TestBuildResultsStrategy(t *testing.T) {
	b := newBuilder(t)

	req := b.BuildResults(ResultsInput{
		Area:   "Tecnología",
		Skills: []string{"Programación"},
		Domains: []evidence.Ranked{
			{Key: "tecnologia", Label: "Tecnología", Weight: 10},
			{Key: "arte", Label: "Arte y Diseño", Weight: 9},
		},
	})

	if req.Kind != ai.KindRecommendations || req.MaxOutputTokens != defaultResultsMT {
		t.Fatalf("unexpected request metadata: %+v", req)
	}
	if !strings.Contains(req.Prompt, "combinar Tecnología y Arte y Diseño") {
		t.Fatalf("expected blended strategy:\n%s", req.Prompt)
	}
	if !strings.Contains(req.Prompt, "Habilidades declaradas: Programación") {
		t.Fatalf("expected skills in prompt")
	}

	single := b.BuildResults(ResultsInput{Domains: []evidence.Ranked{{Label: "Salud", Weight: 3}}})
	if !strings.Contains(single.Prompt, "pertenecer a Salud") {
		t.Fatalf("expected single-domain strategy:\n%s", single.Prompt)
	}
}
