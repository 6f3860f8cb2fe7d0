package similarity

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "folds accents", input: "Lógica de Programación", expect: "logica de programacion"},
		{name: "collapses whitespace", input: "  mucho   espacio \n aqui ", expect: "mucho espacio aqui"},
		{name: "keeps punctuation", input: "¿Qué HACES?", expect: "¿que haces?"},
		{name: "empty", input: "", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestContentTokensDropsStopWords(t *testing.T) {
	tokens := ContentTokens("¿Qué te gustaría hacer en un laboratorio?")
	expected := []string{"gustaria", "hacer", "laboratorio"}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, tokens)
	}
	for i := range expected {
		if tokens[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, tokens)
		}
	}
}

func TestEditSimilarity(t *testing.T) {
	if got := EditSimilarity("", ""); got != 1 {
		t.Fatalf("expected 1 for empty strings, got %v", got)
	}

	if got := EditSimilarity("Canción", "cancion"); got != 1 {
		t.Fatalf("expected accents to be ignored, got %v", got)
	}

	got := EditSimilarity("enfermeria", "enfermerya")
	if math.Abs(got-0.9) > 1e-9 {
		t.Fatalf("expected 0.9, got %v", got)
	}
}

func TestIsNearDuplicate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		a, b   string
		expect bool
	}{
		{name: "identical after normalization", a: "¿Qué te gusta hacer?", b: "¿que te gusta   hacer?", expect: true},
		{name: "few trailing edits", a: "¿Qué te gusta hacer hoy?", b: "¿Qué te gusta hacer?", expect: true},
		{name: "different questions", a: "¿Qué te gusta hacer?", b: "¿Prefieres trabajar al aire libre o en una oficina?", expect: false},
		{name: "same length many edits", a: "abcdefghij", b: "klmnopqrst", expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsNearDuplicate(tt.a, tt.b, 5, 5); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestJaccardAndCosine(t *testing.T) {
	same := "Imagina que diriges un laboratorio de biología"
	if got := Jaccard(same, same); got != 1 {
		t.Fatalf("expected jaccard 1, got %v", got)
	}
	if got := Cosine(same, same); math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected cosine 1, got %v", got)
	}

	other := "Prefieres cocinar recetas nuevas"
	if got := Jaccard(same, other); got != 0 {
		t.Fatalf("expected jaccard 0, got %v", got)
	}
	if got := Cosine(same, other); got != 0 {
		t.Fatalf("expected cosine 0, got %v", got)
	}

	if got := Jaccard("de la", "el los"); got != 0 {
		t.Fatalf("expected stop-word-only texts to be unrelated, got %v", got)
	}
}

func TestMatchKeyword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		keyword string
		ok      bool
		method  Method
	}{
		{name: "literal", text: "Me gusta programar y resolver problemas", keyword: "programar", ok: true, method: MethodLiteral},
		{name: "literal across accents", text: "Me gusta la lógica", keyword: "logica", ok: true, method: MethodLiteral},
		{name: "spanish z plural", text: "Me encantan las luces del escenario", keyword: "luz", ok: true, method: MethodPlural},
		{name: "fuzzy long keyword", text: "quiero estudiar enfermerya", keyword: "enfermería", ok: true, method: MethodFuzzy},
		{name: "short keyword is never fuzzy", text: "escribo codgo", keyword: "código", ok: false},
		{name: "no match", text: "me gusta dormir", keyword: "hospital", ok: false},
		{name: "empty text", text: "", keyword: "hospital", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			match, ok := MatchKeyword(tt.text, tt.keyword)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v (%+v)", tt.ok, ok, match)
			}
			if ok && match.Method != tt.method {
				t.Fatalf("expected method %s, got %s", tt.method, match.Method)
			}
		})
	}
}
