package taxonomy

import "testing"

func TestCatalogueShape(t *testing.T) {
	all := All()
	if len(all) != 18 {
		t.Fatalf("expected 18 domains, got %d", len(all))
	}

	seen := map[string]bool{}
	for _, d := range all {
		if seen[d.Key] {
			t.Fatalf("duplicate domain key %q", d.Key)
		}
		seen[d.Key] = true

		if len(d.Keywords) == 0 {
			t.Fatalf("domain %q has no keywords", d.Key)
		}
		if len(d.SubAreas) == 0 {
			t.Fatalf("domain %q has no sub-areas", d.Key)
		}
		for _, sub := range d.SubAreas {
			if len(sub.Keywords) == 0 || len(sub.Roles) == 0 {
				t.Fatalf("sub-area %q of %q is incomplete", sub.Name, d.Key)
			}
		}
		if len(d.Careers) < 3 {
			t.Fatalf("domain %q needs at least 3 careers for fallback results", d.Key)
		}
	}

	required := Required()
	if len(required) != 15 {
		t.Fatalf("expected 15 required domains, got %d", len(required))
	}
	for _, key := range required {
		if !seen[key] {
			t.Fatalf("required domain %q is not in the catalogue", key)
		}
	}
}

func TestLookups(t *testing.T) {
	d, ok := ByKey("tecnologia")
	if !ok || d.Label != "Tecnología" {
		t.Fatalf("unexpected lookup result: %+v %v", d.Label, ok)
	}

	d, ok = ByLabel("tecnologia")
	if !ok || d.Key != "tecnologia" {
		t.Fatalf("expected accent-insensitive label lookup, got %+v %v", d.Key, ok)
	}

	if _, ok := ByKey("astrologia"); ok {
		t.Fatalf("expected unknown key to miss")
	}

	if got := Label("salud"); got != "Salud" {
		t.Fatalf("expected Salud, got %q", got)
	}
	if got := Label("unknown"); got != "unknown" {
		t.Fatalf("expected key echo for unknown domain, got %q", got)
	}

	sub, ok := d.SubArea("desarrollo de SOFTWARE")
	if !ok || sub.Name != "Desarrollo de software" {
		t.Fatalf("expected sub-area lookup to ignore case, got %+v %v", sub.Name, ok)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Label = "changed"

	if d, _ := ByKey(all[0].Key); d.Label == "changed" {
		t.Fatalf("All must not expose the catalogue")
	}
}

func TestIsNonCommittal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		answer string
		expect bool
	}{
		{answer: "Depende", expect: true},
		{answer: "no sé", expect: true},
		{answer: "No lo sé...", expect: true},
		{answer: "me da igual", expect: true},
		{answer: "cualquiera", expect: true},
		{answer: "   ", expect: true},
		{answer: "Depende del día, pero me gusta programar", expect: false},
		{answer: "Dibujar", expect: false},
		{answer: "Me gusta cocinar", expect: false},
		{answer: "No sé, la verdad", expect: true},
		{answer: "Pues depende", expect: true},
		{answer: "Todos", expect: true},
		{answer: "Programar todos los días", expect: false},
		{answer: "Tal vez programar", expect: false},
		{answer: "Nada de oficinas, programar", expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			t.Parallel()
			if got := IsNonCommittal(tt.answer); got != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestIsEscape(t *testing.T) {
	if !IsEscape("  ninguna de estas opciones me REPRESENTA ") {
		t.Fatalf("expected escape option to be recognized")
	}
	if IsEscape("Ninguna") {
		t.Fatalf("a plain non-committal answer is not the escape option")
	}
}
