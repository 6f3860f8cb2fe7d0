package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	keyFile := filepath.Join(dir, "gemini.key")
	if err := os.WriteFile(keyFile, []byte("from-file\n"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	emptyFile := filepath.Join(dir, "empty.key")
	if err := os.WriteFile(emptyFile, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("write empty file: %v", err)
	}

	tests := []struct {
		name    string
		src     Source
		expect  string
		missing bool
		fails   bool
	}{
		{name: "inline value", src: Source{Name: "gemini api key", Value: "  inline  "}, expect: "inline"},
		{name: "file wins over inline", src: Source{Value: "inline", File: keyFile}, expect: "from-file"},
		{name: "nothing configured", src: Source{Name: "profile token"}, missing: true},
		{name: "empty file does not fall back to inline", src: Source{Value: "inline", File: emptyFile}, missing: true},
		{name: "unreadable file", src: Source{File: filepath.Join(dir, "absent.key")}, fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Load(tt.src)
			switch {
			case tt.missing:
				if !errors.Is(err, ErrMissing) {
					t.Fatalf("expected ErrMissing, got %v", err)
				}
			case tt.fails:
				if err == nil || errors.Is(err, ErrMissing) {
					t.Fatalf("expected a read error, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.expect {
					t.Fatalf("expected %q, got %q", tt.expect, got)
				}
			}
		})
	}
}
