// Package secrets resolves credentials such as the generator api key and the
// profile service token.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMissing is returned when a source yields no usable value.
var ErrMissing = errors.New("secret is missing")

// Source describes where a secret comes from.
type Source struct {
	// Name labels the secret in errors.
	Name string
	// Value is an inline value from configuration or the environment.
	Value string
	// File holds the value. A set File wins over Value, even when Value is set.
	File string
}

// Load returns the trimmed secret from src.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file == "" {
		if secret := strings.TrimSpace(src.Value); secret != "" {
			return secret, nil
		}
		return "", fmt.Errorf("%w: %s is not configured", ErrMissing, name)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
	}
	if secret := strings.TrimSpace(string(data)); secret != "" {
		return secret, nil
	}
	return "", fmt.Errorf("%w: %s file %q is empty", ErrMissing, name, file)
}
