package taxonomy

import (
	"slices"
	"strings"

	"github.com/spigell/orienta/internal/similarity"
)

// EscapeOption is appended to every question. Choosing it asks for the same
// question with different options instead of recording an answer.
const EscapeOption = "Ninguna de estas opciones me representa"

var nonCommittal = []string{
	"depende",
	"no se",
	"no lo se",
	"ni idea",
	"cualquiera",
	"cualquier cosa",
	"me da igual",
	"da lo mismo",
	"ninguna",
	"ninguno",
	"todas",
	"todos",
	"nada",
	"tal vez",
	"quizas",
}

// fillers may surround a non-committal phrase without turning it into an answer.
var fillers = map[string]struct{}{
	"pues":         {},
	"bueno":        {},
	"creo":         {},
	"la":           {},
	"verdad":       {},
	"realmente":    {},
	"sinceramente": {},
	"eh":           {},
	"mmm":          {},
}

// IsEscape reports whether answer is the escape option.
func IsEscape(answer string) bool {
	return similarity.Normalize(answer) == similarity.Normalize(EscapeOption)
}

// IsNonCommittal reports whether answer carries no usable preference, such as
// "depende" or "no sé, la verdad". The whole answer must be the phrase plus
// optional filler words; "tal vez programar" is a real answer.
func IsNonCommittal(answer string) bool {
	tokens := similarity.Tokens(answer)
	if len(tokens) == 0 {
		return true
	}

	for _, phrase := range nonCommittal {
		words := strings.Fields(phrase)
		for i := 0; i+len(words) <= len(tokens); i++ {
			if !slices.Equal(tokens[i:i+len(words)], words) {
				continue
			}
			if onlyFillers(tokens[:i]) && onlyFillers(tokens[i+len(words):]) {
				return true
			}
		}
	}

	return false
}

func onlyFillers(tokens []string) bool {
	for _, token := range tokens {
		if _, ok := fillers[token]; !ok {
			return false
		}
	}
	return true
}
