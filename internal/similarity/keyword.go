package similarity

import (
	"regexp"
	"strings"
	"sync"
)

// Method identifies which tier of the keyword matcher fired.
type Method string

const (
	MethodLiteral  Method = "literal"
	MethodPlural   Method = "plural"
	MethodBoundary Method = "boundary"
	MethodFuzzy    Method = "fuzzy"
)

const (
	// FuzzyMinKeywordRunes guards short and common keywords against fuzzy over-matching.
	FuzzyMinKeywordRunes = 8
	// FuzzyThreshold is the minimal edit similarity for a fuzzy match.
	FuzzyThreshold = 0.75
)

// Match describes a successful keyword match.
type Match struct {
	Method     Method
	Similarity float64
}

var boundaryCache sync.Map

// MatchKeyword runs the four-tier matcher of keyword against text:
// literal substring, plural form, word boundary and, for long keywords only,
// edit similarity against word windows of the same width.
func MatchKeyword(text, keyword string) (Match, bool) {
	return matchNormalized(Normalize(text), Normalize(keyword))
}

// MatchKeywordNormalized is MatchKeyword for inputs that were already passed through Normalize.
func MatchKeywordNormalized(text, keyword string) (Match, bool) {
	return matchNormalized(text, keyword)
}

func matchNormalized(text, keyword string) (Match, bool) {
	if text == "" || keyword == "" {
		return Match{}, false
	}

	// Literal shadows the next two tiers: only the z to ces plural reaches
	// MethodPlural and MethodBoundary is never reported.
	if strings.Contains(text, keyword) {
		return Match{Method: MethodLiteral, Similarity: 1}, true
	}

	for _, plural := range plurals(keyword) {
		if strings.Contains(text, plural) {
			return Match{Method: MethodPlural, Similarity: 1}, true
		}
	}

	if boundaryPattern(keyword).MatchString(text) {
		return Match{Method: MethodBoundary, Similarity: 1}, true
	}

	if len([]rune(keyword)) < FuzzyMinKeywordRunes {
		return Match{}, false
	}

	best := bestWindowSimilarity(text, keyword)
	if best >= FuzzyThreshold {
		return Match{Method: MethodFuzzy, Similarity: best}, true
	}

	return Match{}, false
}

// plurals returns the +s and +es forms of keyword, plus the z -> ces form
// Spanish uses for words such as "luz" or "lápiz".
func plurals(keyword string) []string {
	forms := []string{keyword + "s", keyword + "es"}
	if stem, ok := strings.CutSuffix(keyword, "z"); ok {
		forms = append(forms, stem+"ces")
	}

	return forms
}

func boundaryPattern(keyword string) *regexp.Regexp {
	if cached, ok := boundaryCache.Load(keyword); ok {
		return cached.(*regexp.Regexp)
	}

	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
	boundaryCache.Store(keyword, pattern)

	return pattern
}

// bestWindowSimilarity compares keyword with every run of consecutive words of
// text that has the same word count as keyword.
func bestWindowSimilarity(text, keyword string) float64 {
	words := Tokens(text)
	width := len(strings.Fields(keyword))
	if width == 0 || len(words) < width {
		return 0
	}

	best := 0.0
	for i := 0; i+width <= len(words); i++ {
		window := strings.Join(words[i:i+width], " ")
		if score := editSimilarity(window, keyword); score > best {
			best = score
		}
	}

	return best
}
