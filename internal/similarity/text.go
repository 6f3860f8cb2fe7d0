// Package similarity holds the pure text comparison helpers used by the
// assessment engine: normalization, edit distance, set and vector similarity,
// and the tiered keyword matcher.
package similarity

import (
	"math"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases s, folds accents and collapses whitespace.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	return strings.Join(strings.Fields(folded), " ")
}

// Tokens returns the normalized words of s.
func Tokens(s string) []string {
	return strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ContentTokens returns the normalized words of s without stop words.
func ContentTokens(s string) []string {
	tokens := Tokens(s)
	out := tokens[:0]
	for _, token := range tokens {
		if _, stop := stopWords[token]; stop {
			continue
		}
		out = append(out, token)
	}

	return out
}

// Distance is the rune-level Levenshtein distance between a and b.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// EditSimilarity is 1 - distance/maxLen computed on normalized text.
func EditSimilarity(a, b string) float64 {
	return editSimilarity(Normalize(a), Normalize(b))
}

func editSimilarity(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1
	}

	return 1 - float64(Distance(a, b))/float64(maxLen)
}

// IsNearDuplicate reports whether a and b are the same text after
// normalization, or differ by fewer than maxLenDiff runes in length and fewer
// than maxDistance edits.
func IsNearDuplicate(a, b string, maxLenDiff, maxDistance int) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return true
	}

	diff := len([]rune(na)) - len([]rune(nb))
	if diff < 0 {
		diff = -diff
	}

	return diff < maxLenDiff && Distance(na, nb) < maxDistance
}

// Jaccard is the Jaccard index of the content-token sets of a and b.
// Two texts without content tokens are considered unrelated.
func Jaccard(a, b string) float64 {
	setA := toSet(ContentTokens(a))
	setB := toSet(ContentTokens(b))
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// Cosine is the cosine similarity of the term-frequency vectors of a and b.
func Cosine(a, b string) float64 {
	tfA := termFrequency(ContentTokens(a))
	tfB := termFrequency(ContentTokens(b))
	if len(tfA) == 0 || len(tfB) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for term, countA := range tfA {
		normA += countA * countA
		if countB, ok := tfB[term]; ok {
			dot += countA * countB
		}
	}
	for _, countB := range tfB {
		normB += countB * countB
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}

	return set
}

func termFrequency(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		tf[token]++
	}

	return tf
}
