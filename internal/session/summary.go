package session

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const summarySeparator = " | "

// appendSummary adds answer to the rolling digest and drops the oldest
// entries until it fits in maxRunes.
func appendSummary(summary string, step int, answer string, maxRunes int) string {
	answer = strings.Join(strings.Fields(answer), " ")
	if answer == "" {
		return summary
	}

	entries := []string{}
	if summary != "" {
		entries = strings.Split(summary, summarySeparator)
	}
	entries = append(entries, fmt.Sprintf("%d. %s", step, answer))

	for len(entries) > 1 && utf8.RuneCountInString(strings.Join(entries, summarySeparator)) > maxRunes {
		entries = entries[1:]
	}

	out := strings.Join(entries, summarySeparator)
	if runes := []rune(out); len(runes) > maxRunes {
		out = string(runes[len(runes)-maxRunes:])
	}
	return out
}
