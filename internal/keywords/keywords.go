// Package keywords provides the tokenization shared by concept-to-standard
// matching and content fingerprinting: lowercase content words longer than
// three characters, filtered against a fixed English stopword list.
//
// The >3 length threshold and the stopword list below are this module's own
// documented choices; the matching heuristic has no canonical source mapping,
// so both sides of it (curriculum matching and fingerprinting) must share one
// definition to stay consistent.
package keywords

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords are common English words excluded from content-word extraction.
var stopwords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"all": true, "also": true, "and": true, "answer": true, "any": true,
	"are": true, "because": true, "been": true, "before": true, "being": true,
	"below": true, "between": true, "both": true, "but": true, "can": true,
	"could": true, "did": true, "does": true, "doing": true, "down": true,
	"during": true, "each": true, "find": true, "following": true, "for": true,
	"from": true, "further": true, "had": true, "has": true, "have": true,
	"here": true, "how": true, "into": true, "its": true, "just": true,
	"many": true, "more": true, "most": true, "much": true, "not": true,
	"now": true, "only": true, "other": true, "our": true, "out": true,
	"over": true, "same": true, "should": true, "show": true, "solve": true,
	"some": true, "so": true, "such": true, "than": true, "that": true,
	"the": true, "their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "those": true, "through": true,
	"under": true, "until": true, "upon": true, "use": true, "using": true,
	"very": true, "was": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "who": true, "why": true,
	"will": true, "with": true, "would": true, "you": true, "your": true,
}

// IsStopword reports whether w (already lowercased) is a stopword.
func IsStopword(w string) bool {
	return stopwords[w]
}

// Tokenize splits s into lowercase alphanumeric tokens.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ContentWords returns the lowercase tokens of s longer than three
// characters that are not stopwords, in order of appearance.
func ContentWords(s string) []string {
	var out []string
	for _, tok := range Tokenize(s) {
		if len(tok) > 3 && !stopwords[tok] {
			out = append(out, tok)
		}
	}
	return out
}

// TopByFrequency returns up to n distinct words ranked by descending
// frequency, ties broken alphabetically for determinism.
func TopByFrequency(words []string, n int) []string {
	if len(words) == 0 || n <= 0 {
		return nil
	}

	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}

	distinct := make([]string, 0, len(counts))
	for w := range counts {
		distinct = append(distinct, w)
	}
	sort.Slice(distinct, func(i, j int) bool {
		if counts[distinct[i]] != counts[distinct[j]] {
			return counts[distinct[i]] > counts[distinct[j]]
		}
		return distinct[i] < distinct[j]
	})

	if len(distinct) > n {
		distinct = distinct[:n]
	}
	return distinct
}
