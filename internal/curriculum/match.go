package curriculum

import (
	"strings"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/keywords"
)

// RelatesTo reports whether a free-text concept name relates to a standard:
// true when any content word of the concept name occurs in the standard's
// title, description, or domain. Callers with an explicit standard ID tag on
// their mastery records should prefer that and use this heuristic only for
// untagged legacy data.
func RelatesTo(conceptName string, std Standard) bool {
	words := keywords.ContentWords(conceptName)
	if len(words) == 0 {
		return false
	}

	haystack := strings.ToLower(std.Title + " " + std.Description + " " + std.Domain)
	for _, w := range words {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}
