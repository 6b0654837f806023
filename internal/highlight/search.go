package highlight

import (
	"strings"
	"unicode"
)

// SearchSpans returns a TagSearch span for every occurrence of the trimmed term in text. Matching is case-insensitive and literal (no pattern syntax), and occurrences
// do not overlap: scanning resumes after the end of each match. An empty or all-space term matches nothing.
func SearchSpans(text, term string) []Span {
	needle := foldRunes(strings.TrimSpace(term))
	if len(needle) == 0 {
		return nil
	}
	hay := foldRunes(text)

	var spans []Span
	for i := 0; i+len(needle) <= len(hay); {
		if runesHavePrefix(hay[i:], needle) {
			spans = append(spans, Span{Start: i, End: i + len(needle), Tag: TagSearch, Priority: PrioritySearch})
			i += len(needle)
			continue
		}
		i++
	}
	return spans
}

// ContainsFold reports whether term occurs in s, ignoring case. term is used as given (callers trim).
func ContainsFold(s, term string) bool {
	needle := foldRunes(term)
	if len(needle) == 0 {
		return true
	}
	hay := foldRunes(s)
	for i := 0; i+len(needle) <= len(hay); i++ {
		if runesHavePrefix(hay[i:], needle) {
			return true
		}
	}
	return false
}

// foldRunes lowercases rune by rune so that offsets into the result are offsets into s.
func foldRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

func runesHavePrefix(s, prefix []rune) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i := range prefix {
		if s[i] != prefix[i] {
			return false
		}
	}
	return true
}
