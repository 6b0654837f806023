package tree

import (
	"strconv"
	"strings"

	"github.com/codalotl/docview/internal/highlight"
	"github.com/codalotl/docview/internal/value"
)

// Matches reports whether v contains term, case-insensitively, in any object key, any array index (as decimal text), or the text of any primitive at any depth.
// The term is trimmed; a blank term matches nothing. The walk stops at the first match.
func Matches(v value.Value, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return false
	}
	return matches(v, term)
}

func matches(v value.Value, term string) bool {
	switch v.Kind() {
	case value.Array:
		for i, item := range v.Items() {
			if highlight.ContainsFold(strconv.Itoa(i), term) || matches(item, term) {
				return true
			}
		}
		return false
	case value.Object:
		for _, m := range v.Members() {
			if highlight.ContainsFold(m.Key, term) || matches(m.Value, term) {
				return true
			}
		}
		return false
	}
	return highlight.ContainsFold(v.Text(), term)
}

func countMatches(v value.Value, term string) int {
	term = strings.TrimSpace(term)
	if term == "" {
		return 0
	}
	n := 0
	var walk func(v value.Value)
	walk = func(v value.Value) {
		if !v.IsContainer() {
			if highlight.ContainsFold(v.Text(), term) {
				n++
			}
			return
		}
		eachChild(v, func(label string, child value.Value) {
			if highlight.ContainsFold(label, term) {
				n++
			}
			walk(child)
		})
	}
	walk(v)
	return n
}
