// Package pairs generates canonical unordered token pairs. Both query
// engines call the same ForLine function, so the paths can only diverge in
// how they aggregate, never in how pairs are formed.
package pairs

import "sort"

// Separator joins the two tokens of a pair key.
const Separator = "|"

// ForLine returns the pair keys for one line: the line's distinct tokens,
// sorted ascending, combined with replacement. Every key has the form "a|b"
// with a <= b; the mirrored "b|a" form is never emitted.
func ForLine(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	uniq := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		uniq = append(uniq, tok)
	}
	if len(uniq) == 0 {
		return nil
	}
	sort.Strings(uniq)

	out := make([]string, 0, len(uniq)*(len(uniq)+1)/2)
	for i := 0; i < len(uniq); i++ {
		for j := i; j < len(uniq); j++ {
			out = append(out, uniq[i]+Separator+uniq[j])
		}
	}
	return out
}
