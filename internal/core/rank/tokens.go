package rank

import "strings"

// stopwords are filler words stripped from queries and matched fields
// before computing token overlap.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "find": {}, "for": {}, "from": {}, "help": {},
	"how": {}, "i": {}, "in": {}, "is": {}, "it": {}, "looking": {},
	"me": {}, "my": {}, "need": {}, "of": {}, "on": {}, "or": {},
	"solution": {}, "that": {}, "the": {}, "to": {}, "want": {},
	"with": {},
}

// Tokenize lowercases text, strips punctuation, splits on whitespace
// and removes stopwords. Every text-match signal uses this one
// normalization so the signals stay comparable.
func Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	tokens := fields[:0]
	for _, f := range fields {
		if _, stop := stopwords[f]; !stop {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// TokenSet returns Tokenize output as a membership set.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Overlap is the fraction of query tokens present in the field set.
// An empty query yields 0: ranking then falls back to the non-textual
// signals, which is the intended degradation.
func Overlap(query, field map[string]struct{}) float64 {
	if len(query) == 0 || len(field) == 0 {
		return 0
	}
	hits := 0
	for t := range query {
		if _, ok := field[t]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(query))
}
