package segment

import (
	"strings"
	"unicode"

	"github.com/cognicore/concierge/pkg/concierge/dict"
)

// MaxMatch is a greedy longest-match segmenter over a dictionary index.
type MaxMatch struct {
	index *dict.Index
}

// NewMaxMatch creates a segmenter over index. A nil index matches nothing.
func NewMaxMatch(index *dict.Index) *MaxMatch {
	return &MaxMatch{index: index}
}

// Segment splits text into tokens. Whitespace runs become one separator
// token, punctuation stands alone, and at every other position the longest
// window whose normalized form is a dictionary key becomes a term. When no
// window matches a single code point is emitted.
func (m *MaxMatch) Segment(text string) []Token {
	tokens, _ := m.segment(decode(text), false)
	return tokens
}

// SegmentPartial segments a buffer that may still grow. Tokens up to the
// returned pending tail are final; the tail is a trailing run whose
// normalized form is a proper prefix of some keyword and must be held back
// until more text arrives (or flushed with Segment).
func (m *MaxMatch) SegmentPartial(text string) (tokens []Token, pending string) {
	src := decode(text)
	tokens, stop := m.segment(src, true)
	return tokens, src.text[src.starts[stop]:]
}

func (m *MaxMatch) segment(src source, partial bool) ([]Token, int) {
	runes := src.runes
	var tokens []Token
	i := 0
	for i < len(runes) {
		r := runes[i]
		if unicode.IsSpace(r) {
			j := spaceRun(runes, i)
			tokens = append(tokens, Token{Offset: i, Text: src.slice(i, j), Norm: " ", Kind: KindSpace})
			i = j
			continue
		}
		if isPunct(r) {
			tokens = append(tokens, Token{Offset: i, Text: src.slice(i, i+1), Norm: string(r), Kind: KindPunct})
			i++
			continue
		}
		if partial && m.growable(runes[i:]) {
			return tokens, i
		}
		if end, key, ok := m.longest(runes, i); ok {
			tokens = append(tokens, Token{Offset: i, Text: src.slice(i, end), Norm: key, Kind: KindTerm})
			i = end
			continue
		}
		tokens = append(tokens, Token{Offset: i, Text: src.slice(i, i+1), Norm: string(unicode.ToLower(r)), Kind: KindRune})
		i++
	}
	return tokens, len(runes)
}

// longest probes windows starting at i from longest to shortest. Windows
// never cross punctuation, never end on whitespace or a hyphen, and hold at
// most MaxLen normalized code points.
func (m *MaxMatch) longest(runes []rune, i int) (end int, key string, ok bool) {
	maxLen := m.index.MaxLen()
	if maxLen == 0 {
		return 0, "", false
	}

	var (
		ends []int
		keys []string
		norm strings.Builder
		n    int
	)
	for j := i; j < len(runes); j++ {
		r := runes[j]
		if unicode.IsSpace(r) || r == '-' {
			continue
		}
		if isPunct(r) {
			break
		}
		n++
		if n > maxLen {
			break
		}
		norm.WriteRune(unicode.ToLower(r))
		ends = append(ends, j+1)
		keys = append(keys, norm.String())
	}

	for k := len(ends) - 1; k >= 0; k-- {
		if _, hit := m.index.Lookup(keys[k]); hit {
			return ends[k], keys[k], true
		}
	}
	return 0, "", false
}

// growable reports whether the whole tail could still grow into a keyword.
func (m *MaxMatch) growable(tail []rune) bool {
	var norm strings.Builder
	for _, r := range tail {
		if unicode.IsSpace(r) || r == '-' {
			continue
		}
		if isPunct(r) {
			return false
		}
		norm.WriteRune(unicode.ToLower(r))
	}
	key := norm.String()
	return key != "" && m.index.HasPrefix(key)
}
