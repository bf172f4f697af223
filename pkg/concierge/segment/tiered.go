package segment

import "strings"

// Tiered runs Primary first and falls back to MaxMatch when the primary
// result is degenerate.
type Tiered struct {
	Primary  Segmenter
	Fallback *MaxMatch
}

// NewTiered pairs the Coarse segmenter with a dictionary fallback.
func NewTiered(fallback *MaxMatch) *Tiered {
	return &Tiered{Primary: Coarse{}, Fallback: fallback}
}

// Segment accepts the primary result only if it covers the input and, for
// input with more than one whitespace-separated word, yields more than one
// non-separator token. Otherwise the MaxMatch result is returned.
func (t *Tiered) Segment(text string) []Token {
	if text == "" {
		return nil
	}
	if t.Primary != nil {
		primary := t.Primary.Segment(text)
		if accept(text, primary) {
			return primary
		}
	}
	if t.Fallback == nil {
		return NewMaxMatch(nil).Segment(text)
	}
	return t.Fallback.Segment(text)
}

func accept(text string, tokens []Token) bool {
	if Join(tokens) != text {
		return false
	}
	content := len(Words(tokens))
	if len(strings.Fields(text)) > 1 {
		return content > 1
	}
	return content >= 1
}
