// Package segment splits text into tokens for incremental display of
// assistant speech.
//
// Two segmenters are provided: Coarse, which splits on word boundaries, and
// MaxMatch, which performs greedy longest-match against a dictionary.Index
// one code point at a time. Tiered runs a primary segmenter and falls back to
// MaxMatch when the primary collapses a multi-word input into a single unit.
//
// Every segmenter returns tokens that jointly cover the input: Join(tokens)
// always equals the original text, byte for byte, including invalid UTF-8.
package segment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a token.
type Kind int

const (
	// KindTerm is a dictionary match (MaxMatch) or a word run (Coarse).
	KindTerm Kind = iota
	// KindSpace is a run of whitespace.
	KindSpace
	// KindPunct is a single punctuation or symbol code point.
	KindPunct
	// KindRune is a single code point that matched nothing.
	KindRune
)

func (k Kind) String() string {
	switch k {
	case KindTerm:
		return "term"
	case KindSpace:
		return "space"
	case KindPunct:
		return "punct"
	case KindRune:
		return "rune"
	}
	return "unknown"
}

// Token is one segment of the input. Offset counts code points, not bytes.
type Token struct {
	Offset int
	Text   string // original characters, case preserved
	Norm   string // lowercased form; for dictionary hits the normalized keyword
	Kind   Kind
}

// IsSeparator reports whether the token is whitespace.
func (t Token) IsSeparator() bool {
	return t.Kind == KindSpace
}

// Segmenter turns text into covering tokens.
type Segmenter interface {
	Segment(text string) []Token
}

// Join concatenates the original text of every token.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Words returns the text of every non-separator token.
func Words(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !t.IsSeparator() {
			out = append(out, t.Text)
		}
	}
	return out
}

func isPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func spaceRun(runes []rune, i int) int {
	j := i + 1
	for j < len(runes) && unicode.IsSpace(runes[j]) {
		j++
	}
	return j
}

// source is text decoded into code points. starts holds the byte offset of
// every code point plus len(text), so token text is sliced from the input
// and invalid bytes survive unchanged.
type source struct {
	text   string
	runes  []rune
	starts []int
}

func decode(text string) source {
	src := source{text: text}
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		src.runes = append(src.runes, r)
		src.starts = append(src.starts, i)
		i += size
	}
	src.starts = append(src.starts, len(text))
	return src
}

// slice returns the input bytes of code points [i, j).
func (s source) slice(i, j int) string {
	return s.text[s.starts[i]:s.starts[j]]
}
