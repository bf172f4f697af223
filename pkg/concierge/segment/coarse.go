package segment

import "unicode"

// Coarse splits text on word boundaries: runs of letters, digits, marks,
// apostrophes and inner hyphens form one term, whitespace runs form one
// separator and every other code point stands alone.
type Coarse struct{}

// Segment implements Segmenter.
func (Coarse) Segment(text string) []Token {
	src := decode(text)
	runes := src.runes
	var tokens []Token
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			j := spaceRun(runes, i)
			tokens = append(tokens, Token{Offset: i, Text: src.slice(i, j), Norm: " ", Kind: KindSpace})
			i = j
		case isWordRune(r):
			j := i + 1
			for j < len(runes) && (isWordRune(runes[j]) || isInnerJoiner(runes, j)) {
				j++
			}
			word := src.slice(i, j)
			tokens = append(tokens, Token{Offset: i, Text: word, Norm: lower(word), Kind: KindTerm})
			i = j
		default:
			tokens = append(tokens, Token{Offset: i, Text: src.slice(i, i+1), Norm: string(r), Kind: KindPunct})
			i++
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

// isInnerJoiner accepts a hyphen or apostrophe only between two word runes,
// so "x-ray" and "don't" stay whole while "--" and trailing quotes split.
func isInnerJoiner(runes []rune, j int) bool {
	r := runes[j]
	if r != '-' && r != '\'' && r != '’' {
		return false
	}
	return j+1 < len(runes) && isWordRune(runes[j+1])
}

func lower(s string) string {
	out := []rune(s)
	for i, r := range out {
		out[i] = unicode.ToLower(r)
	}
	return string(out)
}
