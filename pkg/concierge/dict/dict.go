// Package dict holds the immutable dictionary of known words, phrases and
// names used by the segmenter.
//
// An Index is built once from a list of entries and never mutated. Adding
// terms means building a new Index with With, so an Index can be shared by
// any number of goroutines without locking.
package dict

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrEmptyKeyword = errors.New("dictionary entry has empty keyword")
	ErrUnknownType  = errors.New("dictionary entry has unknown type")
)

// EntryType classifies a dictionary entry.
type EntryType string

const (
	TypeWord   EntryType = "word"
	TypePhrase EntryType = "phrase"
	TypeName   EntryType = "name"
)

// Entry is one known term.
type Entry struct {
	Keyword   string    `json:"keyword" yaml:"keyword"`
	Fragments []string  `json:"fragments,omitempty" yaml:"fragments,omitempty"`
	Type      EntryType `json:"type" yaml:"type"`
}

// Validate checks the entry has a keyword and a known type. An empty type
// is accepted and treated as a word.
func (e Entry) Validate() error {
	if Normalize(e.Keyword) == "" {
		return ErrEmptyKeyword
	}
	switch e.Type {
	case "", TypeWord, TypePhrase, TypeName:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownType, e.Type)
}

// Normalize lowercases s and strips whitespace and hyphens, giving the form
// used for dictionary keys.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '-' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Index is an immutable lookup from normalized keyword to entry.
type Index struct {
	entries  []Entry
	byKey    map[string]Entry
	prefixes map[string]struct{} // proper prefixes of every key
	maxLen   int                 // in runes of the normalized key
}

// New builds an index from entries. When two entries normalize to the same
// key the later one wins.
func New(entries []Entry) (*Index, error) {
	idx := &Index{
		entries:  make([]Entry, 0, len(entries)),
		byKey:    make(map[string]Entry, len(entries)),
		prefixes: make(map[string]struct{}),
	}
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if e.Type == "" {
			e.Type = TypeWord
		}
		e.Fragments = append([]string(nil), e.Fragments...)
		idx.add(e)
	}
	return idx, nil
}

// MustNew is New that panics on invalid entries. Intended for fixtures.
func MustNew(entries []Entry) *Index {
	idx, err := New(entries)
	if err != nil {
		panic(err)
	}
	return idx
}

func (x *Index) add(e Entry) {
	key := Normalize(e.Keyword)
	if _, exists := x.byKey[key]; exists {
		for i := range x.entries {
			if Normalize(x.entries[i].Keyword) == key {
				x.entries[i] = e
				break
			}
		}
	} else {
		x.entries = append(x.entries, e)
	}
	x.byKey[key] = e
	if n := utf8.RuneCountInString(key); n > x.maxLen {
		x.maxLen = n
	}
	runes := []rune(key)
	for i := 1; i < len(runes); i++ {
		x.prefixes[string(runes[:i])] = struct{}{}
	}
}

// Lookup returns the entry whose normalized keyword equals key. key must
// already be in Normalize form.
func (x *Index) Lookup(key string) (Entry, bool) {
	if x == nil {
		return Entry{}, false
	}
	e, ok := x.byKey[key]
	return e, ok
}

// Find normalizes text and looks it up.
func (x *Index) Find(text string) (Entry, bool) {
	return x.Lookup(Normalize(text))
}

// HasPrefix reports whether the normalized key is a proper prefix of some
// keyword, i.e. more input could still complete it into a match.
func (x *Index) HasPrefix(key string) bool {
	if x == nil {
		return false
	}
	_, ok := x.prefixes[key]
	return ok
}

// MaxLen returns the rune length of the longest normalized keyword.
func (x *Index) MaxLen() int {
	if x == nil {
		return 0
	}
	return x.maxLen
}

// Len returns the number of distinct keys.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.byKey)
}

// Entries returns a copy of the entries in insertion order.
func (x *Index) Entries() []Entry {
	if x == nil {
		return nil
	}
	out := make([]Entry, len(x.entries))
	copy(out, x.entries)
	return out
}

// With returns a new index holding x's entries plus extra. x is unchanged.
func (x *Index) With(extra ...Entry) (*Index, error) {
	all := append(x.Entries(), extra...)
	return New(all)
}
