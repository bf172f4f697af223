package extract

import (
	"regexp"
	"strings"
)

var (
	bulletLine   = regexp.MustCompile(`(?m)^[ \t]*(?:[-*•–]|\d{1,2}[.)])[ \t]+(.+?)[ \t]*$`)
	actionPhrase = regexp.MustCompile(`(?i)\b(?:requested|requests|ordered|orders|booked|books|reserved|inquired about|enquired about|asked for|asks for|would like)\s+((?:[^.;!?\n]|\.\d)+)`)
	itemsSection = regexp.MustCompile(`(?i)\bitems?\s*:\s*([^\n]+)`)
	itemSplit    = regexp.MustCompile(`(?i)\s*(?:,|;|\band\b|&|\+)\s*`)
	sentenceEnd  = regexp.MustCompile(`[.!?\n]+\s*`)
	requestCue   = regexp.MustCompile(`(?i)\b(?:need|needs|want|wants|would like|please|bring|send|get|request|require|requires|can i|could you|looking for|arrange)\b`)
)

// filler words carry no item content on their own; a fragment made only of
// these (e.g. "ASAP please") is not an item.
var filler = map[string]struct{}{
	"asap": {}, "please": {}, "thanks": {}, "thank": {}, "you": {},
	"urgently": {}, "immediately": {}, "now": {}, "soon": {}, "as": {},
	"possible": {}, "quickly": {}, "kindly": {}, "right": {}, "away": {},
	"also": {}, "too": {}, "the": {}, "a": {}, "an": {}, "guest": {},
	"none": {}, "n": {}, "nothing": {},
}

// Items returns raw item phrases found in text. Four strategies run in
// order and their results are concatenated:
//
//  1. bullet or numbered lines
//  2. phrases following an action verb ("requested ...", "ordered ...")
//  3. an explicit "items:" section, split on commas, "and", "&" and "+"
//  4. sentences containing a request cue, only if 1-3 found nothing
//
// Overlap between strategies is left for deduplication downstream.
func Items(text string) []string {
	items := []string{}

	for _, m := range bulletLine.FindAllStringSubmatch(text, -1) {
		items = appendItem(items, m[1])
	}

	for _, m := range actionPhrase.FindAllStringSubmatch(text, -1) {
		for _, part := range splitItems(m[1]) {
			items = appendItem(items, part)
		}
	}

	for _, m := range itemsSection.FindAllStringSubmatch(text, -1) {
		for _, part := range splitItems(m[1]) {
			items = appendItem(items, part)
		}
	}

	if len(items) > 0 {
		return items
	}

	for _, sentence := range sentenceEnd.Split(text, -1) {
		if requestCue.MatchString(sentence) {
			items = appendItem(items, sentence)
		}
	}
	return items
}

func splitItems(s string) []string {
	return itemSplit.Split(s, -1)
}

func appendItem(items []string, raw string) []string {
	item := strings.TrimSpace(raw)
	item = strings.TrimRight(item, " ,;:")
	if item == "" || isFiller(item) {
		return items
	}
	return append(items, item)
}

func isFiller(s string) bool {
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127)
	}) {
		if _, ok := filler[w]; !ok {
			return false
		}
	}
	return true
}
