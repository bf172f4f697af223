// Package dedup merges near-duplicate order items.
package dedup

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/concierge/pkg/concierge/order"
)

// Threshold is the similarity above which an item is dropped as a duplicate
// of one already accepted.
const Threshold = 0.8

// Similarity scores a and b in [0,1]. Equal strings score 1. When one
// contains the other the score is len(shorter)/len(longer). Otherwise it is
// the number of characters of the shorter string that can be paired with an
// unused occurrence in the longer one, divided by len(longer). Lengths count
// code points.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	shorter, longer := a, b
	ls, ll := la, lb
	if la > lb {
		shorter, longer = b, a
		ls, ll = lb, la
	}
	if ll == 0 {
		return 1
	}
	if strings.Contains(longer, shorter) {
		return float64(ls) / float64(ll)
	}

	avail := make(map[rune]int, ll)
	for _, r := range longer {
		avail[r]++
	}
	shared := 0
	for _, r := range shorter {
		if avail[r] > 0 {
			avail[r]--
			shared++
		}
	}
	return float64(shared) / float64(ll)
}

// NormalizeName lowercases name and collapses whitespace runs.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Items keeps the first of every group of items whose normalized names are
// more than Threshold similar, preserving order, and renumbers ids 1..N.
// The input slice is not modified.
func Items(items []order.Item) []order.Item {
	out := make([]order.Item, 0, len(items))
	var accepted []string
	for _, item := range items {
		name := NormalizeName(item.Name)
		if isDuplicate(name, accepted) {
			continue
		}
		accepted = append(accepted, name)
		out = append(out, item)
	}
	for i := range out {
		out[i].ID = strconv.Itoa(i + 1)
	}
	return out
}

// Strings applies the same rule to raw phrases.
func Strings(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	var accepted []string
	for _, p := range phrases {
		name := NormalizeName(p)
		if isDuplicate(name, accepted) {
			continue
		}
		accepted = append(accepted, name)
		out = append(out, p)
	}
	return out
}

func isDuplicate(name string, accepted []string) bool {
	for _, prev := range accepted {
		if Similarity(name, prev) > Threshold {
			return true
		}
	}
	return false
}

// Requests applies the same rule to requests, comparing their texts.
func Requests(reqs []order.Request) []order.Request {
	out := make([]order.Request, 0, len(reqs))
	var accepted []string
	for _, r := range reqs {
		name := NormalizeName(r.Text)
		if isDuplicate(name, accepted) {
			continue
		}
		accepted = append(accepted, name)
		out = append(out, r)
	}
	return out
}
