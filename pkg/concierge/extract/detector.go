// Package extract pulls order fields out of free-form call summaries.
//
// Each field has its own detector list, evaluated in a fixed declared
// order. Detectors are compiled once at package init and never mutated, so
// every function here is safe for concurrent use. Nothing in this package
// returns an error: a field that cannot be found yields its documented
// default.
package extract

import (
	"regexp"
	"strings"
)

// Detector finds one value in text.
type Detector interface {
	Name() string
	Detect(text string) (string, bool)
}

// RegexDetector returns the first capture group of Pattern, trimmed.
type RegexDetector struct {
	Label   string
	Pattern *regexp.Regexp
}

// Name implements Detector.
func (d RegexDetector) Name() string { return d.Label }

// Detect implements Detector. A pattern without groups yields the whole
// match.
func (d RegexDetector) Detect(text string) (string, bool) {
	m := d.Pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	val := m[0]
	if len(m) > 1 {
		val = m[1]
	}
	val = strings.TrimSpace(val)
	return val, val != ""
}

func rx(label, pattern string) RegexDetector {
	return RegexDetector{Label: label, Pattern: regexp.MustCompile(pattern)}
}

// First runs detectors in order and returns the first hit.
func First(detectors []Detector, text string) (string, bool) {
	for _, d := range detectors {
		if v, ok := d.Detect(text); ok {
			return v, true
		}
	}
	return "", false
}
