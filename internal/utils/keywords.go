package utils

import "strings"

// KeywordRule maps a set of phrases to the value they imply
type KeywordRule struct {
	Phrases []string
	Value   string
}

// KeywordTable is an ordered list of rules; earlier rules win
type KeywordTable []KeywordRule

// FirstMatch returns the value of the first rule with a phrase contained in text
// text is expected to be lowercased already
func (t KeywordTable) FirstMatch(text string) (string, bool) {
	for _, rule := range t {
		if ContainsAny(text, rule.Phrases...) {
			return rule.Value, true
		}
	}
	return "", false
}

// ContainsAny reports whether text contains at least one of the phrases
func ContainsAny(text string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// Dedupe keeps the first occurrence of each string, preserving order
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
