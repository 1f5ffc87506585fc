// Package classifier decides whether a row's content text should be
// excluded, either by keyword match or by flagged-script detection.
package classifier

import "strings"

// Reason explains why a text was excluded.
type Reason int

const (
	// ReasonNone means the text is kept.
	ReasonNone Reason = iota
	// ReasonKeyword means a keyword is a substring of the text.
	ReasonKeyword
	// ReasonScript means the text contains a flagged-script character.
	ReasonScript
)

// Rule is an immutable classification rule: a set of case-insensitive
// keywords plus the fixed flagged-script ranges.
type Rule struct {
	keywords []string
}

// New builds a Rule from the given keywords. Keywords are trimmed and
// lowercased once here; blank entries are dropped. The list may be empty,
// in which case only script detection applies.
func New(keywords []string) *Rule {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		normalized = append(normalized, kw)
	}
	return &Rule{keywords: normalized}
}

// Keywords returns the normalized keyword set.
func (r *Rule) Keywords() []string {
	out := make([]string, len(r.keywords))
	copy(out, r.keywords)
	return out
}

// Classify returns the exclusion reason for the given content text, or
// ReasonNone if the row is kept. Keyword matching short-circuits on the
// first hit; script detection only runs when no keyword matched.
func (r *Rule) Classify(text string) Reason {
	lower := strings.ToLower(text)
	for _, kw := range r.keywords {
		if strings.Contains(lower, kw) {
			return ReasonKeyword
		}
	}
	if ContainsFlaggedScript(text) {
		return ReasonScript
	}
	return ReasonNone
}
