package critcss

import (
	"regexp"
	"strings"
)

// alwaysCritical are selectors retained regardless of observed signals:
// they style the page scaffolding that is always above the fold.
var alwaysCritical = map[string]struct{}{
	FontFaceSelector: {},
	":root":          {},
	"html":           {},
	"body":           {},
	"*":              {},
}

var (
	idTokenPattern    = regexp.MustCompile(`#([A-Za-z_][A-Za-z0-9_-]*)`)
	classTokenPattern = regexp.MustCompile(`\.([A-Za-z_][A-Za-z0-9_-]*)`)
	// A bare tag token stands alone at the start of a branch or right
	// after a combinator or whitespace.
	tagTokenPattern = regexp.MustCompile(`(?:^|[\s>+~])([A-Za-z][A-Za-z0-9]*)`)
)

// IsCritical decides whether a rule's selector is relevant to the
// observed above-fold signals. A comma-joined selector list is critical
// if any branch matches.
//
// This is a relevance heuristic, not cascade-accurate matching: a false
// positive keeps a slightly-too-broad rule, a false negative would drop
// styling the fold needs, so ties go to keeping the rule.
func IsCritical(selector string, signals Signals) bool {
	for _, branch := range strings.Split(selector, ",") {
		if branchMatches(strings.TrimSpace(branch), signals) {
			return true
		}
	}
	return false
}

func branchMatches(branch string, signals Signals) bool {
	if branch == "" {
		return false
	}
	if _, ok := alwaysCritical[branch]; ok {
		return true
	}

	for _, m := range idTokenPattern.FindAllStringSubmatch(branch, -1) {
		if signals.HasID(m[1]) {
			return true
		}
	}
	for _, m := range classTokenPattern.FindAllStringSubmatch(branch, -1) {
		if signals.HasClass(m[1]) {
			return true
		}
	}
	for _, m := range tagTokenPattern.FindAllStringSubmatch(branch, -1) {
		if signals.HasTag(m[1]) {
			return true
		}
	}
	return false
}

// FilterCritical keeps the rules whose selector matches the signals,
// preserving source order.
func FilterCritical(rules RuleSet, signals Signals) RuleSet {
	critical := make(RuleSet, 0, len(rules))
	for _, rule := range rules {
		if IsCritical(rule.Selector, signals) {
			critical = append(critical, rule)
		}
	}
	return critical
}
