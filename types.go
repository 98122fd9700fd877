package critcss

// FontFaceSelector is the sentinel selector used for @font-face rules,
// which carry no media query.
const FontFaceSelector = "@font-face"

// Declaration is a single CSS property declaration.
type Declaration struct {
	Property  string // "color", never empty
	Value     string // reconstructed, whitespace-normalized value text
	Important bool   // true when the source carried !important
}

// Rule is a CSS rule: a normalized selector list, its admitted
// declarations in source order, and an optional media query condition.
// Rules are value objects; pipeline stages produce new RuleSets rather
// than mutating rules in place.
type Rule struct {
	Selector     string        // "a, a.btn" or the "@font-face" sentinel
	Declarations []Declaration // non-empty (empty rules are never built)
	MediaQuery   string        // "" when unconditional
}

// Key returns the composite identity used for rule-level deduplication.
func (r Rule) Key() string {
	return r.Selector + "\x00" + r.MediaQuery
}

// RuleSet is an ordered sequence of rules, insertion order matching
// source appearance order.
type RuleSet []Rule

// Clone returns a copy of the ruleset with its own rule and
// declaration storage, so two extractions never share rules by
// reference.
func (rs RuleSet) Clone() RuleSet {
	if rs == nil {
		return nil
	}
	out := make(RuleSet, len(rs))
	copy(out, rs)
	for i := range out {
		out[i].Declarations = append([]Declaration(nil), out[i].Declarations...)
	}
	return out
}

// Options configures which declaration families survive admission.
// The zero value is the default: shadows, animations, transitions and
// hover states are all stripped.
type Options struct {
	IncludeShadows     bool
	IncludeAnimations  bool
	IncludeTransitions bool
	IncludeHoverStates bool
}

// ExtractResult is the outcome of one critical-CSS extraction.
type ExtractResult struct {
	Rules RuleSet // critical rules after matching and dedup
	CSS   string  // serialized stylesheet
	Size  int     // len(CSS) in bytes, for host-level size policy
}
