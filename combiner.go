package critcss

// DesktopMediaQuery wraps the desktop-only deltas produced by the
// viewport combiner. The combined stylesheet is mobile-first: baseline
// rules apply unconditionally, desktop overrides kick in at this width.
const DesktopMediaQuery = "(min-width: 768px)"

// Combine merges a mobile and a desktop extraction result into one
// mobile-first stylesheet. Both inputs are re-parsed; the mobile rules
// are copied verbatim as the base. Each desktop rule contributes either
// the declarations that differ from its unconditional mobile
// counterpart, or — when no counterpart exists — the whole rule, in
// both cases wrapped in the min-width override. A desktop rule's own
// media query, if any, is overwritten by the wrapper.
func (e *Engine) Combine(mobileCSS, desktopCSS string) string {
	return Render(e.combineRules(mobileCSS, desktopCSS))
}

func (e *Engine) combineRules(mobileCSS, desktopCSS string) RuleSet {
	mobile := e.parser.Parse(mobileCSS)
	desktop := e.parser.Parse(desktopCSS)

	combined := make(RuleSet, 0, len(mobile)+len(desktop))
	combined = append(combined, mobile...)

	for _, rule := range desktop {
		base, found := findUnconditional(mobile, rule.Selector)
		if !found {
			rule.MediaQuery = DesktopMediaQuery
			combined = append(combined, rule)
			continue
		}

		diff := differingDeclarations(rule.Declarations, base.Declarations)
		if len(diff) == 0 {
			continue
		}
		combined = append(combined, Rule{
			Selector:     rule.Selector,
			Declarations: diff,
			MediaQuery:   DesktopMediaQuery,
		})
	}

	return combined
}

// findUnconditional returns the first mobile rule with the same
// selector and no media query.
func findUnconditional(rules RuleSet, selector string) (Rule, bool) {
	for _, r := range rules {
		if r.Selector == selector && r.MediaQuery == "" {
			return r, true
		}
	}
	return Rule{}, false
}

// differingDeclarations keeps the desktop declarations whose value
// differs from, or is absent in, the mobile baseline.
func differingDeclarations(desktop, mobile []Declaration) []Declaration {
	baseline := make(map[string]string, len(mobile))
	for _, d := range mobile {
		if _, dup := baseline[d.Property]; !dup {
			baseline[d.Property] = d.Value
		}
	}

	var diff []Declaration
	for _, d := range desktop {
		if v, ok := baseline[d.Property]; !ok || v != d.Value {
			diff = append(diff, d)
		}
	}
	return diff
}
