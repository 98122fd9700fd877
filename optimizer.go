package critcss

// DedupeRules removes duplicate rules, keyed by (selector, media
// query). The first-seen rule is kept as the group's identity with its
// declarations deduplicated; later rules with the same key are dropped
// entirely. First-seen ordering is preserved, so the pass is
// idempotent and deterministic.
func DedupeRules(rules RuleSet) RuleSet {
	seen := make(map[string]struct{}, len(rules))
	out := make(RuleSet, 0, len(rules))

	for _, rule := range rules {
		key := rule.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rule.Declarations = dedupeDeclarations(rule.Declarations)
		out = append(out, rule)
	}
	return out
}

// dedupeDeclarations collapses repeated properties within one rule. A
// later occurrence replaces the kept one only when the newcomer is
// important and the kept one is not; result order is the first
// occurrence order of each surviving property.
func dedupeDeclarations(decls []Declaration) []Declaration {
	index := make(map[string]int, len(decls))
	out := make([]Declaration, 0, len(decls))

	for _, d := range decls {
		at, exists := index[d.Property]
		if !exists {
			index[d.Property] = len(out)
			out = append(out, d)
			continue
		}
		if d.Important && !out[at].Important {
			out[at] = d
		}
	}
	return out
}
