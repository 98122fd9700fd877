package critcss

import (
	"regexp"
	"strings"
)

// Render serializes a RuleSet back to CSS text. Rules wrapped by a
// media query are emitted inside their own @media block; rule blocks
// are separated by blank lines.
func Render(rules RuleSet) string {
	var b strings.Builder
	for i, rule := range rules {
		if i > 0 {
			b.WriteString("\n")
		}
		writeRule(&b, rule)
	}
	return b.String()
}

func writeRule(b *strings.Builder, rule Rule) {
	indent := ""
	if rule.MediaQuery != "" {
		b.WriteString("@media " + rule.MediaQuery + " {\n")
		indent = "  "
	}

	b.WriteString(indent + rule.Selector + " {\n")
	for _, d := range rule.Declarations {
		b.WriteString(indent + "  " + d.Property + ": " + d.Value)
		if d.Important {
			b.WriteString(" !important")
		}
		b.WriteString(";\n")
	}
	b.WriteString(indent + "}\n")

	if rule.MediaQuery != "" {
		b.WriteString("}\n")
	}
}

// Minify step patterns, applied in order. This is a pure text
// transform with no CSS re-parsing.
var (
	minifyComments        = regexp.MustCompile(`/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`)
	minifyWhitespaceRuns  = regexp.MustCompile(`\s+`)
	minifyTrailingSemi    = regexp.MustCompile(`;\s*}`)
	minifyAroundOpenBrace = regexp.MustCompile(`\s*\{\s*`)
	minifyAfterSemicolon  = regexp.MustCompile(`;\s+`)
	minifyAfterColon      = regexp.MustCompile(`:\s+`)
)

// Minify compacts serialized CSS: block comments stripped, whitespace
// runs collapsed, the semicolon before a closing brace removed, and
// spacing around "{", after ";" and after ":" collapsed. Deterministic
// and total.
func Minify(cssText string) string {
	out := minifyComments.ReplaceAllString(cssText, "")
	out = minifyWhitespaceRuns.ReplaceAllString(out, " ")
	out = minifyTrailingSemi.ReplaceAllString(out, "}")
	out = minifyAroundOpenBrace.ReplaceAllString(out, "{")
	out = minifyAfterSemicolon.ReplaceAllString(out, ";")
	out = minifyAfterColon.ReplaceAllString(out, ":")
	return strings.TrimSpace(out)
}
