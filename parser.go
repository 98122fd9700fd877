package critcss

import (
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser converts raw CSS text into a RuleSet, applying the property
// and selector admission policy along the way.
//
// Parsing is total: malformed fragments, unknown at-rules and
// unrecognized token shapes degrade to a smaller RuleSet and a debug
// log line, never to an error for the caller.
type Parser struct {
	opts Options
	log  *zap.Logger
}

// NewParser creates a parser for the given admission options.
// A nil logger disables logging.
func NewParser(opts Options, log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{opts: opts, log: log.Named("css-parser")}
}

// token is an owned copy of a lexer token; the underlying parser reuses
// its buffers between Next calls, so Data is copied into a string
// immediately.
type token struct {
	tt   css.TokenType
	data string
}

func copyTokens(values []css.Token) []token {
	out := make([]token, len(values))
	for i, v := range values {
		out[i] = token{tt: v.TokenType, data: string(v.Data)}
	}
	return out
}

// Parse parses CSS text into a RuleSet. Empty input yields an empty
// RuleSet, not an error.
func (p *Parser) Parse(cssText string) RuleSet {
	rules := make(RuleSet, 0)
	if strings.TrimSpace(cssText) == "" {
		return rules
	}

	parser := css.NewParser(parse.NewInputString(cssText), false)
	p.parseBlock(parser, "", &rules, false)
	return rules
}

// parseBlock consumes grammar events until end of input or, when
// inBlock is set, the end of the enclosing at-rule block. Style rules
// found at this level carry mediaQuery.
func (p *Parser) parseBlock(parser *css.Parser, mediaQuery string, rules *RuleSet, inBlock bool) {
	var pendingSelectors []string

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				p.log.Debug("css parse error", zap.Error(err))
			}
			return

		case css.EndAtRuleGrammar:
			if inBlock {
				return
			}

		case css.QualifiedRuleGrammar:
			// A selector prelude emitted without its block; admitted
			// branches accumulate until the ruleset opens.
			pendingSelectors = append(pendingSelectors, p.admittedBranches(parser.Values())...)

		case css.BeginRulesetGrammar:
			// Values carries the full comma-joined selector list in one
			// event; exclusion applies per branch, so a rule survives as
			// long as any branch does.
			pendingSelectors = append(pendingSelectors, p.admittedBranches(parser.Values())...)
			decls := p.parseDeclarations(parser)
			if len(pendingSelectors) > 0 && len(decls) > 0 {
				*rules = append(*rules, Rule{
					Selector:     strings.Join(pendingSelectors, ", "),
					Declarations: decls,
					MediaQuery:   mediaQuery,
				})
			}
			pendingSelectors = nil

		case css.BeginAtRuleGrammar:
			name := strings.ToLower(string(data))
			switch name {
			case "@keyframes":
				// Keyframe steps (from, 50%, to) are not style rules;
				// with animations stripped the whole block is noise.
				if !p.opts.IncludeAnimations {
					p.skipBlock(parser)
					continue
				}
				p.parseBlock(parser, mediaQuery, rules, true)
			case "@media":
				// Nested traversal re-enters with the block's own
				// reconstructed query; parent and child conditions are
				// not combined.
				mq := reconstructMediaQuery(copyTokens(parser.Values()))
				p.parseBlock(parser, mq, rules, true)
			case "@font-face":
				decls := p.parseFontFace(parser)
				if len(decls) > 0 {
					*rules = append(*rules, Rule{Selector: FontFaceSelector, Declarations: decls})
				}
			default:
				// Pass-through container (@supports, @layer, ...):
				// descend without producing a rule of its own.
				p.log.Debug("descending into at-rule", zap.String("rule", name))
				p.parseBlock(parser, mediaQuery, rules, true)
			}

		case css.AtRuleGrammar:
			// Block-less at-rule (@import, @charset): nothing to extract.
			p.log.Debug("skipping at-rule", zap.String("rule", string(data)))
		}
	}
}

// admittedBranches splits a selector prelude on top-level commas,
// reconstructs each branch and keeps the ones that pass the exclusion
// policy.
func (p *Parser) admittedBranches(values []css.Token) []string {
	var out []string
	for _, branch := range splitSelectorList(copyTokens(values)) {
		if sel := reconstructSelector(branch); sel != "" && admitSelector(sel, p.opts) {
			out = append(out, sel)
		}
	}
	return out
}

// splitSelectorList splits selector tokens on commas outside any
// bracket or function nesting, so :nth-child(2n) and :is(a, b)
// arguments stay intact.
func splitSelectorList(values []token) [][]token {
	var branches [][]token
	depth := 0
	start := 0
	for i, t := range values {
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.CommaToken:
			if depth == 0 {
				branches = append(branches, values[start:i])
				start = i + 1
			}
		}
	}
	return append(branches, values[start:])
}

// skipBlock consumes grammar events until the current at-rule block
// closes, without producing rules.
func (p *Parser) skipBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		switch gt, _, _ := parser.Next(); gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseDeclarations reads declarations until the end of the ruleset,
// applying the admission policy per declaration.
func (p *Parser) parseDeclarations(parser *css.Parser) []Declaration {
	var decls []Declaration
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls
		case css.DeclarationGrammar:
			if d, ok := p.buildDeclaration(string(data), copyTokens(parser.Values())); ok {
				decls = append(decls, d)
			}
		case css.CustomPropertyGrammar:
			// Custom properties are outside the admission table.
		}
	}
}

// parseFontFace reads the declarations of an @font-face block.
func (p *Parser) parseFontFace(parser *css.Parser) []Declaration {
	var decls []Declaration
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return decls
		case css.DeclarationGrammar:
			if d, ok := p.buildDeclaration(string(data), copyTokens(parser.Values())); ok {
				decls = append(decls, d)
			}
		}
	}
}

// buildDeclaration reconstructs a declaration value and applies the
// admission policy. The bool result is false when the declaration is
// rejected.
func (p *Parser) buildDeclaration(property string, values []token) (Declaration, bool) {
	property = strings.ToLower(strings.TrimSpace(property))
	if property == "" {
		return Declaration{}, false
	}

	values, important := splitImportant(values)
	value := reconstructValue(values)
	if value == "" {
		return Declaration{}, false
	}

	if !admitProperty(property, p.opts) || !admitValue(value) {
		return Declaration{}, false
	}
	return Declaration{Property: property, Value: value, Important: important}, true
}

// splitImportant strips a trailing "!important" from the value tokens.
func splitImportant(values []token) ([]token, bool) {
	end := len(values)
	for end > 0 && values[end-1].tt == css.WhitespaceToken {
		end--
	}
	if end < 2 {
		return values, false
	}
	last := values[end-1]
	if last.tt != css.IdentToken || !strings.EqualFold(last.data, "important") {
		return values, false
	}
	bang := end - 2
	for bang > 0 && values[bang].tt == css.WhitespaceToken {
		bang--
	}
	if values[bang].tt != css.DelimToken || values[bang].data != "!" {
		return values, false
	}
	return values[:bang], true
}

// reconstructValue renders value tokens back to text. Every token kind
// has a rendering; unknown kinds degrade to their raw text, so the
// reconstruction never fails on unrecognized shapes.
func reconstructValue(values []token) string {
	var b strings.Builder
	for _, t := range values {
		switch t.tt {
		case css.WhitespaceToken:
			writeSpace(&b)
		case css.CommaToken:
			writeSeparator(&b, ", ")
		case css.StringToken:
			b.WriteString(requote(t.data))
		case css.ColonToken:
			writeSeparator(&b, ": ")
		default:
			// Idents, numbers, dimensions, percentages, hex colors,
			// function heads, urls and parentheses all carry their own
			// text verbatim.
			b.WriteString(t.data)
		}
	}
	return strings.TrimSpace(b.String())
}

// reconstructMediaQuery mirrors value reconstruction at the media
// feature level: "(min-width: 768px)", lists joined by " and " / ", "
// following the source token stream.
func reconstructMediaQuery(values []token) string {
	return reconstructValue(values)
}

// reconstructSelector renders the token stream of one selector-list
// member back to normalized selector text.
func reconstructSelector(values []token) string {
	var b strings.Builder
	i := 0
	for i < len(values) {
		t := values[i]
		switch t.tt {
		case css.WhitespaceToken:
			writeSpace(&b)
			i++
		case css.DelimToken:
			switch t.data {
			case ">", "+", "~":
				writeSeparator(&b, " "+t.data+" ")
			default:
				// "." before a class ident, "*" universal, anything else
				// verbatim.
				b.WriteString(t.data)
			}
			i++
		case css.CommaToken:
			// Top-level commas were split off in splitSelectorList; the
			// ones left separate functional pseudo-class arguments.
			writeSeparator(&b, ", ")
			i++
		case css.LeftBracketToken:
			i = writeAttributeSelector(&b, values, i)
		case css.ColonToken:
			b.WriteString(":")
			i++
		case css.StringToken:
			b.WriteString(requote(t.data))
			i++
		default:
			// Tags, hashes (#id), function heads (":nth-child("
			// arrives as ColonToken + FunctionToken), parentheses and
			// unknown kinds render verbatim.
			b.WriteString(t.data)
			i++
		}
	}
	return strings.TrimSpace(b.String())
}

// writeAttributeSelector renders "[name]" or `[name<op>"value"]`,
// returning the index just past the closing bracket.
func writeAttributeSelector(b *strings.Builder, values []token, start int) int {
	var name, op, val string
	hasValue := false

	i := start + 1
	for ; i < len(values) && values[i].tt != css.RightBracketToken; i++ {
		t := values[i]
		switch t.tt {
		case css.WhitespaceToken:
			continue
		case css.IdentToken:
			if op == "" {
				name += t.data
			} else {
				val = t.data
				hasValue = true
			}
		case css.StringToken:
			val = unquote(t.data)
			hasValue = true
		case css.DelimToken:
			if t.data == "=" {
				op = "="
			} else if op == "" {
				name += t.data
			}
		case css.IncludeMatchToken, css.DashMatchToken, css.PrefixMatchToken,
			css.SuffixMatchToken, css.SubstringMatchToken:
			op = t.data
		default:
			if op == "" {
				name += t.data
			} else {
				val += t.data
				hasValue = true
			}
		}
	}
	if i < len(values) {
		i++ // consume "]"
	}

	b.WriteString("[")
	b.WriteString(name)
	if op != "" && hasValue {
		b.WriteString(op)
		b.WriteString(`"` + escapeDoubleQuoted(val) + `"`)
	}
	b.WriteString("]")
	return i
}

// writeSpace appends a single space unless the output already ends
// with one (or is empty).
func writeSpace(b *strings.Builder) {
	s := b.String()
	if s == "" || strings.HasSuffix(s, " ") {
		return
	}
	b.WriteString(" ")
}

// writeSeparator trims a trailing space before appending a separator
// that manages its own spacing (", ", " > ", ": ").
func writeSeparator(b *strings.Builder, sep string) {
	s := strings.TrimRight(b.String(), " ")
	b.Reset()
	b.WriteString(s)
	b.WriteString(sep)
}

// requote renders a string token with double quotes regardless of the
// source quoting.
func requote(data string) string {
	return `"` + escapeDoubleQuoted(unquote(data)) + `"`
}

// unquote removes surrounding single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// escapeDoubleQuoted escapes backslashes and double quotes per CSS
// string syntax.
func escapeDoubleQuoted(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
