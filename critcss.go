// Package critcss computes the minimal CSS needed to render the
// above-the-fold portion of a page, so it can be inlined for fast
// first paint.
//
// Callers supply the page's CSS text and a Signals set — the tag
// names, class names and id values observed among above-fold elements
// (produced by an external DOM-snapshot collaborator). The engine
// parses the CSS into structured rules, keeps the rules whose
// selectors are relevant to the signals, deduplicates them and
// serializes the result:
//
//	engine := critcss.New(critcss.Options{}, logger)
//	signals := critcss.NewSignals([]string{"h1"}, []string{"hero"}, nil)
//	result := engine.Extract(cssText, signals)
//	fmt.Println(result.CSS)
//
// Two viewport-specific results can be merged into one mobile-first
// stylesheet, with desktop-only deltas wrapped in a
// "(min-width: 768px)" block:
//
//	result := engine.ExtractViewports(mobileCSS, desktopCSS, mobileSig, desktopSig)
//
// Selector matching is a conservative relevance heuristic, not a
// cascade-accurate selector engine: retaining a slightly-too-broad
// rule is preferred over dropping one the fold needs, because the
// output is inlined in addition to the full stylesheet, never instead
// of it.
package critcss
