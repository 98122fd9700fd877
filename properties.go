package critcss

import "strings"

// allowedProperties is the fixed admission table of layout, typography
// and visual properties worth inlining for first paint. Anything absent
// from this table (and not covered by allowedPrefixes) is rejected,
// deliberately including scroll-behavior, cursor and pointer-events.
var allowedProperties = map[string]struct{}{
	// Box model
	"display":    {},
	"box-sizing": {},
	"width":      {},
	"height":     {},
	"min-width":  {},
	"min-height": {},
	"max-width":  {},
	"max-height": {},
	"margin":     {},
	"padding":    {},
	"position":   {},
	"top":        {},
	"right":      {},
	"bottom":     {},
	"left":       {},
	"inset":      {},
	"z-index":    {},
	"float":      {},
	"clear":      {},
	"gap":        {},
	"row-gap":    {},
	"column-gap": {},

	// Flex and grid
	"flex":            {},
	"order":           {},
	"grid":            {},
	"justify-content": {},
	"justify-items":   {},
	"justify-self":    {},
	"align-content":   {},
	"align-items":     {},
	"align-self":      {},
	"place-content":   {},
	"place-items":     {},
	"place-self":      {},

	// Typography
	"font":            {},
	"line-height":     {},
	"letter-spacing":  {},
	"word-spacing":    {},
	"word-break":      {},
	"white-space":     {},
	"text-align":      {},
	"text-decoration": {},
	"text-transform":  {},
	"text-overflow":   {},
	"text-indent":     {},
	"vertical-align":  {},
	"direction":       {},

	// Color, background, border
	"color":         {},
	"background":    {},
	"border":        {},
	"border-radius": {},
	"outline":       {},
	"opacity":       {},
	"visibility":    {},
	"box-shadow":    {},
	"text-shadow":   {},

	// Overflow and shaping
	"overflow":        {},
	"overflow-x":      {},
	"overflow-y":      {},
	"transform":       {},
	"aspect-ratio":    {},
	"object-fit":      {},
	"object-position": {},

	// Animation families (gated by Options)
	"animation":  {},
	"keyframes":  {},
	"transition": {},

	// Font-face descriptors
	"font-family":   {},
	"src":           {},
	"font-display":  {},
	"unicode-range": {},
}

// allowedPrefixes extends the table to the longhand families of the
// properties above (margin-top, border-left-width, grid-template-...).
var allowedPrefixes = []string{
	"margin-",
	"padding-",
	"border-",
	"background-",
	"font-",
	"flex-",
	"grid-",
	"inset-",
	"outline-",
	"overflow-",
	"text-",
	"transform-",
	"animation-",
	"transition-",
	"list-style",
}

// rejectedValues are declaration values that carry no visual
// information worth inlining, whatever the property.
var rejectedValues = map[string]struct{}{
	"none":    {},
	"initial": {},
	"unset":   {},
}

// excludedSelectorFragments reject a selector branch outright: these
// states cannot apply during first paint.
var excludedSelectorFragments = []string{
	":focus",
	":active",
	":visited",
	":link",
	"::-webkit-scrollbar",
	"::-webkit-resizer",
	"::-moz-scrollbar",
	"::scrollbar",
}

// admitProperty applies the property admission policy for the given
// options. The conditions are independent; all must pass.
func admitProperty(property string, opts Options) bool {
	property = strings.ToLower(property)

	if !isAllowedProperty(property) {
		return false
	}
	if !opts.IncludeShadows && strings.Contains(property, "shadow") {
		return false
	}
	if !opts.IncludeAnimations && (strings.HasPrefix(property, "animation") || strings.Contains(property, "keyframes")) {
		return false
	}
	if !opts.IncludeTransitions && strings.HasPrefix(property, "transition") {
		return false
	}
	return true
}

func isAllowedProperty(property string) bool {
	if _, ok := allowedProperties[property]; ok {
		return true
	}
	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(property, prefix) {
			return true
		}
	}
	return false
}

// admitValue rejects reconstructed values that are exactly a
// no-information keyword.
func admitValue(value string) bool {
	_, rejected := rejectedValues[strings.ToLower(strings.TrimSpace(value))]
	return !rejected
}

// admitSelector applies the selector exclusion policy to a single
// comma-branch. Hover selectors survive only when configured.
func admitSelector(selector string, opts Options) bool {
	lower := strings.ToLower(selector)
	for _, fragment := range excludedSelectorFragments {
		if strings.Contains(lower, fragment) {
			return false
		}
	}
	if !opts.IncludeHoverStates && strings.Contains(lower, ":hover") {
		return false
	}
	return true
}
