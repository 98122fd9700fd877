package critcss

import (
	"go.uber.org/zap"
)

// Engine runs critical-CSS extractions. It is purely computational:
// one extraction is a synchronous pipeline of parse, match, dedupe and
// render over immutable inputs, so a single Engine is safe for
// concurrent use and independent extractions need no coordination.
type Engine struct {
	opts   Options
	log    *zap.Logger
	parser *Parser
	cache  *Cache
}

// New creates an Engine with the given admission options. A nil logger
// disables logging.
func New(opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		opts:   opts,
		log:    log.Named("critcss"),
		parser: NewParser(opts, log),
	}
}

// WithCache attaches a result cache to the engine. Extractions whose
// (options, signals, css) fingerprint is cached are served from it.
func (e *Engine) WithCache(cache *Cache) *Engine {
	e.cache = cache
	return e
}

// Extract computes the critical CSS for one viewport: the rules whose
// selectors are relevant to the observed signals, deduplicated and
// serialized. Given identical CSS text and signals the output is
// byte-identical.
func (e *Engine) Extract(cssText string, signals Signals) ExtractResult {
	var key string
	if e.cache != nil {
		key = e.cache.key(e.opts, signals, cssText)
		if res, ok := e.cache.get(key); ok {
			return res
		}
	}

	rules := e.parser.Parse(cssText)
	critical := DedupeRules(FilterCritical(rules, signals))
	css := Render(critical)

	res := ExtractResult{Rules: critical, CSS: css, Size: len(css)}
	e.log.Debug("extraction complete",
		zap.Int("rules_parsed", len(rules)),
		zap.Int("rules_critical", len(critical)),
		zap.Int("bytes", res.Size))

	if e.cache != nil {
		e.cache.put(key, res)
	}
	return res
}

// ExtractViewports runs the mobile and desktop passes as independent
// concurrent extractions and joins them in the viewport combiner,
// returning the mobile-first result.
func (e *Engine) ExtractViewports(mobileCSS, desktopCSS string, mobileSignals, desktopSignals Signals) ExtractResult {
	var mobile, desktop ExtractResult

	done := make(chan struct{})
	go func() {
		desktop = e.Extract(desktopCSS, desktopSignals)
		close(done)
	}()
	mobile = e.Extract(mobileCSS, mobileSignals)
	<-done

	rules := e.combineRules(mobile.CSS, desktop.CSS)
	css := Render(rules)
	return ExtractResult{Rules: rules, CSS: css, Size: len(css)}
}
