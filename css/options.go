package css

import "go.uber.org/zap"

// Options configures a single parse: the vendor-extension modes and the
// strict/lenient error-recovery policy of spec.md §4.4, plus the ambient
// logging hook described in SPEC_FULL.md §10.
type Options struct {
	// StarHack accepts a leading '*' on a property name (e.g. "*zoom: 1")
	// as a hack marker rather than a syntax error.
	StarHack bool
	// UnderscoreHack strips a leading '_' from a property name (e.g.
	// "_width: 100px") and records it as the hack marker. When false, the
	// underscore stays part of the property name.
	UnderscoreHack bool
	// IEFilters enables IE_FUNCTION ("progid:DXImageTransform...") as a
	// legal term.
	IEFilters bool
	// Strict, when true, lets SyntaxErrors propagate out of the ruleset
	// and declaration-block recovery boundaries and terminate the parse.
	// When false (the default), those two boundaries catch, emit an
	// `error` event, and resynchronize.
	Strict bool

	// Logger receives debug/warn traces from the two panic-mode recovery
	// sites and from stylesheet entry/exit. A nil Logger is treated as
	// zap.NewNop(): parsing stays silent by default, matching spec.md §5's
	// "no I/O" scheduling model.
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
