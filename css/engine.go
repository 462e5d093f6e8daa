// Package css is the CSS grammar engine: a hand-written recursive-descent
// parser over internal/stream implementing CSS 2.1 plus CSS3 selectors,
// media queries, paged media, @font-face, and the vendor-extension modes,
// emitting semantic events instead of building a retained AST.
package css

import (
	"strings"

	"github.com/gocss/cssparse/internal/events"
	"github.com/gocss/cssparse/internal/stream"
	"github.com/gocss/cssparse/internal/tokentable"
	"go.uber.org/zap"
)

// Engine is a single, non-reusable parse: it exclusively owns a token
// Stream and carries the configured Options. Register listeners via the
// embedded Dispatcher before calling any of the Parse* entry points.
type Engine struct {
	events.Dispatcher
	s    *stream.Stream
	opts Options
}

// New builds an Engine over input, ready for listener registration and a
// single call to one of the Parse* entry points.
func New(input string, opts Options) *Engine {
	return &Engine{s: stream.New(input), opts: opts}
}

// guard is the outer recover for every public entry point: it turns any
// *SyntaxError that escapes both inner recovery boundaries (malformed
// @charset, an @page/@media that never closes, …) into a returned error.
// By the time a SyntaxError reaches here it is fatal regardless of
// Options.Strict — non-strict mode already absorbed the recoverable cases
// at the ruleset and declaration-block boundaries (spec §7).
func (e *Engine) guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			err = se
		}
	}()
	fn()
	return nil
}

// ParseStyleSheet runs the stylesheet production to completion, firing
// startstylesheet first, endstylesheet last, and every nested event
// between. Register listeners with AddListener/AddAnyListener first.
func (e *Engine) ParseStyleSheet() error {
	return e.guard(e.parseStylesheetBody)
}

// ParseMediaQuery parses one standalone media query, returned as a
// one-element slice, and verifies EOF.
func (e *Engine) ParseMediaQuery() ([]MediaQuery, error) {
	var out []MediaQuery
	err := e.guard(func() {
		e.skipWS()
		out = []MediaQuery{e.parseMediaQuery()}
		e.verifyEOF()
	})
	return out, err
}

// ParsePropertyValue parses a standalone expr (leading/trailing
// whitespace allowed) and verifies EOF.
func (e *Engine) ParsePropertyValue() (PropertyValue, error) {
	var out PropertyValue
	err := e.guard(func() {
		e.skipWS()
		out = e.parseExpr()
		e.skipWS()
		e.verifyEOF()
	})
	return out, err
}

// ParseRule parses one ruleset, firing startrule/property.../endrule, and
// verifies EOF afterward.
func (e *Engine) ParseRule() ([]Selector, error) {
	var out []Selector
	err := e.guard(func() {
		e.skipWS()
		out = e.parseSelectorsGroup()
		e.Fire(events.Event{Name: events.StartRule, Selectors: out})
		e.mustMatch(tokentable.LBRACE)
		e.readDeclarations()
		e.Fire(events.Event{Name: events.EndRule, Selectors: out})
		e.verifyEOF()
	})
	return out, err
}

// ParseSelector parses one selector (no top-level commas) and verifies EOF.
func (e *Engine) ParseSelector() (Selector, error) {
	var out Selector
	err := e.guard(func() {
		e.skipWS()
		out = e.parseSelector()
		e.verifyEOF()
	})
	return out, err
}

// mustMatch wraps Stream.MustMatch, converting a miss into a panicked
// *SyntaxError positioned at the offending token.
func (e *Engine) mustMatch(types ...tokentable.Kind) stream.Token {
	tok, err := e.s.MustMatch(types...)
	if err != nil {
		if ute, ok := err.(*stream.UnexpectedTokenError); ok {
			e.failAt(ute.Row, ute.Col, "unexpected %s", e.s.TokenName(ute.Got))
		}
		e.fail("%v", err)
	}
	return tok
}

// verifyEOF is the EOF check every entry point in spec §6 performs: a
// SyntaxError citing the first unexpected token past the expected end.
func (e *Engine) verifyEOF() {
	e.skipWS()
	k, err := e.s.LA(1)
	if err == nil && k != tokentable.EOF {
		tok, _ := e.s.LT(1)
		e.failAt(tok.StartRow, tok.StartCol, "unexpected trailing %s", e.s.TokenName(k))
	}
}

func (e *Engine) skipWS() {
	for {
		if _, ok := e.s.Match(tokentable.S); !ok {
			return
		}
	}
}

// skipWSCDOCDC additionally absorbs the HTML comment delimiters CDO/CDC,
// legal anywhere at the stylesheet's top level (spec §4.3's stylesheet
// production).
func (e *Engine) skipWSCDOCDC() {
	for {
		if _, ok := e.s.Match(tokentable.S, tokentable.CDO, tokentable.CDC); !ok {
			return
		}
	}
}

func (e *Engine) parseStylesheetBody() {
	e.opts.logger().Debug("parsing stylesheet")
	e.Fire(events.Event{Name: events.StartStyleSheet})

	e.skipWSCDOCDC()
	e.parseCharsetOpt()
	e.skipWSCDOCDC()
	e.parseImports()
	e.skipWSCDOCDC()
	e.parseNamespaces()
	e.skipWSCDOCDC()
	e.parseBody()

	e.Fire(events.Event{Name: events.EndStyleSheet})
	e.opts.logger().Debug("stylesheet parse complete")
}

func (e *Engine) parseCharsetOpt() {
	k, err := e.s.LA(1)
	if err != nil || k != tokentable.CHARSET_SYM {
		return
	}
	e.s.Get()
	e.skipWS()
	tok := e.mustMatch(tokentable.STRING)
	e.skipWS()
	e.mustMatch(tokentable.SEMICOLON)
	e.Fire(events.Event{Name: events.Charset, Charset: unquoteString(tok.Value)})
}

func (e *Engine) parseImports() {
	for {
		k, err := e.s.LA(1)
		if err != nil || k != tokentable.IMPORT_SYM {
			return
		}
		e.parseImport()
		e.skipWSCDOCDC()
	}
}

func (e *Engine) parseImport() {
	e.s.Get()
	e.skipWS()
	uri := e.parseURIOrString()
	e.skipWS()
	queries := e.parseMediaQueryListOpt()
	e.skipWS()
	e.mustMatch(tokentable.SEMICOLON)
	e.Fire(events.Event{Name: events.Import, URI: uri, Media: queries})
}

func (e *Engine) parseNamespaces() {
	for {
		k, err := e.s.LA(1)
		if err != nil || k != tokentable.NAMESPACE_SYM {
			return
		}
		e.parseNamespace()
		e.skipWSCDOCDC()
	}
}

func (e *Engine) parseNamespace() {
	e.s.Get()
	e.skipWS()
	var prefix string
	if tok, ok := e.s.Match(tokentable.IDENT); ok {
		prefix = tok.Value
		e.skipWS()
	}
	uri := e.parseURIOrString()
	e.skipWS()
	e.mustMatch(tokentable.SEMICOLON)
	e.Fire(events.Event{Name: events.Namespace, Prefix: prefix, URI: uri})
}

// parseURIOrString matches the STRING|URI alternative shared by @import
// and @namespace, returning the bare unquoted/unwrapped text.
func (e *Engine) parseURIOrString() string {
	tok := e.mustMatch(tokentable.STRING, tokentable.URI)
	if tok.Type == tokentable.STRING {
		return unquoteString(tok.Value)
	}
	return stripURI(tok.Value)
}

func (e *Engine) parseMediaQueryListOpt() []MediaQuery {
	k, err := e.s.LA(1)
	if err != nil || k == tokentable.SEMICOLON || k == tokentable.LBRACE {
		return nil
	}
	return e.parseMediaQueryList()
}

func (e *Engine) parseMediaQueryList() []MediaQuery {
	var list []MediaQuery
	list = append(list, e.parseMediaQuery())
	e.skipWS()
	for {
		if _, ok := e.s.Match(tokentable.COMMA); !ok {
			break
		}
		e.skipWS()
		list = append(list, e.parseMediaQuery())
		e.skipWS()
	}
	return list
}

func (e *Engine) parseMediaQuery() MediaQuery {
	var mq MediaQuery
	k, _ := e.s.LA(1)
	if k == tokentable.LPAREN {
		mq.Expressions = append(mq.Expressions, e.parseMediaExpression())
	} else {
		tok := e.mustMatch(tokentable.IDENT)
		switch {
		case strings.EqualFold(tok.Value, "only"):
			mq.Only = true
			e.skipWS()
			tok = e.mustMatch(tokentable.IDENT)
		case strings.EqualFold(tok.Value, "not"):
			mq.Not = true
			e.skipWS()
			tok = e.mustMatch(tokentable.IDENT)
		}
		mq.MediaType = tok.Value
	}
	e.skipWS()
	for {
		tok, ok := e.s.Match(tokentable.IDENT)
		if !ok {
			break
		}
		if !strings.EqualFold(tok.Value, "and") {
			e.s.Unget()
			break
		}
		e.skipWS()
		mq.Expressions = append(mq.Expressions, e.parseMediaExpression())
		e.skipWS()
	}
	return mq
}

func (e *Engine) parseMediaExpression() MediaExpression {
	e.mustMatch(tokentable.LPAREN)
	e.skipWS()
	feature := e.mustMatch(tokentable.IDENT).Value
	e.skipWS()
	var value string
	if _, ok := e.s.Match(tokentable.COLON); ok {
		e.skipWS()
		value = e.parseExpr().String()
		e.skipWS()
	}
	e.mustMatch(tokentable.RPAREN)
	return MediaExpression{Feature: feature, Value: value}
}

// parseBody is the stylesheet's terminal loop: dispatch on the lookahead
// token until EOF (spec §4.3's "body state is terminal-loop").
func (e *Engine) parseBody() {
	for {
		e.skipWSCDOCDC()
		k, err := e.s.LA(1)
		if err != nil || k == tokentable.EOF {
			return
		}
		switch k {
		case tokentable.MEDIA_SYM:
			e.parseMedia()
		case tokentable.PAGE_SYM:
			e.parsePage()
		case tokentable.FONT_FACE_SYM:
			e.parseFontFace()
		default:
			e.parseRulesetWithRecovery()
		}
	}
}

// parseRulesetWithRecovery is error-recovery boundary 1 (spec §7.1): a
// selector-parsing failure discards the whole ruleset, emits an error
// event, and resyncs to the rule's closing brace.
func (e *Engine) parseRulesetWithRecovery() {
	defer func() {
		if r := recover(); r != nil {
			se := e.recoverSyntaxError(r)
			e.opts.logger().Warn("ruleset recovery", zap.String("message", se.Message), zap.Int("line", se.Line), zap.Int("col", se.Col))
			e.Fire(events.Event{Name: events.Error, Err: se, Message: se.Message, Line: se.Line, Col: se.Col})
			if k := e.s.Advance(tokentable.RBRACE); k == tokentable.EOF {
				// No closing brace anywhere in the remaining input: the
				// boundary has nothing to resync to, so the error is fatal.
				panic(se)
			}
		}
	}()
	e.parseRuleset()
}

func (e *Engine) parseRuleset() {
	selectors := e.parseSelectorsGroup()
	e.Fire(events.Event{Name: events.StartRule, Selectors: selectors})
	e.mustMatch(tokentable.LBRACE)
	e.readDeclarations()
	e.Fire(events.Event{Name: events.EndRule, Selectors: selectors})
}

func (e *Engine) parseSelectorsGroup() []Selector {
	var list []Selector
	list = append(list, e.parseSelector())
	e.skipWS()
	for {
		if _, ok := e.s.Match(tokentable.COMMA); !ok {
			break
		}
		e.skipWS()
		list = append(list, e.parseSelector())
		e.skipWS()
	}
	return list
}

func (e *Engine) parseSelector() Selector {
	var sel Selector
	sel.Sequences = append(sel.Sequences, e.parseSimpleSelectorSequence())

	for {
		hadWS := false
		if _, ok := e.s.Match(tokentable.S); ok {
			hadWS = true
			for {
				if _, ok := e.s.Match(tokentable.S); !ok {
					break
				}
			}
		}

		var comb Combinator
		explicit := false
		if _, ok := e.s.Match(tokentable.GREATER); ok {
			comb, explicit = Child, true
		} else if _, ok := e.s.Match(tokentable.TILDE); ok {
			comb, explicit = Sibling, true
		} else if _, ok := e.s.Match(tokentable.PLUS); ok {
			comb, explicit = Adjacent, true
		}

		if explicit {
			e.skipWS()
			sel.Combinators = append(sel.Combinators, comb)
			sel.Sequences = append(sel.Sequences, e.parseSimpleSelectorSequence())
			continue
		}
		if hadWS && e.startsSimpleSelectorSequence() {
			sel.Combinators = append(sel.Combinators, Descendant)
			sel.Sequences = append(sel.Sequences, e.parseSimpleSelectorSequence())
			continue
		}
		break
	}
	return sel
}

func (e *Engine) startsSimpleSelectorSequence() bool {
	k, err := e.s.LA(1)
	if err != nil {
		return false
	}
	switch k {
	case tokentable.IDENT, tokentable.STAR, tokentable.HASH, tokentable.DOT,
		tokentable.LBRACKET, tokentable.COLON, tokentable.NOT, tokentable.PIPE:
		return true
	}
	return false
}

func (e *Engine) parseSimpleSelectorSequence() SimpleSelectorSequence {
	var seq SimpleSelectorSequence
	hasType := e.parseTypeSelectorOrUniversal(&seq)
	count := 0
	for e.parseModifierInto(&seq) {
		count++
	}
	if !hasType && count == 0 {
		e.fail("expected a simple selector")
	}
	return seq
}

// parseTypeSelectorOrUniversal implements type_selector/universal with
// namespace_prefix rollback: the prefix (IDENT|STAR then '|') is read
// optimistically and pushed back with Unget if no element name follows
// (spec §9's "namespace prefix rollback" design note).
func (e *Engine) parseTypeSelectorOrUniversal(seq *SimpleSelectorSequence) bool {
	if tok, ok := e.s.Match(tokentable.IDENT, tokentable.STAR); ok {
		if _, ok2 := e.s.Match(tokentable.PIPE); ok2 {
			if e.parseElementNameAfterPipe(seq) {
				seq.HasNamespace = true
				seq.NamespacePrefix = tok.Value
				return true
			}
			e.s.Unget() // '|'
			e.s.Unget() // prefix IDENT/STAR
			return false
		}
		if tok.Type == tokentable.STAR {
			seq.Type = "*"
		} else {
			seq.Type = tok.Value
		}
		return true
	}
	if _, ok := e.s.Match(tokentable.PIPE); ok {
		if e.parseElementNameAfterPipe(seq) {
			seq.HasNamespace = true
			return true
		}
		e.s.Unget() // '|'
		return false
	}
	return false
}

func (e *Engine) parseElementNameAfterPipe(seq *SimpleSelectorSequence) bool {
	if tok, ok := e.s.Match(tokentable.IDENT); ok {
		seq.Type = tok.Value
		return true
	}
	if _, ok := e.s.Match(tokentable.STAR); ok {
		seq.Type = "*"
		return true
	}
	return false
}

func (e *Engine) parseModifierInto(seq *SimpleSelectorSequence) bool {
	if tok, ok := e.s.Match(tokentable.HASH); ok {
		seq.Modifiers = append(seq.Modifiers, Modifier{Kind: ModifierID, Name: strings.TrimPrefix(tok.Value, "#")})
		return true
	}
	if _, ok := e.s.Match(tokentable.DOT); ok {
		name := e.mustMatch(tokentable.IDENT).Value
		seq.Modifiers = append(seq.Modifiers, Modifier{Kind: ModifierClass, Name: name})
		return true
	}
	if _, ok := e.s.Match(tokentable.LBRACKET); ok {
		attr := e.parseAttribute()
		seq.Modifiers = append(seq.Modifiers, Modifier{Kind: ModifierAttribute, Attribute: &attr})
		return true
	}
	if _, ok := e.s.Match(tokentable.NOT); ok {
		e.skipWS()
		var inner SimpleSelectorSequence
		if !e.parseNegationArg(&inner) {
			e.fail("expected a negation argument")
		}
		e.skipWS()
		e.mustMatch(tokentable.RPAREN)
		seq.Modifiers = append(seq.Modifiers, Modifier{Kind: ModifierNegation, Negation: &inner})
		return true
	}
	if tok, ok := e.s.Match(tokentable.COLON); ok {
		colons := tok.Value
		if _, ok2 := e.s.Match(tokentable.COLON); ok2 {
			colons += ":"
		}
		if ftok, ok3 := e.s.Match(tokentable.FUNCTION); ok3 {
			name := strings.TrimSuffix(ftok.Value, "(")
			e.skipWS()
			args := e.parseExpr()
			e.skipWS()
			e.mustMatch(tokentable.RPAREN)
			seq.Modifiers = append(seq.Modifiers, Modifier{
				Kind: ModifierPseudo, Colons: colons, PseudoName: name,
				PseudoIsFunc: true, PseudoArgs: args.String(),
			})
			return true
		}
		name := e.mustMatch(tokentable.IDENT).Value
		seq.Modifiers = append(seq.Modifiers, Modifier{Kind: ModifierPseudo, Colons: colons, PseudoName: name})
		return true
	}
	return false
}

// parseNegationArg parses negation_arg: type_selector | universal | hash |
// class | attribute | pseudo (spec §4.3's Negation production).
func (e *Engine) parseNegationArg(seq *SimpleSelectorSequence) bool {
	if e.parseTypeSelectorOrUniversal(seq) {
		return true
	}
	return e.parseModifierInto(seq)
}

func (e *Engine) parseAttribute() AttributeSelector {
	var attr AttributeSelector
	e.skipWS()
	if tok, ok := e.s.Match(tokentable.IDENT, tokentable.STAR); ok {
		if _, ok2 := e.s.Match(tokentable.PIPE); ok2 {
			attr.HasNamespace = true
			attr.NamespacePrefix = tok.Value
			e.skipWS()
			attr.Name = e.mustMatch(tokentable.IDENT).Value
		} else {
			attr.Name = tok.Value
		}
	} else if _, ok := e.s.Match(tokentable.PIPE); ok {
		attr.HasNamespace = true
		e.skipWS()
		attr.Name = e.mustMatch(tokentable.IDENT).Value
	} else {
		attr.Name = e.mustMatch(tokentable.IDENT).Value
	}
	e.skipWS()
	if tok, ok := e.s.Match(tokentable.EQUALS, tokentable.INCLUDES, tokentable.DASHMATCH,
		tokentable.PREFIXMATCH, tokentable.SUFFIXMATCH, tokentable.SUBSTRINGMATCH); ok {
		attr.Op = tok.Value
		e.skipWS()
		vtok := e.mustMatch(tokentable.IDENT, tokentable.STRING)
		if vtok.Type == tokentable.STRING {
			attr.Value = unquoteString(vtok.Value)
		} else {
			attr.Value = vtok.Value
		}
		e.skipWS()
	}
	e.mustMatch(tokentable.RBRACKET)
	return attr
}

// readDeclarations reads `declaration? (';' declaration?)*` up to and
// consuming the block's closing '}', delegating each unit (including its
// terminator) to readOneDeclarationWithRecovery.
func (e *Engine) readDeclarations() {
	for {
		if e.readOneDeclarationWithRecovery() {
			return
		}
	}
}

// readOneDeclarationWithRecovery is error-recovery boundary 2 (spec
// §7.2): it parses zero-or-one declaration plus its terminator, catching
// a SyntaxError with the {SEMICOLON, RBRACE} sync set. The bool result
// reports whether '}' has already been consumed, so readDeclarations
// knows whether to loop again.
func (e *Engine) readOneDeclarationWithRecovery() (closed bool) {
	defer func() {
		if r := recover(); r != nil {
			se := e.recoverSyntaxError(r)
			e.opts.logger().Warn("declaration recovery", zap.String("message", se.Message), zap.Int("line", se.Line), zap.Int("col", se.Col))
			e.Fire(events.Event{Name: events.Error, Err: se, Message: se.Message, Line: se.Line, Col: se.Col})
			k := e.s.Advance(tokentable.SEMICOLON, tokentable.RBRACE)
			if k == tokentable.EOF {
				// No ';' or '}' anywhere in the remaining input: the block
				// never closes, so the error is fatal (spec §8: "a
				// stylesheet ending in mid-declaration raises SyntaxError").
				panic(se)
			}
			closed = k == tokentable.RBRACE
		}
	}()

	e.skipWS()
	if _, ok := e.s.Match(tokentable.RBRACE); ok {
		return true
	}
	if _, ok := e.s.Match(tokentable.SEMICOLON); ok {
		return false
	}
	e.parseDeclaration()
	e.skipWS()
	tok := e.mustMatch(tokentable.SEMICOLON, tokentable.RBRACE)
	return tok.Type == tokentable.RBRACE
}

func (e *Engine) parseDeclaration() {
	name := e.parsePropertyName()
	e.skipWS()
	e.mustMatch(tokentable.COLON)
	e.skipWS()
	value := e.parseExpr()
	if len(value.Parts) == 0 {
		e.fail("declaration value must not be empty")
	}
	e.skipWS()
	important := false
	if _, ok := e.s.Match(tokentable.IMPORTANT_SYM); ok {
		important = true
		e.skipWS()
	}
	e.Fire(events.Event{Name: events.Property, PropertyName: name, PropertyValue: value, Important: important})
}

func (e *Engine) parsePropertyName() PropertyName {
	if _, ok := e.s.Match(tokentable.STAR); ok {
		if !e.opts.StarHack {
			e.fail("unexpected '*' before property name")
		}
		name := e.mustMatch(tokentable.IDENT).Value
		return PropertyName{Name: name, Hack: "*"}
	}
	tok := e.mustMatch(tokentable.IDENT)
	if e.opts.UnderscoreHack && strings.HasPrefix(tok.Value, "_") {
		return PropertyName{Name: strings.TrimPrefix(tok.Value, "_"), Hack: "_"}
	}
	return PropertyName{Name: tok.Value}
}

func (e *Engine) parseExpr() PropertyValue {
	var v PropertyValue
	t, ok := e.tryParseTerm()
	if !ok {
		return v
	}
	v.Parts = append(v.Parts, ValuePart{Term: &t})

	for {
		e.skipWS()
		if tok, ok := e.s.Match(tokentable.SLASH, tokentable.COMMA); ok {
			v.Parts = append(v.Parts, ValuePart{Operator: tok.Value})
			e.skipWS()
			next := e.mustParseTerm()
			v.Parts = append(v.Parts, ValuePart{Term: &next})
			continue
		}
		if next, ok := e.tryParseTerm(); ok {
			v.Parts = append(v.Parts, ValuePart{Term: &next})
			continue
		}
		break
	}
	return v
}

func (e *Engine) mustParseTerm() Term {
	t, ok := e.tryParseTerm()
	if !ok {
		e.fail("expected a term")
	}
	return t
}

var literalTermKinds = map[tokentable.Kind]TermKind{
	tokentable.NUMBER: TermNumber, tokentable.PERCENTAGE: TermPercentage,
	tokentable.LENGTH: TermLength, tokentable.EMS: TermEms, tokentable.EXS: TermExs,
	tokentable.ANGLE: TermAngle, tokentable.TIME: TermTime, tokentable.FREQ: TermFreq,
	tokentable.RESOLUTION: TermResolution, tokentable.DIMENSION: TermDimension,
	tokentable.IDENT: TermIdent, tokentable.UNICODE_RANGE: TermUnicodeRange,
}

// tryParseTerm implements Term: an optional unary sign, then a literal
// value, hex color, function call, or (with Options.IEFilters) an IE
// proprietary filter function.
func (e *Engine) tryParseTerm() (Term, bool) {
	var sign string
	if _, ok := e.s.Match(tokentable.PLUS); ok {
		sign = "+"
	} else if _, ok := e.s.Match(tokentable.MINUS); ok {
		sign = "-"
	}

	k, err := e.s.LA(1)
	if err != nil {
		return e.noTerm(sign)
	}

	switch k {
	case tokentable.NUMBER, tokentable.PERCENTAGE, tokentable.LENGTH, tokentable.EMS,
		tokentable.EXS, tokentable.ANGLE, tokentable.TIME, tokentable.FREQ,
		tokentable.RESOLUTION, tokentable.DIMENSION, tokentable.IDENT, tokentable.UNICODE_RANGE:
		tok := e.mustMatch(k)
		return Term{Sign: sign, Kind: literalTermKinds[k], Raw: tok.Value}, true

	case tokentable.STRING:
		tok := e.mustMatch(tokentable.STRING)
		return Term{Sign: sign, Kind: TermString, Raw: unquoteString(tok.Value)}, true

	case tokentable.URI:
		tok := e.mustMatch(tokentable.URI)
		return Term{Sign: sign, Kind: TermURI, Raw: stripURI(tok.Value)}, true

	case tokentable.HASH:
		tok := e.mustMatch(tokentable.HASH)
		e.validateHexColor(tok)
		return Term{Sign: sign, Kind: TermHexColor, Raw: tok.Value}, true

	case tokentable.FUNCTION:
		tok := e.mustMatch(tokentable.FUNCTION)
		fn := e.parseFunctionAfterToken(tok)
		return Term{Sign: sign, Kind: TermFunction, Function: &fn}, true

	case tokentable.IE_FUNCTION:
		if !e.opts.IEFilters {
			return e.noTerm(sign)
		}
		tok := e.mustMatch(tokentable.IE_FUNCTION)
		fn := e.parseIEFunctionAfterToken(tok)
		return Term{Sign: sign, Kind: TermIEFunction, Function: &fn}, true

	default:
		return e.noTerm(sign)
	}
}

func (e *Engine) noTerm(sign string) (Term, bool) {
	if sign != "" {
		e.fail("expected a term after unary %q", sign)
	}
	return Term{}, false
}

func (e *Engine) validateHexColor(tok stream.Token) {
	if !hexColorPattern.MatchString(tok.Value) {
		e.failAt(tok.StartRow, tok.StartCol, "invalid hex color %q", tok.Value)
	}
}

func (e *Engine) parseFunctionAfterToken(tok stream.Token) FunctionCall {
	name := strings.TrimSuffix(tok.Value, "(")
	e.skipWS()
	args := e.parseExpr()
	e.skipWS()
	e.mustMatch(tokentable.RPAREN)
	return FunctionCall{Name: name, Args: args}
}

// parseIEFunctionAfterToken parses IE_FUNCTION's argument list:
// `IDENT '=' term (',' IDENT '=' term)*`, only reachable when
// Options.IEFilters is set.
func (e *Engine) parseIEFunctionAfterToken(tok stream.Token) FunctionCall {
	name := strings.TrimSuffix(tok.Value, "(")
	var args []IEArg
	e.skipWS()
	if _, ok := e.s.Match(tokentable.RPAREN); ok {
		return FunctionCall{Name: name, IEArgs: args}
	}
	for {
		argName := e.mustMatch(tokentable.IDENT).Value
		e.skipWS()
		e.mustMatch(tokentable.EQUALS)
		e.skipWS()
		t := e.mustParseTerm()
		args = append(args, IEArg{Name: argName, Value: &t})
		e.skipWS()
		if _, ok := e.s.Match(tokentable.COMMA); ok {
			e.skipWS()
			continue
		}
		break
	}
	e.mustMatch(tokentable.RPAREN)
	return FunctionCall{Name: name, IEArgs: args}
}
