// Package tokentable is the static, data-driven description of CSS token
// kinds consumed by internal/stream: their literal text or regex pattern,
// and whether they are hidden from the grammar. It is built once and is
// immutable afterward.
package tokentable

import (
	"regexp"
	"strings"

	"github.com/gocss/cssparse/internal/reader"
)

// Kind identifies a token descriptor. Kind(0) is reserved for EOF.
// Kind(-1), used only on runtime token instances (never in the table
// itself), denotes an unrecognized character.
type Kind int

// Unrecognized is the runtime-only token type assigned when no descriptor
// in the table matches: "tokenInfo[-1]" lookups must be guarded explicitly
// rather than relying on an entry actually existing at that index.
const Unrecognized Kind = -1

const (
	EOF Kind = iota // reserved: descriptor ID 0

	S   // whitespace
	CDO // <!--
	CDC // -->

	CHARSET_SYM
	MEDIA_SYM
	IMPORT_SYM
	NAMESPACE_SYM
	PAGE_SYM
	FONT_FACE_SYM

	TOP_LEFT_CORNER_SYM
	TOP_LEFT_SYM
	TOP_CENTER_SYM
	TOP_RIGHT_SYM
	TOP_RIGHT_CORNER_SYM
	BOTTOM_LEFT_CORNER_SYM
	BOTTOM_LEFT_SYM
	BOTTOM_CENTER_SYM
	BOTTOM_RIGHT_SYM
	BOTTOM_RIGHT_CORNER_SYM
	LEFT_TOP_SYM
	LEFT_MIDDLE_SYM
	LEFT_BOTTOM_SYM
	RIGHT_TOP_SYM
	RIGHT_MIDDLE_SYM
	RIGHT_BOTTOM_SYM

	STRING
	URI
	UNICODE_RANGE

	EMS
	EXS
	LENGTH
	ANGLE
	TIME
	FREQ
	RESOLUTION
	PERCENTAGE
	DIMENSION
	NUMBER

	FUNCTION
	IE_FUNCTION
	NOT
	IMPORTANT_SYM

	IDENT
	HASH

	PREFIXMATCH
	SUFFIXMATCH
	SUBSTRINGMATCH
	INCLUDES
	DASHMATCH

	COMMA
	COLON
	SEMICOLON
	DOT
	STAR
	PLUS
	MINUS
	SLASH
	EQUALS
	PIPE
	GREATER
	TILDE

	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	LPAREN
	RPAREN

	comment // hidden, never exposed to the grammar
)

// String names a Kind for diagnostics. The reverse, name-to-Kind lookup is
// Table.ByName.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	if k == Unrecognized {
		return "UNRECOGNIZED"
	}
	return "UNKNOWN"
}

var names = map[Kind]string{
	EOF: "EOF", S: "S", CDO: "CDO", CDC: "CDC",
	CHARSET_SYM: "CHARSET_SYM", MEDIA_SYM: "MEDIA_SYM", IMPORT_SYM: "IMPORT_SYM",
	NAMESPACE_SYM: "NAMESPACE_SYM", PAGE_SYM: "PAGE_SYM", FONT_FACE_SYM: "FONT_FACE_SYM",
	TOP_LEFT_CORNER_SYM: "TOP_LEFT_CORNER_SYM", TOP_LEFT_SYM: "TOP_LEFT_SYM",
	TOP_CENTER_SYM: "TOP_CENTER_SYM", TOP_RIGHT_SYM: "TOP_RIGHT_SYM",
	TOP_RIGHT_CORNER_SYM: "TOP_RIGHT_CORNER_SYM", BOTTOM_LEFT_CORNER_SYM: "BOTTOM_LEFT_CORNER_SYM",
	BOTTOM_LEFT_SYM: "BOTTOM_LEFT_SYM", BOTTOM_CENTER_SYM: "BOTTOM_CENTER_SYM",
	BOTTOM_RIGHT_SYM: "BOTTOM_RIGHT_SYM", BOTTOM_RIGHT_CORNER_SYM: "BOTTOM_RIGHT_CORNER_SYM",
	LEFT_TOP_SYM: "LEFT_TOP_SYM", LEFT_MIDDLE_SYM: "LEFT_MIDDLE_SYM", LEFT_BOTTOM_SYM: "LEFT_BOTTOM_SYM",
	RIGHT_TOP_SYM: "RIGHT_TOP_SYM", RIGHT_MIDDLE_SYM: "RIGHT_MIDDLE_SYM", RIGHT_BOTTOM_SYM: "RIGHT_BOTTOM_SYM",
	STRING: "STRING", URI: "URI", UNICODE_RANGE: "UNICODE_RANGE",
	EMS: "EMS", EXS: "EXS", LENGTH: "LENGTH", ANGLE: "ANGLE", TIME: "TIME", FREQ: "FREQ",
	RESOLUTION: "RESOLUTION", PERCENTAGE: "PERCENTAGE", DIMENSION: "DIMENSION", NUMBER: "NUMBER",
	FUNCTION: "FUNCTION", IE_FUNCTION: "IE_FUNCTION", NOT: "NOT", IMPORTANT_SYM: "IMPORTANT_SYM",
	IDENT: "IDENT", HASH: "HASH",
	PREFIXMATCH: "PREFIXMATCH", SUFFIXMATCH: "SUFFIXMATCH", SUBSTRINGMATCH: "SUBSTRINGMATCH",
	INCLUDES: "INCLUDES", DASHMATCH: "DASHMATCH",
	COMMA: "COMMA", COLON: "COLON", SEMICOLON: "SEMICOLON", DOT: "DOT", STAR: "STAR",
	PLUS: "PLUS", MINUS: "MINUS", SLASH: "SLASH", EQUALS: "EQUALS", PIPE: "PIPE",
	GREATER: "GREATER", TILDE: "TILDE",
	LBRACE: "LBRACE", RBRACE: "RBRACE", LBRACKET: "LBRACKET", RBRACKET: "RBRACKET",
	LPAREN: "LPAREN", RPAREN: "RPAREN",
	comment: "COMMENT",
}

// matchForm tags which of the three shapes in Design Notes §9 a
// descriptor's matcher takes: a literal, a pre-compiled anchored regex, or
// a custom function (used only by EOF and the comment descriptor, whose
// match logic isn't expressible as a single literal or pattern).
type matchForm int

const (
	formLiteral matchForm = iota
	formPattern
	formCustom
)

// Descriptor is one row of the static token table.
type Descriptor struct {
	ID   Kind
	Hide bool

	form    matchForm
	literal string
	pattern *regexp.Regexp
	custom  func(r *reader.Reader) (string, bool)
}

// Match dispatches to the descriptor's literal, pattern, or custom matcher.
// It is the single tight loop the design notes call for: every descriptor
// shape funnels through this one method.
func (d *Descriptor) Match(r *reader.Reader) (string, bool) {
	switch d.form {
	case formLiteral:
		return r.ReadMatch(d.literal)
	case formPattern:
		return r.ReadMatchPattern(d.pattern)
	case formCustom:
		return d.custom(r)
	default:
		return "", false
	}
}

func literal(id Kind, text string) Descriptor {
	return Descriptor{ID: id, form: formLiteral, literal: text}
}

// pat compiles frag anchored at the start of the remaining input; frag is
// an unanchored fragment, callers don't repeat the leading ^ in every
// table row.
func pat(id Kind, frag string) Descriptor {
	return Descriptor{ID: id, form: formPattern, pattern: regexp.MustCompile("^(?:" + frag + ")")}
}

func custom(id Kind, hide bool, fn func(r *reader.Reader) (string, bool)) Descriptor {
	return Descriptor{ID: id, Hide: hide, form: formCustom, custom: fn}
}

const nameStart = `[a-zA-Z_]|[^\x00-\x7F]`
const nameChar = `[a-zA-Z0-9_-]|[^\x00-\x7F]`
const ident = `-?(?:` + nameStart + `)(?:` + nameChar + `)*`
const numFrag = `[0-9]*\.?[0-9]+(?:[eE][+-]?[0-9]+)?`
const stringFrag = `"(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*'`

// Table is the ordered, immutable list of token descriptors: order encodes
// priority exactly as spec.md §4.2 requires (the first descriptor whose
// matcher succeeds wins, so longer/more-specific forms are listed ahead of
// shorter prefixes they would otherwise shadow).
type Table struct {
	Descriptors []Descriptor
	byName      map[string]Kind
}

// New builds the static table once.
func New() *Table {
	ds := []Descriptor{
		// EOF must be tried first: an empty match must not be shadowed by
		// anything else, and every other matcher is a no-op at EOF anyway.
		custom(EOF, false, matchEOF),

		custom(comment, true, matchComment),

		literal(CDO, "<!--"),
		literal(CDC, "-->"),

		pat(S, `[ \t\n\f]+`),

		// At-rule keywords and the 16 CSS3 paged-media margin boxes: tried
		// before generic IDENT so they are never swallowed by it.
		ciLiteralPat(CHARSET_SYM, `@charset`),
		ciLiteralPat(MEDIA_SYM, `@media`),
		ciLiteralPat(IMPORT_SYM, `@import`),
		ciLiteralPat(NAMESPACE_SYM, `@namespace`),
		ciLiteralPat(PAGE_SYM, `@page`),
		ciLiteralPat(FONT_FACE_SYM, `@font-face`),

		ciLiteralPat(TOP_LEFT_CORNER_SYM, `@top-left-corner`),
		ciLiteralPat(TOP_LEFT_SYM, `@top-left`),
		ciLiteralPat(TOP_CENTER_SYM, `@top-center`),
		ciLiteralPat(TOP_RIGHT_CORNER_SYM, `@top-right-corner`),
		ciLiteralPat(TOP_RIGHT_SYM, `@top-right`),
		ciLiteralPat(BOTTOM_LEFT_CORNER_SYM, `@bottom-left-corner`),
		ciLiteralPat(BOTTOM_LEFT_SYM, `@bottom-left`),
		ciLiteralPat(BOTTOM_CENTER_SYM, `@bottom-center`),
		ciLiteralPat(BOTTOM_RIGHT_CORNER_SYM, `@bottom-right-corner`),
		ciLiteralPat(BOTTOM_RIGHT_SYM, `@bottom-right`),
		ciLiteralPat(LEFT_TOP_SYM, `@left-top`),
		ciLiteralPat(LEFT_MIDDLE_SYM, `@left-middle`),
		ciLiteralPat(LEFT_BOTTOM_SYM, `@left-bottom`),
		ciLiteralPat(RIGHT_TOP_SYM, `@right-top`),
		ciLiteralPat(RIGHT_MIDDLE_SYM, `@right-middle`),
		ciLiteralPat(RIGHT_BOTTOM_SYM, `@right-bottom`),

		pat(URI, `(?i)url\(\s*(?:`+stringFrag+`|[^)'"\s]*)\s*\)`),
		pat(STRING, stringFrag),
		pat(UNICODE_RANGE, `[uU]\+[0-9a-fA-F?]{1,6}(?:-[0-9a-fA-F]{1,6})?`),

		// Numeric literals: specific unit suffixes are tried before the
		// DIMENSION/NUMBER catch-alls so e.g. "10px" matches LENGTH whole,
		// never NUMBER("10") followed by a stray IDENT("px").
		pat(EMS, numFrag+`em\b`),
		pat(EXS, numFrag+`ex\b`),
		pat(LENGTH, numFrag+`(?:px|cm|mm|in|pt|pc)\b`),
		pat(ANGLE, numFrag+`(?:deg|rad|grad)\b`),
		pat(TIME, numFrag+`m?s\b`),
		pat(FREQ, numFrag+`k?Hz\b`),
		pat(RESOLUTION, numFrag+`dp(?:i|cm|px)\b`),
		pat(PERCENTAGE, numFrag+`%`),
		pat(DIMENSION, numFrag+`(?:`+nameStart+`)(?:`+nameChar+`)*`),
		pat(NUMBER, numFrag),

		pat(IE_FUNCTION, `(?i)progid:[a-zA-Z.]+\(`),
		pat(NOT, `:(?i)not\(`),
		pat(IMPORTANT_SYM, `!\s*(?:/\*(?:[^*]|\*[^/])*\*/\s*)?(?i)important`),

		// FUNCTION must be tried before IDENT: an identifier directly
		// followed by '(' is a function token, not IDENT then LPAREN.
		pat(FUNCTION, ident+`\(`),
		pat(IDENT, ident),
		pat(HASH, `#(?:`+nameChar+`)+`),

		// Multi-char match operators before the single-char operators they
		// would otherwise be shadowed by (STAR, EQUALS, TILDE, PIPE).
		literal(PREFIXMATCH, "^="),
		literal(SUFFIXMATCH, "$="),
		literal(SUBSTRINGMATCH, "*="),
		literal(INCLUDES, "~="),
		literal(DASHMATCH, "|="),

		literal(COMMA, ","),
		literal(COLON, ":"),
		literal(SEMICOLON, ";"),
		literal(DOT, "."),
		literal(STAR, "*"),
		literal(PLUS, "+"),
		literal(MINUS, "-"),
		literal(SLASH, "/"),
		literal(EQUALS, "="),
		literal(PIPE, "|"),
		literal(GREATER, ">"),
		literal(TILDE, "~"),

		literal(LBRACE, "{"),
		literal(RBRACE, "}"),
		literal(LBRACKET, "["),
		literal(RBRACKET, "]"),
		literal(LPAREN, "("),
		literal(RPAREN, ")"),
	}

	byName := make(map[string]Kind, len(ds))
	for _, d := range ds {
		byName[d.ID.String()] = d.ID
	}

	return &Table{Descriptors: ds, byName: byName}
}

// ByName is the "_tokenData[name]" by-name index the spec's open questions
// call for, built once at table construction, in place of the source's
// broken tokenInfo reference.
func (t *Table) ByName(name string) (Kind, bool) {
	k, ok := t.byName[name]
	return k, ok
}

func matchEOF(r *reader.Reader) (string, bool) {
	if r.EOF() {
		return " ", true
	}
	return "", false
}

func matchComment(r *reader.Reader) (string, bool) {
	rem := r.Remaining()
	if !strings.HasPrefix(rem, "/*") {
		return "", false
	}
	if idx := strings.Index(rem[2:], "*/"); idx >= 0 {
		return r.ReadCount(idx + 4), true
	}
	return r.ReadCount(len(rem)), true
}

// ciLiteralPat compiles word as a case-insensitive anchored literal; CSS
// at-rule and margin-box keywords are case-insensitive per the CSS
// grammar even though they're spelled lowercase in source text.
func ciLiteralPat(id Kind, word string) Descriptor {
	return pat(id, "(?i)"+regexp.QuoteMeta(word)+`\b`)
}
