package css

import "strings"

// The types below are the "AST node constructors used as payloads in
// emitted events" that spec.md §1 calls an external collaborator: simple
// value objects capturing text and source position, built by the grammar
// productions in engine.go/engine_atrules.go and carried as event payloads
// (see internal/events.Event).

// Combinator connects two simple selector sequences within a Selector.
type Combinator int

const (
	// Descendant is the whitespace combinator.
	Descendant Combinator = iota
	Child          // >
	Sibling        // ~ (general sibling, CSS3)
	Adjacent       // +
)

func (c Combinator) String() string {
	switch c {
	case Child:
		return ">"
	case Sibling:
		return "~"
	case Adjacent:
		return "+"
	default:
		return " "
	}
}

// Selector is simple_selector_sequence (combinator simple_selector_sequence)*.
type Selector struct {
	Sequences   []SimpleSelectorSequence
	Combinators []Combinator // len(Combinators) == len(Sequences)-1
}

// String reconstructs an approximate source text for diagnostics and
// tests; it is not guaranteed to byte-for-byte match the original source
// (comments/whitespace are not preserved, per spec.md §1's non-goals).
func (s Selector) String() string {
	var b strings.Builder
	for i, seq := range s.Sequences {
		if i > 0 {
			c := s.Combinators[i-1]
			if c == Descendant {
				b.WriteString(" ")
			} else {
				b.WriteString(" " + c.String() + " ")
			}
		}
		b.WriteString(seq.String())
	}
	return b.String()
}

// SimpleSelectorSequence is an optional type/universal selector followed
// by zero or more modifiers, or a bare sequence of one or more modifiers.
type SimpleSelectorSequence struct {
	NamespacePrefix string // "" means unspecified; "*" is the wildcard prefix
	HasNamespace    bool
	Type            string // element name or "*"; "" if the sequence has no type/universal selector
	Modifiers       []Modifier
}

func (s SimpleSelectorSequence) String() string {
	var b strings.Builder
	if s.HasNamespace {
		b.WriteString(s.NamespacePrefix + "|")
	}
	b.WriteString(s.Type)
	for _, m := range s.Modifiers {
		b.WriteString(m.String())
	}
	return b.String()
}

// ModifierKind tags the variant held by a Modifier.
type ModifierKind int

const (
	ModifierID ModifierKind = iota
	ModifierClass
	ModifierAttribute
	ModifierPseudo
	ModifierNegation
)

// Modifier is one id/class/attribute/pseudo/negation piece of a simple
// selector sequence.
type Modifier struct {
	Kind ModifierKind

	// ModifierID / ModifierClass
	Name string

	// ModifierAttribute
	Attribute *AttributeSelector

	// ModifierPseudo: Colons is ":" or "::", preserved verbatim per
	// spec.md §4.3's "the exact colon sequence is preserved".
	Colons       string
	PseudoName   string
	PseudoIsFunc bool
	PseudoArgs   string // a functional pseudo's argument expression, as rebuilt by PropertyValue.String

	// ModifierNegation
	Negation *SimpleSelectorSequence
}

func (m Modifier) String() string {
	switch m.Kind {
	case ModifierID:
		return "#" + m.Name
	case ModifierClass:
		return "." + m.Name
	case ModifierAttribute:
		return m.Attribute.String()
	case ModifierPseudo:
		if m.PseudoIsFunc {
			return m.Colons + m.PseudoName + "(" + m.PseudoArgs + ")"
		}
		return m.Colons + m.PseudoName
	case ModifierNegation:
		return ":not(" + m.Negation.String() + ")"
	default:
		return ""
	}
}

// AttributeSelector is `[ prefix? IDENT (op [IDENT|STRING])? ]`.
type AttributeSelector struct {
	NamespacePrefix string
	HasNamespace    bool
	Name            string
	Op              string // "", "=", "~=", "|=", "^=", "$=", "*="
	Value           string
}

func (a AttributeSelector) String() string {
	var b strings.Builder
	b.WriteString("[")
	if a.HasNamespace {
		b.WriteString(a.NamespacePrefix + "|")
	}
	b.WriteString(a.Name)
	if a.Op != "" {
		b.WriteString(a.Op + a.Value)
	}
	b.WriteString("]")
	return b.String()
}

// MediaQuery is CSS3's `[only|not]? media_type (AND media_expression)*`,
// or a leading parenthesized expression with no explicit media type.
type MediaQuery struct {
	Not       bool
	Only      bool
	MediaType string // "" when the query leads with a parenthesized expression
	Expressions []MediaExpression
}

// MediaExpression is `( feature [: expr] )`.
type MediaExpression struct {
	Feature string
	Value   string // "" if the feature has no value
}

// PropertyName is a declaration's property, with any vendor-hack marker
// split out per spec.md §4.4.
type PropertyName struct {
	Name string
	Hack string // "", "_", or "*"
}

// PropertyValue is `term (operator term)*`, preserved as the flat list the
// reference grammar builds (spec.md §9's open question: "whether
// consumers are meant to re-group by operator is unspecified. Preserve
// the flat structure.").
type PropertyValue struct {
	Parts []ValuePart
}

// ValuePart is one element of a flattened PropertyValue: either an
// operator or a Term. Consecutive Terms with no intervening operator
// ValuePart represent an implicit (whitespace) operator.
type ValuePart struct {
	Operator string // "/", ",", or "" if this is a Term
	Term     *Term  // nil when Operator != ""
}

// String reconstructs value text: operators are rendered with their
// original punctuation, and an implicit juxtaposition is rendered as a
// single space. String and URI terms are written from Term.Raw, without
// their quotes or url( ) wrapper, so a value containing one (also inside a
// function's arguments) does not re-parse to an equivalent value.
func (v PropertyValue) String() string {
	var b strings.Builder
	for i, p := range v.Parts {
		if p.Term != nil {
			if i > 0 && v.Parts[i-1].Term != nil {
				b.WriteString(" ")
			}
			b.WriteString(p.Term.String())
			continue
		}
		b.WriteString(p.Operator)
	}
	return b.String()
}

// TermKind tags the variant held by a Term.
type TermKind int

const (
	TermNumber TermKind = iota
	TermPercentage
	TermLength
	TermEms
	TermExs
	TermAngle
	TermTime
	TermFreq
	TermResolution
	TermString
	TermIdent
	TermURI
	TermUnicodeRange
	TermHexColor
	TermDimension
	TermFunction
	TermIEFunction
)

// Term is an optionally-signed value: a literal token's text, or a
// function call.
type Term struct {
	Sign     string // "", "+", "-"
	Kind     TermKind
	Raw      string // the token text (STRING without quotes, URI without url( ) and quotes), unset for Kind == TermFunction/TermIEFunction
	Function *FunctionCall
}

func (t Term) String() string {
	if t.Function != nil {
		return t.Sign + t.Function.String()
	}
	return t.Sign + t.Raw
}

// FunctionCall is `FUNCTION expr ')'` or, with Options.IEFilters, an IE
// proprietary `progid:...(IDENT=term, ...)` filter.
type FunctionCall struct {
	Name   string // function name, without the trailing '('
	Args   PropertyValue
	IEArgs []IEArg
}

func (f FunctionCall) String() string {
	var b strings.Builder
	b.WriteString(f.Name + "(")
	if len(f.IEArgs) > 0 {
		for i, a := range f.IEArgs {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(a.Name + "=" + a.Value.String())
		}
	} else {
		b.WriteString(f.Args.String())
	}
	b.WriteString(")")
	return b.String()
}

// IEArg is one `IDENT '=' term` pair inside an IE_FUNCTION call.
type IEArg struct {
	Name  string
	Value *Term
}
