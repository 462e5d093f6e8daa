package css

import (
	"testing"

	"github.com/gocss/cssparse/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects fired events in order for assertion.
type recorder struct {
	names []events.Name
	evs   []events.Event
}

func (r *recorder) listen(e *Engine) {
	e.AddAnyListener(func(ev events.Event) {
		r.names = append(r.names, ev.Name)
		r.evs = append(r.evs, ev)
	})
}

func TestEmptyStylesheetYieldsOnlyStartAndEnd(t *testing.T) {
	e := New("", Options{})
	var r recorder
	r.listen(e)

	require.NoError(t, e.ParseStyleSheet())
	assert.Equal(t, []events.Name{events.StartStyleSheet, events.EndStyleSheet}, r.names)
}

func TestCommentOnlyStylesheetYieldsOnlyStartAndEnd(t *testing.T) {
	e := New("/* just a comment */", Options{})
	var r recorder
	r.listen(e)

	require.NoError(t, e.ParseStyleSheet())
	assert.Equal(t, []events.Name{events.StartStyleSheet, events.EndStyleSheet}, r.names)
}

func TestSimpleRuleFiresOrderedEvents(t *testing.T) {
	e := New("a { color: red; }", Options{})
	var r recorder
	r.listen(e)

	require.NoError(t, e.ParseStyleSheet())
	assert.Equal(t, []events.Name{
		events.StartStyleSheet, events.StartRule, events.Property, events.EndRule, events.EndStyleSheet,
	}, r.names)

	startRule := r.evs[1]
	selectors := startRule.Selectors.([]Selector)
	require.Len(t, selectors, 1)
	assert.Equal(t, "a", selectors[0].String())

	prop := r.evs[2]
	name := prop.PropertyName.(PropertyName)
	value := prop.PropertyValue.(PropertyValue)
	assert.Equal(t, "color", name.Name)
	assert.Equal(t, "red", value.String())
	assert.False(t, prop.Important)
}

func TestCharsetEventCarriesUnquotedCharset(t *testing.T) {
	e := New(`@charset "utf-8"; p { }`, Options{})
	var r recorder
	r.listen(e)

	require.NoError(t, e.ParseStyleSheet())
	assert.Equal(t, []events.Name{
		events.StartStyleSheet, events.Charset, events.StartRule, events.EndRule, events.EndStyleSheet,
	}, r.names)
	assert.Equal(t, "utf-8", r.evs[1].Charset)
}

func TestMediaRuleWrapsNestedRuleset(t *testing.T) {
	e := New("@media screen and (max-width: 600px) { .x { a: 1 } }", Options{})
	var r recorder
	r.listen(e)

	require.NoError(t, e.ParseStyleSheet())
	assert.Equal(t, []events.Name{
		events.StartStyleSheet, events.StartMedia, events.StartRule, events.Property,
		events.EndRule, events.EndMedia, events.EndStyleSheet,
	}, r.names)

	queries := r.evs[1].Media.([]MediaQuery)
	require.Len(t, queries, 1)
	assert.Equal(t, "screen", queries[0].MediaType)
	require.Len(t, queries[0].Expressions, 1)
	assert.Equal(t, "max-width", queries[0].Expressions[0].Feature)
	assert.Equal(t, "600px", queries[0].Expressions[0].Value)
}

func TestVendorHacksTagPropertyName(t *testing.T) {
	e := New("*.foo { _color: red; *color: blue }", Options{StarHack: true, UnderscoreHack: true})
	var r recorder
	r.listen(e)

	require.NoError(t, e.ParseStyleSheet())

	var props []events.Event
	for _, ev := range r.evs {
		if ev.Name == events.Property {
			props = append(props, ev)
		}
	}
	require.Len(t, props, 2)

	first := props[0].PropertyName.(PropertyName)
	second := props[1].PropertyName.(PropertyName)
	assert.Equal(t, "color", first.Name)
	assert.Equal(t, "_", first.Hack)
	assert.Equal(t, "color", second.Name)
	assert.Equal(t, "*", second.Hack)
}

func TestMalformedDeclarationRecoversAndContinues(t *testing.T) {
	e := New("a { color: ; } b { x: 1 }", Options{})
	var r recorder
	r.listen(e)

	require.NoError(t, e.ParseStyleSheet())

	var names []events.Name
	for _, ev := range r.evs {
		names = append(names, ev.Name)
	}
	assert.Contains(t, names, events.Error)
	assert.Contains(t, names, events.StartRule)

	var startRuleCount int
	for _, ev := range r.evs {
		if ev.Name == events.StartRule {
			startRuleCount++
		}
	}
	assert.Equal(t, 2, startRuleCount, "both rules should have been entered despite the error")
}

func TestHashIsValidAsSelectorButInvalidHexFailsAsValue(t *testing.T) {
	e1 := New("#abcd { }", Options{})
	require.NoError(t, e1.ParseStyleSheet())

	e2 := New("p { color: #abcd }", Options{})
	var r recorder
	r.listen(e2)
	require.NoError(t, e2.ParseStyleSheet())

	var sawError bool
	for _, ev := range r.evs {
		if ev.Name == events.Error {
			sawError = true
		}
	}
	assert.True(t, sawError)
}

func TestStrictModePropagatesRecoverableErrors(t *testing.T) {
	e := New("a { color: ; }", Options{Strict: true})
	err := e.ParseStyleSheet()
	require.Error(t, err)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
}

func TestSyntaxErrorColumnCountsMultiByteCharacterOnce(t *testing.T) {
	// 'é' in the class name is a two-byte UTF-8 character; the invalid hex
	// color "#abcd" that follows it must still be reported at its correct
	// character column (16), not a byte-inflated one.
	e := New(".café { color: #abcd }", Options{Strict: true})
	err := e.ParseStyleSheet()
	require.Error(t, err)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Line)
	assert.Equal(t, 16, se.Col)
}

func TestMidDeclarationEOFRaisesSyntaxError(t *testing.T) {
	e := New("a { color: red", Options{})
	err := e.ParseStyleSheet()
	require.Error(t, err)
}

func TestParseRuleReturnsSelectorsAndVerifiesEOF(t *testing.T) {
	e := New("a.b c { width: 1px }", Options{})
	selectors, err := e.ParseRule()
	require.NoError(t, err)
	require.Len(t, selectors, 1)
	assert.Equal(t, "a.b c", selectors[0].String())
}

func TestParseSelectorRejectsTrailingComma(t *testing.T) {
	e := New("a, b", Options{})
	_, err := e.ParseSelector()
	require.Error(t, err)
}

func TestParsePropertyValueRoundTrips(t *testing.T) {
	e := New(" 1px solid red ", Options{})
	v, err := e.ParsePropertyValue()
	require.NoError(t, err)

	reparsed := New(v.String(), Options{})
	v2, err := reparsed.ParsePropertyValue()
	require.NoError(t, err)
	assert.Equal(t, v.String(), v2.String())
}
