package css

import (
	"strings"

	"github.com/gocss/cssparse/internal/events"
	"github.com/gocss/cssparse/internal/tokentable"
)

// marginBoxNames maps each of the 16 CSS3 paged-media margin-box symbols
// to its diagnostic/event name.
var marginBoxNames = map[tokentable.Kind]string{
	tokentable.TOP_LEFT_CORNER_SYM:      "top-left-corner",
	tokentable.TOP_LEFT_SYM:             "top-left",
	tokentable.TOP_CENTER_SYM:           "top-center",
	tokentable.TOP_RIGHT_SYM:            "top-right",
	tokentable.TOP_RIGHT_CORNER_SYM:     "top-right-corner",
	tokentable.BOTTOM_LEFT_CORNER_SYM:   "bottom-left-corner",
	tokentable.BOTTOM_LEFT_SYM:          "bottom-left",
	tokentable.BOTTOM_CENTER_SYM:        "bottom-center",
	tokentable.BOTTOM_RIGHT_SYM:         "bottom-right",
	tokentable.BOTTOM_RIGHT_CORNER_SYM:  "bottom-right-corner",
	tokentable.LEFT_TOP_SYM:             "left-top",
	tokentable.LEFT_MIDDLE_SYM:          "left-middle",
	tokentable.LEFT_BOTTOM_SYM:          "left-bottom",
	tokentable.RIGHT_TOP_SYM:            "right-top",
	tokentable.RIGHT_MIDDLE_SYM:         "right-middle",
	tokentable.RIGHT_BOTTOM_SYM:         "right-bottom",
}

// parseMedia is `MEDIA_SYM media_query_list '{' ruleset* '}'`, firing
// startmedia/endmedia around the nested rulesets (spec §4.3's @media).
func (e *Engine) parseMedia() {
	e.s.Get() // MEDIA_SYM
	e.skipWS()
	queries := e.parseMediaQueryList()
	e.skipWS()
	e.Fire(events.Event{Name: events.StartMedia, Media: queries})
	e.mustMatch(tokentable.LBRACE)
	e.skipWS()
	for {
		k, err := e.s.LA(1)
		if err != nil || k == tokentable.RBRACE {
			break
		}
		e.parseRulesetWithRecovery()
		e.skipWS()
	}
	e.mustMatch(tokentable.RBRACE)
	e.Fire(events.Event{Name: events.EndMedia, Media: queries})
}

// parsePage is `PAGE_SYM IDENT? pseudo_page? '{' page-body '}'`. The
// identifier "auto" is rejected (case-insensitive) per spec §4.3.
func (e *Engine) parsePage() {
	e.s.Get() // PAGE_SYM
	e.skipWS()

	var id string
	if tok, ok := e.s.Match(tokentable.IDENT); ok {
		if strings.EqualFold(tok.Value, "auto") {
			e.failAt(tok.StartRow, tok.StartCol, "%q is not a valid page identifier", tok.Value)
		}
		id = tok.Value
		e.skipWS()
	}

	var pseudo string
	if _, ok := e.s.Match(tokentable.COLON); ok {
		pseudo = e.mustMatch(tokentable.IDENT).Value
		e.skipWS()
	}

	e.Fire(events.Event{Name: events.StartPage, PageID: id, Pseudo: pseudo})
	e.mustMatch(tokentable.LBRACE)
	e.parsePageBody()
	e.Fire(events.Event{Name: events.EndPage, PageID: id, Pseudo: pseudo})
}

// parsePageBody reads @page's body, which unlike a ruleset's uniform
// declaration list interleaves declarations with margin-box at-rules
// (spec §4.3's "body permits interleaved declarations and margin-box
// at-rules"). It consumes the closing '}' before returning.
func (e *Engine) parsePageBody() {
	for {
		e.skipWS()
		k, err := e.s.LA(1)
		if err != nil || k == tokentable.RBRACE {
			e.mustMatch(tokentable.RBRACE)
			return
		}
		if name, ok := marginBoxNames[k]; ok {
			e.parseMarginBox(name)
			continue
		}
		if e.readOneDeclarationWithRecovery() {
			return
		}
	}
}

// parseMarginBox parses one `@top-left { declaration (';' declaration?)* }`
// style block, firing startpagemargin/endpagemargin around it.
func (e *Engine) parseMarginBox(name string) {
	e.s.Get() // margin-box symbol
	e.skipWS()
	e.Fire(events.Event{Name: events.StartPageMargin, Margin: name})
	e.mustMatch(tokentable.LBRACE)
	e.readDeclarations()
	e.Fire(events.Event{Name: events.EndPageMargin, Margin: name})
}

// parseFontFace is `FONT_FACE_SYM '{' declarations '}'`.
func (e *Engine) parseFontFace() {
	e.s.Get() // FONT_FACE_SYM
	e.skipWS()
	e.Fire(events.Event{Name: events.StartFontFace})
	e.mustMatch(tokentable.LBRACE)
	e.readDeclarations()
	e.Fire(events.Event{Name: events.EndFontFace})
}
