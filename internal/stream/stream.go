// Package stream implements the CSS token stream: a generic, table-driven
// tokenizer layered over internal/reader, offering bounded bidirectional
// lookahead/lookback, hidden token elision, and transparent push-back.
package stream

import (
	"errors"
	"fmt"

	"github.com/gocss/cssparse/internal/reader"
	"github.com/gocss/cssparse/internal/tokentable"
)

// MaxLookahead bounds both LA(k) and the retained lookback window: the
// lookahead ring buffer holds at most this many tokens.
const MaxLookahead = 15

var (
	// ErrUngetUnderflow is returned by Unget when there is nothing left to
	// push back (ltIndex is already 0).
	ErrUngetUnderflow = errors.New("stream: unget with no preceding get")
	// ErrTooMuchLookahead is returned by LA/LT when k exceeds MaxLookahead.
	ErrTooMuchLookahead = errors.New("stream: lookahead depth exceeds 15")
	// ErrTooMuchLookback is returned by LA/LT when the requested negative
	// offset falls outside the retained buffer.
	ErrTooMuchLookback = errors.New("stream: lookbehind depth exceeds retained buffer")
	// ErrNoCurrentToken is returned by LT(0)/LA(0) before the first Get.
	ErrNoCurrentToken = errors.New("stream: no current token")
)

// Token is a single lexed unit: its descriptor kind (or
// tokentable.Unrecognized), the matched text, and its source span.
type Token struct {
	Type               tokentable.Kind
	Value              string
	StartRow, StartCol int
	EndRow, EndCol     int
}

// UnexpectedTokenError is what MustMatch returns on a miss. It carries
// enough information (the offending token's own position, per spec.md §3's
// "errors cite the position of the offending token") for a caller such as
// the grammar engine to build its own SyntaxError.
type UnexpectedTokenError struct {
	Got      tokentable.Kind
	Want     []tokentable.Kind
	Row, Col int
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token %s at %d:%d", e.Got, e.Row, e.Col)
}

// Stream is a table-driven tokenizer with a bounded lookahead/lookback
// ring buffer. It exclusively owns its reader.Reader.
type Stream struct {
	r     *reader.Reader
	table *tokentable.Table

	// lt is the lookahead ring buffer; ltIndex is the insertion slot for
	// the next token. ltIndex == len(lt) means no unconsumed lookahead is
	// buffered; ltIndex < len(lt) means Unget has rewound into buffered
	// history that Get can simply replay.
	lt      []Token
	ltIndex int

	token *Token // the current token ("_token" in spec.md), nil before the first Get
}

// New wraps input in a fresh Reader and the default token table.
func New(input string) *Stream {
	return NewFromReader(reader.New(input), tokentable.New())
}

// NewFromReader builds a Stream over an already-constructed reader and
// table, letting callers share a single compiled Table across streams.
func NewFromReader(r *reader.Reader, table *tokentable.Table) *Stream {
	return &Stream{r: r, table: table, lt: make([]Token, 0, MaxLookahead)}
}

// Table returns the stream's token table, e.g. so a caller can resolve a
// Kind to its name without constructing a second table.
func (s *Stream) Table() *tokentable.Table { return s.table }

// Get returns the next token's type, consuming it. If lookahead is
// buffered (because of a prior Unget), it is replayed rather than
// re-tokenized.
func (s *Stream) Get() tokentable.Kind {
	if s.ltIndex < len(s.lt) {
		tok := s.lt[s.ltIndex]
		s.ltIndex++
		s.token = &tok
		return tok.Type
	}

	tok := s.nextToken()
	s.appendToken(tok)
	s.token = &tok
	return tok.Type
}

// nextToken runs the table's tight matching loop once, recursing past
// hidden tokens (e.g. comments) until a visible one is produced or EOF is
// reached.
func (s *Stream) nextToken() Token {
	startRow, startCol := s.r.Row(), s.r.Col()

	for i := range s.table.Descriptors {
		d := &s.table.Descriptors[i]
		val, ok := d.Match(s.r)
		if !ok {
			continue
		}
		if d.Hide {
			return s.nextToken()
		}
		endRow, endCol := s.r.Row(), s.r.Col()
		return Token{Type: d.ID, Value: val, StartRow: startRow, StartCol: startCol, EndRow: endRow, EndCol: endCol}
	}

	// No descriptor matched: one unrecognized character, so the grammar
	// can still report a precise syntax error later instead of the
	// tokenizer failing outright.
	var val string
	if c, ok := s.r.Read(); ok {
		val = string(c)
	}
	endRow, endCol := s.r.Row(), s.r.Col()
	return Token{Type: tokentable.Unrecognized, Value: val, StartRow: startRow, StartCol: startCol, EndRow: endRow, EndCol: endCol}
}

// appendToken pushes tok onto the ring buffer, dropping the oldest entry
// if it would grow past MaxLookahead, and leaves ltIndex pointing past the
// newly appended token (no unconsumed lookahead).
func (s *Stream) appendToken(tok Token) {
	if len(s.lt) >= MaxLookahead {
		s.lt = s.lt[1:]
	}
	s.lt = append(s.lt, tok)
	s.ltIndex = len(s.lt)
}

// Unget rewinds to the token before the last Get, restoring Token() to
// what it returned immediately before that Get.
func (s *Stream) Unget() error {
	if s.ltIndex <= 0 {
		return ErrUngetUnderflow
	}
	s.ltIndex--
	if s.ltIndex > 0 {
		prev := s.lt[s.ltIndex-1]
		s.token = &prev
	} else {
		s.token = nil
	}
	return nil
}

// Token returns the current token (spec.md's "_token"), or nil if Get has
// never been called.
func (s *Stream) Token() *Token { return s.token }

// LA returns the type observed k tokens ahead (k>0), the current token's
// type (k==0), or a buffered token's type from history (k<0).
func (s *Stream) LA(k int) (tokentable.Kind, error) {
	tok, err := s.LT(k)
	if err != nil {
		return 0, err
	}
	return tok.Type, nil
}

// LT is LA's token-valued counterpart.
func (s *Stream) LT(k int) (Token, error) {
	switch {
	case k == 0:
		if s.token == nil {
			return Token{}, ErrNoCurrentToken
		}
		return *s.token, nil

	case k > 0:
		if k > MaxLookahead {
			return Token{}, ErrTooMuchLookahead
		}
		for i := 0; i < k; i++ {
			s.Get()
		}
		last := *s.token
		for i := 0; i < k; i++ {
			if err := s.Unget(); err != nil {
				return Token{}, err
			}
		}
		return last, nil

	default: // k < 0
		idx := s.ltIndex + k
		if idx < 0 || idx >= len(s.lt) {
			return Token{}, ErrTooMuchLookback
		}
		return s.lt[idx], nil
	}
}

// Peek is LA(1)'s token-valued form: the next token without consuming it.
func (s *Stream) Peek() (Token, error) {
	return s.LT(1)
}

// Match performs a single Get; if the consumed token's type is one of
// types, it returns (token, true). Otherwise it Ungets and returns
// (Token{}, false), leaving all observable state exactly as it was before
// the call.
func (s *Stream) Match(types ...tokentable.Kind) (Token, bool) {
	s.Get()
	cur := *s.token
	for _, t := range types {
		if cur.Type == t {
			return cur, true
		}
	}
	s.Unget()
	return Token{}, false
}

// MustMatch is Match that reports an *UnexpectedTokenError, positioned at
// the offending token, on a miss.
func (s *Stream) MustMatch(types ...tokentable.Kind) (Token, error) {
	if tok, ok := s.Match(types...); ok {
		return tok, nil
	}
	// The failed Match pushed the offending token back: it is now LT(1).
	next, err := s.LT(1)
	if err != nil {
		return Token{}, err
	}
	return Token{}, &UnexpectedTokenError{Got: next.Type, Want: types, Row: next.StartRow, Col: next.StartCol}
}

// Advance is panic-mode resync: it calls Get repeatedly until the consumed
// token's type is in syncSet (or is EOF), and returns that type.
func (s *Stream) Advance(syncSet ...tokentable.Kind) tokentable.Kind {
	for {
		k := s.Get()
		if k == tokentable.EOF {
			return k
		}
		for _, t := range syncSet {
			if k == t {
				return k
			}
		}
	}
}

// TokenName resolves a Kind to its diagnostic name.
func (s *Stream) TokenName(k tokentable.Kind) string {
	return k.String()
}
