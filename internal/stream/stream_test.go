package stream

import (
	"testing"

	"github.com/gocss/cssparse/internal/tokentable"
)

func TestGetSkipsHiddenComments(t *testing.T) {
	s := New("a/* hidden */b")

	if k := s.Get(); k != tokentable.IDENT || s.Token().Value != "a" {
		t.Fatalf("got %v %q, want IDENT a", k, s.Token().Value)
	}
	if k := s.Get(); k != tokentable.IDENT || s.Token().Value != "b" {
		t.Fatalf("got %v %q, want IDENT b", k, s.Token().Value)
	}
}

func TestUngetRestoresPreviousToken(t *testing.T) {
	s := New("a b")

	s.Get() // IDENT a
	first := *s.Token()

	s.Get() // S
	s.Get() // IDENT b

	if err := s.Unget(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Token().Type != tokentable.S {
		t.Fatalf("after one unget expected S, got %v", s.Token().Type)
	}

	if err := s.Unget(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Token().Value != first.Value || s.Token().Type != first.Type {
		t.Fatalf("after two ungets expected original first token %+v, got %+v", first, *s.Token())
	}
}

func TestUngetUnderflow(t *testing.T) {
	s := New("a")
	if err := s.Unget(); err != ErrUngetUnderflow {
		t.Fatalf("expected ErrUngetUnderflow, got %v", err)
	}
}

func TestMatchSucceedsAndFails(t *testing.T) {
	s := New("a")

	if _, ok := s.Match(tokentable.HASH); ok {
		t.Fatal("expected Match(HASH) to miss on an IDENT")
	}
	// A failed match must leave state untouched: the next Get still
	// returns the same token.
	if k := s.Get(); k != tokentable.IDENT {
		t.Fatalf("state corrupted after failed match: got %v", k)
	}
}

func TestMatchOnHitConsumes(t *testing.T) {
	s := New("a b")
	if _, ok := s.Match(tokentable.IDENT); !ok {
		t.Fatal("expected Match(IDENT) to hit")
	}
	// Next token should be whitespace, not another IDENT: the match
	// consumed "a".
	if k := s.Get(); k != tokentable.S {
		t.Fatalf("got %v, want S", k)
	}
}

func TestMustMatchReportsPosition(t *testing.T) {
	s := New("  ;")
	s.Get() // S

	_, err := s.MustMatch(tokentable.IDENT)
	if err == nil {
		t.Fatal("expected an error")
	}
	uerr, ok := err.(*UnexpectedTokenError)
	if !ok {
		t.Fatalf("expected *UnexpectedTokenError, got %T", err)
	}
	if uerr.Got != tokentable.SEMICOLON || uerr.Row != 1 || uerr.Col != 3 {
		t.Errorf("got %+v, want Got=SEMICOLON Row=1 Col=3", uerr)
	}
}

func TestAdvanceStopsAtSyncSetOrEOF(t *testing.T) {
	s := New("a b ; c")
	k := s.Advance(tokentable.SEMICOLON)
	if k != tokentable.SEMICOLON {
		t.Fatalf("got %v, want SEMICOLON", k)
	}

	s2 := New("a b c")
	k2 := s2.Advance(tokentable.SEMICOLON)
	if k2 != tokentable.EOF {
		t.Fatalf("got %v, want EOF when sync token never appears", k2)
	}
}

func TestLAPeeksWithoutConsuming(t *testing.T) {
	s := New("a b c")
	s.Get() // IDENT a

	k, err := s.LA(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k != tokentable.IDENT {
		t.Fatalf("LA(2) = %v, want IDENT (the 'b')", k)
	}

	// LA must not have consumed anything: the next Get should still be S.
	if got := s.Get(); got != tokentable.S {
		t.Fatalf("LA mutated stream position: next Get = %v, want S", got)
	}
}

func TestLATooDeepFails(t *testing.T) {
	s := New("a")
	if _, err := s.LA(16); err != ErrTooMuchLookahead {
		t.Fatalf("expected ErrTooMuchLookahead, got %v", err)
	}
}

func TestLANegativeLooksBackIntoBuffer(t *testing.T) {
	s := New("a b c")
	s.Get() // IDENT a
	s.Get() // S
	s.Get() // IDENT b

	k, err := s.LA(-2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// lt is [a, S, b] with ltIndex 3, so LA(-1) is the current token 'b'
	// and LA(-2) is lt[1], the whitespace before it.
	if k != tokentable.S {
		t.Fatalf("LA(-2) = %v, want S (the space before 'b')", k)
	}
}

func TestLookaheadBufferBoundedAt15(t *testing.T) {
	s := New("a a a a a a a a a a a a a a a a a a a a")
	for i := 0; i < 20; i++ {
		s.Get()
		s.Get() // ident + whitespace per repetition, so 40 gets total below
	}
	if len(s.lt) > MaxLookahead {
		t.Fatalf("lookahead buffer grew past %d: %d", MaxLookahead, len(s.lt))
	}
}
