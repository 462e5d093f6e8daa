package tokentable

import (
	"testing"

	"github.com/gocss/cssparse/internal/reader"
)

// firstMatch walks the table in order and returns the first descriptor
// that matches, exactly as internal/stream's tokenizer does.
func firstMatch(t *Table, r *reader.Reader) (Descriptor, string, bool) {
	for _, d := range t.Descriptors {
		if val, ok := d.Match(r); ok {
			return d, val, true
		}
	}
	return Descriptor{}, "", false
}

func TestLengthBeatsNumberThenIdent(t *testing.T) {
	tbl := New()
	r := reader.New("10px")
	d, val, ok := firstMatch(tbl, r)
	if !ok || d.ID != LENGTH || val != "10px" {
		t.Fatalf("got (%v, %q, %v), want (LENGTH, 10px, true)", d.ID, val, ok)
	}
	if !r.EOF() {
		t.Errorf("expected LENGTH to consume the whole token, remaining = %q", r.Remaining())
	}
}

func TestSubstringMatchBeatsStarThenEquals(t *testing.T) {
	tbl := New()
	r := reader.New("*=")
	d, val, ok := firstMatch(tbl, r)
	if !ok || d.ID != SUBSTRINGMATCH || val != "*=" {
		t.Fatalf("got (%v, %q, %v), want (SUBSTRINGMATCH, *=, true)", d.ID, val, ok)
	}
}

func TestFunctionBeatsIdent(t *testing.T) {
	tbl := New()
	r := reader.New("rgb(")
	d, val, ok := firstMatch(tbl, r)
	if !ok || d.ID != FUNCTION || val != "rgb(" {
		t.Fatalf("got (%v, %q, %v), want (FUNCTION, rgb(, true)", d.ID, val, ok)
	}
}

func TestMarginBoxCornerBeatsPlainVariant(t *testing.T) {
	tbl := New()
	r := reader.New("@top-left-corner {")
	d, val, ok := firstMatch(tbl, r)
	if !ok || d.ID != TOP_LEFT_CORNER_SYM || val != "@top-left-corner" {
		t.Fatalf("got (%v, %q, %v), want (TOP_LEFT_CORNER_SYM, @top-left-corner, true)", d.ID, val, ok)
	}
}

func TestCommentIsHiddenAndAtomicOnUnterminated(t *testing.T) {
	tbl := New()
	r := reader.New("/* never closes")
	d, val, ok := firstMatch(tbl, r)
	if !ok || !d.Hide {
		t.Fatalf("expected a hidden match, got %v %v", d.ID, ok)
	}
	if val != "/* never closes" {
		t.Errorf("unterminated comment should consume to EOF, got %q", val)
	}
	if !r.EOF() {
		t.Error("expected cursor at EOF after unterminated comment")
	}
}

func TestEOFCustomMatcher(t *testing.T) {
	tbl := New()
	r := reader.New("")
	d, val, ok := firstMatch(tbl, r)
	if !ok || d.ID != EOF || val != " " {
		t.Fatalf("got (%v, %q, %v), want (EOF, \" \", true)", d.ID, val, ok)
	}
}

func TestByNameMatchesDescriptorIDs(t *testing.T) {
	tbl := New()
	for _, d := range tbl.Descriptors {
		got, ok := tbl.ByName(d.ID.String())
		if !ok || got != d.ID {
			t.Errorf("ByName(%q) = (%v, %v), want (%v, true)", d.ID.String(), got, ok, d.ID)
		}
	}
}
