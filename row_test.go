package term

import "testing"

func TestRowZeroValue(t *testing.T) {
	var r Row
	if r.Wrap() || r.WrapContinuation() || r.Grapheme() || r.Styled() {
		t.Fatal("zero Row must have every flag cleared")
	}
	if r.cells() != 0 {
		t.Fatal("zero Row must point at cell offset 0")
	}
}

func TestRowFlagsIndependent(t *testing.T) {
	var r Row
	r = r.withWrap(true)
	r = r.withGrapheme(true)
	if !r.Wrap() || !r.Grapheme() {
		t.Fatal("setting one flag must not clear another")
	}
	if r.WrapContinuation() || r.Styled() {
		t.Fatal("unset flags must remain false")
	}
	r = r.withWrap(false)
	if r.Wrap() {
		t.Fatal("withWrap(false) must clear the flag")
	}
	if !r.Grapheme() {
		t.Fatal("clearing wrap must not clear grapheme")
	}
}

func TestRowCellsOffset(t *testing.T) {
	var r Row
	r = r.withCells(300)
	if got := r.cells(); got != 300 {
		t.Fatalf("cells() = %d, want 300", got)
	}
	r = r.withStyled(true)
	if got := r.cells(); got != 300 {
		t.Fatalf("setting an unrelated bit must preserve cells offset, got %d", got)
	}
}
