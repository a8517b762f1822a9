package term

import (
	"strings"
	"testing"
)

func newTestTerminal(t *testing.T, opts ...Option) *Terminal {
	t.Helper()
	term, err := New(opts...)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return term
}

func TestNewTerminalDefaults(t *testing.T) {
	term := newTestTerminal(t)
	if term.Rows() != DefaultRows || term.Cols() != DefaultCols {
		t.Fatalf("dimensions = %dx%d, want %dx%d", term.Rows(), term.Cols(), DefaultRows, DefaultCols)
	}
	if !term.HasMode(ModeWraparound) {
		t.Fatal("wraparound must default to on")
	}
	if term.Active() != term.primary {
		t.Fatal("terminal must start on the primary screen")
	}
}

func TestTerminalPrintAdvancesCursor(t *testing.T) {
	term := newTestTerminal(t, WithSize(5, 10))
	if err := term.Print('h'); err != nil {
		t.Fatalf("Print error: %v", err)
	}
	if err := term.Print('i'); err != nil {
		t.Fatalf("Print error: %v", err)
	}
	if term.active.Cursor.X != 2 {
		t.Fatalf("Cursor.X = %d, want 2", term.active.Cursor.X)
	}
	var buf strings.Builder
	_ = term.Active().DumpString(&buf, 0)
	if buf.String() != "hi" {
		t.Fatalf("DumpString() = %q, want %q", buf.String(), "hi")
	}
}

func TestTerminalPrintWrapsAtRightMargin(t *testing.T) {
	term := newTestTerminal(t, WithSize(3, 4))
	for _, c := range "abcd" {
		if err := term.Print(rune(c)); err != nil {
			t.Fatalf("Print(%q) error: %v", c, err)
		}
	}
	if term.active.Cursor.Y != 1 {
		t.Fatalf("Cursor.Y after wrap = %d, want 1", term.active.Cursor.Y)
	}
	if term.active.Cursor.X != 1 {
		t.Fatalf("Cursor.X after wrap = %d, want 1", term.active.Cursor.X)
	}
}

func TestTerminalPrintWideCharacter(t *testing.T) {
	term := newTestTerminal(t, WithSize(3, 10))
	if err := term.Print('中'); err != nil {
		t.Fatalf("Print(wide) error: %v", err)
	}
	if term.active.Cursor.X != 2 {
		t.Fatalf("Cursor.X after wide print = %d, want 2", term.active.Cursor.X)
	}
	page, row := term.active.currentPageRow()
	if !page.Cell(row, 0).IsWide() {
		t.Fatal("lead cell must be marked wide")
	}
	if !page.Cell(row, 1).IsSpacer() {
		t.Fatal("trailing cell must be a spacer")
	}
}

func TestTerminalPrintRepeat(t *testing.T) {
	term := newTestTerminal(t, WithSize(5, 10))
	_ = term.Print('x')
	if err := term.PrintRepeat(3); err != nil {
		t.Fatalf("PrintRepeat error: %v", err)
	}
	var buf strings.Builder
	_ = term.Active().DumpString(&buf, 0)
	if buf.String() != "xxxx" {
		t.Fatalf("DumpString() = %q, want %q", buf.String(), "xxxx")
	}
}

func TestTerminalIndexScrollsAtBottomFullScreen(t *testing.T) {
	term := newTestTerminal(t, WithSize(2, 5), WithScrollback(100))
	term.active.Cursor.Y = 1
	before := term.active.Pages.TotalRows()
	if err := term.Index(); err != nil {
		t.Fatalf("Index error: %v", err)
	}
	if term.active.Pages.TotalRows() != before+1 {
		t.Fatalf("TotalRows() after Index at bottom = %d, want %d", term.active.Pages.TotalRows(), before+1)
	}
}

func TestTerminalIndexMovesCursorWithinScreen(t *testing.T) {
	term := newTestTerminal(t, WithSize(5, 5))
	term.active.Cursor.Y = 0
	if err := term.Index(); err != nil {
		t.Fatalf("Index error: %v", err)
	}
	if term.active.Cursor.Y != 1 {
		t.Fatalf("Cursor.Y after Index = %d, want 1", term.active.Cursor.Y)
	}
}

func TestTerminalReverseIndexScrollsAtTop(t *testing.T) {
	term := newTestTerminal(t, WithSize(3, 5))
	term.active.Cursor.Y = 0
	page, row := term.active.currentPageRow()
	page.SetCell(row, 0, NewCell('a'))

	term.ReverseIndex()
	page2, row2 := term.active.currentPageRow()
	if page2.Cell(row2, 0).Codepoint() != 0 {
		t.Fatal("ReverseIndex at the top must scroll the region down, leaving a blank top row")
	}
}

func TestTerminalSetModeSwapsAlternateScreen(t *testing.T) {
	term := newTestTerminal(t)
	term.SetMode(ModeAlternateScreen, true)
	if term.Active() != term.alternate {
		t.Fatal("enabling ModeAlternateScreen must switch to the alternate screen")
	}
	term.SetMode(ModeAlternateScreen, false)
	if term.Active() != term.primary {
		t.Fatal("disabling ModeAlternateScreen must switch back to primary")
	}
}

func TestTerminalSaveRestoreCursor(t *testing.T) {
	term := newTestTerminal(t, WithSize(5, 10))
	term.active.Cursor.X, term.active.Cursor.Y = 3, 2
	term.SaveCursor()
	term.active.Cursor.X, term.active.Cursor.Y = 0, 0
	term.RestoreCursor()
	if term.active.Cursor.X != 3 || term.active.Cursor.Y != 2 {
		t.Fatalf("cursor after RestoreCursor = (%d,%d), want (3,2)", term.active.Cursor.X, term.active.Cursor.Y)
	}
}

func TestTerminalSetScrollingRegionClampsAndHomesCursor(t *testing.T) {
	term := newTestTerminal(t, WithSize(10, 10))
	term.SetScrollingRegion(2, 6, 1, 8)
	if term.scrollTop != 2 || term.scrollBottom != 6 || term.scrollLeft != 1 || term.scrollRight != 8 {
		t.Fatalf("scroll region = (%d,%d,%d,%d), want (2,6,1,8)",
			term.scrollTop, term.scrollBottom, term.scrollLeft, term.scrollRight)
	}
	if term.active.Cursor.X != 0 || term.active.Cursor.Y != 0 {
		t.Fatal("SetScrollingRegion without origin mode must home the cursor to (0,0)")
	}
}

func TestTerminalHorizontalTab(t *testing.T) {
	term := newTestTerminal(t, WithSize(5, 40))
	term.HorizontalTab()
	if term.active.Cursor.X != 8 {
		t.Fatalf("Cursor.X after first tab = %d, want 8", term.active.Cursor.X)
	}
	term.HorizontalTab()
	if term.active.Cursor.X != 16 {
		t.Fatalf("Cursor.X after second tab = %d, want 16", term.active.Cursor.X)
	}
}

func TestTerminalTabClearAll(t *testing.T) {
	term := newTestTerminal(t, WithSize(5, 40))
	term.TabClear(TabClearAll)
	term.HorizontalTab()
	if term.active.Cursor.X != term.scrollRight {
		t.Fatalf("Cursor.X with no tabstops = %d, want right margin %d", term.active.Cursor.X, term.scrollRight)
	}
}

func TestTerminalResizeGrowShrink(t *testing.T) {
	term := newTestTerminal(t, WithSize(5, 10))
	if err := term.Resize(20, 10); err != nil {
		t.Fatalf("Resize (grow) error: %v", err)
	}
	if term.Rows() != 10 || term.Cols() != 20 {
		t.Fatalf("dimensions after grow = %dx%d, want 10x20", term.Rows(), term.Cols())
	}
	if err := term.Resize(8, 3); err != nil {
		t.Fatalf("Resize (shrink) error: %v", err)
	}
	if term.Rows() != 3 || term.Cols() != 8 {
		t.Fatalf("dimensions after shrink = %dx%d, want 3x8", term.Rows(), term.Cols())
	}
}

func TestTerminalResizeGrowColumnsPreservesContent(t *testing.T) {
	term := newTestTerminal(t, WithSize(3, 10))
	for _, c := range "hello" {
		if err := term.Print(rune(c)); err != nil {
			t.Fatalf("Print(%q) error: %v", c, err)
		}
	}
	if err := term.Resize(20, 3); err != nil {
		t.Fatalf("Resize (grow cols) error: %v", err)
	}
	var buf strings.Builder
	if err := term.Active().DumpString(&buf, 0); err != nil {
		t.Fatalf("DumpString error: %v", err)
	}
	if buf.String() != "hello" {
		t.Fatalf("DumpString() after column growth = %q, want %q", buf.String(), "hello")
	}
	if err := term.Print('!'); err != nil {
		t.Fatalf("Print after resize error: %v", err)
	}
	buf.Reset()
	_ = term.Active().DumpString(&buf, 0)
	if buf.String() != "hello!" {
		t.Fatalf("DumpString() after post-resize print = %q, want %q (stale page stride would corrupt this write)", buf.String(), "hello!")
	}
}

func TestTerminalStyleRefReachesZeroAfterFullErase(t *testing.T) {
	term := newTestTerminal(t, WithSize(3, 10))
	s := term.Active()
	s.SetAttribute(SGRAttribute{Kind: SGRBold})
	for _, c := range "abc" {
		if err := term.Print(rune(c)); err != nil {
			t.Fatalf("Print(%q) error: %v", c, err)
		}
	}
	page, _ := s.currentPageRow()
	if page.Styles().Len() != 1 {
		t.Fatalf("Styles().Len() before erase = %d, want 1", page.Styles().Len())
	}

	s.EraseRows(0, 0, false)
	if got := page.Styles().Len(); got != 0 {
		t.Fatalf("Styles().Len() after full erase = %d, want 0 (phantom ref kept the style alive)", got)
	}
}

func TestTerminalScrollViewportAndReset(t *testing.T) {
	term := newTestTerminal(t, WithSize(2, 5), WithScrollback(100))
	for i := 0; i < 10; i++ {
		if err := term.Index(); err != nil {
			t.Fatalf("Index error: %v", err)
		}
	}

	term.ScrollViewport(-1000)
	var buf strings.Builder
	if err := term.ViewportText(&buf, 1); err != nil {
		t.Fatalf("ViewportText error: %v", err)
	}

	term.ResetViewport()
	var afterReset strings.Builder
	if err := term.ViewportText(&afterReset, term.Rows()); err != nil {
		t.Fatalf("ViewportText after reset error: %v", err)
	}
	var active strings.Builder
	if err := term.Active().DumpString(&active, 0); err != nil {
		t.Fatalf("DumpString error: %v", err)
	}
	if afterReset.String() != active.String() {
		t.Fatalf("ViewportText after ResetViewport = %q, want it to match the active area %q", afterReset.String(), active.String())
	}
}

func TestTerminalDeviceStatusReportCursorPosition(t *testing.T) {
	var buf strings.Builder
	term := newTestTerminal(t, WithSize(5, 10), WithResponse(&buf))
	term.active.Cursor.X, term.active.Cursor.Y = 2, 1
	term.DeviceStatusReport(DSRCursorPosition)
	if buf.String() != "\x1b[2;3R" {
		t.Fatalf("DeviceStatusReport(DSRCursorPosition) = %q, want %q", buf.String(), "\x1b[2;3R")
	}
}

func TestGraphemeExtendsZWJ(t *testing.T) {
	if !graphemeExtends('\U0001F468', 0x200D) {
		t.Fatal("ZWJ must always extend the prior cluster")
	}
}

func TestGraphemeExtendsRegionalIndicatorPair(t *testing.T) {
	if !graphemeExtends(0x1F1FA, 0x1F1F8) {
		t.Fatal("a regional indicator following a regional indicator must extend (flag sequence)")
	}
}

func TestGraphemeExtendsUnrelatedCodepoints(t *testing.T) {
	if graphemeExtends('a', 'b') {
		t.Fatal("two unrelated ASCII letters must not form one grapheme cluster")
	}
}
