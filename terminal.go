package term

import (
	"fmt"
	"io"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/pagedterm/term/unicodetable"
)

// TerminalMode is a bitmask of terminal behavior flags: wraparound, insert,
// grapheme clustering, origin, reverse video, alternate screen, and the
// mouse-reporting variants.
type TerminalMode uint32

const (
	ModeWraparound TerminalMode = 1 << iota
	ModeOrigin
	ModeInsert
	ModeGraphemeCluster
	ModeReverseVideo
	ModeAlternateScreen
	ModeMouseX10
	ModeMouseNormal
	ModeMouseButtonEvent
	ModeMouseAnyEvent
	ModeMouseUTF8
	ModeMouseSGR
	ModeMouseSGRPixels
	ModeMouseURXVT
)

// StatusDisplay selects which of the terminal's outputs Terminal.print
// routes to: writes are discarded when the terminal is not showing main.
type StatusDisplay uint8

const (
	StatusMain StatusDisplay = iota
	StatusAlternate
)

const (
	DefaultRows = 24
	DefaultCols = 80
)

// TabClearKind selects which tabstops TabClear removes.
type TabClearKind uint8

const (
	TabClearColumn TabClearKind = iota
	TabClearAll
)

// Terminal is a screen pair (primary with scrollback, alternate without)
// plus the shared scrolling-region/mode/tabstop/palette state. All exported
// mutation takes the coarse write lock; reads take the read half.
type Terminal struct {
	mu sync.RWMutex

	cols, rows    int
	maxScrollback int

	primary   *Screen
	alternate *Screen
	active    *Screen

	scrollTop, scrollBottom int
	scrollLeft, scrollRight int

	modes TerminalMode

	tabstops []bool

	palette *Palette

	prevChar      rune
	hasPrevChar   bool
	statusDisplay StatusDisplay

	response ResponseProvider
	warn     WarnLogger
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the terminal dimensions. Values <= 0 fall back to
// DefaultRows/DefaultCols.
func WithSize(rows, cols int) Option {
	return func(t *Terminal) {
		if rows > 0 {
			t.rows = rows
		}
		if cols > 0 {
			t.cols = cols
		}
	}
}

// WithScrollback sets the primary screen's maximum scrollback row count.
func WithScrollback(maxRows int) Option {
	return func(t *Terminal) { t.maxScrollback = maxRows }
}

// WithResponse sets the writer terminal responses (DSR, etc.) are written
// to. Defaults to a no-op.
func WithResponse(p ResponseProvider) Option {
	return func(t *Terminal) { t.response = p }
}

// WithWarnLogger sets the collaborator that receives non-fatal warnings.
// Defaults to a no-op.
func WithWarnLogger(w WarnLogger) Option {
	return func(t *Terminal) { t.warn = w }
}

// WithPalette overrides the default 256-color palette.
func WithPalette(p *Palette) Option {
	return func(t *Terminal) { t.palette = p }
}

// New creates a terminal with the given options, defaulting to 24x80, full
// screen scroll region, wraparound on, a scrollback limit of 0.
func New(opts ...Option) (*Terminal, error) {
	t := &Terminal{
		rows:          DefaultRows,
		cols:          DefaultCols,
		modes:         ModeWraparound,
		palette:       NewDefaultPalette(),
		response:      NoopResponse{},
		warn:          NoopWarnLogger{},
		statusDisplay: StatusMain,
	}
	for _, opt := range opts {
		opt(t)
	}

	primary, err := NewScreen(t.cols, t.rows, t.maxScrollback, t.palette)
	if err != nil {
		return nil, fmt.Errorf("term: new primary screen: %w", err)
	}
	alternate, err := NewScreen(t.cols, t.rows, 0, t.palette)
	if err != nil {
		return nil, fmt.Errorf("term: new alternate screen: %w", err)
	}

	t.primary = primary
	t.alternate = alternate
	t.active = primary
	t.scrollBottom = t.rows - 1
	t.scrollRight = t.cols - 1
	t.tabstops = defaultTabstops(t.cols)
	return t, nil
}

func defaultTabstops(cols int) []bool {
	stops := make([]bool, cols)
	for i := 0; i < cols; i += 8 {
		stops[i] = true
	}
	return stops
}

// Rows returns the terminal's row count.
func (t *Terminal) Rows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows
}

// Cols returns the terminal's column count.
func (t *Terminal) Cols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cols
}

// Active returns the currently active screen (primary or alternate).
func (t *Terminal) Active() *Screen {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

// ScrollViewport moves the active screen's viewport by delta rows (negative
// scrolls back into scrollback, positive scrolls toward the present),
// clamped to the stored history. It does not move the cursor or otherwise
// affect editing - it only changes what ViewportText reads back.
func (t *Terminal) ScrollViewport(delta int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active.Pages.ScrollViewport(delta)
}

// ResetViewport snaps the active screen's viewport back to the active area,
// undoing any prior ScrollViewport.
func (t *Terminal) ResetViewport() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active.Pages.SetViewport(ViewportActive, RowOffset{})
}

// ViewportText writes up to n rows of the active screen's current viewport
// to w - the scrolled-back counterpart to dumping the active area directly.
func (t *Terminal) ViewportText(w io.Writer, n int) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.DumpViewport(w, n)
}

// HasMode reports whether mode is currently set.
func (t *Terminal) HasMode(mode TerminalMode) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.modes&mode != 0
}

// SetMode enables or disables mode. Entering/leaving ModeAlternateScreen
// swaps the active screen, preserving each screen's own cursor/saved-
// cursor state independently.
func (t *Terminal) SetMode(mode TerminalMode, enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	wasAlt := t.modes&ModeAlternateScreen != 0
	if enabled {
		t.modes |= mode
	} else {
		t.modes &^= mode
	}
	isAlt := t.modes&ModeAlternateScreen != 0

	if mode == ModeAlternateScreen && wasAlt != isAlt {
		if isAlt {
			t.active = t.alternate
		} else {
			t.active = t.primary
		}
	}
}

// SaveCursor implements DECSC: captures the active screen's cursor state.
func (t *Terminal) SaveCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	saved := t.active.Cursor.Save()
	t.active.Saved = &saved
}

// RestoreCursor implements DECRC: restores a previously saved cursor state
// on the active screen, a no-op if nothing was saved.
func (t *Terminal) RestoreCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active.Saved == nil {
		return
	}
	t.active.Cursor.Restore(*t.active.Saved)
}

// DeviceStatusReportKind selects which status report to emit.
type DeviceStatusReportKind uint8

const (
	DSRCursorPosition DeviceStatusReportKind = iota
	DSROK
)

// DeviceStatusReport writes the formatted response bytes for kind through
// the configured ResponseProvider. Actually delivering those bytes to a
// PTY is the host's job; this only produces correctly formatted output.
func (t *Terminal) DeviceStatusReport(kind DeviceStatusReportKind) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	switch kind {
	case DSRCursorPosition:
		row := t.active.Cursor.Y + 1
		col := t.active.Cursor.X + 1
		fmt.Fprintf(t.response, "\x1b[%d;%dR", row, col)
	case DSROK:
		fmt.Fprint(t.response, "\x1b[0n")
	}
}

// SetScrollingRegion sets the scroll region (inclusive), clamped to valid
// bounds and adjusted for origin mode.
func (t *Terminal) SetScrollingRegion(top, bottom, left, right int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if top < 0 {
		top = 0
	}
	if bottom >= t.rows {
		bottom = t.rows - 1
	}
	if bottom < top {
		return
	}
	if left < 0 {
		left = 0
	}
	if right >= t.cols {
		right = t.cols - 1
	}
	if right < left {
		return
	}

	t.scrollTop, t.scrollBottom = top, bottom
	t.scrollLeft, t.scrollRight = left, right

	if t.modes&ModeOrigin != 0 {
		t.active.CursorAbsolute(t.scrollLeft, t.scrollTop)
	} else {
		t.active.CursorAbsolute(0, 0)
	}
}

// SetTabStop marks col as a tabstop.
func (t *Terminal) SetTabStop(col int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if col >= 0 && col < len(t.tabstops) {
		t.tabstops[col] = true
	}
}

// ClearTabStop removes the tabstop at col.
func (t *Terminal) ClearTabStop(col int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if col >= 0 && col < len(t.tabstops) {
		t.tabstops[col] = false
	}
}

// TabClear removes tabstops per kind: just the cursor's column, or all of
// them.
func (t *Terminal) TabClear(kind TabClearKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch kind {
	case TabClearColumn:
		if x := t.active.Cursor.X; x >= 0 && x < len(t.tabstops) {
			t.tabstops[x] = false
		}
	case TabClearAll:
		for i := range t.tabstops {
			t.tabstops[i] = false
		}
	}
}

// HorizontalTab advances the cursor to the next tabstop, or the right
// margin if none remains.
func (t *Terminal) HorizontalTab() {
	t.mu.Lock()
	defer t.mu.Unlock()

	x := t.active.Cursor.X
	for x++; x <= t.scrollRight; x++ {
		if x < len(t.tabstops) && t.tabstops[x] {
			break
		}
	}
	if x > t.scrollRight {
		x = t.scrollRight
	}
	t.active.Cursor.X = x
	t.active.Cursor.PendingWrap = false
}

// CarriageReturn moves the cursor to the scroll region's left margin.
func (t *Terminal) CarriageReturn() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active.Cursor.X = t.scrollLeft
	t.active.Cursor.PendingWrap = false
}

// rightMargin computes the effective right edge for wrap/insert decisions:
// the full screen width if the cursor sits right of the scroll region,
// otherwise one past the region's right column.
func (t *Terminal) rightMargin() int {
	if t.active.Cursor.X > t.scrollRight {
		return t.cols
	}
	return t.scrollRight + 1
}

// Index performs a line feed: clears pending_wrap, then scrolls or moves
// the cursor.
func (t *Terminal) Index() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.index()
}

func (t *Terminal) index() error {
	s := t.active
	s.Cursor.PendingWrap = false

	if s.Cursor.Y < t.scrollTop || s.Cursor.Y > t.scrollBottom {
		if s.Cursor.Y < t.rows-1 {
			s.Cursor.Y++
			s.syncCursorCache()
		}
		return nil
	}

	if s.Cursor.Y == t.scrollBottom {
		fullScreen := t.scrollTop == 0 && t.scrollBottom == t.rows-1 && t.scrollLeft == 0 && t.scrollRight == t.cols-1
		if fullScreen {
			return s.CursorDownScroll()
		}
		t.scrollRegionUp(1)
		return nil
	}

	s.Cursor.Y++
	s.syncCursorCache()
	return nil
}

// scrollRegionUp shifts the scroll region's row payloads up by n, clearing
// the freed rows at the bottom of the region with the blank cell.
func (t *Terminal) scrollRegionUp(n int) {
	s := t.active
	blank := s.blankCell()
	fullWidth := t.scrollLeft == 0 && t.scrollRight == t.cols-1

	for y := t.scrollTop; y <= t.scrollBottom; y++ {
		srcY := y + n
		page, row, ok := s.Pages.GetCell(y, 0)
		if !ok {
			continue
		}
		if srcY <= t.scrollBottom {
			srcPage, srcRow, ok := s.Pages.GetCell(srcY, 0)
			if !ok {
				continue
			}
			for x := t.scrollLeft; x <= t.scrollRight; x++ {
				page.SetCell(row, x, srcPage.Cell(srcRow, x))
			}
			if fullWidth {
				page.SetRow(row, srcPage.Row(srcRow))
			}
		} else {
			for x := t.scrollLeft; x <= t.scrollRight; x++ {
				page.SetCell(row, x, blank)
			}
		}
	}
}

// scrollRegionDown shifts the scroll region's row payloads down by n,
// clearing the freed rows at the top of the region with the blank cell.
func (t *Terminal) scrollRegionDown(n int) {
	s := t.active
	blank := s.blankCell()

	for y := t.scrollBottom; y >= t.scrollTop; y-- {
		srcY := y - n
		page, row, ok := s.Pages.GetCell(y, 0)
		if !ok {
			continue
		}
		if srcY >= t.scrollTop {
			srcPage, srcRow, ok := s.Pages.GetCell(srcY, 0)
			if !ok {
				continue
			}
			for x := t.scrollLeft; x <= t.scrollRight; x++ {
				page.SetCell(row, x, srcPage.Cell(srcRow, x))
			}
		} else {
			for x := t.scrollLeft; x <= t.scrollRight; x++ {
				page.SetCell(row, x, blank)
			}
		}
	}
}

// ReverseIndex performs a reverse line feed: moves the cursor up, scrolling
// the region down when already at its top.
func (t *Terminal) ReverseIndex() {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.active
	s.Cursor.PendingWrap = false

	if s.Cursor.Y < t.scrollTop || s.Cursor.Y > t.scrollBottom {
		if s.Cursor.Y > 0 {
			s.Cursor.Y--
			s.syncCursorCache()
		}
		return
	}

	if s.Cursor.Y == t.scrollTop {
		t.scrollRegionDown(1)
		return
	}

	s.Cursor.Y--
	s.syncCursorCache()
}

// NextLine performs carriage return followed by index.
func (t *Terminal) NextLine() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active.Cursor.X = t.scrollLeft
	return t.index()
}

// graphemeExtends reports whether cur should extend the cluster started by
// prev, consulting both the compressed boundary-class table and
// rivo/uniseg's own stepping as a second opinion, so clustering matches
// real UAX #29 segmentation outside the tabulated fast range.
func graphemeExtends(prev, cur rune) bool {
	switch unicodetable.Class(cur) {
	case unicodetable.ClassExtend, unicodetable.ClassZWJ, unicodetable.ClassSpacingMark, unicodetable.ClassEmojiModifier:
		return true
	case unicodetable.ClassRegionalIndicator:
		return unicodetable.Class(prev) == unicodetable.ClassRegionalIndicator
	}

	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(string([]rune{prev, cur}), -1)
	return len([]rune(cluster)) == 2
}

// Print writes one codepoint at the cursor: clustering extension, width-
// aware placement, wraparound,
// insert-mode shifting, and wide-character spacer handling.
func (t *Terminal) Print(c rune) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.print(c)
	if err == nil {
		t.prevChar = c
		t.hasPrevChar = true
	}
	return err
}

// PrintRepeat reprints the previously printed codepoint n times, per
// REP (CSI b).
func (t *Terminal) PrintRepeat(n int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.hasPrevChar {
		return nil
	}
	for i := 0; i < n; i++ {
		if err := t.print(t.prevChar); err != nil {
			return err
		}
	}
	return nil
}

func (t *Terminal) print(c rune) error {
	if t.statusDisplay != StatusMain {
		return nil
	}

	s := t.active
	right := t.rightMargin()

	if t.modes&ModeGraphemeCluster != 0 && s.Cursor.X > 0 && t.hasPrevChar && graphemeExtends(t.prevChar, c) {
		return t.appendGraphemeAtPrior(c)
	}

	width, _ := unicodetable.Lookup(c)
	switch width {
	case 0:
		if s.Cursor.X == 0 {
			t.warn.Warn("dropped zero-width codepoint at column 0", "codepoint", c)
			return nil
		}
		return t.appendGraphemeAtPrior(c)
	case 2:
		return t.printWide(c, right)
	default:
		return t.printNarrow(c, right)
	}
}

func (t *Terminal) appendGraphemeAtPrior(c rune) error {
	s := t.active
	page, row := s.currentPageRow()
	col := s.Cursor.X - 1
	if col < 0 {
		return nil
	}
	addr := page.CellAddr(row, col)
	if err := page.Graphemes().Append(addr, c); err != nil {
		return err
	}
	cell := page.Cell(row, col).WithGrapheme()
	page.SetCell(row, col, cell)
	page.SetRow(row, page.Row(row).withGrapheme(true))
	return nil
}

func (t *Terminal) printNarrow(c rune, right int) error {
	s := t.active
	if err := t.maybeWrap(right); err != nil {
		return err
	}
	if t.modes&ModeInsert != 0 && s.Cursor.X < right-1 {
		t.shiftRight(1)
	}

	page, row := s.currentPageRow()
	id, ref, err := s.Cursor.ResolvedStyle(page.Styles())
	if err != nil {
		return err
	}
	if ref != nil {
		*ref++
	}

	cell := EmptyCell.WithChar(c).WithStyleID(id)
	page.SetCell(row, s.Cursor.X, cell)
	if id != 0 {
		page.SetRow(row, page.Row(row).withStyled(true))
	}

	if s.Cursor.X == right-1 {
		s.Cursor.PendingWrap = true
	} else {
		s.Cursor.X++
	}
	return nil
}

func (t *Terminal) printWide(c rune, right int) error {
	s := t.active
	if err := t.maybeWrap(right); err != nil {
		return err
	}

	if s.Cursor.X == right-1 {
		page, row := s.currentPageRow()
		head := page.Cell(row, s.Cursor.X).WithWide(WideSpacerHead)
		page.SetCell(row, s.Cursor.X, head)
		page.SetRow(row, page.Row(row).withWrap(true))
		if err := t.index(); err != nil {
			return err
		}
		s.Cursor.X = t.scrollLeft
		page, row = s.currentPageRow()
		page.SetRow(row, page.Row(row).withWrapContinuation(true))
	}

	if t.modes&ModeInsert != 0 && s.Cursor.X < right-2 {
		t.shiftRight(2)
	}

	page, row := s.currentPageRow()
	id, ref, err := s.Cursor.ResolvedStyle(page.Styles())
	if err != nil {
		return err
	}
	if ref != nil {
		*ref += 2
	}

	lead := EmptyCell.WithChar(c).WithStyleID(id).WithWide(WideWide)
	tail := EmptyCell.WithStyleID(id).WithWide(WideSpacerTail)
	page.SetCell(row, s.Cursor.X, lead)
	page.SetCell(row, s.Cursor.X+1, tail)
	if id != 0 {
		page.SetRow(row, page.Row(row).withStyled(true))
	}

	if s.Cursor.X+1 == right-1 {
		s.Cursor.PendingWrap = true
		s.Cursor.X++
	} else {
		s.Cursor.X += 2
	}
	return nil
}

func (t *Terminal) maybeWrap(right int) error {
	s := t.active
	if !s.Cursor.PendingWrap || t.modes&ModeWraparound == 0 {
		return nil
	}
	page, row := s.currentPageRow()
	page.SetRow(row, page.Row(row).withWrap(true))
	if err := t.index(); err != nil {
		return err
	}
	s.Cursor.X = t.scrollLeft
	s.Cursor.PendingWrap = false
	_ = right
	page, row = s.currentPageRow()
	page.SetRow(row, page.Row(row).withWrapContinuation(true))
	return nil
}

// shiftRight shifts cells from the cursor to the scroll region's right
// margin n positions to the right, discarding whatever falls off the edge.
func (t *Terminal) shiftRight(n int) {
	s := t.active
	page, row := s.currentPageRow()
	for x := t.scrollRight; x >= s.Cursor.X+n; x-- {
		page.SetCell(row, x, page.Cell(row, x-n))
	}
	blank := s.blankCell()
	for x := s.Cursor.X; x < s.Cursor.X+n && x <= t.scrollRight; x++ {
		page.SetCell(row, x, blank)
	}
}

// Resize changes the terminal's dimensions on both screens through
// PageList.Resize. Shrinking rows moves the active area's top down, leaving
// the rows above it in history; growing pulls history rows back into view,
// appending blank rows only when stored rows run short. Each cursor keeps
// its (x, y) position, clamped to the new bounds; it is not moved to follow
// its row's content when the active area's top shifts.
func (t *Terminal) Resize(cols, rows int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cols <= 0 || rows <= 0 {
		return nil
	}

	t.rows = rows
	t.cols = cols
	if err := t.primary.Pages.Resize(cols, rows); err != nil {
		return err
	}
	if err := t.alternate.Pages.Resize(cols, rows); err != nil {
		return err
	}

	t.scrollTop, t.scrollBottom = 0, rows-1
	t.scrollLeft, t.scrollRight = 0, cols-1
	t.tabstops = defaultTabstops(cols)

	for _, s := range []*Screen{t.primary, t.alternate} {
		if s.Cursor.Y >= rows {
			s.Cursor.Y = rows - 1
		}
		if s.Cursor.X >= cols {
			s.Cursor.X = cols - 1
		}
		s.syncCursorCache()
	}
	return nil
}
