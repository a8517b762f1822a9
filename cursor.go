package term

// CursorStyle determines how the cursor is rendered.
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// Charset selects the character encoding variant mapped onto G0-G3.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetLineDrawing
)

// CharsetIndex selects one of four character set slots.
type CharsetIndex int

const (
	CharsetIndexG0 CharsetIndex = iota
	CharsetIndexG1
	CharsetIndexG2
	CharsetIndexG3
)

// Cursor tracks the active position, the pending style, and the caches the
// screen and terminal hot paths rely on: print paths require a
// pending-wrap flag (so a print at the last column does not wrap until the
// next character actually arrives) and cached pointers/ids so the common
// case - printing many cells in a row with an unchanging style - never has
// to touch the style intern table or walk the page list again.
type Cursor struct {
	X, Y int

	PendingWrap bool

	Style      CursorStyle
	Visible    bool

	OriginMode bool
	CharsetIdx CharsetIndex
	Charsets   [4]Charset

	pendingStyle   Style
	pendingID      uint16
	pendingRef     *uint32
	pendingIDValid bool

	cachedPage *Page
	cachedRow  int
}

// NewCursor creates a cursor at (0, 0), visible, blinking block, ASCII
// charsets, default pending style.
func NewCursor() *Cursor {
	return &Cursor{
		Style:      CursorStyleBlinkingBlock,
		Visible:    true,
		CharsetIdx: CharsetIndexG0,
	}
}

// PendingStyle returns the style that will be applied to the next cell
// printed at the cursor.
func (c *Cursor) PendingStyle() Style { return c.pendingStyle }

// SetPendingStyle replaces the cursor's pending style, invalidating any
// cached intern-table id/ref - the next print must re-resolve it.
func (c *Cursor) SetPendingStyle(s Style) {
	c.pendingStyle = s
	c.pendingIDValid = false
	c.pendingID = 0
	c.pendingRef = nil
}

// ResolvedStyle returns the cursor's pending style's interned id and stable
// refcount pointer, computing and caching them via set on first use after a
// style change. This only resolves the style - it does not claim a
// reference on its own behalf; a caller that is about to write a cell with
// this style still owns bumping *ref itself (see Terminal.printNarrow/
// printWide), so the refcount stays exactly "cells currently showing this
// style", not "cells plus however many times the cursor looked it up".
func (c *Cursor) ResolvedStyle(set *StyleSet) (uint16, *uint32, error) {
	if c.pendingIDValid {
		return c.pendingID, c.pendingRef, nil
	}
	id, ref, err := set.Resolve(c.pendingStyle)
	if err != nil {
		return 0, nil, err
	}
	c.pendingID = id
	c.pendingRef = ref
	c.pendingIDValid = true
	return id, ref, nil
}

// InvalidateCache drops the cursor's cached page/row pointers, forcing the
// next access to re-resolve them through the page list. Called whenever the
// active area's geometry changes underneath the cursor (scroll, split,
// resize).
func (c *Cursor) InvalidateCache() {
	c.cachedPage = nil
	c.cachedRow = 0
}

// Cache stores the page and in-page row the cursor currently addresses.
func (c *Cursor) Cache(page *Page, row int) {
	c.cachedPage = page
	c.cachedRow = row
}

// Cached returns the cursor's cached page/row, if any.
func (c *Cursor) Cached() (*Page, int, bool) {
	if c.cachedPage == nil {
		return nil, 0, false
	}
	return c.cachedPage, c.cachedRow, true
}

// SavedCursor captures everything DECSC/DECRC must restore: position,
// pending style, origin mode and charset state.
type SavedCursor struct {
	X, Y         int
	PendingStyle Style
	OriginMode   bool
	CharsetIdx   CharsetIndex
	Charsets     [4]Charset
}

// Save captures the cursor's restorable state.
func (c *Cursor) Save() SavedCursor {
	return SavedCursor{
		X:            c.X,
		Y:            c.Y,
		PendingStyle: c.pendingStyle,
		OriginMode:   c.OriginMode,
		CharsetIdx:   c.CharsetIdx,
		Charsets:     c.Charsets,
	}
}

// Restore applies a previously saved cursor state.
func (c *Cursor) Restore(s SavedCursor) {
	c.X = s.X
	c.Y = s.Y
	c.SetPendingStyle(s.PendingStyle)
	c.OriginMode = s.OriginMode
	c.CharsetIdx = s.CharsetIdx
	c.Charsets = s.Charsets
	c.PendingWrap = false
	c.InvalidateCache()
}
