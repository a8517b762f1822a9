package term

import (
	"io"
	"strings"
)

// Screen is a PageList plus a Cursor and an optional SavedCursor. Screen
// owns cursor motion, erase, SGR application, and serialization; a Terminal
// holds two of these (primary and alternate).
type Screen struct {
	Pages  *PageList
	Cursor *Cursor
	Saved  *SavedCursor

	palette *Palette
}

// NewScreen initializes a screen sized rows x cols with maxScrollback
// additional history rows.
func NewScreen(cols, rows, maxScrollback int, palette *Palette) (*Screen, error) {
	pages, err := NewPageList(cols, rows, maxScrollback)
	if err != nil {
		return nil, err
	}
	s := &Screen{
		Pages:   pages,
		Cursor:  NewCursor(),
		palette: palette,
	}
	s.syncCursorCache()
	return s, nil
}

func (s *Screen) syncCursorCache() {
	page, row, ok := s.Pages.GetCell(s.Cursor.Y, 0)
	if ok {
		s.Cursor.Cache(page, row)
	} else {
		s.Cursor.InvalidateCache()
	}
}

func (s *Screen) currentPageRow() (*Page, int) {
	if page, row, ok := s.Cursor.Cached(); ok {
		return page, row
	}
	s.syncCursorCache()
	page, row, _ := s.Cursor.Cached()
	return page, row
}

// CursorUp moves the cursor up n rows, clamped to row 0 of the active area.
func (s *Screen) CursorUp(n int) {
	s.Cursor.Y -= n
	if s.Cursor.Y < 0 {
		s.Cursor.Y = 0
	}
	s.Cursor.PendingWrap = false
	s.syncCursorCache()
}

// CursorDown moves the cursor down n rows, clamped to the active area's
// last row.
func (s *Screen) CursorDown(n int) {
	s.Cursor.Y += n
	if max := s.Pages.Rows() - 1; s.Cursor.Y > max {
		s.Cursor.Y = max
	}
	s.Cursor.PendingWrap = false
	s.syncCursorCache()
}

// CursorLeft moves the cursor left n columns, clamped to column 0.
func (s *Screen) CursorLeft(n int) {
	s.Cursor.X -= n
	if s.Cursor.X < 0 {
		s.Cursor.X = 0
	}
	s.Cursor.PendingWrap = false
}

// CursorRight moves the cursor right n columns, clamped to the last column.
func (s *Screen) CursorRight(n int) {
	s.Cursor.X += n
	if max := s.Pages.Cols() - 1; s.Cursor.X > max {
		s.Cursor.X = max
	}
	s.Cursor.PendingWrap = false
}

// CursorAbsolute moves the cursor to an exact (x, y), clamped within active
// bounds; cursor motion never traverses past the active area.
func (s *Screen) CursorAbsolute(x, y int) {
	if x < 0 {
		x = 0
	}
	if max := s.Pages.Cols() - 1; x > max {
		x = max
	}
	if y < 0 {
		y = 0
	}
	if max := s.Pages.Rows() - 1; y > max {
		y = max
	}
	s.Cursor.X = x
	s.Cursor.Y = y
	s.Cursor.PendingWrap = false
	s.syncCursorCache()
}

// CursorDownScroll advances the active area by one row, growing the page
// list. Precondition: cursor is at the bottom row. If the cursor's current
// style carries a background color, the new row is painted with that
// background's blank cell.
func (s *Screen) CursorDownScroll() error {
	off, err := s.Pages.AppendRows(1)
	if err != nil {
		return err
	}
	s.Pages.activeTop, _ = s.Pages.activeTop.forward(1)
	s.syncCursorCache()

	if !s.Cursor.PendingStyle().Bg.IsZero() {
		blank := s.blankCell()
		for c := 0; c < s.Pages.Cols(); c++ {
			off.node.page.SetCell(off.row, c, blank)
		}
	}
	return nil
}

// blankCell returns the cell erase/scroll operations paint: default empty
// if the cursor's style carries no background, otherwise an empty cell
// referencing that background-bearing style.
func (s *Screen) blankCell() Cell {
	if s.Cursor.PendingStyle().Bg.IsZero() {
		return EmptyCell
	}
	page, _ := s.currentPageRow()
	id, _, err := s.Cursor.ResolvedStyle(page.Styles())
	if err != nil {
		return EmptyCell
	}
	return EmptyCell.WithStyleID(id)
}

// EraseRows erases rows [top, bottom] (bottom defaults to top when
// bottom<0) in the active area, following a four-step contract: free
// grapheme storage, decrement style refs, memset to the blank cell, clear
// row summary flags when the whole row is cleared.
func (s *Screen) EraseRows(top, bottom int, protected bool) {
	if bottom < top {
		bottom = top
	}
	cols := s.Pages.Cols()
	blank := s.blankCell()

	for y := top; y <= bottom; y++ {
		page, row, ok := s.Pages.GetCell(y, 0)
		if !ok {
			continue
		}
		s.eraseRowRange(page, row, 0, cols, protected, blank)
	}
}

// EraseCells erases n cells starting at (row, col).
func (s *Screen) EraseCells(row, col, n int, protected bool) {
	page, pageRow, ok := s.Pages.GetCell(row, 0)
	if !ok {
		return
	}
	s.eraseRowRange(page, pageRow, col, col+n, protected, s.blankCell())
}

func (s *Screen) eraseRowRange(page *Page, pageRow, from, to int, protected bool, blank Cell) {
	cols := page.Cols()
	if to > cols {
		to = cols
	}
	r := page.Row(pageRow)
	fullRow := from == 0 && to == cols

	for c := from; c < to; c++ {
		cell := page.Cell(pageRow, c)
		if protected && cell.Protected() {
			continue
		}

		if r.Grapheme() && cell.HasGrapheme() {
			page.Graphemes().Delete(page.CellAddr(pageRow, c))
		}

		if cell.HasStyle() {
			s.releaseStyleRef(page, cell.StyleID())
		}

		page.SetCell(pageRow, c, blank)
	}

	if fullRow {
		r = r.withGrapheme(false).withStyled(false).withWrap(false).withWrapContinuation(false)
		page.SetRow(pageRow, r)
	}
}

// releaseStyleRef decrements id's refcount, routing through the cursor's
// own cached ref pointer when id is the cursor's current style, otherwise
// looking it up directly, and removes the entry if the count reaches zero.
func (s *Screen) releaseStyleRef(page *Page, id uint16) {
	if s.Cursor.pendingIDValid && s.Cursor.pendingID == id && s.Cursor.pendingRef != nil {
		if *s.Cursor.pendingRef > 0 {
			*s.Cursor.pendingRef--
		}
		if *s.Cursor.pendingRef == 0 {
			page.Styles().Remove(id)
			s.Cursor.pendingIDValid = false
		}
		return
	}

	ref := page.Styles().RefPtr(id)
	if ref == nil {
		return
	}
	if *ref > 0 {
		*ref--
	}
	if *ref == 0 {
		page.Styles().Remove(id)
	}
}

// SetAttribute applies one SGR attribute to the cursor's pending style,
// then reconciles the page's style intern table (the
// manualStyleUpdate).
func (s *Screen) SetAttribute(attr SGRAttribute) {
	next := ApplyAttribute(s.Cursor.PendingStyle(), attr)
	s.manualStyleUpdate(next)
}

func (s *Screen) manualStyleUpdate(next Style) {
	page, _ := s.currentPageRow()

	if s.Cursor.pendingIDValid && s.Cursor.pendingRef != nil && *s.Cursor.pendingRef == 0 {
		page.Styles().Remove(s.Cursor.pendingID)
	}

	if next.IsDefault() {
		s.Cursor.pendingStyle = next
		s.Cursor.pendingID = 0
		s.Cursor.pendingRef = nil
		s.Cursor.pendingIDValid = true
		return
	}

	s.Cursor.pendingStyle = next
	s.Cursor.pendingIDValid = false
	_, _, _ = s.Cursor.ResolvedStyle(page.Styles())
}

// DumpString writes the screen's text content starting at row tl to w,
// eliding trailing blanks within a row, fully-blank trailing rows, and
// emitting grapheme extensions after their base codepoint.
func (s *Screen) DumpString(w io.Writer, tl int) error {
	cols := s.Pages.Cols()
	var out strings.Builder
	trailingBlankRows := 0

	for y := tl; y < s.Pages.Rows(); y++ {
		page, row, ok := s.Pages.GetCell(y, 0)
		if !ok {
			break
		}

		var line strings.Builder
		lastNonBlank := -1
		for c := 0; c < cols; c++ {
			cell := page.Cell(row, c)
			if cell.IsSpacer() {
				continue
			}
			if cell.IsEmpty() {
				line.WriteByte(' ')
				continue
			}
			line.WriteRune(cell.Codepoint())
			if cell.HasGrapheme() {
				if extra, ok := page.Graphemes().Lookup(page.CellAddr(row, c)); ok {
					for _, r := range extra {
						line.WriteRune(r)
					}
				}
			}
			lastNonBlank = line.Len()
		}

		text := line.String()
		if lastNonBlank >= 0 {
			text = text[:lastNonBlank]
		} else {
			text = ""
		}

		if text == "" {
			trailingBlankRows++
			continue
		}
		sep := out.Len() > 0
		for ; trailingBlankRows > 0; trailingBlankRows-- {
			out.WriteByte('\n')
		}
		if sep {
			out.WriteByte('\n')
		}
		out.WriteString(text)
	}

	_, err := io.WriteString(w, out.String())
	return err
}

// DumpViewport writes up to n rows of text content to w, starting at the
// page list's current viewport position (ViewportActive/ViewportTop/
// ViewportExact, set via Pages.SetViewport or Pages.ScrollViewport) rather
// than always the active area's top - the counterpart to DumpString for a
// host that has scrolled back into history.
func (s *Screen) DumpViewport(w io.Writer, n int) error {
	cols := s.Pages.Cols()
	off, ok := s.Pages.ResolveViewportRow(0)
	if !ok {
		_, err := io.WriteString(w, "")
		return err
	}

	var out strings.Builder
	trailingBlankRows := 0

	for i := 0; i < n; i++ {
		if i > 0 {
			off, ok = off.forward(1)
			if !ok {
				break
			}
		}
		page, row := off.node.page, off.row

		var line strings.Builder
		lastNonBlank := -1
		for c := 0; c < cols; c++ {
			cell := page.Cell(row, c)
			if cell.IsSpacer() {
				continue
			}
			if cell.IsEmpty() {
				line.WriteByte(' ')
				continue
			}
			line.WriteRune(cell.Codepoint())
			if cell.HasGrapheme() {
				if extra, ok := page.Graphemes().Lookup(page.CellAddr(row, c)); ok {
					for _, r := range extra {
						line.WriteRune(r)
					}
				}
			}
			lastNonBlank = line.Len()
		}

		text := line.String()
		if lastNonBlank >= 0 {
			text = text[:lastNonBlank]
		} else {
			text = ""
		}

		if text == "" {
			trailingBlankRows++
			continue
		}
		sep := out.Len() > 0
		for ; trailingBlankRows > 0; trailingBlankRows-- {
			out.WriteByte('\n')
		}
		if sep {
			out.WriteByte('\n')
		}
		out.WriteString(text)
	}

	_, err := io.WriteString(w, out.String())
	return err
}

// Clone deep-copies the screen: every page, the cursor, and saved-cursor
// state. Used when a host wants a point-in-time snapshot without holding
// the screen lock for the duration of a render.
func (s *Screen) Clone() *Screen {
	clone := &Screen{
		Cursor:  new(Cursor),
		palette: s.palette,
	}
	*clone.Cursor = *s.Cursor
	clone.Cursor.SetPendingStyle(s.Cursor.pendingStyle)
	if s.Saved != nil {
		saved := *s.Saved
		clone.Saved = &saved
	}

	pl := &PageList{
		cols:              s.Pages.cols,
		rows:              s.Pages.rows,
		maxScrollbackRows: s.Pages.maxScrollbackRows,
		nodePool:          newNodePool(),
		pagePool:          newPagePool(),
		viewport:          s.Pages.viewport,
	}
	var prev *pageNode
	rowsBeforeActive := 0
	for n := s.Pages.head; n != nil; n = n.next {
		cp := pl.nodePool.Get()
		cp.page = n.page.Clone()
		cp.prev = prev
		if prev != nil {
			prev.next = cp
		} else {
			pl.head = cp
		}
		prev = cp
		pl.totalRows += cp.page.Size()
		if n == s.Pages.activeTop.node {
			rowsBeforeActive = pl.totalRows - cp.page.Size() + s.Pages.activeTop.row
		}
	}
	pl.tail = prev
	pl.activeTop = RowOffset{}
	if off, ok := (RowOffset{node: pl.head, row: 0}).forward(rowsBeforeActive); ok {
		pl.activeTop = off
	}
	pl.viewportAt = pl.activeTop
	clone.Pages = pl
	clone.syncCursorCache()
	return clone
}
