package term

// pageNode is one node of the page linked list. It is pooled (nodePool) so
// repeated split/prune/grow cycles do not churn the allocator.
type pageNode struct {
	page *Page
	prev *pageNode
	next *pageNode
}

// ViewportState selects which window into the page list RowOffset
// arithmetic is relative to.
type ViewportState uint8

const (
	// ViewportActive pins the viewport to the active (on-screen) area.
	ViewportActive ViewportState = iota
	// ViewportTop pins the viewport to the top of scrollback.
	ViewportTop
	// ViewportExact pins the viewport to a caller-chosen RowOffset.
	ViewportExact
)

// RowOffset is a logical point in the page list's row space: a node plus a
// row index within that node's page. forward/backward walk the linked list,
// crossing page boundaries as needed, which is the O(1)-amortized
// alternative to a single flat row index.
type RowOffset struct {
	node *pageNode
	row  int
}

// Valid reports whether the offset still names a live row.
func (o RowOffset) Valid() bool { return o.node != nil }

// forward advances the offset by n rows, crossing page boundaries, and
// reports false if it ran past the end of the list.
func (o RowOffset) forward(n int) (RowOffset, bool) {
	cur := o
	for n > 0 {
		if cur.node == nil {
			return RowOffset{}, false
		}
		remaining := cur.node.page.Size() - cur.row
		if n < remaining {
			cur.row += n
			return cur, true
		}
		n -= remaining
		cur.node = cur.node.next
		cur.row = 0
	}
	return cur, cur.node != nil
}

// backward retreats the offset by n rows, crossing page boundaries, and
// reports false if it ran past the start of the list.
func (o RowOffset) backward(n int) (RowOffset, bool) {
	cur := o
	for n > 0 {
		if cur.row >= n {
			cur.row -= n
			return cur, true
		}
		n -= cur.row + 1
		cur.node = cur.node.prev
		if cur.node == nil {
			return RowOffset{}, false
		}
		cur.row = cur.node.page.Size() - 1
	}
	return cur, true
}

// PageList is a doubly-linked list of pages spanning the scrollback and the
// active (on-screen) area. The active area starts at activeTop and spans
// rows rows; everything before it is history.
type PageList struct {
	cols int
	rows int // active area height

	maxScrollbackRows int

	head *pageNode
	tail *pageNode

	totalRows int // rows currently stored across every page

	nodePool *nodePool
	pagePool *pagePool

	viewport     ViewportState
	viewportAt   RowOffset
	activeTop    RowOffset // first row of the active area
}

// NewPageList creates a page list with one initial page sized for rows x
// cols, and room to scroll back maxScrollback additional rows.
func NewPageList(cols, rows, maxScrollback int) (*PageList, error) {
	pl := &PageList{
		cols:              cols,
		rows:              rows,
		maxScrollbackRows: maxScrollback,
		nodePool:          newNodePool(),
		pagePool:          newPagePool(),
		viewport:          ViewportActive,
	}
	if err := pl.init(); err != nil {
		return nil, err
	}
	return pl, nil
}

func (pl *PageList) init() error {
	capacity, err := DeriveCapacity(pl.cols, pl.rows)
	if err != nil {
		return err
	}
	page, err := newPageFromPool(capacity, pl.rows, pl.pagePool)
	if err != nil {
		return err
	}
	n := pl.nodePool.Get()
	n.page = page
	pl.head = n
	pl.tail = n
	pl.totalRows = page.Size()
	pl.activeTop = RowOffset{node: n, row: page.Size() - pl.rows}
	pl.viewportAt = pl.activeTop
	return nil
}

// Cols returns the active area's column count.
func (pl *PageList) Cols() int { return pl.cols }

// Rows returns the active area's row count.
func (pl *PageList) Rows() int { return pl.rows }

// TotalRows returns the number of rows stored across every page
// (scrollback + active area).
func (pl *PageList) TotalRows() int { return pl.totalRows }

// grow appends a freshly allocated page to the tail, sized to the active
// area's column count, and returns it.
func (pl *PageList) grow() (*pageNode, error) {
	capacity, err := DeriveCapacity(pl.cols, pl.rows)
	if err != nil {
		return nil, err
	}
	page, err := newPageFromPool(capacity, 0, pl.pagePool)
	if err != nil {
		return nil, err
	}
	n := pl.nodePool.Get()
	n.page = page
	n.prev = pl.tail
	if pl.tail != nil {
		pl.tail.next = n
	}
	pl.tail = n
	if pl.head == nil {
		pl.head = n
	}
	return n, nil
}

// AppendRows makes n more rows available at the tail, growing the last page
// in place or allocating new tail pages as needed, then pruning scrollback
// over budget. It returns the RowOffset of the first newly available row.
func (pl *PageList) AppendRows(n int) (RowOffset, error) {
	first := RowOffset{}
	for n > 0 {
		if pl.tail == nil {
			if err := pl.init(); err != nil {
				return RowOffset{}, err
			}
		}
		avail := pl.tail.page.Capacity().Rows - pl.tail.page.Size()
		if avail == 0 {
			if _, err := pl.grow(); err != nil {
				return RowOffset{}, err
			}
			continue
		}
		take := n
		if take > avail {
			take = avail
		}
		startRow := pl.tail.page.Size()
		pl.tail.page.Grow(take)
		if !first.Valid() {
			first = RowOffset{node: pl.tail, row: startRow}
		}
		pl.totalRows += take
		n -= take
	}
	pl.pruneScrollback()
	return first, nil
}

// pruneScrollback drops whole pages from the front once stored history
// exceeds maxScrollbackRows, returning their arenas to pagePool and their
// list nodes to nodePool rather than to the OS.
func (pl *PageList) pruneScrollback() {
	for {
		historyRows := pl.totalRows - pl.rows
		if historyRows <= pl.maxScrollbackRows {
			return
		}
		if pl.head == nil || pl.head == pl.tail {
			return
		}
		excess := historyRows - pl.maxScrollbackRows
		headRows := pl.head.page.Size()
		if headRows > excess {
			return // a partial-page prune would move the head's own rows; leave it
		}
		dropped := pl.head
		pl.head = dropped.next
		if pl.head != nil {
			pl.head.prev = nil
		}
		pl.totalRows -= headRows
		if pl.pagePool != nil {
			pl.pagePool.Put(&pageBuffers{rows: dropped.page.rows, cells: dropped.page.cells})
		}
		pl.nodePool.Put(dropped)
	}
}

// ResolveViewportRow resolves a viewport-relative row index to an absolute
// RowOffset, honoring the list's current ViewportState.
func (pl *PageList) ResolveViewportRow(relativeRow int) (RowOffset, bool) {
	var base RowOffset
	switch pl.viewport {
	case ViewportTop:
		base = RowOffset{node: pl.head, row: 0}
	case ViewportExact:
		base = pl.viewportAt
	default:
		base = pl.activeTop
	}
	if relativeRow == 0 {
		return base, base.Valid()
	}
	if relativeRow > 0 {
		return base.forward(relativeRow)
	}
	return base.backward(-relativeRow)
}

// SetViewport switches which coordinate space ResolveViewportRow resolves
// against.
func (pl *PageList) SetViewport(state ViewportState, at RowOffset) {
	pl.viewport = state
	if state == ViewportExact {
		pl.viewportAt = at
	}
}

// rowIndex returns off's distance, in rows, from the head of the list. Used
// only to clamp ScrollViewport's target within the stored history - not a
// hot path, so a linear walk from head is fine.
func (pl *PageList) rowIndex(off RowOffset) int {
	idx := 0
	for n := pl.head; n != nil && n != off.node; n = n.next {
		idx += n.page.Size()
	}
	return idx + off.row
}

// ScrollViewport moves the viewport by delta rows relative to its current
// position - negative scrolls back into history, positive scrolls toward
// the present - switching to ViewportExact and clamping the result between
// row 0 (the oldest stored row) and the active area's top row (the newest
// point scrollback can reach). This is the paged allocator's scroll(delta)
// operation: Terminal.ScrollViewport and cmd/termdump's "scroll" directive
// are both thin wrappers over it.
func (pl *PageList) ScrollViewport(delta int) {
	var base RowOffset
	switch pl.viewport {
	case ViewportTop:
		base = RowOffset{node: pl.head, row: 0}
	case ViewportExact:
		base = pl.viewportAt
	default:
		base = pl.activeTop
	}

	target := pl.rowIndex(base) + delta
	if target < 0 {
		target = 0
	}
	if max := pl.rowIndex(pl.activeTop); target > max {
		target = max
	}
	if target < 0 {
		target = 0
	}

	off, ok := (RowOffset{node: pl.head, row: 0}).forward(target)
	if !ok {
		off = pl.activeTop
	}
	pl.viewport = ViewportExact
	pl.viewportAt = off
}

// ActiveTop returns the RowOffset of the active area's first row.
func (pl *PageList) ActiveTop() RowOffset { return pl.activeTop }

// GetCell resolves (row, col) - row relative to the active area's top - to
// the underlying page and in-page coordinates.
func (pl *PageList) GetCell(row, col int) (page *Page, pageRow int, ok bool) {
	off, ok := pl.activeTop.forward(row)
	if !ok || col < 0 || col >= pl.cols {
		return nil, 0, false
	}
	return off.node.page, off.row, true
}

// RowIterator yields RowOffsets starting at from and advancing one row at a
// time until the list is exhausted.
type RowIterator struct {
	cur RowOffset
	ok  bool
}

// RowIterator returns an iterator starting at from.
func (pl *PageList) RowIterator(from RowOffset) *RowIterator {
	return &RowIterator{cur: from, ok: from.Valid()}
}

// Next advances the iterator, returning the row it now points at.
func (it *RowIterator) Next() (RowOffset, bool) {
	if !it.ok {
		return RowOffset{}, false
	}
	cur := it.cur
	next, ok := cur.forward(1)
	it.cur = next
	it.ok = ok
	return cur, true
}

// Resize changes the active area's dimensions in place. A column-count
// change reallocates every existing page's cell strip at the new width
// first (reflowCols), since a page's stride is fixed at allocation time -
// leaving it at the old width while GetCell/print address it with the new,
// wider pl.cols would walk past the end of a row's cell slice. Only once
// every page agrees with pl.cols does this adjust how many tail rows count
// as "active".
func (pl *PageList) Resize(cols, rows int) error {
	if cols != pl.cols {
		if err := pl.reflowCols(cols); err != nil {
			return err
		}
		pl.cols = cols
	}
	pl.rows = rows
	if pl.totalRows < rows {
		if _, err := pl.AppendRows(rows - pl.totalRows); err != nil {
			return err
		}
	}
	off, ok := RowOffset{node: pl.tail, row: pl.tail.page.Size() - 1}.backward(rows - 1)
	if !ok {
		off = RowOffset{node: pl.head, row: 0}
	}
	pl.activeTop = off
	return nil
}

// reflowCols reallocates every page in the list at newCols via Page.Reflow,
// migrating each row's cells, interned styles, and grapheme clusters.
func (pl *PageList) reflowCols(newCols int) error {
	for n := pl.head; n != nil; n = n.next {
		next, err := n.page.Reflow(newCols)
		if err != nil {
			return err
		}
		n.page = next
	}
	return nil
}

// Split carves the page at node into two: rows [0, atRow) stay in node's
// page, rows [atRow, size) move into a freshly allocated page spliced in
// immediately after it. This is the page list's recovery mechanism when a
// page-local table (styles or graphemes) reports itself full mid-operation,
// the expected response to ErrStyleSetFull/ErrGraphemeStorageFull.
func (pl *PageList) Split(n *pageNode, atRow int) (*pageNode, error) {
	src := n.page
	if atRow <= 0 || atRow >= src.Size() {
		return nil, ErrInvalidCoordinate
	}

	tailRows := src.Size() - atRow
	capacity, err := DeriveCapacity(pl.cols, tailRows)
	if err != nil {
		return nil, err
	}
	newPage, err := newPageFromPool(capacity, tailRows, pl.pagePool)
	if err != nil {
		return nil, err
	}
	for r := 0; r < tailRows; r++ {
		newPage.SetRow(r, src.Row(atRow+r).withCells(newPage.Row(r).cells()))
		for c := 0; c < pl.cols; c++ {
			cell := src.Cell(atRow+r, c)
			if cell.HasStyle() {
				style, _ := src.Styles().LookupID(cell.StyleID())
				id, _, _ := newPage.Styles().Upsert(style)
				cell = cell.WithStyleID(id)
			}
			newPage.SetCell(r, c, cell)
			if gph, ok := src.Graphemes().Lookup(src.CellAddr(atRow+r, c)); ok {
				_ = newPage.Graphemes().Put(newPage.CellAddr(r, c), gph)
			}
		}
	}

	newNode := pl.nodePool.Get()
	newNode.page = newPage
	newNode.prev = n
	newNode.next = n.next
	if n.next != nil {
		n.next.prev = newNode
	} else {
		pl.tail = newNode
	}
	n.next = newNode

	src.size = atRow
	return newNode, nil
}
