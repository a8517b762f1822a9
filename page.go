package term

import (
	"github.com/google/uuid"
)

// Default per-page auxiliary capacities. These bound how many distinct
// styles and how much grapheme storage one page can hold before an
// operation must trigger PageList.Split.
const (
	DefaultMaxStyles      = 256
	DefaultGraphemeChunks = 1024
)

// styleEntryBudgetBytes approximates a style intern-table slot's footprint
// for capacity validation - it is never actually packed into bytes (the
// style set is a page-owned Go structure, see DESIGN.md), but every
// capacity decision still gets checked against MaxPageSize, so the check is
// honored with a realistic per-entry size.
const styleEntryBudgetBytes = 32

// graphemeChunkBytes is 4 codepoints * 4 bytes/rune.
const graphemeChunkBytes = graphemeChunkSize * 4

const rowBytes = 8
const cellBytes = 8

// PageCapacity is the declared capacity of a page: how many columns, how
// many rows it can grow to, how many distinct styles, and how much
// grapheme storage.
type PageCapacity struct {
	Cols           int
	Rows           int
	MaxStyles      int
	GraphemeChunks int
}

// footprint computes the byte size a packed arena with this capacity would
// require, mirroring a layout function (rows_start,
// cells_start, styles_start, grapheme_alloc_start, grapheme_map_start).
func (c PageCapacity) footprint() int {
	return c.Rows*rowBytes + c.Rows*c.Cols*cellBytes + c.MaxStyles*styleEntryBudgetBytes + c.GraphemeChunks*graphemeChunkBytes
}

// DeriveCapacity returns a capacity of minRows rows (at least 1) at cols
// columns plus the default style/grapheme budgets, capped at the largest
// row count that fits under MaxPageSize. It fails
// with ErrCapacityExceeded when cols alone is too wide to address even a
// single row.
func DeriveCapacity(cols, minRows int) (PageCapacity, error) {
	if cols <= 0 {
		cols = 1
	}

	fixed := DefaultMaxStyles*styleEntryBudgetBytes + DefaultGraphemeChunks*graphemeChunkBytes
	perRow := rowBytes + cols*cellBytes
	if perRow <= 0 || fixed+perRow > MaxPageSize {
		return PageCapacity{}, ErrCapacityExceeded
	}

	maxRows := (MaxPageSize - fixed) / perRow
	if maxRows < 1 {
		return PageCapacity{}, ErrCapacityExceeded
	}
	if minRows > maxRows {
		minRows = maxRows // capacity caps growth; PageList adds more pages instead
	}
	if minRows < 1 {
		minRows = 1
	}

	cap := PageCapacity{
		Cols:           cols,
		Rows:           minRows,
		MaxStyles:      DefaultMaxStyles,
		GraphemeChunks: DefaultGraphemeChunks,
	}
	if cap.footprint() > MaxPageSize {
		return PageCapacity{}, ErrCapacityExceeded
	}
	return cap, nil
}

// Page is a single page of the screen: a capacity-bounded grid of rows and
// cells plus its own style intern table and grapheme storage. A page could
// be one contiguous system-page-aligned arena holding all of these; here
// the row/cell strip - the part read on every render frame -
// is a flat, offset-addressed slice pair that can be bit-copied with
// copy(), while the style set and grapheme map are page-owned auxiliary
// structures (see DESIGN.md for why they are not folded into the same raw
// byte arena).
type Page struct {
	ID uuid.UUID

	cap  PageCapacity
	size int // rows currently in use, <= cap.Rows

	rows  []Row
	cells []Cell

	styles    *StyleSet
	graphemes *GraphemeMap
}

// NewPage allocates a page with the given capacity, sized to size rows
// (size <= capacity.Rows). The row/cell strip is zero-initialized, which is
// valid since the zero Cell is already empty/default/narrow, and then each
// row's cell-strip offset is written.
func NewPage(capacity PageCapacity, size int) (*Page, error) {
	return newPageFromPool(capacity, size, nil)
}

// newPageFromPool is NewPage's pool-aware sibling: PageList routes every
// allocation through its pagePool so a row/cell strip freed by
// pruneScrollback is handed back to the next grow() instead of to the GC.
// pool may be nil, in which case it behaves exactly like NewPage.
func newPageFromPool(capacity PageCapacity, size int, pool *pagePool) (*Page, error) {
	if capacity.footprint() > MaxPageSize {
		return nil, ErrCapacityExceeded
	}
	if size > capacity.Rows {
		size = capacity.Rows
	}
	if size < 0 {
		size = 0
	}

	var rows []Row
	var cells []Cell
	if pool != nil {
		buf := pool.Get(capacity.Rows, capacity.Rows*capacity.Cols)
		rows, cells = buf.rows, buf.cells
	} else {
		rows = make([]Row, capacity.Rows)
		cells = make([]Cell, capacity.Rows*capacity.Cols)
	}

	p := &Page{
		ID:        uuid.New(),
		cap:       capacity,
		size:      size,
		rows:      rows,
		cells:     cells,
		styles:    NewStyleSet(capacity.MaxStyles),
		graphemes: NewGraphemeMap(NewGraphemeAlloc(capacity.GraphemeChunks)),
	}
	for i := range p.rows {
		p.rows[i] = p.rows[i].withCells(offsetOf[cellTag](i * capacity.Cols))
	}
	return p, nil
}

// Reflow reallocates the page at a new column width, migrating each row's
// existing cells - truncated or padded to fit - along with the styles and
// grapheme clusters those cells reference. Rows are not re-wrapped across
// the width change; a row that was full at the old width simply gains or
// loses trailing columns. This is what lets PageList.Resize grow or shrink
// a terminal's column count without the cell strip's stride (set once at
// allocation) going stale against the new width.
func (p *Page) Reflow(newCols int) (*Page, error) {
	capacity, err := DeriveCapacity(newCols, p.cap.Rows)
	if err != nil {
		return nil, err
	}
	if capacity.Rows < p.size {
		capacity.Rows = p.size
		if capacity.footprint() > MaxPageSize {
			return nil, ErrCapacityExceeded
		}
	}

	np, err := NewPage(capacity, p.size)
	if err != nil {
		return nil, err
	}

	minCols := newCols
	if p.cap.Cols < minCols {
		minCols = p.cap.Cols
	}
	for r := 0; r < p.size; r++ {
		oldRow := p.Row(r)
		newRow := Row(0).withCells(np.Row(r).cells()).
			withWrap(oldRow.Wrap()).
			withWrapContinuation(oldRow.WrapContinuation())
		hasGrapheme := false
		hasStyled := false

		for c := 0; c < minCols; c++ {
			cell := p.Cell(r, c)
			if cell.HasStyle() {
				oldID := cell.StyleID()
				cell = cell.WithStyleID(0)
				if style, ok := p.styles.LookupID(oldID); ok && !style.IsDefault() {
					if id, _, err := np.styles.Upsert(style); err == nil {
						cell = cell.WithStyleID(id)
						hasStyled = true
					}
				}
			}
			if cell.HasGrapheme() {
				if codepoints, ok := p.Graphemes().Lookup(p.CellAddr(r, c)); ok {
					if err := np.Graphemes().Put(np.CellAddr(r, c), codepoints); err == nil {
						hasGrapheme = true
					}
				}
			}
			np.SetCell(r, c, cell)
		}

		newRow = newRow.withGrapheme(hasGrapheme).withStyled(hasStyled)
		np.SetRow(r, newRow)
	}
	np.ID = p.ID
	return np, nil
}

// Cols returns the page's fixed column count.
func (p *Page) Cols() int { return p.cap.Cols }

// Size returns the number of rows currently in use.
func (p *Page) Size() int { return p.size }

// Capacity returns the page's declared capacity.
func (p *Page) Capacity() PageCapacity { return p.cap }

// Grow increases the page's rows-in-use up to its capacity, returning the
// number of rows actually added.
func (p *Page) Grow(n int) int {
	avail := p.cap.Rows - p.size
	if n > avail {
		n = avail
	}
	p.size += n
	return n
}

func (p *Page) addr(row, col int) cellAddr {
	return cellAddr(int(p.rows[row].cells()) + col)
}

// Row returns the packed Row header at idx.
func (p *Page) Row(idx int) Row { return p.rows[idx] }

// SetRow overwrites the packed Row header at idx.
func (p *Page) SetRow(idx int, r Row) { p.rows[idx] = r }

// Cell returns the cell at (row, col).
func (p *Page) Cell(row, col int) Cell {
	return p.cells[p.addr(row, col)]
}

// SetCell overwrites the cell at (row, col).
func (p *Page) SetCell(row, col int, c Cell) {
	p.cells[p.addr(row, col)] = c
}

// CellAddr exposes the page-local address for (row, col), used as the
// grapheme map key.
func (p *Page) CellAddr(row, col int) cellAddr {
	return p.addr(row, col)
}

// Graphemes returns the page's grapheme map.
func (p *Page) Graphemes() *GraphemeMap { return p.graphemes }

// Styles returns the page's style intern table.
func (p *Page) Styles() *StyleSet { return p.styles }

// Stats summarizes a page's current occupancy for diagnostics and tests.
type Stats struct {
	RowsInUse    int
	StyledCells  int
	GraphemeRows int
	InternStyles int
}

// Stats computes a fresh occupancy summary by scanning rows in use.
func (p *Page) Stats() Stats {
	var s Stats
	s.RowsInUse = p.size
	s.InternStyles = p.styles.Len()
	for r := 0; r < p.size; r++ {
		if p.rows[r].Grapheme() {
			s.GraphemeRows++
		}
		base := int(p.rows[r].cells())
		for c := 0; c < p.cap.Cols; c++ {
			if p.cells[base+c].HasStyle() {
				s.StyledCells++
			}
		}
	}
	return s
}

// Clone deep-copies the page, including its style set and grapheme map
// contents. Used by Screen.Clone.
func (p *Page) Clone() *Page {
	cp := &Page{
		ID:    uuid.New(),
		cap:   p.cap,
		size:  p.size,
		rows:  append([]Row(nil), p.rows...),
		cells: append([]Cell(nil), p.cells...),
	}
	cp.styles = NewStyleSet(p.cap.MaxStyles)
	for id := uint16(1); id <= uint16(len(p.styles.entries)); id++ {
		if style, ok := p.styles.LookupID(id); ok && !style.IsDefault() {
			if ref := p.styles.RefPtr(id); ref != nil {
				cp.styles.entries = cp.styles.entries[:id]
				cp.styles.entries[id-1] = styleEntry{style: style, ref: *ref, occupied: true}
				cp.styles.index[style] = id
			}
		}
	}
	cp.graphemes = NewGraphemeMap(NewGraphemeAlloc(p.cap.GraphemeChunks))
	for addr, s := range p.graphemes.entries {
		codepoints := p.graphemes.alloc.Read(s)
		_ = cp.graphemes.Put(addr, codepoints)
	}
	return cp
}
