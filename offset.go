package term

import "sync"

// OffsetInt is the integer width backing every in-page Offset. Sixteen bits
// matches the 64KiB page budget (MaxPageSize) so row and cell strips stay
// cheap to address and a page remains bit-copyable with copy().
type OffsetInt = uint16

// MaxPageSize is the fixed byte capacity of every page arena: large enough
// to hold a generous grid at common terminal sizes, small enough that
// OffsetInt never overflows.
const MaxPageSize = 65536

// Offset is a self-relative pointer: an element index into one of a page's
// backing slices. It carries a phantom type parameter so offsets into
// different regions (rows vs. cells) cannot be confused at compile time,
// even though the runtime representation is a plain uint16. Converting to
// data never dereferences a real pointer - callers index their own slice
// with the offset, which is what keeps a page relocatable: moving the arena to a new
// address never invalidates an Offset.
type Offset[T any] OffsetInt

// Int returns the offset as a plain int for slicing.
func (o Offset[T]) Int() int { return int(o) }

// offsetOf constructs an Offset from an int by plain conversion to
// OffsetInt; it does not check the range, so callers that can overflow
// (layout computation) check CapacityExceeded themselves before calling this.
func offsetOf[T any](n int) Offset[T] {
	return Offset[T](OffsetInt(n))
}

// rowTag and cellTag are phantom markers distinguishing RowOffset-into-arena
// addresses (rowSlot) from cell-strip addresses (cellSlot). They are never
// constructed; they exist only as Offset's type parameter.
type rowTag struct{}
type cellTag struct{}

// rowSlot addresses one packed Row word inside a page's arena.
type rowSlot = Offset[rowTag]

// cellSlot addresses the start of a row's cell strip inside a page's arena.
type cellSlot = Offset[cellTag]

// nodePool issues linked-list nodes for PageList. Nodes are small and fixed
// size, so a plain sync.Pool of *pageNode is enough.
type nodePool struct {
	pool sync.Pool
}

func newNodePool() *nodePool {
	return &nodePool{
		pool: sync.Pool{
			New: func() any { return &pageNode{} },
		},
	}
}

func (p *nodePool) Get() *pageNode {
	n := p.pool.Get().(*pageNode)
	*n = pageNode{}
	return n
}

func (p *nodePool) Put(n *pageNode) {
	p.pool.Put(n)
}

// pageBuffers holds one page's row/cell backing slices, the unit pagePool
// recycles. Reusing these across prune/grow cycles means a terminal that
// holds its row and scrollback counts steady never grows the Go heap after
// its initial pages are allocated.
type pageBuffers struct {
	rows  []Row
	cells []Cell
}

// pagePool recycles dropped pages' row/cell backing slices so PageList.grow
// and PageList.init reuse an arena instead of allocating a fresh one,
// mirroring PageList.pruneScrollback's contract that a pruned page's memory
// returns to the pool, not the OS.
type pagePool struct {
	pool sync.Pool
}

func newPagePool() *pagePool {
	return &pagePool{
		pool: sync.Pool{
			New: func() any { return new(pageBuffers) },
		},
	}
}

// Get returns a pageBuffers sized for rowCap rows and cellCap cells,
// zeroed, reusing a pooled buffer's backing array when it is already large
// enough.
func (p *pagePool) Get(rowCap, cellCap int) *pageBuffers {
	b := p.pool.Get().(*pageBuffers)
	if cap(b.rows) < rowCap {
		b.rows = make([]Row, rowCap)
	} else {
		b.rows = b.rows[:rowCap]
		for i := range b.rows {
			b.rows[i] = 0
		}
	}
	if cap(b.cells) < cellCap {
		b.cells = make([]Cell, cellCap)
	} else {
		b.cells = b.cells[:cellCap]
		for i := range b.cells {
			b.cells[i] = 0
		}
	}
	return b
}

// Put returns a page's row/cell slices to the pool.
func (p *pagePool) Put(b *pageBuffers) {
	p.pool.Put(b)
}
