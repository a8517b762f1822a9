package term

// graphemeChunkSize is the number of codepoints in one allocator chunk (4
// codepoints = 16 bytes).
const graphemeChunkSize = 4

// cellAddr is a page-local cell address: row*cols+col. It stands in for a
// literal in-page byte offset as the grapheme map key - the addressing
// contract (a cell's extra codepoints are found by this cell's own
// address, nothing else) is what matters, not the specific encoding.
type cellAddr int

// graphemeSlice locates one cluster's extra codepoints inside a
// GraphemeAlloc's backing storage.
type graphemeSlice struct {
	startChunk int
	numChunks  int
	length     int // codepoints actually in use, <= numChunks*graphemeChunkSize
}

// GraphemeAlloc is a bitmap-based small-object allocator for grapheme
// cluster codepoints. It grows its backing arena to exactly the chunk count
// a request needs as chunks run out, rather than failing outright, since a page's grapheme
// storage is sized generously but not unbounded - ErrGraphemeStorageFull is
// returned once the configured maximum is reached.
type GraphemeAlloc struct {
	arena     []rune
	used      []bool // one entry per chunk
	chunkSize int
	maxChunks int
}

// NewGraphemeAlloc creates an allocator capped at maxChunks chunks (i.e.
// maxChunks*graphemeChunkSize codepoints total).
func NewGraphemeAlloc(maxChunks int) *GraphemeAlloc {
	return &GraphemeAlloc{
		chunkSize: graphemeChunkSize,
		maxChunks: maxChunks,
	}
}

func (a *GraphemeAlloc) ensureCapacity(chunks int) {
	need := chunks * a.chunkSize
	if len(a.arena) >= need {
		return
	}
	grown := make([]rune, need)
	copy(grown, a.arena)
	a.arena = grown
	growUsed := make([]bool, chunks)
	copy(growUsed, a.used)
	a.used = growUsed
}

// Alloc reserves enough chunks to hold n codepoints and returns the slice
// descriptor. Returns ErrGraphemeStorageFull if no contiguous run of free
// chunks fits within maxChunks.
func (a *GraphemeAlloc) Alloc(n int) (graphemeSlice, error) {
	need := (n + a.chunkSize - 1) / a.chunkSize
	if need == 0 {
		need = 1
	}

	start, ok := a.findFree(need)
	if !ok {
		return graphemeSlice{}, ErrGraphemeStorageFull
	}

	a.ensureCapacity(start + need)
	for i := start; i < start+need; i++ {
		a.used[i] = true
	}
	return graphemeSlice{startChunk: start, numChunks: need, length: n}, nil
}

func (a *GraphemeAlloc) findFree(need int) (int, bool) {
	run := 0
	start := 0
	limit := len(a.used)
	if limit < a.maxChunks {
		limit = a.maxChunks
	}
	for i := 0; i < limit; i++ {
		free := i >= len(a.used) || !a.used[i]
		if free {
			if run == 0 {
				start = i
			}
			run++
			if run == need {
				if start+need > a.maxChunks {
					return 0, false
				}
				return start, true
			}
		} else {
			run = 0
		}
	}
	return 0, false
}

// Free releases the chunks backing slice.
func (a *GraphemeAlloc) Free(s graphemeSlice) {
	for i := s.startChunk; i < s.startChunk+s.numChunks && i < len(a.used); i++ {
		a.used[i] = false
	}
}

// Read returns the codepoints stored in slice s.
func (a *GraphemeAlloc) Read(s graphemeSlice) []rune {
	base := s.startChunk * a.chunkSize
	return a.arena[base : base+s.length]
}

// GraphemeMap associates a cell address with its grapheme cluster's extra
// codepoints, keyed by the cell's in-page offset. A Go map is the idiomatic
// open-addressed hash here.
type GraphemeMap struct {
	alloc   *GraphemeAlloc
	entries map[cellAddr]graphemeSlice
}

// NewGraphemeMap creates a grapheme map backed by alloc.
func NewGraphemeMap(alloc *GraphemeAlloc) *GraphemeMap {
	return &GraphemeMap{alloc: alloc, entries: make(map[cellAddr]graphemeSlice)}
}

// Len returns the number of cells currently owning grapheme storage.
func (m *GraphemeMap) Len() int { return len(m.entries) }

// Lookup returns the extra codepoints (beyond the cell's own base
// codepoint) attached to addr.
func (m *GraphemeMap) Lookup(addr cellAddr) ([]rune, bool) {
	s, ok := m.entries[addr]
	if !ok {
		return nil, false
	}
	return m.alloc.Read(s), true
}

// Put allocates storage for codepoints and associates it with addr,
// freeing any previous allocation for that address first.
func (m *GraphemeMap) Put(addr cellAddr, codepoints []rune) error {
	m.Delete(addr)
	s, err := m.alloc.Alloc(len(codepoints))
	if err != nil {
		return err
	}
	copy(m.alloc.Read(s), codepoints)
	m.entries[addr] = s
	return nil
}

// Append grows the cluster at addr by one codepoint, reallocating storage
// if the current chunk run cannot hold it in place.
func (m *GraphemeMap) Append(addr cellAddr, r rune) error {
	existing, ok := m.entries[addr]
	if !ok {
		return m.Put(addr, []rune{r})
	}

	if existing.length < existing.numChunks*m.alloc.chunkSize {
		base := existing.startChunk * m.alloc.chunkSize
		m.alloc.arena[base+existing.length] = r
		existing.length++
		m.entries[addr] = existing
		return nil
	}

	cur := m.alloc.Read(existing)
	grown := make([]rune, len(cur)+1)
	copy(grown, cur)
	grown[len(cur)] = r
	return m.Put(addr, grown)
}

// Delete frees addr's grapheme storage, if any.
func (m *GraphemeMap) Delete(addr cellAddr) {
	if s, ok := m.entries[addr]; ok {
		m.alloc.Free(s)
		delete(m.entries, addr)
	}
}
