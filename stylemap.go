package term

// styleEntry is one slot in a StyleSet's fixed-capacity backing array. The
// array never reallocates after construction, which is what lets a cursor
// safely cache a *uint32 into entries[id-1].ref across many cell writes
// (the cursor caches a direct style_ref pointer).
type styleEntry struct {
	style    Style
	ref      uint32
	occupied bool
}

// StyleSet is a page-local open-addressed intern table mapping full Style
// values to a small {id, ref} pair. Id 0 is reserved for the default style
// and is never stored here - a cell with style id 0 always means
// DefaultStyle. The open addressing itself is delegated to Go's native map,
// which is the idiomatic stand-in for a hand-rolled hash set; what actually
// matters - O(1) id<->value lookup, stable ids while an entry lives,
// refcounted removal - is preserved exactly.
type StyleSet struct {
	entries []styleEntry
	index   map[Style]uint16
	free    []uint16
}

// NewStyleSet creates a style set with a fixed capacity. Capacity is
// derived from the page's layout and never grows -
// Upsert returns ErrStyleSetFull once it is exhausted.
func NewStyleSet(capacity int) *StyleSet {
	return &StyleSet{
		entries: make([]styleEntry, 0, capacity),
		index:   make(map[Style]uint16, capacity),
	}
}

// Cap returns the maximum number of distinct non-default styles this set
// can hold.
func (s *StyleSet) Cap() int { return cap(s.entries) }

// Len returns the number of distinct non-default styles currently interned.
func (s *StyleSet) Len() int {
	return len(s.index)
}

// Upsert interns style, returning its page-local id and a stable pointer to
// its refcount, and bumps that refcount by one - each call represents one
// more cell now referencing the style. Calling Upsert again for an
// already-interned style increments the refcount and returns the same id.
// Style.IsDefault() always returns (0, nil, nil) without touching the
// table. Callers that need a style's id/ref without claiming a reference
// (resolving the cursor's pending style ahead of any cell actually being
// written) want Resolve instead.
func (s *StyleSet) Upsert(style Style) (uint16, *uint32, error) {
	id, ref, err := s.Resolve(style)
	if err != nil || ref == nil {
		return id, ref, err
	}
	*ref++
	return id, ref, nil
}

// Resolve interns style if it is not already present, returning its
// page-local id and a stable pointer to its refcount, without touching that
// refcount. A freshly interned style starts at ref 0 - it becomes eligible
// for GC the moment nothing has printed it yet, which is what keeps it from
// outliving the text that would have justified a non-zero reference.
// Style.IsDefault() always returns (0, nil, nil) without touching the
// table.
func (s *StyleSet) Resolve(style Style) (uint16, *uint32, error) {
	if style.IsDefault() {
		return 0, nil, nil
	}

	if id, ok := s.index[style]; ok {
		e := &s.entries[id-1]
		return id, &e.ref, nil
	}

	var id uint16
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		if len(s.entries) >= cap(s.entries) {
			return 0, nil, ErrStyleSetFull
		}
		s.entries = append(s.entries, styleEntry{})
		id = uint16(len(s.entries))
	}

	e := &s.entries[id-1]
	*e = styleEntry{style: style, ref: 0, occupied: true}
	s.index[style] = id
	return id, &e.ref, nil
}

// LookupID returns the Style interned under id. Id 0 returns DefaultStyle.
func (s *StyleSet) LookupID(id uint16) (Style, bool) {
	if id == 0 {
		return DefaultStyle, true
	}
	if int(id) > len(s.entries) {
		return Style{}, false
	}
	e := &s.entries[id-1]
	if !e.occupied {
		return Style{}, false
	}
	return e.style, true
}

// RefPtr returns the stable refcount pointer for id, or nil for id 0 or an
// unoccupied slot.
func (s *StyleSet) RefPtr(id uint16) *uint32 {
	if id == 0 || int(id) > len(s.entries) {
		return nil
	}
	e := &s.entries[id-1]
	if !e.occupied {
		return nil
	}
	return &e.ref
}

// Remove frees id's slot, making it eligible for reuse by a later Upsert.
// Removing id 0 or an already-free slot is a no-op.
func (s *StyleSet) Remove(id uint16) {
	if id == 0 || int(id) > len(s.entries) {
		return
	}
	e := &s.entries[id-1]
	if !e.occupied {
		return
	}
	delete(s.index, e.style)
	*e = styleEntry{}
	s.free = append(s.free, id)
}

// GC sweeps every occupied entry whose refcount has reached zero and frees
// it. Style removal is lazy by default: Screen.manualStyleUpdate only
// removes the style id it just displaced. GC gives a host a deterministic
// sweep point (e.g. before serializing a page) instead of waiting for the
// next style transition to touch each tombstone. Returns the number of
// entries removed.
func (s *StyleSet) GC() int {
	removed := 0
	for id := 1; id <= len(s.entries); id++ {
		e := &s.entries[id-1]
		if e.occupied && e.ref == 0 {
			delete(s.index, e.style)
			*e = styleEntry{}
			s.free = append(s.free, uint16(id))
			removed++
		}
	}
	return removed
}
