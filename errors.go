package term

import "errors"

// Sentinel errors forming the core's error taxonomy. Callers compare
// with errors.Is; wrapped context (which page, which row) is added with
// fmt.Errorf("...: %w", ...) at the call site.
var (
	// ErrStyleSetFull means a page's style intern table has no free slot
	// and cannot accept a new entry; the caller must split the page
	// (PageList.Split) to recover.
	ErrStyleSetFull = errors.New("term: style set full")

	// ErrGraphemeStorageFull means a page's grapheme bitmap allocator has
	// no free chunk large enough for the requested cluster.
	ErrGraphemeStorageFull = errors.New("term: grapheme storage full")

	// ErrCapacityExceeded means the requested column count cannot be
	// addressed within MaxPageSize using OffsetInt.
	ErrCapacityExceeded = errors.New("term: capacity exceeded")

	// ErrInvalidFormat means an SGR or color parameter sequence could not
	// be parsed at the string boundary.
	ErrInvalidFormat = errors.New("term: invalid format")

	// ErrInvalidCoordinate is returned by APIs that cannot silently return
	// a zero value for an out-of-range coordinate (most lookups instead
	// return ok=false rather than panicking).
	ErrInvalidCoordinate = errors.New("term: invalid coordinate")
)
