// Package term implements the paged, offset-addressed screen model behind
// a VT-class terminal emulator: a Page/PageList memory model with packed
// 64-bit Cell/Row words, a page-local style intern table, a bitmap-based
// grapheme cluster allocator, and a Screen/Terminal pair built on top of
// them.
//
// This package does not parse ANSI escape sequences, draw to a display, or
// talk to a PTY - it is a library that a higher-level decoder drives by
// calling typed methods ([Terminal.Print], [Terminal.Index],
// [Screen.SetAttribute], ...), and that a renderer reads from by borrowing
// a [Screen] under its own lock.
//
// # Memory model
//
// A [Page] is a capacity-bounded grid of [Row]/[Cell] words plus its own
// [StyleSet] and [GraphemeMap]. A [PageList] strings pages together in a
// doubly-linked list spanning scrollback and the active (on-screen) area;
// [RowOffset] addresses a row as (page, in-page row index) and knows how to
// walk forward/backward across page boundaries.
//
// # Screen and Terminal
//
//	screen, err := term.NewScreen(80, 24, 10000, term.NewDefaultPalette())
//	screen.Cursor.X, screen.Cursor.Y = 0, 0
//	screen.SetAttribute(term.SGRAttribute{Kind: term.SGRBold})
//
// [Terminal] wraps two [Screen]s (primary with scrollback, alternate
// without) plus the scrolling region, modes, tabstops, and palette that
// ANSI control sequences mutate:
//
//	t, err := term.New(term.WithSize(24, 80), term.WithScrollback(10000))
//	t.Print('H')
//	t.Print('i')
//	var buf bytes.Buffer
//	t.Active().DumpString(&buf, 0)
//
// # Concurrency
//
// Terminal's exported methods take a coarse lock; a Screen has no lock of
// its own. A Screen is owned by exactly one logical task at a time, and a
// concurrent reader (e.g. a renderer) that reads a Screen directly must
// hold its own lock for the duration of its read. The core declares this
// contract; it does not provide cross-goroutine scheduling beyond
// Terminal's lock.
package term
