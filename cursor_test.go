package term

import "testing"

func TestNewCursorDefaults(t *testing.T) {
	c := NewCursor()
	if c.X != 0 || c.Y != 0 {
		t.Fatalf("NewCursor position = (%d,%d), want (0,0)", c.X, c.Y)
	}
	if !c.Visible {
		t.Fatal("NewCursor must be visible")
	}
	if c.Style != CursorStyleBlinkingBlock {
		t.Fatalf("Style = %v, want CursorStyleBlinkingBlock", c.Style)
	}
}

func TestCursorResolvedStyleCaches(t *testing.T) {
	c := NewCursor()
	set := NewStyleSet(4)
	c.SetPendingStyle(Style{Flags: FlagBold})

	id1, ref1, err := c.ResolvedStyle(set)
	if err != nil {
		t.Fatalf("ResolvedStyle error: %v", err)
	}
	if id1 == 0 {
		t.Fatal("a non-default pending style must resolve to a nonzero id")
	}

	id2, ref2, err := c.ResolvedStyle(set)
	if err != nil {
		t.Fatalf("second ResolvedStyle error: %v", err)
	}
	if id2 != id1 || ref2 != ref1 {
		t.Fatal("ResolvedStyle must return the cached id/ref without re-upserting")
	}
	if set.Len() != 1 {
		t.Fatalf("StyleSet.Len() = %d, want 1 (cache must avoid duplicate interning)", set.Len())
	}
}

func TestCursorSetPendingStyleInvalidatesCache(t *testing.T) {
	c := NewCursor()
	set := NewStyleSet(4)

	c.SetPendingStyle(Style{Flags: FlagBold})
	id1, _, _ := c.ResolvedStyle(set)

	c.SetPendingStyle(Style{Flags: FlagItalic})
	id2, _, err := c.ResolvedStyle(set)
	if err != nil {
		t.Fatalf("ResolvedStyle after style change error: %v", err)
	}
	if id2 == id1 {
		t.Fatal("changing the pending style must invalidate the cached id")
	}
}

func TestCursorCacheRoundtrip(t *testing.T) {
	c := NewCursor()
	if _, _, ok := c.Cached(); ok {
		t.Fatal("a fresh cursor must have no cached page")
	}
	cap, _ := DeriveCapacity(10, 5)
	p, _ := NewPage(cap, 5)
	c.Cache(p, 2)
	page, row, ok := c.Cached()
	if !ok || page != p || row != 2 {
		t.Fatalf("Cached() = (%v,%d,%v), want (%v,2,true)", page, row, ok, p)
	}
	c.InvalidateCache()
	if _, _, ok := c.Cached(); ok {
		t.Fatal("InvalidateCache must clear the cached page")
	}
}

func TestCursorSaveRestore(t *testing.T) {
	c := NewCursor()
	c.X, c.Y = 5, 7
	c.SetPendingStyle(Style{Flags: FlagBold})
	c.OriginMode = true
	c.CharsetIdx = CharsetIndexG1
	c.PendingWrap = true

	saved := c.Save()

	c.X, c.Y = 0, 0
	c.SetPendingStyle(DefaultStyle)
	c.OriginMode = false
	c.CharsetIdx = CharsetIndexG0

	c.Restore(saved)
	if c.X != 5 || c.Y != 7 {
		t.Fatalf("Restore position = (%d,%d), want (5,7)", c.X, c.Y)
	}
	if c.PendingStyle().Flags != FlagBold {
		t.Fatal("Restore must reapply the saved pending style")
	}
	if !c.OriginMode {
		t.Fatal("Restore must reapply origin mode")
	}
	if c.CharsetIdx != CharsetIndexG1 {
		t.Fatal("Restore must reapply the charset index")
	}
	if c.PendingWrap {
		t.Fatal("Restore must clear pending wrap")
	}
}
