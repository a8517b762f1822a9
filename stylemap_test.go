package term

import "testing"

func TestStyleSetDefaultStyleIsID0(t *testing.T) {
	s := NewStyleSet(4)
	id, ref, err := s.Upsert(DefaultStyle)
	if err != nil {
		t.Fatalf("Upsert(DefaultStyle) error: %v", err)
	}
	if id != 0 || ref != nil {
		t.Fatalf("Upsert(DefaultStyle) = (%d, %v), want (0, nil)", id, ref)
	}
	if s.Len() != 0 {
		t.Fatalf("default style must not occupy a slot, Len() = %d", s.Len())
	}
}

func TestStyleSetInternAndRefcount(t *testing.T) {
	s := NewStyleSet(4)
	bold := Style{Flags: FlagBold}

	id1, ref1, err := s.Upsert(bold)
	if err != nil {
		t.Fatalf("first Upsert error: %v", err)
	}
	if id1 == 0 || *ref1 != 1 {
		t.Fatalf("expected (nonzero id, ref=1), got (%d, %d)", id1, *ref1)
	}

	id2, ref2, err := s.Upsert(bold)
	if err != nil {
		t.Fatalf("second Upsert error: %v", err)
	}
	if id2 != id1 {
		t.Fatalf("re-interning the same style must return the same id: %d != %d", id2, id1)
	}
	if *ref2 != 2 {
		t.Fatalf("second Upsert must bump refcount to 2, got %d", *ref2)
	}
	if ref1 != ref2 {
		t.Fatal("ref pointer must stay stable across Upserts of the same style")
	}
}

func TestStyleSetFullOnCapacity(t *testing.T) {
	s := NewStyleSet(1)
	if _, _, err := s.Upsert(Style{Flags: FlagBold}); err != nil {
		t.Fatalf("first Upsert within capacity should succeed: %v", err)
	}
	if _, _, err := s.Upsert(Style{Flags: FlagItalic}); err != ErrStyleSetFull {
		t.Fatalf("Upsert past capacity = %v, want ErrStyleSetFull", err)
	}
}

func TestStyleSetRemoveFreesSlotForReuse(t *testing.T) {
	s := NewStyleSet(1)
	id, _, _ := s.Upsert(Style{Flags: FlagBold})
	s.Remove(id)
	if _, ok := s.LookupID(id); ok {
		t.Fatal("LookupID after Remove must report not-found")
	}
	newID, _, err := s.Upsert(Style{Flags: FlagItalic})
	if err != nil {
		t.Fatalf("Upsert after Remove should reuse the freed slot: %v", err)
	}
	if newID != id {
		t.Fatalf("expected Remove to free id %d for reuse, got new id %d", id, newID)
	}
}

func TestStyleSetGCSweepsZeroRefEntries(t *testing.T) {
	s := NewStyleSet(2)
	id, ref, _ := s.Upsert(Style{Flags: FlagBold})
	*ref = 0

	removed := s.GC()
	if removed != 1 {
		t.Fatalf("GC() removed = %d, want 1", removed)
	}
	if _, ok := s.LookupID(id); ok {
		t.Fatal("GC must remove a zero-ref entry")
	}
}

func TestStyleSetLookupIDZeroIsDefault(t *testing.T) {
	s := NewStyleSet(4)
	style, ok := s.LookupID(0)
	if !ok || !style.IsDefault() {
		t.Fatalf("LookupID(0) = (%+v, %v), want (DefaultStyle, true)", style, ok)
	}
}
