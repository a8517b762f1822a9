package term

import "testing"

func TestNewDefaultPaletteANSIColors(t *testing.T) {
	p := NewDefaultPalette()
	if got := p.Entry(0); got != (RGB{0, 0, 0}) {
		t.Fatalf("Entry(0) = %+v, want black", got)
	}
	if got := p.Entry(15); got != (RGB{255, 255, 255}) {
		t.Fatalf("Entry(15) = %+v, want white", got)
	}
}

func TestNewDefaultPaletteColorCube(t *testing.T) {
	p := NewDefaultPalette()
	// Index 16 is the cube's (0,0,0) corner; index 231 is (5,5,5).
	if got := p.Entry(16); got != (RGB{0, 0, 0}) {
		t.Fatalf("Entry(16) = %+v, want {0,0,0}", got)
	}
	if got := p.Entry(231); got != (RGB{255, 255, 255}) {
		t.Fatalf("Entry(231) = %+v, want {255,255,255}", got)
	}
}

func TestNewDefaultPaletteGrayscaleRamp(t *testing.T) {
	p := NewDefaultPalette()
	first := p.Entry(232)
	last := p.Entry(255)
	if first.R != 8 {
		t.Fatalf("Entry(232).R = %d, want 8", first.R)
	}
	if last.R != 8+23*10 {
		t.Fatalf("Entry(255).R = %d, want %d", last.R, 8+23*10)
	}
	if first.R != first.G || first.G != first.B {
		t.Fatal("grayscale ramp entries must have equal R/G/B")
	}
}

func TestPaletteSetEntry(t *testing.T) {
	p := NewDefaultPalette()
	p.SetEntry(5, RGB{1, 2, 3})
	if got := p.Entry(5); got != (RGB{1, 2, 3}) {
		t.Fatalf("Entry(5) after SetEntry = %+v, want {1,2,3}", got)
	}
}

func TestPaletteDefaultFgBg(t *testing.T) {
	p := NewDefaultPalette()
	p.SetDefaultFg(RGB{10, 20, 30})
	p.SetDefaultBg(RGB{40, 50, 60})
	if got := p.DefaultFg(); got != (RGB{10, 20, 30}) {
		t.Fatalf("DefaultFg() = %+v, want {10,20,30}", got)
	}
	if got := p.DefaultBg(); got != (RGB{40, 50, 60}) {
		t.Fatalf("DefaultBg() = %+v, want {40,50,60}", got)
	}
}
