package colormath

import "testing"

func TestLuminanceBlackIsZero(t *testing.T) {
	if l := Luminance(RGB{0, 0, 0}); l != 0 {
		t.Fatalf("Luminance(black) = %v, want 0", l)
	}
}

func TestLuminanceWhiteIsOne(t *testing.T) {
	l := Luminance(RGB{255, 255, 255})
	if l < 0.999 || l > 1.001 {
		t.Fatalf("Luminance(white) = %v, want ~1", l)
	}
}

func TestContrastRatioBlackOnWhiteIsMax(t *testing.T) {
	r := ContrastRatio(RGB{0, 0, 0}, RGB{255, 255, 255})
	if r < 20.9 || r > 21.01 {
		t.Fatalf("ContrastRatio(black, white) = %v, want ~21", r)
	}
}

func TestContrastRatioIsSymmetric(t *testing.T) {
	a, b := RGB{10, 20, 30}, RGB{200, 190, 180}
	if ContrastRatio(a, b) != ContrastRatio(b, a) {
		t.Fatal("ContrastRatio must not depend on argument order")
	}
}

func TestContrastRatioSameColorIsOne(t *testing.T) {
	c := RGB{128, 64, 32}
	if r := ContrastRatio(c, c); r < 0.999 || r > 1.001 {
		t.Fatalf("ContrastRatio(c, c) = %v, want 1", r)
	}
}

func TestMinContrastForegroundAlreadyPasses(t *testing.T) {
	fg, bg := RGB{255, 255, 255}, RGB{0, 0, 0}
	got := MinContrastForeground(fg, bg, 4.5)
	if got != fg {
		t.Fatalf("MinContrastForeground with a passing pair = %+v, want unchanged %+v", got, fg)
	}
}

func TestMinContrastForegroundAdjustsLowContrastPair(t *testing.T) {
	fg, bg := RGB{130, 130, 130}, RGB{128, 128, 128}
	const min = 4.5
	if ContrastRatio(fg, bg) >= min {
		t.Fatal("test fixture must start below the requested minimum contrast")
	}
	got := MinContrastForeground(fg, bg, min)
	if r := ContrastRatio(got, bg); r < min {
		t.Fatalf("MinContrastForeground result has contrast %v against bg, want >= %v", r, min)
	}
}

func TestMinContrastForegroundPicksHigherContrastPole(t *testing.T) {
	fg, bg := RGB{0, 0, 0}, RGB{10, 10, 10}
	got := MinContrastForeground(fg, bg, 10)
	if r := ContrastRatio(got, bg); r < 10 {
		t.Fatalf("MinContrastForeground result has contrast %v against a dark bg, want >= 10 (should move toward white)", r)
	}
}
