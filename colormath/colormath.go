// Package colormath implements color utilities kept separate from the core
// screen model: W3C relative luminance, contrast ratio, and an
// iterative minimum-contrast-adjusted foreground search. Color blending
// rides on go-colorful rather than hand-rolled linear-RGB interpolation.
package colormath

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a plain 8-bit-per-channel color triple, matching the core
// package's color representation at the package boundary.
type RGB struct {
	R, G, B uint8
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Luminance returns the W3C relative luminance of c, in [0, 1].
func Luminance(c RGB) float64 {
	return relativeLuminance(c)
}

// ContrastRatio returns the WCAG contrast ratio between a and b, in
// [1, 21].
func ContrastRatio(a, b RGB) float64 {
	la := relativeLuminance(a)
	lb := relativeLuminance(b)
	lighter, darker := la, lb
	if lighter < darker {
		lighter, darker = darker, lighter
	}
	return (lighter + 0.05) / (darker + 0.05)
}

func relativeLuminance(c RGB) float64 {
	linear := func(v uint8) float64 {
		s := float64(v) / 255
		if s <= 0.03928 {
			return s / 12.92
		}
		return math.Pow((s+0.055)/1.055, 2.4)
	}
	r, g, b := linear(c.R), linear(c.G), linear(c.B)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// MinContrastForeground searches along the grey axis between fg and
// black/white for the nearest color to fg that reaches minContrast against
// bg, binary-searching toward whichever pole (black or white) has higher
// contrast against bg by iteratively adjusting toward black or white.
func MinContrastForeground(fg, bg RGB, minContrast float64) RGB {
	if ContrastRatio(fg, bg) >= minContrast {
		return fg
	}

	black := RGB{0, 0, 0}
	white := RGB{255, 255, 255}
	pole := black
	if ContrastRatio(white, bg) > ContrastRatio(black, bg) {
		pole = white
	}

	if ContrastRatio(pole, bg) < minContrast {
		return pole // unreachable in practice (black/white vs any bg clears WCAG AA), but never overshoot
	}

	lo, hi := 0.0, 1.0
	best := pole
	for i := 0; i < 24; i++ {
		mid := (lo + hi) / 2
		candidate := lerp(fg, pole, mid)
		if ContrastRatio(candidate, bg) >= minContrast {
			best = candidate
			hi = mid
		} else {
			lo = mid
		}
	}
	return best
}

func lerp(a, b RGB, t float64) RGB {
	return fromColorful(a.colorful().BlendRgb(b.colorful(), t))
}
