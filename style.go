package term

// ColorKind discriminates the tagged sum a Style color can hold.
type ColorKind uint8

const (
	ColorNone ColorKind = iota
	ColorPalette
	ColorRGB
)

// Color is a tagged union of {none, 8-bit palette index, direct RGB}. It is
// a plain comparable struct (no pointers) so Style - and therefore Color -
// can be used as a map key by the page-local style intern table.
type Color struct {
	Kind    ColorKind
	Palette uint8
	R, G, B uint8
}

// NoColor is the "unset" sentinel for a Style color field.
var NoColor = Color{Kind: ColorNone}

// IsZero reports whether the color is the unset sentinel.
func (c Color) IsZero() bool { return c.Kind == ColorNone }

// PaletteColor builds a Color referencing the 256-entry palette.
func PaletteColor(idx uint8) Color {
	return Color{Kind: ColorPalette, Palette: idx}
}

// RGBColor builds a Color carrying a direct RGB triple.
func RGBColor(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// Resolve turns a Color into concrete RGB using the given 256-color
// palette, falling back to defaultFg/defaultBg (whichever fg selects) when
// the color is unset.
func (c Color) Resolve(palette *Palette, fg bool) (r, g, b uint8) {
	switch c.Kind {
	case ColorRGB:
		return c.R, c.G, c.B
	case ColorPalette:
		rgb := palette.entries[c.Palette]
		return rgb.R, rgb.G, rgb.B
	default:
		if fg {
			return palette.defaultFg.R, palette.defaultFg.G, palette.defaultFg.B
		}
		return palette.defaultBg.R, palette.defaultBg.G, palette.defaultBg.B
	}
}

// UnderlineKind enumerates the rendered underline shape.
type UnderlineKind uint8

const (
	UnderlineNone UnderlineKind = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// StyleFlags is a bitmask of boolean rendering attributes. UnderlineKind is
// kept as a separate small field rather than packed into this mask since it
// is a 3-bit enum, not a single bit.
type StyleFlags uint16

const (
	FlagBold StyleFlags = 1 << iota
	FlagFaint
	FlagItalic
	FlagBlink
	FlagInverse
	FlagInvisible
	FlagStrikethrough
)

// Style bundles every SGR-settable rendering attribute for a cell. The zero
// value is the sentinel default style: no colors, no flags, no underline.
// Style is comparable, which is what lets StyleSet use it directly as an
// intern-table key.
type Style struct {
	Fg             Color
	Bg             Color
	UnderlineColor Color
	Flags          StyleFlags
	Underline      UnderlineKind
}

// DefaultStyle is the sentinel zero-value style.
var DefaultStyle = Style{}

// IsDefault reports whether s equals the sentinel default style.
func (s Style) IsDefault() bool {
	return s == DefaultStyle
}

// HasFlag reports whether flag is set.
func (s Style) HasFlag(flag StyleFlags) bool {
	return s.Flags&flag != 0
}

// WithFlag returns a copy of s with flag set.
func (s Style) WithFlag(flag StyleFlags) Style {
	s.Flags |= flag
	return s
}

// WithoutFlag returns a copy of s with flag cleared.
func (s Style) WithoutFlag(flag StyleFlags) Style {
	s.Flags &^= flag
	return s
}
