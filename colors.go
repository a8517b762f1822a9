package term

// RGB is a plain 24-bit color triple, used for palette entries and resolved
// output (as opposed to Color, which is the tagged union stored in a Style).
type RGB struct {
	R, G, B uint8
}

// Palette is the 256-entry indexed color table plus the default
// foreground/background a Style's NoColor falls back to, host-configurable.
// NewDefaultPalette builds the conventional xterm-compatible 16 + 6x6x6
// cube + grayscale-ramp table.
type Palette struct {
	entries   [256]RGB
	defaultFg RGB
	defaultBg RGB
}

// ansiColors are the 16 standard/bright named colors (0-15). These are not
// xterm's default RGB values.
var ansiColors = [16]RGB{
	{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
	{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
	{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
	{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
}

// NewDefaultPalette builds the standard 256-color palette: 16 named colors
// (0-15), a 6x6x6 color cube (16-231), and a 24-step grayscale ramp
// (232-255), with light-gray-on-black defaults.
func NewDefaultPalette() *Palette {
	p := &Palette{
		defaultFg: RGB{229, 229, 229},
		defaultBg: RGB{0, 0, 0},
	}
	copy(p.entries[0:16], ansiColors[:])

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p.entries[i] = RGB{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51)}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		p.entries[232+j] = RGB{gray, gray, gray}
	}
	return p
}

// Entry returns the palette's RGB at idx.
func (p *Palette) Entry(idx uint8) RGB { return p.entries[idx] }

// SetEntry overrides one palette slot, for hosts that let a client
// reprogram colors (OSC 4).
func (p *Palette) SetEntry(idx uint8, c RGB) { p.entries[idx] = c }

// DefaultFg returns the palette's default foreground color.
func (p *Palette) DefaultFg() RGB { return p.defaultFg }

// DefaultBg returns the palette's default background color.
func (p *Palette) DefaultBg() RGB { return p.defaultBg }

// SetDefaultFg overrides the default foreground color (OSC 10).
func (p *Palette) SetDefaultFg(c RGB) { p.defaultFg = c }

// SetDefaultBg overrides the default background color (OSC 11).
func (p *Palette) SetDefaultBg(c RGB) { p.defaultBg = c }
