package term

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSGRParams splits a CSI 'm' parameter string (already stripped of its
// leading CSI and trailing 'm') into the values/subs pairs NewSGRParser
// expects: a comma-separated list of fields, each optionally carrying
// colon-attached sub-parameters (e.g. "38:2:10:20:30"). An empty string
// (bare CSI "m", i.e. an implicit reset) returns nil, nil, nil.
func ParseSGRParams(s string) (values []int, subs [][]int, err error) {
	if s == "" {
		return nil, nil, nil
	}
	for _, field := range strings.Split(s, ",") {
		parts := strings.Split(field, ":")
		v, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: parameter %q", ErrInvalidFormat, field)
		}
		values = append(values, v)

		var sv []int
		for _, p := range parts[1:] {
			n, err := strconv.Atoi(p)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: sub-parameter %q", ErrInvalidFormat, field)
			}
			sv = append(sv, n)
		}
		subs = append(subs, sv)
	}
	return values, subs, nil
}

// SGRKind discriminates the typed sum an SGR parameter sequence decodes
// into.
type SGRKind uint8

const (
	SGRReset SGRKind = iota
	SGRBold
	SGRFaint
	SGRItalic
	SGRUnderline
	SGRBlink
	SGRInverse
	SGRInvisible
	SGRStrikethrough
	SGRNoBold
	SGRNoFaint
	SGRNoItalic
	SGRNoUnderline
	SGRNoBlink
	SGRNoInverse
	SGRNoInvisible
	SGRNoStrikethrough
	SGRForeground
	SGRBackground
	SGRUnderlineColor
	SGRDefaultForeground
	SGRDefaultBackground
	SGRDefaultUnderlineColor
	SGRUnknown
)

// SGRAttribute is one decoded SGR attribute, with payload fields populated
// depending on Kind.
type SGRAttribute struct {
	Kind      SGRKind
	Color     Color
	Underline UnderlineKind
}

// subParams describes one top-level parameter's sub-parameters, colon
// forms (`38:2:…`) vs. semicolon forms (`38;2;…`).
type subParams struct {
	value     int
	subs      []int // sub-parameters attached via ':' to this parameter
	hasColon  bool
}

// SGRParser is a pull iterator over a decoded CSI 'm' parameter list,
// consuming one or more parameters per call to Next and emitting a typed
// attribute stream. Unknown forms advance by exactly one parameter so a
// malformed sequence can never stall the caller.
type SGRParser struct {
	params []subParams
	pos    int
}

// NewSGRParser builds a parser from already-split CSI parameters. values
// holds one entry per semicolon-separated top-level value; subs holds any
// colon-attached sub-parameters for that same value (empty when the
// sequence used semicolons throughout).
func NewSGRParser(values []int, subs [][]int) *SGRParser {
	p := &SGRParser{params: make([]subParams, len(values))}
	for i, v := range values {
		var sv []int
		if i < len(subs) {
			sv = subs[i]
		}
		p.params[i] = subParams{value: v, subs: sv, hasColon: len(sv) > 0}
	}
	if len(p.params) == 0 {
		p.params = []subParams{{value: 0}}
	}
	return p
}

// Next decodes and returns the next attribute, advancing past however many
// parameters it consumed. Returns ok=false once exhausted.
func (p *SGRParser) Next() (SGRAttribute, bool) {
	if p.pos >= len(p.params) {
		return SGRAttribute{}, false
	}
	cur := p.params[p.pos]

	switch cur.value {
	case 0:
		p.pos++
		return SGRAttribute{Kind: SGRReset}, true
	case 1:
		p.pos++
		return SGRAttribute{Kind: SGRBold}, true
	case 2:
		p.pos++
		return SGRAttribute{Kind: SGRFaint}, true
	case 3:
		p.pos++
		return SGRAttribute{Kind: SGRItalic}, true
	case 4:
		p.pos++
		kind := UnderlineSingle
		if cur.hasColon && len(cur.subs) > 0 {
			kind = underlineKindFromParam(cur.subs[0])
		}
		return SGRAttribute{Kind: SGRUnderline, Underline: kind}, true
	case 5, 6:
		p.pos++
		return SGRAttribute{Kind: SGRBlink}, true
	case 7:
		p.pos++
		return SGRAttribute{Kind: SGRInverse}, true
	case 8:
		p.pos++
		return SGRAttribute{Kind: SGRInvisible}, true
	case 9:
		p.pos++
		return SGRAttribute{Kind: SGRStrikethrough}, true
	case 21:
		p.pos++
		return SGRAttribute{Kind: SGRUnderline, Underline: UnderlineDouble}, true
	case 22:
		p.pos++
		return SGRAttribute{Kind: SGRNoBold}, true
	case 23:
		p.pos++
		return SGRAttribute{Kind: SGRNoItalic}, true
	case 24:
		p.pos++
		return SGRAttribute{Kind: SGRNoUnderline}, true
	case 25:
		p.pos++
		return SGRAttribute{Kind: SGRNoBlink}, true
	case 27:
		p.pos++
		return SGRAttribute{Kind: SGRNoInverse}, true
	case 28:
		p.pos++
		return SGRAttribute{Kind: SGRNoInvisible}, true
	case 29:
		p.pos++
		return SGRAttribute{Kind: SGRNoStrikethrough}, true
	case 39:
		p.pos++
		return SGRAttribute{Kind: SGRDefaultForeground}, true
	case 49:
		p.pos++
		return SGRAttribute{Kind: SGRDefaultBackground}, true
	case 59:
		p.pos++
		return SGRAttribute{Kind: SGRDefaultUnderlineColor}, true
	case 38, 48, 58:
		return p.parseExtendedColor(cur)
	}

	if cur.value >= 30 && cur.value <= 37 {
		p.pos++
		return SGRAttribute{Kind: SGRForeground, Color: PaletteColor(uint8(cur.value - 30))}, true
	}
	if cur.value >= 40 && cur.value <= 47 {
		p.pos++
		return SGRAttribute{Kind: SGRBackground, Color: PaletteColor(uint8(cur.value - 40))}, true
	}
	if cur.value >= 90 && cur.value <= 97 {
		p.pos++
		return SGRAttribute{Kind: SGRForeground, Color: PaletteColor(uint8(cur.value - 90 + 8))}, true
	}
	if cur.value >= 100 && cur.value <= 107 {
		p.pos++
		return SGRAttribute{Kind: SGRBackground, Color: PaletteColor(uint8(cur.value - 100 + 8))}, true
	}

	p.pos++
	return SGRAttribute{Kind: SGRUnknown}, true
}

func underlineKindFromParam(n int) UnderlineKind {
	switch n {
	case 0:
		return UnderlineNone
	case 2:
		return UnderlineDouble
	case 3:
		return UnderlineCurly
	case 4:
		return UnderlineDotted
	case 5:
		return UnderlineDashed
	default:
		return UnderlineSingle
	}
}

// parseExtendedColor handles the 38/48/58 families in both colon (single
// parameter carrying sub-parameters) and semicolon (multiple top-level
// parameters) forms: a 5-parameter form
// {code,2,R,G,B} emits direct color, a 3-parameter form {code,5,idx} emits
// 256-indexed, anything else emits `unknown`.
func (p *SGRParser) parseExtendedColor(cur subParams) (SGRAttribute, bool) {
	kind := extendedKind(cur.value)

	var fields []int
	consumed := 1
	if cur.hasColon {
		fields = cur.subs
	} else {
		rest := p.params[p.pos+1:]
		want := 0
		if len(rest) >= 4 && rest[0].value == 2 {
			want = 4
		} else if len(rest) >= 2 && rest[0].value == 5 {
			want = 2
		}
		fields = make([]int, 0, want)
		for _, sp := range rest[:want] {
			fields = append(fields, sp.value)
		}
		consumed += want
	}
	p.pos += consumed

	if len(fields) >= 4 && fields[0] == 2 {
		r, g, b := fields[1], fields[2], fields[3]
		return SGRAttribute{Kind: kind, Color: RGBColor(uint8(r), uint8(g), uint8(b))}, true
	}
	if len(fields) >= 2 && fields[0] == 5 {
		return SGRAttribute{Kind: kind, Color: PaletteColor(uint8(fields[1]))}, true
	}
	return SGRAttribute{Kind: SGRUnknown}, true
}

func extendedKind(code int) SGRKind {
	switch code {
	case 38:
		return SGRForeground
	case 48:
		return SGRBackground
	default:
		return SGRUnderlineColor
	}
}

// ApplyAttribute returns a copy of style with attr applied - the pure
// function Screen.SetAttribute uses before reconciling the style intern
// table.
func ApplyAttribute(style Style, attr SGRAttribute) Style {
	switch attr.Kind {
	case SGRReset:
		return DefaultStyle
	case SGRBold:
		return style.WithFlag(FlagBold)
	case SGRFaint:
		return style.WithFlag(FlagFaint)
	case SGRItalic:
		return style.WithFlag(FlagItalic)
	case SGRBlink:
		return style.WithFlag(FlagBlink)
	case SGRInverse:
		return style.WithFlag(FlagInverse)
	case SGRInvisible:
		return style.WithFlag(FlagInvisible)
	case SGRStrikethrough:
		return style.WithFlag(FlagStrikethrough)
	case SGRNoBold:
		return style.WithoutFlag(FlagBold)
	case SGRNoFaint:
		return style.WithoutFlag(FlagFaint)
	case SGRNoItalic:
		return style.WithoutFlag(FlagItalic)
	case SGRNoBlink:
		return style.WithoutFlag(FlagBlink)
	case SGRNoInverse:
		return style.WithoutFlag(FlagInverse)
	case SGRNoInvisible:
		return style.WithoutFlag(FlagInvisible)
	case SGRNoStrikethrough:
		return style.WithoutFlag(FlagStrikethrough)
	case SGRUnderline:
		style.Underline = attr.Underline
		return style
	case SGRNoUnderline:
		style.Underline = UnderlineNone
		return style
	case SGRForeground:
		style.Fg = attr.Color
		return style
	case SGRBackground:
		style.Bg = attr.Color
		return style
	case SGRUnderlineColor:
		style.UnderlineColor = attr.Color
		return style
	case SGRDefaultForeground:
		style.Fg = NoColor
		return style
	case SGRDefaultBackground:
		style.Bg = NoColor
		return style
	case SGRDefaultUnderlineColor:
		style.UnderlineColor = NoColor
		return style
	default:
		return style
	}
}
