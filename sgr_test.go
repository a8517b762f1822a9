package term

import "testing"

func TestSGRParserSimpleAttributes(t *testing.T) {
	p := NewSGRParser([]int{1, 4, 31}, nil)

	attr, ok := p.Next()
	if !ok || attr.Kind != SGRBold {
		t.Fatalf("first Next() = %+v, %v, want SGRBold", attr, ok)
	}
	attr, ok = p.Next()
	if !ok || attr.Kind != SGRUnderline || attr.Underline != UnderlineSingle {
		t.Fatalf("second Next() = %+v, %v, want SGRUnderline/Single", attr, ok)
	}
	attr, ok = p.Next()
	if !ok || attr.Kind != SGRForeground || attr.Color != PaletteColor(1) {
		t.Fatalf("third Next() = %+v, %v, want SGRForeground palette 1", attr, ok)
	}
	if _, ok = p.Next(); ok {
		t.Fatal("Next() past the end must return ok=false")
	}
}

func TestSGRParserEmptyDefaultsToReset(t *testing.T) {
	p := NewSGRParser(nil, nil)
	attr, ok := p.Next()
	if !ok || attr.Kind != SGRReset {
		t.Fatalf("empty CSI 'm' must decode as a single reset, got %+v, %v", attr, ok)
	}
}

func TestSGRParserExtendedColorSemicolonRGB(t *testing.T) {
	p := NewSGRParser([]int{38, 2, 10, 20, 30, 1}, nil)
	attr, ok := p.Next()
	if !ok || attr.Kind != SGRForeground {
		t.Fatalf("Next() = %+v, %v, want SGRForeground", attr, ok)
	}
	if attr.Color != RGBColor(10, 20, 30) {
		t.Fatalf("Color = %+v, want RGB(10,20,30)", attr.Color)
	}
	attr, ok = p.Next()
	if !ok || attr.Kind != SGRBold {
		t.Fatalf("parser must resume after the 5-param RGB form, got %+v, %v", attr, ok)
	}
}

func TestSGRParserExtendedColorSemicolon256(t *testing.T) {
	p := NewSGRParser([]int{48, 5, 200}, nil)
	attr, ok := p.Next()
	if !ok || attr.Kind != SGRBackground || attr.Color != PaletteColor(200) {
		t.Fatalf("Next() = %+v, %v, want SGRBackground palette 200", attr, ok)
	}
}

func TestSGRParserExtendedColorColonForm(t *testing.T) {
	p := NewSGRParser([]int{38}, [][]int{{2, 1, 2, 3}})
	attr, ok := p.Next()
	if !ok || attr.Kind != SGRForeground || attr.Color != RGBColor(1, 2, 3) {
		t.Fatalf("colon-form Next() = %+v, %v, want SGRForeground RGB(1,2,3)", attr, ok)
	}
}

func TestSGRParserExtendedColorUnknownForm(t *testing.T) {
	p := NewSGRParser([]int{38, 9}, nil)
	attr, ok := p.Next()
	if !ok || attr.Kind != SGRUnknown {
		t.Fatalf("malformed extended-color form = %+v, %v, want SGRUnknown", attr, ok)
	}
}

func TestSGRParserUnknownCodeAdvancesOne(t *testing.T) {
	p := NewSGRParser([]int{123, 1}, nil)
	attr, ok := p.Next()
	if !ok || attr.Kind != SGRUnknown {
		t.Fatalf("Next() = %+v, %v, want SGRUnknown", attr, ok)
	}
	attr, ok = p.Next()
	if !ok || attr.Kind != SGRBold {
		t.Fatal("an unknown code must advance exactly one parameter, not stall the parser")
	}
}

func TestApplyAttributeReset(t *testing.T) {
	style := Style{Flags: FlagBold, Fg: RGBColor(1, 2, 3)}
	got := ApplyAttribute(style, SGRAttribute{Kind: SGRReset})
	if !got.IsDefault() {
		t.Fatalf("ApplyAttribute(reset) = %+v, want DefaultStyle", got)
	}
}

func TestApplyAttributeFlagsAndColors(t *testing.T) {
	style := DefaultStyle
	style = ApplyAttribute(style, SGRAttribute{Kind: SGRBold})
	style = ApplyAttribute(style, SGRAttribute{Kind: SGRForeground, Color: PaletteColor(5)})
	if !style.HasFlag(FlagBold) {
		t.Fatal("ApplyAttribute(SGRBold) must set FlagBold")
	}
	if style.Fg != PaletteColor(5) {
		t.Fatalf("Fg = %+v, want palette 5", style.Fg)
	}
	style = ApplyAttribute(style, SGRAttribute{Kind: SGRNoBold})
	if style.HasFlag(FlagBold) {
		t.Fatal("ApplyAttribute(SGRNoBold) must clear FlagBold")
	}
	style = ApplyAttribute(style, SGRAttribute{Kind: SGRDefaultForeground})
	if !style.Fg.IsZero() {
		t.Fatal("ApplyAttribute(SGRDefaultForeground) must reset Fg to NoColor")
	}
}
