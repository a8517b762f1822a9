package unicodetable

// classifyBoundary assigns a UAX #29 grapheme-cluster-break property to r.
// The ranges below are the codepoint blocks that actually participate in a
// boundary decision inside this core - everything else classifies
// as ClassOther. rivo/uniseg's own boundary stepping is consulted at the
// Terminal.print call site as a second opinion for the cluster-extension
// decision; this table only needs to be right for the common ranges.
func classifyBoundary(r rune) BoundaryClass {
	switch {
	case r == 0x200D:
		return ClassZWJ
	case r >= 0x1100 && r <= 0x115F, r >= 0xA960 && r <= 0xA97C:
		return ClassL
	case r >= 0x1160 && r <= 0x11A7, r >= 0xD7B0 && r <= 0xD7C6:
		return ClassV
	case r >= 0x11A8 && r <= 0x11FF, r >= 0xD7CB && r <= 0xD7FB:
		return ClassT
	case isHangulLV(r):
		return ClassLV
	case isHangulLVT(r):
		return ClassLVT
	case r >= 0x0600 && r <= 0x0605, r == 0x06DD, r == 0x070F, r == 0x0890, r == 0x0891, r == 0x08E2, r == 0x110BD, r == 0x110CD:
		return ClassPrepend
	case isExtend(r):
		return ClassExtend
	case isSpacingMark(r):
		return ClassSpacingMark
	case r >= 0x1F1E6 && r <= 0x1F1FF:
		return ClassRegionalIndicator
	case r >= 0x1F3FB && r <= 0x1F3FF:
		return ClassEmojiModifier
	case isExtendedPictographicEmojiBase(r):
		return ClassExtendedPictographicEmojiBase
	case isExtendedPictographic(r):
		return ClassExtendedPictographic
	default:
		return ClassOther
	}
}

func isHangulLV(r rune) bool {
	if r < 0xAC00 || r > 0xD7A3 {
		return false
	}
	return (r-0xAC00)%28 == 0
}

func isHangulLVT(r rune) bool {
	if r < 0xAC00 || r > 0xD7A3 {
		return false
	}
	return (r-0xAC00)%28 != 0
}

func isExtend(r rune) bool {
	switch {
	case r >= 0x0300 && r <= 0x036F: // combining diacritical marks
		return true
	case r >= 0x0483 && r <= 0x0489:
		return true
	case r >= 0x0591 && r <= 0x05BD:
		return true
	case r >= 0x064B && r <= 0x065F:
		return true
	case r >= 0x06D6 && r <= 0x06DC:
		return true
	case r == 0x0E31:
		return true
	case r >= 0x1AB0 && r <= 0x1AFF:
		return true
	case r >= 0x1DC0 && r <= 0x1DFF: // combining diacritical marks supplement
		return true
	case r >= 0x20D0 && r <= 0x20FF: // combining diacritical marks for symbols
		return true
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		return true
	case r >= 0xFE20 && r <= 0xFE2F: // combining half marks
		return true
	case r >= 0xE0100 && r <= 0xE01EF: // variation selectors supplement
		return true
	default:
		return false
	}
}

func isSpacingMark(r rune) bool {
	switch {
	case r == 0x0903:
		return true
	case r >= 0x093B && r <= 0x094C:
		return true
	case r >= 0x0982 && r <= 0x0983:
		return true
	case r == 0x0A03:
		return true
	case r >= 0x0B02 && r <= 0x0B03:
		return true
	case r >= 0x0BBE && r <= 0x0BCC:
		return true
	default:
		return false
	}
}

func isExtendedPictographic(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F5FF: // misc symbols and pictographs
		return true
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport and map symbols
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // supplemental symbols and pictographs
		return true
	case r >= 0x2600 && r <= 0x26FF: // misc symbols
		return true
	case r >= 0x2700 && r <= 0x27BF: // dingbats
		return true
	default:
		return false
	}
}

func isExtendedPictographicEmojiBase(r rune) bool {
	switch r {
	case 0x261D, 0x26F9, 0x270A, 0x270B, 0x270C, 0x270D,
		0x1F385, 0x1F3C2, 0x1F3C3, 0x1F3C4, 0x1F3CA, 0x1F3CB,
		0x1F442, 0x1F443, 0x1F446, 0x1F447, 0x1F448, 0x1F449,
		0x1F44A, 0x1F44B, 0x1F44C, 0x1F44D, 0x1F44E, 0x1F44F,
		0x1F450, 0x1F466, 0x1F467, 0x1F468, 0x1F469, 0x1F46E,
		0x1F470, 0x1F471, 0x1F472, 0x1F473, 0x1F474, 0x1F475,
		0x1F476, 0x1F477, 0x1F478, 0x1F47C, 0x1F481, 0x1F482,
		0x1F483, 0x1F485, 0x1F486, 0x1F487, 0x1F4AA, 0x1F596,
		0x1F64C, 0x1F64F, 0x1F6B4, 0x1F6B5, 0x1F6B6, 0x1F6C0,
		0x1F926, 0x1F930, 0x1F931, 0x1F932, 0x1F933, 0x1F934,
		0x1F935, 0x1F936, 0x1F937, 0x1F938, 0x1F939, 0x1F93D,
		0x1F93E, 0x1F9B5, 0x1F9B6, 0x1F9B8, 0x1F9B9, 0x1F9D1,
		0x1F9D2, 0x1F9D3, 0x1F9D4, 0x1F9D5, 0x1F9D6, 0x1F9D7,
		0x1F9D8, 0x1F9D9, 0x1F9DA, 0x1F9DB, 0x1F9DC, 0x1F9DD:
		return true
	default:
		return false
	}
}
