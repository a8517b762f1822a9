// Package unicodetable provides O(1) codepoint width and grapheme-boundary
// classification via a three-stage compressed lookup table, built once at
// package-init time instead of loaded from a generated data file: stage1
// bins the high bits of a codepoint to a stage2 block index, stage2 bins
// the middle bits to a stage3 slot, and stage3 holds the packed property
// byte for that codepoint. Identical stage3 blocks are deduplicated, which
// is what keeps the table small despite covering the full Unicode range.
package unicodetable

import (
	"github.com/unilibs/uniwidth"
	"golang.org/x/text/width"
)

// BoundaryClass enumerates the grapheme-cluster break properties the print
// path needs to decide whether a codepoint extends the previous cluster.
type BoundaryClass uint8

const (
	ClassInvalid BoundaryClass = iota
	ClassOther
	ClassL
	ClassV
	ClassT
	ClassLV
	ClassLVT
	ClassPrepend
	ClassExtend
	ClassZWJ
	ClassSpacingMark
	ClassRegionalIndicator
	ClassExtendedPictographic
	ClassExtendedPictographicEmojiBase
	ClassEmojiModifier
)

// MaxCodepoint is the highest valid Unicode scalar value.
const MaxCodepoint = 0x10FFFF

const (
	stage1Bits = 8
	stage2Bits = 8
	stage3Bits = 8

	stage2Size = 1 << stage2Bits
	stage3Size = 1 << stage3Bits

	stage2Mask = stage2Size - 1
	stage3Mask = stage3Size - 1
)

// entry packs one codepoint's properties: width (2 bits) and boundary
// class (6 bits), the value stored at each stage3 slot.
type entry uint8

func packEntry(w int, class BoundaryClass) entry {
	return entry(uint8(w&0x3) | uint8(class)<<2)
}

func (e entry) width() int            { return int(e & 0x3) }
func (e entry) class() BoundaryClass  { return BoundaryClass(e >> 2) }

// table is the package-global three-stage structure, built once in init.
var table struct {
	stage1 []uint16 // codepoint>>(stage2Bits+stage3Bits) -> stage2 block index
	stage2 []uint16 // block*stage2Size + ((codepoint>>stage3Bits)&stage2Mask) -> stage3 block index
	stage3 [][stage3Size]entry
}

func init() {
	buildTable()
}

// buildTable scans the Unicode codepoint space once, classifying each
// codepoint via the oracles (uniwidth for width, golang.org/x/text/width
// for East-Asian-Width as a cross-check, and hardcoded UAX #29 ranges for
// grapheme boundary class), and deduplicates identical stage3 blocks.
func buildTable() {
	numStage1 := (MaxCodepoint + 1 + (1 << (stage2Bits + stage3Bits)) - 1) >> (stage2Bits + stage3Bits)
	table.stage1 = make([]uint16, numStage1+1)

	blockIndex := make(map[[stage3Size]entry]uint16)
	var stage2Blocks []uint16

	cp := 0
	for s1 := 0; s1 <= numStage1; s1++ {
		stage2Start := len(stage2Blocks)
		for s2 := 0; s2 < stage2Size && cp <= MaxCodepoint; s2++ {
			var block [stage3Size]entry
			for s3 := 0; s3 < stage3Size && cp <= MaxCodepoint; s3++ {
				block[s3] = classify(rune(cp))
				cp++
			}
			idx, ok := blockIndex[block]
			if !ok {
				idx = uint16(len(table.stage3))
				blockIndex[block] = idx
				table.stage3 = append(table.stage3, block)
			}
			stage2Blocks = append(stage2Blocks, idx)
		}
		table.stage1[s1] = uint16(stage2Start)
	}
	table.stage2 = stage2Blocks
}

func classify(r rune) entry {
	if r > MaxCodepoint {
		return packEntry(0, ClassInvalid)
	}
	return packEntry(classifyWidth(r), classifyBoundary(r))
}

func classifyWidth(r rune) int {
	w := uniwidth.RuneWidth(r)
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		if w != 2 {
			w = 2
		}
	}
	if w < 0 {
		return 0
	}
	if w > 2 {
		return 2
	}
	return w
}

// Lookup returns the width and grapheme boundary class for r in O(1).
func Lookup(r rune) (width int, class BoundaryClass) {
	if r < 0 || r > MaxCodepoint {
		return 0, ClassInvalid
	}
	cp := int(r)
	s1 := cp >> (stage2Bits + stage3Bits)
	if s1 >= len(table.stage1) {
		return 0, ClassInvalid
	}
	s2 := table.stage1[s1] + uint16((cp>>stage3Bits)&stage2Mask)
	if int(s2) >= len(table.stage2) {
		return 0, ClassInvalid
	}
	block := table.stage3[table.stage2[s2]]
	e := block[cp&stage3Mask]
	return e.width(), e.class()
}

// Width is a convenience wrapper over Lookup for callers that only need
// display width.
func Width(r rune) int {
	w, _ := Lookup(r)
	return w
}

// Class is a convenience wrapper over Lookup for callers that only need
// the grapheme boundary class.
func Class(r rune) BoundaryClass {
	_, c := Lookup(r)
	return c
}
