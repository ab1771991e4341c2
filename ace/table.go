// Package ace reads and writes ACE-format nuclear data tables (§4.E): a
// fixed-length integer header (NXS), a fixed-length pointer array into the
// data payload (JXS), and the payload itself (XSS) — a flat stream of
// doubles that typed blocks slice into structured cross-section arrays.
package ace

import "fmt"

// NXS slot this package reads to learn the table's overall XSS length and
// its number of tabulated energies — the two header fields every block
// layout below depends on.
const (
	nxsLength = 0 // NXS[0]: length of XSS
	nxsNES    = 2 // NXS[2]: number of energy points in the ESZ grid
)

// JXS slots known to this reader, in the fixed ascending order blocks are
// always parsed and dumped in (§4.E "deterministic order"). A production
// ACE reader carries dozens of these; this one wires the ones SPEC_FULL.md
// names plus the reaction-indexed blocks a minimal transport loop needs.
const (
	SlotESZ  = 0
	SlotNU   = 1
	SlotITIE = 2
	SlotITIX = 3
	SlotITCE = 4
)

var knownSlots = []int{SlotESZ, SlotNU, SlotITIE, SlotITIX, SlotITCE}

// Block is one typed region of an ACE table's XSS payload (§4.E).
type Block interface {
	// Slot is the JXS index this block is anchored at.
	Slot() int
	// Size is the number of XSS words this block occupies when dumped.
	Size() int
	// Dump serializes the block back into its XSS word sequence.
	Dump() []float64
}

// Table is one parsed ACE table (§3 "ACE table"): the header fields, the
// NXS/JXS/XSS arrays as read, and the typed blocks built from them. Per
// the invariant in §3, XSS itself is not retained on the struct — each
// block keeps its own copy of its fields, and Dump rebuilds XSS from them.
type Table struct {
	ZAID              string
	AtomicWeightRatio float64
	Temperature       float64
	Date              string
	Comment           string
	SourceInfo        string

	NXS [16]int
	JXS [32]int

	Blocks []Block
}

// Header bundles the table-identifying fields Parse needs alongside the
// NXS/JXS/XSS triple, matching the ordered fields §4.E's "File framing"
// lists before NXS.
type Header struct {
	ZAID              string
	AtomicWeightRatio float64
	Temperature       float64
	Date              string
	Comment           string
	SourceInfo        string
}

// Parse builds a Table from a header and the NXS/JXS/XSS triple (§4.E
// "Block construction"): for every known block slot, JXS[slot]==0 means
// absent and is skipped; otherwise the read cursor starts at
// xss[JXS[slot]-1] (ACE's 1-based indexing) and the block's own layout
// consumes however many words it needs.
func Parse(h Header, nxs [16]int, jxs [32]int, xss []float64) (*Table, error) {
	if len(xss) != nxs[nxsLength] {
		return nil, ParseError{Reason: fmt.Sprintf("xss has %d words, NXS[0] says %d", len(xss), nxs[nxsLength])}
	}

	t := &Table{
		ZAID:              h.ZAID,
		AtomicWeightRatio: h.AtomicWeightRatio,
		Temperature:       h.Temperature,
		Date:              h.Date,
		Comment:           h.Comment,
		SourceInfo:        h.SourceInfo,
		NXS:               nxs,
		JXS:               jxs,
	}

	for _, slot := range knownSlots {
		ptr := jxs[slot]
		if ptr == 0 {
			continue
		}
		cursor := ptr - 1
		if cursor < 0 || cursor >= len(xss) {
			return nil, ParseError{Offset: cursor, Reason: fmt.Sprintf("slot %d points outside XSS", slot)}
		}
		block, err := parseBlockAtSlot(slot, xss[cursor:], nxs)
		if err != nil {
			return nil, ParseError{Offset: cursor, Reason: err.Error()}
		}
		t.Blocks = append(t.Blocks, block)
	}
	return t, nil
}

// Dump re-serializes the table (§4.E "Dump / round trip"): blocks are
// written in their fixed slot order, XSS is rebuilt from scratch, and JXS
// is recomputed as each block's starting index in the new layout. NXS[0]
// is updated to the new XSS length; every other NXS field is carried
// through unchanged.
func (t *Table) Dump() ([16]int, [32]int, []float64) {
	var jxsNew [32]int
	var xss []float64
	for _, b := range t.Blocks {
		jxsNew[b.Slot()] = len(xss) + 1
		xss = append(xss, b.Dump()...)
	}
	nxsNew := t.NXS
	nxsNew[nxsLength] = len(xss)
	return nxsNew, jxsNew, xss
}

// ShiftJXSArray implements the §4.E "JXS update rule": it returns a copy
// of jxsNew with blockSize added to every entry whose corresponding
// jxsOld entry lies after the block at slot in the original layout —
// i.e. every pointer that must move to make room for a size change to
// that one block.
func ShiftJXSArray(jxsOld, jxsNew [32]int, slot, blockSize int) [32]int {
	out := jxsNew
	pivot := jxsOld[slot]
	for j := range out {
		if jxsOld[j] > pivot {
			out[j] += blockSize
		}
	}
	return out
}
