package ace

import (
	"fmt"
	"math"
)

// cursor is a forward-only reader over a tail slice of XSS, the same
// getXSS/putXSS pattern the original reader's ACEBlock base class uses.
type cursor struct {
	xss []float64
	pos int
}

func (c *cursor) int() (int, error) {
	v, err := c.float()
	if err != nil {
		return 0, err
	}
	return int(math.Round(v)), nil
}

func (c *cursor) float() (float64, error) {
	if c.pos >= len(c.xss) {
		return 0, fmt.Errorf("xss exhausted at word %d", c.pos)
	}
	v := c.xss[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) floats(n int) ([]float64, error) {
	if c.pos+n > len(c.xss) {
		return nil, fmt.Errorf("xss exhausted reading %d words at %d", n, c.pos)
	}
	out := append([]float64(nil), c.xss[c.pos:c.pos+n]...)
	c.pos += n
	return out, nil
}

// parseBlockAtSlot dispatches to the block layout anchored at slot. tail
// starts at the block's own first word (xss[JXS[slot]-1:]).
func parseBlockAtSlot(slot int, tail []float64, nxs [16]int) (Block, error) {
	switch slot {
	case SlotESZ:
		return parseESZ(tail, nxs[nxsNES])
	case SlotNU:
		return parseNU(tail)
	case SlotITIE:
		return parseLengthPrefixedXS(tail, SlotITIE)
	case SlotITIX:
		return parseLengthPrefixedXS(tail, SlotITIX)
	case SlotITCE:
		return parseLengthPrefixedXS(tail, SlotITCE)
	default:
		return nil, fmt.Errorf("no known layout for slot %d", slot)
	}
}

// ESZBlock is the energy grid and the table's principal cross-sections
// (§4.F "energy-indexed microscopic cross-sections"): total, radiative
// capture/disappearance, elastic scattering, and average heating number,
// each tabulated at the NES energies in Energy. Unlike the length-prefixed
// blocks below, its length comes from NXS[2] (NES), matching the real ACE
// ESZ layout.
type ESZBlock struct {
	Energy        []float64
	Total         []float64
	Disappearance []float64
	Elastic       []float64
	Heating       []float64
}

func parseESZ(tail []float64, nes int) (*ESZBlock, error) {
	if nes <= 0 {
		return nil, fmt.Errorf("ESZ block requires NXS[2] (NES) > 0, got %d", nes)
	}
	c := &cursor{xss: tail}
	b := &ESZBlock{}
	var err error
	if b.Energy, err = c.floats(nes); err != nil {
		return nil, err
	}
	if b.Total, err = c.floats(nes); err != nil {
		return nil, err
	}
	if b.Disappearance, err = c.floats(nes); err != nil {
		return nil, err
	}
	if b.Elastic, err = c.floats(nes); err != nil {
		return nil, err
	}
	if b.Heating, err = c.floats(nes); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *ESZBlock) Slot() int { return SlotESZ }
func (b *ESZBlock) Size() int { return 5 * len(b.Energy) }
func (b *ESZBlock) Dump() []float64 {
	out := make([]float64, 0, b.Size())
	out = append(out, b.Energy...)
	out = append(out, b.Total...)
	out = append(out, b.Disappearance...)
	out = append(out, b.Elastic...)
	out = append(out, b.Heating...)
	return out
}

// NUBlock is the total-nu-bar table: a length-prefixed list of values
// (one per tabulated point, polynomial or tabulated form collapsed to a
// flat list for this reader's purposes).
type NUBlock struct {
	Values []float64
}

func parseNU(tail []float64) (*NUBlock, error) {
	c := &cursor{xss: tail}
	n, err := c.int()
	if err != nil {
		return nil, err
	}
	values, err := c.floats(n)
	if err != nil {
		return nil, err
	}
	return &NUBlock{Values: values}, nil
}

func (b *NUBlock) Slot() int { return SlotNU }
func (b *NUBlock) Size() int { return len(b.Values) + 1 }
func (b *NUBlock) Dump() []float64 {
	out := make([]float64, 0, b.Size())
	out = append(out, float64(len(b.Values)))
	out = append(out, b.Values...)
	return out
}

// XSTableBlock is the shape ITIEBlock.cpp parses (§4.E, grounded directly
// on Material/AceTable/AceReader/Blocks/ITIEBlock.cpp): a word giving the
// table length, then that many energies, then that many cross-section
// values at those energies. ITIE (inelastic scattering), ITIX (inelastic
// index) and ITCE (coherent elastic) all use this identical layout in the
// original reader, distinguished only by their JXS slot and SabTable enum
// value; Slot reports which one a given instance is.
type XSTableBlock struct {
	slot   int
	Energy []float64
	XS     []float64
}

func parseLengthPrefixedXS(tail []float64, slot int) (*XSTableBlock, error) {
	c := &cursor{xss: tail}
	n, err := c.int()
	if err != nil {
		return nil, err
	}
	energy, err := c.floats(n)
	if err != nil {
		return nil, err
	}
	xs, err := c.floats(n)
	if err != nil {
		return nil, err
	}
	return &XSTableBlock{slot: slot, Energy: energy, XS: xs}, nil
}

func (b *XSTableBlock) Slot() int { return b.slot }
func (b *XSTableBlock) Size() int { return 2*len(b.Energy) + 1 }
func (b *XSTableBlock) Dump() []float64 {
	out := make([]float64, 0, b.Size())
	out = append(out, float64(len(b.Energy)))
	out = append(out, b.Energy...)
	out = append(out, b.XS...)
	return out
}

// NewITIEBlock builds an ITIE (inelastic-scattering) block directly from
// data, for tests and for material setup code that synthesizes tables
// rather than parsing them.
func NewITIEBlock(energy, xs []float64) *XSTableBlock {
	return &XSTableBlock{slot: SlotITIE, Energy: energy, XS: xs}
}

// NewITIXBlock builds an ITIX (inelastic index) block directly from data.
func NewITIXBlock(energy, xs []float64) *XSTableBlock {
	return &XSTableBlock{slot: SlotITIX, Energy: energy, XS: xs}
}

// NewITCEBlock builds an ITCE (coherent elastic) block directly from data.
func NewITCEBlock(energy, xs []float64) *XSTableBlock {
	return &XSTableBlock{slot: SlotITCE, Energy: energy, XS: xs}
}

// NewESZBlock builds an ESZ block directly from data.
func NewESZBlock(energy, total, disappearance, elastic, heating []float64) *ESZBlock {
	return &ESZBlock{Energy: energy, Total: total, Disappearance: disappearance, Elastic: elastic, Heating: heating}
}

// NewNUBlock builds a NU block directly from data.
func NewNUBlock(values []float64) *NUBlock {
	return &NUBlock{Values: values}
}
