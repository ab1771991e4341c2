package material

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/mohamed3ma/helios/ace"
)

// Reaction names one of the ESZ block's tabulated channels.
type Reaction string

const (
	ReactionTotal         Reaction = "total"
	ReactionElastic       Reaction = "elastic"
	ReactionDisappearance Reaction = "disappearance"
)

// Nuclide wraps one loaded ACE table and provides energy-indexed
// microscopic cross-sections (§3 "Nuclide", §4.F).
type Nuclide struct {
	userID     string
	internalID int
	table      *ace.Table
	esz        *ace.ESZBlock
	inelastic  *ace.XSTableBlock // ITIE, if present
}

// NewNuclide builds a Nuclide from a loaded ACE table. The table must
// carry an ESZ block; every microscopic cross-section this package
// computes is indexed off its energy grid.
func NewNuclide(userID string, table *ace.Table) (*Nuclide, error) {
	n := &Nuclide{userID: userID, table: table}
	for _, b := range table.Blocks {
		switch blk := b.(type) {
		case *ace.ESZBlock:
			n.esz = blk
		case *ace.XSTableBlock:
			if blk.Slot() == ace.SlotITIE {
				n.inelastic = blk
			}
		}
	}
	if n.esz == nil {
		return nil, MaterialResolutionError{NuclideID: userID, Reason: "ACE table has no ESZ block"}
	}
	return n, nil
}

func (n *Nuclide) UserID() string       { return n.userID }
func (n *Nuclide) InternalID() int      { return n.internalID }
func (n *Nuclide) SetInternalID(id int) { n.internalID = id }
func (n *Nuclide) Table() *ace.Table    { return n.table }

// MicroXS returns the microscopic cross-section for reaction at energy,
// log-linearly interpolated between the two bracketing points on the
// ESZ energy grid (§4.F). Energies outside the tabulated range clamp to
// the nearest endpoint.
func (n *Nuclide) MicroXS(reaction Reaction, energy float64) (float64, error) {
	var y []float64
	switch reaction {
	case ReactionTotal:
		y = n.esz.Total
	case ReactionElastic:
		y = n.esz.Elastic
	case ReactionDisappearance:
		y = n.esz.Disappearance
	default:
		return 0, UnknownReaction{Reaction: string(reaction)}
	}
	return logLinearInterp(n.esz.Energy, y, energy), nil
}

// ScatteringMatrix arranges the ITIE incident-energy/cross-section pairs
// into a 2xN matrix (row 0: incident energy, row 1: cross-section) for
// setup-time inspection and debugging — the same "dump the tabulated
// reaction data into a dense matrix" idiom the teacher's CTM code applies
// to gridded fields, here applied to a nuclide's thermal-inelastic table
// instead of a spatial grid. Returns nil if the table has no ITIE block.
func (n *Nuclide) ScatteringMatrix() *mat.Dense {
	if n.inelastic == nil {
		return nil
	}
	m := mat.NewDense(2, len(n.inelastic.Energy), nil)
	m.SetRow(0, n.inelastic.Energy)
	m.SetRow(1, n.inelastic.XS)
	return m
}

// logLinearInterp interpolates y(xq) between the bracketing tabulated
// points in x (§4.F) using the nuclear-data convention for "log-linear":
// linear in y against log(x) (log-in-energy, linear-in-σ), not log-log.
// x must be sorted ascending. A non-positive bracketing x falls back to
// plain linear interpolation on that segment, since log(x) is undefined
// there.
func logLinearInterp(x, y []float64, xq float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	if xq <= x[0] {
		return y[0]
	}
	if xq >= x[n-1] {
		return y[n-1]
	}
	i := sort.SearchFloat64s(x, xq)
	if x[i] == xq {
		return y[i]
	}
	lo, hi := i-1, i

	x0, x1 := x[lo], x[hi]
	y0, y1 := y[lo], y[hi]
	if x0 <= 0 || x1 <= 0 {
		frac := (xq - x0) / (x1 - x0)
		return y0 + frac*(y1-y0)
	}
	lx0, lx1, lxq := math.Log(x0), math.Log(x1), math.Log(xq)
	frac := (lxq - lx0) / (lx1 - lx0)
	return y0 + frac*(y1-y0)
}
