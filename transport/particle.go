package transport

import (
	"math/rand"

	"github.com/mohamed3ma/helios/geometry"
)

// FailureCode classifies why a history terminated abnormally (§7
// "runtime errors recorded in the particle, terminates with a failure
// code; the simulation continues with subsequent histories").
type FailureCode int

const (
	// FailureNone means the particle is still alive.
	FailureNone FailureCode = iota
	// FailureUnboundedGeometry means the navigator could not locate the
	// particle in any cell (geometry.GeometryUnbounded).
	FailureUnboundedGeometry
	// FailureNoBoundary means distanceToNext found no surface to cross
	// from the particle's current state (geometry.NoBoundary).
	FailureNoBoundary
	// FailureMaterialResolution means a cross-section lookup referenced
	// an unresolved nuclide or material (material.MaterialResolutionError).
	FailureMaterialResolution
	// FailureUnknown covers any other runtime error a worker chooses to
	// terminate a history on.
	FailureUnknown
)

func (c FailureCode) String() string {
	switch c {
	case FailureNone:
		return "none"
	case FailureUnboundedGeometry:
		return "unbounded-geometry"
	case FailureNoBoundary:
		return "no-boundary"
	case FailureMaterialResolution:
		return "material-resolution"
	default:
		return "unknown"
	}
}

// Particle is one transported particle's history state (§5 "Each worker
// owns its particle stack, random-number stream, and per-thread tally
// accumulators" — this struct is the particle-stack and RNG-stream part;
// tally accumulation is a driver concern, out of scope here).
type Particle struct {
	HistoryIndex int64
	Energy       float64
	Weight       float64

	Stack *geometry.State
	RNG   *rand.Rand

	Failure    FailureCode
	FailureErr error
}

// NewParticle builds a particle for one history, with its own
// deterministically-seeded RNG stream (§5).
func NewParticle(historyIndex int64, globalSeed uint64, stack *geometry.State, energy, weight float64) *Particle {
	return &Particle{
		HistoryIndex: historyIndex,
		Energy:       energy,
		Weight:       weight,
		Stack:        stack,
		RNG:          NewHistoryRNG(globalSeed, historyIndex),
	}
}

// Alive reports whether the particle has not yet terminated on a failure.
func (p *Particle) Alive() bool { return p.Failure == FailureNone }

// Terminate records a runtime failure on the particle (§7 propagation
// policy): the history stops, but terminating one particle never aborts
// the run — callers continue on to the next history.
func (p *Particle) Terminate(code FailureCode, err error) {
	p.Failure = code
	p.FailureErr = err
}
