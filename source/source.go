package source

import (
	"fmt"
	"math/rand"

	"github.com/Knetic/govaluate"

	"github.com/mohamed3ma/helios/geometry"
)

// Birth is one sampled particle birth event: the state a driver hands to
// geometry.Navigator.Locate to place the new particle (§4.H "build a
// particle at that state").
type Birth struct {
	Position  geometry.Vec3
	Direction geometry.Vec3
	Energy    float64
}

// Entry binds a distribution to the weight expression that scales its
// relative strength within a source (SPEC_FULL.md §12: weight expressions
// are user-supplied arithmetic strings evaluated with govaluate, the same
// role the teacher's VOCScale post-processing gives it).
type Entry struct {
	DistributionUserID string
	WeightExpr         string
}

type compiledEntry struct {
	dist *Distribution
	expr *govaluate.EvaluableExpression
}

// Source is a weighted sum of distributions (§4.H): sampling one particle
// picks a distribution by cumulative weight, then samples its marginals.
type Source struct {
	userID  string
	entries []compiledEntry
}

// NewSource compiles a source's weight expressions and binds each entry
// to its distribution, looked up by user id in dists.
func NewSource(userID string, entries []Entry, dists map[string]*Distribution) (*Source, error) {
	compiled := make([]compiledEntry, len(entries))
	for i, e := range entries {
		dist, ok := dists[e.DistributionUserID]
		if !ok {
			return nil, fmt.Errorf("source %q: no distribution staged with user id %q", userID, e.DistributionUserID)
		}
		expr, err := govaluate.NewEvaluableExpression(e.WeightExpr)
		if err != nil {
			return nil, fmt.Errorf("source %q: weight expression %q: %w", userID, e.WeightExpr, err)
		}
		compiled[i] = compiledEntry{dist: dist, expr: expr}
	}
	return &Source{userID: userID, entries: compiled}, nil
}

func (s *Source) UserID() string { return s.userID }

// SampleParticle picks a distribution by cumulative weight (weight
// expressions evaluated against params, e.g. burnup or time-dependent
// bias terms) and samples a birth event from it (§4.H).
func (s *Source) SampleParticle(rng *rand.Rand, params map[string]interface{}) (Birth, error) {
	weights := make([]float64, len(s.entries))
	var total float64
	for i, e := range s.entries {
		v, err := e.expr.Evaluate(params)
		if err != nil {
			return Birth{}, fmt.Errorf("source %q: evaluating weight expression: %w", s.userID, err)
		}
		w, ok := v.(float64)
		if !ok {
			return Birth{}, fmt.Errorf("source %q: weight expression did not evaluate to a number", s.userID)
		}
		weights[i] = w
		total += w
	}
	if total <= 0 || len(s.entries) == 0 {
		return Birth{}, fmt.Errorf("source %q: no positive-weight distribution to sample", s.userID)
	}

	target := rng.Float64() * total
	var cumulative float64
	chosen := s.entries[len(s.entries)-1].dist
	for i, w := range weights {
		cumulative += w
		if target <= cumulative {
			chosen = s.entries[i].dist
			break
		}
	}

	pos, dir, energy := chosen.Sample(rng)
	return Birth{Position: pos, Direction: dir, Energy: energy}, nil
}
