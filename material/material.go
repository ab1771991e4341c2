package material

import (
	"sync"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// Composition is one nuclide's atomic fraction within a material.
type Composition struct {
	NuclideUserID  string
	AtomicFraction float64
}

// Material is an atomic-density-weighted mixture of nuclides (§3
// "Material", §4.F). It does not pre-union its nuclides' energy grids —
// MacroscopicXS looks each one up independently at query time.
type Material struct {
	userID      string
	internalID  int
	density     float64 // atoms/(barn·cm)
	composition []Composition
	nuclides    []*Nuclide // resolved, parallel to composition

	// queryCache remembers the last macroscopic cross-section computed
	// per reaction so repeated queries at the same energy (common across
	// a batch of histories sampling the same tally bin) skip the
	// per-nuclide interpolation sweep. Row 0 holds the query energy, row
	// 1 the resulting Σ_r; a cache miss is any energy that doesn't match
	// row 0 within floating-point equality. §5 shares a Material across
	// worker goroutines with no synchronization on the read-only fields
	// set up by Resolve, but this cache is written on every query, so it
	// carries its own lock rather than relying on that guarantee.
	queryCacheMu sync.RWMutex
	queryCache   map[Reaction]*sparse.DenseArray
}

// NewMaterial builds an unresolved material. Resolve must be called
// before MacroscopicXS to bind each composition entry to a loaded
// Nuclide.
func NewMaterial(userID string, density float64, composition []Composition) *Material {
	return &Material{
		userID:      userID,
		density:     density,
		composition: append([]Composition(nil), composition...),
		queryCache:  make(map[Reaction]*sparse.DenseArray),
	}
}

func (m *Material) UserID() string       { return m.userID }
func (m *Material) InternalID() int      { return m.internalID }
func (m *Material) SetInternalID(id int) { m.internalID = id }
func (m *Material) Density() float64     { return m.density }

// Resolve binds each composition entry to its Nuclide via lookup. Fails
// with MaterialResolutionError naming the first unresolvable nuclide id.
func (m *Material) Resolve(lookup func(userID string) (*Nuclide, error)) error {
	nuclides := make([]*Nuclide, len(m.composition))
	for i, c := range m.composition {
		n, err := lookup(c.NuclideUserID)
		if err != nil {
			return MaterialResolutionError{NuclideID: c.NuclideUserID, Reason: err.Error()}
		}
		nuclides[i] = n
	}
	m.nuclides = nuclides
	return nil
}

// MacroscopicXS computes Σ_r(E) = N · Σᵢ aᵢ·σ_{r,i}(E) (§4.F): the
// material's atomic density times the composition-weighted sum of each
// resolved nuclide's microscopic cross-section at E, looked up
// independently on that nuclide's own energy grid.
func (m *Material) MacroscopicXS(reaction Reaction, energy float64) (float64, error) {
	if cached, ok := m.cachedValue(reaction, energy); ok {
		return cached, nil
	}

	micro := make([]float64, len(m.nuclides))
	fraction := make([]float64, len(m.composition))
	for i, n := range m.nuclides {
		x, err := n.MicroXS(reaction, energy)
		if err != nil {
			return 0, err
		}
		micro[i] = x
		fraction[i] = m.composition[i].AtomicFraction
	}
	sigma := m.density * floats.Dot(fraction, micro)
	m.storeCache(reaction, energy, sigma)
	return sigma, nil
}

func (m *Material) cachedValue(reaction Reaction, energy float64) (float64, bool) {
	m.queryCacheMu.RLock()
	defer m.queryCacheMu.RUnlock()
	row, ok := m.queryCache[reaction]
	if !ok {
		return 0, false
	}
	if row.Get(0) != energy {
		return 0, false
	}
	return row.Get(1), true
}

func (m *Material) storeCache(reaction Reaction, energy, value float64) {
	row := sparse.ZerosDense(2)
	row.Set(energy, 0)
	row.Set(value, 1)
	m.queryCacheMu.Lock()
	defer m.queryCacheMu.Unlock()
	m.queryCache[reaction] = row
}
