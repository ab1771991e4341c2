package material_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmat "gonum.org/v1/gonum/mat"

	"github.com/mohamed3ma/helios/ace"
	"github.com/mohamed3ma/helios/material"
)

func buildHydrogenTable(t *testing.T) *ace.Table {
	t.Helper()
	esz := ace.NewESZBlock(
		[]float64{1e-2, 1, 100},
		[]float64{4, 2, 1},
		[]float64{0, 0, 0},
		[]float64{4, 2, 1},
		[]float64{0, 0, 0},
	)
	var nxs [16]int
	nxs[2] = 3
	var jxs [32]int
	jxs[ace.SlotESZ] = 1
	xss := esz.Dump()
	nxs[0] = len(xss)

	tbl, err := ace.Parse(ace.Header{ZAID: "1001.70c"}, nxs, jxs, xss)
	require.NoError(t, err)
	return tbl
}

func TestNuclideMicroXSLogLinearInterp(t *testing.T) {
	n, err := material.NewNuclide("H1", buildHydrogenTable(t))
	require.NoError(t, err)

	// Midpoint in log-energy between 1 and 100 (ln100 = 2*ln10, so xq=10
	// lands exactly halfway): xs is linear in that fraction from 2 to 1.
	xs, err := n.MicroXS(material.ReactionTotal, 10)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, xs, 1e-9)
}

func TestNuclideMicroXSClampsOutsideRange(t *testing.T) {
	n, err := material.NewNuclide("H1", buildHydrogenTable(t))
	require.NoError(t, err)

	low, err := n.MicroXS(material.ReactionTotal, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, 4.0, low)

	high, err := n.MicroXS(material.ReactionTotal, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1.0, high)
}

func TestNuclideRejectsTableWithoutESZ(t *testing.T) {
	var nxs [16]int
	var jxs [32]int
	tbl, err := ace.Parse(ace.Header{ZAID: "bare"}, nxs, jxs, nil)
	require.NoError(t, err)

	_, err = material.NewNuclide("bare", tbl)
	require.Error(t, err)
	assert.IsType(t, material.MaterialResolutionError{}, err)
}

func TestMaterialMacroscopicXSWeightsByComposition(t *testing.T) {
	n, err := material.NewNuclide("H1", buildHydrogenTable(t))
	require.NoError(t, err)

	mat := material.NewMaterial("water", 0.1, []material.Composition{
		{NuclideUserID: "H1", AtomicFraction: 2},
	})
	require.NoError(t, mat.Resolve(func(id string) (*material.Nuclide, error) {
		if id == "H1" {
			return n, nil
		}
		return nil, material.MaterialResolutionError{NuclideID: id, Reason: "not staged"}
	}))

	sigma, err := mat.MacroscopicXS(material.ReactionTotal, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.1*2*2, sigma, 1e-9)
}

func TestMaterialResolveFailsOnUnknownNuclide(t *testing.T) {
	mat := material.NewMaterial("bad", 1, []material.Composition{{NuclideUserID: "missing", AtomicFraction: 1}})
	err := mat.Resolve(func(id string) (*material.Nuclide, error) {
		return nil, material.MaterialResolutionError{NuclideID: id, Reason: "not staged"}
	})
	require.Error(t, err)
	assert.IsType(t, material.MaterialResolutionError{}, err)
}

func buildHydrogenTableWithITIE(t *testing.T) *ace.Table {
	t.Helper()
	esz := ace.NewESZBlock(
		[]float64{1e-2, 1, 100},
		[]float64{4, 2, 1},
		[]float64{0, 0, 0},
		[]float64{4, 2, 1},
		[]float64{0, 0, 0},
	)
	itie := ace.NewITIEBlock([]float64{1e-5, 1, 100}, []float64{0.1, 0.2, 0.3})

	var nxs [16]int
	nxs[2] = 3
	var jxs [32]int
	jxs[ace.SlotESZ] = 1
	jxs[ace.SlotITIE] = esz.Size() + 1

	xss := append(append([]float64(nil), esz.Dump()...), itie.Dump()...)
	nxs[0] = len(xss)

	tbl, err := ace.Parse(ace.Header{ZAID: "1001.70c"}, nxs, jxs, xss)
	require.NoError(t, err)
	return tbl
}

func TestNuclideScatteringMatrixArrangesEnergyAndXSRows(t *testing.T) {
	n, err := material.NewNuclide("H1", buildHydrogenTableWithITIE(t))
	require.NoError(t, err)

	m := n.ScatteringMatrix()
	require.NotNil(t, m)
	rows, cols := m.Dims()
	require.Equal(t, 2, rows)
	require.Equal(t, 3, cols)
	assert.Equal(t, []float64{1e-5, 1, 100}, gmat.Row(nil, 0, m))
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, gmat.Row(nil, 1, m))
}

func TestNuclideScatteringMatrixNilWithoutITIE(t *testing.T) {
	n, err := material.NewNuclide("H1", buildHydrogenTable(t))
	require.NoError(t, err)
	assert.Nil(t, n.ScatteringMatrix())
}
