package source_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamed3ma/helios/geometry"
	"github.com/mohamed3ma/helios/source"
)

func point(x float64) *source.Distribution {
	return &source.Distribution{
		Position:  source.PointPosition{Point: geometry.Vec3{X: x}},
		Direction: source.MonoDirection{Direction: geometry.Vec3{X: 1}},
		Energy:    source.MonoEnergy{Energy: 1},
	}
}

func TestNewSourceFailsOnUnknownDistribution(t *testing.T) {
	_, err := source.NewSource("s", []source.Entry{{DistributionUserID: "missing", WeightExpr: "1"}}, nil)
	require.Error(t, err)
}

func TestNewSourceFailsOnInvalidWeightExpression(t *testing.T) {
	dists := map[string]*source.Distribution{"d1": point(0)}
	_, err := source.NewSource("s", []source.Entry{{DistributionUserID: "d1", WeightExpr: "(("}}, dists)
	require.Error(t, err)
}

func TestSampleParticleAlwaysPicksTheOnlyPositiveWeightEntry(t *testing.T) {
	dists := map[string]*source.Distribution{
		"left":  point(-10),
		"right": point(10),
	}
	src, err := source.NewSource("s", []source.Entry{
		{DistributionUserID: "left", WeightExpr: "0"},
		{DistributionUserID: "right", WeightExpr: "1"},
	}, dists)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 20; i++ {
		birth, err := src.SampleParticle(rng, nil)
		require.NoError(t, err)
		assert.Equal(t, 10.0, birth.Position.X)
	}
}

func TestSampleParticleWeightExpressionUsesParams(t *testing.T) {
	dists := map[string]*source.Distribution{
		"a": point(1),
		"b": point(2),
	}
	src, err := source.NewSource("s", []source.Entry{
		{DistributionUserID: "a", WeightExpr: "bias"},
		{DistributionUserID: "b", WeightExpr: "1 - bias"},
	}, dists)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	birth, err := src.SampleParticle(rng, map[string]interface{}{"bias": 1.0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, birth.Position.X, "bias=1 puts all weight on distribution a")
}

func TestSampleParticleFailsWhenAllWeightsAreZero(t *testing.T) {
	dists := map[string]*source.Distribution{"a": point(0)}
	src, err := source.NewSource("s", []source.Entry{{DistributionUserID: "a", WeightExpr: "0"}}, dists)
	require.NoError(t, err)

	_, err = src.SampleParticle(rand.New(rand.NewSource(1)), nil)
	assert.Error(t, err)
}

func TestSampleParticleFailsWhenExpressionDoesNotEvaluateToANumber(t *testing.T) {
	dists := map[string]*source.Distribution{"a": point(0)}
	src, err := source.NewSource("s", []source.Entry{{DistributionUserID: "a", WeightExpr: `"not a number"`}}, dists)
	require.NoError(t, err)

	_, err = src.SampleParticle(rand.New(rand.NewSource(1)), nil)
	assert.Error(t, err)
}

func TestSourceUserID(t *testing.T) {
	dists := map[string]*source.Distribution{"a": point(0)}
	src, err := source.NewSource("s1", []source.Entry{{DistributionUserID: "a", WeightExpr: "1"}}, dists)
	require.NoError(t, err)
	assert.Equal(t, "s1", src.UserID())
}
