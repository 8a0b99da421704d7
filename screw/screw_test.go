package screw_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/screwdof/screw"
)

// TestNewJoint_Revolute checks unit angular part and moment scaled by L.
func TestNewJoint_Revolute(t *testing.T) {
	j, err := screw.NewJoint(7, screw.Revolute, r3.Vec{Z: 2}, r3.Vec{X: 1}, 2.0)
	require.NoError(t, err)

	assert.Equal(t, 7, j.ID)
	assert.InDelta(t, 1.0, r3.Norm(j.Screw.Angular()), 1e-12)
	// (1,0,0) × (0,0,1) = (0,-1,0); divided by L=2
	assert.InDeltaSlice(t, []float64{0, 0, 1, 0, -0.5, 0}, j.Screw[:], 1e-12)
}

// TestNewJoint_Prismatic checks zero angular part and unit linear part.
func TestNewJoint_Prismatic(t *testing.T) {
	j, err := screw.NewJoint(1, screw.Prismatic, r3.Vec{X: 3, Y: 4}, r3.Vec{X: 10, Y: 10}, 5.0)
	require.NoError(t, err)

	assert.Equal(t, r3.Vec{}, j.Screw.Angular())
	assert.InDelta(t, 1.0, r3.Norm(j.Screw.Linear()), 1e-12)
	assert.InDeltaSlice(t, []float64{0, 0, 0, 0.6, 0.8, 0}, j.Screw[:], 1e-12)
}

// TestNewJoint_Errors covers every sentinel.
func TestNewJoint_Errors(t *testing.T) {
	_, err := screw.NewJoint(1, screw.Revolute, r3.Vec{}, r3.Vec{}, 1)
	assert.ErrorIs(t, err, screw.ErrZeroAxis)

	_, err = screw.NewJoint(1, screw.Revolute, r3.Vec{X: math.NaN()}, r3.Vec{}, 1)
	assert.ErrorIs(t, err, screw.ErrNonFinite)

	_, err = screw.NewJoint(1, screw.Revolute, r3.Vec{Z: 1}, r3.Vec{Y: math.Inf(1)}, 1)
	assert.ErrorIs(t, err, screw.ErrNonFinite)

	_, err = screw.NewJoint(1, screw.Revolute, r3.Vec{Z: 1}, r3.Vec{}, 0)
	assert.ErrorIs(t, err, screw.ErrBadLength)

	_, err = screw.NewJoint(1, screw.Kind(9), r3.Vec{Z: 1}, r3.Vec{}, 1)
	assert.ErrorIs(t, err, screw.ErrBadKind)
}

func TestParseKind(t *testing.T) {
	k, err := screw.ParseKind(" r ")
	require.NoError(t, err)
	assert.Equal(t, screw.Revolute, k)

	k, err = screw.ParseKind("P")
	require.NoError(t, err)
	assert.Equal(t, screw.Prismatic, k)
	assert.Equal(t, "P", k.String())

	_, err = screw.ParseKind("S")
	assert.ErrorIs(t, err, screw.ErrBadKind)
}

// TestCharacteristicLength skips degenerate links and defaults to 1.
func TestCharacteristicLength(t *testing.T) {
	pos := map[int]r3.Vec{
		0: {},
		1: {X: 2},
		2: {X: 2, Y: 4},
		3: {X: 2, Y: 4}, // coincident with 2
	}
	l := screw.CharacteristicLength(pos, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 99}})
	assert.InDelta(t, 3.0, l, 1e-12)

	assert.Equal(t, 1.0, screw.CharacteristicLength(pos, nil))
	assert.Equal(t, 1.0, screw.CharacteristicLength(pos, [][2]int{{2, 3}}))
}

// TestPerturbed verifies that the screw follows the displaced geometry.
func TestPerturbed(t *testing.T) {
	j, err := screw.NewJoint(0, screw.Revolute, r3.Vec{Z: 1}, r3.Vec{}, 1)
	require.NoError(t, err)

	moved, err := j.Perturbed(r3.Vec{X: 1}, r3.Vec{}, 1)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 1}, moved.Position)
	assert.InDeltaSlice(t, []float64{0, 0, 1, 0, -1, 0}, moved.Screw[:], 1e-12)

	// small rotation about x tilts a z axis towards -y
	tilted, err := j.Perturbed(r3.Vec{}, r3.Vec{X: 1e-3}, 1)
	require.NoError(t, err)
	assert.Less(t, tilted.Screw[1], 0.0)
	assert.InDelta(t, 1.0, r3.Norm(tilted.Screw.Angular()), 1e-12)
}

func TestPointVelocity(t *testing.T) {
	// rotation about z through the origin moves (1,0,0) along +y
	tw := screw.Screw{0, 0, 1, 0, 0, 0}
	v := screw.PointVelocity(tw, r3.Vec{X: 1}, 2)
	assert.InDelta(t, 1.0, v.Y, 1e-12)

	// linear part is rescaled by L
	tw = screw.Screw{0, 0, 0, 1, 0, 0}
	v = screw.PointVelocity(tw, r3.Vec{X: 5}, 2)
	assert.InDelta(t, 2.0, v.X, 1e-12)
}

func TestScrewOps(t *testing.T) {
	a := screw.Screw{1, 0, 0, 0, 2, 0}
	b := screw.Screw{0, 1, 0, 0, 0, 3}
	assert.Equal(t, screw.Screw{1, 1, 0, 0, 2, 3}, a.Add(b))
	assert.Equal(t, screw.Screw{2, 0, 0, 0, 4, 0}, a.Scale(2))
	assert.Equal(t, 0.0, a.Dot(b))
	assert.InDelta(t, math.Sqrt(5), a.Norm(), 1e-12)
	assert.True(t, a.IsFinite())
	assert.False(t, screw.Screw{math.NaN()}.IsFinite())
}
