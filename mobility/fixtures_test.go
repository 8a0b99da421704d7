// SPDX-License-Identifier: MIT

package mobility_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/screwdof/mobility"
	"github.com/katalvlaran/screwdof/screw"
)

// js describes one joint of a test mechanism.
type js struct {
	id   int
	kind screw.Kind
	axis r3.Vec
	pos  r3.Vec
}

var zAxis = r3.Vec{Z: 1}

// build derives screws with the characteristic length of links and returns
// a ready-to-analyze Mechanism.
func build(tb testing.TB, joints []js, links [][2]int, rigid [][]int, base, ee int) mobility.Mechanism {
	tb.Helper()
	positions := make(map[int]r3.Vec, len(joints))
	for _, j := range joints {
		positions[j.id] = j.pos
	}
	l := screw.CharacteristicLength(positions, links)

	m := mobility.Mechanism{
		Links:       links,
		RigidBodies: rigid,
		Base:        base,
		EndEffector: ee,
		CharLength:  l,
	}
	for _, j := range joints {
		sj, err := screw.NewJoint(j.id, j.kind, j.axis, j.pos, l)
		require.NoError(tb, err)
		m.Joints = append(m.Joints, sj)
	}
	return m
}

// fourBar is a planar, non-parallelogram 4R loop A(0)–B(1)–C(2)–D(3).
func fourBar(tb testing.TB, base, ee int) mobility.Mechanism {
	return build(tb, []js{
		{0, screw.Revolute, zAxis, r3.Vec{}},
		{1, screw.Revolute, zAxis, r3.Vec{X: 2}},
		{2, screw.Revolute, zAxis, r3.Vec{X: 3, Y: 2}},
		{3, screw.Revolute, zAxis, r3.Vec{Y: 2}},
	}, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}, nil, base, ee)
}

// flatFourBar is a 4R loop with collinear joints and link lengths 1, 1, 1, 3:
// it only assembles in the flat configuration, where it is instantaneously
// mobile.
func flatFourBar(tb testing.TB) mobility.Mechanism {
	return build(tb, []js{
		{0, screw.Revolute, zAxis, r3.Vec{}},
		{1, screw.Revolute, zAxis, r3.Vec{X: 1}},
		{2, screw.Revolute, zAxis, r3.Vec{X: 2}},
		{3, screw.Revolute, zAxis, r3.Vec{X: 3}},
	}, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}, nil, 0, 1)
}

// foldedParallelogram is a parallelogram linkage (sides 2, 1, 2, 1) folded
// flat onto the x axis. Its parallel and crossed branches meet here.
func foldedParallelogram(tb testing.TB, base, ee int) mobility.Mechanism {
	return build(tb, []js{
		{0, screw.Revolute, zAxis, r3.Vec{}},
		{1, screw.Revolute, zAxis, r3.Vec{X: 2}},
		{2, screw.Revolute, zAxis, r3.Vec{X: 1}},
		{3, screw.Revolute, zAxis, r3.Vec{X: -1}},
	}, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}, nil, base, ee)
}

// triangle is a rigid 3R loop.
func triangle(tb testing.TB) mobility.Mechanism {
	return build(tb, []js{
		{0, screw.Revolute, zAxis, r3.Vec{}},
		{1, screw.Revolute, zAxis, r3.Vec{X: 1}},
		{2, screw.Revolute, zAxis, r3.Vec{Y: 1}},
	}, [][2]int{{0, 1}, {1, 2}, {2, 0}}, nil, 0, 2)
}

// serial2R is an open planar chain of two revolutes.
func serial2R(tb testing.TB) mobility.Mechanism {
	return build(tb, []js{
		{0, screw.Revolute, zAxis, r3.Vec{}},
		{1, screw.Revolute, zAxis, r3.Vec{X: 1}},
	}, [][2]int{{0, 1}}, nil, 0, 1)
}

// dangling is the four-bar with an extra joint hanging off B.
func dangling(tb testing.TB) mobility.Mechanism {
	return build(tb, []js{
		{0, screw.Revolute, zAxis, r3.Vec{}},
		{1, screw.Revolute, zAxis, r3.Vec{X: 2}},
		{2, screw.Revolute, zAxis, r3.Vec{X: 3, Y: 2}},
		{3, screw.Revolute, zAxis, r3.Vec{Y: 2}},
		{4, screw.Revolute, zAxis, r3.Vec{X: 4}},
	}, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {1, 4}}, nil, 0, 1)
}

// cartesian2P is two orthogonal prismatic joints.
func cartesian2P(tb testing.TB) mobility.Mechanism {
	return build(tb, []js{
		{0, screw.Prismatic, r3.Vec{X: 1}, r3.Vec{}},
		{1, screw.Prismatic, r3.Vec{Y: 1}, r3.Vec{X: 1}},
	}, [][2]int{{0, 1}}, nil, 0, 1)
}

// screwPair welds a revolute and a prismatic joint on the same axis.
func screwPair(tb testing.TB) mobility.Mechanism {
	return build(tb, []js{
		{0, screw.Revolute, zAxis, r3.Vec{}},
		{1, screw.Prismatic, zAxis, r3.Vec{Z: 1}},
	}, nil, [][]int{{0, 1}}, 0, 1)
}

// wrist is three revolutes whose axes meet at (1, 1, 0).
func wrist(tb testing.TB) mobility.Mechanism {
	c := r3.Vec{X: 1, Y: 1}
	return build(tb, []js{
		{0, screw.Revolute, r3.Vec{X: 1}, r3.Add(c, r3.Vec{X: 1})},
		{1, screw.Revolute, r3.Vec{Y: 1}, r3.Add(c, r3.Vec{Y: 1})},
		{2, screw.Revolute, r3.Vec{Z: 1}, r3.Add(c, r3.Vec{Z: 1})},
	}, [][2]int{{0, 1}, {1, 2}}, nil, 0, 2)
}

// fixtures lists every well-formed mechanism used by the property tests.
func fixtures(tb testing.TB) map[string]mobility.Mechanism {
	return map[string]mobility.Mechanism{
		"four-bar":      fourBar(tb, 0, 1),
		"flat four-bar": flatFourBar(tb),
		"folded":        foldedParallelogram(tb, 0, 1),
		"triangle":      triangle(tb),
		"serial 2R":     serial2R(tb),
		"dangling":      dangling(tb),
		"2P":            cartesian2P(tb),
		"screw pair":    screwPair(tb),
		"wrist":         wrist(tb),
	}
}
