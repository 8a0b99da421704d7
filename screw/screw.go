package screw

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// MinAxisNorm is the smallest axis length accepted by NewJoint.
const MinAxisNorm = 1e-12

// MinLinkLength is the shortest link that contributes to CharacteristicLength.
// Shorter links are treated as virtual (coincident joints).
const MinLinkLength = 1e-6

// NewJoint builds a Joint and derives its screw with characteristic length l.
//
// Revolute:  ω = axis/|axis|, v = (pos × ω)/l.
// Prismatic: ω = 0,           v = axis/|axis|.
func NewJoint(id int, kind Kind, axis, pos r3.Vec, l float64) (Joint, error) {
	if !finiteVec(axis) || !finiteVec(pos) {
		return Joint{}, fmt.Errorf("joint %d: %w", id, ErrNonFinite)
	}
	if !(l > 0) || math.IsInf(l, 0) {
		return Joint{}, fmt.Errorf("joint %d: %w (got %g)", id, ErrBadLength, l)
	}
	n := r3.Norm(axis)
	if n < MinAxisNorm {
		return Joint{}, fmt.Errorf("joint %d: %w", id, ErrZeroAxis)
	}
	dir := r3.Scale(1/n, axis)

	var s Screw
	switch kind {
	case Revolute:
		s = FromParts(dir, r3.Scale(1/l, r3.Cross(pos, dir)))
	case Prismatic:
		s = FromParts(r3.Vec{}, dir)
	default:
		return Joint{}, fmt.Errorf("joint %d: %w: %v", id, ErrBadKind, kind)
	}

	return Joint{ID: id, Kind: kind, Axis: axis, Position: pos, Screw: s}, nil
}

// Perturbed returns a copy of j displaced by disp and with its axis rotated
// by the small rotation vector rot (a' = a + rot × a). The screw is rebuilt
// with characteristic length l.
func (j Joint) Perturbed(disp, rot r3.Vec, l float64) (Joint, error) {
	axis := r3.Add(j.Axis, r3.Cross(rot, j.Axis))
	return NewJoint(j.ID, j.Kind, axis, r3.Add(j.Position, disp), l)
}

// PointVelocity returns the velocity of point p under twist t, where t's
// linear part is expressed in units scaled by l (as produced by NewJoint).
func PointVelocity(t Screw, p r3.Vec, l float64) r3.Vec {
	return r3.Add(r3.Cross(t.Angular(), p), r3.Scale(l, t.Linear()))
}

// CharacteristicLength returns the mean length of the links whose endpoints
// are further apart than MinLinkLength. Links referencing unknown ids are
// skipped. With no qualifying link the result is 1.0.
func CharacteristicLength(positions map[int]r3.Vec, links [][2]int) float64 {
	var (
		sum   float64
		count int
	)
	for _, lk := range links {
		a, okA := positions[lk[0]]
		b, okB := positions[lk[1]]
		if !okA || !okB {
			continue
		}
		if d := r3.Norm(r3.Sub(a, b)); d > MinLinkLength {
			sum += d
			count++
		}
	}
	if count == 0 {
		return 1.0
	}

	return sum / float64(count)
}

func finiteVec(v r3.Vec) bool {
	for _, x := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
