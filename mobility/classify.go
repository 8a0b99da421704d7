// SPDX-License-Identifier: MIT
// Package mobility: motion classification.
// Labels are tested in a fixed order and the first match wins:
// Fixed, PureTranslation, PureRotation, Planar, Helical, Spherical,
// GeneralSpatial.

package mobility

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/screwdof/screw"
)

// classify labels the end-effector motion spanned by ts.
func classify(ts []screw.Screw, rank int, o *Options) MotionType {
	if rank == 0 {
		return Fixed
	}
	if all(ts, func(t screw.Screw) bool { return r3.Norm(t.Angular()) <= o.axisTol }) {
		return PureTranslation
	}
	if all(ts, func(t screw.Screw) bool { return r3.Norm(t.Linear()) <= o.axisTol }) {
		return PureRotation
	}
	if planar(ts, o.axisTol) {
		return Planar
	}
	if rank == 1 && helical(ts, o.axisTol) {
		return Helical
	}
	if spherical(ts, o) {
		return Spherical
	}
	return GeneralSpatial
}

func all(ts []screw.Screw, pred func(screw.Screw) bool) bool {
	for _, t := range ts {
		if !pred(t) {
			return false
		}
	}
	return true
}

// planar reports whether every rotation axis is parallel to one normal n
// and no twist has a linear component along n.
func planar(ts []screw.Screw, tol float64) bool {
	var n r3.Vec
	for _, t := range ts {
		if w := t.Angular(); r3.Norm(w) > tol {
			n = r3.Unit(w)
			break
		}
	}
	if n == (r3.Vec{}) {
		return false
	}
	for _, t := range ts {
		w := t.Angular()
		if r3.Norm(r3.Cross(w, n)) > tol*math.Max(1, r3.Norm(w)) {
			return false
		}
		if math.Abs(r3.Dot(t.Linear(), n)) > tol {
			return false
		}
	}
	return true
}

// helical reports a non-zero pitch on the first non-negligible twist.
func helical(ts []screw.Screw, tol float64) bool {
	for _, t := range ts {
		w := t.Angular()
		wn := r3.Norm(w)
		if wn <= tol {
			continue
		}
		return math.Abs(r3.Dot(w, t.Linear()))/wn > tol
	}
	return false
}

// spherical looks for a point c' (in characteristic-length units) with
// v_i = c' × ω_i for every twist, i.e. −[ω_i]ₓ c' = v_i, by least squares.
// A rank-deficient system or any solver failure means "not spherical".
func spherical(ts []screw.Screw, o *Options) bool {
	rows := 3 * len(ts)
	a := mat.NewDense(rows, 3, nil)
	b := mat.NewVecDense(rows, nil)
	for i, t := range ts {
		w, v := t.Angular(), t.Linear()
		// −[ω]ₓ
		block := [3][3]float64{
			{0, w.Z, -w.Y},
			{-w.Z, 0, w.X},
			{w.Y, -w.X, 0},
		}
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				a.Set(3*i+r, c, block[r][c])
			}
		}
		b.SetVec(3*i, v.X)
		b.SetVec(3*i+1, v.Y)
		b.SetVec(3*i+2, v.Z)
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDNone) {
		return false
	}
	sv := svd.Values(nil)
	if len(sv) < 3 || sv[2] <= o.axisTol*math.Max(1, sv[0]) {
		return false
	}

	var c mat.VecDense
	if err := c.SolveVec(a, b); err != nil {
		return false
	}
	var res mat.VecDense
	res.MulVec(a, &c)
	res.SubVec(&res, b)

	return mat.Norm(&res, 2) <= o.pointTol
}
