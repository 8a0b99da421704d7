// SPDX-License-Identifier: MIT
// Package mobility: instantaneous-mode filter.
// A direction of the candidate space is replayed as a small finite
// displacement of the geometry along itself. Directions that stay in the
// near-null band of their own perturbed system are finite; the rest exist
// only at the current configuration.

package mobility

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/screwdof/screw"
	"github.com/katalvlaran/screwdof/topology"
)

// filterModes returns the finite modes (unit vectors over the active
// columns) and the number of instantaneous ones.
//
// Steps:
//  1. score(q) perturbs the geometry along q itself and measures how much of
//     q falls outside the perturbed near-null band (σ < idof_band).
//  2. If every candidate and every pairwise mixture of candidates scores
//     below persistenceCut, the singular basis is kept as is.
//  3. Otherwise finite directions are grown greedily: the unit direction of
//     the remaining candidate span with the lowest worst-case score (itself
//     and its mixtures with the directions already accepted) is accepted
//     while that score stays below persistenceCut, then removed from the span.
//  4. Whatever is left of the span is instantaneous.
//
// At a bifurcation every branch tangent survives its own perturbation while
// mixtures of two branches do not, so exactly one branch is kept.
func filterModes(s *system, sp *spectrum, o *Options) ([][]float64, int, error) {
	k := sp.dof
	if k == 0 {
		return nil, 0, nil
	}
	cands := sp.vectors[:k]
	sc := &modeScorer{s: s, o: o}

	// 2. shortcut for regular configurations
	if sc.persists(cands) {
		out := make([][]float64, k)
		for i, c := range cands {
			out[i] = append([]float64(nil), c...)
		}
		return out, 0, nil
	}
	if sc.err != nil {
		return nil, 0, fail(StageFilter, ErrNumeric, sc.err)
	}

	// 3. greedy growth of the finite subspace
	span := make([][]float64, k)
	for i, c := range cands {
		span[i] = append([]float64(nil), c...)
	}
	var finite [][]float64
	for len(span) > 0 {
		q, w := sc.minimize(span, finite)
		if sc.err != nil {
			return nil, 0, fail(StageFilter, ErrNumeric, sc.err)
		}
		o.logger.Debug("idof direction",
			zap.Int("accepted", len(finite)),
			zap.Float64("score", w))
		if w >= persistenceCut {
			break
		}
		finite = append(finite, q)
		span = deflate(span, q)
	}

	return finite, k - len(finite), nil
}

const (
	// angleSteps is the grid resolution of a plane search over [0, π).
	angleSteps = 36
	// goldenIters refines the best grid angle.
	goldenIters = 40
	// planeSweeps bounds the cyclic plane searches of minimize.
	planeSweeps = 3
)

// modeScorer evaluates candidate directions against their own perturbation.
// The first numeric failure is recorded in err; later scores return 1.
type modeScorer struct {
	s   *system
	o   *Options
	err error
}

// score returns 1 − ‖Nᵀq‖² where N spans the near-null band of the system
// perturbed along the unit vector q: 0 when q survives, 1 when it is lost.
func (sc *modeScorer) score(q []float64) float64 {
	if sc.err != nil {
		return 1
	}
	perturbed, err := sc.s.perturb(q, sc.o.idofEps)
	if err != nil {
		sc.err = err
		return 1
	}
	vals, vecs, err := decompose(sc.s.matrix(perturbed), sc.s.active)
	if err != nil {
		sc.err = err
		return 1
	}
	kept := 0.0
	for i, v := range vals {
		if v >= sc.o.idofBand {
			break // ascending
		}
		d := floats.Dot(vecs[i], q)
		kept += d * d
	}
	return math.Max(0, 1-kept)
}

// worst is the largest score of q and of its mixtures (f ± q)/√2 with every
// accepted direction f.
func (sc *modeScorer) worst(q []float64, accepted [][]float64) float64 {
	w := sc.score(q)
	for _, f := range accepted {
		for _, sign := range [2]float64{1, -1} {
			w = math.Max(w, sc.score(mix(f, q, sign)))
		}
	}
	return w
}

// persists reports whether the whole candidate set passes worst.
func (sc *modeScorer) persists(cands [][]float64) bool {
	for i, c := range cands {
		if sc.worst(c, cands[:i]) >= persistenceCut {
			return false
		}
	}
	return sc.err == nil
}

// minimize searches the unit sphere of span(basis) for the lowest worst
// score with cyclic plane searches started from the best basis vector.
func (sc *modeScorer) minimize(basis, accepted [][]float64) ([]float64, float64) {
	q, best := basis[0], sc.worst(basis[0], accepted)
	for _, b := range basis[1:] {
		if w := sc.worst(b, accepted); w < best {
			q, best = b, w
		}
	}

	for sweep := 0; sweep < planeSweeps && len(basis) > 1; sweep++ {
		improved := false
		for _, b := range basis {
			p := orthonormal(b, q)
			if p == nil {
				continue
			}
			if cand, w := sc.planeSearch(q, p, accepted); w < best {
				q, best, improved = cand, w, true
			}
		}
		if !improved {
			break
		}
	}
	return append([]float64(nil), q...), best
}

// planeSearch minimizes worst over cos θ·q + sin θ·p, θ ∈ [0, π): a coarse
// grid followed by golden-section refinement around the best grid angle.
func (sc *modeScorer) planeSearch(q, p []float64, accepted [][]float64) ([]float64, float64) {
	at := func(theta float64) []float64 {
		v := make([]float64, len(q))
		floats.AddScaled(v, math.Cos(theta), q)
		floats.AddScaled(v, math.Sin(theta), p)
		return v
	}
	f := func(theta float64) float64 { return sc.worst(at(theta), accepted) }

	h := math.Pi / angleSteps
	bestTheta, best := 0.0, math.Inf(1)
	for i := 1; i < angleSteps; i++ { // θ = 0 is q itself
		theta := float64(i) * h
		if w := f(theta); w < best {
			bestTheta, best = theta, w
		}
	}

	// golden section on [bestTheta − h, bestTheta + h]
	const invPhi = 0.6180339887498949
	a, b := bestTheta-h, bestTheta+h
	c, d := b-invPhi*(b-a), a+invPhi*(b-a)
	fc, fd := f(c), f(d)
	for it := 0; it < goldenIters; it++ {
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - invPhi*(b-a)
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*(b-a)
			fd = f(d)
		}
	}
	if fc < best {
		bestTheta, best = c, fc
	}
	if fd < best {
		bestTheta, best = d, fd
	}
	return at(bestTheta), best
}

// mix returns (f + sign·q)/√2, a unit vector when f ⊥ q are unit vectors.
func mix(f, q []float64, sign float64) []float64 {
	v := append([]float64(nil), f...)
	floats.AddScaled(v, sign, q)
	floats.Scale(1/math.Sqrt2, v)
	return v
}

// orthonormal returns b with its q component removed, normalized; nil when
// b is (nearly) parallel to the unit vector q.
func orthonormal(b, q []float64) []float64 {
	v := append([]float64(nil), b...)
	floats.AddScaled(v, -floats.Dot(v, q), q)
	n := floats.Norm(v, 2)
	if n < 1e-8 {
		return nil
	}
	floats.Scale(1/n, v)
	return v
}

// deflate returns an orthonormal basis of the part of span(basis) orthogonal
// to the unit vector q, which lies in that span.
func deflate(basis [][]float64, q []float64) [][]float64 {
	out := make([][]float64, 0, len(basis)-1)
	for _, b := range basis {
		if len(out) == len(basis)-1 {
			break
		}
		v := orthonormal(b, q)
		for _, u := range out {
			if v == nil {
				break
			}
			v = orthonormal(v, u)
		}
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

// perturb displaces every joint of the analyzed component by eps times the
// velocity of its position under the twist accumulated from the base along
// the spanning tree, and rotates its axis by eps·ω.
//
// The lowest-index tree link at the root is held fixed; every other root
// link turns relative to it, so joint rates act between the same pair of
// links as in the loop equations.
func (s *system) perturb(q []float64, eps float64) ([]screw.Joint, error) {
	f := s.forest
	ground := topology.ToolLink
	for _, c := range f.Order[1:] {
		if f.Parent[c] == f.Root && f.ParentLink[c] < ground {
			ground = f.ParentLink[c]
		}
	}

	twist := make([]screw.Screw, len(s.joints))
	for _, c := range f.Order[1:] {
		p := f.Parent[c]
		in := f.ParentLink[p]
		if p == f.Root {
			if f.ParentLink[c] == ground {
				continue // moves with the fixed link
			}
			in = ground
		}
		sign := topology.Orientation(in, f.ParentLink[c])
		twist[c] = twist[p].Add(s.joints[p].Screw.Scale(sign * s.rate(q, p)))
	}

	out := append([]screw.Joint(nil), s.joints...)
	for _, c := range f.Order {
		j := s.joints[c]
		disp := r3.Scale(eps, screw.PointVelocity(twist[c], j.Position, s.length))
		rot := r3.Scale(eps, twist[c].Angular())
		pj, err := j.Perturbed(disp, rot, s.length)
		if err != nil {
			return nil, err
		}
		out[c] = pj
	}
	return out, nil
}
