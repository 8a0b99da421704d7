// SPDX-License-Identifier: MIT

package mobility

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/screwdof/screw"
)

// pathTwist sums the signed, rate-weighted screws along candidate path k.
func (s *system) pathTwist(q []float64, k int) screw.Screw {
	var t screw.Screw
	for i, j := range s.paths[k] {
		t = t.Add(s.joints[j].Screw.Scale(s.signs[k][i] * s.rate(q, j)))
	}
	return t
}

// mapTwists propagates every finite mode to the end-effector along the
// chosen path and returns the twists with their numeric rank. When the path
// was found automatically, every other shortest candidate must propagate
// the same twists; otherwise the traversal is ambiguous.
func mapTwists(s *system, modes [][]float64, o *Options) ([]screw.Screw, int, error) {
	twists := make([]screw.Screw, len(modes))
	for m, q := range modes {
		twists[m] = s.pathTwist(q, 0)
		for k := 1; k < len(s.paths); k++ {
			diff := s.pathTwist(q, k).Add(twists[m].Scale(-1)).Norm()
			if diff > o.axisTol*math.Max(1, twists[m].Norm()) {
				return nil, 0, fail(StageTwist, ErrAmbiguousPath, s.res.Ambiguous(k))
			}
		}
	}

	rank, err := twistRank(twists, o.zeroTol)
	if err != nil {
		return nil, 0, fail(StageTwist, ErrNumeric, err)
	}
	return twists, rank, nil
}

// twistRank counts singular values above tol·max(1, σ_max) of the stacked twists.
func twistRank(ts []screw.Screw, tol float64) (int, error) {
	if len(ts) == 0 {
		return 0, nil
	}
	data := make([]float64, 0, 6*len(ts))
	for _, t := range ts {
		data = append(data, t[:]...)
	}
	m := mat.NewDense(len(ts), 6, data)
	if err := checkFinite(m); err != nil {
		return 0, err
	}

	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDNone) {
		return 0, fmt.Errorf("svd of %d twists did not converge", len(ts))
	}
	vals := svd.Values(nil)
	cut := tol * math.Max(1, vals[0])
	rank := 0
	for _, v := range vals {
		if v > cut {
			rank++
		}
	}
	return rank, nil
}

// details records, per finite mode, the joint rates and the signed rate of
// every loop step.
func (s *system) details(modes [][]float64) []DOFDetail {
	out := make([]DOFDetail, 0, len(modes))
	for m, q := range modes {
		d := DOFDetail{Mode: m + 1, JointRates: make(map[int]float64)}
		for i, in := range s.forest.InComponent {
			if in {
				d.JointRates[s.g.ID(i)] = s.rate(q, i)
			}
		}
		for l, lp := range s.forest.Loops {
			n := len(lp.Joints)
			for i, j := range lp.Joints {
				d.Velocities = append(d.Velocities, EdgeVelocity{
					Loop:     l,
					From:     s.g.ID(lp.Joints[(i-1+n)%n]),
					To:       s.g.ID(j),
					Velocity: lp.Signs[i] * s.rate(q, j),
				})
			}
		}
		out = append(out, d)
	}
	return out
}
