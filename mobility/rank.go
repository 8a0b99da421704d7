// SPDX-License-Identifier: MIT
// Package mobility: rank solver.
// The singular spectrum of M is computed over the active columns only; gauge
// columns contribute exact zeros at the front. The dof split is the largest
// admissible multiplicative gap of the remaining ascending spectrum.

package mobility

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// spectrum is the outcome of the rank stage.
type spectrum struct {
	values     []float64   // gauge zeros ++ ascending σ of the active columns
	free       []float64   // ascending σ of the active columns
	vectors    [][]float64 // right-singular vectors aligned with free
	dof        int         // candidate modes before the IDOF filter
	rawNullity int
}

// solveRank decomposes the constraint matrix and selects the candidate dof.
func solveRank(s *system, o *Options) (*spectrum, error) {
	free, vecs, err := decompose(s.matrix(s.joints), s.active)
	if err != nil {
		return nil, fail(StageRank, ErrNumeric, err)
	}

	gauge := s.gauge()
	values := make([]float64, gauge, gauge+len(free))
	values = append(values, free...) // never shorter than gauge; no free values means dof 0

	sp := &spectrum{values: values, free: free, vectors: vecs}
	for _, v := range values {
		if v < o.zeroTol {
			sp.rawNullity++
		}
	}
	sp.dof = selectDOF(free, o)

	o.logger.Debug("rank stage",
		zap.Float64s("spectrum", values),
		zap.Int("gauge_dof", gauge),
		zap.Int("raw_nullity", sp.rawNullity),
		zap.Int("candidates", sp.dof))

	return sp, nil
}

// decompose returns the n ascending singular values of m (padded with exact
// zeros when m has fewer rows than columns) and the matching right-singular
// vectors. A nil m stands for a matrix without rows: every value is zero
// and the vectors are the standard basis.
func decompose(m *mat.Dense, n int) ([]float64, [][]float64, error) {
	if n == 0 {
		return nil, nil, nil
	}
	if m == nil {
		vals := make([]float64, n)
		vecs := make([][]float64, n)
		for k := range vecs {
			vecs[k] = make([]float64, n)
			vecs[k][k] = 1
		}
		return vals, vecs, nil
	}
	if err := checkFinite(m); err != nil {
		return nil, nil, err
	}

	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDFull) {
		r, c := m.Dims()
		return nil, nil, fmt.Errorf("svd of %d×%d matrix did not converge", r, c)
	}
	desc := make([]float64, n)
	copy(desc, svd.Values(nil))
	var v mat.Dense
	svd.VTo(&v)

	vals := make([]float64, n)
	vecs := make([][]float64, n)
	for k := 0; k < n; k++ {
		src := n - 1 - k
		vals[k] = desc[src]
		vecs[k] = mat.Col(nil, src, &v)
	}
	return vals, vecs, nil
}

// checkFinite rejects NaN and ±Inf entries.
func checkFinite(m *mat.Dense) error {
	raw := m.RawMatrix()
	for r := 0; r < raw.Rows; r++ {
		row := raw.Data[r*raw.Stride : r*raw.Stride+raw.Cols]
		for c, x := range row {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("non-finite matrix entry (%d,%d) = %g", r, c, x)
			}
		}
	}
	return nil
}

// selectDOF picks the number of freedom directions in an ascending spectrum.
//
// A split after index i is admissible when s[i] ≤ freedom_ceiling and
// s[i+1]/max(s[i], gapFloor) ≥ gap_threshold; the largest ratio wins and
// ties keep the smaller count. A spectrum entirely below the ceiling is all
// freedom. Anything else has no freedom.
func selectDOF(s []float64, o *Options) int {
	n := len(s)
	if n == 0 {
		return 0
	}
	if s[n-1] <= o.freedomCeiling {
		return n
	}

	best, bestRatio := 0, 0.0
	for i := 0; i < n-1; i++ {
		if s[i] > o.freedomCeiling {
			break // ascending: no later split is admissible
		}
		ratio := s[i+1] / math.Max(s[i], gapFloor)
		if ratio >= o.gapThreshold && ratio > bestRatio {
			best, bestRatio = i+1, ratio
		}
	}
	return best
}
