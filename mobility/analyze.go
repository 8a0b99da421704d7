// SPDX-License-Identifier: MIT

package mobility

import (
	"fmt"

	"go.uber.org/zap"
)

// Analyze computes the mobility of m.
//
// Stages, in order: options → graph/path validation → assembly → rank →
// instantaneous-mode filter → end-effector twists → classification. The
// first failure is returned as an *Error; panics raised by numeric kernels
// are recovered into ErrNumeric. Analyze holds no state and is safe for
// concurrent use.
func Analyze(m Mechanism, opts ...Option) (res *Result, err error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, fail(StageOptions, ErrOption, o.err)
	}

	stage := StageGraph
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fail(stage, ErrNumeric, fmt.Errorf("recovered panic: %v", r))
		}
	}()

	s, err := assemble(m, o.logger)
	if err != nil {
		return nil, err
	}

	stage = StageRank
	sp, err := solveRank(s, &o)
	if err != nil {
		return nil, err
	}

	stage = StageFilter
	modes, idof, err := filterModes(s, sp, &o)
	if err != nil {
		return nil, err
	}

	stage = StageTwist
	twists, rank, err := mapTwists(s, modes, &o)
	if err != nil {
		return nil, err
	}

	stage = StageClassify
	motion := classify(twists, rank, &o)

	res = &Result{
		Connectivity: s.connectivity(),
		DOF:          len(modes),
		EERank:       rank,
		IDOFCount:    idof,
		GaugeDOF:     s.gauge(),
		RawNullity:   sp.rawNullity,
		Spectrum:     sp.values,
		EETwistBasis: twists,
		MotionType:   motion,
		DOFDetails:   s.details(modes),
		Path:         append([]int(nil), s.res.Path...),
	}

	o.logger.Debug("mobility analyzed",
		zap.Int("dof", res.DOF),
		zap.Int("idof", res.IDOFCount),
		zap.Int("gauge_dof", res.GaugeDOF),
		zap.Int("ee_rank", res.EERank),
		zap.String("motion", string(res.MotionType)))

	return res, nil
}
