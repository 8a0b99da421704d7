// SPDX-License-Identifier: MIT
// Package mobility: functional configuration and numeric policy.
// Options are resolved once per Analyze call; invalid values are recorded
// and surfaced as ErrOption instead of panicking, like bfs.WithMaxDepth.

package mobility

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Numeric policy defaults.
const (
	// DefaultZeroTol is the absolute threshold below which a singular value
	// counts as zero.
	DefaultZeroTol = 1e-9

	// DefaultGapThreshold is the minimum ratio σ[i+1]/σ[i] accepted as the
	// freedom/constraint split.
	DefaultGapThreshold = 1e3

	// DefaultFreedomCeiling is the largest singular value that may still be
	// classified as a freedom direction.
	DefaultFreedomCeiling = 1e-6

	// DefaultPerturbationEps scales the geometry displacement used by the
	// instantaneous-mode test.
	DefaultPerturbationEps = 1e-4

	// DefaultIDOFBand is the singular-value ceiling of the near-zero band at
	// the perturbed configuration.
	DefaultIDOFBand = 1e-6

	// DefaultAxisTol bounds "≈ 0" and "parallel" tests in classification and
	// the twist agreement test between candidate paths.
	DefaultAxisTol = 1e3 * DefaultZeroTol

	// DefaultPointTol bounds the residual of the common-point test.
	DefaultPointTol = 1e3 * DefaultZeroTol
)

// gapFloor keeps the gap ratio finite when σ[i] is an exact zero.
const gapFloor = 1e-12

// persistenceCut splits the perturbation scores of candidate directions:
// below it a direction survives its own perturbation, above it it does not.
const persistenceCut = 0.5

// Option configures Analyze.
type Option func(*Options)

// Options holds the resolved configuration of one Analyze call.
type Options struct {
	zeroTol        float64
	gapThreshold   float64
	freedomCeiling float64
	idofEps        float64
	idofBand       float64
	axisTol        float64
	pointTol       float64
	logger         *zap.Logger

	err error // first invalid option, reported as ErrOption
}

// DefaultOptions returns the documented defaults with a no-op logger.
func DefaultOptions() Options {
	return Options{
		zeroTol:        DefaultZeroTol,
		gapThreshold:   DefaultGapThreshold,
		freedomCeiling: DefaultFreedomCeiling,
		idofEps:        DefaultPerturbationEps,
		idofBand:       DefaultIDOFBand,
		axisTol:        DefaultAxisTol,
		pointTol:       DefaultPointTol,
		logger:         zap.NewNop(),
	}
}

// setPositive writes v into *dst or records an error naming the option.
func (o *Options) setPositive(name string, dst *float64, v float64) {
	if !(v > 0) || math.IsInf(v, 0) {
		if o.err == nil {
			o.err = fmt.Errorf("%w: %s must be positive and finite (got %g)", ErrOption, name, v)
		}
		return
	}
	*dst = v
}

// WithZeroTol sets the near-zero singular-value threshold.
func WithZeroTol(tol float64) Option {
	return func(o *Options) { o.setPositive("zero_tol", &o.zeroTol, tol) }
}

// WithGapThreshold sets the minimum significant spectral ratio (> 1).
func WithGapThreshold(ratio float64) Option {
	return func(o *Options) {
		if !(ratio > 1) {
			if o.err == nil {
				o.err = fmt.Errorf("%w: gap_threshold must exceed 1 (got %g)", ErrOption, ratio)
			}
			return
		}
		o.setPositive("gap_threshold", &o.gapThreshold, ratio)
	}
}

// WithFreedomCeiling sets the largest singular value a freedom may have.
func WithFreedomCeiling(ceiling float64) Option {
	return func(o *Options) { o.setPositive("freedom_ceiling", &o.freedomCeiling, ceiling) }
}

// WithPerturbationEps sets the displacement scale of the instantaneous-mode test.
func WithPerturbationEps(eps float64) Option {
	return func(o *Options) { o.setPositive("idof_eps", &o.idofEps, eps) }
}

// WithIDOFBand sets the near-zero band used at the perturbed configuration.
func WithIDOFBand(band float64) Option {
	return func(o *Options) { o.setPositive("idof_band", &o.idofBand, band) }
}

// WithAxisTol sets the tolerance of the zero/parallel tests.
func WithAxisTol(tol float64) Option {
	return func(o *Options) { o.setPositive("axis_tol", &o.axisTol, tol) }
}

// WithPointTol sets the tolerance of the common-point test.
func WithPointTol(tol float64) Option {
	return func(o *Options) { o.setPositive("point_tol", &o.pointTol, tol) }
}

// WithLogger routes stage diagnostics to l at Debug level. nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Tolerances is the serializable form of the numeric options, as found in
// mechanism files and CLI configuration. Zero fields keep their defaults.
type Tolerances struct {
	ZeroTol        float64 `yaml:"zero_tol,omitempty"`
	GapThreshold   float64 `yaml:"gap_threshold,omitempty"`
	FreedomCeiling float64 `yaml:"freedom_ceiling,omitempty"`
	IDOFEps        float64 `yaml:"idof_eps,omitempty"`
	IDOFBand       float64 `yaml:"idof_band,omitempty"`
	AxisTol        float64 `yaml:"axis_tol,omitempty"`
	PointTol       float64 `yaml:"point_tol,omitempty"`
}

// Options converts the non-zero fields into Option values.
func (t Tolerances) Options() []Option {
	var opts []Option
	add := func(v float64, fn func(float64) Option) {
		if v != 0 {
			opts = append(opts, fn(v))
		}
	}
	add(t.ZeroTol, WithZeroTol)
	add(t.GapThreshold, WithGapThreshold)
	add(t.FreedomCeiling, WithFreedomCeiling)
	add(t.IDOFEps, WithPerturbationEps)
	add(t.IDOFBand, WithIDOFBand)
	add(t.AxisTol, WithAxisTol)
	add(t.PointTol, WithPointTol)

	return opts
}

// Merge returns t with every non-zero field of over applied on top.
func (t Tolerances) Merge(over Tolerances) Tolerances {
	pick := func(base, o float64) float64 {
		if o != 0 {
			return o
		}
		return base
	}
	return Tolerances{
		ZeroTol:        pick(t.ZeroTol, over.ZeroTol),
		GapThreshold:   pick(t.GapThreshold, over.GapThreshold),
		FreedomCeiling: pick(t.FreedomCeiling, over.FreedomCeiling),
		IDOFEps:        pick(t.IDOFEps, over.IDOFEps),
		IDOFBand:       pick(t.IDOFBand, over.IDOFBand),
		AxisTol:        pick(t.AxisTol, over.AxisTol),
		PointTol:       pick(t.PointTol, over.PointTol),
	}
}
