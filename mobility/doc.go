// SPDX-License-Identifier: MIT

// Package mobility computes the instantaneous mobility of a spatial
// mechanism from its joint screws and topology.
//
// Pipeline
//
//	assemble   – topology.Graph, spanning forest and loops, base → end-effector
//	             path(s), one column unknown per rigid group. Columns in no
//	             loop and on no path are gauge freedoms.
//	rank       – SVD of the loop matrix M (6 rows per loop) over the
//	             non-gauge columns. The ascending spectrum is split at its
//	             largest admissible gap into freedom and constraint
//	             directions.
//	filter     – a freedom direction is replayed as a small displacement
//	             of the geometry along itself; directions that leave the
//	             near-null band of their own perturbed system, or whose
//	             mixtures with accepted directions do, are instantaneous
//	             (IDOF). At a bifurcation one branch survives.
//	twist      – finite modes are propagated to the end-effector along the
//	             path; their numeric rank is ee_rank.
//	classify   – Fixed, PureTranslation, PureRotation, Planar, Helical,
//	             Spherical or GeneralSpatial.
//
// Sign convention
//
// A joint traversed inside a loop or along the path contributes +S when it
// is entered through a lower link index than it is left through and −S
// otherwise. The base is entered through a virtual link of index −1; the
// end-effector is left through a virtual link of index +∞.
//
// Invariants of every Result
//
//   - Spectrum is non-negative, ascending, len = number of columns.
//   - DOF + IDOFCount + GaugeDOF ≤ len(Spectrum).
//   - EERank ≤ DOF; len(EETwistBasis) = DOF.
//   - For every finite mode, every loop closes: Σ S_j·rate_j ≈ 0.
//
// Errors
//
// Every failure is an *Error whose Kind is one of ErrGraph, ErrPath,
// ErrAmbiguousPath, ErrNumeric or ErrOption. The cause from topology, path
// or screw stays reachable through errors.Is. ErrInsufficientData is kept
// for callers matching the full taxonomy; a spectrum with nothing beyond
// the gauge block reports dof 0.
package mobility
