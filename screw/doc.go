// Package screw provides the joint data model used by the mobility analyzer:
// Revolute and Prismatic joints, their 6-component unit screws, and the
// characteristic length that balances rotational against translational
// components.
//
// What
//
//   - Screw is a 6-vector (ω₀, ω₁, ω₂, v₀, v₁, v₂): angular part first,
//     linear part second. The same type doubles as a twist.
//   - Joint is immutable once built by NewJoint. Its Screw is derived from
//     Kind, Axis, Position and the characteristic length L:
//   - Revolute:  ω = axis/|axis|, v = (position × ω) / L
//   - Prismatic: ω = 0,           v = axis/|axis|
//   - CharacteristicLength returns the mean length of all non-degenerate
//     links (1.0 when every link is shorter than MinLinkLength).
//   - Joint.Perturbed returns a displaced copy whose screw is rebuilt from the
//     new geometry; the mobility package uses it for its finite-motion test.
//
// Vectors are gonum spatial/r3 values, so cross products and norms come from
// gonum rather than hand-rolled helpers.
//
// Errors
//
//   - ErrZeroAxis  if an axis has (numerically) zero length.
//   - ErrNonFinite if an axis or position carries NaN or ±Inf.
//   - ErrBadLength if the characteristic length is not a positive finite number.
//   - ErrBadKind   if ParseKind receives anything but "R" or "P".
package screw
