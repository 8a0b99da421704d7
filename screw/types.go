package screw

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sentinel errors for joint construction.
var (
	// ErrZeroAxis indicates that an axis vector has zero length.
	ErrZeroAxis = errors.New("screw: axis has zero length")

	// ErrNonFinite indicates a NaN or ±Inf component in an axis or position.
	ErrNonFinite = errors.New("screw: non-finite geometry")

	// ErrBadLength indicates a characteristic length that is not positive and finite.
	ErrBadLength = errors.New("screw: characteristic length must be positive")

	// ErrBadKind indicates an unrecognized joint type label.
	ErrBadKind = errors.New("screw: unknown joint kind")
)

// Kind is the kinematic pair type of a joint.
type Kind int

const (
	// Revolute is a rotation-only pair.
	Revolute Kind = iota
	// Prismatic is a translation-only pair.
	Prismatic
)

// String returns the single-letter label used in mechanism files.
func (k Kind) String() string {
	switch k {
	case Revolute:
		return "R"
	case Prismatic:
		return "P"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps "R"/"P" (any case, surrounding spaces ignored) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "R":
		return Revolute, nil
	case "P":
		return Prismatic, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadKind, s)
	}
}

// Screw is a 6-component screw or twist: angular part in [0:3],
// linear part in [3:6].
type Screw [6]float64

// Angular returns the angular (ω) part.
func (s Screw) Angular() r3.Vec { return r3.Vec{X: s[0], Y: s[1], Z: s[2]} }

// Linear returns the linear (v) part.
func (s Screw) Linear() r3.Vec { return r3.Vec{X: s[3], Y: s[4], Z: s[5]} }

// FromParts assembles a Screw from its angular and linear parts.
func FromParts(w, v r3.Vec) Screw {
	return Screw{w.X, w.Y, w.Z, v.X, v.Y, v.Z}
}

// Add returns s + o.
func (s Screw) Add(o Screw) Screw {
	for i := range s {
		s[i] += o[i]
	}
	return s
}

// Scale returns f·s.
func (s Screw) Scale(f float64) Screw {
	for i := range s {
		s[i] *= f
	}
	return s
}

// Dot returns the plain Euclidean inner product of the 6 components
// (not the reciprocal product).
func (s Screw) Dot(o Screw) float64 {
	var sum float64
	for i := range s {
		sum += s[i] * o[i]
	}
	return sum
}

// Norm returns the Euclidean norm of the 6 components.
func (s Screw) Norm() float64 { return math.Sqrt(s.Dot(s)) }

// IsFinite reports whether every component is finite.
func (s Screw) IsFinite() bool {
	for _, x := range s {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Joint is an immutable kinematic joint. Build it with NewJoint.
type Joint struct {
	// ID uniquely identifies the joint inside a mechanism.
	ID int

	// Kind is Revolute or Prismatic.
	Kind Kind

	// Axis is the joint axis (Revolute) or sliding direction (Prismatic),
	// as supplied; it is not required to be unit length.
	Axis r3.Vec

	// Position is a point on the joint axis.
	Position r3.Vec

	// Screw is the unit screw derived from the fields above.
	Screw Screw
}
