package path

import (
	"errors"
	"fmt"
)

// Sentinel errors for path resolution.
var (
	// ErrTooShort is returned for a manual path with fewer than two joints.
	ErrTooShort = errors.New("path: fewer than two joints")

	// ErrEndpoints is returned when a manual path does not run base → end-effector.
	ErrEndpoints = errors.New("path: endpoints do not match base and end-effector")

	// ErrUnknownJoint is returned when an id is not part of the graph.
	ErrUnknownJoint = errors.New("path: unknown joint id")

	// ErrRepeatedJoint is returned when a manual path visits a joint twice.
	ErrRepeatedJoint = errors.New("path: joint visited twice")

	// ErrNotAdjacent is returned when consecutive entries are not adjacent.
	ErrNotAdjacent = errors.New("path: consecutive joints are not adjacent")

	// ErrUnreachable is returned when no route joins base and end-effector.
	ErrUnreachable = errors.New("path: end-effector unreachable from base")

	// ErrAmbiguous is matched by *AmbiguousError.
	ErrAmbiguous = errors.New("path: shortest path is ambiguous")
)

// MaxCandidates caps the number of shortest paths enumerated by Resolve.
const MaxCandidates = 64

// Resolution is the outcome of Resolve.
//
//   - Path:       the selected joint-id sequence (Candidates[0]).
//   - Candidates: every shortest path found (only Path for manual input).
//   - Manual:     true if the caller supplied the path.
type Resolution struct {
	Path       []int
	Candidates [][]int
	Manual     bool
}

// Ambiguous builds the error describing a disagreement between Path and
// Candidates[i].
func (r *Resolution) Ambiguous(i int) error {
	return &AmbiguousError{Candidates: [][]int{r.Path, r.Candidates[i]}}
}

// AmbiguousError lists minimal paths that propagate different motions.
// An explicit path is required to proceed.
type AmbiguousError struct {
	Candidates [][]int
}

// Error implements error.
func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("path: shortest path is ambiguous, supply an explicit path (candidates %v)", e.Candidates)
}

// Is reports ErrAmbiguous as the sentinel of this error.
func (e *AmbiguousError) Is(target error) bool { return target == ErrAmbiguous }
