// SPDX-License-Identifier: MIT
// Package mobility: error taxonomy.
// Every failure leaving Analyze is an *Error carrying the stage it came from
// and one of the sentinels below as its Kind. Callers match with errors.Is
// against either the sentinel or the lower-level cause (topology, path,
// screw, gonum) that is kept in Err.

package mobility

import (
	"errors"
	"fmt"
)

var (
	// ErrGraph covers disconnected topologies, unknown or duplicate joint
	// references, self-links and base == end-effector.
	ErrGraph = errors.New("mobility: graph error")

	// ErrPath covers invalid manual paths.
	ErrPath = errors.New("mobility: path error")

	// ErrAmbiguousPath is returned when several shortest paths propagate
	// different end-effector motions. It also matches ErrPath.
	ErrAmbiguousPath = fmt.Errorf("%w: ambiguous shortest path", ErrPath)

	// ErrNumeric covers non-finite input and failed decompositions.
	ErrNumeric = errors.New("mobility: numeric error")

	// ErrInsufficientData names a spectrum shorter than the number of gauge
	// freedoms. Analyze lays the spectrum out as gauge zeros followed by the
	// free values, so it never returns this kind: a spectrum without free
	// values reports dof 0 instead.
	ErrInsufficientData = errors.New("mobility: insufficient spectral data")

	// ErrOption is returned when an Option received a nonsensical value.
	ErrOption = errors.New("mobility: invalid option")
)

// Stage names the pipeline step that produced an error.
type Stage string

// Pipeline stages, in execution order.
const (
	StageOptions  Stage = "options"
	StageGraph    Stage = "graph"
	StagePath     Stage = "path"
	StageAssemble Stage = "assemble"
	StageRank     Stage = "rank"
	StageFilter   Stage = "filter"
	StageTwist    Stage = "twist"
	StageClassify Stage = "classify"
)

// Error is the single failure result of Analyze.
type Error struct {
	Stage Stage // where it failed
	Kind  error // one of the package sentinels
	Err   error // underlying cause
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("mobility: %s stage: %v", e.Stage, e.Err)
}

// Unwrap exposes both the taxonomy sentinel and the cause to errors.Is/As.
func (e *Error) Unwrap() []error { return []error{e.Kind, e.Err} }

// fail builds an *Error; cause defaults to kind when nil.
func fail(stage Stage, kind, cause error) *Error {
	if cause == nil {
		cause = kind
	}
	return &Error{Stage: stage, Kind: kind, Err: cause}
}
