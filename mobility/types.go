// SPDX-License-Identifier: MIT

package mobility

import (
	"fmt"

	"github.com/katalvlaran/screwdof/screw"
)

// MotionType is the qualitative label of the end-effector motion.
type MotionType string

// Motion labels, in the order MotionClassifier tests them.
const (
	Fixed           MotionType = "Fixed"
	PureTranslation MotionType = "PureTranslation"
	PureRotation    MotionType = "PureRotation"
	Planar          MotionType = "Planar"
	Helical         MotionType = "Helical"
	Spherical       MotionType = "Spherical"
	GeneralSpatial  MotionType = "GeneralSpatial"
)

// Mechanism is the input of Analyze.
type Mechanism struct {
	// Joints with unique ids and their derived screws.
	Joints []screw.Joint

	// Links are rigid members as joint-id pairs.
	Links [][2]int

	// RigidBodies lists sets of joint ids welded into one velocity unknown.
	RigidBodies [][]int

	// Base and EndEffector are joint ids; they must differ.
	Base, EndEffector int

	// Path optionally fixes the base → end-effector traversal (joint ids).
	Path []int

	// CharLength is the characteristic length the screws were built with.
	// Zero means screw.CharacteristicLength over Links.
	CharLength float64
}

// Connectivity summarizes the analyzed topology.
type Connectivity struct {
	Joints       int     `yaml:"joints"`
	Links        int     `yaml:"links"`
	VirtualLinks int     `yaml:"virtual_links"`
	Loops        [][]int `yaml:"loops"` // joint ids in traversal order
	RigidGroups  int     `yaml:"rigid_groups"`
	Columns      int     `yaml:"columns"`
	GaugeJoints  []int   `yaml:"gauge_joints,omitempty"` // joint ids behind gauge columns
	Detached     []int   `yaml:"detached,omitempty"`     // joint ids outside the base component
}

// String returns a one-line summary.
func (c Connectivity) String() string {
	s := fmt.Sprintf("%d joints, %d links", c.Joints, c.Links)
	if c.VirtualLinks > 0 {
		s += fmt.Sprintf(" (+%d rigid)", c.VirtualLinks)
	}
	s += fmt.Sprintf(", %d independent loops, %d unknowns", len(c.Loops), c.Columns)
	if len(c.Detached) > 0 {
		s += fmt.Sprintf(", %d detached", len(c.Detached))
	}
	return s
}

// EdgeVelocity is one traversal step of a loop: the joint entered at To
// (coming from From) moves with the signed rate Velocity.
type EdgeVelocity struct {
	Loop     int     `yaml:"loop"`
	From     int     `yaml:"from"`
	To       int     `yaml:"to"`
	Velocity float64 `yaml:"vel"`
}

// DOFDetail records the joint-rate pattern of one finite mode.
type DOFDetail struct {
	Mode       int             `yaml:"mode_id"` // 1-based
	JointRates map[int]float64 `yaml:"joint_rates"`
	Velocities []EdgeVelocity  `yaml:"velocities"`
}

// Result is the outcome of a successful Analyze call.
type Result struct {
	Connectivity Connectivity  `yaml:"connectivity"`
	DOF          int           `yaml:"dof"`
	EERank       int           `yaml:"ee_rank"`
	IDOFCount    int           `yaml:"idof_count"`
	GaugeDOF     int           `yaml:"gauge_dof"`
	RawNullity   int           `yaml:"raw_nullity"` // σ < zero_tol before any filtering
	Spectrum     []float64     `yaml:"spectrum"`    // ascending, gauge zeros first
	EETwistBasis []screw.Screw `yaml:"ee_twist_basis"`
	MotionType   MotionType    `yaml:"motion_type"`
	DOFDetails   []DOFDetail   `yaml:"dof_details"`
	Path         []int         `yaml:"path"`
}
