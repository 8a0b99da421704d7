package topology

import (
	"errors"
	"math"
)

// Sentinel errors for graph construction.
var (
	// ErrNoJoints indicates that the joint list is empty.
	ErrNoJoints = errors.New("topology: no joints")

	// ErrDuplicateJoint indicates that two joints share the same id.
	ErrDuplicateJoint = errors.New("topology: duplicate joint id")

	// ErrUnknownJoint indicates that a link or rigid-body set references a missing joint.
	ErrUnknownJoint = errors.New("topology: unknown joint id")

	// ErrSelfLink indicates a link whose endpoints coincide.
	ErrSelfLink = errors.New("topology: self-link not allowed")

	// ErrDisconnected indicates two joints that lie in different components.
	ErrDisconnected = errors.New("topology: joints are not connected")
)

// Virtual link indices used by Orientation for traversal endpoints.
const (
	// GroundLink is the virtual link through which the base joint is entered.
	GroundLink = -1

	// ToolLink is the virtual link through which the end-effector joint is left.
	ToolLink = math.MaxInt
)

// Link is an undirected rigid member between two joints, by joint index.
type Link struct {
	// From and To are joint indices (not ids).
	From, To int

	// Virtual marks a link implied by a rigid-body set rather than supplied.
	Virtual bool
}

// Other returns the endpoint of l opposite to i.
func (l Link) Other(i int) int {
	if l.From == i {
		return l.To
	}
	return l.From
}

// Adjacent pairs a neighbor joint index with the link that reaches it.
// Link is GroundLink when the neighbor is reachable only through a shared
// rigid-body group.
type Adjacent struct {
	Joint int
	Link  int
}

// Graph is an immutable, index-addressed kinematic graph.
// Build it with New; the zero value is not usable.
type Graph struct {
	ids   []int       // index → joint id, ascending
	index map[int]int // joint id → index

	links []Link       // link index → endpoints
	adj   [][]Adjacent // joint index → link neighbors, by link index

	group   []int   // joint index → dense group id
	members [][]int // group id → member joint indices, ascending
}

// Loop is one independent closed traversal of the graph.
//
// Joints[i] is entered through Links[i-1] (wrapping) and left through
// Links[i]; Links[i] joins Joints[i] to Joints[(i+1)%len].
// Signs[i] = Orientation(Links[i-1], Links[i]).
type Loop struct {
	Joints []int
	Links  []int
	Signs  []float64
}

// Forest is the spanning structure of the component containing Root.
//
// Joints outside that component have InComponent[i] == false and Parent[i]
// == -1. Order lists component joints in BFS order from Root over tree links.
type Forest struct {
	Root        int
	InComponent []bool
	Parent      []int // parent joint index in the tree, -1 for Root/outside
	ParentLink  []int // link to the parent, GroundLink for Root/outside
	Depth       []int
	Order       []int
	TreeLink    []bool // per link index
	Loops       []Loop
}
