// Package topology defines the kinematic graph consumed by the mobility
// analyzer: joints as vertices, rigid members as undirected links, and
// rigid-body sets that weld several joints into one velocity unknown.
//
// The Graph G = (J, L) is immutable after New and index-addressed:
//
//   - Joints are sorted by id; every algorithm works on dense indices
//     0..Len()-1 and translates back with ID(i).
//   - Links are stored in input order; duplicates collapse to the first
//     occurrence so the graph stays simple.
//   - Rigid-body sets are merged with a union-find (path compression, union
//     by rank). Overlapping sets end up in one group. Consecutive members of
//     a group (sorted by id) are joined by a virtual link unless a real link
//     already joins them.
//
// Why index-addressed?
//
//   - Deterministic iteration with no map-order surprises.
//   - O(1) membership and group lookups for the assembler's hot loops.
//   - No shared mutable state: SpanningForest and Component return fresh
//     values, so a Graph can be read from many goroutines.
//
// Algorithms
//
//	Component(root)      – BFS over links and group co-membership.
//	SpanningForest(root) – Kruskal-style DSU over the component's links in
//	                       index order; each rejected link closes exactly one
//	                       independent loop (tree path + that link).
//	Orientation(in, out) – +1 if a joint is entered through a lower link
//	                       index than it is left through, −1 otherwise.
//	                       GroundLink (−1) and ToolLink (MaxInt) stand for the
//	                       virtual links before the base and after the
//	                       end-effector.
//
// Complexity (J = joints, L = links)
//
//   - New:            O(J log J + L·α(J))
//   - Component:      O(J + L + Σ group sizes²)
//   - SpanningForest: O(J + L·(α(J) + depth))
//
// Errors
//
//	ErrNoJoints       – empty joint list.
//	ErrDuplicateJoint – two joints share an id.
//	ErrUnknownJoint   – a link or rigid-body set references a missing id.
//	ErrSelfLink       – a link joins a joint to itself.
//	ErrDisconnected   – returned by callers when two joints that must be
//	                    connected lie in different components.
package topology
