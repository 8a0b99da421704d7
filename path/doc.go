// Package path resolves the base → end-effector traversal of a
// topology.Graph.
//
// What
//
//   - Manual paths are validated: at least two joints, first = base,
//     last = end-effector, every id known, no joint repeated, and each
//     consecutive pair adjacent through a link or a shared rigid-body group.
//   - Automatic paths come from a breadth-first search that records every
//     shortest-path predecessor, so all minimal paths (up to MaxCandidates)
//     can be enumerated without recursion.
//
// Why keep every candidate?
//
//	In a closed-loop mechanism the shortest route is often not unique, and
//	two routes can carry different joint screws. Whether that changes the
//	end-effector motion depends on the loop-closure solution, which only the
//	mobility analyzer knows. Resolve therefore returns all candidates; the
//	analyzer compares the twists they propagate and reports an AmbiguousError
//	when they disagree.
//
// Determinism
//
//	Neighbors are expanded in ascending joint-index order and predecessors
//	are kept in discovery order, so Candidates[0] is always the same path.
//
// Complexity (J = joints, A = adjacency pairs)
//
//   - Time:   O(J + A + MaxCandidates·J)
//   - Memory: O(J + A)
//
// Errors
//
//   - ErrTooShort       manual path with fewer than two joints.
//   - ErrEndpoints      manual path not starting at base / ending at end-effector.
//   - ErrUnknownJoint   id absent from the graph.
//   - ErrRepeatedJoint  manual path visiting a joint twice.
//   - ErrNotAdjacent    consecutive manual entries share neither link nor group.
//   - ErrUnreachable    no route from base to end-effector.
//   - ErrAmbiguous      (via *AmbiguousError) minimal paths disagree.
package path
