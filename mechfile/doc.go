// Package mechfile loads mechanism descriptions for the mobility analyzer.
//
// A file is YAML or JSON (yaml.v3 reads both):
//
//	name: four-bar
//	nodes:
//	  - {id: 0, type: R, axis: [0, 0, 1], pos: [0, 0, 0]}
//	  - {id: 1, type: R, axis: [0, 0, 1], pos: [2, 0, 0]}
//	links: [[0, 1], [1, 2], [2, 3], [3, 0]]
//	rigid_bodies: [[4, 5]]
//	settings:
//	  base_node: 0
//	  ee_node: 1
//	  manual_path: [3, 0, 1, 2]
//	  char_length: 2.0
//	  tolerances: {zero_tol: 1e-9, gap_threshold: 1e3}
//
// Defaults follow the historical loader: base_node 0 and ee_node equal to
// the number of nodes minus one. A manual path of three or more ids may
// carry an anchor at each end; base and end-effector then default to the
// second and the second-to-last entries and only the part between the
// anchors reaches the analyzer.
//
// Prismatic joints slide along their axis, and pos only places the joint.
// The historical loader took the sliding direction from pos instead; files
// written for it must copy that direction into axis to keep the same screw.
package mechfile
