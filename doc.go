// Package screwdof is a screw-theory mobility analyzer: given revolute and
// prismatic joints wired into open or closed chains, it tells how many
// degrees of freedom the mechanism really has and how its end-effector moves.
//
// 🚀 What is screwdof?
//
//	An in-memory, stateless pipeline that brings together:
//		• Joint screws: 6-component (ω, v) screws with a characteristic length
//		• Topology: index-addressed graph, rigid-body union-find, spanning forest
//		• Paths: manual or BFS shortest base → end-effector traversals
//		• Rank: SVD of the loop constraints with gauge and gap handling
//		• IDOF filter: finite vs instantaneous freedoms by geometric perturbation
//		• Motion: end-effector twist basis, rank and a qualitative label
//
// Under the hood, everything is organized into small packages:
//
//	screw/     — Joint, Screw, characteristic length, perturbation
//	topology/  — Graph, rigid groups, spanning forest, loops, orientation signs
//	path/      — manual path validation, shortest-path enumeration
//	mobility/  — Analyze: assembly, rank, IDOF filter, twists, classification
//	mechfile/  — YAML/JSON mechanism files
//	report/    — text and YAML reports
//	cmd/screwdof — the command-line front end
//
// Quick ASCII example, a planar four-bar (all axes along z):
//
//	    D───────C
//	    │        ╲
//	    │         ╲
//	    A──────────B
//
// has one finite degree of freedom and its coupler moves in a plane.
//
//	go install github.com/katalvlaran/screwdof/cmd/screwdof@latest
package screwdof
