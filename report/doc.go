// Package report renders mobility.Result values.
//
//	Text     – the full human-readable report: spectrum table with gap
//	           ratios (🔥 above 50×, MAX GAP at the freedom/constraint split),
//	           topology summary, dof, ee rank, motion type, twist basis and,
//	           with WithVelocities, the joint-velocity debugger.
//	Spectrum – the spectrum table alone.
//	YAML     – a machine-readable dump of the whole Result.
//	Failure  – one line for an aborted analysis.
//
// Styling goes through a lipgloss renderer bound to the destination writer,
// so files and pipes receive plain text.
package report
