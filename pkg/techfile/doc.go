// Package techfile loads technology descriptions from TOML files.
//
// # Overview
//
// A technology file lists layers, arcs and primitive nodes. All lengths are
// written in lambda and converted to grid units once, using the file's
// grid_per_lambda (default 400). Arcs are registered before nodes so that
// node ports can name the arcs they accept.
//
// # Format
//
//	name = "mini"
//	grid_per_lambda = 400
//
//	[[layer]]
//	name = "metal-1"
//	function = "metal"
//
//	[[arc]]
//	name = "metal-1"
//	width = 3.0
//	extended = true
//	layer = [{ layer = "metal-1", style = "filled" }]
//
//	[[node]]
//	name = "metal-1-pin"
//	width = 3.0
//	height = 3.0
//	wipable = true
//	port = [{ name = "m1", center = true, arcs = ["metal-1"] }]
//	layer = [{ layer = "metal-1", port = "m1", style = "closed", box = "full" }]
//
// Edges are written as [multiplier, adder] pairs, points as
// [x-multiplier, x-adder, y-multiplier, y-adder]. A layer gives its
// geometry with exactly one of box ("full" or "center"), inset,
// inset_xy or points.
//
// Unknown keys are rejected so that typos surface as errors rather than
// silently ignored settings.
package techfile
