// Package tech defines the technology data model: parametric layer templates
// for primitive nodes and arcs, and the containers that hold them.
//
// # Overview
//
// Layout primitives (pins, contacts, transistors, wires) are not stored as
// polygons. Each [PrimitiveNode] is an ordered list of [NodeLayer] templates
// whose coordinates are [EdgeCoordinate] values: affine functions of the
// instance size. An [ArcProto] is a list of [ArcLayer] templates, each inset
// from the arc's full width by a fixed grid offset.
//
// # Edge Coordinates
//
// An edge coordinate resolves against an instance's extent along one axis:
//
//	x = center + Multiplier*extent + Adder
//
// [FromLeftEdge] pins a value to the low edge, [FromRightEdge] to the high
// edge and [FromCenter] to the middle. Two coordinates form a [TechPoint].
//
// # Layer Representations
//
//   - [Points]: an explicit polygon, one TechPoint per vertex
//   - [Box]: two TechPoints giving opposite rectangle corners
//   - [MultiCutBox]: two TechPoints bounding the region available to cut
//     centers; the cuts themselves repeat with instance size
//
// # Lifecycle
//
// Templates are assembled into a [Technology] with [Technology.AddLayer],
// [Technology.AddNode] and [Technology.AddArc]. Registration validates the
// template, deep-copies it and assigns its index. Once a technology is
// sealed by [Catalog.Register] it is never mutated again, so any number of
// goroutines may read it without locking.
//
// # Units
//
// Templates store grid units. [Scale] is the single conversion point between
// the lambda values humans write and the grid values the engine consumes.
package tech
