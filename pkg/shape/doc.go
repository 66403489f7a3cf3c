// Package shape turns primitive templates and instance parameters into
// concrete polygons.
//
// # Overview
//
// A [Builder] resolves every layer template of a [tech.PrimitiveNode] or
// [tech.ArcProto] against one instance and returns an ordered list of
// [Polygon] values in grid units:
//
//	b := shape.NewBuilder(t.Scale, logger)
//	polys, err := b.NodeShapes(node, shape.DefaultInstance(node))
//
// Nodes are built about the local origin, then oriented (mirror first, then
// rotate) and finally translated by the instance anchor. Arcs are built
// directly between their end points.
//
// # Node Pipeline
//
//  1. Polygonal nodes with a trace emit the trace as their only polygon.
//  2. Wiped pins emit nothing.
//  3. Serpentine nodes with a trace sweep every layer along it (see
//     package serpentine); all other nodes resolve each layer as a box,
//     a point list or a multi-cut array (see package multicut).
//  4. Each negated port adds a negation bubble.
//
// Electrical requests use the node's electrical layer list when it has one.
//
// # Malformed Geometry
//
// A resolved box whose low edge exceeds its high edge is logged as a
// warning and reported to [observability.ShapeHooks]; the polygon is still
// emitted. A builder with Strict set returns a GEOMETRY_ANOMALY error
// instead.
//
// # Providers
//
// [Provider] abstracts shape generation so a technology can substitute its
// own rules. [Providers] maps technology names to providers and falls back
// to a default, normally a *Builder.
package shape
