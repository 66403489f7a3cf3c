// Package pkg provides the libraries behind primgeom, a parametric geometry
// engine for IC layout primitives.
//
// # Overview
//
// A technology describes its primitives (pins, contacts, transistors, wires)
// as templates whose coordinates are relative to the edges and center of an
// instance. The engine turns a template plus instance parameters (anchor,
// size, orientation, optional trace) into placed polygons. The packages are:
//
//  1. [geom] - Grid points, rectangles, orientations and angle math
//  2. [tech] - Templates, technologies and the lambda scale
//  3. [techfile] - TOML technology descriptions
//  4. [shape] - The shape builder, with [shape/multicut] and [shape/serpentine]
//  5. [pipeline] - Cached, parallel execution of shape requests
//  6. [cache], [io], [errors], [observability] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	TOML file or tech/sample
//	         ↓
//	    [tech] Technology (validated, sealed)
//	         ↓
//	    [shape] Builder (node, arc and port geometry)
//	         ↓
//	    [pipeline] Runner (cache lookup, batches)
//	         ↓
//	    [io] JSON shape documents
//
// # Quick Start
//
// Build the polygons of a contact with the sample technology:
//
//	import (
//	    "github.com/matzehuels/primgeom/pkg/shape"
//	    "github.com/matzehuels/primgeom/pkg/tech/sample"
//	)
//
//	tc := sample.Technology()
//	n, _ := tc.Node("metal-1-poly-contact")
//	inst := shape.DefaultInstance(n)
//	inst.SizeX, inst.SizeY = tc.Scale.ToGrid(10), tc.Scale.ToGrid(10)
//	polys, err := shape.NewBuilder(tc.Scale, nil).NodeShapes(n, inst)
//
// Every coordinate is an int64 in grid units; [tech.Scale] converts lambda.
//
// [geom]: github.com/matzehuels/primgeom/pkg/geom
// [tech]: github.com/matzehuels/primgeom/pkg/tech
// [techfile]: github.com/matzehuels/primgeom/pkg/techfile
// [shape]: github.com/matzehuels/primgeom/pkg/shape
// [shape/multicut]: github.com/matzehuels/primgeom/pkg/shape/multicut
// [shape/serpentine]: github.com/matzehuels/primgeom/pkg/shape/serpentine
// [pipeline]: github.com/matzehuels/primgeom/pkg/pipeline
// [cache]: github.com/matzehuels/primgeom/pkg/cache
// [io]: github.com/matzehuels/primgeom/pkg/io
// [errors]: github.com/matzehuels/primgeom/pkg/errors
// [observability]: github.com/matzehuels/primgeom/pkg/observability
// [tech.Scale]: github.com/matzehuels/primgeom/pkg/tech.Scale
package pkg
