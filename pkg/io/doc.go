// Package io provides JSON import and export of generated shapes.
//
// # Overview
//
// Shape sets leave the engine in a flat JSON form that names layers instead
// of pointing at them. The same form is used for the shape cache and for the
// CLI's output files, so anything exported can be read back and rebound to
// its technology.
//
// # JSON Format
//
// A [Document] carries the technology it was built with and one entry per
// request:
//
//	{
//	  "technology": "mocmos-sample",
//	  "fingerprint": "3f9a…",
//	  "entries": [
//	    {
//	      "id": "pin-1",
//	      "kind": "node",
//	      "name": "metal-1-pin",
//	      "shapes": [
//	        {"layer": "metal-1", "style": "closed", "port": 0,
//	         "points": [[-200,-200],[200,-200],[200,200],[-200,200]]}
//	      ]
//	    }
//	  ]
//	}
//
// Coordinates are grid units. "port" is -1 for polygons that belong to no
// port. Text polygons carry a "text" object with the message and its
// descriptor.
//
// # Import
//
// [ReadShapes] and [UnmarshalShapes] decode a shape list and bind every
// layer name against a technology; an unknown layer fails with
// errors.ErrCodeInvalidFormat. [ReadDocument] and [ImportJSON] decode whole
// documents without binding.
//
// # Export
//
// [MarshalShapes] encodes a shape list compactly for the cache. [WriteJSON]
// and [ExportJSON] write indented documents for people and tools.
package io
