// Package io reads and writes scene files.
//
// # Overview
//
// A scene file holds one [scene.Scene]: the canvas size, the background
// color and the element list. Two encodings are supported and share the
// same field names:
//
//   - JSON (.json), the format produced by the editor and the HTTP API
//   - YAML (.yaml, .yml), convenient for hand-written fixtures
//
// # JSON Format
//
//	{
//	  "width": 1080,
//	  "height": 1080,
//	  "backgroundColor": "#ffffff",
//	  "elements": [
//	    {"id": "packshot", "kind": "image", "role": "product",
//	     "x": 390, "y": 390, "width": 300, "height": 300, "opacity": 1,
//	     "image": {"sourceRef": "asset://9f86d0..."}},
//	    {"id": "headline", "kind": "text", "role": "headline",
//	     "x": 100, "y": 80, "width": 600, "height": 80, "opacity": 1,
//	     "text": {"text": "Summer Sale", "fontSize": 48,
//	              "fontFamily": "Arial", "color": "#1a73e8"}}
//	  ]
//	}
//
// Each element carries exactly one payload object matching its kind
// ("image", "text" or "shape").
//
// # Import
//
// Use [ImportFile] to read a scene from a path (the encoding is chosen by
// extension), or [ReadJSON] and [ReadYAML] to read from any io.Reader.
// Every reader validates the decoded scene with [scene.Scene.Validate], so a
// scene returned without error is safe to evaluate and adapt.
//
// # Export
//
// Use [ExportFile] to write a scene to a path, or [WriteJSON] and
// [WriteYAML] to write to any io.Writer. Output is indented and round-trips
// through the matching reader unchanged.
package io
