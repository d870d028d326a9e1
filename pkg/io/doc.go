// Package io reads and writes layout documents.
//
// A document is a named, identified layout:
//
//	{
//	  "id": "5b0c3f4e-...",
//	  "name": "landing page",
//	  "base": 24,
//	  "components": [
//	    {"id": 1, "kind": "image", "size": 9},
//	    {"id": 2, "kind": "text", "size": 15}
//	  ],
//	  "updated_at": "2026-01-02T15:04:05Z"
//	}
//
// The same structure is accepted as YAML and TOML; the format is chosen by
// file extension ([FormatFromPath]). A bare list of components is accepted
// as a document without metadata, which keeps hand-written files short.
//
// Documents carry sizes as stored. They are validated when converted into a
// [grid.Layout] with [Document.Layout]; malformed rows survive a round-trip so
// that `rowgrid fix` can repair them.
//
// [grid.Layout]: github.com/matzehuels/rowgrid/pkg/grid.Layout
package io
