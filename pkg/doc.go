// Package pkg provides the core libraries for rowgrid layout editing.
//
// # Overview
//
// A rowgrid layout is an ordered list of components, each with an integer
// size in base units (24 by default). Rows are never stored: they are derived
// by accumulating sizes until the running total reaches the base. Editing
// keeps every row summing to exactly the base, so components always fill the
// full width.
//
// # Architecture
//
// The typical data flow:
//
//	Document (JSON / YAML / TOML)      [io]
//	         ↓
//	    Layout + row partition         [grid]
//	         ↓
//	    Resize / reorder gestures      [editor]
//	         ↓
//	    Geometry and hit testing       [view]
//	         ↓
//	    Terminal / SVG / DOT / PNG     [render]
//
// # Quick Start
//
// Load a document, move a component and render the result:
//
//	import (
//	    "github.com/matzehuels/rowgrid/pkg/grid"
//	    "github.com/matzehuels/rowgrid/pkg/io"
//	    "github.com/matzehuels/rowgrid/pkg/render/svg"
//	    "github.com/matzehuels/rowgrid/pkg/view"
//	)
//
//	doc, l, _ := io.ImportLayout("layout.json")
//	grid.Move(l, 3, grid.Target{Placement: grid.PlaceBefore, Component: 1})
//	doc.SetLayout(l)
//	_ = io.Export(doc, "layout.json")
//
//	out := svg.Render(view.Build(l, view.DefaultOptions()))
//
// # Main Packages
//
// ## Layout Model
//
// [grid] - The layout model: partitioning, resize, reorder, normalization
// and fraction labels. Pure functions over a [grid.Layout]; no I/O.
//
// [editor] - The interactive controller. Owns one layout, serializes access
// and turns pointer events into resize and drag gestures.
//
// [view] - Pixel or terminal-cell geometry for a layout, plus hit testing.
//
// ## Rendering
//
// [render/term] draws a view with lipgloss for the terminal editor,
// [render/svg] writes standalone SVG and [render/dot] emits Graphviz DOT and
// renders it to SVG or PNG.
//
// ## Infrastructure
//
// [io] - Document encoding. [store] - Document storage backends (memory,
// file, Redis, MongoDB). [cache] - Render cache. [watcher] - File reload.
// [config] - TOML configuration. [server] - JSON HTTP API.
//
// ## Utilities
//
// [errors] - Coded errors shared by every package. [observability] - Hooks
// for metrics and tracing. [buildinfo] - Version information.
//
// [grid.Layout]: github.com/matzehuels/rowgrid/pkg/grid.Layout
package pkg
