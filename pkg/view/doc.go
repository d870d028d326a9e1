// Package view derives the presentation of a grid layout: row and component
// boxes, splitter positions, kind labels and reduced size fractions.
//
// A [View] holds no state of its own. It is rebuilt from the layout after
// every mutation with [Build], so fractions and splitters are always in step
// with the model. Renderers (terminal, SVG, Graphviz) and the editor's hit
// testing both read from the same View.
//
// Geometry is expressed in abstract units: pixels for SVG, cells for the
// terminal. With [Options.Snap] every edge is rounded to a whole unit.
package view
