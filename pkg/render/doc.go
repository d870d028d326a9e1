// Package render groups the output formats for layout views.
//
// Every renderer consumes a [view.View] built by [view.Build], so geometry
// is computed once and shared:
//
//   - [term]: character-cell drawing for the terminal editor; build the view
//     with view.TerminalOptions so edges land on whole columns.
//   - [svg]: standalone SVG with one group per component.
//   - [dot]: Graphviz DOT, rendered to SVG or PNG by the embedded Graphviz.
//
//	v := view.Build(layout, view.DefaultOptions())
//	out := svg.Render(v)
//	png, err := dot.RenderPNG(ctx, dot.ToDOT(v, dot.Options{}))
//
// [view.View]: github.com/matzehuels/rowgrid/pkg/view.View
// [view.Build]: github.com/matzehuels/rowgrid/pkg/view.Build
package render
