// Package grid implements the row layout model behind the rowgrid editor.
//
// # Overview
//
// A [Layout] is an ordered list of [Component] values, each carrying an
// integer size. Rows are not stored: they are derived by [Partition], which
// walks the list and closes a row every time the accumulated size reaches the
// base unit (24 by default). A well-formed layout therefore has every row
// summing to exactly the base unit, and a component's displayed width is
// size/base of its row.
//
// # Gestures
//
// Two kinds of gesture mutate a layout:
//
//   - Resize: [BeginResize] grabs the splitter between two adjacent components
//     of a row. [ResizeGesture.Move] converts pointer displacement into base
//     units and moves size from one side to the other, always relative to the
//     sizes captured at gesture start. Moves that would shrink a component to
//     zero are rejected and leave the last valid sizes in place.
//
//   - Reorder: [BeginDrag] starts a [DragSession] for one component. Each
//     [DragSession.Over] call places the component before or after another
//     component, or into a new row above or below a hovered row, and then
//     normalizes every row back to the base unit. [DragSession.End] commits.
//
// Only one gesture may be active at a time; package editor enforces that for
// interactive hosts.
//
// # Normalization
//
// After a structural change a row may no longer sum to the base unit. [Normalize]
// rescales it proportionally with round(size*base/sum) and hands the remaining
// rounding error to a single component. The [CorrectClamped] policy keeps that
// component at size 1 or above and passes any leftover along the row.
//
// # Example
//
//	l, err := grid.New([]grid.Component{
//	    {ID: 1, Kind: "image", Size: 9},
//	    {ID: 2, Kind: "text", Size: 15},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, _ := grid.BeginResize(l, 1, 500, 960)
//	_ = g.Move(420) // pointer moved 80px left: left shrinks, right grows
//	g.End()
package grid
