// Package svg renders a layout view as a standalone SVG document.
//
// Each component is drawn as a rounded box filled by kind, labelled with its
// kind and reduced size fraction. Splitters are drawn as thin handles between
// neighbours, and rows whose sizes do not add up to the base are outlined in
// red.
package svg

import (
	"bytes"
	"fmt"
	"hash/fnv"

	"github.com/matzehuels/rowgrid/pkg/view"
)

// Option configures the SVG renderer.
type Option func(*renderer)

type renderer struct {
	fractions bool
	splitters bool
	title     string
}

// WithoutFractions omits the size fraction under each label.
func WithoutFractions() Option { return func(r *renderer) { r.fractions = false } }

// WithoutSplitters omits the splitter handles.
func WithoutSplitters() Option { return func(r *renderer) { r.splitters = false } }

// WithTitle adds a <title> element.
func WithTitle(t string) Option { return func(r *renderer) { r.title = t } }

var palette = []string{"#dbeafe", "#dcfce7", "#fef9c3", "#fce7f3", "#ede9fe", "#ffedd5"}

// Fill returns the fill color for a component kind. The mapping is stable
// across runs.
func Fill(kind string) string {
	h := fnv.New32a()
	h.Write([]byte(kind))
	return palette[h.Sum32()%uint32(len(palette))]
}

// Render draws v.
func Render(v view.View, opts ...Option) []byte {
	r := renderer{fractions: true, splitters: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		v.Width, v.Height, v.Width, v.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	buf.WriteString(`  <style>
    .component { stroke: #334155; stroke-width: 1.5; }
    .placeholder { fill: none; stroke-dasharray: 6 4; }
    .splitter { fill: #94a3b8; }
    .malformed { fill: none; stroke: #dc2626; stroke-width: 2; stroke-dasharray: 4 2; }
    text { font-family: ui-sans-serif, system-ui, sans-serif; fill: #0f172a; text-anchor: middle; dominant-baseline: middle; }
    .fraction { fill: #475569; }
  </style>
`)

	for _, row := range v.Rows {
		fmt.Fprintf(&buf, `  <g class="row" id="row-%d">`+"\n", row.Index)
		for _, c := range row.Components {
			renderComponent(&buf, c, r.fractions)
		}
		if r.splitters {
			for _, s := range row.Splitters {
				fmt.Fprintf(&buf, `    <rect class="splitter" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="2"/>`+"\n",
					s.Rect.X+s.Rect.W/4, s.Rect.Y, s.Rect.W/2, s.Rect.H)
			}
		}
		if row.Malformed {
			fmt.Fprintf(&buf, `    <rect class="malformed" x="%.2f" y="%.2f" width="%.2f" height="%.2f"><title>row sums to %d</title></rect>`+"\n",
				row.Rect.X+1, row.Rect.Y+1, row.Rect.W-2, row.Rect.H-2, row.Sum)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderComponent(buf *bytes.Buffer, c view.Component, fractions bool) {
	class, fill := "component", Fill(c.Kind)
	if c.Placeholder {
		class, fill = "component placeholder", "none"
	}
	fmt.Fprintf(buf, `    <rect id="component-%d" class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" fill="%s"/>`+"\n",
		c.ID, class, c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H, fill)
	if c.Placeholder {
		return
	}

	size := fontSize(c.Rect.W, c.Rect.H, len(c.Label))
	label := truncate(c.Label, c.Rect.W, size)
	cx, cy := c.Rect.CenterX(), c.Rect.Y+c.Rect.H/2
	if fractions {
		cy -= size * 0.6
	}
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-size="%.1f">%s</text>`+"\n", cx, cy, size, escapeXML(label))
	if fractions {
		fmt.Fprintf(buf, `    <text class="fraction" x="%.2f" y="%.2f" font-size="%.1f">%s</text>`+"\n",
			cx, cy+size*1.3, size*0.8, escapeXML(c.Fraction))
	}
}
