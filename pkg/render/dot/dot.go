// Package dot renders a layout view through Graphviz.
//
// [ToDOT] produces a DOT graph in which each row is a rank of fixed-size
// boxes whose widths follow the component sizes, chained left to right by
// invisible edges. [RenderSVG] and [RenderPNG] run the embedded Graphviz
// (goccy/go-graphviz) over that source, so no system installation is needed.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/rowgrid/pkg/view"
)

// Options configures DOT output.
type Options struct {
	// Width is the drawing width in inches of a complete row.
	Width float64
	// Detailed adds the size in base units to each label.
	Detailed bool
}

// DefaultWidth is the row width in inches when Options.Width is zero.
const DefaultWidth = 10.0

// ToDOT converts a view to Graphviz DOT.
func ToDOT(v view.View, opts Options) string {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fixedsize=true, height=0.9, fontsize=14];\n")
	buf.WriteString("  edge [style=invis];\n")
	buf.WriteString("  ranksep=0.2;\n")
	buf.WriteString("  nodesep=0.05;\n")

	var prevFirst string
	for _, row := range v.Rows {
		fmt.Fprintf(&buf, "\n  subgraph row%d {\n    rank=same;\n", row.Index)
		names := make([]string, len(row.Components))
		for i, c := range row.Components {
			names[i] = nodeName(c.ID)
			w := width * float64(c.Size) / float64(v.Base)
			fmt.Fprintf(&buf, "    %s [%s];\n", names[i], strings.Join(attrs(c, row.Malformed, w, opts.Detailed), ", "))
		}
		if len(names) > 1 {
			fmt.Fprintf(&buf, "    %s;\n", strings.Join(names, " -> "))
		}
		buf.WriteString("  }\n")

		if prevFirst != "" && len(names) > 0 {
			fmt.Fprintf(&buf, "  %s -> %s;\n", prevFirst, names[0])
		}
		if len(names) > 0 {
			prevFirst = names[0]
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id int) string { return "c" + strconv.Itoa(id) }

func attrs(c view.Component, malformed bool, width float64, detailed bool) []string {
	label := c.Label + "\n" + c.Fraction
	if detailed {
		label += fmt.Sprintf("\n(%d)", c.Size)
	}
	out := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("width=%.3f", width),
	}
	if c.Placeholder {
		out = append(out, "style=\"rounded,dashed\"")
	}
	if malformed {
		out = append(out, "color=red")
	}
	return out
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales with
// its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
