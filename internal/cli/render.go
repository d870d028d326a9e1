package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rowgrid/pkg/cache"
	"github.com/matzehuels/rowgrid/pkg/errors"
	pkgio "github.com/matzehuels/rowgrid/pkg/io"
	"github.com/matzehuels/rowgrid/pkg/render/dot"
	"github.com/matzehuels/rowgrid/pkg/render/svg"
	"github.com/matzehuels/rowgrid/pkg/view"
)

// renderFormats are the accepted --format values.
var renderFormats = []string{"svg", "dot", "png", "json"}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file (single format) or base path (multiple)
	formats   []string // svg, dot, png, json
	width     float64  // view width in pixels
	rowHeight float64  // row height in pixels
	detailed  bool     // size labels in DOT output
	noCache   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a layout to SVG, DOT, PNG or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			for _, f := range opts.formats {
				if err := errors.ValidateFormat(f, renderFormats...); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "view width in pixels (default from config)")
	cmd.Flags().Float64Var(&opts.rowHeight, "row-height", 0, "row height in pixels (default from config)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add sizes to DOT labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

// basePath strips a known format extension from output, or the document
// extension from input when no output is given.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if errors.ValidateFormat(ext, renderFormats...) == nil {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	prog := newProgress(c.Logger)
	doc, l, err := c.openLayout(input)
	if err != nil {
		return err
	}

	vopts := c.cfg.View
	if opts.width > 0 {
		vopts.Width = opts.width
	}
	if opts.rowHeight > 0 {
		vopts.RowHeight = opts.rowHeight
	}
	v := view.Build(l, vopts)

	store, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()
	hash, err := doc.ContentHash()
	if err != nil {
		return err
	}
	keyer := cache.NewDefaultKeyer()

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}

		key := keyer.ArtifactKey(hash, cache.ArtifactKeyOpts{
			Format:    format,
			Width:     vopts.Width,
			RowHeight: vopts.RowHeight,
			Detailed:  opts.detailed,
			Title:     doc.Name,
		})
		data, cached, err := c.renderArtifact(ctx, store, key, doc, v, format, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		printFile(path)
		printRenderStatus(len(data), cached)
	}

	if m := l.Malformed(); len(m) > 0 {
		printWarning("%d %s not summing to %d", len(m), plural(len(m), "row", "rows"), l.Base())
	}
	prog.done(fmt.Sprintf("Rendered %d %s", len(opts.formats), plural(len(opts.formats), "file", "files")))
	return nil
}

// renderArtifact returns the cached artifact for key or renders it.
func (c *CLI) renderArtifact(ctx context.Context, store cache.Cache, key string, doc *pkgio.Document, v view.View, format string, opts *renderOpts) ([]byte, bool, error) {
	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		c.Logger.Debug("cache hit", "format", format)
		return data, true, nil
	}

	data, err := c.renderView(ctx, doc, v, format, opts)
	if err != nil {
		return nil, false, err
	}
	if err := store.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		c.Logger.Warn("cache write failed", "err", err)
	}
	return data, false, nil
}

func (c *CLI) renderView(ctx context.Context, doc *pkgio.Document, v view.View, format string, opts *renderOpts) ([]byte, error) {
	switch format {
	case "svg":
		c.Logger.Debug("Rendering SVG")
		return svg.Render(v, svg.WithTitle(doc.Name)), nil
	case "dot":
		c.Logger.Debug("Rendering DOT")
		return []byte(dot.ToDOT(v, dot.Options{Detailed: opts.detailed})), nil
	case "png":
		spin := newSpinnerWithContext(ctx, "Rendering PNG with Graphviz...")
		spin.Start()
		data, err := dot.RenderPNG(ctx, dot.ToDOT(v, dot.Options{Detailed: opts.detailed}))
		spin.Stop()
		return data, err
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}

