package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/recera/rbgview/cmd/rbgview/internal/config"
	"github.com/recera/rbgview/pkg/graphviewer"
	"github.com/recera/rbgview/pkg/rbg"
	"github.com/recera/rbgview/pkg/renderer/html"
	"github.com/recera/rbgview/pkg/renderer/svg"
	"github.com/recera/rbgview/pkg/vdom"
)

// Export formats
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
)

// ErrUnknownFormat is returned for an unsupported --format
var ErrUnknownFormat = errors.New("unknown export format")

// renderOptions holds the render command flags
type renderOptions struct {
	output  string
	format  string
	width   float64
	height  float64
	scale   float64
	offsetX float64
	offsetY float64
	fit     bool
}

func newRenderCommand(flags *globalFlags) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an RBG file to SVG or HTML",
		Long: `Renders one frame of the graph. The output is written even when drawing
fails, showing the error panel, and the command then exits with an error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(flags)

			path, doc, err := openDocument(args)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			renderErr := exportDocument(&buf, filepath.Base(path), doc, cfg, opts)
			if renderErr != nil && !errors.Is(renderErr, graphviewer.ErrRenderFailure) {
				return renderErr
			}

			if opts.output == "" {
				if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
					return err
				}
			} else {
				if err := os.WriteFile(opts.output, buf.Bytes(), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", opts.output, err)
				}
				printSuccess("Wrote %s", opts.output)
			}
			return renderErr
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatSVG, "Output format: svg or html")
	cmd.Flags().Float64Var(&opts.width, "width", 800, "Surface width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 480, "Surface height in pixels")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "Zoom factor")
	cmd.Flags().Float64Var(&opts.offsetX, "offset-x", 0, "Horizontal pan in pixels")
	cmd.Flags().Float64Var(&opts.offsetY, "offset-y", 0, "Vertical pan in pixels")
	cmd.Flags().BoolVar(&opts.fit, "fit", false, "Fit the visible nodes to the surface, ignoring --scale and offsets")

	return cmd
}

// exportDocument draws doc and writes it to w in the requested format. When
// drawing fails the output holds the error panel and the render error is
// returned after it was written.
func exportDocument(w io.Writer, title string, doc *rbg.Document, cfg *config.Config, opts renderOptions) error {
	if opts.format != FormatSVG && opts.format != FormatHTML {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.format)
	}

	viewer := graphviewer.New(doc, cfg.ViewerOptions())
	viewer.SetSize(opts.width, opts.height)
	if opts.fit {
		viewer.Fit(cfg.Viewer.Padding)
	} else if !viewer.SetViewport(graphviewer.Viewport{Scale: opts.scale, OffsetX: opts.offsetX, OffsetY: opts.offsetY}) {
		return fmt.Errorf("invalid viewport: scale %v, offset (%v, %v)", opts.scale, opts.offsetX, opts.offsetY)
	}

	width, height := viewer.Size()
	surface := svg.New(width, height)
	surface.Background = cfg.Theme.Background
	renderErr := viewer.Draw(surface)

	var err error
	if opts.format == FormatSVG {
		err = surface.Encode(w)
	} else {
		page := exportPage(title, surface.Document(), doc.Info().Lines(), cfg.Theme)
		if _, err = io.WriteString(w, "<!DOCTYPE html>"); err == nil {
			err = html.NewApplier(w).Apply(page)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.format, err)
	}
	return renderErr
}

// exportPage wraps a rendered frame with the info panel
func exportPage(title string, frame *vdom.VNode, info []string, theme *config.ThemeConfig) *vdom.VNode {
	lines := make([]*vdom.VNode, 0, len(info))
	for _, line := range info {
		lines = append(lines, vdom.NewElement("div", nil, vdom.NewText(line)))
	}
	style := fmt.Sprintf("body { margin: 0; padding: 20px; background: %s; color: %s; font-family: %s, sans-serif; }\n.info { margin-top: 10px; font-size: 12px; }\n",
		theme.Background, theme.Foreground, theme.Font)

	head := vdom.NewElement("head", nil,
		vdom.NewElement("meta", vdom.Props{"charset": "utf-8"}),
		vdom.NewElement("title", nil, vdom.NewText(title)),
		vdom.NewElement("style", nil, vdom.NewText(style)),
	)
	body := vdom.NewElement("body", nil,
		vdom.NewElement("div", vdom.Props{"class": "surface"}, frame),
		vdom.NewElement("div", vdom.Props{"class": "info"}, lines...),
	)
	return vdom.NewElement("html", vdom.Props{"lang": "en"}, head, body)
}
