package graphviewer

import (
	"errors"
	"fmt"
	"math"

	"github.com/recera/rbgview/pkg/rbg"
	"github.com/recera/rbgview/pkg/renderer"
)

// ErrRenderFailure matches every error produced by a failed draw pass.
var ErrRenderFailure = errors.New("render failure")

// FallbackTitle heads the panel drawn in place of a graph that failed.
const FallbackTitle = "Error rendering RBG graph"

// RenderError reports the node that failed to draw.
type RenderError struct {
	// Index is the node's position in the document, or -1 when the failure
	// was not tied to a node.
	Index    int
	TypeName string
	Err      error
}

func (e *RenderError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: %v", ErrRenderFailure, e.Err)
	}
	return fmt.Sprintf("%v: node %d (%s): %v", ErrRenderFailure, e.Index, e.TypeName, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Is makes every RenderError match ErrRenderFailure.
func (e *RenderError) Is(target error) bool { return target == ErrRenderFailure }

// Render clears s and draws every visible node under the viewport
// transform. The transform is always restored before returning, including
// when a draw call fails or panics. The first failure stops the pass.
func (v *Viewer) Render(s renderer.Surface) (err error) {
	s.Clear()
	s.Save()
	defer s.Restore()
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{Index: -1, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	// Translate before scaling so a one-pixel drag is one pixel at any zoom
	s.Translate(v.vp.OffsetX, v.vp.OffsetY)
	s.Scale(v.vp.Scale, v.vp.Scale)

	for i, n := range v.doc.Nodes {
		if !n.Visible() {
			continue
		}
		if err := v.drawNode(s, n); err != nil {
			return &RenderError{Index: i, TypeName: n.TypeName, Err: err}
		}
	}
	return nil
}

func (v *Viewer) drawNode(s renderer.Surface, n rbg.Node) error {
	c := n.RenderConfig
	paint := renderer.Paint{
		Fill:      c.Color,
		Stroke:    v.opts.ForegroundColor,
		LineWidth: v.opts.LineWidth,
	}
	if paint.Fill == "" {
		paint.Fill = v.opts.NodeColor
	}

	cx, cy := c.Center()
	if n.IsStart() {
		if err := s.Circle(cx, cy, math.Min(c.Width, c.Height)/2, paint); err != nil {
			return err
		}
	} else {
		if err := s.RoundRect(c.X, c.Y, c.Width, c.Height, v.opts.CornerRadius, paint); err != nil {
			return err
		}
	}

	return s.Text(n.Label(), cx, cy, renderer.TextStyle{
		Color: v.opts.ForegroundColor,
		Font:  v.opts.Font,
		Size:  v.opts.FontSize,
	})
}

// Draw is the outermost render entry point. It renders the graph and, if
// that fails, replaces it with an error panel so the surface never shows a
// half-drawn frame. The render error is still returned for the host to
// report.
func (v *Viewer) Draw(s renderer.Surface) error {
	err := v.Render(s)
	if err == nil {
		return nil
	}
	if debugLog != nil {
		debugLog("[Viewer] render failed:", err.Error())
	}
	DrawError(s, err, v.opts)
	return err
}

// DrawError paints the fallback panel for err on s at identity transform.
func DrawError(s renderer.Surface, err error, opts Options) {
	o := (&opts).withDefaults()
	s.Clear()
	w, h := s.Size()
	title := renderer.TextStyle{Color: o.ErrorColor, Font: o.Font, Size: o.FontSize * 1.5}
	body := renderer.TextStyle{Color: o.ForegroundColor, Font: o.Font, Size: o.FontSize}
	// a failure here leaves the surface cleared
	_ = s.Text(FallbackTitle, w/2, h/2-o.FontSize, title)
	_ = s.Text(err.Error(), w/2, h/2+o.FontSize, body)
}
