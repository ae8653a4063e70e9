// Package graphviewer is the render pipeline for RBG documents: it owns the
// pan/zoom viewport, the drag gesture state machine and the draw pass that
// turns a document into calls on a renderer.Surface.
//
// A Viewer is not safe for concurrent use. Hosts deliver events one at a
// time and each call runs to completion before the next.
package graphviewer

import (
	"math"

	"github.com/recera/rbgview/pkg/rbg"
)

// debugLog is set by the host when debug logging is enabled
var debugLog func(args ...any)

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...any)) {
	debugLog = fn
}

// Viewer holds one document and the viewport state used to draw it.
type Viewer struct {
	opts Options
	doc  *rbg.Document
	vp   Viewport
	drag *DragAnchor

	width  float64
	height float64
}

// New creates a viewer for doc. A nil doc renders as an empty graph.
func New(doc *rbg.Document, opts *Options) *Viewer {
	v := &Viewer{
		opts: opts.withDefaults(),
		vp:   DefaultViewport,
	}
	v.SetDocument(doc)
	return v
}

// Options returns the effective options.
func (v *Viewer) Options() Options { return v.opts }

// Document returns the current document.
func (v *Viewer) Document() *rbg.Document { return v.doc }

// Info summarizes the current document for the info panel.
func (v *Viewer) Info() rbg.Info { return v.doc.Info() }

// Viewport returns a snapshot of the pan/zoom state.
func (v *Viewer) Viewport() Viewport { return v.vp }

// Dragging reports whether a drag gesture is in progress.
func (v *Viewer) Dragging() bool { return v.drag != nil }

// DragAnchor returns the active drag anchor, if any.
func (v *Viewer) DragAnchor() (DragAnchor, bool) {
	if v.drag == nil {
		return DragAnchor{}, false
	}
	return *v.drag, true
}

// Size returns the drawing surface size the viewer last computed.
func (v *Viewer) Size() (float64, float64) { return v.width, v.height }

// SetDocument replaces the document wholesale. The viewport and any drag in
// progress are kept, so a reload does not interrupt the user.
func (v *Viewer) SetDocument(doc *rbg.Document) {
	if doc == nil {
		doc = &rbg.Document{Nodes: []rbg.Node{}}
	}
	v.doc = doc
	if debugLog != nil {
		debugLog("[Viewer] document replaced:", doc.Info().String())
	}
}

// PointerDown starts a drag gesture at screen position (x, y).
func (v *Viewer) PointerDown(x, y float64) {
	v.drag = &DragAnchor{
		PointerX: x,
		PointerY: y,
		OffsetX:  v.vp.OffsetX,
		OffsetY:  v.vp.OffsetY,
	}
}

// PointerMove pans while dragging. It reports whether the viewport changed;
// moves outside a drag are ignored.
func (v *Viewer) PointerMove(x, y float64) bool {
	if v.drag == nil {
		return false
	}
	nx := x - v.drag.PointerX + v.drag.OffsetX
	ny := y - v.drag.PointerY + v.drag.OffsetY
	if nx == v.vp.OffsetX && ny == v.vp.OffsetY {
		return false
	}
	v.vp.OffsetX = nx
	v.vp.OffsetY = ny
	v.changed()
	return true
}

// PointerUp ends the drag gesture without moving the viewport.
func (v *Viewer) PointerUp() {
	v.drag = nil
}

// Wheel zooms in for negative deltaY (wheel away from the user) and out
// otherwise, a zero delta included.
func (v *Viewer) Wheel(deltaY float64) bool {
	if deltaY < 0 {
		return v.setScale(v.vp.Scale * v.opts.WheelZoomIn)
	}
	return v.setScale(v.vp.Scale * v.opts.WheelZoomOut)
}

// ZoomIn multiplies the scale by the zoom step.
func (v *Viewer) ZoomIn() bool {
	return v.setScale(v.vp.Scale * v.opts.ZoomStep)
}

// ZoomOut divides the scale by the zoom step.
func (v *Viewer) ZoomOut() bool {
	return v.setScale(v.vp.Scale / v.opts.ZoomStep)
}

// Reset returns to scale 1 with no offset and abandons any drag.
func (v *Viewer) Reset() bool {
	v.drag = nil
	v.vp = DefaultViewport
	v.changed()
	return true
}

// Resize derives the surface size from its container: the container width
// minus padding, and a fixed fraction of the viewport height. The viewport
// itself is left alone.
func (v *Viewer) Resize(containerWidth, viewportHeight float64) bool {
	return v.SetSize(containerWidth-v.opts.Padding, viewportHeight*v.opts.HeightFraction)
}

// SetSize sets the surface size directly, for hosts that know it exactly.
func (v *Viewer) SetSize(width, height float64) bool {
	v.width = math.Max(0, width)
	v.height = math.Max(0, height)
	return true
}

// SetViewport replaces the viewport, ignoring a non-positive or non-finite
// scale.
func (v *Viewer) SetViewport(vp Viewport) bool {
	if !validScale(vp.Scale) || !finite(vp.OffsetX) || !finite(vp.OffsetY) {
		return false
	}
	v.vp = Viewport{Scale: v.clamp(vp.Scale), OffsetX: vp.OffsetX, OffsetY: vp.OffsetY}
	v.changed()
	return true
}

// ScreenToWorld maps a surface position to document coordinates.
func (v *Viewer) ScreenToWorld(x, y float64) (float64, float64) {
	return (x - v.vp.OffsetX) / v.vp.Scale, (y - v.vp.OffsetY) / v.vp.Scale
}

// NodeAt returns the topmost visible node under the surface position (x, y).
func (v *Viewer) NodeAt(x, y float64) (rbg.Node, int, bool) {
	wx, wy := v.ScreenToWorld(x, y)
	for i := len(v.doc.Nodes) - 1; i >= 0; i-- {
		n := v.doc.Nodes[i]
		if !n.Visible() {
			continue
		}
		c := n.RenderConfig
		if n.IsStart() {
			cx, cy := c.Center()
			r := math.Min(c.Width, c.Height) / 2
			if dx, dy := wx-cx, wy-cy; dx*dx+dy*dy <= r*r {
				return n, i, true
			}
			continue
		}
		if wx >= c.X && wx <= c.X+c.Width && wy >= c.Y && wy <= c.Y+c.Height {
			return n, i, true
		}
	}
	return rbg.Node{}, -1, false
}

func (v *Viewer) setScale(next float64) bool {
	next = v.clamp(next)
	if !validScale(next) || next == v.vp.Scale {
		return false
	}
	v.vp.Scale = next
	v.changed()
	return true
}

func (v *Viewer) clamp(s float64) float64 {
	if v.opts.MinScale > 0 && s < v.opts.MinScale {
		s = v.opts.MinScale
	}
	if v.opts.MaxScale > 0 && s > v.opts.MaxScale {
		s = v.opts.MaxScale
	}
	return s
}

func (v *Viewer) changed() {
	if debugLog != nil {
		debugLog("[Viewer] viewport:", v.vp.Scale, v.vp.OffsetX, v.vp.OffsetY)
	}
	if v.opts.OnViewportChange != nil {
		v.opts.OnViewportChange(v.vp)
	}
}

func validScale(s float64) bool {
	return s > 0 && finite(s)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
