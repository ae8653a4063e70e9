// Package renderer defines the drawing surface the graph viewer paints on,
// plus the geometry and color helpers shared by the concrete backends.
package renderer

import "errors"

var (
	// ErrInvalidColor is returned for color strings no backend can paint.
	ErrInvalidColor = errors.New("invalid color")
	// ErrNegativeRadius is returned when a circle or corner radius is negative.
	ErrNegativeRadius = errors.New("negative radius")
)

// Paint describes how a shape is filled and outlined. Empty colors mean
// "don't fill" / "don't stroke".
type Paint struct {
	Fill      string
	Stroke    string
	LineWidth float64
}

// TextStyle describes a label. Labels are always centered horizontally and
// vertically on the anchor point.
type TextStyle struct {
	Color string
	Font  string
	Size  float64
}

// Surface is a 2D drawing target with a canvas-like transform stack.
//
// Save pushes the current transform, Restore pops it. Translate and Scale
// post-multiply the current transform, so Translate followed by Scale maps a
// point p to offset + scale*p.
type Surface interface {
	// Size returns the drawable area in surface pixels.
	Size() (width, height float64)
	// Clear erases everything drawn so far.
	Clear()
	Save()
	Restore()
	Translate(x, y float64)
	Scale(sx, sy float64)
	// Circle draws a circle centered at (cx, cy).
	Circle(cx, cy, r float64, p Paint) error
	// RoundRect draws a rectangle whose corners are rounded by radius r.
	RoundRect(x, y, w, h, r float64, p Paint) error
	// Text draws s centered on (x, y).
	Text(s string, x, y float64, style TextStyle) error
}

// CheckPaint validates the colors of p.
func CheckPaint(p Paint) error {
	if p.Fill != "" {
		if _, err := ParseColor(p.Fill); err != nil {
			return err
		}
	}
	if p.Stroke != "" {
		if _, err := ParseColor(p.Stroke); err != nil {
			return err
		}
	}
	return nil
}

// CheckRadius rejects negative radii, matching canvas arc semantics.
func CheckRadius(r float64) error {
	if r < 0 {
		return ErrNegativeRadius
	}
	return nil
}
