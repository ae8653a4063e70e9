// Package svg implements renderer.Surface by building an SVG vdom tree.
// Every draw call becomes one element carrying the transform that was
// active when it was issued.
package svg

import (
	"io"
	"strconv"

	"github.com/recera/rbgview/pkg/renderer"
	"github.com/recera/rbgview/pkg/renderer/html"
	"github.com/recera/rbgview/pkg/vdom"
)

const namespace = "http://www.w3.org/2000/svg"

// Surface accumulates SVG elements for a single frame.
type Surface struct {
	width, height float64
	// Background, when set, is painted as a full-size rect under every frame.
	Background string
	// Class is set on the root element, if not empty.
	Class string

	stack *renderer.Stack
	elems []*vdom.VNode
}

// New returns an empty surface of the given pixel size.
func New(width, height float64) *Surface {
	return &Surface{width: width, height: height, stack: renderer.NewStack()}
}

func (s *Surface) Size() (float64, float64) { return s.width, s.height }

// Resize changes the surface size; drawn content is kept.
func (s *Surface) Resize(width, height float64) {
	s.width, s.height = width, height
}

// Clear drops every element. The transform stack is left alone, as on a
// canvas.
func (s *Surface) Clear() { s.elems = s.elems[:0] }

func (s *Surface) Save()                  { s.stack.Save() }
func (s *Surface) Restore()               { s.stack.Restore() }
func (s *Surface) Translate(x, y float64) { s.stack.Translate(x, y) }
func (s *Surface) Scale(sx, sy float64)   { s.stack.Scale(sx, sy) }

// Depth is the number of unmatched Save calls.
func (s *Surface) Depth() int { return s.stack.Depth() }

func (s *Surface) Circle(cx, cy, r float64, p renderer.Paint) error {
	if err := renderer.CheckRadius(r); err != nil {
		return err
	}
	props, err := s.paintProps(p)
	if err != nil {
		return err
	}
	props["cx"] = cx
	props["cy"] = cy
	props["r"] = r
	s.elems = append(s.elems, vdom.NewElement("circle", props))
	return nil
}

func (s *Surface) RoundRect(x, y, w, h, r float64, p renderer.Paint) error {
	if err := renderer.CheckRadius(r); err != nil {
		return err
	}
	props, err := s.paintProps(p)
	if err != nil {
		return err
	}
	// negative sizes draw from the far edge, like canvas roundRect
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	props["x"] = x
	props["y"] = y
	props["width"] = w
	props["height"] = h
	if r > 0 {
		props["rx"] = r
		props["ry"] = r
	}
	s.elems = append(s.elems, vdom.NewElement("rect", props))
	return nil
}

func (s *Surface) Text(text string, x, y float64, style renderer.TextStyle) error {
	props := vdom.Props{
		"x":                 x,
		"y":                 y,
		"text-anchor":       "middle",
		"dominant-baseline": "middle",
	}
	if style.Color != "" {
		c, err := renderer.ParseColor(style.Color)
		if err != nil {
			return err
		}
		setColor(props, "fill", c)
	}
	if style.Font != "" {
		props["font-family"] = style.Font
	}
	if style.Size > 0 {
		props["font-size"] = style.Size
	}
	s.transform(props)
	s.elems = append(s.elems, vdom.NewElement("text", props, vdom.NewText(text)))
	return nil
}

// Document returns the frame as an <svg> element.
func (s *Surface) Document() *vdom.VNode {
	w := strconv.FormatFloat(s.width, 'f', -1, 64)
	h := strconv.FormatFloat(s.height, 'f', -1, 64)
	props := vdom.Props{
		"xmlns":   namespace,
		"width":   s.width,
		"height":  s.height,
		"viewBox": "0 0 " + w + " " + h,
	}
	if s.Class != "" {
		props["class"] = s.Class
	}

	root := vdom.NewElement("svg", props)
	if s.Background != "" {
		root = root.Append(vdom.NewElement("rect", vdom.Props{
			"width":  "100%",
			"height": "100%",
			"fill":   s.Background,
		}))
	}
	return root.Append(s.elems...)
}

// Encode serializes the frame to w.
func (s *Surface) Encode(w io.Writer) error {
	return html.NewApplier(w).Apply(s.Document())
}

// Markup serializes the frame.
func (s *Surface) Markup() (string, error) {
	return html.RenderToString(s.Document())
}

func (s *Surface) paintProps(p renderer.Paint) (vdom.Props, error) {
	props := vdom.Props{"fill": "none"}
	if p.Fill != "" {
		c, err := renderer.ParseColor(p.Fill)
		if err != nil {
			return nil, err
		}
		setColor(props, "fill", c)
	}
	if p.Stroke != "" {
		c, err := renderer.ParseColor(p.Stroke)
		if err != nil {
			return nil, err
		}
		if p.LineWidth > 0 {
			setColor(props, "stroke", c)
			props["stroke-width"] = p.LineWidth
		}
	}
	s.transform(props)
	return props, nil
}

func (s *Surface) transform(props vdom.Props) {
	if m := s.stack.Current(); !m.IsIdentity() {
		props["transform"] = m.SVG()
	}
}

func setColor(props vdom.Props, attr string, c renderer.Color) {
	if c.Transparent() {
		props[attr] = "none"
		return
	}
	props[attr] = c.Hex()
	if c.Alpha < 1 {
		props[attr+"-opacity"] = c.Alpha
	}
}

var _ renderer.Surface = (*Surface)(nil)
