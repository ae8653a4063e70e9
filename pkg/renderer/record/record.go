// Package record implements a renderer.Surface that remembers every draw
// call instead of painting. Tests use it to assert on geometry.
package record

import (
	"github.com/recera/rbgview/pkg/renderer"
)

// Op identifies a recorded call.
type Op string

const (
	OpClear     Op = "clear"
	OpSave      Op = "save"
	OpRestore   Op = "restore"
	OpTranslate Op = "translate"
	OpScale     Op = "scale"
	OpCircle    Op = "circle"
	OpRoundRect Op = "roundRect"
	OpText      Op = "text"
)

// Call is one recorded draw call. Coordinates are as passed by the caller
// (user space); Transform is the transform that was active at the time.
type Call struct {
	Op        Op
	Args      []float64
	Text      string
	Paint     renderer.Paint
	TextStyle renderer.TextStyle
	Transform renderer.Matrix
}

// Surface records calls. It validates paints and radii like a real backend
// so failures can be tested without one.
type Surface struct {
	Width, Height float64
	Calls         []Call

	stack *renderer.Stack
	// FailOn makes the named op fail with the given error.
	FailOn map[Op]error
}

// New returns an empty recorder of the given size.
func New(width, height float64) *Surface {
	return &Surface{Width: width, Height: height, stack: renderer.NewStack()}
}

func (s *Surface) Size() (float64, float64) { return s.Width, s.Height }

// Clear drops prior calls, so Calls only ever holds the latest frame.
func (s *Surface) Clear() {
	s.Calls = s.Calls[:0]
	s.record(Call{Op: OpClear})
}

func (s *Surface) Save() {
	s.record(Call{Op: OpSave})
	s.stack.Save()
}

func (s *Surface) Restore() {
	s.record(Call{Op: OpRestore})
	s.stack.Restore()
}

func (s *Surface) Translate(x, y float64) {
	s.record(Call{Op: OpTranslate, Args: []float64{x, y}})
	s.stack.Translate(x, y)
}

func (s *Surface) Scale(sx, sy float64) {
	s.record(Call{Op: OpScale, Args: []float64{sx, sy}})
	s.stack.Scale(sx, sy)
}

func (s *Surface) Circle(cx, cy, r float64, p renderer.Paint) error {
	if err := s.fail(OpCircle); err != nil {
		return err
	}
	if err := renderer.CheckRadius(r); err != nil {
		return err
	}
	if err := renderer.CheckPaint(p); err != nil {
		return err
	}
	s.record(Call{Op: OpCircle, Args: []float64{cx, cy, r}, Paint: p})
	return nil
}

func (s *Surface) RoundRect(x, y, w, h, r float64, p renderer.Paint) error {
	if err := s.fail(OpRoundRect); err != nil {
		return err
	}
	if err := renderer.CheckRadius(r); err != nil {
		return err
	}
	if err := renderer.CheckPaint(p); err != nil {
		return err
	}
	s.record(Call{Op: OpRoundRect, Args: []float64{x, y, w, h, r}, Paint: p})
	return nil
}

func (s *Surface) Text(text string, x, y float64, style renderer.TextStyle) error {
	if err := s.fail(OpText); err != nil {
		return err
	}
	s.record(Call{Op: OpText, Args: []float64{x, y}, Text: text, TextStyle: style})
	return nil
}

// Depth is the number of Save calls not yet matched by Restore.
func (s *Surface) Depth() int { return s.stack.Depth() }

// Transform is the currently active transform.
func (s *Surface) Transform() renderer.Matrix { return s.stack.Current() }

// Shapes returns the circle and rounded-rectangle calls, in order.
func (s *Surface) Shapes() []Call {
	return s.Filter(OpCircle, OpRoundRect)
}

// Texts returns the text calls, in order.
func (s *Surface) Texts() []Call {
	return s.Filter(OpText)
}

// Filter returns the calls whose op is one of ops.
func (s *Surface) Filter(ops ...Op) []Call {
	var out []Call
	for _, c := range s.Calls {
		for _, op := range ops {
			if c.Op == op {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Ops lists the recorded op names, handy for comparing call sequences.
func (s *Surface) Ops() []Op {
	out := make([]Op, len(s.Calls))
	for i, c := range s.Calls {
		out[i] = c.Op
	}
	return out
}

func (s *Surface) record(c Call) {
	c.Transform = s.stack.Current()
	s.Calls = append(s.Calls, c)
}

func (s *Surface) fail(op Op) error {
	if s.FailOn == nil {
		return nil
	}
	return s.FailOn[op]
}

var _ renderer.Surface = (*Surface)(nil)
