package renderer

import (
	"fmt"
	"strconv"
)

// Matrix is a 2D affine transform
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
//
// using the same layout as canvas setTransform and SVG matrix().
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Multiply returns m × n, i.e. n is applied first.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translate post-multiplies a translation, like ctx.translate.
func (m Matrix) Translate(x, y float64) Matrix {
	return m.Multiply(Matrix{A: 1, D: 1, E: x, F: y})
}

// Scale post-multiplies a scale, like ctx.scale.
func (m Matrix) Scale(sx, sy float64) Matrix {
	return m.Multiply(Matrix{A: sx, D: sy})
}

// Apply maps a point through the transform.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Invert returns the inverse transform. ok is false for singular matrices.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Matrix{}, false
	}
	return Matrix{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
		E: (m.C*m.F - m.D*m.E) / det,
		F: (m.B*m.E - m.A*m.F) / det,
	}, true
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// ScaleFactor is the uniform scale of m. Only exact for transforms built
// from translate and uniform scale, which is all the viewer produces.
func (m Matrix) ScaleFactor() float64 {
	return m.A
}

// SVG formats the matrix for an SVG transform attribute.
func (m Matrix) SVG() string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return fmt.Sprintf("matrix(%s %s %s %s %s %s)", f(m.A), f(m.B), f(m.C), f(m.D), f(m.E), f(m.F))
}

// Stack is a save/restore stack of transforms, shared by backends that
// track the transform themselves.
type Stack struct {
	current Matrix
	saved   []Matrix
}

// NewStack returns a stack holding the identity.
func NewStack() *Stack {
	return &Stack{current: Identity()}
}

// Current returns the active transform.
func (s *Stack) Current() Matrix { return s.current }

// Depth returns the number of unmatched Save calls.
func (s *Stack) Depth() int { return len(s.saved) }

// Save pushes the active transform.
func (s *Stack) Save() { s.saved = append(s.saved, s.current) }

// Restore pops the last saved transform. Restoring an empty stack is a
// no-op, as on a canvas.
func (s *Stack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// Translate updates the active transform.
func (s *Stack) Translate(x, y float64) { s.current = s.current.Translate(x, y) }

// Scale updates the active transform.
func (s *Stack) Scale(sx, sy float64) { s.current = s.current.Scale(sx, sy) }

// Reset drops all saved state and returns to the identity.
func (s *Stack) Reset() {
	s.current = Identity()
	s.saved = s.saved[:0]
}
