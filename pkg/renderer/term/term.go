// Package term rasterizes draw calls onto a character grid for terminal
// display. Each cell covers CellWidth x CellHeight surface pixels.
package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/recera/rbgview/pkg/renderer"
)

// Default cell size in surface pixels. Terminal cells are roughly twice as
// tall as they are wide.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

const (
	fillRune = ' '
	dotRune  = '•'
)

// Cell is one character of the grid.
type Cell struct {
	Rune rune
	// Foreground and Background are #rrggbb, or empty for the terminal
	// default.
	Foreground string
	Background string
}

// Surface is a renderer.Surface backed by a grid of cells.
type Surface struct {
	cols, rows int
	cellW      float64
	cellH      float64
	// Background fills cleared cells, if set.
	Background string

	stack *renderer.Stack
	cells []Cell
}

// New returns a grid of cols x rows cells using the default cell size.
func New(cols, rows int) *Surface {
	return NewWithCell(cols, rows, DefaultCellWidth, DefaultCellHeight)
}

// NewWithCell returns a grid with a custom cell size.
func NewWithCell(cols, rows int, cellW, cellH float64) *Surface {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	s := &Surface{cellW: cellW, cellH: cellH, stack: renderer.NewStack()}
	s.Resize(cols, rows)
	return s
}

// Resize changes the grid dimensions and clears it.
func (s *Surface) Resize(cols, rows int) {
	s.cols = max(cols, 0)
	s.rows = max(rows, 0)
	s.cells = make([]Cell, s.cols*s.rows)
	s.Clear()
}

// Grid returns the grid dimensions in cells.
func (s *Surface) Grid() (cols, rows int) { return s.cols, s.rows }

// Size is the grid size in surface pixels.
func (s *Surface) Size() (float64, float64) {
	return float64(s.cols) * s.cellW, float64(s.rows) * s.cellH
}

// Clear blanks every cell.
func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = Cell{Rune: ' ', Background: s.Background}
	}
}

func (s *Surface) Save()                  { s.stack.Save() }
func (s *Surface) Restore()               { s.stack.Restore() }
func (s *Surface) Translate(x, y float64) { s.stack.Translate(x, y) }
func (s *Surface) Scale(sx, sy float64)   { s.stack.Scale(sx, sy) }

// Depth is the number of unmatched Save calls.
func (s *Surface) Depth() int { return s.stack.Depth() }

// At returns the cell at (col, row). Out of range positions return a blank
// cell.
func (s *Surface) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return Cell{Rune: ' '}
	}
	return s.cells[row*s.cols+col]
}

func (s *Surface) Circle(cx, cy, r float64, p renderer.Paint) error {
	if err := renderer.CheckRadius(r); err != nil {
		return err
	}
	fill, stroke, err := resolvePaint(p)
	if err != nil {
		return err
	}

	m := s.stack.Current()
	px, py := m.Apply(cx, cy)
	pr := r * math.Abs(m.ScaleFactor())
	edge := math.Max(s.cellW, s.cellH) / 2

	c0, r0, c1, r1 := s.span(px-pr, py-pr, px+pr, py+pr)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			x, y := s.center(col, row)
			d := math.Hypot(x-px, y-py)
			switch {
			case d > pr:
				continue
			case stroke != "" && d > pr-edge:
				s.set(col, row, Cell{Rune: dotRune, Foreground: stroke, Background: fill})
			case fill != "":
				s.set(col, row, Cell{Rune: fillRune, Background: fill})
			}
		}
	}
	return nil
}

func (s *Surface) RoundRect(x, y, w, h, r float64, p renderer.Paint) error {
	if err := renderer.CheckRadius(r); err != nil {
		return err
	}
	fill, stroke, err := resolvePaint(p)
	if err != nil {
		return err
	}

	m := s.stack.Current()
	x0, y0 := m.Apply(x, y)
	x1, y1 := m.Apply(x+w, y+h)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}

	c0, r0, c1, r1 := s.span(x0, y0, x1, y1)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			cx, cy := s.center(col, row)
			if cx < x0 || cx > x1 || cy < y0 || cy > y1 {
				continue
			}
			if stroke == "" {
				if fill != "" {
					s.set(col, row, Cell{Rune: fillRune, Background: fill})
				}
				continue
			}
			ch := boxRune(col == c0 || cx-s.cellW < x0, col == c1 || cx+s.cellW > x1,
				row == r0 || cy-s.cellH < y0, row == r1 || cy+s.cellH > y1, r > 0)
			if ch == fillRune && fill == "" {
				continue
			}
			s.set(col, row, Cell{Rune: ch, Foreground: stroke, Background: fill})
		}
	}
	return nil
}

func (s *Surface) Text(text string, x, y float64, style renderer.TextStyle) error {
	fg := ""
	if style.Color != "" {
		c, err := renderer.ParseColor(style.Color)
		if err != nil {
			return err
		}
		if !c.Transparent() {
			fg = c.Hex()
		}
	}

	px, py := s.stack.Current().Apply(x, y)
	runes := []rune(text)
	row := clampIndex(math.Floor(py/s.cellH), -1, s.rows)
	col := clampIndex(math.Round(px/s.cellW-float64(len(runes))/2), -len(runes)-1, s.cols)
	for i, ch := range runes {
		c := s.At(col+i, row)
		c.Rune = ch
		c.Foreground = fg
		s.set(col+i, row, c)
	}
	return nil
}

// Plain returns the grid as text without colors.
func (s *Surface) Plain() string {
	var b strings.Builder
	for row := 0; row < s.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < s.cols; col++ {
			b.WriteRune(s.cells[row*s.cols+col].Rune)
		}
	}
	return b.String()
}

// View returns the grid as styled text. Runs of cells sharing colors are
// rendered through a single lipgloss style.
func (s *Surface) View() string {
	lines := make([]string, s.rows)
	for row := 0; row < s.rows; row++ {
		var b strings.Builder
		line := s.cells[row*s.cols : (row+1)*s.cols]
		for start := 0; start < len(line); {
			end := start + 1
			for end < len(line) && sameStyle(line[start], line[end]) {
				end++
			}
			var run strings.Builder
			for _, c := range line[start:end] {
				run.WriteRune(c.Rune)
			}
			b.WriteString(cellStyle(line[start]).Render(run.String()))
			start = end
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (s *Surface) set(col, row int, c Cell) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	s.cells[row*s.cols+col] = c
}

// span converts a pixel box to the inclusive range of cells it touches,
// clipped to the grid.
func (s *Surface) span(x0, y0, x1, y1 float64) (c0, r0, c1, r1 int) {
	c0 = clampIndex(math.Floor(x0/s.cellW), 0, s.cols)
	r0 = clampIndex(math.Floor(y0/s.cellH), 0, s.rows)
	c1 = clampIndex(math.Floor(x1/s.cellW), -1, s.cols-1)
	r1 = clampIndex(math.Floor(y1/s.cellH), -1, s.rows-1)
	return
}

// clampIndex converts a cell coordinate to int after clamping it to
// [lo, hi], so coordinates beyond the int range stay ordered. NaN maps to lo.
func clampIndex(f float64, lo, hi int) int {
	switch {
	case math.IsNaN(f) || f <= float64(lo):
		return lo
	case f >= float64(hi):
		return hi
	}
	return int(f)
}

func (s *Surface) center(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

func boxRune(left, right, top, bottom, rounded bool) rune {
	switch {
	case top && left:
		if rounded {
			return '╭'
		}
		return '┌'
	case top && right:
		if rounded {
			return '╮'
		}
		return '┐'
	case bottom && left:
		if rounded {
			return '╰'
		}
		return '└'
	case bottom && right:
		if rounded {
			return '╯'
		}
		return '┘'
	case top || bottom:
		return '─'
	case left || right:
		return '│'
	}
	return fillRune
}

func resolvePaint(p renderer.Paint) (fill, stroke string, err error) {
	if p.Fill != "" {
		c, err := renderer.ParseColor(p.Fill)
		if err != nil {
			return "", "", err
		}
		if !c.Transparent() {
			fill = c.Hex()
		}
	}
	if p.Stroke != "" {
		c, err := renderer.ParseColor(p.Stroke)
		if err != nil {
			return "", "", err
		}
		if !c.Transparent() && p.LineWidth > 0 {
			stroke = c.Hex()
		}
	}
	return fill, stroke, nil
}

func sameStyle(a, b Cell) bool {
	return a.Foreground == b.Foreground && a.Background == b.Background
}

func cellStyle(c Cell) lipgloss.Style {
	st := lipgloss.NewStyle()
	if c.Foreground != "" {
		st = st.Foreground(lipgloss.Color(c.Foreground))
	}
	if c.Background != "" {
		st = st.Background(lipgloss.Color(c.Background))
	}
	return st
}

var _ renderer.Surface = (*Surface)(nil)
