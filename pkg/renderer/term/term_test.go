package term

import (
	"errors"
	"strings"
	"testing"

	"github.com/recera/rbgview/pkg/renderer"
)

func rows(s *Surface) []string {
	return strings.Split(s.Plain(), "\n")
}

func TestSurface_Size(t *testing.T) {
	s := New(10, 4)
	if w, h := s.Size(); w != 80 || h != 64 {
		t.Errorf("Size() = (%v,%v), want (80,64)", w, h)
	}
	s.Resize(-1, 2)
	if c, r := s.Grid(); c != 0 || r != 2 {
		t.Errorf("Grid() = (%d,%d), want (0,2)", c, r)
	}
}

func TestSurface_RoundRectOutline(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		want   []string
	}{
		{"square", 0, []string{
			"          ",
			" ┌──┐     ",
			" │  │     ",
			" └──┘     ",
			"          ",
		}},
		{"rounded", 2, []string{
			"          ",
			" ╭──╮     ",
			" │  │     ",
			" ╰──╯     ",
			"          ",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewWithCell(10, 5, 1, 1)
			err := s.RoundRect(1, 1, 4, 3, tt.radius, renderer.Paint{Stroke: "white", LineWidth: 1})
			if err != nil {
				t.Fatalf("RoundRect() error: %v", err)
			}
			got := rows(s)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("row %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
			if c := s.At(1, 1); c.Foreground != "#ffffff" {
				t.Errorf("outline color = %q", c.Foreground)
			}
		})
	}
}

func TestSurface_CircleFill(t *testing.T) {
	s := NewWithCell(5, 5, 1, 1)
	if err := s.Circle(2.5, 2.5, 2, renderer.Paint{Fill: "red"}); err != nil {
		t.Fatalf("Circle() error: %v", err)
	}

	filled := 0
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			if s.At(col, row).Background == "#ff0000" {
				filled++
			}
		}
	}
	if filled != 13 {
		t.Errorf("filled cells = %d, want 13", filled)
	}
	if s.At(0, 0).Background != "" {
		t.Error("corner should be outside the circle")
	}
}

func TestSurface_TextCentered(t *testing.T) {
	s := NewWithCell(10, 3, 1, 1)
	if err := s.Text("abc", 5, 1.5, renderer.TextStyle{Color: "#00ff00"}); err != nil {
		t.Fatalf("Text() error: %v", err)
	}
	if got := rows(s)[1]; got != "    abc   " {
		t.Errorf("row = %q", got)
	}
	if c := s.At(4, 1); c.Foreground != "#00ff00" {
		t.Errorf("text color = %q", c.Foreground)
	}
	if !strings.Contains(s.View(), "abc") {
		t.Error("View() should contain the label")
	}
}

func TestSurface_Transform(t *testing.T) {
	s := NewWithCell(10, 4, 1, 1)
	s.Save()
	s.Translate(2, 0)
	s.Scale(2, 2)
	if err := s.RoundRect(0, 0, 2, 1, 0, renderer.Paint{Fill: "blue"}); err != nil {
		t.Fatalf("RoundRect() error: %v", err)
	}
	s.Restore()

	for _, tc := range []struct {
		col, row int
		want     string
	}{
		{2, 0, "#0000ff"},
		{5, 1, "#0000ff"},
		{1, 0, ""},
		{6, 0, ""},
		{2, 2, ""},
	} {
		if got := s.At(tc.col, tc.row).Background; got != tc.want {
			t.Errorf("cell (%d,%d) = %q, want %q", tc.col, tc.row, got, tc.want)
		}
	}
	if s.Depth() != 0 {
		t.Errorf("depth = %d", s.Depth())
	}
}

func TestSurface_ClipsAndClears(t *testing.T) {
	s := NewWithCell(4, 2, 1, 1)
	s.Background = "#1e1e1e"
	if err := s.Circle(-50, -50, 100, renderer.Paint{Fill: "red"}); err != nil {
		t.Fatalf("Circle() error: %v", err)
	}
	if err := s.Text("too long for the grid", 0, 0, renderer.TextStyle{}); err != nil {
		t.Fatalf("Text() error: %v", err)
	}
	s.Clear()
	for _, line := range rows(s) {
		if line != "    " {
			t.Errorf("cleared row = %q", line)
		}
	}
	if s.At(0, 0).Background != "#1e1e1e" {
		t.Error("cleared cells should take the background")
	}
}

func TestSurface_Errors(t *testing.T) {
	s := New(4, 4)
	if err := s.Circle(0, 0, -1, renderer.Paint{}); !errors.Is(err, renderer.ErrNegativeRadius) {
		t.Errorf("expected ErrNegativeRadius, got %v", err)
	}
	if err := s.RoundRect(0, 0, 1, 1, 0, renderer.Paint{Stroke: "nope", LineWidth: 1}); !errors.Is(err, renderer.ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}

func TestSurface_ExtremeZoom(t *testing.T) {
	s := NewWithCell(4, 2, 1, 1)
	s.Scale(1e300, 1e300)
	if err := s.RoundRect(-1, -1, 2, 2, 0, renderer.Paint{Fill: "red"}); err != nil {
		t.Fatalf("RoundRect() error: %v", err)
	}
	for row := 0; row < 2; row++ {
		for col := 0; col < 4; col++ {
			if c := s.At(col, row); c.Background != "#ff0000" {
				t.Errorf("cell (%d,%d) = %+v, want filled", col, row, c)
			}
		}
	}

	s.Clear()
	if err := s.Circle(0, 0, 1, renderer.Paint{Fill: "red"}); err != nil {
		t.Fatalf("Circle() error: %v", err)
	}
	if c := s.At(0, 0); c.Background != "#ff0000" {
		t.Errorf("circle covering the grid left (0,0) = %+v", c)
	}

	// text pushed far off the grid draws nothing
	s = NewWithCell(4, 2, 1, 1)
	s.Translate(1e300, -1e300)
	if err := s.Text("far", 0, 0, renderer.TextStyle{}); err != nil {
		t.Fatalf("Text() error: %v", err)
	}
	if got := s.Plain(); strings.TrimSpace(got) != "" {
		t.Errorf("off-grid text drawn: %q", got)
	}
}
