package renderer

import (
	"errors"
	"math"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		hex     string
		alpha   float64
		wantErr bool
	}{
		{input: "#ff0000", hex: "#ff0000", alpha: 1},
		{input: "#F00", hex: "#ff0000", alpha: 1},
		{input: "#00ff0080", hex: "#00ff00", alpha: 128.0 / 255},
		{input: "#00f8", hex: "#0000ff", alpha: 136.0 / 255},
		{input: "  Blue ", hex: "#0000ff", alpha: 1},
		{input: "rgb(255, 0, 0)", hex: "#ff0000", alpha: 1},
		{input: "rgba(0,0,255,0.5)", hex: "#0000ff", alpha: 0.5},
		{input: "rgb(100%, 0%, 0%)", hex: "#ff0000", alpha: 1},
		{input: "rgb(300, -5, 0)", hex: "#ff0000", alpha: 1},
		{input: "transparent", hex: "#000000", alpha: 0},
		{input: "lightblue", hex: "#add8e6", alpha: 1},
		{input: "steelblue", hex: "#4682b4", alpha: 1},
		{input: "DarkGreen", hex: "#006400", alpha: 1},
		{input: "rebeccapurple", hex: "#663399", alpha: 1},
		{input: "hsl(120, 100%, 25%)", hex: "#008000", alpha: 1},
		{input: "hsla(0, 100%, 50%, 0.25)", hex: "#ff0000", alpha: 0.25},
		{input: "rgb(255 0 0 / 50%)", hex: "#ff0000", alpha: 0.5},
		{input: "", wantErr: true},
		{input: "#12345", wantErr: true},
		{input: "#12345z", wantErr: true},
		{input: "#ggg", wantErr: true},
		{input: "rgb(1,2)", wantErr: true},
		{input: "rgb(a,b,c)", wantErr: true},
		{input: "rgb(1,2,3", wantErr: true},
		{input: "var(--vscode-editor-foreground)", wantErr: true},
		{input: "notacolor", wantErr: true},
		{input: "bad", wantErr: true},
		{input: "ff0000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Fatalf("expected ErrInvalidColor, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Hex() != tt.hex {
				t.Errorf("Hex() = %s, want %s", c.Hex(), tt.hex)
			}
			if math.Abs(c.Alpha-tt.alpha) > 1e-9 {
				t.Errorf("Alpha = %v, want %v", c.Alpha, tt.alpha)
			}
		})
	}
}

func TestCheckPaint(t *testing.T) {
	if err := CheckPaint(Paint{Fill: "#fff", Stroke: "black"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckPaint(Paint{}); err != nil {
		t.Errorf("empty paint should be valid: %v", err)
	}
	if err := CheckPaint(Paint{Fill: "bogus"}); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor for fill, got %v", err)
	}
	if err := CheckPaint(Paint{Fill: "red", Stroke: "bogus"}); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor for stroke, got %v", err)
	}
	if err := CheckRadius(-1); !errors.Is(err, ErrNegativeRadius) {
		t.Errorf("expected ErrNegativeRadius, got %v", err)
	}
	if err := CheckRadius(0); err != nil {
		t.Errorf("zero radius is valid: %v", err)
	}
}

func TestMatrix_TranslateThenScale(t *testing.T) {
	m := Identity().Translate(100, 50).Scale(2, 2)

	x, y := m.Apply(10, 10)
	if x != 120 || y != 70 {
		t.Errorf("Apply(10,10) = (%v,%v), want (120,70)", x, y)
	}

	// Scale then translate moves by scaled amounts instead
	n := Identity().Scale(2, 2).Translate(100, 50)
	x, y = n.Apply(10, 10)
	if x != 220 || y != 120 {
		t.Errorf("Apply(10,10) = (%v,%v), want (220,120)", x, y)
	}

	if m.SVG() != "matrix(2 0 0 2 100 50)" {
		t.Errorf("SVG() = %s", m.SVG())
	}
}

func TestMatrix_Invert(t *testing.T) {
	m := Identity().Translate(-30, 12.5).Scale(1.2, 1.2)
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("matrix should be invertible")
	}
	x, y := inv.Apply(m.Apply(7, -3))
	if math.Abs(x-7) > 1e-9 || math.Abs(y+3) > 1e-9 {
		t.Errorf("round trip = (%v,%v), want (7,-3)", x, y)
	}
	if _, ok := (Matrix{}).Invert(); ok {
		t.Error("zero matrix should not be invertible")
	}
}

func TestStack(t *testing.T) {
	s := NewStack()
	s.Save()
	s.Translate(5, 5)
	s.Save()
	s.Scale(3, 3)
	if s.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", s.Depth())
	}
	if s.Current().ScaleFactor() != 3 {
		t.Errorf("ScaleFactor() = %v", s.Current().ScaleFactor())
	}
	s.Restore()
	if x, _ := s.Current().Apply(0, 0); x != 5 {
		t.Errorf("after one restore, origin maps to %v, want 5", x)
	}
	s.Restore()
	s.Restore() // extra restore is ignored
	if !s.Current().IsIdentity() || s.Depth() != 0 {
		t.Errorf("stack should be back to identity, got %+v depth %d", s.Current(), s.Depth())
	}
}
