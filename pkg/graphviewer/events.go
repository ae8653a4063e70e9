package graphviewer

// Event is an input the viewer reacts to.
type Event interface {
	isEvent()
}

// PointerDownEvent starts a drag at a surface position.
type PointerDownEvent struct{ X, Y float64 }

// PointerMoveEvent moves the pointer; it pans only while dragging.
type PointerMoveEvent struct{ X, Y float64 }

// PointerUpEvent ends a drag.
type PointerUpEvent struct{}

// WheelEvent zooms by the wheel factors; negative DeltaY zooms in.
type WheelEvent struct{ DeltaY float64 }

// ZoomInEvent is the zoom-in button.
type ZoomInEvent struct{}

// ZoomOutEvent is the zoom-out button.
type ZoomOutEvent struct{}

// ResetEvent is the reset button.
type ResetEvent struct{}

// ResizeEvent reports a new container width and viewport height.
type ResizeEvent struct{ ContainerWidth, ViewportHeight float64 }

// FitEvent fits all visible nodes into the surface.
type FitEvent struct{ Padding float64 }

func (PointerDownEvent) isEvent() {}
func (PointerMoveEvent) isEvent() {}
func (PointerUpEvent) isEvent()   {}
func (WheelEvent) isEvent()       {}
func (ZoomInEvent) isEvent()      {}
func (ZoomOutEvent) isEvent()     {}
func (ResetEvent) isEvent()       {}
func (ResizeEvent) isEvent()      {}
func (FitEvent) isEvent()         {}

// Handle applies ev and reports whether the surface needs a redraw.
func (v *Viewer) Handle(ev Event) bool {
	switch e := ev.(type) {
	case PointerDownEvent:
		v.PointerDown(e.X, e.Y)
		return false
	case PointerMoveEvent:
		return v.PointerMove(e.X, e.Y)
	case PointerUpEvent:
		v.PointerUp()
		return false
	case WheelEvent:
		return v.Wheel(e.DeltaY)
	case ZoomInEvent:
		return v.ZoomIn()
	case ZoomOutEvent:
		return v.ZoomOut()
	case ResetEvent:
		return v.Reset()
	case ResizeEvent:
		return v.Resize(e.ContainerWidth, e.ViewportHeight)
	case FitEvent:
		return v.Fit(e.Padding)
	}
	return false
}
