package graphviewer

// Viewport is the pan/zoom transform applied to all drawn content:
// screen = (OffsetX, OffsetY) + Scale * world.
type Viewport struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// DefaultViewport is the state every fresh viewer starts in.
var DefaultViewport = Viewport{Scale: 1}

// DragAnchor captures where a drag gesture started. It only exists while a
// drag is in progress.
type DragAnchor struct {
	PointerX float64
	PointerY float64
	OffsetX  float64
	OffsetY  float64
}

// Options configures the viewer behavior and style
type Options struct {
	// Zoom
	ZoomStep     float64 // default 1.2, used by ZoomIn/ZoomOut
	WheelZoomIn  float64 // default 1.1, wheel toward the user's away direction
	WheelZoomOut float64 // default 0.9

	// Scale bounds; 0 leaves that side unbounded
	MinScale float64
	MaxScale float64

	// Surface sizing from the container
	Padding        float64 // default 40, subtracted from container width
	HeightFraction float64 // default 0.6 of the viewport height

	// Rendering
	ForegroundColor string  // default "#d4d4d4", outlines and labels
	NodeColor       string  // default "#3c3c3c", fill for nodes without a color
	ErrorColor      string  // default "#f48771"
	Font            string  // default "Arial"
	FontSize        float64 // default 12
	CornerRadius    float64 // default 5
	LineWidth       float64 // default 1

	// OnViewportChange is called after every viewport mutation (optional)
	OnViewportChange func(Viewport)
}

func (o *Options) withDefaults() Options {
	d := Options{
		ZoomStep:        1.2,
		WheelZoomIn:     1.1,
		WheelZoomOut:    0.9,
		Padding:         40,
		HeightFraction:  0.6,
		ForegroundColor: "#d4d4d4",
		NodeColor:       "#3c3c3c",
		ErrorColor:      "#f48771",
		Font:            "Arial",
		FontSize:        12,
		CornerRadius:    5,
		LineWidth:       1,
	}
	if o == nil {
		return d
	}
	if o.ZoomStep > 1 {
		d.ZoomStep = o.ZoomStep
	}
	if o.WheelZoomIn > 1 {
		d.WheelZoomIn = o.WheelZoomIn
	}
	if o.WheelZoomOut > 0 && o.WheelZoomOut < 1 {
		d.WheelZoomOut = o.WheelZoomOut
	}
	if o.MinScale > 0 {
		d.MinScale = o.MinScale
	}
	if o.MaxScale > 0 && o.MaxScale >= d.MinScale {
		d.MaxScale = o.MaxScale
	}
	if o.Padding > 0 {
		d.Padding = o.Padding
	}
	if o.HeightFraction > 0 {
		d.HeightFraction = o.HeightFraction
	}
	if o.ForegroundColor != "" {
		d.ForegroundColor = o.ForegroundColor
	}
	if o.NodeColor != "" {
		d.NodeColor = o.NodeColor
	}
	if o.ErrorColor != "" {
		d.ErrorColor = o.ErrorColor
	}
	if o.Font != "" {
		d.Font = o.Font
	}
	if o.FontSize > 0 {
		d.FontSize = o.FontSize
	}
	if o.CornerRadius > 0 {
		d.CornerRadius = o.CornerRadius
	}
	if o.LineWidth > 0 {
		d.LineWidth = o.LineWidth
	}
	d.OnViewportChange = o.OnViewportChange
	return d
}
