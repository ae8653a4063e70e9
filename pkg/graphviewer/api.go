package graphviewer

// API is the set of discrete controls a host exposes as buttons or keys.
type API interface {
	ZoomIn() bool
	ZoomOut() bool
	Reset() bool
	Fit(padding float64) bool
}

var _ API = (*Viewer)(nil)

// Fit sets the viewport so the boxes of all visible nodes fill the surface,
// leaving padding on each side, and centers them. It does nothing when
// there are no visible nodes or the surface has no size.
func (v *Viewer) Fit(padding float64) bool {
	nodes := v.doc.VisibleNodes()
	if len(nodes) == 0 || v.width <= 0 || v.height <= 0 {
		return false
	}

	first := nodes[0].RenderConfig
	minx, miny := first.X, first.Y
	maxx, maxy := first.X+first.Width, first.Y+first.Height
	for _, n := range nodes[1:] {
		c := n.RenderConfig
		if c.X < minx {
			minx = c.X
		}
		if c.Y < miny {
			miny = c.Y
		}
		if c.X+c.Width > maxx {
			maxx = c.X + c.Width
		}
		if c.Y+c.Height > maxy {
			maxy = c.Y + c.Height
		}
	}

	gw := maxx - minx
	if gw <= 0 {
		gw = 1
	}
	gh := maxy - miny
	if gh <= 0 {
		gh = 1
	}
	sx := (v.width - 2*padding) / gw
	sy := (v.height - 2*padding) / gh
	s := sx
	if sy < s {
		s = sy
	}
	if s <= 0 {
		s = 1
	}
	s = v.clamp(s)

	return v.SetViewport(Viewport{
		Scale:   s,
		OffsetX: v.width*0.5 - (minx+gw*0.5)*s,
		OffsetY: v.height*0.5 - (miny+gh*0.5)*s,
	})
}
