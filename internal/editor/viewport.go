package editor

import (
	"math"

	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
	"github.com/jaajung-kjs/digital-sub000/internal/geom"
)

// Zoom limits in percent.
const (
	MinZoom = 10.0
	MaxZoom = 400.0
)

// FitPadding is the world-space margin added around content on fit-to-content.
const FitPadding = 50.0

// Viewport is the camera mapping between screen pixels and world coordinates,
// plus the grid snapping settings. Zoom is a percentage: 100 means one world
// unit per pixel.
type Viewport struct {
	Zoom        float64
	Pan         geom.Point
	GridSize    float64
	SnapEnabled bool
	ScreenW     float64
	ScreenH     float64
}

// NewViewport returns a viewport at 100% zoom with snapping enabled.
func NewViewport(screenW, screenH float64) *Viewport {
	return &Viewport{
		Zoom:        100,
		GridSize:    floorplan.DefaultGridSize,
		SnapEnabled: true,
		ScreenW:     screenW,
		ScreenH:     screenH,
	}
}

// Scale returns the world-to-screen multiplier.
func (v *Viewport) Scale() float64 {
	return v.Zoom / 100
}

// ScreenToWorld maps a pixel position to world coordinates.
func (v *Viewport) ScreenToWorld(s geom.Point) geom.Point {
	sc := v.Scale()
	return geom.Point{X: (s.X - v.Pan.X) / sc, Y: (s.Y - v.Pan.Y) / sc}
}

// WorldToScreen maps a world position to pixel coordinates.
func (v *Viewport) WorldToScreen(w geom.Point) geom.Point {
	sc := v.Scale()
	return geom.Point{X: w.X*sc + v.Pan.X, Y: w.Y*sc + v.Pan.Y}
}

// SetZoom sets the zoom level, clamped, without adjusting pan.
func (v *Viewport) SetZoom(zoom float64) {
	v.Zoom = clampZoom(zoom)
}

// ZoomAt sets the zoom level anchored at a screen point: the world position
// under the anchor stays under it after the change.
func (v *Viewport) ZoomAt(anchor geom.Point, zoom float64) {
	w := v.ScreenToWorld(anchor)
	v.Zoom = clampZoom(zoom)

	sc := v.Scale()
	v.Pan = geom.Point{X: anchor.X - w.X*sc, Y: anchor.Y - w.Y*sc}
}

// ZoomBy scales the zoom level by a factor anchored at a screen point. Wheel
// input maps here.
func (v *Viewport) ZoomBy(anchor geom.Point, factor float64) {
	v.ZoomAt(anchor, v.Zoom*factor)
}

// PanBy shifts the camera by a screen-space delta.
func (v *Viewport) PanBy(dx, dy float64) {
	v.Pan = v.Pan.Add(dx, dy)
}

// SnapPoint snaps a world point to the grid, independently per axis, rounding
// half away from zero. Identity when snapping is disabled or the grid is
// degenerate.
func (v *Viewport) SnapPoint(p geom.Point) geom.Point {
	if !v.SnapEnabled || v.GridSize <= 0 {
		return p
	}
	return geom.Point{
		X: math.Round(p.X/v.GridSize) * v.GridSize,
		Y: math.Round(p.Y/v.GridSize) * v.GridSize,
	}
}

// FitToContent frames every visible element and rack: zoom becomes the larger
// level that still shows everything (capped at 100%), pan centers the content.
// An empty plan resets to the origin at 100%.
func (v *Viewport) FitToContent(elements []floorplan.Element, racks []floorplan.Rack) {
	bounds, ok := ContentBounds(elements, racks)
	if !ok {
		v.Zoom = 100
		v.Pan = geom.Point{}
		return
	}

	padded := bounds.Inset(-FitPadding)
	zoomW := v.ScreenW / padded.Width * 100
	zoomH := v.ScreenH / padded.Height * 100
	v.Zoom = clampZoom(min(zoomW, zoomH, 100))

	sc := v.Scale()
	center := padded.Center()
	v.Pan = geom.Point{
		X: v.ScreenW/2 - center.X*sc,
		Y: v.ScreenH/2 - center.Y*sc,
	}
}

// ContentBounds unions the rotation-ignoring bounding boxes of all visible
// elements and all racks. Accumulated by min/max rather than Rect.Union so a
// perfectly horizontal or vertical line, whose box has zero extent on one
// axis, still counts as content. ok is false when nothing is visible.
func ContentBounds(elements []floorplan.Element, racks []floorplan.Rack) (bounds geom.Rect, ok bool) {
	var minX, minY, maxX, maxY float64

	add := func(b geom.Rect) {
		if b.Width < 0 || b.Height < 0 {
			return
		}
		if !ok {
			minX, minY = b.X, b.Y
			maxX, maxY = b.X+b.Width, b.Y+b.Height
			ok = true
			return
		}
		minX = min(minX, b.X)
		minY = min(minY, b.Y)
		maxX = max(maxX, b.X+b.Width)
		maxY = max(maxY, b.Y+b.Height)
	}

	for _, e := range elements {
		if !e.Visible {
			continue
		}
		add(e.Shape.BoundingBox())
	}
	for _, r := range racks {
		add(r.Bounds())
	}

	return geom.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, ok
}

func clampZoom(zoom float64) float64 {
	return max(MinZoom, min(MaxZoom, zoom))
}
