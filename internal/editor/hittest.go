package editor

import (
	"math"

	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
	"github.com/jaajung-kjs/digital-sub000/internal/geom"
)

// ClickTolerance is the hit-test slop in world units. It is deliberately not
// scaled by zoom, so the apparent slop shrinks as the user zooms in.
const ClickTolerance = 5.0

// TargetKind distinguishes rack hits from element hits.
type TargetKind string

const (
	TargetElement TargetKind = "element"
	TargetRack    TargetKind = "rack"
)

// Target identifies the topmost item under a world point.
type Target struct {
	Kind TargetKind
	ID   string
}

// HitTest resolves a world point to the topmost rack or element.
//
// Racks are tested first, in array order, first match wins; elements after,
// in reverse array order, so the later-inserted element wins when two overlap.
// Invisible elements never hit. Locked elements still hit: they can be
// selected, only dragging refuses them.
func HitTest(p geom.Point, elements []floorplan.Element, racks []floorplan.Rack) (Target, bool) {
	for i := range racks {
		if racks[i].Contains(p) {
			return Target{Kind: TargetRack, ID: racks[i].ID}, true
		}
	}

	for i := len(elements) - 1; i >= 0; i-- {
		e := elements[i]
		if !e.Visible {
			continue
		}
		if HitShape(p, e.Shape) {
			return Target{Kind: TargetElement, ID: e.ID}, true
		}
	}

	return Target{}, false
}

// HitShape tests a single shape against a world point.
func HitShape(p geom.Point, s floorplan.Shape) bool {
	switch sh := s.(type) {
	case floorplan.LineShape:
		return hitLine(p, sh)
	case floorplan.RectShape:
		return hitRect(p, sh)
	case floorplan.CircleShape:
		return hitCircle(p, sh)
	case floorplan.DoorShape:
		return hitBox(p, sh.BoundingBox(), sh.Rotation)
	case floorplan.WindowShape:
		return hitBox(p, sh.BoundingBox(), sh.Rotation)
	case floorplan.TextShape:
		return hitText(p, sh)
	}
	return false
}

// hitLine checks the point against every segment of the polyline, within half
// the stroke width plus the click tolerance.
func hitLine(p geom.Point, s floorplan.LineShape) bool {
	if len(s.Points) < 2 {
		return false
	}
	reach := s.StrokeWidth/2 + ClickTolerance
	for i := 0; i < len(s.Points)-1; i++ {
		if geom.DistanceToSegment(p, s.Points[i], s.Points[i+1]) <= reach {
			return true
		}
	}
	return false
}

// hitRect maps the point into the rectangle's unrotated frame. A filled rect
// hits anywhere inside; a hollow one only on the band around its stroke, so
// clicking through the empty interior selects whatever is underneath.
func hitRect(p geom.Point, s floorplan.RectShape) bool {
	box := s.BoundingBox()
	local := geom.InverseRotateAround(p, box.Center(), s.Rotation)

	if !s.IsHollow() {
		return box.Contains(local)
	}

	band := s.StrokeWidth/2 + ClickTolerance
	outer := box.Inset(-band)
	inner := box.Inset(band)
	return outer.Contains(local) && !inner.Contains(local)
}

// hitCircle tests distance to the center: a filled circle hits inside the
// radius, a hollow one only on the ring around its stroke.
func hitCircle(p geom.Point, s floorplan.CircleShape) bool {
	d := p.DistanceTo(geom.Point{X: s.CX, Y: s.CY})
	if !s.IsHollow() {
		return d <= s.Radius+ClickTolerance
	}
	return math.Abs(d-s.Radius) <= s.StrokeWidth/2+ClickTolerance
}

// hitBox is the containment test for door and window boxes, which are always
// treated as solid.
func hitBox(p geom.Point, box geom.Rect, rotation float64) bool {
	local := geom.InverseRotateAround(p, box.Center(), rotation)
	return box.Contains(local)
}

// hitText rotates the point into the label's frame around its anchor, then
// tests the alignment-shifted approximate box.
func hitText(p geom.Point, s floorplan.TextShape) bool {
	local := geom.InverseRotateAround(p, geom.Point{X: s.X, Y: s.Y}, s.Rotation)
	return s.BoundingBox().Contains(local)
}
