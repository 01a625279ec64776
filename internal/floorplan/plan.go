package floorplan

import "github.com/jaajung-kjs/digital-sub000/internal/geom"

// Element is one drawable item on a floor plan.
type Element struct {
	ID      string
	Shape   Shape
	ZIndex  int
	Visible bool
	Locked  bool
}

// Clone returns a deep copy of the element.
func (e Element) Clone() Element {
	e.Shape = e.Shape.Clone()
	return e
}

// Rack is a piece of floor-standing equipment placed on the plan. Racks live
// in their own collection and have no z-order relative to each other or to
// elements. Name uniqueness within a plan is enforced by the persistence
// service, not here.
type Rack struct {
	ID          string
	Name        string
	Code        string
	X           float64
	Y           float64
	Width       float64
	Height      float64
	Rotation    float64
	TotalU      int
	Description string
	ImageRefs   []string
}

// Bounds returns the rack footprint ignoring rotation.
func (r Rack) Bounds() geom.Rect {
	return geom.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Center returns the rotation center of the rack.
func (r Rack) Center() geom.Point {
	return r.Bounds().Center()
}

// Contains checks if a world point falls inside the rotated rack footprint.
func (r Rack) Contains(p geom.Point) bool {
	local := geom.InverseRotateAround(p, r.Center(), r.Rotation)
	return r.Bounds().Contains(local)
}

// Clone returns a deep copy of the rack.
func (r Rack) Clone() Rack {
	if r.ImageRefs != nil {
		refs := make([]string, len(r.ImageRefs))
		copy(refs, r.ImageRefs)
		r.ImageRefs = refs
	}
	return r
}

// Plan is one floor's layout: the element and rack collections plus canvas
// settings. Version is an opaque counter bumped by the persistence service on
// every successful save.
type Plan struct {
	ID           string
	FloorID      string
	Name         string
	CanvasWidth  float64
	CanvasHeight float64
	GridSize     float64
	Background   string
	Version      int
	Elements     []Element
	Racks        []Rack
}

// Canvas defaults for a plan created from scratch.
const (
	DefaultCanvasWidth  = 1600.0
	DefaultCanvasHeight = 1000.0
	DefaultGridSize     = 20.0
	DefaultBackground   = "#ffffff"
)

// NewEmptyPlan creates a blank plan for a floor with default canvas settings.
func NewEmptyPlan(floorID string) *Plan {
	return &Plan{
		FloorID:      floorID,
		Name:         "Untitled plan",
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
		GridSize:     DefaultGridSize,
		Background:   DefaultBackground,
		Version:      1,
		Elements:     []Element{},
		Racks:        []Rack{},
	}
}

// Clone returns a deep copy of the plan.
func (p *Plan) Clone() *Plan {
	c := *p
	c.Elements = CloneElements(p.Elements)
	c.Racks = CloneRacks(p.Racks)
	return &c
}

// CloneElements deep-copies an element collection.
func CloneElements(elements []Element) []Element {
	out := make([]Element, len(elements))
	for i, e := range elements {
		out[i] = e.Clone()
	}
	return out
}

// CloneRacks deep-copies a rack collection.
func CloneRacks(racks []Rack) []Rack {
	out := make([]Rack, len(racks))
	for i, r := range racks {
		out[i] = r.Clone()
	}
	return out
}

// FindElement returns the index of the element with the given id, or -1.
func FindElement(elements []Element, id string) int {
	for i := range elements {
		if elements[i].ID == id {
			return i
		}
	}
	return -1
}

// FindRack returns the index of the rack with the given id, or -1.
func FindRack(racks []Rack, id string) int {
	for i := range racks {
		if racks[i].ID == id {
			return i
		}
	}
	return -1
}
