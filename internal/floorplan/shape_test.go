package floorplan

import (
	"math"
	"testing"

	"github.com/jaajung-kjs/digital-sub000/internal/geom"
)

const eps = 1e-9

func TestLineMoveTranslatesEveryPoint(t *testing.T) {
	line := LineShape{
		Points:      []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}},
		StrokeWidth: 2,
	}

	moved := line.MoveBy(10, 20).(LineShape)

	want := []geom.Point{{X: 10, Y: 20}, {X: 110, Y: 20}, {X: 110, Y: 70}}
	for i, p := range moved.Points {
		if p != want[i] {
			t.Errorf("point %d = %v, want %v", i, p, want[i])
		}
	}

	// The original must be untouched.
	if line.Points[0] != (geom.Point{X: 0, Y: 0}) {
		t.Errorf("MoveBy mutated its receiver: %v", line.Points[0])
	}
}

func TestLineWithPositionKeepsShape(t *testing.T) {
	line := LineShape{
		Points: []geom.Point{{X: 10, Y: 10}, {X: 60, Y: 10}},
	}

	moved := line.WithPosition(geom.Point{X: 30, Y: 50}).(LineShape)

	if moved.Points[0] != (geom.Point{X: 30, Y: 50}) {
		t.Errorf("first point = %v, want (30, 50)", moved.Points[0])
	}
	// Second point keeps its offset from the first.
	if moved.Points[1] != (geom.Point{X: 80, Y: 50}) {
		t.Errorf("second point = %v, want (80, 50)", moved.Points[1])
	}
}

func TestCapabilityTable(t *testing.T) {
	tests := []struct {
		shape                Shape
		rotate, flip, resize bool
	}{
		{LineShape{Points: []geom.Point{{}, {X: 1}}}, false, false, false},
		{RectShape{Width: 10, Height: 10}, true, true, true},
		{CircleShape{Radius: 5}, false, false, true},
		{DoorShape{Width: 40, Height: 8}, true, true, true},
		{WindowShape{Width: 60, Height: 8}, true, true, true},
		{TextShape{Content: "label", FontSize: 14}, true, false, false},
	}

	for _, tt := range tests {
		k := tt.shape.Kind()
		if got := tt.shape.CanRotate(); got != tt.rotate {
			t.Errorf("%s CanRotate = %v, want %v", k, got, tt.rotate)
		}
		if got := tt.shape.CanFlip(); got != tt.flip {
			t.Errorf("%s CanFlip = %v, want %v", k, got, tt.flip)
		}
		if got := tt.shape.CanResize(); got != tt.resize {
			t.Errorf("%s CanResize = %v, want %v", k, got, tt.resize)
		}
	}
}

func TestPositionPerKind(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  geom.Point
	}{
		{"line anchors at first point", LineShape{Points: []geom.Point{{X: 3, Y: 4}, {X: 9, Y: 9}}}, geom.Point{X: 3, Y: 4}},
		{"rect anchors at origin", RectShape{X: 5, Y: 6, Width: 10, Height: 10}, geom.Point{X: 5, Y: 6}},
		{"circle anchors at center", CircleShape{CX: 7, CY: 8, Radius: 2}, geom.Point{X: 7, Y: 8}},
		{"text anchors at anchor point", TextShape{X: 1, Y: 2}, geom.Point{X: 1, Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.Position(); got != tt.want {
				t.Errorf("Position = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCircleBoundingBox(t *testing.T) {
	c := CircleShape{CX: 50, CY: 50, Radius: 20}
	got := c.BoundingBox()
	want := geom.Rect{X: 30, Y: 30, Width: 40, Height: 40}
	if got != want {
		t.Errorf("BoundingBox = %+v, want %+v", got, want)
	}
}

func TestTextBoundingBoxAlignment(t *testing.T) {
	base := TextShape{X: 100, Y: 40, Content: "rack", FontSize: 10}
	wantWidth := 0.6 * 10 * 4

	left := base
	left.Align = AlignLeft
	if b := left.BoundingBox(); math.Abs(b.X-100) > eps || math.Abs(b.Width-wantWidth) > eps {
		t.Errorf("left box = %+v", b)
	}

	center := base
	center.Align = AlignCenter
	if b := center.BoundingBox(); math.Abs(b.X-(100-wantWidth/2)) > eps {
		t.Errorf("center box = %+v", b)
	}

	right := base
	right.Align = AlignRight
	if b := right.BoundingBox(); math.Abs(b.X-(100-wantWidth)) > eps {
		t.Errorf("right box = %+v", b)
	}
}

func TestElementCloneIsDeep(t *testing.T) {
	e := Element{
		ID:      "elem_1",
		Shape:   LineShape{Points: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}},
		Visible: true,
	}

	c := e.Clone()
	cl := c.Shape.(LineShape)
	cl.Points[0] = geom.Point{X: 99, Y: 99}

	orig := e.Shape.(LineShape)
	if orig.Points[0] != (geom.Point{X: 0, Y: 0}) {
		t.Error("mutating a clone's points reached the original")
	}
}

func TestRackContainsRotated(t *testing.T) {
	r := Rack{X: 0, Y: 0, Width: 100, Height: 40, Rotation: 90}

	// Rotated 90 degrees about its center (50, 20), the footprint occupies
	// roughly x in [30, 70], y in [-30, 70].
	if !r.Contains(geom.Point{X: 50, Y: -20}) {
		t.Error("point inside the rotated footprint not contained")
	}
	if r.Contains(geom.Point{X: 95, Y: 20}) {
		t.Error("point outside the rotated footprint contained")
	}
	// Rotation never moves the center.
	if !r.Contains(geom.Point{X: 50, Y: 20}) {
		t.Error("center must always be contained")
	}
}

func TestCloneRacksIndependent(t *testing.T) {
	racks := []Rack{{ID: "rack_1", Name: "R01", ImageRefs: []string{"img_a"}}}
	clone := CloneRacks(racks)
	clone[0].ImageRefs[0] = "img_b"

	if racks[0].ImageRefs[0] != "img_a" {
		t.Error("mutating cloned image refs reached the original")
	}
}
