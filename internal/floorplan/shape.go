package floorplan

import (
	"github.com/jaajung-kjs/digital-sub000/internal/geom"
)

// Kind identifies an element variant.
type Kind string

const (
	KindLine   Kind = "line"
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
	KindDoor   Kind = "door"
	KindWindow Kind = "window"
	KindText   Kind = "text"
)

// FontWeight is the weight of a text element.
type FontWeight string

const (
	WeightNormal FontWeight = "normal"
	WeightBold   FontWeight = "bold"
)

// Align is the horizontal alignment of a text element relative to its anchor.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Default paint values applied when a shape is constructed or a persisted
// payload omits them.
const (
	DefaultStroke      = "#333333"
	DefaultFill        = "transparent"
	DefaultStrokeWidth = 2.0
	DefaultFontSize    = 14.0
)

// FillTransparent is the sentinel fill meaning the interior is not painted.
// Hollow shapes hit-test on their stroke band only.
const FillTransparent = "transparent"

// Shape is the geometry payload of an element. The implementation set is
// closed: LineShape, RectShape, CircleShape, DoorShape, WindowShape and
// TextShape are the only variants, so a type switch over them is exhaustive.
//
// Shapes are immutable values: every setter returns a fresh shape and never
// mutates its receiver.
type Shape interface {
	// Kind returns the variant tag.
	Kind() Kind

	// Position returns the variant's anchor: the first point for a line, the
	// box origin for rect/door/window, the center for a circle, the text anchor
	// for text.
	Position() geom.Point

	// WithPosition returns a copy anchored at p. For a line this translates
	// every point by the same delta, never just the first.
	WithPosition(p geom.Point) Shape

	// MoveBy returns a copy translated by (dx, dy).
	MoveBy(dx, dy float64) Shape

	// Size returns the variant's extent. Text extent is an approximation from
	// character count and font size, used only for hit-testing and preview.
	Size() geom.Size

	// BoundingBox returns the axis-aligned box ignoring rotation.
	BoundingBox() geom.Rect

	// CanRotate reports whether rotation applies to this variant.
	CanRotate() bool

	// CanFlip reports whether horizontal/vertical flip applies.
	CanFlip() bool

	// CanResize reports whether the variant has an editable extent.
	CanResize() bool

	// Clone returns a deep copy.
	Clone() Shape

	sealed()
}

// Approximate glyph metrics for text hit-testing and preview bounds. Text
// extents are never persisted; renderers measure real glyphs.
const (
	textWidthPerChar = 0.6
	textLineHeight   = 1.2
)

// --- LineShape ---

// LineShape is an ordered run of two or more points (walls, pipes, markings).
type LineShape struct {
	Points      []geom.Point
	Stroke      string
	StrokeWidth float64
}

func (s LineShape) Kind() Kind { return KindLine }

func (s LineShape) Position() geom.Point {
	if len(s.Points) == 0 {
		return geom.Point{}
	}
	return s.Points[0]
}

func (s LineShape) WithPosition(p geom.Point) Shape {
	d := p.Sub(s.Position())
	return s.MoveBy(d.X, d.Y)
}

func (s LineShape) MoveBy(dx, dy float64) Shape {
	pts := make([]geom.Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = p.Add(dx, dy)
	}
	s.Points = pts
	return s
}

func (s LineShape) Size() geom.Size {
	b := s.BoundingBox()
	return geom.Size{Width: b.Width, Height: b.Height}
}

func (s LineShape) BoundingBox() geom.Rect {
	if len(s.Points) == 0 {
		return geom.Rect{}
	}
	minX, minY := s.Points[0].X, s.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range s.Points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return geom.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func (s LineShape) CanRotate() bool { return false }
func (s LineShape) CanFlip() bool   { return false }
func (s LineShape) CanResize() bool { return false }

func (s LineShape) Clone() Shape {
	pts := make([]geom.Point, len(s.Points))
	copy(pts, s.Points)
	s.Points = pts
	return s
}

func (LineShape) sealed() {}

// --- RectShape ---

// RectShape is an oriented rectangle with optional fill and rounded corners.
type RectShape struct {
	X            float64
	Y            float64
	Width        float64
	Height       float64
	Rotation     float64
	FlipH        bool
	FlipV        bool
	Fill         string
	Stroke       string
	StrokeWidth  float64
	CornerRadius float64
}

func (s RectShape) Kind() Kind { return KindRect }

func (s RectShape) Position() geom.Point { return geom.Point{X: s.X, Y: s.Y} }

func (s RectShape) WithPosition(p geom.Point) Shape {
	s.X, s.Y = p.X, p.Y
	return s
}

func (s RectShape) MoveBy(dx, dy float64) Shape {
	s.X += dx
	s.Y += dy
	return s
}

func (s RectShape) Size() geom.Size { return geom.Size{Width: s.Width, Height: s.Height} }

func (s RectShape) BoundingBox() geom.Rect {
	return geom.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

func (s RectShape) CanRotate() bool { return true }
func (s RectShape) CanFlip() bool   { return true }
func (s RectShape) CanResize() bool { return true }

func (s RectShape) Clone() Shape { return s }

func (RectShape) sealed() {}

// IsHollow reports whether the interior is unpainted, in which case only the
// stroke band responds to hit-testing.
func (s RectShape) IsHollow() bool {
	return s.Fill == "" || s.Fill == FillTransparent
}

// --- CircleShape ---

// CircleShape is a circle around a center point. Rotation and flip are not
// meaningful for it.
type CircleShape struct {
	CX          float64
	CY          float64
	Radius      float64
	Fill        string
	Stroke      string
	StrokeWidth float64
}

func (s CircleShape) Kind() Kind { return KindCircle }

func (s CircleShape) Position() geom.Point { return geom.Point{X: s.CX, Y: s.CY} }

func (s CircleShape) WithPosition(p geom.Point) Shape {
	s.CX, s.CY = p.X, p.Y
	return s
}

func (s CircleShape) MoveBy(dx, dy float64) Shape {
	s.CX += dx
	s.CY += dy
	return s
}

func (s CircleShape) Size() geom.Size {
	return geom.Size{Width: 2 * s.Radius, Height: 2 * s.Radius}
}

func (s CircleShape) BoundingBox() geom.Rect {
	return geom.Rect{
		X:      s.CX - s.Radius,
		Y:      s.CY - s.Radius,
		Width:  2 * s.Radius,
		Height: 2 * s.Radius,
	}
}

func (s CircleShape) CanRotate() bool { return false }
func (s CircleShape) CanFlip() bool   { return false }
func (s CircleShape) CanResize() bool { return true }

func (s CircleShape) Clone() Shape { return s }

func (CircleShape) sealed() {}

// IsHollow reports whether the interior is unpainted.
func (s CircleShape) IsHollow() bool {
	return s.Fill == "" || s.Fill == FillTransparent
}

// --- DoorShape ---

// DoorShape is a door opening: a box with a swing arc, oriented in 90-degree
// steps by convention though rotation is not restricted.
type DoorShape struct {
	X           float64
	Y           float64
	Width       float64
	Height      float64
	Rotation    float64
	FlipH       bool
	FlipV       bool
	Stroke      string
	StrokeWidth float64
}

func (s DoorShape) Kind() Kind { return KindDoor }

func (s DoorShape) Position() geom.Point { return geom.Point{X: s.X, Y: s.Y} }

func (s DoorShape) WithPosition(p geom.Point) Shape {
	s.X, s.Y = p.X, p.Y
	return s
}

func (s DoorShape) MoveBy(dx, dy float64) Shape {
	s.X += dx
	s.Y += dy
	return s
}

func (s DoorShape) Size() geom.Size { return geom.Size{Width: s.Width, Height: s.Height} }

func (s DoorShape) BoundingBox() geom.Rect {
	return geom.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

func (s DoorShape) CanRotate() bool { return true }
func (s DoorShape) CanFlip() bool   { return true }
func (s DoorShape) CanResize() bool { return true }

func (s DoorShape) Clone() Shape { return s }

func (DoorShape) sealed() {}

// --- WindowShape ---

// WindowShape is a window opening: a box drawn as a double line in a wall.
type WindowShape struct {
	X           float64
	Y           float64
	Width       float64
	Height      float64
	Rotation    float64
	FlipH       bool
	FlipV       bool
	Stroke      string
	StrokeWidth float64
}

func (s WindowShape) Kind() Kind { return KindWindow }

func (s WindowShape) Position() geom.Point { return geom.Point{X: s.X, Y: s.Y} }

func (s WindowShape) WithPosition(p geom.Point) Shape {
	s.X, s.Y = p.X, p.Y
	return s
}

func (s WindowShape) MoveBy(dx, dy float64) Shape {
	s.X += dx
	s.Y += dy
	return s
}

func (s WindowShape) Size() geom.Size { return geom.Size{Width: s.Width, Height: s.Height} }

func (s WindowShape) BoundingBox() geom.Rect {
	return geom.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

func (s WindowShape) CanRotate() bool { return true }
func (s WindowShape) CanFlip() bool   { return true }
func (s WindowShape) CanResize() bool { return true }

func (s WindowShape) Clone() Shape { return s }

func (WindowShape) sealed() {}

// --- TextShape ---

// TextShape is a label anchored at (X, Y). The anchor is the top of the line
// box; Align shifts the box horizontally relative to the anchor.
type TextShape struct {
	X          float64
	Y          float64
	Content    string
	FontSize   float64
	FontWeight FontWeight
	Rotation   float64
	Align      Align
}

func (s TextShape) Kind() Kind { return KindText }

func (s TextShape) Position() geom.Point { return geom.Point{X: s.X, Y: s.Y} }

func (s TextShape) WithPosition(p geom.Point) Shape {
	s.X, s.Y = p.X, p.Y
	return s
}

func (s TextShape) MoveBy(dx, dy float64) Shape {
	s.X += dx
	s.Y += dy
	return s
}

func (s TextShape) Size() geom.Size {
	return geom.Size{
		Width:  textWidthPerChar * s.FontSize * float64(len([]rune(s.Content))),
		Height: textLineHeight * s.FontSize,
	}
}

func (s TextShape) BoundingBox() geom.Rect {
	sz := s.Size()
	x := s.X
	switch s.Align {
	case AlignCenter:
		x -= sz.Width / 2
	case AlignRight:
		x -= sz.Width
	}
	return geom.Rect{X: x, Y: s.Y, Width: sz.Width, Height: sz.Height}
}

func (s TextShape) CanRotate() bool { return true }
func (s TextShape) CanFlip() bool   { return false }
func (s TextShape) CanResize() bool { return false }

func (s TextShape) Clone() Shape { return s }

func (TextShape) sealed() {}
