package editor

import (
	"math"

	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
	"github.com/jaajung-kjs/digital-sub000/internal/geom"
)

// Outcome reports what an updater did with its target.
type Outcome int

const (
	// Applied means the target was found and replaced.
	Applied Outcome = iota
	// Unsupported means the target exists but the operation does not apply to
	// its kind. Distinct from a no-op at the default value.
	Unsupported
	// NotFound means no item carries the id.
	NotFound
	// Locked means the target element refuses modification until unlocked.
	Locked
)

// MinElementSize is the smallest width/height (or circle diameter) a resize
// may produce.
const MinElementSize = 1.0

// StrokeWidthPresets is the ordered stroke-width ladder stepped through by
// CycleStrokeWidth. Steps clamp at either end, no wraparound.
var StrokeWidthPresets = []float64{1, 2, 3, 4, 6, 8}

// FontSizePresets is the ordered font-size ladder for text elements.
var FontSizePresets = []float64{10, 12, 14, 16, 18, 20, 24, 28, 32}

// Updaters return a fresh collection with exactly one item replaced. The
// input collection and its items are never mutated; untouched items are
// carried over as values.

// MoveElement re-anchors an element at a world position.
func MoveElement(elements []floorplan.Element, id string, to geom.Point) ([]floorplan.Element, Outcome) {
	return updateShape(elements, id, func(s floorplan.Shape) (floorplan.Shape, Outcome) {
		return s.WithPosition(to), Applied
	})
}

// MoveElementBy translates an element by a world delta.
func MoveElementBy(elements []floorplan.Element, id string, dx, dy float64) ([]floorplan.Element, Outcome) {
	return updateShape(elements, id, func(s floorplan.Shape) (floorplan.Shape, Outcome) {
		return s.MoveBy(dx, dy), Applied
	})
}

// RotateElement advances rotation by 90 degrees, wrapping at 360. Kinds
// without rotation report Unsupported and stay untouched.
func RotateElement(elements []floorplan.Element, id string) ([]floorplan.Element, Outcome) {
	return updateShape(elements, id, func(s floorplan.Shape) (floorplan.Shape, Outcome) {
		switch sh := s.(type) {
		case floorplan.RectShape:
			sh.Rotation = math.Mod(sh.Rotation+90, 360)
			return sh, Applied
		case floorplan.DoorShape:
			sh.Rotation = math.Mod(sh.Rotation+90, 360)
			return sh, Applied
		case floorplan.WindowShape:
			sh.Rotation = math.Mod(sh.Rotation+90, 360)
			return sh, Applied
		case floorplan.TextShape:
			sh.Rotation = math.Mod(sh.Rotation+90, 360)
			return sh, Applied
		default:
			return s, Unsupported
		}
	})
}

// FlipElementH toggles the horizontal mirror flag.
func FlipElementH(elements []floorplan.Element, id string) ([]floorplan.Element, Outcome) {
	return updateShape(elements, id, func(s floorplan.Shape) (floorplan.Shape, Outcome) {
		switch sh := s.(type) {
		case floorplan.RectShape:
			sh.FlipH = !sh.FlipH
			return sh, Applied
		case floorplan.DoorShape:
			sh.FlipH = !sh.FlipH
			return sh, Applied
		case floorplan.WindowShape:
			sh.FlipH = !sh.FlipH
			return sh, Applied
		default:
			return s, Unsupported
		}
	})
}

// FlipElementV toggles the vertical mirror flag.
func FlipElementV(elements []floorplan.Element, id string) ([]floorplan.Element, Outcome) {
	return updateShape(elements, id, func(s floorplan.Shape) (floorplan.Shape, Outcome) {
		switch sh := s.(type) {
		case floorplan.RectShape:
			sh.FlipV = !sh.FlipV
			return sh, Applied
		case floorplan.DoorShape:
			sh.FlipV = !sh.FlipV
			return sh, Applied
		case floorplan.WindowShape:
			sh.FlipV = !sh.FlipV
			return sh, Applied
		default:
			return s, Unsupported
		}
	})
}

// ResizeElement sets a new extent, clamped to the minimum size. For a circle
// the larger of the two extents becomes the diameter.
func ResizeElement(elements []floorplan.Element, id string, size geom.Size) ([]floorplan.Element, Outcome) {
	w := max(size.Width, MinElementSize)
	h := max(size.Height, MinElementSize)

	return updateShape(elements, id, func(s floorplan.Shape) (floorplan.Shape, Outcome) {
		switch sh := s.(type) {
		case floorplan.RectShape:
			sh.Width, sh.Height = w, h
			return sh, Applied
		case floorplan.DoorShape:
			sh.Width, sh.Height = w, h
			return sh, Applied
		case floorplan.WindowShape:
			sh.Width, sh.Height = w, h
			return sh, Applied
		case floorplan.CircleShape:
			sh.Radius = max(w, h) / 2
			return sh, Applied
		default:
			return s, Unsupported
		}
	})
}

// CycleStrokeWidth steps the stroke width along the preset ladder. dir is +1
// or -1. A width between presets first locks onto the nearest preset in the
// step direction.
func CycleStrokeWidth(elements []floorplan.Element, id string, dir int) ([]floorplan.Element, Outcome) {
	return updateShape(elements, id, func(s floorplan.Shape) (floorplan.Shape, Outcome) {
		switch sh := s.(type) {
		case floorplan.LineShape:
			sh.StrokeWidth = stepPreset(StrokeWidthPresets, sh.StrokeWidth, dir)
			return sh, Applied
		case floorplan.RectShape:
			sh.StrokeWidth = stepPreset(StrokeWidthPresets, sh.StrokeWidth, dir)
			return sh, Applied
		case floorplan.CircleShape:
			sh.StrokeWidth = stepPreset(StrokeWidthPresets, sh.StrokeWidth, dir)
			return sh, Applied
		case floorplan.DoorShape:
			sh.StrokeWidth = stepPreset(StrokeWidthPresets, sh.StrokeWidth, dir)
			return sh, Applied
		case floorplan.WindowShape:
			sh.StrokeWidth = stepPreset(StrokeWidthPresets, sh.StrokeWidth, dir)
			return sh, Applied
		default:
			return s, Unsupported
		}
	})
}

// CycleFontSize steps a text element's font size along the preset ladder.
func CycleFontSize(elements []floorplan.Element, id string, dir int) ([]floorplan.Element, Outcome) {
	return updateShape(elements, id, func(s floorplan.Shape) (floorplan.Shape, Outcome) {
		sh, ok := s.(floorplan.TextShape)
		if !ok {
			return s, Unsupported
		}
		sh.FontSize = stepPreset(FontSizePresets, sh.FontSize, dir)
		return sh, Applied
	})
}

// ToggleFontWeight switches a text element between normal and bold.
func ToggleFontWeight(elements []floorplan.Element, id string) ([]floorplan.Element, Outcome) {
	return updateShape(elements, id, func(s floorplan.Shape) (floorplan.Shape, Outcome) {
		sh, ok := s.(floorplan.TextShape)
		if !ok {
			return s, Unsupported
		}
		if sh.FontWeight == floorplan.WeightBold {
			sh.FontWeight = floorplan.WeightNormal
		} else {
			sh.FontWeight = floorplan.WeightBold
		}
		return sh, Applied
	})
}

// SetElementZIndex replaces an element's paint-order index.
func SetElementZIndex(elements []floorplan.Element, id string, z int) ([]floorplan.Element, Outcome) {
	i := floorplan.FindElement(elements, id)
	if i < 0 {
		return elements, NotFound
	}
	out := make([]floorplan.Element, len(elements))
	copy(out, elements)
	out[i].ZIndex = z
	return out, Applied
}

// MoveRack re-anchors a rack at a world position.
func MoveRack(racks []floorplan.Rack, id string, to geom.Point) ([]floorplan.Rack, Outcome) {
	return updateRack(racks, id, func(r floorplan.Rack) floorplan.Rack {
		r.X, r.Y = to.X, to.Y
		return r
	})
}

// RotateRack advances a rack's rotation by 90 degrees, wrapping at 360.
func RotateRack(racks []floorplan.Rack, id string) ([]floorplan.Rack, Outcome) {
	return updateRack(racks, id, func(r floorplan.Rack) floorplan.Rack {
		r.Rotation = math.Mod(r.Rotation+90, 360)
		return r
	})
}

// ResizeRack sets a rack footprint, clamped to the minimum size.
func ResizeRack(racks []floorplan.Rack, id string, size geom.Size) ([]floorplan.Rack, Outcome) {
	return updateRack(racks, id, func(r floorplan.Rack) floorplan.Rack {
		r.Width = max(size.Width, MinElementSize)
		r.Height = max(size.Height, MinElementSize)
		return r
	})
}

// updateShape locates the element and replaces its shape through fn,
// returning a fresh collection.
func updateShape(elements []floorplan.Element, id string, fn func(floorplan.Shape) (floorplan.Shape, Outcome)) ([]floorplan.Element, Outcome) {
	i := floorplan.FindElement(elements, id)
	if i < 0 {
		return elements, NotFound
	}

	shape, outcome := fn(elements[i].Shape)
	if outcome != Applied {
		return elements, outcome
	}

	out := make([]floorplan.Element, len(elements))
	copy(out, elements)
	out[i].Shape = shape
	return out, Applied
}

// updateRack locates the rack and replaces it through fn, returning a fresh
// collection.
func updateRack(racks []floorplan.Rack, id string, fn func(floorplan.Rack) floorplan.Rack) ([]floorplan.Rack, Outcome) {
	i := floorplan.FindRack(racks, id)
	if i < 0 {
		return racks, NotFound
	}

	out := make([]floorplan.Rack, len(racks))
	copy(out, racks)
	out[i] = fn(racks[i].Clone())
	return out, Applied
}

// stepPreset moves a value one step along an ascending preset ladder,
// clamping at the ends. Off-ladder values lock onto the nearest preset in the
// step direction before stepping.
func stepPreset(presets []float64, current float64, dir int) float64 {
	if len(presets) == 0 {
		return current
	}

	idx := -1
	for i, p := range presets {
		if p == current {
			idx = i
			break
		}
	}

	if idx < 0 {
		// Between presets: snap against the step direction so the step lands
		// on the next ladder value.
		if dir > 0 {
			for _, p := range presets {
				if p > current {
					return p
				}
			}
			return presets[len(presets)-1]
		}
		for i := len(presets) - 1; i >= 0; i-- {
			if presets[i] < current {
				return presets[i]
			}
		}
		return presets[0]
	}

	idx += dir
	idx = max(0, min(idx, len(presets)-1))
	return presets[idx]
}
