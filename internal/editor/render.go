package editor

import (
	"sort"

	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
)

// DisplayList is the paint order for one frame, back to front: non-text
// elements sorted by z-index, then racks, then text elements. Text labels
// always paint last regardless of their z-index so they stay readable over
// whatever they annotate. Hit-testing deliberately does not mirror this
// override; it walks the raw element order (see HitTest).
type DisplayList struct {
	Under []floorplan.Element
	Racks []floorplan.Rack
	Text  []floorplan.Element
}

// BuildDisplayList sorts the visible content into paint order. Ties in
// z-index keep array order.
func BuildDisplayList(elements []floorplan.Element, racks []floorplan.Rack) DisplayList {
	var dl DisplayList

	for _, e := range elements {
		if !e.Visible {
			continue
		}
		if e.Shape.Kind() == floorplan.KindText {
			dl.Text = append(dl.Text, e)
		} else {
			dl.Under = append(dl.Under, e)
		}
	}

	sort.SliceStable(dl.Under, func(i, j int) bool {
		return dl.Under[i].ZIndex < dl.Under[j].ZIndex
	})
	sort.SliceStable(dl.Text, func(i, j int) bool {
		return dl.Text[i].ZIndex < dl.Text[j].ZIndex
	})

	dl.Racks = append(dl.Racks, racks...)
	return dl
}
