package floorplan

import (
	"github.com/jaajung-kjs/digital-sub000/internal/geom"
	"github.com/jaajung-kjs/digital-sub000/internal/typeid"
)

// NewSamplePlan builds a small demo plan: a room outline with a door and a
// window, two racks and their labels. Used by the wasm playground and the CLI.
func NewSamplePlan(floorID string) *Plan {
	p := NewEmptyPlan(floorID)
	p.ID = typeid.NewPlanID()
	p.Name = "Server room A"

	outline := Element{
		ID: typeid.NewElementID(),
		Shape: LineShape{
			Points: []geom.Point{
				{X: 100, Y: 100},
				{X: 900, Y: 100},
				{X: 900, Y: 600},
				{X: 100, Y: 600},
				{X: 100, Y: 100},
			},
			Stroke:      DefaultStroke,
			StrokeWidth: 4,
		},
		ZIndex:  0,
		Visible: true,
	}

	partition := Element{
		ID: typeid.NewElementID(),
		Shape: LineShape{
			Points: []geom.Point{
				{X: 500, Y: 100},
				{X: 500, Y: 380},
			},
			Stroke:      DefaultStroke,
			StrokeWidth: 3,
		},
		ZIndex:  0,
		Visible: true,
	}

	door := Element{
		ID: typeid.NewElementID(),
		Shape: DoorShape{
			X:           480,
			Y:           440,
			Width:       40,
			Height:      8,
			Rotation:    90,
			Stroke:      DefaultStroke,
			StrokeWidth: 2,
		},
		ZIndex:  1,
		Visible: true,
	}

	window := Element{
		ID: typeid.NewElementID(),
		Shape: WindowShape{
			X:           300,
			Y:           96,
			Width:       120,
			Height:      8,
			Stroke:      DefaultStroke,
			StrokeWidth: 2,
		},
		ZIndex:  1,
		Visible: true,
	}

	coldAisle := Element{
		ID: typeid.NewElementID(),
		Shape: RectShape{
			X:           560,
			Y:           180,
			Width:       280,
			Height:      120,
			Fill:        FillTransparent,
			Stroke:      "#2563eb",
			StrokeWidth: 2,
		},
		ZIndex:  1,
		Visible: true,
	}

	roomLabel := Element{
		ID: typeid.NewElementID(),
		Shape: TextShape{
			X:          140,
			Y:          140,
			Content:    "Server room A",
			FontSize:   18,
			FontWeight: WeightBold,
			Align:      AlignLeft,
		},
		ZIndex:  2,
		Visible: true,
	}

	aisleLabel := Element{
		ID: typeid.NewElementID(),
		Shape: TextShape{
			X:          700,
			Y:          230,
			Content:    "Cold aisle",
			FontSize:   12,
			FontWeight: WeightNormal,
			Align:      AlignCenter,
		},
		ZIndex:  2,
		Visible: true,
	}

	p.Elements = []Element{outline, partition, door, window, coldAisle, roomLabel, aisleLabel}

	p.Racks = []Rack{
		{
			ID:       typeid.NewRackID(),
			Name:     "R01",
			Code:     "A-01",
			X:        600,
			Y:        320,
			Width:    60,
			Height:   100,
			Rotation: 0,
			TotalU:   42,
		},
		{
			ID:          typeid.NewRackID(),
			Name:        "R02",
			Code:        "A-02",
			X:           700,
			Y:           320,
			Width:       60,
			Height:      100,
			Rotation:    0,
			TotalU:      42,
			Description: "Network distribution",
		},
	}

	return p
}
