package api

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
	"github.com/jaajung-kjs/digital-sub000/internal/geom"
	"github.com/jaajung-kjs/digital-sub000/internal/typeid"
)

func TestEncodeDecodeElementRoundTrip(t *testing.T) {
	shapes := []floorplan.Shape{
		floorplan.LineShape{
			Points:      []geom.Point{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 30}},
			Stroke:      "#111111",
			StrokeWidth: 4,
		},
		floorplan.RectShape{
			X: 10, Y: 20, Width: 100, Height: 60,
			Rotation: 45, FlipH: true,
			Fill: "#eeeeee", Stroke: "#222222", StrokeWidth: 3, CornerRadius: 8,
		},
		floorplan.CircleShape{
			CX: 40, CY: 50, Radius: 25,
			Fill: "transparent", Stroke: "#333333", StrokeWidth: 2,
		},
		floorplan.DoorShape{
			X: 5, Y: 6, Width: 40, Height: 10,
			Rotation: 90, FlipV: true, Stroke: "#444444", StrokeWidth: 2,
		},
		floorplan.WindowShape{
			X: 7, Y: 8, Width: 60, Height: 8,
			Stroke: "#555555", StrokeWidth: 1,
		},
		floorplan.TextShape{
			X: 100, Y: 200, Content: "MDF room",
			FontSize: 18, FontWeight: floorplan.WeightBold,
			Rotation: 15, Align: floorplan.AlignCenter,
		},
	}

	for _, sh := range shapes {
		in := floorplan.Element{
			ID:      "elem_01h455vb4pex5vsknk084sn02q",
			Shape:   sh,
			ZIndex:  3,
			Visible: true,
			Locked:  true,
		}
		dto, err := EncodeElement(in)
		if err != nil {
			t.Fatalf("encode %s: %v", sh.Kind(), err)
		}
		if dto.ID == nil || *dto.ID != in.ID {
			t.Fatalf("%s: persisted id should survive encoding, got %v", sh.Kind(), dto.ID)
		}
		out, err := DecodeElement(dto)
		if err != nil {
			t.Fatalf("decode %s: %v", sh.Kind(), err)
		}
		if !reflect.DeepEqual(out, in) {
			t.Errorf("%s round trip mismatch:\n in: %+v\nout: %+v", sh.Kind(), in, out)
		}
	}
}

func TestEncodeTemporaryIDBecomesNull(t *testing.T) {
	in := floorplan.Element{
		ID:      typeid.NewTempID(),
		Shape:   floorplan.CircleShape{CX: 1, CY: 2, Radius: 3, Stroke: "#000000", StrokeWidth: 2, Fill: "transparent"},
		Visible: true,
	}
	dto, err := EncodeElement(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if dto.ID != nil {
		t.Fatalf("temporary id should encode as null, got %q", *dto.ID)
	}

	out, err := DecodeElement(dto)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !typeid.IsTemporary(out.ID) {
		t.Errorf("decoding a null id should mint a temporary one, got %q", out.ID)
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	dto := ElementDTO{ElementType: "hexagon", Properties: json.RawMessage(`{}`)}
	if _, err := DecodeElement(dto); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
}

func TestDecodeAppliesStyleDefaults(t *testing.T) {
	dto := ElementDTO{
		ElementType: "rect",
		Properties:  json.RawMessage(`{"x":0,"y":0,"width":10,"height":10}`),
	}
	e, err := DecodeElement(dto)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rect, ok := e.Shape.(floorplan.RectShape)
	if !ok {
		t.Fatalf("shape = %T, want RectShape", e.Shape)
	}
	if rect.Fill != floorplan.FillTransparent {
		t.Errorf("fill = %q, want transparent default", rect.Fill)
	}
	if rect.Stroke != floorplan.DefaultStroke {
		t.Errorf("stroke = %q, want %q", rect.Stroke, floorplan.DefaultStroke)
	}
	if rect.StrokeWidth != floorplan.DefaultStrokeWidth {
		t.Errorf("strokeWidth = %v, want %v", rect.StrokeWidth, floorplan.DefaultStrokeWidth)
	}
	if !rect.IsHollow() {
		t.Error("defaulted rect should be hollow")
	}
}

func TestDecodeMissingVisibilityDefaultsTrue(t *testing.T) {
	raw := `{"id":"elem_01h455vb4pex5vsknk084sn02q","elementType":"circle","properties":{"cx":1,"cy":2,"radius":3},"zIndex":0}`
	var dto ElementDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	e, err := DecodeElement(dto)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !e.Visible {
		t.Error("element without a visibility flag should decode as visible")
	}
}

func TestDecodeTextDefaults(t *testing.T) {
	dto := ElementDTO{
		ElementType: "text",
		Properties:  json.RawMessage(`{"x":3,"y":4,"content":"rack row"}`),
	}
	e, err := DecodeElement(dto)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	txt := e.Shape.(floorplan.TextShape)
	if txt.FontSize != floorplan.DefaultFontSize {
		t.Errorf("fontSize = %v, want %v", txt.FontSize, floorplan.DefaultFontSize)
	}
	if txt.FontWeight != floorplan.WeightNormal {
		t.Errorf("fontWeight = %q, want normal", txt.FontWeight)
	}
	if txt.Align != floorplan.AlignLeft {
		t.Errorf("align = %q, want left", txt.Align)
	}
}

func TestPlanRoundTrip(t *testing.T) {
	in := floorplan.NewSamplePlan("floor_01h455vb4pex5vsknk084sn02q")
	in.ID = "plan_01h455vb4pex5vsknk084sn02q"
	in.Version = 7

	dto, err := EncodePlan(in)
	if err != nil {
		t.Fatalf("encode plan: %v", err)
	}
	out, err := DecodePlan(dto)
	if err != nil {
		t.Fatalf("decode plan: %v", err)
	}

	if out.ID != in.ID || out.FloorID != in.FloorID || out.Version != in.Version {
		t.Errorf("identity fields changed: got %s/%s/v%d", out.ID, out.FloorID, out.Version)
	}
	if out.CanvasWidth != in.CanvasWidth || out.GridSize != in.GridSize {
		t.Errorf("canvas fields changed: %vx? grid %v", out.CanvasWidth, out.GridSize)
	}
	if len(out.Elements) != len(in.Elements) || len(out.Racks) != len(in.Racks) {
		t.Fatalf("collection sizes changed: %d/%d elements, %d/%d racks",
			len(out.Elements), len(in.Elements), len(out.Racks), len(in.Racks))
	}
	for i := range in.Elements {
		if !reflect.DeepEqual(out.Elements[i], in.Elements[i]) {
			t.Errorf("element %d mismatch:\n in: %+v\nout: %+v", i, in.Elements[i], out.Elements[i])
		}
	}
	for i := range in.Racks {
		if !reflect.DeepEqual(out.Racks[i], in.Racks[i]) {
			t.Errorf("rack %d mismatch:\n in: %+v\nout: %+v", i, in.Racks[i], out.Racks[i])
		}
	}
}

func TestDecodePlanMigratesLegacyElements(t *testing.T) {
	dto := PlanDTO{
		FloorID:      "floor_01h455vb4pex5vsknk084sn02q",
		CanvasWidth:  1600,
		CanvasHeight: 1000,
		GridSize:     20,
		Elements: []ElementDTO{
			{
				ElementType: "wall",
				Properties:  json.RawMessage(`{"x1":0,"y1":0,"x2":200,"y2":0,"strokeColor":"#000000","strokeWidth":6}`),
			},
		},
	}
	p, err := DecodePlan(dto)
	if err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if len(p.Elements) != 1 {
		t.Fatalf("elements = %d, want 1", len(p.Elements))
	}
	line, ok := p.Elements[0].Shape.(floorplan.LineShape)
	if !ok {
		t.Fatalf("shape = %T, want LineShape", p.Elements[0].Shape)
	}
	if len(line.Points) != 2 || line.Points[1] != (geom.Point{X: 200, Y: 0}) {
		t.Errorf("points = %v, want endpoints folded into a pair", line.Points)
	}
	if line.Stroke != "#000000" || line.StrokeWidth != 6 {
		t.Errorf("style = %q/%v, want migrated stroke", line.Stroke, line.StrokeWidth)
	}
}
