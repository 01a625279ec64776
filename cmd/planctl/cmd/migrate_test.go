package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaajung-kjs/digital-sub000/internal/api"
)

const legacyPlanJSON = `{
  "id": "plan_1",
  "floorId": "floor_1",
  "name": "Legacy",
  "canvasWidth": 800,
  "canvasHeight": 600,
  "gridSize": 20,
  "backgroundColor": "#ffffff",
  "version": 3,
  "elements": [
    {"id": "elem_1", "elementType": "wall", "properties": {"x1": 0, "y1": 0, "x2": 100, "y2": 0, "strokeColor": "#333333", "strokeWidth": 3}, "zIndex": 0, "isVisible": true, "isLocked": false},
    {"id": "elem_2", "elementType": "label", "properties": {"x": 10, "y": 20, "content": "Door A", "fontSize": 14}},
    {"id": "elem_3", "elementType": "rectangle", "properties": {"x": 5, "y": 5, "width": 50, "height": 40, "fillColor": "#eeeeee", "stroke": "#000000", "strokeWidth": 2}}
  ],
  "racks": [
    {"id": "rack_1", "name": "R01", "positionX": 100, "positionY": 100, "width": 60, "height": 100, "rotation": 0, "totalU": 42}
  ]
}`

func writeLegacyPlan(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "legacy.json")
	if err := os.WriteFile(path, []byte(legacyPlanJSON), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRunMigrate(t *testing.T) {
	in := writeLegacyPlan(t)
	out := filepath.Join(filepath.Dir(in), "migrated.json")
	migrateOutput = out

	if err := runMigrate(nil, []string{in}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var dto api.PlanDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		t.Fatalf("parse output: %v", err)
	}

	types := make([]string, len(dto.Elements))
	for i, el := range dto.Elements {
		types[i] = el.ElementType
	}
	if types[0] != "line" || types[1] != "text" || types[2] != "rect" {
		t.Errorf("element types = %v", types)
	}

	var lineProps map[string]json.RawMessage
	if err := json.Unmarshal(dto.Elements[0].Properties, &lineProps); err != nil {
		t.Fatalf("parse line properties: %v", err)
	}
	if _, ok := lineProps["points"]; !ok {
		t.Error("line endpoints were not folded into points")
	}
	if _, ok := lineProps["x1"]; ok {
		t.Error("legacy x1 key survived migration")
	}
	if _, ok := lineProps["stroke"]; !ok {
		t.Error("strokeColor was not renamed to stroke")
	}

	var rectProps map[string]json.RawMessage
	if err := json.Unmarshal(dto.Elements[2].Properties, &rectProps); err != nil {
		t.Fatalf("parse rect properties: %v", err)
	}
	if _, ok := rectProps["fill"]; !ok {
		t.Error("fillColor was not renamed to fill")
	}
}

func TestRunMigrateIsIdempotent(t *testing.T) {
	in := writeLegacyPlan(t)
	out := filepath.Join(filepath.Dir(in), "migrated.json")
	migrateOutput = out
	if err := runMigrate(nil, []string{in}); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	first, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read first output: %v", err)
	}

	// Run the migrated file through again, in place.
	migrateOutput = ""
	if err := runMigrate(nil, []string{out}); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	second, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read second output: %v", err)
	}

	if string(first) != string(second) {
		t.Error("migrating an already-migrated file changed it")
	}
}

func TestRunExport(t *testing.T) {
	in := writeLegacyPlan(t)
	out := filepath.Join(filepath.Dir(in), "plan.svg")
	exportOutput = out
	exportGrid = false

	if err := runExport(nil, []string{in}); err != nil {
		t.Fatalf("export: %v", err)
	}

	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "<polyline") {
		t.Errorf("svg output missing expected markup:\n%s", svg)
	}
}

func TestRunSample(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sample.json")
	sampleOutput = out

	if err := runSample(nil, nil); err != nil {
		t.Fatalf("sample: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var dto api.PlanDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	if len(dto.Elements) == 0 || len(dto.Racks) == 0 {
		t.Errorf("sample plan is empty: %d elements, %d racks", len(dto.Elements), len(dto.Racks))
	}
}
