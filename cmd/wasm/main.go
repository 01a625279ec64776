//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/jaajung-kjs/digital-sub000/internal/api"
	"github.com/jaajung-kjs/digital-sub000/internal/editor"
	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
	"github.com/jaajung-kjs/digital-sub000/internal/geom"
)

var session *editor.Session

func main() {
	session = editor.NewSession(800, 600)

	bridge := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	bridge.Set("loadPlan", js.FuncOf(loadPlan))
	bridge.Set("loadSamplePlan", js.FuncOf(loadSamplePlan))
	bridge.Set("selectTool", js.FuncOf(selectTool))
	bridge.Set("pointerDown", js.FuncOf(pointerDown))
	bridge.Set("pointerMove", js.FuncOf(pointerMove))
	bridge.Set("pointerUp", js.FuncOf(pointerUp))
	bridge.Set("escape", js.FuncOf(escape))
	bridge.Set("finishLine", js.FuncOf(finishLine))
	bridge.Set("setTextContent", js.FuncOf(setTextContent))
	bridge.Set("commitText", js.FuncOf(commitText))
	bridge.Set("deleteSelected", js.FuncOf(deleteSelected))
	bridge.Set("rotateSelected", js.FuncOf(rotateSelected))
	bridge.Set("flipSelectedH", js.FuncOf(flipSelectedH))
	bridge.Set("flipSelectedV", js.FuncOf(flipSelectedV))
	bridge.Set("bringToFront", js.FuncOf(bringToFront))
	bridge.Set("sendToBack", js.FuncOf(sendToBack))
	bridge.Set("cycleStrokeWidth", js.FuncOf(cycleStrokeWidth))
	bridge.Set("cycleFontSize", js.FuncOf(cycleFontSize))
	bridge.Set("toggleFontWeight", js.FuncOf(toggleFontWeight))
	bridge.Set("undo", js.FuncOf(undo))
	bridge.Set("redo", js.FuncOf(redo))
	bridge.Set("setScreenSize", js.FuncOf(setScreenSize))
	bridge.Set("setZoom", js.FuncOf(setZoom))
	bridge.Set("zoomAt", js.FuncOf(zoomAt))
	bridge.Set("toggleSnap", js.FuncOf(toggleSnap))
	bridge.Set("setGridSize", js.FuncOf(setGridSize))
	bridge.Set("fitToContent", js.FuncOf(fitToContent))
	bridge.Set("beginSave", js.FuncOf(beginSave))
	bridge.Set("applySaveResult", js.FuncOf(applySaveResult))
	bridge.Set("failSave", js.FuncOf(failSave))

	// --- Queries (frontend ← engine) ---
	bridge.Set("displayList", js.FuncOf(displayList))
	bridge.Set("previewShape", js.FuncOf(previewShape))
	bridge.Set("hitTest", js.FuncOf(hitTest))
	bridge.Set("selection", js.FuncOf(selection))
	bridge.Set("selectionBounds", js.FuncOf(selectionBounds))
	bridge.Set("viewport", js.FuncOf(viewport))
	bridge.Set("state", js.FuncOf(state))
	bridge.Set("plan", js.FuncOf(plan))

	js.Global().Set("floorplanEditor", bridge)

	// Signal that WASM is ready
	js.Global().Set("floorplanWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func okResult() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func errResult(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func jsonString(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return js.ValueOf(`{"error":"encode failed"}`)
	}
	return js.ValueOf(string(data))
}

func outcomeString(o editor.Outcome) interface{} {
	switch o {
	case editor.Applied:
		return js.ValueOf("applied")
	case editor.Unsupported:
		return js.ValueOf("unsupported")
	case editor.NotFound:
		return js.ValueOf("notFound")
	case editor.Locked:
		return js.ValueOf("locked")
	}
	return js.ValueOf("unknown")
}

// --- Command Handlers ---

func loadPlan(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing plan JSON"})
	}

	var dto api.PlanDTO
	if err := json.Unmarshal([]byte(args[0].String()), &dto); err != nil {
		return errResult(err)
	}
	p, err := api.DecodePlan(dto)
	if err != nil {
		return errResult(err)
	}

	session.LoadPlan(p)
	return okResult()
}

func loadSamplePlan(this js.Value, args []js.Value) interface{} {
	floorID := "floor_sample"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		floorID = args[0].String()
	}

	session.LoadPlan(floorplan.NewSamplePlan(floorID))
	return okResult()
}

func selectTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	session.SelectTool(editor.Tool(args[0].String()))
	return nil
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	p := geom.Point{X: args[0].Float(), Y: args[1].Float()}
	button := editor.ButtonLeft
	if len(args) > 2 {
		button = args[2].Int()
	}
	panModifier := len(args) > 3 && args[3].Truthy()
	session.PointerDown(p, button, panModifier)
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	session.PointerMove(geom.Point{X: args[0].Float(), Y: args[1].Float()})
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	session.PointerUp(geom.Point{X: args[0].Float(), Y: args[1].Float()})
	return nil
}

func escape(this js.Value, args []js.Value) interface{} {
	session.Escape()
	return nil
}

func finishLine(this js.Value, args []js.Value) interface{} {
	session.FinishLine()
	return nil
}

func setTextContent(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	session.SetTextContent(args[0].String())
	return nil
}

func commitText(this js.Value, args []js.Value) interface{} {
	session.CommitText()
	return nil
}

func deleteSelected(this js.Value, args []js.Value) interface{} {
	return outcomeString(session.DeleteSelected())
}

func rotateSelected(this js.Value, args []js.Value) interface{} {
	return outcomeString(session.RotateSelected())
}

func flipSelectedH(this js.Value, args []js.Value) interface{} {
	return outcomeString(session.FlipSelectedH())
}

func flipSelectedV(this js.Value, args []js.Value) interface{} {
	return outcomeString(session.FlipSelectedV())
}

func bringToFront(this js.Value, args []js.Value) interface{} {
	return outcomeString(session.BringSelectedToFront())
}

func sendToBack(this js.Value, args []js.Value) interface{} {
	return outcomeString(session.SendSelectedToBack())
}

func cycleStrokeWidth(this js.Value, args []js.Value) interface{} {
	dir := 1
	if len(args) > 0 {
		dir = args[0].Int()
	}
	return outcomeString(session.CycleSelectedStrokeWidth(dir))
}

func cycleFontSize(this js.Value, args []js.Value) interface{} {
	dir := 1
	if len(args) > 0 {
		dir = args[0].Int()
	}
	return outcomeString(session.CycleSelectedFontSize(dir))
}

func toggleFontWeight(this js.Value, args []js.Value) interface{} {
	return outcomeString(session.ToggleSelectedFontWeight())
}

func undo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(session.Undo())
}

func redo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(session.Redo())
}

func setScreenSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	session.SetScreenSize(args[0].Float(), args[1].Float())
	return nil
}

func setZoom(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	session.SetZoom(args[0].Float())
	return nil
}

func zoomAt(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	anchor := geom.Point{X: args[0].Float(), Y: args[1].Float()}
	session.ZoomAtScreen(anchor, args[2].Float())
	return nil
}

func toggleSnap(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(session.ToggleSnap())
}

func setGridSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	session.SetGridSize(args[0].Float())
	return nil
}

func fitToContent(this js.Value, args []js.Value) interface{} {
	session.FitToContent()
	return nil
}

// beginSave snapshots the plan for a PUT to the server. The returned body
// already has the shape the plans endpoint expects.
func beginSave(this js.Value, args []js.Value) interface{} {
	payload, err := session.BeginSave()
	if err != nil {
		return errResult(err)
	}

	dto, err := api.EncodePlan(&payload.Plan)
	if err != nil {
		session.FailSave()
		return errResult(err)
	}

	body, err := json.Marshal(struct {
		api.PlanDTO
		DeletedElementIDs []string `json:"deletedElementIds"`
		DeletedRackIDs    []string `json:"deletedRackIds"`
	}{dto, payload.DeletedElementIDs, payload.DeletedRackIDs})
	if err != nil {
		session.FailSave()
		return errResult(err)
	}

	return js.ValueOf(map[string]interface{}{"body": string(body)})
}

func applySaveResult(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing saved plan JSON"})
	}

	var dto api.PlanDTO
	if err := json.Unmarshal([]byte(args[0].String()), &dto); err != nil {
		return errResult(err)
	}
	saved, err := api.DecodePlan(dto)
	if err != nil {
		return errResult(err)
	}

	session.ApplySaveResult(saved)
	return okResult()
}

func failSave(this js.Value, args []js.Value) interface{} {
	session.FailSave()
	return nil
}

// --- Query Handlers ---

func displayList(this js.Value, args []js.Value) interface{} {
	dl := session.DisplayList()
	out := struct {
		Under []api.ElementDTO `json:"under"`
		Racks []api.RackDTO    `json:"racks"`
		Text  []api.ElementDTO `json:"text"`
	}{
		Under: make([]api.ElementDTO, 0, len(dl.Under)),
		Racks: make([]api.RackDTO, 0, len(dl.Racks)),
		Text:  make([]api.ElementDTO, 0, len(dl.Text)),
	}

	for _, e := range dl.Under {
		if dto, err := api.EncodeElement(e); err == nil {
			out.Under = append(out.Under, dto)
		}
	}
	for _, r := range dl.Racks {
		out.Racks = append(out.Racks, api.EncodeRack(r))
	}
	for _, e := range dl.Text {
		if dto, err := api.EncodeElement(e); err == nil {
			out.Text = append(out.Text, dto)
		}
	}
	return jsonString(out)
}

func previewShape(this js.Value, args []js.Value) interface{} {
	shape, ok := session.PreviewShape()
	if !ok {
		return js.ValueOf("null")
	}

	dto, err := api.EncodeElement(floorplan.Element{Shape: shape, Visible: true})
	if err != nil {
		return js.ValueOf("null")
	}
	return jsonString(struct {
		ElementType string          `json:"elementType"`
		Properties  json.RawMessage `json:"properties"`
	}{dto.ElementType, dto.Properties})
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("null")
	}
	v := session.Viewport()
	world := v.ScreenToWorld(geom.Point{X: args[0].Float(), Y: args[1].Float()})
	target, ok := editor.HitTest(world, session.Plan().Elements, session.Plan().Racks)
	if !ok {
		return js.ValueOf("null")
	}
	return jsonString(map[string]string{"kind": string(target.Kind), "id": target.ID})
}

func selection(this js.Value, args []js.Value) interface{} {
	target, ok := session.Selection()
	if !ok {
		return js.ValueOf("null")
	}
	return jsonString(map[string]string{"kind": string(target.Kind), "id": target.ID})
}

func selectionBounds(this js.Value, args []js.Value) interface{} {
	bounds, ok := session.SelectionBounds()
	if !ok {
		return js.ValueOf("null")
	}
	return jsonString(map[string]float64{
		"x":      bounds.X,
		"y":      bounds.Y,
		"width":  bounds.Width,
		"height": bounds.Height,
	})
}

func viewport(this js.Value, args []js.Value) interface{} {
	v := session.Viewport()
	return jsonString(map[string]interface{}{
		"zoom":        v.Zoom,
		"pan":         map[string]float64{"x": v.Pan.X, "y": v.Pan.Y},
		"gridSize":    v.GridSize,
		"snapEnabled": v.SnapEnabled,
	})
}

func state(this js.Value, args []js.Value) interface{} {
	return jsonString(map[string]interface{}{
		"tool":              string(session.Tool()),
		"mode":              session.Mode().String(),
		"hasUnsavedChanges": session.HasUnsavedChanges(),
		"isSaving":          session.IsSaving(),
		"canUndo":           session.CanUndo(),
		"canRedo":           session.CanRedo(),
	})
}

func plan(this js.Value, args []js.Value) interface{} {
	dto, err := api.EncodePlan(session.Plan())
	if err != nil {
		return errResult(err)
	}
	return jsonString(dto)
}
