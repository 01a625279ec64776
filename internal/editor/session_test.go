package editor

import (
	"errors"
	"testing"

	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
	"github.com/jaajung-kjs/digital-sub000/internal/geom"
	"github.com/jaajung-kjs/digital-sub000/internal/typeid"
)

// planFixture is a small persisted plan: one movable rect, one locked rect,
// one rack. Grid pitch 10, so with the default camera screen and world
// coordinates coincide.
func planFixture() *floorplan.Plan {
	return &floorplan.Plan{
		ID:           "plan_01h455vb4pex5vsknk084sn02q",
		FloorID:      "floor_01h455vb4pex5vsknk084sn02q",
		Name:         "Server room 1F",
		CanvasWidth:  1600,
		CanvasHeight: 1000,
		GridSize:     10,
		Background:   "#ffffff",
		Version:      3,
		Elements: []floorplan.Element{
			{
				ID:      "elem_zone",
				Visible: true,
				Shape: floorplan.RectShape{
					X: 10, Y: 10, Width: 60, Height: 40,
					Fill: "#cccccc", Stroke: "#333333", StrokeWidth: 2,
				},
			},
			{
				ID:      "elem_frozen",
				Visible: true,
				Locked:  true,
				Shape: floorplan.RectShape{
					X: 200, Y: 200, Width: 50, Height: 50,
					Fill: "#eeeeee", Stroke: "#333333", StrokeWidth: 2,
				},
			},
		},
		Racks: []floorplan.Rack{
			{ID: "rack_r1", Name: "R01", X: 400, Y: 100, Width: 60, Height: 100, TotalU: 42},
		},
	}
}

func newTestSession() *Session {
	s := NewSession(800, 600)
	s.LoadPlan(planFixture())
	return s
}

func selectedRect(t *testing.T, s *Session) floorplan.RectShape {
	t.Helper()
	target, ok := s.Selection()
	if !ok {
		t.Fatal("nothing selected")
	}
	i := floorplan.FindElement(s.Plan().Elements, target.ID)
	if i < 0 {
		t.Fatalf("selection %q not in plan", target.ID)
	}
	return s.Plan().Elements[i].Shape.(floorplan.RectShape)
}

func TestDragAppliesSnappedDelta(t *testing.T) {
	s := newTestSession()

	s.PointerDown(geom.Point{X: 20, Y: 20}, ButtonLeft, false)
	if s.Mode() != ModeDragging {
		t.Fatalf("mode = %v, want dragging", s.Mode())
	}
	target, _ := s.Selection()
	if target.ID != "elem_zone" {
		t.Fatalf("selection = %q, want elem_zone", target.ID)
	}

	// Raw delta (15,15) lands the origin on (25,25); grid 10 snaps to (30,30).
	s.PointerMove(geom.Point{X: 35, Y: 35})
	s.PointerUp(geom.Point{X: 35, Y: 35})

	rect := selectedRect(t, s)
	if rect.X != 30 || rect.Y != 30 {
		t.Errorf("rect at (%v,%v), want snapped (30,30)", rect.X, rect.Y)
	}
	if s.Mode() != ModeIdle {
		t.Errorf("mode = %v, want idle after release", s.Mode())
	}
	if !s.CanUndo() {
		t.Error("a committed drag should be undoable")
	}
	if !s.HasUnsavedChanges() {
		t.Error("a committed drag should mark unsaved changes")
	}
}

func TestDragDoesNotAccumulateDrift(t *testing.T) {
	many := newTestSession()
	many.PointerDown(geom.Point{X: 20, Y: 20}, ButtonLeft, false)
	for x := 21.0; x <= 35; x++ {
		many.PointerMove(geom.Point{X: x, Y: x})
	}
	many.PointerUp(geom.Point{X: 35, Y: 35})

	one := newTestSession()
	one.PointerDown(geom.Point{X: 20, Y: 20}, ButtonLeft, false)
	one.PointerUp(geom.Point{X: 35, Y: 35})

	a := selectedRect(t, many)
	b := selectedRect(t, one)
	if a.X != b.X || a.Y != b.Y {
		t.Errorf("stepwise drag landed at (%v,%v), single jump at (%v,%v); deltas must not accumulate",
			a.X, a.Y, b.X, b.Y)
	}
}

func TestDragWithoutMovementCommitsNothing(t *testing.T) {
	s := newTestSession()
	s.PointerDown(geom.Point{X: 20, Y: 20}, ButtonLeft, false)
	s.PointerMove(geom.Point{X: 22, Y: 22}) // snaps back onto the origin
	s.PointerUp(geom.Point{X: 22, Y: 22})

	if s.CanUndo() {
		t.Error("a drag that never left the start cell should not create history")
	}
	if s.HasUnsavedChanges() {
		t.Error("a no-op drag should not mark unsaved changes")
	}
}

func TestEscapeDuringDragRollsBack(t *testing.T) {
	s := newTestSession()
	s.PointerDown(geom.Point{X: 20, Y: 20}, ButtonLeft, false)
	s.PointerMove(geom.Point{X: 75, Y: 35})

	rect := selectedRect(t, s)
	if rect.X == 10 {
		t.Fatal("precondition: rect should have moved mid-drag")
	}

	s.Escape()
	rect = selectedRect(t, s)
	if rect.X != 10 || rect.Y != 10 {
		t.Errorf("rect at (%v,%v) after escape, want rollback to (10,10)", rect.X, rect.Y)
	}
	if s.Mode() != ModeIdle {
		t.Errorf("mode = %v, want idle", s.Mode())
	}
	if s.CanUndo() {
		t.Error("a cancelled drag should leave no history entry")
	}
}

func TestLockedElementSelectsButRefusesEdits(t *testing.T) {
	s := newTestSession()
	s.PointerDown(geom.Point{X: 225, Y: 225}, ButtonLeft, false)

	target, ok := s.Selection()
	if !ok || target.ID != "elem_frozen" {
		t.Fatalf("selection = %+v ok=%v, want the locked rect", target, ok)
	}
	if s.Mode() != ModeIdle {
		t.Fatalf("mode = %v; locked elements must not arm a drag", s.Mode())
	}

	if out := s.DeleteSelected(); out != Locked {
		t.Errorf("delete = %v, want Locked", out)
	}
	if out := s.RotateSelected(); out != Locked {
		t.Errorf("rotate = %v, want Locked", out)
	}
	if len(s.Plan().Elements) != 2 {
		t.Error("locked element vanished")
	}
}

func TestClickOnEmptySpaceClearsSelection(t *testing.T) {
	s := newTestSession()
	s.PointerDown(geom.Point{X: 20, Y: 20}, ButtonLeft, false)
	s.PointerUp(geom.Point{X: 20, Y: 20})
	if _, ok := s.Selection(); !ok {
		t.Fatal("precondition: rect selected")
	}

	s.PointerDown(geom.Point{X: 600, Y: 500}, ButtonLeft, false)
	s.PointerUp(geom.Point{X: 600, Y: 500})
	if _, ok := s.Selection(); ok {
		t.Error("clicking empty canvas should clear the selection")
	}
}

func TestMiddleButtonPansCamera(t *testing.T) {
	s := newTestSession()
	s.PointerDown(geom.Point{X: 100, Y: 100}, ButtonMiddle, false)
	if s.Mode() != ModePanning {
		t.Fatalf("mode = %v, want panning", s.Mode())
	}
	s.PointerMove(geom.Point{X: 140, Y: 130})
	s.PointerUp(geom.Point{X: 140, Y: 130})

	if got := s.Viewport().Pan; got != (geom.Point{X: 40, Y: 30}) {
		t.Errorf("pan = %v, want (40,30)", got)
	}
	if s.Mode() != ModeIdle {
		t.Errorf("mode = %v, want idle", s.Mode())
	}
	if s.HasUnsavedChanges() {
		t.Error("panning is not an edit")
	}
}

func TestLineConstruction(t *testing.T) {
	s := newTestSession()
	s.SelectTool(ToolLine)

	s.PointerDown(geom.Point{X: 100, Y: 100}, ButtonLeft, false)
	if s.Mode() != ModeDrawingLine {
		t.Fatalf("mode = %v, want drawingLine", s.Mode())
	}
	s.PointerDown(geom.Point{X: 300, Y: 100}, ButtonLeft, false)
	// Double-click: the finishing click repeats the last point.
	s.PointerDown(geom.Point{X: 300, Y: 100}, ButtonLeft, false)
	s.FinishLine()

	if s.Mode() != ModeIdle || s.Tool() != ToolSelect {
		t.Errorf("mode %v tool %v, want idle/select after finishing", s.Mode(), s.Tool())
	}
	elements := s.Plan().Elements
	if len(elements) != 3 {
		t.Fatalf("elements = %d, want the new line appended", len(elements))
	}
	line, ok := elements[2].Shape.(floorplan.LineShape)
	if !ok {
		t.Fatalf("new element is %T, want LineShape", elements[2].Shape)
	}
	if len(line.Points) != 2 {
		t.Fatalf("points = %v, want duplicate finishing click collapsed", line.Points)
	}
	if line.Points[0] != (geom.Point{X: 100, Y: 100}) || line.Points[1] != (geom.Point{X: 300, Y: 100}) {
		t.Errorf("points = %v", line.Points)
	}
	if !typeid.IsTemporary(elements[2].ID) {
		t.Errorf("new element id = %q, want temporary", elements[2].ID)
	}
	target, _ := s.Selection()
	if target.ID != elements[2].ID {
		t.Error("the new line should be selected")
	}

	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if len(s.Plan().Elements) != 2 {
		t.Error("undo should remove the line")
	}
	if !s.Redo() {
		t.Fatal("redo failed")
	}
	if len(s.Plan().Elements) != 3 {
		t.Error("redo should restore the line")
	}
}

func TestLineWithOnePointIsDiscarded(t *testing.T) {
	s := newTestSession()
	s.SelectTool(ToolLine)
	s.PointerDown(geom.Point{X: 100, Y: 100}, ButtonLeft, false)
	s.FinishLine()

	if len(s.Plan().Elements) != 2 {
		t.Error("a single-point line should be discarded")
	}
	if s.CanUndo() {
		t.Error("a discarded construction should leave no history")
	}
}

func TestRectConstructionAndMinimumSize(t *testing.T) {
	s := newTestSession()
	s.SelectTool(ToolRect)
	s.PointerDown(geom.Point{X: 500, Y: 300}, ButtonLeft, false)
	if s.Mode() != ModeDrawingRect {
		t.Fatalf("mode = %v, want drawingRect", s.Mode())
	}
	s.PointerDown(geom.Point{X: 600, Y: 360}, ButtonLeft, false)

	elements := s.Plan().Elements
	if len(elements) != 3 {
		t.Fatalf("elements = %d, want the rect appended", len(elements))
	}
	rect := elements[2].Shape.(floorplan.RectShape)
	if rect.X != 500 || rect.Y != 300 || rect.Width != 100 || rect.Height != 60 {
		t.Errorf("rect = %+v, want 100x60 at (500,300)", rect)
	}
	if !rect.IsHollow() {
		t.Error("drawn rects default to a transparent fill")
	}

	// A second rect collapsing onto its anchor after snapping is dropped.
	s.SelectTool(ToolRect)
	s.PointerDown(geom.Point{X: 700, Y: 300}, ButtonLeft, false)
	s.PointerDown(geom.Point{X: 703, Y: 302}, ButtonLeft, false)
	if len(s.Plan().Elements) != 3 {
		t.Error("a degenerate rect should be discarded")
	}
}

func TestCircleConstruction(t *testing.T) {
	s := newTestSession()
	s.SelectTool(ToolCircle)
	s.PointerDown(geom.Point{X: 500, Y: 300}, ButtonLeft, false)
	s.PointerDown(geom.Point{X: 550, Y: 300}, ButtonLeft, false)

	elements := s.Plan().Elements
	if len(elements) != 3 {
		t.Fatalf("elements = %d, want the circle appended", len(elements))
	}
	circle := elements[2].Shape.(floorplan.CircleShape)
	if circle.CX != 500 || circle.CY != 300 || circle.Radius != 50 {
		t.Errorf("circle = %+v, want r=50 at (500,300)", circle)
	}
}

func TestEscapeDiscardsConstruction(t *testing.T) {
	s := newTestSession()
	s.SelectTool(ToolLine)
	s.PointerDown(geom.Point{X: 100, Y: 100}, ButtonLeft, false)
	s.PointerDown(geom.Point{X: 200, Y: 100}, ButtonLeft, false)
	s.Escape()

	if s.Mode() != ModeIdle || s.Tool() != ToolSelect {
		t.Errorf("mode %v tool %v, want idle/select", s.Mode(), s.Tool())
	}
	if len(s.Plan().Elements) != 2 {
		t.Error("escaped construction should leave nothing behind")
	}
	if s.HasUnsavedChanges() {
		t.Error("escaped construction is not an edit")
	}
}

func TestTextEntry(t *testing.T) {
	s := newTestSession()
	s.SelectTool(ToolText)
	s.PointerDown(geom.Point{X: 640, Y: 440}, ButtonLeft, false)
	if s.Mode() != ModeEditingText {
		t.Fatalf("mode = %v, want editingText", s.Mode())
	}
	s.SetTextContent("  MDF room  ")
	s.CommitText()

	elements := s.Plan().Elements
	if len(elements) != 3 {
		t.Fatalf("elements = %d, want the label appended", len(elements))
	}
	txt := elements[2].Shape.(floorplan.TextShape)
	if txt.Content != "MDF room" {
		t.Errorf("content = %q, want trimmed text", txt.Content)
	}
	if txt.X != 640 || txt.Y != 440 {
		t.Errorf("anchor = (%v,%v), want (640,440)", txt.X, txt.Y)
	}
}

func TestWhitespaceTextIsDiscarded(t *testing.T) {
	s := newTestSession()
	s.SelectTool(ToolText)
	s.PointerDown(geom.Point{X: 640, Y: 440}, ButtonLeft, false)
	s.SetTextContent("   ")
	s.CommitText()

	if len(s.Plan().Elements) != 2 {
		t.Error("whitespace-only labels should be discarded")
	}
	if s.Tool() != ToolSelect {
		t.Errorf("tool = %v, want revert to select", s.Tool())
	}
}

func TestSingleClickPlacements(t *testing.T) {
	s := newTestSession()

	s.SelectTool(ToolDoor)
	s.PointerDown(geom.Point{X: 295, Y: 305}, ButtonLeft, false)
	if s.Tool() != ToolSelect {
		t.Errorf("tool = %v, want revert to select after placing", s.Tool())
	}
	door := s.Plan().Elements[2].Shape.(floorplan.DoorShape)
	if door.X != 300 || door.Y != 310 {
		t.Errorf("door at (%v,%v), want snapped (300,310)", door.X, door.Y)
	}
	if door.Width != 40 || door.Height != 8 {
		t.Errorf("door size = %vx%v, want default 40x8", door.Width, door.Height)
	}

	s.SelectTool(ToolWindow)
	s.PointerDown(geom.Point{X: 500, Y: 500}, ButtonLeft, false)
	window := s.Plan().Elements[3].Shape.(floorplan.WindowShape)
	if window.Width != 60 || window.Height != 8 {
		t.Errorf("window size = %vx%v, want default 60x8", window.Width, window.Height)
	}
}

func TestRackPlacementNamesSequentially(t *testing.T) {
	s := newTestSession()

	s.SelectTool(ToolRack)
	s.PointerDown(geom.Point{X: 600, Y: 200}, ButtonLeft, false)
	s.SelectTool(ToolRack)
	s.PointerDown(geom.Point{X: 700, Y: 200}, ButtonLeft, false)

	racks := s.Plan().Racks
	if len(racks) != 3 {
		t.Fatalf("racks = %d, want two placed next to the fixture", len(racks))
	}
	// R01 is taken by the fixture.
	if racks[1].Name != "R02" || racks[2].Name != "R03" {
		t.Errorf("names = %q, %q, want R02, R03", racks[1].Name, racks[2].Name)
	}
	if racks[1].TotalU != 42 {
		t.Errorf("totalU = %d, want default 42", racks[1].TotalU)
	}
	if !typeid.IsTemporary(racks[1].ID) {
		t.Errorf("placed rack id = %q, want temporary", racks[1].ID)
	}

	target, ok := s.Selection()
	if !ok || target.Kind != TargetRack || target.ID != racks[2].ID {
		t.Errorf("selection = %+v, want the last placed rack", target)
	}
}

func TestRackRotateAndFlip(t *testing.T) {
	s := newTestSession()
	s.PointerDown(geom.Point{X: 420, Y: 150}, ButtonLeft, false)
	s.PointerUp(geom.Point{X: 420, Y: 150})

	target, ok := s.Selection()
	if !ok || target.Kind != TargetRack {
		t.Fatalf("selection = %+v ok=%v, want the rack", target, ok)
	}

	if out := s.RotateSelected(); out != Applied {
		t.Fatalf("rotate rack = %v, want Applied", out)
	}
	if got := s.Plan().Racks[0].Rotation; got != 90 {
		t.Errorf("rotation = %v, want 90", got)
	}
	if out := s.FlipSelectedH(); out != Unsupported {
		t.Errorf("flip rack = %v, want Unsupported", out)
	}
}

func TestDeleteTracksOnlyPersistedIDs(t *testing.T) {
	s := newTestSession()

	// Delete the persisted rect.
	s.PointerDown(geom.Point{X: 20, Y: 20}, ButtonLeft, false)
	s.PointerUp(geom.Point{X: 20, Y: 20})
	if out := s.DeleteSelected(); out != Applied {
		t.Fatalf("delete = %v, want Applied", out)
	}
	elementIDs, rackIDs := s.PendingDeletions()
	if len(elementIDs) != 1 || elementIDs[0] != "elem_zone" {
		t.Errorf("pending elements = %v, want [elem_zone]", elementIDs)
	}
	if len(rackIDs) != 0 {
		t.Errorf("pending racks = %v, want none", rackIDs)
	}

	// Place and delete a temporary door: nothing new to tell the server.
	s.SelectTool(ToolDoor)
	s.PointerDown(geom.Point{X: 600, Y: 400}, ButtonLeft, false)
	if out := s.DeleteSelected(); out != Applied {
		t.Fatalf("delete placed door = %v, want Applied", out)
	}
	elementIDs, _ = s.PendingDeletions()
	if len(elementIDs) != 1 {
		t.Errorf("pending elements = %v, temporary ids must not be queued", elementIDs)
	}
}

func TestUndoAfterDeleteDropsPendingDeletion(t *testing.T) {
	s := newTestSession()
	s.PointerDown(geom.Point{X: 20, Y: 20}, ButtonLeft, false)
	s.PointerUp(geom.Point{X: 20, Y: 20})
	if out := s.DeleteSelected(); out != Applied {
		t.Fatalf("delete = %v", out)
	}
	if !s.Undo() {
		t.Fatal("undo failed")
	}

	payload, err := s.BeginSave()
	if err != nil {
		t.Fatalf("BeginSave: %v", err)
	}
	if len(payload.DeletedElementIDs) != 0 {
		t.Errorf("deletions = %v; a revived element must not be deleted by the save", payload.DeletedElementIDs)
	}
}

func TestSaveLifecycleAdoptsAssignedIDs(t *testing.T) {
	s := newTestSession()
	s.SelectTool(ToolDoor)
	s.PointerDown(geom.Point{X: 600, Y: 400}, ButtonLeft, false)
	tempID := s.Plan().Elements[2].ID
	if !typeid.IsTemporary(tempID) {
		t.Fatalf("precondition: placed door should carry a temp id, got %q", tempID)
	}

	payload, err := s.BeginSave()
	if err != nil {
		t.Fatalf("BeginSave: %v", err)
	}
	if !s.IsSaving() {
		t.Fatal("session should report saving")
	}
	if _, err := s.BeginSave(); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("second BeginSave = %v, want ErrSaveInFlight", err)
	}

	// Payload is a snapshot: later edits must not leak into it.
	s.SelectTool(ToolWindow)
	s.PointerDown(geom.Point{X: 700, Y: 500}, ButtonLeft, false)
	if len(payload.Plan.Elements) != 3 {
		t.Fatalf("payload grew to %d elements after an edit", len(payload.Plan.Elements))
	}

	// Server response: same content, assigned id, bumped version.
	saved := payload.Plan.Clone()
	saved.Elements[2].ID = "elem_assigned"
	saved.Version = payload.Plan.Version + 1
	s.ApplySaveResult(saved)

	if s.IsSaving() {
		t.Error("save should be finished")
	}
	if s.Plan().Version != saved.Version {
		t.Errorf("version = %d, want %d", s.Plan().Version, saved.Version)
	}
	if i := floorplan.FindElement(s.Plan().Elements, "elem_assigned"); i < 0 {
		t.Error("live door should carry the assigned id")
	}
	if i := floorplan.FindElement(s.Plan().Elements, tempID); i >= 0 {
		t.Error("temp id should be gone from the live plan")
	}
	// The mid-save window was an edit: local changes survive and the session
	// stays dirty.
	if len(s.Plan().Elements) != 4 {
		t.Errorf("elements = %d, want the mid-save window kept", len(s.Plan().Elements))
	}
	if !s.HasUnsavedChanges() {
		t.Error("mid-save edits should keep the session dirty")
	}

	// History was remapped too: no undo state may resurrect the temp id.
	for s.Undo() {
	}
	for s.Redo() {
	}
	if i := floorplan.FindElement(s.Plan().Elements, tempID); i >= 0 {
		t.Error("temp id resurrected through history")
	}
}

func TestSaveLifecycleCleanSessionAdoptsWholesale(t *testing.T) {
	s := newTestSession()
	s.SelectTool(ToolDoor)
	s.PointerDown(geom.Point{X: 600, Y: 400}, ButtonLeft, false)

	payload, err := s.BeginSave()
	if err != nil {
		t.Fatalf("BeginSave: %v", err)
	}
	saved := payload.Plan.Clone()
	saved.Elements[2].ID = "elem_assigned"
	saved.Version = payload.Plan.Version + 1
	s.ApplySaveResult(saved)

	if s.HasUnsavedChanges() {
		t.Error("a clean save should clear the unsaved flag")
	}
	if s.Plan().Elements[2].ID != "elem_assigned" {
		t.Errorf("element id = %q, want assigned", s.Plan().Elements[2].ID)
	}
}

func TestFailSaveKeepsEverything(t *testing.T) {
	s := newTestSession()
	s.PointerDown(geom.Point{X: 20, Y: 20}, ButtonLeft, false)
	s.PointerUp(geom.Point{X: 20, Y: 20})
	s.DeleteSelected()

	if _, err := s.BeginSave(); err != nil {
		t.Fatalf("BeginSave: %v", err)
	}
	s.FailSave()

	if s.IsSaving() {
		t.Error("save should be over")
	}
	if !s.HasUnsavedChanges() {
		t.Error("a failed save must keep the unsaved flag")
	}
	elementIDs, _ := s.PendingDeletions()
	if len(elementIDs) != 1 {
		t.Errorf("pending deletions = %v, want kept for retry", elementIDs)
	}
	if _, err := s.BeginSave(); err != nil {
		t.Errorf("retry BeginSave = %v, want allowed", err)
	}
}

func TestSelectToolAbortsInteraction(t *testing.T) {
	s := newTestSession()
	s.SelectTool(ToolLine)
	s.PointerDown(geom.Point{X: 100, Y: 100}, ButtonLeft, false)
	s.SelectTool(ToolRect)

	if s.Mode() != ModeIdle {
		t.Errorf("mode = %v, want idle after switching tools mid-draw", s.Mode())
	}
	if len(s.Plan().Elements) != 2 {
		t.Error("aborted construction should leave nothing behind")
	}
	if s.Tool() != ToolRect {
		t.Errorf("tool = %v, want rect", s.Tool())
	}
}

func TestPreviewShapeDuringConstruction(t *testing.T) {
	s := newTestSession()
	s.SelectTool(ToolCircle)
	s.PointerDown(geom.Point{X: 500, Y: 300}, ButtonLeft, false)
	s.PointerMove(geom.Point{X: 540, Y: 300})

	shape, ok := s.PreviewShape()
	if !ok {
		t.Fatal("an in-progress circle should have a preview")
	}
	circle, ok := shape.(floorplan.CircleShape)
	if !ok {
		t.Fatalf("preview = %T, want CircleShape", shape)
	}
	if circle.Radius != 40 {
		t.Errorf("preview radius = %v, want 40", circle.Radius)
	}

	s.Escape()
	if _, ok := s.PreviewShape(); ok {
		t.Error("no preview once idle")
	}
}

func TestZIndexCommands(t *testing.T) {
	s := newTestSession()
	s.PointerDown(geom.Point{X: 20, Y: 20}, ButtonLeft, false)
	s.PointerUp(geom.Point{X: 20, Y: 20})

	if out := s.BringSelectedToFront(); out != Applied {
		t.Fatalf("bring to front = %v", out)
	}
	if z := s.Plan().Elements[0].ZIndex; z != 1 {
		t.Errorf("zIndex = %d, want above every other element", z)
	}
	if out := s.SendSelectedToBack(); out != Applied {
		t.Fatalf("send to back = %v", out)
	}
	if z := s.Plan().Elements[0].ZIndex; z != -1 {
		t.Errorf("zIndex = %d, want below every other element", z)
	}
}
