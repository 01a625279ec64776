package editor

import (
	"fmt"
	"math"
	"strings"

	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
	"github.com/jaajung-kjs/digital-sub000/internal/geom"
	"github.com/jaajung-kjs/digital-sub000/internal/typeid"
)

// Tool is the active palette tool.
type Tool string

const (
	ToolSelect Tool = "select"
	ToolLine   Tool = "line"
	ToolRect   Tool = "rect"
	ToolCircle Tool = "circle"
	ToolDoor   Tool = "door"
	ToolWindow Tool = "window"
	ToolText   Tool = "text"
	ToolRack   Tool = "rack"
)

// Mode is the session's single interaction state. Modes are mutually
// exclusive: a drag can never coexist with a pan or an in-progress
// construction.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModePanning
	ModeDrawingLine
	ModeDrawingRect
	ModeDrawingCircle
	ModeEditingText
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDragging:
		return "dragging"
	case ModePanning:
		return "panning"
	case ModeDrawingLine:
		return "drawingLine"
	case ModeDrawingRect:
		return "drawingRect"
	case ModeDrawingCircle:
		return "drawingCircle"
	case ModeEditingText:
		return "editingText"
	}
	return "unknown"
}

// Pointer buttons as delivered by the shell.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
)

// Default geometry for single-click placements.
const (
	defaultDoorWidth    = 40.0
	defaultDoorHeight   = 8.0
	defaultWindowWidth  = 60.0
	defaultWindowHeight = 8.0
	defaultRackWidth    = 60.0
	defaultRackHeight   = 100.0
	defaultRackUnits    = 42
)

// dragState is captured at pointer-down over a target. Moves always reapply
// the full delta onto the base snapshot, never onto the already-moved value,
// so repeated small moves cannot accumulate drift.
type dragState struct {
	target     Target
	startWorld geom.Point
	initialPos geom.Point
	base       Snapshot
	moved      bool
}

// panState is a camera-only session; element and rack state never changes
// while panning.
type panState struct {
	startScreen geom.Point
	startPan    geom.Point
}

// drawState carries an in-progress line/rect/circle construction.
type drawState struct {
	anchor geom.Point
	points []geom.Point
	last   geom.Point
}

// textState carries an in-progress text entry.
type textState struct {
	anchor  geom.Point
	content string
}

// Session is the single owner of all interactive editing state for one plan:
// live collections, selection, interaction mode, history, viewport and the
// save lifecycle. Every mutation funnels through its methods so the undo log
// always reflects a coherent sequence of committed operations.
//
// A session is not safe for concurrent use; input events are expected to
// arrive serialized, one at a time.
type Session struct {
	plan *floorplan.Plan

	tool Tool
	mode Mode

	selection *Target

	drag *dragState
	pan  *panState
	draw *drawState
	text *textState

	history  *History
	viewport *Viewport

	pendingElementDeletes map[string]struct{}
	pendingRackDeletes    map[string]struct{}

	saving            bool
	hasUnsavedChanges bool
	dirtyDuringSave   bool
	inFlight          *SavePayload
}

// NewSession creates a session over an empty plan.
func NewSession(screenW, screenH float64) *Session {
	s := &Session{
		tool:                  ToolSelect,
		history:               NewHistory(),
		viewport:              NewViewport(screenW, screenH),
		pendingElementDeletes: map[string]struct{}{},
		pendingRackDeletes:    map[string]struct{}{},
	}
	s.plan = floorplan.NewEmptyPlan("")
	s.history.Reset(s.plan.Elements, s.plan.Racks)
	return s
}

// LoadPlan replaces the session contents with a deep copy of the given plan
// and resets history, selection, interaction state and the save lifecycle.
func (s *Session) LoadPlan(p *floorplan.Plan) {
	s.plan = p.Clone()
	if s.plan.GridSize > 0 {
		s.viewport.GridSize = s.plan.GridSize
	} else {
		s.viewport.GridSize = floorplan.DefaultGridSize
	}

	s.tool = ToolSelect
	s.mode = ModeIdle
	s.selection = nil
	s.drag, s.pan, s.draw, s.text = nil, nil, nil, nil

	s.history.Reset(s.plan.Elements, s.plan.Racks)
	s.pendingElementDeletes = map[string]struct{}{}
	s.pendingRackDeletes = map[string]struct{}{}
	s.saving = false
	s.hasUnsavedChanges = false
	s.dirtyDuringSave = false
	s.inFlight = nil
}

// --- Queries ---

// Plan returns the live plan. Callers must treat it as read-only; all
// mutation goes through session commands.
func (s *Session) Plan() *floorplan.Plan { return s.plan }

// Tool returns the active palette tool.
func (s *Session) Tool() Tool { return s.tool }

// Mode returns the current interaction mode.
func (s *Session) Mode() Mode { return s.mode }

// Selection returns the selected target, if any.
func (s *Session) Selection() (Target, bool) {
	if s.selection == nil {
		return Target{}, false
	}
	return *s.selection, true
}

// SelectionBounds returns the rotation-ignoring bounding box of the selected
// item, or false when nothing is selected.
func (s *Session) SelectionBounds() (geom.Rect, bool) {
	if s.selection == nil {
		return geom.Rect{}, false
	}
	switch s.selection.Kind {
	case TargetElement:
		if i := floorplan.FindElement(s.plan.Elements, s.selection.ID); i >= 0 {
			return s.plan.Elements[i].Shape.BoundingBox(), true
		}
	case TargetRack:
		if i := floorplan.FindRack(s.plan.Racks, s.selection.ID); i >= 0 {
			return s.plan.Racks[i].Bounds(), true
		}
	}
	return geom.Rect{}, false
}

// Viewport returns a copy of the camera state.
func (s *Session) Viewport() Viewport { return *s.viewport }

// DisplayList returns the current paint order.
func (s *Session) DisplayList() DisplayList {
	return BuildDisplayList(s.plan.Elements, s.plan.Racks)
}

// PreviewShape returns the in-progress construction geometry for rendering,
// or false when nothing is being drawn.
func (s *Session) PreviewShape() (floorplan.Shape, bool) {
	switch s.mode {
	case ModeDrawingLine:
		pts := make([]geom.Point, 0, len(s.draw.points)+1)
		pts = append(pts, s.draw.points...)
		pts = append(pts, s.draw.last)
		return floorplan.LineShape{
			Points:      pts,
			Stroke:      floorplan.DefaultStroke,
			StrokeWidth: floorplan.DefaultStrokeWidth,
		}, true
	case ModeDrawingRect:
		box := rectBetween(s.draw.anchor, s.draw.last)
		return floorplan.RectShape{
			X: box.X, Y: box.Y, Width: box.Width, Height: box.Height,
			Fill:        floorplan.FillTransparent,
			Stroke:      floorplan.DefaultStroke,
			StrokeWidth: floorplan.DefaultStrokeWidth,
		}, true
	case ModeDrawingCircle:
		return floorplan.CircleShape{
			CX: s.draw.anchor.X, CY: s.draw.anchor.Y,
			Radius:      s.draw.anchor.DistanceTo(s.draw.last),
			Fill:        floorplan.FillTransparent,
			Stroke:      floorplan.DefaultStroke,
			StrokeWidth: floorplan.DefaultStrokeWidth,
		}, true
	case ModeEditingText:
		return floorplan.TextShape{
			X: s.text.anchor.X, Y: s.text.anchor.Y,
			Content:    s.text.content,
			FontSize:   floorplan.DefaultFontSize,
			FontWeight: floorplan.WeightNormal,
			Align:      floorplan.AlignLeft,
		}, true
	}
	return nil, false
}

// HasUnsavedChanges reports whether local edits exist that no successful save
// has covered yet.
func (s *Session) HasUnsavedChanges() bool { return s.hasUnsavedChanges }

// IsSaving reports whether a save round-trip is in flight.
func (s *Session) IsSaving() bool { return s.saving }

// CanUndo reports whether undo is possible.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether redo is possible.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// --- Tool and pointer commands ---

// SelectTool switches the palette tool. Any in-progress drag, pan or
// construction is aborted without committing.
func (s *Session) SelectTool(t Tool) {
	s.abortInteraction()
	s.tool = t
}

// PointerDown feeds a press at a screen position into the session. Middle
// button or a held pan modifier starts a camera pan; otherwise the behavior
// depends on the active tool and mode.
func (s *Session) PointerDown(screen geom.Point, button int, panModifier bool) {
	if s.mode == ModeIdle && (button == ButtonMiddle || panModifier) {
		s.pan = &panState{startScreen: screen, startPan: s.viewport.Pan}
		s.mode = ModePanning
		return
	}
	if button != ButtonLeft {
		return
	}

	switch s.mode {
	case ModeIdle:
		switch s.tool {
		case ToolSelect:
			s.selectAndArmDrag(screen)
		case ToolLine:
			p := s.snapScreen(screen)
			s.draw = &drawState{points: []geom.Point{p}, last: p}
			s.mode = ModeDrawingLine
		case ToolRect:
			p := s.snapScreen(screen)
			s.draw = &drawState{anchor: p, last: p}
			s.mode = ModeDrawingRect
		case ToolCircle:
			p := s.snapScreen(screen)
			s.draw = &drawState{anchor: p, last: p}
			s.mode = ModeDrawingCircle
		case ToolDoor:
			s.placeDoor(s.snapScreen(screen))
		case ToolWindow:
			s.placeWindow(s.snapScreen(screen))
		case ToolRack:
			s.placeRack(s.snapScreen(screen))
		case ToolText:
			s.text = &textState{anchor: s.snapScreen(screen)}
			s.mode = ModeEditingText
		}
	case ModeDrawingLine:
		s.draw.points = append(s.draw.points, s.snapScreen(screen))
	case ModeDrawingRect:
		s.finishRect(screen)
	case ModeDrawingCircle:
		s.finishCircle(screen)
	case ModeEditingText:
		// A click elsewhere commits the draft.
		s.CommitText()
	}
}

// PointerMove feeds a pointer motion into the session.
func (s *Session) PointerMove(screen geom.Point) {
	switch s.mode {
	case ModeDragging:
		s.updateDrag(screen)
	case ModePanning:
		d := screen.Sub(s.pan.startScreen)
		s.viewport.Pan = geom.Point{X: s.pan.startPan.X + d.X, Y: s.pan.startPan.Y + d.Y}
	case ModeDrawingLine, ModeDrawingRect, ModeDrawingCircle:
		s.draw.last = s.snapScreen(screen)
	}
}

// PointerUp feeds a release into the session: a drag commits (when it
// actually moved), a pan simply ends.
func (s *Session) PointerUp(screen geom.Point) {
	switch s.mode {
	case ModeDragging:
		s.updateDrag(screen)
		s.commitDrag()
	case ModePanning:
		s.pan = nil
		s.mode = ModeIdle
	}
}

// Escape aborts whatever is in progress: a drag rolls back to its initial
// geometry, constructions are discarded and the tool returns to select, an
// idle escape clears the selection.
func (s *Session) Escape() {
	switch s.mode {
	case ModeDragging:
		s.cancelDrag()
	case ModePanning:
		s.pan = nil
		s.mode = ModeIdle
	case ModeDrawingLine, ModeDrawingRect, ModeDrawingCircle:
		s.draw = nil
		s.mode = ModeIdle
		s.tool = ToolSelect
	case ModeEditingText:
		s.text = nil
		s.mode = ModeIdle
		s.tool = ToolSelect
	default:
		s.selection = nil
	}
}

// --- Drag session ---

func (s *Session) selectAndArmDrag(screen geom.Point) {
	world := s.viewport.ScreenToWorld(screen)
	target, ok := HitTest(world, s.plan.Elements, s.plan.Racks)
	if !ok {
		s.selection = nil
		return
	}
	s.selection = &target

	var initial geom.Point
	switch target.Kind {
	case TargetElement:
		i := floorplan.FindElement(s.plan.Elements, target.ID)
		if s.plan.Elements[i].Locked {
			// Locked elements can be selected but never dragged.
			return
		}
		initial = s.plan.Elements[i].Shape.Position()
	case TargetRack:
		i := floorplan.FindRack(s.plan.Racks, target.ID)
		initial = geom.Point{X: s.plan.Racks[i].X, Y: s.plan.Racks[i].Y}
	}

	s.drag = &dragState{
		target:     target,
		startWorld: world,
		initialPos: initial,
		base:       snapshotOf(s.plan.Elements, s.plan.Racks),
	}
	s.mode = ModeDragging
}

func (s *Session) updateDrag(screen geom.Point) {
	world := s.viewport.ScreenToWorld(screen)
	delta := world.Sub(s.drag.startWorld)
	candidate := s.viewport.SnapPoint(s.drag.initialPos.Add(delta.X, delta.Y))

	switch s.drag.target.Kind {
	case TargetElement:
		if els, out := MoveElement(s.drag.base.Elements, s.drag.target.ID, candidate); out == Applied {
			s.plan.Elements = els
		}
	case TargetRack:
		if racks, out := MoveRack(s.drag.base.Racks, s.drag.target.ID, candidate); out == Applied {
			s.plan.Racks = racks
		}
	}

	s.drag.moved = candidate != s.drag.initialPos
}

func (s *Session) commitDrag() {
	moved := s.drag.moved
	s.drag = nil
	s.mode = ModeIdle

	if moved {
		s.history.Push(s.plan.Elements, s.plan.Racks)
		s.markEdited()
	}
}

func (s *Session) cancelDrag() {
	s.plan.Elements = s.drag.base.Elements
	s.plan.Racks = s.drag.base.Racks
	s.drag = nil
	s.mode = ModeIdle
}

// --- Construction ---

// FinishLine ends a multi-click line construction (double-click or Enter in
// the shell). Lines with fewer than two distinct points are discarded.
func (s *Session) FinishLine() {
	if s.mode != ModeDrawingLine {
		return
	}
	points := dedupeConsecutive(s.draw.points)
	s.draw = nil
	s.mode = ModeIdle
	s.tool = ToolSelect

	if len(points) < 2 {
		return
	}
	s.addElement(floorplan.LineShape{
		Points:      points,
		Stroke:      floorplan.DefaultStroke,
		StrokeWidth: floorplan.DefaultStrokeWidth,
	})
}

func (s *Session) finishRect(screen geom.Point) {
	box := rectBetween(s.draw.anchor, s.snapScreen(screen))
	s.draw = nil
	s.mode = ModeIdle
	s.tool = ToolSelect

	if box.Width < MinElementSize || box.Height < MinElementSize {
		return
	}
	s.addElement(floorplan.RectShape{
		X: box.X, Y: box.Y, Width: box.Width, Height: box.Height,
		Fill:        floorplan.FillTransparent,
		Stroke:      floorplan.DefaultStroke,
		StrokeWidth: floorplan.DefaultStrokeWidth,
	})
}

func (s *Session) finishCircle(screen geom.Point) {
	radius := s.draw.anchor.DistanceTo(s.snapScreen(screen))
	anchor := s.draw.anchor
	s.draw = nil
	s.mode = ModeIdle
	s.tool = ToolSelect

	if radius < MinElementSize {
		return
	}
	s.addElement(floorplan.CircleShape{
		CX: anchor.X, CY: anchor.Y, Radius: radius,
		Fill:        floorplan.FillTransparent,
		Stroke:      floorplan.DefaultStroke,
		StrokeWidth: floorplan.DefaultStrokeWidth,
	})
}

// SetTextContent replaces the draft content of an in-progress text entry.
func (s *Session) SetTextContent(content string) {
	if s.mode == ModeEditingText {
		s.text.content = content
	}
}

// CommitText ends a text entry. Whitespace-only drafts are discarded.
func (s *Session) CommitText() {
	if s.mode != ModeEditingText {
		return
	}
	anchor := s.text.anchor
	content := strings.TrimSpace(s.text.content)
	s.text = nil
	s.mode = ModeIdle
	s.tool = ToolSelect

	if content == "" {
		return
	}
	s.addElement(floorplan.TextShape{
		X: anchor.X, Y: anchor.Y,
		Content:    content,
		FontSize:   floorplan.DefaultFontSize,
		FontWeight: floorplan.WeightNormal,
		Align:      floorplan.AlignLeft,
	})
}

func (s *Session) placeDoor(p geom.Point) {
	s.tool = ToolSelect
	s.addElement(floorplan.DoorShape{
		X: p.X, Y: p.Y,
		Width: defaultDoorWidth, Height: defaultDoorHeight,
		Stroke:      floorplan.DefaultStroke,
		StrokeWidth: floorplan.DefaultStrokeWidth,
	})
}

func (s *Session) placeWindow(p geom.Point) {
	s.tool = ToolSelect
	s.addElement(floorplan.WindowShape{
		X: p.X, Y: p.Y,
		Width: defaultWindowWidth, Height: defaultWindowHeight,
		Stroke:      floorplan.DefaultStroke,
		StrokeWidth: floorplan.DefaultStrokeWidth,
	})
}

func (s *Session) placeRack(p geom.Point) {
	s.tool = ToolSelect
	rack := floorplan.Rack{
		ID:     typeid.NewTempID(),
		Name:   s.nextRackName(),
		X:      p.X,
		Y:      p.Y,
		Width:  defaultRackWidth,
		Height: defaultRackHeight,
		TotalU: defaultRackUnits,
	}
	s.plan.Racks = append(s.plan.Racks, rack)
	s.selection = &Target{Kind: TargetRack, ID: rack.ID}
	s.history.Push(s.plan.Elements, s.plan.Racks)
	s.markEdited()
}

// addElement appends a freshly constructed element under a temporary id,
// selects it and commits the addition to history.
func (s *Session) addElement(shape floorplan.Shape) {
	el := floorplan.Element{
		ID:      typeid.NewTempID(),
		Shape:   shape,
		ZIndex:  s.nextZIndex(),
		Visible: true,
	}
	s.plan.Elements = append(s.plan.Elements, el)
	s.selection = &Target{Kind: TargetElement, ID: el.ID}
	s.history.Push(s.plan.Elements, s.plan.Racks)
	s.markEdited()
}

// --- Mutation commands on the selection ---

// DeleteSelected removes the selected item from the live collection. Ids
// that were already persisted are recorded for deletion on the next save;
// temporary ids simply vanish. Locked elements refuse deletion.
func (s *Session) DeleteSelected() Outcome {
	if s.mode != ModeIdle || s.selection == nil {
		return NotFound
	}
	t := *s.selection

	switch t.Kind {
	case TargetElement:
		i := floorplan.FindElement(s.plan.Elements, t.ID)
		if i < 0 {
			s.selection = nil
			return NotFound
		}
		if s.plan.Elements[i].Locked {
			return Locked
		}
		out := make([]floorplan.Element, 0, len(s.plan.Elements)-1)
		out = append(out, s.plan.Elements[:i]...)
		out = append(out, s.plan.Elements[i+1:]...)
		s.plan.Elements = out
		if !typeid.IsTemporary(t.ID) {
			s.pendingElementDeletes[t.ID] = struct{}{}
		}
	case TargetRack:
		i := floorplan.FindRack(s.plan.Racks, t.ID)
		if i < 0 {
			s.selection = nil
			return NotFound
		}
		out := make([]floorplan.Rack, 0, len(s.plan.Racks)-1)
		out = append(out, s.plan.Racks[:i]...)
		out = append(out, s.plan.Racks[i+1:]...)
		s.plan.Racks = out
		if !typeid.IsTemporary(t.ID) {
			s.pendingRackDeletes[t.ID] = struct{}{}
		}
	}

	s.selection = nil
	s.history.Push(s.plan.Elements, s.plan.Racks)
	s.markEdited()
	return Applied
}

// RotateSelected advances the selected item's rotation by 90 degrees.
func (s *Session) RotateSelected() Outcome {
	return s.applyToSelection(
		func(id string) ([]floorplan.Element, Outcome) { return RotateElement(s.plan.Elements, id) },
		func(id string) ([]floorplan.Rack, Outcome) { return RotateRack(s.plan.Racks, id) },
	)
}

// FlipSelectedH mirrors the selected element horizontally.
func (s *Session) FlipSelectedH() Outcome {
	return s.applyToSelection(
		func(id string) ([]floorplan.Element, Outcome) { return FlipElementH(s.plan.Elements, id) },
		nil,
	)
}

// FlipSelectedV mirrors the selected element vertically.
func (s *Session) FlipSelectedV() Outcome {
	return s.applyToSelection(
		func(id string) ([]floorplan.Element, Outcome) { return FlipElementV(s.plan.Elements, id) },
		nil,
	)
}

// ResizeSelected sets the selected item's extent.
func (s *Session) ResizeSelected(size geom.Size) Outcome {
	return s.applyToSelection(
		func(id string) ([]floorplan.Element, Outcome) { return ResizeElement(s.plan.Elements, id, size) },
		func(id string) ([]floorplan.Rack, Outcome) { return ResizeRack(s.plan.Racks, id, size) },
	)
}

// CycleSelectedStrokeWidth steps the selected element's stroke width.
func (s *Session) CycleSelectedStrokeWidth(dir int) Outcome {
	return s.applyToSelection(
		func(id string) ([]floorplan.Element, Outcome) { return CycleStrokeWidth(s.plan.Elements, id, dir) },
		nil,
	)
}

// CycleSelectedFontSize steps the selected text element's font size.
func (s *Session) CycleSelectedFontSize(dir int) Outcome {
	return s.applyToSelection(
		func(id string) ([]floorplan.Element, Outcome) { return CycleFontSize(s.plan.Elements, id, dir) },
		nil,
	)
}

// ToggleSelectedFontWeight flips the selected text element's weight.
func (s *Session) ToggleSelectedFontWeight() Outcome {
	return s.applyToSelection(
		func(id string) ([]floorplan.Element, Outcome) { return ToggleFontWeight(s.plan.Elements, id) },
		nil,
	)
}

// BringSelectedToFront raises the selected element above every other.
func (s *Session) BringSelectedToFront() Outcome {
	return s.applyToSelection(
		func(id string) ([]floorplan.Element, Outcome) {
			return SetElementZIndex(s.plan.Elements, id, s.maxZIndex()+1)
		},
		nil,
	)
}

// SendSelectedToBack lowers the selected element below every other.
func (s *Session) SendSelectedToBack() Outcome {
	return s.applyToSelection(
		func(id string) ([]floorplan.Element, Outcome) {
			return SetElementZIndex(s.plan.Elements, id, s.minZIndex()-1)
		},
		nil,
	)
}

// applyToSelection runs the element or rack updater matching the selection
// kind, committing to history when something changed. A nil rack updater
// means the operation has no rack form.
func (s *Session) applyToSelection(
	elementOp func(id string) ([]floorplan.Element, Outcome),
	rackOp func(id string) ([]floorplan.Rack, Outcome),
) Outcome {
	if s.mode != ModeIdle || s.selection == nil {
		return NotFound
	}

	switch s.selection.Kind {
	case TargetElement:
		i := floorplan.FindElement(s.plan.Elements, s.selection.ID)
		if i < 0 {
			return NotFound
		}
		if s.plan.Elements[i].Locked {
			return Locked
		}
		els, outcome := elementOp(s.selection.ID)
		if outcome != Applied {
			return outcome
		}
		s.plan.Elements = els
	case TargetRack:
		if rackOp == nil {
			return Unsupported
		}
		racks, outcome := rackOp(s.selection.ID)
		if outcome != Applied {
			return outcome
		}
		s.plan.Racks = racks
	}

	s.history.Push(s.plan.Elements, s.plan.Racks)
	s.markEdited()
	return Applied
}

// --- History commands ---

// Undo restores the previous snapshot, if any.
func (s *Session) Undo() bool {
	if s.mode != ModeIdle {
		return false
	}
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.plan.Elements = snap.Elements
	s.plan.Racks = snap.Racks
	s.revalidateSelection()
	s.markEdited()
	return true
}

// Redo restores the next snapshot, if any.
func (s *Session) Redo() bool {
	if s.mode != ModeIdle {
		return false
	}
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.plan.Elements = snap.Elements
	s.plan.Racks = snap.Racks
	s.revalidateSelection()
	s.markEdited()
	return true
}

// --- Camera commands ---

// SetScreenSize updates the viewport to the shell's drawing surface size.
func (s *Session) SetScreenSize(w, h float64) {
	s.viewport.ScreenW = w
	s.viewport.ScreenH = h
}

// ZoomAtScreen scales zoom by a factor anchored at a screen point.
func (s *Session) ZoomAtScreen(anchor geom.Point, factor float64) {
	s.viewport.ZoomBy(anchor, factor)
}

// SetZoom sets an absolute zoom percentage anchored at the screen center.
func (s *Session) SetZoom(zoom float64) {
	center := geom.Point{X: s.viewport.ScreenW / 2, Y: s.viewport.ScreenH / 2}
	s.viewport.ZoomAt(center, zoom)
}

// ToggleSnap flips grid snapping and returns the new state.
func (s *Session) ToggleSnap() bool {
	s.viewport.SnapEnabled = !s.viewport.SnapEnabled
	return s.viewport.SnapEnabled
}

// SetGridSize changes the plan's grid pitch. Non-positive values are ignored.
func (s *Session) SetGridSize(g float64) {
	if g <= 0 {
		return
	}
	s.plan.GridSize = g
	s.viewport.GridSize = g
	s.markEdited()
}

// FitToContent frames all visible content.
func (s *Session) FitToContent() {
	s.viewport.FitToContent(s.plan.Elements, s.plan.Racks)
}

// --- Internal helpers ---

// abortInteraction force-ends any non-idle mode without committing.
func (s *Session) abortInteraction() {
	switch s.mode {
	case ModeDragging:
		s.cancelDrag()
	case ModePanning:
		s.pan = nil
		s.mode = ModeIdle
	case ModeDrawingLine, ModeDrawingRect, ModeDrawingCircle:
		s.draw = nil
		s.mode = ModeIdle
	case ModeEditingText:
		s.text = nil
		s.mode = ModeIdle
	}
}

// markEdited flags unsaved changes; edits made while a save is in flight are
// additionally tracked so the save result does not clobber them.
func (s *Session) markEdited() {
	s.hasUnsavedChanges = true
	if s.saving {
		s.dirtyDuringSave = true
	}
}

func (s *Session) snapScreen(screen geom.Point) geom.Point {
	return s.viewport.SnapPoint(s.viewport.ScreenToWorld(screen))
}

func (s *Session) revalidateSelection() {
	if s.selection == nil {
		return
	}
	switch s.selection.Kind {
	case TargetElement:
		if floorplan.FindElement(s.plan.Elements, s.selection.ID) < 0 {
			s.selection = nil
		}
	case TargetRack:
		if floorplan.FindRack(s.plan.Racks, s.selection.ID) < 0 {
			s.selection = nil
		}
	}
}

func (s *Session) nextZIndex() int {
	return s.maxZIndex() + 1
}

func (s *Session) maxZIndex() int {
	z := 0
	for _, e := range s.plan.Elements {
		z = max(z, e.ZIndex)
	}
	return z
}

func (s *Session) minZIndex() int {
	z := 0
	for _, e := range s.plan.Elements {
		z = min(z, e.ZIndex)
	}
	return z
}

func (s *Session) nextRackName() string {
	n := len(s.plan.Racks) + 1
	for {
		name := fmt.Sprintf("R%02d", n)
		taken := false
		for _, r := range s.plan.Racks {
			if r.Name == name {
				taken = true
				break
			}
		}
		if !taken {
			return name
		}
		n++
	}
}

// rectBetween normalizes two corners into an origin-plus-size rect.
func rectBetween(a, b geom.Point) geom.Rect {
	return geom.Rect{
		X:      min(a.X, b.X),
		Y:      min(a.Y, b.Y),
		Width:  math.Abs(a.X - b.X),
		Height: math.Abs(a.Y - b.Y),
	}
}

// dedupeConsecutive drops repeated consecutive points from a click sequence
// (double-clicking to finish a line leaves one duplicate behind).
func dedupeConsecutive(points []geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}
