package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jaajung-kjs/digital-sub000/internal/api"
	"github.com/jaajung-kjs/digital-sub000/internal/floorplan"
	"github.com/jaajung-kjs/digital-sub000/internal/geom"
	"github.com/jaajung-kjs/digital-sub000/internal/kv"
	"github.com/jaajung-kjs/digital-sub000/internal/typeid"
)

// ErrSaveInFlight is returned by BeginSave while a previous save has neither
// succeeded nor failed yet.
var ErrSaveInFlight = errors.New("a save is already in flight")

// DraftTTL is how long an unsaved-draft snapshot stays restorable. Drafts
// bridge a deliberate excursion to another surface and back; they are not
// crash recovery.
const DraftTTL = 10 * time.Minute

// SavePayload is the outbound snapshot handed to the persistence client. It
// is immutable once captured: edits made while the save is in flight are
// never folded into it.
type SavePayload struct {
	Plan              floorplan.Plan
	DeletedElementIDs []string
	DeletedRackIDs    []string
}

// BeginSave captures the current state as a payload and marks the session
// saving. Ids restored by undo after a delete are dropped from the deletion
// sets, so a save can never delete an item it also carries.
func (s *Session) BeginSave() (*SavePayload, error) {
	if s.saving {
		return nil, ErrSaveInFlight
	}

	deletedElements := s.collectDeletes(s.pendingElementDeletes, func(id string) bool {
		return floorplan.FindElement(s.plan.Elements, id) >= 0
	})
	deletedRacks := s.collectDeletes(s.pendingRackDeletes, func(id string) bool {
		return floorplan.FindRack(s.plan.Racks, id) >= 0
	})
	payload := &SavePayload{
		Plan:              *s.plan.Clone(),
		DeletedElementIDs: deletedElements,
		DeletedRackIDs:    deletedRacks,
	}

	s.saving = true
	s.dirtyDuringSave = false
	s.inFlight = payload
	return payload, nil
}

// ApplySaveResult adopts the server's response to the in-flight save: items
// sent under temporary ids take their assigned ids (everywhere, including
// history), the deletions the payload carried are cleared, and the plan
// version advances. Edits made while the save was in flight survive; only a
// clean session adopts the server state wholesale.
func (s *Session) ApplySaveResult(saved *floorplan.Plan) {
	if !s.saving || s.inFlight == nil {
		return
	}
	sent := s.inFlight
	s.saving = false
	s.inFlight = nil

	elementIDs := map[string]string{}
	for i, e := range sent.Plan.Elements {
		if typeid.IsTemporary(e.ID) && i < len(saved.Elements) {
			elementIDs[e.ID] = saved.Elements[i].ID
		}
	}
	rackIDs := map[string]string{}
	for i, r := range sent.Plan.Racks {
		if typeid.IsTemporary(r.ID) && i < len(saved.Racks) {
			rackIDs[r.ID] = saved.Racks[i].ID
		}
	}

	if s.dirtyDuringSave {
		// Local edits arrived mid-save: keep them, adopt only ids and version.
		s.remapLiveIDs(elementIDs, rackIDs)
		s.plan.ID = saved.ID
		s.plan.Version = saved.Version
		s.hasUnsavedChanges = true
	} else {
		gridSize := s.viewport.GridSize
		s.plan = saved.Clone()
		if s.plan.GridSize <= 0 {
			s.plan.GridSize = gridSize
		}
		s.viewport.GridSize = s.plan.GridSize
		s.hasUnsavedChanges = false
	}
	s.dirtyDuringSave = false

	s.history.RemapIDs(elementIDs, rackIDs)
	if s.selection != nil {
		if id, ok := elementIDs[s.selection.ID]; ok {
			s.selection.ID = id
		}
		if id, ok := rackIDs[s.selection.ID]; ok {
			s.selection.ID = id
		}
	}
	s.revalidateSelection()

	for _, id := range sent.DeletedElementIDs {
		delete(s.pendingElementDeletes, id)
	}
	for _, id := range sent.DeletedRackIDs {
		delete(s.pendingRackDeletes, id)
	}
}

// FailSave ends the in-flight save without adopting anything: local edits,
// pending deletions and the unsaved flag all stay, so the user can retry.
func (s *Session) FailSave() {
	if !s.saving {
		return
	}
	s.saving = false
	s.inFlight = nil
	s.dirtyDuringSave = false
	s.hasUnsavedChanges = true
}

// PendingDeletions returns the element and rack ids queued for deletion on
// the next save, sorted for stable output.
func (s *Session) PendingDeletions() (elementIDs, rackIDs []string) {
	elementIDs = s.collectDeletes(s.pendingElementDeletes, func(string) bool { return false })
	rackIDs = s.collectDeletes(s.pendingRackDeletes, func(string) bool { return false })
	return elementIDs, rackIDs
}

func (s *Session) collectDeletes(set map[string]struct{}, revived func(id string) bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		if revived(id) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Session) remapLiveIDs(elementIDs, rackIDs map[string]string) {
	for i := range s.plan.Elements {
		if id, ok := elementIDs[s.plan.Elements[i].ID]; ok {
			s.plan.Elements[i].ID = id
		}
	}
	for i := range s.plan.Racks {
		if id, ok := rackIDs[s.plan.Racks[i].ID]; ok {
			s.plan.Racks[i].ID = id
		}
	}
}

// --- Viewport and draft persistence ---

// ViewportState is the per-plan camera memory persisted across navigation.
type ViewportState struct {
	Zoom        float64 `json:"zoom"`
	PanX        float64 `json:"panX"`
	PanY        float64 `json:"panY"`
	SnapEnabled bool    `json:"snapEnabled"`
}

// Viewport memory is keyed by plan id; drafts by floor id, because a draft
// may exist for a plan that has never been saved and so has no id yet.
func viewportKey(planID string) string { return "viewport/" + planID }
func draftKey(floorID string) string   { return "draft/" + floorID }

// SaveViewportState writes the camera state under the plan id. A plan that
// has never been saved has no id and nothing is written.
func (s *Session) SaveViewportState(ctx context.Context, store kv.Store) error {
	if s.plan.ID == "" {
		return nil
	}
	state := ViewportState{
		Zoom:        s.viewport.Zoom,
		PanX:        s.viewport.Pan.X,
		PanY:        s.viewport.Pan.Y,
		SnapEnabled: s.viewport.SnapEnabled,
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal viewport state: %w", err)
	}
	if err := store.Put(ctx, viewportKey(s.plan.ID), data); err != nil {
		return fmt.Errorf("store viewport state: %w", err)
	}
	return nil
}

// RestoreViewportState applies a previously saved camera state for the
// current plan, if one exists.
func (s *Session) RestoreViewportState(ctx context.Context, store kv.Store) error {
	if s.plan.ID == "" {
		return nil
	}
	data, err := store.Get(ctx, viewportKey(s.plan.ID))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load viewport state: %w", err)
	}

	var state ViewportState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("decode viewport state: %w", err)
	}
	s.viewport.Zoom = clampZoom(state.Zoom)
	s.viewport.Pan = geom.Point{X: state.PanX, Y: state.PanY}
	s.viewport.SnapEnabled = state.SnapEnabled
	return nil
}

// draftEnvelope is the stored form of an unsaved working state.
type draftEnvelope struct {
	SavedAt           time.Time   `json:"savedAt"`
	Plan              api.PlanDTO `json:"plan"`
	DeletedElementIDs []string    `json:"deletedElementIds"`
	DeletedRackIDs    []string    `json:"deletedRackIds"`
}

// SaveDraft stashes the full unsaved working state for the current floor,
// pending deletions included. Nothing is written when the session is clean.
func (s *Session) SaveDraft(ctx context.Context, store kv.Store, now time.Time) error {
	if !s.hasUnsavedChanges || s.plan.FloorID == "" {
		return nil
	}
	dto, err := api.EncodePlan(s.plan)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	deletedElements, deletedRacks := s.PendingDeletions()
	env := draftEnvelope{
		SavedAt:           now,
		Plan:              dto,
		DeletedElementIDs: deletedElements,
		DeletedRackIDs:    deletedRacks,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := store.Put(ctx, draftKey(s.plan.FloorID), data); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

// TakeDraft restores a stashed working state for the current floor if one
// exists and is fresh, consuming it either way. It reports whether a draft
// was restored. A stale draft is discarded without touching the session.
func (s *Session) TakeDraft(ctx context.Context, store kv.Store, now time.Time) (bool, error) {
	if s.plan.FloorID == "" {
		return false, nil
	}
	key := draftKey(s.plan.FloorID)

	data, err := store.Get(ctx, key)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load draft: %w", err)
	}

	var env draftEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return false, fmt.Errorf("decode draft: %w", err)
	}
	if now.Sub(env.SavedAt) > DraftTTL {
		if err := store.Delete(ctx, key); err != nil {
			return false, fmt.Errorf("discard stale draft: %w", err)
		}
		return false, nil
	}

	plan, err := api.DecodePlan(env.Plan)
	if err != nil {
		return false, fmt.Errorf("decode draft plan: %w", err)
	}

	s.LoadPlan(plan)
	s.hasUnsavedChanges = true
	for _, id := range env.DeletedElementIDs {
		s.pendingElementDeletes[id] = struct{}{}
	}
	for _, id := range env.DeletedRackIDs {
		s.pendingRackDeletes[id] = struct{}{}
	}

	if err := store.Delete(ctx, key); err != nil {
		return true, fmt.Errorf("consume draft: %w", err)
	}
	return true, nil
}

// DiscardDraft removes any stashed draft for the current floor.
func (s *Session) DiscardDraft(ctx context.Context, store kv.Store) error {
	if s.plan.FloorID == "" {
		return nil
	}
	if err := store.Delete(ctx, draftKey(s.plan.FloorID)); err != nil {
		return fmt.Errorf("discard draft: %w", err)
	}
	return nil
}
