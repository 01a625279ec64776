package editor

import "github.com/jaajung-kjs/digital-sub000/internal/floorplan"

// MaxHistoryEntries bounds the undo depth. The oldest snapshot is evicted
// when a commit would exceed it.
const MaxHistoryEntries = 50

// Snapshot is a deep copy of the element and rack collections at one point in
// the edit history. Later mutation of the live collections never reaches a
// stored snapshot.
type Snapshot struct {
	Elements []floorplan.Element
	Racks    []floorplan.Rack
}

// History is a bounded undo/redo stack of snapshots with a cursor at the
// current entry. A commit truncates everything past the cursor before
// appending.
type History struct {
	entries []Snapshot
	cursor  int
}

// NewHistory returns an empty history. Reset must run before the first Push.
func NewHistory() *History {
	return &History{cursor: -1}
}

// Reset drops all entries and installs the given collections as entry zero,
// so the state a plan was loaded with is always reachable by undo.
func (h *History) Reset(elements []floorplan.Element, racks []floorplan.Rack) {
	h.entries = []Snapshot{snapshotOf(elements, racks)}
	h.cursor = 0
}

// Push commits the given collections as the new current entry. Any redo tail
// is discarded; the oldest entry is evicted once the cap is reached.
func (h *History) Push(elements []floorplan.Element, racks []floorplan.Rack) {
	h.entries = append(h.entries[:h.cursor+1], snapshotOf(elements, racks))
	if len(h.entries) > MaxHistoryEntries {
		h.entries = h.entries[1:]
	}
	h.cursor = len(h.entries) - 1
}

// CanUndo reports whether an earlier entry exists.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether a later entry exists.
func (h *History) CanRedo() bool {
	return h.cursor >= 0 && h.cursor < len(h.entries)-1
}

// Undo steps the cursor back one entry and returns a copy of it. The second
// return is false when already at the oldest entry.
func (h *History) Undo() (Snapshot, bool) {
	if !h.CanUndo() {
		return Snapshot{}, false
	}
	h.cursor--
	return h.entries[h.cursor].clone(), true
}

// Redo steps the cursor forward one entry and returns a copy of it.
func (h *History) Redo() (Snapshot, bool) {
	if !h.CanRedo() {
		return Snapshot{}, false
	}
	h.cursor++
	return h.entries[h.cursor].clone(), true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// RemapIDs rewrites ids inside every stored snapshot. Used after a save
// assigns persisted ids to items that entered history under temporary ones,
// so an undo can never resurrect an id the server has already replaced.
func (h *History) RemapIDs(elementIDs, rackIDs map[string]string) {
	for i := range h.entries {
		snap := &h.entries[i]
		for j := range snap.Elements {
			if id, ok := elementIDs[snap.Elements[j].ID]; ok {
				snap.Elements[j].ID = id
			}
		}
		for j := range snap.Racks {
			if id, ok := rackIDs[snap.Racks[j].ID]; ok {
				snap.Racks[j].ID = id
			}
		}
	}
}

func snapshotOf(elements []floorplan.Element, racks []floorplan.Rack) Snapshot {
	return Snapshot{
		Elements: floorplan.CloneElements(elements),
		Racks:    floorplan.CloneRacks(racks),
	}
}

func (s Snapshot) clone() Snapshot {
	return snapshotOf(s.Elements, s.Racks)
}
