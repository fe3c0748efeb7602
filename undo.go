package main

import (
	"encoding/json"
	"fmt"
)

// History is a bounded linear undo stack of serialized scene snapshots.
// index points at the entry that matches the current scene.
type History struct {
	entries [][]byte
	index   int
	limit   int
}

func NewHistory() *History {
	return &History{index: -1, limit: maxHistory}
}

// Snapshot records objects as the newest state. Anything past the cursor is
// discarded; when the stack is full the oldest entry is evicted.
func (h *History) Snapshot(objects []*Object) error {
	data, err := json.Marshal(encodeObjects(objects))
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	h.entries = append(h.entries[:h.index+1], data)
	h.index++
	if len(h.entries) > h.limit {
		h.entries = h.entries[1:]
		h.index--
	}
	return nil
}

func (h *History) CanUndo() bool { return h.index > 0 }

func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }

// Len returns the number of retained snapshots.
func (h *History) Len() int { return len(h.entries) }

// Undo steps back one entry and returns the scene stored there. ok is false
// when already at the oldest retained entry.
func (h *History) Undo() ([]*Object, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.index--
	return h.current()
}

func (h *History) Redo() ([]*Object, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.index++
	return h.current()
}

func (h *History) current() ([]*Object, bool) {
	var wire []jsonObject
	if err := json.Unmarshal(h.entries[h.index], &wire); err != nil {
		return nil, false
	}
	objs, _ := decodeObjects(wire)
	return objs, true
}
