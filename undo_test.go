package main

import "testing"

// TestHistoryLimit tests the 50-level limit
func TestHistoryLimit(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 60; i++ {
		objs := []*Object{{ID: i + 1, Shape: &RectShape{Width: float64(i)}}}
		if err := h.Snapshot(objs); err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
	}

	if h.Len() != maxHistory {
		t.Fatalf("Len = %d, want %d", h.Len(), maxHistory)
	}

	undos := 0
	var last []*Object
	for {
		objs, ok := h.Undo()
		if !ok {
			break
		}
		last = objs
		undos++
	}
	if undos != maxHistory-1 {
		t.Errorf("undid %d times, want %d", undos, maxHistory-1)
	}
	// oldest retained entry is snapshot 11 of 60
	if got := last[0].Shape.(*RectShape).Width; got != 10 {
		t.Errorf("oldest entry width = %v, want 10", got)
	}
}

// TestHistoryTruncatesRedo tests that a new snapshot after undo drops redo
func TestHistoryTruncatesRedo(t *testing.T) {
	h := NewHistory()
	h.Snapshot(nil)
	h.Snapshot([]*Object{{ID: 1, Shape: &RectShape{}}})
	h.Snapshot([]*Object{{ID: 1, Shape: &RectShape{}}, {ID: 2, Shape: &RectShape{}}})

	h.Undo()
	if !h.CanRedo() {
		t.Fatal("redo should be available after undo")
	}
	h.Snapshot([]*Object{{ID: 3, Shape: &LineShape{}}})
	if h.CanRedo() {
		t.Error("redo should be gone after a new snapshot")
	}
	if h.Len() != 3 {
		t.Errorf("Len = %d, want 3", h.Len())
	}
}

// TestUndoRedoCycle tests undo followed by redo restores state
func TestUndoRedoCycle(t *testing.T) {
	e := newTestEditor()
	if e.Undo() {
		t.Fatal("fresh editor should have nothing to undo")
	}

	rect := e.AddObject(&RectShape{X: 10, Y: 20, Width: 30, Height: 40})
	e.AddObject(&ConnectorShape{FromID: rect.ID, ToID: rect.ID})

	if !e.Undo() {
		t.Fatal("Undo failed")
	}
	if e.Canvas().Len() != 1 {
		t.Fatalf("Len after undo = %d, want 1", e.Canvas().Len())
	}
	if !e.Undo() || e.Canvas().Len() != 0 {
		t.Fatalf("second undo left %d objects", e.Canvas().Len())
	}
	if !e.Redo() || !e.Redo() {
		t.Fatal("Redo failed")
	}
	if e.Redo() {
		t.Error("redo past the newest entry should fail")
	}

	restored := e.Canvas().Find(rect.ID)
	if restored == nil {
		t.Fatalf("object %d missing after redo", rect.ID)
	}
	if restored == rect {
		t.Error("restored object should be a fresh copy")
	}
	s := restored.Shape.(*RectShape)
	if s.X != 10 || s.Y != 20 || s.Width != 30 || s.Height != 40 {
		t.Errorf("restored shape = %+v", s)
	}
	if e.Canvas().Len() != 2 {
		t.Errorf("Len after redo = %d, want 2", e.Canvas().Len())
	}
}

// TestUndoRedoKeepsStyle tests that every kind keeps its style across history
func TestUndoRedoKeepsStyle(t *testing.T) {
	e := newTestEditor()
	e.SetProperty(PropStrokeWidth, 7.0)
	e.SetProperty(PropStrokeColor, "#ff0000")
	e.SetProperty(PropOpacity, 40.0)
	want := Style{StrokeColor: "#ff0000", StrokeWidth: 7, Opacity: 40}

	text := e.AddObject(&TextShape{X: 10, Y: 10, Text: "hi", FontSize: 24})
	img := e.AddObject(&ImageShape{Width: 10, Height: 10, Src: "data:image/png;base64,AAAA"})
	e.AddObject(&RectShape{Width: 10, Height: 10})

	if !e.Undo() || !e.Redo() {
		t.Fatal("undo/redo failed")
	}
	for _, id := range []int{text.ID, img.ID} {
		obj := e.Canvas().Find(id)
		if obj == nil {
			t.Fatalf("object %d missing after redo", id)
		}
		if obj.Style != want {
			t.Errorf("%s style = %+v, want %+v", obj.Kind(), obj.Style, want)
		}
	}
}

func TestClearAllIsOneStep(t *testing.T) {
	e := newTestEditor()
	if e.ClearAll() {
		t.Error("ClearAll on an empty scene should report false")
	}
	e.AddObject(&RectShape{Width: 10, Height: 10})
	e.AddObject(&RectShape{Width: 10, Height: 10})
	e.SelectAll()

	if !e.ClearAll() {
		t.Fatal("ClearAll failed")
	}
	if e.Canvas().Len() != 0 || len(e.Selection()) != 0 {
		t.Fatal("scene or selection not cleared")
	}
	e.Undo()
	if e.Canvas().Len() != 2 {
		t.Errorf("Len after undo = %d, want 2", e.Canvas().Len())
	}
}

func TestUndoClearsTransientState(t *testing.T) {
	e := newTestEditor()
	obj := e.AddObject(&RectShape{Width: 10, Height: 10})
	e.selection = []*Object{obj}
	e.SetTool(ToolRect)
	e.PointerDown(Point{100, 100}, ButtonLeft, false)

	e.Undo()
	if e.Busy() {
		t.Error("gesture survived undo")
	}
	if len(e.Selection()) != 0 {
		t.Error("selection survived undo")
	}
}
