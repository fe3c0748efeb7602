package main

import "testing"

func TestLayersTopmostFirst(t *testing.T) {
	e := newTestEditor()
	rect := e.AddObject(&RectShape{X: 10, Y: 20, Width: 100, Height: 50})
	text := e.AddObject(&TextShape{X: 0, Y: 0, Text: "abcdefghijklmnopqrstuvwxyz", FontSize: 10})
	conn := e.AddObject(&ConnectorShape{FromID: rect.ID, ToID: text.ID})
	far := e.AddObject(&RectShape{X: 5000, Y: 5000, Width: 10, Height: 10})
	e.selection = []*Object{text}

	layers := e.Layers()
	if len(layers) != 4 {
		t.Fatalf("got %d layers", len(layers))
	}
	wantIDs := []int{far.ID, conn.ID, text.ID, rect.ID}
	for i, id := range wantIDs {
		if layers[i].ID != id {
			t.Errorf("layers[%d].ID = %d, want %d", i, layers[i].ID, id)
		}
	}

	tests := []struct {
		layer   Layer
		name    string
		details string
	}{
		{layers[3], "RECT 1", "X: 10, Y: 20 · 100 × 50"},
		{layers[2], "TEXT 2", `"abcdefghijklmnopqrst..." X: 0, Y: 0`},
		{layers[1], "CONNECTOR 3", "RECT 1 → TEXT 2"},
	}
	for _, tt := range tests {
		if tt.layer.Name != tt.name {
			t.Errorf("Name = %q, want %q", tt.layer.Name, tt.name)
		}
		if tt.layer.Details != tt.details {
			t.Errorf("%s details = %q, want %q", tt.name, tt.layer.Details, tt.details)
		}
	}

	if !layers[2].Selected || layers[3].Selected {
		t.Error("selection flags wrong")
	}
	if !layers[0].Offscreen || layers[3].Offscreen {
		t.Error("offscreen flags wrong")
	}
}

func TestLayerDetailsDeletedEndpoint(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"version":"1.0","objects":[
		{"id":1,"type":"rect","x":0,"y":0,"width":10,"height":10},
		{"id":2,"type":"connector","fromId":1,"toId":9}
	]}`))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	e := newTestEditor()
	e.Load(doc)

	layers := e.Layers()
	if layers[0].Details != "RECT 1 → deleted" {
		t.Errorf("Details = %q", layers[0].Details)
	}
}

func TestFocusLayer(t *testing.T) {
	e := newTestEditor()
	a := e.AddObject(&RectShape{X: 1000, Y: 1000, Width: 100, Height: 100})
	b := e.AddObject(&TextShape{X: 0, Y: 0, Text: "note", FontSize: 20})
	e.SelectAll()

	if !e.FocusLayer(a.ID) {
		t.Fatal("FocusLayer failed")
	}
	centre := e.View().ScreenToCanvas(Point{400, 300})
	if !almostEqual(centre.X, 1050) || !almostEqual(centre.Y, 1050) {
		t.Errorf("view centre = %v, want (1050, 1050)", centre)
	}
	if sel := e.Selection(); len(sel) != 1 || sel[0] != a {
		t.Errorf("selection = %v", sel)
	}

	e.FocusLayer(b.ID)
	if e.Editing() == nil || e.Editing().Target != b {
		t.Error("focusing text should open it for editing")
	}

	if !e.ShiftSelectLayer(a.ID) || len(e.Selection()) != 2 {
		t.Error("ShiftSelectLayer should add to the selection")
	}
	if e.FocusLayer(99) || e.ShiftSelectLayer(99) {
		t.Error("unknown ids should report false")
	}
}
