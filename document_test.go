package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseDocumentSkipsUnknownKinds(t *testing.T) {
	data := `{"version":"1.0","objects":[
		{"id":1,"type":"rect","x":0,"y":0,"width":10,"height":10},
		{"id":2,"type":"star","x":5},
		{"id":3,"type":"text","x":1,"y":2,"text":"hi"}
	]}`

	doc, err := ParseDocument([]byte(data))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if len(doc.Objects) != 2 {
		t.Fatalf("got %d objects, want 2", len(doc.Objects))
	}
	if len(doc.Skipped) != 1 || doc.Skipped[0] != "star" {
		t.Errorf("Skipped = %v, want [star]", doc.Skipped)
	}

	text := doc.Objects[1].Shape.(*TextShape)
	if text.FontSize != defaultFontSize {
		t.Errorf("FontSize = %v, want default %v", text.FontSize, defaultFontSize)
	}
	rect := doc.Objects[0]
	if rect.Style.StrokeColor != defaultStrokeColor || rect.Style.Opacity != defaultOpacity {
		t.Errorf("style defaults not applied: %+v", rect.Style)
	}
	if rect.Shape.(*RectShape).FillColor != defaultFillColor {
		t.Errorf("FillColor = %q", rect.Shape.(*RectShape).FillColor)
	}
}

func TestParseDocumentWithoutObjects(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"version":"1.0"}`))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if doc.Objects != nil {
		t.Errorf("Objects = %v, want nil", doc.Objects)
	}

	e := newTestEditor()
	e.AddObject(&RectShape{Width: 10, Height: 10})
	if e.Load(doc) {
		t.Error("Load of a document without objects should report false")
	}
	if e.Canvas().Len() != 1 {
		t.Error("scene changed")
	}
}

func TestParseDocumentError(t *testing.T) {
	_, err := ParseDocument([]byte(`{"objects": [`))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "parse document") {
		t.Errorf("error = %v", err)
	}
}

func TestEncodeDocumentShape(t *testing.T) {
	c := NewCanvas()
	a := c.Add(rectObject(1, 2, 3, 4))
	b := c.Add(&Object{
		Style: Style{StrokeColor: "#ffffff", StrokeWidth: 2, Opacity: 50},
		Shape: &TextShape{X: 5, Y: 6, Text: "line one\nline two", FontSize: 18},
	})
	c.Add(connectorObject(a.ID, b.ID))

	data, err := EncodeDocument(&Document{Objects: c.Objects()}, false)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}

	var raw struct {
		Version string           `json:"version"`
		Objects []map[string]any `json:"objects"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if raw.Version != documentVersion {
		t.Errorf("version = %q", raw.Version)
	}
	if len(raw.Objects) != 3 {
		t.Fatalf("got %d objects", len(raw.Objects))
	}
	if raw.Objects[0]["type"] != "rect" || raw.Objects[0]["fillEnabled"] != false {
		t.Errorf("rect = %v", raw.Objects[0])
	}
	if raw.Objects[1]["strokeWidth"] != float64(2) || raw.Objects[1]["strokeColor"] != "#ffffff" {
		t.Errorf("text style = %v", raw.Objects[1])
	}
	if _, ok := raw.Objects[1]["width"]; ok {
		t.Error("text objects should not carry width")
	}
	if raw.Objects[2]["fromId"] != float64(a.ID) || raw.Objects[2]["toId"] != float64(b.ID) {
		t.Errorf("connector = %v", raw.Objects[2])
	}

	doc, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	text := doc.Objects[1].Shape.(*TextShape)
	if text.Text != "line one\nline two" || text.FontSize != 18 {
		t.Errorf("text = %+v", text)
	}
	if doc.Objects[1].Style.Opacity != 50 {
		t.Errorf("opacity = %v", doc.Objects[1].Style.Opacity)
	}
}
