package main

import (
	"image"
	"testing"
)

// recorder is a Renderer that remembers what it was asked to draw.
type recorder struct {
	polylines  [][]Point
	rectangles []Rect
	ellipses   int
	images     int
	texts      [][]string
	paints     []Paint
}

func (r *recorder) Polyline(pts []Point, p Paint) {
	r.polylines = append(r.polylines, pts)
	r.paints = append(r.paints, p)
}

func (r *recorder) Rectangle(rect Rect, p Paint) {
	r.rectangles = append(r.rectangles, rect)
	r.paints = append(r.paints, p)
}

func (r *recorder) Ellipse(center Point, rx, ry float64, p Paint) {
	r.ellipses++
	r.paints = append(r.paints, p)
}

func (r *recorder) Image(img image.Image, rect Rect, p Paint) {
	r.images++
	r.paints = append(r.paints, p)
}

func (r *recorder) Text(lines []string, at Point, size float64, p Paint) {
	r.texts = append(r.texts, lines)
	r.paints = append(r.paints, p)
}

func TestRenderSceneSkipsOrphansAndPendingImages(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"version":"1.0","objects":[
		{"id":1,"type":"rect","x":0,"y":0,"width":10,"height":10,"opacity":50},
		{"id":2,"type":"connector","fromId":1,"toId":5},
		{"id":3,"type":"image","x":0,"y":0,"width":10,"height":10,"src":"data:image/png;base64,AAAA"},
		{"id":4,"type":"path","points":[{"x":1,"y":1}]}
	]}`))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	e := newTestEditor()
	e.Load(doc)

	r := &recorder{}
	e.RenderScene(r)
	if len(r.rectangles) != 1 || len(r.polylines) != 0 || r.images != 0 {
		t.Errorf("drew %d rects, %d polylines, %d images", len(r.rectangles), len(r.polylines), r.images)
	}
	if r.paints[0].Alpha != 0.5 {
		t.Errorf("alpha = %v, want 0.5", r.paints[0].Alpha)
	}
}

func TestRenderConnectorWithArrow(t *testing.T) {
	e := newTestEditor()
	a := e.AddObject(&RectShape{Width: 100, Height: 100})
	b := e.AddObject(&RectShape{X: 300, Width: 100, Height: 100})
	e.AddObject(&ConnectorShape{FromID: a.ID, ToID: b.ID})

	r := &recorder{}
	e.RenderScene(r)
	if len(r.polylines) != 2 {
		t.Fatalf("drew %d polylines, want line and head", len(r.polylines))
	}
	if line := r.polylines[0]; line[0] != (Point{100, 50}) || line[1] != (Point{300, 50}) {
		t.Errorf("connector line = %v", line)
	}
	if head := r.polylines[1]; len(head) != 3 || head[1] != (Point{300, 50}) {
		t.Errorf("arrow head = %v", head)
	}
}

func TestRenderSelectionHandles(t *testing.T) {
	e := newTestEditor()
	rect := e.AddObject(&RectShape{Width: 100, Height: 100})
	line := e.AddObject(&LineShape{X: 200, Y: 0, X2: 300, Y2: 100})

	e.selection = []*Object{rect}
	r := &recorder{}
	e.Render(r)
	// the rect itself, its outline and four handles
	if len(r.rectangles) != 6 {
		t.Errorf("selected rect: %d rectangles, want 6", len(r.rectangles))
	}

	e.selection = []*Object{line}
	r = &recorder{}
	e.Render(r)
	// the unselected rect and the outline around the line
	if len(r.rectangles) != 2 {
		t.Errorf("selected line: %d rectangles, want 2", len(r.rectangles))
	}
}

func TestRenderReplacesEditedText(t *testing.T) {
	e := newTestEditor()
	obj := e.AddObject(&TextShape{X: 10, Y: 10, Text: "old", FontSize: 20})
	e.BeginTextEdit(obj)
	e.Editing().Value = "new\ntext"

	r := &recorder{}
	e.Render(r)
	if len(r.texts) != 1 {
		t.Fatalf("drew %d texts, want 1", len(r.texts))
	}
	if got := r.texts[0]; len(got) != 2 || got[0] != "new" {
		t.Errorf("text = %v", got)
	}
	if len(r.rectangles) != 1 {
		t.Errorf("text box outline missing")
	}
}

func TestRenderDrawPreviewIsDashed(t *testing.T) {
	e := newTestEditor()
	e.SetTool(ToolLine)
	e.PointerDown(Point{0, 0}, ButtonLeft, false)
	e.PointerMove(Point{50, 50})

	r := &recorder{}
	e.Render(r)
	if len(r.polylines) != 1 || !r.paints[0].Dashed {
		t.Errorf("preview not drawn dashed: %+v", r.paints)
	}
}

func TestRenderConnectTargetPaddingFollowsZoom(t *testing.T) {
	e := newTestEditor()
	e.AddObject(&RectShape{Width: 100, Height: 100})
	e.AddObject(&RectShape{X: 300, Width: 100, Height: 100})
	e.View().Scale = 2
	e.SetTool(ToolConnect)
	e.PointerDown(Point{100, 100}, ButtonLeft, false)
	e.PointerMove(Point{700, 100})

	r := &recorder{}
	e.Render(r)
	pad := handlePadding / 2
	want := Rect{300 - pad, -pad, 100 + 2*pad, 100 + 2*pad}
	if got := r.rectangles[len(r.rectangles)-1]; got != want {
		t.Errorf("target highlight = %v, want %v", got, want)
	}
}
