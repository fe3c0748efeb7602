package main

import "image"

const (
	selectionColor = "#00ffff"
	handleColor    = "#00ff9d"
	previewAlpha   = 0.6
)

// Paint is the style of one draw call. Widths are in canvas units.
type Paint struct {
	Stroke      string
	Fill        string
	FillEnabled bool
	Width       float64
	Alpha       float64 // 0-1
	Dashed      bool
}

// Renderer is a drawing surface that takes canvas-space primitives and
// applies the view transform itself.
type Renderer interface {
	Polyline(pts []Point, p Paint)
	Rectangle(r Rect, p Paint)
	Ellipse(center Point, rx, ry float64, p Paint)
	Image(img image.Image, r Rect, p Paint)
	Text(lines []string, at Point, size float64, p Paint)
}

func paintFor(obj *Object) Paint {
	return Paint{
		Stroke: obj.Style.StrokeColor,
		Width:  obj.Style.StrokeWidth,
		Alpha:  obj.Style.Opacity / 100,
	}
}

// RenderScene draws the objects alone, in order.
func (e *Editor) RenderScene(r Renderer) {
	for _, obj := range e.canvas.Objects() {
		e.drawObject(r, obj)
	}
}

// Render draws the scene in order followed by the transient overlays: the
// shape being drawn, an open text box, selection outlines and the connector
// being created. A text object being edited is replaced by its text box.
func (e *Editor) Render(r Renderer) {
	var editing *Object
	if e.text != nil {
		editing = e.text.Target
	}

	for _, obj := range e.canvas.Objects() {
		if obj == editing {
			continue
		}
		e.drawObject(r, obj)
	}

	if shape := e.DrawPreview(); shape != nil {
		p := Paint{Stroke: e.style.StrokeColor, Width: e.style.StrokeWidth, Alpha: previewAlpha, Dashed: true}
		e.drawShape(r, shape, p)
	}

	if e.text != nil {
		size := e.fontSize
		color := e.style.StrokeColor
		if editing != nil {
			size = editing.Shape.(*TextShape).FontSize
			color = editing.Style.StrokeColor
		}
		ts := &TextShape{X: e.text.At.X, Y: e.text.At.Y, Text: e.text.Value, FontSize: size}
		r.Text(ts.Lines(), e.text.At, size, Paint{Stroke: color, Alpha: 1})
		r.Rectangle(ts.bounds().Inflate(handlePadding/e.view.Scale), e.overlayPaint(selectionColor))
	}

	for _, obj := range e.selection {
		if obj == editing {
			continue
		}
		e.drawSelection(r, obj)
	}

	if cp, ok := e.ConnectorPreview(); ok {
		if cp.Target != nil {
			r.Rectangle(e.canvas.BoundsOf(cp.Target).Inflate(handlePadding/e.view.Scale), e.overlayPaint(handleColor))
		}
		p := Paint{Stroke: e.style.StrokeColor, Width: e.style.StrokeWidth, Alpha: previewAlpha, Dashed: true}
		drawArrow(r, cp.From, cp.To, p)
	}
}

func (e *Editor) overlayPaint(color string) Paint {
	return Paint{Stroke: color, Width: 2 / e.view.Scale, Alpha: 1, Dashed: true}
}

func (e *Editor) drawObject(r Renderer, obj *Object) {
	if conn, ok := obj.Shape.(*ConnectorShape); ok {
		anchors, ok := e.canvas.connectorAnchors(conn, 0)
		if !ok {
			return
		}
		drawArrow(r, anchors.From, anchors.To, paintFor(obj))
		return
	}
	e.drawShape(r, obj.Shape, paintFor(obj))
}

func (e *Editor) drawShape(r Renderer, shape Shape, p Paint) {
	switch s := shape.(type) {
	case *PathShape:
		if len(s.Points) < 2 {
			return
		}
		r.Polyline(s.Points, p)
	case *LineShape:
		r.Polyline([]Point{{s.X, s.Y}, {s.X2, s.Y2}}, p)
	case *RectShape:
		p.Fill, p.FillEnabled = s.FillColor, s.FillEnabled
		r.Rectangle(Rect{s.X, s.Y, s.Width, s.Height}, p)
	case *EllipseShape:
		p.Fill, p.FillEnabled = s.FillColor, s.FillEnabled
		r.Ellipse(Point{s.X, s.Y}, s.RadiusX, s.RadiusY, p)
	case *TextShape:
		r.Text(s.Lines(), Point{s.X, s.Y}, s.FontSize, p)
	case *ImageShape:
		if s.Pending() {
			return
		}
		r.Image(s.decoded, Rect{s.X, s.Y, s.Width, s.Height}, p)
	}
}

// drawArrow draws a straight line with an arrowhead at to. The head is
// arrowHeadLength canvas units long, so it scales with zoom.
func drawArrow(r Renderer, from, to Point, p Paint) {
	r.Polyline([]Point{from, to}, p)
	left, right := ArrowHead(from, to, arrowHeadLength)
	p.Dashed = false
	r.Polyline([]Point{left, to, right}, p)
}

func (e *Editor) drawSelection(r Renderer, obj *Object) {
	b := e.canvas.BoundsOf(obj)
	r.Rectangle(b.Inflate(handlePadding/e.view.Scale), e.overlayPaint(selectionColor))
	if !isResizable(obj) {
		return
	}
	size := handleDrawSize / e.view.Scale
	for _, pos := range e.canvas.HandlePositions(obj, e.view.Scale) {
		r.Rectangle(
			Rect{pos.X - size/2, pos.Y - size/2, size, size},
			Paint{Fill: handleColor, FillEnabled: true, Alpha: 1},
		)
	}
}
