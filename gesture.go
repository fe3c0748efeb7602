package main

import "math"

// gesture is the in-progress pointer interaction. A nil gesture means idle.
// Implementations carry their own transient state so objects never hold
// any of it.
type gesture interface {
	move(e *Editor, screen Point)
	release(e *Editor, screen Point)
}

// dragGesture moves every selected object by the pointer delta since press.
type dragGesture struct {
	start   Point
	origins map[*Object]Shape
	moved   bool
}

type panGesture struct {
	last Point
}

// drawGesture builds a path, line, rect or ellipse.
type drawGesture struct {
	tool    Tool
	start   Point
	current Point
	points  []Point
}

// connectGesture runs from press on a source object to release on a
// target. target is the valid candidate currently under the pointer.
type connectGesture struct {
	source  *Object
	current Point
	target  *Object
}

// PointerDown handles a button press at a screen position.
func (e *Editor) PointerDown(screen Point, button Button, shift bool) {
	if e.text != nil {
		e.CommitText()
		if e.tool != ToolText {
			return
		}
	}

	e.pointer = screen
	p := e.view.ScreenToCanvas(screen)

	switch button {
	case ButtonMiddle:
		e.gesture = &panGesture{last: screen}
		return
	case ButtonRight:
		return
	}

	if e.tool != ToolSelect && e.tool != ToolPan {
		if obj := e.hit(p); obj != nil && obj.Kind() == KindImage {
			e.tool = ToolSelect
			e.selectDown(p, shift)
			return
		}
	}

	switch e.tool {
	case ToolSelect:
		e.selectDown(p, shift)
	case ToolPan:
		e.gesture = &panGesture{last: screen}
	case ToolDraw:
		e.gesture = &drawGesture{tool: ToolDraw, start: p, current: p, points: []Point{p}}
	case ToolLine, ToolRect, ToolEllipse:
		e.gesture = &drawGesture{tool: e.tool, start: p, current: p}
	case ToolText:
		e.BeginText(p)
	case ToolConnect:
		if source := e.hit(p); source != nil && source.Kind() != KindConnector {
			e.gesture = &connectGesture{source: source, current: p}
		}
	}
}

func (e *Editor) PointerMove(screen Point) {
	e.pointer = screen
	if e.gesture != nil {
		e.gesture.move(e, screen)
	}
}

// PointerUp ends the current gesture, committing what it produced.
func (e *Editor) PointerUp(screen Point) {
	e.pointer = screen
	g := e.gesture
	if g == nil {
		return
	}
	e.gesture = nil
	g.release(e, screen)
}

// PointerLeave treats the pointer leaving the canvas as a release at the
// last known position.
func (e *Editor) PointerLeave() {
	e.PointerUp(e.pointer)
}

// Wheel zooms about the pointer, in when up is true.
func (e *Editor) Wheel(screen Point, up bool) {
	factor := 0.9
	if up {
		factor = 1.1
	}
	e.view.ZoomAt(screen, factor)
}

// Busy reports whether a gesture is in progress.
func (e *Editor) Busy() bool {
	return e.gesture != nil
}

func (e *Editor) hit(p Point) *Object {
	return e.canvas.FindTopmostAt(p, e.view.Scale)
}

func (e *Editor) selectDown(p Point, shift bool) {
	if obj, handle := e.findResizeHandle(p); obj != nil {
		e.gesture = newResizeGesture(e, obj, handle, p)
		return
	}

	obj := e.hit(p)
	if obj == nil {
		if !shift {
			e.Deselect()
		}
		return
	}

	if !shift && !e.IsSelected(obj) {
		e.Deselect()
	}
	e.selectObject(obj)

	g := &dragGesture{start: p, origins: make(map[*Object]Shape, len(e.selection))}
	for _, sel := range e.selection {
		g.origins[sel] = sel.Shape.clone()
	}
	e.gesture = g
}

func (g *dragGesture) move(e *Editor, screen Point) {
	p := e.view.ScreenToCanvas(screen)
	dx, dy := p.X-g.start.X, p.Y-g.start.Y
	for obj, origin := range g.origins {
		moved := origin.clone()
		moved.translate(dx, dy)
		obj.Shape = moved
	}
	if dx != 0 || dy != 0 {
		g.moved = true
	}
}

func (g *dragGesture) release(e *Editor, screen Point) {
	if g.moved {
		e.commit()
	}
}

func (g *panGesture) move(e *Editor, screen Point) {
	e.view.Pan(screen.X-g.last.X, screen.Y-g.last.Y)
	g.last = screen
}

func (g *panGesture) release(e *Editor, screen Point) {}

func (g *drawGesture) move(e *Editor, screen Point) {
	p := e.view.ScreenToCanvas(screen)
	g.current = p
	if g.tool == ToolDraw {
		g.points = append(g.points, p)
	}
}

func (g *drawGesture) release(e *Editor, screen Point) {
	g.current = e.view.ScreenToCanvas(screen)
	if shape := g.shape(e); shape != nil {
		e.AddObject(shape)
	}
}

// shape returns what the gesture would commit right now, or nil when the
// drag is still too small to produce an object.
func (g *drawGesture) shape(e *Editor) Shape {
	w := g.current.X - g.start.X
	h := g.current.Y - g.start.Y

	switch g.tool {
	case ToolDraw:
		if len(g.points) > 1 {
			return &PathShape{Points: append([]Point(nil), g.points...)}
		}
	case ToolLine:
		if math.Abs(w) > drawThreshold || math.Abs(h) > drawThreshold {
			return &LineShape{X: g.start.X, Y: g.start.Y, X2: g.current.X, Y2: g.current.Y}
		}
	case ToolRect:
		if math.Abs(w) > drawThreshold && math.Abs(h) > drawThreshold {
			return &RectShape{
				X:           math.Min(g.start.X, g.current.X),
				Y:           math.Min(g.start.Y, g.current.Y),
				Width:       math.Abs(w),
				Height:      math.Abs(h),
				FillColor:   e.fillColor,
				FillEnabled: e.fillEnabled,
			}
		}
	case ToolEllipse:
		if math.Abs(w) > drawThreshold && math.Abs(h) > drawThreshold {
			return &EllipseShape{
				X:           g.start.X + w/2,
				Y:           g.start.Y + h/2,
				RadiusX:     math.Abs(w / 2),
				RadiusY:     math.Abs(h / 2),
				FillColor:   e.fillColor,
				FillEnabled: e.fillEnabled,
			}
		}
	}
	return nil
}

// DrawPreview returns the shape the current draw gesture would produce,
// for rendering only. Freehand strokes are previewed from the first point.
func (e *Editor) DrawPreview() Shape {
	g, ok := e.gesture.(*drawGesture)
	if !ok {
		return nil
	}
	if g.tool == ToolDraw {
		return &PathShape{Points: g.points}
	}
	if g.tool == ToolLine {
		return &LineShape{X: g.start.X, Y: g.start.Y, X2: g.current.X, Y2: g.current.Y}
	}
	return g.shape(e)
}

func (g *connectGesture) move(e *Editor, screen Point) {
	p := e.view.ScreenToCanvas(screen)
	g.current = p
	g.target = nil
	if t := e.hit(p); canConnect(g.source, t) {
		g.target = t
	}
}

func (g *connectGesture) release(e *Editor, screen Point) {
	if e.canvas.Find(g.source.ID) != g.source {
		return
	}
	target := e.hit(e.view.ScreenToCanvas(screen))
	if !canConnect(g.source, target) {
		return
	}
	e.AddObject(&ConnectorShape{FromID: g.source.ID, ToID: target.ID})
}

// ConnectorPreview describes the live connector while the connect gesture
// is active. With a valid target under the pointer both ends snap to their
// anchors; otherwise the line runs from the source anchor to the pointer.
type ConnectorPreview struct {
	From   Point
	To     Point
	Target *Object
}

func (e *Editor) ConnectorPreview() (ConnectorPreview, bool) {
	g, ok := e.gesture.(*connectGesture)
	if !ok {
		return ConnectorPreview{}, false
	}
	from := e.canvas.BoundsOf(g.source)
	if g.target != nil {
		a := ComputeAnchors(from, e.canvas.BoundsOf(g.target))
		return ConnectorPreview{From: a.From, To: a.To, Target: g.target}, true
	}
	a := ComputeAnchors(from, Rect{X: g.current.X, Y: g.current.Y})
	return ConnectorPreview{From: a.From, To: g.current}, true
}
