package main

import "math"

// Handle identifies a corner resize handle.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleNE
	HandleSW
	HandleSE
)

var handleOrder = [...]Handle{HandleNW, HandleNE, HandleSW, HandleSE}

func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "nw"
	case HandleNE:
		return "ne"
	case HandleSW:
		return "sw"
	case HandleSE:
		return "se"
	}
	return ""
}

// Cursor is the pointer shape a frontend should show over the handle.
func (h Handle) Cursor() string {
	switch h {
	case HandleNW, HandleSE:
		return "nwse-resize"
	case HandleNE, HandleSW:
		return "nesw-resize"
	}
	return ""
}

// movesLeft and movesTop report which edges the handle drags.
func (h Handle) movesLeft() bool { return h == HandleNW || h == HandleSW }
func (h Handle) movesTop() bool  { return h == HandleNW || h == HandleNE }

// handlePosition returns the canvas position of a handle on bounds b, which
// sits pad units outside the corner.
func handlePosition(b Rect, h Handle, pad float64) Point {
	x := b.Right() + pad
	if h.movesLeft() {
		x = b.X - pad
	}
	y := b.Bottom() + pad
	if h.movesTop() {
		y = b.Y - pad
	}
	return Point{x, y}
}

// HandlePositions returns the four handle centres of obj at the given scale.
func (c *Canvas) HandlePositions(obj *Object, scale float64) map[Handle]Point {
	b := c.BoundsOf(obj)
	out := make(map[Handle]Point, len(handleOrder))
	for _, h := range handleOrder {
		out[h] = handlePosition(b, h, handlePadding/scale)
	}
	return out
}

// findResizeHandle returns the selected resizable object and handle under p.
func (e *Editor) findResizeHandle(p Point) (*Object, Handle) {
	pad := handlePadding / e.view.Scale
	radius := handleHitRadius / e.view.Scale
	for _, obj := range e.selection {
		if !isResizable(obj) {
			continue
		}
		b := e.canvas.BoundsOf(obj)
		for _, h := range handleOrder {
			pos := handlePosition(b, h, pad)
			if math.Abs(p.X-pos.X) < radius && math.Abs(p.Y-pos.Y) < radius {
				return obj, h
			}
		}
	}
	return nil, HandleNone
}

// CursorHint returns the cursor for the pointer at a screen position.
func (e *Editor) CursorHint(screen Point) string {
	switch g := e.gesture.(type) {
	case *panGesture:
		return "grabbing"
	case *resizeGesture:
		return g.handle.Cursor()
	case nil:
	default:
		return "crosshair"
	}
	if e.tool == ToolSelect {
		if obj, h := e.findResizeHandle(e.view.ScreenToCanvas(screen)); obj != nil {
			return h.Cursor()
		}
	}
	if e.tool == ToolPan {
		return "grab"
	}
	return "crosshair"
}

// resizeGesture drags one handle of one object. The starting geometry is
// kept so every move is computed from it, not from the previous frame.
type resizeGesture struct {
	obj    *Object
	handle Handle
	start  Point
	bounds Rect
	origin Shape
	moved  bool
}

func newResizeGesture(e *Editor, obj *Object, h Handle, p Point) *resizeGesture {
	return &resizeGesture{
		obj:    obj,
		handle: h,
		start:  p,
		bounds: e.canvas.BoundsOf(obj),
		origin: obj.Shape.clone(),
	}
}

func (g *resizeGesture) move(e *Editor, screen Point) {
	p := e.view.ScreenToCanvas(screen)
	dx, dy := p.X-g.start.X, p.Y-g.start.Y
	if dx != 0 || dy != 0 {
		g.moved = true
	}
	g.obj.Shape = resizeShape(g.origin, g.bounds, g.handle, dx, dy)
	if s, ok := g.obj.Shape.(*TextShape); ok {
		e.fontSize = s.FontSize
	}
}

func (g *resizeGesture) release(e *Editor, screen Point) {
	if g.moved {
		e.commit()
	}
}

// resizeShape applies a handle drag of (dx, dy) to a copy of origin, whose
// bounding box at the start of the drag was b.
func resizeShape(origin Shape, b Rect, h Handle, dx, dy float64) Shape {
	out := origin.clone()
	switch s := out.(type) {
	case *RectShape:
		s.X, s.Y, s.Width, s.Height = resizeBox(Rect{s.X, s.Y, b.Width, b.Height}, h, dx, dy)
	case *ImageShape:
		s.X, s.Y, s.Width, s.Height = resizeBox(Rect{s.X, s.Y, b.Width, b.Height}, h, dx, dy)
	case *EllipseShape:
		// radii change by half the box change and the centre stays put
		if h.movesLeft() {
			dx = -dx
		}
		if h.movesTop() {
			dy = -dy
		}
		s.RadiusX = math.Max(minEllipseRadius, b.Width/2+dx/2)
		s.RadiusY = math.Max(minEllipseRadius, b.Height/2+dy/2)
	case *TextShape:
		s.FontSize = resizeFont(s.FontSize, b, h, dx, dy)
	}
	return out
}

// resizeBox keeps the edges opposite the handle fixed and floors both sides
// at minResizeSize.
func resizeBox(r Rect, h Handle, dx, dy float64) (x, y, w, hgt float64) {
	x, y = r.X, r.Y
	if h.movesLeft() {
		w = math.Max(minResizeSize, r.Width-dx)
		x = r.X + (r.Width - w)
	} else {
		w = math.Max(minResizeSize, r.Width+dx)
	}
	if h.movesTop() {
		hgt = math.Max(minResizeSize, r.Height-dy)
		y = r.Y + (r.Height - hgt)
	} else {
		hgt = math.Max(minResizeSize, r.Height+dy)
	}
	return x, y, w, hgt
}

// resizeFont scales a font size uniformly by the larger of the two axis
// ratios, rounded and clamped to [minFontSize, maxFontSize].
func resizeFont(size float64, b Rect, h Handle, dx, dy float64) float64 {
	if h.movesLeft() {
		dx = -dx
	}
	if h.movesTop() {
		dy = -dy
	}
	sx, sy := 1.0, 1.0
	if b.Width > 0 {
		sx = 1 + dx/b.Width
	}
	if b.Height > 0 {
		sy = 1 + dy/b.Height
	}
	return clamp(math.Round(size*math.Max(sx, sy)), minFontSize, maxFontSize)
}
