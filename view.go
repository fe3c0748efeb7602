package main

// View maps between screen pixels and canvas units:
// canvas = (screen - offset) / scale.
type View struct {
	Scale   float64
	OffsetX float64
	OffsetY float64

	// viewport size in screen pixels
	Width  float64
	Height float64
}

func NewView(width, height float64) View {
	return View{Scale: 1, Width: width, Height: height}
}

func (v View) ScreenToCanvas(p Point) Point {
	return Point{(p.X - v.OffsetX) / v.Scale, (p.Y - v.OffsetY) / v.Scale}
}

func (v View) CanvasToScreen(p Point) Point {
	return Point{p.X*v.Scale + v.OffsetX, p.Y*v.Scale + v.OffsetY}
}

func (v *View) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

// ZoomAt multiplies the scale by factor while keeping the canvas point under
// the screen anchor fixed. The scale is clamped to [minScale, maxScale].
func (v *View) ZoomAt(anchor Point, factor float64) {
	newScale := clamp(v.Scale*factor, minScale, maxScale)
	ratio := newScale / v.Scale
	v.OffsetX = anchor.X - (anchor.X-v.OffsetX)*ratio
	v.OffsetY = anchor.Y - (anchor.Y-v.OffsetY)*ratio
	v.Scale = newScale
}

// Zoom zooms about the centre of the viewport.
func (v *View) Zoom(factor float64) {
	v.ZoomAt(Point{v.Width / 2, v.Height / 2}, factor)
}

func (v *View) Reset() {
	v.Scale = 1
	v.OffsetX = 0
	v.OffsetY = 0
}

func (v *View) Resize(width, height float64) {
	v.Width = width
	v.Height = height
}

// CenterOn pans so the centre of r sits in the middle of the viewport.
func (v *View) CenterOn(r Rect) {
	c := r.Center()
	v.OffsetX = v.Width/2 - c.X*v.Scale
	v.OffsetY = v.Height/2 - c.Y*v.Scale
}

// VisibleRect returns the part of the canvas currently on screen.
func (v View) VisibleRect() Rect {
	tl := v.ScreenToCanvas(Point{0, 0})
	return Rect{tl.X, tl.Y, v.Width / v.Scale, v.Height / v.Scale}
}

// Percent is the zoom level as shown in the status line.
func (v View) Percent() int {
	return int(v.Scale*100 + 0.5)
}
