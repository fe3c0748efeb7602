package main

import (
	"image"
	"strings"
	"unicode/utf8"
)

type Kind string

const (
	KindPath      Kind = "path"
	KindLine      Kind = "line"
	KindRect      Kind = "rect"
	KindEllipse   Kind = "ellipse"
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindConnector Kind = "connector"
)

// Style holds the fields every object carries regardless of its kind.
type Style struct {
	StrokeColor string
	StrokeWidth float64
	Opacity     float64 // 0-100
}

// Object is one drawable item of the scene. Its geometry is one of the
// Shape variants below.
type Object struct {
	ID    int
	Style Style
	Shape Shape
}

func (o *Object) Kind() Kind {
	return o.Shape.Kind()
}

// clone returns a deep copy. Decoded image handles are shared, not copied.
func (o *Object) clone() *Object {
	c := *o
	c.Shape = o.Shape.clone()
	return &c
}

// Shape is the kind-specific geometry of an object.
type Shape interface {
	Kind() Kind
	clone() Shape
	// translate moves the shape by the given delta. Connectors have no
	// geometry of their own and ignore it.
	translate(dx, dy float64)
}

type PathShape struct {
	Points []Point
}

type LineShape struct {
	X, Y   float64
	X2, Y2 float64
}

type RectShape struct {
	X, Y          float64
	Width, Height float64
	FillColor     string
	FillEnabled   bool
}

// EllipseShape is centred on (X, Y).
type EllipseShape struct {
	X, Y             float64
	RadiusX, RadiusY float64
	FillColor        string
	FillEnabled      bool
}

// TextShape is anchored at its top-left corner. Lines are separated by \n.
type TextShape struct {
	X, Y     float64
	Text     string
	FontSize float64
}

// ImageShape keeps the encoded source as a data URL. decoded is filled in
// once the source has been decoded and is never persisted.
type ImageShape struct {
	X, Y          float64
	Width, Height float64
	Src           string

	decoded image.Image
}

type ConnectorShape struct {
	FromID int
	ToID   int
}

func (*PathShape) Kind() Kind      { return KindPath }
func (*LineShape) Kind() Kind      { return KindLine }
func (*RectShape) Kind() Kind      { return KindRect }
func (*EllipseShape) Kind() Kind   { return KindEllipse }
func (*TextShape) Kind() Kind      { return KindText }
func (*ImageShape) Kind() Kind     { return KindImage }
func (*ConnectorShape) Kind() Kind { return KindConnector }

func (s *PathShape) clone() Shape {
	c := *s
	c.Points = append([]Point(nil), s.Points...)
	return &c
}

func (s *LineShape) clone() Shape      { c := *s; return &c }
func (s *RectShape) clone() Shape      { c := *s; return &c }
func (s *EllipseShape) clone() Shape   { c := *s; return &c }
func (s *TextShape) clone() Shape      { c := *s; return &c }
func (s *ImageShape) clone() Shape     { c := *s; return &c }
func (s *ConnectorShape) clone() Shape { c := *s; return &c }

func (s *PathShape) translate(dx, dy float64) {
	for i := range s.Points {
		s.Points[i].X += dx
		s.Points[i].Y += dy
	}
}

func (s *LineShape) translate(dx, dy float64) {
	s.X += dx
	s.Y += dy
	s.X2 += dx
	s.Y2 += dy
}

func (s *RectShape) translate(dx, dy float64)    { s.X += dx; s.Y += dy }
func (s *EllipseShape) translate(dx, dy float64) { s.X += dx; s.Y += dy }
func (s *TextShape) translate(dx, dy float64)    { s.X += dx; s.Y += dy }
func (s *ImageShape) translate(dx, dy float64)   { s.X += dx; s.Y += dy }
func (*ConnectorShape) translate(dx, dy float64) {}

// Lines splits the text into its display lines.
func (s *TextShape) Lines() []string {
	return strings.Split(s.Text, "\n")
}

func (s *TextShape) bounds() Rect {
	lines := s.Lines()
	longest := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > longest {
			longest = n
		}
	}
	return Rect{
		X:      s.X,
		Y:      s.Y,
		Width:  float64(longest) * s.FontSize * textCharWidth,
		Height: float64(len(lines)) * s.FontSize * textLineHeight,
	}
}

// Pending reports whether the image source has not been decoded yet.
func (s *ImageShape) Pending() bool {
	return s.decoded == nil
}

func (s *ImageShape) Decoded() image.Image {
	return s.decoded
}

func isResizable(o *Object) bool {
	switch o.Shape.(type) {
	case *RectShape, *ImageShape, *EllipseShape, *TextShape:
		return true
	}
	return false
}
