package main

import "math"

// connectors may name other connectors in hand-edited documents; resolution
// stops at this depth and treats the connector as orphaned.
const maxConnectorDepth = 8

// BoundsOf returns the axis-aligned bounding box of obj in canvas space.
func (c *Canvas) BoundsOf(obj *Object) Rect {
	return c.boundsOf(obj, 0)
}

func (c *Canvas) boundsOf(obj *Object, depth int) Rect {
	switch s := obj.Shape.(type) {
	case *RectShape:
		return Rect{s.X, s.Y, s.Width, s.Height}
	case *ImageShape:
		return Rect{s.X, s.Y, s.Width, s.Height}
	case *EllipseShape:
		return Rect{s.X - s.RadiusX, s.Y - s.RadiusY, s.RadiusX * 2, s.RadiusY * 2}
	case *LineShape:
		return Rect{
			X:      math.Min(s.X, s.X2),
			Y:      math.Min(s.Y, s.Y2),
			Width:  math.Abs(s.X2 - s.X),
			Height: math.Abs(s.Y2 - s.Y),
		}
	case *PathShape:
		return boundsOfPoints(s.Points)
	case *TextShape:
		return s.bounds()
	case *ConnectorShape:
		anchors, ok := c.connectorAnchors(s, depth)
		if !ok {
			return Rect{}
		}
		r := boundsOfPoints([]Point{anchors.From, anchors.To})
		if r.Width == 0 {
			r.Width = connectorMinBox
		}
		if r.Height == 0 {
			r.Height = connectorMinBox
		}
		return r
	}
	return Rect{}
}

// FindTopmostAt returns the topmost object under p, or nil. The tolerance
// is a fixed number of screen pixels, so it shrinks in canvas units as the
// view zooms in.
func (c *Canvas) FindTopmostAt(p Point, scale float64) *Object {
	margin := hitMargin / scale
	for i := len(c.objects) - 1; i >= 0; i-- {
		if c.containsPoint(c.objects[i], p, margin) {
			return c.objects[i]
		}
	}
	return nil
}

func (c *Canvas) containsPoint(obj *Object, p Point, margin float64) bool {
	switch s := obj.Shape.(type) {
	case *RectShape, *ImageShape, *TextShape:
		return c.BoundsOf(obj).Contains(p, margin)
	case *EllipseShape:
		if s.RadiusX == 0 || s.RadiusY == 0 {
			return c.BoundsOf(obj).Contains(p, margin)
		}
		dx := (p.X - s.X) / s.RadiusX
		dy := (p.Y - s.Y) / s.RadiusY
		return dx*dx+dy*dy <= ellipseHitRadius
	case *LineShape:
		return PointToSegmentDistance(p, Point{s.X, s.Y}, Point{s.X2, s.Y2}) < margin
	case *PathShape:
		for i := 1; i < len(s.Points); i++ {
			if PointToSegmentDistance(p, s.Points[i-1], s.Points[i]) < margin {
				return true
			}
		}
		return false
	case *ConnectorShape:
		anchors, ok := c.connectorAnchors(s, 0)
		if !ok {
			return false
		}
		return PointToSegmentDistance(p, anchors.From, anchors.To) < margin
	}
	return false
}
