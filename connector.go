package main

import "math"

// Anchors are the points where a connector leaves its source and enters
// its target.
type Anchors struct {
	From Point
	To   Point
}

// ComputeAnchors picks edge midpoints on both boxes from the offset between
// their centres. When the horizontal offset dominates the connector runs
// right-to-left or left-to-right; otherwise, ties included, it runs
// bottom-to-top or top-to-bottom.
func ComputeAnchors(from, to Rect) Anchors {
	fc := from.Center()
	tc := to.Center()
	dx := tc.X - fc.X
	dy := tc.Y - fc.Y

	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return Anchors{
				From: Point{from.Right(), fc.Y},
				To:   Point{to.X, tc.Y},
			}
		}
		return Anchors{
			From: Point{from.X, fc.Y},
			To:   Point{to.Right(), tc.Y},
		}
	}

	if dy > 0 {
		return Anchors{
			From: Point{fc.X, from.Bottom()},
			To:   Point{tc.X, to.Y},
		}
	}
	return Anchors{
		From: Point{fc.X, from.Y},
		To:   Point{tc.X, to.Bottom()},
	}
}

// ConnectorAnchors resolves the live anchors of a connector object. ok is
// false when either endpoint no longer exists.
func (c *Canvas) ConnectorAnchors(obj *Object) (Anchors, bool) {
	conn, isConn := obj.Shape.(*ConnectorShape)
	if !isConn {
		return Anchors{}, false
	}
	return c.connectorAnchors(conn, 0)
}

func (c *Canvas) connectorAnchors(conn *ConnectorShape, depth int) (Anchors, bool) {
	if depth >= maxConnectorDepth {
		return Anchors{}, false
	}
	from := c.Find(conn.FromID)
	to := c.Find(conn.ToID)
	if from == nil || to == nil {
		return Anchors{}, false
	}
	return ComputeAnchors(c.boundsOf(from, depth+1), c.boundsOf(to, depth+1)), true
}

// IsOrphaned reports whether obj is a connector missing an endpoint.
func (c *Canvas) IsOrphaned(obj *Object) bool {
	conn, ok := obj.Shape.(*ConnectorShape)
	if !ok {
		return false
	}
	return c.Find(conn.FromID) == nil || c.Find(conn.ToID) == nil
}

// canConnect reports whether a connector may run from source to target.
func canConnect(source, target *Object) bool {
	if source == nil || target == nil || source == target {
		return false
	}
	return source.Kind() != KindConnector && target.Kind() != KindConnector
}

// ArrowHead returns the two barb ends of an arrowhead at the `to` end of
// the segment, each `length` long and 30 degrees off the line.
func ArrowHead(from, to Point, length float64) (Point, Point) {
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	left := Point{
		X: to.X - length*math.Cos(angle-math.Pi/6),
		Y: to.Y - length*math.Sin(angle-math.Pi/6),
	}
	right := Point{
		X: to.X - length*math.Cos(angle+math.Pi/6),
		Y: to.Y - length*math.Sin(angle+math.Pi/6),
	}
	return left, right
}
