package main

import "testing"

func TestComputeAnchors(t *testing.T) {
	rect := Rect{0, 0, 100, 100}
	ellipse := Rect{250, 20, 100, 60} // centre (300, 50), radii 50×30

	tests := []struct {
		name     string
		from, to Rect
		want     Anchors
	}{
		{"right", rect, ellipse, Anchors{Point{100, 50}, Point{250, 50}}},
		{"left", ellipse, rect, Anchors{Point{250, 50}, Point{100, 50}}},
		{"down", Rect{0, 0, 10, 10}, Rect{0, 100, 10, 10}, Anchors{Point{5, 10}, Point{5, 100}}},
		{"up", Rect{0, 100, 10, 10}, Rect{0, 0, 10, 10}, Anchors{Point{5, 100}, Point{5, 10}}},
		{"diagonal tie is vertical", Rect{0, 0, 10, 10}, Rect{20, 20, 10, 10}, Anchors{Point{5, 10}, Point{25, 20}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAnchors(tt.from, tt.to)
			if got != tt.want {
				t.Errorf("ComputeAnchors = %v, want %v", got, tt.want)
			}
			if again := ComputeAnchors(tt.from, tt.to); again != got {
				t.Errorf("ComputeAnchors not deterministic: %v then %v", got, again)
			}
		})
	}
}

func TestConnectorFollowsEndpoints(t *testing.T) {
	c := NewCanvas()
	a := c.Add(rectObject(0, 0, 100, 100))
	b := c.Add(&Object{Shape: &EllipseShape{X: 300, Y: 50, RadiusX: 50, RadiusY: 30}})
	conn := c.Add(connectorObject(a.ID, b.ID))

	anchors, ok := c.ConnectorAnchors(conn)
	if !ok {
		t.Fatal("anchors not resolved")
	}
	if anchors.From != (Point{100, 50}) || anchors.To != (Point{250, 50}) {
		t.Errorf("anchors = %v", anchors)
	}

	a.Shape.translate(0, 200)
	anchors, _ = c.ConnectorAnchors(conn)
	// centres are now (50, 250) and (300, 50): horizontal offset still wins
	if anchors.From != (Point{100, 250}) || anchors.To != (Point{250, 50}) {
		t.Errorf("anchors after move = %v", anchors)
	}
}

// TestConnectorCycleTerminates feeds a hand-made connector that points at
// itself through another connector.
func TestConnectorCycleTerminates(t *testing.T) {
	c := NewCanvas()
	first := c.Add(connectorObject(2, 2))
	c.Add(connectorObject(first.ID, first.ID))

	_ = c.BoundsOf(first)
	_ = c.FindTopmostAt(Point{0, 0}, 1)
}

func TestCanConnect(t *testing.T) {
	a := &Object{ID: 1, Shape: &RectShape{}}
	b := &Object{ID: 2, Shape: &TextShape{}}
	conn := &Object{ID: 3, Shape: &ConnectorShape{FromID: 1, ToID: 2}}

	if !canConnect(a, b) {
		t.Error("rect to text should be allowed")
	}
	if canConnect(a, a) {
		t.Error("self connection should be refused")
	}
	if canConnect(a, conn) || canConnect(conn, b) {
		t.Error("connectors cannot be endpoints")
	}
	if canConnect(a, nil) {
		t.Error("missing target should be refused")
	}
}

func TestArrowHead(t *testing.T) {
	left, right := ArrowHead(Point{0, 0}, Point{100, 0}, arrowHeadLength)
	if !almostEqual(left.X, right.X) {
		t.Errorf("barbs not symmetric: %v %v", left, right)
	}
	if !almostEqual(left.Y, 6) || !almostEqual(right.Y, -6) {
		t.Errorf("barb offsets = %v, %v, want ±6", left.Y, right.Y)
	}
	if left.X >= 100 {
		t.Errorf("barbs should trail the tip, got x=%v", left.X)
	}
}
