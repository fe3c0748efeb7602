package main

import (
	"fmt"
	"math"
	"strings"
)

const layerTextPreview = 20

var layerIcons = map[Kind]string{
	KindPath:      "✎",
	KindLine:      "╱",
	KindRect:      "▢",
	KindEllipse:   "◯",
	KindText:      "A",
	KindImage:     "⌼",
	KindConnector: "→",
}

// Layer is one row of the layer list.
type Layer struct {
	ID        int
	Icon      string
	Name      string
	Details   string
	Selected  bool
	Offscreen bool
}

func layerName(obj *Object) string {
	return fmt.Sprintf("%s %d", strings.ToUpper(string(obj.Kind())), obj.ID)
}

// Layers lists the scene topmost first.
func (e *Editor) Layers() []Layer {
	objs := e.canvas.Objects()
	visible := e.view.VisibleRect()
	out := make([]Layer, 0, len(objs))
	for i := len(objs) - 1; i >= 0; i-- {
		obj := objs[i]
		b := e.canvas.BoundsOf(obj)
		icon, ok := layerIcons[obj.Kind()]
		if !ok {
			icon = "?"
		}
		out = append(out, Layer{
			ID:        obj.ID,
			Icon:      icon,
			Name:      layerName(obj),
			Details:   e.layerDetails(obj, b),
			Selected:  e.IsSelected(obj),
			Offscreen: !b.Intersects(visible),
		})
	}
	return out
}

func (e *Editor) layerDetails(obj *Object, b Rect) string {
	pos := fmt.Sprintf("X: %d, Y: %d", int(math.Round(b.X)), int(math.Round(b.Y)))
	size := ""
	if b.Width != 0 && b.Height != 0 {
		size = fmt.Sprintf("%d × %d", int(math.Round(b.Width)), int(math.Round(b.Height)))
	}

	switch s := obj.Shape.(type) {
	case *TextShape:
		preview := s.Text
		if runes := []rune(preview); len(runes) > layerTextPreview {
			preview = string(runes[:layerTextPreview]) + "..."
		}
		return fmt.Sprintf("%q %s", preview, pos)
	case *ImageShape:
		return pos + " · " + size
	case *ConnectorShape:
		return e.endpointName(s.FromID) + " → " + e.endpointName(s.ToID)
	}
	if size == "" {
		return pos
	}
	return pos + " · " + size
}

func (e *Editor) endpointName(id int) string {
	if obj := e.canvas.Find(id); obj != nil {
		return layerName(obj)
	}
	return "deleted"
}

// FocusLayer centres the view on an object and makes it the only selected
// object. Text objects are opened for editing.
func (e *Editor) FocusLayer(id int) bool {
	obj := e.canvas.Find(id)
	if obj == nil {
		return false
	}
	e.view.CenterOn(e.canvas.BoundsOf(obj))
	e.selection = []*Object{obj}
	if obj.Kind() == KindText {
		e.BeginTextEdit(obj)
	}
	return true
}

// ShiftSelectLayer adds an object to the selection without moving the view.
func (e *Editor) ShiftSelectLayer(id int) bool {
	obj := e.canvas.Find(id)
	if obj == nil {
		return false
	}
	e.selectObject(obj)
	return true
}
