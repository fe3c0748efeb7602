package main

import (
	"image"
	"log"
	"strings"
)

// Editor is the controller that owns the scene, the view and the history.
// All mutations go through it; previews change objects in place without
// touching history, commits always snapshot.
type Editor struct {
	canvas  *Canvas
	history *History
	view    View

	selection []*Object
	tool      Tool

	style       Style
	fillColor   string
	fillEnabled bool
	fontSize    float64

	gesture gesture
	text    *textEdit
	pointer Point // last pointer position, screen space

	// decoded images by source, reattached on restore
	images        map[string]image.Image
	maxImageBytes int64
}

// textEdit is an open text box, either for a new object at a position or
// for an existing text object.
type textEdit struct {
	At     Point
	Target *Object
	Value  string
}

func NewEditor(cfg *Config, width, height float64) *Editor {
	e := &Editor{
		canvas:  NewCanvas(),
		history: NewHistory(),
		view:    NewView(width, height),
		tool:    ToolSelect,
		style: Style{
			StrokeColor: cfg.StrokeColor,
			StrokeWidth: cfg.StrokeWidth,
			Opacity:     cfg.Opacity,
		},
		fillColor:     cfg.FillColor,
		fillEnabled:   cfg.FillEnabled,
		fontSize:      cfg.FontSize,
		images:        make(map[string]image.Image),
		maxImageBytes: cfg.MaxImageBytes,
	}
	e.commit()
	return e
}

func (e *Editor) Canvas() *Canvas { return e.canvas }
func (e *Editor) View() *View     { return &e.view }
func (e *Editor) History() *History {
	return e.history
}
func (e *Editor) Tool() Tool   { return e.tool }
func (e *Editor) Style() Style { return e.style }

func (e *Editor) FillEnabled() bool { return e.fillEnabled }
func (e *Editor) FontSize() float64 { return e.fontSize }

// SetTool switches the active tool. Any open text box is finished first and
// a gesture in progress is released where it is.
func (e *Editor) SetTool(t Tool) {
	e.CommitText()
	if e.gesture != nil {
		e.PointerUp(e.pointer)
	}
	e.tool = t
}

func (e *Editor) Selection() []*Object { return e.selection }

func (e *Editor) IsSelected(obj *Object) bool {
	for _, o := range e.selection {
		if o == obj {
			return true
		}
	}
	return false
}

func (e *Editor) selectObject(obj *Object) {
	if !e.IsSelected(obj) {
		e.selection = append(e.selection, obj)
	}
}

func (e *Editor) SelectAll() {
	e.selection = append([]*Object(nil), e.canvas.Objects()...)
}

func (e *Editor) Deselect() {
	e.selection = nil
}

// commit records the current scene as a new history entry.
func (e *Editor) commit() {
	if err := e.history.Snapshot(e.canvas.Objects()); err != nil {
		log.Printf("[history] %v", err)
	}
}

// AddObject gives shape the current style, places it on top and commits.
func (e *Editor) AddObject(shape Shape) *Object {
	obj := e.add(shape)
	e.commit()
	return obj
}

func (e *Editor) add(shape Shape) *Object {
	return e.canvas.Add(&Object{Style: e.style, Shape: shape})
}

func (e *Editor) DeleteSelected() {
	if len(e.selection) == 0 {
		return
	}
	selected := make(map[*Object]bool, len(e.selection))
	for _, obj := range e.selection {
		selected[obj] = true
	}
	e.canvas.Remove(func(o *Object) bool { return selected[o] })
	e.selection = nil
	e.commit()
}

// DeleteObject removes a single object by id along with its connectors.
func (e *Editor) DeleteObject(id int) bool {
	removed := e.canvas.Remove(func(o *Object) bool { return o.ID == id })
	if len(removed) == 0 {
		return false
	}
	e.dropFromSelection(removed)
	e.commit()
	return true
}

func (e *Editor) dropFromSelection(removed []*Object) {
	gone := make(map[*Object]bool, len(removed))
	for _, obj := range removed {
		gone[obj] = true
	}
	kept := e.selection[:0]
	for _, obj := range e.selection {
		if !gone[obj] {
			kept = append(kept, obj)
		}
	}
	e.selection = kept
}

// ClearAll empties the scene. It is a single committed step, so one undo
// brings the previous scene back.
func (e *Editor) ClearAll() bool {
	if e.canvas.Len() == 0 {
		return false
	}
	e.canvas.Remove(func(*Object) bool { return true })
	e.selection = nil
	e.commit()
	return true
}

// SetProperty changes the style used for new objects and applies the same
// change to the selection.
func (e *Editor) SetProperty(prop Property, value any) {
	switch prop {
	case PropStrokeColor:
		if v, ok := value.(string); ok {
			e.style.StrokeColor = v
		}
	case PropFillColor:
		if v, ok := value.(string); ok {
			e.fillColor = v
		}
	case PropFillEnabled:
		if v, ok := value.(bool); ok {
			e.fillEnabled = v
		}
	case PropStrokeWidth:
		if v, ok := value.(float64); ok {
			e.style.StrokeWidth = v
		}
	case PropFontSize:
		if v, ok := value.(float64); ok {
			e.fontSize = v
		}
	case PropOpacity:
		if v, ok := value.(float64); ok {
			e.style.Opacity = clamp(v, 0, 100)
		}
	}
	e.MutateSelected(prop, value)
}

// MutateSelected sets prop on every selected object that has it. History
// is only touched when something is selected.
func (e *Editor) MutateSelected(prop Property, value any) {
	if len(e.selection) == 0 {
		return
	}
	for _, obj := range e.selection {
		applyProperty(obj, prop, value)
	}
	e.commit()
}

func applyProperty(obj *Object, prop Property, value any) bool {
	switch prop {
	case PropStrokeColor:
		v, ok := value.(string)
		if !ok {
			return false
		}
		obj.Style.StrokeColor = v
		return true
	case PropStrokeWidth:
		v, ok := value.(float64)
		if !ok {
			return false
		}
		obj.Style.StrokeWidth = v
		return true
	case PropOpacity:
		v, ok := value.(float64)
		if !ok {
			return false
		}
		obj.Style.Opacity = clamp(v, 0, 100)
		return true
	case PropFillColor:
		v, ok := value.(string)
		if !ok {
			return false
		}
		switch s := obj.Shape.(type) {
		case *RectShape:
			s.FillColor = v
		case *EllipseShape:
			s.FillColor = v
		default:
			return false
		}
		return true
	case PropFillEnabled:
		v, ok := value.(bool)
		if !ok {
			return false
		}
		switch s := obj.Shape.(type) {
		case *RectShape:
			s.FillEnabled = v
		case *EllipseShape:
			s.FillEnabled = v
		default:
			return false
		}
		return true
	case PropFontSize:
		v, ok := value.(float64)
		if !ok {
			return false
		}
		s, isText := obj.Shape.(*TextShape)
		if !isText {
			return false
		}
		s.FontSize = clamp(v, minFontSize, maxFontSize)
		return true
	}
	return false
}

func (e *Editor) Undo() bool {
	objs, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.restore(objs)
	return true
}

func (e *Editor) Redo() bool {
	objs, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.restore(objs)
	return true
}

// restore replaces the scene with objs. Images whose source was decoded
// before get their handle back, the rest stay pending.
func (e *Editor) restore(objs []*Object) {
	e.gesture = nil
	e.text = nil
	e.canvas.replace(objs)
	e.selection = nil
	e.reattachImages()
}

func (e *Editor) reattachImages() {
	for _, obj := range e.canvas.Objects() {
		if s, ok := obj.Shape.(*ImageShape); ok {
			if img, cached := e.images[s.Src]; cached {
				s.decoded = img
			}
		}
	}
}

// Load replaces the scene with the objects of doc and commits. A document
// without an object list leaves the scene alone and returns false.
func (e *Editor) Load(doc *Document) bool {
	if doc == nil || doc.Objects == nil {
		return false
	}
	e.restore(doc.Objects)
	e.commit()
	return true
}

// Document captures the current scene for saving.
func (e *Editor) Document() *Document {
	return &Document{Version: documentVersion, Objects: e.canvas.Objects()}
}

// Text editing

func (e *Editor) Editing() *textEdit { return e.text }

// BeginText opens a text box for a new object at a canvas position.
func (e *Editor) BeginText(at Point) {
	e.text = &textEdit{At: at}
}

// BeginTextEdit opens a text box on an existing text object.
func (e *Editor) BeginTextEdit(obj *Object) bool {
	s, ok := obj.Shape.(*TextShape)
	if !ok {
		return false
	}
	e.text = &textEdit{At: Point{s.X, s.Y}, Target: obj, Value: s.Text}
	return true
}

// CommitText finishes the open text box with whatever has been typed.
func (e *Editor) CommitText() {
	if e.text != nil {
		e.FinishText(e.text.Value)
	}
}

// FinishText closes the open text box. New text creates an object; an edit
// that leaves the text empty deletes the object.
func (e *Editor) FinishText(text string) {
	edit := e.text
	if edit == nil {
		return
	}
	e.text = nil
	text = strings.TrimSpace(text)

	if edit.Target != nil {
		if e.canvas.Find(edit.Target.ID) != edit.Target {
			return
		}
		if text == "" {
			removed := e.canvas.Remove(func(o *Object) bool { return o == edit.Target })
			e.dropFromSelection(removed)
		} else {
			edit.Target.Shape.(*TextShape).Text = text
		}
		e.commit()
		return
	}

	if text != "" {
		e.AddObject(&TextShape{X: edit.At.X, Y: edit.At.Y, Text: text, FontSize: e.fontSize})
	}
}

func (e *Editor) CancelText() {
	e.text = nil
}

// TextAt returns the text object under a screen position, for double-click
// editing.
func (e *Editor) TextAt(screen Point) *Object {
	obj := e.canvas.FindTopmostAt(e.view.ScreenToCanvas(screen), e.view.Scale)
	if obj == nil || obj.Kind() != KindText {
		return nil
	}
	return obj
}

// DoubleClick starts editing the text object under the pointer, if any.
func (e *Editor) DoubleClick(screen Point) bool {
	obj := e.TextAt(screen)
	if obj == nil {
		return false
	}
	return e.BeginTextEdit(obj)
}
