package main

import (
	"encoding/json"
	"fmt"
	"log"
)

// Document is the persisted form of a scene, used for file export/import,
// stored projects and the clipboard.
type Document struct {
	Version string
	Name    string
	SavedAt int64 // unix milliseconds

	// Objects is nil when the input had no object list at all.
	Objects []*Object

	// Skipped lists the kinds of objects that were dropped because they are
	// not understood by this version.
	Skipped []string
}

type jsonDocument struct {
	Version string       `json:"version"`
	Name    string       `json:"name,omitempty"`
	SavedAt int64        `json:"savedAt,omitempty"`
	Objects []jsonObject `json:"objects"`
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// jsonObject is the flat wire representation shared by every kind. Geometry
// fields a kind does not use are left out; style is always written.
type jsonObject struct {
	ID   int    `json:"id"`
	Type string `json:"type"`

	X       *float64    `json:"x,omitempty"`
	Y       *float64    `json:"y,omitempty"`
	X2      *float64    `json:"x2,omitempty"`
	Y2      *float64    `json:"y2,omitempty"`
	Width   *float64    `json:"width,omitempty"`
	Height  *float64    `json:"height,omitempty"`
	RadiusX *float64    `json:"radiusX,omitempty"`
	RadiusY *float64    `json:"radiusY,omitempty"`
	Points  []jsonPoint `json:"points,omitempty"`

	Text     *string  `json:"text,omitempty"`
	FontSize *float64 `json:"fontSize,omitempty"`
	Src      string   `json:"src,omitempty"`

	FromID *int `json:"fromId,omitempty"`
	ToID   *int `json:"toId,omitempty"`

	StrokeColor string   `json:"strokeColor,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty"`
	FillColor   string   `json:"fillColor,omitempty"`
	FillEnabled *bool    `json:"fillEnabled,omitempty"`
}

func fptr(v float64) *float64 { return &v }

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func toJSONObject(obj *Object) jsonObject {
	j := jsonObject{
		ID:          obj.ID,
		Type:        string(obj.Kind()),
		StrokeColor: obj.Style.StrokeColor,
		StrokeWidth: fptr(obj.Style.StrokeWidth),
		Opacity:     fptr(obj.Style.Opacity),
	}

	switch s := obj.Shape.(type) {
	case *PathShape:
		j.Points = make([]jsonPoint, len(s.Points))
		for i, p := range s.Points {
			j.Points[i] = jsonPoint{p.X, p.Y}
		}
	case *LineShape:
		j.X, j.Y, j.X2, j.Y2 = fptr(s.X), fptr(s.Y), fptr(s.X2), fptr(s.Y2)
	case *RectShape:
		j.X, j.Y, j.Width, j.Height = fptr(s.X), fptr(s.Y), fptr(s.Width), fptr(s.Height)
		j.FillColor = s.FillColor
		j.FillEnabled = &s.FillEnabled
	case *EllipseShape:
		j.X, j.Y, j.RadiusX, j.RadiusY = fptr(s.X), fptr(s.Y), fptr(s.RadiusX), fptr(s.RadiusY)
		j.FillColor = s.FillColor
		j.FillEnabled = &s.FillEnabled
	case *TextShape:
		text := s.Text
		j.X, j.Y, j.Text, j.FontSize = fptr(s.X), fptr(s.Y), &text, fptr(s.FontSize)
	case *ImageShape:
		j.X, j.Y, j.Width, j.Height = fptr(s.X), fptr(s.Y), fptr(s.Width), fptr(s.Height)
		j.Src = s.Src
	case *ConnectorShape:
		from, to := s.FromID, s.ToID
		j.FromID, j.ToID = &from, &to
	}
	return j
}

// fromJSONObject converts a wire object. ok is false for unknown kinds.
func fromJSONObject(j jsonObject) (*Object, bool) {
	obj := &Object{
		ID: j.ID,
		Style: Style{
			StrokeColor: j.StrokeColor,
			StrokeWidth: valueOr(j.StrokeWidth, defaultStrokeWidth),
			Opacity:     valueOr(j.Opacity, defaultOpacity),
		},
	}
	if obj.Style.StrokeColor == "" {
		obj.Style.StrokeColor = defaultStrokeColor
	}
	fillEnabled := j.FillEnabled != nil && *j.FillEnabled
	fillColor := j.FillColor
	if fillColor == "" {
		fillColor = defaultFillColor
	}

	switch Kind(j.Type) {
	case KindPath:
		pts := make([]Point, len(j.Points))
		for i, p := range j.Points {
			pts[i] = Point{p.X, p.Y}
		}
		obj.Shape = &PathShape{Points: pts}
	case KindLine:
		obj.Shape = &LineShape{
			X: valueOr(j.X, 0), Y: valueOr(j.Y, 0),
			X2: valueOr(j.X2, 0), Y2: valueOr(j.Y2, 0),
		}
	case KindRect:
		obj.Shape = &RectShape{
			X: valueOr(j.X, 0), Y: valueOr(j.Y, 0),
			Width: valueOr(j.Width, 0), Height: valueOr(j.Height, 0),
			FillColor: fillColor, FillEnabled: fillEnabled,
		}
	case KindEllipse:
		obj.Shape = &EllipseShape{
			X: valueOr(j.X, 0), Y: valueOr(j.Y, 0),
			RadiusX: valueOr(j.RadiusX, 0), RadiusY: valueOr(j.RadiusY, 0),
			FillColor: fillColor, FillEnabled: fillEnabled,
		}
	case KindText:
		text := ""
		if j.Text != nil {
			text = *j.Text
		}
		obj.Shape = &TextShape{
			X: valueOr(j.X, 0), Y: valueOr(j.Y, 0),
			Text: text, FontSize: valueOr(j.FontSize, defaultFontSize),
		}
	case KindImage:
		obj.Shape = &ImageShape{
			X: valueOr(j.X, 0), Y: valueOr(j.Y, 0),
			Width: valueOr(j.Width, 0), Height: valueOr(j.Height, 0),
			Src: j.Src,
		}
	case KindConnector:
		conn := &ConnectorShape{}
		if j.FromID != nil {
			conn.FromID = *j.FromID
		}
		if j.ToID != nil {
			conn.ToID = *j.ToID
		}
		obj.Shape = conn
	default:
		return nil, false
	}
	return obj, true
}

func encodeObjects(objs []*Object) []jsonObject {
	out := make([]jsonObject, len(objs))
	for i, obj := range objs {
		out[i] = toJSONObject(obj)
	}
	return out
}

// decodeObjects converts wire objects, returning the kinds it skipped.
func decodeObjects(in []jsonObject) ([]*Object, []string) {
	objs := make([]*Object, 0, len(in))
	var skipped []string
	for _, j := range in {
		obj, ok := fromJSONObject(j)
		if !ok {
			log.Printf("[load] skipping object %d of unknown kind %q", j.ID, j.Type)
			skipped = append(skipped, j.Type)
			continue
		}
		objs = append(objs, obj)
	}
	return objs, skipped
}

// EncodeDocument serializes objects into the document format.
func EncodeDocument(doc *Document, pretty bool) ([]byte, error) {
	version := doc.Version
	if version == "" {
		version = documentVersion
	}
	j := jsonDocument{
		Version: version,
		Name:    doc.Name,
		SavedAt: doc.SavedAt,
		Objects: encodeObjects(doc.Objects),
	}
	if pretty {
		return json.MarshalIndent(j, "", "  ")
	}
	return json.Marshal(j)
}

// ParseDocument decodes the document format. Unknown object kinds are
// skipped and reported in Document.Skipped.
func ParseDocument(data []byte) (*Document, error) {
	var j jsonDocument
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc := &Document{
		Version: j.Version,
		Name:    j.Name,
		SavedAt: j.SavedAt,
	}
	if j.Objects != nil {
		doc.Objects, doc.Skipped = decodeObjects(j.Objects)
	}
	return doc, nil
}
