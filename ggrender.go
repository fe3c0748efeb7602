package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const backgroundColor = "#0a0a0f"

var (
	monoOnce sync.Once
	monoFont *truetype.Font
	monoErr  error
)

func loadMonoFont() (*truetype.Font, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = truetype.Parse(gomono.TTF)
		if monoErr != nil {
			monoErr = fmt.Errorf("failed to parse font: %w", monoErr)
		}
	})
	return monoFont, monoErr
}

// ggRenderer draws onto a gg context. Points go through the view transform
// and are then multiplied by ratio, which lets a frontend render at a lower
// resolution than the view's screen pixels.
type ggRenderer struct {
	dc    *gg.Context
	view  View
	ratio float64

	font  *truetype.Font
	faces map[int]font.Face
}

func newGGRenderer(width, height int, view View, ratio float64) (*ggRenderer, error) {
	f, err := loadMonoFont()
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(width, height)
	dc.SetColor(parseColor(backgroundColor, 1))
	dc.Clear()
	return &ggRenderer{
		dc:    dc,
		view:  view,
		ratio: ratio,
		font:  f,
		faces: make(map[int]font.Face),
	}, nil
}

// Frame returns the rendered pixels.
func (g *ggRenderer) Frame() image.Image {
	return g.dc.Image()
}

// parseColor turns a #rrggbb string into a colour with the given alpha.
// Unparseable input falls back to white.
func parseColor(hex string, alpha float64) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{R: 1, G: 1, B: 1}
	}
	r, gr, b := c.RGB255()
	return color.NRGBA{R: r, G: gr, B: b, A: uint8(clamp(alpha, 0, 1)*255 + 0.5)}
}

// hexColor formats a rendered pixel for the terminal. Frames are opaque, so
// alpha is ignored.
func hexColor(c color.Color) string {
	r, gr, b, _ := c.RGBA()
	return colorful.Color{R: float64(r) / 0xffff, G: float64(gr) / 0xffff, B: float64(b) / 0xffff}.Hex()
}

func (g *ggRenderer) toDevice(p Point) Point {
	s := g.view.CanvasToScreen(p)
	return Point{s.X * g.ratio, s.Y * g.ratio}
}

func (g *ggRenderer) length(v float64) float64 {
	return v * g.view.Scale * g.ratio
}

func (g *ggRenderer) stroke(p Paint) {
	if p.Stroke == "" {
		return
	}
	g.dc.SetColor(parseColor(p.Stroke, p.Alpha))
	g.dc.SetLineWidth(math.Max(1, g.length(p.Width)))
	if p.Dashed {
		dash := math.Max(1, g.length(5))
		g.dc.SetDash(dash, dash)
	} else {
		g.dc.SetDash()
	}
	g.dc.Stroke()
}

func (g *ggRenderer) fillThenStroke(p Paint) {
	if p.FillEnabled && p.Fill != "" {
		g.dc.SetColor(parseColor(p.Fill, p.Alpha))
		if p.Stroke != "" {
			g.dc.FillPreserve()
		} else {
			g.dc.Fill()
		}
	}
	g.stroke(p)
	g.dc.ClearPath()
}

func (g *ggRenderer) Polyline(pts []Point, p Paint) {
	if len(pts) < 2 {
		return
	}
	g.dc.SetLineCapRound()
	g.dc.SetLineJoinRound()
	for i, pt := range pts {
		d := g.toDevice(pt)
		if i == 0 {
			g.dc.MoveTo(d.X, d.Y)
		} else {
			g.dc.LineTo(d.X, d.Y)
		}
	}
	g.stroke(p)
	g.dc.ClearPath()
}

func (g *ggRenderer) Rectangle(r Rect, p Paint) {
	d := g.toDevice(Point{r.X, r.Y})
	g.dc.DrawRectangle(d.X, d.Y, g.length(r.Width), g.length(r.Height))
	g.fillThenStroke(p)
}

func (g *ggRenderer) Ellipse(center Point, rx, ry float64, p Paint) {
	d := g.toDevice(center)
	g.dc.DrawEllipse(d.X, d.Y, g.length(rx), g.length(ry))
	g.fillThenStroke(p)
}

func (g *ggRenderer) Image(img image.Image, r Rect, p Paint) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	d := g.toDevice(Point{r.X, r.Y})
	g.dc.Push()
	g.dc.Translate(d.X, d.Y)
	g.dc.Scale(g.length(r.Width)/float64(b.Dx()), g.length(r.Height)/float64(b.Dy()))
	g.dc.DrawImage(img, 0, 0)
	g.dc.Pop()
}

func (g *ggRenderer) face(px int) font.Face {
	if f, ok := g.faces[px]; ok {
		return f
	}
	f := truetype.NewFace(g.font, &truetype.Options{
		Size:    float64(px),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	g.faces[px] = f
	return f
}

func (g *ggRenderer) Text(lines []string, at Point, size float64, p Paint) {
	px := int(math.Round(g.length(size)))
	if px < 1 {
		return
	}
	g.dc.SetFontFace(g.face(px))
	g.dc.SetColor(parseColor(p.Stroke, p.Alpha))
	origin := g.toDevice(at)
	lineHeight := g.length(size * textLineHeight)
	for i, line := range lines {
		g.dc.DrawStringAnchored(line, origin.X, origin.Y+float64(i)*lineHeight, 0, 1)
	}
}

// ExportPNG renders the scene at scale 1 into a PNG just large enough to
// hold every visible object.
func (e *Editor) ExportPNG(path string) error {
	var bounds Rect
	found := false
	for _, obj := range e.canvas.Objects() {
		if e.canvas.IsOrphaned(obj) {
			continue
		}
		b := e.canvas.BoundsOf(obj).Inflate(obj.Style.StrokeWidth)
		if !found {
			bounds, found = b, true
			continue
		}
		bounds = bounds.Union(b)
	}
	if !found {
		return ErrNothingToExport
	}

	bounds = bounds.Inflate(exportPadding)
	view := View{Scale: 1, OffsetX: -bounds.X, OffsetY: -bounds.Y, Width: bounds.Width, Height: bounds.Height}
	r, err := newGGRenderer(int(math.Ceil(bounds.Width)), int(math.Ceil(bounds.Height)), view, 1)
	if err != nil {
		return err
	}
	e.RenderScene(r)
	if err := r.dc.SavePNG(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Printf("[export] wrote %s", path)
	return nil
}
