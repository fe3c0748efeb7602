package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"net/http"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// InsertImage validates data and adds it as an image object centred in the
// viewport, scaled down to fit maxImageSide. Nothing is added when the data
// is too large or not an image. The new object is pending until its source
// is decoded and handed back through AttachImage.
func (e *Editor) InsertImage(data []byte, mime string) (*Object, error) {
	if int64(len(data)) > e.maxImageBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrImageTooLarge, len(data), e.maxImageBytes)
	}
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, mime)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	w, h := fitSize(float64(cfg.Width), float64(cfg.Height), maxImageSide)
	center := e.view.ScreenToCanvas(Point{e.view.Width / 2, e.view.Height / 2})
	obj := e.AddObject(&ImageShape{
		X:      center.X - w/2,
		Y:      center.Y - h/2,
		Width:  w,
		Height: h,
		Src:    "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
	})
	e.reattachImages()
	return obj, nil
}

// fitSize scales w×h down, keeping the aspect ratio, so neither side
// exceeds limit.
func fitSize(w, h, limit float64) (float64, float64) {
	if w <= limit && h <= limit {
		return w, h
	}
	ratio := min(limit/w, limit/h)
	return w * ratio, h * ratio
}

// AttachImage delivers the decoded form of src. The handle is cached so
// undo, redo and reloads can reattach it, and every image object sharing
// the source gets it immediately.
func (e *Editor) AttachImage(id int, src string, img image.Image) {
	if img == nil {
		return
	}
	e.images[src] = img
	if obj := e.canvas.Find(id); obj != nil {
		if s, ok := obj.Shape.(*ImageShape); !ok || s.Src != src {
			log.Printf("[image] object %d no longer shows this source", id)
		}
	}
	e.reattachImages()
}

// PendingImages lists image objects still waiting for a decoded source,
// one per distinct source.
func (e *Editor) PendingImages() []*Object {
	seen := make(map[string]bool)
	var out []*Object
	for _, obj := range e.canvas.Objects() {
		s, ok := obj.Shape.(*ImageShape)
		if !ok || !s.Pending() || s.Src == "" || seen[s.Src] {
			continue
		}
		seen[s.Src] = true
		out = append(out, obj)
	}
	return out
}

// DecodeDataURL decodes a base64 data URL into an image. Results larger
// than maxDecodedSide on either axis are downsampled.
func DecodeDataURL(src string) (image.Image, error) {
	rest, ok := strings.CutPrefix(src, "data:")
	if !ok {
		return nil, fmt.Errorf("%w: not a data URL", ErrNotImage)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: unsupported data URL encoding", ErrNotImage)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URL: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return downsample(img, maxDecodedSide), nil
}

func downsample(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := fitSize(float64(b.Dx()), float64(b.Dy()), float64(limit))
	if int(w) == b.Dx() && int(h) == b.Dy() {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, max(1, int(w)), max(1, int(h))))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
