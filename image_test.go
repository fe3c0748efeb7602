package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestInsertImageRejects(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		mime    string
		limit   int64
		wantErr error
	}{
		{"too large", bytes.Repeat([]byte{0}, 64), "image/png", 10, ErrImageTooLarge},
		{"plain text", []byte("hello world"), "", 1 << 20, ErrNotImage},
		{"wrong mime", []byte("hello world"), "text/plain", 1 << 20, ErrNotImage},
		{"corrupt image", []byte("not really a png"), "image/png", 1 << 20, ErrNotImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor()
			e.maxImageBytes = tt.limit
			obj, err := e.InsertImage(tt.data, tt.mime)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if obj != nil || e.Canvas().Len() != 0 {
				t.Error("nothing should be added on error")
			}
		})
	}
}

func TestInsertImageFitsAndCentres(t *testing.T) {
	e := newTestEditor()
	obj, err := e.InsertImage(makePNG(t, 800, 400), "")
	if err != nil {
		t.Fatalf("InsertImage: %v", err)
	}

	s := obj.Shape.(*ImageShape)
	if s.Width != 400 || s.Height != 200 {
		t.Errorf("size = %v×%v, want 400×200", s.Width, s.Height)
	}
	if s.X != 200 || s.Y != 200 {
		t.Errorf("origin = (%v, %v), want (200, 200)", s.X, s.Y)
	}
	if !s.Pending() {
		t.Error("new image should be pending")
	}
	if e.History().Len() != 2 {
		t.Errorf("history Len = %d, want 2", e.History().Len())
	}

	img, err := DecodeDataURL(s.Src)
	if err != nil {
		t.Fatalf("DecodeDataURL: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 400 {
		t.Errorf("decoded bounds = %v", b)
	}
}

func TestAttachImageSurvivesUndo(t *testing.T) {
	e := newTestEditor()
	obj, err := e.InsertImage(makePNG(t, 20, 10), "image/png")
	if err != nil {
		t.Fatalf("InsertImage: %v", err)
	}
	src := obj.Shape.(*ImageShape).Src

	pending := e.PendingImages()
	if len(pending) != 1 || pending[0] != obj {
		t.Fatalf("PendingImages = %v", pending)
	}
	img, err := DecodeDataURL(src)
	if err != nil {
		t.Fatalf("DecodeDataURL: %v", err)
	}
	e.AttachImage(obj.ID, src, img)
	if obj.Shape.(*ImageShape).Pending() {
		t.Fatal("image still pending after attach")
	}
	if len(e.PendingImages()) != 0 {
		t.Error("PendingImages should be empty")
	}

	e.Undo()
	e.Redo()
	restored := e.Canvas().Find(obj.ID).Shape.(*ImageShape)
	if restored.Pending() {
		t.Error("decoded image not reattached after redo")
	}
}

func TestPendingImagesOnePerSource(t *testing.T) {
	e := newTestEditor()
	e.AddObject(&ImageShape{Width: 10, Height: 10, Src: "data:image/png;base64,AAAA"})
	e.AddObject(&ImageShape{Width: 10, Height: 10, Src: "data:image/png;base64,AAAA"})
	e.AddObject(&ImageShape{Width: 10, Height: 10, Src: "data:image/png;base64,BBBB"})

	if got := len(e.PendingImages()); got != 2 {
		t.Errorf("PendingImages = %d, want 2", got)
	}
}

func TestDecodeDataURLErrors(t *testing.T) {
	for _, src := range []string{
		"http://example.com/a.png",
		"data:image/png,rawdata",
		"data:image/png;base64,@@@",
	} {
		if _, err := DecodeDataURL(src); err == nil {
			t.Errorf("DecodeDataURL(%q) succeeded", src)
		}
	}
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		w, h         float64
		wantW, wantH float64
	}{
		{100, 50, 100, 50},
		{800, 400, 400, 200},
		{200, 800, 100, 400},
		{400, 400, 400, 400},
	}
	for _, tt := range tests {
		w, h := fitSize(tt.w, tt.h, 400)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fitSize(%v, %v) = %v, %v, want %v, %v", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestDownsample(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 10))
	if downsample(img, 200) != image.Image(img) {
		t.Error("small image should be returned as is")
	}
	small := downsample(img, 50)
	if b := small.Bounds(); b.Dx() != 50 || b.Dy() != 5 {
		t.Errorf("bounds = %v, want 50×5", b)
	}
}
