package main

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func cleanClipboardText(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := result.String()
	normalized = strings.ReplaceAll(normalized, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.TrimSpace(normalized)
}

// copyDocument builds a document from the selection. Connectors come along
// when both of their ends are copied, selected or not.
func copyDocument(c *Canvas, selection []*Object) *Document {
	picked := make(map[int]bool, len(selection))
	for _, obj := range selection {
		if obj.Kind() != KindConnector {
			picked[obj.ID] = true
		}
	}

	var objs []*Object
	for _, obj := range c.Objects() {
		if conn, ok := obj.Shape.(*ConnectorShape); ok {
			if picked[conn.FromID] && picked[conn.ToID] {
				objs = append(objs, obj.clone())
			}
			continue
		}
		if picked[obj.ID] {
			objs = append(objs, obj.clone())
		}
	}
	return &Document{Version: documentVersion, Objects: objs}
}

// PasteDocument adds copies of the document's objects with fresh ids,
// shifted by pasteOffset, and selects them. Connectors are rewired to the
// copies; ones whose ends are not part of the document are dropped. The
// whole paste is one history step.
func (e *Editor) PasteDocument(doc *Document) int {
	if doc == nil || len(doc.Objects) == 0 {
		return 0
	}

	ids := make(map[int]int)
	var pasted []*Object
	for _, src := range doc.Objects {
		if src.Kind() == KindConnector {
			continue
		}
		obj := src.clone()
		obj.Shape.translate(pasteOffset, pasteOffset)
		oldID := obj.ID
		e.canvas.Add(obj)
		ids[oldID] = obj.ID
		pasted = append(pasted, obj)
	}
	for _, src := range doc.Objects {
		conn, ok := src.Shape.(*ConnectorShape)
		if !ok {
			continue
		}
		from, okFrom := ids[conn.FromID]
		to, okTo := ids[conn.ToID]
		if !okFrom || !okTo {
			continue
		}
		obj := src.clone()
		obj.Shape = &ConnectorShape{FromID: from, ToID: to}
		pasted = append(pasted, e.canvas.Add(obj))
	}
	if len(pasted) == 0 {
		return 0
	}

	e.reattachImages()
	e.selection = pasted
	e.commit()
	return len(pasted)
}

// CopySelection puts the selection on the system clipboard as a document.
func (e *Editor) CopySelection() (int, error) {
	doc := copyDocument(e.canvas, e.selection)
	if len(doc.Objects) == 0 {
		return 0, nil
	}
	data, err := EncodeDocument(doc, false)
	if err != nil {
		return 0, fmt.Errorf("encode clipboard: %w", err)
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		return 0, fmt.Errorf("write clipboard: %w", err)
	}
	return len(doc.Objects), nil
}

// Paste inserts the clipboard contents. A copied document is pasted as
// objects; any other text becomes a text object in the middle of the view.
func (e *Editor) Paste() (int, error) {
	raw, err := readClipboardText()
	if err != nil {
		return 0, fmt.Errorf("read clipboard: %w", err)
	}
	if doc, err := ParseDocument([]byte(raw)); err == nil && doc.Objects != nil {
		return e.PasteDocument(doc), nil
	}

	text := cleanClipboardText(raw)
	if text == "" {
		return 0, nil
	}
	at := e.view.ScreenToCanvas(Point{e.view.Width / 2, e.view.Height / 2})
	obj := e.AddObject(&TextShape{X: at.X, Y: at.Y, Text: text, FontSize: e.fontSize})
	e.selection = []*Object{obj}
	return 1, nil
}
