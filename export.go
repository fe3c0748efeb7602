package main

import (
	"fmt"
	"log"
	"os"
	"time"
)

// DefaultExportName is the file name offered when saving the scene.
func DefaultExportName() string {
	return fmt.Sprintf("inkplane-%d.json", time.Now().UnixMilli())
}

// SaveFile writes the scene as an indented document.
func (e *Editor) SaveFile(path string) error {
	data, err := EncodeDocument(e.Document(), true)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	log.Printf("[save] wrote %d objects to %s", e.canvas.Len(), path)
	return nil
}

// LoadFile replaces the scene with the document at path. On a read or parse
// error the scene is left as it was. A document without an object list is
// accepted but changes nothing, which is reported by loaded being false.
func (e *Editor) LoadFile(path string) (doc *Document, loaded bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	doc, err = ParseDocument(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	loaded = e.Load(doc)
	if loaded {
		log.Printf("[load] loaded %d objects from %s (%d skipped)", len(doc.Objects), path, len(doc.Skipped))
	}
	return doc, loaded, nil
}
