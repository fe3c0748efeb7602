package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// BlobStore keeps named string blobs.
type BlobStore interface {
	// Get returns ErrNotFound when name is unknown.
	Get(name string) (string, error)
	// Set returns ErrQuotaExceeded when the value does not fit.
	Set(name, value string) error
	Delete(name string) error
	Keys() ([]string, error)
}

const indexFilename = "index.yaml"

type blobEntry struct {
	File string `yaml:"file"`
	Size int64  `yaml:"size"`
}

type blobIndex struct {
	Blobs map[string]blobEntry `yaml:"blobs"`
}

// DirStore is a BlobStore backed by a directory. Each blob lives in its own
// file under a random name; index.yaml maps blob names to files. limit caps
// the total size of all blobs, 0 means no limit.
type DirStore struct {
	dir   string
	limit int64
}

func OpenDirStore(dir string, limit int64) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &DirStore{dir: dir, limit: limit}, nil
}

func (s *DirStore) loadIndex() (blobIndex, error) {
	idx := blobIndex{Blobs: make(map[string]blobEntry)}
	data, err := os.ReadFile(filepath.Join(s.dir, indexFilename))
	if errors.Is(err, fs.ErrNotExist) {
		return idx, nil
	}
	if err != nil {
		return idx, fmt.Errorf("read %s: %w", indexFilename, err)
	}
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return idx, fmt.Errorf("parse %s: %w", indexFilename, err)
	}
	if idx.Blobs == nil {
		idx.Blobs = make(map[string]blobEntry)
	}
	return idx, nil
}

func (s *DirStore) saveIndex(idx blobIndex) error {
	data, err := yaml.Marshal(&idx)
	if err != nil {
		return fmt.Errorf("encode %s: %w", indexFilename, err)
	}
	tmp := filepath.Join(s.dir, indexFilename+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", indexFilename, err)
	}
	return os.Rename(tmp, filepath.Join(s.dir, indexFilename))
}

func (s *DirStore) Get(name string) (string, error) {
	idx, err := s.loadIndex()
	if err != nil {
		return "", err
	}
	entry, ok := idx.Blobs[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, entry.File))
	if err != nil {
		return "", fmt.Errorf("read blob %s: %w", name, err)
	}
	return string(data), nil
}

func (s *DirStore) Set(name, value string) error {
	idx, err := s.loadIndex()
	if err != nil {
		return err
	}

	var total int64
	for key, entry := range idx.Blobs {
		if key != name {
			total += entry.Size
		}
	}
	size := int64(len(value))
	if s.limit > 0 && total+size > s.limit {
		return fmt.Errorf("%w: %d of %d bytes used", ErrQuotaExceeded, total, s.limit)
	}

	entry, ok := idx.Blobs[name]
	if !ok {
		entry.File = uuid.NewString() + ".blob"
	}
	if err := os.WriteFile(filepath.Join(s.dir, entry.File), []byte(value), 0o644); err != nil {
		return fmt.Errorf("write blob %s: %w", name, err)
	}
	entry.Size = size
	idx.Blobs[name] = entry
	return s.saveIndex(idx)
}

func (s *DirStore) Delete(name string) error {
	idx, err := s.loadIndex()
	if err != nil {
		return err
	}
	entry, ok := idx.Blobs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(idx.Blobs, name)
	if err := s.saveIndex(idx); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, entry.File)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove blob %s: %w", name, err)
	}
	return nil
}

func (s *DirStore) Keys() ([]string, error) {
	idx, err := s.loadIndex()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(idx.Blobs))
	for key := range idx.Blobs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
