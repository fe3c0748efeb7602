package main

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
)

const projectPrefix = "project/"

// ProjectInfo summarizes a stored project for the projects list.
type ProjectInfo struct {
	Name    string
	SavedAt time.Time
	Objects int
}

// Projects stores named scenes in a BlobStore.
type Projects struct {
	store BlobStore
	now   func() time.Time
}

func NewProjects(store BlobStore) *Projects {
	return &Projects{store: store, now: time.Now}
}

// Save stores objects under name, replacing any project with that name.
func (p *Projects) Save(name string, objects []*Object) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("project name is empty")
	}
	data, err := EncodeDocument(&Document{
		Version: documentVersion,
		Name:    name,
		SavedAt: p.now().UnixMilli(),
		Objects: objects,
	}, false)
	if err != nil {
		return fmt.Errorf("encode project %s: %w", name, err)
	}
	if err := p.store.Set(projectPrefix+name, string(data)); err != nil {
		log.Printf("[storage] save project %q: %v", name, err)
		return err
	}
	return nil
}

func (p *Projects) Load(name string) (*Document, error) {
	data, err := p.store.Get(projectPrefix + name)
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", name, err)
	}
	return doc, nil
}

func (p *Projects) Delete(name string) error {
	return p.store.Delete(projectPrefix + name)
}

// List returns every stored project, most recently saved first. Projects
// that cannot be read are logged and left out.
func (p *Projects) List() ([]ProjectInfo, error) {
	keys, err := p.store.Keys()
	if err != nil {
		return nil, err
	}

	var out []ProjectInfo
	for _, key := range keys {
		name, ok := strings.CutPrefix(key, projectPrefix)
		if !ok {
			continue
		}
		doc, err := p.Load(name)
		if err != nil {
			log.Printf("[storage] skipping project %q: %v", name, err)
			continue
		}
		out = append(out, ProjectInfo{
			Name:    name,
			SavedAt: time.UnixMilli(doc.SavedAt),
			Objects: len(doc.Objects),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SavedAt.After(out[j].SavedAt)
	})
	return out, nil
}
