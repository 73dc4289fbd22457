// Package sketch defines the drawing document: an ordered entity
// store with a name index, drawing-wide defaults, and a spatial index
// rebuilt wholesale per document version.
package sketch

import (
	"fmt"

	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
	"github.com/chazu/vellum/pkg/spatial"
)

// Defaults contains drawing-wide default settings.
type Defaults struct {
	Units     string         `json:"units"` // "mm" only for now
	Tolerance geom.Tolerance `json:"tolerance"`
}

// Sketch is the top-level drawing document. It owns the entities the
// kernel operates on; edit operations return new entities that the
// caller adds back. Not safe for concurrent mutation.
type Sketch struct {
	entities  map[entity.ID]entity.Entity
	order     []entity.ID
	nameIndex map[string]entity.ID
	names     map[entity.ID]string
	Defaults  Defaults
	version   uint64

	index        *spatial.QuadTree
	indexVersion uint64
}

// New creates an empty sketch with default settings.
func New() *Sketch {
	return &Sketch{
		entities:  make(map[entity.ID]entity.Entity),
		nameIndex: make(map[string]entity.ID),
		names:     make(map[entity.ID]string),
		Defaults: Defaults{
			Units:     "mm",
			Tolerance: geom.DefaultTolerance(),
		},
	}
}

// Add inserts an entity. Re-adding an existing ID is a no-op.
func (s *Sketch) Add(e entity.Entity) {
	if _, ok := s.entities[e.ID()]; ok {
		return
	}
	s.entities[e.ID()] = e
	s.order = append(s.order, e.ID())
	s.version++
}

// AddNamed inserts an entity under a user-assigned name.
func (s *Sketch) AddNamed(name string, e entity.Entity) error {
	if _, exists := s.nameIndex[name]; exists {
		return fmt.Errorf("sketch: name %q already defined", name)
	}
	s.Add(e)
	s.nameIndex[name] = e.ID()
	s.names[e.ID()] = name
	return nil
}

// Remove deletes the entity with the given ID. It reports whether the
// entity was present.
func (s *Sketch) Remove(id entity.ID) bool {
	if _, ok := s.entities[id]; !ok {
		return false
	}
	delete(s.entities, id)
	if name, ok := s.names[id]; ok {
		delete(s.nameIndex, name)
		delete(s.names, id)
	}
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.version++
	return true
}

// Get returns the entity with the given ID, or nil.
func (s *Sketch) Get(id entity.ID) entity.Entity {
	return s.entities[id]
}

// Lookup returns the entity with the given user-assigned name, or nil.
func (s *Sketch) Lookup(name string) entity.Entity {
	id, ok := s.nameIndex[name]
	if !ok {
		return nil
	}
	return s.entities[id]
}

// Name returns the user-assigned name of the entity, or "".
func (s *Sketch) Name(id entity.ID) string {
	return s.names[id]
}

// All returns the entities in insertion order.
func (s *Sketch) All() []entity.Entity {
	out := make([]entity.Entity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entities[id])
	}
	return out
}

// Len returns the number of entities.
func (s *Sketch) Len() int { return len(s.entities) }

// Version returns the mutation counter. It increments on every Add or
// Remove; callers use it to invalidate derived state.
func (s *Sketch) Version() uint64 { return s.version }

// Touch bumps the version after in-place entity mutation, which the
// sketch cannot observe directly.
func (s *Sketch) Touch() { s.version++ }

// Index returns the spatial index over the current entity set,
// rebuilding it wholesale when the document has changed since the last
// build.
func (s *Sketch) Index() *spatial.QuadTree {
	if s.index == nil || s.indexVersion != s.version {
		s.index = spatial.New(geom.NewBox(geom.V(0, 0), geom.V(1, 1)))
		s.index.Rebuild(s.All())
		s.indexVersion = s.version
	}
	return s.index
}
