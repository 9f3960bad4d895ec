package render

import (
	"mini-engine/internal/graphics"
	"mini-engine/internal/scene"
)

// Batch is every entity of one frame that shares a geometry. The model of
// the first entity supplies the material for the whole batch.
type Batch struct {
	Geometry *graphics.Geometry
	Model    *scene.TexturedModel
	Entities []*scene.Entity
}

// BatchMap groups entities by geometry so each mesh is bound once per
// frame. It is rebuilt every frame; batches returned by it are only valid
// until the next Clear.
type BatchMap struct {
	batches map[graphics.GeometryID]*Batch
	order   []*Batch
}

func NewBatchMap() *BatchMap {
	return &BatchMap{batches: make(map[graphics.GeometryID]*Batch)}
}

// Clear empties every group. Groups unused for a whole frame are dropped;
// the others keep their backing arrays for reuse.
func (m *BatchMap) Clear() {
	for id, b := range m.batches {
		if len(b.Entities) == 0 {
			delete(m.batches, id)
			continue
		}
		clear(b.Entities)
		b.Entities = b.Entities[:0]
		b.Model = nil
	}
	clear(m.order)
	m.order = m.order[:0]
}

// Add appends e to the group of its geometry. Entities without geometry are
// ignored.
func (m *BatchMap) Add(e *scene.Entity) {
	if e == nil {
		return
	}
	g := e.Geometry()
	if g == nil {
		return
	}
	b, ok := m.batches[g.ID]
	if !ok {
		b = &Batch{Geometry: g}
		m.batches[g.ID] = b
	}
	if len(b.Entities) == 0 {
		b.Model = e.Model
		m.order = append(m.order, b)
	}
	b.Entities = append(b.Entities, e)
}

// Build replaces the contents with entities.
func (m *BatchMap) Build(entities []*scene.Entity) {
	m.Clear()
	for _, e := range entities {
		m.Add(e)
	}
}

// Len returns the number of non-empty groups.
func (m *BatchMap) Len() int { return len(m.order) }

// Batches returns the groups in the order their first entity was added.
func (m *BatchMap) Batches() []*Batch { return m.order }

// Batch returns the group of a geometry if it holds entities this frame.
func (m *BatchMap) Batch(id graphics.GeometryID) (*Batch, bool) {
	b, ok := m.batches[id]
	if !ok || len(b.Entities) == 0 {
		return nil, false
	}
	return b, true
}
