package scene

import (
	"slices"

	"github.com/google/uuid"
)

// Scene holds the lists a caller hands to the master renderer each frame.
type Scene struct {
	Entities []*Entity
	Terrains []*Terrain
	GUIs     []*GuiTexture
	Lights   []Light
	SkyBox   *SkyBox
}

func (s *Scene) AddEntity(e *Entity) {
	s.Entities = append(s.Entities, e)
}

// Entity finds an entity by id.
func (s *Scene) Entity(id uuid.UUID) (*Entity, bool) {
	for _, e := range s.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// RemoveEntity drops the entity with the given id and reports whether it
// was present.
func (s *Scene) RemoveEntity(id uuid.UUID) bool {
	i := slices.IndexFunc(s.Entities, func(e *Entity) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	s.Entities = slices.Delete(s.Entities, i, i+1)
	return true
}

// HeightAt samples the tile under (x, z); 0 where there is no terrain.
func (s *Scene) HeightAt(x, z float32) float32 {
	return Terrains(s.Terrains).HeightAt(x, z)
}

// Terrains samples whichever tile covers a position.
type Terrains []*Terrain

// At returns the first tile covering (x, z), or nil. Nil entries are skipped.
func (ts Terrains) At(x, z float32) *Terrain {
	for _, t := range ts {
		if t == nil {
			continue
		}
		if x >= t.X && x < t.X+t.Size && z >= t.Z && z < t.Z+t.Size {
			return t
		}
	}
	return nil
}

func (ts Terrains) HeightAt(x, z float32) float32 {
	if t := ts.At(x, z); t != nil {
		return t.HeightAt(x, z)
	}
	return 0
}
