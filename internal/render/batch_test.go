package render

import (
	"math/rand"
	"testing"

	"mini-engine/internal/graphics"
	"mini-engine/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func models(k int) []*scene.TexturedModel {
	out := make([]*scene.TexturedModel, k)
	for i := range out {
		out[i] = &scene.TexturedModel{Geometry: &graphics.Geometry{ID: graphics.GeometryID(i + 1), VertexCount: 3}}
	}
	return out
}

func entities(n int, ms []*scene.TexturedModel, rng *rand.Rand) []*scene.Entity {
	out := make([]*scene.Entity, n)
	for i := range out {
		m := ms[rng.Intn(len(ms))]
		out[i] = scene.NewEntity(m, mgl32.Vec3{float32(i), 0, 0}, 0, 0, 0, 1)
	}
	return out
}

func TestBatchMapGroupsByGeometry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, tc := range []struct{ n, k int }{{1, 1}, {10, 3}, {200, 17}, {1000, 50}} {
		ms := models(tc.k)
		es := entities(tc.n, ms, rng)

		seen := make(map[graphics.GeometryID]bool)
		for _, e := range es {
			seen[e.Model.Geometry.ID] = true
		}

		m := NewBatchMap()
		m.Build(es)
		require.Equal(t, len(seen), m.Len())

		total := 0
		members := make(map[*scene.Entity]int)
		for _, b := range m.Batches() {
			for _, e := range b.Entities {
				assert.Equal(t, b.Geometry.ID, e.Model.Geometry.ID)
				members[e]++
			}
			total += len(b.Entities)
		}
		assert.Equal(t, tc.n, total)
		for _, c := range members {
			assert.Equal(t, 1, c)
		}
	}
}

func TestBatchMapKeepsInsertionOrder(t *testing.T) {
	ms := models(2)
	a := scene.NewEntity(ms[1], mgl32.Vec3{}, 0, 0, 0, 1)
	b := scene.NewEntity(ms[0], mgl32.Vec3{}, 0, 0, 0, 1)
	c := scene.NewEntity(ms[1], mgl32.Vec3{}, 0, 0, 0, 1)

	m := NewBatchMap()
	m.Build([]*scene.Entity{a, b, c})

	batches := m.Batches()
	require.Len(t, batches, 2)
	assert.Equal(t, graphics.GeometryID(2), batches[0].Geometry.ID)
	assert.Equal(t, []*scene.Entity{a, c}, batches[0].Entities)
	assert.Same(t, ms[1], batches[0].Model)

	got, ok := m.Batch(1)
	require.True(t, ok)
	assert.Equal(t, []*scene.Entity{b}, got.Entities)
}

func TestBatchMapRebuildClears(t *testing.T) {
	ms := models(3)
	es := entities(30, ms, rand.New(rand.NewSource(1)))

	m := NewBatchMap()
	m.Build(es)
	require.NotZero(t, m.Len())

	m.Build(nil)
	assert.Zero(t, m.Len())
	assert.Empty(t, m.Batches())
	_, ok := m.Batch(1)
	assert.False(t, ok)

	// a second empty frame drops the idle groups entirely
	m.Build([]*scene.Entity{})
	assert.Empty(t, m.batches)
}

func TestBatchMapSkipsMissingGeometry(t *testing.T) {
	m := NewBatchMap()
	m.Add(nil)
	m.Add(scene.NewEntity(nil, mgl32.Vec3{}, 0, 0, 0, 1))
	m.Add(scene.NewEntity(&scene.TexturedModel{}, mgl32.Vec3{}, 0, 0, 0, 1))
	assert.Zero(t, m.Len())
}

func BenchmarkBatchMapBuild(b *testing.B) {
	ms := models(64)
	es := entities(5000, ms, rand.New(rand.NewSource(42)))
	m := NewBatchMap()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Build(es)
	}
}
