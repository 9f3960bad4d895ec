package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackAndTopN(t *testing.T) {
	ResetFrame()
	mu.Lock()
	frameTotals["render.Entities"] = 4200 * time.Microsecond
	frameTotals["render.Terrain"] = 2 * time.Millisecond
	frameTotals["player.Move"] = 100 * time.Microsecond
	mu.Unlock()

	assert.Equal(t, "render.Entities:4.2ms, render.Terrain:2ms", TopN(2))
	assert.Len(t, Snapshot(), 3)
	assert.Contains(t, TopN(10), "player.Move:0.1ms")

	Track("extra")()
	assert.Contains(t, Snapshot(), "extra")

	ResetFrame()
	assert.Empty(t, Snapshot())
	assert.Equal(t, "", TopN(3))
}

func TestFrameTimer(t *testing.T) {
	now := time.Unix(100, 0)
	ft := NewFrameTimerWithClock(func() time.Time { return now })

	assert.Zero(t, ft.End())

	ft.Start()
	now = now.Add(250 * time.Millisecond)
	assert.InDelta(t, 0.25, ft.End(), 1e-6)
	assert.Equal(t, 250*time.Millisecond, ft.Last())

	// End without a new Start does not reuse the old mark
	assert.Zero(t, ft.End())
}
