package profiling

import "time"

// FrameTimer brackets frames and reports the elapsed time of the last one.
type FrameTimer struct {
	now   func() time.Time
	start time.Time
	last  time.Duration
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{now: time.Now}
}

// NewFrameTimerWithClock uses now instead of the wall clock.
func NewFrameTimerWithClock(now func() time.Time) *FrameTimer {
	return &FrameTimer{now: now}
}

// Start marks the beginning of a frame and clears the section totals.
func (f *FrameTimer) Start() {
	f.start = f.now()
	ResetFrame()
}

// End marks the end of a frame and returns its duration in seconds. Without
// a matching Start it returns 0.
func (f *FrameTimer) End() float32 {
	if f.start.IsZero() {
		return 0
	}
	f.last = f.now().Sub(f.start)
	f.start = time.Time{}
	return float32(f.last.Seconds())
}

// Last returns the duration of the most recently ended frame.
func (f *FrameTimer) Last() time.Duration {
	return f.last
}
