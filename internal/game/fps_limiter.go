package game

import "time"

// PausedFPS is the frame cap applied while the game is paused.
const PausedFPS = 30

// spinWindow is how close to the deadline the limiter stops sleeping and
// polls the clock instead.
const spinWindow = 200 * time.Microsecond

// FrameLimiter paces the loop to a frame rate by keeping a running deadline
// for the end of the current frame.
type FrameLimiter struct {
	deadline time.Time
}

func NewFrameLimiter() *FrameLimiter {
	return &FrameLimiter{}
}

// Wait holds the caller until the current frame's slot at fps frames per
// second has passed and returns how long it held. fps <= 0 means uncapped:
// it returns at once and drops the schedule.
func (l *FrameLimiter) Wait(fps int) time.Duration {
	if fps <= 0 {
		l.deadline = time.Time{}
		return 0
	}
	period := time.Second / time.Duration(fps)
	start := time.Now()

	// A frame that overran its slot by more than a period restarts the
	// schedule from now instead of rushing the following frames.
	if l.deadline.IsZero() || start.Sub(l.deadline) > period {
		l.deadline = start
	}
	l.deadline = l.deadline.Add(period)

	for {
		left := time.Until(l.deadline)
		if left <= 0 {
			break
		}
		if left > spinWindow {
			time.Sleep(left - spinWindow)
		}
	}
	return time.Since(start)
}

// Deadline is the end of the frame slot computed by the last Wait.
func (l *FrameLimiter) Deadline() time.Time { return l.deadline }
