// Package playback owns the virtual timeline of a replay: current time,
// play/pause state and the speed multiplier. It never renders anything; the
// renderer is re-run against the clock's time on every tick.
package playback

// TickIntervalMs is the scheduler period driving a playing clock.
const TickIntervalMs int64 = 100

// Speeds is the cycle of playback multipliers, advanced in order by
// CycleSpeed and wrapping from the last back to the first.
var Speeds = []float64{0.5, 1, 2, 4}

const defaultSpeedIndex = 1 // 1.0x

// Clock is the replay's virtual timeline. Time is in milliseconds and always
// within [0, duration]. A Clock is created fresh for each opened replay view
// and advanced only by Advance; it does no scheduling of its own.
type Clock struct {
	duration int64
	current  int64
	speedIdx int
	playing  bool
	finished bool
}

// Snapshot is the transport state a host UI binds its controls to.
type Snapshot struct {
	CurrentTime int64   `json:"currentTime"`
	Playing     bool    `json:"playing"`
	Speed       float64 `json:"speed"`
	Progress    float64 `json:"progress"`
	Finished    bool    `json:"finished"`
}

// NewClock creates a paused clock at time zero for a replay of the given
// total duration. A non-positive duration is the degenerate single-mark
// replay: progress reads 0 until time first moves, then 100.
func NewClock(durationMs int64) *Clock {
	if durationMs < 0 {
		durationMs = 0
	}
	return &Clock{duration: durationMs, speedIdx: defaultSpeedIndex}
}

// Duration returns the total replay length in milliseconds.
func (c *Clock) Duration() int64 { return c.duration }

// CurrentTime returns elapsed virtual milliseconds since replay start.
func (c *Clock) CurrentTime() int64 { return c.current }

// Playing reports whether the clock is advancing.
func (c *Clock) Playing() bool { return c.playing }

// Finished reports whether the clock ran to completion and stopped.
func (c *Clock) Finished() bool { return c.finished }

// Speed returns the current playback multiplier.
func (c *Clock) Speed() float64 { return Speeds[c.speedIdx] }

// Progress returns playback position as a percentage in [0, 100].
func (c *Clock) Progress() float64 {
	if c.duration <= 0 {
		if c.finished {
			return 100
		}
		return 0
	}
	p := float64(c.current) / float64(c.duration) * 100
	if p > 100 {
		p = 100
	}
	return p
}

// Play starts the clock. A finished clock rewinds to zero and plays again;
// an already-playing clock is left alone.
func (c *Clock) Play() {
	if c.playing {
		return
	}
	if c.finished || (c.duration > 0 && c.current >= c.duration) {
		c.current = 0
		c.finished = false
	}
	c.playing = true
}

// Pause stops the clock in place.
func (c *Clock) Pause() { c.playing = false }

// Restart rewinds to zero and pauses. It does not auto-resume.
func (c *Clock) Restart() {
	c.current = 0
	c.playing = false
	c.finished = false
}

// CycleSpeed advances to the next multiplier in Speeds, wrapping around.
func (c *Clock) CycleSpeed() {
	c.speedIdx = (c.speedIdx + 1) % len(Speeds)
}

// SeekProgress jumps to the position corresponding to a percentage in
// [0, 100] without changing the play state.
func (c *Clock) SeekProgress(p float64) {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	c.current = int64(float64(c.duration) * p / 100)
	if c.current < c.duration {
		c.finished = false
	}
}

// Advance moves virtual time forward by one scheduler tick of the given real
// length, scaled by the speed multiplier. Crossing the end clamps time to the
// duration, stops playback and marks the clock finished; this is the only way
// into the finished state. A paused clock ignores Advance.
func (c *Clock) Advance(tickMs int64) {
	if !c.playing {
		return
	}
	c.current += int64(float64(tickMs) * c.Speed())
	if c.current >= c.duration {
		c.current = c.duration
		c.playing = false
		c.finished = true
	}
}

// Snapshot captures the transport state for the host UI.
func (c *Clock) Snapshot() Snapshot {
	return Snapshot{
		CurrentTime: c.current,
		Playing:     c.playing,
		Speed:       c.Speed(),
		Progress:    c.Progress(),
		Finished:    c.finished,
	}
}
