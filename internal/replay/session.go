// Package replay ties one opened replay view together: the immutable
// annotation list, the playback clock, the display geometry and the
// progressive renderer. A Session is created when the view opens and closed
// when it closes; nothing in it outlives the view, and supplying a different
// annotation list means building a new Session.
package replay

import (
	"sync"
	"time"

	"github.com/jm-ren/SeeingwithHand-sub001/internal/annotation"
	"github.com/jm-ren/SeeingwithHand-sub001/internal/geometry"
	"github.com/jm-ren/SeeingwithHand-sub001/internal/playback"
	"github.com/jm-ren/SeeingwithHand-sub001/internal/render"
)

// Command actions accepted by Apply.
const (
	ActionPlay    = "play"
	ActionPause   = "pause"
	ActionRestart = "restart"
	ActionSpeed   = "speed"
	ActionSeek    = "seek"
	ActionResize  = "resize"
)

// Command is a transport or viewport instruction from the host UI.
type Command struct {
	Action   string  `json:"action"`
	Progress float64 `json:"progress,omitempty"` // seek
	Width    float64 `json:"width,omitempty"`    // resize
	Height   float64 `json:"height,omitempty"`   // resize
}

// Frame is one complete redraw: the transport state plus the display-space
// draw ops for the current virtual time.
type Frame struct {
	playback.Snapshot
	Ops []render.Op `json:"ops"`
}

// Session owns the mutable playback state of one open replay view. All
// mutation goes through Apply and the tick callback, both serialized by one
// mutex; there is exactly one active ticker per session, started when the
// clock starts playing and stopped when it pauses, finishes or the session
// closes.
type Session struct {
	mu          sync.Mutex
	annotations []annotation.Annotation
	clock       *playback.Clock
	display     geometry.Display
	renderer    render.Renderer
	ticker      *playback.Ticker
	onFrame     func(Frame)
	closed      bool
}

// NewSession seeds a session with a finished, ordered annotation list and the
// source image's natural size. The container size arrives later via a resize
// command; until then redraws produce no ops (geometry readiness gate).
func NewSession(list []annotation.Annotation, naturalW, naturalH float64, tickInterval time.Duration) *Session {
	return &Session{
		annotations: list,
		clock:       playback.NewClock(annotation.Duration(list)),
		display:     geometry.Display{NaturalW: naturalW, NaturalH: naturalH},
		ticker:      playback.NewTicker(tickInterval),
	}
}

// OnFrame registers the frame sink. Frames are delivered synchronously from
// the tick goroutine and from Apply.
func (s *Session) OnFrame(fn func(Frame)) {
	s.mu.Lock()
	s.onFrame = fn
	s.mu.Unlock()
}

// SetTrace installs the renderer's diagnostic hook.
func (s *Session) SetTrace(t render.Trace) {
	s.mu.Lock()
	s.renderer.Trace = t
	s.mu.Unlock()
}

// Apply executes one command and emits the resulting frame.
func (s *Session) Apply(cmd Command) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	switch cmd.Action {
	case ActionPlay:
		s.clock.Play()
	case ActionPause:
		s.clock.Pause()
	case ActionRestart:
		s.clock.Restart()
	case ActionSpeed:
		s.clock.CycleSpeed()
	case ActionSeek:
		s.clock.SeekProgress(cmd.Progress)
	case ActionResize:
		s.display.ContainerW = cmd.Width
		s.display.ContainerH = cmd.Height
	}
	s.syncTickerLocked()
	frame, sink := s.frameLocked()
	s.mu.Unlock()

	if sink != nil {
		sink(frame)
	}
}

// Frame renders the current state without mutating anything.
func (s *Session) Frame() Frame {
	s.mu.Lock()
	frame, _ := s.frameLocked()
	s.mu.Unlock()
	return frame
}

// Close stops the ticker and detaches the session. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.onFrame = nil
	s.mu.Unlock()
	s.ticker.Stop()
}

// step advances the clock by one tick and emits a frame. It is the ticker
// callback; tests call it directly to advance a simulated clock without
// real waits.
func (s *Session) step(elapsedMs int64) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.clock.Advance(elapsedMs)
	s.syncTickerLocked()
	frame, sink := s.frameLocked()
	s.mu.Unlock()

	if sink != nil {
		sink(frame)
	}
}

// syncTickerLocked reconciles the ticker with the clock's playing state.
func (s *Session) syncTickerLocked() {
	if s.clock.Playing() {
		s.ticker.Start(s.step)
	} else {
		s.ticker.Stop()
	}
}

func (s *Session) frameLocked() (Frame, func(Frame)) {
	return Frame{
		Snapshot: s.clock.Snapshot(),
		Ops:      s.renderer.Render(s.annotations, s.clock.CurrentTime(), s.display),
	}, s.onFrame
}
