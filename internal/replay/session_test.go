package replay

import (
	"testing"
	"time"

	"github.com/jm-ren/SeeingwithHand-sub001/internal/annotation"
	"github.com/jm-ren/SeeingwithHand-sub001/internal/playback"
)

func testAnnotations() []annotation.Annotation {
	return []annotation.Annotation{
		{ID: "a", Type: annotation.TypePoint, Timestamp: 1000, Points: []annotation.Point{{X: 10, Y: 10}}},
		{ID: "b", Type: annotation.TypePoint, Timestamp: 1500, Points: []annotation.Point{{X: 20, Y: 20}}},
		{ID: "c", Type: annotation.TypePoint, Timestamp: 2000, Points: []annotation.Point{{X: 30, Y: 30}}},
	}
}

// newTestSession builds a session whose ticker is never started by tests;
// time is advanced by calling step directly, simulating scheduler ticks
// without real waits.
func newTestSession() *Session {
	return NewSession(testAnnotations(), 100, 100, time.Hour)
}

func TestFrameBeforeResizeHasNoOps(t *testing.T) {
	s := newTestSession()
	defer s.Close()

	f := s.Frame()
	if len(f.Ops) != 0 {
		t.Errorf("no container size yet, expected empty frame, got %d ops", len(f.Ops))
	}
	if f.Playing || f.Progress != 0 {
		t.Errorf("fresh session should be paused at zero, got %+v", f.Snapshot)
	}
}

func TestResizeEnablesRendering(t *testing.T) {
	s := newTestSession()
	defer s.Close()

	s.Apply(Command{Action: ActionResize, Width: 200, Height: 200})
	f := s.Frame()
	if len(f.Ops) != 1 {
		t.Fatalf("expected the first mark visible at t=0, got %d ops", len(f.Ops))
	}
	// 100px natural space in a 200px container: scale 2.
	if f.Ops[0].X != 20 || f.Ops[0].Y != 20 {
		t.Errorf("expected mark projected to (20,20), got (%v,%v)", f.Ops[0].X, f.Ops[0].Y)
	}
}

func TestStepAdvancesAndFinishes(t *testing.T) {
	var frames []Frame
	s := newTestSession()
	defer s.Close()
	s.OnFrame(func(f Frame) { frames = append(frames, f) })

	s.Apply(Command{Action: ActionResize, Width: 100, Height: 100})
	s.Apply(Command{Action: ActionPlay})
	if !s.ticker.Running() {
		t.Fatal("playing session should run its ticker")
	}

	// Total duration is 1000ms; ten 100ms ticks reach the end.
	for i := 0; i < 10; i++ {
		s.step(playback.TickIntervalMs)
	}

	last := frames[len(frames)-1]
	if !last.Finished || last.Playing {
		t.Errorf("expected finished transport state, got %+v", last.Snapshot)
	}
	if last.Progress != 100 {
		t.Errorf("expected progress 100, got %v", last.Progress)
	}
	if len(last.Ops) != 3 {
		t.Errorf("at the end all 3 marks should be visible, got %d", len(last.Ops))
	}
	if s.ticker.Running() {
		t.Error("ticker must stop when the clock finishes")
	}
}

func TestPauseStopsTicker(t *testing.T) {
	s := newTestSession()
	defer s.Close()

	s.Apply(Command{Action: ActionPlay})
	s.Apply(Command{Action: ActionPause})
	if s.ticker.Running() {
		t.Error("paused session must stop its ticker")
	}

	before := s.Frame().CurrentTime
	s.step(playback.TickIntervalMs) // stray tick after pause is inert
	if got := s.Frame().CurrentTime; got != before {
		t.Errorf("stray tick moved time from %d to %d", before, got)
	}
}

func TestSeekRendersWithoutPlaying(t *testing.T) {
	s := newTestSession()
	defer s.Close()
	s.Apply(Command{Action: ActionResize, Width: 100, Height: 100})

	s.Apply(Command{Action: ActionSeek, Progress: 50})
	f := s.Frame()
	if f.Playing {
		t.Error("seek must not start playback")
	}
	if f.CurrentTime != 500 {
		t.Errorf("expected time 500 after seeking to 50%%, got %d", f.CurrentTime)
	}
	if len(f.Ops) != 2 {
		t.Errorf("at t=500 two marks should be visible, got %d", len(f.Ops))
	}
}

func TestCloseIsTerminal(t *testing.T) {
	var frames int
	s := newTestSession()
	s.OnFrame(func(Frame) { frames++ })

	s.Apply(Command{Action: ActionPlay})
	s.Close()
	if s.ticker.Running() {
		t.Error("close must stop the ticker")
	}

	frames = 0
	s.Apply(Command{Action: ActionPlay})
	s.step(playback.TickIntervalMs)
	if frames != 0 {
		t.Errorf("closed session emitted %d frames", frames)
	}
}

func TestSpeedCommandCycles(t *testing.T) {
	s := newTestSession()
	defer s.Close()

	want := []float64{2, 4, 0.5, 1}
	for _, expected := range want {
		s.Apply(Command{Action: ActionSpeed})
		if got := s.Frame().Speed; got != expected {
			t.Fatalf("expected speed %v, got %v", expected, got)
		}
	}
}
