// Package motion implements the editor reveal/dismiss animation sequencer:
// ordered stages of timed property transitions, driven by a transition
// engine. The engine is a collaborator with a fixed contract (start value,
// end value, duration, curve, completion signal) so tests and reduced-motion
// setups can substitute an instantaneous one.
package motion

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// Property identifies the animated property of a transition.
type Property int

// Animated properties. PropNone is a pure timed wait.
const (
	PropNone Property = iota
	PropOpacity
	PropHeight
	PropScroll
)

// Target receives interpolated property values while a transition runs.
type Target interface {
	SetMotion(p Property, v float64)
}

// Transition is one timed property change.
type Transition struct {
	Target   Target
	Property Property
	From     float64
	To       float64
	Duration time.Duration
	Curve    Curve
}

// Wait returns a pure timed wait.
func Wait(d time.Duration) Transition {
	return Transition{Property: PropNone, Duration: d, Curve: Linear}
}

// Engine runs transitions. Run starts one; the returned command eventually
// resolves with done (if non-nil) once the transition completes. Advance
// must be fed every message from the update loop so a frame-based engine can
// step its running transitions. Engines are only touched from the update
// loop and need no locking.
type Engine interface {
	Run(tr Transition, done tea.Msg) tea.Cmd
	Advance(msg tea.Msg) tea.Cmd
}

// FrameMsg is emitted by the frame engine for each animation frame.
type FrameMsg struct {
	ID int64
	At time.Time
}

const defaultFrameInterval = 33 * time.Millisecond

var nextTransitionID atomic.Int64

type runningTransition struct {
	tr    Transition
	start time.Time
	done  tea.Msg
}

// Frames is the production engine: it interpolates each transition over
// real time, emitting a frame roughly every 33ms.
type Frames struct {
	interval time.Duration
	running  map[int64]*runningTransition
}

// NewFrames creates a frame engine with the default frame interval.
func NewFrames() *Frames {
	return &Frames{
		interval: defaultFrameInterval,
		running:  make(map[int64]*runningTransition),
	}
}

// Run starts a transition. Zero-duration transitions complete inline.
func (f *Frames) Run(tr Transition, done tea.Msg) tea.Cmd {
	if tr.Duration <= 0 {
		finish(tr)
		return message(done)
	}

	id := nextTransitionID.Add(1)
	f.running[id] = &runningTransition{tr: tr, start: time.Now()}
	f.running[id].done = done
	return f.frame(id)
}

// Advance steps the transition a FrameMsg belongs to. Messages for
// completed or foreign transitions are ignored.
func (f *Frames) Advance(msg tea.Msg) tea.Cmd {
	fm, ok := msg.(FrameMsg)
	if !ok {
		return nil
	}
	r, ok := f.running[fm.ID]
	if !ok {
		return nil
	}

	elapsed := time.Since(r.start)
	if elapsed >= r.tr.Duration {
		finish(r.tr)
		delete(f.running, fm.ID)
		return message(r.done)
	}

	t := float64(elapsed) / float64(r.tr.Duration)
	apply(r.tr, t)
	return f.frame(fm.ID)
}

func (f *Frames) frame(id int64) tea.Cmd {
	return tea.Tick(f.interval, func(at time.Time) tea.Msg {
		return FrameMsg{ID: id, At: at}
	})
}

// Immediate is an engine that completes every transition instantly. Used for
// reduced motion and by tests that assert end states rather than timing.
type Immediate struct{}

func (Immediate) Run(tr Transition, done tea.Msg) tea.Cmd {
	finish(tr)
	return message(done)
}

func (Immediate) Advance(tea.Msg) tea.Cmd { return nil }

func apply(tr Transition, t float64) {
	if tr.Property == PropNone || tr.Target == nil {
		return
	}
	curve := tr.Curve
	if curve == nil {
		curve = Linear
	}
	tr.Target.SetMotion(tr.Property, tr.From+(tr.To-tr.From)*curve(t))
}

func finish(tr Transition) {
	if tr.Property == PropNone || tr.Target == nil {
		return
	}
	tr.Target.SetMotion(tr.Property, tr.To)
}

func message(msg tea.Msg) tea.Cmd {
	if msg == nil {
		return nil
	}
	return func() tea.Msg { return msg }
}
