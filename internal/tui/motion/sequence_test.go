package motion

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordEngine completes every transition inline and records them in start
// order, so tests can assert sequencing without real timing.
type recordEngine struct {
	ran []Transition
}

func (e *recordEngine) Run(tr Transition, done tea.Msg) tea.Cmd {
	e.ran = append(e.ran, tr)
	finish(tr)
	return message(done)
}

func (e *recordEngine) Advance(tea.Msg) tea.Cmd { return nil }

// collect executes a command tree and returns the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// drive pumps a sequence to completion, feeding stage-done messages back,
// and returns every non-stage message produced (the done message included).
func drive(t *testing.T, seq *Sequence) []tea.Msg {
	t.Helper()

	var out []tea.Msg
	queue := collect(seq.Start())
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "sequence did not terminate")

		msg := queue[0]
		queue = queue[1:]

		if _, ok := msg.(StageDoneMsg); ok {
			cmd, _ := seq.Update(msg)
			queue = append(queue, collect(cmd)...)
			continue
		}
		out = append(out, msg)
	}
	return out
}

type doneMsg struct{}

func TestSequenceRunsStagesInOrder(t *testing.T) {
	engine := &recordEngine{}
	target := NewContainer()

	var applied []string
	seq := NewSequence("test", []Stage{
		{
			Name:  "first",
			Apply: func() { applied = append(applied, "first") },
			Run: []Transition{
				{Target: target, Property: PropHeight, From: 0, To: 1, Duration: time.Second},
			},
		},
		{
			Name:  "apply-only",
			Apply: func() { applied = append(applied, "apply-only") },
		},
		{
			Name: "second",
			Run: []Transition{
				{Target: target, Property: PropOpacity, From: 0, To: 1, Duration: time.Second},
			},
		},
	}, engine, doneMsg{})

	msgs := drive(t, seq)

	assert.True(t, seq.Finished())
	assert.Equal(t, []string{"first", "apply-only"}, applied)

	require.Len(t, engine.ran, 2)
	assert.Equal(t, PropHeight, engine.ran[0].Property)
	assert.Equal(t, PropOpacity, engine.ran[1].Property)

	require.Len(t, msgs, 1)
	assert.IsType(t, doneMsg{}, msgs[0])
}

func TestSequenceGateSelectsTransition(t *testing.T) {
	engine := &recordEngine{}
	target := NewContainer()

	// Gate on the shorter wait: the longer transition still starts, but the
	// stage completes with the gate.
	seq := NewSequence("test", []Stage{
		{
			Name: "overlap",
			Run: []Transition{
				{Target: target, Property: PropHeight, From: 0, To: 1, Duration: 2 * time.Second},
				Wait(time.Second),
			},
			Gate: 1,
		},
	}, engine, doneMsg{})

	msgs := drive(t, seq)

	assert.True(t, seq.Finished())
	require.Len(t, engine.ran, 2)
	require.Len(t, msgs, 1)
}

func TestSequenceIgnoresStaleMessages(t *testing.T) {
	engine := &recordEngine{}
	target := NewContainer()

	seq := NewSequence("test", []Stage{
		{Name: "only", Run: []Transition{
			{Target: target, Property: PropHeight, From: 0, To: 1, Duration: time.Second},
		}},
	}, engine, doneMsg{})

	_ = collect(seq.Start())

	// A message for a different sequence must not advance this one.
	cmd, finished := seq.Update(StageDoneMsg{Seq: seq.ID() + 1000, Stage: 0})
	assert.Nil(t, cmd)
	assert.False(t, finished)

	// A message for a stale stage index is also ignored.
	cmd, finished = seq.Update(StageDoneMsg{Seq: seq.ID(), Stage: 99})
	assert.Nil(t, cmd)
	assert.False(t, finished)
}

func TestSequenceApplyOnlyStagesCompleteInline(t *testing.T) {
	engine := &recordEngine{}

	ran := 0
	seq := NewSequence("test", []Stage{
		{Name: "a", Apply: func() { ran++ }},
		{Name: "b", Apply: func() { ran++ }},
	}, engine, doneMsg{})

	msgs := drive(t, seq)

	assert.True(t, seq.Finished())
	assert.Equal(t, 2, ran)
	require.Len(t, msgs, 1)
}

func TestImmediateEngineFinishesTransition(t *testing.T) {
	c := NewContainer()
	c.BeginReveal()

	cmd := Immediate{}.Run(Transition{
		Target: c, Property: PropOpacity, From: 0, To: 1, Duration: time.Second,
	}, doneMsg{})

	assert.Equal(t, 1.0, c.Opacity())
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	assert.IsType(t, doneMsg{}, msgs[0])
}

func TestFramesEngineInterpolates(t *testing.T) {
	f := NewFrames()
	c := NewContainer()
	c.BeginReveal()

	cmd := f.Run(Transition{
		Target: c, Property: PropHeight, From: 0, To: 1,
		Duration: 250 * time.Millisecond, Curve: Linear,
	}, doneMsg{})
	require.NotNil(t, cmd)

	// Find the running transition's id by advancing with its frame message.
	var id int64
	for k := range f.running {
		id = k
	}

	mid := f.Advance(FrameMsg{ID: id, At: time.Now()})
	require.NotNil(t, mid, "still running, schedules the next frame")

	time.Sleep(300 * time.Millisecond)
	done := f.Advance(FrameMsg{ID: id, At: time.Now()})
	assert.Equal(t, 1.0, c.HeightFrac())

	msgs := collect(done)
	require.Len(t, msgs, 1)
	assert.IsType(t, doneMsg{}, msgs[0])

	// Completed transitions ignore further frames.
	assert.Nil(t, f.Advance(FrameMsg{ID: id, At: time.Now()}))
}

func TestFramesEngineZeroDurationCompletesInline(t *testing.T) {
	f := NewFrames()
	c := NewContainer()
	c.BeginReveal()

	cmd := f.Run(Transition{Target: c, Property: PropOpacity, From: 0, To: 1}, doneMsg{})

	assert.Equal(t, 1.0, c.Opacity())
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
}
