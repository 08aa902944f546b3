package motion

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// Stage is one named step of a sequence. Apply runs instantaneously when the
// stage is entered; Run transitions all start together. The stage completes
// when its gate transition does (Gate indexes Run; out-of-range selects the
// last), so a stage may deliberately let a longer transition outlive it: the
// reveal scroll overlaps the shorter settle wait this way.
type Stage struct {
	Name  string
	Apply func()
	Run   []Transition
	Gate  int // index into Run; -1 selects the last transition
}

// StageDoneMsg signals that a sequence's current stage finished. Carries the
// sequence id so messages from abandoned sequences are ignored.
type StageDoneMsg struct {
	Seq   int64
	Stage int
}

var nextSequenceID atomic.Int64

// Sequence is a strictly ordered chain of stages: every stage completes
// before the next begins. Sequences on different anchors interleave freely;
// within one sequence there is no reordering and no skipping.
type Sequence struct {
	id       int64
	name     string
	stages   []Stage
	current  int
	engine   Engine
	done     tea.Msg
	finished bool
}

// NewSequence creates a sequence that emits done when its final stage
// completes.
func NewSequence(name string, stages []Stage, engine Engine, done tea.Msg) *Sequence {
	return &Sequence{
		id:      nextSequenceID.Add(1),
		name:    name,
		stages:  stages,
		current: -1,
		engine:  engine,
		done:    done,
	}
}

// ID returns the sequence's unique id.
func (s *Sequence) ID() int64 { return s.id }

// Name returns the effect name ("reveal" or "dismiss").
func (s *Sequence) Name() string { return s.name }

// Finished reports whether the final stage has completed.
func (s *Sequence) Finished() bool { return s.finished }

// Start enters the first stage.
func (s *Sequence) Start() tea.Cmd {
	return s.enter(0)
}

// Update advances the sequence when msg completes its current stage. The
// returned bool is true once the whole sequence has finished.
func (s *Sequence) Update(msg tea.Msg) (tea.Cmd, bool) {
	sd, ok := msg.(StageDoneMsg)
	if !ok || s.finished || sd.Seq != s.id || sd.Stage != s.current {
		return nil, s.finished
	}
	return s.enter(s.current + 1), s.finished
}

// enter applies stages from i onward until one has transitions to run, or
// the sequence ends. Stages without transitions are pure Apply steps and
// complete inline.
func (s *Sequence) enter(i int) tea.Cmd {
	for ; i < len(s.stages); i++ {
		stage := s.stages[i]
		if stage.Apply != nil {
			stage.Apply()
		}
		if len(stage.Run) == 0 {
			continue
		}

		s.current = i
		gate := stage.Gate
		if gate < 0 || gate >= len(stage.Run) {
			gate = len(stage.Run) - 1
		}

		cmds := make([]tea.Cmd, 0, len(stage.Run))
		for j, tr := range stage.Run {
			var done tea.Msg
			if j == gate {
				done = StageDoneMsg{Seq: s.id, Stage: i}
			}
			if cmd := s.engine.Run(tr, done); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return tea.Batch(cmds...)
	}

	s.finished = true
	s.current = len(s.stages)
	return message(s.done)
}
