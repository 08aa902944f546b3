package tui

import (
	"github.com/rs/zerolog/log"

	"github.com/HiddenStrawberry/anubis-discuss/internal/core/discussion"
	"github.com/HiddenStrawberry/anubis-discuss/internal/tui/editor"
	"github.com/HiddenStrawberry/anubis-discuss/internal/tui/motion"
)

// instanceState tracks an open editor through its lifecycle: Absent →
// constructing → open → cancelling → Absent, or open → submitting → Absent
// via reconciliation. Absent is the lack of a registry entry.
type instanceState int

const (
	stateConstructing instanceState = iota
	stateOpen
	stateCancelling
	stateSubmitting
)

// Instance is one live editor with its visual container and any running
// reveal/dismiss sequence. The container and the registry entry always leave
// together: teardown detaches both in one step.
type Instance struct {
	Editor    *editor.Editor
	Container *motion.Container
	Seq       *motion.Sequence
	state     instanceState
}

// Open marks the instance revealed and interactive.
func (i *Instance) Open() { i.state = stateOpen }

// Cancelling marks the instance as dismissing.
func (i *Instance) Cancelling() { i.state = stateCancelling }

// Submitting marks the instance's mutation as in flight.
func (i *Instance) Submitting() { i.state = stateSubmitting }

// IsCancelling reports whether the dismiss effect is running.
func (i *Instance) IsCancelling() bool { return i.state == stateCancelling }

// IsSubmitting reports whether a mutation is in flight.
func (i *Instance) IsSubmitting() bool { return i.state == stateSubmitting }

// Registry maps an anchor group to at most one live editor instance. Keys
// are stable anchor identifiers, not view nodes; the association does not
// own the anchor. All access happens on the update loop, and
// GetOrConstruct performs no IO, so check-and-construct is a single
// non-suspending step — two rapid triggers on one group cannot both observe
// "absent".
type Registry struct {
	entries map[discussion.AnchorID]*Instance
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[discussion.AnchorID]*Instance)}
}

// Get returns the instance for the group, or nil. Pure lookup.
func (r *Registry) Get(anchor discussion.AnchorID) *Instance {
	return r.entries[anchor]
}

// Len returns the number of live instances.
func (r *Registry) Len() int { return len(r.entries) }

// GetOrConstruct returns the existing instance for the group unchanged
// (options are ignored on that path — it is the refocus path), or constructs
// and registers a new one. The returned bool is true when a new instance was
// constructed.
func (r *Registry) GetOrConstruct(anchor discussion.AnchorID, opts editor.Options) (*Instance, bool) {
	if inst, ok := r.entries[anchor]; ok {
		return inst, false
	}

	inst := &Instance{
		Editor:    editor.New(anchor, opts),
		Container: motion.NewContainer(),
		state:     stateConstructing,
	}
	r.entries[anchor] = inst

	log.Debug().
		Str("anchor", string(anchor)).
		Str("mode", opts.Mode.String()).
		Msg("editor constructed")

	return inst, true
}

// drop clears a group's entry. Unexported on purpose: removal is a
// consequence of destruction — the bound cancel callback or a reset — never
// an independent operation callers invoke.
func (r *Registry) drop(anchor discussion.AnchorID) {
	delete(r.entries, anchor)
}

// Reset clears every entry at once. This is the reconciliation path after a
// mutation round-trip, the analog of the browser client's full page reload.
func (r *Registry) Reset() {
	r.entries = make(map[discussion.AnchorID]*Instance)
}

// Each calls fn for every live instance.
func (r *Registry) Each(fn func(discussion.AnchorID, *Instance)) {
	for anchor, inst := range r.entries {
		fn(anchor, inst)
	}
}
