package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/HiddenStrawberry/anubis-discuss/internal/client"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/discussion"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/eventbus"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/trigger"
	"github.com/HiddenStrawberry/anubis-discuss/internal/tui/editor"
	"github.com/HiddenStrawberry/anubis-discuss/internal/tui/motion"
)

// Router turns trigger events into editor lifecycle work: constructing or
// refocusing instances, fetching raw source for edits, and gating deletes
// behind confirmation. Handlers run synchronously on the update loop; any
// follow-up work (effects, fetches) is queued as commands and drained with
// Flush after each publish.
type Router struct {
	registry *Registry
	thread   *Thread
	engine   motion.Engine
	timings  motion.Timings
	client   *client.Client

	// fetching guards the suspension point of edit triggers: while a raw
	// fetch for an anchor is in flight no second fetch starts, so the
	// later construction step stays effectively atomic per group.
	fetching map[discussion.AnchorID]bool

	pending  []tea.Cmd
	handlers map[trigger.Type]func(trigger.Event)
}

// NewRouter wires a dispatch table over the registry and thread view.
func NewRouter(registry *Registry, thread *Thread, engine motion.Engine, timings motion.Timings, cl *client.Client) *Router {
	r := &Router{
		registry: registry,
		thread:   thread,
		engine:   engine,
		timings:  timings,
		client:   cl,
		fetching: make(map[discussion.AnchorID]bool),
	}
	r.handlers = map[trigger.Type]func(trigger.Event){
		trigger.TypeOpenNewComment: r.handleOpen(editor.ModeNewComment),
		trigger.TypeReplyToComment: r.handleOpen(editor.ModeNewReply),
		trigger.TypeReplyToReply:   r.handleReplyToReply,
		trigger.TypeEditComment:    r.handleEdit,
		trigger.TypeEditReply:      r.handleEdit,
		trigger.TypeDeleteComment:  r.handleDelete,
		trigger.TypeDeleteReply:    r.handleDelete,
	}
	return r
}

// Attach subscribes the router's dispatch to the bus.
func (r *Router) Attach(bus *eventbus.Bus) {
	bus.Subscribe(r.dispatch)
}

// Flush returns the commands queued by handlers since the last flush.
func (r *Router) Flush() tea.Cmd {
	if len(r.pending) == 0 {
		return nil
	}
	cmds := r.pending
	r.pending = nil
	return tea.Batch(cmds...)
}

func (r *Router) pend(cmd tea.Cmd) {
	if cmd != nil {
		r.pending = append(r.pending, cmd)
	}
}

func (r *Router) dispatch(ev trigger.Event) {
	handler, ok := r.handlers[ev.Type]
	if !ok {
		log.Warn().Str("type", string(ev.Type)).Msg("unhandled trigger")
		return
	}
	handler(ev)
}

// handleOpen opens (or refocuses) an editor whose initial text travels on
// the trigger itself: new comments and new replies.
func (r *Router) handleOpen(mode editor.Mode) func(trigger.Event) {
	return func(ev trigger.Event) {
		r.open(ev, mode, ev.InitialText)
	}
}

// handleReplyToReply delegates to the ancestor comment's reply control,
// injecting an @-mention of the replied-to author. Replies only nest one
// level, so the new text lands in the comment's tail.
func (r *Router) handleReplyToReply(ev trigger.Event) {
	drid, ok := discussion.ParentComment(ev.Anchor)
	if !ok {
		log.Error().Str("anchor", string(ev.Anchor)).Msg("reply-to-reply on non-tail anchor")
		return
	}
	parent, ok := r.thread.ReplyTrigger(drid)
	if !ok {
		log.Error().Str("drid", drid).Msg("reply-to-reply parent not in thread")
		return
	}
	parent.InitialText = fmt.Sprintf("@%s: ", ev.Author)
	r.dispatch(parent)
}

// handleEdit starts the raw-source fetch for an edit trigger. Construction
// happens only after the fetch lands, in CompleteEdit, so a failed fetch
// never leaves a half-open editor.
func (r *Router) handleEdit(ev trigger.Event) {
	if inst := r.registry.Get(ev.Anchor); inst != nil {
		r.refocus(inst)
		return
	}
	if r.fetching[ev.Anchor] {
		return
	}
	if ev.RawURL == "" {
		log.Error().Str("anchor", string(ev.Anchor)).Msg("edit trigger without raw url")
		return
	}

	r.fetching[ev.Anchor] = true
	r.pend(func() tea.Msg {
		text, err := r.client.Raw(context.Background(), ev.RawURL)
		return rawFetchedMsg{Event: ev, Text: text, Err: err}
	})
}

// CompleteEdit finishes an edit trigger once its raw source arrives. It
// returns the fetch error, if any, for the model to surface; on error the
// editor is not opened.
func (r *Router) CompleteEdit(msg rawFetchedMsg) error {
	delete(r.fetching, msg.Event.Anchor)
	if msg.Err != nil {
		log.Warn().Err(msg.Err).Str("anchor", string(msg.Event.Anchor)).Msg("raw fetch failed")
		return fmt.Errorf("fetch source: %w", msg.Err)
	}

	mode := editor.ModeEditComment
	if msg.Event.Type == trigger.TypeEditReply {
		mode = editor.ModeEditReply
	}
	r.open(msg.Event, mode, msg.Text)
	return nil
}

// handleDelete routes a destructive trigger to the confirmation dialog.
// Nothing is parsed or submitted before the user confirms.
func (r *Router) handleDelete(ev trigger.Event) {
	r.pend(func() tea.Msg {
		return confirmRequestMsg{Event: ev}
	})
}

// open constructs a new instance for the trigger's anchor and starts its
// reveal, or refocuses the existing one. Check and construct happen in one
// non-suspending step.
func (r *Router) open(ev trigger.Event, mode editor.Mode, initialText string) {
	form, err := discussion.ParseFormDescriptor(ev.Form)
	if err != nil {
		log.Error().Err(err).Str("anchor", string(ev.Anchor)).Msg("bad trigger form")
		return
	}

	anchor := ev.Anchor
	inst, constructed := r.registry.GetOrConstruct(anchor, editor.Options{
		Mode:        mode,
		InitialText: initialText,
		Form:        form,
		OnCancel:    r.cancelFunc(anchor, mode),
	})
	if !constructed {
		r.refocus(inst)
		return
	}

	inst.Editor.SetWidth(r.thread.width)
	if mode.Editing() {
		r.thread.MarkEditing(anchor, true)
	}
	r.thread.Refresh()

	top := r.thread.SlotLine(anchor)
	inst.Seq = motion.Reveal(inst.Container, r.thread.Scroller(), top, r.timings, r.engine, revealDoneMsg{Anchor: anchor})
	r.pend(inst.Seq.Start())
}

// refocus moves input focus to a live instance. An instance mid-dismiss is
// left alone: its teardown already ran its course.
func (r *Router) refocus(inst *Instance) {
	if inst.IsCancelling() {
		return
	}
	r.pend(inst.Editor.Focus())
}

// cancelFunc binds the teardown for one instance: editing flag, registry
// entry and rendered slot all go together.
func (r *Router) cancelFunc(anchor discussion.AnchorID, mode editor.Mode) func() {
	return func() {
		if mode.Editing() {
			r.thread.MarkEditing(anchor, false)
		}
		r.registry.drop(anchor)
		r.thread.Refresh()
	}
}
