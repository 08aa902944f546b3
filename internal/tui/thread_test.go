package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HiddenStrawberry/anubis-discuss/internal/core/config"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/discussion"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/trigger"
	"github.com/HiddenStrawberry/anubis-discuss/internal/tui/editor"
	"github.com/HiddenStrawberry/anubis-discuss/pkg/tuitest"
)

func newTestThread(t *testing.T) (*Thread, *Registry) {
	t.Helper()
	registry := NewRegistry()
	thread := NewThread(registry)
	thread.SetSize(80, 40)
	thread.SetDiscussion(sampleDiscussion())
	return thread, registry
}

func TestThreadSelectionClamps(t *testing.T) {
	thread, _ := newTestThread(t)

	// Rows: comment 42, tail 7, comment 43.
	anchor, ok := thread.Selected()
	require.True(t, ok)
	assert.Equal(t, discussion.CommentAnchor("42"), anchor)

	thread.MoveSelection(-5)
	anchor, _ = thread.Selected()
	assert.Equal(t, discussion.CommentAnchor("42"), anchor)

	thread.MoveSelection(1)
	anchor, _ = thread.Selected()
	assert.Equal(t, discussion.TailAnchor("42", "7"), anchor)

	thread.MoveSelection(100)
	anchor, _ = thread.Selected()
	assert.Equal(t, discussion.CommentAnchor("43"), anchor)
}

func TestThreadSelectionSurvivesReconcile(t *testing.T) {
	thread, _ := newTestThread(t)
	thread.MoveSelection(2)

	// The last comment disappeared server-side; the cursor clamps instead
	// of resetting to the top.
	d := sampleDiscussion()
	d.Replies = d.Replies[:1]
	thread.SetDiscussion(d)

	anchor, ok := thread.Selected()
	require.True(t, ok)
	assert.Equal(t, discussion.TailAnchor("42", "7"), anchor)
}

func TestThreadTriggerMapping(t *testing.T) {
	tests := []struct {
		name       string
		selected   int
		action     string
		wantType   trigger.Type
		wantAnchor discussion.AnchorID
		wantOp     string
	}{
		{"new comment", 0, config.ActionNewComment, trigger.TypeOpenNewComment, discussion.AnchorNewComment, discussion.OpReply},
		{"reply to comment", 0, config.ActionReply, trigger.TypeReplyToComment, discussion.CommentAnchor("42"), discussion.OpTailReply},
		{"reply on tail", 1, config.ActionReply, trigger.TypeReplyToReply, discussion.TailAnchor("42", "7"), discussion.OpTailReply},
		{"edit comment", 0, config.ActionEdit, trigger.TypeEditComment, discussion.CommentAnchor("42"), discussion.OpEditReply},
		{"edit tail", 1, config.ActionEdit, trigger.TypeEditReply, discussion.TailAnchor("42", "7"), discussion.OpEditTailReply},
		{"delete comment", 0, config.ActionDelete, trigger.TypeDeleteComment, discussion.CommentAnchor("42"), discussion.OpDeleteReply},
		{"delete tail", 1, config.ActionDelete, trigger.TypeDeleteReply, discussion.TailAnchor("42", "7"), discussion.OpDeleteTailReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thread, _ := newTestThread(t)
			thread.MoveSelection(tt.selected)

			ev, ok := thread.TriggerFor(tt.action)
			require.True(t, ok)
			assert.Equal(t, tt.wantType, ev.Type)
			assert.Equal(t, tt.wantAnchor, ev.Anchor)

			form, err := discussion.ParseFormDescriptor(ev.Form)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOp, form.Operation())
			assert.Equal(t, "1", form["did"])
			_, hasToken := form["csrf_token"]
			assert.True(t, hasToken, "descriptor carries the csrf slot")
		})
	}
}

func TestThreadReplyToReplyOnlyOnTails(t *testing.T) {
	thread, _ := newTestThread(t)

	_, ok := thread.TriggerFor(config.ActionReplyToReply)
	assert.False(t, ok, "no nested-reply trigger on a top-level comment")

	thread.MoveSelection(1)
	ev, ok := thread.TriggerFor(config.ActionReplyToReply)
	require.True(t, ok)
	assert.Equal(t, "bob", ev.Author)
	assert.Equal(t, "7", mustForm(t, ev)["drrid"])
}

func TestThreadEditCarriesRawURL(t *testing.T) {
	thread, _ := newTestThread(t)

	ev, ok := thread.TriggerFor(config.ActionEdit)
	require.True(t, ok)
	assert.Equal(t, "/discuss/1/42/raw", ev.RawURL)
}

func TestThreadTriggerWithoutDiscussion(t *testing.T) {
	thread := NewThread(NewRegistry())
	_, ok := thread.TriggerFor(config.ActionReply)
	assert.False(t, ok)
}

func TestThreadReplyTriggerByID(t *testing.T) {
	thread, _ := newTestThread(t)

	ev, ok := thread.ReplyTrigger("43")
	require.True(t, ok)
	assert.Equal(t, discussion.CommentAnchor("43"), ev.Anchor)

	_, ok = thread.ReplyTrigger("999")
	assert.False(t, ok)
}

func TestThreadSlotLineForMountedEditor(t *testing.T) {
	thread, registry := newTestThread(t)

	anchor := discussion.CommentAnchor("42")
	inst, constructed := registry.GetOrConstruct(anchor, editor.Options{
		Mode: editor.ModeNewReply,
		Form: discussion.FormDescriptor{"operation": discussion.OpTailReply},
	})
	require.True(t, constructed)
	thread.Refresh()

	slot := thread.SlotLine(anchor)
	assert.Greater(t, slot, 0, "slot sits below the comment body")
	assert.Greater(t, slot, thread.rowLines[0])

	// A removed container renders nothing and keeps no slot claim on the
	// editor body.
	inst.Container.Remove()
	thread.Refresh()
	assert.Empty(t, thread.editorLines(inst))
}

func TestThreadEditingHidesStaticContent(t *testing.T) {
	thread, registry := newTestThread(t)

	anchor := discussion.CommentAnchor("42")
	registry.GetOrConstruct(anchor, editor.Options{
		Mode:        editor.ModeEditComment,
		InitialText: "edited draft",
		Form:        discussion.FormDescriptor{"operation": discussion.OpEditReply},
	})
	thread.MarkEditing(anchor, true)
	thread.Refresh()

	view := tuitest.StripANSI(thread.View())
	assert.NotContains(t, view, "first comment")
	assert.Contains(t, view, "edited draft")

	thread.MarkEditing(anchor, false)
	registry.Reset()
	thread.Refresh()
	view = tuitest.StripANSI(thread.View())
	assert.Contains(t, view, "first comment")
}

func TestThreadClearEditing(t *testing.T) {
	thread, _ := newTestThread(t)
	thread.MarkEditing(discussion.CommentAnchor("42"), true)
	thread.MarkEditing(discussion.TailAnchor("42", "7"), true)

	thread.ClearEditing()
	assert.Empty(t, thread.editing)
}

func TestThreadViewShowsHeaderAndOwners(t *testing.T) {
	thread, _ := newTestThread(t)

	view := tuitest.StripANSI(thread.View())
	assert.Contains(t, view, "Problem A clarification")
	assert.Contains(t, view, "alice")
	assert.Contains(t, view, "bob")
	assert.True(t, strings.Contains(view, "▌"), "selection bar rendered")
}

func mustForm(t *testing.T, ev trigger.Event) discussion.FormDescriptor {
	t.Helper()
	form, err := discussion.ParseFormDescriptor(ev.Form)
	require.NoError(t, err)
	return form
}
