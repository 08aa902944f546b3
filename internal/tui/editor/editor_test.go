package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HiddenStrawberry/anubis-discuss/internal/core/discussion"
	"github.com/HiddenStrawberry/anubis-discuss/pkg/tuitest"
)

func TestNewPrefillsInitialText(t *testing.T) {
	e := New(discussion.CommentAnchor("42"), Options{
		Mode:        ModeNewReply,
		InitialText: "@alice: ",
	})

	assert.Equal(t, "@alice: ", e.Value())
	assert.Equal(t, ModeNewReply, e.Mode())
	assert.Equal(t, discussion.AnchorID("comment:42"), e.Anchor())
}

func TestUpdateLatchesCancel(t *testing.T) {
	e := New(discussion.AnchorNewComment, Options{Mode: ModeNewComment})

	e.Update(tuitest.KeyEsc())

	assert.True(t, e.Cancelled())
	assert.False(t, e.Submitted())
}

func TestUpdateLatchesSubmit(t *testing.T) {
	e := New(discussion.AnchorNewComment, Options{
		Mode:        ModeEditComment,
		InitialText: "existing text",
	})

	e.Update(tuitest.KeyCtrl('s'))

	assert.True(t, e.Submitted())
	assert.False(t, e.Cancelled())
}

func TestUpdateIgnoresBlankSubmit(t *testing.T) {
	e := New(discussion.AnchorNewComment, Options{Mode: ModeNewComment})

	e.Update(tuitest.KeyCtrl('s'))
	assert.False(t, e.Submitted())

	e = New(discussion.AnchorNewComment, Options{
		Mode:        ModeNewComment,
		InitialText: "   \n  ",
	})
	e.Update(tuitest.KeyCtrl('s'))
	assert.False(t, e.Submitted())
}

func TestUpdateTypesIntoInput(t *testing.T) {
	e := New(discussion.AnchorNewComment, Options{Mode: ModeNewComment})
	e.Focus()

	for _, msg := range tuitest.Type("hi") {
		e.Update(msg)
	}

	assert.Equal(t, "hi", e.Value())
}

func TestRunCancelFiresCallback(t *testing.T) {
	fired := 0
	e := New(discussion.AnchorNewComment, Options{
		Mode:     ModeNewComment,
		OnCancel: func() { fired++ },
	})

	e.RunCancel()
	assert.Equal(t, 1, fired)
}

func TestRunCancelWithoutCallback(t *testing.T) {
	e := New(discussion.AnchorNewComment, Options{Mode: ModeNewComment})
	e.RunCancel() // must not panic
}

func TestFormIsBoundAtConstruction(t *testing.T) {
	form := discussion.FormDescriptor{"operation": discussion.OpTailReply, "drid": "42"}
	e := New(discussion.CommentAnchor("42"), Options{Mode: ModeNewReply, Form: form})

	assert.Equal(t, form, e.Form())
}

func TestViewShowsCaptionAndHints(t *testing.T) {
	e := New(discussion.CommentAnchor("42"), Options{Mode: ModeEditComment})

	view := tuitest.StripANSI(e.View())
	assert.Contains(t, view, "Edit comment")
	assert.Contains(t, view, "ctrl+s: submit")
	assert.Contains(t, view, "esc: cancel")
}

func TestModeStrings(t *testing.T) {
	require.Equal(t, "new-comment", ModeNewComment.String())
	require.Equal(t, "new-reply", ModeNewReply.String())
	require.Equal(t, "edit-comment", ModeEditComment.String())
	require.Equal(t, "edit-reply", ModeEditReply.String())

	assert.False(t, ModeNewComment.Editing())
	assert.False(t, ModeNewReply.Editing())
	assert.True(t, ModeEditComment.Editing())
	assert.True(t, ModeEditReply.Editing())
}
