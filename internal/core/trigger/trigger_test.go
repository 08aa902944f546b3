package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeValid(t *testing.T) {
	for _, typ := range Types() {
		assert.True(t, typ.Valid(), "type %s", typ)
	}
	assert.False(t, Type("open-sesame").Valid())
	assert.False(t, Type("").Valid())
}

func TestTypeDestructive(t *testing.T) {
	assert.True(t, TypeDeleteComment.Destructive())
	assert.True(t, TypeDeleteReply.Destructive())

	assert.False(t, TypeOpenNewComment.Destructive())
	assert.False(t, TypeReplyToComment.Destructive())
	assert.False(t, TypeReplyToReply.Destructive())
	assert.False(t, TypeEditComment.Destructive())
	assert.False(t, TypeEditReply.Destructive())
}

func TestConfirmMessage(t *testing.T) {
	ev := Event{Type: TypeDeleteComment}
	assert.Equal(t, ConfirmDeleteComment, ev.ConfirmMessage())
	assert.True(t, ev.NeedsConfirm())

	ev = Event{Type: TypeDeleteReply}
	assert.Equal(t, ConfirmDeleteReply, ev.ConfirmMessage())

	ev = Event{Type: TypeReplyToComment}
	assert.Empty(t, ev.ConfirmMessage())
	assert.False(t, ev.NeedsConfirm())
}
