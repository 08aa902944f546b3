// Package trigger defines the named UI triggers of the discussion view and
// the event payload they carry onto the bus.
package trigger

import (
	"encoding/json"

	"github.com/HiddenStrawberry/anubis-discuss/internal/core/discussion"
)

// Event is one fired trigger. Anchor identifies the media body the control
// belongs to; Form is the serialized form descriptor attached to the control,
// consumed verbatim by the mutation flow. Author and RawURL are read off the
// displayed content node and are only set where the trigger needs them
// (reply-to-reply prefill, edit-mode source fetch).
type Event struct {
	Type        Type
	Anchor      discussion.AnchorID
	Form        json.RawMessage
	Author      string
	RawURL      string
	InitialText string // prefill injected by synthesized triggers
}

// Confirmation prompts for the destructive triggers. Deleting a comment also
// removes its nested replies, which the message must warn about.
const (
	ConfirmDeleteComment = "Delete this comment? All replies to it will be deleted as well."
	ConfirmDeleteReply   = "Delete this reply?"
)

// ConfirmMessage returns the confirmation prompt for a destructive trigger,
// or "" when the trigger needs no gate.
func (e Event) ConfirmMessage() string {
	switch e.Type {
	case TypeDeleteComment:
		return ConfirmDeleteComment
	case TypeDeleteReply:
		return ConfirmDeleteReply
	default:
		return ""
	}
}

// NeedsConfirm reports whether the event must pass a confirmation gate
// before any side effect.
func (e Event) NeedsConfirm() bool { return e.ConfirmMessage() != "" }
