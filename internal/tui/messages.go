package tui

import (
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/discussion"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/trigger"
)

// revealDoneMsg fires when an editor's reveal effect finishes.
type revealDoneMsg struct {
	Anchor discussion.AnchorID
}

// dismissDoneMsg fires when an editor's dismiss effect finishes. The bound
// cancel callback runs on receipt, tearing down the instance.
type dismissDoneMsg struct {
	Anchor discussion.AnchorID
}

// rawFetchedMsg carries the raw markdown source fetched for an edit trigger.
type rawFetchedMsg struct {
	Event trigger.Event
	Text  string
	Err   error
}

// confirmRequestMsg asks the model to gate a destructive trigger behind a
// confirmation dialog.
type confirmRequestMsg struct {
	Event trigger.Event
}

// submitDoneMsg reports a mutation round-trip. Reconciliation follows
// regardless of Err.
type submitDoneMsg struct {
	Err error
}

// discussionLoadedMsg carries a freshly fetched discussion document.
type discussionLoadedMsg struct {
	Discussion *discussion.Discussion
	Err        error
}

// starDoneMsg reports a star toggle round-trip.
type starDoneMsg struct {
	Err error
}

// noticeExpiredMsg clears a transient notice.
type noticeExpiredMsg struct {
	ID int
}
