// Package editor implements the ephemeral inline editor widget opened for
// new comments, new replies and in-place edits.
package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textarea"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/HiddenStrawberry/anubis-discuss/internal/core/discussion"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/styles"
)

// Mode is the editor's lifecycle mode. Handlers switch over it
// exhaustively; there are no free-form mode strings.
type Mode int

const (
	ModeNewComment Mode = iota
	ModeNewReply
	ModeEditComment
	ModeEditReply
)

// String returns the mode name for logs.
func (m Mode) String() string {
	switch m {
	case ModeNewComment:
		return "new-comment"
	case ModeNewReply:
		return "new-reply"
	case ModeEditComment:
		return "edit-comment"
	case ModeEditReply:
		return "edit-reply"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Editing reports whether the mode edits an existing document.
func (m Mode) Editing() bool {
	return m == ModeEditComment || m == ModeEditReply
}

// Options configures a new editor instance.
type Options struct {
	Mode        Mode
	InitialText string                    // empty for new, fetched raw source for edits
	Form        discussion.FormDescriptor // mutation parameters, submitted verbatim
	OnCancel    func()                    // restores pre-edit state; fired after dismissal
}

// Editor is one ephemeral editor instance, bound to exactly one anchor
// group. Construction only assembles in-memory state; it cannot fail.
type Editor struct {
	anchor    discussion.AnchorID
	mode      Mode
	form      discussion.FormDescriptor
	onCancel  func()
	input     textarea.Model
	submitted bool
	cancelled bool
}

// New creates an editor for the given anchor group.
func New(anchor discussion.AnchorID, opts Options) *Editor {
	ta := textarea.New()
	ta.Placeholder = placeholderFor(opts.Mode)
	ta.SetHeight(4)
	ta.SetWidth(60)

	if opts.InitialText != "" {
		ta.SetValue(opts.InitialText)
		ta.CursorEnd()
	}

	return &Editor{
		anchor:   anchor,
		mode:     opts.Mode,
		form:     opts.Form,
		onCancel: opts.OnCancel,
		input:    ta,
	}
}

func placeholderFor(m Mode) string {
	switch m {
	case ModeNewComment:
		return "Write a comment..."
	case ModeNewReply:
		return "Write a reply..."
	case ModeEditComment, ModeEditReply:
		return "Edit..."
	default:
		return ""
	}
}

// Anchor returns the anchor group the editor is bound to.
func (e *Editor) Anchor() discussion.AnchorID { return e.anchor }

// Mode returns the editor's mode.
func (e *Editor) Mode() Mode { return e.mode }

// Form returns the mutation parameters bound at construction.
func (e *Editor) Form() discussion.FormDescriptor { return e.form }

// Value returns the entered text.
func (e *Editor) Value() string { return e.input.Value() }

// Submitted reports that the user asked to submit.
func (e *Editor) Submitted() bool { return e.submitted }

// Cancelled reports that the user asked to cancel.
func (e *Editor) Cancelled() bool { return e.cancelled }

// Focus places the cursor in the editor.
func (e *Editor) Focus() tea.Cmd {
	return e.input.Focus()
}

// Blur removes focus.
func (e *Editor) Blur() {
	e.input.Blur()
}

// Focused reports whether the editor holds the cursor.
func (e *Editor) Focused() bool { return e.input.Focused() }

// RunCancel fires the bound cancel callback. Called once, by the owner,
// after the dismiss effect completes.
func (e *Editor) RunCancel() {
	if e.onCancel != nil {
		e.onCancel()
	}
}

// SetWidth resizes the input to the containing media body.
func (e *Editor) SetWidth(w int) {
	e.input.SetWidth(max(w-4, 20))
}

// Update handles input. Esc requests cancellation, ctrl+s submission; both
// are latched for the owner to act on.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			e.cancelled = true
			return nil
		case "ctrl+s":
			if strings.TrimSpace(e.input.Value()) != "" {
				e.submitted = true
			}
			return nil
		}
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

// View renders the editor body: a mode caption, the text area, and the key
// hints.
func (e *Editor) View() string {
	caption := styles.EditorCaptionStyle.Render(captionFor(e.mode))
	help := styles.EditorHelpStyle.Render("ctrl+s: submit • esc: cancel")

	content := strings.Join([]string{caption, e.input.View(), help}, "\n")
	return styles.EditorFrameStyle.Render(content)
}

func captionFor(m Mode) string {
	switch m {
	case ModeNewComment:
		return "New comment"
	case ModeNewReply:
		return "Reply"
	case ModeEditComment:
		return "Edit comment"
	case ModeEditReply:
		return "Edit reply"
	default:
		return ""
	}
}
