package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/HiddenStrawberry/anubis-discuss/internal/core/config"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/discussion"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/styles"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/trigger"
)

// anchorKind classifies a selectable row in the thread.
type anchorKind int

const (
	kindComment anchorKind = iota
	kindTail
)

// anchorRef is one selectable media body: a comment or a tail reply.
type anchorRef struct {
	kind  anchorKind
	reply discussion.Reply
	tail  discussion.TailReply
}

func (a anchorRef) anchor() discussion.AnchorID {
	if a.kind == kindTail {
		return discussion.TailAnchor(a.reply.ID, a.tail.ID)
	}
	return a.reply.Anchor()
}

func (a anchorRef) owner() string {
	if a.kind == kindTail {
		return a.tail.Owner
	}
	return a.reply.Owner
}

// Thread renders a discussion with its nested replies and the editors
// mounted between them. It owns selection and scrolling; editor lifecycle
// lives in the registry, which the thread only reads.
type Thread struct {
	vp       viewport.Model
	disc     *discussion.Discussion
	registry *Registry

	// editing marks anchors whose static content is hidden while an
	// in-place editor replaces it.
	editing map[discussion.AnchorID]bool

	refs     []anchorRef
	selected int

	// slotLines records the first content line of each anchor's editor
	// slot, from the last render. Reveal scrolling targets these.
	// rowLines records each selectable row's owner line by ref index.
	slotLines map[discussion.AnchorID]int
	rowLines  map[int]int

	renderer *glamour.TermRenderer
	width    int
	height   int
}

// NewThread creates a thread view over the given registry.
func NewThread(registry *Registry) *Thread {
	return &Thread{
		vp:        viewport.New(),
		registry:  registry,
		editing:   make(map[discussion.AnchorID]bool),
		slotLines: make(map[discussion.AnchorID]int),
		rowLines:  make(map[int]int),
	}
}

// SetDiscussion replaces the rendered document and rebuilds the selectable
// rows. Selection is clamped, not reset, so reconciliation keeps the cursor
// near where the user was.
func (t *Thread) SetDiscussion(d *discussion.Discussion) {
	t.disc = d
	t.refs = t.refs[:0]
	for _, r := range d.Replies {
		t.refs = append(t.refs, anchorRef{kind: kindComment, reply: r})
		for _, tr := range r.Tail {
			t.refs = append(t.refs, anchorRef{kind: kindTail, reply: r, tail: tr})
		}
	}
	if t.selected >= len(t.refs) {
		t.selected = len(t.refs) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
	t.Refresh()
}

// SetSize resizes the viewport and re-renders.
func (t *Thread) SetSize(width, height int) {
	t.width = width
	t.height = height
	offset := t.vp.YOffset()
	t.vp = viewport.New(viewport.WithWidth(width), viewport.WithHeight(height))
	t.vp.SetYOffset(offset)

	wrap := width - 6
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		t.renderer = r
	}

	t.registry.Each(func(_ discussion.AnchorID, inst *Instance) {
		inst.Editor.SetWidth(width)
	})
	t.Refresh()
}

// Scroller exposes the viewport to the reveal effect.
func (t *Thread) Scroller() *viewport.Model { return &t.vp }

// SlotLine returns the first line of the anchor's editor slot from the last
// render. Refresh after mounting an editor before asking for its slot.
func (t *Thread) SlotLine(anchor discussion.AnchorID) int {
	return t.slotLines[anchor]
}

// MarkEditing hides or restores the static content behind an in-place
// editor. The flag and the registry entry are always flipped together.
func (t *Thread) MarkEditing(anchor discussion.AnchorID, on bool) {
	if on {
		t.editing[anchor] = true
	} else {
		delete(t.editing, anchor)
	}
}

// ClearEditing drops every editing flag. Pairs with Registry.Reset.
func (t *Thread) ClearEditing() {
	t.editing = make(map[discussion.AnchorID]bool)
}

// MoveSelection moves the cursor by delta rows, clamped, and keeps the
// selected row in view.
func (t *Thread) MoveSelection(delta int) {
	if len(t.refs) == 0 {
		return
	}
	t.selected += delta
	if t.selected < 0 {
		t.selected = 0
	}
	if t.selected >= len(t.refs) {
		t.selected = len(t.refs) - 1
	}
	t.Refresh()
	t.scrollToSelection()
}

// Selected returns the current row's anchor, if any row exists.
func (t *Thread) Selected() (discussion.AnchorID, bool) {
	if t.selected < 0 || t.selected >= len(t.refs) {
		return "", false
	}
	return t.refs[t.selected].anchor(), true
}

// Update forwards scroll input to the viewport.
func (t *Thread) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.vp, cmd = t.vp.Update(msg)
	return cmd
}

// View renders the viewport content.
func (t *Thread) View() string {
	return t.vp.View()
}

// TriggerFor maps a keybinding action on the current selection to a trigger
// event. It reports false when the action does not apply, for instance
// reply-to-reply on a top-level comment.
func (t *Thread) TriggerFor(action string) (trigger.Event, bool) {
	if t.disc == nil {
		return trigger.Event{}, false
	}

	if action == config.ActionNewComment {
		form := discussion.FormDescriptor{
			"operation":  discussion.OpReply,
			"did":        t.disc.ID,
			"csrf_token": "",
		}
		return trigger.Event{
			Type:   trigger.TypeOpenNewComment,
			Anchor: discussion.AnchorNewComment,
			Form:   form.Marshal(),
		}, true
	}

	if t.selected < 0 || t.selected >= len(t.refs) {
		return trigger.Event{}, false
	}
	ref := t.refs[t.selected]

	switch action {
	case config.ActionReply:
		if ref.kind == kindTail {
			return t.replyToReplyEvent(ref), true
		}
		return t.replyEvent(ref.reply), true

	case config.ActionReplyToReply:
		if ref.kind != kindTail {
			return trigger.Event{}, false
		}
		return t.replyToReplyEvent(ref), true

	case config.ActionEdit:
		if ref.kind == kindTail {
			form := t.tailForm(discussion.OpEditTailReply, ref)
			return trigger.Event{
				Type:   trigger.TypeEditReply,
				Anchor: ref.anchor(),
				Form:   form.Marshal(),
				RawURL: ref.tail.RawURL,
			}, true
		}
		form := t.commentForm(discussion.OpEditReply, ref.reply)
		return trigger.Event{
			Type:   trigger.TypeEditComment,
			Anchor: ref.anchor(),
			Form:   form.Marshal(),
			RawURL: ref.reply.RawURL,
		}, true

	case config.ActionDelete:
		if ref.kind == kindTail {
			form := t.tailForm(discussion.OpDeleteTailReply, ref)
			return trigger.Event{
				Type:   trigger.TypeDeleteReply,
				Anchor: ref.anchor(),
				Form:   form.Marshal(),
			}, true
		}
		form := t.commentForm(discussion.OpDeleteReply, ref.reply)
		return trigger.Event{
			Type:   trigger.TypeDeleteComment,
			Anchor: ref.anchor(),
			Form:   form.Marshal(),
		}, true
	}

	return trigger.Event{}, false
}

// ReplyTrigger builds the reply-to-comment event for a comment by id. The
// router uses this to delegate reply-to-reply triggers to the ancestor
// comment's reply control.
func (t *Thread) ReplyTrigger(drid string) (trigger.Event, bool) {
	if t.disc == nil {
		return trigger.Event{}, false
	}
	r, ok := t.disc.Reply(drid)
	if !ok {
		return trigger.Event{}, false
	}
	return t.replyEvent(r), true
}

func (t *Thread) replyEvent(r discussion.Reply) trigger.Event {
	form := t.commentForm(discussion.OpTailReply, r)
	return trigger.Event{
		Type:   trigger.TypeReplyToComment,
		Anchor: r.Anchor(),
		Form:   form.Marshal(),
	}
}

func (t *Thread) replyToReplyEvent(ref anchorRef) trigger.Event {
	form := t.tailForm(discussion.OpTailReply, ref)
	return trigger.Event{
		Type:   trigger.TypeReplyToReply,
		Anchor: ref.anchor(),
		Form:   form.Marshal(),
		Author: ref.tail.Owner,
	}
}

func (t *Thread) commentForm(op string, r discussion.Reply) discussion.FormDescriptor {
	return discussion.FormDescriptor{
		"operation":  op,
		"did":        t.disc.ID,
		"drid":       r.ID,
		"csrf_token": "",
	}
}

func (t *Thread) tailForm(op string, ref anchorRef) discussion.FormDescriptor {
	return discussion.FormDescriptor{
		"operation":  op,
		"did":        t.disc.ID,
		"drid":       ref.reply.ID,
		"drrid":      ref.tail.ID,
		"csrf_token": "",
	}
}

// Refresh re-renders the document into the viewport and records editor slot
// positions. Call after any state change that affects layout.
func (t *Thread) Refresh() {
	if t.disc == nil {
		return
	}

	var lines []string
	t.slotLines = make(map[discussion.AnchorID]int)
	t.rowLines = make(map[int]int)

	lines = append(lines, t.headerLines()...)

	for i, ref := range t.refs {
		if ref.kind != kindComment {
			continue
		}
		r := ref.reply

		lines = append(lines, "")
		t.rowLines[i] = len(lines)
		lines = append(lines, t.ownerLine(ref, i))
		anchor := r.Anchor()
		if t.editing[anchor] && t.instanceFor(anchor, editorInPlace) != nil {
			lines = t.appendSlot(lines, anchor)
		} else {
			lines = append(lines, t.markdownLines(r.Content, "  ")...)
			if inst := t.instanceFor(anchor, editorBelow); inst != nil {
				lines = t.appendSlot(lines, anchor)
			}
		}

		for _, tr := range r.Tail {
			tailRef := anchorRef{kind: kindTail, reply: r, tail: tr}
			tailIdx := t.refIndex(tailRef)
			lines = append(lines, "")
			t.rowLines[tailIdx] = len(lines)
			lines = append(lines, "    "+t.ownerLine(tailRef, tailIdx))
			tailAnchor := tailRef.anchor()
			if t.editing[tailAnchor] && t.instanceFor(tailAnchor, editorInPlace) != nil {
				lines = t.appendSlot(lines, tailAnchor)
			} else {
				lines = append(lines, t.markdownLines(tr.Content, "      ")...)
			}
		}
	}

	lines = append(lines, "")
	if inst := t.registry.Get(discussion.AnchorNewComment); inst != nil {
		lines = t.appendSlot(lines, discussion.AnchorNewComment)
	}

	t.vp.SetContent(strings.Join(lines, "\n"))
}

// editor slot placement relative to an anchor's static content.
const (
	editorInPlace = iota
	editorBelow
)

// instanceFor returns the anchor's instance when it renders at the given
// placement. Editing modes replace the content; new-reply editors render
// below the comment.
func (t *Thread) instanceFor(anchor discussion.AnchorID, placement int) *Instance {
	inst := t.registry.Get(anchor)
	if inst == nil || inst.Container.Removed() {
		return nil
	}
	editing := inst.Editor.Mode().Editing()
	if placement == editorInPlace && !editing {
		return nil
	}
	if placement == editorBelow && editing {
		return nil
	}
	return inst
}

func (t *Thread) refIndex(ref anchorRef) int {
	want := ref.anchor()
	for i, r := range t.refs {
		if r.anchor() == want {
			return i
		}
	}
	return -1
}

// appendSlot records the slot position and renders the editor with its
// container's motion state applied.
func (t *Thread) appendSlot(lines []string, anchor discussion.AnchorID) []string {
	t.slotLines[anchor] = len(lines)
	inst := t.registry.Get(anchor)
	if inst == nil {
		return lines
	}
	return append(lines, t.editorLines(inst)...)
}

// editorLines renders an editor clipped and faded per its container. Height
// is applied by truncating rendered lines; opacity by blending the text
// toward the background.
func (t *Thread) editorLines(inst *Instance) []string {
	if inst.Container.Removed() {
		return nil
	}

	body := inst.Editor.View()
	lines := strings.Split(body, "\n")
	if !inst.Container.Overridden() {
		return lines
	}

	n := int(math.Round(inst.Container.HeightFrac() * float64(len(lines))))
	if n > len(lines) {
		n = len(lines)
	}
	lines = lines[:n]

	opacity := inst.Container.Opacity()
	if opacity < 1 {
		faded := lipgloss.NewStyle().Foreground(styles.Faded(opacity))
		for i, line := range lines {
			lines[i] = faded.Render(ansi.Strip(line))
		}
	}
	return lines
}

func (t *Thread) headerLines() []string {
	star := " "
	if t.disc.Starred {
		star = styles.StarStyle.Render("★")
	}
	title := styles.TitleStyle.Render(t.disc.Title)
	meta := styles.TimeStyle.Render(fmt.Sprintf("%s · %d views · page %d/%d",
		t.disc.Owner, t.disc.Views, t.disc.Page, t.disc.Pages))

	out := []string{title + " " + star, meta}
	if t.disc.Content != "" {
		out = append(out, t.markdownLines(t.disc.Content, "")...)
	}
	out = append(out, styles.DividerStyle.Render(strings.Repeat("─", max(t.width, 10))))
	return out
}

func (t *Thread) ownerLine(ref anchorRef, idx int) string {
	bar := "  "
	if idx == t.selected && idx >= 0 {
		bar = styles.SelectedBarStyle.Render("▌") + " "
	}
	return bar + styles.OwnerStyle.Render(ref.owner())
}

// markdownLines renders a body through glamour and indents it. Falls back to
// the raw text when no renderer is available yet.
func (t *Thread) markdownLines(content, indent string) []string {
	rendered := content
	if t.renderer != nil {
		if out, err := t.renderer.Render(content); err == nil {
			rendered = out
		}
	}
	rendered = strings.Trim(rendered, "\n")
	lines := strings.Split(rendered, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return lines
}

func (t *Thread) scrollToSelection() {
	if line, ok := t.rowLines[t.selected]; ok {
		t.keepInView(line)
	}
}

func (t *Thread) keepInView(line int) {
	top := t.vp.YOffset()
	height := t.vp.VisibleLineCount()
	if line < top {
		t.vp.SetYOffset(line)
	} else if line >= top+height {
		t.vp.SetYOffset(line - height + 1)
	}
}
