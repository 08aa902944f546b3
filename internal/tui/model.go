package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/HiddenStrawberry/anubis-discuss/internal/client"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/config"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/discussion"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/eventbus"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/styles"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/trigger"
	"github.com/HiddenStrawberry/anubis-discuss/internal/tui/components"
	"github.com/HiddenStrawberry/anubis-discuss/internal/tui/motion"
)

const noticeTTL = 4 * time.Second

type notice struct {
	id    int
	text  string
	isErr bool
}

// Model is the discussion view program: thread rendering, trigger dispatch,
// editor lifecycle and the mutation round-trips that reconcile it all.
type Model struct {
	cfg    *config.Config
	client *client.Client
	did    string
	page   int

	bus      *eventbus.Bus
	registry *Registry
	thread   *Thread
	router   *Router
	engine   motion.Engine
	timings  motion.Timings

	confirm       *components.ConfirmModal
	pendingDelete *trigger.Event

	spinner spinner.Model
	loading bool

	notices  []notice
	noticeID int

	width  int
	height int
}

// New assembles the program for one discussion.
func New(cfg *config.Config, cl *client.Client, did string, page int) *Model {
	var engine motion.Engine
	if cfg.Motion.Reduced {
		engine = motion.Immediate{}
	} else {
		engine = motion.NewFrames()
	}

	bus := eventbus.New()
	eventbus.RegisterDebugLogger(bus, log.Logger)

	registry := NewRegistry()
	thread := NewThread(registry)
	timings := motion.TimingsFromConfig(cfg.Motion)
	router := NewRouter(registry, thread, engine, timings, cl)
	router.Attach(bus)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	if page < 1 {
		page = 1
	}

	return &Model{
		cfg:      cfg,
		client:   cl,
		did:      did,
		page:     page,
		bus:      bus,
		registry: registry,
		thread:   thread,
		router:   router,
		engine:   engine,
		timings:  timings,
		spinner:  sp,
		loading:  true,
	}
}

// Init starts the spinner and the initial page load.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadDiscussion())
}

// Update routes all program messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.thread.SetSize(msg.Width, max(msg.Height-2, 5))

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case motion.FrameMsg:
		cmds = append(cmds, m.engine.Advance(msg))
		m.thread.Refresh()

	case motion.StageDoneMsg:
		m.registry.Each(func(_ discussion.AnchorID, inst *Instance) {
			if inst.Seq == nil {
				return
			}
			// Update returns nil for stale or foreign messages; any
			// non-nil command drives the next stage and must run.
			cmd, _ := inst.Seq.Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		})
		m.thread.Refresh()

	case revealDoneMsg:
		if inst := m.registry.Get(msg.Anchor); inst != nil && !inst.IsCancelling() {
			inst.Open()
			inst.Seq = nil
			cmds = append(cmds, inst.Editor.Focus())
		}
		m.thread.Refresh()

	case dismissDoneMsg:
		if inst := m.registry.Get(msg.Anchor); inst != nil {
			inst.Editor.RunCancel()
		}

	case rawFetchedMsg:
		if err := m.router.CompleteEdit(msg); err != nil {
			cmds = append(cmds, m.pushNotice(err.Error(), true))
		}
		cmds = append(cmds, m.router.Flush())

	case confirmRequestMsg:
		ev := msg.Event
		cm := components.NewConfirmModal(ev.ConfirmMessage())
		m.confirm = &cm
		m.pendingDelete = &ev

	case submitDoneMsg:
		if msg.Err != nil {
			cmds = append(cmds, m.pushNotice(fmt.Sprintf("submit failed: %v", msg.Err), true))
		}
		// Reconcile even on failure: the server state is what counts.
		m.loading = true
		cmds = append(cmds, m.loadDiscussion(), m.spinner.Tick)

	case starDoneMsg:
		if msg.Err != nil {
			cmds = append(cmds, m.pushNotice(fmt.Sprintf("star failed: %v", msg.Err), true))
		}
		m.loading = true
		cmds = append(cmds, m.loadDiscussion(), m.spinner.Tick)

	case discussionLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			cmds = append(cmds, m.pushNotice(fmt.Sprintf("load failed: %v", msg.Err), true))
			break
		}
		m.registry.Reset()
		m.thread.ClearEditing()
		m.thread.SetDiscussion(msg.Discussion)
		m.page = msg.Discussion.Page

	case noticeExpiredMsg:
		for i, n := range m.notices {
			if n.id == msg.ID {
				m.notices = append(m.notices[:i], m.notices[i+1:]...)
				break
			}
		}

	case tea.KeyMsg:
		return m.handleKey(msg, cmds)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		return m.handleConfirmKey(msg, cmds)
	}

	if anchor, inst := m.focusedInstance(); inst != nil {
		return m.handleEditorKey(anchor, inst, msg, cmds)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		m.thread.MoveSelection(1)
		return m, tea.Batch(cmds...)
	case "k", "up":
		m.thread.MoveSelection(-1)
		return m, tea.Batch(cmds...)
	case "n":
		return m, m.loadPage(m.page + 1)
	case "p":
		return m, m.loadPage(m.page - 1)
	case "ctrl+d", "ctrl+u", "pgdown", "pgup", "g", "G":
		cmds = append(cmds, m.thread.Update(msg))
		return m, tea.Batch(cmds...)
	}

	if kb, ok := m.cfg.Keybindings[msg.String()]; ok {
		if kb.Action == config.ActionStar {
			return m, m.toggleStar()
		}
		if ev, ok := m.thread.TriggerFor(kb.Action); ok {
			m.bus.Publish(ev)
			cmds = append(cmds, m.router.Flush())
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	cm, cmd := m.confirm.Update(msg)
	cmds = append(cmds, cmd)

	switch {
	case cm.Confirmed():
		ev := *m.pendingDelete
		m.confirm = nil
		m.pendingDelete = nil
		cmds = append(cmds, m.submitTrigger(ev))
	case cm.Cancelled():
		// Declined: no request leaves the client.
		m.confirm = nil
		m.pendingDelete = nil
	default:
		m.confirm = &cm
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleEditorKey(anchor discussion.AnchorID, inst *Instance, msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	cmds = append(cmds, inst.Editor.Update(msg))

	switch {
	case inst.Editor.Cancelled() && !inst.IsCancelling():
		inst.Cancelling()
		inst.Editor.Blur()
		inst.Seq = motion.Dismiss(inst.Container, m.timings, m.engine, dismissDoneMsg{Anchor: anchor})
		cmds = append(cmds, inst.Seq.Start())

	case inst.Editor.Submitted() && !inst.IsSubmitting():
		inst.Submitting()
		inst.Editor.Blur()
		m.loading = true
		cmds = append(cmds, m.submitEditor(inst), m.spinner.Tick)
	}

	m.thread.Refresh()
	return m, tea.Batch(cmds...)
}

// focusedInstance returns the instance currently holding input focus. At
// most one editor is ever focused.
func (m *Model) focusedInstance() (discussion.AnchorID, *Instance) {
	var foundAnchor discussion.AnchorID
	var found *Instance
	m.registry.Each(func(anchor discussion.AnchorID, inst *Instance) {
		if inst.Editor.Focused() {
			foundAnchor = anchor
			found = inst
		}
	})
	return foundAnchor, found
}

func (m *Model) loadDiscussion() tea.Cmd {
	did, page := m.did, m.page
	return func() tea.Msg {
		d, err := m.client.Discussion(context.Background(), did, page)
		return discussionLoadedMsg{Discussion: d, Err: err}
	}
}

func (m *Model) loadPage(page int) tea.Cmd {
	if page < 1 {
		return nil
	}
	if m.thread.disc != nil && page > m.thread.disc.Pages {
		return nil
	}
	m.page = page
	m.loading = true
	return tea.Batch(m.loadDiscussion(), m.spinner.Tick)
}

// submitEditor posts an editor's content with its bound form descriptor.
func (m *Model) submitEditor(inst *Instance) tea.Cmd {
	form := inst.Editor.Form().With("content", inst.Editor.Value())
	return func() tea.Msg {
		err := m.client.Submit(context.Background(), m.did, form)
		return submitDoneMsg{Err: err}
	}
}

// submitTrigger posts a confirmed destructive trigger's form as-is.
func (m *Model) submitTrigger(ev trigger.Event) tea.Cmd {
	form, err := discussion.ParseFormDescriptor(ev.Form)
	if err != nil {
		log.Error().Err(err).Str("anchor", string(ev.Anchor)).Msg("bad trigger form")
		return nil
	}
	m.loading = true
	return tea.Batch(func() tea.Msg {
		err := m.client.Submit(context.Background(), m.did, form)
		return submitDoneMsg{Err: err}
	}, m.spinner.Tick)
}

func (m *Model) toggleStar() tea.Cmd {
	if m.thread.disc == nil {
		return nil
	}
	star := !m.thread.disc.Starred
	return func() tea.Msg {
		err := m.client.SetStar(context.Background(), m.did, star)
		return starDoneMsg{Err: err}
	}
}

func (m *Model) pushNotice(text string, isErr bool) tea.Cmd {
	m.noticeID++
	id := m.noticeID
	m.notices = append(m.notices, notice{id: id, text: text, isErr: isErr})
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{ID: id}
	})
}

// View renders the thread with a one-line status footer. An active
// confirmation dialog replaces the view with a centered modal.
func (m *Model) View() string {
	if m.confirm != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	var b strings.Builder
	b.WriteString(m.thread.View())
	b.WriteString("\n")

	switch {
	case len(m.notices) > 0:
		n := m.notices[len(m.notices)-1]
		style := styles.NoticeInfoStyle
		if n.isErr {
			style = styles.NoticeErrorStyle
		}
		b.WriteString(style.Render(n.text))
	case m.loading:
		b.WriteString(m.spinner.View() + " loading")
	default:
		b.WriteString(styles.HelpStyle.Render(m.helpLine()))
	}

	return b.String()
}

func (m *Model) helpLine() string {
	keys := make([]string, 0, len(m.cfg.Keybindings))
	for key := range m.cfg.Keybindings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+2)
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, m.cfg.Keybindings[key].Help))
	}
	parts = append(parts, "j/k: move", "q: quit")
	return strings.Join(parts, " • ")
}
