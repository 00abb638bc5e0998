package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/progress"

	"marquee/flow"
)

// FlowController is the slice of the flow the presentation layer calls
// into. State flows the other way as snapshots via Subscribe; the view
// never mutates flow state directly.
type FlowController interface {
	Activate()
	Navigate(delta int)
	OpenDossier()
	CloseDossier()
	PlayRequested()
	Close()
	Subscribe() <-chan flow.Snapshot
}

// FrameSource yields the current frame of a reel for rendering.
type FrameSource interface {
	Frame() string
}

type snapshotMsg flow.Snapshot

type introTickMsg time.Time

type Model struct {
	ctrl     FlowController
	snaps    <-chan flow.Snapshot
	snap     flow.Snapshot
	frames   map[string]FrameSource
	keys     *KeyRegistry
	splash   time.Duration
	started  time.Time
	prog     progress.Model
	status   string
	width    int
	height   int
	quitting bool
}

func New(ctrl FlowController, frames map[string]FrameSource, splash time.Duration) Model {
	if splash <= 0 {
		splash = flow.DefaultSplashDelay
	}
	prog := progress.New(progress.WithGradient(string(colorBorder), string(colorAccent)))
	prog.ShowPercentage = false
	snaps := ctrl.Subscribe()
	m := Model{
		ctrl:    ctrl,
		snaps:   snaps,
		frames:  frames,
		keys:    NewKeyRegistry(defaultBindings()),
		splash:  splash,
		started: time.Now(),
		prog:    prog,
		status:  "Rolling the pre-show",
		width:   80,
		height:  24,
	}
	m.snap = <-snaps
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.activateCmd(), waitSnapshot(m.snaps), introTick())
}

func (m Model) activateCmd() tea.Cmd {
	return func() tea.Msg {
		m.ctrl.Activate()
		return nil
	}
}

func waitSnapshot(ch <-chan flow.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

func introTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return introTickMsg(t)
	})
}

// scope names the active key scope: the dossier captures keys while it
// is up, otherwise the stage does.
func (m Model) scope() string {
	if m.snap.DossierVisible {
		return "dossier"
	}
	return m.snap.Stage.String()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = flow.Snapshot(msg)
		return m, waitSnapshot(m.snaps)
	case introTickMsg:
		if m.snap.Stage == flow.StageIntro {
			return m, introTick()
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	scope := m.scope()
	switch {
	case m.keys.IsAction(msg, "quit", scope):
		m.quitting = true
		m.ctrl.Close()
		return m, tea.Quit
	case m.keys.IsAction(msg, "nav-prev", scope):
		m.ctrl.Navigate(-1)
		return m, nil
	case m.keys.IsAction(msg, "nav-next", scope):
		m.ctrl.Navigate(1)
		return m, nil
	case m.keys.IsAction(msg, "open-dossier", scope):
		if !m.snap.Unlocked {
			m.status = "This reel is locked"
			return m, nil
		}
		m.ctrl.OpenDossier()
		return m, nil
	case m.keys.IsAction(msg, "close-dossier", scope):
		m.ctrl.CloseDossier()
		return m, nil
	case m.keys.IsAction(msg, "play", scope):
		m.ctrl.PlayRequested()
		m.status = "Play requested"
		return m, nil
	}
	return m, nil
}

func (m Model) frame(id string) string {
	if fs, ok := m.frames[id]; ok {
		return fs.Frame()
	}
	return ""
}
