// Package app is the terminal mini-player: a bubbletea program that
// feeds keyboard input to the control dispatcher and renders the queue
// panel and player bar from engine snapshots.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/controls"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/keymap"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/playback"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/ui/playerbar"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/ui/queuepanel"
)

// snapshotMsg carries a fresh engine snapshot into the update loop.
type snapshotMsg struct {
	snap playback.Snapshot
}

// engineClosedMsg is sent when the engine shuts down underneath the UI.
type engineClosedMsg struct{}

// Model is the root bubbletea model.
type Model struct {
	engine     *playback.Engine
	sub        *playback.Subscription
	dispatcher *controls.Dispatcher
	keys       *keymap.Resolver

	queue   *queuepanel.Model
	snap    playback.Snapshot
	barMode playerbar.DisplayMode

	width    int
	height   int
	showHelp bool
}

// New creates the root model around a running engine.
func New(engine *playback.Engine) Model {
	qp := queuepanel.New()
	qp.SetFocused(true)

	m := Model{
		engine: engine,
		sub:    engine.Subscribe(),
		keys:   keymap.NewResolver(keymap.All),
		queue:  qp,
		snap:   engine.Snapshot(),
	}
	m.dispatcher = controls.NewDispatcher(engine, qp)
	qp.SetSnapshot(m.snap)
	return m
}

// Init starts listening for engine events.
func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent blocks on the engine subscription and turns whatever
// arrives into a snapshot refresh. The event payloads themselves are
// not needed; the snapshot is the single source of truth.
func (m Model) waitForEvent() tea.Cmd {
	sub, engine := m.sub, m.engine
	return func() tea.Msg {
		select {
		case <-sub.Done:
			return engineClosedMsg{}
		case <-sub.StateChanged:
		case <-sub.TrackChanged:
		case <-sub.PositionChanged:
		case <-sub.QueueChanged:
		case <-sub.ModeChanged:
		case <-sub.VolumeChanged:
		case <-sub.Error:
		}
		return snapshotMsg{snap: engine.Snapshot()}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case snapshotMsg:
		m.snap = msg.snap
		m.queue.SetSnapshot(msg.snap)
		m.layout()
		return m, m.waitForEvent()

	case engineClosedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == " " {
		// Bindings name the space key "space".
		key = "space"
	}
	if m.dispatcher.HandleKey(key) {
		return m, nil
	}

	switch m.keys.Resolve(key) {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
		m.layout()
	case keymap.ActionTogglePlayerDisplay:
		m.barMode = m.barMode.Toggle()
		m.layout()
	case keymap.ActionMoveUp:
		m.queue.MoveCursor(-1)
	case keymap.ActionMoveDown:
		m.queue.MoveCursor(1)
	}
	return m, nil
}

// layout recomputes the queue panel size from the window and whatever
// else is on screen.
func (m *Model) layout() {
	m.queue.SetSize(m.width, max(m.height-m.barHeight()-m.helpHeight(), 0))
}

func (m Model) barHeight() int {
	if !m.snap.HasTrack() && m.snap.Err == nil {
		return 0
	}
	return playerbar.Height(m.barMode)
}
