package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skygate/internal/config"
	"github.com/vovakirdan/skygate/internal/core"
	"github.com/vovakirdan/skygate/internal/registry"
	"github.com/vovakirdan/skygate/internal/replay"
)

// helpLines is the height reserved below the play-field.
const helpLines = 1

// Model is the Bubble Tea model for running a game, live or from a replay.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       GameKeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	recorder   *replay.Recorder // Live play: every tick's input is appended
	playback   *replay.Cursor   // Watch mode: inputs come from here
	total      int              // Ticks in the replay being watched
	finished   bool             // Playback exhausted
	quitting   bool
	back       bool
}

// NewModel creates a model for live play. rec may be nil.
// The game must not have been Reset yet; Init does it with cfg.
func NewModel(game registry.Game, cfg core.RuntimeConfig, rec *replay.Recorder) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpLines, 1)),
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		recorder:   rec,
	}
}

// NewPlaybackModel creates a model that re-runs r. The game is expected to
// be built with replay.NewGame and is not reset again.
func NewPlaybackModel(game registry.Game, r *replay.Replay, width, height int) Model {
	cfg := r.Runtime()
	cfg.ScreenW = width
	cfg.ScreenH = height

	m := NewModel(game, cfg, nil)
	m.keys = playbackKeyMap(m.keys)
	m.playback = r.Cursor()
	m.total = r.Ticks()
	return m
}

// Init starts the tick loop; live games are reset here.
func (m Model) Init() tea.Cmd {
	if m.playback == nil {
		m.game.Reset(m.config)
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.back = true
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The play-field is fixed, so
// only the projection changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpLines, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	in := m.inputFrame.Clone()
	m.inputFrame.Clear()

	if m.playback != nil {
		next, ok := m.playback.Next()
		if !ok {
			// Stop ticking; the last frame stays on screen.
			m.finished = true
			return m, nil
		}
		// Only the overlay toggle passes through during playback.
		if in.Has(core.ActionDebug) {
			next.Set(core.ActionDebug)
		}
		in = next
	} else if m.recorder != nil {
		m.recorder.Record(in)
	}

	result := m.game.Step(in)
	m.gameState = result.State

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to ~/.skygate/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := config.UserPath("screenshots")
	if dir == "" {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusLine()
}

// statusLine is the line below the play-field.
func (m Model) statusLine() string {
	if m.playback == nil {
		return helpStyle.Render(m.help.View(m.keys))
	}

	status := fmt.Sprintf("replay %d/%d", m.playback.Tick(), m.total)
	if m.finished {
		status = fmt.Sprintf("replay finished after %d ticks", m.total)
	}
	return statusStyle.Render(status) + "  " + helpStyle.Render(m.help.View(m.keys))
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Finished reports whether a watched replay has run out of input.
func (m Model) Finished() bool {
	return m.finished
}

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// WentBack returns true if the user left with the back key.
func (m Model) WentBack() bool {
	return m.back
}

// Run starts a live game. rec, if not nil, receives every tick's input.
func Run(game registry.Game, cfg core.RuntimeConfig, rec *replay.Recorder) error {
	model := NewModel(game, cfg, rec)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

// Watch plays a stored replay in the terminal.
func Watch(game registry.Game, r *replay.Replay, width, height int) error {
	model := NewPlaybackModel(game, r, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
