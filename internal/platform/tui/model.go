package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pipes/internal/config"
	"github.com/vovakirdan/tui-pipes/internal/core"
	"github.com/vovakirdan/tui-pipes/internal/registry"
	"github.com/vovakirdan/tui-pipes/internal/storage"
)

// footerHeight is the number of rows below the game used by the key help.
const footerHeight = 1

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// ModelOptions configures a game model.
type ModelOptions struct {
	// StateKey names the saved game in the store. Empty disables saving.
	StateKey string

	// Resume restores the saved game under StateKey on start.
	Resume bool

	// Logger receives game events. Nil discards them.
	Logger *log.Logger
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       ModelOptions
	logger     *log.Logger
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
	tickGen    uint64
}

// NewModel creates a new Bubble Tea model for the given game.
// cfg holds the full terminal size; the game gets everything above the footer.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.ScreenH = gameHeight(cfg.ScreenH)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		logger:     logger,
		keyMapper:  NewKeyMapper(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		tickGen:    nextTickGen(),
	}
}

func gameHeight(termH int) int {
	return core.Max(termH-footerHeight, 0)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if m.opts.Resume {
		m.restoreState()
	}
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate, m.tickGen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keyMapper.Keys()
	if key.Matches(msg, keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveState()
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu is only offered when the board is not running.
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.saveState()
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = gameHeight(msg.Height)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		m.logger.Debug("game restarted", "game", m.game.ID())
		return m, tickCmd(m.config.TickRate, m.tickGen)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, ev := range result.Events {
		m.logger.Info(ev.Kind.String(), "game", m.game.ID(), "detail", ev.Detail, "score", m.gameState.Score)
	}

	// Record the run on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		st := m.gameState
		m.logger.Info("game over", "game", m.game.ID(), "score", st.Score,
			"level", st.Level, "boards", st.Boards, "won", st.Won, "status", st.Status)
		if m.store != nil && (st.Score > 0 || st.Boards > 0) {
			run := storage.Run{
				Mode:   m.game.ID(),
				Score:  st.Score,
				Level:  st.Level,
				Boards: st.Boards,
				Won:    st.Won,
			}
			if !st.Won {
				run.Reason = st.Status
			}
			if _, err := m.store.SaveRun(run); err != nil {
				m.logger.Warn("could not save run", "game", m.game.ID(), "error", err)
			}
		}
		m.saveState()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.tickGen)
}

// restoreState resumes the saved game, if any. A broken save is logged,
// discarded and the fresh game kept.
func (m Model) restoreState() {
	p, ok := m.game.(registry.Persistable)
	if !ok || m.store == nil || m.opts.StateKey == "" {
		return
	}

	data, found, err := m.store.LoadState(m.opts.StateKey)
	if err != nil {
		m.logger.Warn("could not load saved game", "key", m.opts.StateKey, "error", err)
		return
	}
	if !found {
		return
	}

	if err := p.UnmarshalState(data); err != nil {
		m.logger.Warn("discarding saved game", "key", m.opts.StateKey, "error", err)
		if err := m.store.DeleteState(m.opts.StateKey); err != nil {
			m.logger.Warn("could not delete saved game", "key", m.opts.StateKey, "error", err)
		}
		return
	}
	m.logger.Info("resumed saved game", "key", m.opts.StateKey)
}

// saveState writes the game in progress, or drops the save once there is
// nothing left to resume.
func (m Model) saveState() {
	p, ok := m.game.(registry.Persistable)
	if !ok || m.store == nil || m.opts.StateKey == "" {
		return
	}

	data, err := p.MarshalState()
	if err != nil {
		m.logger.Warn("could not encode saved game", "key", m.opts.StateKey, "error", err)
		return
	}
	if data == nil {
		err = m.store.DeleteState(m.opts.StateKey)
	} else {
		err = m.store.SaveState(m.opts.StateKey, data)
	}
	if err != nil {
		m.logger.Warn("could not write saved game", "key", m.opts.StateKey, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := config.UserDir()
	if dir == "" {
		return
	}
	dir = filepath.Join(dir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + footerStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game. It returns true
// when the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) (bool, error) {
	model := NewModel(game, store, cfg, opts)

	options := []tea.ProgramOption{tea.WithAltScreen()}
	if pt, ok := game.(registry.Pointable); ok && pt.WantsMouse() {
		options = append(options, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(model, options...)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	return ok && m.BackToMenu(), nil
}
