package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pipes/internal/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes"
	"github.com/vovakirdan/tui-pipes/internal/storage"
)

// MenuEntry is one line of the main menu.
type MenuEntry int

const (
	MenuCampaign MenuEntry = iota
	MenuEndless
	MenuSelectLevel
	MenuScores
	MenuQuit
)

var menuEntries = []MenuEntry{MenuCampaign, MenuEndless, MenuSelectLevel, MenuScores, MenuQuit}

func (e MenuEntry) String() string {
	switch e {
	case MenuCampaign:
		return fmt.Sprintf("Campaign (%d boards)", pipes.LevelCount())
	case MenuEndless:
		return "Endless"
	case MenuSelectLevel:
		return "Select Level..."
	case MenuScores:
		return "High Scores"
	case MenuQuit:
		return "Quit"
	}
	return "?"
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// StateKey returns the saved-game key of a game for a player. Local play
// has no owner.
func StateKey(owner, gameID string) string {
	if owner == "" {
		return gameID
	}
	return owner + "/" + gameID
}

// MenuModel is the Bubble Tea model for the main menu and the level picker.
type MenuModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	store         *storage.Store
	owner         string
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	saved         map[string]bool // games with a saved run
	quitting      bool
	result        *MenuResult
}

// NewMenuModel creates a new menu model. owner scopes saved games to a player.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, owner string) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		owner:     owner,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		saved:     make(map[string]bool),
	}
	if store != nil {
		for _, id := range []string{pipes.GameID, pipes.EndlessGameID} {
			if _, ok, err := store.LoadState(StateKey(owner, id)); err == nil && ok {
				m.saved[id] = true
			}
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleMenuKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleMenuKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		return m.finish(MenuResult{WantsScoreboard: true})

	case MenuActionSelect:
		switch menuEntries[m.cursor] {
		case MenuCampaign:
			return m.finish(MenuResult{GameID: pipes.GameID, Resume: true})
		case MenuEndless:
			return m.finish(MenuResult{GameID: pipes.EndlessGameID, Resume: true})
		case MenuSelectLevel:
			m.inLevelSelect = true
			m.levelCursor = 0
		case MenuScores:
			return m.finish(MenuResult{WantsScoreboard: true})
		case MenuQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < pipes.LevelCount()-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		return m.finish(MenuResult{GameID: pipes.GameID, StartLevel: m.levelCursor + 1})
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

func (m MenuModel) finish(r MenuResult) (tea.Model, tea.Cmd) {
	m.result = &r
	return m, tea.Quit // Exit menu to start the next screen
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting || m.result != nil {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewMenu()
}

func (m MenuModel) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("━━┓  P I P E S  ┏━━"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Turn the pipes before the water arrives", m.width))
	b.WriteString("\n\n")

	for i, entry := range menuEntries {
		line := "  " + entry.String()
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + entry.String())
		}
		switch {
		case entry == MenuCampaign && m.saved[pipes.GameID],
			entry == MenuEndless && m.saved[pipes.EndlessGameID]:
			line += menuHintStyle.Render(" (resume)")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	for i, name := range pipes.LevelNames() {
		cols, rows := pipes.GetLevel(i).Size()
		line := fmt.Sprintf("%2d. %-18s %2dx%-2d", i+1, name, cols, rows)
		if i == m.levelCursor {
			line = menuSelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Result returns what the user picked, or nil while the menu is open.
func (m MenuModel) Result() *MenuResult {
	return m.result
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Styled text is measured
// without its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	StartLevel      int // 1-indexed, 0 = first level
	Resume          bool
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg, "")

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Result() == nil {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := *m.Result()
	result.Config = m.Config()
	return result, nil
}
