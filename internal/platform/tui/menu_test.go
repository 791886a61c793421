package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-pipes/internal/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes"
)

func menuKeys(t *testing.T, m MenuModel, keys ...string) (MenuModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(MenuModel)
		require.True(t, ok)
	}
	return m, cmd
}

func TestMenuCampaign(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig(), "")
	assert.Contains(t, m.View(), "Campaign")

	m, cmd := menuKeys(t, m, "enter")
	require.NotNil(t, m.Result())
	assert.NotNil(t, cmd)
	assert.Equal(t, pipes.GameID, m.Result().GameID)
	assert.True(t, m.Result().Resume)
	assert.Empty(t, m.View())
}

func TestMenuEndless(t *testing.T) {
	m, _ := menuKeys(t, NewMenuModel(nil, core.DefaultConfig(), ""), "down", "enter")
	require.NotNil(t, m.Result())
	assert.Equal(t, pipes.EndlessGameID, m.Result().GameID)
}

func TestMenuLevelSelect(t *testing.T) {
	m, _ := menuKeys(t, NewMenuModel(nil, core.DefaultConfig(), ""), "down", "down", "enter")
	assert.Nil(t, m.Result())
	assert.Contains(t, m.View(), "SELECT LEVEL")
	assert.Contains(t, m.View(), pipes.LevelNames()[0])

	// Back returns to the main list without leaving the menu.
	m, _ = menuKeys(t, m, "esc")
	assert.False(t, m.IsQuitting())
	assert.Contains(t, m.View(), "Endless")

	m, _ = menuKeys(t, m, "enter", "down", "down", "enter")
	require.NotNil(t, m.Result())
	assert.Equal(t, pipes.GameID, m.Result().GameID)
	assert.Equal(t, 3, m.Result().StartLevel)
	assert.False(t, m.Result().Resume)
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	next, _ := NewMenuModel(nil, core.DefaultConfig(), "").Update(tea.KeyMsg{Type: tea.KeyTab})
	m := next.(MenuModel)
	require.NotNil(t, m.Result())
	assert.True(t, m.Result().WantsScoreboard)

	m, _ = menuKeys(t, NewMenuModel(nil, core.DefaultConfig(), ""), "up", "q")
	assert.True(t, m.IsQuitting())
	assert.Nil(t, m.Result())
}

func TestMenuShowsSavedGames(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.SaveState(StateKey("bob", pipes.EndlessGameID), []byte("x")))

	view := NewMenuModel(store, core.DefaultConfig(), "bob").View()
	lines := strings.Split(view, "\n")
	var endless string
	for _, line := range lines {
		if strings.Contains(line, "Endless") {
			endless = line
		}
	}
	assert.Contains(t, endless, "(resume)")

	assert.NotContains(t, NewMenuModel(store, core.DefaultConfig(), "carol").View(), "(resume)")
}

func TestStateKey(t *testing.T) {
	assert.Equal(t, "pipes", StateKey("", "pipes"))
	assert.Equal(t, "alice/pipes", StateKey("alice", "pipes"))
}

func TestSessionMenuToScoresAndBack(t *testing.T) {
	s := NewSessionModel(nil, core.DefaultConfig(), "dave", log.New(io.Discard))

	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	assert.Equal(t, viewScores, s.view)
	assert.Nil(t, cmd, "the menu's quit command must not end the session")
	assert.Contains(t, s.View(), "HIGH SCORES")

	next, _ = s.Update(keyMsg("esc"))
	s = next.(SessionModel)
	assert.Equal(t, viewMenu, s.view)
	assert.Contains(t, s.View(), "Campaign")
}

func TestSessionStartsGame(t *testing.T) {
	s := NewSessionModel(nil, core.DefaultConfig(), "erin", log.New(io.Discard))

	next, cmd := s.Update(keyMsg("enter"))
	s = next.(SessionModel)
	assert.Equal(t, viewGame, s.view)
	assert.NotNil(t, cmd, "the game tick loop starts")
	assert.Equal(t, "erin/"+pipes.GameID, s.gameModel.opts.StateKey)
	assert.Contains(t, s.View(), "PIPES")

	next, _ = s.Update(keyMsg("q"))
	s = next.(SessionModel)
	assert.True(t, s.quitting)
	assert.Empty(t, s.View())
}

func TestSessionLevelSelectStaysInSession(t *testing.T) {
	s := NewSessionModel(nil, core.DefaultConfig(), "frank", log.New(io.Discard))

	for _, k := range []string{"down", "down", "enter", "down", "down", "enter"} {
		next, _ := s.Update(keyMsg(k))
		s = next.(SessionModel)
	}
	require.Equal(t, viewGame, s.view)

	game, ok := s.gameModel.game.(*pipes.Game)
	require.True(t, ok)
	assert.Equal(t, 3, game.Snapshot().Level)
	assert.Zero(t, pipes.GetStartLevel(), "the level pick must not leak to other sessions")

	other := NewSessionModel(nil, core.DefaultConfig(), "grace", log.New(io.Discard))
	next, _ := other.Update(keyMsg("enter"))
	other = next.(SessionModel)
	otherGame, ok := other.gameModel.game.(*pipes.Game)
	require.True(t, ok)
	assert.Equal(t, 1, otherGame.Snapshot().Level)
}
