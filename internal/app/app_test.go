package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathwhiz/internal/router"
	"github.com/abhisek/mathwhiz/internal/screens"
	"github.com/abhisek/mathwhiz/internal/store"
)

func newModel(t *testing.T, opts Options) AppModel {
	t.Helper()
	m := NewAppModel(screens.NewDeps(context.Background(), store.NewMemoryKV(), nil), opts)
	t.Cleanup(m.router.Close)
	return m
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func TestApp_StartsOnHome(t *testing.T) {
	m := newModel(t, Options{})
	assert.Equal(t, "Home", m.router.Active().Title())
	assert.Equal(t, 1, m.router.Depth())
}

func TestApp_StartGame(t *testing.T) {
	m := newModel(t, Options{StartGame: true})
	assert.Equal(t, 2, m.router.Depth())
	assert.Equal(t, "Easy Game", m.router.Active().Title())
}

func TestApp_EscPopsScreensThatDoNotHandleIt(t *testing.T) {
	m := newModel(t, Options{})
	m, _ = update(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, "Settings", m.router.Active().Title())

	_, cmd = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

func TestApp_EscOnHomeDoesNothing(t *testing.T) {
	m := newModel(t, Options{})
	_, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
}

func TestApp_EscInGameGoesToResults(t *testing.T) {
	m := newModel(t, Options{StartGame: true})

	m, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, "Results", m.router.Active().Title())
	assert.Equal(t, 2, m.router.Depth())
}

func TestApp_View(t *testing.T) {
	m := newModel(t, Options{StartGame: true})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Contains(t, m.render(), "Terminal too small")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	content := m.render()
	assert.Contains(t, content, "MathWhiz")
	assert.Contains(t, content, "Score 0")
	assert.True(t, strings.Contains(content, "End game"), "game key hints in footer")
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := newModel(t, Options{})
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
