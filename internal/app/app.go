// Package app wires the screens into the Bubble Tea program.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwhiz/internal/router"
	"github.com/abhisek/mathwhiz/internal/screen"
	"github.com/abhisek/mathwhiz/internal/screens"
	"github.com/abhisek/mathwhiz/internal/screens/game"
	"github.com/abhisek/mathwhiz/internal/screens/home"
	"github.com/abhisek/mathwhiz/internal/ui/components"
	"github.com/abhisek/mathwhiz/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	initCmd tea.Cmd
	width   int
	height  int
}

// Options adjust how the program starts.
type Options struct {
	// StartGame opens a game straight away instead of only the home screen.
	StartGame bool
}

// NewAppModel creates the model with the home screen at the root.
func NewAppModel(deps *screens.Deps, opts Options) AppModel {
	root := home.New(deps)
	r := router.New(root)
	initCmd := root.Init()
	if opts.StartGame {
		initCmd = r.Push(game.New(deps))
	}
	return AppModel{router: r, initCmd: initCmd}
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if key.Matches(msg, components.Keys.Back) && !handlesEsc(m.router.Active()) {
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func handlesEsc(s screen.Screen) bool {
	h, ok := s.(screen.EscHandler)
	return ok && h.HandlesEsc()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the frame for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var status *layout.Status
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			score, high := sp.Status()
			status = &layout.Status{Score: score, HighScore: high}
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits. Screens
// still on the stack are closed on the way out.
func Run(ctx context.Context, deps *screens.Deps, opts Options) error {
	model := NewAppModel(deps, opts)
	defer model.router.Close()

	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		slog.ErrorContext(ctx, "TUI exited with error", "error", err)
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
