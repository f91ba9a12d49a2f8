// Package tui provides interactive terminal components built on Bubble Tea.
//
// The team picker is rendered when a destination reports that publishing
// needs a team scope and the site configuration does not name one. The
// launch blocks until the user selects a team, asks for a refresh, chooses
// to create a new team, or cancels.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pagelift/pagelift-cli/internal/adapters/driving/tui/styles"
	"github.com/pagelift/pagelift-cli/internal/core/domain"
	"github.com/pagelift/pagelift-cli/internal/core/ports/driven"
)

// Ensure TeamPicker implements the interface.
var _ driven.TeamResolver = (*TeamPicker)(nil)

// TeamPicker resolves team scope interactively in the terminal.
type TeamPicker struct {
	styles *styles.Styles
}

// NewTeamPicker creates a team picker with the given styles.
func NewTeamPicker(s *styles.Styles) *TeamPicker {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &TeamPicker{styles: s}
}

// Resolve displays the team list and blocks until the user decides.
// Cancelling the context kills the picker and reports a cancelled selection.
func (p *TeamPicker) Resolve(ctx context.Context, list domain.TeamList) (domain.TeamSelection, error) {
	model := newPickerModel(list, p.styles)

	program := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return domain.CancelTeamSelection(), nil
		}
		return domain.TeamSelection{}, fmt.Errorf("team picker: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok {
		return domain.TeamSelection{}, fmt.Errorf("team picker: unexpected model type %T", final)
	}
	return m.selection, nil
}

// pickerKeyMap defines the team picker keybindings.
type pickerKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Refresh key.Binding
	Create  key.Binding
	Cancel  key.Binding
}

func defaultPickerKeyMap() pickerKeyMap {
	return pickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Create: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new team"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// pickerModel is the Bubble Tea model for team selection.
type pickerModel struct {
	list      domain.TeamList
	cursor    int
	keys      pickerKeyMap
	styles    *styles.Styles
	selection domain.TeamSelection
	width     int
}

func newPickerModel(list domain.TeamList, s *styles.Styles) pickerModel {
	return pickerModel{
		list:      list,
		keys:      defaultPickerKeyMap(),
		styles:    s,
		selection: domain.CancelTeamSelection(),
		width:     80,
	}
}

// Init implements tea.Model.
func (m pickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.list.Teams)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.list.Teams) > 0 {
				m.selection = domain.SelectTeam(m.list.Teams[m.cursor].ID)
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.Refresh):
			m.selection = domain.RefreshTeams()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Create):
			m.selection = domain.CreateTeam()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.selection = domain.CancelTeamSelection()
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Select a team"))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("This destination requires a team scope for publishing."))
	b.WriteString("\n\n")

	if len(m.list.Teams) == 0 {
		b.WriteString(m.styles.Muted.Render("  No teams available."))
		b.WriteString("\n")
	}

	for i, team := range m.list.Teams {
		line := fmt.Sprintf("  %s (%s)", team.Name, team.ID)
		if i == m.cursor {
			line = m.styles.Selected.Render("> " + line[2:])
		} else {
			line = m.styles.Normal.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.list.ManageURL != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("Manage teams: " + m.list.ManageURL))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(
		"↑/↓ move · enter select · r refresh · n new team · esc cancel"))
	b.WriteString("\n")

	return b.String()
}
