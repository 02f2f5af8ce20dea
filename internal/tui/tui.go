// Package tui renders the generated message and asks the user what to
// do with it.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"commitgen/internal/core"
	"commitgen/internal/git"
	"commitgen/internal/utils"
)

const listHeight = 14

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	quitTextStyle     = lipgloss.NewStyle().Margin(1, 0, 2, 4)
)

type MenuAction int

const (
	CommitThis MenuAction = iota
	CopyToClipboard
	Regenerate
	Cancel
)

type item struct {
	title  string
	action MenuAction
}

func (i item) FilterValue() string { return i.title }

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := i.title

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

type model struct {
	list     list.Model
	message  *core.CommitMessage
	choice   MenuAction
	quitting bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch keypress := msg.String(); keypress {
		case "q", "ctrl+c":
			m.quitting = true
			m.choice = Cancel
			return m, tea.Quit

		case "enter":
			i, ok := m.list.SelectedItem().(item)
			if ok {
				m.choice = i.action
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return quitTextStyle.Render("Exiting...")
	}

	return fmt.Sprintf("%s\n\n%s", Render(m.message), m.list.View())
}

// Render formats a commit message as it would appear in git: title,
// blank line, body.
func Render(msg *core.CommitMessage) string {
	if msg.Body == "" {
		return msg.Title
	}
	return fmt.Sprintf("%s\n\n%s", msg.Title, msg.Body)
}

// Confirm shows the message with a commit/copy/regenerate/cancel menu
// and acts on the choice. In a non-interactive environment the message
// is printed to stdout instead. regenerate produces a fresh message for
// the Regenerate action.
func Confirm(ctx context.Context, dir string, msg *core.CommitMessage, regenerate func(context.Context) (*core.CommitMessage, error)) error {
	if !utils.IsTTY() {
		fmt.Println(Render(msg))
		return nil
	}

	for {
		choice, err := pick(msg)
		if err != nil {
			return err
		}

		switch choice {
		case CommitThis:
			if err := git.Stage(ctx, dir); err != nil {
				return err
			}
			if err := git.Commit(ctx, dir, msg.Title, msg.Body); err != nil {
				return err
			}
			log.Info().Msg("Commit successfully created!")
			return nil
		case CopyToClipboard:
			if err := clipboard.WriteAll(Render(msg)); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			log.Info().Msg("Commit message copied to clipboard.")
			return nil
		case Regenerate:
			log.Info().Msg("Regenerating commit message...")
			msg, err = regenerate(ctx)
			if err != nil {
				return err
			}
		case Cancel:
			log.Info().Msg("Commit aborted.")
			return nil
		}
	}
}

func pick(msg *core.CommitMessage) (MenuAction, error) {
	items := []list.Item{
		item{title: "✅ Commit this", action: CommitThis},
		item{title: "📋 Copy to clipboard and exit", action: CopyToClipboard},
		item{title: "🔄 Regenerate", action: Regenerate},
		item{title: "❌ Cancel", action: Cancel},
	}

	const defaultWidth = 30

	l := list.New(items, itemDelegate{}, defaultWidth, listHeight)
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	m := model{list: l, message: msg, choice: Cancel}

	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return Cancel, fmt.Errorf("error running menu: %w", err)
	}

	if fm, ok := finalModel.(model); ok {
		return fm.choice, nil
	}
	return Cancel, nil
}
