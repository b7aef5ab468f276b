package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/vburojevic/hfx/internal/config"
	"github.com/vburojevic/hfx/internal/domain"
	"github.com/vburojevic/hfx/internal/output"
	"github.com/vburojevic/hfx/internal/provider"
)

// PickCmd interactively picks a split to export
type PickCmd struct {
	Dataset string `short:"d" help:"Dataset name on the Hugging Face Hub"`
}

// pickItem implements list.Item for the split picker
type pickItem struct {
	info domain.SplitInfo
}

func (i pickItem) Title() string { return i.info.Config + " / " + i.info.Split }
func (i pickItem) Description() string {
	if i.info.NumRows > 0 {
		return output.FormatCount(i.info.NumRows) + " rows"
	}
	return "row count unknown"
}
func (i pickItem) FilterValue() string { return i.info.Config + " " + i.info.Split }

// pickModel is the bubbletea model for the picker
type pickModel struct {
	list     list.Model
	selected pickItem
	quitting bool
	canceled bool
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(pickItem); ok {
				m.selected = item
				m.quitting = true
				return m, tea.Quit
			}
		case "q", "esc", "ctrl+c":
			m.canceled = true
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 2)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Run executes the pick command
func (c *PickCmd) Run(globals *Globals) error {
	// Require interactive terminal
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return c.outputError(globals, "NOT_A_TTY",
			"hfx pick requires an interactive terminal. Use 'hfx splits' for scripting.")
	}

	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if c.Dataset == "" {
		c.Dataset = cfg.Defaults.Dataset
	}
	if c.Dataset == "" {
		return c.outputError(globals, "INVALID_FLAGS", "no dataset given and none configured; pass --dataset")
	}

	ctx := context.Background()
	hub := provider.NewHub(provider.HubOptions{Endpoint: cfg.Endpoint})
	infos, err := hub.Splits(ctx, c.Dataset)
	if err != nil {
		return c.outputError(globals, "PROVIDER_ERROR", err.Error(), hintForProvider(err))
	}
	if len(infos) == 0 {
		return c.outputError(globals, "NO_SPLITS", fmt.Sprintf("dataset %s has no splits", c.Dataset))
	}

	items := make([]list.Item, 0, len(infos))
	for _, info := range infos {
		items = append(items, pickItem{info: info})
	}

	selected, err := c.runPicker(items, "Select split ("+c.Dataset+")")
	if err != nil {
		return err
	}

	command := fmt.Sprintf("hfx export -d %s -c %s -s %s",
		selected.info.Dataset, selected.info.Config, selected.info.Split)

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WritePick(
			selected.info.Dataset, selected.info.Config, selected.info.Split, command)
	}

	// Text format: output just the command for piping
	_, err = io.WriteString(globals.Stdout, command+"\n")
	return err
}

func (c *PickCmd) runPicker(items []list.Item, title string) (pickItem, error) {
	// Configure list delegate with styles
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("39")).
		Foreground(lipgloss.Color("39")).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color("241"))

	l := list.New(items, delegate, 0, 0)
	l.Title = title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().
		Background(lipgloss.Color("39")).
		Foreground(lipgloss.Color("0")).
		Padding(0, 1)

	m := pickModel{list: l}
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return pickItem{}, fmt.Errorf("picker error: %w", err)
	}

	result := finalModel.(pickModel)
	if result.canceled {
		return pickItem{}, errors.New("selection canceled")
	}

	return result.selected, nil
}

func (c *PickCmd) outputError(globals *Globals, code, message string, hint ...string) error {
	return outputErrorCommon(globals, code, message, hint...)
}
