// Package browsetui is an interactive tree browser: select a node, see
// its fully inherited configuration rendered below the list. Grounded on
// the teacher's internal/tui.StartModelV2 — a bubbles/list.Model driving
// a single-selection list with a details pane below — adapted here from
// "pick a repo/scope to launch" to "pick a node to inspect".
package browsetui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ra-configtree/ratree/internal/configtree"
	"github.com/ra-configtree/ratree/internal/constants"
	"github.com/ra-configtree/ratree/internal/schema"
	"github.com/ra-configtree/ratree/internal/vfs"
)

// NodeItem is one selectable row: a discovered config file and the tree
// depth it sits at, used to indent Title() with the same branch glyphs
// `ractl validate`'s tree dump uses.
type NodeItem struct {
	File  vfs.FileID
	Label string
	Depth int
}

func (i NodeItem) Title() string {
	if i.Depth == 0 {
		return i.Label
	}
	return strings.Repeat(constants.TreeVertical, i.Depth-1) + constants.TreeBranch + i.Label
}

func (i NodeItem) Description() string { return fmt.Sprintf("file id %d", i.File) }

func (i NodeItem) FilterValue() string { return i.Label }

type keyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Quit}}
}

var keys = keyMap{
	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
}

// Model is the bubbletea model: a list of nodes, with the selected
// node's resolved configuration rendered beneath it in View.
type Model struct {
	list     list.Model
	tree     *configtree.Tree
	quitting bool
	err      error
}

// New builds a browse model over items, reading through tree for each
// selection's resolved configuration.
func New(tree *configtree.Tree, items []NodeItem) *Model {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("170")).
		Foreground(lipgloss.Color("170")).
		Bold(true)

	l := list.New(listItems, delegate, 0, 0)
	l.Title = "Config tree"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	return &Model{list: l, tree: tree}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 8)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var detail string
	if item, ok := m.list.SelectedItem().(NodeItem); ok {
		cfg, err := m.tree.ReadConfig(item.File)
		if err != nil {
			detail = fmt.Sprintf("error: %v", err)
		} else {
			detail = renderConfig(cfg)
		}
	}

	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render(detail))
	return b.String()
}

func renderConfig(c *schema.Local) string {
	return fmt.Sprintf(
		"completion.autoself.enable=%v  completion.autoimport.enable=%v\n"+
			"semanticHighlighting.strings.enable=%v  inlayHints.discriminantHints.enable=%s\n"+
			"checkOnSave.command=%q  cargo.features=%v  diagnostics.disabled=%v",
		c.CompletionAutoselfEnable, c.CompletionAutoimportEnable,
		c.SemanticHighlightingStringsEnable, c.InlayHintsDiscriminantHints,
		c.CheckOnSaveCommand, c.CargoFeatures, c.DiagnosticsDisabled,
	)
}
