package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/todo/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const paletteHelp = `## Commands

Open with **/** and press enter to run.

- ` + "`add <title>`" + `
- ` + "`edit <n|id> <title>`" + ` (empty title deletes)
- ` + "`rm <n|id>`" + `
- ` + "`toggle <n|id>`" + `
- ` + "`filter all|active|completed`" + `
- ` + "`clear`" + `
`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
		Markdown: paletteHelp,
	})
}

func (m Model) listBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Add + "/i/n", Action: "add tasks"},
		{Key: "space/x", Action: "toggle completed"},
		{Key: "enter/e", Action: "edit title"},
		{Key: m.Keys.Remove + "/delete", Action: "delete task"},
		{Key: "1/2/3", Action: "all / active / completed"},
		{Key: m.Keys.NextFilter, Action: "next filter"},
		{Key: m.Keys.ClearCompleted, Action: "clear completed"},
		{Key: "j/k", Action: "move selection"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) modeBindings() []KeyBinding {
	switch m.Mode {
	case ModeAdding:
		return []KeyBinding{
			{Key: "enter", Action: "add task and keep typing"},
			{Key: "esc", Action: "back to list"},
		}
	case ModeEditing:
		return []KeyBinding{
			{Key: "enter/esc", Action: "save title (empty deletes)"},
		}
	case ModePalette:
		return []KeyBinding{
			{Key: "enter", Action: "run command"},
			{Key: "esc", Action: "close palette"},
		}
	default:
		return m.listBindings()
	}
}

func (m Model) helpBindings() []key.Binding {
	kbs := m.modeBindings()
	out := make([]key.Binding, 0, len(kbs))
	for _, kb := range kbs {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
