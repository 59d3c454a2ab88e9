package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todo/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		m.commandInput = updateInput(m.commandInput, msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Mode = ModeList
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	m.Status = StatusBar{}
	if m.Store == nil {
		m.Status = StatusBar{Text: errNoStore.Error(), IsError: true}
		return m
	}

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	visible := m.visible()
	resolve := func(ref commands.Ref) (string, error) {
		id, err := ref.Resolve(visible)
		if err != nil {
			return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
		}
		return id, nil
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.addTodo(a.Title)
			if m.Status.IsError {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: fmt.Sprintf("added: %s", a.Title)}, nil
		},
		Edit: func(e commands.EditArgs) (commands.Result, error) {
			id, err := resolve(e.Ref)
			if err != nil {
				return commands.Result{}, err
			}
			m.editTodo(id, e.Title)
			if m.Status.IsError {
				return commands.Result{}, m.LastError
			}
			if e.Title == "" {
				return commands.Result{Message: fmt.Sprintf("removed %s", e.Ref)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("renamed %s", e.Ref)}, nil
		},
		Remove: func(r commands.RefArgs) (commands.Result, error) {
			id, err := resolve(r.Ref)
			if err != nil {
				return commands.Result{}, err
			}
			m.removeTodo(id)
			if m.Status.IsError {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: fmt.Sprintf("removed %s", r.Ref)}, nil
		},
		Toggle: func(r commands.RefArgs) (commands.Result, error) {
			id, err := resolve(r.Ref)
			if err != nil {
				return commands.Result{}, err
			}
			m.toggleTodo(id)
			if m.Status.IsError {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: fmt.Sprintf("toggled %s", r.Ref)}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			m.setFilter(f.Filter)
			return commands.Result{Message: "showing " + f.Filter.Label()}, nil
		},
		Clear: func() (commands.Result, error) {
			n := m.Store.CompletedCount()
			m.clearCompleted()
			if m.Status.IsError {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: fmt.Sprintf("cleared %d completed", n)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	m.clampCursor()
	return m
}
