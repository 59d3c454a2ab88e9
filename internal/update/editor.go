package update

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) startAdding() Model {
	m.Mode = ModeAdding
	m.addInput.SetValue("")
	m.addInput.Focus()
	m.Status = StatusBar{Text: "add mode"}
	return m
}

// handleAddKey keeps the input focused after each submit so several tasks can
// be entered in a row.
func (m Model) handleAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.addInput.SetValue("")
		m.addInput.Blur()
		m.Status = StatusBar{Text: "list mode"}
		return m
	case "enter":
		m.addTodo(m.addInput.Value())
		m.addInput.SetValue("")
		return m
	}
	m.addInput = updateInput(m.addInput, msg)
	return m
}

// updateInput appends typed runes directly and delegates editing keys to the
// textinput component.
func updateInput(in textinput.Model, msg tea.KeyMsg) textinput.Model {
	if msg.Type == tea.KeyRunes {
		in.SetValue(in.Value() + string(msg.Runes))
		in.CursorEnd()
		return in
	}
	in, _ = in.Update(msg)
	return in
}

func (m Model) beginEdit() Model {
	task, ok := m.selected()
	if !ok {
		return m
	}
	m.Mode = ModeEditing
	m.EditingID = task.ID
	m.editInput.SetValue(task.Title)
	m.editInput.CursorEnd()
	m.editInput.Focus()
	m.Status = StatusBar{Text: "editing"}
	return m
}

// handleEditKey commits on enter and on esc. An edit that trims to empty
// removes the task.
func (m Model) handleEditKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter", "esc":
		m.commitPendingEdit()
		return m
	}
	m.editInput = updateInput(m.editInput, msg)
	return m
}

func (m *Model) commitPendingEdit() {
	if m.Mode != ModeEditing {
		return
	}
	id, title := m.EditingID, m.editInput.Value()
	m.Mode = ModeList
	m.EditingID = ""
	m.editInput.Blur()
	m.editInput.SetValue("")
	m.Status = StatusBar{}
	m.editTodo(id, title)
}
