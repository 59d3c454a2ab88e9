package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncRevision()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.commitPendingEdit()
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.Mode {
		case ModePalette:
			return m.handlePaletteKey(typed), nil
		case ModeAdding:
			return m.handleAddKey(typed), nil
		case ModeEditing:
			return m.handleEditKey(typed), nil
		}
		return m.handleListKey(typed)
	case AddTodoMsg:
		m.addTodo(typed.Title)
		return m, nil
	case ToggleTodoMsg:
		m.toggleTodo(typed.ID)
		return m, nil
	case EditTodoMsg:
		m.editTodo(typed.ID, typed.Title)
		return m, nil
	case RemoveTodoMsg:
		m.removeTodo(typed.ID)
		return m, nil
	case ClearCompletedMsg:
		m.clearCompleted()
		return m, nil
	case SetFilterMsg:
		m.setFilter(typed.Filter)
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	remaining, completed, total := 0, 0, 0
	if m.Store != nil {
		remaining, completed, total = m.Store.RemainingCount(), m.Store.CompletedCount(), m.Store.Len()
	}

	return views.RenderApp(views.AppData{
		Header:      fmt.Sprintf("todo | filter: %s | tasks: %d", m.Filter.Label(), total),
		FilterBar:   views.RenderFilterBar(views.FilterBarData{Labels: filterLabels(), Active: filterIndex(m.Filter), Completed: completed}),
		Body:        m.renderTodoPanel(),
		InputLine:   m.renderInputLine(),
		StatusLine:  status,
		StatusError: m.Status.IsError,
		Help:        m.renderHelpIfVisible(),
		Footer: fmt.Sprintf("%s | keys: %s add | space toggle | enter edit | %s delete | 1-3 filter | / cmd | %s help | %s quit",
			views.ItemsLeft(remaining), m.Keys.Add, m.Keys.Remove, m.Keys.Help, m.Keys.Quit),
	})
}

// syncRevision clamps the cursor whenever the store committed a change.
func (m *Model) syncRevision() {
	if m.Store == nil || m.Store.Revision() == m.revision {
		return
	}
	m.revision = m.Store.Revision()
	m.clampCursor()
}

func filterLabels() []string {
	labels := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		labels = append(labels, f.Label())
	}
	return labels
}

func filterIndex(f model.Filter) int {
	for i, candidate := range model.Filters {
		if candidate == f {
			return i
		}
	}
	return 0
}
