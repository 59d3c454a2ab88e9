package update

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todo/internal/model"
	"go.uber.org/zap"
)

var errNoStore = errors.New("update: no store attached")

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Add, "i", "n":
		return m.startAdding(), nil
	case m.Keys.Toggle, "x":
		if task, ok := m.selected(); ok {
			m.toggleTodo(task.ID)
		}
	case m.Keys.Edit, "e":
		return m.beginEdit(), nil
	case m.Keys.Remove, "delete":
		if task, ok := m.selected(); ok {
			m.removeTodo(task.ID)
		}
	case m.Keys.ClearCompleted:
		m.clearCompleted()
	case m.Keys.NextFilter:
		m.setFilter(m.Filter.Next())
	case "1", "2", "3":
		m.setFilter(model.Filters[int(msg.String()[0]-'1')])
	case "down", "j":
		if m.Cursor < len(m.visible())-1 {
			m.Cursor++
		}
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "home", "g":
		m.Cursor = 0
	case "end", "G":
		m.Cursor = len(m.visible()) - 1
		m.clampCursor()
	case m.Keys.Palette:
		m.Mode = ModePalette
		m.Palette = CommandPaletteState{Active: true}
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
	}
	return m, nil
}

// visible is the current filtered view, derived fresh on every call.
func (m Model) visible() []model.Task {
	if m.Store == nil {
		return nil
	}
	return m.Store.Filtered(m.Filter)
}

func (m Model) selected() (model.Task, bool) {
	items := m.visible()
	if m.Cursor < 0 || m.Cursor >= len(items) {
		return model.Task{}, false
	}
	return items[m.Cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m *Model) setFilter(f model.Filter) {
	if !f.IsValid() {
		m.Status = StatusBar{Text: fmt.Sprintf("unknown filter: %q", f), IsError: true}
		return
	}
	m.Filter = f
	m.Cursor = 0
	m.Status = StatusBar{Text: "showing " + f.Label()}
}

func (m *Model) addTodo(title string) {
	trimmed, ok := model.NormalizeTitle(title)
	if !ok {
		return
	}
	if m.apply("add", func(ctx context.Context) error { return m.Store.Add(ctx, trimmed) }, "added: "+trimmed) {
		if m.Filter != model.FilterCompleted {
			m.Cursor = 0
		}
	}
}

func (m *Model) toggleTodo(id string) {
	m.apply("toggle", func(ctx context.Context) error { return m.Store.Toggle(ctx, id) }, "toggled")
}

func (m *Model) editTodo(id, title string) {
	text := "updated"
	if _, ok := model.NormalizeTitle(title); !ok {
		text = "removed"
	}
	m.apply("edit", func(ctx context.Context) error { return m.Store.Edit(ctx, id, title) }, text)
}

func (m *Model) removeTodo(id string) {
	m.apply("remove", func(ctx context.Context) error { return m.Store.Remove(ctx, id) }, "removed")
}

func (m *Model) clearCompleted() {
	m.apply("clear_completed", func(ctx context.Context) error { return m.Store.ClearCompleted(ctx) }, "cleared completed")
}

// apply runs one store mutation and reports whether it succeeded. A failed
// write leaves the collection as it was and is shown in the status bar.
func (m *Model) apply(op string, fn func(context.Context) error, okText string) bool {
	if m.Store == nil {
		m.LastError = errNoStore
		m.Status = StatusBar{Text: errNoStore.Error(), IsError: true}
		return false
	}
	before := m.Store.Revision()
	if err := fn(m.ctx); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.logger.Warn("mutation failed", zap.String("op", op), zap.Error(err))
		return false
	}
	if m.Store.Revision() != before {
		m.Status = StatusBar{Text: okText}
		m.tag.Event("todo_"+op, map[string]any{"remaining": m.Store.RemainingCount()})
	}
	return true
}
