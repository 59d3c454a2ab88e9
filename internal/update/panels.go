package update

import (
	"github.com/sandeepkv93/todo/internal/views"
)

func (m Model) renderTodoPanel() string {
	items := m.visible()
	data := views.TodoPanelData{Items: make([]views.TodoItemData, 0, len(items))}
	for i, task := range items {
		item := views.TodoItemData{
			ID:        task.ID,
			Title:     task.Title,
			Completed: task.Completed,
			Selected:  i == m.Cursor && m.Mode != ModeAdding,
		}
		if m.Mode == ModeEditing && task.ID == m.EditingID {
			item.EditView = m.editInput.View()
		}
		data.Items = append(data.Items, item)
	}
	return views.RenderTodoPanel(data)
}

func (m Model) renderInputLine() string {
	switch m.Mode {
	case ModeAdding:
		return m.addInput.View()
	case ModePalette:
		return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
	default:
		return ""
	}
}
