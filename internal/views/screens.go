package views

import (
	"fmt"
	"strings"
)

// EmptyListText is shown when the current filter matches nothing.
const EmptyListText = "No todos"

type TodoItemData struct {
	ID        string
	Title     string
	Completed bool
	Selected  bool
	// EditView replaces the title while the row is being edited.
	EditView string
}

type TodoPanelData struct {
	Items []TodoItemData
}

type FilterBarData struct {
	Labels []string
	Active int
	// Completed is the number of completed tasks; the clear hint is hidden at zero.
	Completed int
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
	Markdown string
}

func RenderTodoPanel(data TodoPanelData) string {
	if len(data.Items) == 0 {
		return mutedStyle.Render(EmptyListText)
	}
	var b strings.Builder
	for i, item := range data.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		if item.EditView != "" {
			b.WriteString(fmt.Sprintf("%s [~] %s", cursor, item.EditView))
			continue
		}
		box, title := "[ ]", item.Title
		if item.Completed {
			box, title = "[x]", doneStyle.Render(item.Title)
		}
		b.WriteString(fmt.Sprintf("%s %s %s", cursor, box, title))
	}
	return b.String()
}

func RenderFilterBar(data FilterBarData) string {
	parts := make([]string, 0, len(data.Labels))
	for i, label := range data.Labels {
		text := fmt.Sprintf("%d %s", i+1, label)
		if i == data.Active {
			text = activeTab.Render(text)
		}
		parts = append(parts, text)
	}
	bar := strings.Join(parts, "  ")
	if data.Completed > 0 {
		bar += mutedStyle.Render(fmt.Sprintf("   [C] clear completed (%d)", data.Completed))
	}
	return bar
}

// ItemsLeft renders the remaining-count footer, singular for exactly one.
func ItemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if data.HelpView != "" {
		b.WriteString("\n" + data.HelpView)
	}
	if md := RenderMarkdown(data.Markdown); md != "" {
		b.WriteString("\n\n" + md)
	}
	return b.String()
}
