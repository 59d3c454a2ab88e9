// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/views"
)

// FormatTask writes "{N:>4}  [x] {TITLE}\n".
func FormatTask(w io.Writer, num int, task model.Task) {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, box, normalizeTitle(task.Title))
}

// FormatTasks writes the numbered list, or the empty placeholder.
func FormatTasks(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, views.EmptyListText)
		return
	}
	for i, task := range tasks {
		FormatTask(w, i+1, task)
	}
}

func FormatItemsLeft(w io.Writer, remaining int) {
	fmt.Fprintln(w, views.ItemsLeft(remaining))
}

// FormatTaskVerbose adds the task id, for scripts that address tasks by id.
func FormatTaskVerbose(w io.Writer, num int, task model.Task) {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "%4d  %s %s  (%s)\n", num, box, normalizeTitle(task.Title), task.ID)
}

func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
