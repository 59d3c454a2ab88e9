// Package export renders the task collection into shareable documents.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/views"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatPDF      Format = "pdf"
)

var ErrUnknownFormat = errors.New("export: unknown format")

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "md":
		return FormatMarkdown, nil
	case FormatMarkdown, FormatJSON, FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// Write renders tasks in format to w. title heads the markdown and PDF output.
func Write(w io.Writer, format Format, title string, tasks []model.Task) error {
	switch format {
	case FormatMarkdown:
		return Markdown(w, title, tasks)
	case FormatJSON:
		return JSON(w, tasks)
	case FormatCSV:
		return CSV(w, tasks)
	case FormatPDF:
		return PDF(w, title, tasks)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Markdown writes a GitHub-style checklist followed by the remaining count.
func Markdown(w io.Writer, title string, tasks []model.Task) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(tasks) == 0 {
		fmt.Fprintf(&b, "_%s_\n", views.EmptyListText)
	}
	remaining := 0
	for _, t := range tasks {
		box := " "
		if t.Completed {
			box = "x"
		} else {
			remaining++
		}
		fmt.Fprintf(&b, "- [%s] %s\n", box, escapeMarkdown(t.Title))
	}
	fmt.Fprintf(&b, "\n%s\n", views.ItemsLeft(remaining))
	_, err := io.WriteString(w, b.String())
	return err
}

func JSON(w io.Writer, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func CSV(w io.Writer, tasks []model.Task) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "title", "completed"})
	for _, t := range tasks {
		_ = cw.Write([]string{t.ID, t.Title, strconv.FormatBool(t.Completed)})
	}
	cw.Flush()
	return cw.Error()
}

// PDF writes a single-column A4 report. Titles are translated to the core
// font code page, so characters outside cp1252 are lost.
func PDF(w io.Writer, title string, tasks []model.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, tr(title))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	if len(tasks) == 0 {
		pdf.MultiCell(0, 6, views.EmptyListText, "0", "L", false)
	}
	remaining := 0
	for i, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		} else {
			remaining++
		}
		line := fmt.Sprintf("%d. %s %s", i+1, box, t.Title)
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}
	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(40, 6, views.ItemsLeft(remaining))
	return pdf.Output(w)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
