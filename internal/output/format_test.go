package output

import (
	"bytes"
	"testing"

	"github.com/sandeepkv93/todo/internal/model"
)

func TestFormatTask(t *testing.T) {
	cases := []struct {
		num  int
		task model.Task
		want string
	}{
		{1, model.Task{ID: "a", Title: "buy milk"}, "   1  [ ] buy milk\n"},
		{12, model.Task{ID: "b", Title: "walk dog", Completed: true}, "  12  [x] walk dog\n"},
		{3, model.Task{ID: "c", Title: "two\nlines"}, "   3  [ ] two lines\n"},
		{4, model.Task{ID: "d", Title: "  "}, "   4  [ ] (untitled)\n"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		FormatTask(&buf, tc.num, tc.task)
		if buf.String() != tc.want {
			t.Fatalf("FormatTask(%d, %+v) = %q, want %q", tc.num, tc.task, buf.String(), tc.want)
		}
	}
}

func TestFormatTasksEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTasks(&buf, nil)
	if buf.String() != "No todos\n" {
		t.Fatalf("unexpected empty output: %q", buf.String())
	}
}

func TestFormatTasksNumbersFromOne(t *testing.T) {
	var buf bytes.Buffer
	FormatTasks(&buf, []model.Task{{ID: "b", Title: "B"}, {ID: "a", Title: "A", Completed: true}})
	want := "   1  [ ] B\n   2  [x] A\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestFormatItemsLeft(t *testing.T) {
	var buf bytes.Buffer
	FormatItemsLeft(&buf, 1)
	FormatItemsLeft(&buf, 3)
	if buf.String() != "1 item left\n3 items left\n" {
		t.Fatalf("unexpected footer: %q", buf.String())
	}
}

func TestFormatTaskVerbose(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskVerbose(&buf, 2, model.Task{ID: "0190-abc", Title: "A"})
	if buf.String() != "   2  [ ] A  (0190-abc)\n" {
		t.Fatalf("unexpected verbose line: %q", buf.String())
	}
}
