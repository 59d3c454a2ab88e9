package storage

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sandeepkv93/todo/internal/model"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := []model.Task{
		{ID: "b", Title: "B", Completed: true},
		{ID: "a", Title: "A with \"quotes\" and ünïcode", Completed: false},
	}
	raw, err := EncodeTasks(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeTasks(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeEmptyCollection(t *testing.T) {
	for _, in := range [][]model.Task{nil, {}} {
		raw, err := EncodeTasks(in)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if string(raw) != "[]" {
			t.Fatalf("expected [], got %s", raw)
		}
	}
}

func TestEncodeUsesWireFieldNames(t *testing.T) {
	raw, err := EncodeTasks([]model.Task{{ID: "x", Title: "T", Completed: true}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `[{"id":"x","title":"T","completed":true}]`
	if string(raw) != want {
		t.Fatalf("encoded = %s, want %s", raw, want)
	}
}

func TestDecodeCorruptValues(t *testing.T) {
	cases := map[string]string{
		"empty":            ``,
		"not json":         `{{{`,
		"object":           `{"id":"a"}`,
		"null":             `null`,
		"string":           `"[]"`,
		"number element":   `[1]`,
		"null element":     `[null]`,
		"missing id":       `[{"title":"A","completed":false}]`,
		"missing title":    `[{"id":"a","completed":false}]`,
		"missing done":     `[{"id":"a","title":"A"}]`,
		"wrong id type":    `[{"id":7,"title":"A","completed":false}]`,
		"wrong done type":  `[{"id":"a","title":"A","completed":"yes"}]`,
		"null title":       `[{"id":"a","title":null,"completed":false}]`,
		"blank title":      `[{"id":"a","title":"   ","completed":false}]`,
		"duplicate ids":    `[{"id":"a","title":"A","completed":false},{"id":"a","title":"B","completed":true}]`,
		"truncated":        `[{"id":"a","title":"A","completed":false}`,
		"trailing garbage": `[] []`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := DecodeTasks([]byte(raw))
			if !errors.Is(err, ErrCorrupt) {
				t.Fatalf("expected ErrCorrupt, got tasks=%v err=%v", got, err)
			}
		})
	}
}

func TestDecodeToleratesExtraFields(t *testing.T) {
	raw := ` [{"id":"a","title":"A","completed":false,"createdAt":123}] `
	got, err := DecodeTasks([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []model.Task{{ID: "a", Title: "A"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected tasks (-want +got):\n%s", diff)
	}
}
