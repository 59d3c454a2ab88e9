package model

import (
	"errors"
	"testing"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{ID: "task-1", Title: "buy milk"}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRequiresIDAndTitle(t *testing.T) {
	err := Task{ID: "  ", Title: "x"}.Validate()
	if !errors.Is(err, ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got: %v", err)
	}

	err = Task{ID: "task-1", Title: " \t "}.Validate()
	if !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got: %v", err)
	}
}

func TestNormalizeTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"  buy milk  ", "buy milk", true},
		{"plain", "plain", true},
		{"   ", "", false},
		{"", "", false},
		{"\n\tcall mom\n", "call mom", true},
		{" café 日本 ", "café 日本", true},
		{"caf\xe9 list", "caf\uFFFD list", true},
	}
	for _, tc := range cases {
		got, ok := NormalizeTitle(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("NormalizeTitle(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if id == "" {
			t.Fatal("expected non-empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id after %d draws: %s", i, id)
		}
		seen[id] = true
	}
}
