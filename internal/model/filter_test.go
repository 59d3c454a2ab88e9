package model

import (
	"errors"
	"testing"
)

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{
		"all":        FilterAll,
		"Active":     FilterActive,
		" completed": FilterCompleted,
	}
	for in, want := range cases {
		got, err := ParseFilter(in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q = %s, want %s", in, got, want)
		}
	}

	_, err := ParseFilter("done")
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got: %v", err)
	}
}

func TestFilterMatches(t *testing.T) {
	open := Task{ID: "a", Title: "open"}
	done := Task{ID: "b", Title: "done", Completed: true}

	if !FilterAll.Matches(open) || !FilterAll.Matches(done) {
		t.Fatal("all filter should match every task")
	}
	if !FilterActive.Matches(open) || FilterActive.Matches(done) {
		t.Fatal("active filter should only match open tasks")
	}
	if FilterCompleted.Matches(open) || !FilterCompleted.Matches(done) {
		t.Fatal("completed filter should only match done tasks")
	}
}

func TestFilterNextCycles(t *testing.T) {
	f := FilterAll
	seen := []Filter{f}
	for i := 0; i < 3; i++ {
		f = f.Next()
		seen = append(seen, f)
	}
	want := []Filter{FilterAll, FilterActive, FilterCompleted, FilterAll}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle step %d = %s, want %s", i, seen[i], want[i])
		}
	}
	if FilterCompleted.Label() != "Completed" || Filter("bogus").Label() != "All" {
		t.Fatal("unexpected filter labels")
	}
}
