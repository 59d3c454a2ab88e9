package todo

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/storage"
	"pgregory.net/rapid"
)

var titleGen = rapid.StringMatching(`[a-zéü日本]{1,8}( [a-zéü日本]{1,8}){0,2}`)

// rawTitles are user inputs that need normalizing before they are stored.
var rawTitles = []string{"", "  ", " padded ", "caf\xe9 list", "\xff", " naïve\x80 "}

func taskListGen() *rapid.Generator[[]model.Task] {
	return rapid.Custom(func(t *rapid.T) []model.Task {
		n := rapid.IntRange(0, 20).Draw(t, "n")
		out := make([]model.Task, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, model.Task{
				ID:        fmt.Sprintf("task-%d", i),
				Title:     titleGen.Draw(t, "title"),
				Completed: rapid.Bool().Draw(t, "completed"),
			})
		}
		return out
	})
}

func TestPropertyCodecRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := taskListGen().Draw(t, "tasks")
		raw, err := storage.EncodeTasks(in)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		out, err := storage.DecodeTasks(raw)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if diff := cmp.Diff(in, out); diff != "" {
			t.Fatalf("round trip mismatch (-in +out):\n%s", diff)
		}
	})
}

// seedStore writes tasks to a fresh slot and opens a store over them.
func seedStore(t *rapid.T, tasks []model.Task) (*Store, storage.Slot) {
	slot := storage.NewMemorySlot()
	raw, err := storage.EncodeTasks(tasks)
	if err != nil {
		t.Fatalf("encode seed: %v", err)
	}
	if err := slot.Set(context.Background(), storage.DefaultKey, raw); err != nil {
		t.Fatalf("seed slot: %v", err)
	}
	n := 0
	s, err := Open(context.Background(), slot, WithIDFunc(func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s, slot
}

func TestPropertyFiltersPartitionCollection(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s, _ := seedStore(t, taskListGen().Draw(t, "tasks"))

		all := s.Filtered(model.FilterAll)
		active := s.Filtered(model.FilterActive)
		completed := s.Filtered(model.FilterCompleted)

		if diff := cmp.Diff(s.Tasks(), all); diff != "" {
			t.Fatalf("all filter is not the identity:\n%s", diff)
		}
		if len(active)+len(completed) != s.Len() {
			t.Fatalf("active %d + completed %d != total %d", len(active), len(completed), s.Len())
		}
		if s.RemainingCount() != len(active) {
			t.Fatalf("remaining %d != active %d", s.RemainingCount(), len(active))
		}

		// Merging the two subsequences back by collection position must
		// reproduce the collection.
		ai, ci := 0, 0
		for _, task := range all {
			switch {
			case ai < len(active) && active[ai] == task:
				ai++
			case ci < len(completed) && completed[ci] == task:
				ci++
			default:
				t.Fatalf("task %+v is out of order in its filtered view", task)
			}
		}
	})
}

func TestPropertyClearCompletedKeepsActiveOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s, slot := seedStore(t, taskListGen().Draw(t, "tasks"))
		wantActive := s.Filtered(model.FilterActive)

		if err := s.ClearCompleted(context.Background()); err != nil {
			t.Fatalf("clear: %v", err)
		}
		if s.CompletedCount() != 0 {
			t.Fatalf("%d completed tasks survived clear", s.CompletedCount())
		}
		if diff := cmp.Diff(wantActive, s.Tasks()); diff != "" {
			t.Fatalf("active tasks changed (-want +got):\n%s", diff)
		}
		checkPersisted(t, s, slot)
	})
}

func TestPropertyToggleTwiceRestores(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tasks := taskListGen().Filter(func(ts []model.Task) bool { return len(ts) > 0 }).Draw(t, "tasks")
		s, _ := seedStore(t, tasks)
		target := rapid.SampledFrom(tasks).Draw(t, "target")
		before := s.Tasks()

		ctx := context.Background()
		if err := s.Toggle(ctx, target.ID); err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if err := s.Toggle(ctx, target.ID); err != nil {
			t.Fatalf("toggle back: %v", err)
		}
		if diff := cmp.Diff(before, s.Tasks()); diff != "" {
			t.Fatalf("double toggle changed the collection:\n%s", diff)
		}
	})
}

// TestPropertyRandomOperations drives the store with random mutation
// sequences and checks the collection invariants after each step.
func TestPropertyRandomOperations(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s, slot := seedStore(t, taskListGen().Draw(t, "seed"))
		ctx := context.Background()

		pickID := func() string {
			tasks := s.Tasks()
			if len(tasks) == 0 || rapid.IntRange(0, 9).Draw(t, "stale") == 0 {
				return "stale-id"
			}
			return rapid.SampledFrom(tasks).Draw(t, "pick").ID
		}

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			var err error
			switch op := rapid.IntRange(0, 4).Draw(t, "op"); op {
			case 0:
				err = s.Add(ctx, rapid.SampledFrom(append([]string{titleGen.Draw(t, "t")}, rawTitles...)).Draw(t, "title"))
			case 1:
				err = s.Toggle(ctx, pickID())
			case 2:
				err = s.Edit(ctx, pickID(), rapid.SampledFrom(append([]string{titleGen.Draw(t, "t")}, rawTitles...)).Draw(t, "title"))
			case 3:
				err = s.Remove(ctx, pickID())
			case 4:
				err = s.ClearCompleted(ctx)
			}
			if err != nil {
				t.Fatalf("step %d: %v", i, err)
			}
			checkInvariants(t, s)
			checkPersisted(t, s, slot)
		}
	})
}

func checkInvariants(t *rapid.T, s *Store) {
	seen := make(map[string]bool, s.Len())
	for _, task := range s.Tasks() {
		if task.ID == "" {
			t.Fatalf("task with empty id: %+v", task)
		}
		if seen[task.ID] {
			t.Fatalf("duplicate id %q", task.ID)
		}
		seen[task.ID] = true
		if trimmed, ok := model.NormalizeTitle(task.Title); !ok || trimmed != task.Title {
			t.Fatalf("title not normalized: %q", task.Title)
		}
	}
	if s.RemainingCount() != len(s.Filtered(model.FilterActive)) {
		t.Fatalf("remaining count out of sync")
	}
}

func checkPersisted(t *rapid.T, s *Store, slot storage.Slot) {
	raw, err := slot.Get(context.Background(), storage.DefaultKey)
	if err != nil {
		t.Fatalf("read slot: %v", err)
	}
	stored, err := storage.DecodeTasks(raw)
	if err != nil {
		t.Fatalf("decode slot: %v", err)
	}
	if diff := cmp.Diff(s.Tasks(), stored); diff != "" {
		t.Fatalf("slot diverged from memory (-memory +slot):\n%s", diff)
	}
}
