// Package todo owns the canonical task collection and keeps it in sync with a
// durable storage slot.
package todo

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/storage"
	"go.uber.org/zap"
)

// maxIDAttempts bounds re-draws when a generated id is already taken.
const maxIDAttempts = 8

var ErrIDExhausted = errors.New("todo: could not generate a unique task id")

// Store is the only writer of the task collection. Every changing mutation
// persists the whole post-mutation collection before it becomes visible, so
// the in-memory and stored copies are equal whenever a method returns.
//
// A Store is not safe for concurrent use.
type Store struct {
	slot     storage.Slot
	key      string
	newID    func() string
	logger   *zap.Logger
	tasks    []model.Task
	revision uint64
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Open loads the collection from slot. A missing or corrupt value yields an
// empty collection, and a corrupt value is overwritten with it; only a
// failing read is reported.
func Open(ctx context.Context, slot storage.Slot, opts ...Option) (*Store, error) {
	if slot == nil {
		return nil, errors.New("todo: nil storage slot")
	}
	s := &Store{
		slot:   slot,
		key:    storage.DefaultKey,
		newID:  model.NewID,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := slot.Get(ctx, s.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.tasks = []model.Task{}
		s.logger.Debug("no stored collection, starting empty", zap.String("key", s.key))
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("todo: load %s: %w", s.key, err)
	}

	tasks, err := storage.DecodeTasks(raw)
	if err != nil {
		s.tasks = []model.Task{}
		s.logger.Warn("discarding unreadable collection", zap.String("key", s.key), zap.Error(err))
		s.resetSlot(ctx)
		return s, nil
	}
	s.tasks = tasks
	s.logger.Debug("loaded collection", zap.String("key", s.key), zap.Int("tasks", len(tasks)))
	return s, nil
}

// resetSlot overwrites an unreadable value with the empty collection. A failed
// write is only logged.
func (s *Store) resetSlot(ctx context.Context) {
	raw, err := storage.EncodeTasks(s.tasks)
	if err == nil {
		err = s.slot.Set(ctx, s.key, raw)
	}
	if err != nil {
		s.logger.Warn("could not reset unreadable collection", zap.String("key", s.key), zap.Error(err))
	}
}

// Add prepends a new open task. A title that trims to empty is ignored.
func (s *Store) Add(ctx context.Context, title string) error {
	trimmed, ok := model.NormalizeTitle(title)
	if !ok {
		return nil
	}
	id, err := s.uniqueID()
	if err != nil {
		return err
	}
	next := make([]model.Task, 0, len(s.tasks)+1)
	next = append(next, model.Task{ID: id, Title: trimmed})
	next = append(next, s.tasks...)
	return s.commit(ctx, "add", next)
}

// Toggle flips the completed flag of the task with id.
func (s *Store) Toggle(ctx context.Context, id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	next := s.clone()
	next[idx].Completed = !next[idx].Completed
	return s.commit(ctx, "toggle", next)
}

// Edit retitles the task with id. A title that trims to empty removes it.
func (s *Store) Edit(ctx context.Context, id, title string) error {
	trimmed, ok := model.NormalizeTitle(title)
	if !ok {
		return s.Remove(ctx, id)
	}
	idx := s.indexOf(id)
	if idx < 0 || s.tasks[idx].Title == trimmed {
		return nil
	}
	next := s.clone()
	next[idx].Title = trimmed
	return s.commit(ctx, "edit", next)
}

func (s *Store) Remove(ctx context.Context, id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	next := make([]model.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:idx]...)
	next = append(next, s.tasks[idx+1:]...)
	return s.commit(ctx, "remove", next)
}

// ClearCompleted drops every completed task, keeping the rest in order.
func (s *Store) ClearCompleted(ctx context.Context) error {
	next := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			next = append(next, t)
		}
	}
	if len(next) == len(s.tasks) {
		return nil
	}
	return s.commit(ctx, "clear_completed", next)
}

// Tasks returns a copy of the collection, newest first.
func (s *Store) Tasks() []model.Task {
	return s.clone()
}

// Filtered returns the tasks matching f in collection order.
func (s *Store) Filtered(f model.Filter) []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) RemainingCount() int {
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

func (s *Store) CompletedCount() int {
	return len(s.tasks) - s.RemainingCount()
}

func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) Get(id string) (model.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx], true
}

// Revision increases by one with every committed change.
func (s *Store) Revision() uint64 { return s.revision }

func (s *Store) commit(ctx context.Context, op string, next []model.Task) error {
	payload, err := storage.EncodeTasks(next)
	if err != nil {
		return fmt.Errorf("todo: encode %s: %w", op, err)
	}
	if err := s.slot.Set(ctx, s.key, payload); err != nil {
		s.logger.Error("persist failed, collection unchanged", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("todo: persist %s: %w", op, err)
	}
	s.tasks = next
	s.revision++
	s.logger.Debug("collection committed",
		zap.String("op", op),
		zap.Int("tasks", len(next)),
		zap.Uint64("revision", s.revision))
	return nil
}

func (s *Store) uniqueID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) clone() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}
