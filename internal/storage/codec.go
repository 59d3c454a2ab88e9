package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandeepkv93/todo/internal/model"
)

// ErrCorrupt marks a stored value that does not decode to a valid task collection.
var ErrCorrupt = errors.New("storage: corrupt task collection")

// EncodeTasks serializes the collection in order. An empty collection encodes as [].
func EncodeTasks(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return json.Marshal(tasks)
}

// DecodeTasks parses a stored collection. Any shape mismatch yields ErrCorrupt.
func DecodeTasks(raw []byte) ([]model.Task, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: not a JSON array", ErrCorrupt)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	out := make([]model.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		task, err := decodeTask(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorrupt, i, err)
		}
		if seen[task.ID] {
			return nil, fmt.Errorf("%w: record %d: duplicate id %q", ErrCorrupt, i, task.ID)
		}
		seen[task.ID] = true
		out = append(out, task)
	}
	return out, nil
}

func decodeTask(rec json.RawMessage) (model.Task, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rec, &fields); err != nil {
		return model.Task{}, errors.New("not an object")
	}
	if fields == nil {
		return model.Task{}, errors.New("null record")
	}

	var task model.Task
	if err := decodeField(fields, "id", &task.ID); err != nil {
		return model.Task{}, err
	}
	if err := decodeField(fields, "title", &task.Title); err != nil {
		return model.Task{}, err
	}
	if err := decodeField(fields, "completed", &task.Completed); err != nil {
		return model.Task{}, err
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func decodeField(fields map[string]json.RawMessage, name string, dst any) error {
	raw, ok := fields[name]
	if !ok {
		return fmt.Errorf("missing field %q", name)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("null field %q", name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %q: %v", name, err)
	}
	return nil
}
