package model

import (
	"errors"
	"strings"
)

var (
	ErrEmptyID    = errors.New("model: task id is required")
	ErrEmptyTitle = errors.New("model: task title is required")
)

// Task is the single entity managed by the todo store.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// NormalizeTitle trims raw input and replaces invalid UTF-8 with U+FFFD, so
// the title survives a JSON round trip unchanged. The bool is false when
// nothing is left.
func NormalizeTitle(raw string) (string, bool) {
	trimmed := strings.ToValidUTF8(strings.TrimSpace(raw), "\uFFFD")
	return trimmed, trimmed != ""
}
