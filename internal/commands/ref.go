package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/todo/internal/model"
)

var (
	ErrRefRequired = errors.New("task reference required")
	ErrRefNotFound = errors.New("task not found")
)

// Ref points at a task either by its 1-based position in the visible list or
// by id.
type Ref struct {
	Index int
	ID    string
}

// ParseRef reads an all-digit argument as a position and anything else as an id.
func ParseRef(raw string) (Ref, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Ref{}, ErrRefRequired
	}
	if isAllDigits(raw) {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Ref{}, fmt.Errorf("invalid task reference: %s", raw)
		}
		return Ref{Index: n}, nil
	}
	return Ref{ID: raw}, nil
}

// Resolve returns the id of the referenced task within visible.
func (r Ref) Resolve(visible []model.Task) (string, error) {
	if r.Index > 0 {
		if r.Index > len(visible) {
			return "", fmt.Errorf("%w: #%d", ErrRefNotFound, r.Index)
		}
		return visible[r.Index-1].ID, nil
	}
	for _, t := range visible {
		if t.ID == r.ID {
			return t.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrRefNotFound, r.ID)
}

func (r Ref) String() string {
	if r.Index > 0 {
		return "#" + strconv.Itoa(r.Index)
	}
	return r.ID
}

func isAllDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
