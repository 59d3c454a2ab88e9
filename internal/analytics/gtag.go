// Package analytics bootstraps the Google Analytics 4 gtag loader into a host
// document and exposes the command queue it feeds.
package analytics

import (
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	// ScriptID marks the injected loader so a second install is skipped.
	ScriptID  = "gtag-js"
	loaderURL = "https://www.googletagmanager.com/gtag/js"
)

// Script is one external script element appended to a host document.
type Script struct {
	ID    string
	Src   string
	Async bool
}

// Host is the document environment the loader is injected into.
type Host interface {
	HasElement(id string) bool
	AppendScript(s Script)
}

// Tag is the handle returned by Install. Commands dispatched through it are
// queued in order until the remote loader drains them.
type Tag struct {
	measurementID string

	mu    sync.Mutex
	queue [][]any
}

// Install injects the gtag loader for measurementID into host and queues the
// initial js and config commands. It returns nil without touching host when
// host is nil, the id is blank, or a loader is already present.
func Install(host Host, measurementID string) *Tag {
	return install(host, measurementID, time.Now)
}

func install(host Host, measurementID string, now func() time.Time) *Tag {
	id := strings.TrimSpace(measurementID)
	if host == nil || id == "" || host.HasElement(ScriptID) {
		return nil
	}
	host.AppendScript(Script{
		ID:    ScriptID,
		Src:   LoaderSrc(id),
		Async: true,
	})

	tag := &Tag{measurementID: id, queue: make([][]any, 0, 4)}
	tag.Dispatch("js", now())
	// page views are sent explicitly by the caller
	tag.Dispatch("config", id, map[string]any{"send_page_view": false})
	return tag
}

// LoaderSrc returns the loader URL with the id query-escaped.
func LoaderSrc(measurementID string) string {
	return loaderURL + "?id=" + url.QueryEscape(measurementID)
}

func (t *Tag) MeasurementID() string {
	if t == nil {
		return ""
	}
	return t.measurementID
}

// Dispatch appends one command tuple to the queue.
func (t *Tag) Dispatch(args ...any) {
	if t == nil || len(args) == 0 {
		return
	}
	entry := make([]any, len(args))
	copy(entry, args)

	t.mu.Lock()
	t.queue = append(t.queue, entry)
	t.mu.Unlock()
}

// Event queues ("event", name, params).
func (t *Tag) Event(name string, params map[string]any) {
	if t == nil || strings.TrimSpace(name) == "" {
		return
	}
	if params == nil {
		t.Dispatch("event", name)
		return
	}
	t.Dispatch("event", name, params)
}

// Queue returns a snapshot of the queued commands.
func (t *Tag) Queue() [][]any {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]any, len(t.queue))
	for i, entry := range t.queue {
		out[i] = append([]any(nil), entry...)
	}
	return out
}
