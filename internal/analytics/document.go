package analytics

import (
	"html/template"
	"strings"
	"sync"
)

var scriptTmpl = template.Must(template.New("script").Parse(
	`<script{{if .Async}} async{{end}} id="{{.ID}}" src="{{.Src}}"></script>`))

// Document is a headless Host that records injected scripts.
type Document struct {
	mu      sync.Mutex
	scripts []Script
}

func NewDocument() *Document {
	return &Document{}
}

func (d *Document) HasElement(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.scripts {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (d *Document) AppendScript(s Script) {
	d.mu.Lock()
	d.scripts = append(d.scripts, s)
	d.mu.Unlock()
}

func (d *Document) Scripts() []Script {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Script(nil), d.scripts...)
}

// Render writes each script as an HTML element, one per line.
func (d *Document) Render() (string, error) {
	var b strings.Builder
	for _, s := range d.Scripts() {
		if err := scriptTmpl.Execute(&b, s); err != nil {
			return "", err
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
