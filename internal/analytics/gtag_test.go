package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestInstallInjectsLoaderAndQueuesBootstrap(t *testing.T) {
	doc := NewDocument()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tag := install(doc, " G-ABC123 ", func() time.Time { return fixed })
	if tag == nil {
		t.Fatal("expected tag handle")
	}

	want := []Script{{ID: "gtag-js", Src: "https://www.googletagmanager.com/gtag/js?id=G-ABC123", Async: true}}
	if diff := cmp.Diff(want, doc.Scripts()); diff != "" {
		t.Fatalf("unexpected scripts (-want +got):\n%s", diff)
	}

	queue := tag.Queue()
	if len(queue) != 2 {
		t.Fatalf("expected js and config commands, got %v", queue)
	}
	if queue[0][0] != "js" || queue[0][1] != fixed {
		t.Fatalf("unexpected js command: %v", queue[0])
	}
	wantConfig := []any{"config", "G-ABC123", map[string]any{"send_page_view": false}}
	if diff := cmp.Diff(wantConfig, queue[1]); diff != "" {
		t.Fatalf("unexpected config command (-want +got):\n%s", diff)
	}
}

func TestInstallEscapesMeasurementID(t *testing.T) {
	doc := NewDocument()
	Install(doc, "G-1&x=<y>")
	src := doc.Scripts()[0].Src
	if !strings.HasSuffix(src, "?id=G-1%26x%3D%3Cy%3E") {
		t.Fatalf("id not query-escaped: %s", src)
	}
}

func TestInstallIsIdempotent(t *testing.T) {
	doc := NewDocument()
	if Install(doc, "G-1") == nil {
		t.Fatal("first install should succeed")
	}
	if tag := Install(doc, "G-2"); tag != nil {
		t.Fatal("second install should be a no-op")
	}
	if n := len(doc.Scripts()); n != 1 {
		t.Fatalf("expected exactly one loader, got %d", n)
	}
}

func TestInstallWithoutHostOrID(t *testing.T) {
	if Install(nil, "G-1") != nil {
		t.Fatal("expected nil tag without host")
	}
	doc := NewDocument()
	if Install(doc, "   ") != nil {
		t.Fatal("expected nil tag for blank id")
	}
	if len(doc.Scripts()) != 0 {
		t.Fatal("blank id must not inject anything")
	}
}

func TestNilTagIsSafe(t *testing.T) {
	var tag *Tag
	tag.Dispatch("event", "x")
	tag.Event("todo_added", nil)
	if tag.Queue() != nil || tag.MeasurementID() != "" {
		t.Fatal("nil tag should report nothing")
	}
}

func TestEventQueuesInOrder(t *testing.T) {
	tag := Install(NewDocument(), "G-1")
	tag.Event("todo_added", map[string]any{"count": 1})
	tag.Event("todo_cleared", nil)
	tag.Event("  ", nil)

	queue := tag.Queue()
	if len(queue) != 4 {
		t.Fatalf("expected 4 queued commands, got %d", len(queue))
	}
	if diff := cmp.Diff([]any{"event", "todo_added", map[string]any{"count": 1}}, queue[2]); diff != "" {
		t.Fatalf("unexpected event (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"event", "todo_cleared"}, queue[3]); diff != "" {
		t.Fatalf("unexpected event (-want +got):\n%s", diff)
	}

	queue[0][0] = "mutated"
	if tag.Queue()[0][0] != "js" {
		t.Fatal("Queue must return a copy")
	}
}

func TestDocumentRender(t *testing.T) {
	doc := NewDocument()
	Install(doc, "G-1")
	html, err := doc.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<script async id="gtag-js" src="https://www.googletagmanager.com/gtag/js?id=G-1"></script>` + "\n"
	if html != want {
		t.Fatalf("render = %q, want %q", html, want)
	}
}
