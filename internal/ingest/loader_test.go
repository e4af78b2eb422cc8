package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain text body"), 0o644); err != nil {
		t.Fatal(err)
	}

	pages := NewLoader().Load(context.Background(), path)
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if pages[0].Number != 1 || pages[0].Text != "plain text body" {
		t.Errorf("got page %+v", pages[0])
	}
}

func TestLoadMarkdownStripsFormatting(t *testing.T) {
	src := "# Benefits Overview\n\nMembers get **dental** coverage.\n\n- vision\n- hearing\n"
	path := filepath.Join(t.TempDir(), "guide.md")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	pages := NewLoader().Load(context.Background(), path)
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	text := pages[0].Text
	for _, want := range []string{"Benefits Overview", "dental", "vision", "hearing"} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q: %q", want, text)
		}
	}
	for _, marker := range []string{"#", "**", "- "} {
		if strings.Contains(text, marker) {
			t.Errorf("markdown marker %q survived: %q", marker, text)
		}
	}
	// Heading and paragraph stay separate blocks for the chunker.
	if !strings.Contains(text, "Benefits Overview\n\n") {
		t.Errorf("expected block boundary after heading: %q", text)
	}
}

func TestLoadMissingFile(t *testing.T) {
	pages := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	if pages != nil {
		t.Errorf("expected nil pages, got %v", pages)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if pages := NewLoader().Load(context.Background(), ""); pages != nil {
		t.Errorf("expected nil pages, got %v", pages)
	}
}

func TestLoadRemoteText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("remote body"))
	}))
	defer srv.Close()

	pages := NewLoader().Load(context.Background(), srv.URL+"/doc.txt")
	if len(pages) != 1 || pages[0].Text != "remote body" {
		t.Errorf("got %v", pages)
	}
}

func TestLoadRemoteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if pages := NewLoader().Load(context.Background(), srv.URL+"/doc.txt"); pages != nil {
		t.Errorf("expected nil pages on 404, got %v", pages)
	}
}
