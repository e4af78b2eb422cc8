package ingest

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	sort.Strings(out)
	return out
}

func TestDiscoverDefaults(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "guide.pdf"))
	writeFile(t, filepath.Join(root, "notes", "readme.md"))
	writeFile(t, filepath.Join(root, "notes", "plain.txt"))
	writeFile(t, filepath.Join(root, "image.png"))

	files, err := Discover(root, nil, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	got := baseNames(files)
	want := []string{"guide.pdf", "plain.txt", "readme.md"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestDiscoverSkipsHiddenDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".git", "config.txt"))
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "doc.md"))
	writeFile(t, filepath.Join(root, "keep.md"))

	files, err := Discover(root, nil, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "keep.md" {
		t.Errorf("got %v, want only keep.md", files)
	}
}

func TestDiscoverExclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.pdf"))
	writeFile(t, filepath.Join(root, "drafts", "b.pdf"))

	files, err := Discover(root, []string{"**/*.pdf"}, []string{"drafts/**"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "a.pdf" {
		t.Errorf("got %v, want only a.pdf", files)
	}
}

func TestDiscoverSingleFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "anything.bin")
	writeFile(t, path)

	files, err := Discover(path, nil, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("got %v, want the file itself", files)
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope"), nil, nil); err == nil {
		t.Fatal("expected error for missing root")
	}
}
