package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListPDFs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.pdf"))
	touch(t, filepath.Join(dir, "a.PDF"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, ".hidden.pdf"))
	touch(t, filepath.Join(dir, ".cache", "c.pdf"))
	touch(t, filepath.Join(dir, "sub", "d.pdf"))

	got, err := ListPDFs(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.PDF"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "sub", "d.pdf"),
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestListPDFsEmptyRoot(t *testing.T) {
	if _, err := ListPDFs("  "); err == nil {
		t.Fatal("expected error for empty root")
	}
}
