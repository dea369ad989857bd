package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindVideoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.mp4", "a.mkv", "notes.txt", ".hidden.mp4")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := FindVideoFiles(dir)
	if err != nil {
		t.Fatalf("FindVideoFiles() error = %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "a.mkv" || filepath.Base(files[1]) != "b.mp4" {
		t.Errorf("files not sorted alphabetically: %v", files)
	}
}

func TestFindVideoFilesEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "notes.txt")

	if _, err := FindVideoFiles(dir); err == nil {
		t.Error("expected error for directory with no video files")
	}
}

func TestFindVideoFilesMissingDir(t *testing.T) {
	if _, err := FindVideoFiles("/nonexistent/dir"); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestFindVideoFilesWithLoggingSkipCount(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.mp4", "skip.txt", "skip2.log")

	result, err := FindVideoFilesWithLogging(dir, nil)
	if err != nil {
		t.Fatalf("FindVideoFilesWithLogging() error = %v", err)
	}
	if result.SkippedCount != 2 {
		t.Errorf("SkippedCount = %d, want 2", result.SkippedCount)
	}
}
