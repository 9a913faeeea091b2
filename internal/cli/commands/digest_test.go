package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDigestFlags(t *testing.T) {
	cfg := parseDigestFlags([]string{"--files", "--algorithm", "sha256", "--root", "/tmp/mod"})
	if !cfg.showFiles {
		t.Error("expected showFiles")
	}
	if cfg.options.Algorithm != "sha256" {
		t.Errorf("algorithm = %q, want sha256", cfg.options.Algorithm)
	}
	if cfg.rootDir != "/tmp/mod" {
		t.Errorf("rootDir = %q", cfg.rootDir)
	}
	if cfg.archive {
		t.Error("archive should default to false")
	}
}

func TestDigest_InvalidAlgorithm(t *testing.T) {
	if err := Digest([]string{"--algorithm", "md5"}); err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
}

func TestDigest_Tree(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "src", "main.py"), []byte("print('hi')\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Digest([]string{"--root", dir}); err != nil {
		t.Fatalf("Digest() error: %v", err)
	}
}

func TestDigest_ArchiveMissing(t *testing.T) {
	dir := t.TempDir()
	if err := Digest([]string{"--archive", "--root", dir}); err == nil {
		t.Fatal("expected error when no archive exists")
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatFileSize(tt.size); got != tt.want {
			t.Errorf("formatFileSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
