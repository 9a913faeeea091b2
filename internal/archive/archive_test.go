package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		full := filepath.Join(root, n)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("content of "+n), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCreateAndList(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "meta.json", "run.sh", "src/main.py")
	out := filepath.Join(root, "archive.tar.gz")

	members := []string{"meta.json", "run.sh", "src/main.py"}
	if err := Create(out, root, members); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := List(out)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != len(members) {
		t.Fatalf("expected %d members, got %v", len(members), got)
	}
	for i, m := range members {
		if got[i] != filepath.ToSlash(m) {
			t.Errorf("member %d: expected %s, got %s", i, m, got[i])
		}
	}
}

func TestCreate_MissingMemberLeavesNoArchive(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "run.sh")
	out := filepath.Join(root, "archive.tar.gz")

	err := Create(out, root, []string{"run.sh", "nope.txt"})
	if err == nil {
		t.Fatal("expected error for missing member")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("failed create must not leave an archive at the canonical path")
	}
	// No temp files left behind either
	entries, _ := os.ReadDir(root)
	for _, ent := range entries {
		if strings.HasPrefix(ent.Name(), ".archive-") {
			t.Errorf("leftover temp file: %s", ent.Name())
		}
	}
}

func TestCreate_EmptyMemberList(t *testing.T) {
	root := t.TempDir()
	if err := Create(filepath.Join(root, "a.tar.gz"), root, nil); err == nil {
		t.Fatal("expected error for empty member list")
	}
}

func TestCreate_OverwritesExisting(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "run.sh", "meta.json")
	out := filepath.Join(root, "archive.tar.gz")

	if err := Create(out, root, []string{"run.sh", "meta.json"}); err != nil {
		t.Fatal(err)
	}
	if err := Create(out, root, []string{"run.sh"}); err != nil {
		t.Fatal(err)
	}
	got, err := List(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "run.sh" {
		t.Fatalf("expected fresh archive content, got %v", got)
	}
}
