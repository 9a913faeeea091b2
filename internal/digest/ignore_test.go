package digest

import (
	"strings"
	"testing"
)

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()
	cases := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{"src/main.py", false, false},
		{"src/main.pyc", false, true},
		{"__pycache__", true, true},
		{"src/__pycache__", true, true},
		{".venv", true, true},
		{"dist", true, true},
		{"meta.json", false, false},
		{".DS_Store", false, true},
		{"notes.swp", false, true},
		{"run.sh", false, false},
	}
	for _, tc := range cases {
		if got := r.Match(tc.path, tc.isDir); got != tc.want {
			t.Errorf("Match(%q, dir=%v) = %v, want %v", tc.path, tc.isDir, got, tc.want)
		}
	}
}

func TestDirOnlyPatternExcludesContents(t *testing.T) {
	r := DefaultRules()
	if !r.Match("src/__pycache__/mod.cpython-311.pyc", false) {
		t.Error("files under an ignored directory should match")
	}
}

func TestNegation(t *testing.T) {
	r := &IgnoreRules{}
	if err := r.AddPattern("*.log"); err != nil {
		t.Fatal(err)
	}
	if err := r.AddPattern("!keep.log"); err != nil {
		t.Fatal(err)
	}
	if !r.Match("debug.log", false) {
		t.Error("*.log should be excluded")
	}
	if r.Match("keep.log", false) {
		t.Error("!keep.log should re-include the file")
	}
}

func TestLoadFromReader(t *testing.T) {
	r := DefaultRules()
	input := "# comment\n\n*.secret\ntmp/\n"
	if err := r.LoadFromReader(strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}
	if !r.Match("creds.secret", false) {
		t.Error("*.secret should be excluded")
	}
	if !r.Match("tmp", true) {
		t.Error("tmp/ should be excluded")
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	r := DefaultRules()
	if err := r.LoadFromFile("/nonexistent/.modkitignore"); err != nil {
		t.Fatalf("missing ignore file should not error: %v", err)
	}
}
