package commands

import (
	"os"
	"path/filepath"
	"testing"

	"modkit/internal/testenv"
)

func writeTestModule(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	manifest := `{
  "module_id": "acme:grid",
  "visibility": "public",
  "models": [{"api": "rdk:component:generic", "model": "acme:grid:display"}],
  "entrypoint": "run.sh"
}`
	files := map[string]string{
		"meta.json":        manifest,
		"requirements.txt": "viam-sdk\n",
		"setup.sh":         "#!/bin/sh\n",
		"reload.sh":        "#!/bin/sh\n",
		"run.sh":           "#!/bin/sh\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "src", "main.py"), []byte("print('hi')\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestInspect_Reload(t *testing.T) {
	dir := writeTestModule(t)

	if err := Inspect([]string{"--reload", "--root", dir}); err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
}

func TestInspect_Release(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	testenv.Unset(t, "MODKIT_HIDDEN_IMPORTS")
	dir := writeTestModule(t)

	if err := Inspect([]string{"--release", "--root", dir}); err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
}

func TestInspect_MissingManifest(t *testing.T) {
	dir := t.TempDir()

	if err := Inspect([]string{"--root", dir}); err == nil {
		t.Fatal("expected error for missing meta.json")
	}
}

func TestInspect_Help(t *testing.T) {
	if err := Inspect([]string{"--help"}); err != nil {
		t.Fatalf("help should not error: %v", err)
	}
}
