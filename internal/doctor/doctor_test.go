package doctor

import (
	"os"
	"path/filepath"
	"testing"
)

func completeModule(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"requirements.txt": "viam-sdk\n",
		"meta.json":        `{"module_id":"acme:led-grid","entrypoint":"run.sh","models":[{"api":"rdk:service:generic","model":"acme:led-grid:service"}]}`,
		"setup.sh":         "#!/bin/sh\n",
		"reload.sh":        "#!/bin/sh\n",
		"run.sh":           "#!/bin/sh\n",
		"src/main.py":      "print('hi')\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestModuleLayoutCheck(t *testing.T) {
	root := completeModule(t)
	c := &ModuleLayoutCheck{root: root}
	if res := c.Run(); res.Status != StatusOK {
		t.Errorf("complete module should pass layout check: %+v", res)
	}

	os.Remove(filepath.Join(root, "reload.sh"))
	if res := c.Run(); res.Status == StatusOK {
		t.Error("missing reload.sh should fail layout check")
	}
}

func TestManifestCheck(t *testing.T) {
	root := completeModule(t)
	c := &ManifestCheck{root: root}
	if res := c.Run(); res.Status != StatusOK {
		t.Errorf("valid manifest should pass: %+v", res)
	}

	os.WriteFile(filepath.Join(root, "meta.json"), []byte("{"), 0o644)
	if res := c.Run(); res.Status == StatusOK {
		t.Error("broken manifest should fail")
	}
}

func TestDistWritableCheck_FixCreatesDist(t *testing.T) {
	root := t.TempDir()
	c := &DistWritableCheck{root: root}
	if res := c.Run(); res.Status != StatusOK {
		t.Errorf("writable root should pass: %+v", res)
	}
	if err := c.Fix(); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(filepath.Join(root, "dist")); err != nil || !info.IsDir() {
		t.Error("Fix should create dist/")
	}
}

func TestDistWritableCheck_DistIsFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "dist"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := &DistWritableCheck{root: root}
	if res := c.Run(); res.Status == StatusOK {
		t.Error("dist-as-file should fail the check")
	}
}
