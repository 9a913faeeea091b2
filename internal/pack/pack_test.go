package pack

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"modkit/internal/archive"
	"modkit/internal/testenv"
)

// fakeModule lays out a minimal module tree in a temp dir.
func fakeModule(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"requirements.txt":   "viam-sdk\n",
		"meta.json":          `{"module_id":"acme:led-grid"}`,
		"setup.sh":           "#!/bin/sh\n",
		"reload.sh":          "#!/bin/sh\n",
		"run.sh":             "#!/bin/sh\n",
		"src/main.py":        "print('hi')\n",
		"src/text_to_led.py": "pass\n",
		"src/main.pyc":       "bytecode",
	}
	for name, content := range files {
		full := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

type fakeToolchain struct {
	installErr error
	compileErr error
	exe        string
	root       string

	installed bool
	gotEntry  string
	gotHidden []string
}

func (f *fakeToolchain) InstallToolchain() error {
	f.installed = true
	return f.installErr
}

func (f *fakeToolchain) Compile(entry string, hidden []string) (string, error) {
	f.gotEntry = entry
	f.gotHidden = hidden
	if f.compileErr != nil {
		return "", f.compileErr
	}
	full := filepath.Join(f.root, f.exe)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, []byte("ELF"), 0o755); err != nil {
		return "", err
	}
	return f.exe, nil
}

func withToolchain(p *Packager, tc Toolchain, err error) *Packager {
	p.newToolchain = func() (Toolchain, error) { return tc, err }
	return p
}

func TestReloadMembers_ExactSet(t *testing.T) {
	root := fakeModule(t)
	members, err := ReloadMembers(root)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"requirements.txt",
		filepath.Join("src", "main.py"),
		filepath.Join("src", "text_to_led.py"),
		"meta.json",
		"setup.sh",
		"reload.sh",
		"run.sh",
	}
	if !reflect.DeepEqual(members, want) {
		t.Fatalf("members mismatch:\n got  %v\n want %v", members, want)
	}
}

func TestReloadMembers_MissingArtifact(t *testing.T) {
	root := fakeModule(t)
	os.Remove(filepath.Join(root, "reload.sh"))
	if _, err := ReloadMembers(root); err == nil {
		t.Fatal("expected error for missing reload.sh")
	}
}

func TestPackReload_ArchiveContents(t *testing.T) {
	root := fakeModule(t)
	p := New(root, Options{Mode: ModeReload}, nil)
	if err := p.Run(); err != nil {
		t.Fatal(err)
	}

	names, err := archive.List(ArchivePath(root))
	if err != nil {
		t.Fatal(err)
	}
	set := map[string]bool{}
	for _, n := range names {
		set[n] = true
	}
	for _, want := range []string{"requirements.txt", "src/main.py", "src/text_to_led.py", "meta.json", "setup.sh", "reload.sh", "run.sh"} {
		if !set[want] {
			t.Errorf("reload archive missing %s (got %v)", want, names)
		}
	}
	if set["src/main.pyc"] {
		t.Error("bytecode must not be packaged")
	}
	if len(names) != 7 {
		t.Errorf("expected exactly 7 members, got %d: %v", len(names), names)
	}
}

func TestPackReload_ReplacesStaleArchive(t *testing.T) {
	root := fakeModule(t)
	// Plant a stale archive
	if err := os.MkdirAll(filepath.Join(root, DistDir), 0o755); err != nil {
		t.Fatal(err)
	}
	stale := ArchivePath(root)
	if err := os.WriteFile(stale, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := New(root, Options{Mode: ModeReload}, nil)
	if err := p.Run(); err != nil {
		t.Fatal(err)
	}
	if _, err := archive.List(stale); err != nil {
		t.Fatalf("stale archive was not replaced with a valid one: %v", err)
	}

	// Second run still yields exactly one archive in dist/
	if err := p.Run(); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(filepath.Join(root, DistDir))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != ArchiveName {
		t.Fatalf("expected a single archive in dist/, got %v", entries)
	}
}

func TestPackRelease_ArchiveContents(t *testing.T) {
	root := fakeModule(t)
	tc := &fakeToolchain{root: root, exe: filepath.Join("dist", "main")}
	p := withToolchain(New(root, Options{Mode: ModeRelease}, nil), tc, nil)

	if err := p.Run(); err != nil {
		t.Fatal(err)
	}
	if !tc.installed {
		t.Error("release pack must install the toolchain first")
	}
	if tc.gotEntry != EntrySource {
		t.Errorf("expected entry %s, got %s", EntrySource, tc.gotEntry)
	}
	if len(tc.gotHidden) != 1 || tc.gotHidden[0] != "viam" {
		t.Errorf("expected default hidden imports, got %v", tc.gotHidden)
	}

	names, err := archive.List(ArchivePath(root))
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Fatalf("release archive must hold exactly the executable and run.sh, got %v", names)
	}
	set := map[string]bool{names[0]: true, names[1]: true}
	if !set["dist/main"] || !set["run.sh"] {
		t.Fatalf("unexpected release members: %v", names)
	}
}

func TestPackRelease_ToolchainInstallFailure(t *testing.T) {
	root := fakeModule(t)
	tc := &fakeToolchain{root: root, installErr: errors.New("pip exploded")}
	p := withToolchain(New(root, Options{Mode: ModeRelease}, nil), tc, nil)

	if err := p.Run(); err == nil {
		t.Fatal("toolchain install failure must abort the build")
	}
	if _, err := os.Stat(ArchivePath(root)); !os.IsNotExist(err) {
		t.Error("no archive may exist after a failed toolchain install")
	}
}

func TestPackRelease_CompileFailure(t *testing.T) {
	root := fakeModule(t)
	tc := &fakeToolchain{root: root, compileErr: errors.New("no module named viam")}
	p := withToolchain(New(root, Options{Mode: ModeRelease}, nil), tc, nil)

	if err := p.Run(); err == nil {
		t.Fatal("compile failure must abort the build")
	}
	if _, err := os.Stat(ArchivePath(root)); !os.IsNotExist(err) {
		t.Error("no archive may exist after a failed compile")
	}
}

func TestPackRelease_CustomHiddenImports(t *testing.T) {
	root := fakeModule(t)
	tc := &fakeToolchain{root: root, exe: filepath.Join("dist", "main")}
	p := withToolchain(New(root, Options{Mode: ModeRelease, HiddenImports: []string{"viam", "pil"}}, nil), tc, nil)

	if err := p.Run(); err != nil {
		t.Fatal(err)
	}
	if len(tc.gotHidden) != 2 || tc.gotHidden[1] != "pil" {
		t.Errorf("hidden import overrides not honored: %v", tc.gotHidden)
	}
}

func TestModeFromEnv(t *testing.T) {
	testenv.Unset(t, "MODKIT_RELOAD")
	if ModeFromEnv() != ModeRelease {
		t.Error("unset selector must mean release mode")
	}
	testenv.Set(t, "MODKIT_RELOAD", "1")
	if ModeFromEnv() != ModeReload {
		t.Error("MODKIT_RELOAD=1 must mean reload mode")
	}
	testenv.Set(t, "MODKIT_RELOAD", "0")
	if ModeFromEnv() != ModeRelease {
		t.Error("MODKIT_RELOAD=0 must mean release mode")
	}
}
