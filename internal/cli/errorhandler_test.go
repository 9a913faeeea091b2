package cli

import (
	"io"
	"os"
	"strings"
	"testing"

	e "modkit/pkg/errors"
)

func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	f()
	_ = w.Close()
	os.Stdout = old
	var b strings.Builder
	_, _ = io.Copy(&b, r)
	return b.String()
}

func TestErrorHandler_DisplayModkitError(t *testing.T) {
	h := NewErrorHandler(true, false) // verbose
	err := e.New(e.ErrCompileFailed, "Compile failed").
		WithDetails("PyInstaller exited with status 1").
		WithSuggestion("Run modkit doctor").
		WithContext("entry", "src/main.py")

	out := captureStdout(t, func() {
		h.displayModkitError(err)
	})
	if !strings.Contains(out, "Compile failed") || !strings.Contains(out, "PyInstaller exited") {
		t.Fatalf("unexpected output: %s", out)
	}
	if !strings.Contains(out, "src/main.py") || !strings.Contains(out, "modkit doctor") {
		t.Fatalf("missing context/suggestion: %s", out)
	}
}

func TestErrorHandler_CauseChain(t *testing.T) {
	h := NewErrorHandler(true, false)
	inner := e.New(e.ErrFileNotFound, "meta.json missing")
	outer := e.New(e.ErrArchiveFailed, "Archive failed").WithCause(inner)

	out := captureStdout(t, func() {
		h.displayModkitError(outer)
	})
	if !strings.Contains(out, "Caused by:") || !strings.Contains(out, "meta.json missing") {
		t.Fatalf("cause chain missing: %s", out)
	}
}

func TestErrorHandler_StackOnlyInDebug(t *testing.T) {
	err := e.New(e.ErrUnknown, "boom")

	quiet := NewErrorHandler(false, false)
	out := captureStdout(t, func() {
		quiet.displayModkitError(err)
	})
	if strings.Contains(out, "Stack trace:") {
		t.Fatalf("stack should be hidden without --debug: %s", out)
	}

	loud := NewErrorHandler(false, true)
	out = captureStdout(t, func() {
		loud.displayModkitError(err)
	})
	if !strings.Contains(out, "Stack trace:") {
		t.Fatalf("stack missing with --debug: %s", out)
	}
}
