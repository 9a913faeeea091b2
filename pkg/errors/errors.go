// Package errors provides coded error types with context metadata for
// modkit. These errors carry suggestions, a context map, and lightweight
// stack traces to improve user diagnostics. Nothing in this package
// retries or recovers: the first failure is meant to surface as-is and
// terminate the run, so a broken build can never leave a half-valid
// archive or a half-launched module behind.
package errors

import (
	"runtime"
	"strings"
)

// ErrorCode categorizes errors for handling
type ErrorCode string

const (
	// Setup / dependency installation
	ErrSetupFailed ErrorCode = "SETUP_FAILED"

	// Packaging errors
	ErrToolchainInstall ErrorCode = "TOOLCHAIN_INSTALL"
	ErrCompileFailed    ErrorCode = "COMPILE_FAILED"
	ErrArchiveFailed    ErrorCode = "ARCHIVE_FAILED"

	// Launch errors
	ErrInterpreterNotFound ErrorCode = "INTERPRETER_NOT_FOUND"
	ErrExecFailed          ErrorCode = "EXEC_FAILED"

	// Module layout / manifest errors
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"
	ErrFileNotFound    ErrorCode = "FILE_NOT_FOUND"

	// Filesystem errors
	ErrFilesystem       ErrorCode = "FS_FAILED"
	ErrPermissionDenied ErrorCode = "PERMISSION_DENIED"

	// Configuration errors
	ErrInvalidConfig ErrorCode = "INVALID_CONFIG"

	// Unknown errors
	ErrUnknown ErrorCode = "UNKNOWN"
)

// StackFrame represents a single stack frame
type StackFrame struct {
	Function string `json:"function"`
	File     string `json:"file"`
	Line     int    `json:"line"`
}

// ModkitError is the base error type with rich context
type ModkitError struct {
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Details    string            `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	Cause      error             `json:"-"`
	Context    map[string]string `json:"context,omitempty"`
	Stack      []StackFrame      `json:"stack,omitempty"`
}

// Error implements the error interface
func (e *ModkitError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}
	if e.Cause != nil {
		sb.WriteString("\nCaused by: ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap exposes the cause to errors.Is/As chains.
func (e *ModkitError) Unwrap() error { return e.Cause }

// WithSuggestion adds a suggestion for fixing the error
func (e *ModkitError) WithSuggestion(suggestion string) *ModkitError {
	e.Suggestion = suggestion
	return e
}

// WithContext adds contextual information
func (e *ModkitError) WithContext(key, value string) *ModkitError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithCause wraps another error
func (e *ModkitError) WithCause(cause error) *ModkitError {
	e.Cause = cause
	return e
}

// WithDetails adds detailed information
func (e *ModkitError) WithDetails(details string) *ModkitError {
	e.Details = details
	return e
}

// New creates a new ModkitError
func New(code ErrorCode, message string) *ModkitError {
	err := &ModkitError{
		Code:    code,
		Message: message,
		Context: make(map[string]string),
	}
	err.captureStack()
	err.Suggestion = getDefaultSuggestion(code)
	return err
}

// Wrap wraps a standard error with ModkitError
func Wrap(err error, code ErrorCode, message string) *ModkitError {
	if err == nil {
		return nil
	}
	if merr, ok := err.(*ModkitError); ok {
		// Prepend message context
		if message != "" {
			merr.Message = message + ": " + merr.Message
		}
		return merr
	}
	return New(code, message).WithCause(err)
}

// captureStack captures the current stack trace
func (e *ModkitError) captureStack() {
	const maxFrames = 10
	pc := make([]uintptr, maxFrames)
	n := runtime.Callers(3, pc) // Skip runtime.Callers, captureStack, New/Wrap
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if strings.Contains(frame.File, "runtime/") || strings.Contains(frame.File, "testing/") {
			if !more {
				break
			}
			continue
		}
		e.Stack = append(e.Stack, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}
}

// getDefaultSuggestion provides default fix suggestions
func getDefaultSuggestion(code ErrorCode) string {
	suggestions := map[ErrorCode]string{
		ErrSetupFailed:         "Inspect setup.sh output above; fix and rerun with MODKIT_REINSTALL=1",
		ErrToolchainInstall:    "Check network access and pip output; remove .venv to force a fresh environment",
		ErrCompileFailed:       "Run 'modkit doctor' and check the PyInstaller output above",
		ErrArchiveFailed:       "Check free disk space and permissions on dist/",
		ErrInterpreterNotFound: "Install python3 or set MODKIT_PYTHON to an interpreter path",
		ErrExecFailed:          "Verify the module entrypoint exists: modkit inspect",
		ErrManifestInvalid:     "Validate meta.json: modkit inspect",
		ErrFileNotFound:        "Run 'modkit inspect' to see which module files are expected",
		ErrPermissionDenied:    "Check file permissions in the module directory",
		ErrInvalidConfig:       "Fix ~/.modkit.json or unset the conflicting MODKIT_* variable",
	}
	if s, ok := suggestions[code]; ok {
		return s
	}
	return "Run 'modkit doctor' for diagnostics"
}
