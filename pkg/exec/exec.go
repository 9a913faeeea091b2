// Package exec provides command execution utilities for the modkit tool.
// This package centralizes command execution logic and provides
// test-friendly interfaces for mocking.
package exec

import (
	"os/exec"
)

// Commander provides an interface for command execution that can be mocked in tests.
// This enables dependency injection and makes code more testable.
type Commander interface {
	Command(name string, args ...string) *exec.Cmd
}

// DefaultCommander implements Commander using the standard exec.Command.
type DefaultCommander struct{}

// Command creates a new exec.Cmd using the standard library exec.Command.
func (DefaultCommander) Command(name string, args ...string) *exec.Cmd {
	return exec.Command(name, args...)
}

// Global instance that can be overridden in tests
var Default Commander = DefaultCommander{}

// Command is a convenience function that delegates to the global Commander instance.
// Tests can override Default to provide mock implementations.
func Command(name string, args ...string) *exec.Cmd {
	return Default.Command(name, args...)
}
