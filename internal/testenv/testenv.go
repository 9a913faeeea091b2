// Package testenv mutates process environment variables in tests while
// keeping the typed env reader coherent. The env package snapshots
// os.Environ() on its first read, so a plain t.Setenv after that point
// goes unseen by env.Str/env.Bool; every mutation here is followed by a
// cache reload, and another reload runs after the test restores the
// original value.
package testenv

import (
	"os"
	"testing"

	"github.com/xyproto/env/v2"
)

// Set sets key to value for the duration of the test.
func Set(t *testing.T, key, value string) {
	t.Helper()
	t.Cleanup(env.Load)
	t.Setenv(key, value)
	env.Load()
}

// Unset removes key for the duration of the test.
func Unset(t *testing.T, key string) {
	t.Helper()
	t.Cleanup(env.Load)
	t.Setenv(key, "") // records the original value for restore
	if err := os.Unsetenv(key); err != nil {
		t.Fatal(err)
	}
	env.Load()
}
