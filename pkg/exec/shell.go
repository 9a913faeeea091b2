package exec

import (
	"fmt"
	"runtime"
	"strings"
)

// Quote quotes a string for shell execution
func Quote(s string) string {
	if runtime.GOOS == "windows" {
		return fmt.Sprintf("%q", strings.ReplaceAll(s, `"`, `""`))
	}
	return fmt.Sprintf("'%s'", strings.ReplaceAll(s, "'", "'\\''"))
}

// JoinArgs joins arguments for shell execution
func JoinArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = Quote(arg)
	}
	return strings.Join(quoted, " ")
}
