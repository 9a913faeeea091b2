//go:build unix

package launch

import "golang.org/x/sys/unix"

// replaceProcess swaps the current process image via execve. The module
// keeps the launcher's PID, so SIGINT/SIGTERM sent to it reach the
// module directly with no forwarding intermediary.
func replaceProcess(bin string, argv, environ []string) error {
	return unix.Exec(bin, argv, environ)
}
