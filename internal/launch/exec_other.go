//go:build !unix

package launch

import (
	"os"
	"os/exec"
	"os/signal"
)

// replaceProcess approximates process replacement on platforms without
// execve: it spawns the module as a child, forwards the launcher's full
// signal set synchronously, and exits with the child's exit code. The
// PID observed by callers differs from the module's, which is the
// documented trade-off on these platforms.
func replaceProcess(bin string, argv, environ []string) error {
	cmd := exec.Command(bin, argv[1:]...)
	cmd.Env = environ
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return err
	}

	sigs := make(chan os.Signal, 16)
	signal.Notify(sigs)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case s := <-sigs:
				_ = cmd.Process.Signal(s)
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()
	signal.Stop(sigs)
	close(done)

	if exitErr, ok := err.(*exec.ExitError); ok {
		os.Exit(exitErr.ExitCode())
	}
	if err != nil {
		return err
	}
	os.Exit(0)
	return nil
}
