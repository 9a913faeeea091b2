package commands

import (
	"fmt"

	"modkit/internal/launch"
	"modkit/pkg/terminal"
)

// Setup runs the module's setup.sh without launching the module.
func Setup(args []string) error {
	root := "."
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			fmt.Println(`modkit setup - Run the module setup script

USAGE:
    modkit setup [OPTIONS]

OPTIONS:
    -h, --help    Show this help message
    --root DIR    Module root directory (default: current directory)

Runs setup.sh from the module root with inherited stdio. The run
command does this automatically when MODKIT_REINSTALL=1.`)
			return nil
		case "--root", "-C":
			if i+1 < len(args) {
				root = args[i+1]
				i++
			}
		}
	}

	l := &launch.Launcher{Root: root}
	if err := l.RunSetup(); err != nil {
		return err
	}
	fmt.Printf("%s Setup complete\n", terminal.IconSuccess)
	return nil
}
