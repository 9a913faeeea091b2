package commands

import (
	"fmt"

	"modkit/internal/doctor"
)

// Doctor runs the environment health checks.
func Doctor(args []string) error {
	root := "."
	verbose := false
	fix := false
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h", "--help":
			fmt.Println(`modkit doctor - Environment health check

USAGE:
    modkit doctor [OPTIONS]

OPTIONS:
    -h, --help       Show this help message
    -v, --verbose    Show details for passing checks too
    --fix            Attempt automatic fixes for failed checks
    --root DIR       Module root directory (default: current directory)

Checks the Python interpreter, venv support, the module layout, the
manifest, and dist/ writability.`)
			return nil
		case "-v", "--verbose":
			verbose = true
		case "--fix":
			fix = true
		case "--root", "-C":
			if i+1 < len(args) {
				root = args[i+1]
				i++
			}
		}
	}

	doctor.RunDoctorWithOptions(root, verbose, fix)
	return nil
}
