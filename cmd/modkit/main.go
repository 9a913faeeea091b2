package main

import (
	"os"

	"github.com/xyproto/env/v2"

	"modkit/internal/cli"
	"modkit/internal/config"
	"modkit/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Fall back to running with nil config; handle errors centrally
		cfg = nil
	}

	// Parse global flags (lightweight) and strip them from args. The run
	// command forwards its arguments verbatim, so global flags are only
	// recognized before the subcommand name.
	verbose := false
	debug := false
	args := make([]string, 0, len(os.Args))
	seenCommand := false
	for i, a := range os.Args {
		if i == 0 {
			args = append(args, a)
			continue
		}
		if !seenCommand {
			switch a {
			case "--verbose":
				verbose = true
				continue
			case "--debug":
				debug = true
				continue
			}
			seenCommand = true
		}
		args = append(args, a)
	}
	// Env overrides
	if env.Bool("MODKIT_VERBOSE") {
		verbose = true
	}
	if env.Bool("MODKIT_DEBUG") {
		debug = true
	}

	// Initialize logging
	logger.Initialize(verbose, debug)
	defer logger.Close()

	handler := cli.NewErrorHandler(verbose, debug)
	// Install a panic recoverer to avoid raw panics
	var ph cli.PanicHandler
	defer ph.Recover()

	app := cli.New(cfg)
	if err := app.Run(args); err != nil {
		handler.Handle(err)
	}
}
