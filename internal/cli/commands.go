package cli

import (
	"modkit/internal/cli/commands"
)

// Real command implementations using the extracted command functions
type packCmd struct{}

func (packCmd) Name() string        { return "pack" }
func (packCmd) Description() string { return "Build the module archive" }
func (packCmd) Run(args []string) error {
	return commands.Pack(args)
}

type runCmd struct{}

func (runCmd) Name() string        { return "run" }
func (runCmd) Description() string { return "Launch the module in place" }
func (runCmd) Run(args []string) error {
	return commands.Run(args)
}

type setupCmd struct{}

func (setupCmd) Name() string        { return "setup" }
func (setupCmd) Description() string { return "Run the module setup script" }
func (setupCmd) Run(args []string) error {
	return commands.Setup(args)
}

type watchCmd struct{}

func (watchCmd) Name() string        { return "watch" }
func (watchCmd) Description() string { return "Rebuild the reload archive on source changes" }
func (watchCmd) Run(args []string) error {
	return commands.Watch(args)
}

type digestCmd struct{}

func (digestCmd) Name() string        { return "digest" }
func (digestCmd) Description() string { return "Calculate and inspect module digests" }
func (digestCmd) Run(args []string) error {
	return commands.Digest(args)
}

type inspectCmd struct{}

func (inspectCmd) Name() string        { return "inspect" }
func (inspectCmd) Description() string { return "Show module manifest and packaging plan" }
func (inspectCmd) Run(args []string) error {
	return commands.Inspect(args)
}

type doctorCmd struct{}

func (doctorCmd) Name() string        { return "doctor" }
func (doctorCmd) Description() string { return "Environment health check" }
func (doctorCmd) Run(args []string) error {
	return commands.Doctor(args)
}

type configCmd struct{}

func (configCmd) Name() string        { return "config" }
func (configCmd) Description() string { return "Show or edit persisted preferences" }
func (configCmd) Run(args []string) error {
	return commands.Config(args)
}

type completionCmd struct{}

func (completionCmd) Name() string        { return "completion" }
func (completionCmd) Description() string { return "Generate shell completion scripts" }
func (completionCmd) Run(args []string) error {
	return commands.Completion(args)
}

// Command factory functions
func NewPackCommand() Command       { return packCmd{} }
func NewRunCommand() Command        { return runCmd{} }
func NewSetupCommand() Command      { return setupCmd{} }
func NewWatchCommand() Command      { return watchCmd{} }
func NewDigestCommand() Command     { return digestCmd{} }
func NewInspectCommand() Command    { return inspectCmd{} }
func NewDoctorCommand() Command     { return doctorCmd{} }
func NewConfigCommand() Command     { return configCmd{} }
func NewCompletionCommand() Command { return completionCmd{} }
